package method

import (
	"time"

	"tgwire/pkg/types"
	"tgwire/pkg/wireerr"
)

const maxInlineResults = 50

type answerInlineQueryParams struct {
	InlineQueryID string                    `wire:"inline_query_id"`
	Results       []types.InlineQueryResult `wire:"results"`
	CacheTime     int64                     `wire:"cache_time,optional"`
	IsPersonal    bool                      `wire:"is_personal,optional"`
	NextOffset    string                    `wire:"next_offset,optional"`
}

// InlineAnswer holds the optional settings of an inline query answer.
type InlineAnswer struct {
	CacheTime  time.Duration
	IsPersonal bool
	NextOffset string
}

// AnswerInlineQuery replies to an inline query with up to 50 results.
type AnswerInlineQuery struct {
	call[answerInlineQueryParams, bool]
}

func NewAnswerInlineQuery(queryID string, results []types.InlineQueryResult, answer InlineAnswer) (AnswerInlineQuery, error) {
	if queryID == "" {
		return AnswerInlineQuery{}, wireerr.At(precondition("inline query id must be specified"), "inline_query_id")
	}
	if len(results) > maxInlineResults {
		return AnswerInlineQuery{}, wireerr.At(precondition("at most %d results are allowed, got %d", maxInlineResults, len(results)), "results")
	}
	if results == nil {
		results = []types.InlineQueryResult{}
	}

	return AnswerInlineQuery{call[answerInlineQueryParams, bool]{
		name: "answerInlineQuery",
		params: answerInlineQueryParams{
			InlineQueryID: queryID,
			Results:       results,
			CacheTime:     int64(answer.CacheTime / time.Second),
			IsPersonal:    answer.IsPersonal,
			NextOffset:    answer.NextOffset,
		},
	}}, nil
}

type answerCallbackQueryParams struct {
	CallbackQueryID string `wire:"callback_query_id"`
	Text            string `wire:"text,optional"`
	ShowAlert       bool   `wire:"show_alert,optional"`
	URL             string `wire:"url,optional"`
	CacheTime       int64  `wire:"cache_time,optional"`
}

// AnswerCallbackQuery acknowledges an inline keyboard press, optionally with a
// notification or alert.
type AnswerCallbackQuery struct {
	call[answerCallbackQueryParams, bool]
}

func NewAnswerCallbackQuery(queryID, text string) (AnswerCallbackQuery, error) {
	if queryID == "" {
		return AnswerCallbackQuery{}, wireerr.At(precondition("callback query id must be specified"), "callback_query_id")
	}

	return AnswerCallbackQuery{call[answerCallbackQueryParams, bool]{
		name:   "answerCallbackQuery",
		params: answerCallbackQueryParams{CallbackQueryID: queryID, Text: text},
	}}, nil
}

// AsAlert shows the text as a modal alert instead of a toast.
func (op AnswerCallbackQuery) AsAlert() AnswerCallbackQuery {
	op.params.ShowAlert = true
	return op
}

// OpenURL asks the client to open url, typically a game or t.me link.
func (op AnswerCallbackQuery) OpenURL(url string) AnswerCallbackQuery {
	op.params.URL = url
	return op
}
