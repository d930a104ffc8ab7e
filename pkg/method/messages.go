package method

import (
	"time"
	"unicode/utf16"

	"tgwire/pkg/types"
	"tgwire/pkg/value"
	"tgwire/pkg/wireerr"
)

const (
	maxUpdatesLimit = 100
	maxTextLength   = 4096
)

type getMeParams struct{}

// GetMe returns the bot's own user.
type GetMe struct {
	call[getMeParams, types.User]
}

func NewGetMe() GetMe {
	return GetMe{call[getMeParams, types.User]{name: "getMe"}}
}

type getUpdatesParams struct {
	Offset         int64    `wire:"offset,optional"`
	Limit          int64    `wire:"limit,optional"`
	Timeout        int64    `wire:"timeout,optional"`
	AllowedUpdates []string `wire:"allowed_updates,optional"`
}

// GetUpdates long-polls for incoming updates.
type GetUpdates struct {
	call[getUpdatesParams, []types.RawUpdate]
}

// NewGetUpdates asks for updates with id >= offset. A zero limit or timeout
// leaves the server default in place.
func NewGetUpdates(offset int64, limit int, timeout time.Duration, allowed []string) (GetUpdates, error) {
	if limit < 0 || limit > maxUpdatesLimit {
		return GetUpdates{}, wireerr.At(precondition("limit must be within 0..%d", maxUpdatesLimit), "limit")
	}
	if timeout < 0 {
		return GetUpdates{}, wireerr.At(precondition("timeout must not be negative"), "timeout")
	}

	return GetUpdates{call[getUpdatesParams, []types.RawUpdate]{
		name: "getUpdates",
		params: getUpdatesParams{
			Offset:         offset,
			Limit:          int64(limit),
			Timeout:        int64(timeout / time.Second),
			AllowedUpdates: allowed,
		},
	}}, nil
}

type sendMessageParams struct {
	ChatID                value.ChatID `wire:"chat_id"`
	Text                  string       `wire:"text"`
	DisableWebPagePreview bool         `wire:"disable_web_page_preview,optional"`
	sendOptions
}

// SendMessage sends a text message.
type SendMessage struct {
	call[sendMessageParams, types.Message]
}

func NewSendMessage(chat value.ChatID, text string, opts ...SendOption) (SendMessage, error) {
	if err := requireChat(chat); err != nil {
		return SendMessage{}, err
	}
	if text == "" {
		return SendMessage{}, wireerr.At(precondition("message text must not be empty"), "text")
	}
	if n := utf16Len(text); n > maxTextLength {
		return SendMessage{}, wireerr.At(precondition("message text is %d characters, limit is %d", n, maxTextLength), "text")
	}

	return SendMessage{call[sendMessageParams, types.Message]{
		name: "sendMessage",
		params: sendMessageParams{
			ChatID:      chat,
			Text:        text,
			sendOptions: applySendOptions(opts),
		},
	}}, nil
}

// WithoutPreview disables link previews for the message.
func (op SendMessage) WithoutPreview() SendMessage {
	op.params.DisableWebPagePreview = true
	return op
}

type forwardMessageParams struct {
	ChatID              value.ChatID    `wire:"chat_id"`
	FromChatID          value.ChatID    `wire:"from_chat_id"`
	DisableNotification bool            `wire:"disable_notification,optional"`
	MessageID           value.MessageID `wire:"message_id"`
}

// ForwardMessage forwards a message of any kind.
type ForwardMessage struct {
	call[forwardMessageParams, types.Message]
}

func NewForwardMessage(to, from value.ChatID, id value.MessageID, silent bool) (ForwardMessage, error) {
	if err := requireChat(to); err != nil {
		return ForwardMessage{}, err
	}
	if from.IsZero() {
		return ForwardMessage{}, wireerr.At(precondition("source chat is required"), "from_chat_id")
	}
	if id <= 0 {
		return ForwardMessage{}, wireerr.At(precondition("message id is required"), "message_id")
	}

	return ForwardMessage{call[forwardMessageParams, types.Message]{
		name: "forwardMessage",
		params: forwardMessageParams{
			ChatID:              to,
			FromChatID:          from,
			DisableNotification: silent,
			MessageID:           id,
		},
	}}, nil
}

type sendChatActionParams struct {
	ChatID value.ChatID     `wire:"chat_id"`
	Action value.ChatAction `wire:"action"`
}

// SendChatAction shows a status such as "typing" for a few seconds.
type SendChatAction struct {
	call[sendChatActionParams, bool]
}

func NewSendChatAction(chat value.ChatID, action value.ChatAction) (SendChatAction, error) {
	if err := requireChat(chat); err != nil {
		return SendChatAction{}, err
	}
	if _, err := value.ChatActionFromWire(string(action)); err != nil {
		return SendChatAction{}, wireerr.At(precondition("unknown chat action %q", action), "action")
	}

	return SendChatAction{call[sendChatActionParams, bool]{
		name:   "sendChatAction",
		params: sendChatActionParams{ChatID: chat, Action: action},
	}}, nil
}

type deleteMessageParams struct {
	ChatID    value.ChatID    `wire:"chat_id"`
	MessageID value.MessageID `wire:"message_id"`
}

type DeleteMessage struct {
	call[deleteMessageParams, bool]
}

func NewDeleteMessage(chat value.ChatID, id value.MessageID) (DeleteMessage, error) {
	if err := requireChat(chat); err != nil {
		return DeleteMessage{}, err
	}
	if id <= 0 {
		return DeleteMessage{}, wireerr.At(precondition("message id is required"), "message_id")
	}

	return DeleteMessage{call[deleteMessageParams, bool]{
		name:   "deleteMessage",
		params: deleteMessageParams{ChatID: chat, MessageID: id},
	}}, nil
}

// utf16Len counts UTF-16 code units, the unit Telegram measures text in.
func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += max(1, utf16.RuneLen(r))
	}
	return n
}
