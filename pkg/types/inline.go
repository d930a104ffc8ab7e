package types

import (
	"tgwire/pkg/schema"
	"tgwire/pkg/value"
)

// InlineQueryResult is one answer to an inline query, tagged by "type".
type InlineQueryResult interface {
	schema.Variant
	isInlineQueryResult()
}

type InlineQueryResultArticle struct {
	ID                  string                `wire:"id"`
	Title               string                `wire:"title"`
	InputMessageContent InputMessageContent   `wire:"input_message_content"`
	ReplyMarkup         *InlineKeyboardMarkup `wire:"reply_markup,optional"`
	URL                 string                `wire:"url,optional"`
	HideURL             bool                  `wire:"hide_url,optional"`
	Description         string                `wire:"description,optional"`
	ThumbnailURL        string                `wire:"thumbnail_url,optional"`
}

func (InlineQueryResultArticle) WireVariant() string  { return "article" }
func (InlineQueryResultArticle) isInlineQueryResult() {}

type InlineQueryResultPhoto struct {
	ID                  string                `wire:"id"`
	PhotoURL            string                `wire:"photo_url"`
	ThumbnailURL        string                `wire:"thumbnail_url"`
	PhotoWidth          int64                 `wire:"photo_width,optional"`
	PhotoHeight         int64                 `wire:"photo_height,optional"`
	Title               string                `wire:"title,optional"`
	Description         string                `wire:"description,optional"`
	Caption             string                `wire:"caption,optional"`
	ParseMode           value.ParseMode       `wire:"parse_mode,optional"`
	CaptionEntities     []MessageEntity       `wire:"caption_entities,optional"`
	ReplyMarkup         *InlineKeyboardMarkup `wire:"reply_markup,optional"`
	InputMessageContent InputMessageContent   `wire:"input_message_content,optional"`
}

func (InlineQueryResultPhoto) WireVariant() string  { return "photo" }
func (InlineQueryResultPhoto) isInlineQueryResult() {}

type InlineQueryResultGif struct {
	ID                  string                `wire:"id"`
	GifURL              string                `wire:"gif_url"`
	GifWidth            int64                 `wire:"gif_width,optional"`
	GifHeight           int64                 `wire:"gif_height,optional"`
	GifDuration         int64                 `wire:"gif_duration,optional"`
	ThumbnailURL        string                `wire:"thumbnail_url"`
	Title               string                `wire:"title,optional"`
	Caption             string                `wire:"caption,optional"`
	ParseMode           value.ParseMode       `wire:"parse_mode,optional"`
	ReplyMarkup         *InlineKeyboardMarkup `wire:"reply_markup,optional"`
	InputMessageContent InputMessageContent   `wire:"input_message_content,optional"`
}

func (InlineQueryResultGif) WireVariant() string  { return "gif" }
func (InlineQueryResultGif) isInlineQueryResult() {}

type InlineQueryResultVideo struct {
	ID                  string                `wire:"id"`
	VideoURL            string                `wire:"video_url"`
	MimeType            string                `wire:"mime_type"`
	ThumbnailURL        string                `wire:"thumbnail_url"`
	Title               string                `wire:"title"`
	Caption             string                `wire:"caption,optional"`
	ParseMode           value.ParseMode       `wire:"parse_mode,optional"`
	VideoWidth          int64                 `wire:"video_width,optional"`
	VideoHeight         int64                 `wire:"video_height,optional"`
	VideoDuration       int64                 `wire:"video_duration,optional"`
	Description         string                `wire:"description,optional"`
	ReplyMarkup         *InlineKeyboardMarkup `wire:"reply_markup,optional"`
	InputMessageContent InputMessageContent   `wire:"input_message_content,optional"`
}

func (InlineQueryResultVideo) WireVariant() string  { return "video" }
func (InlineQueryResultVideo) isInlineQueryResult() {}

type InlineQueryResultDocument struct {
	ID                  string                `wire:"id"`
	Title               string                `wire:"title"`
	Caption             string                `wire:"caption,optional"`
	ParseMode           value.ParseMode       `wire:"parse_mode,optional"`
	DocumentURL         string                `wire:"document_url"`
	MimeType            string                `wire:"mime_type"`
	Description         string                `wire:"description,optional"`
	ReplyMarkup         *InlineKeyboardMarkup `wire:"reply_markup,optional"`
	InputMessageContent InputMessageContent   `wire:"input_message_content,optional"`
	ThumbnailURL        string                `wire:"thumbnail_url,optional"`
}

func (InlineQueryResultDocument) WireVariant() string  { return "document" }
func (InlineQueryResultDocument) isInlineQueryResult() {}

type InlineQueryResultLocation struct {
	ID                  string                `wire:"id"`
	Latitude            float64               `wire:"latitude"`
	Longitude           float64               `wire:"longitude"`
	Title               string                `wire:"title"`
	LivePeriod          int64                 `wire:"live_period,optional"`
	ReplyMarkup         *InlineKeyboardMarkup `wire:"reply_markup,optional"`
	InputMessageContent InputMessageContent   `wire:"input_message_content,optional"`
	ThumbnailURL        string                `wire:"thumbnail_url,optional"`
}

func (InlineQueryResultLocation) WireVariant() string  { return "location" }
func (InlineQueryResultLocation) isInlineQueryResult() {}

type InlineQueryResultContact struct {
	ID                  string                `wire:"id"`
	PhoneNumber         string                `wire:"phone_number"`
	FirstName           string                `wire:"first_name"`
	LastName            string                `wire:"last_name,optional"`
	VCard               string                `wire:"vcard,optional"`
	ReplyMarkup         *InlineKeyboardMarkup `wire:"reply_markup,optional"`
	InputMessageContent InputMessageContent   `wire:"input_message_content,optional"`
	ThumbnailURL        string                `wire:"thumbnail_url,optional"`
}

func (InlineQueryResultContact) WireVariant() string  { return "contact" }
func (InlineQueryResultContact) isInlineQueryResult() {}

// InputMessageContent is the message sent in place of an inline result.
// Variants are told apart by which marker key is present.
type InputMessageContent interface {
	schema.Variant
	isInputMessageContent()
}

type InputTextMessageContent struct {
	MessageText           string          `wire:"message_text"`
	ParseMode             value.ParseMode `wire:"parse_mode,optional"`
	Entities              []MessageEntity `wire:"entities,optional"`
	DisableWebPagePreview bool            `wire:"disable_web_page_preview,optional"`
}

func (InputTextMessageContent) WireVariant() string    { return "message_text" }
func (InputTextMessageContent) isInputMessageContent() {}

type InputContactMessageContent struct {
	PhoneNumber string `wire:"phone_number"`
	FirstName   string `wire:"first_name"`
	LastName    string `wire:"last_name,optional"`
	VCard       string `wire:"vcard,optional"`
}

func (InputContactMessageContent) WireVariant() string    { return "phone_number" }
func (InputContactMessageContent) isInputMessageContent() {}

// InputVenueMessageContent is listed before the location variant because a
// venue also carries latitude.
type InputVenueMessageContent struct {
	Latitude       float64 `wire:"latitude"`
	Longitude      float64 `wire:"longitude"`
	Title          string  `wire:"title"`
	Address        string  `wire:"address"`
	FoursquareID   string  `wire:"foursquare_id,optional"`
	FoursquareType string  `wire:"foursquare_type,optional"`
	GooglePlaceID  string  `wire:"google_place_id,optional"`
}

func (InputVenueMessageContent) WireVariant() string    { return "address" }
func (InputVenueMessageContent) isInputMessageContent() {}

type InputLocationMessageContent struct {
	Latitude           float64 `wire:"latitude"`
	Longitude          float64 `wire:"longitude"`
	HorizontalAccuracy float64 `wire:"horizontal_accuracy,optional"`
	LivePeriod         int64   `wire:"live_period,optional"`
}

func (InputLocationMessageContent) WireVariant() string    { return "latitude" }
func (InputLocationMessageContent) isInputMessageContent() {}
