package types

import (
	"tgwire/pkg/schema"
	"tgwire/pkg/value"
)

// InputMedia is one item of an outgoing media group, tagged by "type". Media
// may be a remote reference or a local upload; uploads are attached by name.
type InputMedia interface {
	schema.Variant
	isInputMedia()
}

type InputMediaPhoto struct {
	Media           value.InputFile `wire:"media"`
	Caption         string          `wire:"caption,optional"`
	ParseMode       value.ParseMode `wire:"parse_mode,optional"`
	CaptionEntities []MessageEntity `wire:"caption_entities,optional"`
	HasSpoiler      bool            `wire:"has_spoiler,optional"`
}

func (InputMediaPhoto) WireVariant() string { return "photo" }
func (InputMediaPhoto) isInputMedia()       {}

type InputMediaVideo struct {
	Media             value.InputFile `wire:"media"`
	Thumbnail         value.InputFile `wire:"thumbnail,optional"`
	Caption           string          `wire:"caption,optional"`
	ParseMode         value.ParseMode `wire:"parse_mode,optional"`
	Width             int64           `wire:"width,optional"`
	Height            int64           `wire:"height,optional"`
	Duration          int64           `wire:"duration,optional"`
	SupportsStreaming bool            `wire:"supports_streaming,optional"`
	HasSpoiler        bool            `wire:"has_spoiler,optional"`
}

func (InputMediaVideo) WireVariant() string { return "video" }
func (InputMediaVideo) isInputMedia()       {}

type InputMediaAnimation struct {
	Media     value.InputFile `wire:"media"`
	Thumbnail value.InputFile `wire:"thumbnail,optional"`
	Caption   string          `wire:"caption,optional"`
	ParseMode value.ParseMode `wire:"parse_mode,optional"`
	Width     int64           `wire:"width,optional"`
	Height    int64           `wire:"height,optional"`
	Duration  int64           `wire:"duration,optional"`
}

func (InputMediaAnimation) WireVariant() string { return "animation" }
func (InputMediaAnimation) isInputMedia()       {}

type InputMediaAudio struct {
	Media     value.InputFile `wire:"media"`
	Thumbnail value.InputFile `wire:"thumbnail,optional"`
	Caption   string          `wire:"caption,optional"`
	ParseMode value.ParseMode `wire:"parse_mode,optional"`
	Duration  int64           `wire:"duration,optional"`
	Performer string          `wire:"performer,optional"`
	Title     string          `wire:"title,optional"`
}

func (InputMediaAudio) WireVariant() string { return "audio" }
func (InputMediaAudio) isInputMedia()       {}

type InputMediaDocument struct {
	Media                       value.InputFile `wire:"media"`
	Thumbnail                   value.InputFile `wire:"thumbnail,optional"`
	Caption                     string          `wire:"caption,optional"`
	ParseMode                   value.ParseMode `wire:"parse_mode,optional"`
	DisableContentTypeDetection bool            `wire:"disable_content_type_detection,optional"`
}

func (InputMediaDocument) WireVariant() string { return "document" }
func (InputMediaDocument) isInputMedia()       {}

// AlbumMedia reports whether m may share a media group with photos and
// videos. Audio and documents only group with their own kind.
func AlbumMedia(m InputMedia) bool {
	switch m.(type) {
	case InputMediaPhoto, InputMediaVideo:
		return true
	default:
		return false
	}
}
