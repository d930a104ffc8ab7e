package method

import (
	"tgwire/pkg/types"
	"tgwire/pkg/value"
	"tgwire/pkg/wireerr"
)

const (
	minMediaGroup = 2
	maxMediaGroup = 10
)

type sendPhotoParams struct {
	ChatID  value.ChatID    `wire:"chat_id"`
	Photo   value.InputFile `wire:"photo"`
	Caption string          `wire:"caption,optional"`
	sendOptions
}

// SendPhoto sends a photo, either uploaded from a local stream or referenced
// by file id or URL.
type SendPhoto struct {
	call[sendPhotoParams, types.Message]
}

// UploadPhoto sends a local file. The upload is read and closed by the
// dispatcher.
func UploadPhoto(chat value.ChatID, file value.InputFile, caption string, opts ...SendOption) (SendPhoto, error) {
	if !file.IsUpload() {
		return SendPhoto{}, wireerr.At(precondition("photo upload requires a local file"), "photo")
	}
	return newSendPhoto(chat, file, caption, opts)
}

// PhotoByID resends a photo already stored on the platform.
func PhotoByID(chat value.ChatID, fileID string, caption string, opts ...SendOption) (SendPhoto, error) {
	if fileID == "" {
		return SendPhoto{}, wireerr.At(precondition("photo file_id to send must be specified"), "photo")
	}
	file, err := value.InputFileID(fileID)
	if err != nil {
		return SendPhoto{}, wireerr.At(err, "photo")
	}
	return newSendPhoto(chat, file, caption, opts)
}

// PhotoByURL lets the platform fetch the photo from an HTTP URL.
func PhotoByURL(chat value.ChatID, rawURL string, caption string, opts ...SendOption) (SendPhoto, error) {
	file, err := value.InputFileURL(rawURL)
	if err != nil {
		return SendPhoto{}, wireerr.At(err, "photo")
	}
	return newSendPhoto(chat, file, caption, opts)
}

func newSendPhoto(chat value.ChatID, file value.InputFile, caption string, opts []SendOption) (SendPhoto, error) {
	if err := requireChat(chat); err != nil {
		return SendPhoto{}, err
	}

	return SendPhoto{call[sendPhotoParams, types.Message]{
		name: "sendPhoto",
		params: sendPhotoParams{
			ChatID:      chat,
			Photo:       file,
			Caption:     caption,
			sendOptions: applySendOptions(opts),
		},
	}}, nil
}

type sendDocumentParams struct {
	ChatID                      value.ChatID    `wire:"chat_id"`
	Document                    value.InputFile `wire:"document"`
	Thumbnail                   value.InputFile `wire:"thumbnail,optional"`
	Caption                     string          `wire:"caption,optional"`
	DisableContentTypeDetection bool            `wire:"disable_content_type_detection,optional"`
	sendOptions
}

// SendDocument sends a general file.
type SendDocument struct {
	call[sendDocumentParams, types.Message]
}

func NewSendDocument(chat value.ChatID, document value.InputFile, caption string, opts ...SendOption) (SendDocument, error) {
	if err := requireChat(chat); err != nil {
		return SendDocument{}, err
	}
	if document.IsZero() {
		return SendDocument{}, wireerr.At(precondition("document is required"), "document")
	}

	return SendDocument{call[sendDocumentParams, types.Message]{
		name: "sendDocument",
		params: sendDocumentParams{
			ChatID:      chat,
			Document:    document,
			Caption:     caption,
			sendOptions: applySendOptions(opts),
		},
	}}, nil
}

// WithThumbnail attaches a thumbnail. The platform only accepts uploaded
// thumbnails.
func (op SendDocument) WithThumbnail(thumb value.InputFile) (SendDocument, error) {
	if !thumb.IsUpload() {
		return op, wireerr.At(precondition("thumbnail must be a local upload"), "thumbnail")
	}
	op.params.Thumbnail = thumb
	return op, nil
}

type sendMediaGroupParams struct {
	ChatID              value.ChatID       `wire:"chat_id"`
	Media               []types.InputMedia `wire:"media"`
	DisableNotification bool               `wire:"disable_notification,optional"`
	ReplyToMessageID    value.MessageID    `wire:"reply_to_message_id,optional"`
}

// SendMediaGroup sends photos and videos, or documents, or audio files as one
// album. Local items are attached by name in a single multipart body.
type SendMediaGroup struct {
	call[sendMediaGroupParams, []types.Message]
}

func NewSendMediaGroup(chat value.ChatID, media []types.InputMedia, opts ...SendOption) (SendMediaGroup, error) {
	if err := requireChat(chat); err != nil {
		return SendMediaGroup{}, err
	}
	if n := len(media); n < minMediaGroup || n > maxMediaGroup {
		return SendMediaGroup{}, wireerr.At(precondition("media group must hold %d..%d items, got %d", minMediaGroup, maxMediaGroup, n), "media")
	}
	if err := checkAlbum(media); err != nil {
		return SendMediaGroup{}, wireerr.At(err, "media")
	}

	o := applySendOptions(opts)
	if o.ReplyMarkup != nil || o.ParseMode != "" {
		return SendMediaGroup{}, precondition("media groups take no reply markup or parse mode")
	}

	return SendMediaGroup{call[sendMediaGroupParams, []types.Message]{
		name: "sendMediaGroup",
		params: sendMediaGroupParams{
			ChatID:              chat,
			Media:               media,
			DisableNotification: o.DisableNotification,
			ReplyToMessageID:    o.ReplyToMessageID,
		},
	}}, nil
}

// checkAlbum rejects mixed groups: photos and videos may mix, other kinds
// only group with their own kind.
func checkAlbum(media []types.InputMedia) error {
	first := ""
	for i, m := range media {
		if m == nil {
			return wireerr.Index(precondition("media item is nil"), i)
		}
		if first == "" {
			first = m.WireVariant()
		}
		if types.AlbumMedia(m) && types.AlbumMedia(media[0]) {
			continue
		}
		if m.WireVariant() != first {
			return wireerr.Index(precondition("%s cannot share a group with %s", m.WireVariant(), first), i)
		}
	}
	return nil
}

type setChatPhotoParams struct {
	ChatID value.ChatID    `wire:"chat_id"`
	Photo  value.InputFile `wire:"photo"`
}

// SetChatPhoto replaces the chat photo with an uploaded file.
type SetChatPhoto struct {
	call[setChatPhotoParams, bool]
}

func NewSetChatPhoto(chat value.ChatID, photo value.InputFile) (SetChatPhoto, error) {
	if err := requireChat(chat); err != nil {
		return SetChatPhoto{}, err
	}
	if !photo.IsUpload() {
		return SetChatPhoto{}, wireerr.At(precondition("chat photo must be a local upload"), "photo")
	}

	return SetChatPhoto{call[setChatPhotoParams, bool]{
		name:   "setChatPhoto",
		params: setChatPhotoParams{ChatID: chat, Photo: photo},
	}}, nil
}
