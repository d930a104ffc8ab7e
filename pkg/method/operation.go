// Package method declares the Bot API operations. Each operation pairs a
// method name with a params object rendered by the encoder and the type its
// result decodes into.
package method

import (
	"errors"
	"net/http"
	"reflect"

	"tgwire/pkg/encode"
	"tgwire/pkg/schema"
	"tgwire/pkg/types"
	"tgwire/pkg/value"
	"tgwire/pkg/wireerr"
)

// Operation is a request the dispatcher can send.
type Operation interface {
	MethodName() string
	HTTPMethod() string
	Payload(enc *encode.Encoder) (encode.Payload, error)
	ResultType() reflect.Type
	// Close releases the local uploads held by the params. Closing an
	// operation that was already sent is a no-op.
	Close() error
}

// call implements Operation for a params object P whose result decodes into R.
type call[P any, R any] struct {
	name   string
	params P
}

func (c call[P, R]) MethodName() string { return c.name }

func (c call[P, R]) HTTPMethod() string { return http.MethodPost }

func (c call[P, R]) Payload(enc *encode.Encoder) (encode.Payload, error) {
	return enc.Payload(c.params)
}

func (c call[P, R]) ResultType() reflect.Type { return reflect.TypeFor[R]() }

func (c call[P, R]) Close() error { return closeUploads(reflect.ValueOf(c.params)) }

var inputFileType = reflect.TypeFor[value.InputFile]()

// closeUploads closes every upload reachable through exported fields,
// slices and family interfaces of v.
func closeUploads(v reflect.Value) error {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return closeUploads(v.Elem())
	case reflect.Slice, reflect.Array:
		var errs []error
		for i := range v.Len() {
			errs = append(errs, closeUploads(v.Index(i)))
		}
		return errors.Join(errs...)
	case reflect.Struct:
		if v.Type() == inputFileType {
			if upload, ok := v.Interface().(value.InputFile).Upload(); ok {
				return upload.Close()
			}
			return nil
		}

		var errs []error
		for i := range v.NumField() {
			if v.Type().Field(i).IsExported() {
				errs = append(errs, closeUploads(v.Field(i)))
			}
		}
		return errors.Join(errs...)
	default:
		return nil
	}
}

// sendOptions are the fields shared by the send* operations.
type sendOptions struct {
	DisableNotification bool              `wire:"disable_notification,optional"`
	ReplyToMessageID    value.MessageID   `wire:"reply_to_message_id,optional"`
	ParseMode           value.ParseMode   `wire:"parse_mode,optional"`
	ReplyMarkup         types.ReplyMarkup `wire:"reply_markup,optional"`
}

// SendOption adjusts the shared fields of a send operation.
type SendOption func(*sendOptions)

// Silent delivers the message without a notification sound.
func Silent() SendOption {
	return func(o *sendOptions) { o.DisableNotification = true }
}

func ReplyTo(id value.MessageID) SendOption {
	return func(o *sendOptions) { o.ReplyToMessageID = id }
}

func WithParseMode(mode value.ParseMode) SendOption {
	return func(o *sendOptions) { o.ParseMode = mode }
}

// Markdown is WithParseMode(value.ParseModeMarkdown).
func Markdown() SendOption { return WithParseMode(value.ParseModeMarkdown) }

// HTML is WithParseMode(value.ParseModeHTML).
func HTML() SendOption { return WithParseMode(value.ParseModeHTML) }

func WithMarkup(markup types.ReplyMarkup) SendOption {
	return func(o *sendOptions) { o.ReplyMarkup = markup }
}

func applySendOptions(opts []SendOption) sendOptions {
	var o sendOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

func precondition(format string, args ...any) error {
	return wireerr.Newf(wireerr.EncodingPrecondition, format, args...)
}

func requireChat(chat value.ChatID) error {
	if chat.IsZero() {
		return wireerr.At(precondition("target chat is required"), "chat_id")
	}
	return nil
}

// Register adds every params object to b. types.Register must run on the
// same builder.
func Register(b *schema.Builder) {
	b.Object(
		getMeParams{},
		getUpdatesParams{},
		sendMessageParams{},
		forwardMessageParams{},
		sendPhotoParams{},
		sendDocumentParams{},
		sendMediaGroupParams{},
		sendChatActionParams{},
		deleteMessageParams{},
		deleteChatPhotoParams{},
		setChatPhotoParams{},
		setChatStickerSetParams{},
		getChatMemberParams{},
		answerInlineQueryParams{},
		answerCallbackQueryParams{},
	)
}

// Schema builds the table of every Bot API type and operation params object.
func Schema() (*schema.Table, error) {
	b := schema.NewBuilder()
	types.Register(b)
	Register(b)
	return b.Build()
}
