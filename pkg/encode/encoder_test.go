package encode

import (
	"io"
	"reflect"
	"strings"
	"testing"

	"tgwire/pkg/decode"
	"tgwire/pkg/schema"
	"tgwire/pkg/value"
	"tgwire/pkg/wireerr"

	"github.com/stretchr/testify/require"
)

type media interface {
	schema.Variant
	isMedia()
}

type photo struct {
	Media   value.InputFile `wire:"media"`
	Caption string          `wire:"caption,optional"`
}

func (photo) WireVariant() string { return "photo" }
func (photo) isMedia()            {}

type clip struct {
	Media    value.InputFile `wire:"media"`
	Duration int64           `wire:"duration,optional"`
}

func (clip) WireVariant() string { return "clip" }
func (clip) isMedia()            {}

type markup interface {
	schema.Variant
	isMarkup()
}

type removeKeyboard struct {
	RemoveKeyboard bool `wire:"remove_keyboard"`
	Selective      bool `wire:"selective,optional"`
}

func (removeKeyboard) WireVariant() string { return "remove_keyboard" }
func (removeKeyboard) isMarkup()           {}

type album struct {
	Owner   value.UserID   `wire:"owner"`
	Title   string         `wire:"title,optional"`
	Created value.UnixTime `wire:"created,optional"`
	Items   []media        `wire:"items,optional"`
	Cover   *album         `wire:"cover,optional"`
	Tags    []string       `wire:"tags,optional"`
}

type sendParams struct {
	ChatID  value.ChatID    `wire:"chat_id"`
	Photo   value.InputFile `wire:"photo,optional"`
	Caption string          `wire:"caption,optional"`
	Silent  bool            `wire:"disable_notification,optional"`
	Markup  markup          `wire:"reply_markup,optional"`
	Group   []media         `wire:"media,optional"`
}

func testTable(t *testing.T) *schema.Table {
	t.Helper()

	b := schema.NewBuilder()
	schema.RegisterScalar(b, "user_id", value.UserIDFromWire, value.UserID.Wire)
	schema.RegisterScalar(b, "unix_time", value.UnixTimeFromWire, value.UnixTime.Wire)
	schema.RegisterScalar(b, "chat_id", value.ChatIDFromWire, value.ChatID.Wire)
	schema.RegisterScalar(b, "input_file", value.InputFileFromWire, value.InputFile.Wire)
	b.Family("media", (*media)(nil), "type", photo{}, clip{})
	b.KeyedFamily("markup", (*markup)(nil), removeKeyboard{})
	b.Object(album{}, sendParams{})

	table, err := b.Build()
	require.NoError(t, err)
	return table
}

func mustFileID(t *testing.T, id string) value.InputFile {
	t.Helper()
	f, err := value.InputFileID(id)
	require.NoError(t, err)
	return f
}

type trackedReader struct {
	io.Reader
	reads  int
	closed bool
}

func (r *trackedReader) Read(p []byte) (int, error) {
	r.reads++
	return r.Reader.Read(p)
}

func (r *trackedReader) Close() error {
	r.closed = true
	return nil
}

func mustUpload(t *testing.T, name string) (value.InputFile, *trackedReader) {
	t.Helper()
	r := &trackedReader{Reader: strings.NewReader("data")}
	f, err := value.UploadFile(name, r)
	require.NoError(t, err)
	return f, r
}

func TestValueOmitsAbsentOptionals(t *testing.T) {
	enc := New(testTable(t))

	tree, err := enc.Value(album{Owner: 5})
	require.NoError(t, err)
	require.Equal(t, map[string]any{"owner": int64(5)}, tree)
}

func TestValueEmitsDiscriminatorAndOrder(t *testing.T) {
	enc := New(testTable(t))

	in := album{
		Owner: 5,
		Items: []media{
			photo{Media: mustFileID(t, "a"), Caption: "first"},
			clip{Media: mustFileID(t, "b"), Duration: 3},
		},
		Tags: []string{"a", "b", "c"},
	}

	tree, err := enc.Value(in)
	require.NoError(t, err)

	want := map[string]any{
		"owner": int64(5),
		"items": []any{
			map[string]any{"type": "photo", "media": "a", "caption": "first"},
			map[string]any{"type": "clip", "media": "b", "duration": int64(3)},
		},
		"tags": []any{"a", "b", "c"},
	}
	require.Equal(t, want, tree)
}

func TestValueConcreteVariantCarriesDiscriminator(t *testing.T) {
	enc := New(testTable(t))

	tree, err := enc.Value(photo{Media: mustFileID(t, "a")})
	require.NoError(t, err)
	require.Equal(t, map[string]any{"type": "photo", "media": "a"}, tree)

	tree, err = enc.Value(removeKeyboard{RemoveKeyboard: true})
	require.NoError(t, err)
	require.Equal(t, map[string]any{"remove_keyboard": true}, tree)
}

func TestValueRejectsUploads(t *testing.T) {
	enc := New(testTable(t))
	file, _ := mustUpload(t, "a.jpg")

	_, err := enc.Value(album{Owner: 1, Items: []media{photo{Media: file}}})
	require.Error(t, err)
	require.True(t, wireerr.Is(err, wireerr.TypeMismatch))
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	table := testTable(t)
	enc := New(table)
	dec := decode.New(table)

	in := album{
		Owner:   5,
		Title:   "holiday",
		Created: 1565537004,
		Items: []media{
			clip{Media: mustFileID(t, "b"), Duration: 3},
			photo{Media: mustFileID(t, "a")},
		},
		Cover: &album{Owner: 6, Tags: []string{"z", "y"}},
	}

	data, err := enc.JSON(in)
	require.NoError(t, err)

	out, err := decode.JSON[album](dec, data)
	require.NoError(t, err)
	require.True(t, reflect.DeepEqual(in, out), "round trip mismatch: %#v vs %#v", in, out)
}

func TestPayloadFormWithoutFiles(t *testing.T) {
	enc := New(testTable(t))
	chat, err := value.NewChatID(-341054026)
	require.NoError(t, err)

	payload, err := enc.Payload(sendParams{
		ChatID:  chat,
		Photo:   mustFileID(t, "AgAD"),
		Caption: "hi",
		Silent:  true,
		Markup:  removeKeyboard{RemoveKeyboard: true},
	})
	require.NoError(t, err)

	require.Equal(t, ShapeForm, payload.Shape)
	require.Empty(t, payload.Files)
	require.Equal(t, map[string]string{
		"chat_id":              "-341054026",
		"photo":                "AgAD",
		"caption":              "hi",
		"disable_notification": "true",
		"reply_markup":         `{"remove_keyboard":true}`,
	}, payload.Fields)
}

func TestPayloadMultipartWithOneFile(t *testing.T) {
	enc := New(testTable(t))
	chat, err := value.ChatUsername("@channel")
	require.NoError(t, err)
	file, reader := mustUpload(t, "cat.jpg")

	payload, err := enc.Payload(sendParams{ChatID: chat, Photo: file, Caption: "look"})
	require.NoError(t, err)

	require.Equal(t, ShapeMultipart, payload.Shape)
	require.Equal(t, map[string]string{"chat_id": "@channel", "caption": "look"}, payload.Fields)
	require.Len(t, payload.Files, 1)
	require.Equal(t, "cat.jpg", payload.Files["photo"].Name())
	require.Equal(t, []string{"caption", "chat_id", "photo"}, payload.Keys())
	require.Zero(t, reader.reads, "payload building must not read the stream")

	require.NoError(t, payload.Close())
	require.True(t, reader.closed)
}

func TestPayloadNestedUploadsBecomeAttachments(t *testing.T) {
	enc := New(testTable(t))
	chat, err := value.NewChatID(42)
	require.NoError(t, err)
	first, _ := mustUpload(t, "one.jpg")
	second, _ := mustUpload(t, "two.mp4")

	payload, err := enc.Payload(sendParams{
		ChatID: chat,
		Group: []media{
			photo{Media: first},
			clip{Media: second},
			photo{Media: mustFileID(t, "remote")},
			photo{Media: first},
		},
	})
	require.NoError(t, err)

	require.Equal(t, ShapeMultipart, payload.Shape)
	require.Equal(t,
		`[{"media":"attach://file0","type":"photo"},{"media":"attach://file1","type":"clip"},{"media":"remote","type":"photo"},{"media":"attach://file0","type":"photo"}]`,
		payload.Fields["media"])
	require.Equal(t, "one.jpg", payload.Files["file0"].Name())
	require.Equal(t, "two.mp4", payload.Files["file1"].Name())
	require.Len(t, payload.Files, 2)
}

func TestPayloadErrors(t *testing.T) {
	enc := New(testTable(t))

	_, err := enc.Payload(struct{}{})
	require.Error(t, err)

	chat, err := value.NewChatID(1)
	require.NoError(t, err)
	_, err = enc.Payload(sendParams{ChatID: chat, Markup: nil, Group: []media{nil}})
	require.Error(t, err)

	var werr *wireerr.Error
	require.ErrorAs(t, err, &werr)
	require.Equal(t, "media[0]", werr.PathString())
}
