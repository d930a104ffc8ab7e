package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"testing"

	"tgwire/pkg/config"
	"tgwire/pkg/method"
	"tgwire/pkg/types"
	"tgwire/pkg/value"
	"tgwire/pkg/wireerr"

	ta "github.com/mymmrac/telego/telegoapi"
	"github.com/stretchr/testify/require"
)

const testToken = "123456:secret"

type fakeCaller struct {
	url  string
	data *ta.RequestData
	resp *ta.Response
	err  error
}

func (c *fakeCaller) Call(_ context.Context, url string, data *ta.RequestData) (*ta.Response, error) {
	c.url = url
	c.data = data
	return c.resp, c.err
}

type fakeConstructor struct {
	fields map[string]string
	files  map[string]ta.NamedReader
}

func (c *fakeConstructor) JSONRequest(any) (*ta.RequestData, error) {
	return nil, errors.New("json requests are not used")
}

func (c *fakeConstructor) MultipartRequest(fields map[string]string, files map[string]ta.NamedReader) (*ta.RequestData, error) {
	c.fields = fields
	c.files = files
	return &ta.RequestData{ContentType: "multipart/form-data; boundary=x"}, nil
}

type closeTracker struct {
	io.Reader
	closed int
}

func (c *closeTracker) Close() error {
	c.closed++
	return nil
}

func okResponse(result string) *ta.Response {
	return &ta.Response{Ok: true, Result: json.RawMessage(result)}
}

func newTestDispatcher(t *testing.T, caller ta.Caller, opts ...Option) *Dispatcher {
	t.Helper()

	table, err := method.Schema()
	require.NoError(t, err)

	opts = append([]Option{WithCaller(caller)}, opts...)
	d, err := New(config.TelegramConfig{Token: testToken, BaseURL: "https://api.example.test/"}, table, slog.New(slog.DiscardHandler), opts...)
	require.NoError(t, err)
	return d
}

func groupChat(t *testing.T) value.ChatID {
	t.Helper()

	chat, err := value.NewChatID(-341054026)
	require.NoError(t, err)
	return chat
}

func TestNewRequiresToken(t *testing.T) {
	table, err := method.Schema()
	require.NoError(t, err)

	_, err = New(config.TelegramConfig{Token: "  "}, table, nil)
	require.Error(t, err)
}

func TestDoSendsFormAndDecodesMessage(t *testing.T) {
	caller := &fakeCaller{resp: okResponse(`{
		"message_id": 4,
		"date": 1565537010,
		"chat": {"id": -341054026, "title": "qwertyroot", "type": "group"},
		"from": {"id": 777000111, "is_bot": true, "first_name": "wirebot"},
		"text": "hello"
	}`)}
	d := newTestDispatcher(t, caller)

	op, err := method.NewSendMessage(groupChat(t), "hello", method.Silent())
	require.NoError(t, err)

	msg, err := Do[types.Message](context.Background(), d, op)
	require.NoError(t, err)

	require.Equal(t, "https://api.example.test/bot"+testToken+"/sendMessage", caller.url)
	require.Equal(t, formContentType, caller.data.ContentType)

	form, err := url.ParseQuery(string(caller.data.BodyRaw))
	require.NoError(t, err)
	require.Equal(t, "-341054026", form.Get("chat_id"))
	require.Equal(t, "hello", form.Get("text"))
	require.Equal(t, "true", form.Get("disable_notification"))

	require.Equal(t, value.MessageID(4), msg.MessageID)
	require.Equal(t, "hello", msg.Text)
	require.True(t, msg.From.IsBot)
}

func TestDoMultipartClosesUploads(t *testing.T) {
	caller := &fakeCaller{resp: okResponse(`true`)}
	constructor := &fakeConstructor{}
	d := newTestDispatcher(t, caller, WithConstructor(constructor))

	stream := &closeTracker{Reader: strings.NewReader("png")}
	file, err := value.UploadFile("logo.png", stream)
	require.NoError(t, err)

	op, err := method.NewSetChatPhoto(groupChat(t), file)
	require.NoError(t, err)

	ok, err := Do[bool](context.Background(), d, op)
	require.NoError(t, err)
	require.True(t, ok)

	require.Equal(t, map[string]string{"chat_id": "-341054026"}, constructor.fields)
	require.Len(t, constructor.files, 1)
	require.Equal(t, "logo.png", constructor.files["photo"].Name())
	require.Equal(t, 1, stream.closed)
}

func TestDoClosesUploadsOnFailure(t *testing.T) {
	caller := &fakeCaller{err: errors.New("dial tcp: connection refused")}
	d := newTestDispatcher(t, caller, WithConstructor(&fakeConstructor{}))

	stream := &closeTracker{Reader: strings.NewReader("jpg")}
	file, err := value.UploadFile("cat.jpg", stream)
	require.NoError(t, err)

	op, err := method.UploadPhoto(groupChat(t), file, "")
	require.NoError(t, err)

	_, err = d.Do(context.Background(), op)
	require.Error(t, err)
	require.Equal(t, 1, stream.closed)
}

func TestDoClosesUploadsWhenEncodingFails(t *testing.T) {
	// A table without the params objects cannot encode any operation.
	table, err := types.NewTable()
	require.NoError(t, err)

	caller := &fakeCaller{resp: okResponse(`true`)}
	d, err := New(config.TelegramConfig{Token: testToken}, table, slog.New(slog.DiscardHandler), WithCaller(caller))
	require.NoError(t, err)

	stream := &closeTracker{Reader: strings.NewReader("jpg")}
	file, err := value.UploadFile("cat.jpg", stream)
	require.NoError(t, err)

	op, err := method.UploadPhoto(groupChat(t), file, "")
	require.NoError(t, err)

	_, err = d.Do(context.Background(), op)
	require.Error(t, err)
	require.Contains(t, err.Error(), "encode sendPhoto")
	require.Equal(t, 1, stream.closed)
	require.Nil(t, caller.data)
}

func TestDoGetUpdatesKeepsUndecodableElements(t *testing.T) {
	caller := &fakeCaller{resp: okResponse(`[
		{"update_id": 10, "message": {"message_id": 1, "date": 1565537004, "chat": {"id": 5, "type": "private"}, "text": "ok"}},
		{"update_id": 11, "message": {"message_id": 2, "date": 1565537004, "chat": {"id": 5, "type": "private"}, "text": "quote",
			"entities": [{"type": "expandable_blockquote", "offset": 0, "length": 5}]}}
	]`)}
	d := newTestDispatcher(t, caller)

	op, err := method.NewGetUpdates(0, 100, 0, nil)
	require.NoError(t, err)

	raws, err := Do[[]types.RawUpdate](context.Background(), d, op)
	require.NoError(t, err)
	require.Len(t, raws, 2)
	require.Equal(t, int64(12), raws[1].ID.Next())
}

func TestDoReturnsAPIError(t *testing.T) {
	caller := &fakeCaller{resp: &ta.Response{
		Ok:    false,
		Error: &ta.Error{ErrorCode: 400, Description: "Bad Request: chat not found"},
	}}
	d := newTestDispatcher(t, caller)

	op, err := method.NewDeleteChatPhoto(groupChat(t))
	require.NoError(t, err)

	_, err = d.Do(context.Background(), op)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "deleteChatPhoto", apiErr.Method)
	require.Equal(t, 400, apiErr.Code)
	require.Equal(t, "telegram deleteChatPhoto: 400 Bad Request: chat not found", apiErr.Error())
}

func TestDoDecodesFamilyResult(t *testing.T) {
	caller := &fakeCaller{resp: okResponse(`{
		"status": "kicked",
		"user": {"id": 288825898, "is_bot": false, "first_name": "Maksim"},
		"until_date": 0
	}`)}
	d := newTestDispatcher(t, caller)

	op, err := method.NewGetChatMember(groupChat(t), 288825898)
	require.NoError(t, err)

	member, err := Do[types.ChatMember](context.Background(), d, op)
	require.NoError(t, err)
	require.IsType(t, types.ChatMemberBanned{}, member)
	require.False(t, types.IsPresent(member))
}

func TestDoReportsResultDecodeErrors(t *testing.T) {
	caller := &fakeCaller{resp: okResponse(`{"message_id": 4, "chat": {"id": 1, "type": "private"}}`)}
	d := newTestDispatcher(t, caller)

	op, err := method.NewSendMessage(groupChat(t), "hello")
	require.NoError(t, err)

	_, err = d.Do(context.Background(), op)
	require.Error(t, err)
	require.True(t, wireerr.Is(err, wireerr.MissingField))
	require.Contains(t, err.Error(), "decode sendMessage result")
}

func TestDoRedactsToken(t *testing.T) {
	cause := &url.Error{Op: "Post", URL: "https://api.example.test/bot" + testToken + "/getMe", Err: context.DeadlineExceeded}
	d := newTestDispatcher(t, &fakeCaller{err: cause})

	_, err := d.Do(context.Background(), method.NewGetMe())
	require.Error(t, err)
	require.NotContains(t, err.Error(), testToken)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDoTypedResultMismatch(t *testing.T) {
	d := newTestDispatcher(t, &fakeCaller{resp: okResponse(`true`)})

	op, err := method.NewDeleteChatPhoto(groupChat(t))
	require.NoError(t, err)

	_, err = Do[types.Message](context.Background(), d, op)
	require.Error(t, err)
}
