package types

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"tgwire/pkg/decode"
	"tgwire/pkg/encode"
	"tgwire/pkg/value"
	"tgwire/pkg/wireerr"

	"github.com/stretchr/testify/require"
)

func testCodecs(t *testing.T) (*decode.Decoder, *encode.Encoder) {
	t.Helper()

	table, err := NewTable()
	require.NoError(t, err)
	return decode.New(table), encode.New(table)
}

func readFixture(t *testing.T, name string) []byte {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

func TestDecodeMessageReceived(t *testing.T) {
	dec, _ := testCodecs(t)

	update, err := decode.JSON[Update](dec, readFixture(t, "message_received.json"))
	require.NoError(t, err)

	require.Equal(t, UpdateKindMessage, update.Kind())
	require.NotNil(t, update.Message)
	msg := update.Message

	require.Equal(t, "3", msg.MessageID.String())
	require.Equal(t, "2019-08-11T15:23:24Z", msg.Date.String())
	require.Equal(t, "message text", msg.Text)
	require.False(t, msg.IsCommand())

	require.NotNil(t, msg.From)
	require.Equal(t, "288825898", msg.From.ID.String())
	require.Equal(t, "Maksim", msg.From.FirstName)
	require.Equal(t, "Masiukevich", msg.From.LastName)
	require.Equal(t, "desper1989", msg.From.Username)
	require.False(t, msg.From.IsBot)

	require.Equal(t, "-341054026", msg.Chat.ID.String())
	require.Equal(t, "qwertyroot", msg.Chat.Title)
	require.Equal(t, value.ChatTypeGroup, msg.Chat.Type)

	require.Nil(t, update.EditedMessage)
	require.Nil(t, msg.ReplyMarkup)
	require.Nil(t, msg.Entities)
}

func TestUpdateRoundTrip(t *testing.T) {
	dec, enc := testCodecs(t)

	first, err := decode.JSON[Update](dec, readFixture(t, "message_received.json"))
	require.NoError(t, err)

	data, err := enc.JSON(first)
	require.NoError(t, err)

	second, err := decode.JSON[Update](dec, data)
	require.NoError(t, err)
	require.True(t, reflect.DeepEqual(first, second), "round trip changed the update")
}

func TestDecodeChatMemberFamily(t *testing.T) {
	dec, _ := testCodecs(t)

	update, err := decode.JSON[Update](dec, readFixture(t, "member_promoted.json"))
	require.NoError(t, err)
	require.Equal(t, UpdateKindMyChatMember, update.Kind())

	change := update.MyChatMember
	require.IsType(t, ChatMemberMember{}, change.OldChatMember)
	admin, ok := change.NewChatMember.(ChatMemberAdministrator)
	require.True(t, ok, "new member = %T", change.NewChatMember)
	require.True(t, admin.CanPostMessages)
	require.False(t, admin.CanEditMessages)
	require.Equal(t, "wire_bot", MemberUser(admin).Username)
	require.True(t, IsPresent(admin))
	require.Equal(t, "288825898", update.Sender().ID.String())
}

func TestDecodeChatMemberUnknownStatus(t *testing.T) {
	dec, _ := testCodecs(t)

	_, err := decode.JSON[ChatMember](dec, []byte(`{"status":"visitor","user":{"id":1,"is_bot":false,"first_name":"a"}}`))
	require.Error(t, err)
	require.True(t, wireerr.Is(err, wireerr.UnknownVariant))
}

func TestUpdateKind(t *testing.T) {
	dec, _ := testCodecs(t)

	none, err := decode.JSON[Update](dec, []byte(`{"update_id": 5, "business_message": {"text": "x"}}`))
	require.NoError(t, err)
	require.Equal(t, UpdateKindNone, none.Kind())
	require.Nil(t, none.Sender())

	both, err := decode.JSON[Update](dec, []byte(`{
		"update_id": 6,
		"message": {"message_id": 1, "date": 0, "chat": {"id": 1, "type": "private"}},
		"callback_query": {"id": "q", "from": {"id": 2, "is_bot": false, "first_name": "b"}, "chat_instance": "c"}
	}`))
	require.NoError(t, err)
	require.Equal(t, UpdateKindMessage, both.Kind())
}

func TestMessageCommand(t *testing.T) {
	msg := Message{
		Text:     "/start@wire_bot hello 👋",
		Entities: []MessageEntity{{Type: value.EntityBotCommand, Offset: 0, Length: 15}},
	}
	require.True(t, msg.IsCommand())

	name, args, ok := msg.Command()
	require.True(t, ok)
	require.Equal(t, "start", name)
	require.Equal(t, "hello 👋", args)

	later := Message{
		Text:     "👋 /help",
		Entities: []MessageEntity{{Type: value.EntityBotCommand, Offset: 3, Length: 5}},
	}
	require.True(t, later.IsCommand())
	require.Equal(t, "/help", EntityText(later.Text, later.Entities[0]))
	_, _, ok = later.Command()
	require.False(t, ok)

	plain := Message{
		Text:     "bold words",
		Entities: []MessageEntity{{Type: value.EntityBold, Offset: 0, Length: 4}},
	}
	require.False(t, plain.IsCommand())
}

func TestKeyedFamiliesSelectByMarker(t *testing.T) {
	dec, _ := testCodecs(t)

	tests := []struct {
		name  string
		input string
		want  InputMessageContent
	}{
		{name: "text", input: `{"message_text":"hi","parse_mode":"HTML"}`, want: InputTextMessageContent{MessageText: "hi", ParseMode: value.ParseModeHTML}},
		{name: "contact", input: `{"phone_number":"+1","first_name":"a"}`, want: InputContactMessageContent{PhoneNumber: "+1", FirstName: "a"}},
		{name: "venue", input: `{"latitude":1.5,"longitude":2,"title":"x","address":"y"}`, want: InputVenueMessageContent{Latitude: 1.5, Longitude: 2, Title: "x", Address: "y"}},
		{name: "location", input: `{"latitude":1.5,"longitude":2}`, want: InputLocationMessageContent{Latitude: 1.5, Longitude: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decode.JSON[InputMessageContent](dec, []byte(tt.input))
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	markup, err := decode.JSON[ReplyMarkup](dec, []byte(`{"remove_keyboard":true,"selective":true}`))
	require.NoError(t, err)
	require.Equal(t, RemoveKeyboard(true), markup)
}

func TestEncodeInlineQueryResult(t *testing.T) {
	_, enc := testCodecs(t)

	tree, err := enc.Value(InlineQueryResultArticle{
		ID:    "1",
		Title: "greeting",
		InputMessageContent: InputTextMessageContent{
			MessageText: "<b>hi</b>",
			ParseMode:   value.ParseModeHTML,
		},
		ReplyMarkup: &InlineKeyboardMarkup{InlineKeyboard: [][]InlineKeyboardButton{{CallbackButton("ok", "ack")}}},
	})
	require.NoError(t, err)

	require.Equal(t, map[string]any{
		"type":  "article",
		"id":    "1",
		"title": "greeting",
		"input_message_content": map[string]any{
			"message_text": "<b>hi</b>",
			"parse_mode":   "HTML",
		},
		"reply_markup": map[string]any{
			"inline_keyboard": []any{
				[]any{map[string]any{"text": "ok", "callback_data": "ack"}},
			},
		},
	}, tree)
}

func TestEncodeArticleRequiresContent(t *testing.T) {
	_, enc := testCodecs(t)

	_, err := enc.Value(InlineQueryResultArticle{ID: "1", Title: "t"})
	require.Error(t, err)
	require.True(t, wireerr.Is(err, wireerr.MissingField))

	var werr *wireerr.Error
	require.ErrorAs(t, err, &werr)
	require.Equal(t, "input_message_content", werr.PathString())
}

func TestAlbumMedia(t *testing.T) {
	require.True(t, AlbumMedia(InputMediaPhoto{}))
	require.True(t, AlbumMedia(InputMediaVideo{}))
	require.False(t, AlbumMedia(InputMediaDocument{}))
}

func TestRawUpdateBatchKeepsUndecodableBodies(t *testing.T) {
	dec, _ := testCodecs(t)

	batch := []byte(`[
		{"update_id": 10, "message": {"message_id": 1, "date": 1565537004, "chat": {"id": 5, "type": "private"}, "text": "ok"}},
		{"update_id": 11, "message": {"message_id": 2, "date": 1565537004, "chat": {"id": 5, "type": "private"}, "text": "quote",
			"entities": [{"type": "expandable_blockquote", "offset": 0, "length": 5}]}}
	]`)

	raws, err := decode.JSON[[]RawUpdate](dec, batch)
	require.NoError(t, err)
	require.Len(t, raws, 2)
	require.Equal(t, "10", raws[0].ID.String())
	require.Equal(t, "11", raws[1].ID.String())

	first, err := decode.Into[Update](dec, raws[0].Tree)
	require.NoError(t, err)
	require.Equal(t, "ok", first.Message.Text)

	_, err = decode.Into[Update](dec, raws[1].Tree)
	require.Error(t, err)
}

func TestRawUpdateRequiresID(t *testing.T) {
	_, err := RawUpdateFromWire(map[string]any{"message": map[string]any{}})
	require.True(t, wireerr.Is(err, wireerr.MissingField))

	_, err = RawUpdateFromWire(map[string]any{"update_id": "10"})
	require.True(t, wireerr.Is(err, wireerr.TypeMismatch))

	_, err = RawUpdateFromWire([]any{})
	require.True(t, wireerr.Is(err, wireerr.TypeMismatch))
}
