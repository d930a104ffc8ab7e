package types

import (
	"tgwire/pkg/schema"
	"tgwire/pkg/value"
)

// Register adds the value scalars, variant families and root objects of the
// Bot API to b.
func Register(b *schema.Builder) {
	schema.RegisterScalar(b, "chat_id", value.ChatIDFromWire, value.ChatID.Wire)
	schema.RegisterScalar(b, "user_id", value.UserIDFromWire, value.UserID.Wire)
	schema.RegisterScalar(b, "message_id", value.MessageIDFromWire, value.MessageID.Wire)
	schema.RegisterScalar(b, "update_id", value.UpdateIDFromWire, value.UpdateID.Wire)
	schema.RegisterScalar(b, "file_id", value.FileIDFromWire, value.FileID.Wire)
	schema.RegisterScalar(b, "unix_time", value.UnixTimeFromWire, value.UnixTime.Wire)
	schema.RegisterScalar(b, "input_file", value.InputFileFromWire, value.InputFile.Wire)
	schema.RegisterScalar(b, "chat_type", value.ChatTypeFromWire, value.ChatType.Wire)
	schema.RegisterScalar(b, "parse_mode", value.ParseModeFromWire, value.ParseMode.Wire)
	schema.RegisterScalar(b, "entity_type", value.EntityTypeFromWire, value.EntityType.Wire)
	schema.RegisterScalar(b, "chat_action", value.ChatActionFromWire, value.ChatAction.Wire)
	schema.RegisterScalar(b, "poll_type", value.PollTypeFromWire, value.PollType.Wire)
	schema.RegisterScalar(b, "raw_update", RawUpdateFromWire, RawUpdate.Wire)

	b.KeyedFamily("reply_markup", (*ReplyMarkup)(nil),
		InlineKeyboardMarkup{},
		ReplyKeyboardMarkup{},
		ReplyKeyboardRemove{},
		ForceReply{},
	)
	b.KeyedFamily("input_message_content", (*InputMessageContent)(nil),
		InputTextMessageContent{},
		InputContactMessageContent{},
		InputVenueMessageContent{},
		InputLocationMessageContent{},
	)
	b.Family("inline_query_result", (*InlineQueryResult)(nil), "type",
		InlineQueryResultArticle{},
		InlineQueryResultPhoto{},
		InlineQueryResultGif{},
		InlineQueryResultVideo{},
		InlineQueryResultDocument{},
		InlineQueryResultLocation{},
		InlineQueryResultContact{},
	)
	b.Family("input_media", (*InputMedia)(nil), "type",
		InputMediaPhoto{},
		InputMediaVideo{},
		InputMediaAnimation{},
		InputMediaAudio{},
		InputMediaDocument{},
	)
	b.Family("chat_member", (*ChatMember)(nil), "status",
		ChatMemberOwner{},
		ChatMemberAdministrator{},
		ChatMemberMember{},
		ChatMemberRestricted{},
		ChatMemberLeft{},
		ChatMemberBanned{},
	)

	b.Object(Update{}, Message{}, User{}, Chat{})
}

// NewTable builds a table holding only the Bot API types.
func NewTable() (*schema.Table, error) {
	b := schema.NewBuilder()
	Register(b)
	return b.Build()
}
