package types

import (
	"strings"
	"unicode/utf16"

	"tgwire/pkg/value"
)

// Message is a message of any kind. Each optional field is one possible
// shape of the message; the platform populates a sparse subset of them.
type Message struct {
	MessageID            value.MessageID `wire:"message_id"`
	From                 *User           `wire:"from,optional"`
	SenderChat           *Chat           `wire:"sender_chat,optional"`
	Date                 value.UnixTime  `wire:"date"`
	Chat                 Chat            `wire:"chat"`
	ForwardFrom          *User           `wire:"forward_from,optional"`
	ForwardFromChat      *Chat           `wire:"forward_from_chat,optional"`
	ForwardFromMessageID value.MessageID `wire:"forward_from_message_id,optional"`
	ForwardSignature     string          `wire:"forward_signature,optional"`
	ForwardSenderName    string          `wire:"forward_sender_name,optional"`
	ForwardDate          value.UnixTime  `wire:"forward_date,optional"`
	ReplyToMessage       *Message        `wire:"reply_to_message,optional"`
	ViaBot               *User           `wire:"via_bot,optional"`
	EditDate             value.UnixTime  `wire:"edit_date,optional"`
	MediaGroupID         string          `wire:"media_group_id,optional"`
	AuthorSignature      string          `wire:"author_signature,optional"`

	Text            string          `wire:"text,optional"`
	Entities        []MessageEntity `wire:"entities,optional"`
	Caption         string          `wire:"caption,optional"`
	CaptionEntities []MessageEntity `wire:"caption_entities,optional"`

	Audio     *Audio      `wire:"audio,optional"`
	Document  *Document   `wire:"document,optional"`
	Animation *Animation  `wire:"animation,optional"`
	Photo     []PhotoSize `wire:"photo,optional"`
	Sticker   *Sticker    `wire:"sticker,optional"`
	Video     *Video      `wire:"video,optional"`
	Voice     *Voice      `wire:"voice,optional"`
	VideoNote *VideoNote  `wire:"video_note,optional"`
	Contact   *Contact    `wire:"contact,optional"`
	Location  *Location   `wire:"location,optional"`
	Venue     *Venue      `wire:"venue,optional"`
	Poll      *Poll       `wire:"poll,optional"`

	NewChatMembers        []User       `wire:"new_chat_members,optional"`
	LeftChatMember        *User        `wire:"left_chat_member,optional"`
	NewChatTitle          string       `wire:"new_chat_title,optional"`
	NewChatPhoto          []PhotoSize  `wire:"new_chat_photo,optional"`
	DeleteChatPhoto       bool         `wire:"delete_chat_photo,optional"`
	GroupChatCreated      bool         `wire:"group_chat_created,optional"`
	SupergroupChatCreated bool         `wire:"supergroup_chat_created,optional"`
	ChannelChatCreated    bool         `wire:"channel_chat_created,optional"`
	MigrateToChatID       value.ChatID `wire:"migrate_to_chat_id,optional"`
	MigrateFromChatID     value.ChatID `wire:"migrate_from_chat_id,optional"`
	PinnedMessage         *Message     `wire:"pinned_message,optional"`

	Invoice           *Invoice           `wire:"invoice,optional"`
	SuccessfulPayment *SuccessfulPayment `wire:"successful_payment,optional"`
	ConnectedWebsite  string             `wire:"connected_website,optional"`

	ReplyMarkup *InlineKeyboardMarkup `wire:"reply_markup,optional"`
}

// IsCommand reports whether any text entity is a bot command.
func (m Message) IsCommand() bool {
	for _, e := range m.Entities {
		if e.Type == value.EntityBotCommand {
			return true
		}
	}

	return false
}

// Command splits a message starting with a bot command into the command name
// (without the leading slash and @botname suffix) and the remaining text.
func (m Message) Command() (name string, args string, ok bool) {
	for _, e := range m.Entities {
		if e.Type != value.EntityBotCommand || e.Offset != 0 {
			continue
		}

		cmd := EntityText(m.Text, e)
		cmd = strings.TrimPrefix(cmd, "/")
		if at := strings.IndexByte(cmd, '@'); at >= 0 {
			cmd = cmd[:at]
		}
		rest := sliceUTF16(m.Text, e.Offset+e.Length, -1)

		return cmd, strings.TrimSpace(rest), true
	}

	return "", "", false
}

// MessageEntity marks a span of message text. Offset and Length count UTF-16
// code units.
type MessageEntity struct {
	Type          value.EntityType `wire:"type"`
	Offset        int64            `wire:"offset"`
	Length        int64            `wire:"length"`
	URL           string           `wire:"url,optional"`
	User          *User            `wire:"user,optional"`
	Language      string           `wire:"language,optional"`
	CustomEmojiID string           `wire:"custom_emoji_id,optional"`
}

// EntityText returns the part of text covered by e.
func EntityText(text string, e MessageEntity) string {
	return sliceUTF16(text, e.Offset, e.Offset+e.Length)
}

// sliceUTF16 slices text by UTF-16 code unit positions; end < 0 means to the end.
func sliceUTF16(text string, start, end int64) string {
	units := utf16.Encode([]rune(text))
	n := int64(len(units))
	if end < 0 || end > n {
		end = n
	}
	if start < 0 {
		start = 0
	}
	if start >= end {
		return ""
	}

	return string(utf16.Decode(units[start:end]))
}
