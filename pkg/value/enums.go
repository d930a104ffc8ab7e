package value

// ChatType is the kind of a chat.
type ChatType string

const (
	ChatTypePrivate    ChatType = "private"
	ChatTypeGroup      ChatType = "group"
	ChatTypeSupergroup ChatType = "supergroup"
	ChatTypeChannel    ChatType = "channel"
)

var chatTypes = enumSet(ChatTypePrivate, ChatTypeGroup, ChatTypeSupergroup, ChatTypeChannel)

func ChatTypeFromWire(raw any) (ChatType, error) { return enumFromWire(raw, "chat type", chatTypes) }

func (c ChatType) Wire() any { return string(c) }

// ParseMode selects the markup used to format message text.
type ParseMode string

const (
	ParseModeMarkdown   ParseMode = "Markdown"
	ParseModeMarkdownV2 ParseMode = "MarkdownV2"
	ParseModeHTML       ParseMode = "HTML"
)

var parseModes = enumSet(ParseModeMarkdown, ParseModeMarkdownV2, ParseModeHTML)

func ParseModeFromWire(raw any) (ParseMode, error) {
	return enumFromWire(raw, "parse mode", parseModes)
}

func (p ParseMode) Wire() any { return string(p) }

// EntityType is the kind of a special entity inside message text.
type EntityType string

const (
	EntityMention       EntityType = "mention"
	EntityHashtag       EntityType = "hashtag"
	EntityCashtag       EntityType = "cashtag"
	EntityBotCommand    EntityType = "bot_command"
	EntityURL           EntityType = "url"
	EntityEmail         EntityType = "email"
	EntityPhoneNumber   EntityType = "phone_number"
	EntityBold          EntityType = "bold"
	EntityItalic        EntityType = "italic"
	EntityUnderline     EntityType = "underline"
	EntityStrikethrough EntityType = "strikethrough"
	EntitySpoiler       EntityType = "spoiler"
	EntityBlockquote    EntityType = "blockquote"
	EntityCode          EntityType = "code"
	EntityPre           EntityType = "pre"
	EntityTextLink      EntityType = "text_link"
	EntityTextMention   EntityType = "text_mention"
	EntityCustomEmoji   EntityType = "custom_emoji"
)

var entityTypes = enumSet(
	EntityMention, EntityHashtag, EntityCashtag, EntityBotCommand, EntityURL, EntityEmail,
	EntityPhoneNumber, EntityBold, EntityItalic, EntityUnderline, EntityStrikethrough, EntitySpoiler,
	EntityBlockquote, EntityCode, EntityPre, EntityTextLink, EntityTextMention, EntityCustomEmoji,
)

func EntityTypeFromWire(raw any) (EntityType, error) {
	return enumFromWire(raw, "entity type", entityTypes)
}

func (e EntityType) Wire() any { return string(e) }

// ChatAction is the activity broadcast with sendChatAction.
type ChatAction string

const (
	ActionTyping          ChatAction = "typing"
	ActionUploadPhoto     ChatAction = "upload_photo"
	ActionRecordVideo     ChatAction = "record_video"
	ActionUploadVideo     ChatAction = "upload_video"
	ActionRecordVoice     ChatAction = "record_voice"
	ActionUploadVoice     ChatAction = "upload_voice"
	ActionUploadDocument  ChatAction = "upload_document"
	ActionChooseSticker   ChatAction = "choose_sticker"
	ActionFindLocation    ChatAction = "find_location"
	ActionRecordVideoNote ChatAction = "record_video_note"
	ActionUploadVideoNote ChatAction = "upload_video_note"
)

var chatActions = enumSet(
	ActionTyping, ActionUploadPhoto, ActionRecordVideo, ActionUploadVideo, ActionRecordVoice,
	ActionUploadVoice, ActionUploadDocument, ActionChooseSticker, ActionFindLocation,
	ActionRecordVideoNote, ActionUploadVideoNote,
)

func ChatActionFromWire(raw any) (ChatAction, error) {
	return enumFromWire(raw, "chat action", chatActions)
}

func (c ChatAction) Wire() any { return string(c) }

// PollType distinguishes regular polls from quizzes.
type PollType string

const (
	PollRegular PollType = "regular"
	PollQuiz    PollType = "quiz"
)

var pollTypes = enumSet(PollRegular, PollQuiz)

func PollTypeFromWire(raw any) (PollType, error) { return enumFromWire(raw, "poll type", pollTypes) }

func (p PollType) Wire() any { return string(p) }

func enumSet[T ~string](values ...T) map[T]struct{} {
	set := make(map[T]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}

	return set
}

func enumFromWire[T ~string](raw any, name string, known map[T]struct{}) (T, error) {
	s, err := String(raw)
	if err != nil {
		return "", err
	}
	if _, ok := known[T(s)]; !ok {
		return "", invalid("unknown %s %q", name, s)
	}

	return T(s), nil
}
