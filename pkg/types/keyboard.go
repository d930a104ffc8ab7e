package types

import "tgwire/pkg/schema"

// ReplyMarkup is attached to outgoing messages. Variants carry no type tag on
// the wire; the first marker key present selects one.
type ReplyMarkup interface {
	schema.Variant
	isReplyMarkup()
}

type InlineKeyboardMarkup struct {
	InlineKeyboard [][]InlineKeyboardButton `wire:"inline_keyboard"`
}

func (InlineKeyboardMarkup) WireVariant() string { return "inline_keyboard" }
func (InlineKeyboardMarkup) isReplyMarkup()      {}

type InlineKeyboardButton struct {
	Text                         string `wire:"text"`
	URL                          string `wire:"url,optional"`
	CallbackData                 string `wire:"callback_data,optional"`
	SwitchInlineQuery            string `wire:"switch_inline_query,optional"`
	SwitchInlineQueryCurrentChat string `wire:"switch_inline_query_current_chat,optional"`
	Pay                          bool   `wire:"pay,optional"`
}

// InlineKeyboard builds a markup from button rows.
func InlineKeyboard(rows ...[]InlineKeyboardButton) InlineKeyboardMarkup {
	return InlineKeyboardMarkup{InlineKeyboard: rows}
}

// CallbackButton is a button that sends data back to the bot.
func CallbackButton(text, data string) InlineKeyboardButton {
	return InlineKeyboardButton{Text: text, CallbackData: data}
}

type ReplyKeyboardMarkup struct {
	Keyboard              [][]KeyboardButton `wire:"keyboard"`
	IsPersistent          bool               `wire:"is_persistent,optional"`
	ResizeKeyboard        bool               `wire:"resize_keyboard,optional"`
	OneTimeKeyboard       bool               `wire:"one_time_keyboard,optional"`
	InputFieldPlaceholder string             `wire:"input_field_placeholder,optional"`
	Selective             bool               `wire:"selective,optional"`
}

func (ReplyKeyboardMarkup) WireVariant() string { return "keyboard" }
func (ReplyKeyboardMarkup) isReplyMarkup()      {}

type KeyboardButton struct {
	Text            string `wire:"text"`
	RequestContact  bool   `wire:"request_contact,optional"`
	RequestLocation bool   `wire:"request_location,optional"`
}

// ReplyKeyboardRemove hides the custom keyboard. RemoveKeyboard must be true;
// use RemoveKeyboard to build one.
type ReplyKeyboardRemove struct {
	RemoveKeyboard bool `wire:"remove_keyboard"`
	Selective      bool `wire:"selective,optional"`
}

func (ReplyKeyboardRemove) WireVariant() string { return "remove_keyboard" }
func (ReplyKeyboardRemove) isReplyMarkup()      {}

func RemoveKeyboard(selective bool) ReplyKeyboardRemove {
	return ReplyKeyboardRemove{RemoveKeyboard: true, Selective: selective}
}

type ForceReply struct {
	ForceReply            bool   `wire:"force_reply"`
	InputFieldPlaceholder string `wire:"input_field_placeholder,optional"`
	Selective             bool   `wire:"selective,optional"`
}

func (ForceReply) WireVariant() string { return "force_reply" }
func (ForceReply) isReplyMarkup()      {}
