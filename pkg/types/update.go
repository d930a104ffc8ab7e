package types

import (
	"tgwire/pkg/value"
	"tgwire/pkg/wireerr"
)

// UpdateKind names the populated slot of an Update.
type UpdateKind string

const (
	UpdateKindNone               UpdateKind = ""
	UpdateKindMessage            UpdateKind = "message"
	UpdateKindEditedMessage      UpdateKind = "edited_message"
	UpdateKindChannelPost        UpdateKind = "channel_post"
	UpdateKindEditedChannelPost  UpdateKind = "edited_channel_post"
	UpdateKindInlineQuery        UpdateKind = "inline_query"
	UpdateKindChosenInlineResult UpdateKind = "chosen_inline_result"
	UpdateKindCallbackQuery      UpdateKind = "callback_query"
	UpdateKindShippingQuery      UpdateKind = "shipping_query"
	UpdateKindPreCheckoutQuery   UpdateKind = "pre_checkout_query"
	UpdateKindPoll               UpdateKind = "poll"
	UpdateKindMyChatMember       UpdateKind = "my_chat_member"
	UpdateKindChatMember         UpdateKind = "chat_member"
)

// Update is one incoming event. At most one of the optional slots is
// populated by the platform.
type Update struct {
	UpdateID           value.UpdateID      `wire:"update_id"`
	Message            *Message            `wire:"message,optional"`
	EditedMessage      *Message            `wire:"edited_message,optional"`
	ChannelPost        *Message            `wire:"channel_post,optional"`
	EditedChannelPost  *Message            `wire:"edited_channel_post,optional"`
	InlineQuery        *InlineQuery        `wire:"inline_query,optional"`
	ChosenInlineResult *ChosenInlineResult `wire:"chosen_inline_result,optional"`
	CallbackQuery      *CallbackQuery      `wire:"callback_query,optional"`
	ShippingQuery      *ShippingQuery      `wire:"shipping_query,optional"`
	PreCheckoutQuery   *PreCheckoutQuery   `wire:"pre_checkout_query,optional"`
	Poll               *Poll               `wire:"poll,optional"`
	MyChatMember       *ChatMemberUpdated  `wire:"my_chat_member,optional"`
	ChatMember         *ChatMemberUpdated  `wire:"chat_member,optional"`
}

// Kind reports the first populated slot in declaration order, or
// UpdateKindNone when the update carries nothing this schema knows.
func (u Update) Kind() UpdateKind {
	switch {
	case u.Message != nil:
		return UpdateKindMessage
	case u.EditedMessage != nil:
		return UpdateKindEditedMessage
	case u.ChannelPost != nil:
		return UpdateKindChannelPost
	case u.EditedChannelPost != nil:
		return UpdateKindEditedChannelPost
	case u.InlineQuery != nil:
		return UpdateKindInlineQuery
	case u.ChosenInlineResult != nil:
		return UpdateKindChosenInlineResult
	case u.CallbackQuery != nil:
		return UpdateKindCallbackQuery
	case u.ShippingQuery != nil:
		return UpdateKindShippingQuery
	case u.PreCheckoutQuery != nil:
		return UpdateKindPreCheckoutQuery
	case u.Poll != nil:
		return UpdateKindPoll
	case u.MyChatMember != nil:
		return UpdateKindMyChatMember
	case u.ChatMember != nil:
		return UpdateKindChatMember
	default:
		return UpdateKindNone
	}
}

// AnyMessage returns whichever message slot is populated.
func (u Update) AnyMessage() *Message {
	switch {
	case u.Message != nil:
		return u.Message
	case u.EditedMessage != nil:
		return u.EditedMessage
	case u.ChannelPost != nil:
		return u.ChannelPost
	case u.EditedChannelPost != nil:
		return u.EditedChannelPost
	case u.CallbackQuery != nil:
		return u.CallbackQuery.Message
	default:
		return nil
	}
}

// Sender returns the user who caused the update, if known.
func (u Update) Sender() *User {
	if msg := u.AnyMessage(); msg != nil && u.CallbackQuery == nil {
		return msg.From
	}

	switch {
	case u.InlineQuery != nil:
		return &u.InlineQuery.From
	case u.ChosenInlineResult != nil:
		return &u.ChosenInlineResult.From
	case u.CallbackQuery != nil:
		return &u.CallbackQuery.From
	case u.ShippingQuery != nil:
		return &u.ShippingQuery.From
	case u.PreCheckoutQuery != nil:
		return &u.PreCheckoutQuery.From
	case u.MyChatMember != nil:
		return &u.MyChatMember.From
	case u.ChatMember != nil:
		return &u.ChatMember.From
	default:
		return nil
	}
}

type InlineQuery struct {
	ID       string    `wire:"id"`
	From     User      `wire:"from"`
	Query    string    `wire:"query"`
	Offset   string    `wire:"offset"`
	ChatType string    `wire:"chat_type,optional"`
	Location *Location `wire:"location,optional"`
}

// ChosenInlineResult is an inline result the user picked and sent.
type ChosenInlineResult struct {
	ResultID        string    `wire:"result_id"`
	From            User      `wire:"from"`
	Location        *Location `wire:"location,optional"`
	InlineMessageID string    `wire:"inline_message_id,optional"`
	Query           string    `wire:"query"`
}

// CallbackQuery is a press on an inline keyboard button.
type CallbackQuery struct {
	ID              string   `wire:"id"`
	From            User     `wire:"from"`
	Message         *Message `wire:"message,optional"`
	InlineMessageID string   `wire:"inline_message_id,optional"`
	ChatInstance    string   `wire:"chat_instance"`
	Data            string   `wire:"data,optional"`
	GameShortName   string   `wire:"game_short_name,optional"`
}

type ShippingQuery struct {
	ID              string          `wire:"id"`
	From            User            `wire:"from"`
	InvoicePayload  string          `wire:"invoice_payload"`
	ShippingAddress ShippingAddress `wire:"shipping_address"`
}

type PreCheckoutQuery struct {
	ID               string     `wire:"id"`
	From             User       `wire:"from"`
	Currency         string     `wire:"currency"`
	TotalAmount      int64      `wire:"total_amount"`
	InvoicePayload   string     `wire:"invoice_payload"`
	ShippingOptionID string     `wire:"shipping_option_id,optional"`
	OrderInfo        *OrderInfo `wire:"order_info,optional"`
}

// RawUpdate is one getUpdates element whose id has been read but whose body
// is still the generic tree. Decoding the body separately keeps one update
// the schema cannot represent from failing the whole batch.
type RawUpdate struct {
	ID   value.UpdateID
	Tree map[string]any
}

// RawUpdateFromWire reads the update_id of a getUpdates element.
func RawUpdateFromWire(raw any) (RawUpdate, error) {
	tree, ok := raw.(map[string]any)
	if !ok {
		return RawUpdate{}, wireerr.Newf(wireerr.TypeMismatch, "expected object for update, got %s", value.KindOf(raw))
	}

	idRaw, ok := tree["update_id"]
	if !ok || idRaw == nil {
		return RawUpdate{}, wireerr.Missing("update_id")
	}

	id, err := value.UpdateIDFromWire(idRaw)
	if err != nil {
		return RawUpdate{}, wireerr.At(err, "update_id")
	}

	return RawUpdate{ID: id, Tree: tree}, nil
}

func (r RawUpdate) Wire() any { return r.Tree }
