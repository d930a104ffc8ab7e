package method

import (
	"tgwire/pkg/types"
	"tgwire/pkg/value"
	"tgwire/pkg/wireerr"
)

type deleteChatPhotoParams struct {
	ChatID value.ChatID `wire:"chat_id"`
}

// DeleteChatPhoto removes the chat photo. The bot must be an administrator.
type DeleteChatPhoto struct {
	call[deleteChatPhotoParams, bool]
}

func NewDeleteChatPhoto(chat value.ChatID) (DeleteChatPhoto, error) {
	if err := requireChat(chat); err != nil {
		return DeleteChatPhoto{}, err
	}

	return DeleteChatPhoto{call[deleteChatPhotoParams, bool]{
		name:   "deleteChatPhoto",
		params: deleteChatPhotoParams{ChatID: chat},
	}}, nil
}

type setChatStickerSetParams struct {
	ChatID         value.ChatID `wire:"chat_id"`
	StickerSetName string       `wire:"sticker_set_name"`
}

// SetChatStickerSet sets the group sticker set of a supergroup.
type SetChatStickerSet struct {
	call[setChatStickerSetParams, bool]
}

func NewSetChatStickerSet(chat value.ChatID, name string) (SetChatStickerSet, error) {
	if err := requireChat(chat); err != nil {
		return SetChatStickerSet{}, err
	}
	if name == "" {
		return SetChatStickerSet{}, wireerr.At(precondition("sticker set name must be specified"), "sticker_set_name")
	}

	return SetChatStickerSet{call[setChatStickerSetParams, bool]{
		name:   "setChatStickerSet",
		params: setChatStickerSetParams{ChatID: chat, StickerSetName: name},
	}}, nil
}

type getChatMemberParams struct {
	ChatID value.ChatID `wire:"chat_id"`
	UserID value.UserID `wire:"user_id"`
}

// GetChatMember reports a user's membership status. The result is one of the
// ChatMember variants.
type GetChatMember struct {
	call[getChatMemberParams, types.ChatMember]
}

func NewGetChatMember(chat value.ChatID, user value.UserID) (GetChatMember, error) {
	if err := requireChat(chat); err != nil {
		return GetChatMember{}, err
	}
	if user <= 0 {
		return GetChatMember{}, wireerr.At(precondition("user id is required"), "user_id")
	}

	return GetChatMember{call[getChatMemberParams, types.ChatMember]{
		name:   "getChatMember",
		params: getChatMemberParams{ChatID: chat, UserID: user},
	}}, nil
}
