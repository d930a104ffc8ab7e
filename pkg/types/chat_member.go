package types

import (
	"tgwire/pkg/schema"
	"tgwire/pkg/value"
)

// ChatMember describes a user's standing in a chat, tagged by "status".
type ChatMember interface {
	schema.Variant
	isChatMember()
}

type ChatMemberOwner struct {
	User        User   `wire:"user"`
	IsAnonymous bool   `wire:"is_anonymous"`
	CustomTitle string `wire:"custom_title,optional"`
}

func (ChatMemberOwner) WireVariant() string { return "creator" }
func (ChatMemberOwner) isChatMember()       {}

type ChatMemberAdministrator struct {
	User                User   `wire:"user"`
	CanBeEdited         bool   `wire:"can_be_edited"`
	IsAnonymous         bool   `wire:"is_anonymous"`
	CanManageChat       bool   `wire:"can_manage_chat"`
	CanDeleteMessages   bool   `wire:"can_delete_messages"`
	CanManageVideoChats bool   `wire:"can_manage_video_chats"`
	CanRestrictMembers  bool   `wire:"can_restrict_members"`
	CanPromoteMembers   bool   `wire:"can_promote_members"`
	CanChangeInfo       bool   `wire:"can_change_info"`
	CanInviteUsers      bool   `wire:"can_invite_users"`
	CanPostMessages     bool   `wire:"can_post_messages,optional"`
	CanEditMessages     bool   `wire:"can_edit_messages,optional"`
	CanPinMessages      bool   `wire:"can_pin_messages,optional"`
	CustomTitle         string `wire:"custom_title,optional"`
}

func (ChatMemberAdministrator) WireVariant() string { return "administrator" }
func (ChatMemberAdministrator) isChatMember()       {}

type ChatMemberMember struct {
	User      User           `wire:"user"`
	UntilDate value.UnixTime `wire:"until_date,optional"`
}

func (ChatMemberMember) WireVariant() string { return "member" }
func (ChatMemberMember) isChatMember()       {}

type ChatMemberRestricted struct {
	User                  User           `wire:"user"`
	IsMember              bool           `wire:"is_member"`
	CanSendMessages       bool           `wire:"can_send_messages"`
	CanSendPolls          bool           `wire:"can_send_polls"`
	CanSendOtherMessages  bool           `wire:"can_send_other_messages"`
	CanAddWebPagePreviews bool           `wire:"can_add_web_page_previews"`
	CanChangeInfo         bool           `wire:"can_change_info"`
	CanInviteUsers        bool           `wire:"can_invite_users"`
	CanPinMessages        bool           `wire:"can_pin_messages"`
	UntilDate             value.UnixTime `wire:"until_date"`
}

func (ChatMemberRestricted) WireVariant() string { return "restricted" }
func (ChatMemberRestricted) isChatMember()       {}

type ChatMemberLeft struct {
	User User `wire:"user"`
}

func (ChatMemberLeft) WireVariant() string { return "left" }
func (ChatMemberLeft) isChatMember()       {}

type ChatMemberBanned struct {
	User      User           `wire:"user"`
	UntilDate value.UnixTime `wire:"until_date"`
}

func (ChatMemberBanned) WireVariant() string { return "kicked" }
func (ChatMemberBanned) isChatMember()       {}

// MemberUser returns the user a chat member entry describes.
func MemberUser(m ChatMember) User {
	switch m := m.(type) {
	case ChatMemberOwner:
		return m.User
	case ChatMemberAdministrator:
		return m.User
	case ChatMemberMember:
		return m.User
	case ChatMemberRestricted:
		return m.User
	case ChatMemberLeft:
		return m.User
	case ChatMemberBanned:
		return m.User
	default:
		return User{}
	}
}

// IsPresent reports whether the member currently belongs to the chat.
func IsPresent(m ChatMember) bool {
	switch m := m.(type) {
	case ChatMemberOwner, ChatMemberAdministrator, ChatMemberMember:
		return true
	case ChatMemberRestricted:
		return m.IsMember
	default:
		return false
	}
}

// ChatMemberUpdated reports a change of a member's status.
type ChatMemberUpdated struct {
	Chat          Chat           `wire:"chat"`
	From          User           `wire:"from"`
	Date          value.UnixTime `wire:"date"`
	OldChatMember ChatMember     `wire:"old_chat_member"`
	NewChatMember ChatMember     `wire:"new_chat_member"`
}
