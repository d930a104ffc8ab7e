// Package types declares the Telegram Bot API objects the engine decodes and
// encodes, and registers them into a schema builder.
package types

import (
	"strings"

	"tgwire/pkg/value"
)

// User is a Telegram user or bot.
type User struct {
	ID                      value.UserID `wire:"id"`
	IsBot                   bool         `wire:"is_bot"`
	FirstName               string       `wire:"first_name"`
	LastName                string       `wire:"last_name,optional"`
	Username                string       `wire:"username,optional"`
	LanguageCode            string       `wire:"language_code,optional"`
	IsPremium               bool         `wire:"is_premium,optional"`
	CanJoinGroups           bool         `wire:"can_join_groups,optional"`
	CanReadAllGroupMessages bool         `wire:"can_read_all_group_messages,optional"`
	SupportsInlineQueries   bool         `wire:"supports_inline_queries,optional"`
}

// FullName joins first and last name.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Chat is a private chat, group, supergroup or channel.
type Chat struct {
	ID        value.ChatID   `wire:"id"`
	Type      value.ChatType `wire:"type"`
	Title     string         `wire:"title,optional"`
	Username  string         `wire:"username,optional"`
	FirstName string         `wire:"first_name,optional"`
	LastName  string         `wire:"last_name,optional"`
	IsForum   bool           `wire:"is_forum,optional"`
}
