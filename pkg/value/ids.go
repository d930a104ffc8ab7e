package value

import (
	"strconv"
	"strings"
	"time"
)

// ChatID identifies a chat either by numeric id or by @username.
type ChatID struct {
	id       int64
	username string
}

// NewChatID wraps a numeric chat id. Zero is not a valid chat.
func NewChatID(id int64) (ChatID, error) {
	if id == 0 {
		return ChatID{}, invalid("chat id must be non-zero")
	}

	return ChatID{id: id}, nil
}

// ChatUsername wraps a public chat username in the @name format.
func ChatUsername(username string) (ChatID, error) {
	username = strings.TrimSpace(username)
	if len(username) < 2 || !strings.HasPrefix(username, "@") {
		return ChatID{}, invalid("chat username %q must be in the @name format", username)
	}

	return ChatID{username: username}, nil
}

// ParseChatID reads user input: a decimal id or an @username.
func ParseChatID(input string) (ChatID, error) {
	input = strings.TrimSpace(input)
	if strings.HasPrefix(input, "@") {
		return ChatUsername(input)
	}

	id, err := strconv.ParseInt(input, 10, 64)
	if err != nil {
		return ChatID{}, invalid("chat id %q is neither an integer nor an @username", input)
	}

	return NewChatID(id)
}

// ChatIDFromWire builds a ChatID from a JSON integer or @username string.
func ChatIDFromWire(raw any) (ChatID, error) {
	if s, ok := raw.(string); ok {
		return ChatUsername(s)
	}

	id, err := Int(raw)
	if err != nil {
		return ChatID{}, err
	}

	return NewChatID(id)
}

// Int64 returns the numeric id and whether the chat is addressed by id.
func (c ChatID) Int64() (int64, bool) {
	return c.id, c.username == ""
}

// IsZero reports whether the id is unset.
func (c ChatID) IsZero() bool {
	return c.id == 0 && c.username == ""
}

func (c ChatID) String() string {
	if c.username != "" {
		return c.username
	}

	return strconv.FormatInt(c.id, 10)
}

// Wire returns the integer id or the username string.
func (c ChatID) Wire() any {
	if c.username != "" {
		return c.username
	}

	return c.id
}

// UserID identifies a Telegram user or bot.
type UserID int64

// UserIDFromWire builds a UserID from a positive JSON integer.
func UserIDFromWire(raw any) (UserID, error) {
	id, err := Int(raw)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, invalid("user id must be positive, got %d", id)
	}

	return UserID(id), nil
}

func (u UserID) String() string { return strconv.FormatInt(int64(u), 10) }

func (u UserID) Wire() any { return int64(u) }

// ChatID returns the private chat id that matches this user.
func (u UserID) ChatID() ChatID { return ChatID{id: int64(u)} }

// MessageID identifies a message inside one chat.
type MessageID int64

// MessageIDFromWire builds a MessageID from a positive JSON integer.
func MessageIDFromWire(raw any) (MessageID, error) {
	id, err := Int(raw)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, invalid("message id must be positive, got %d", id)
	}

	return MessageID(id), nil
}

func (m MessageID) String() string { return strconv.FormatInt(int64(m), 10) }

func (m MessageID) Wire() any { return int64(m) }

// UpdateID is the sequential identifier of an incoming update.
type UpdateID int64

// UpdateIDFromWire builds an UpdateID from a non-negative JSON integer.
func UpdateIDFromWire(raw any) (UpdateID, error) {
	id, err := Int(raw)
	if err != nil {
		return 0, err
	}
	if id < 0 {
		return 0, invalid("update id must not be negative, got %d", id)
	}

	return UpdateID(id), nil
}

func (u UpdateID) String() string { return strconv.FormatInt(int64(u), 10) }

func (u UpdateID) Wire() any { return int64(u) }

// Next returns the offset that acknowledges this update.
func (u UpdateID) Next() int64 { return int64(u) + 1 }

// FileID references a file already stored on Telegram servers.
type FileID string

// FileIDFromWire builds a FileID from a non-empty JSON string.
func FileIDFromWire(raw any) (FileID, error) {
	s, err := String(raw)
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", invalid("file id must not be empty")
	}

	return FileID(s), nil
}

func (f FileID) String() string { return string(f) }

func (f FileID) Wire() any { return string(f) }

// UnixTime is a point in time in whole seconds since the epoch.
type UnixTime int64

// UnixTimeFromWire builds a UnixTime from a non-negative JSON integer.
func UnixTimeFromWire(raw any) (UnixTime, error) {
	seconds, err := Int(raw)
	if err != nil {
		return 0, err
	}
	if seconds < 0 {
		return 0, invalid("unix time must not be negative, got %d", seconds)
	}

	return UnixTime(seconds), nil
}

// Time converts to a UTC time.Time.
func (u UnixTime) Time() time.Time { return time.Unix(int64(u), 0).UTC() }

func (u UnixTime) String() string { return u.Time().Format(time.RFC3339) }

func (u UnixTime) Wire() any { return int64(u) }
