package types

import "tgwire/pkg/value"

// PhotoSize is one size of a photo or thumbnail.
type PhotoSize struct {
	FileID       value.FileID `wire:"file_id"`
	FileUniqueID string       `wire:"file_unique_id"`
	Width        int64        `wire:"width"`
	Height       int64        `wire:"height"`
	FileSize     int64        `wire:"file_size,optional"`
}

type Audio struct {
	FileID       value.FileID `wire:"file_id"`
	FileUniqueID string       `wire:"file_unique_id"`
	Duration     int64        `wire:"duration"`
	Performer    string       `wire:"performer,optional"`
	Title        string       `wire:"title,optional"`
	FileName     string       `wire:"file_name,optional"`
	MimeType     string       `wire:"mime_type,optional"`
	FileSize     int64        `wire:"file_size,optional"`
	Thumbnail    *PhotoSize   `wire:"thumbnail,optional"`
}

type Document struct {
	FileID       value.FileID `wire:"file_id"`
	FileUniqueID string       `wire:"file_unique_id"`
	Thumbnail    *PhotoSize   `wire:"thumbnail,optional"`
	FileName     string       `wire:"file_name,optional"`
	MimeType     string       `wire:"mime_type,optional"`
	FileSize     int64        `wire:"file_size,optional"`
}

// Animation is a GIF or H.264/MPEG-4 AVC video without sound.
type Animation struct {
	FileID       value.FileID `wire:"file_id"`
	FileUniqueID string       `wire:"file_unique_id"`
	Width        int64        `wire:"width"`
	Height       int64        `wire:"height"`
	Duration     int64        `wire:"duration"`
	Thumbnail    *PhotoSize   `wire:"thumbnail,optional"`
	FileName     string       `wire:"file_name,optional"`
	MimeType     string       `wire:"mime_type,optional"`
	FileSize     int64        `wire:"file_size,optional"`
}

type Video struct {
	FileID       value.FileID `wire:"file_id"`
	FileUniqueID string       `wire:"file_unique_id"`
	Width        int64        `wire:"width"`
	Height       int64        `wire:"height"`
	Duration     int64        `wire:"duration"`
	Thumbnail    *PhotoSize   `wire:"thumbnail,optional"`
	FileName     string       `wire:"file_name,optional"`
	MimeType     string       `wire:"mime_type,optional"`
	FileSize     int64        `wire:"file_size,optional"`
}

type Voice struct {
	FileID       value.FileID `wire:"file_id"`
	FileUniqueID string       `wire:"file_unique_id"`
	Duration     int64        `wire:"duration"`
	MimeType     string       `wire:"mime_type,optional"`
	FileSize     int64        `wire:"file_size,optional"`
}

// VideoNote is a round video message.
type VideoNote struct {
	FileID       value.FileID `wire:"file_id"`
	FileUniqueID string       `wire:"file_unique_id"`
	Length       int64        `wire:"length"`
	Duration     int64        `wire:"duration"`
	Thumbnail    *PhotoSize   `wire:"thumbnail,optional"`
	FileSize     int64        `wire:"file_size,optional"`
}

type Sticker struct {
	FileID       value.FileID `wire:"file_id"`
	FileUniqueID string       `wire:"file_unique_id"`
	Type         string       `wire:"type"`
	Width        int64        `wire:"width"`
	Height       int64        `wire:"height"`
	IsAnimated   bool         `wire:"is_animated"`
	IsVideo      bool         `wire:"is_video"`
	Thumbnail    *PhotoSize   `wire:"thumbnail,optional"`
	Emoji        string       `wire:"emoji,optional"`
	SetName      string       `wire:"set_name,optional"`
	FileSize     int64        `wire:"file_size,optional"`
}

type Contact struct {
	PhoneNumber string       `wire:"phone_number"`
	FirstName   string       `wire:"first_name"`
	LastName    string       `wire:"last_name,optional"`
	UserID      value.UserID `wire:"user_id,optional"`
	VCard       string       `wire:"vcard,optional"`
}

type Location struct {
	Longitude          float64 `wire:"longitude"`
	Latitude           float64 `wire:"latitude"`
	HorizontalAccuracy float64 `wire:"horizontal_accuracy,optional"`
	LivePeriod         int64   `wire:"live_period,optional"`
	Heading            int64   `wire:"heading,optional"`
}

type Venue struct {
	Location       Location `wire:"location"`
	Title          string   `wire:"title"`
	Address        string   `wire:"address"`
	FoursquareID   string   `wire:"foursquare_id,optional"`
	FoursquareType string   `wire:"foursquare_type,optional"`
	GooglePlaceID  string   `wire:"google_place_id,optional"`
}

// Poll is a native poll. CorrectOptionID is a pointer because option 0 is a
// valid answer.
type Poll struct {
	ID                    string         `wire:"id"`
	Question              string         `wire:"question"`
	Options               []PollOption   `wire:"options"`
	TotalVoterCount       int64          `wire:"total_voter_count"`
	IsClosed              bool           `wire:"is_closed"`
	IsAnonymous           bool           `wire:"is_anonymous"`
	Type                  value.PollType `wire:"type"`
	AllowsMultipleAnswers bool           `wire:"allows_multiple_answers"`
	CorrectOptionID       *int64         `wire:"correct_option_id,optional"`
	Explanation           string         `wire:"explanation,optional"`
	CloseDate             value.UnixTime `wire:"close_date,optional"`
}

type PollOption struct {
	Text       string `wire:"text"`
	VoterCount int64  `wire:"voter_count"`
}

type Invoice struct {
	Title          string `wire:"title"`
	Description    string `wire:"description"`
	StartParameter string `wire:"start_parameter"`
	Currency       string `wire:"currency"`
	TotalAmount    int64  `wire:"total_amount"`
}

type SuccessfulPayment struct {
	Currency                string     `wire:"currency"`
	TotalAmount             int64      `wire:"total_amount"`
	InvoicePayload          string     `wire:"invoice_payload"`
	ShippingOptionID        string     `wire:"shipping_option_id,optional"`
	OrderInfo               *OrderInfo `wire:"order_info,optional"`
	TelegramPaymentChargeID string     `wire:"telegram_payment_charge_id"`
	ProviderPaymentChargeID string     `wire:"provider_payment_charge_id"`
}

type OrderInfo struct {
	Name            string           `wire:"name,optional"`
	PhoneNumber     string           `wire:"phone_number,optional"`
	Email           string           `wire:"email,optional"`
	ShippingAddress *ShippingAddress `wire:"shipping_address,optional"`
}

type ShippingAddress struct {
	CountryCode string `wire:"country_code"`
	State       string `wire:"state"`
	City        string `wire:"city"`
	StreetLine1 string `wire:"street_line1"`
	StreetLine2 string `wire:"street_line2"`
	PostCode    string `wire:"post_code"`
}
