package core

import "time"

const (
	ButlerName    = "Butler"
	ButlerVersion = "0.1.0"
)

const (
	// PrivateChatName stands in for the source chat of a forward that carries no chat context.
	PrivateChatName = "Private Chat"
	// UnknownUsername stands in for a forwarded sender whose handle is hidden.
	UnknownUsername = "N/A"

	DateLayout = time.DateOnly
)

// UserID is the chat platform's identity of the person logging interactions.
type UserID int64

// Interaction is a single logged contact. Every field is plain text and a
// committed record always has all of them set, possibly to "".
type Interaction struct {
	Date         string `json:"date"`
	ChatName     string `json:"chat_name"`
	Username     string `json:"username"`
	Description  string `json:"description"`
	Company      string `json:"company"`
	MeetingPlace string `json:"meeting_place"`
	Priority     string `json:"priority"`
}
