package core

import (
	"context"
	"time"
)

// ForwardOrigin describes where a forwarded message came from.
type ForwardOrigin struct {
	Time time.Time
	// FromChat is false for forwards that carry no source chat (private messages).
	FromChat  bool
	ChatTitle string
	// Username is empty when the original sender hides their account.
	Username string
}

// Event is an inbound message as seen by the dispatcher, independent of the transport.
type Event struct {
	User       UserID
	Text       string
	Forward    *ForwardOrigin
	ReceivedAt time.Time
}

type receivedAtKey struct{}

// WithReceivedAt carries the event's receipt time to the commands it triggers.
func WithReceivedAt(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, receivedAtKey{}, t)
}

// ReceivedAt is the zero time when ctx carries no receipt time.
func ReceivedAt(ctx context.Context) time.Time {
	t, _ := ctx.Value(receivedAtKey{}).(time.Time)
	return t
}

type Format int

const (
	FormatPlain Format = iota
	FormatHTML
	// FormatPre is fixed-width text that must be shown verbatim.
	FormatPre
)

type Document struct {
	Name string
	MIME string
	Data []byte
}

// Response is one outbound action: a text reply, a document, or both.
type Response struct {
	Text     string
	Format   Format
	Document *Document
}

func TextResponse(text string) Response {
	return Response{Text: text, Format: FormatPlain}
}

func HTMLResponse(html string) Response {
	return Response{Text: html, Format: FormatHTML}
}
