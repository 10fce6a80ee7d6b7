package display

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sandevgo/butler/internal/core"
)

const (
	textWidth     = 10
	priorityWidth = 2
)

type RecordReader interface {
	Get(ctx context.Context, user core.UserID) ([]core.Interaction, error)
}

type Renderer struct {
	store RecordReader
}

func NewRenderer(store RecordReader) *Renderer {
	return &Renderer{store: store}
}

// Render draws the user's records as a fixed-width grid, or returns
// core.ErrNoRecords.
func (r *Renderer) Render(ctx context.Context, user core.UserID) (string, error) {
	recs, err := r.store.Get(ctx, user)
	if err != nil {
		return "", fmt.Errorf("failed to read records: %w", err)
	}
	if len(recs) == 0 {
		return "", core.ErrNoRecords
	}
	return Table(recs), nil
}

// Table is the pure rendering step of Render.
func Table(recs []core.Interaction) string {
	header := row("date", "chat", "handle", "company", "place", "priority")
	divider := strings.Repeat("-", utf8.RuneCountInString(header))

	lines := make([]string, 0, len(recs)+4)
	lines = append(lines, divider, header, divider)
	for _, rec := range recs {
		lines = append(lines, row(
			truncate(rec.Date, textWidth),
			truncate(rec.ChatName, textWidth),
			truncate(rec.Username, textWidth),
			truncate(rec.Company, textWidth),
			truncate(rec.MeetingPlace, textWidth),
			truncate(rec.Priority, priorityWidth),
		))
	}
	lines = append(lines, divider)

	return strings.Join(lines, "\n")
}

func row(date, chat, handle, company, place, priority string) string {
	return fmt.Sprintf("| %s | %s | %s | %s | %s | %s |",
		center(date, textWidth),
		center(chat, textWidth),
		center(handle, textWidth),
		center(company, textWidth),
		center(place, textWidth),
		center(priority, priorityWidth),
	)
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	return string([]rune(s)[:width])
}

// center pads s to width, putting the odd space on the right. Longer
// strings are returned as is.
func center(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	pad := width - n
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}
