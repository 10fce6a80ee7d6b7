package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/sandevgo/butler/internal/core"
	"github.com/sandevgo/butler/pkg/log"
)

const MIME = "text/csv"

// Header is the column contract of every export. Keep the order.
var Header = []string{"date", "chat_name", "username", "description", "company", "meeting_place", "priority"}

type RecordReader interface {
	Get(ctx context.Context, user core.UserID) ([]core.Interaction, error)
}

type Exporter struct {
	store RecordReader
}

func NewExporter(store RecordReader) *Exporter {
	return &Exporter{store: store}
}

func FileName(user core.UserID) string {
	return fmt.Sprintf("%d_logs.csv", user)
}

// Export renders the user's records as CSV. It returns core.ErrNoRecords when
// there is nothing to export.
func (e *Exporter) Export(ctx context.Context, user core.UserID) (*core.Document, error) {
	recs, err := e.store.Get(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}
	if len(recs) == 0 {
		return nil, core.ErrNoRecords
	}

	data, err := Encode(recs)
	if err != nil {
		return nil, err
	}

	log.FromCtx(ctx).Debug().
		Int("rows", len(recs)).
		Int("bytes", len(data)).
		Msg("csv generated")

	return &core.Document{
		Name: FileName(user),
		MIME: MIME,
		Data: data,
	}, nil
}

// Encode writes the header and one CRLF terminated row per record.
func Encode(recs []core.Interaction) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.UseCRLF = true

	if err := w.Write(Header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, r := range recs {
		row := []string{r.Date, r.ChatName, r.Username, r.Description, r.Company, r.MeetingPlace, r.Priority}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
