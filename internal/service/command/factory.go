package command

import (
	"context"
	"time"

	"github.com/sandevgo/butler/internal/core"
	"github.com/sandevgo/butler/internal/service/conversation"
)

type Flows interface {
	StartManual(ctx context.Context, user core.UserID, at time.Time) conversation.Reply
	Cancel(ctx context.Context, user core.UserID) bool
}

type Exporter interface {
	Export(ctx context.Context, user core.UserID) (*core.Document, error)
}

type Renderer interface {
	Render(ctx context.Context, user core.UserID) (string, error)
}

type Clearer interface {
	Clear(ctx context.Context, user core.UserID) error
	Count(ctx context.Context, user core.UserID) int
}

// Stats counts data requests. observability.Metrics satisfies it.
type Stats interface {
	ExportServed(trigger string)
	RecordsCleared()
}

type nopStats struct{}

func (nopStats) ExportServed(string) {}
func (nopStats) RecordsCleared()     {}

// NewCommands builds the full command set, help included.
func NewCommands(
	flows Flows,
	store Clearer,
	exporter Exporter,
	renderer Renderer,
	stats Stats,
) []core.Command {
	if stats == nil {
		stats = nopStats{}
	}

	cmds := []core.Command{
		NewStartCommand(flows),
		NewManualCommand(flows),
		NewExportCommand(exporter, stats),
		NewClearCommand(store, stats),
		NewDisplayCommand(renderer),
		NewCancelCommand(flows),
	}
	return append(cmds,
		NewHelpCommand("howtouse", cmds),
		NewHelpCommand("help", cmds),
	)
}
