package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/butler/internal/core"
	"github.com/sandevgo/butler/pkg/log"
)

const (
	noExportText  = "You don't have any logged data to generate a CSV for."
	noClearText   = "You don't have any logged data to clear."
	noDisplayText = "You don't have any logged data to display."
	clearedText   = "Your CSV data has been cleared."
)

type ExportCommand struct {
	exporter Exporter
	stats    Stats
}

func NewExportCommand(exporter Exporter, stats Stats) *ExportCommand {
	return &ExportCommand{exporter: exporter, stats: stats}
}

func (c *ExportCommand) Name() string {
	return "generatecsv"
}

func (c *ExportCommand) Description() string {
	return "Generate a CSV of your data"
}

func (c *ExportCommand) Execute(ctx context.Context, user core.UserID, args []string) ([]core.Response, error) {
	doc, err := c.exporter.Export(ctx, user)
	if err != nil {
		return noData(fmt.Errorf("failed to export: %w", err), noExportText)
	}
	c.stats.ExportServed("command")
	return []core.Response{{Document: doc}}, nil
}

type ClearCommand struct {
	store Clearer
	stats Stats
}

func NewClearCommand(store Clearer, stats Stats) *ClearCommand {
	return &ClearCommand{store: store, stats: stats}
}

func (c *ClearCommand) Name() string {
	return "clearcsv"
}

func (c *ClearCommand) Description() string {
	return "Clear data in your CSV, CAUTION: IRREVERSIBLE"
}

func (c *ClearCommand) Execute(ctx context.Context, user core.UserID, args []string) ([]core.Response, error) {
	n := c.store.Count(ctx, user)
	if err := c.store.Clear(ctx, user); err != nil {
		return noData(fmt.Errorf("failed to clear: %w", err), noClearText)
	}
	log.FromCtx(ctx).Info().Int("records", n).Msg("records cleared")
	c.stats.RecordsCleared()
	return []core.Response{core.TextResponse(clearedText)}, nil
}

type DisplayCommand struct {
	renderer Renderer
}

func NewDisplayCommand(renderer Renderer) *DisplayCommand {
	return &DisplayCommand{renderer: renderer}
}

func (c *DisplayCommand) Name() string {
	return "display"
}

func (c *DisplayCommand) Description() string {
	return "Display a grid of all your data (truncated)"
}

func (c *DisplayCommand) Execute(ctx context.Context, user core.UserID, args []string) ([]core.Response, error) {
	table, err := c.renderer.Render(ctx, user)
	if err != nil {
		return noData(fmt.Errorf("failed to render: %w", err), noDisplayText)
	}
	return []core.Response{{Text: table, Format: core.FormatPre}}, nil
}
