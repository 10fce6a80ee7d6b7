package dispatch

import (
	"context"
	"strings"

	"github.com/sandevgo/butler/internal/core"
	"github.com/sandevgo/butler/internal/service/command"
	"github.com/sandevgo/butler/internal/service/conversation"
	"github.com/sandevgo/butler/pkg/log"
)

const (
	abandonText = "It seems you've entered a command, so your unfinished entry was abandoned. " +
		"Use /manual or forward a message to start again."
	failedText = "Something went wrong while saving your entry, so it was dropped. " +
		"Use /manual or forward the message again."
)

type Flows interface {
	StartForwarded(ctx context.Context, user core.UserID, origin core.ForwardOrigin) conversation.Reply
	Answer(ctx context.Context, user core.UserID, text string) (conversation.Reply, bool, error)
	Abandon(ctx context.Context, user core.UserID) bool
}

type Exporter interface {
	Export(ctx context.Context, user core.UserID) (*core.Document, error)
}

type Stats interface {
	ExportServed(trigger string)
}

// Dispatcher routes every inbound event: forwards start a flow, commands go
// to the router, plain text answers the flow in progress.
type Dispatcher struct {
	flows    Flows
	router   core.CmdRouter
	exporter Exporter
	stats    Stats
}

func New(flows Flows, router core.CmdRouter, exporter Exporter, stats Stats) *Dispatcher {
	return &Dispatcher{
		flows:    flows,
		router:   router,
		exporter: exporter,
		stats:    stats,
	}
}

func (d *Dispatcher) Handle(ctx context.Context, ev core.Event) []core.Response {
	ctx = log.WithInt64(ctx, "user", int64(ev.User))
	ctx = core.WithReceivedAt(ctx, ev.ReceivedAt)

	if ev.Forward != nil {
		reply := d.flows.StartForwarded(ctx, ev.User, *ev.Forward)
		return []core.Response{core.TextResponse(reply.Text)}
	}

	if ev.Text == "" {
		log.FromCtx(ctx).Debug().Msg("ignoring message without text")
		return nil
	}

	// blank answers still reach the flow and store ""
	text := strings.TrimSpace(ev.Text)
	if name, _, ok := command.Parse(text); ok {
		return d.handleCommand(ctx, ev.User, name, text)
	}

	reply, ok, err := d.flows.Answer(ctx, ev.User, ev.Text)
	if !ok {
		return []core.Response{core.TextResponse(command.StartText)}
	}
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("flow step failed")
		return []core.Response{core.TextResponse(failedText)}
	}

	res := []core.Response{core.TextResponse(reply.Text)}
	if reply.Committed {
		res = append(res, d.exportAfterCommit(ctx, ev.User)...)
	}
	return res
}

func (d *Dispatcher) handleCommand(ctx context.Context, user core.UserID, name, text string) []core.Response {
	// /start and /cancel manage the flow themselves
	if name != "start" && name != "cancel" && d.flows.Abandon(ctx, user) {
		log.FromCtx(ctx).Info().Str("command", name).Msg("command abandoned the flow in progress")
		return []core.Response{core.TextResponse(abandonText)}
	}

	res, _ := d.router.Execute(ctx, user, text)
	return res
}

func (d *Dispatcher) exportAfterCommit(ctx context.Context, user core.UserID) []core.Response {
	doc, err := d.exporter.Export(ctx, user)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to export after commit")
		return nil
	}
	if d.stats != nil {
		d.stats.ExportServed("commit")
	}
	return []core.Response{{Document: doc}}
}
