package command

import (
	"context"

	"github.com/sandevgo/butler/internal/core"
)

const (
	StartText     = "Forward a message to log it or use /manual to manually add data."
	abandonedText = "Your unfinished entry was abandoned."
	cancelledText = "Action cancelled."
	idleText      = "There is nothing to cancel."
)

// StartCommand greets and drops any flow in progress.
type StartCommand struct {
	flows Flows
}

func NewStartCommand(flows Flows) *StartCommand {
	return &StartCommand{flows: flows}
}

func (c *StartCommand) Name() string {
	return "start"
}

func (c *StartCommand) Description() string {
	return "Show how to start logging"
}

func (c *StartCommand) Execute(ctx context.Context, user core.UserID, args []string) ([]core.Response, error) {
	if c.flows.Cancel(ctx, user) {
		return []core.Response{core.TextResponse(abandonedText + "\n\n" + StartText)}, nil
	}
	return []core.Response{core.TextResponse(StartText)}, nil
}

type ManualCommand struct {
	flows Flows
}

func NewManualCommand(flows Flows) *ManualCommand {
	return &ManualCommand{flows: flows}
}

func (c *ManualCommand) Name() string {
	return "manual"
}

func (c *ManualCommand) Description() string {
	return "Manually add an account"
}

func (c *ManualCommand) Execute(ctx context.Context, user core.UserID, args []string) ([]core.Response, error) {
	reply := c.flows.StartManual(ctx, user, core.ReceivedAt(ctx))
	return []core.Response{core.TextResponse(reply.Text)}, nil
}

type CancelCommand struct {
	flows Flows
}

func NewCancelCommand(flows Flows) *CancelCommand {
	return &CancelCommand{flows: flows}
}

func (c *CancelCommand) Name() string {
	return "cancel"
}

func (c *CancelCommand) Description() string {
	return "Abort the entry in progress without saving it"
}

func (c *CancelCommand) Execute(ctx context.Context, user core.UserID, args []string) ([]core.Response, error) {
	if !c.flows.Cancel(ctx, user) {
		return []core.Response{core.TextResponse(idleText)}, nil
	}
	return []core.Response{core.TextResponse(cancelledText)}, nil
}
