package core

import "context"

type CmdRouter interface {
	Execute(ctx context.Context, user UserID, input string) ([]Response, bool)
	ListCommands() []Command
}

type Command interface {
	Name() string
	Description() string
	Execute(ctx context.Context, user UserID, args []string) ([]Response, error)
}

// Handler turns an inbound event into the replies a transport should deliver.
type Handler interface {
	Handle(ctx context.Context, ev Event) []Response
}
