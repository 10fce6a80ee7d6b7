package command

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/sandevgo/butler/internal/core"
	"github.com/sandevgo/butler/pkg/conv"
	"github.com/sandevgo/butler/pkg/log"
)

type Router struct {
	commands  map[string]core.Command
	formatter *ResponseFormatter
}

func New(commands []core.Command) *Router {
	c := &Router{
		commands:  make(map[string]core.Command),
		formatter: NewResponseFormatter(),
	}

	for _, cmd := range commands {
		c.commands[cmd.Name()] = cmd
	}
	return c
}

// Parse splits a slash command into its lowercased name and arguments.
// "/generateCSV@butler_bot x" yields ("generatecsv", ["x"], true).
func Parse(input string) (string, []string, bool) {
	if !strings.HasPrefix(input, "/") {
		return "", nil, false
	}

	parts := strings.Fields(input)
	if len(parts) == 0 {
		return "", nil, false
	}
	name := strings.TrimPrefix(parts[0], "/")
	if at := strings.IndexByte(name, '@'); at >= 0 {
		name = name[:at]
	}
	if name == "" {
		return "", nil, false
	}
	return strings.ToLower(name), parts[1:], true
}

func (c *Router) Execute(ctx context.Context, user core.UserID, input string) ([]core.Response, bool) {
	name, args, ok := Parse(input)
	if !ok {
		return nil, false
	}

	cmd, ok := c.commands[name]
	if !ok {
		return []core.Response{core.TextResponse(fmt.Sprintf("Unknown command: /%s", name))}, true
	}

	log.FromCtx(ctx).Debug().Str("command", name).Msg("executing command")

	result, err := cmd.Execute(ctx, user, args)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Str("command", name).Msg("command failed")
		return []core.Response{core.HTMLResponse(conv.MarkdownToTelegramHTML([]byte(c.formatter.Error(err))))}, true
	}
	return result, true
}

func (c *Router) ListCommands() []core.Command {
	res := make([]core.Command, 0, len(c.commands))
	for _, cmd := range c.commands {
		res = append(res, cmd)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name() < res[j].Name() })
	return res
}

// noData maps core.ErrNoRecords to its user-facing text and passes other
// errors through.
func noData(err error, text string) ([]core.Response, error) {
	if errors.Is(err, core.ErrNoRecords) {
		return []core.Response{core.TextResponse(text)}, nil
	}
	return nil, err
}
