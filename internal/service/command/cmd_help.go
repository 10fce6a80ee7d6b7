package command

import (
	"context"

	"github.com/sandevgo/butler/internal/core"
	"github.com/sandevgo/butler/pkg/conv"
)

type HelpCommand struct {
	name string
	html string
}

// NewHelpCommand renders the usage text once, listing commands in the given order.
func NewHelpCommand(name string, commands []core.Command) *HelpCommand {
	f := NewResponseFormatter()

	lines := make([]string, 0, len(commands)+1)
	for _, cmd := range commands {
		lines = append(lines, f.Command(cmd.Name(), cmd.Description()))
	}
	lines = append(lines, f.Command("howtouse", "Show this message"))

	md := f.Combine(
		f.Title("🤖", "How to Use This Bot"),
		"You can log an interaction in two ways:",
		f.Numbered([]string{
			"Forward a message from a chat to this bot. The questions start right after the forward arrives. Forward a message written by the other person, otherwise your own handle is logged.",
			"Use `/manual` and type every field yourself.",
		}),
		f.Section("🗂", "Fields", f.List([]string{
			"date: automatic",
			"chat name: automatic (empty for manual entries)",
			"username: automatic (unless manual)",
			"description, company, meeting place, priority: your answers",
		})),
		"Answer `s` to skip a question. A CSV is sent after every entry because nothing is stored on disk and data is lost when the bot restarts.",
		f.Section("📋", "Commands", f.List(lines)),
	)

	return &HelpCommand{
		name: name,
		html: conv.MarkdownToTelegramHTML([]byte(md)),
	}
}

func (c *HelpCommand) Name() string {
	return c.name
}

func (c *HelpCommand) Description() string {
	return "Show how to use the bot"
}

func (c *HelpCommand) Execute(ctx context.Context, user core.UserID, args []string) ([]core.Response, error) {
	return []core.Response{core.HTMLResponse(c.html)}, nil
}
