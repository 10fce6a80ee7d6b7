package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/sandevgo/butler/internal/config"
	"github.com/sandevgo/butler/internal/core"
	"github.com/sandevgo/butler/pkg/conv"
	"github.com/sandevgo/butler/pkg/log"
)

// ConsoleUser is the identity every console line is attributed to.
const ConsoleUser core.UserID = 1

const fwdCommand = "/fwd"

type ReadLine struct {
	cfg     *config.AppConfig
	handler core.Handler
	rl      *readline.Instance
}

func NewReadLine(handler core.Handler, cfg *config.AppConfig) (*ReadLine, error) {
	if err := os.MkdirAll(cfg.RuntimePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "butler> ",
		HistoryFile:     filepath.Join(cfg.RuntimePath, "input_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{
		cfg:     cfg,
		handler: handler,
		rl:      rl,
	}, nil
}

func (r *ReadLine) Start(ctx context.Context) error {
	ctx = log.With(ctx, "transport", "console")
	logger := log.FromCtx(ctx)
	logger.Info().Msg("Console started. Type /fwd <chat>|<handle> to simulate a forward, 'exit' to quit.")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if len(line) == 0 {
					return nil
				}
				continue
			} else if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "exit" {
			return nil
		}
		if line == "" {
			continue
		}

		res := r.handler.Handle(ctx, ParseLine(line, ConsoleUser, time.Now()))
		if err := Render(r.rl.Stdout(), res, r.cfg.GetExportDir()); err != nil {
			logger.Error().Err(err).Msg("failed to render reply")
			fmt.Fprintf(r.rl.Stdout(), "Error: %v\n", err)
		}
	}
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}

// ParseLine turns a console line into an event. "/fwd Alpha Summit|alice"
// stands for a message forwarded from chat "Alpha Summit" written by
// @alice; either part may be left empty.
func ParseLine(line string, user core.UserID, now time.Time) core.Event {
	ev := core.Event{User: user, Text: line, ReceivedAt: now}

	rest, ok := strings.CutPrefix(line, fwdCommand)
	if !ok || (rest != "" && rest[0] != ' ') {
		return ev
	}

	chat, handle, _ := strings.Cut(strings.TrimSpace(rest), "|")
	origin := &core.ForwardOrigin{
		Time:     now,
		Username: strings.TrimPrefix(strings.TrimSpace(handle), "@"),
	}
	if chat = strings.TrimSpace(chat); chat != "" {
		origin.FromChat = true
		origin.ChatTitle = chat
	}

	ev.Text = ""
	ev.Forward = origin
	return ev
}

// Render prints responses for a terminal. Documents are written to dir.
func Render(w io.Writer, responses []core.Response, dir string) error {
	for _, r := range responses {
		if r.Document != nil {
			path, err := saveDocument(dir, r.Document)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "[file] %s saved to %s\n", r.Document.Name, path)
		}

		switch text := strings.TrimSpace(r.Text); {
		case text == "":
		case r.Format == core.FormatHTML:
			fmt.Fprintln(w, conv.HTMLToText(text))
		default:
			fmt.Fprintln(w, text)
		}
	}
	return nil
}

func saveDocument(dir string, doc *core.Document) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, filepath.Base(doc.Name))
	if err := os.WriteFile(path, doc.Data, 0600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", doc.Name, err)
	}
	return path, nil
}
