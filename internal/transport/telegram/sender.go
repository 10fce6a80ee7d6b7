package telegram

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sandevgo/butler/internal/core"
	"github.com/sandevgo/butler/pkg/conv"
	"github.com/sandevgo/butler/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const (
	maxTelegramMsgLen = 4000 // Safety margin below 4096
	// escaping can grow a pre chunk, keep more headroom
	maxPreLen = 3000
)

type api interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

type sender struct {
	bot api
}

func newSender(bot api) *sender {
	return &sender{bot: bot}
}

// send delivers responses in order and stops at the first failure.
func (s *sender) send(ctx context.Context, to tele.Recipient, responses []core.Response) error {
	for _, r := range responses {
		var err error
		if r.Document != nil {
			err = s.sendDocument(to, r)
		} else {
			err = s.sendText(ctx, to, r)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *sender) sendDocument(to tele.Recipient, r core.Response) error {
	doc := &tele.Document{
		File:     tele.FromReader(bytes.NewReader(r.Document.Data)),
		FileName: r.Document.Name,
		MIME:     r.Document.MIME,
		Caption:  r.Text,
	}
	if _, err := s.bot.Send(to, doc); err != nil {
		return fmt.Errorf("failed to send document %s: %w", r.Document.Name, err)
	}
	return nil
}

func (s *sender) sendText(ctx context.Context, to tele.Recipient, r core.Response) error {
	text := strings.TrimSpace(r.Text)
	if text == "" {
		return nil
	}

	// pre blocks are split before escaping so no chunk cuts an entity
	limit := maxTelegramMsgLen
	if r.Format == core.FormatPre {
		limit = maxPreLen
	}

	for i, chunk := range splitText(text, limit) {
		var opts []interface{}
		switch r.Format {
		case core.FormatHTML:
			opts = append(opts, tele.ModeHTML)
		case core.FormatPre:
			chunk = conv.Pre(chunk)
			opts = append(opts, tele.ModeHTML)
		}

		if _, err := s.bot.Send(to, chunk, opts...); err != nil {
			log.FromCtx(ctx).Error().Err(err).Int("chunk", i).Int("len", len(chunk)).Msg("failed to send telegram chunk")
			return err
		}
	}
	return nil
}

// splitText splits text into chunks respecting Telegram's limit.
// It tries to split at newlines to preserve formatting.
func splitText(text string, maxLen int) []string {
	if len(text) <= maxLen {
		return []string{text}
	}

	var chunks []string
	for len(text) > 0 {
		if len(text) <= maxLen {
			chunks = append(chunks, text)
			break
		}

		cut := maxLen
		if idx := strings.LastIndex(text[:maxLen], "\n"); idx > maxLen/3 {
			cut = idx
		}
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}

		chunks = append(chunks, text[:cut])
		text = strings.TrimSpace(text[cut:])
	}
	return chunks
}
