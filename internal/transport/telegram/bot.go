package telegram

import (
	"context"
	"fmt"
	"time"

	"github.com/sandevgo/butler/internal/config"
	"github.com/sandevgo/butler/internal/core"
	"github.com/sandevgo/butler/internal/service/conversation"
	"github.com/sandevgo/butler/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const (
	baseContextKey = "base_context"
	expiredText    = "Your unfinished entry was dropped after being idle for too long. " +
		"Use /manual or forward a message to start again."
)

type Bot struct {
	bot     *tele.Bot
	cfg     *config.TelegramConfig
	handler core.Handler
	sender  *sender
	menu    []tele.Command
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	handler core.Handler,
	commands []core.Command,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: cfg.PollTimeout},
		OnError: func(err error, c tele.Context) {
			ev := log.FromCtx(ctx).Error().Err(err)
			if c != nil && c.Sender() != nil {
				ev = ev.Int64("user", c.Sender().ID)
			}
			ev.Msg("telegram handler failed")
		},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:     b,
		cfg:     cfg,
		handler: handler,
		sender:  newSender(b),
		menu:    commandMenu(commands),
	}

	// Use context from Signal with logger
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	// Middleware: only allow listed users, everyone when the list is empty
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Sender() == nil || !cfg.IsAllowed(c.Sender().ID) {
				return nil
			}
			return next(c)
		}
	})

	b.Handle(tele.OnText, bot.handleMessage)
	b.Handle(tele.OnMedia, bot.handleMessage)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	if err := b.bot.SetCommands(b.menu); err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("failed to register command menu")
	}
	log.FromCtx(ctx).Info().Str("bot", b.bot.Me.Username).Int("commands", len(b.menu)).Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

// ExpireHook tells users their idle entry was dropped. Private chat ids equal user ids.
func (b *Bot) ExpireHook(ctx context.Context) func(conversation.Session) {
	return func(s conversation.Session) {
		err := b.sender.send(ctx, tele.ChatID(s.User), []core.Response{core.TextResponse(expiredText)})
		if err != nil {
			log.FromCtx(ctx).Warn().Err(err).Int64("user", int64(s.User)).Msg("failed to notify about expired entry")
		}
	}
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := log.With(c.Get(baseContextKey).(context.Context), "transport", "telegram")
	msg := c.Message()
	if msg == nil || msg.Sender == nil {
		return nil
	}

	ev := toEvent(msg)
	log.FromCtx(ctx).Debug().
		Int64("user", int64(ev.User)).
		Bool("forwarded", ev.Forward != nil).
		Msg("telegram message received")

	res := b.handler.Handle(ctx, ev)
	if err := b.sender.send(ctx, c.Recipient(), res); err != nil {
		log.FromCtx(ctx).Error().Err(err).Int64("user", int64(ev.User)).Msg("failed to deliver reply")
	}
	return nil
}

// commandMenu lists commands the way Telegram shows them next to the input field.
func commandMenu(commands []core.Command) []tele.Command {
	menu := make([]tele.Command, 0, len(commands))
	for _, c := range commands {
		menu = append(menu, tele.Command{Text: c.Name(), Description: c.Description()})
	}
	return menu
}

func toEvent(m *tele.Message) core.Event {
	ev := core.Event{
		User:       core.UserID(m.Sender.ID),
		Text:       m.Text,
		ReceivedAt: m.Time(),
	}
	if ev.Text == "" {
		ev.Text = m.Caption
	}
	if m.OriginalUnixtime != 0 || m.IsForwarded() {
		ev.Forward = forwardOrigin(m)
	}
	return ev
}

// forwardOrigin reads forward metadata. Missing parts stay empty and become
// sentinels further down.
func forwardOrigin(m *tele.Message) *core.ForwardOrigin {
	o := &core.ForwardOrigin{
		Time: time.Unix(int64(m.OriginalUnixtime), 0).UTC(),
	}
	if m.OriginalChat != nil {
		o.FromChat = true
		o.ChatTitle = m.OriginalChat.Title
	}
	if m.OriginalSender != nil {
		o.Username = m.OriginalSender.Username
	}
	return o
}
