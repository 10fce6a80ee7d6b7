package conversation

import (
	"context"
	"fmt"
	"time"

	"github.com/sandevgo/butler/internal/core"
	"github.com/sandevgo/butler/pkg/log"
)

const discardedNotice = "Your previous unfinished entry was discarded."

// Abort reasons reported to the Recorder.
const (
	ReasonCancel   = "cancel"
	ReasonCommand  = "command"
	ReasonReplaced = "replaced"
	ReasonIdle     = "idle"
	ReasonFailed   = "failed"
)

type RecordAppender interface {
	Append(ctx context.Context, user core.UserID, rec core.Interaction) error
}

// Recorder observes flow lifecycle events.
type Recorder interface {
	FlowStarted(flow string)
	FlowCommitted(flow string)
	FlowAborted(flow, reason string)
}

type nopRecorder struct{}

func (nopRecorder) FlowStarted(string)         {}
func (nopRecorder) FlowCommitted(string)       {}
func (nopRecorder) FlowAborted(string, string) {}

// Reply is what the engine wants said back to the user.
type Reply struct {
	Text string
	// Committed is set when the answer completed a record.
	Committed bool
}

type Engine struct {
	store    RecordAppender
	sessions *Sessions
	recorder Recorder
	now      func() time.Time
}

type Option func(*Engine)

func WithRecorder(r Recorder) Option {
	return func(e *Engine) {
		if r != nil {
			e.recorder = r
		}
	}
}

// WithClock sets the clock used to date manual entries.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
		e.sessions.now = now
	}
}

func NewEngine(store RecordAppender, sessions *Sessions, opts ...Option) *Engine {
	e := &Engine{
		store:    store,
		sessions: sessions,
		recorder: nopRecorder{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Sessions() *Sessions {
	return e.sessions
}

// StartForwarded opens a forwarded-flow draft seeded from the forward's origin.
func (e *Engine) StartForwarded(ctx context.Context, user core.UserID, origin core.ForwardOrigin) Reply {
	draft := core.Interaction{
		Date:     origin.Time.Format(core.DateLayout),
		ChatName: core.PrivateChatName,
		Username: core.UnknownUsername,
	}
	if origin.FromChat {
		draft.ChatName = origin.ChatTitle
	}
	if origin.Username != "" {
		draft.Username = origin.Username
	}
	return e.begin(ctx, user, FlowForwarded, draft)
}

// StartManual opens a manual-flow draft dated on the UTC day of at, or of the
// engine clock when at is zero.
func (e *Engine) StartManual(ctx context.Context, user core.UserID, at time.Time) Reply {
	if at.IsZero() {
		at = e.now()
	}
	draft := core.Interaction{
		Date: at.UTC().Format(core.DateLayout),
	}
	return e.begin(ctx, user, FlowManual, draft)
}

func (e *Engine) begin(ctx context.Context, user core.UserID, flow Flow, draft core.Interaction) Reply {
	s, replaced := e.sessions.Begin(user, flow, draft)

	log.FromCtx(ctx).Info().
		Str("flow", string(flow)).
		Str("session", s.ID).
		Bool("replaced", replaced).
		Msg("flow started")

	if replaced {
		e.recorder.FlowAborted(string(flow), ReasonReplaced)
	}
	e.recorder.FlowStarted(string(flow))

	text := Prompt(s.State)
	if replaced {
		text = discardedNotice + "\n\n" + text
	}
	return Reply{Text: text}
}

// Answer feeds text to the user's flow. ok is false when no flow is in progress.
func (e *Engine) Answer(ctx context.Context, user core.UserID, text string) (reply Reply, ok bool, err error) {
	var out Outcome
	s, ok, err := e.sessions.Step(user, func(s *Session) (bool, error) {
		o, err := Transition(s.State, text)
		if err != nil {
			return false, err
		}
		o.Field.Apply(&s.Draft, o.Value)
		s.State = o.Next
		out = o
		return o.Commit, nil
	})
	if !ok {
		return Reply{}, false, nil
	}
	if err != nil {
		return Reply{}, true, fmt.Errorf("failed to advance %s flow: %w", s.Flow, err)
	}

	logger := log.FromCtx(ctx).With().
		Str("flow", string(s.Flow)).
		Str("session", s.ID).
		Logger()
	logger.Debug().Str("field", out.Field.String()).Str("state", string(s.State)).Msg("answer captured")

	if !out.Commit {
		return Reply{Text: out.Prompt}, true, nil
	}

	// s.Draft is a value copy, detached from the dropped session
	if err := e.store.Append(ctx, user, s.Draft); err != nil {
		e.recorder.FlowAborted(string(s.Flow), ReasonFailed)
		return Reply{}, true, fmt.Errorf("failed to store interaction: %w", err)
	}

	e.recorder.FlowCommitted(string(s.Flow))
	logger.Info().Msg("interaction committed")
	return Reply{Text: committedText[s.Flow], Committed: true}, true, nil
}

// Cancel aborts the user's flow on request. It reports whether one was running.
func (e *Engine) Cancel(ctx context.Context, user core.UserID) bool {
	return e.abort(ctx, user, ReasonCancel)
}

// Abandon aborts the user's flow because a command arrived instead of an answer.
func (e *Engine) Abandon(ctx context.Context, user core.UserID) bool {
	return e.abort(ctx, user, ReasonCommand)
}

func (e *Engine) abort(ctx context.Context, user core.UserID, reason string) bool {
	s, ok := e.sessions.End(user)
	if !ok {
		return false
	}
	e.recorder.FlowAborted(string(s.Flow), reason)
	log.FromCtx(ctx).Info().
		Str("flow", string(s.Flow)).
		Str("state", string(s.State)).
		Str("reason", reason).
		Msg("flow aborted")
	return true
}

func (e *Engine) Active(user core.UserID) bool {
	_, ok := e.sessions.Get(user)
	return ok
}

// ExpireIdle drops flows untouched for timeout and returns how many went.
func (e *Engine) ExpireIdle(ctx context.Context, timeout time.Duration) int {
	expired := e.sessions.ExpireIdle(timeout)
	for _, s := range expired {
		e.recorder.FlowAborted(string(s.Flow), ReasonIdle)
		log.FromCtx(ctx).Info().
			Int64("user", int64(s.User)).
			Str("flow", string(s.Flow)).
			Str("session", s.ID).
			Msg("idle flow expired")
	}
	return len(expired)
}
