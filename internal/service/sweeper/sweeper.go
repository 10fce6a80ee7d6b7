package sweeper

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sandevgo/butler/pkg/log"
)

type Expirer interface {
	ExpireIdle(ctx context.Context, timeout time.Duration) int
}

// Sweeper periodically drops entry flows nobody answered for a while.
type Sweeper struct {
	cron    *cron.Cron
	spec    string
	timeout time.Duration
	expirer Expirer
}

func New(expirer Expirer, spec string, timeout time.Duration) *Sweeper {
	return &Sweeper{
		cron:    cron.New(cron.WithLocation(time.UTC)),
		spec:    spec,
		timeout: timeout,
		expirer: expirer,
	}
}

func (s *Sweeper) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.Sweep(ctx) }); err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", s.spec, err)
	}

	s.cron.Start()
	log.FromCtx(ctx).Info().
		Str("schedule", s.spec).
		Dur("idle_timeout", s.timeout).
		Msg("session sweeper started")
	return nil
}

// Sweep runs one expiry pass.
func (s *Sweeper) Sweep(ctx context.Context) int {
	n := s.expirer.ExpireIdle(ctx, s.timeout)
	if n > 0 {
		log.FromCtx(ctx).Info().Int("expired", n).Msg("idle sessions swept")
	}
	return n
}

func (s *Sweeper) Shutdown(ctx context.Context) error {
	stopped := s.cron.Stop()
	select {
	case <-stopped.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
