package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/diode"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Debug bool
	// Out defaults to stdout.
	Out     io.Writer
	NoColor bool
}

func NewContextWithLogger(ctx context.Context, debug bool) (context.Context, func()) {
	return NewContext(ctx, Options{Debug: debug})
}

// NewContext installs the global logger and returns a context carrying it
// together with a flush func for the non-blocking writer.
func NewContext(ctx context.Context, opts Options) (context.Context, func()) {
	if opts.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	// Ring buffer of 1000 entries polled every 5ms
	wr := diode.NewWriter(out, 1000, 5*time.Millisecond, func(missed int) {
		fmt.Fprintf(os.Stderr, "logger dropped %d messages\n", missed)
	})

	output := zerolog.ConsoleWriter{
		Out:        wr,
		NoColor:    opts.NoColor,
		TimeFormat: time.DateTime,
		PartsOrder: []string{
			zerolog.LevelFieldName,
			zerolog.TimestampFieldName,
			zerolog.MessageFieldName,
		},
	}

	logger := zerolog.New(output).
		With().
		Timestamp().
		Logger()

	log.Logger = logger
	zerolog.DefaultContextLogger = &logger

	return logger.WithContext(ctx), func() {
		wr.Close()
	}
}

// FromCtx never returns nil: without a logger in ctx it falls back to the
// one installed by NewContext, or a disabled logger before setup.
func FromCtx(ctx context.Context) *zerolog.Logger {
	return log.Ctx(ctx)
}

// With returns ctx carrying a child logger enriched with a string field.
func With(ctx context.Context, key, value string) context.Context {
	l := FromCtx(ctx).With().Str(key, value).Logger()
	return l.WithContext(ctx)
}

// WithInt64 is With for numeric identifiers.
func WithInt64(ctx context.Context, key string, value int64) context.Context {
	l := FromCtx(ctx).With().Int64(key, value).Logger()
	return l.WithContext(ctx)
}
