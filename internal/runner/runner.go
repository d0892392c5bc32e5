package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/danmuck/looper/internal/clock"
	"github.com/rs/zerolog/log"
)

var (
	ErrInvalidInterval = errors.New("runner: invalid interval")
	ErrAlreadyStarted  = errors.New("runner: already started")
	ErrOutput          = errors.New("runner: output write failed")
)

// Config controls the startup line, the tick line, and the tick period.
type Config struct {
	Interval       time.Duration
	StartupMessage string
	TickMessage    string
}

// DefaultConfig prints "running..." then "loop" once a second.
func DefaultConfig() Config {
	return Config{
		Interval:       time.Second,
		StartupMessage: "running...",
		TickMessage:    "loop",
	}
}

// Runner prints a startup line once, then a tick line on every interval
// until its context ends.
type Runner struct {
	cfg   Config
	out   io.Writer
	clock clock.Clock

	started atomic.Bool
	ticks   atomic.Uint64
	done    chan struct{}

	mu  sync.Mutex
	err error
}

// New returns a Runner driven by the wall clock.
func New(cfg Config, out io.Writer) *Runner {
	return NewWithClock(cfg, out, clock.Real())
}

// NewWithClock returns a Runner driven by c.
func NewWithClock(cfg Config, out io.Writer, c clock.Clock) *Runner {
	return &Runner{
		cfg:   cfg,
		out:   out,
		clock: c,
		done:  make(chan struct{}),
	}
}

// Run writes the startup line, schedules the ticker and returns. Ticks keep
// firing on a background goroutine until ctx is cancelled or a write fails.
func (r *Runner) Run(ctx context.Context) error {
	if !r.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	if r.cfg.Interval <= 0 {
		close(r.done)
		return fmt.Errorf("%w: %v", ErrInvalidInterval, r.cfg.Interval)
	}
	if err := r.writeLine(r.cfg.StartupMessage); err != nil {
		close(r.done)
		return err
	}

	ticker := r.clock.NewTicker(r.cfg.Interval)
	log.Info().Dur("interval", r.cfg.Interval).Msg("runner started")
	go r.loop(ctx, ticker)
	return nil
}

func (r *Runner) loop(ctx context.Context, ticker clock.Ticker) {
	defer close(r.done)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Uint64("ticks", r.ticks.Load()).Msg("runner stopped")
			return
		case <-ticker.C():
			idx := r.ticks.Add(1) - 1
			if err := r.writeLine(r.cfg.TickMessage); err != nil {
				log.Error().Err(err).Uint64("tick", idx).Msg("runner tick failed")
				r.setErr(err)
				return
			}
			log.Debug().Uint64("tick", idx).Msg("runner tick")
		}
	}
}

// Done closes once the tick loop has stopped.
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

// Err returns the write failure that stopped the loop, if any.
func (r *Runner) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Ticks reports how many ticks have fired.
func (r *Runner) Ticks() uint64 {
	return r.ticks.Load()
}

func (r *Runner) setErr(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

func (r *Runner) writeLine(msg string) error {
	if _, err := io.WriteString(r.out, msg+"\n"); err != nil {
		return fmt.Errorf("%w: %w", ErrOutput, err)
	}
	return nil
}
