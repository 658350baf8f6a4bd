package shutdown

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// DebounceWindow is how long after a first interrupt a second one escalates
// to a forced shutdown.
const DebounceWindow = 5 * time.Second

var (
	// ErrForcedExit is returned by Run when an interrupt arrives while the
	// stop handler is still draining.
	ErrForcedExit = errors.New("forced exit during shutdown")
	// ErrSignalChannelClosed is returned when the signal source closes
	// before any shutdown was triggered.
	ErrSignalChannelClosed = errors.New("signal channel closed")
)

// Kind groups signals by how the coordinator reacts to them.
type Kind int

const (
	// Ignored signals are logged and dropped.
	Ignored Kind = iota
	// Interrupt is Ctrl-C. It is debounced when confirm-exit is on.
	Interrupt
	// Terminate is a kill-style request; always graceful.
	Terminate
	// Hangup is a terminal hangup; always graceful.
	Hangup
)

// String returns the kind name used in logs
func (k Kind) String() string {
	switch k {
	case Interrupt:
		return "interrupt"
	case Terminate:
		return "terminate"
	case Hangup:
		return "hangup"
	default:
		return "ignored"
	}
}

// Classify maps an OS signal to its Kind.
func Classify(sig os.Signal) Kind {
	switch sig {
	case os.Interrupt:
		return Interrupt
	case syscall.SIGTERM:
		return Terminate
	case syscall.SIGHUP:
		return Hangup
	default:
		return Ignored
	}
}

// StopFunc tears the server down. graceful selects draining in-flight
// requests over closing connections at once. ctx is cancelled if the
// process is about to exit regardless.
type StopFunc func(ctx context.Context, graceful bool) error

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithSignals replaces the OS signal subscription with ch.
func WithSignals(ch <-chan os.Signal) Option {
	return func(c *Coordinator) {
		c.signals = ch
	}
}

// WithClock replaces time.Now for debounce measurements.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) {
		c.now = now
	}
}

// Coordinator turns OS signals and internal requests into a single
// shutdown decision and drives the stop handler.
type Coordinator struct {
	confirmExit bool
	log         *zap.Logger
	signals     <-chan os.Signal
	trigger     chan struct{}
	now         func() time.Time
	release     func()
	closeOnce   sync.Once
}

// New subscribes to the platform's termination signals. With confirmExit
// the first interrupt only warns; a second one within DebounceWindow exits.
func New(confirmExit bool, log *zap.Logger, opts ...Option) *Coordinator {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Coordinator{
		confirmExit: confirmExit,
		log:         log,
		trigger:     make(chan struct{}, 1),
		now:         time.Now,
		release:     func() {},
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.signals == nil {
		ch := make(chan os.Signal, 4)
		signal.Notify(ch, notifySignals...)
		c.signals = ch
		c.release = func() { signal.Stop(ch) }
	}
	return c
}

// Close stops the OS signal subscription. Run calls it on return; callers
// that never reach Run must call it themselves. Safe to call repeatedly.
func (c *Coordinator) Close() {
	c.closeOnce.Do(c.release)
}

// Trigger requests a graceful shutdown from inside the process, for example
// when the server fails on its own. Only the first call matters; later
// calls are dropped. A trigger sent before Run is kept until Run starts.
func (c *Coordinator) Trigger() {
	select {
	case c.trigger <- struct{}{}:
	default:
	}
}

// Run blocks until a shutdown is decided, then calls stop and waits for it.
// An interrupt received while stop runs cancels its context and makes Run
// return ErrForcedExit immediately. Run also returns when ctx is done
// before any trigger.
func (c *Coordinator) Run(ctx context.Context, stop StopFunc) error {
	defer c.Close()

	graceful, err := c.wait(ctx)
	if err != nil {
		return err
	}
	return c.drain(ctx, stop, graceful)
}

func (c *Coordinator) wait(ctx context.Context) (bool, error) {
	var first time.Time

	for {
		select {
		case <-ctx.Done():
			return false, ctx.Err()

		case <-c.trigger:
			c.log.Info("Shutdown requested")
			return true, nil

		case sig, ok := <-c.signals:
			if !ok {
				return false, ErrSignalChannelClosed
			}

			kind := Classify(sig)
			switch kind {
			case Terminate, Hangup:
				c.log.Info("Received signal", zap.Stringer("signal", sig), zap.Stringer("kind", kind))
				return true, nil

			case Interrupt:
				if !c.confirmExit {
					c.log.Info("Received interrupt")
					return false, nil
				}
				now := c.now()
				if !first.IsZero() && now.Sub(first) <= DebounceWindow {
					c.log.Info("Received second interrupt")
					return false, nil
				}
				first = now
				c.log.Warn("Press Ctrl-C again to exit", zap.Duration("within", DebounceWindow))

			default:
				c.log.Debug("Ignoring signal", zap.Stringer("signal", sig))
			}
		}
	}
}

func (c *Coordinator) drain(ctx context.Context, stop StopFunc, graceful bool) error {
	drainCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- stop(drainCtx, graceful)
	}()

	signals := c.signals
	for {
		select {
		case err := <-done:
			return err

		case sig, ok := <-signals:
			if !ok {
				signals = nil
				continue
			}
			if Classify(sig) != Interrupt {
				c.log.Debug("Ignoring signal during shutdown", zap.Stringer("signal", sig))
				continue
			}
			c.log.Warn("Interrupted during shutdown, exiting now")
			cancel()
			return ErrForcedExit
		}
	}
}
