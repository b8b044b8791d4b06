package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"starsweep/internal/cleanup"
	"starsweep/internal/config"
)

// Runner executes one cleanup pass. The cleanup engine satisfies this.
type Runner interface {
	Run(ctx context.Context, now time.Time) (*cleanup.Summary, error)
}

// Daemon runs cleanup passes on a daily schedule and enforces
// single-instance execution via a lock file.
type Daemon struct {
	cfg    *config.Config
	runner Runner
	logger *slog.Logger

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, runner Runner, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || runner == nil {
		return nil, errors.New("daemon requires config and runner")
	}
	if logger == nil {
		logger = slog.Default()
	}

	lockPath := filepath.Join(cfg.Paths.DataDir, "starsweep.lock")
	return &Daemon{
		cfg:      cfg,
		runner:   runner,
		logger:   logger,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// LockPath returns the lock file location.
func (d *Daemon) LockPath() string {
	return d.lockPath
}

// Running reports whether Serve currently holds the daemon lock.
func (d *Daemon) Running() bool {
	return d.running.Load()
}

// Serve acquires the daemon lock and blocks until the context is canceled,
// executing one cleanup pass per day at the configured wall-clock time. Runs
// execute inline on the scheduler goroutine, so overlapping runs are
// impossible; a long run simply delays the next schedule check.
func (d *Daemon) Serve(ctx context.Context) error {
	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another starsweep daemon instance is already running")
	}
	defer func() {
		if err := d.lock.Unlock(); err != nil {
			d.logger.Warn("failed to release daemon lock", "error", err)
		}
		d.running.Store(false)
	}()
	d.running.Store(true)

	hour, minute := d.cfg.RunAtClock()
	d.logger.Info("starsweep daemon started",
		"lock", d.lockPath,
		"run_at", fmt.Sprintf("%02d:%02d", hour, minute),
		"run_on_start", d.cfg.Schedule.RunOnStart)

	if d.cfg.Schedule.RunOnStart {
		d.runOnce(ctx)
	}

	next := NextRun(time.Now(), hour, minute)
	d.logger.Info("next scheduled run", "at", next)

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("starsweep daemon stopping")
			return nil
		case now := <-ticker.C:
			if now.Before(next) {
				continue
			}
			d.runOnce(ctx)
			next = NextRun(time.Now(), hour, minute)
			d.logger.Info("next scheduled run", "at", next)
		}
	}
}

func (d *Daemon) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if _, err := d.runner.Run(ctx, time.Now()); err != nil {
		d.logger.Error("scheduled run failed", "error", err)
	}
}

// NextRun returns the first instant strictly after now that falls on the
// configured wall-clock time, in now's location.
func NextRun(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
