package daemon_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"starsweep/internal/cleanup"
	"starsweep/internal/config"
	"starsweep/internal/daemon"
	"starsweep/internal/testsupport"
)

type countingRunner struct {
	runs atomic.Int32
	ran  chan struct{}
}

func (r *countingRunner) Run(context.Context, time.Time) (*cleanup.Summary, error) {
	r.runs.Add(1)
	if r.ran != nil {
		select {
		case r.ran <- struct{}{}:
		default:
		}
	}
	return &cleanup.Summary{}, nil
}

func testDaemonConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	cfg.Schedule.RunOnStart = true
	return cfg
}

func TestNextRun(t *testing.T) {
	t.Parallel()

	loc := time.UTC
	now := time.Date(2026, 8, 1, 1, 30, 0, 0, loc)

	if got := daemon.NextRun(now, 2, 0); !got.Equal(time.Date(2026, 8, 1, 2, 0, 0, 0, loc)) {
		t.Fatalf("run time later today must schedule today, got %v", got)
	}
	if got := daemon.NextRun(now, 1, 0); !got.Equal(time.Date(2026, 8, 2, 1, 0, 0, 0, loc)) {
		t.Fatalf("run time already past must schedule tomorrow, got %v", got)
	}
	// Exactly at the run time the next run is tomorrow, never an immediate re-run.
	at := time.Date(2026, 8, 1, 2, 0, 0, 0, loc)
	if got := daemon.NextRun(at, 2, 0); !got.Equal(at.AddDate(0, 0, 1)) {
		t.Fatalf("boundary must schedule tomorrow, got %v", got)
	}
}

func TestServeRunsOnStartAndStopsOnCancel(t *testing.T) {
	t.Parallel()

	cfg := testDaemonConfig(t)
	runner := &countingRunner{ran: make(chan struct{}, 1)}
	d, err := daemon.New(cfg, runner, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Serve(ctx) }()

	select {
	case <-runner.ran:
	case <-time.After(5 * time.Second):
		t.Fatal("run_on_start pass never executed")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve must return nil on cancel, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not stop after cancel")
	}

	if got := runner.runs.Load(); got != 1 {
		t.Fatalf("expected exactly one eager run, got %d", got)
	}
	if d.Running() {
		t.Fatal("daemon must not report running after Serve returns")
	}
}

func TestServeRefusesSecondInstance(t *testing.T) {
	t.Parallel()

	cfg := testDaemonConfig(t)
	cfg.Schedule.RunOnStart = false

	first, err := daemon.New(cfg, &countingRunner{}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- first.Serve(ctx) }()

	deadline := time.Now().Add(5 * time.Second)
	for !first.Running() {
		if time.Now().After(deadline) {
			t.Fatal("first daemon never acquired the lock")
		}
		time.Sleep(10 * time.Millisecond)
	}

	second, err := daemon.New(cfg, &countingRunner{}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := second.Serve(ctx); err == nil {
		t.Fatal("second instance must fail to acquire the lock")
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("first Serve returned error: %v", err)
	}
}
