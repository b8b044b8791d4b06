package notifications_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"starsweep/internal/config"
	"starsweep/internal/notifications"
)

type captured struct {
	title    string
	tags     string
	priority string
	body     string
	calls    int
}

func newCaptureServer(t *testing.T, out *captured) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		out.calls++
		out.title = r.Header.Get("Title")
		out.tags = r.Header.Get("Tags")
		out.priority = r.Header.Get("Priority")
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read body: %v", err)
		}
		out.body = string(body)
		w.WriteHeader(http.StatusOK)
	}))
}

func serviceFor(topic string) notifications.Service {
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = topic
	cfg.Notifications.RequestTimeout = 5
	return notifications.NewService(&cfg)
}

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	svc := serviceFor("")
	if err := svc.NotifyRunFailed(context.Background(), errors.New("boom")); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
}

func TestWarnDigestGroupsItemsIntoOneMessage(t *testing.T) {
	var got captured
	server := newCaptureServer(t, &got)
	defer server.Close()

	svc := serviceFor(server.URL)
	items := []notifications.WarnItem{
		{Title: "Madame Web", Kind: "movie", Score: 3.6, DaysLeft: 7},
		{Title: "Velma", Kind: "series", Score: 2.9, DaysLeft: 1},
	}
	if err := svc.NotifyWarnDigest(context.Background(), items); err != nil {
		t.Fatalf("NotifyWarnDigest: %v", err)
	}

	if got.calls != 1 {
		t.Fatalf("digest must be a single request, got %d", got.calls)
	}
	if got.title != "Starsweep - 2 Deletion Warning(s)" {
		t.Fatalf("unexpected title %q", got.title)
	}
	want := "Madame Web (movie, rated 3.6) deletes in 7 days\nVelma (series, rated 2.9) deletes in 1 day"
	if got.body != want {
		t.Fatalf("expected %q, got %q", want, got.body)
	}
}

func TestWarnDigestSkipsEmptyBatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected call for empty digest: %s", r.URL.String())
	}))
	defer server.Close()

	svc := serviceFor(server.URL)
	if err := svc.NotifyWarnDigest(context.Background(), nil); err != nil {
		t.Fatalf("empty digest must be a no-op, got %v", err)
	}
}

func TestRunCompletedFormatsDryRunAndLive(t *testing.T) {
	var got captured
	server := newCaptureServer(t, &got)
	defer server.Close()

	svc := serviceFor(server.URL)

	stats := notifications.RunStats{WouldDelete: 3, Kept: 10, DryRun: true, Duration: 90 * time.Second}
	if err := svc.NotifyRunCompleted(context.Background(), stats); err != nil {
		t.Fatalf("NotifyRunCompleted: %v", err)
	}
	if got.title != "Starsweep - Dry Run Complete" {
		t.Fatalf("unexpected title %q", got.title)
	}
	if got.body != "Dry run complete: 3 would delete, 10 kept, 0 failed in 1m30s" {
		t.Fatalf("unexpected body %q", got.body)
	}

	stats = notifications.RunStats{Deleted: 2, Kept: 8, Warned: 1, Failed: 1, Duration: time.Minute}
	if err := svc.NotifyRunCompleted(context.Background(), stats); err != nil {
		t.Fatalf("NotifyRunCompleted: %v", err)
	}
	if got.title != "Starsweep - Run Complete (with errors)" {
		t.Fatalf("unexpected title %q", got.title)
	}
}

func TestRunFailedUsesHighPriority(t *testing.T) {
	var got captured
	server := newCaptureServer(t, &got)
	defer server.Close()

	svc := serviceFor(server.URL)
	if err := svc.NotifyRunFailed(context.Background(), errors.New("tautulli unreachable")); err != nil {
		t.Fatalf("NotifyRunFailed: %v", err)
	}
	if got.priority != "high" {
		t.Fatalf("expected high priority, got %q", got.priority)
	}
	if got.tags != "starsweep,error,alert" {
		t.Fatalf("unexpected tags %q", got.tags)
	}
}

func TestSendSurfacesServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer server.Close()

	svc := serviceFor(server.URL)
	if err := svc.TestNotification(context.Background()); err == nil {
		t.Fatal("expected error for non-2xx ntfy response")
	}
}
