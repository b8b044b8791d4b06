package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"starsweep/internal/config"
)

const userAgent = "Starsweep/0.1.0"

// WarnItem is one grace-period warning destined for the grouped digest.
type WarnItem struct {
	Title    string
	Kind     string
	Score    float64
	DaysLeft int
}

// RunStats summarizes a cleanup run for the completion notification.
type RunStats struct {
	Deleted     int
	WouldDelete int
	Kept        int
	Warned      int
	Failed      int
	DryRun      bool
	Duration    time.Duration
}

// Service defines the notification surface exposed to the cleanup engine.
type Service interface {
	NotifyWarnDigest(ctx context.Context, items []WarnItem) error
	NotifyRunCompleted(ctx context.Context, stats RunStats) error
	NotifyRunFailed(ctx context.Context, err error) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &http.Client{Timeout: timeout}
	return &ntfyService{
		endpoint: topic,
		client:   client,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

// NotifyWarnDigest sends a single grouped message for every item entering its
// warning window, one line per title. Nothing is sent for an empty batch.
func (n *ntfyService) NotifyWarnDigest(ctx context.Context, items []WarnItem) error {
	if len(items) == 0 {
		return nil
	}

	var builder strings.Builder
	for i, item := range items {
		if i > 0 {
			builder.WriteString("\n")
		}
		title := strings.TrimSpace(item.Title)
		fmt.Fprintf(&builder, "%s (%s, rated %.1f) deletes in %d day", title, item.Kind, item.Score, item.DaysLeft)
		if item.DaysLeft != 1 {
			builder.WriteString("s")
		}
	}

	data := payload{
		title:   fmt.Sprintf("Starsweep - %d Deletion Warning(s)", len(items)),
		message: builder.String(),
		tags:    []string{"starsweep", "warn"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyRunCompleted(ctx context.Context, stats RunStats) error {
	duration := stats.Duration.Round(time.Second)
	if duration < 0 {
		duration = 0
	}

	var message string
	var title string
	switch {
	case stats.DryRun:
		title = "Starsweep - Dry Run Complete"
		message = fmt.Sprintf("Dry run complete: %d would delete, %d kept, %d failed in %s",
			stats.WouldDelete, stats.Kept, stats.Failed, duration)
	case stats.Failed == 0:
		title = "Starsweep - Run Complete"
		message = fmt.Sprintf("Cleanup complete: %d deleted, %d kept, %d warned in %s",
			stats.Deleted, stats.Kept, stats.Warned, duration)
	default:
		title = "Starsweep - Run Complete (with errors)"
		message = fmt.Sprintf("Cleanup complete: %d deleted, %d kept, %d warned, %d failed in %s",
			stats.Deleted, stats.Kept, stats.Warned, stats.Failed, duration)
	}

	data := payload{
		title:   title,
		message: message,
		tags:    []string{"starsweep", "run", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyRunFailed(ctx context.Context, err error) error {
	message := "unknown"
	if err != nil {
		message = strings.TrimSpace(err.Error())
	}
	data := payload{
		title:    "Starsweep - Run Failed",
		message:  fmt.Sprintf("âŒ Cleanup run aborted: %s", message),
		tags:     []string{"starsweep", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Starsweep - Test",
		message:  "ðŸ§ª Notification system test",
		tags:     []string{"starsweep", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyWarnDigest(context.Context, []WarnItem) error { return nil }
func (noopService) NotifyRunCompleted(context.Context, RunStats) error { return nil }
func (noopService) NotifyRunFailed(context.Context, error) error       { return nil }
func (noopService) TestNotification(context.Context) error             { return nil }
