package cleanup

import (
	"time"

	"starsweep/internal/history"
	"starsweep/internal/notifications"
)

// Outcome is the terminal state of one media item within a run.
type Outcome string

const (
	OutcomeDeleted     Outcome = "deleted"
	OutcomeWouldDelete Outcome = "would-delete"
	OutcomeKept        Outcome = "kept"
	OutcomeWarned      Outcome = "warned"
	OutcomeFailed      Outcome = "failed"
)

// ActionResult records what happened to one canonical media record.
type ActionResult struct {
	Title   string
	Kind    history.Kind
	Key     string
	Score   float64
	Outcome Outcome
	Reason  string
}

// Summary is the full account of one cleanup run.
type Summary struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	DryRun     bool
	Processed  int
	Results    []ActionResult
}

func (s *Summary) count(outcome Outcome) int {
	n := 0
	for _, res := range s.Results {
		if res.Outcome == outcome {
			n++
		}
	}
	return n
}

func (s *Summary) Deleted() int     { return s.count(OutcomeDeleted) }
func (s *Summary) WouldDelete() int { return s.count(OutcomeWouldDelete) }
func (s *Summary) Kept() int        { return s.count(OutcomeKept) }
func (s *Summary) Warned() int      { return s.count(OutcomeWarned) }
func (s *Summary) Failed() int      { return s.count(OutcomeFailed) }

// Stats converts the summary into the shape the notifier consumes.
func (s *Summary) Stats() notifications.RunStats {
	return notifications.RunStats{
		Deleted:     s.Deleted(),
		WouldDelete: s.WouldDelete(),
		Kept:        s.Kept(),
		Warned:      s.Warned(),
		Failed:      s.Failed(),
		DryRun:      s.DryRun,
		Duration:    s.FinishedAt.Sub(s.StartedAt),
	}
}
