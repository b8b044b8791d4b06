package ratings

import "fmt"

// Rating modes. Unknown modes fall back to average semantics with a surfaced
// warning rather than failing the item.
const (
	ModeAverage = "average"
	ModeAnyHigh = "any_high"
)

// Verdict is the DELETE/KEEP output of the rating policy. It is never
// persisted; the engine folds it into the run summary.
type Verdict struct {
	Delete bool
	// Score is the representative rating for display: the arithmetic mean of
	// the contributing ratings, zero when there are none.
	Score  float64
	Reason string
	// ModeWarning is set when the configured mode was not recognized and
	// average semantics were applied instead.
	ModeWarning string
}

// Decide evaluates a set of ratings against a threshold. All inputs are on
// the canonical 10-point scale; scale normalization is the caller's job.
// The threshold boundary keeps: a mean or single rating equal to the
// threshold never deletes.
func Decide(values []float64, threshold float64, mode string) Verdict {
	if len(values) == 0 {
		return Verdict{Reason: "no ratings"}
	}

	score := mean(values)
	verdict := Verdict{Score: score}

	switch mode {
	case ModeAnyHigh:
		for _, value := range values {
			if value >= threshold {
				verdict.Reason = fmt.Sprintf("kept by a %.1f rating at or above %.1f", value, threshold)
				return verdict
			}
		}
		verdict.Delete = true
		verdict.Reason = fmt.Sprintf("no rating at or above %.1f", threshold)
		return verdict
	case ModeAverage:
	default:
		verdict.ModeWarning = fmt.Sprintf("unknown rating mode %q, using average", mode)
	}

	if score < threshold {
		verdict.Delete = true
		verdict.Reason = fmt.Sprintf("average %.2f below threshold %.1f", score, threshold)
	} else {
		verdict.Reason = fmt.Sprintf("average %.2f at or above threshold %.1f", score, threshold)
	}
	return verdict
}

func mean(values []float64) float64 {
	var sum float64
	for _, value := range values {
		sum += value
	}
	return sum / float64(len(values))
}
