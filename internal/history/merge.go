package history

import (
	"time"

	"github.com/hamed0406/statusgrid/internal/domain"
)

// MergeAndPrune unions fresh observations into existing history and drops
// everything older than the retention window. Duplicate timestamps are kept
// as distinct data points; the aggregator's last-wins rule handles them.
// Applying the function again with no fresh observations is a no-op.
func MergeAndPrune(existing History, fresh []domain.Observation, retention time.Duration, now time.Time) History {
	cutoff := now.Add(-retention)
	out := make(History, len(existing))

	keep := func(o domain.Observation) {
		if o.Timestamp.Before(cutoff) {
			return
		}
		out[o.Resource] = append(out[o.Resource], o)
	}

	for _, obs := range existing {
		for _, o := range obs {
			keep(o)
		}
	}
	for _, o := range fresh {
		keep(o)
	}
	return out
}
