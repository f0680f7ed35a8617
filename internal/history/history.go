package history

import (
	"github.com/hamed0406/statusgrid/internal/domain"
)

// History maps each target to its retained observations. Insertion order is
// irrelevant; anything that processes a sequence orders it by timestamp.
type History map[domain.TargetID][]domain.Observation

// Latest returns the most recent observation per target.
func (h History) Latest() map[domain.TargetID]domain.Observation {
	out := make(map[domain.TargetID]domain.Observation, len(h))
	for id, obs := range h {
		for _, o := range obs {
			cur, ok := out[id]
			if !ok || o.Timestamp.After(cur.Timestamp) {
				out[id] = o
			}
		}
	}
	return out
}

// Len counts all retained observations.
func (h History) Len() int {
	n := 0
	for _, obs := range h {
		n += len(obs)
	}
	return n
}
