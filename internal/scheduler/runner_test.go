package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/statusgrid/internal/domain"
	"github.com/hamed0406/statusgrid/internal/probe"
)

type mapChecker struct {
	mu sync.Mutex
	up map[string]bool
}

func (m *mapChecker) Check(ctx context.Context, target string) probe.Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()
	return probe.Outcome{Up: m.up[target], Reason: "test"}
}

func TestRunOnce_OneObservationPerTarget(t *testing.T) {
	chk := &mapChecker{up: map[string]bool{
		"a.example": true,
		"b.example": false,
		"c.example": true,
	}}
	r := NewRunner(zap.NewNop(), chk, time.Second, 2, time.UTC)

	targets := []domain.Target{
		{ID: "a.example", Name: "A"},
		{ID: "b.example", Name: "B"},
		{ID: "c.example", Name: "C"},
	}
	obs := r.RunOnce(context.Background(), targets)
	if len(obs) != len(targets) {
		t.Fatalf("want %d observations, got %d", len(targets), len(obs))
	}

	byID := map[domain.TargetID]domain.Outcome{}
	for _, o := range obs {
		byID[o.Resource] = o.Outcome
		if o.Timestamp.IsZero() {
			t.Fatalf("zero timestamp for %s", o.Resource)
		}
		if o.Timestamp.Location() != time.UTC {
			t.Fatalf("timestamp not in reference zone: %v", o.Timestamp)
		}
	}
	if byID["a.example"] != domain.OutcomeUp || byID["b.example"] != domain.OutcomeDown {
		t.Fatalf("outcomes wrong: %+v", byID)
	}
}

type slowChecker struct{}

func (slowChecker) Check(ctx context.Context, target string) probe.Outcome {
	select {
	case <-ctx.Done():
		return probe.Outcome{Up: false, Reason: ctx.Err().Error()}
	case <-time.After(5 * time.Second):
		return probe.Outcome{Up: true}
	}
}

func TestRunOnce_TimeoutBecomesDown(t *testing.T) {
	r := NewRunner(zap.NewNop(), slowChecker{}, 30*time.Millisecond, 1, time.UTC)
	obs := r.RunOnce(context.Background(), []domain.Target{{ID: "slow.example"}})
	if len(obs) != 1 {
		t.Fatalf("want 1 observation, got %d", len(obs))
	}
	if obs[0].Outcome != domain.OutcomeDown {
		t.Fatalf("timeout must record Down, got %v", obs[0].Outcome)
	}
}
