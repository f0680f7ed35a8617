package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hamed0406/statusgrid/internal/domain"
	"github.com/hamed0406/statusgrid/internal/probe"
)

// Runner performs one probe pass over the target list. Each run is a
// short-lived batch: probe everything, hand the observations back, done.
type Runner struct {
	Logger      *zap.Logger
	Checker     probe.Checker
	Timeout     time.Duration
	Concurrency int
	Loc         *time.Location
}

func NewRunner(logger *zap.Logger, checker probe.Checker, timeout time.Duration, concurrency int, loc *time.Location) *Runner {
	if concurrency < 1 {
		concurrency = 1
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Runner{
		Logger:      logger,
		Checker:     checker,
		Timeout:     timeout,
		Concurrency: concurrency,
		Loc:         loc,
	}
}

// RunOnce probes every target with bounded concurrency and returns one
// observation per target. Probe failures and timeouts become Down
// observations; they never fail the pass. Result order is unspecified.
func (r *Runner) RunOnce(ctx context.Context, targets []domain.Target) []domain.Observation {
	var (
		mu  sync.Mutex
		out = make([]domain.Observation, 0, len(targets))
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.Concurrency)

	for _, tgt := range targets {
		t := tgt
		g.Go(func() error {
			cctx, cancel := context.WithTimeout(ctx, r.Timeout)
			defer cancel()

			res := r.Checker.Check(cctx, string(t.ID))

			outcome := domain.OutcomeDown
			if res.Up {
				outcome = domain.OutcomeUp
			}
			obs := domain.Observation{
				Resource:  t.ID,
				Outcome:   outcome,
				Timestamp: time.Now().In(r.Loc),
			}

			mu.Lock()
			out = append(out, obs)
			mu.Unlock()

			r.Logger.Info("checked",
				zap.String("target", string(t.ID)),
				zap.Bool("up", res.Up),
				zap.Int("status", res.StatusCode),
				zap.Float64("latency_ms", res.LatencyMS),
				zap.String("reason", res.Reason),
			)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; failures are Down observations
	return out
}
