package probe

import (
	"context"
	"time"

	"github.com/go-ping/ping"
)

// PingChecker probes with unprivileged ICMP echo. A target counts as up when
// at least one reply comes back within the timeout.
type PingChecker struct {
	Count   int
	Timeout time.Duration
}

func NewPingChecker(count int, timeout time.Duration) *PingChecker {
	if count < 1 {
		count = 1
	}
	return &PingChecker{Count: count, Timeout: timeout}
}

func (p *PingChecker) Check(ctx context.Context, target string) Outcome {
	pinger, err := ping.NewPinger(target)
	if err != nil {
		return Outcome{Up: false, Reason: err.Error()}
	}
	pinger.Count = p.Count
	pinger.Timeout = p.Timeout
	pinger.SetPrivileged(false)

	// Run is bounded by pinger.Timeout; tighten it when the caller's context
	// expires sooner so a run never outlives its per-target deadline.
	if deadline, ok := ctx.Deadline(); ok {
		if d := time.Until(deadline); d > 0 && d < pinger.Timeout {
			pinger.Timeout = d
		}
	}

	if err := pinger.Run(); err != nil {
		return Outcome{Up: false, Reason: err.Error()}
	}

	stats := pinger.Statistics()
	if stats.PacketsRecv == 0 {
		return Outcome{Up: false, Reason: "no replies"}
	}
	return Outcome{
		Up:        true,
		LatencyMS: float64(stats.AvgRtt) / float64(time.Millisecond),
		Reason:    "icmp_echo",
	}
}
