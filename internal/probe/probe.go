package probe

import "context"

// Outcome is the unified result of a single reachability probe.
//
// StatusCode is the HTTP status when available; 0 for transport/DNS errors
// and non-HTTP probes.
type Outcome struct {
	Up         bool
	StatusCode int
	LatencyMS  float64
	Reason     string
}

// Checker performs a single check for a given target address.
// Implementations must respect ctx and never block past their timeout.
type Checker interface {
	Check(ctx context.Context, target string) Outcome
}
