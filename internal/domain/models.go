package domain

import "time"

type TargetID string

// Target is a monitored endpoint. Identity is the raw address string;
// Name is cosmetic and may equal the ID.
type Target struct {
	ID   TargetID `json:"id"`
	Name string   `json:"name"`
}

// Outcome is the result of one reachability check.
type Outcome string

const (
	OutcomeUp   Outcome = "Up"
	OutcomeDown Outcome = "Down"
)

// Observation is one timestamped check result for a target. Immutable once
// created; Timestamp always carries the reference zone after ingestion.
type Observation struct {
	Resource  TargetID  `json:"resource"`
	Outcome   Outcome   `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
