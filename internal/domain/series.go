package domain

import "time"

// BucketState classifies one fixed-width time bucket of a series.
//
// BucketObserved: at least one observation landed in the window; Outcome holds
// the chronologically latest one.
// BucketFilled: the window fully elapsed with no observation; Outcome carries
// the last known value forward.
// BucketNoData: the window fully elapsed with no observation and nothing
// before it to carry forward.
// BucketFuture: the window has not fully elapsed and holds no observation.
// Never resolved to a value.
type BucketState int

const (
	BucketObserved BucketState = iota
	BucketFilled
	BucketNoData
	BucketFuture
)

func (s BucketState) String() string {
	switch s {
	case BucketObserved:
		return "observed"
	case BucketFilled:
		return "filled"
	case BucketNoData:
		return "nodata"
	case BucketFuture:
		return "future"
	default:
		return "unknown"
	}
}

// Bucket covers the window (Start, End]. Outcome is meaningful only when
// State is BucketObserved or BucketFilled.
type Bucket struct {
	Start   time.Time
	End     time.Time
	State   BucketState
	Outcome Outcome
}

// Series is an ordered sequence of contiguous buckets, oldest first.
// It is derived fresh each run and never persisted.
type Series []Bucket
