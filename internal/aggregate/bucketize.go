// Package aggregate resamples raw observation history into fixed-width
// time buckets for rendering.
package aggregate

import (
	"sort"
	"time"

	"github.com/hamed0406/statusgrid/internal/domain"
	"github.com/hamed0406/statusgrid/internal/history"
)

// Bucketize derives the bucketed series for one target over
// [now-retention, now]. The scaffold is built first, purely from now,
// retention and width, so gaps in the data are structural:
//
//   - a bucket holding observations resolves to the chronologically latest
//     one (current known status as of bucket end, not majority vote);
//   - an empty bucket that has fully elapsed carries the last resolved value
//     forward, or is marked no-data when nothing precedes it;
//   - an empty bucket that has not fully elapsed is future and is never
//     coerced to a value. Observations stamped beyond now are ignored, so a
//     bucket starting after now stays future regardless of history contents.
//
// A target with no history at all yields a pure no-data/future series,
// never an error.
func Bucketize(h history.History, target domain.TargetID, now time.Time, retention, width time.Duration) domain.Series {
	count := bucketCount(retention, width)
	anchor := now.Add(-retention)

	windows := make(domain.Series, 0, count)
	for i := 0; i < count; i++ {
		start := anchor.Add(time.Duration(i) * width)
		windows = append(windows, domain.Bucket{Start: start, End: start.Add(width)})
	}
	classify(h[target], windows, now)
	return windows
}

// Grid lays out one target's history as a days x 24 grid of hourly buckets in
// loc, oldest day first, covering whole calendar days up to and including
// today. Hours of the current day that have not elapsed come out future.
func Grid(h history.History, target domain.TargetID, now time.Time, days int, loc *time.Location) [][]domain.Bucket {
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)

	windows := make(domain.Series, 0, days*24)
	for d := days - 1; d >= 0; d-- {
		day := now.AddDate(0, 0, -d)
		for hr := 0; hr < 24; hr++ {
			// time.Date normalizes DST-skipped hours; cells stay well-formed
			start := time.Date(day.Year(), day.Month(), day.Day(), hr, 0, 0, 0, loc)
			windows = append(windows, domain.Bucket{Start: start, End: start.Add(time.Hour)})
		}
	}
	classify(h[target], windows, now)

	grid := make([][]domain.Bucket, days)
	for d := 0; d < days; d++ {
		grid[d] = windows[d*24 : (d+1)*24]
	}
	return grid
}

// bucketCount is ceil(retention/width).
func bucketCount(retention, width time.Duration) int {
	if width <= 0 || retention <= 0 {
		return 0
	}
	n := int(retention / width)
	if retention%width != 0 {
		n++
	}
	return n
}

// classify resolves each pre-built window (Start, End] in place, except that
// the first window also includes its own start. Windows must be in
// chronological order; the forward-fill carries across them.
func classify(obs []domain.Observation, windows domain.Series, now time.Time) {
	sorted := make([]domain.Observation, 0, len(obs))
	for _, o := range obs {
		if o.Timestamp.After(now) {
			continue // clock skew or bogus data; never let it claim a future bucket
		}
		sorted = append(sorted, o)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	idx := 0
	var (
		lastOutcome domain.Outcome
		haveLast    bool
	)
	for i := range windows {
		b := &windows[i]

		// consume observations up to this window's end; the last one inside
		// the window wins. The first window also owns its start so an
		// observation at exactly now-retention (kept by the >= prune rule)
		// still lands in a bucket.
		var latest *domain.Observation
		for idx < len(sorted) && !sorted[idx].Timestamp.After(b.End) {
			if sorted[idx].Timestamp.After(b.Start) || (i == 0 && sorted[idx].Timestamp.Equal(b.Start)) {
				latest = &sorted[idx]
			}
			idx++
		}

		switch {
		case latest != nil:
			b.State = domain.BucketObserved
			b.Outcome = latest.Outcome
			lastOutcome, haveLast = latest.Outcome, true
		case b.End.After(now):
			b.State = domain.BucketFuture
		case haveLast:
			b.State = domain.BucketFilled
			b.Outcome = lastOutcome
		default:
			b.State = domain.BucketNoData
		}
	}
}
