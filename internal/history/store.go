package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/statusgrid/internal/domain"
)

// record is the persisted wire form of one observation. Older files may carry
// extra fields; they are ignored on read.
type record struct {
	Resource  string `json:"resource"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// Store reads and writes the durable observation history. All timestamps are
// normalized into Loc on load; offset-less timestamps are interpreted as
// already being in Loc rather than compared against zoned ones as-is.
type Store struct {
	Path string
	Loc  *time.Location
	Log  *zap.Logger
}

func NewStore(path string, loc *time.Location, log *zap.Logger) *Store {
	if loc == nil {
		loc = time.UTC
	}
	return &Store{Path: path, Loc: loc, Log: log}
}

// Load reads the history file. A missing or malformed file degrades to an
// empty history with a logged warning; it never fails the run. Records with
// unparseable timestamps are skipped individually.
func (s *Store) Load() History {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.Log.Warn("history_unreadable", zap.String("path", s.Path), zap.Error(err))
		}
		return History{}
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		s.Log.Warn("history_malformed", zap.String("path", s.Path), zap.Error(err))
		return History{}
	}

	h := History{}
	for _, r := range records {
		ts, err := s.parseTimestamp(r.Timestamp)
		if err != nil {
			s.Log.Warn("history_bad_timestamp",
				zap.String("resource", r.Resource),
				zap.String("timestamp", r.Timestamp),
				zap.Error(err),
			)
			continue
		}
		outcome := domain.OutcomeDown
		if r.Status == string(domain.OutcomeUp) {
			outcome = domain.OutcomeUp
		}
		id := domain.TargetID(r.Resource)
		h[id] = append(h[id], domain.Observation{
			Resource:  id,
			Outcome:   outcome,
			Timestamp: ts,
		})
	}
	return h
}

// Save writes the history atomically: marshal to a temp file in the same
// directory, then rename over the destination so a concurrent reader never
// sees a partial file.
func (s *Store) Save(h History) error {
	records := flatten(h)
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".results-*.json")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename into place: %w", err)
	}
	s.Log.Info("history_saved", zap.String("path", s.Path), zap.Int("records", len(records)))
	return nil
}

// flatten orders the history by timestamp (then resource) so saved files are
// deterministic and diffable.
func flatten(h History) []record {
	var all []domain.Observation
	for _, obs := range h {
		all = append(all, obs...)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Timestamp.Equal(all[j].Timestamp) {
			return all[i].Resource < all[j].Resource
		}
		return all[i].Timestamp.Before(all[j].Timestamp)
	})
	records := make([]record, 0, len(all))
	for _, o := range all {
		records = append(records, record{
			Resource:  string(o.Resource),
			Status:    string(o.Outcome),
			Timestamp: o.Timestamp.Format(time.RFC3339Nano),
		})
	}
	return records
}

// naiveLayouts are accepted for timestamps written without a UTC offset.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func (s *Store) parseTimestamp(v string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339Nano, v); err == nil {
		return ts.In(s.Loc), nil
	}
	for _, layout := range naiveLayouts {
		if ts, err := time.ParseInLocation(layout, v, s.Loc); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", v)
}
