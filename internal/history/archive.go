package history

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/statusgrid/internal/domain"
)

// Archive splits the results file at now-retention: expired observations are
// appended to the archive file, the rest are written back. Both writes go
// through the atomic Save path. The archive is written before the results so
// a crash between the two cannot lose expired records; the append skips
// records the archive already holds, so re-running after such a crash does
// not duplicate them.
func Archive(results, archive *Store, retention time.Duration, now time.Time, log *zap.Logger) error {
	all := results.Load()
	cutoff := now.Add(-retention)

	kept := History{}
	var expired []domain.Observation
	for id, obs := range all {
		for _, o := range obs {
			if o.Timestamp.Before(cutoff) {
				expired = append(expired, o)
			} else {
				kept[id] = append(kept[id], o)
			}
		}
	}

	appended := 0
	if len(expired) > 0 {
		arch := archive.Load()
		seen := make(map[string]struct{}, arch.Len())
		for _, obs := range arch {
			for _, o := range obs {
				seen[obsKey(o)] = struct{}{}
			}
		}
		for _, o := range expired {
			if _, ok := seen[obsKey(o)]; ok {
				continue
			}
			arch[o.Resource] = append(arch[o.Resource], o)
			appended++
		}
		if appended > 0 {
			if err := archive.Save(arch); err != nil {
				return fmt.Errorf("append archive: %w", err)
			}
		}
	}
	if err := results.Save(kept); err != nil {
		return fmt.Errorf("rewrite results: %w", err)
	}
	log.Info("archive_done",
		zap.Int("archived", appended),
		zap.Int("expired", len(expired)),
		zap.Int("retained", kept.Len()),
	)
	return nil
}

func obsKey(o domain.Observation) string {
	return string(o.Resource) + "|" + o.Timestamp.Format(time.RFC3339Nano) + "|" + string(o.Outcome)
}

// ReadRaw exposes the raw persisted records (used by the status API to serve
// the file as-is without re-marshaling semantics).
func ReadRaw(path string) (json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}
