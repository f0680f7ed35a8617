package targets

import (
	"bufio"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/hamed0406/statusgrid/internal/domain"
)

// Defaults is the built-in target set used when no list is configured.
func Defaults() []domain.Target {
	return []domain.Target{
		{ID: "google.com", Name: "Google"},
		{ID: "github.com", Name: "GitHub"},
	}
}

// Parse reads a newline-delimited target list. Each line is either a bare
// address or "DisplayName=address"; blank lines are skipped.
func Parse(r io.Reader) ([]domain.Target, error) {
	var out []domain.Target
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if name, addr, ok := strings.Cut(line, "="); ok {
			out = append(out, domain.Target{
				ID:   domain.TargetID(strings.TrimSpace(addr)),
				Name: strings.TrimSpace(name),
			})
		} else {
			out = append(out, domain.Target{ID: domain.TargetID(line), Name: line})
		}
	}
	return out, sc.Err()
}

// Load reads the target list at path. A missing, unreadable or empty file
// degrades to the built-in defaults; usedDefaults reports that so the caller
// can decide whether the fallback is acceptable.
func Load(path string, log *zap.Logger) (ts []domain.Target, usedDefaults bool) {
	f, err := os.Open(path)
	if err != nil {
		log.Warn("targets_file_missing", zap.String("path", path), zap.Error(err))
		return Defaults(), true
	}
	defer f.Close()

	ts, err = Parse(f)
	if err != nil {
		log.Warn("targets_file_unreadable", zap.String("path", path), zap.Error(err))
		return Defaults(), true
	}
	if len(ts) == 0 {
		log.Warn("targets_file_empty", zap.String("path", path))
		return Defaults(), true
	}
	log.Info("targets_loaded", zap.String("path", path), zap.Int("count", len(ts)))
	return ts, false
}
