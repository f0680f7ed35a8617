package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/hamed0406/statusgrid/internal/aggregate"
	"github.com/hamed0406/statusgrid/internal/domain"
	"github.com/hamed0406/statusgrid/internal/history"
)

// Renderer produces the visual artifacts for a run: one heatmap chart per
// configured target plus the status page that references them, including a
// recent-history strip bucketed at Width over the Retention window. Output
// is driven by the live target list; stale history keys are ignored.
type Renderer struct {
	Logger    *zap.Logger
	DocsDir   string
	Days      int
	Retention time.Duration
	Width     time.Duration
	Loc       *time.Location
}

func NewRenderer(logger *zap.Logger, docsDir string, days int, retention, width time.Duration, loc *time.Location) *Renderer {
	if loc == nil {
		loc = time.UTC
	}
	return &Renderer{Logger: logger, DocsDir: docsDir, Days: days, Retention: retention, Width: width, Loc: loc}
}

// ChartFilename is the derived name both the renderer and the status page
// agree on for a target's chart.
func ChartFilename(id domain.TargetID) string {
	return "chart_" + domain.SanitizeResource(string(id)) + ".png"
}

// Render writes all charts and the status page. A failure for one target is
// collected and the rest still render; the combined error reports everything
// that went wrong.
func (r *Renderer) Render(h history.History, targets []domain.Target, now time.Time) error {
	if err := os.MkdirAll(r.DocsDir, 0o755); err != nil {
		return fmt.Errorf("create docs dir: %w", err)
	}

	var errs error
	for _, t := range targets {
		grid := aggregate.Grid(h, t.ID, now, r.Days, r.Loc)
		path := filepath.Join(r.DocsDir, ChartFilename(t.ID))
		if err := RenderChart(grid, path); err != nil {
			r.Logger.Warn("chart_failed", zap.String("target", string(t.ID)), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("chart %s: %w", t.ID, err))
			continue
		}
		r.Logger.Info("chart_written", zap.String("target", string(t.ID)), zap.String("path", path))
	}

	if err := writePage(filepath.Join(r.DocsDir, "index.html"), r.pageData(h, targets, now)); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("status page: %w", err))
	}
	return errs
}

func (r *Renderer) pageData(h history.History, targets []domain.Target, now time.Time) pageData {
	latest := h.Latest()

	lastChecked := now.In(r.Loc)
	if len(latest) > 0 {
		var max time.Time
		for _, o := range latest {
			if o.Timestamp.After(max) {
				max = o.Timestamp
			}
		}
		lastChecked = max.In(r.Loc)
	}

	data := pageData{LastChecked: lastChecked.Format("2006-01-02 15:04:05 MST")}
	for _, t := range targets {
		card := serviceCard{
			Name:        t.Name,
			Status:      "Unknown",
			StatusClass: "unknown",
			ChartFile:   ChartFilename(t.ID),
		}
		if o, ok := latest[t.ID]; ok {
			card.Status = string(o.Outcome)
			if o.Outcome == domain.OutcomeUp {
				card.StatusClass = "up"
			} else {
				card.StatusClass = "down"
			}
		}
		for _, b := range aggregate.Bucketize(h, t.ID, now, r.Retention, r.Width) {
			card.Strip = append(card.Strip, stripClass(b))
		}
		data.Services = append(data.Services, card)
	}
	return data
}

// stripClass maps a bucket to the CSS class of its strip cell.
func stripClass(b domain.Bucket) string {
	switch b.State {
	case domain.BucketObserved, domain.BucketFilled:
		if b.Outcome == domain.OutcomeUp {
			return "cell-up"
		}
		return "cell-down"
	case domain.BucketFuture:
		return "cell-future"
	default:
		return "cell-nodata"
	}
}
