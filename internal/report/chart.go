package report

import (
	"github.com/fogleman/gg"

	"github.com/hamed0406/statusgrid/internal/domain"
)

// Cell colors match the rendered legend: up orange, down blue, no-data grey,
// future white.
const (
	colorUp     = "#FA4616"
	colorDown   = "#0021A5"
	colorNoData = "#333333"
	colorFuture = "#FFFFFF"
)

const (
	cellSize = 12
	cellGap  = 2
	margin   = 8
)

// RenderChart draws a day-by-hour heatmap grid to a PNG. Columns are days
// (oldest left), rows are hours (0 at the top).
func RenderChart(grid [][]domain.Bucket, path string) error {
	days := len(grid)
	hours := 0
	if days > 0 {
		hours = len(grid[0])
	}

	w := margin*2 + days*(cellSize+cellGap) - cellGap
	h := margin*2 + hours*(cellSize+cellGap) - cellGap
	if days == 0 || hours == 0 {
		w, h = margin*2, margin*2
	}

	dc := gg.NewContext(w, h)
	dc.SetHexColor(colorFuture)
	dc.Clear()

	for d := 0; d < days; d++ {
		for hr := 0; hr < len(grid[d]); hr++ {
			dc.SetHexColor(cellColor(grid[d][hr]))
			x := float64(margin + d*(cellSize+cellGap))
			y := float64(margin + hr*(cellSize+cellGap))
			dc.DrawRectangle(x, y, cellSize, cellSize)
			dc.Fill()
		}
	}
	return dc.SavePNG(path)
}

func cellColor(b domain.Bucket) string {
	switch b.State {
	case domain.BucketObserved, domain.BucketFilled:
		if b.Outcome == domain.OutcomeUp {
			return colorUp
		}
		return colorDown
	case domain.BucketNoData:
		return colorNoData
	default:
		return colorFuture
	}
}
