package chart

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"gonum.org/v1/plot/vg"

	"cocoa/internal/table"
)

// PlotScatter writes a yield-over-time scatter chart of t to path.
func PlotScatter(t *table.CountryTable, label, path string) error {
	return Render(path, Figure{
		Rows:   1,
		Cols:   1,
		Width:  10 * vg.Inch,
		Height: 5 * vg.Inch,
		Panels: []Panel{{
			Kind:  YieldScatter,
			Table: t,
			Title: fmt.Sprintf("Cocoa Yield in %s over the Years", label),
		}},
	})
}

// PlotBar writes an area-harvested bar chart of t to path, one bar per year.
func PlotBar(t *table.CountryTable, label, path string) error {
	return Render(path, Figure{
		Rows:   1,
		Cols:   1,
		Width:  12 * vg.Inch,
		Height: 6 * vg.Inch,
		Panels: []Panel{{
			Kind:         AreaBar,
			Table:        t,
			Title:        fmt.Sprintf("Area Harvested for Cocoa in %s", label),
			TickRotation: math.Pi / 4,
		}},
	})
}

// Series is one entity of a composite chart.
type Series struct {
	Label string
	Table *table.CountryTable
	Color color.Color
}

// CompositePlot writes a single figure with one column per series: yield
// scatter on top, area bars below.
func CompositePlot(series []Series, path string) error {
	if len(series) == 0 {
		return fmt.Errorf("chart: composite plot needs at least one series")
	}

	cols := len(series)
	panels := make([]Panel, 2*cols)
	labels := make([]string, cols)
	for i, s := range series {
		labels[i] = s.Label
		panels[i] = Panel{
			Kind:  YieldScatter,
			Table: s.Table,
			Title: fmt.Sprintf("%s: Yield Over Time", s.Label),
			Color: s.Color,
		}
		panels[cols+i] = Panel{
			Kind:         AreaBar,
			Table:        s.Table,
			Title:        fmt.Sprintf("%s: Area Harvested Over Time", s.Label),
			Color:        s.Color,
			TickRotation: math.Pi / 2,
		}
	}

	return Render(path, Figure{
		Title:  "Cocoa Production Analysis: " + joinLabels(labels),
		Rows:   2,
		Cols:   cols,
		Width:  9 * vg.Inch * vg.Length(cols),
		Height: 12 * vg.Inch,
		Panels: panels,
	})
}

// joinLabels renders "A", "A and B" or "A, B and C".
func joinLabels(labels []string) string {
	switch len(labels) {
	case 0:
		return ""
	case 1:
		return labels[0]
	}
	return strings.Join(labels[:len(labels)-1], ", ") + " and " + labels[len(labels)-1]
}
