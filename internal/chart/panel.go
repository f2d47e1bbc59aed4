package chart

import (
	"image/color"
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"cocoa/internal/table"
)

// Kind selects what a panel shows.
type Kind int

const (
	// YieldScatter plots one point per year at (Year, Yield).
	YieldScatter Kind = iota
	// AreaBar plots one bar per year with the area harvested.
	AreaBar
)

const (
	labelYear  = "Year"
	labelYield = "Yield (tonnes/ha)"
	labelArea  = "Area Harvested (ha)"
)

// DefaultColor is used for panels that do not set one.
var DefaultColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}

// Panel is one chart of a Figure.
type Panel struct {
	Kind  Kind
	Table *table.CountryTable
	Title string
	Color color.Color
	// TickRotation turns the year labels of bar panels, in radians.
	TickRotation float64
}

func (panel Panel) plot(width vg.Length) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = panel.Title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = labelYear

	col := panel.Color
	if col == nil {
		col = DefaultColor
	}

	if panel.Kind == AreaBar {
		return p, addAreaBars(p, panel, col, width)
	}
	return p, addYieldScatter(p, panel, col)
}

func addYieldScatter(p *plot.Plot, panel Panel, col color.Color) error {
	p.Y.Label.Text = labelYield
	p.Add(plotter.NewGrid())

	rows := panel.Table.Rows
	if len(rows) == 0 {
		emptyRange(p)
		return nil
	}

	points := make(plotter.XYs, len(rows))
	for i, row := range rows {
		points[i].X = float64(row.Year)
		points[i].Y = row.Yield
	}

	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return err
	}
	scatter.GlyphStyle.Color = col
	scatter.GlyphStyle.Radius = vg.Points(3)
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}

	p.Add(scatter)
	return nil
}

func addAreaBars(p *plot.Plot, panel Panel, col color.Color, width vg.Length) error {
	p.Y.Label.Text = labelArea
	p.Y.Tick.Marker = groupedTicks{}

	rows := panel.Table.Rows
	if len(rows) == 0 {
		emptyRange(p)
		return nil
	}

	values, years := yearSeries(rows)

	bars, err := plotter.NewBarChart(values, barWidth(width, len(values)))
	if err != nil {
		return err
	}
	bars.Color = col
	bars.LineStyle.Width = vg.Length(0)

	p.Add(bars)

	p.NominalX(years...)
	if panel.TickRotation != 0 {
		p.X.Tick.Label.Rotation = panel.TickRotation
		p.X.Tick.Label.XAlign = draw.XRight
		p.X.Tick.Label.YAlign = draw.YCenter
	}
	return nil
}

// yearSeries lays the area harvested out on one slot per calendar year from
// the first to the last row, so missing years stay visible as empty slots.
func yearSeries(rows []table.Row) (plotter.Values, []string) {
	first := rows[0].Year
	n := rows[len(rows)-1].Year - first + 1

	values := make(plotter.Values, n)
	years := make([]string, n)
	for i := range years {
		years[i] = strconv.Itoa(first + i)
	}
	for _, row := range rows {
		values[row.Year-first] = row.AreaHarvested
	}
	return values, years
}

// barWidth spreads n bars over most of a panel of the given width.
func barWidth(width vg.Length, n int) vg.Length {
	w := width * 0.8 / vg.Length(n) * 0.7
	if w < vg.Points(1) {
		return vg.Points(1)
	}
	return w
}

func emptyRange(p *plot.Plot) {
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1
}

var tickPrinter = message.NewPrinter(language.English)

// groupedTicks labels large default ticks with thousands separators instead
// of exponent notation.
type groupedTicks struct{}

func (groupedTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i := range ticks {
		if ticks[i].Label == "" {
			continue
		}
		if v := ticks[i].Value; math.Abs(v) >= 1000 {
			ticks[i].Label = tickPrinter.Sprintf("%d", int64(math.Round(v)))
		}
	}
	return ticks
}
