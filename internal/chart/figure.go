// Package chart draws yield and area-harvested charts with gonum/plot.
//
// Every chart, single or multi-panel, is a Figure: a grid of panels rendered
// onto one canvas and written to a file whose extension picks the format.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Figure is a grid of panels. Panels fill the grid row by row; cells past
// the last panel stay blank.
type Figure struct {
	Title      string
	TitleSize  vg.Length
	Rows, Cols int
	Panels     []Panel
	Width      vg.Length
	Height     vg.Length
}

func (f Figure) validate() error {
	switch {
	case f.Rows <= 0 || f.Cols <= 0:
		return fmt.Errorf("chart: invalid grid %dx%d", f.Rows, f.Cols)
	case len(f.Panels) == 0:
		return errors.New("chart: figure has no panels")
	case len(f.Panels) > f.Rows*f.Cols:
		return fmt.Errorf("chart: %d panels do not fit a %dx%d grid", len(f.Panels), f.Rows, f.Cols)
	case f.Width <= 0 || f.Height <= 0:
		return errors.New("chart: figure size must be positive")
	}
	for i, panel := range f.Panels {
		if panel.Table == nil {
			return fmt.Errorf("chart: panel %d has no table", i)
		}
	}
	return nil
}

// Render draws fig and writes it to path. The format comes from the file
// extension (png when there is none).
func Render(path string, fig Figure) error {
	if err := fig.validate(); err != nil {
		return err
	}

	c, err := draw.NewFormattedCanvas(fig.Width, fig.Height, formatOf(path))
	if err != nil {
		return fmt.Errorf("chart: %s: %w", path, err)
	}
	dc := draw.New(c)

	plots := make([][]*plot.Plot, fig.Rows)
	for j := range plots {
		plots[j] = make([]*plot.Plot, fig.Cols)
	}
	for i, panel := range fig.Panels {
		p, err := panel.plot(fig.Width / vg.Length(fig.Cols))
		if err != nil {
			return fmt.Errorf("chart: panel %q: %w", panel.Title, err)
		}
		plots[i/fig.Cols][i%fig.Cols] = p
	}

	tiles := draw.Tiles{
		Rows:      fig.Rows,
		Cols:      fig.Cols,
		PadX:      vg.Points(30),
		PadY:      vg.Points(30),
		PadTop:    vg.Points(10),
		PadBottom: vg.Points(10),
		PadLeft:   vg.Points(10),
		PadRight:  vg.Points(10),
	}
	if fig.Title != "" {
		size := fig.TitleSize
		if size <= 0 {
			size = vg.Points(20)
		}
		tiles.PadTop += size * 2
		drawSuptitle(dc, fig.Title, size)
	}

	canvases := plot.Align(plots, tiles, dc)
	for j := range plots {
		for i, p := range plots[j] {
			if p != nil {
				p.Draw(canvases[j][i])
			}
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("chart: %w", err)
	}
	if _, err := c.WriteTo(file); err != nil {
		file.Close()
		return fmt.Errorf("chart: write %s: %w", path, err)
	}
	return file.Close()
}

func drawSuptitle(dc draw.Canvas, title string, size vg.Length) {
	style := text.Style{
		Color:   color.Black,
		Font:    font.From(plot.DefaultFont, size),
		XAlign:  text.XCenter,
		YAlign:  text.YTop,
		Handler: plot.DefaultTextHandler,
	}
	pt := vg.Point{
		X: dc.Min.X + (dc.Max.X-dc.Min.X)/2,
		Y: dc.Max.Y - size/2,
	}
	dc.FillText(style, pt, title)
}

func formatOf(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return "png"
	}
	return ext
}
