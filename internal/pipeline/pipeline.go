// Package pipeline runs load, filter, tabulate and chart for every configured
// entity.
package pipeline

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"cocoa/internal/chart"
	"cocoa/internal/config"
	"cocoa/internal/faostat"
	"cocoa/internal/table"
)

// CompositeFile is the name of the combined chart.
const CompositeFile = "combined_cocoa_plots.png"

// Report describes what a run produced.
type Report struct {
	// Tables is keyed by entity slug.
	Tables map[string]*table.CountryTable
	Files  []string
	// Aborted is set when the input file was missing and nothing was written.
	Aborted bool
}

// Runner executes one run. Progress goes to Out, or stdout when Out is nil.
type Runner struct {
	Config config.Config
	Out    io.Writer
}

// Run normalizes and validates the configuration, loads the input once,
// writes one table per entity and draws the charts selected by the mode. A
// missing input file is reported on Out and ends the run without error and
// without touching the output directory.
func (r *Runner) Run() (*Report, error) {
	cfg := r.Config
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	out := r.Out
	if out == nil {
		out = os.Stdout
	}
	p := message.NewPrinter(language.English)
	outPath := func(name string) string {
		return filepath.Join(cfg.OutputDir, name)
	}

	policy, err := cfg.DuplicatePolicy()
	if err != nil {
		return nil, err
	}

	records, err := faostat.Load(cfg.InputPath)
	if errors.Is(err, faostat.ErrFileNotFound) {
		fmt.Fprintf(out, "Error: The file '%s' was not found.\n", cfg.InputPath)
		fmt.Fprintln(out, "Please make sure the CSV file is in the working directory, or set COCOA_INPUT_PATH to the correct file path.")
		return &Report{Aborted: true}, nil
	}
	if err != nil {
		return nil, err
	}
	p.Fprintf(out, "📊 Data read: %d records\n", len(records))

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}

	report := &Report{Tables: make(map[string]*table.CountryTable, len(cfg.Entities))}
	series := make([]chart.Series, 0, len(cfg.Entities))

	for _, e := range cfg.Entities {
		rows := faostat.Filter(records, e.Name)
		if len(rows) == 0 {
			fmt.Fprintf(out, "⚠️  No records for %q (%d areas in the file)\n", e.Name, len(faostat.Areas(records)))
		}

		t, err := table.Tabulate(rows, policy)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name, err)
		}
		report.Tables[e.Slug] = t
		series = append(series, chart.Series{Label: e.Label, Table: t, Color: e.RGBA()})

		path := outPath(e.Slug + "_cocoa_data.csv")
		if err := writeTable(path, t); err != nil {
			return nil, err
		}
		report.Files = append(report.Files, path)

		if t.Len() > 0 {
			fmt.Fprintf(out, "🌍 %s: %d years (%d-%d)\n", e.Label, t.Len(), t.Rows[0].Year, t.Rows[t.Len()-1].Year)
		}
	}

	if cfg.Workbook != "" {
		sheets := make([]table.Sheet, len(cfg.Entities))
		for i, e := range cfg.Entities {
			sheets[i] = table.Sheet{Name: e.Label, Table: report.Tables[e.Slug]}
		}
		path := outPath(cfg.Workbook)
		if err := table.WriteWorkbook(path, sheets); err != nil {
			return nil, err
		}
		report.Files = append(report.Files, path)
	}

	if cfg.Individual() {
		for i, e := range cfg.Entities {
			t := series[i].Table

			path := outPath(e.Slug + "_yield_plot.png")
			if err := chart.PlotScatter(t, e.Label, path); err != nil {
				return nil, err
			}
			report.Files = append(report.Files, path)

			path = outPath(e.Slug + "_area_harvested_plot.png")
			if err := chart.PlotBar(t, e.Label, path); err != nil {
				return nil, err
			}
			report.Files = append(report.Files, path)
		}
	}

	if cfg.Composite() {
		path := outPath(CompositeFile)
		if err := chart.CompositePlot(series, path); err != nil {
			return nil, err
		}
		report.Files = append(report.Files, path)
	}

	fmt.Fprintln(out, "\n✅ Generated all tables and plots successfully.")
	fmt.Fprintln(out, "📁 Output files:")
	for _, path := range report.Files {
		fmt.Fprintf(out, "   - %s\n", path)
	}
	return report, nil
}

func writeTable(path string, t *table.CountryTable) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	if err := table.WriteCSV(file, t); err != nil {
		file.Close()
		return fmt.Errorf("write table %s: %w", path, err)
	}
	return file.Close()
}
