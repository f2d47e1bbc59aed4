// Package table pivots long-format FAOSTAT records into one row per year.
package table

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"cocoa/internal/faostat"
)

// Columns is the header of every CountryTable, in output order.
var Columns = []string{"Year", faostat.ElementAreaHarvested, faostat.ElementYield, faostat.ElementProduction}

// ErrDuplicateObservation is returned by Tabulate under the Reject policy
// when a year carries the same element twice.
var ErrDuplicateObservation = errors.New("duplicate observation")

// Row is one year of a country's statistics. Metrics absent from the source
// are 0.
type Row struct {
	Year          int
	AreaHarvested float64
	Yield         float64
	Production    float64
}

// CountryTable holds rows sorted ascending by year, one row per year.
type CountryTable struct {
	Rows []Row
}

func (t *CountryTable) Len() int {
	return len(t.Rows)
}

func (t *CountryTable) Years() []int {
	years := make([]int, len(t.Rows))
	for i, row := range t.Rows {
		years[i] = row.Year
	}
	return years
}

func (t *CountryTable) Yields() []float64 {
	values := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row.Yield
	}
	return values
}

func (t *CountryTable) AreasHarvested() []float64 {
	values := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row.AreaHarvested
	}
	return values
}

// DuplicatePolicy decides what happens when one year has several values for
// the same element.
type DuplicatePolicy int

const (
	// KeepLast keeps the value that appears last in the input.
	KeepLast DuplicatePolicy = iota
	// Mean averages all values.
	Mean
	// Reject fails with ErrDuplicateObservation.
	Reject
)

func (p DuplicatePolicy) String() string {
	switch p {
	case KeepLast:
		return "last"
	case Mean:
		return "mean"
	case Reject:
		return "reject"
	}
	return fmt.Sprintf("DuplicatePolicy(%d)", int(p))
}

// ParseDuplicatePolicy accepts "last", "mean" or "reject". An empty string
// means KeepLast.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "last":
		return KeepLast, nil
	case "mean":
		return Mean, nil
	case "reject":
		return Reject, nil
	}
	return 0, fmt.Errorf("unknown duplicate policy %q", s)
}

type cell struct {
	sum   float64
	count int
}

func (c *cell) value() float64 {
	if c == nil || c.count == 0 {
		return 0
	}
	return c.sum / float64(c.count)
}

// Tabulate pivots records into a CountryTable. Every distinct year in
// records yields exactly one row, even when none of its elements is one of
// the three metrics.
func Tabulate(records []faostat.Record, policy DuplicatePolicy) (*CountryTable, error) {
	byYear := make(map[int]map[string]*cell)

	for _, r := range records {
		cells, ok := byYear[r.Year]
		if !ok {
			cells = make(map[string]*cell, 3)
			byYear[r.Year] = cells
		}
		if !isMetric(r.Element) {
			continue
		}

		c, seen := cells[r.Element]
		switch {
		case !seen:
			cells[r.Element] = &cell{sum: r.Value, count: 1}
		case policy == Reject:
			return nil, fmt.Errorf("%w: %s %q in %d", ErrDuplicateObservation, r.Area, r.Element, r.Year)
		case policy == Mean:
			c.sum += r.Value
			c.count++
		default:
			c.sum, c.count = r.Value, 1
		}
	}

	years := make([]int, 0, len(byYear))
	for year := range byYear {
		years = append(years, year)
	}
	sort.Ints(years)

	t := &CountryTable{Rows: make([]Row, 0, len(years))}
	for _, year := range years {
		cells := byYear[year]
		t.Rows = append(t.Rows, Row{
			Year:          year,
			AreaHarvested: cells[faostat.ElementAreaHarvested].value(),
			Yield:         cells[faostat.ElementYield].value(),
			Production:    cells[faostat.ElementProduction].value(),
		})
	}
	return t, nil
}

func isMetric(element string) bool {
	switch element {
	case faostat.ElementAreaHarvested, faostat.ElementYield, faostat.ElementProduction:
		return true
	}
	return false
}
