// Package faostat reads FAOSTAT crop statistics exports.
//
// An export is long format: one row per (area, year, element) observation.
// Only the Area, Year, Element and Value columns are used; everything else
// in the file (codes, units, flags) is ignored.
package faostat

// Element names of the crop production domain.
const (
	ElementAreaHarvested = "Area harvested"
	ElementYield         = "Yield"
	ElementProduction    = "Production"
)

// Record is a single observation.
type Record struct {
	Area    string
	Year    int
	Element string
	Value   float64
}
