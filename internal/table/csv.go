package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"cocoa/internal/faostat"
)

// WriteCSV writes t with the Columns header. Numbers use the shortest form
// that parses back to the same float64.
func WriteCSV(w io.Writer, t *CountryTable) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(Columns); err != nil {
		return err
	}
	for _, row := range t.Rows {
		record := []string{
			strconv.Itoa(row.Year),
			formatFloat(row.AreaHarvested),
			formatFloat(row.Yield),
			formatFloat(row.Production),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// ReadCSV parses a table written by WriteCSV.
func ReadCSV(r io.Reader) (*CountryTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(Columns)

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty table", faostat.ErrMalformedInput)
		}
		return nil, fmt.Errorf("%w: %v", faostat.ErrMalformedInput, err)
	}
	for i, name := range Columns {
		if strings.TrimSpace(header[i]) != name {
			return nil, fmt.Errorf("%w: column %d is %q, want %q", faostat.ErrMalformedInput, i+1, header[i], name)
		}
	}

	t := &CountryTable{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", faostat.ErrMalformedInput, err)
		}
		line, _ := reader.FieldPos(0)

		year, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: year %q", faostat.ErrMalformedInput, line, record[0])
		}
		var metrics [3]float64
		for i := range metrics {
			metrics[i], err = strconv.ParseFloat(record[i+1], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %s %q", faostat.ErrMalformedInput, line, Columns[i+1], record[i+1])
			}
		}

		t.Rows = append(t.Rows, Row{
			Year:          year,
			AreaHarvested: metrics[0],
			Yield:         metrics[1],
			Production:    metrics[2],
		})
	}
	return t, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
