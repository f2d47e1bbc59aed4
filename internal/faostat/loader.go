package faostat

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	columnArea    = "Area"
	columnYear    = "Year"
	columnElement = "Element"
	columnValue   = "Value"
)

var requiredColumns = []string{columnArea, columnYear, columnElement, columnValue}

// Load reads the export at path. A path that does not exist, is a directory
// or cannot be opened for reading yields ErrFileNotFound.
func Load(path string) ([]Record, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrFileNotFound, path)
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	records, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return records, nil
}

// Read parses a FAOSTAT export from r. Columns are located by header name, so
// their order does not matter. A leading byte order mark is dropped (UTF-16
// exports are decoded as well). Rows with an empty Value cell carry no
// observation and are skipped.
func Read(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(transform.Nop)))

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrMalformedInput)
		}
		return nil, fmt.Errorf("%w: header: %v", ErrMalformedInput, err)
	}

	index, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var records []Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
		}
		line, _ := reader.FieldPos(0)

		rawValue := strings.TrimSpace(row[index[columnValue]])
		if rawValue == "" {
			continue
		}

		rawYear := strings.TrimSpace(row[index[columnYear]])
		year, err := strconv.Atoi(rawYear)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: year %q is not an integer", ErrMalformedInput, line, rawYear)
		}

		value, err := strconv.ParseFloat(rawValue, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: value %q is not a number", ErrMalformedInput, line, rawValue)
		}

		records = append(records, Record{
			Area:    row[index[columnArea]],
			Year:    year,
			Element: row[index[columnElement]],
			Value:   value,
		})
	}

	return records, nil
}

func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing column(s) %s", ErrMalformedInput, strings.Join(missing, ", "))
	}
	return index, nil
}
