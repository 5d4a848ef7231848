// Package tabular turns comma separated export text into ordered records.
//
// Parsing follows RFC 4180 quoting with lazy quotes allowed, skips blank
// lines, strips a leading UTF-8 byte order mark and tolerates ragged rows.
// Cells beyond the header width are kept under ExtraKey so that no source
// value is lost; duplicate header names keep every cell and resolve lookups
// to the last one.
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ExtraKey names cells that appear past the header width.
const ExtraKey = "__parsed_extra"

const bom = "\ufeff"

// ErrUnparseable is returned when the input cannot be read as tabular text.
var ErrUnparseable = errors.New("unparseable tabular data")

// Parse reads raw into records. With hasHeader the first row names the
// columns and is not returned; header-only input yields zero records.
func Parse(raw string, hasHeader bool) ([]Record, error) {
	raw = strings.TrimPrefix(raw, bom)
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: empty input", ErrUnparseable)
	}
	if strings.IndexByte(raw, 0) >= 0 {
		return nil, fmt.Errorf("%w: binary content", ErrUnparseable)
	}

	r := csv.NewReader(strings.NewReader(raw))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var header []string
	if hasHeader {
		row, err := r.Read()
		if err != nil {
			return nil, fmt.Errorf("%w: header: %v", ErrUnparseable, err)
		}
		header = make([]string, len(row))
		for i, h := range row {
			header[i] = strings.TrimSpace(h)
		}
	}

	records := []Record{}
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnparseable, err)
		}
		records = append(records, newRecord(cells(header, row, hasHeader)))
	}
	return records, nil
}

func cells(header, row []string, hasHeader bool) []Cell {
	out := make([]Cell, len(row))
	for i, v := range row {
		var key string
		switch {
		case !hasHeader:
			key = strconv.Itoa(i)
		case i < len(header):
			key = header[i]
		default:
			key = ExtraKey
		}
		out[i] = Cell{Key: key, Value: v}
	}
	return out
}
