package sheet

// csv.go adapts CSV exports into grids.
//
// The files this tool sees are exported from spreadsheets maintained by
// hand, so the reader has to cope with the usual artifacts:
//
//   - UTF-8 BOM added by Windows programs
//   - invalid UTF-8 sequences from legacy encodings
//   - ragged rows (trailing columns dropped by the exporting tool)
//   - bare quotes inside unquoted fields

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

var utf8bom = []byte{0xEF, 0xBB, 0xBF}

// ReadCSV parses CSV data into a Grid named name. All cells are string
// cells; interpretation of numbers, delays, and priorities happens in the
// engine, not here.
//
// Input is bounded (a few thousand rows at most), so the whole payload is
// read up front and sanitized before parsing.
func ReadCSV(name string, r io.Reader) (*Grid, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	data = sanitize(data)

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1 // ragged rows are expected
	cr.LazyQuotes = true

	g := NewGrid(name)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		cells := make([]Cell, len(rec))
		for i, v := range rec {
			cells[i] = String(v)
		}
		g.AppendRow(cells...)
	}
	return g, nil
}

// sanitize strips a UTF-8 BOM and replaces invalid UTF-8 sequences with
// '?' so downstream string handling never sees broken runes.
func sanitize(data []byte) []byte {
	data = bytes.TrimPrefix(data, utf8bom)
	if utf8.Valid(data) {
		return data
	}
	return bytes.ToValidUTF8(data, []byte("?"))
}
