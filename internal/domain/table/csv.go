package table

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// EncodeCSV serializes the table: header row first, then one record per
// row, cells in header order. UTF-8 throughout; round-trip is exact.
func EncodeCSV(t *Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(t.Columns); err != nil {
		return nil, fmt.Errorf("encode header: %w", err)
	}
	rec := make([]string, len(t.Columns))
	for i, r := range t.Rows {
		for j, col := range t.Columns {
			rec[j] = r.Get(col)
		}
		if err := w.Write(rec); err != nil {
			return nil, fmt.Errorf("encode row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeCSV parses a tabular blob. Nil or empty input yields a zero-row,
// zero-column table (an absent blob reads as "no data yet"). Cells beyond
// the header width are dropped; short records leave trailing cells absent.
func DecodeCSV(data []byte) (*Table, error) {
	if len(data) == 0 {
		return New(), nil
	}
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	recs, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("decode csv: %w", err)
	}
	if len(recs) == 0 {
		return New(), nil
	}
	t := New(recs[0]...)
	for _, rec := range recs[1:] {
		row := make(Row, len(t.Columns))
		for j, col := range t.Columns {
			if j < len(rec) && rec[j] != "" {
				row[col] = rec[j]
			}
		}
		t.Append(row)
	}
	return t, nil
}
