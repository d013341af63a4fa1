package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/bbl2rmap/bbl2rmap/internal/normalize"
)

// CSVWriter writes the header followed by one record per row, without an
// index column.
type CSVWriter struct {
	w           *csv.Writer
	wroteHeader bool
}

// NewCSVWriter creates a CSVWriter on w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w)}
}

// Write writes rows, emitting the header on the first call.
func (cw *CSVWriter) Write(rows []normalize.Row) error {
	if !cw.wroteHeader {
		if err := cw.w.Write(normalize.Header()); err != nil {
			return fmt.Errorf("writing csv header: %w", err)
		}
		cw.wroteHeader = true
	}
	for i, row := range rows {
		if err := cw.w.Write(row.Record()); err != nil {
			return fmt.Errorf("writing csv row %d: %w", i+1, err)
		}
	}
	cw.w.Flush()
	return cw.w.Error()
}

// ReadCSV reads a table written by CSVWriter back into rows.
func ReadCSV(r io.Reader) ([]normalize.Row, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("reading csv: missing header")
	}

	rows := make([]normalize.Row, 0, len(records)-1)
	for i, record := range records[1:] {
		row, err := normalize.RowFromRecord(record)
		if err != nil {
			return nil, fmt.Errorf("csv row %d: %w", i+1, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
