// Package export writes converted rows to tabular file formats.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bbl2rmap/bbl2rmap/internal/normalize"
	"github.com/bbl2rmap/bbl2rmap/internal/storage"
)

// Format is an output file format.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatXLSX    Format = "xlsx"
	FormatParquet Format = "parquet"
	FormatJSONL   Format = "jsonl"
	FormatSQLite  Format = "sqlite"
)

// Formats lists the supported output formats.
var Formats = []Format{FormatCSV, FormatXLSX, FormatParquet, FormatJSONL, FormatSQLite}

// ErrUnknownFormat is returned for unsupported format names.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat validates a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q (valid: %v)", ErrUnknownFormat, s, Formats)
}

// Extension returns the file extension for the format, with the dot.
func (f Format) Extension() string {
	if f == FormatSQLite {
		return ".db"
	}
	return "." + string(f)
}

// DefaultOutputPath derives the output path from the input path by
// replacing a .bbl extension, or appending the format extension.
func DefaultOutputPath(input string, f Format) string {
	if strings.HasSuffix(input, ".bbl") {
		return strings.TrimSuffix(input, ".bbl") + f.Extension()
	}
	return input + f.Extension()
}

// Writer writes a batch of rows.
type Writer interface {
	Write(rows []normalize.Row) error
}

// WriteFile writes rows to path in the given format, creating parent
// directories as needed.
func WriteFile(path string, f Format, rows []normalize.Row) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	switch f {
	case FormatXLSX:
		return WriteXLSX(path, rows)
	case FormatSQLite:
		return writeSQLite(path, rows)
	case FormatCSV, FormatJSONL, FormatParquet:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	// The parquet writer closes its sink; a second Close is harmless.
	defer file.Close()

	switch f {
	case FormatCSV:
		err = NewCSVWriter(file).Write(rows)
	case FormatJSONL:
		err = NewJSONLWriter(file).Write(rows)
	case FormatParquet:
		return WriteParquet(file, rows)
	}
	if err != nil {
		return err
	}
	return file.Close()
}

func writeSQLite(path string, rows []normalize.Row) error {
	db, err := storage.OpenDB(path)
	if err != nil {
		return err
	}
	if err := db.ReplaceRows(rows); err != nil {
		db.Close()
		return err
	}
	return db.Close()
}
