// Package storage keeps converted rows in a SQLite table so they can be
// queried or re-exported.
package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"unicode"

	"github.com/bbl2rmap/bbl2rmap/internal/normalize"
	_ "modernc.org/sqlite"
)

// TableName is the table holding converted rows.
const TableName = "papers"

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// columns holds the SQL column names, in header order.
var columns = columnNames(normalize.Header())

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the papers table if it doesn't exist.
// position keeps the input order of the source entries.
func createSchema(db *sql.DB) error {
	var sample normalize.Row
	defs := []string{"position INTEGER PRIMARY KEY"}
	for i, v := range sample.Values() {
		typ := "TEXT"
		if _, ok := v.(int); ok {
			typ = "INTEGER"
		}
		defs = append(defs, fmt.Sprintf("%s %s NOT NULL", columns[i], typ))
	}

	schema := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			%s
		);

		CREATE INDEX IF NOT EXISTS idx_papers_doi ON %s(id_doi) WHERE id_doi != '';
	`, TableName, strings.Join(defs, ",\n\t\t\t"), TableName)

	_, err := db.Exec(schema)
	return err
}

// ReplaceRows clears the table and inserts rows in order, in one transaction.
func (d *DB) ReplaceRows(rows []normalize.Row) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM " + TableName); err != nil {
		return fmt.Errorf("clearing %s table: %w", TableName, err)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)+1), ", ")
	stmt, err := tx.Prepare(fmt.Sprintf(
		"INSERT INTO %s (position, %s) VALUES (%s)",
		TableName, strings.Join(columns, ", "), placeholders,
	))
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, row := range rows {
		args := append([]any{i + 1}, row.Values()...)
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("inserting row %d: %w", i+1, err)
		}
	}

	return tx.Commit()
}

// Count returns the number of stored rows.
func (d *DB) Count() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM " + TableName).Scan(&n)
	return n, err
}

// ListRows returns all stored rows in their original order.
func (d *DB) ListRows() ([]normalize.Row, error) {
	rows, err := d.db.Query(fmt.Sprintf(
		"SELECT %s FROM %s ORDER BY position", strings.Join(columns, ", "), TableName,
	))
	if err != nil {
		return nil, fmt.Errorf("querying rows: %w", err)
	}
	defer rows.Close()

	var out []normalize.Row
	for rows.Next() {
		record := make([]string, len(columns))
		dest := make([]any, len(columns))
		for i := range record {
			dest[i] = &record[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		row, err := normalize.RowFromRecord(record)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// FindByDOI returns the 1-based positions of rows with the given DOI.
func (d *DB) FindByDOI(doi string) ([]int, error) {
	rows, err := d.db.Query("SELECT position FROM "+TableName+" WHERE id_doi = ? ORDER BY position", doi)
	if err != nil {
		return nil, fmt.Errorf("querying doi: %w", err)
	}
	defer rows.Close()

	var positions []int
	for rows.Next() {
		var p int
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		positions = append(positions, p)
	}
	return positions, rows.Err()
}

// columnNames converts header names such as "Title(English)" and "ID:DOI"
// into SQL identifiers such as title_english and id_doi.
func columnNames(header []string) []string {
	names := make([]string, len(header))
	for i, h := range header {
		var b strings.Builder
		pendingSep := false
		for _, r := range strings.ToLower(h) {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				if pendingSep && b.Len() > 0 {
					b.WriteByte('_')
				}
				b.WriteRune(r)
				pendingSep = false
				continue
			}
			pendingSep = true
		}
		names[i] = b.String()
	}
	return names
}
