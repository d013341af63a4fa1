package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/bbl2rmap/bbl2rmap/internal/normalize"
)

// JSONLWriter writes one JSON object per row, keyed by column name in
// header order.
type JSONLWriter struct {
	w *bufio.Writer
}

// NewJSONLWriter creates a JSONLWriter on w.
func NewJSONLWriter(w io.Writer) *JSONLWriter {
	return &JSONLWriter{w: bufio.NewWriter(w)}
}

// Write writes rows and flushes.
func (jw *JSONLWriter) Write(rows []normalize.Row) error {
	header := normalize.Header()
	for i, row := range rows {
		jw.w.WriteByte('{')
		for j, v := range row.Values() {
			if j > 0 {
				jw.w.WriteByte(',')
			}
			key, _ := json.Marshal(header[j])
			value, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("encoding row %d column %q: %w", i+1, header[j], err)
			}
			jw.w.Write(key)
			jw.w.WriteByte(':')
			jw.w.Write(value)
		}
		jw.w.WriteString("}\n")
	}
	return jw.w.Flush()
}
