package export

import (
	"fmt"
	"io"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/memory"
	"github.com/apache/arrow/go/v18/parquet"
	"github.com/apache/arrow/go/v18/parquet/compress"
	"github.com/apache/arrow/go/v18/parquet/pqarrow"

	"github.com/bbl2rmap/bbl2rmap/internal/normalize"
)

// RowSchema is the Arrow schema of the paper table. Flag columns are int64,
// everything else is a string.
var RowSchema = buildRowSchema()

func buildRowSchema() *arrow.Schema {
	var sample normalize.Row
	header := normalize.Header()
	fields := make([]arrow.Field, len(header))
	for i, v := range sample.Values() {
		typ := arrow.DataType(arrow.BinaryTypes.String)
		if _, ok := v.(int); ok {
			typ = arrow.PrimitiveTypes.Int64
		}
		fields[i] = arrow.Field{Name: header[i], Type: typ}
	}
	return arrow.NewSchema(fields, nil)
}

// WriteParquet writes rows as a single gzip-compressed record batch.
// The writer closes w if it is an io.Closer.
func WriteParquet(w io.Writer, rows []normalize.Row) error {
	builder := array.NewRecordBuilder(memory.NewGoAllocator(), RowSchema)
	defer builder.Release()

	for _, row := range rows {
		for i, v := range row.Values() {
			switch v := v.(type) {
			case string:
				builder.Field(i).(*array.StringBuilder).Append(v)
			case int:
				builder.Field(i).(*array.Int64Builder).Append(int64(v))
			}
		}
	}

	record := builder.NewRecord()
	defer record.Release()

	writer, err := pqarrow.NewFileWriter(
		RowSchema,
		w,
		parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Gzip)),
		pqarrow.DefaultWriterProps(),
	)
	if err != nil {
		return fmt.Errorf("creating parquet writer: %w", err)
	}
	if err := writer.Write(record); err != nil {
		writer.Close()
		return fmt.Errorf("writing parquet: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("closing parquet writer: %w", err)
	}
	return nil
}
