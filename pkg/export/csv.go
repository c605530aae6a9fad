package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
)

// utf8BOM makes spreadsheet applications detect UTF-8 (peso signs, ñ).
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Table is an ordered tabular export.
type Table struct {
	Columns []string
	Rows    [][]string
}

// AddRow appends a record, padding or truncating it to the column count.
func (t *Table) AddRow(values ...string) {
	row := make([]string, len(t.Columns))
	copy(row, values)
	t.Rows = append(t.Rows, row)
}

// WriteCSV streams the table as CSV.
func WriteCSV(w io.Writer, table Table) error {
	if len(table.Columns) == 0 {
		return fmt.Errorf("csv requires at least one column")
	}
	writer := csv.NewWriter(w)
	if err := writer.Write(table.Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i, row := range table.Rows {
		if len(row) != len(table.Columns) {
			return fmt.Errorf("csv row %d has %d values, want %d", i, len(row), len(table.Columns))
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", i, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// RenderCSV returns the table as BOM-prefixed CSV bytes.
func RenderCSV(table Table) ([]byte, error) {
	buf := bytes.NewBuffer(append([]byte(nil), utf8BOM...))
	if err := WriteCSV(buf, table); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
