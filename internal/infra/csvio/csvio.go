package csvio

import (
	"encoding/csv"
	"fmt"
	"os"
)

// Table is an ordered-column view of a CSV file with a header row. Rows are
// keyed by column name; Header preserves the file's column order.
type Table struct {
	Header []string
	Rows   []map[string]string
}

func Read(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read %s: missing header row", path)
	}

	t := &Table{Header: records[0], Rows: make([]map[string]string, 0, len(records)-1)}
	for _, rec := range records[1:] {
		row := make(map[string]string, len(t.Header))
		for i, col := range t.Header {
			if i < len(rec) {
				row[col] = rec[i]
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// Require checks that every named column is present in the header.
func (t *Table) Require(cols ...string) error {
	present := make(map[string]bool, len(t.Header))
	for _, col := range t.Header {
		present[col] = true
	}
	for _, col := range cols {
		if !present[col] {
			return fmt.Errorf("missing required column %q", col)
		}
	}
	return nil
}

// Write emits the rows under the given header. Values for columns absent
// from a row are written as empty cells.
func Write(path string, header []string, rows []map[string]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	w.Write(header)
	rec := make([]string, len(header))
	for _, row := range rows {
		for i, col := range header {
			rec[i] = row[col]
		}
		w.Write(rec)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
