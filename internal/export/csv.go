// Package export persists the aggregated record table: always to CSV, and
// optionally to a SQLite database for downstream querying.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vehiclefacts/aala-extract/internal/aala"
)

// WriteCSV writes the records to path in the stable field order, header
// first. The file is replaced atomically from the caller's point of view:
// either the old content survives or the full new table does.
func WriteCSV(path string, records []aala.Record) error {
	// Same directory as the target so the final rename stays on one
	// filesystem.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".aala-*.csv")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(aala.CSVHeader()); err != nil {
		tmp.Close()
		return fmt.Errorf("writing header: %w", err)
	}
	for _, record := range records {
		if err := w.Write(record.CSVRow()); err != nil {
			tmp.Close()
			return fmt.Errorf("writing record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flushing CSV: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
