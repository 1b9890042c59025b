package export

import (
	"context"
	"database/sql"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vehiclefacts/aala-extract/internal/aala"
)

func sampleRecords() []aala.Record {
	return []aala.Record{
		{
			Year:               2023,
			Manufacturer:       "Toyota",
			CarLine:            "Corolla",
			PercentUSCanada:    75,
			PrimaryCountry:     "Germany",
			PrimaryPercent:     15,
			SecondaryCountry:   "Japan",
			SecondaryPercent:   10,
			EngineSource:       "Germany",
			TransmissionSource: "Japan",
			AssemblyCountry:    "United States",
			Raw:                `2023 ["Toyota" "Corolla"]`,
		},
		{
			Year:         2024,
			Manufacturer: "Honda",
			CarLine:      "Civic",
			Raw:          `2024 ["Honda" "Civic"]`,
		},
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	require.NoError(t, WriteCSV(path, sampleRecords()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, aala.CSVHeader(), rows[0])
	assert.Equal(t, "2023", rows[1][0])
	assert.Equal(t, "Toyota", rows[1][1])
	assert.Equal(t, "United States", rows[1][10])
	assert.Equal(t, "Honda", rows[2][1])
	assert.Equal(t, "0", rows[2][3])
}

func TestWriteCSVEmptyTableStillHasHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	require.NoError(t, WriteCSV(path, nil))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, aala.CSVHeader(), rows[0])
}

func TestWriteCSVReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("old content"), 0o644))

	require.NoError(t, WriteCSV(path, sampleRecords()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "old content")
}

func TestWriteSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aala.db")
	ctx := context.Background()

	require.NoError(t, WriteSQLite(ctx, path, sampleRecords()))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM aala_records`).Scan(&count))
	assert.Equal(t, 2, count)

	var manufacturer, assembly string
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT manufacturer, assembly_country FROM aala_records WHERE year = 2023`).
		Scan(&manufacturer, &assembly))
	assert.Equal(t, "Toyota", manufacturer)
	assert.Equal(t, "United States", assembly)

	// A rerun replaces, not appends.
	require.NoError(t, WriteSQLite(ctx, path, sampleRecords()[:1]))
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM aala_records`).Scan(&count))
	assert.Equal(t, 1, count)
}
