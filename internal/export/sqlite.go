package export

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/vehiclefacts/aala-extract/internal/aala"
)

const createTableStmt = `
CREATE TABLE IF NOT EXISTS aala_records (
	year                INTEGER NOT NULL,
	manufacturer        TEXT    NOT NULL,
	car_line            TEXT    NOT NULL,
	percent_us_canada   INTEGER NOT NULL,
	primary_country     TEXT    NOT NULL,
	primary_percent     INTEGER NOT NULL,
	secondary_country   TEXT    NOT NULL,
	secondary_percent   INTEGER NOT NULL,
	engine_source       TEXT    NOT NULL,
	transmission_source TEXT    NOT NULL,
	assembly_country    TEXT    NOT NULL,
	raw                 TEXT    NOT NULL
)`

const insertStmt = `
INSERT INTO aala_records (
	year, manufacturer, car_line, percent_us_canada,
	primary_country, primary_percent, secondary_country, secondary_percent,
	engine_source, transmission_source, assembly_country, raw
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// WriteSQLite replaces the aala_records table at path with the given
// records, in one transaction.
func WriteSQLite(ctx context.Context, path string, records []aala.Record) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("opening database %s: %w", path, err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, createTableStmt); err != nil {
		return fmt.Errorf("creating table: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM aala_records`); err != nil {
		return fmt.Errorf("clearing table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertStmt)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		_, err := stmt.ExecContext(ctx,
			r.Year, r.Manufacturer, r.CarLine, r.PercentUSCanada,
			r.PrimaryCountry, r.PrimaryPercent, r.SecondaryCountry, r.SecondaryPercent,
			r.EngineSource, r.TransmissionSource, r.AssemblyCountry, r.Raw,
		)
		if err != nil {
			return fmt.Errorf("inserting record for %d %s %s: %w",
				r.Year, r.Manufacturer, r.CarLine, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}
