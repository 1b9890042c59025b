// Package aala turns raw table rows extracted from NHTSA American Automobile
// Labeling Act (AALA) report PDFs into canonical structured records. The
// source tables have no stable schema: column meaning is positional, values
// carry inline annotations, country codes collide, and legend rows look a lot
// like data rows. Everything in this package is best-effort with graceful
// degradation; data-quality problems are counted, never raised as errors.
package aala

import (
	"fmt"
	"strconv"
)

// RawRow is one row of cell text pulled from a report table, tagged with the
// model year of the report it came from. Cells may be empty and may contain
// embedded newlines. Immutable once captured.
type RawRow struct {
	Cells []string
	Year  int
}

// cell returns the cell at index i, or "" when the row is too short.
func (r RawRow) cell(i int) string {
	if i < 0 || i >= len(r.Cells) {
		return ""
	}
	return r.Cells[i]
}

// cellFromEnd returns the cell at the given offset from the end of the row.
func (r RawRow) cellFromEnd(offset int) string {
	return r.cell(len(r.Cells) - offset)
}

// Record is one structured parts-origin disclosure for a single car line in a
// single model year. Country fields hold either a canonical country name or,
// when resolution failed, the original unresolved text. Raw preserves the
// source row verbatim for auditability.
type Record struct {
	Year               int
	Manufacturer       string
	CarLine            string
	PercentUSCanada    int
	PrimaryCountry     string
	PrimaryPercent     int
	SecondaryCountry   string
	SecondaryPercent   int
	EngineSource       string
	TransmissionSource string
	AssemblyCountry    string
	Raw                string
}

// CSVHeader returns the column names in the stable export order.
func CSVHeader() []string {
	return []string{
		"Year",
		"Manufacturer",
		"Car Line",
		"% US/Canada",
		"Primary Country",
		"Primary %",
		"Secondary Country",
		"Secondary %",
		"Engine Source",
		"Transmission Source",
		"Assembly Country",
		"Raw",
	}
}

// CSVRow returns the record's fields in the same order as CSVHeader.
func (r Record) CSVRow() []string {
	return []string{
		strconv.Itoa(r.Year),
		r.Manufacturer,
		r.CarLine,
		strconv.Itoa(r.PercentUSCanada),
		r.PrimaryCountry,
		strconv.Itoa(r.PrimaryPercent),
		r.SecondaryCountry,
		strconv.Itoa(r.SecondaryPercent),
		r.EngineSource,
		r.TransmissionSource,
		r.AssemblyCountry,
		r.Raw,
	}
}

// rawRepr produces the stable stringification of a source row stored in
// Record.Raw. Cells are quoted so embedded newlines survive round-tripping
// into a single CSV field.
func rawRepr(row RawRow) string {
	return fmt.Sprintf("%d %q", row.Year, row.Cells)
}
