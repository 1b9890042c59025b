package aala

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	c := NewClassifier(DefaultColumnLayout().MinColumns)

	dataRow := []string{"Toyota", "Corolla", "Corolla", "PC", "75%", "15%G", "10%J", "G", "", "J", "", "United States", ""}

	tests := []struct {
		name string
		row  RawRow
		want RowKind
	}{
		{"data row", RawRow{Cells: dataRow, Year: 2023}, RowData},
		{"legend prefix in first cell", RawRow{Cells: pad("AU Australia", 8)}, RowLegend},
		{"legend split across two cells", RawRow{Cells: []string{"G", "Germany"}}, RowLegend},
		{"legend wins over data shape", RawRow{Cells: pad("US United States", 13)}, RowLegend},
		{"header row", RawRow{Cells: pad("Manufacturer", 8)}, RowHeader},
		{"header car line literal", RawRow{Cells: pad("Car Line", 8)}, RowHeader},
		{"too few cells", RawRow{Cells: []string{"", "", "", ""}}, RowNoise},
		{"single cell", RawRow{Cells: []string{"Toyota"}}, RowNoise},
		{"all cells empty", RawRow{Cells: make([]string, 8)}, RowNoise},
		{"no cells", RawRow{}, RowNoise},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.row))
		})
	}
}

func TestClassifyLegendIgnoresRemainingCells(t *testing.T) {
	c := NewClassifier(DefaultColumnLayout().MinColumns)

	// Legend detection depends only on the first cell's code prefix,
	// whatever the rest of the row holds.
	row := RawRow{Cells: []string{"SW Sweden", "junk", "55%", "PC", "more", "cells", "x", "y"}}
	assert.Equal(t, RowLegend, c.Classify(row))
}

func TestRowKindString(t *testing.T) {
	assert.Equal(t, "data", RowData.String())
	assert.Equal(t, "legend", RowLegend.String())
	assert.Equal(t, "header", RowHeader.String())
	assert.Equal(t, "noise", RowNoise.String())
}

// pad builds a row whose first cell is set and the rest are empty.
func pad(first string, n int) []string {
	cells := make([]string, n)
	cells[0] = first
	return cells
}
