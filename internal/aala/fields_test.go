package aala

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePercentCountry(t *testing.T) {
	tests := []struct {
		name        string
		cell        string
		wantPercent int
		wantCountry string
		wantOK      bool
	}{
		{"compact", "50%G", 50, "G", true},
		{"spaced", "26% H", 26, "H", true},
		{"space before percent", "50 % G", 50, "G", true},
		{"full value", "100% J", 100, "J", true},
		{"percent only", "75%", 75, "", true},
		{"lowercase code uppercased", "15%g", 15, "G", true},
		{"multiline first line only", "15%G\n10%J", 15, "G", true},
		{"no leading integer", "N/A", 0, "", false},
		{"empty", "", 0, "", false},
		{"whitespace", "  ", 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			percent, country, ok := ParsePercentCountry(tt.cell)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantPercent, percent)
			assert.Equal(t, tt.wantCountry, country)
		})
	}
}

func TestParsePercent(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want int
	}{
		{"with percent sign", "75%", 75},
		{"bare integer", "75", 75},
		{"zero", "0%", 0},
		{"trailing text", "60% (est)", 60},
		{"no integer yields zero", "n/a", 0},
		{"empty yields zero", "", 0},
		{"negative shape yields zero", "-5%", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePercent(tt.cell))
		})
	}
}
