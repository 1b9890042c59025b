package aala

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAssembler() *Assembler {
	return NewAssembler(DefaultColumnLayout(), NewCountryResolver())
}

func TestAssembleFullRow(t *testing.T) {
	a := newTestAssembler()

	row := RawRow{
		Cells: []string{"Toyota", "Corolla", "Corolla", "PC", "75%", "15%G", "10%J", "G", "", "J", "", "United States", ""},
		Year:  2023,
	}

	record, reason := a.Assemble(row)
	require.Empty(t, reason)

	assert.Equal(t, 2023, record.Year)
	assert.Equal(t, "Toyota", record.Manufacturer)
	assert.Equal(t, "Corolla", record.CarLine)
	assert.Equal(t, 75, record.PercentUSCanada)
	assert.Equal(t, "Germany", record.PrimaryCountry)
	assert.Equal(t, 15, record.PrimaryPercent)
	assert.Equal(t, "Japan", record.SecondaryCountry)
	assert.Equal(t, 10, record.SecondaryPercent)
	assert.Equal(t, "Germany", record.EngineSource)
	assert.Equal(t, "Japan", record.TransmissionSource)
	assert.Equal(t, "United States", record.AssemblyCountry)
	assert.NotEmpty(t, record.Raw)
	assert.Contains(t, record.Raw, "Toyota")
	assert.Contains(t, record.Raw, "2023")
}

func TestAssembleDropsUnrecoverableManufacturer(t *testing.T) {
	a := newTestAssembler()

	row := RawRow{
		Cells: []string{"Limited", "Corolla", "Corolla", "PC", "75%", "", "", "G", "", "J", "", "US", ""},
		Year:  2022,
	}

	_, reason := a.Assemble(row)
	assert.Equal(t, DropUnrecoverableManufacturer, reason)
}

func TestAssembleDropsMissingCarLine(t *testing.T) {
	a := newTestAssembler()

	row := RawRow{
		Cells: []string{"Toyota", "", "", "PC", "75%", "", "", "G", "", "J", "", "US", ""},
		Year:  2022,
	}

	_, reason := a.Assemble(row)
	assert.Equal(t, DropMissingCarLine, reason)
}

func TestAssembleCarLineFallsBackToAdjacentColumn(t *testing.T) {
	a := newTestAssembler()

	row := RawRow{
		Cells: []string{"Toyota", "Camry", "", "PC", "40%", "", "", "J", "", "J", "", "J", ""},
		Year:  2021,
	}

	record, reason := a.Assemble(row)
	require.Empty(t, reason)
	assert.Equal(t, "Camry", record.CarLine)
}

func TestAssembleDegradesMissingValues(t *testing.T) {
	a := newTestAssembler()

	// No disclosed percentages and no resolvable source columns: the row is
	// kept, percents default to 0, country fields stay empty or raw.
	row := RawRow{
		Cells: []string{"Toyota", "Camry", "Camry", "PC", "", "", "", "", "", "", "", "", ""},
		Year:  2021,
	}

	record, reason := a.Assemble(row)
	require.Empty(t, reason)
	assert.Equal(t, 0, record.PercentUSCanada)
	assert.Equal(t, "", record.PrimaryCountry)
	assert.Equal(t, 0, record.PrimaryPercent)
	assert.Equal(t, "", record.SecondaryCountry)
	assert.Equal(t, 0, record.SecondaryPercent)
	assert.Equal(t, "", record.EngineSource)
	assert.Equal(t, "", record.TransmissionSource)
	assert.Equal(t, "", record.AssemblyCountry)
}

func TestAssembleKeepsUnresolvedSourceText(t *testing.T) {
	a := newTestAssembler()

	row := RawRow{
		Cells: []string{"Toyota", "Camry", "Camry", "PC", "40%", "", "", "ZZ", "", "Somewhere Farside", "", "J", ""},
		Year:  2021,
	}

	record, reason := a.Assemble(row)
	require.Empty(t, reason)
	// Short unresolvable codes come back unchanged, longer ones title-cased;
	// both are best-effort strings rather than dropped rows.
	assert.Equal(t, "ZZ", record.EngineSource)
	assert.Equal(t, "Somewhere Farside", record.TransmissionSource)
}

func TestAssembleManufacturerContextOverride(t *testing.T) {
	a := newTestAssembler()

	row := RawRow{
		Cells: []string{"BMW AG", "X5", "X5", "MPV", "25%", "30%AF", "", "G", "", "G", "", "G", ""},
		Year:  2024,
	}

	record, reason := a.Assemble(row)
	require.Empty(t, reason)
	assert.Equal(t, "South Africa", record.PrimaryCountry)
	assert.Equal(t, 30, record.PrimaryPercent)
}

func TestAssembleClampsPercentages(t *testing.T) {
	a := newTestAssembler()

	row := RawRow{
		Cells: []string{"Toyota", "Camry", "Camry", "PC", "250%", "150%G", "", "J", "", "J", "", "J", ""},
		Year:  2021,
	}

	record, reason := a.Assemble(row)
	require.Empty(t, reason)
	assert.Equal(t, 100, record.PercentUSCanada)
	assert.Equal(t, 100, record.PrimaryPercent)
}
