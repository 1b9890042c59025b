package aala

// Drop reasons reported in the pipeline tally. Only rows whose output would
// be clearly nonsensical are dropped; everything else degrades to
// lower-confidence fields.
const (
	DropUnrecoverableManufacturer = "unrecoverable manufacturer"
	DropMissingCarLine            = "missing car line"
)

// ColumnLayout names the positional column convention of a report format.
// The convention is an assumption, not a guarantee; the assembler tolerates
// rows that violate it by falling back or degrading per field. Adjusting a
// layout must never require touching parsing logic.
type ColumnLayout struct {
	Manufacturer       int
	CarLine            int
	CarLineFallback    int
	PercentUSCanada    int
	PrimaryComposite   int
	SecondaryComposite int
	EngineSource       int
	TransmissionSource int
	// AssemblyFromEnd addresses the assembly-country column from the end of
	// the row, since trailing filler columns vary by report year.
	AssemblyFromEnd int
	// MinColumns is the smallest cell count a row needs before the key
	// columns can be addressed at all.
	MinColumns int
}

// DefaultColumnLayout is the convention used by the alphabetical AALA
// listings from 2020 on.
func DefaultColumnLayout() ColumnLayout {
	return ColumnLayout{
		Manufacturer:       0,
		CarLine:            2,
		CarLineFallback:    1,
		PercentUSCanada:    4,
		PrimaryComposite:   5,
		SecondaryComposite: 6,
		EngineSource:       7,
		TransmissionSource: 9,
		AssemblyFromEnd:    2,
		MinColumns:         8,
	}
}

// Assembler turns classified data rows into structured records.
type Assembler struct {
	layout   ColumnLayout
	resolver *CountryResolver
}

// NewAssembler creates an assembler for the given column layout.
func NewAssembler(layout ColumnLayout, resolver *CountryResolver) *Assembler {
	return &Assembler{layout: layout, resolver: resolver}
}

// Assemble produces one structured record from a data row, or a non-empty
// drop reason. A dropped row produces no record; a kept record always has a
// non-empty manufacturer and car line, percentages in [0, 100], and the
// verbatim source row in Raw.
func (a *Assembler) Assemble(row RawRow) (Record, string) {
	name, ok := CleanManufacturer(row.cell(a.layout.Manufacturer))
	if !ok {
		return Record{}, DropUnrecoverableManufacturer
	}
	manufacturer := CanonicalManufacturer(name)

	carLine, ok := CleanCarLine(row.cell(a.layout.CarLine))
	if !ok {
		carLine, ok = CleanCarLine(row.cell(a.layout.CarLineFallback))
	}
	if !ok {
		return Record{}, DropMissingCarLine
	}

	percentUSCanada := ParsePercent(row.cell(a.layout.PercentUSCanada))

	primaryPercent, primaryCode, _ := ParsePercentCountry(row.cell(a.layout.PrimaryComposite))
	secondaryPercent, secondaryCode, _ := ParsePercentCountry(row.cell(a.layout.SecondaryComposite))

	return Record{
		Year:               row.Year,
		Manufacturer:       manufacturer,
		CarLine:            carLine,
		PercentUSCanada:    clampPercent(percentUSCanada),
		PrimaryCountry:     a.resolveCountry(primaryCode, manufacturer),
		PrimaryPercent:     clampPercent(primaryPercent),
		SecondaryCountry:   a.resolveCountry(secondaryCode, manufacturer),
		SecondaryPercent:   clampPercent(secondaryPercent),
		EngineSource:       a.resolveSource(row.cell(a.layout.EngineSource), manufacturer),
		TransmissionSource: a.resolveSource(row.cell(a.layout.TransmissionSource), manufacturer),
		AssemblyCountry:    a.resolveSource(row.cellFromEnd(a.layout.AssemblyFromEnd), manufacturer),
		Raw:                rawRepr(row),
	}, ""
}

// resolveCountry resolves an extracted country code, passing the manufacturer
// as collision-override context. An empty code yields an empty country.
func (a *Assembler) resolveCountry(code, manufacturer string) string {
	if code == "" {
		return ""
	}
	return a.resolver.ResolveFor(code, manufacturer)
}

// resolveSource resolves a source-country cell, falling back to the raw cell
// text when resolution yields nothing usable. Partial resolution beats
// dropping the row.
func (a *Assembler) resolveSource(raw, manufacturer string) string {
	if resolved := a.resolver.ResolveFor(raw, manufacturer); resolved != "" {
		return resolved
	}
	return raw
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
