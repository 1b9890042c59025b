package aala

import (
	"regexp"
	"strings"
)

// RowKind is the classification of a raw table row.
type RowKind int

const (
	// RowData is a vehicle disclosure row, eligible for assembly.
	RowData RowKind = iota
	// RowLegend is a document-key entry defining a country code.
	RowLegend
	// RowHeader repeats the column headings.
	RowHeader
	// RowNoise is anything too short or empty to carry data.
	RowNoise
)

func (k RowKind) String() string {
	switch k {
	case RowData:
		return "data"
	case RowLegend:
		return "legend"
	case RowHeader:
		return "header"
	case RowNoise:
		return "noise"
	default:
		return "unknown"
	}
}

// reLegendPrefix matches the first cell of a legend row: one of the country
// code abbreviations from the document key followed by whitespace. It covers
// every code the key uses.
var reLegendPrefix = regexp.MustCompile(
	`^(AU|AT|BE|BR|CH|CU|CN|CZ|DE|F|FN|G|H|I|ID|IN|J|K|M|N|OT|P|PL|PO|R|RU|SA|SI|SL|SP|SW|T|TH|UK|US)\s`)

// legendCodes is the same code set as reLegendPrefix, for key rows where the
// extractor split the code and the country name into separate cells.
var legendCodes = map[string]bool{
	"AU": true, "AT": true, "BE": true, "BR": true, "CH": true, "CU": true,
	"CN": true, "CZ": true, "DE": true, "F": true, "FN": true, "G": true,
	"H": true, "I": true, "ID": true, "IN": true, "J": true, "K": true,
	"M": true, "N": true, "OT": true, "P": true, "PL": true, "PO": true,
	"R": true, "RU": true, "SA": true, "SI": true, "SL": true, "SP": true,
	"SW": true, "T": true, "TH": true, "UK": true, "US": true,
}

// reCapitalizedWord matches the country-name side of a split key row.
var reCapitalizedWord = regexp.MustCompile(`^[A-Z][A-Za-z ]*$`)

// classifyRule is one (predicate, kind) pair in the ordered rule chain.
type classifyRule struct {
	name string
	fn   func(row RawRow) (RowKind, bool)
}

// Classifier decides whether a raw row is data, legend, header, or noise
// using an explicit ordered rule list. Ordering matters: legend detection
// must run before the emptiness and header checks because legend rows are
// structurally similar to data rows and only the code-prefix pattern tells
// them apart.
type Classifier struct {
	minColumns int
	rules      []classifyRule
}

// NewClassifier builds a classifier requiring at least minColumns cells for
// a row to be considered at all.
func NewClassifier(minColumns int) *Classifier {
	c := &Classifier{minColumns: minColumns}
	// Legend detection runs before the column-count check: two-cell key
	// rows ("G" | "Germany") are legend entries, not noise, and must be
	// tallied as such.
	c.rules = []classifyRule{
		{name: "legend_prefix", fn: c.matchLegendPrefix},
		{name: "too_few_cells", fn: c.matchTooFewCells},
		{name: "header_literal", fn: c.matchHeaderLiteral},
		{name: "all_empty", fn: c.matchAllEmpty},
	}
	return c
}

// Classify returns the kind of the row. Rows matching no rule are data rows.
func (c *Classifier) Classify(row RawRow) RowKind {
	for _, rule := range c.rules {
		if kind, ok := rule.fn(row); ok {
			return kind
		}
	}
	return RowData
}

func (c *Classifier) matchTooFewCells(row RawRow) (RowKind, bool) {
	if len(row.Cells) < c.minColumns {
		return RowNoise, true
	}
	return 0, false
}

func (c *Classifier) matchLegendPrefix(row RawRow) (RowKind, bool) {
	first := row.cell(0)
	if reLegendPrefix.MatchString(first) {
		return RowLegend, true
	}
	if legendCodes[strings.TrimSpace(first)] && reCapitalizedWord.MatchString(strings.TrimSpace(row.cell(1))) {
		return RowLegend, true
	}
	return 0, false
}

func (c *Classifier) matchHeaderLiteral(row RawRow) (RowKind, bool) {
	first := row.cell(0)
	if strings.Contains(first, "Manufacturer") || strings.Contains(first, "Car Line") {
		return RowHeader, true
	}
	return 0, false
}

func (c *Classifier) matchAllEmpty(row RawRow) (RowKind, bool) {
	for _, cell := range row.Cells {
		if strings.TrimSpace(cell) != "" {
			return 0, false
		}
	}
	return RowNoise, true
}
