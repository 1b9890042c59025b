package aala

import (
	"regexp"
	"strings"
)

// manufacturerVariant maps one raw-name prefix to its canonical label. Kept
// as an ordered slice so prefix matching stays deterministic when one variant
// is a prefix of another.
type manufacturerVariant struct {
	Prefix    string
	Canonical string
}

// manufacturerVariants folds the naming variants (and OCR garblings) seen in
// filed reports into one canonical label per manufacturer.
var manufacturerVariants = []manufacturerVariant{
	{"GM LLC", "General Motors"},
	{"General Motors LLC", "General Motors"},
	{"FCA", "Stellantis"},
	{"Fiat Chrysler", "Stellantis"},
	{"Honda Motor Co., Ltd.", "Honda"},
	{"Honda Motor Co.,", "Honda"},
	{"Hyundai Motor Company", "Hyundai"},
	{"Hyundai Motor", "Hyundai"},
	{"Jaguar Land Rover Limited", "Jaguar Land Rover"},
	// OCR interleaves "Limited" into the name on some report years.
	{"JaguaLr iLmaintedd Rover", "Jaguar Land Rover"},
	{"Jaguar Land Rover", "Jaguar Land Rover"},
	{"Mazda Motor Corporation", "Mazda"},
	{"Mazda Motor", "Mazda"},
	{"Mitsubishi Motors Corporation", "Mitsubishi"},
	{"Mitsubishi Motors", "Mitsubishi"},
	{"Nissan North America, Inc", "Nissan"},
	{"Nissan North America,", "Nissan"},
	{"Nissan North", "Nissan"},
	{"Bugatti Automobiles S.A.S.", "Bugatti"},
	{"Bugatti Automobiles", "Bugatti"},
	{"Rolls-Royce Motor", "Rolls-Royce"},
	{"Tesla Inc.", "Tesla"},
	{"Lotus Cars Ltd.", "Lotus"},
	{"Lucid USA, Inc.", "Lucid"},
	{"Kia Motors", "Kia"},
}

// manufacturerDenylist holds first-line values that are never a manufacturer:
// continuation fragments and one recurring mis-split vehicle descriptor.
var manufacturerDenylist = map[string]bool{
	"Limited": true,
	"XC90 Aut (8vxl) FWD + ERAD (T8 AWD)": true,
	"": true,
}

// knownManufacturerPrefixes lists names that can be recovered from the front
// of a cell that otherwise looks like a vehicle descriptor. Variant prefixes
// are included alongside names that need no canonicalization.
var knownManufacturerPrefixes = buildKnownManufacturerPrefixes()

func buildKnownManufacturerPrefixes() []string {
	prefixes := make([]string, 0, len(manufacturerVariants)+12)
	for _, v := range manufacturerVariants {
		prefixes = append(prefixes, v.Prefix)
	}
	prefixes = append(prefixes,
		"Audi", "BMW AG", "Bentley", "Ford Motor Company", "Porsche AG",
		"Subaru", "Toyota", "Volkswagen", "Volvo", "Mercedes-Benz USA",
		"Lamborghini", "Polestar",
	)
	return prefixes
}

var (
	// Legend entries look like "AU Australia": a 1-2 letter code then a
	// capitalized word. They belong to the document key, not the data.
	reLegendShape = regexp.MustCompile(`^[A-Z]{1,2}\s+[A-Z][a-z]+$`)

	// Vehicle model lines that bled into the manufacturer column, like
	// "XC90 Aut AWD".
	reModelShape = regexp.MustCompile(`^[A-Z0-9]+\s+(Aut|AWD|FWD|RWD)`)

	// Percentages and body-style abbreviations mark a cell that holds data,
	// not a name.
	reDescriptorNoise = regexp.MustCompile(`\d+%|MPV|PC\s|Truck`)
)

// CleanManufacturer extracts a manufacturer name from a raw first-column
// cell. It returns ok=false for legend entries, denylisted garbage, and
// vehicle descriptors from which no known manufacturer can be recovered.
// Callers must treat ok=false as "drop row", never as a default name.
func CleanManufacturer(raw string) (string, bool) {
	firstLine := firstLineOf(raw)

	if reLegendShape.MatchString(firstLine) {
		return "", false
	}
	if manufacturerDenylist[firstLine] {
		return "", false
	}
	if reModelShape.MatchString(firstLine) {
		return "", false
	}

	if reDescriptorNoise.MatchString(firstLine) {
		// Multi-line concatenation can glue the descriptor of the next row
		// onto the name. Recover a known manufacturer prefix if one leads
		// the cell, else settle for the first word.
		for _, prefix := range knownManufacturerPrefixes {
			if strings.HasPrefix(firstLine, prefix) {
				return prefix, true
			}
		}
		if words := strings.Fields(firstLine); len(words) > 0 {
			return words[0], true
		}
		return "", false
	}

	return firstLine, true
}

// CanonicalManufacturer folds a cleaned name into its canonical label.
// Unknown names pass through unchanged.
func CanonicalManufacturer(name string) string {
	if name == "" {
		return ""
	}
	for _, v := range manufacturerVariants {
		if name == v.Prefix || strings.HasPrefix(name, v.Prefix) {
			return v.Canonical
		}
	}
	// Duplication artifacts: the name immediately followed by a repeated
	// copy of itself (or of its brand).
	if strings.HasPrefix(name, "Subaru Subaru") {
		return "Subaru"
	}
	if strings.HasPrefix(name, "Tesla Inc. Tesla") {
		return "Tesla"
	}
	return name
}

// CleanCarLine extracts the car line from a raw cell: first line only,
// ok=false when empty.
func CleanCarLine(raw string) (string, bool) {
	firstLine := firstLineOf(raw)
	if firstLine == "" {
		return "", false
	}
	return firstLine, true
}

func firstLineOf(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
