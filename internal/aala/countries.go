package aala

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// countryCodes maps the code abbreviations used in AALA report legends (plus
// ISO-like variants that show up in practice) to canonical country names.
// Based on the official NHTSA document key.
var countryCodes = map[string]string{
	"US":   "United States",
	"USA":  "United States",
	"U.S.": "United States",

	"M":   "Mexico",
	"MEX": "Mexico",
	"MX":  "Mexico",

	"CN":  "Canada",
	"CAN": "Canada",
	"CA":  "Canada",

	"J":   "Japan",
	"JPN": "Japan",
	"JP":  "Japan",

	"G":       "Germany",
	"GER":     "Germany",
	"GERMANY": "Germany",

	// The document key assigns DE to Denmark, not Germany.
	"DE": "Denmark",

	"K":     "South Korea",
	"KOR":   "South Korea",
	"KR":    "South Korea",
	"KOREA": "South Korea",

	"UK": "United Kingdom",
	"GB": "United Kingdom",

	"I":   "Italy",
	"ITA": "Italy",
	"IT":  "Italy",

	"F":   "France",
	"FRA": "France",
	"FR":  "France",

	"SW":  "Sweden",
	"SWE": "Sweden",
	"SE":  "Sweden",

	"H":   "Hungary",
	"HUN": "Hungary",
	"HU":  "Hungary",

	"AT":  "Austria",
	"AUT": "Austria",
	"A":   "Austria",

	"BE":  "Belgium",
	"BEL": "Belgium",

	"CH":  "China",
	"CHN": "China",

	"CZ":  "Czech Republic",
	"CZE": "Czech Republic",

	"FN":  "Finland",
	"FIN": "Finland",
	"FI":  "Finland",

	"SP":  "Spain",
	"ESP": "Spain",

	"SL":  "Slovakia",
	"SVK": "Slovakia",
	"SK":  "Slovakia",

	"T":   "Turkey",
	"TUR": "Turkey",
	"TR":  "Turkey",

	"BR":  "Brazil",
	"BRA": "Brazil",

	"SA":  "South Africa",
	"RSA": "South Africa",
	"ZA":  "South Africa",
	"AF":  "South Africa",

	"AU":  "Australia",
	"AUS": "Australia",

	"PL":  "Poland",
	"POL": "Poland",

	"TH":  "Thailand",
	"THA": "Thailand",

	"ID":  "Indonesia",
	"IDN": "Indonesia",

	"IN":  "India",
	"IND": "India",

	"P": "Philippines",

	"PO":  "Portugal",
	"PRT": "Portugal",
	"PT":  "Portugal",

	"N":   "Netherlands",
	"NLD": "Netherlands",
	"NL":  "Netherlands",

	"R": "Romania",

	"RU":  "Russia",
	"RUS": "Russia",

	"SI": "Singapore",
	"CU": "Cuba",
	"OT": "Other",

	// Not in the official key but seen in filed reports.
	"MYS":    "Malaysia",
	"MY":     "Malaysia",
	"ARG":    "Argentina",
	"AR":     "Argentina",
	"TW":     "Taiwan",
	"TWN":    "Taiwan",
	"VNM":    "Vietnam",
	"VN":     "Vietnam",
	"SERBIA": "Serbia",
}

// usStates holds US state (and DC) postal abbreviations, used to resolve
// "Detroit MI USA"-style plant locations without relying on the trailing
// country word.
var usStates = map[string]bool{
	"AL": true, "AK": true, "AZ": true, "AR": true, "CA": true, "CO": true,
	"CT": true, "DE": true, "FL": true, "GA": true, "HI": true, "ID": true,
	"IL": true, "IN": true, "IA": true, "KS": true, "KY": true, "LA": true,
	"ME": true, "MD": true, "MA": true, "MI": true, "MN": true, "MS": true,
	"MO": true, "MT": true, "NE": true, "NV": true, "NH": true, "NJ": true,
	"NM": true, "NY": true, "NC": true, "ND": true, "OH": true, "OK": true,
	"OR": true, "PA": true, "RI": true, "SC": true, "SD": true, "TN": true,
	"TX": true, "UT": true, "VT": true, "VA": true, "WA": true, "WV": true,
	"WI": true, "WY": true, "DC": true,
}

var caProvinces = map[string]bool{
	"ON": true, "QC": true, "BC": true, "AB": true, "MB": true, "SK": true,
	"NS": true, "NB": true, "NL": true, "PE": true, "YT": true, "NT": true,
	"NU": true,
}

// germanCities covers plant locations that appear as a bare city name.
var germanCities = map[string]bool{
	"LEIPZIG": true, "MUNICH": true, "BERLIN": true, "HAMBURG": true,
	"STUTTGART": true, "COLOGNE": true, "FRANKFURT": true, "DUSSELDORF": true,
	"BREMEN": true, "HANNOVER": true, "WOLFSBURG": true, "INGOLSTADT": true,
	"REGENSBURG": true, "RUSSELSHEIM": true, "ZWICKAU": true,
}

// twoWordCountries are the canonical names spelled as two words, matched
// against the trailing words of city+country composites.
var twoWordCountries = map[string]bool{
	"SOUTH KOREA":    true,
	"SOUTH AFRICA":   true,
	"UNITED STATES":  true,
	"UNITED KINGDOM": true,
	"CZECH REPUBLIC": true,
}

// knownCountryNames is the closed canonical set, matched by substring as a
// late strategy to catch already-spelled-out names with minor noise.
var knownCountryNames = []string{
	"UNITED STATES", "MEXICO", "CANADA", "JAPAN", "GERMANY", "SOUTH KOREA",
	"UNITED KINGDOM", "GREAT BRITAIN", "ITALY", "FRANCE", "SWEDEN", "HUNGARY",
	"AUSTRIA", "BELGIUM", "CHINA", "CZECH REPUBLIC", "FINLAND", "SPAIN",
	"SLOVAKIA", "TURKEY", "BRAZIL", "SOUTH AFRICA", "AUSTRALIA", "POLAND",
	"THAILAND", "INDONESIA", "MALAYSIA", "ARGENTINA", "TAIWAN", "VIETNAM",
	"INDIA", "PORTUGAL", "NETHERLANDS", "RUSSIA", "SERBIA", "DENMARK",
	"PHILIPPINES", "ROMANIA", "SINGAPORE", "CUBA",
}

// codeOverride keys the per-manufacturer code collisions. A code can mean one
// country in most filings and something else for a single manufacturer; the
// override is consulted before the global code table when the caller supplies
// manufacturer context.
type codeOverride struct {
	Code         string
	Manufacturer string
}

// manufacturerCodeOverrides records the documented collisions. BMW filings
// use AF for Africa (South Africa).
var manufacturerCodeOverrides = map[codeOverride]string{
	{Code: "AF", Manufacturer: "BMW AG"}: "South Africa",
}

var reParenthetical = regexp.MustCompile(`\s*\([^)]*\)`)

// countryQuery carries the normalized views of a token through the strategy
// chain so each strategy does not re-tokenize.
type countryQuery struct {
	cleaned      string // parenthetical-stripped, first line, trimmed
	upper        string
	words        []string // upper, split on whitespace and commas
	manufacturer string   // optional disambiguation context
}

// resolveStrategy is one (predicate, resolution) pair in the ordered chain.
// The first strategy to return ok wins.
type resolveStrategy struct {
	name string
	fn   func(q countryQuery) (string, bool)
}

// CountryResolver maps raw country tokens (codes, city names, composite
// "city state country" phrases) to canonical country names. It is stateless
// and safe for concurrent use.
type CountryResolver struct {
	strategies []resolveStrategy
}

// NewCountryResolver builds a resolver with the default strategy chain. The
// order is a deliberate bias toward precision: longer, less ambiguous signals
// are tried before weaker heuristics.
func NewCountryResolver() *CountryResolver {
	return &CountryResolver{
		strategies: []resolveStrategy{
			{name: "subnational", fn: resolveSubnational},
			{name: "short_prefix", fn: resolveShortPrefix},
			{name: "trailing_words", fn: resolveTrailingWords},
			{name: "code_table", fn: resolveCodeTable},
			{name: "name_substring", fn: resolveNameSubstring},
		},
	}
}

// Resolve maps token to a canonical country name without manufacturer
// context. Empty or whitespace-only tokens resolve to "" (no country
// asserted). Tokens no strategy can place are returned as best-effort text:
// title-cased when longer than three characters, otherwise unchanged.
func (r *CountryResolver) Resolve(token string) string {
	return r.ResolveFor(token, "")
}

// ResolveFor is Resolve with manufacturer context, consulted only by the
// per-manufacturer code override table.
func (r *CountryResolver) ResolveFor(token, manufacturer string) string {
	original := strings.TrimSpace(token)
	if original == "" {
		return ""
	}

	cleaned := strings.TrimSpace(reParenthetical.ReplaceAllString(original, ""))
	// Extraction appends unrelated lines to cells; only the first is the
	// country reference.
	if idx := strings.IndexByte(cleaned, '\n'); idx >= 0 {
		cleaned = strings.TrimSpace(cleaned[:idx])
	}
	if cleaned == "" {
		return ""
	}

	upper := strings.ToUpper(cleaned)
	q := countryQuery{
		cleaned:      cleaned,
		upper:        upper,
		words:        strings.Fields(strings.ReplaceAll(upper, ",", " ")),
		manufacturer: manufacturer,
	}

	for _, s := range r.strategies {
		if name, ok := s.fn(q); ok {
			return name
		}
	}

	if len(cleaned) > 3 {
		return titleCase(cleaned)
	}
	return cleaned
}

// resolveSubnational resolves tokens containing a US state, Canadian
// province, or known German city, covering "Detroit MI USA" style composites.
func resolveSubnational(q countryQuery) (string, bool) {
	for _, w := range q.words {
		switch {
		case usStates[w]:
			return "United States", true
		case caProvinces[w]:
			return "Canada", true
		case germanCities[w]:
			return "Germany", true
		}
	}
	return "", false
}

// resolveShortPrefix resolves codes that lead a longer annotation, such as
// "US, engine only" or "K, ...".
func resolveShortPrefix(q countryQuery) (string, bool) {
	switch {
	case strings.HasPrefix(q.upper, "US,") || strings.HasPrefix(q.upper, "US "):
		return "United States", true
	case strings.HasPrefix(q.upper, "M,") || strings.HasPrefix(q.upper, "M "):
		return "Mexico", true
	case strings.HasPrefix(q.upper, "K,"):
		return "South Korea", true
	case strings.HasPrefix(q.upper, "G,"):
		return "Germany", true
	}
	return "", false
}

// resolveTrailingWords resolves "Cassino Italy" style city+country composites
// from the last one or two words.
func resolveTrailingWords(q countryQuery) (string, bool) {
	if len(q.words) < 2 {
		return "", false
	}
	last := q.words[len(q.words)-1]
	if name, ok := countryCodes[last]; ok {
		return name, true
	}
	if isCanonicalName(last) {
		return titleCase(last), true
	}
	lastTwo := strings.Join(q.words[len(q.words)-2:], " ")
	if twoWordCountries[lastTwo] {
		return titleCase(lastTwo), true
	}
	return "", false
}

// resolveCodeTable is the direct lookup against the code table. The
// per-manufacturer override is consulted first when context is present.
func resolveCodeTable(q countryQuery) (string, bool) {
	if q.manufacturer != "" {
		key := codeOverride{Code: q.upper, Manufacturer: q.manufacturer}
		if name, ok := manufacturerCodeOverrides[key]; ok {
			return name, true
		}
	}
	if name, ok := countryCodes[q.upper]; ok {
		return name, true
	}
	return "", false
}

// resolveNameSubstring catches already-spelled-out country names with minor
// prefix/suffix noise around them.
func resolveNameSubstring(q countryQuery) (string, bool) {
	for _, name := range knownCountryNames {
		if strings.Contains(q.upper, name) {
			return titleCase(name), true
		}
	}
	return "", false
}

// isCanonicalName reports whether the uppercased word is itself one of the
// canonical country names.
func isCanonicalName(upper string) bool {
	for _, name := range knownCountryNames {
		if name == upper {
			return true
		}
	}
	return false
}

func titleCase(s string) string {
	return cases.Title(language.English).String(strings.ToLower(s))
}
