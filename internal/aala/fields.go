package aala

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// "50%G", "26% H", "100% J": leading integer, percent sign, optional
	// trailing country code.
	rePercentCountry = regexp.MustCompile(`^(\d+)\s*%\s*([A-Za-z]+)?`)

	// Leading integer with optional percent sign.
	rePercent = regexp.MustCompile(`^(\d+)\s*%?`)
)

// ParsePercentCountry splits a composite "percentage + country code" cell
// into its parts. ok is false when the cell has no leading integer; the
// country token is "" when the percentage stands alone. Only the first line
// of a multi-line cell is considered.
func ParsePercentCountry(cell string) (percent int, country string, ok bool) {
	value := firstLineOf(cell)
	if value == "" {
		return 0, "", false
	}

	m := rePercentCountry.FindStringSubmatch(value)
	if m == nil {
		return 0, "", false
	}

	percent, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, "", false
	}
	return percent, strings.ToUpper(m[2]), true
}

// ParsePercent reads a leading percentage value from a cell. A cell with no
// leading integer yields 0: absence of a stated percentage means "not
// disclosed", modeled as zero contribution.
func ParsePercent(cell string) int {
	value := strings.TrimSpace(cell)
	m := rePercent.FindStringSubmatch(value)
	if m == nil {
		return 0
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return v
}
