package aala

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveCodes(t *testing.T) {
	r := NewCountryResolver()

	tests := []struct {
		name  string
		token string
		want  string
	}{
		{"single letter code", "G", "Germany"},
		{"single letter code J", "J", "Japan"},
		{"iso style code", "MX", "Mexico"},
		{"three letter code", "KOR", "South Korea"},
		{"legacy denmark code", "DE", "Denmark"},
		{"lowercase code", "us", "United States"},
		{"code with parenthetical", "G (AWD)", "Germany"},
		{"code with engine annotation", "US (2.0L)", "United States"},
		{"multiline takes first line", "G\nTransaxle: J", "Germany"},
		{"prefix with comma", "K, transmissions", "South Korea"},
		{"prefix us with trailing words", "US, engines only", "United States"},
		{"city state country", "Detroit MI USA", "United States"},
		{"canadian province", "Windsor ON", "Canada"},
		{"german city", "Leipzig", "Germany"},
		{"city country composite", "Cassino Italy", "Italy"},
		{"city two word country", "Ulsan South Korea", "South Korea"},
		{"spelled out name", "GERMANY", "Germany"},
		{"name with trailing noise", "Japan.", "Japan"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"unresolved long token", "Atlantis Prime", "Atlantis Prime"},
		{"unresolved short token unchanged", "XQ", "XQ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Resolve(tt.token))
		})
	}
}

func TestResolveSubnationalBeatsTrailingWord(t *testing.T) {
	r := NewCountryResolver()

	// "MI" must resolve via the state abbreviation before the trailing
	// "USA" is ever consulted; both paths happen to agree for this token,
	// so pin the strategy order with a token where they disagree.
	assert.Equal(t, "United States", r.Resolve("Detroit MI USA"))
	assert.Equal(t, "United States", r.Resolve("Lansing MI Germany"))
}

func TestResolveManufacturerOverride(t *testing.T) {
	r := NewCountryResolver()

	// BMW filings use AF for Africa. The override and the global table agree
	// today; the override is consulted first when context is supplied.
	assert.Equal(t, "South Africa", r.ResolveFor("AF", "BMW AG"))
	assert.Equal(t, "South Africa", r.Resolve("AF"))
}

func TestResolveIdempotentOnCanonicalNames(t *testing.T) {
	r := NewCountryResolver()

	for _, upper := range knownCountryNames {
		name := titleCase(upper)
		resolved := r.Resolve(name)
		assert.Equal(t, resolved, r.Resolve(resolved), "resolving %q twice", name)
	}
}
