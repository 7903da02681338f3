package analytics

import "unicode"

// noiseTypes are entity types excluded from research-oriented aggregations.
var noiseTypes = map[string]struct{}{
	"DATE":     {},
	"TIME":     {},
	"CARDINAL": {},
	"ORDINAL":  {},
	"QUANTITY": {},
	"MONEY":    {},
	"PERCENT":  {},
}

// Filter excludes entity mentions that add noise to aggregations. It is
// applied before normalization wherever entities are counted.
type Filter struct {
	noiseTypes map[string]struct{}
	minLength  int
}

// NewFilter creates a Filter with the default noise-type set and a minimum
// surface-form length of 3.
func NewFilter() *Filter {
	return &Filter{
		noiseTypes: noiseTypes,
		minLength:  3,
	}
}

// Relevant reports whether a mention should enter entity aggregations.
func (f *Filter) Relevant(m EntityMention) bool {
	if _, noisy := f.noiseTypes[m.Type]; noisy {
		return false
	}
	if len(m.Text) < f.minLength {
		return false
	}
	if allDigits(m.Text) {
		return false
	}
	return true
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
