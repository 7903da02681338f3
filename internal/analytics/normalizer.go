package analytics

import (
	"strings"
	"unicode"
)

// canonicalForms maps curated lowercase surface variants (demonyms,
// abbreviations, truncated OCR forms, acronyms) to a canonical lowercase
// root. Canonical roots map to themselves so normalization is idempotent.
// The table is tuned to the archive's historical domain (1990-1992 South
// Asia coverage) and always wins over the suffix fallback.
var canonicalForms = map[string]string{
	// Pakistan and its regions
	"pakistan":   "pakistan",
	"pakistani":  "pakistan",
	"pakistanis": "pakistan",
	"paki":       "pakistan",
	"pak":        "pakistan",
	"punjab":     "punjab",
	"punjabi":    "punjab",
	"punjabis":   "punjab",
	"sindh":      "sindh",
	"sindhi":     "sindh",
	"sindhis":    "sindh",
	"karachi":    "karachi",
	"kashmir":    "kashmir",
	"kashmiri":   "kashmir",
	"kashmiris":  "kashmir",

	// Neighbours and frequent foreign datelines
	"india":        "india",
	"indian":       "india",
	"indians":      "india",
	"afghanistan":  "afghanistan",
	"afghan":       "afghanistan",
	"afghans":      "afghanistan",
	"iran":         "iran",
	"iranian":      "iran",
	"iranians":     "iran",
	"iraq":         "iraq",
	"iraqi":        "iraq",
	"iraqis":       "iraq",
	"israel":       "israel",
	"israeli":      "israel",
	"israelis":     "israel",
	"china":        "china",
	"chinese":      "china",
	"japan":        "japan",
	"japanese":     "japan",
	"bangladesh":   "bangladesh",
	"bangladeshi":  "bangladesh",
	"bangladeshis": "bangladesh",
	"sri lanka":    "sri lanka",
	"sri lankan":   "sri lanka",
	"lanka":        "sri lanka",
	"saudi arabia": "saudi arabia",
	"saudi":        "saudi arabia",
	"saudis":       "saudi arabia",
	"kuwait":       "kuwait",
	"kuwaiti":      "kuwait",
	"kuwaitis":     "kuwait",

	// Cold-war era powers
	"ussr":          "ussr",
	"soviet":        "ussr",
	"soviets":       "ussr",
	"soviet union":  "ussr",
	"russia":        "russia",
	"russian":       "russia",
	"russians":      "russia",
	"america":       "america",
	"american":      "america",
	"americans":     "america",
	"us":            "america",
	"usa":           "america",
	"u.s.":          "america",
	"u.s.a.":        "america",
	"united states": "america",
	"britain":       "britain",
	"british":       "britain",
	"briton":        "britain",
	"britons":       "britain",
	"uk":            "britain",
	"u.k.":          "britain",
	"germany":       "germany",
	"german":        "germany",
	"germans":       "germany",
	"france":        "france",
	"french":        "france",

	// Organizations
	"un":             "un",
	"u.n.":           "un",
	"united nations": "un",
	"eec":            "eec",
	"plo":            "plo",
}

// Normalize maps an entity surface form onto its canonical label so counts
// and co-occurrence are computed on the underlying entity, not its spelling.
// Precedence: exact table lookup, then demonym suffix stripping, then the
// input unchanged. Pure function of the text alone.
func Normalize(text string) string {
	lower := strings.ToLower(text)

	if canonical, ok := canonicalForms[lower]; ok {
		return titleCase(canonical)
	}

	// Suffix fallback for demonyms the table does not know. Occasional false
	// grouping on ordinary words ending in these suffixes is accepted.
	switch {
	case strings.HasSuffix(lower, "ans") && len(lower) > 5:
		// Americans -> America: the trailing "a" stays.
		return titleCase(strings.TrimSuffix(lower, "ns"))
	case strings.HasSuffix(lower, "ese") && len(lower) > 6:
		base := strings.TrimSuffix(lower, "ese")
		if strings.HasSuffix(base, "in") {
			// Chinese -> Chin -> China
			base += "a"
		}
		return titleCase(base)
	case strings.HasSuffix(lower, "is") && len(lower) > 5:
		// Israelis -> Israel
		return titleCase(strings.TrimSuffix(lower, "is"))
	}

	return text
}

// titleCase capitalizes the first letter of each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
