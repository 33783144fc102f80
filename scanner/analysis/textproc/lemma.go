package textproc

import "strings"

// irregularLemmas covers the common irregular plural and verb forms
// seen in resume text.
var irregularLemmas = map[string]string{
	"men":      "man",
	"women":    "woman",
	"children": "child",
	"people":   "person",
	"teeth":    "tooth",
	"feet":     "foot",
	"mice":     "mouse",
	"geese":    "goose",
	"data":     "datum",
	"criteria": "criterion",
	"analyses": "analysis",
	"theses":   "thesis",
	"media":    "medium",
	"indices":  "index",
	"matrices": "matrix",
}

// lemmatizeWord reduces a single token to its base form with noun-style
// suffix rules
func lemmatizeWord(word string) string {
	lower := strings.ToLower(word)
	if base, ok := irregularLemmas[lower]; ok {
		return base
	}
	if len(lower) <= 3 {
		return lower
	}

	switch {
	case strings.HasSuffix(lower, "sses"):
		return lower[:len(lower)-2]
	case strings.HasSuffix(lower, "ies") && len(lower) > 4:
		return lower[:len(lower)-3] + "y"
	case strings.HasSuffix(lower, "xes"), strings.HasSuffix(lower, "zes"),
		strings.HasSuffix(lower, "ches"), strings.HasSuffix(lower, "shes"):
		return lower[:len(lower)-2]
	case strings.HasSuffix(lower, "ss"), strings.HasSuffix(lower, "us"), strings.HasSuffix(lower, "is"):
		return lower
	case strings.HasSuffix(lower, "s"):
		return lower[:len(lower)-1]
	}
	return lower
}
