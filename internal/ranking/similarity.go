package ranking

import (
	"math"
	"strings"
	"unicode"
)

var stopWords = map[string]bool{
	"a": true, "about": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "by": true, "for": true, "from": true, "has": true, "have": true, "in": true,
	"is": true, "it": true, "its": true, "of": true, "on": true, "or": true, "our": true,
	"that": true, "the": true, "their": true, "this": true, "to": true, "was": true,
	"we": true, "were": true, "will": true, "with": true, "you": true, "your": true,
}

// Similarity returns the cosine similarity of the term frequency vectors of a
// and b, scaled to [0,100] and rounded to two decimals.
func Similarity(a, b string) float64 {
	va, vb := termFrequencies(a), termFrequencies(b)
	if len(va) == 0 || len(vb) == 0 {
		return 0
	}

	var dot, na, nb float64
	for term, x := range va {
		na += x * x
		if y, ok := vb[term]; ok {
			dot += x * y
		}
	}
	for _, y := range vb {
		nb += y * y
	}

	cos := dot / (math.Sqrt(na) * math.Sqrt(nb))
	return math.Round(cos*100*100) / 100
}

func termFrequencies(text string) map[string]float64 {
	tf := make(map[string]float64)
	for _, tok := range tokenize(text) {
		if len(tok) < 2 || stopWords[tok] {
			continue
		}
		tf[tok]++
	}
	return tf
}

// tokenize lowercases text and keeps the characters that appear in skill names
// such as "c++", "c#", "node.js" and "ci/cd".
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !strings.ContainsRune("+#./", r)
	})

	out := fields[:0]
	for _, f := range fields {
		if f = strings.Trim(f, "./"); f != "" {
			out = append(out, f)
		}
	}
	return out
}
