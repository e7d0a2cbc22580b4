package match

import (
	"cmp"
	"slices"
)

const (
	// DefaultMinScore is the lowest similarity still worth suggesting.
	DefaultMinScore = 0.5
	// DefaultMaxSuggestions caps the hints attached to one diagnostic.
	DefaultMaxSuggestions = 3
)

// Suggestion is a candidate name with its similarity to the unknown name.
type Suggestion struct {
	Name  string
	Score float64
}

// Rank scores every candidate against name after normalization and returns
// those scoring at least minScore, best first. Ties are broken by name so
// the order is stable.
func Rank(name string, candidates []string, minScore float64) []Suggestion {
	norm := Normalize(name)

	var out []Suggestion

	for _, c := range candidates {
		if c == name {
			continue
		}

		score := Similarity(norm, Normalize(c))
		if score < minScore {
			continue
		}

		out = append(out, Suggestion{Name: c, Score: score})
	}

	slices.SortFunc(out, func(a, b Suggestion) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}

		return cmp.Compare(a.Name, b.Name)
	})

	return out
}

// Suggest returns up to DefaultMaxSuggestions candidate names close to name.
func Suggest(name string, candidates []string) []string {
	ranked := Rank(name, candidates, DefaultMinScore)
	if len(ranked) > DefaultMaxSuggestions {
		ranked = ranked[:DefaultMaxSuggestions]
	}

	out := make([]string, 0, len(ranked))
	for _, s := range ranked {
		out = append(out, s.Name)
	}

	return out
}
