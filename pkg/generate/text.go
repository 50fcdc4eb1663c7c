package generate

import (
	"strings"

	"github.com/goliatone/go-formfill/pkg/model"
)

var phraseWords = []string{
	"bright", "calm", "clear", "daily", "early", "easy", "fair", "fresh",
	"good", "great", "helpful", "honest", "kind", "light", "local", "modern",
	"nice", "open", "quick", "quiet", "simple", "smart", "steady", "warm",
	"coffee", "city", "garden", "journey", "morning", "music", "people",
	"project", "river", "routine", "service", "team", "trip", "weekend",
	"work", "experience",
}

const (
	minPhraseWords = 3
	maxPhraseWords = 7
)

func (g *Generator) text(q model.Question) string {
	title := strings.ToLower(q.Title)
	for _, rule := range g.rules {
		if strings.Contains(title, rule.Contains) {
			return rule.Values[g.rng.IntN(len(rule.Values))]
		}
	}
	if len(g.pool) > 0 {
		return g.pool[g.rng.IntN(len(g.pool))]
	}
	return g.phrase()
}

// phrase builds a short sentence from the built-in word list.
func (g *Generator) phrase() string {
	count := minPhraseWords + g.rng.IntN(maxPhraseWords-minPhraseWords+1)
	words := make([]string, count)
	for i := range words {
		words[i] = phraseWords[g.rng.IntN(len(phraseWords))]
	}
	words[0] = strings.ToUpper(words[0][:1]) + words[0][1:]
	return strings.Join(words, " ") + "."
}

// cleanValues flattens line breaks, which the submission encoding cannot
// carry in a single-line answer, and drops blank values.
func cleanValues(values []string) []string {
	var out []string
	for _, value := range values {
		flat := strings.Join(strings.Fields(value), " ")
		if flat == "" {
			continue
		}
		out = append(out, flat)
	}
	return out
}
