package keywords

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// MaxTags is the maximum number of suggested tags returned.
	MaxTags = 7
	// MinWordLength is the shortest keyword (in runes) that can become a tag.
	MinWordLength = 3
	// MinTokens is the number of raw whitespace-separated tokens below which
	// the text is considered too short to tag.
	MinTokens = 3
)

// SuggestTags extracts up to MaxTags keyword tags from text, ordered by
// descending frequency. Ties keep the order in which the words first appear.
// Empty input, or input with fewer than MinTokens raw tokens, yields an empty
// slice. The result is never nil.
func SuggestTags(text string) []string {
	if len(strings.Fields(text)) < MinTokens {
		return []string{}
	}

	words := Tokenize(text)

	counts := make(map[string]int, len(words))
	var order []string // first-seen order of distinct keywords
	for _, w := range words {
		if IsStopWord(w) || utf8.RuneCountInString(w) < MinWordLength {
			continue
		}
		if _, seen := counts[w]; !seen {
			order = append(order, w)
		}
		counts[w]++
	}

	if len(order) == 0 {
		return []string{}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > MaxTags {
		order = order[:MaxTags]
	}
	return order
}

// Tokenize lowercases text, strips every rune that is neither a word
// character (letter, number, underscore) nor whitespace, and splits the
// result on whitespace. Stop words are not removed.
func Tokenize(text string) []string {
	return strings.Fields(Normalize(text))
}

// Normalize lowercases text and removes punctuation while keeping spacing.
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	// A Caser holds state and is not safe for concurrent use, so one is
	// built per call.
	lowered := cases.Lower(language.Und).String(text)
	return strings.Map(func(r rune) rune {
		if isWordRune(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, lowered)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
