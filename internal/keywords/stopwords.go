package keywords

// StopWordsVersion identifies the stop-word list below. Bump it whenever the
// list changes: extraction results produced under different versions are not
// comparable.
const StopWordsVersion = 1

var stopWords = newWordSet(
	"a", "an", "the",
	"is", "are", "was", "were", "be", "been", "being",
	"have", "has", "had", "do", "does", "did",
	"will", "would", "should", "can", "could", "may", "might", "must",
	"and", "but", "or", "nor", "for", "so", "yet",
	"if", "then", "else", "when", "where", "why", "how",
	"what", "which", "who", "whom", "whose",
	"this", "that", "these", "those",
	"i", "you", "he", "she", "it", "we", "they",
	"me", "him", "her", "us", "them",
	"my", "your", "his", "its", "our", "their",
	"mine", "yours", "hers", "ours", "theirs",
	"to", "of", "in", "on", "at", "by", "from", "with",
	"about", "above", "after", "again", "against", "all", "am", "as", "any", "around",
	"because", "before", "below", "between", "both", "during",
	"each", "few", "further", "here", "into", "just",
	"no", "not", "now", "once", "only", "other", "out", "over", "own",
	"same", "some", "such", "than", "too", "under", "until", "up", "very",
	"while", "through",
)

type wordSet map[string]struct{}

func newWordSet(words ...string) wordSet {
	s := make(wordSet, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

// IsStopWord reports whether the lowercase word is in the stop-word list.
func IsStopWord(word string) bool {
	_, ok := stopWords[word]
	return ok
}

// StopWords returns a copy of the stop-word list in no particular order.
func StopWords() []string {
	out := make([]string, 0, len(stopWords))
	for w := range stopWords {
		out = append(out, w)
	}
	return out
}
