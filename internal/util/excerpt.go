package util

import (
	"strings"
	"sync"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
	log "github.com/sirupsen/logrus"
)

var (
	tokenizerOnce sync.Once
	tokenizer     *sentences.DefaultSentenceTokenizer
)

func sentenceTokenizer() *sentences.DefaultSentenceTokenizer {
	tokenizerOnce.Do(func() {
		t, err := english.NewSentenceTokenizer(nil)
		if err != nil {
			log.WithError(err).Warn("Failed to load sentence tokenizer, falling back to line splitting")
			return
		}
		tokenizer = t
	})
	return tokenizer
}

// FirstSentence returns the first sentence of text, cut to at most maxRunes
// runes with a trailing ellipsis when it is longer. maxRunes <= 0 means no
// limit.
func FirstSentence(text string, maxRunes int) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	first := text
	if t := sentenceTokenizer(); t != nil {
		for _, s := range t.Tokenize(text) {
			if trimmed := strings.TrimSpace(s.Text); trimmed != "" {
				first = trimmed
				break
			}
		}
	} else if i := strings.IndexByte(text, '\n'); i > 0 {
		first = text[:i]
	}
	first = strings.Join(strings.Fields(first), " ")

	return Truncate(first, maxRunes)
}

// Truncate cuts s to maxRunes runes, replacing the tail with "...".
func Truncate(s string, maxRunes int) string {
	r := []rune(s)
	if maxRunes <= 0 || len(r) <= maxRunes {
		return s
	}
	if maxRunes <= 3 {
		return string(r[:maxRunes])
	}
	return strings.TrimSpace(string(r[:maxRunes-3])) + "..."
}
