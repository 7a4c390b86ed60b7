package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	testCases := []struct {
		name, in, want string
	}{
		{name: "bom", in: "\xEF\xBB\xBFhello", want: "hello"},
		{name: "smart quotes", in: "“LLM” isn’t magic", want: "\"LLM\" isn't magic"},
		{name: "dashes and ellipsis", in: "a\u2013b\u2014c\u2026", want: "a-b--c..."},
		{name: "crlf", in: "one\r\ntwo", want: "one\ntwo"},
		{name: "trim", in: "  padded \n", want: "padded"},
		{name: "invalid utf8", in: "ok\xffok", want: "ok\uFFFDok"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CleanText(tc.in))
		})
	}
}

func TestIsLikelyBinary(t *testing.T) {
	dir := t.TempDir()
	text := filepath.Join(dir, "a.txt")
	bin := filepath.Join(dir, "a.bin")
	require.NoError(t, os.WriteFile(text, []byte("plain text"), 0o644))
	require.NoError(t, os.WriteFile(bin, []byte{0x89, 0x50, 0x00, 0x01}, 0o644))

	isBin, err := IsLikelyBinary(text)
	require.NoError(t, err)
	assert.False(t, isBin)

	isBin, err = IsLikelyBinary(bin)
	require.NoError(t, err)
	assert.True(t, isBin)

	_, err = IsLikelyBinary(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestStripHTML(t *testing.T) {
	testCases := []struct {
		name, in, want string
	}{
		{name: "plain", in: "no markup here", want: "no markup here"},
		{name: "inline", in: "<p>Hello <b>world</b></p>", want: "Hello world"},
		{name: "blocks separate words", in: "<div>one</div><div>two</div>", want: "one two"},
		{name: "script dropped", in: "<p>keep</p><script>var x = 1;</script><style>p{}</style>", want: "keep"},
		{name: "entities", in: "<p>fish &amp; chips</p>", want: "fish & chips"},
		{name: "empty", in: "", want: ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StripHTML(tc.in))
		})
	}
}

func TestFirstSentence(t *testing.T) {
	assert.Equal(t, "", FirstSentence("   ", 80))
	assert.Equal(t, "RAG is powerful.", FirstSentence("RAG is powerful. It uses knowledge stores.", 80))
	assert.Equal(t, "no terminator", FirstSentence("no terminator", 80))
	assert.Equal(t, "RAG is...", FirstSentence("RAG is powerful. More.", 9))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "short", Truncate("short", 0))
	assert.Equal(t, "abcd...", Truncate("abcdefghij", 7))
	assert.Equal(t, "ab", Truncate("abcdef", 2))
	assert.Equal(t, "café...", Truncate("café au lait", 7))
}
