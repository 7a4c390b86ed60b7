package clix

import (
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("limit", 20, "")
	fs.Int("offset", 0, "")
	fs.String("tags", "", "")
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestParsePagination(t *testing.T) {
	p, err := ParsePagination(newFlags(t, "--limit", "5", "--offset", "10"))
	require.NoError(t, err)
	assert.Equal(t, PaginationParams{Limit: 5, Offset: 10}, p)

	p, err = ParsePagination(newFlags(t, "--limit", "0"))
	require.NoError(t, err)
	assert.Equal(t, 20, p.Limit)

	_, err = ParsePagination(newFlags(t, "--offset", "-1"))
	assert.Error(t, err)
}

func TestParseTags(t *testing.T) {
	tags, err := ParseTags(newFlags(t, "--tags", " go, ,llm "), "rag", " ")
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "llm", "rag"}, tags)

	tags, err = ParseTags(newFlags(t))
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestTextFromArgs(t *testing.T) {
	got, err := TextFromArgs([]string{"data", "security"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "data security", got)

	got, err = TextFromArgs(nil, strings.NewReader("from stdin"))
	require.NoError(t, err)
	assert.Equal(t, "from stdin", got)

	got, err = TextFromArgs([]string{"-"}, strings.NewReader("dash"))
	require.NoError(t, err)
	assert.Equal(t, "dash", got)

	_, err = TextFromArgs(nil, nil)
	assert.Error(t, err)
}
