package sqlite

import (
	"context"
	"testing"
	"time"

	"ahha/internal/models"
	"ahha/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *StoreImpl {
	t.Helper()
	ctx := context.Background()
	s, err := NewSQLiteStore(ctx, ":memory:")
	require.NoError(t, err)
	require.NoError(t, s.Migrate(ctx))
	t.Cleanup(func() { s.Close() })
	return s
}

func strPtr(s string) *string { return &s }

func TestStore_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	ts := time.Date(2024, 5, 1, 10, 30, 0, 123000000, time.UTC)
	snippet := &models.Snippet{
		Title:             "RAG notes",
		Content:           "Retrieval augmented generation",
		PermalinkToOrigin: strPtr("https://example.com/chat"),
		ContentType:       strPtr(models.ContentTypeText),
		GeneratedTags:     []string{"rag", "llm"},
		Timestamp:         ts,
	}
	require.NoError(t, s.CreateSnippet(ctx, snippet))
	require.NotEmpty(t, snippet.ID)

	got, err := s.GetSnippet(ctx, snippet.ID)
	require.NoError(t, err)
	assert.Equal(t, snippet.Title, got.Title)
	assert.Equal(t, snippet.Content, got.Content)
	assert.Equal(t, "https://example.com/chat", *got.PermalinkToOrigin)
	assert.Nil(t, got.Notes)
	assert.Equal(t, []string{"rag", "llm"}, got.GeneratedTags)
	assert.True(t, ts.Equal(got.Timestamp))
}

func TestStore_CreateDefaults(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	snippet := &models.Snippet{Title: "t", Content: "c"}
	require.NoError(t, s.CreateSnippet(ctx, snippet))
	assert.False(t, snippet.Timestamp.IsZero())

	got, err := s.GetSnippet(ctx, snippet.ID)
	require.NoError(t, err)
	require.NotNil(t, got.GeneratedTags)
	assert.Empty(t, got.GeneratedTags)
}

func TestStore_CreateDuplicate(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.CreateSnippet(ctx, &models.Snippet{ID: "fixed", Title: "a", Content: "b"}))
	err := s.CreateSnippet(ctx, &models.Snippet{ID: "fixed", Title: "a", Content: "b"})
	assert.ErrorIs(t, err, store.ErrDuplicate)
}

func TestStore_GetMissing(t *testing.T) {
	_, err := newTestStore(t).GetSnippet(context.Background(), "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_ListOrderAndSearch(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	fixtures := []*models.Snippet{
		{ID: "1", Title: "Enterprise LLM adoption", Content: "data privacy", GeneratedTags: []string{"llm"}, Timestamp: base},
		{ID: "2", Title: "Measuring ROI", Content: "efficiency gains", Notes: strPtr("ask finance"), Timestamp: base.Add(time.Hour)},
		{ID: "3", Title: "Fine tuning", Content: "100% custom", GeneratedTags: []string{"Training"}, Timestamp: base.Add(2 * time.Hour)},
	}
	for _, f := range fixtures {
		require.NoError(t, s.CreateSnippet(ctx, f))
	}

	ids := func(list []*models.Snippet) []string {
		out := []string{}
		for _, sn := range list {
			out = append(out, sn.ID)
		}
		return out
	}

	testCases := []struct {
		name   string
		params store.ListParams
		want   []string
	}{
		{name: "all newest first", params: store.ListParams{}, want: []string{"3", "2", "1"}},
		{name: "title case-insensitive", params: store.ListParams{Search: "roi"}, want: []string{"2"}},
		{name: "content match", params: store.ListParams{Search: "PRIVACY"}, want: []string{"1"}},
		{name: "notes match", params: store.ListParams{Search: "finance"}, want: []string{"2"}},
		{name: "exact tag match", params: store.ListParams{Search: "training"}, want: []string{"3"}},
		{name: "percent is literal", params: store.ListParams{Search: "100%"}, want: []string{"3"}},
		{name: "underscore is literal", params: store.ListParams{Search: "_"}, want: []string{}},
		{name: "no match", params: store.ListParams{Search: "kubernetes"}, want: []string{}},
		{name: "limit", params: store.ListParams{Limit: 2}, want: []string{"3", "2"}},
		{name: "offset", params: store.ListParams{Limit: 2, Offset: 2}, want: []string{"1"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.ListSnippets(ctx, tc.params)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ids(got))
		})
	}
}

func TestStore_UpdateTags(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	snippet := &models.Snippet{Title: "t", Content: "c"}
	require.NoError(t, s.CreateSnippet(ctx, snippet))
	require.NoError(t, s.UpdateSnippetTags(ctx, snippet.ID, []string{"go", "sqlite"}))

	got, err := s.GetSnippet(ctx, snippet.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "sqlite"}, got.GeneratedTags)

	assert.ErrorIs(t, s.UpdateSnippetTags(ctx, "missing", []string{"x"}), store.ErrNotFound)
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	snippet := &models.Snippet{Title: "t", Content: "c"}
	require.NoError(t, s.CreateSnippet(ctx, snippet))
	require.NoError(t, s.DeleteSnippet(ctx, snippet.ID))

	_, err := s.GetSnippet(ctx, snippet.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, s.DeleteSnippet(ctx, snippet.ID), store.ErrNotFound)
}

func TestStore_Ping(t *testing.T) {
	assert.NoError(t, newTestStore(t).Ping(context.Background()))
}
