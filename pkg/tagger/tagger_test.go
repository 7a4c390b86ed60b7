package tagger

import (
	"context"
	"errors"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTags(t *testing.T) {
	testCases := []struct {
		name     string
		reply    string
		expected []string
	}{
		{name: "simple", reply: "llm, enterprise, data privacy", expected: []string{"llm", "enterprise", "data privacy"}},
		{name: "lowercased and trimmed", reply: "  RAG ,Knowledge Base\n", expected: []string{"rag", "knowledge base"}},
		{name: "blanks dropped", reply: "go,, ,testing,", expected: []string{"go", "testing"}},
		{name: "repeats dropped", reply: "go, Go, GO", expected: []string{"go"}},
		{name: "decorations stripped", reply: "`ai`, \"ml\", **nlp**", expected: []string{"ai", "ml", "nlp"}},
		{name: "empty", reply: "", expected: []string{}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseTags(tc.reply)
			require.NotNil(t, got)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	got := BuildPrompt(Request{Title: "ROI", Content: `say "hi"`})
	assert.Equal(t, "Title: \"ROI\"\nContent: \"say \\\"hi\\\"\"", got)
}

// --- Mock OpenAI Client ---
type mockOpenAIClient struct {
	mockResponse openai.ChatCompletionResponse
	mockError    error
	lastRequest  openai.ChatCompletionRequest
}

func (m *mockOpenAIClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	m.lastRequest = req
	if m.mockError != nil {
		return openai.ChatCompletionResponse{}, m.mockError
	}
	return m.mockResponse, nil
}

func TestOpenAITagger_GenerateTags(t *testing.T) {
	mockClient := &mockOpenAIClient{
		mockResponse: openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: "LLM, ROI, Finance"}},
			},
		},
	}
	tg := NewOpenAITagger(mockClient, "gpt-test", "")

	tags, err := tg.GenerateTags(context.Background(), Request{Title: "t", Content: "c"})
	require.NoError(t, err)
	assert.Equal(t, []string{"llm", "roi", "finance"}, tags)
	assert.Equal(t, "openai/gpt-test", tg.Name())

	require.Len(t, mockClient.lastRequest.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, mockClient.lastRequest.Messages[0].Role)
	assert.Equal(t, DefaultInstruction, mockClient.lastRequest.Messages[0].Content)
	assert.Equal(t, BuildPrompt(Request{Title: "t", Content: "c"}), mockClient.lastRequest.Messages[1].Content)
}

func TestOpenAITagger_Errors(t *testing.T) {
	_, err := NewOpenAITagger(&mockOpenAIClient{mockError: errors.New("boom")}, "m", "").
		GenerateTags(context.Background(), Request{})
	assert.ErrorContains(t, err, "boom")

	_, err = NewOpenAITagger(&mockOpenAIClient{}, "m", "").GenerateTags(context.Background(), Request{})
	assert.ErrorContains(t, err, "no choices")

	_, err = NewOpenAITagger(nil, "m", "").GenerateTags(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

type fakeGenerator struct {
	resp *genai.GenerateContentResponse
	err  error
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	return f.resp, f.err
}

func TestGeminiTagger_GenerateTags(t *testing.T) {
	tg := &GeminiTagger{
		name: "test",
		model: &fakeGenerator{resp: &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []genai.Part{genai.Text("Vector DB, "), genai.Text("RAG")}}},
			},
		}},
	}
	tags, err := tg.GenerateTags(context.Background(), Request{Title: "t", Content: "c"})
	require.NoError(t, err)
	assert.Equal(t, []string{"vector db", "rag"}, tags)
	assert.Equal(t, "gemini/test", tg.Name())
}

func TestGeminiTagger_Unconfigured(t *testing.T) {
	tg, err := NewGeminiTagger(context.Background(), "", "", "")
	require.NoError(t, err)
	_, err = tg.GenerateTags(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Equal(t, "gemini/"+DefaultGeminiModel, tg.Name())
	assert.NoError(t, tg.Close())
}

func TestGeminiTagger_Error(t *testing.T) {
	tg := &GeminiTagger{model: &fakeGenerator{err: errors.New("quota")}}
	_, err := tg.GenerateTags(context.Background(), Request{})
	assert.ErrorContains(t, err, "quota")
}
