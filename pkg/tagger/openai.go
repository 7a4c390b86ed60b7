package tagger

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// ChatCompletionCreator is the subset of *openai.Client used by OpenAITagger.
type ChatCompletionCreator interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAITagger implements Tagger with an OpenAI-compatible chat completion API.
type OpenAITagger struct {
	client      ChatCompletionCreator
	model       string
	instruction string
}

var _ Tagger = (*OpenAITagger)(nil)

func NewOpenAITagger(client ChatCompletionCreator, model, instruction string) *OpenAITagger {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAITagger{
		client:      client,
		model:       model,
		instruction: instructionOrDefault(instruction),
	}
}

// NewOpenAIClient builds an OpenAI client, pointing it at baseURL when set.
func NewOpenAIClient(apiKey, baseURL string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(cfg)
}

func (o *OpenAITagger) Name() string { return "openai/" + o.model }

func (o *OpenAITagger) GenerateTags(ctx context.Context, req Request) ([]string, error) {
	if o.client == nil {
		return nil, ErrNotConfigured
	}
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: 0.2,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: o.instruction},
			{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(req)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices returned from OpenAI")
	}
	return ParseTags(resp.Choices[0].Message.Content), nil
}
