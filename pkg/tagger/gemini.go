package tagger

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// DefaultGeminiModel is used when no model name is configured.
const DefaultGeminiModel = "gemini-2.0-flash"

type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// GeminiTagger implements Tagger with the Google Gemini API.
type GeminiTagger struct {
	client *genai.Client
	model  contentGenerator
	name   string
}

var _ Tagger = (*GeminiTagger)(nil)

// NewGeminiTagger creates a Gemini tagger. An empty API key yields a tagger
// whose GenerateTags returns ErrNotConfigured.
func NewGeminiTagger(ctx context.Context, apiKey, modelName, instruction string) (*GeminiTagger, error) {
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	if apiKey == "" {
		log.Warn("Gemini API key not provided. Gemini tagging will be disabled.")
		return &GeminiTagger{name: modelName}, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(instructionOrDefault(instruction))},
	}
	model.SetTemperature(0.2)

	log.Infof("Gemini tagger initialized with model %s", modelName)
	return &GeminiTagger{client: client, model: model, name: modelName}, nil
}

func (g *GeminiTagger) Name() string { return "gemini/" + g.name }

func (g *GeminiTagger) GenerateTags(ctx context.Context, req Request) ([]string, error) {
	if g.model == nil {
		return nil, ErrNotConfigured
	}
	resp, err := g.model.GenerateContent(ctx, genai.Text(BuildPrompt(req)))
	if err != nil {
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}
	return ParseTags(responseText(resp)), nil
}

// Close releases the underlying client.
func (g *GeminiTagger) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
		// Only the first candidate with content is used.
		if b.Len() > 0 {
			break
		}
	}
	return b.String()
}
