// Package tagger generates topic tags for a snippet with a large language
// model.
package tagger

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// DefaultInstruction is the system instruction sent to the model when no
// custom prompt is configured.
const DefaultInstruction = `You are a helpful assistant that generates relevant, concise tags for text snippets.
Given the title and content of a snippet, provide 3-5 relevant, concise, comma-separated tags.
Tags should be lowercase. Do not include any other text, explanation, or numbering.
Your output MUST be only the comma-separated list of tags.`

// ErrNotConfigured is returned by a tagger that was built without credentials.
var ErrNotConfigured = errors.New("tagger: provider not configured")

// Request holds the text to tag.
type Request struct {
	Title   string
	Content string
}

// Tagger generates tags for a snippet.
type Tagger interface {
	GenerateTags(ctx context.Context, req Request) ([]string, error)
	Name() string
}

// BuildPrompt renders the user turn sent to the model.
func BuildPrompt(req Request) string {
	return fmt.Sprintf("Title: %q\nContent: %q", req.Title, req.Content)
}

// ParseTags turns a comma-separated model reply into a tag list. Tags are
// trimmed and lowercased; blanks and repeats are dropped. The result is never
// nil.
func ParseTags(reply string) []string {
	tags := []string{}
	seen := map[string]bool{}
	for _, part := range strings.Split(reply, ",") {
		tag := strings.ToLower(strings.TrimSpace(part))
		tag = strings.Trim(tag, "`\"'*#.")
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}

func instructionOrDefault(instruction string) string {
	if strings.TrimSpace(instruction) == "" {
		return DefaultInstruction
	}
	return instruction
}
