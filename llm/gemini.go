package llm

import (
	"context"
	"errors"
	"strings"

	log "github.com/rs/zerolog/log"
	genai "google.golang.org/genai"
)

// DefaultGeminiModel is used when no model is configured
const DefaultGeminiModel = "gemini-1.5-flash"

var ErrEmptyResponse = errors.New("llm: model returned no text")

// GeminiClient is a thin wrapper around the official genai client.
type GeminiClient struct {
	cli   *genai.Client
	model string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if model == "" {
		model = DefaultGeminiModel
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiClient{cli: cli, model: model}, nil
}

func (g *GeminiClient) Name() string { return "Gemini:" + g.model }
func (g *GeminiClient) Close() error { return nil }

// Generate sends prompt as a single user turn and returns the concatenated text parts.
func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	log.Debug().Str("model", g.model).Int("bytes", len(prompt)).Msg("LLM request")
	resp, err := g.cli.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", &ModelCallError{Model: g.model, Err: err}
	}
	text := responseText(resp)
	if text == "" {
		return "", &ModelCallError{Model: g.model, Err: ErrEmptyResponse}
	}
	log.Debug().Str("model", g.model).Int("bytes", len(text)).Msg("LLM response")
	return text, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}
