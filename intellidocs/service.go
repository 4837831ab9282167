package intellidocs

import (
	"context"
	"fmt"
	"strings"

	"github.com/pratm1304/IntelliDocs-Ai/llm"
	log "github.com/rs/zerolog/log"
)

// Service wires ingestion, summarization, prompting and the model together
type Service struct {
	model      llm.Client
	stager     *Stager
	summarizer *Summarizer
}

// NewService creates a new Service; the model client is owned by the caller
func NewService(model llm.Client, stager *Stager, summarizer *Summarizer) *Service {
	return &Service{
		model:      model,
		stager:     stager,
		summarizer: summarizer,
	}
}

// FormatText asks the model to restructure text as Markdown.
// sourceFormat "html" converts the input to Markdown first.
func (s *Service) FormatText(ctx context.Context, text, sourceFormat string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrNoText
	}
	if strings.EqualFold(sourceFormat, SourceFormatHTML) {
		converted, err := HTMLToMarkdown(text)
		if err != nil {
			return "", err
		}
		text = converted
	}
	prompt, err := FormatTextPrompt(text)
	if err != nil {
		return "", err
	}
	return s.model.Generate(ctx, prompt)
}

// GenerateReadme stages src, summarizes it and asks the model for a README.
// The staging directory is removed before returning, on success or failure.
func (s *Service) GenerateReadme(ctx context.Context, src Source) (string, error) {
	summary, err := s.SummarizeSource(ctx, src)
	if err != nil {
		return "", err
	}
	return s.GenerateReadmeFromSummary(ctx, summary)
}

// GenerateReadmeFromSummary runs the README prompt over an existing summary
func (s *Service) GenerateReadmeFromSummary(ctx context.Context, summary string) (string, error) {
	prompt, err := ReadmePrompt(summary)
	if err != nil {
		return "", err
	}
	return s.model.Generate(ctx, prompt)
}

// SummarizeSource stages src and returns its structure summary, cleaning up afterwards
func (s *Service) SummarizeSource(ctx context.Context, src Source) (summary string, err error) {
	stage, err := s.stager.Stage(ctx, src)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := stage.Cleanup(); cerr != nil {
			log.Error().Err(cerr).Str("path", stage.Dir).Msg("failed to clean up staging directory")
			if err == nil {
				err = fmt.Errorf("cleanup: %w", cerr)
			}
		}
	}()
	return s.summarizer.Summarize(stage.Dir, stage.Name)
}

// SummarizeDirectory summarizes a local directory in place
func (s *Service) SummarizeDirectory(dir string) (string, error) {
	return s.summarizer.Summarize(dir, "")
}
