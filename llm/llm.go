package llm

import (
	"context"
	"fmt"
)

// Client sends a single prompt to a generative text model
type Client interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
	Close() error
}

// ModelCallError wraps any failure talking to the model API
type ModelCallError struct {
	Model string
	Err   error
}

func (e *ModelCallError) Error() string {
	return fmt.Sprintf("model call to %s failed: %v", e.Model, e.Err)
}

func (e *ModelCallError) Unwrap() error { return e.Err }
