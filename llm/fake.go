package llm

import (
	"context"
	"sync"
)

// FakeClient returns a fixed response and records every prompt, for offline runs and tests.
type FakeClient struct {
	Response string
	Err      error

	mu      sync.Mutex
	prompts []string
}

func NewFakeClient(response string) *FakeClient {
	return &FakeClient{Response: response}
}

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }

func (f *FakeClient) Generate(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return "", &ModelCallError{Model: f.Name(), Err: err}
	}
	if f.Err != nil {
		return "", &ModelCallError{Model: f.Name(), Err: f.Err}
	}
	return f.Response, nil
}

// Calls returns the number of Generate invocations
func (f *FakeClient) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

// Prompts returns a copy of every prompt received
func (f *FakeClient) Prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prompts...)
}
