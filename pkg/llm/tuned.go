package llm

import "context"

// TunedClient wraps a client with configured generation settings: MaxTokens
// caps every request's token limit, and Temperature overrides the request
// value. A zero setting leaves the request untouched.
type TunedClient struct {
	inner       LLMClient
	maxTokens   int
	temperature float32
}

// NewTunedClient applies the configured maxTokens and temperature to every
// request passing through client.
func NewTunedClient(client LLMClient, maxTokens int, temperature float32) *TunedClient {
	return &TunedClient{
		inner:       client,
		maxTokens:   maxTokens,
		temperature: temperature,
	}
}

func (t *TunedClient) tune(in CompletionRequest) CompletionRequest {
	if t.maxTokens > 0 && (in.MaxTokens <= 0 || in.MaxTokens > t.maxTokens) {
		in.MaxTokens = t.maxTokens
	}
	if t.temperature > 0 {
		in.Temperature = t.temperature
	}
	return in
}

// Complete implements LLMClient.
func (t *TunedClient) Complete(ctx context.Context, in CompletionRequest) (CompletionResponse, error) {
	return t.inner.Complete(ctx, t.tune(in))
}

// Stream implements LLMClient.
func (t *TunedClient) Stream(ctx context.Context, in CompletionRequest) (<-chan StreamChunk, error) {
	return t.inner.Stream(ctx, t.tune(in))
}

// GetModelName returns the wrapped client's model name.
func (t *TunedClient) GetModelName() string {
	return t.inner.GetModelName()
}
