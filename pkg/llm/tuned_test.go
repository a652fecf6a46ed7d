package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capturingClient records every request it receives.
type capturingClient struct {
	requests []CompletionRequest
}

func (c *capturingClient) Complete(_ context.Context, in CompletionRequest) (CompletionResponse, error) {
	c.requests = append(c.requests, in)
	return CompletionResponse{Content: "ok"}, nil
}

func (c *capturingClient) Stream(ctx context.Context, in CompletionRequest) (<-chan StreamChunk, error) {
	resp, err := c.Complete(ctx, in)
	if err != nil {
		return nil, err
	}
	ch := make(chan StreamChunk, 1)
	ch <- StreamChunk{Content: resp.Content, Done: true}
	close(ch)
	return ch, nil
}

func (c *capturingClient) GetModelName() string { return "capturing" }

func TestTunedClientCapsMaxTokens(t *testing.T) {
	inner := &capturingClient{}
	tuned := NewTunedClient(inner, 100, 0)

	req := NewCompletionRequest([]CompletionMessage{NewUserMessage("hi")})
	req.MaxTokens = 600
	_, err := tuned.Complete(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, inner.requests, 1)
	assert.Equal(t, 100, inner.requests[0].MaxTokens)
}

func TestTunedClientLeavesSmallerRequestsAlone(t *testing.T) {
	inner := &capturingClient{}
	tuned := NewTunedClient(inner, 1000, 0)

	req := NewCompletionRequest([]CompletionMessage{NewUserMessage("hi")})
	req.MaxTokens = AcknowledgementMaxTokens
	_, err := tuned.Complete(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, AcknowledgementMaxTokens, inner.requests[0].MaxTokens)
}

func TestTunedClientOverridesTemperature(t *testing.T) {
	inner := &capturingClient{}
	tuned := NewTunedClient(inner, 0, 0.2)

	_, err := tuned.Complete(context.Background(), NewCompletionRequest(nil))
	require.NoError(t, err)

	assert.InDelta(t, 0.2, inner.requests[0].Temperature, 0.0001)
}

func TestTunedClientZeroSettingsPassThrough(t *testing.T) {
	inner := &capturingClient{}
	tuned := NewTunedClient(inner, 0, 0)

	_, err := tuned.Complete(context.Background(), NewCompletionRequest(nil))
	require.NoError(t, err)

	assert.Equal(t, 1024, inner.requests[0].MaxTokens)
	assert.InDelta(t, TemperatureConversational, inner.requests[0].Temperature, 0.0001)
	assert.Equal(t, "capturing", tuned.GetModelName())
}
