package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockClientReturnsResponsesInOrder(t *testing.T) {
	mock := NewMockClient([]CompletionResponse{
		{Content: "first"},
		{Content: "second"},
	}, nil)

	resp, err := mock.Complete(context.Background(), NewCompletionRequest(nil))
	require.NoError(t, err)
	assert.Equal(t, "first", resp.Content)

	resp, err = mock.Complete(context.Background(), NewCompletionRequest(nil))
	require.NoError(t, err)
	assert.Equal(t, "second", resp.Content)

	_, err = mock.Complete(context.Background(), NewCompletionRequest(nil))
	assert.Error(t, err)
}

func TestMockClientConsumesErrorsFirst(t *testing.T) {
	boom := errors.New("quota exceeded")
	mock := NewMockClient([]CompletionResponse{{Content: "ok"}}, []error{boom})

	_, err := mock.Complete(context.Background(), NewCompletionRequest(nil))
	assert.ErrorIs(t, err, boom)

	resp, err := mock.Complete(context.Background(), NewCompletionRequest(nil))
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Content)
}

func TestMockClientStream(t *testing.T) {
	mock := NewMockClient([]CompletionResponse{{Content: "streamed"}}, nil)

	ch, err := mock.Stream(context.Background(), NewCompletionRequest(nil))
	require.NoError(t, err)

	chunk := <-ch
	assert.Equal(t, "streamed", chunk.Content)
	assert.True(t, chunk.Done)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Provider: "openai", ModelName: "gpt-4o-mini", Temperature: 0.7}, false},
		{"missing provider", Config{ModelName: "gpt-4o-mini"}, true},
		{"missing model", Config{Provider: "openai"}, true},
		{"temperature out of range", Config{Provider: "openai", ModelName: "m", Temperature: 3.0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
