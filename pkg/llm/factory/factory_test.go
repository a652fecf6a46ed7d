package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentscout/pkg/llm"
)

func TestNewClientMockProvider(t *testing.T) {
	client, err := NewClient(&llm.Config{Provider: ProviderMock, ModelName: "mock-model"})
	require.NoError(t, err)
	assert.Equal(t, "mock-model", client.GetModelName())
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	for _, provider := range []string{ProviderOpenAI, ProviderAnthropic, ProviderGemini} {
		_, err := NewClient(&llm.Config{Provider: provider, ModelName: "some-model"})
		assert.Error(t, err, "provider %s should require an API key", provider)
	}
}

func TestNewClientOllamaDefaultsHost(t *testing.T) {
	client, err := NewClient(&llm.Config{Provider: ProviderOllama, ModelName: "llama3.2"})
	require.NoError(t, err)
	assert.Equal(t, "llama3.2", client.GetModelName())
}

func TestNewClientAppliesGenerationSettings(t *testing.T) {
	client, err := NewClient(&llm.Config{Provider: ProviderMock, ModelName: "mock-model", MaxTokens: 64, Temperature: 0.3})
	require.NoError(t, err)

	_, tuned := client.(*llm.TunedClient)
	assert.True(t, tuned)
	assert.Equal(t, "mock-model", client.GetModelName())
}

func TestNewClientUnknownProvider(t *testing.T) {
	_, err := NewClient(&llm.Config{Provider: "watson", ModelName: "m"})
	assert.ErrorContains(t, err, "unknown llm provider")
}

func TestNewClientRejectsInvalidConfig(t *testing.T) {
	_, err := NewClient(&llm.Config{Provider: ProviderMock})
	assert.Error(t, err)
}
