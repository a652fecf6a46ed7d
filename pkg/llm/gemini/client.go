// Package gemini provides a Google Gemini client implementation for the
// llm.LLMClient interface.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"talentscout/pkg/llm"
)

// Client wraps the Google GenAI client to implement llm.LLMClient.
type Client struct {
	client *genai.Client
	apiKey string
	model  string
}

// NewClient creates a new Gemini client for the given model. The underlying
// genai client needs a context, so construction is deferred to the first
// Complete call.
func NewClient(apiKey, model string) llm.LLMClient {
	return &Client{
		apiKey: apiKey,
		model:  model,
	}
}

// convertMessages splits our message list into Gemini contents plus an
// optional system instruction.
func convertMessages(messages []llm.CompletionMessage) (contents []*genai.Content, systemInstruction string) {
	var systemParts []string
	for i := range messages {
		msg := &messages[i]
		switch msg.Role {
		case llm.RoleSystem:
			systemParts = append(systemParts, msg.Content)
		case llm.RoleAssistant:
			contents = append(contents, &genai.Content{
				Role:  genai.RoleModel,
				Parts: []*genai.Part{{Text: msg.Content}},
			})
		case llm.RoleUser:
			contents = append(contents, &genai.Content{
				Role:  genai.RoleUser,
				Parts: []*genai.Part{{Text: msg.Content}},
			})
		}
	}
	return contents, strings.Join(systemParts, "\n\n")
}

// Complete implements llm.LLMClient.
func (g *Client) Complete(ctx context.Context, in llm.CompletionRequest) (llm.CompletionResponse, error) {
	if g.client == nil {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  g.apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return llm.CompletionResponse{}, fmt.Errorf("failed to create gemini client: %w", err)
		}
		g.client = client
	}

	contents, systemInstruction := convertMessages(in.Messages)

	//nolint:gosec // MaxTokens is bounded by the request constants.
	maxTokens := int32(in.MaxTokens)
	config := &genai.GenerateContentConfig{
		Temperature:     &in.Temperature,
		MaxOutputTokens: maxTokens,
	}
	if systemInstruction != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		}
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return llm.CompletionResponse{}, fmt.Errorf("gemini request failed: %w", err)
	}
	if result == nil {
		return llm.CompletionResponse{}, fmt.Errorf("empty response from gemini")
	}

	return llm.CompletionResponse{Content: result.Text()}, nil
}

// Stream implements llm.LLMClient. The interview loop is strictly
// synchronous, so streaming delegates to Complete.
func (g *Client) Stream(ctx context.Context, in llm.CompletionRequest) (<-chan llm.StreamChunk, error) {
	resp, err := g.Complete(ctx, in)
	if err != nil {
		return nil, err
	}

	ch := make(chan llm.StreamChunk, 1)
	go func() {
		defer close(ch)
		ch <- llm.StreamChunk{Content: resp.Content, Done: true}
	}()
	return ch, nil
}

// GetModelName returns the model name for this client.
func (g *Client) GetModelName() string {
	return g.model
}
