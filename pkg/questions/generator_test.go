package questions

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentscout/pkg/llm"
	"talentscout/pkg/metrics"
	"talentscout/pkg/templates"
)

func newTestGenerator(t *testing.T, client llm.LLMClient) *Generator {
	t.Helper()
	lib, err := DefaultLibrary()
	require.NoError(t, err)
	renderer, err := templates.NewRenderer()
	require.NoError(t, err)
	return NewGenerator(lib, client, renderer, metrics.NewRecorder())
}

func TestGenerateDistributesAcrossMatchedKeywords(t *testing.T) {
	client := llm.NewMockClient(nil, []error{errors.New("should not be called")})
	g := newTestGenerator(t, client)

	result := g.Generate(context.Background(), "Python, React, Docker", 4)
	require.Len(t, result, 4)

	// First pass: one question per matched keyword in library order.
	assert.Equal(t, "Explain the difference between a list and a tuple in Python. When would you use each?", result[0])
	assert.Equal(t, "What are React hooks? Which ones have you used most frequently?", result[1])
	assert.Equal(t, "What is Docker and why is it useful in development?", result[2])
	// Second pass tops up from the first matched keyword's remainder.
	assert.Equal(t, "How do you handle exceptions in Python? Provide an example of a try-except block.", result[3])
}

func TestGenerateSingleKeywordTakesWholeList(t *testing.T) {
	client := llm.NewMockClient(nil, nil)
	g := newTestGenerator(t, client)

	result := g.Generate(context.Background(), "kubernetes", 4)
	require.Len(t, result, 4)
	assert.Equal(t, "What is Kubernetes and what problems does it solve?", result[0])
	assert.Equal(t, "What is the difference between Kubernetes and Docker Swarm?", result[3])
}

func TestGenerateTruncatesOverproduction(t *testing.T) {
	client := llm.NewMockClient(nil, nil)
	g := newTestGenerator(t, client)

	// "javascript" also matches the "js" entry, so six keywords match and
	// perTech=1 produces six questions; the result must still be exactly
	// four, in library order.
	result := g.Generate(context.Background(), "python javascript react django flask", 4)
	require.Len(t, result, 4)
	assert.Equal(t, "Explain the difference between a list and a tuple in Python. When would you use each?", result[0])
	assert.Equal(t, "What's the difference between 'let', 'var', and 'const' in JavaScript?", result[1])
	assert.Equal(t, "What are arrow functions and how do they differ from regular functions?", result[2])
	assert.Equal(t, "What are React hooks? Which ones have you used most frequently?", result[3])
}

func TestGenerateSynthesizesWhenNoMatch(t *testing.T) {
	client := llm.NewMockClient([]llm.CompletionResponse{
		{Content: "1. How does the BEAM scheduler handle concurrency in Elixir?\n" +
			"2) Explain supervision trees and when you would restart a process.\n" +
			"Question 3: What are Phoenix channels and how do they scale?\n" +
			"4: Describe pattern matching pitfalls you have hit in production.\n" +
			"Some trailing commentary that should be ignored."},
	}, nil)
	g := newTestGenerator(t, client)

	result := g.Generate(context.Background(), "Elixir Phoenix", 4)
	require.Len(t, result, 4)
	assert.Equal(t, "How does the BEAM scheduler handle concurrency in Elixir?", result[0])
	assert.Equal(t, "Explain supervision trees and when you would restart a process.", result[1])
	assert.Equal(t, "What are Phoenix channels and how do they scale?", result[2])
	assert.Equal(t, "Describe pattern matching pitfalls you have hit in production.", result[3])
}

func TestGenerateFallbackWhenSynthesisFails(t *testing.T) {
	client := llm.NewMockClient(nil, []error{errors.New("quota exceeded")})
	g := newTestGenerator(t, client)

	result := g.Generate(context.Background(), "Elixir Phoenix", 4)
	require.Len(t, result, 4)
	assert.Equal(t, "Describe a challenging technical problem you've solved recently.", result[0])
	assert.Equal(t, "How do you approach debugging complex issues?", result[1])
	assert.Equal(t, "What best practices do you follow when working with Elixir Phoenix?", result[2])
	// Padded from the generic list.
	assert.Equal(t, "Describe a challenging technical problem you've solved recently and your approach.", result[3])
}

func TestGenerateFallbackWhenSynthesisUnparseable(t *testing.T) {
	client := llm.NewMockClient([]llm.CompletionResponse{
		{Content: "Sure, happy to help! Here are some thoughts without any numbering."},
	}, nil)
	g := newTestGenerator(t, client)

	result := g.Generate(context.Background(), "COBOL", 3)
	require.Len(t, result, 3)
	assert.Equal(t, "What best practices do you follow when working with COBOL?", result[2])
}

func TestParseQuestions(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "numbered with dots",
			content: "1. What is a monad and when is it useful?\n2. Explain tail-call optimization in detail.",
			want: []string{
				"What is a monad and when is it useful?",
				"Explain tail-call optimization in detail.",
			},
		},
		{
			name:    "question prefix stripped",
			content: "Question 1: How do you profile a slow service?",
			want:    []string{"How do you profile a slow service?"},
		},
		{
			name:    "short fragments dropped",
			content: "1. Too short.\n2. This one is long enough to keep around.",
			want:    []string{"This one is long enough to keep around."},
		},
		{
			name:    "unmarked lines ignored",
			content: "Here are some questions you could ask the candidate today.",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseQuestions(tt.content))
		})
	}
}
