package templates

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRenderer(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)
	require.NotNil(t, r)
}

func TestRenderSystemTemplate(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	out, err := r.Render(SystemTemplate, &TemplateData{})
	require.NoError(t, err)
	assert.Contains(t, out, "TalentScout")
}

func TestRenderQuestionGeneration(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	out, err := r.Render(QuestionGenerationTemplate, &TemplateData{
		TechStack:    "Elixir, Phoenix",
		NumQuestions: 4,
	})
	require.NoError(t, err)
	assert.Contains(t, out, "Elixir, Phoenix")
	assert.Contains(t, out, "4")
}

func TestRenderFarewell(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	out, err := r.Render(FarewellTemplate, &TemplateData{
		CandidateName: "Alice",
		Transcript:    "user: Alice\nassistant: Thanks!",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "3-5 business days")
	assert.Contains(t, out, "assistant: Thanks!")
}

func TestRenderAcknowledgement(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	out, err := r.Render(AcknowledgementTemplate, &TemplateData{
		Stage:      "position",
		Message:    "Backend Engineer",
		Transcript: "user: Jane Doe",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "position")
	assert.Contains(t, out, "Backend Engineer")
	assert.Contains(t, out, "user: Jane Doe")
}

func TestRenderUnknownTemplate(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	_, err = r.Render(PromptTemplate("missing.tpl.md"), &TemplateData{})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "missing.tpl.md"))
}
