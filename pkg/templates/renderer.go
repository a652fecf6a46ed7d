// Package templates provides template rendering for the assistant's LLM
// prompts.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
)

//go:embed *.tpl.md
var templateFS embed.FS

// TemplateData holds the data for template rendering.
type TemplateData struct {
	CandidateName string `json:"candidate_name,omitempty"`
	TechStack     string `json:"tech_stack,omitempty"`
	NumQuestions  int    `json:"num_questions,omitempty"`
	Stage         string `json:"stage,omitempty"`
	Message       string `json:"message,omitempty"`
	Transcript    string `json:"transcript,omitempty"`
}

// PromptTemplate identifies an embedded prompt template.
type PromptTemplate string

const (
	// SystemTemplate sets the assistant's identity and guardrails.
	SystemTemplate PromptTemplate = "system.tpl.md"
	// QuestionGenerationTemplate asks the model to synthesize technical
	// questions for an uncovered tech stack.
	QuestionGenerationTemplate PromptTemplate = "question_generation.tpl.md"
	// AcknowledgementTemplate asks the model for a short cosmetic
	// acknowledgement of the candidate's last message.
	AcknowledgementTemplate PromptTemplate = "acknowledgement.tpl.md"
	// FarewellTemplate is the end-of-conversation message.
	FarewellTemplate PromptTemplate = "farewell.tpl.md"
)

// Renderer renders embedded prompt templates.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses all embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "*.tpl.md")
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded templates: %w", err)
	}
	return &Renderer{templates: tmpl}, nil
}

// Render executes the named template with the given data.
func (r *Renderer) Render(name PromptTemplate, data *TemplateData) (string, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, string(name), data); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", name, err)
	}
	return buf.String(), nil
}
