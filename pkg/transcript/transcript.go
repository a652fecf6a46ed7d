// Package transcript maintains the role-tagged message log for one
// interview session.
package transcript

import (
	"fmt"
	"strings"

	"github.com/tiktoken-go/tokenizer"
)

// Roles used in the transcript.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single role-tagged transcript entry.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Manager accumulates transcript messages and tracks their token footprint
// for the prompt-building path.
type Manager struct {
	messages  []Message
	codec     tokenizer.Codec
	maxTokens int
}

// NewManager creates a transcript manager. maxTokens bounds the transcript
// returned by PromptContext; zero means unbounded.
func NewManager(maxTokens int) *Manager {
	// Claude and Gemini tokenize similarly enough that the GPT-4 encoding is
	// an acceptable approximation for budgeting.
	codec, err := tokenizer.ForModel(tokenizer.GPT4)
	if err != nil {
		codec = nil // fall back to character estimation
	}

	return &Manager{
		codec:     codec,
		maxTokens: maxTokens,
	}
}

// Append stores a role/content pair.
func (m *Manager) Append(role, content string) {
	m.messages = append(m.messages, Message{Role: role, Content: content})
}

// Messages returns a copy of all transcript messages.
func (m *Manager) Messages() []Message {
	out := make([]Message, len(m.messages))
	copy(out, m.messages)
	return out
}

// Len returns the number of transcript messages.
func (m *Manager) Len() int {
	return len(m.messages)
}

// CountTokens returns the token footprint of the whole transcript.
func (m *Manager) CountTokens() int {
	total := 0
	for i := range m.messages {
		total += m.countText(m.messages[i].Role) + m.countText(m.messages[i].Content)
	}
	return total
}

func (m *Manager) countText(text string) int {
	if m.codec == nil {
		return len(text) / 4 // rough 4-chars-per-token estimate
	}
	count, err := m.codec.Count(text)
	if err != nil {
		return len(text) / 4
	}
	return count
}

// PromptContext renders the transcript as a role-prefixed string for LLM
// prompts, dropping oldest messages first if the token budget is exceeded.
func (m *Manager) PromptContext() string {
	if len(m.messages) == 0 {
		return "No previous context"
	}

	start := 0
	if m.maxTokens > 0 {
		budget := m.CountTokens()
		for start < len(m.messages)-1 && budget > m.maxTokens {
			msg := &m.messages[start]
			budget -= m.countText(msg.Role) + m.countText(msg.Content)
			start++
		}
	}

	parts := make([]string, 0, len(m.messages)-start)
	for i := start; i < len(m.messages); i++ {
		parts = append(parts, fmt.Sprintf("%s: %s", m.messages[i].Role, m.messages[i].Content))
	}
	return strings.Join(parts, "\n")
}
