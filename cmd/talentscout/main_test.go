package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentscout/pkg/interview"
	"talentscout/pkg/llm"
	"talentscout/pkg/logx"
	"talentscout/pkg/metrics"
	"talentscout/pkg/persistence"
	"talentscout/pkg/questions"
	"talentscout/pkg/templates"
)

func TestIsExitMessage(t *testing.T) {
	// Substring matching is deliberate, which means words like "Backend"
	// (containing "end") also trigger the exit path.
	exits := []string{"bye", "Bye!", "ok goodbye then", "EXIT", "please stop", "quit now", "the end", "Backend Engineer"}
	for _, input := range exits {
		assert.Truef(t, isExitMessage(input), "input %q should end the conversation", input)
	}

	stays := []string{"Jane Doe", "jane@example.com", "Python, React", "5 years"}
	for _, input := range stays {
		assert.Falsef(t, isExitMessage(input), "input %q should not end the conversation", input)
	}
}

func TestDumpSessionIssues(t *testing.T) {
	logger := logx.NewLogger("recap-test")
	logger.Info("routine progress line")
	logger.Warn("save failed: %s", "disk full")

	var out bytes.Buffer
	dumpSessionIssues(&out)
	assert.Contains(t, out.String(), "disk full")
	assert.Contains(t, out.String(), "[recap-test] WARN")
	assert.NotContains(t, out.String(), "routine progress line")
}

func newLoopAssistant(t *testing.T) *interview.Assistant {
	t.Helper()
	client := llm.NewMockClient(nil, nil)
	library, err := questions.DefaultLibrary()
	require.NoError(t, err)
	renderer, err := templates.NewRenderer()
	require.NoError(t, err)
	recorder := metrics.NewRecorder()
	generator := questions.NewGenerator(library, client, renderer, recorder)
	return interview.NewAssistant(client, generator, renderer, recorder, interview.Options{})
}

func setupLoopDB(t *testing.T) {
	t.Helper()
	require.NoError(t, persistence.Reset())
	require.NoError(t, persistence.Initialize(filepath.Join(t.TempDir(), "interviews.db")))
	t.Cleanup(func() { _ = persistence.Reset() })
}

func TestRunConversationFullInterview(t *testing.T) {
	setupLoopDB(t)
	assistant := newLoopAssistant(t)

	input := strings.Join([]string{
		"Jane Doe",
		"jane@example.com",
		"+351 555 0199",
		"5",
		"Platform Developer",
		"Lisbon, Portugal",
		"Python, React, Docker",
		"Answer one.",
		"Answer two.",
		"Answer three.",
		"Answer four.",
		"bye",
	}, "\n") + "\n"

	var out bytes.Buffer
	err := runConversation(assistant, strings.NewReader(input), &out, logx.NewLogger("test"))
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Please tell me your full name")
	assert.Contains(t, text, "**Question 1:**")
	assert.Contains(t, text, "Technical Questions: 4 answered")
	assert.Contains(t, text, "3-5 business days")

	// The completed interview was persisted exactly once.
	interviews, err := persistence.Ops().ListInterviews(context.Background())
	require.NoError(t, err)
	require.Len(t, interviews, 1)
	assert.Equal(t, "Jane Doe", interviews[0].CandidateName)
	assert.Equal(t, "complete", interviews[0].Stage)
	assert.Len(t, interviews[0].Answers, 4)
}

func TestRunConversationEarlyExitPersistsPartial(t *testing.T) {
	setupLoopDB(t)
	assistant := newLoopAssistant(t)

	input := "Jane Doe\njane@example.com\nquit\n"
	var out bytes.Buffer
	err := runConversation(assistant, strings.NewReader(input), &out, logx.NewLogger("test"))
	require.NoError(t, err)

	interviews, err := persistence.Ops().ListInterviews(context.Background())
	require.NoError(t, err)
	require.Len(t, interviews, 1)
	assert.Equal(t, "Jane Doe", interviews[0].CandidateName)
	assert.Equal(t, "jane@example.com", interviews[0].Email)
	assert.NotEqual(t, "complete", interviews[0].Stage)
}

func TestRunConversationEOFBeforeAnyInput(t *testing.T) {
	setupLoopDB(t)
	assistant := newLoopAssistant(t)

	var out bytes.Buffer
	err := runConversation(assistant, strings.NewReader(""), &out, logx.NewLogger("test"))
	require.NoError(t, err)

	// Nothing collected, nothing saved.
	interviews, err := persistence.Ops().ListInterviews(context.Background())
	require.NoError(t, err)
	assert.Empty(t, interviews)
}
