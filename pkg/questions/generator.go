package questions

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"talentscout/pkg/llm"
	"talentscout/pkg/logx"
	"talentscout/pkg/metrics"
	"talentscout/pkg/templates"
)

// DefaultQuestionCount is the number of technical questions asked per
// interview.
const DefaultQuestionCount = 4

// minParsedQuestionLen filters out enumeration fragments from LLM output.
const minParsedQuestionLen = 15

var (
	enumMarkerRe     = regexp.MustCompile(`^\d+[.):]`)
	enumPrefixRe     = regexp.MustCompile(`^\d+[.):\s]+`)
	questionPrefixRe = regexp.MustCompile(`(?i)^question\s+\d+[:\s]+`)
)

// genericQuestions tops up the result when the library and the LLM together
// produce fewer questions than requested.
var genericQuestions = []string{
	"Describe a challenging technical problem you've solved recently and your approach.",
	"How do you ensure code quality and maintainability in your projects?",
	"What's your process for learning new technologies or frameworks?",
	"How do you approach debugging complex issues in production environments?",
}

// fallbackQuestions returns the static questions used when LLM synthesis
// fails or yields nothing usable.
func fallbackQuestions(techStack string) []string {
	return []string{
		"Describe a challenging technical problem you've solved recently.",
		"How do you approach debugging complex issues?",
		fmt.Sprintf("What best practices do you follow when working with %s?", techStack),
	}
}

// Generator produces interview questions for a tech stack. Questions come
// from the library when keywords match; otherwise from LLM synthesis with a
// static fallback. The result is always exactly the requested length.
type Generator struct {
	library  *Library
	client   llm.LLMClient
	renderer *templates.Renderer
	recorder *metrics.Recorder
	logger   *logx.Logger
}

// NewGenerator creates a question generator. The recorder may be nil.
func NewGenerator(library *Library, client llm.LLMClient, renderer *templates.Renderer, recorder *metrics.Recorder) *Generator {
	return &Generator{
		library:  library,
		client:   client,
		renderer: renderer,
		recorder: recorder,
		logger:   logx.NewLogger("questions"),
	}
}

// Generate returns exactly count questions for the given tech stack,
// distributed evenly across all matched library keywords in library order.
func (g *Generator) Generate(ctx context.Context, techStack string, count int) []string {
	matched := g.library.Match(techStack)

	var result []string
	if len(matched) == 0 {
		result = g.synthesize(ctx, techStack, count)
		if len(result) == 0 {
			g.logger.Warn("question synthesis unavailable for %q, using static fallback", techStack)
			g.recorder.IncGenerationFallback()
			result = fallbackQuestions(techStack)
		} else {
			g.recorder.AddQuestions(metrics.SourceGenerated, len(result))
		}
	} else {
		result = g.fromLibrary(matched, count)
		g.recorder.AddQuestions(metrics.SourceLibrary, len(result))
	}

	// Top up with generic questions if still short.
	for _, q := range genericQuestions {
		if len(result) >= count {
			break
		}
		result = append(result, q)
		g.recorder.AddQuestions(metrics.SourceGeneric, 1)
	}

	if len(result) > count {
		result = result[:count]
	}
	return result
}

// fromLibrary distributes questions across the matched entries: a first pass
// of perTech questions from each entry, then a second pass over the entries'
// remainders until count is reached.
func (g *Generator) fromLibrary(matched []Entry, count int) []string {
	perTech := count / len(matched)
	if perTech < 1 {
		perTech = 1
	}

	var result []string
	for _, entry := range matched {
		take := perTech
		if take > len(entry.Questions) {
			take = len(entry.Questions)
		}
		result = append(result, entry.Questions[:take]...)
	}

	if len(result) < count {
		for _, entry := range matched {
			if len(result) >= count {
				break
			}
			if perTech >= len(entry.Questions) {
				continue
			}
			extra := entry.Questions[perTech:]
			if remaining := count - len(result); len(extra) > remaining {
				extra = extra[:remaining]
			}
			result = append(result, extra...)
		}
	}
	return result
}

// synthesize asks the LLM for custom questions. Returns nil on any failure.
func (g *Generator) synthesize(ctx context.Context, techStack string, count int) []string {
	prompt, err := g.renderer.Render(templates.QuestionGenerationTemplate, &templates.TemplateData{
		TechStack:    techStack,
		NumQuestions: count,
	})
	if err != nil {
		g.logger.Warn("failed to render question generation prompt: %v", err)
		return nil
	}

	req := llm.NewCompletionRequest([]llm.CompletionMessage{
		llm.NewSystemMessage("You are an expert technical interviewer."),
		llm.NewUserMessage(prompt),
	})
	req.MaxTokens = llm.QuestionSynthesisMaxTokens

	start := time.Now()
	resp, err := g.client.Complete(ctx, req)
	g.recorder.ObserveLLMRequest("question_synthesis", time.Since(start))
	if err != nil {
		g.logger.Warn("question synthesis request failed: %v", err)
		return nil
	}

	return parseQuestions(resp.Content)
}

// parseQuestions extracts questions from LLM output by scanning for
// enumerated lines, stripping the markers, and keeping lines long enough to
// be real questions.
func parseQuestions(content string) []string {
	var questions []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if !enumMarkerRe.MatchString(line) && !strings.HasPrefix(strings.ToLower(line), "question") {
			continue
		}
		q := enumPrefixRe.ReplaceAllString(line, "")
		q = questionPrefixRe.ReplaceAllString(q, "")
		q = strings.TrimSpace(q)
		if len(q) > minParsedQuestionLen {
			questions = append(questions, q)
		}
	}
	return questions
}
