package interview

import (
	"context"
	"fmt"
	"strings"
	"time"

	"talentscout/pkg/llm"
	"talentscout/pkg/logx"
	"talentscout/pkg/metrics"
	"talentscout/pkg/questions"
	"talentscout/pkg/templates"
	"talentscout/pkg/transcript"
)

// maxValidationAttempts is the number of rejected retries an info field
// tolerates before the raw input is accepted anyway. The techstack stage has
// no such escape and keeps asking until the input passes.
const maxValidationAttempts = 2

// transcriptTokenBudget bounds the transcript context handed to LLM prompts.
const transcriptTokenBudget = 8000

const greetingText = `Hello! 👋 I'm TalentScout's AI Hiring Assistant.

I'm here to help us get to know you better and understand your technical expertise. This initial screening will take about 10-15 minutes.

Here's what we'll cover:
• Your background and experience
• Your technical skills
• A few technical questions based on your expertise

Everything you share is confidential and used only for recruitment purposes.

Ready to begin? Please tell me your full name. 😊`

const glitchReply = "My apologies, I seem to have encountered a small glitch. Let's try that again."

const completionAckReply = `Thank you for your question! I've recorded it for our team.

We'll review your question along with your application and get back to you via email within the next few days with a detailed response.

Is there anything else you'd like to know? Otherwise, feel free to type 'bye' to end the conversation.

Have a great day! 👋`

const fallbackAcknowledgement = "Thank you for sharing that!"

// Assistant drives one candidate through the screening interview. It owns
// the session state and the transcript; callers deliver one utterance at a
// time and receive one reply.
type Assistant struct {
	session    *Session
	validator  *Validator
	generator  *questions.Generator
	client     llm.LLMClient
	renderer   *templates.Renderer
	transcript *transcript.Manager
	recorder   *metrics.Recorder
	logger     *logx.Logger

	started       bool
	questionCount int
}

// Options tunes an assistant. Zero values fall back to the defaults.
type Options struct {
	// QuestionCount is the number of technical questions to ask.
	QuestionCount int
	// TranscriptTokenBudget bounds the transcript context handed to LLM
	// prompts; oldest turns are dropped first.
	TranscriptTokenBudget int
}

// NewAssistant creates an assistant for a fresh session. The recorder may be
// nil.
func NewAssistant(client llm.LLMClient, generator *questions.Generator, renderer *templates.Renderer, recorder *metrics.Recorder, opts Options) *Assistant {
	if opts.QuestionCount <= 0 {
		opts.QuestionCount = questions.DefaultQuestionCount
	}
	if opts.TranscriptTokenBudget <= 0 {
		opts.TranscriptTokenBudget = transcriptTokenBudget
	}

	return &Assistant{
		session:       NewSession(),
		validator:     NewValidator(),
		generator:     generator,
		client:        client,
		renderer:      renderer,
		transcript:    transcript.NewManager(opts.TranscriptTokenBudget),
		recorder:      recorder,
		logger:        logx.NewLogger("interview"),
		questionCount: opts.QuestionCount,
	}
}

// Start returns the greeting that opens the interview. Calling it again on a
// started session returns the same greeting without touching session state.
func (a *Assistant) Start() string {
	if a.started {
		return greetingText
	}
	a.started = true
	a.transcript.Append(transcript.RoleAssistant, greetingText)
	return greetingText
}

// ProcessMessage handles one candidate utterance and returns the reply. The
// candidate never sees a raw fault: any panic inside a handler is converted
// into an apologetic retry invitation with the session state intact.
func (a *Assistant) ProcessMessage(ctx context.Context, userMessage string) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("turn panicked at stage %s: %v", a.session.Stage, r)
			reply = glitchReply
			a.transcript.Append(transcript.RoleAssistant, reply)
		}
	}()

	a.transcript.Append(transcript.RoleUser, userMessage)
	a.recorder.ObserveTurn(a.session.Stage.String())

	switch {
	case a.session.Stage == StageGreeting:
		reply = a.handleGreeting(userMessage)
	case a.session.Stage.IsInfoStage():
		reply = a.handleInfoCollection(userMessage)
	case a.session.Stage == StageTechStack:
		reply = a.handleTechStack(ctx, userMessage)
	case a.session.Stage == StageQuestions:
		reply = a.handleTechnicalQuestion(userMessage)
	case a.session.Stage == StageComplete:
		reply = a.handleCompletion(userMessage)
	default:
		reply = "Let's continue with the interview."
	}

	a.transcript.Append(transcript.RoleAssistant, reply)
	return reply
}

// handleGreeting stores the first utterance verbatim as the candidate's name
// and jumps straight to the email prompt. The greeting already asked for the
// name, so the name stage never issues its own prompt.
func (a *Assistant) handleGreeting(message string) string {
	a.session.Fields[StageName] = strings.TrimSpace(message)
	a.session.RetryCounts[StageName] = 0
	a.session.Stage = StageEmail
	prompt, _ := StageEmail.Prompt()
	return prompt
}

func (a *Assistant) handleInfoCollection(message string) string {
	stage := a.session.Stage

	ok, errMsg := a.validator.Validate(stage, message)
	if !ok {
		a.recorder.IncValidationFailure(stage.String())

		if a.session.RetryCounts[stage] >= maxValidationAttempts {
			// Accept the raw input rather than loop forever.
			a.logger.Warn("accepting unvalidated %s input after %d attempts", stage, maxValidationAttempts)
			a.recorder.IncForcedAccept(stage.String())
			a.session.RetryCounts[stage] = 0
			a.session.Fields[stage] = strings.TrimSpace(message)
			return a.advance()
		}

		a.session.RetryCounts[stage]++
		return errMsg
	}

	a.session.RetryCounts[stage] = 0
	a.session.Fields[stage] = strings.TrimSpace(message)
	return a.advance()
}

// advance moves the session one stage forward and returns the new stage's
// prompt.
func (a *Assistant) advance() string {
	next, err := a.session.Stage.Next()
	if err != nil {
		// Unreachable under the transition table.
		panic(err)
	}
	a.session.Stage = next

	if prompt, ok := next.Prompt(); ok {
		return prompt
	}
	return "Thank you!"
}

func (a *Assistant) handleTechStack(ctx context.Context, message string) string {
	ok, errMsg := a.validator.Validate(StageTechStack, message)
	if !ok {
		a.recorder.IncValidationFailure(StageTechStack.String())
		return errMsg
	}

	techStack := strings.TrimSpace(message)
	a.session.Fields[StageTechStack] = techStack

	qs := a.generator.Generate(ctx, techStack, a.questionCount)
	a.session.Questions = qs
	a.session.Answers = nil
	a.session.CurrentQuestion = 0
	a.session.Stage = StageQuestions

	return fmt.Sprintf(`Excellent! Based on your tech stack, I'd like to ask you some technical questions to better understand your expertise. ✨

We'll go through %d questions. Take your time with each answer - there's no rush!

**Question 1:** %s`, len(qs), qs[0])
}

func (a *Assistant) handleTechnicalQuestion(message string) string {
	a.session.Answers = append(a.session.Answers, strings.TrimSpace(message))

	current := a.session.CurrentQuestion
	if current < len(a.session.Questions)-1 {
		a.session.CurrentQuestion++
		return fmt.Sprintf(`Great answer! Thank you for sharing that. 👍

**Question %d:** %s`, current+2, a.session.Questions[current+1])
	}

	a.session.Stage = StageComplete
	return a.completionSummary()
}

func (a *Assistant) completionSummary() string {
	return fmt.Sprintf(`Thank you so much, %s! 🎉

We've completed the initial screening. Here's what we covered:

✅ Personal Information
✅ Professional Experience: %s
✅ Desired Position: %s
✅ Tech Stack: %s
✅ Technical Questions: %d answered

**Next Steps:**
• Our recruitment team will review your profile and responses
• We'll carefully evaluate your technical answers
• You'll hear back from us within 3-5 business days

**Do you have any questions for us?**
If you have any questions about the role, company, or process, please feel free to ask! We'll get back to you via email within the next few days.

Otherwise, you can type 'bye' to end the conversation.`,
		a.session.FieldOr(StageName, "there"),
		a.session.FieldOr(StageExperience, "N/A"),
		a.session.FieldOr(StagePosition, "N/A"),
		a.session.FieldOr(StageTechStack, "N/A"),
		len(a.session.Answers))
}

func (a *Assistant) handleCompletion(message string) string {
	a.session.Notes = append(a.session.Notes, strings.TrimSpace(message))
	return completionAckReply
}

// Acknowledge asks the LLM for a short warm acknowledgement of the
// candidate's last message. Purely cosmetic; any failure yields a static
// phrase instead of an error.
func (a *Assistant) Acknowledge(ctx context.Context, message string) string {
	systemPrompt, err := a.renderer.Render(templates.SystemTemplate, &templates.TemplateData{})
	if err != nil {
		return fallbackAcknowledgement
	}
	userPrompt, err := a.renderer.Render(templates.AcknowledgementTemplate, &templates.TemplateData{
		Stage:      a.session.Stage.String(),
		Message:    message,
		Transcript: a.transcript.PromptContext(),
	})
	if err != nil {
		return fallbackAcknowledgement
	}

	req := llm.NewCompletionRequest([]llm.CompletionMessage{
		llm.NewSystemMessage(systemPrompt),
		llm.NewUserMessage(userPrompt),
	})
	req.MaxTokens = llm.AcknowledgementMaxTokens

	start := time.Now()
	resp, err := a.client.Complete(ctx, req)
	a.recorder.ObserveLLMRequest("acknowledgement", time.Since(start))
	if err != nil || strings.TrimSpace(resp.Content) == "" {
		a.logger.Debug("acknowledgement generation unavailable: %v", err)
		return fallbackAcknowledgement
	}
	return strings.TrimSpace(resp.Content)
}

// EndConversation produces the farewell message. It tries the LLM first and
// falls back to a static farewell on any failure. The exit decision itself
// belongs to the caller; this only phrases the goodbye.
func (a *Assistant) EndConversation(ctx context.Context) string {
	name := a.session.FieldOr(StageName, "there")

	prompt, err := a.renderer.Render(templates.FarewellTemplate, &templates.TemplateData{
		CandidateName: name,
		Transcript:    a.transcript.PromptContext(),
	})
	if err == nil {
		req := llm.NewCompletionRequest([]llm.CompletionMessage{llm.NewUserMessage(prompt)})

		start := time.Now()
		resp, cerr := a.client.Complete(ctx, req)
		a.recorder.ObserveLLMRequest("farewell", time.Since(start))
		if cerr == nil && strings.TrimSpace(resp.Content) != "" {
			farewell := strings.TrimSpace(resp.Content)
			a.transcript.Append(transcript.RoleAssistant, farewell)
			return farewell
		}
		a.logger.Warn("farewell generation failed: %v", cerr)
	}

	farewell := staticFarewell(name)
	a.transcript.Append(transcript.RoleAssistant, farewell)
	return farewell
}

func staticFarewell(name string) string {
	return fmt.Sprintf(`Thank you so much for your time today, %s! 🎉

We've successfully wrapped up the initial screening. Here's what will happen next:

- Our recruitment team will carefully review your profile and answers.
- We'll get back to you within 3-5 business days.

Best of luck with your application! We really appreciate you chatting with us.

Have a wonderful day! 👋`, name)
}

// Stage returns the session's current stage.
func (a *Assistant) Stage() Stage {
	return a.session.Stage
}

// Snapshot returns a deep copy of everything collected so far.
func (a *Assistant) Snapshot() Snapshot {
	return a.session.Snapshot()
}

// Transcript returns a copy of the full role-tagged message log.
func (a *Assistant) Transcript() []transcript.Message {
	return a.transcript.Messages()
}

// Summary describes the state of an interview for logging and inspection.
type Summary struct {
	Stage           Stage            `json:"stage"`
	Fields          map[Stage]string `json:"fields"`
	TotalMessages   int              `json:"total_messages"`
	QuestionsAsked  int              `json:"questions_asked"`
	AnswersProvided int              `json:"answers_provided"`
}

// Summary returns a point-in-time view of the interview.
func (a *Assistant) Summary() Summary {
	snap := a.session.Snapshot()
	return Summary{
		Stage:           snap.Stage,
		Fields:          snap.Fields,
		TotalMessages:   a.transcript.Len(),
		QuestionsAsked:  len(snap.Questions),
		AnswersProvided: len(snap.Answers),
	}
}
