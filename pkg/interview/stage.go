// Package interview implements the scripted screening conversation: the
// stage machine, input validation, session state, and the assistant that
// drives one candidate through the interview.
package interview

import (
	"errors"
	"fmt"
)

// Stage identifies a step in the interview progression.
type Stage string

// Interview stages in progression order.
const (
	StageGreeting   Stage = "greeting"
	StageName       Stage = "name"
	StageEmail      Stage = "email"
	StagePhone      Stage = "phone"
	StageExperience Stage = "experience"
	StagePosition   Stage = "position"
	StageLocation   Stage = "location"
	StageTechStack  Stage = "techstack"
	StageQuestions  Stage = "questions"
	StageComplete   Stage = "complete"
)

// stageOrder is the fixed progression of the interview. Advancing past
// StageComplete is a programming error.
var stageOrder = []Stage{
	StageGreeting,
	StageName,
	StageEmail,
	StagePhone,
	StageExperience,
	StagePosition,
	StageLocation,
	StageTechStack,
	StageQuestions,
	StageComplete,
}

// ErrSequenceExhausted is returned when Next is called on the terminal
// stage. The transition table never does this; hitting it is a bug.
var ErrSequenceExhausted = errors.New("interview: advance past terminal stage")

// Next returns the stage that follows s in the progression.
func (s Stage) Next() (Stage, error) {
	for i, stage := range stageOrder {
		if stage != s {
			continue
		}
		if i == len(stageOrder)-1 {
			return s, ErrSequenceExhausted
		}
		return stageOrder[i+1], nil
	}
	return s, fmt.Errorf("interview: unknown stage %q", s)
}

// infoStages are the stages collected through the validate-and-retry path.
var infoStages = map[Stage]bool{
	StageName:       true,
	StageEmail:      true,
	StagePhone:      true,
	StageExperience: true,
	StagePosition:   true,
	StageLocation:   true,
}

// IsInfoStage reports whether s is collected through validation with the
// retry-then-force-accept policy.
func (s Stage) IsInfoStage() bool {
	return infoStages[s]
}

// stagePrompts holds the question asked when the interview enters a stage.
var stagePrompts = map[Stage]string{
	StageName:       "Great to meet you! What's your full name?",
	StageEmail:      "Thanks! What's your email address?",
	StagePhone:      "And your phone number? (You can include country code)",
	StageExperience: "How many years of professional experience do you have? (If you're a fresher, just say 0 or 'fresher')",
	StagePosition:   "What position or role are you interested in?",
	StageLocation:   "Where are you currently located? (City, Country)",
	StageTechStack: `Now let's talk about your technical skills!

What's your tech stack? Please list:
• Programming languages (e.g., Python, JavaScript, Java)
• Frameworks (e.g., React, Django, Spring)
• Databases (e.g., MySQL, MongoDB, PostgreSQL)
• Tools (e.g., Docker, Git, AWS)

You can list them separated by commas.`,
}

// Prompt returns the question asked on entering s, if the stage has one.
func (s Stage) Prompt() (string, bool) {
	prompt, ok := stagePrompts[s]
	return prompt, ok
}

func (s Stage) String() string {
	return string(s)
}
