package persistence

import (
	"time"

	"talentscout/pkg/interview"
)

// Interview is the durable record of one screening conversation.
type Interview struct {
	// ID is a UUID assigned at save time.
	ID string `json:"id"`
	// InterviewRef is the human-readable reference handed to recruiters,
	// e.g. "TS_20260830143000".
	InterviewRef  string    `json:"interview_ref"`
	CandidateName string    `json:"candidate_name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Experience    string    `json:"experience"`
	Position      string    `json:"position"`
	Location      string    `json:"location"`
	TechStack     string    `json:"tech_stack"`
	Stage         string    `json:"stage"`
	Questions     []string  `json:"questions,omitempty"`
	Answers       []string  `json:"answers,omitempty"`
	Notes         []string  `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewInterviewFromSnapshot converts a session snapshot into a record ready
// for saving. ID, InterviewRef, and CreatedAt are assigned by SaveInterview.
func NewInterviewFromSnapshot(snap interview.Snapshot) *Interview {
	return &Interview{
		CandidateName: snap.Fields[interview.StageName],
		Email:         snap.Fields[interview.StageEmail],
		Phone:         snap.Fields[interview.StagePhone],
		Experience:    snap.Fields[interview.StageExperience],
		Position:      snap.Fields[interview.StagePosition],
		Location:      snap.Fields[interview.StageLocation],
		TechStack:     snap.Fields[interview.StageTechStack],
		Stage:         snap.Stage.String(),
		Questions:     snap.Questions,
		Answers:       snap.Answers,
		Notes:         snap.Notes,
	}
}
