package interview

// Session holds the mutable state of one candidate's interview. Each session
// is exclusively owned by its assistant; nothing is shared across sessions.
type Session struct {
	// Stage is the current position in the interview progression.
	Stage Stage

	// Fields holds collected candidate data keyed by the stage that
	// collected it.
	Fields map[Stage]string

	// RetryCounts tracks consecutive validation failures per field stage.
	RetryCounts map[Stage]int

	// Questions and Answers track the technical Q&A. CurrentQuestion is
	// the index of the question the candidate is answering.
	Questions       []string
	Answers         []string
	CurrentQuestion int

	// Notes collects anything the candidate says after the interview is
	// complete.
	Notes []string
}

// NewSession creates a session at the greeting stage.
func NewSession() *Session {
	return &Session{
		Stage:       StageGreeting,
		Fields:      make(map[Stage]string),
		RetryCounts: make(map[Stage]int),
	}
}

// Field returns the collected value for a stage, or "" if not yet collected.
func (s *Session) Field(stage Stage) string {
	return s.Fields[stage]
}

// FieldOr returns the collected value for a stage, or fallback when absent.
func (s *Session) FieldOr(stage Stage, fallback string) string {
	if v, ok := s.Fields[stage]; ok {
		return v
	}
	return fallback
}

// Snapshot is an immutable copy of everything collected so far, produced for
// persistence and summaries. Mutating a snapshot never affects the session.
type Snapshot struct {
	Stage     Stage
	Fields    map[Stage]string
	Questions []string
	Answers   []string
	Notes     []string
}

// Snapshot returns a deep copy of the session's collected state.
func (s *Session) Snapshot() Snapshot {
	fields := make(map[Stage]string, len(s.Fields))
	for k, v := range s.Fields {
		fields[k] = v
	}

	snap := Snapshot{
		Stage:  s.Stage,
		Fields: fields,
	}
	if len(s.Questions) > 0 {
		snap.Questions = append([]string(nil), s.Questions...)
	}
	if len(s.Answers) > 0 {
		snap.Answers = append([]string(nil), s.Answers...)
	}
	if len(s.Notes) > 0 {
		snap.Notes = append([]string(nil), s.Notes...)
	}
	return snap
}
