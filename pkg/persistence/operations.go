package persistence

import (
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a requested interview does not exist.
var ErrNotFound = errors.New("persistence: interview not found")

// DatabaseOperations provides typed access to the interviews table.
type DatabaseOperations struct {
	db *sql.DB
}

// NewDatabaseOperations creates operations bound to the given connection.
func NewDatabaseOperations(db *sql.DB) *DatabaseOperations {
	return &DatabaseOperations{db: db}
}

// SaveInterview persists an interview record, assigning its ID, reference,
// and timestamp if unset. It is called at most once per session (on exit or
// completion) and its failure must not disturb the conversation.
func (o *DatabaseOperations) SaveInterview(ctx context.Context, rec *Interview) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	if rec.InterviewRef == "" {
		rec.InterviewRef = "TS_" + rec.CreatedAt.Format("20060102150405")
	}

	questions, err := json.Marshal(emptyIfNil(rec.Questions))
	if err != nil {
		return fmt.Errorf("failed to marshal questions: %w", err)
	}
	answers, err := json.Marshal(emptyIfNil(rec.Answers))
	if err != nil {
		return fmt.Errorf("failed to marshal answers: %w", err)
	}
	notes, err := json.Marshal(emptyIfNil(rec.Notes))
	if err != nil {
		return fmt.Errorf("failed to marshal notes: %w", err)
	}

	_, err = o.db.ExecContext(ctx, `
		INSERT INTO interviews (
			id, interview_ref, candidate_name, email, phone,
			experience, position, location, tech_stack, stage,
			questions, answers, notes, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.InterviewRef, rec.CandidateName, rec.Email, rec.Phone,
		rec.Experience, rec.Position, rec.Location, rec.TechStack, rec.Stage,
		string(questions), string(answers), string(notes),
		rec.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to insert interview: %w", err)
	}
	return nil
}

// GetInterview loads a single interview by ID.
func (o *DatabaseOperations) GetInterview(ctx context.Context, id string) (*Interview, error) {
	row := o.db.QueryRowContext(ctx, `
		SELECT id, interview_ref, candidate_name, email, phone,
		       experience, position, location, tech_stack, stage,
		       questions, answers, notes, created_at
		FROM interviews WHERE id = ?
	`, id)

	rec, err := scanInterview(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ListInterviews returns all interviews, most recent first.
func (o *DatabaseOperations) ListInterviews(ctx context.Context) ([]*Interview, error) {
	rows, err := o.db.QueryContext(ctx, `
		SELECT id, interview_ref, candidate_name, email, phone,
		       experience, position, location, tech_stack, stage,
		       questions, answers, notes, created_at
		FROM interviews ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query interviews: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var interviews []*Interview
	for rows.Next() {
		rec, err := scanInterview(rows)
		if err != nil {
			return nil, err
		}
		interviews = append(interviews, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return interviews, nil
}

// ExportCSV writes all interviews as CSV with the recruiter-facing columns.
// When anonymize is set, email and phone are masked. Returns the number of
// exported rows.
func (o *DatabaseOperations) ExportCSV(ctx context.Context, w io.Writer, anonymize bool) (int, error) {
	interviews, err := o.ListInterviews(ctx)
	if err != nil {
		return 0, err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"interview_id", "timestamp", "name", "email", "phone"}); err != nil {
		return 0, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, rec := range interviews {
		if anonymize {
			rec = rec.Anonymized()
		}
		row := []string{
			rec.InterviewRef,
			rec.CreatedAt.Format(time.RFC3339),
			rec.CandidateName,
			rec.Email,
			rec.Phone,
		}
		if err := cw.Write(row); err != nil {
			return 0, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("CSV flush error: %w", err)
	}
	return len(interviews), nil
}

// scanner abstracts sql.Row and sql.Rows for scanInterview.
type scanner interface {
	Scan(dest ...any) error
}

func scanInterview(s scanner) (*Interview, error) {
	var rec Interview
	var questions, answers, notes, createdAt string

	err := s.Scan(&rec.ID, &rec.InterviewRef, &rec.CandidateName, &rec.Email, &rec.Phone,
		&rec.Experience, &rec.Position, &rec.Location, &rec.TechStack, &rec.Stage,
		&questions, &answers, &notes, &createdAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(questions), &rec.Questions); err != nil {
		return nil, fmt.Errorf("failed to parse questions column: %w", err)
	}
	if err := json.Unmarshal([]byte(answers), &rec.Answers); err != nil {
		return nil, fmt.Errorf("failed to parse answers column: %w", err)
	}
	if err := json.Unmarshal([]byte(notes), &rec.Notes); err != nil {
		return nil, fmt.Errorf("failed to parse notes column: %w", err)
	}

	rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return &rec, nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
