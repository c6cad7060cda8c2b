package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Assessment session lifecycle. "expired" is absorbing; nothing leaves
// "completed" or "expired".
const (
	SessionCreated          = "created"
	SessionInProgress       = "in_progress"
	SessionModule1Completed = "module1_completed"
	SessionCompleted        = "completed"
	SessionExpired          = "expired"
)

// AssessmentSession is one respondent's end-to-end attempt, identified by
// an opaque token. All status changes go through the transition methods
// below; callers persist the mutated row afterwards — including when a
// transition returns *ModuleTimeExpiredError, so the "expired" status is
// durable before the error surfaces.
type AssessmentSession struct {
	ID             int64      `json:"id"`
	Token          string     `json:"token"`
	ClientID       int64      `json:"client_id"`
	EmployeeID     *int64     `json:"employee_id,omitempty"`
	CandidateEmail *string    `json:"candidate_email,omitempty"`
	Status         string     `json:"status"`
	Module1Start   *time.Time `json:"module1_start,omitempty"`
	Module1End     *time.Time `json:"module1_end,omitempty"`
	Module2Start   *time.Time `json:"module2_start,omitempty"`
	Module2End     *time.Time `json:"module2_end,omitempty"`
	TimeModule1    *int       `json:"time_module1,omitempty"`
	TimeModule2    *int       `json:"time_module2,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// RecordModule1Answer gates a module-1 answer submission. The first answer
// starts the module clock.
func (s *AssessmentSession) RecordModule1Answer(now time.Time, limit time.Duration) error {
	switch s.Status {
	case SessionCreated:
		start := now
		s.Module1Start = &start
		s.Status = SessionInProgress
		return nil
	case SessionInProgress:
		if now.After(s.Module1Start.Add(limit)) {
			s.Status = SessionExpired
			return &ModuleTimeExpiredError{Module: 1}
		}
		return nil
	default:
		return &ModulePrerequisiteError{Module: 1, Status: s.Status}
	}
}

// RecordModule2Answer gates a module-2 answer submission. Module 2 answers
// are only legal once module 1 has been completed. The first answer pins
// module2_start if the completion step somehow left it unset.
func (s *AssessmentSession) RecordModule2Answer(now time.Time) error {
	if s.Status != SessionModule1Completed {
		return &ModulePrerequisiteError{Module: 2, Status: s.Status}
	}
	if s.Module2Start == nil {
		s.Module2Start = s.module2StartFallback(now)
	}
	return nil
}

// CompleteModule1 closes the module-1 window and pre-seeds the module-2
// clock.
func (s *AssessmentSession) CompleteModule1(now time.Time, limit time.Duration) error {
	if s.Status != SessionInProgress {
		return &ModuleNotInProgressError{Module: 1, Status: s.Status}
	}

	if now.After(s.Module1Start.Add(limit)) {
		s.Status = SessionExpired
		return &ModuleTimeExpiredError{Module: 1}
	}

	end := now
	elapsed := int(now.Sub(*s.Module1Start).Seconds())
	s.Module1End = &end
	s.TimeModule1 = &elapsed
	s.Module2Start = &end
	s.Status = SessionModule1Completed
	return nil
}

// CompleteModule2 closes the module-2 window and moves the session to its
// terminal "completed" state. Scoring happens in the service layer after
// this transition succeeds.
func (s *AssessmentSession) CompleteModule2(now time.Time, limit time.Duration) error {
	if s.Status != SessionModule1Completed {
		return &ModulePrerequisiteError{Module: 2, Status: s.Status}
	}

	if s.Module2Start == nil {
		s.Module2Start = s.module2StartFallback(now)
	}

	if now.After(s.Module2Start.Add(limit)) {
		s.Status = SessionExpired
		return &ModuleTimeExpiredError{Module: 2}
	}

	end := now
	elapsed := int(now.Sub(*s.Module2Start).Seconds())
	s.Module2End = &end
	s.TimeModule2 = &elapsed
	s.Status = SessionCompleted
	return nil
}

// module2StartFallback: explicit start → module1_end → call time.
func (s *AssessmentSession) module2StartFallback(now time.Time) *time.Time {
	if s.Module2Start != nil {
		return s.Module2Start
	}
	if s.Module1End != nil {
		return s.Module1End
	}
	return &now
}

// AssessmentAnswer is one raw answer row. Rows are append-only; duplicate
// question codes simply accumulate and the scoring step's map rebuild makes
// the last stored occurrence win.
type AssessmentAnswer struct {
	ID           int64           `json:"id"`
	SessionID    int64           `json:"session_id"`
	Module       int             `json:"module"`
	QuestionCode string          `json:"question_code"`
	Answer       json.RawMessage `json:"answer"`
	AnsweredAt   time.Time       `json:"answered_at"`
}

// AssessmentResult holds the scored report for a completed session,
// published under its own opaque report token.
type AssessmentResult struct {
	ID          int64           `json:"id"`
	SessionID   int64           `json:"session_id"`
	ReportData  json.RawMessage `json:"report_data"`
	ReportToken string          `json:"report_token"`
	CreatedAt   time.Time       `json:"created_at"`
}

type CreateSessionRequest struct {
	ClientID       int64   `json:"client_id"`
	EmployeeID     *int64  `json:"employee_id"`
	CandidateEmail *string `json:"candidate_email"`
}

// AnswerSubmission is one answer in a POST .../answers batch.
type AnswerSubmission struct {
	Module       int             `json:"module"`
	QuestionCode string          `json:"question_code"`
	Answer       json.RawMessage `json:"answer"`
}

// Transition failures. All are terminal for the current call.

type ModuleTimeExpiredError struct {
	Module int
}

func (e *ModuleTimeExpiredError) Error() string {
	return fmt.Sprintf("module %d time expired", e.Module)
}

type ModuleNotInProgressError struct {
	Module int
	Status string
}

func (e *ModuleNotInProgressError) Error() string {
	return fmt.Sprintf("module %d is not in progress (session status %q)", e.Module, e.Status)
}

type ModulePrerequisiteError struct {
	Module int
	Status string
}

func (e *ModulePrerequisiteError) Error() string {
	if e.Module == 2 {
		return fmt.Sprintf("module 1 not completed (session status %q)", e.Status)
	}
	return fmt.Sprintf("module %d not available (session status %q)", e.Module, e.Status)
}

type InvalidModuleError struct {
	Module int
}

func (e *InvalidModuleError) Error() string {
	return fmt.Sprintf("invalid module number %d: must be 1 or 2", e.Module)
}
