package models

import (
	"errors"
	"testing"
	"time"
)

const (
	module1Limit = 45 * time.Minute
	module2Limit = 15 * time.Minute
)

func newSession() *AssessmentSession {
	return &AssessmentSession{
		ID:       1,
		Token:    "test-token",
		ClientID: 1,
		Status:   SessionCreated,
	}
}

func TestFirstModule1AnswerStartsClock(t *testing.T) {
	s := newSession()
	now := time.Now().UTC()

	if err := s.RecordModule1Answer(now, module1Limit); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if s.Status != SessionInProgress {
		t.Errorf("Expected status %q, got %q", SessionInProgress, s.Status)
	}
	if s.Module1Start == nil || !s.Module1Start.Equal(now) {
		t.Errorf("Expected module1_start %v, got %v", now, s.Module1Start)
	}
}

func TestModule1AnswerAfterDeadlineExpiresSession(t *testing.T) {
	s := newSession()
	start := time.Now().UTC()
	if err := s.RecordModule1Answer(start, module1Limit); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	err := s.RecordModule1Answer(start.Add(46*time.Minute), module1Limit)

	var expired *ModuleTimeExpiredError
	if !errors.As(err, &expired) {
		t.Fatalf("Expected ModuleTimeExpiredError, got %v", err)
	}
	if expired.Module != 1 {
		t.Errorf("Expected module 1, got %d", expired.Module)
	}
	if s.Status != SessionExpired {
		t.Errorf("Expected status %q, got %q", SessionExpired, s.Status)
	}
}

func TestModule1AnswerWithinWindow(t *testing.T) {
	s := newSession()
	start := time.Now().UTC()
	s.RecordModule1Answer(start, module1Limit)

	if err := s.RecordModule1Answer(start.Add(44*time.Minute), module1Limit); err != nil {
		t.Fatalf("Expected answer inside window to pass, got %v", err)
	}
	if s.Status != SessionInProgress {
		t.Errorf("Expected status %q, got %q", SessionInProgress, s.Status)
	}
}

func TestCompleteModule1(t *testing.T) {
	s := newSession()
	start := time.Now().UTC()
	s.RecordModule1Answer(start, module1Limit)

	end := start.Add(30 * time.Minute)
	if err := s.CompleteModule1(end, module1Limit); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if s.Status != SessionModule1Completed {
		t.Errorf("Expected status %q, got %q", SessionModule1Completed, s.Status)
	}
	if s.TimeModule1 == nil || *s.TimeModule1 != 1800 {
		t.Errorf("Expected time_module1 1800, got %v", s.TimeModule1)
	}
	// Completion pre-seeds the module-2 window
	if s.Module2Start == nil || !s.Module2Start.Equal(end) {
		t.Errorf("Expected module2_start %v, got %v", end, s.Module2Start)
	}
}

func TestCompleteModule1_NotInProgress(t *testing.T) {
	statuses := []string{SessionCreated, SessionModule1Completed, SessionCompleted, SessionExpired}
	for _, status := range statuses {
		s := newSession()
		s.Status = status

		err := s.CompleteModule1(time.Now().UTC(), module1Limit)

		var notInProgress *ModuleNotInProgressError
		if !errors.As(err, &notInProgress) {
			t.Errorf("Status %q: expected ModuleNotInProgressError, got %v", status, err)
		}
		if s.Status != status {
			t.Errorf("Status %q: expected no state change, got %q", status, s.Status)
		}
	}
}

func TestCompleteModule1_AfterDeadline(t *testing.T) {
	s := newSession()
	start := time.Now().UTC()
	s.RecordModule1Answer(start, module1Limit)

	err := s.CompleteModule1(start.Add(45*time.Minute+time.Second), module1Limit)

	var expired *ModuleTimeExpiredError
	if !errors.As(err, &expired) {
		t.Fatalf("Expected ModuleTimeExpiredError, got %v", err)
	}
	if s.Status != SessionExpired {
		t.Errorf("Expected status %q, got %q", SessionExpired, s.Status)
	}
	if s.Module1End != nil {
		t.Error("Expected module1_end to stay unset on expiry")
	}
}

func TestModule2AnswerRequiresModule1Completed(t *testing.T) {
	statuses := []string{SessionCreated, SessionInProgress, SessionCompleted, SessionExpired}
	for _, status := range statuses {
		s := newSession()
		s.Status = status

		err := s.RecordModule2Answer(time.Now().UTC())

		var prereq *ModulePrerequisiteError
		if !errors.As(err, &prereq) {
			t.Errorf("Status %q: expected ModulePrerequisiteError, got %v", status, err)
		}
		if s.Module2Start != nil {
			t.Errorf("Status %q: expected no state change", status)
		}
	}
}

func TestCompleteModule2_RequiresModule1Completed(t *testing.T) {
	statuses := []string{SessionCreated, SessionInProgress, SessionCompleted, SessionExpired}
	for _, status := range statuses {
		s := newSession()
		s.Status = status

		err := s.CompleteModule2(time.Now().UTC(), module2Limit)

		var prereq *ModulePrerequisiteError
		if !errors.As(err, &prereq) {
			t.Errorf("Status %q: expected ModulePrerequisiteError, got %v", status, err)
		}
	}
}

func TestCompleteModule2_HappyPath(t *testing.T) {
	s := newSession()
	start := time.Now().UTC()
	s.RecordModule1Answer(start, module1Limit)
	s.CompleteModule1(start.Add(20*time.Minute), module1Limit)

	end := start.Add(30 * time.Minute)
	if err := s.CompleteModule2(end, module2Limit); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if s.Status != SessionCompleted {
		t.Errorf("Expected status %q, got %q", SessionCompleted, s.Status)
	}
	if s.TimeModule2 == nil || *s.TimeModule2 != 600 {
		t.Errorf("Expected time_module2 600, got %v", s.TimeModule2)
	}
}

func TestCompleteModule2_AfterDeadline(t *testing.T) {
	s := newSession()
	start := time.Now().UTC()
	s.RecordModule1Answer(start, module1Limit)
	s.CompleteModule1(start.Add(10*time.Minute), module1Limit)

	err := s.CompleteModule2(start.Add(26*time.Minute), module2Limit)

	var expired *ModuleTimeExpiredError
	if !errors.As(err, &expired) {
		t.Fatalf("Expected ModuleTimeExpiredError, got %v", err)
	}
	if expired.Module != 2 {
		t.Errorf("Expected module 2, got %d", expired.Module)
	}
	if s.Status != SessionExpired {
		t.Errorf("Expected status %q, got %q", SessionExpired, s.Status)
	}
}

func TestModule2StartFallbackChain(t *testing.T) {
	now := time.Now().UTC()
	m1End := now.Add(-5 * time.Minute)
	explicit := now.Add(-2 * time.Minute)

	tests := []struct {
		name     string
		session  *AssessmentSession
		expected time.Time
	}{
		{
			"explicit start wins",
			&AssessmentSession{Status: SessionModule1Completed, Module1End: &m1End, Module2Start: &explicit},
			explicit,
		},
		{
			"falls back to module1_end",
			&AssessmentSession{Status: SessionModule1Completed, Module1End: &m1End},
			m1End,
		},
		{
			"falls back to call time",
			&AssessmentSession{Status: SessionModule1Completed},
			now,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.session.RecordModule2Answer(now); err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !tc.session.Module2Start.Equal(tc.expected) {
				t.Errorf("Expected module2_start %v, got %v", tc.expected, tc.session.Module2Start)
			}
		})
	}
}

func TestTerminalStatesAreAbsorbing(t *testing.T) {
	for _, status := range []string{SessionCompleted, SessionExpired} {
		s := newSession()
		s.Status = status
		now := time.Now().UTC()

		if err := s.RecordModule1Answer(now, module1Limit); err == nil {
			t.Errorf("Status %q: expected module-1 answer to be rejected", status)
		}
		if err := s.RecordModule2Answer(now); err == nil {
			t.Errorf("Status %q: expected module-2 answer to be rejected", status)
		}
		if err := s.CompleteModule1(now, module1Limit); err == nil {
			t.Errorf("Status %q: expected module-1 completion to be rejected", status)
		}
		if err := s.CompleteModule2(now, module2Limit); err == nil {
			t.Errorf("Status %q: expected module-2 completion to be rejected", status)
		}
		if s.Status != status {
			t.Errorf("Expected status to stay %q, got %q", status, s.Status)
		}
	}
}
