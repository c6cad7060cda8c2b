package services

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"gert-backend/internal/models"
)

func answerBatch(subs ...models.AnswerSubmission) []models.AnswerSubmission {
	return subs
}

func m1Answer(code string) models.AnswerSubmission {
	return models.AnswerSubmission{Module: 1, QuestionCode: code, Answer: json.RawMessage(`3`)}
}

func TestGateAnswerBatch_InvalidModuleRejectsWholeBatch(t *testing.T) {
	session := &models.AssessmentSession{Status: models.SessionCreated}
	now := time.Now().UTC()

	batch := answerBatch(
		m1Answer("P1"),
		models.AnswerSubmission{Module: 3, QuestionCode: "P2", Answer: json.RawMessage(`1`)},
	)

	err := gateAnswerBatch(session, batch, now, 45*time.Minute)

	var invalid *models.InvalidModuleError
	if !errors.As(err, &invalid) {
		t.Fatalf("Expected InvalidModuleError, got %v", err)
	}

	// The bad module number must be caught before any transition runs:
	// the valid first answer must not have started the clock.
	if session.Status != models.SessionCreated {
		t.Errorf("Expected status to stay %q, got %q", models.SessionCreated, session.Status)
	}
	if session.Module1Start != nil {
		t.Error("Expected module1_start to stay unset after a rejected batch")
	}
}

func TestGateAnswerBatch_FirstAnswerStartsClockOnce(t *testing.T) {
	session := &models.AssessmentSession{Status: models.SessionCreated}
	now := time.Now().UTC()

	batch := answerBatch(m1Answer("P1"), m1Answer("P2"), m1Answer("P3"))

	if err := gateAnswerBatch(session, batch, now, 45*time.Minute); err != nil {
		t.Fatalf("Expected batch to pass, got %v", err)
	}

	if session.Status != models.SessionInProgress {
		t.Errorf("Expected status %q, got %q", models.SessionInProgress, session.Status)
	}
	if session.Module1Start == nil || !session.Module1Start.Equal(now) {
		t.Errorf("Expected module1_start pinned to the batch time, got %v", session.Module1Start)
	}
}

func TestGateAnswerBatch_Module2BeforePrerequisiteRejects(t *testing.T) {
	session := &models.AssessmentSession{Status: models.SessionCreated}
	now := time.Now().UTC()

	batch := answerBatch(
		m1Answer("P1"),
		models.AnswerSubmission{Module: 2, QuestionCode: "q1", Answer: json.RawMessage(`"72"`)},
	)

	err := gateAnswerBatch(session, batch, now, 45*time.Minute)

	var prereq *models.ModulePrerequisiteError
	if !errors.As(err, &prereq) {
		t.Fatalf("Expected ModulePrerequisiteError, got %v", err)
	}
}

func TestGateAnswerBatch_ExpiredWindowSurfaces(t *testing.T) {
	start := time.Now().UTC().Add(-46 * time.Minute)
	session := &models.AssessmentSession{
		Status:       models.SessionInProgress,
		Module1Start: &start,
	}

	err := gateAnswerBatch(session, answerBatch(m1Answer("P1")), time.Now().UTC(), 45*time.Minute)

	var expired *models.ModuleTimeExpiredError
	if !errors.As(err, &expired) {
		t.Fatalf("Expected ModuleTimeExpiredError, got %v", err)
	}
	if session.Status != models.SessionExpired {
		t.Errorf("Expected status %q for persistence, got %q", models.SessionExpired, session.Status)
	}
}
