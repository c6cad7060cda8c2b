package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"

	"gert-backend/internal/models"
	"gert-backend/internal/repository"
	"gert-backend/internal/scoring"
)

const ReportQueueKey = "queue:report-delivery"

// AssessmentService drives the session lifecycle: token-gated creation,
// timed answer intake for both modules, and the synchronous scoring step
// that publishes the report before the completion call returns. Report
// delivery (rendering plus email) is handed off to the worker queue and
// never blocks nor fails the completion.
type AssessmentService struct {
	sessionRepo  *repository.SessionRepo
	clientRepo   *repository.ClientRepo
	employeeRepo *repository.EmployeeRepo
	queue        *redis.Client
	module1Limit time.Duration
	module2Limit time.Duration
}

func NewAssessmentService(
	sessionRepo *repository.SessionRepo,
	clientRepo *repository.ClientRepo,
	employeeRepo *repository.EmployeeRepo,
	queue *redis.Client,
	module1Limit, module2Limit time.Duration,
) *AssessmentService {
	return &AssessmentService{
		sessionRepo:  sessionRepo,
		clientRepo:   clientRepo,
		employeeRepo: employeeRepo,
		queue:        queue,
		module1Limit: module1Limit,
		module2Limit: module2Limit,
	}
}

// CreateSession spends one of the client's assessment tokens and issues a
// fresh session in the "created" state.
func (s *AssessmentService) CreateSession(ctx context.Context, req models.CreateSessionRequest) (*models.AssessmentSession, error) {
	client, err := s.clientRepo.GetByID(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "Client not found"}
		}
		return nil, err
	}

	if !client.IsActive || client.IsSuspended || client.IsBlocked {
		return nil, &ForbiddenError{Message: "Client account is not active"}
	}

	if req.EmployeeID != nil {
		employee, err := s.employeeRepo.GetByID(ctx, *req.EmployeeID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, &NotFoundError{Message: "Employee not found"}
			}
			return nil, err
		}
		if employee.ClientID != req.ClientID {
			return nil, &ForbiddenError{Message: "Employee belongs to a different client"}
		}
	}

	spent, err := s.clientRepo.SpendToken(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}
	if !spent {
		return nil, &ForbiddenError{Message: "No assessment tokens available"}
	}

	session := &models.AssessmentSession{
		Token:          uuid.NewString(),
		ClientID:       req.ClientID,
		EmployeeID:     req.EmployeeID,
		CandidateEmail: req.CandidateEmail,
		Status:         models.SessionCreated,
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *AssessmentService) GetSession(ctx context.Context, token string) (*models.AssessmentSession, error) {
	session, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "Session not found"}
		}
		return nil, err
	}
	return session, nil
}

// SaveAnswers stores a batch of answers, gating the whole batch through
// the session state machine before anything is written. The first
// module-1 answer starts the clock. A rejected batch stores nothing —
// except when a module window has lapsed, in which case the session is
// marked expired and persisted before the error surfaces, so the expiry
// sticks even though the call fails.
func (s *AssessmentService) SaveAnswers(ctx context.Context, token string, submissions []models.AnswerSubmission) error {
	session, err := s.GetSession(ctx, token)
	if err != nil {
		return err
	}

	now := time.Now().UTC()

	if err := gateAnswerBatch(session, submissions, now, s.module1Limit); err != nil {
		var expired *models.ModuleTimeExpiredError
		if errors.As(err, &expired) {
			if uerr := s.sessionRepo.UpdateState(ctx, session); uerr != nil {
				return uerr
			}
		}
		return err
	}

	// State first, so a clock started by this batch is durable before any
	// answer row references it.
	if err := s.sessionRepo.UpdateState(ctx, session); err != nil {
		return err
	}

	for _, sub := range submissions {
		if err := s.sessionRepo.AppendAnswer(ctx, session.ID, sub.Module, sub.QuestionCode, sub.Answer); err != nil {
			return err
		}
	}

	return nil
}

// gateAnswerBatch runs every submission through the state machine. Module
// numbers are checked up front so an invalid one rejects the batch before
// the session is touched at all.
func gateAnswerBatch(session *models.AssessmentSession, submissions []models.AnswerSubmission, now time.Time, module1Limit time.Duration) error {
	for _, sub := range submissions {
		if sub.Module != 1 && sub.Module != 2 {
			return &models.InvalidModuleError{Module: sub.Module}
		}
	}

	for _, sub := range submissions {
		var err error
		switch sub.Module {
		case 1:
			err = session.RecordModule1Answer(now, module1Limit)
		case 2:
			err = session.RecordModule2Answer(now)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// CompleteModule closes a module window. Completing module 2 scores the
// whole session synchronously and schedules report delivery.
func (s *AssessmentService) CompleteModule(ctx context.Context, token string, module int) (*models.AssessmentSession, error) {
	session, err := s.GetSession(ctx, token)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	switch module {
	case 1:
		err = session.CompleteModule1(now, s.module1Limit)
	case 2:
		err = session.CompleteModule2(now, s.module2Limit)
	default:
		return nil, &models.InvalidModuleError{Module: module}
	}

	if err != nil {
		var expired *models.ModuleTimeExpiredError
		if errors.As(err, &expired) {
			if uerr := s.sessionRepo.UpdateState(ctx, session); uerr != nil {
				return nil, uerr
			}
		}
		return nil, err
	}

	if err := s.sessionRepo.UpdateState(ctx, session); err != nil {
		return nil, err
	}

	if module == 2 {
		if err := s.scoreSession(ctx, session); err != nil {
			return nil, err
		}
	}

	return session, nil
}

// scoreSession rebuilds the answer map in insertion order (last write
// wins for duplicate codes), runs the calculator and stores the report.
// The result row exists before this returns; queueing the delivery job is
// best-effort.
func (s *AssessmentService) scoreSession(ctx context.Context, session *models.AssessmentSession) error {
	rows, err := s.sessionRepo.AllAnswers(ctx, session.ID)
	if err != nil {
		return err
	}

	answers := make(map[string]any, len(rows))
	for _, row := range rows {
		var value any
		if err := json.Unmarshal(row.Answer, &value); err != nil {
			log.Printf("session %d: skipping undecodable answer %s: %v", session.ID, row.QuestionCode, err)
			continue
		}
		answers[fmt.Sprintf("%d_%s", row.Module, row.QuestionCode)] = value
	}

	report := scoring.Calculate(answers)
	reportData, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	result := &models.AssessmentResult{
		SessionID:   session.ID,
		ReportData:  reportData,
		ReportToken: uuid.NewString(),
	}
	if err := s.sessionRepo.CreateResult(ctx, result); err != nil {
		return err
	}

	job := models.ReportJob{
		SessionID:      session.ID,
		ClientID:       session.ClientID,
		ReportToken:    result.ReportToken,
		CandidateEmail: session.CandidateEmail,
		ReportData:     reportData,
	}
	payload, err := json.Marshal(job)
	if err != nil {
		log.Printf("session %d: failed to encode report job: %v", session.ID, err)
		return nil
	}
	if err := s.queue.LPush(ctx, ReportQueueKey, payload).Err(); err != nil {
		log.Printf("session %d: failed to queue report delivery: %v", session.ID, err)
	}

	return nil
}

func (s *AssessmentService) GetResult(ctx context.Context, reportToken string) (*models.AssessmentResult, error) {
	result, err := s.sessionRepo.ResultByToken(ctx, reportToken)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "Report not found"}
		}
		return nil, err
	}
	return result, nil
}
