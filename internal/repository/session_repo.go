package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"gert-backend/internal/models"
)

// SessionRepo persists assessment sessions and their append-only answer
// rows. Answers are never updated or deleted; AllAnswers returns them in
// insertion order so the scoring step's map rebuild is last-write-wins.
type SessionRepo struct {
	pool *pgxpool.Pool
}

func NewSessionRepo(pool *pgxpool.Pool) *SessionRepo {
	return &SessionRepo{pool: pool}
}

const sessionColumns = `id, token, client_id, employee_id, candidate_email, status,
	module1_start, module1_end, module2_start, module2_end,
	time_module1, time_module2, created_at`

func (r *SessionRepo) scanSession(row interface{ Scan(...any) error }) (*models.AssessmentSession, error) {
	s := &models.AssessmentSession{}
	err := row.Scan(
		&s.ID, &s.Token, &s.ClientID, &s.EmployeeID, &s.CandidateEmail, &s.Status,
		&s.Module1Start, &s.Module1End, &s.Module2Start, &s.Module2End,
		&s.TimeModule1, &s.TimeModule2, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SessionRepo) Create(ctx context.Context, s *models.AssessmentSession) error {
	query := `
		INSERT INTO assessment_sessions (token, client_id, employee_id, candidate_email, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		s.Token, s.ClientID, s.EmployeeID, s.CandidateEmail, s.Status,
	).Scan(&s.ID, &s.CreatedAt)
}

func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*models.AssessmentSession, error) {
	return r.scanSession(r.pool.QueryRow(ctx,
		"SELECT "+sessionColumns+" FROM assessment_sessions WHERE token = $1", token))
}

func (r *SessionRepo) GetByID(ctx context.Context, id int64) (*models.AssessmentSession, error) {
	return r.scanSession(r.pool.QueryRow(ctx,
		"SELECT "+sessionColumns+" FROM assessment_sessions WHERE id = $1", id))
}

// UpdateState writes back every state-machine owned field in one statement.
func (r *SessionRepo) UpdateState(ctx context.Context, s *models.AssessmentSession) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE assessment_sessions
		SET status = $1,
			module1_start = $2, module1_end = $3,
			module2_start = $4, module2_end = $5,
			time_module1 = $6, time_module2 = $7
		WHERE id = $8`,
		s.Status, s.Module1Start, s.Module1End, s.Module2Start, s.Module2End,
		s.TimeModule1, s.TimeModule2, s.ID,
	)
	return err
}

// AppendAnswer inserts one answer row. Duplicate question codes are
// accepted by design.
func (r *SessionRepo) AppendAnswer(ctx context.Context, sessionID int64, module int, questionCode string, answer json.RawMessage) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO assessment_answers (session_id, module, question_code, answer)
		VALUES ($1, $2, $3, $4)`,
		sessionID, module, questionCode, answer,
	)
	return err
}

// AllAnswers returns every answer for a session ordered by insertion.
func (r *SessionRepo) AllAnswers(ctx context.Context, sessionID int64) ([]*models.AssessmentAnswer, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, session_id, module, question_code, answer, answered_at
		FROM assessment_answers
		WHERE session_id = $1
		ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var answers []*models.AssessmentAnswer
	for rows.Next() {
		a := &models.AssessmentAnswer{}
		err := rows.Scan(&a.ID, &a.SessionID, &a.Module, &a.QuestionCode, &a.Answer, &a.AnsweredAt)
		if err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}

func (r *SessionRepo) CreateResult(ctx context.Context, res *models.AssessmentResult) error {
	query := `
		INSERT INTO assessment_results (session_id, report_data, report_token)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		res.SessionID, res.ReportData, res.ReportToken,
	).Scan(&res.ID, &res.CreatedAt)
}

func (r *SessionRepo) ResultByToken(ctx context.Context, reportToken string) (*models.AssessmentResult, error) {
	res := &models.AssessmentResult{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, session_id, report_data, report_token, created_at
		FROM assessment_results
		WHERE report_token = $1`,
		reportToken,
	).Scan(&res.ID, &res.SessionID, &res.ReportData, &res.ReportToken, &res.CreatedAt)
	if err != nil {
		return nil, err
	}
	return res, nil
}
