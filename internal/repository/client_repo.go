package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"gert-backend/internal/models"
)

type ClientRepo struct {
	pool *pgxpool.Pool
}

func NewClientRepo(pool *pgxpool.Pool) *ClientRepo {
	return &ClientRepo{pool: pool}
}

func (r *ClientRepo) Create(ctx context.Context, c *models.Client) error {
	query := `
		INSERT INTO clients (company_name, employee_count, contact_email, contact_phone, tokens)
		VALUES ($1, $2, $3, $4, 0)
		RETURNING id, tokens, is_active, is_suspended, is_blocked, created_at`

	return r.pool.QueryRow(ctx, query,
		c.CompanyName, c.EmployeeCount, c.ContactEmail, c.ContactPhone,
	).Scan(&c.ID, &c.Tokens, &c.IsActive, &c.IsSuspended, &c.IsBlocked, &c.CreatedAt)
}

const clientColumns = `id, company_name, employee_count, contact_email, contact_phone,
	tokens, is_active, is_suspended, is_blocked, created_at`

func (r *ClientRepo) scanClient(row interface{ Scan(...any) error }) (*models.Client, error) {
	c := &models.Client{}
	err := row.Scan(
		&c.ID, &c.CompanyName, &c.EmployeeCount, &c.ContactEmail, &c.ContactPhone,
		&c.Tokens, &c.IsActive, &c.IsSuspended, &c.IsBlocked, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *ClientRepo) GetByID(ctx context.Context, id int64) (*models.Client, error) {
	return r.scanClient(r.pool.QueryRow(ctx,
		"SELECT "+clientColumns+" FROM clients WHERE id = $1", id))
}

func (r *ClientRepo) GetByCompanyName(ctx context.Context, name string) (*models.Client, error) {
	return r.scanClient(r.pool.QueryRow(ctx,
		"SELECT "+clientColumns+" FROM clients WHERE company_name = $1", name))
}

func (r *ClientRepo) List(ctx context.Context, offset, limit int) ([]*models.Client, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT "+clientColumns+" FROM clients ORDER BY id OFFSET $1 LIMIT $2", offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []*models.Client
	for rows.Next() {
		c, err := r.scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (r *ClientRepo) Update(ctx context.Context, c *models.Client) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE clients
		SET company_name = $1, employee_count = $2, contact_email = $3, contact_phone = $4,
			is_active = $5, is_suspended = $6, is_blocked = $7
		WHERE id = $8`,
		c.CompanyName, c.EmployeeCount, c.ContactEmail, c.ContactPhone,
		c.IsActive, c.IsSuspended, c.IsBlocked, c.ID,
	)
	return err
}

func (r *ClientRepo) UpdateTokens(ctx context.Context, id int64, tokens int) error {
	_, err := r.pool.Exec(ctx, "UPDATE clients SET tokens = $1 WHERE id = $2", tokens, id)
	return err
}

// SpendToken atomically consumes one assessment token. Returns false when
// the balance is already zero.
func (r *ClientRepo) SpendToken(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		"UPDATE clients SET tokens = tokens - 1 WHERE id = $1 AND tokens > 0", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ClientRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM clients WHERE id = $1", id)
	return err
}
