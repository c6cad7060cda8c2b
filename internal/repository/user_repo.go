package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"gert-backend/internal/models"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) AdminByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	u := &models.AdminUser{}
	err := r.pool.QueryRow(ctx,
		"SELECT id, email, password_hash, is_superadmin, created_at FROM admin_users WHERE email = $1",
		email,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.IsSuperadmin, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepo) AdminByID(ctx context.Context, id int64) (*models.AdminUser, error) {
	u := &models.AdminUser{}
	err := r.pool.QueryRow(ctx,
		"SELECT id, email, password_hash, is_superadmin, created_at FROM admin_users WHERE id = $1",
		id,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.IsSuperadmin, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

const clientUserColumns = `id, client_id, first_name, last_name, email, password_hash,
	is_admin, is_active, created_at`

func (r *UserRepo) scanClientUser(row interface{ Scan(...any) error }) (*models.ClientUser, error) {
	u := &models.ClientUser{}
	err := row.Scan(
		&u.ID, &u.ClientID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash,
		&u.IsAdmin, &u.IsActive, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepo) CreateClientUser(ctx context.Context, u *models.ClientUser) error {
	query := `
		INSERT INTO client_users (client_id, first_name, last_name, email, password_hash, is_admin)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, is_active, created_at`

	return r.pool.QueryRow(ctx, query,
		u.ClientID, u.FirstName, u.LastName, u.Email, u.PasswordHash, u.IsAdmin,
	).Scan(&u.ID, &u.IsActive, &u.CreatedAt)
}

func (r *UserRepo) ClientUserByEmail(ctx context.Context, email string) (*models.ClientUser, error) {
	return r.scanClientUser(r.pool.QueryRow(ctx,
		"SELECT "+clientUserColumns+" FROM client_users WHERE email = $1", email))
}

func (r *UserRepo) ClientUserByID(ctx context.Context, id int64) (*models.ClientUser, error) {
	return r.scanClientUser(r.pool.QueryRow(ctx,
		"SELECT "+clientUserColumns+" FROM client_users WHERE id = $1", id))
}

func (r *UserRepo) ListByClient(ctx context.Context, clientID int64) ([]*models.ClientUser, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT "+clientUserColumns+" FROM client_users WHERE client_id = $1 ORDER BY id", clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.ClientUser
	for rows.Next() {
		u, err := r.scanClientUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepo) UpdateClientUser(ctx context.Context, u *models.ClientUser) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE client_users
		SET first_name = $1, last_name = $2, email = $3, is_admin = $4, is_active = $5
		WHERE id = $6`,
		u.FirstName, u.LastName, u.Email, u.IsAdmin, u.IsActive, u.ID,
	)
	return err
}

func (r *UserRepo) DeleteClientUser(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM client_users WHERE id = $1", id)
	return err
}
