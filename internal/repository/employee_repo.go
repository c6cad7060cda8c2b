package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"gert-backend/internal/models"
)

type EmployeeRepo struct {
	pool *pgxpool.Pool
}

func NewEmployeeRepo(pool *pgxpool.Pool) *EmployeeRepo {
	return &EmployeeRepo{pool: pool}
}

const employeeColumns = `id, client_id, first_name, last_name, email, department, position, created_at`

func (r *EmployeeRepo) scanEmployee(row interface{ Scan(...any) error }) (*models.Employee, error) {
	e := &models.Employee{}
	err := row.Scan(
		&e.ID, &e.ClientID, &e.FirstName, &e.LastName, &e.Email,
		&e.Department, &e.Position, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *EmployeeRepo) Create(ctx context.Context, e *models.Employee) error {
	query := `
		INSERT INTO employees (client_id, first_name, last_name, email, department, position)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		e.ClientID, e.FirstName, e.LastName, e.Email, e.Department, e.Position,
	).Scan(&e.ID, &e.CreatedAt)
}

func (r *EmployeeRepo) GetByID(ctx context.Context, id int64) (*models.Employee, error) {
	return r.scanEmployee(r.pool.QueryRow(ctx,
		"SELECT "+employeeColumns+" FROM employees WHERE id = $1", id))
}

func (r *EmployeeRepo) ListByClient(ctx context.Context, clientID int64) ([]*models.Employee, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT "+employeeColumns+" FROM employees WHERE client_id = $1 ORDER BY id", clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []*models.Employee
	for rows.Next() {
		e, err := r.scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (r *EmployeeRepo) Update(ctx context.Context, e *models.Employee) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE employees
		SET first_name = $1, last_name = $2, email = $3, department = $4, position = $5
		WHERE id = $6`,
		e.FirstName, e.LastName, e.Email, e.Department, e.Position, e.ID,
	)
	return err
}

func (r *EmployeeRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM employees WHERE id = $1", id)
	return err
}
