package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/supportdesk/helpdesk-service/internal/domain"
)

// StatusRepository reads the fixed lifecycle status registry. Writes happen
// only through seeding.
type StatusRepository interface {
	Create(ctx context.Context, status *domain.Status) error
	GetByID(ctx context.Context, id int64) (*domain.Status, error)
	GetByName(ctx context.Context, name domain.StatusName) (*domain.Status, error)
	List(ctx context.Context) ([]domain.Status, error)
}

type statusRepository struct {
	pool *pgxpool.Pool
}

// NewStatusRepository returns a Postgres-backed implementation.
func NewStatusRepository(pool *pgxpool.Pool) StatusRepository {
	return &statusRepository{pool: pool}
}

func (r *statusRepository) Create(ctx context.Context, status *domain.Status) error {
	const query = `
        INSERT INTO statuses (name, description) VALUES ($1,$2)
        RETURNING id`
	return r.pool.QueryRow(ctx, query, status.Name, status.Description).Scan(&status.ID)
}

func (r *statusRepository) GetByID(ctx context.Context, id int64) (*domain.Status, error) {
	var status domain.Status
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, description FROM statuses WHERE id=$1`, id,
	).Scan(&status.ID, &status.Name, &status.Description)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *statusRepository) GetByName(ctx context.Context, name domain.StatusName) (*domain.Status, error) {
	var status domain.Status
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, description FROM statuses WHERE name=$1`, name,
	).Scan(&status.ID, &status.Name, &status.Description)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *statusRepository) List(ctx context.Context) ([]domain.Status, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, description FROM statuses ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Status
	for rows.Next() {
		var status domain.Status
		if err := rows.Scan(&status.ID, &status.Name, &status.Description); err != nil {
			return nil, err
		}
		result = append(result, status)
	}
	return result, rows.Err()
}
