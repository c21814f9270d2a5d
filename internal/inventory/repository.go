package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository backed by PostgreSQL. The increment
// is atomic at the row level; PostgreSQL serialises concurrent updates to the
// same product row.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Increment(ctx context.Context, productID uuid.UUID, delta int) (int64, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE products SET quantity = quantity + $1 WHERE id = $2`, delta, productID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
