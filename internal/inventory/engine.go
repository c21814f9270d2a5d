package inventory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Repository is the single store operation the engine needs: an atomic
// increment of one product's quantity. Returns the number of rows matched so
// adjustments against deleted products can be observed.
type Repository interface {
	Increment(ctx context.Context, productID uuid.UUID, delta int) (int64, error)
}

// Engine applies batches of deltas one at a time, in list order. A store
// failure partway through leaves the earlier increments applied; there is no
// rollback or compensation, matching the behavior the API has always had.
type Engine struct {
	repo   Repository
	logger *slog.Logger
}

// NewEngine constructs an Engine.
func NewEngine(repo Repository, logger *slog.Logger) *Engine {
	return &Engine{repo: repo, logger: logger}
}

// Apply executes each delta as an independent increment. Deltas whose product
// no longer exists are skipped silently; the caller has either resolved the
// products up front (creation) or accepts skips (deletion reversal).
func (e *Engine) Apply(ctx context.Context, deltas []Delta) error {
	for _, d := range deltas {
		affected, err := e.repo.Increment(ctx, d.ProductID, d.Quantity)
		if err != nil {
			return fmt.Errorf("inventory: adjust product %s by %d: %w", d.ProductID, d.Quantity, err)
		}
		if affected == 0 && e.logger != nil {
			e.logger.Debug("adjustment skipped, product missing",
				slog.String("product_id", d.ProductID.String()),
				slog.Int("delta", d.Quantity))
		}
	}
	return nil
}
