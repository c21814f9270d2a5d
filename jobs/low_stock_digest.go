package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/stockroom/stockroom/internal/catalog/products"
)

// ProductLister provides the catalog snapshot the digest scans.
type ProductLister interface {
	List(ctx context.Context) ([]products.ProductDetail, error)
}

// LowStockDigestJob logs a summary of products that need reordering. It is a
// reporting aid; it never mutates stock.
type LowStockDigestJob struct {
	catalog ProductLister
	logger  *slog.Logger
}

// NewLowStockDigestJob constructs the job handler.
func NewLowStockDigestJob(catalog ProductLister, logger *slog.Logger) *LowStockDigestJob {
	return &LowStockDigestJob{catalog: catalog, logger: logger}
}

// Handle processes TaskLowStockDigest tasks.
func (j *LowStockDigestJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload LowStockDigestPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	catalog, err := j.catalog.List(ctx)
	if err != nil {
		return err
	}

	var low, out int
	for _, p := range catalog {
		switch p.Status() {
		case products.StockStatusLow:
			low++
			j.logger.Info("low stock",
				slog.String("sku", p.Sku),
				slog.String("name", p.Name),
				slog.Int("quantity", p.Quantity),
				slog.Int("reorder_level", p.ReorderLevel))
		case products.StockStatusOut:
			out++
			if payload.IncludeOutOfStock {
				j.logger.Info("out of stock",
					slog.String("sku", p.Sku),
					slog.String("name", p.Name))
			}
		}
	}

	j.logger.Info("low stock digest complete",
		slog.Int("low", low),
		slog.Int("out_of_stock", out),
		slog.Int("catalog_size", len(catalog)))
	return nil
}
