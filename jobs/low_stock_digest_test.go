package jobs

import (
	"context"
	"log/slog"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"

	"github.com/stockroom/stockroom/internal/catalog/products"
)

type fakeLister struct {
	catalog []products.ProductDetail
}

func (f *fakeLister) List(ctx context.Context) ([]products.ProductDetail, error) {
	return f.catalog, nil
}

func detail(name string, quantity, reorder int) products.ProductDetail {
	return products.ProductDetail{Product: products.Product{
		Name:         name,
		Sku:          name,
		Quantity:     quantity,
		ReorderLevel: reorder,
	}}
}

func TestDigestHandlesCatalog(t *testing.T) {
	lister := &fakeLister{catalog: []products.ProductDetail{
		detail("paper", 2, 10),
		detail("chairs", 0, 5),
		detail("mice", 50, 10),
	}}
	job := NewLowStockDigestJob(lister, slog.Default())

	task, err := NewLowStockDigestTask(LowStockDigestPayload{IncludeOutOfStock: true})
	require.NoError(t, err)
	require.NoError(t, job.Handle(context.Background(), task))
}

func TestDigestSkipsRetryOnBadPayload(t *testing.T) {
	job := NewLowStockDigestJob(&fakeLister{}, slog.Default())

	task := asynq.NewTask(TaskLowStockDigest, []byte("{not json"))
	err := job.Handle(context.Background(), task)
	require.ErrorIs(t, err, asynq.SkipRetry)
}
