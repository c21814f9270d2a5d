package reports

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/stockroom/stockroom/internal/catalog/products"
	"github.com/stockroom/stockroom/internal/catalog/suppliers"
	"github.com/stockroom/stockroom/internal/orders"
)

// ProductSource lists the catalog for snapshotting.
type ProductSource interface {
	List(ctx context.Context) ([]products.ProductDetail, error)
}

// OrderSource lists the hydrated order book.
type OrderSource interface {
	List(ctx context.Context) ([]orders.OrderDetail, error)
}

// SupplierSource lists suppliers.
type SupplierSource interface {
	List(ctx context.Context) ([]suppliers.Supplier, error)
}

// Service assembles the dashboard from the catalog and order services,
// short-circuiting concurrent builds and caching the result.
type Service struct {
	products  ProductSource
	orders    OrderSource
	suppliers SupplierSource
	cache     *Cache
	group     singleflight.Group
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(products ProductSource, orders OrderSource, suppliers SupplierSource, cache *Cache, logger *slog.Logger) *Service {
	return &Service{
		products:  products,
		orders:    orders,
		suppliers: suppliers,
		cache:     cache,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Dashboard returns the cached dashboard, rebuilding it at most once across
// concurrent callers when the cache is cold.
func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	result := s.group.DoChan(dashboardCacheKey, func() (interface{}, error) {
		var dash Dashboard
		err := s.cache.FetchJSON(context.WithoutCancel(ctx), dashboardCacheKey, &dash, func(ctx context.Context) (interface{}, error) {
			return s.build(ctx)
		})
		return dash, err
	})
	select {
	case <-ctx.Done():
		return Dashboard{}, ctx.Err()
	case res := <-result:
		if res.Err != nil {
			return Dashboard{}, res.Err
		}
		return res.Val.(Dashboard), nil
	}
}

// Invalidate drops the cached dashboard after a stock-changing mutation.
func (s *Service) Invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("dashboard cache invalidation failed", slog.Any("error", err))
	}
}

func (s *Service) build(ctx context.Context) (Dashboard, error) {
	catalog, err := s.products.List(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("reports: load products: %w", err)
	}
	book, err := s.orders.List(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("reports: load orders: %w", err)
	}
	vendors, err := s.suppliers.List(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("reports: load suppliers: %w", err)
	}

	snap := Snapshot{
		Products:  make([]products.Product, len(catalog)),
		Orders:    book,
		Suppliers: vendors,
	}
	for i, d := range catalog {
		snap.Products[i] = d.Product
	}
	return Build(snap, s.now()), nil
}
