package reports

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/stockroom/stockroom/internal/catalog/products"
	"github.com/stockroom/stockroom/internal/catalog/suppliers"
	"github.com/stockroom/stockroom/internal/orders"
)

type fakeSources struct {
	products  []products.ProductDetail
	orders    []orders.OrderDetail
	suppliers []suppliers.Supplier
	listCalls int
}

func (f *fakeSources) List(ctx context.Context) ([]products.ProductDetail, error) {
	f.listCalls++
	return f.products, nil
}

type fakeOrderSource struct{ book []orders.OrderDetail }

func (f *fakeOrderSource) List(ctx context.Context) ([]orders.OrderDetail, error) {
	return f.book, nil
}

type fakeSupplierSource struct{ list []suppliers.Supplier }

func (f *fakeSupplierSource) List(ctx context.Context) ([]suppliers.Supplier, error) {
	return f.list, nil
}

func newTestService(t *testing.T) (*Service, *fakeSources) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	src := &fakeSources{
		products: []products.ProductDetail{
			{Product: products.Product{Name: "paper", Quantity: 120, ReorderLevel: 30, UnitPrice: decimal.RequireFromString("4.50")}},
		},
		orders: []orders.OrderDetail{
			{Type: orders.OrderTypeSales, TotalAmount: decimal.NewFromInt(90), OrderDate: time.Now().UTC()},
		},
		suppliers: []suppliers.Supplier{{Name: "Acme"}},
	}
	svc := NewService(src, &fakeOrderSource{book: src.orders}, &fakeSupplierSource{list: src.suppliers}, NewCache(client, time.Minute), slog.Default())
	return svc, src
}

func TestDashboardCachesBetweenCalls(t *testing.T) {
	svc, src := newTestService(t)
	ctx := context.Background()

	first, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, first.TotalProducts)
	require.Equal(t, 1, src.listCalls)

	second, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	require.Equal(t, first.TotalOrders, second.TotalOrders)
	require.Equal(t, 1, src.listCalls)
}

func TestDashboardInvalidateForcesRebuild(t *testing.T) {
	svc, src := newTestService(t)
	ctx := context.Background()

	_, err := svc.Dashboard(ctx)
	require.NoError(t, err)

	src.products = append(src.products, products.ProductDetail{
		Product: products.Product{Name: "toner", Quantity: 2, ReorderLevel: 5, UnitPrice: decimal.RequireFromString("39.99")},
	})
	svc.Invalidate(ctx)

	dash, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, dash.TotalProducts)
	require.Equal(t, 2, src.listCalls)
	require.Len(t, dash.LowStockProducts, 1)
	require.Equal(t, "toner", dash.LowStockProducts[0].Name)
}
