package orders

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/stockroom/stockroom/internal/catalog/products"
	"github.com/stockroom/stockroom/internal/catalog/suppliers"
	"github.com/stockroom/stockroom/internal/inventory"
	"github.com/stockroom/stockroom/internal/platform/httpx"
	"github.com/stockroom/stockroom/internal/shared"
)

type memoryOrderRepo struct {
	orders map[uuid.UUID]Order
}

func newMemoryOrderRepo() *memoryOrderRepo {
	return &memoryOrderRepo{orders: make(map[uuid.UUID]Order)}
}

func (r *memoryOrderRepo) List(ctx context.Context) ([]Order, error) {
	all := make([]Order, 0, len(r.orders))
	for _, o := range r.orders {
		all = append(all, o)
	}
	return all, nil
}

func (r *memoryOrderRepo) Get(ctx context.Context, id uuid.UUID) (Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return Order{}, httpx.ErrNotFound
	}
	return o, nil
}

func (r *memoryOrderRepo) Create(ctx context.Context, order Order) error {
	r.orders[order.ID] = order
	return nil
}

func (r *memoryOrderRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	if _, ok := r.orders[id]; !ok {
		return 0, nil
	}
	delete(r.orders, id)
	return 1, nil
}

// memoryStock backs both the product lookups and the increment store, the
// way the production wiring shares the products table.
type memoryStock struct {
	products   map[uuid.UUID]*products.Product
	increments int
	failAfter  int // fail the Nth increment when > 0
}

func newMemoryStock(items ...*products.Product) *memoryStock {
	m := &memoryStock{products: make(map[uuid.UUID]*products.Product)}
	for _, p := range items {
		m.products[p.ID] = p
	}
	return m
}

func (m *memoryStock) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]products.Product, error) {
	var found []products.Product
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			found = append(found, *p)
		}
	}
	return found, nil
}

func (m *memoryStock) Increment(ctx context.Context, productID uuid.UUID, delta int) (int64, error) {
	m.increments++
	if m.failAfter > 0 && m.increments >= m.failAfter {
		return 0, errors.New("store unavailable")
	}
	p, ok := m.products[productID]
	if !ok {
		return 0, nil
	}
	p.Quantity += delta
	return 1, nil
}

type memorySuppliers struct {
	suppliers map[uuid.UUID]suppliers.Supplier
}

func (m *memorySuppliers) Get(ctx context.Context, id uuid.UUID) (suppliers.Supplier, error) {
	s, ok := m.suppliers[id]
	if !ok {
		return suppliers.Supplier{}, httpx.ErrNotFound
	}
	return s, nil
}

type memoryAudit struct {
	records []shared.AuditLog
}

func (m *memoryAudit) Record(ctx context.Context, log shared.AuditLog) error {
	m.records = append(m.records, log)
	return nil
}

func testProduct(name string, qty int, price string) *products.Product {
	return &products.Product{
		ID:        uuid.New(),
		Name:      name,
		Sku:       "SKU-" + name,
		Quantity:  qty,
		UnitPrice: decimal.RequireFromString(price),
	}
}

func newTestService(stock *memoryStock, vendors *memorySuppliers) (*Service, *memoryOrderRepo, *memoryAudit) {
	repo := newMemoryOrderRepo()
	audit := &memoryAudit{}
	if vendors == nil {
		vendors = &memorySuppliers{suppliers: map[uuid.UUID]suppliers.Supplier{}}
	}
	engine := inventory.NewEngine(stock, slog.Default())
	svc := NewService(repo, stock, vendors, engine, audit, slog.Default())
	return svc, repo, audit
}

func purchaseRequest(supplierID uuid.UUID, items ...OrderItemRequest) CreateOrderRequest {
	return CreateOrderRequest{Type: OrderTypePurchase, SupplierID: &supplierID, Items: items}
}

func salesRequest(customer string, items ...OrderItemRequest) CreateOrderRequest {
	return CreateOrderRequest{Type: OrderTypeSales, CustomerName: &customer, Items: items}
}

func TestCreatePurchaseOrderIncrementsStock(t *testing.T) {
	paper := testProduct("paper", 10, "2.00")
	mouse := testProduct("mouse", 20, "2.00")
	stock := newMemoryStock(paper, mouse)
	supplierID := uuid.New()
	vendors := &memorySuppliers{suppliers: map[uuid.UUID]suppliers.Supplier{
		supplierID: {ID: supplierID, Name: "Acme"},
	}}
	svc, repo, audit := newTestService(stock, vendors)

	detail, err := svc.Create(context.Background(), purchaseRequest(supplierID,
		OrderItemRequest{ProductID: paper.ID, Quantity: 10, UnitPrice: decimal.RequireFromString("2.00")},
		OrderItemRequest{ProductID: mouse.ID, Quantity: 20, UnitPrice: decimal.RequireFromString("1.00")},
	))
	require.NoError(t, err)

	require.Equal(t, 20, stock.products[paper.ID].Quantity)
	require.Equal(t, 40, stock.products[mouse.ID].Quantity)
	require.True(t, detail.TotalAmount.Equal(decimal.RequireFromString("40.00")), detail.TotalAmount.String())
	require.Regexp(t, regexp.MustCompile(`^PO-\d{14}$`), detail.OrderNumber)
	require.NotNil(t, detail.SupplierName)
	require.Equal(t, "Acme", *detail.SupplierName)
	require.Len(t, repo.orders, 1)
	require.Len(t, audit.records, 1)
	require.Equal(t, "order:create", audit.records[0].Action)
}

func TestCreateSalesOrderDecrementsStock(t *testing.T) {
	paper := testProduct("paper", 10, "4.50")
	stock := newMemoryStock(paper)
	svc, _, _ := newTestService(stock, nil)

	detail, err := svc.Create(context.Background(), salesRequest("Dana",
		OrderItemRequest{ProductID: paper.ID, Quantity: 4, UnitPrice: decimal.RequireFromString("4.50")},
	))
	require.NoError(t, err)

	require.Equal(t, 6, stock.products[paper.ID].Quantity)
	require.True(t, detail.TotalAmount.Equal(decimal.RequireFromString("18.00")))
	require.Regexp(t, regexp.MustCompile(`^SO-\d{14}$`), detail.OrderNumber)
	require.Equal(t, "paper", detail.Items[0].ProductName)
}

func TestCreateSalesOrderExactQuantity(t *testing.T) {
	paper := testProduct("paper", 5, "1.00")
	stock := newMemoryStock(paper)
	svc, _, _ := newTestService(stock, nil)

	_, err := svc.Create(context.Background(), salesRequest("Dana",
		OrderItemRequest{ProductID: paper.ID, Quantity: 5, UnitPrice: decimal.RequireFromString("1.00")},
	))
	require.NoError(t, err)
	require.Equal(t, 0, stock.products[paper.ID].Quantity)
}

func TestCreateSalesOrderInsufficientStock(t *testing.T) {
	paper := testProduct("P", 5, "1.00")
	stock := newMemoryStock(paper)
	svc, repo, audit := newTestService(stock, nil)

	_, err := svc.Create(context.Background(), salesRequest("Dana",
		OrderItemRequest{ProductID: paper.ID, Quantity: 6, UnitPrice: decimal.RequireFromString("1.00")},
	))
	require.ErrorIs(t, err, httpx.ErrValidation)
	require.Contains(t, err.Error(), "Insufficient stock for P")

	require.Equal(t, 5, stock.products[paper.ID].Quantity)
	require.Empty(t, repo.orders)
	require.Empty(t, audit.records)
}

func TestCreateSalesOrderFirstShortageWins(t *testing.T) {
	short := testProduct("first short", 1, "1.00")
	alsoShort := testProduct("second short", 1, "1.00")
	stock := newMemoryStock(short, alsoShort)
	svc, _, _ := newTestService(stock, nil)

	_, err := svc.Create(context.Background(), salesRequest("Dana",
		OrderItemRequest{ProductID: short.ID, Quantity: 2, UnitPrice: decimal.RequireFromString("1.00")},
		OrderItemRequest{ProductID: alsoShort.ID, Quantity: 2, UnitPrice: decimal.RequireFromString("1.00")},
	))
	require.Error(t, err)
	require.Contains(t, err.Error(), "first short")
	require.NotContains(t, err.Error(), "second short")
}

func TestCreateRejectsUnknownProduct(t *testing.T) {
	paper := testProduct("paper", 5, "1.00")
	stock := newMemoryStock(paper)
	svc, repo, _ := newTestService(stock, nil)

	_, err := svc.Create(context.Background(), salesRequest("Dana",
		OrderItemRequest{ProductID: paper.ID, Quantity: 1, UnitPrice: decimal.RequireFromString("1.00")},
		OrderItemRequest{ProductID: uuid.New(), Quantity: 1, UnitPrice: decimal.RequireFromString("1.00")},
	))
	require.ErrorIs(t, err, httpx.ErrValidation)
	require.Contains(t, err.Error(), "one or more products not found")
	require.Equal(t, 5, stock.products[paper.ID].Quantity)
	require.Empty(t, repo.orders)
}

func TestCreateRejectsEmptyItems(t *testing.T) {
	svc, _, _ := newTestService(newMemoryStock(), nil)
	_, err := svc.Create(context.Background(), salesRequest("Dana"))
	require.ErrorIs(t, err, httpx.ErrValidation)
}

// Duplicate lines for the same product are resolved once and each checked
// against the same quantity snapshot. Both lines pass individually even when
// their sum exceeds stock; the adjustments then drive the quantity negative.
func TestCreateSalesOrderDuplicateLinesShareSnapshot(t *testing.T) {
	paper := testProduct("paper", 5, "1.00")
	stock := newMemoryStock(paper)
	svc, _, _ := newTestService(stock, nil)

	detail, err := svc.Create(context.Background(), salesRequest("Dana",
		OrderItemRequest{ProductID: paper.ID, Quantity: 3, UnitPrice: decimal.RequireFromString("1.00")},
		OrderItemRequest{ProductID: paper.ID, Quantity: 3, UnitPrice: decimal.RequireFromString("1.00")},
	))
	require.NoError(t, err)
	require.Len(t, detail.Items, 2)
	require.Equal(t, -1, stock.products[paper.ID].Quantity)
}

func TestDeletePurchaseOrderReversesStock(t *testing.T) {
	paper := testProduct("paper", 10, "2.00")
	stock := newMemoryStock(paper)
	supplierID := uuid.New()
	vendors := &memorySuppliers{suppliers: map[uuid.UUID]suppliers.Supplier{
		supplierID: {ID: supplierID, Name: "Acme"},
	}}
	svc, repo, audit := newTestService(stock, vendors)

	detail, err := svc.Create(context.Background(), purchaseRequest(supplierID,
		OrderItemRequest{ProductID: paper.ID, Quantity: 15, UnitPrice: decimal.RequireFromString("2.00")},
	))
	require.NoError(t, err)
	require.Equal(t, 25, stock.products[paper.ID].Quantity)

	require.NoError(t, svc.Delete(context.Background(), detail.ID))
	require.Equal(t, 10, stock.products[paper.ID].Quantity)
	require.Empty(t, repo.orders)
	require.Equal(t, "order:delete", audit.records[len(audit.records)-1].Action)
}

func TestDeleteSalesOrderRestoresStock(t *testing.T) {
	paper := testProduct("paper", 10, "2.00")
	stock := newMemoryStock(paper)
	svc, _, _ := newTestService(stock, nil)

	detail, err := svc.Create(context.Background(), salesRequest("Dana",
		OrderItemRequest{ProductID: paper.ID, Quantity: 7, UnitPrice: decimal.RequireFromString("2.00")},
	))
	require.NoError(t, err)
	require.Equal(t, 3, stock.products[paper.ID].Quantity)

	require.NoError(t, svc.Delete(context.Background(), detail.ID))
	require.Equal(t, 10, stock.products[paper.ID].Quantity)
}

func TestDeleteSkipsMissingProducts(t *testing.T) {
	paper := testProduct("paper", 10, "2.00")
	stock := newMemoryStock(paper)
	svc, repo, _ := newTestService(stock, nil)

	detail, err := svc.Create(context.Background(), salesRequest("Dana",
		OrderItemRequest{ProductID: paper.ID, Quantity: 2, UnitPrice: decimal.RequireFromString("2.00")},
	))
	require.NoError(t, err)

	delete(stock.products, paper.ID)
	require.NoError(t, svc.Delete(context.Background(), detail.ID))
	require.Empty(t, repo.orders)
}

func TestDeleteUnknownOrder(t *testing.T) {
	svc, _, _ := newTestService(newMemoryStock(), nil)
	err := svc.Delete(context.Background(), uuid.New())
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

// A store failure partway through a batch leaves the earlier increments
// applied and the order unpersisted.
func TestCreatePartialAdjustmentFailure(t *testing.T) {
	a := testProduct("a", 10, "1.00")
	b := testProduct("b", 10, "1.00")
	stock := newMemoryStock(a, b)
	stock.failAfter = 2
	svc, repo, _ := newTestService(stock, nil)

	_, err := svc.Create(context.Background(), salesRequest("Dana",
		OrderItemRequest{ProductID: a.ID, Quantity: 5, UnitPrice: decimal.RequireFromString("1.00")},
		OrderItemRequest{ProductID: b.ID, Quantity: 5, UnitPrice: decimal.RequireFromString("1.00")},
	))
	require.Error(t, err)
	require.Empty(t, repo.orders)

	applied := stock.products[a.ID].Quantity + stock.products[b.ID].Quantity
	require.Equal(t, 15, applied, "first delta applied, second not")
}

func TestListHydratesNames(t *testing.T) {
	paper := testProduct("paper", 50, "2.00")
	stock := newMemoryStock(paper)
	supplierID := uuid.New()
	vendors := &memorySuppliers{suppliers: map[uuid.UUID]suppliers.Supplier{
		supplierID: {ID: supplierID, Name: "Acme"},
	}}
	svc, _, _ := newTestService(stock, vendors)

	_, err := svc.Create(context.Background(), purchaseRequest(supplierID,
		OrderItemRequest{ProductID: paper.ID, Quantity: 5, UnitPrice: decimal.RequireFromString("2.00")},
	))
	require.NoError(t, err)

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, "paper", all[0].Items[0].ProductName)
	require.NotNil(t, all[0].SupplierName)
}

// Hydration leaves the product name empty once the product is gone, instead
// of failing the read.
func TestHydrationToleratesDeletedProduct(t *testing.T) {
	paper := testProduct("paper", 50, "2.00")
	stock := newMemoryStock(paper)
	svc, _, _ := newTestService(stock, nil)

	detail, err := svc.Create(context.Background(), salesRequest("Dana",
		OrderItemRequest{ProductID: paper.ID, Quantity: 5, UnitPrice: decimal.RequireFromString("2.00")},
	))
	require.NoError(t, err)

	delete(stock.products, paper.ID)
	got, err := svc.Get(context.Background(), detail.ID)
	require.NoError(t, err)
	require.Empty(t, got.Items[0].ProductName)
}

func TestOrderNumberPrefixFollowsType(t *testing.T) {
	for _, tc := range []struct {
		orderType OrderType
		prefix    string
	}{
		{OrderTypeSales, "SO"},
		{OrderTypePurchase, "PO"},
	} {
		paper := testProduct(fmt.Sprintf("p-%s", tc.prefix), 100, "1.00")
		stock := newMemoryStock(paper)
		supplierID := uuid.New()
		vendors := &memorySuppliers{suppliers: map[uuid.UUID]suppliers.Supplier{
			supplierID: {ID: supplierID, Name: "Acme"},
		}}
		svc, _, _ := newTestService(stock, vendors)

		req := CreateOrderRequest{
			Type:  tc.orderType,
			Items: []OrderItemRequest{{ProductID: paper.ID, Quantity: 1, UnitPrice: decimal.RequireFromString("1.00")}},
		}
		if tc.orderType == OrderTypePurchase {
			req.SupplierID = &supplierID
		} else {
			customer := "Dana"
			req.CustomerName = &customer
		}

		detail, err := svc.Create(context.Background(), req)
		require.NoError(t, err)
		require.Regexp(t, regexp.MustCompile(`^`+tc.prefix+`-\d{14}$`), detail.OrderNumber)
	}
}
