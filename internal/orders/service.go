package orders

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockroom/stockroom/internal/catalog/products"
	"github.com/stockroom/stockroom/internal/catalog/suppliers"
	"github.com/stockroom/stockroom/internal/inventory"
	"github.com/stockroom/stockroom/internal/platform/httpx"
	"github.com/stockroom/stockroom/internal/shared"
)

// ProductStore resolves the products referenced by order lines.
type ProductStore interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]products.Product, error)
}

// SupplierStore resolves supplier names for display.
type SupplierStore interface {
	Get(ctx context.Context, id uuid.UUID) (suppliers.Supplier, error)
}

// StockObserver is notified after any stock-changing workflow step so
// derived views can drop stale caches.
type StockObserver interface {
	Invalidate(ctx context.Context)
}

// Service coordinates the order workflow: validation, stock adjustment,
// persistence and hydration. Orders are immutable once created; the only
// mutations are creation and reversal-then-delete.
type Service struct {
	repo      Repository
	products  ProductStore
	suppliers SupplierStore
	engine    *inventory.Engine
	audit     shared.AuditRecorder
	observer  StockObserver
	logger    *slog.Logger
}

// NewService constructs a Service. audit may be nil.
func NewService(repo Repository, productStore ProductStore, supplierStore SupplierStore, engine *inventory.Engine, audit shared.AuditRecorder, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		products:  productStore,
		suppliers: supplierStore,
		engine:    engine,
		audit:     audit,
		logger:    logger,
	}
}

// SetObserver registers the cache invalidation hook. Wired after
// construction because the observer reads back through this service.
func (s *Service) SetObserver(obs StockObserver) {
	s.observer = obs
}

// Create validates the request, adjusts stock and persists the order. The
// stock check and the adjustments are not wrapped in a shared transaction;
// two concurrent sales orders can both pass the check against a stale read.
// That race is accepted, documented behavior.
func (s *Service) Create(ctx context.Context, req CreateOrderRequest) (OrderDetail, error) {
	if len(req.Items) == 0 {
		return OrderDetail{}, fmt.Errorf("%w: order requires at least one item", httpx.ErrValidation)
	}

	byID, err := s.resolveProducts(ctx, req.Items)
	if err != nil {
		return OrderDetail{}, err
	}

	if req.Type == OrderTypeSales {
		// First offending item in request order decides the message.
		for _, item := range req.Items {
			product := byID[item.ProductID]
			if product.Quantity < item.Quantity {
				return OrderDetail{}, fmt.Errorf("%w: Insufficient stock for %s", httpx.ErrValidation, product.Name)
			}
		}
	}

	now := time.Now().UTC()
	order := Order{
		ID:           uuid.New(),
		OrderNumber:  generateOrderNumber(req.Type, now),
		OrderDate:    now,
		Type:         req.Type,
		SupplierID:   req.SupplierID,
		CustomerName: req.CustomerName,
	}
	total := decimal.Zero
	for _, item := range req.Items {
		line := OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
		order.Items = append(order.Items, line)
		total = total.Add(line.LineTotal())
	}
	order.TotalAmount = total

	if err := s.engine.Apply(ctx, order.Deltas()); err != nil {
		return OrderDetail{}, err
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return OrderDetail{}, fmt.Errorf("create order: %w", err)
	}

	s.record(ctx, "order:create", order)
	if s.observer != nil {
		s.observer.Invalidate(ctx)
	}
	return s.Get(ctx, order.ID)
}

// Delete reverses the stock adjustments applied at creation and removes the
// order. Line items whose product has since been deleted are skipped
// silently; no compensating record is written.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	order, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			return fmt.Errorf("%w: order not found", httpx.ErrNotFound)
		}
		return fmt.Errorf("get order: %w", err)
	}

	if err := s.engine.Apply(ctx, inventory.Invert(order.Deltas())); err != nil {
		return err
	}
	if _, err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}

	s.record(ctx, "order:delete", order)
	if s.observer != nil {
		s.observer.Invalidate(ctx)
	}
	return nil
}

// Get returns one order hydrated with supplier and product names.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (OrderDetail, error) {
	order, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			return OrderDetail{}, fmt.Errorf("%w: order not found", httpx.ErrNotFound)
		}
		return OrderDetail{}, fmt.Errorf("get order: %w", err)
	}
	details, err := s.hydrate(ctx, []Order{order})
	if err != nil {
		return OrderDetail{}, err
	}
	return details[0], nil
}

// List returns all orders, newest first, hydrated for display.
func (s *Service) List(ctx context.Context) ([]OrderDetail, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return s.hydrate(ctx, all)
}

// resolveProducts fetches every referenced product in one query and reports
// missing ones in aggregate, as a set.
func (s *Service) resolveProducts(ctx context.Context, items []OrderItemRequest) (map[uuid.UUID]products.Product, error) {
	seen := make(map[uuid.UUID]struct{}, len(items))
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}

	found, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve products: %w", err)
	}
	if len(found) != len(ids) {
		return nil, fmt.Errorf("%w: one or more products not found", httpx.ErrValidation)
	}

	byID := make(map[uuid.UUID]products.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	return byID, nil
}

func (s *Service) hydrate(ctx context.Context, all []Order) ([]OrderDetail, error) {
	productIDs := make(map[uuid.UUID]struct{})
	for _, o := range all {
		for _, item := range o.Items {
			productIDs[item.ProductID] = struct{}{}
		}
	}
	ids := make([]uuid.UUID, 0, len(productIDs))
	for id := range productIDs {
		ids = append(ids, id)
	}
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) > 0 {
		found, err := s.products.GetByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("resolve product names: %w", err)
		}
		for _, p := range found {
			names[p.ID] = p.Name
		}
	}

	supplierNames := make(map[uuid.UUID]*string)
	details := make([]OrderDetail, 0, len(all))
	for _, o := range all {
		detail := OrderDetail{
			ID:           o.ID,
			OrderNumber:  o.OrderNumber,
			OrderDate:    o.OrderDate,
			Type:         o.Type,
			SupplierID:   o.SupplierID,
			CustomerName: o.CustomerName,
			TotalAmount:  o.TotalAmount,
		}
		if o.SupplierID != nil {
			name, ok := supplierNames[*o.SupplierID]
			if !ok {
				if supplier, err := s.suppliers.Get(ctx, *o.SupplierID); err == nil {
					name = &supplier.Name
				}
				supplierNames[*o.SupplierID] = name
			}
			detail.SupplierName = name
		}
		for _, item := range o.Items {
			detail.Items = append(detail.Items, OrderItemDetail{
				ID:          item.ID,
				ProductID:   item.ProductID,
				ProductName: names[item.ProductID],
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
				LineTotal:   item.LineTotal(),
			})
		}
		details = append(details, detail)
	}
	return details, nil
}

func (s *Service) record(ctx context.Context, action string, order Order) {
	if s.audit == nil {
		return
	}
	identity, _ := shared.IdentityFromContext(ctx)
	err := s.audit.Record(ctx, shared.AuditLog{
		ActorID:  identity.UserID,
		Action:   action,
		Entity:   "order",
		EntityID: order.ID.String(),
		Meta: map[string]any{
			"order_number": order.OrderNumber,
			"type":         string(order.Type),
			"total_amount": order.TotalAmount.String(),
			"items":        len(order.Items),
		},
	})
	if err != nil && s.logger != nil {
		s.logger.Warn("audit record failed", slog.Any("error", err))
	}
}

// generateOrderNumber builds the user-facing order reference: PO or SO plus a
// UTC second-resolution timestamp. Two orders of the same type in the same
// second share a number; the format is an external contract the UI relies
// on, so it stays as-is.
func generateOrderNumber(orderType OrderType, now time.Time) string {
	prefix := "SO"
	if orderType == OrderTypePurchase {
		prefix = "PO"
	}
	return fmt.Sprintf("%s-%s", prefix, now.Format("20060102150405"))
}
