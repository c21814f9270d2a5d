package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockroom/stockroom/internal/inventory"
)

// OrderType distinguishes stock-decrementing sales from stock-incrementing
// purchases. A sales order carries a customer name, a purchase order a
// supplier reference; the request validator enforces the pairing.
type OrderType string

const (
	OrderTypeSales    OrderType = "Sales"
	OrderTypePurchase OrderType = "Purchase"
)

// Order is created only through the workflow and deleted only through the
// reversal workflow; it is never updated in place. TotalAmount is derived at
// creation time and never recomputed.
type Order struct {
	ID           uuid.UUID       `json:"id"`
	OrderNumber  string          `json:"orderNumber"`
	OrderDate    time.Time       `json:"orderDate"`
	Type         OrderType       `json:"type"`
	SupplierID   *uuid.UUID      `json:"supplierId,omitempty"`
	CustomerName *string         `json:"customerName,omitempty"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	Items        []OrderItem     `json:"items"`
}

// OrderItem snapshots quantity and unit price at order time, independent of
// later catalog price changes.
type OrderItem struct {
	ID        uuid.UUID       `json:"id"`
	OrderID   uuid.UUID       `json:"orderId"`
	ProductID uuid.UUID       `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// LineTotal is quantity times the snapshotted unit price.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Deltas returns the stock adjustments this order applied at creation:
// +quantity per item for purchases, -quantity for sales.
func (o Order) Deltas() []inventory.Delta {
	deltas := make([]inventory.Delta, len(o.Items))
	for idx, item := range o.Items {
		qty := item.Quantity
		if o.Type == OrderTypeSales {
			qty = -qty
		}
		deltas[idx] = inventory.Delta{ProductID: item.ProductID, Quantity: qty}
	}
	return deltas
}

// OrderDetail is the hydrated read model with supplier and product names
// resolved for display.
type OrderDetail struct {
	ID           uuid.UUID         `json:"id"`
	OrderNumber  string            `json:"orderNumber"`
	OrderDate    time.Time         `json:"orderDate"`
	Type         OrderType         `json:"type"`
	SupplierID   *uuid.UUID        `json:"supplierId,omitempty"`
	SupplierName *string           `json:"supplierName,omitempty"`
	CustomerName *string           `json:"customerName,omitempty"`
	TotalAmount  decimal.Decimal   `json:"totalAmount"`
	Items        []OrderItemDetail `json:"items"`
}

// OrderItemDetail is an order line with its product name resolved; the name
// is empty when the product has since been deleted.
type OrderItemDetail struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
}
