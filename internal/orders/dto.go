package orders

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest is the request body for order creation. The tagged
// variant rule lives in the validate tags: purchases need a supplier, sales a
// customer name.
type CreateOrderRequest struct {
	Type         OrderType          `json:"type" validate:"required,oneof=Sales Purchase"`
	SupplierID   *uuid.UUID         `json:"supplierId,omitempty" validate:"required_if=Type Purchase"`
	CustomerName *string            `json:"customerName,omitempty" validate:"required_if=Type Sales"`
	Items        []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// OrderItemRequest carries the quantity and the unit price to snapshot; the
// price is taken as supplied, not re-read from the catalog.
type OrderItemRequest struct {
	ProductID uuid.UUID       `json:"productId" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}
