package products

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductForm is the request body for create and update.
type ProductForm struct {
	Name         string          `json:"name" validate:"required,max=150"`
	Sku          string          `json:"sku" validate:"required,max=50"`
	CategoryID   uuid.UUID       `json:"categoryId" validate:"required"`
	SupplierID   *uuid.UUID      `json:"supplierId,omitempty"`
	Quantity     int             `json:"quantity" validate:"gte=0"`
	ReorderLevel int             `json:"reorderLevel" validate:"gte=0"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
}
