package products

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry with an on-hand quantity. SKUs are stored
// upper-case so uniqueness is case-insensitive.
type Product struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Sku          string          `json:"sku"`
	CategoryID   uuid.UUID       `json:"categoryId"`
	SupplierID   *uuid.UUID      `json:"supplierId,omitempty"`
	Quantity     int             `json:"quantity"`
	ReorderLevel int             `json:"reorderLevel"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// StockStatus classifies on-hand quantity against the reorder level.
type StockStatus string

const (
	StockStatusOut     StockStatus = "OutOfStock"
	StockStatusLow     StockStatus = "LowStock"
	StockStatusHealthy StockStatus = "Healthy"
)

// Status returns the stock classification. A product sitting exactly at its
// reorder level counts as low stock; zero quantity is out of stock, never low.
func (p Product) Status() StockStatus {
	switch {
	case p.Quantity == 0:
		return StockStatusOut
	case p.Quantity > 0 && p.Quantity <= p.ReorderLevel:
		return StockStatusLow
	default:
		return StockStatusHealthy
	}
}

// StockValue is quantity times unit price.
func (p Product) StockValue() decimal.Decimal {
	return p.UnitPrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// ProductDetail is the hydrated read model with category and supplier names
// resolved for display.
type ProductDetail struct {
	Product
	CategoryName string  `json:"categoryName"`
	SupplierName *string `json:"supplierName,omitempty"`
}
