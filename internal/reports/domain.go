// Package reports computes the dashboard aggregates from an in-memory
// snapshot of the catalog and order book. All aggregation is pure; the
// service layer only adds caching.
package reports

import (
	"github.com/shopspring/decimal"

	"github.com/stockroom/stockroom/internal/catalog/products"
	"github.com/stockroom/stockroom/internal/catalog/suppliers"
	"github.com/stockroom/stockroom/internal/orders"
)

// Snapshot is the raw material every aggregate is derived from.
type Snapshot struct {
	Products  []products.Product
	Orders    []orders.OrderDetail
	Suppliers []suppliers.Supplier
}

// MonthBucket accumulates sales and purchase volume for one calendar month.
type MonthBucket struct {
	Month     string          `json:"month"`
	Sales     decimal.Decimal `json:"sales"`
	Purchases decimal.Decimal `json:"purchases"`
}

// SupplierVolume summarises purchase volume for one supplier.
type SupplierVolume struct {
	Name   string          `json:"name"`
	Orders int             `json:"orders"`
	Volume decimal.Decimal `json:"volume"`
}

// RegionCount counts suppliers per derived region.
type RegionCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Dashboard is the full aggregate set the dashboard view consumes.
type Dashboard struct {
	TotalProducts    int                `json:"totalProducts"`
	TotalOrders      int                `json:"totalOrders"`
	TotalSuppliers   int                `json:"totalSuppliers"`
	LowStockProducts []products.Product `json:"lowStockProducts"`
	InventoryValue   decimal.Decimal    `json:"inventoryValue"`
	LowStockValue    decimal.Decimal    `json:"lowStockValue"`
	SalesValue       decimal.Decimal    `json:"salesValue"`
	PurchaseValue    decimal.Decimal    `json:"purchaseValue"`
	AvgOrderValue    decimal.Decimal    `json:"avgOrderValue"`
	MonthlyTrend     []MonthBucket      `json:"monthlyTrend"`
	SupplierRollup   []SupplierVolume   `json:"supplierRollup"`
	RegionBreakdown  []RegionCount      `json:"regionBreakdown"`
}

// Truncation sizes for the two supplier views.
const (
	dashboardSupplierLimit = 4
	regionBreakdownLimit   = 5
	lowStockListLimit      = 5
	trendMonths            = 6
)
