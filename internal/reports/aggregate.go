package reports

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stockroom/stockroom/internal/catalog/products"
	"github.com/stockroom/stockroom/internal/catalog/suppliers"
	"github.com/stockroom/stockroom/internal/orders"
)

// LowStock returns the products whose quantity sits in the (0, reorderLevel]
// band. Out-of-stock products are a separate bucket and excluded here.
func LowStock(items []products.Product) []products.Product {
	var low []products.Product
	for _, p := range items {
		if p.Status() == products.StockStatusLow {
			low = append(low, p)
		}
	}
	return low
}

// InventoryValue sums quantity times unit price over the given products.
func InventoryValue(items []products.Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range items {
		total = total.Add(p.StockValue())
	}
	return total
}

// OrderTotals rolls the order book up into sales volume, purchase volume and
// the average order value across both types. The average is zero when the
// book is empty.
func OrderTotals(book []orders.OrderDetail) (sales, purchases, avg decimal.Decimal) {
	sales, purchases = decimal.Zero, decimal.Zero
	for _, o := range book {
		switch o.Type {
		case orders.OrderTypeSales:
			sales = sales.Add(o.TotalAmount)
		case orders.OrderTypePurchase:
			purchases = purchases.Add(o.TotalAmount)
		}
	}
	if len(book) == 0 {
		return sales, purchases, decimal.Zero
	}
	avg = sales.Add(purchases).Div(decimal.NewFromInt(int64(len(book))))
	return sales, purchases, avg
}

// MonthlyTrend buckets order volume into the trailing six calendar months
// ending at now's month. Orders outside the window are ignored; empty months
// still appear with zero totals.
func MonthlyTrend(book []orders.OrderDetail, now time.Time) []MonthBucket {
	type monthKey struct {
		year  int
		month time.Month
	}

	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	buckets := make([]MonthBucket, trendMonths)
	index := make(map[monthKey]int, trendMonths)
	for i := 0; i < trendMonths; i++ {
		m := start.AddDate(0, i-(trendMonths-1), 0)
		buckets[i] = MonthBucket{
			Month:     m.Format("Jan"),
			Sales:     decimal.Zero,
			Purchases: decimal.Zero,
		}
		index[monthKey{m.Year(), m.Month()}] = i
	}

	for _, o := range book {
		d := o.OrderDate.UTC()
		i, ok := index[monthKey{d.Year(), d.Month()}]
		if !ok {
			continue
		}
		switch o.Type {
		case orders.OrderTypeSales:
			buckets[i].Sales = buckets[i].Sales.Add(o.TotalAmount)
		case orders.OrderTypePurchase:
			buckets[i].Purchases = buckets[i].Purchases.Add(o.TotalAmount)
		}
	}
	return buckets
}

// SupplierRollup groups purchase orders by supplier name, sorted by volume
// descending and truncated to limit. Purchases whose supplier is missing or
// since deleted fall under the Unassigned bucket. Sales orders never count.
func SupplierRollup(book []orders.OrderDetail, limit int) []SupplierVolume {
	byName := make(map[string]*SupplierVolume)
	for _, o := range book {
		if o.Type != orders.OrderTypePurchase {
			continue
		}
		name := suppliers.RegionUnassigned
		if o.SupplierName != nil && *o.SupplierName != "" {
			name = *o.SupplierName
		}
		sv, ok := byName[name]
		if !ok {
			sv = &SupplierVolume{Name: name, Volume: decimal.Zero}
			byName[name] = sv
		}
		sv.Orders++
		sv.Volume = sv.Volume.Add(o.TotalAmount)
	}

	rollup := make([]SupplierVolume, 0, len(byName))
	for _, sv := range byName {
		rollup = append(rollup, *sv)
	}
	sort.SliceStable(rollup, func(i, j int) bool {
		if !rollup[i].Volume.Equal(rollup[j].Volume) {
			return rollup[i].Volume.GreaterThan(rollup[j].Volume)
		}
		return rollup[i].Name < rollup[j].Name
	})
	if limit > 0 && len(rollup) > limit {
		rollup = rollup[:limit]
	}
	return rollup
}

// RegionBreakdown counts suppliers per derived region, sorted by count
// descending and truncated to limit.
func RegionBreakdown(list []suppliers.Supplier, limit int) []RegionCount {
	counts := make(map[string]int)
	for _, s := range list {
		counts[s.Region()]++
	}
	breakdown := make([]RegionCount, 0, len(counts))
	for name, n := range counts {
		breakdown = append(breakdown, RegionCount{Name: name, Count: n})
	}
	sort.SliceStable(breakdown, func(i, j int) bool {
		if breakdown[i].Count != breakdown[j].Count {
			return breakdown[i].Count > breakdown[j].Count
		}
		return breakdown[i].Name < breakdown[j].Name
	})
	if limit > 0 && len(breakdown) > limit {
		breakdown = breakdown[:limit]
	}
	return breakdown
}

// Build derives the complete dashboard from one snapshot. The low-stock list
// is ordered by how far below the reorder level each product sits and capped
// for display.
func Build(snap Snapshot, now time.Time) Dashboard {
	low := LowStock(snap.Products)
	sort.SliceStable(low, func(i, j int) bool {
		return low[i].Quantity < low[j].Quantity
	})

	lowValue := InventoryValue(low)
	displayed := low
	if len(displayed) > lowStockListLimit {
		displayed = displayed[:lowStockListLimit]
	}

	sales, purchases, avg := OrderTotals(snap.Orders)

	return Dashboard{
		TotalProducts:    len(snap.Products),
		TotalOrders:      len(snap.Orders),
		TotalSuppliers:   len(snap.Suppliers),
		LowStockProducts: displayed,
		InventoryValue:   InventoryValue(snap.Products),
		LowStockValue:    lowValue,
		SalesValue:       sales,
		PurchaseValue:    purchases,
		AvgOrderValue:    avg,
		MonthlyTrend:     MonthlyTrend(snap.Orders, now),
		SupplierRollup:   SupplierRollup(snap.Orders, dashboardSupplierLimit),
		RegionBreakdown:  RegionBreakdown(snap.Suppliers, regionBreakdownLimit),
	}
}
