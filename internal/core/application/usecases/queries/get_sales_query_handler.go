package queries

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"gorm.io/gorm"
)

// unassignedRep groups orders that have no sales rep assigned.
const unassignedRep = "UNASSIGNED"

// GetSalesQueryHandler computes the sales report from orders and their active
// items.
type GetSalesQueryHandler struct {
	db *gorm.DB
}

// NewGetSalesQueryHandler creates a handler for sales queries.
func NewGetSalesQueryHandler(db *gorm.DB) GetSalesQueryHandler {
	return GetSalesQueryHandler{db: db}
}

// Handle executes the sales query. Revenue per item line is quantity times
// price; archived items never count. The month series carries a
// month-over-month delta computed against the directly preceding month in the
// result.
func (h GetSalesQueryHandler) Handle(
	ctx context.Context,
	query GetSalesQuery,
) (GetSalesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetSalesQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT o.created_at, o.sales_rep, i.product_code, i.quantity, i.price
		FROM orders o
		JOIN order_items i ON i.order_id = o.id
		WHERE o.created_at >= ? AND o.created_at <= ?
		  AND i.archived_at IS NULL
	`, query.From(), query.To()).Rows()
	if err != nil {
		return GetSalesQueryResponse{}, err
	}
	defer rows.Close()

	type productBucket struct {
		units   int
		revenue float64
	}
	byProduct := make(map[string]*productBucket)
	byMonth := make(map[string]float64)
	byRep := make(map[string]float64)
	total := 0.0

	for rows.Next() {
		var (
			createdAt   time.Time
			salesRep    string
			productCode string
			quantity    int
			price       float64
		)
		if err = rows.Scan(&createdAt, &salesRep, &productCode, &quantity, &price); err != nil {
			return GetSalesQueryResponse{}, err
		}

		revenue := float64(quantity) * price
		total += revenue

		bucket, ok := byProduct[productCode]
		if !ok {
			bucket = &productBucket{}
			byProduct[productCode] = bucket
		}
		bucket.units += quantity
		bucket.revenue += revenue

		byMonth[monthKey(createdAt)] += revenue

		if salesRep == "" {
			salesRep = unassignedRep
		}
		byRep[salesRep] += revenue
	}
	if err = rows.Err(); err != nil {
		return GetSalesQueryResponse{}, err
	}

	response := GetSalesQueryResponse{
		TotalRevenue:          total,
		TotalRevenueFormatted: formatMoney(total),
		ByProduct:             make([]ProductSales, 0, len(byProduct)),
		ByMonth:               make([]MonthSales, 0, len(byMonth)),
		ByRep:                 make([]RepSales, 0, len(byRep)),
	}

	for code, bucket := range byProduct {
		response.ByProduct = append(response.ByProduct, ProductSales{
			ProductCode:      code,
			Units:            bucket.units,
			Revenue:          bucket.revenue,
			RevenueFormatted: formatMoney(bucket.revenue),
			Share:            share(bucket.revenue, total),
			ShareFormatted:   formatPercent(share(bucket.revenue, total)),
		})
	}
	sort.Slice(response.ByProduct, func(i, j int) bool {
		if response.ByProduct[i].Revenue != response.ByProduct[j].Revenue {
			return response.ByProduct[i].Revenue > response.ByProduct[j].Revenue
		}
		return response.ByProduct[i].ProductCode < response.ByProduct[j].ProductCode
	})

	months := make([]string, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Strings(months)
	for i, month := range months {
		entry := MonthSales{
			Month:            month,
			Revenue:          byMonth[month],
			RevenueFormatted: formatMoney(byMonth[month]),
			Share:            share(byMonth[month], total),
			ShareFormatted:   formatPercent(share(byMonth[month], total)),
		}
		if i > 0 {
			entry.Delta = monthOverMonth(byMonth[months[i-1]], byMonth[month])
		}
		response.ByMonth = append(response.ByMonth, entry)
	}

	for rep, revenue := range byRep {
		response.ByRep = append(response.ByRep, RepSales{
			SalesRep:         rep,
			Revenue:          revenue,
			RevenueFormatted: formatMoney(revenue),
			Share:            share(revenue, total),
			ShareFormatted:   formatPercent(share(revenue, total)),
		})
	}
	sort.Slice(response.ByRep, func(i, j int) bool {
		if response.ByRep[i].Revenue != response.ByRep[j].Revenue {
			return response.ByRep[i].Revenue > response.ByRep[j].Revenue
		}
		return response.ByRep[i].SalesRep < response.ByRep[j].SalesRep
	})

	return response, nil
}

func share(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return part / total
}

// monthOverMonth computes the revenue delta against the previous month. Flat
// requires exact equality; growth from a zero-revenue month reports as 100%
// up.
func monthOverMonth(previous, current float64) *MonthDelta {
	delta := &MonthDelta{}
	switch {
	case current == previous:
		delta.Direction = DeltaFlat
		delta.Percent = 0
	case previous == 0:
		delta.Direction = DeltaUp
		delta.Percent = 1
	case current > previous:
		delta.Direction = DeltaUp
		delta.Percent = (current - previous) / previous
	default:
		delta.Direction = DeltaDown
		delta.Percent = math.Abs(current-previous) / previous
	}
	delta.PercentFormatted = formatPercent(delta.Percent)
	return delta
}

// monthKey returns the sortable creation month of a timestamp, e.g. "2026-03".
func monthKey(t time.Time) string {
	u := t.UTC()
	return fmt.Sprintf("%04d-%02d", u.Year(), int(u.Month()))
}
