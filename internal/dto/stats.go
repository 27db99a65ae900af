package dto

import "github.com/shopspring/decimal"

// AdminStats is the dashboard summary derived on demand from the order set
// and the catalog counts.
type AdminStats struct {
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	TotalOrders     int             `json:"totalOrders"`
	TotalProducts   int             `json:"totalProducts"`
	TotalCategories int             `json:"totalCategories"`
}
