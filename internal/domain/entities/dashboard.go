package entities

// Dashboard types are derived projections; none of them are persisted.

// WindowStats holds order count and revenue for one trailing window. The
// count includes cancelled orders, the revenue excludes them.
type WindowStats struct {
	Orders  int64   `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// ProductStats is the single read exposed by the product collaborator.
type ProductStats struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	LowStock int64 `json:"low_stock"`
}

// ChartPoint is one day of the trailing 7-day series. Date is a local
// calendar day formatted YYYY-MM-DD.
type ChartPoint struct {
	Date    string  `json:"date"`
	Orders  int64   `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// DashboardSnapshot is the full point-in-time aggregate for one vendor.
type DashboardSnapshot struct {
	Today         WindowStats  `json:"today"`
	Week          WindowStats  `json:"week"`
	Month         WindowStats  `json:"month"`
	PendingOrders int64        `json:"pending_orders"`
	Products      ProductStats `json:"products"`
	RecentOrders  []Order      `json:"recent_orders"`
	ChartData     []ChartPoint `json:"chart_data"`
}

// OrderStats is the caller-windowed aggregate served by the stats endpoint.
// TotalRevenue here includes cancelled orders, matching the historical
// behaviour the panel front end charts against.
type OrderStats struct {
	TotalOrders   int64            `json:"total_orders"`
	TotalRevenue  float64          `json:"total_revenue"`
	AvgOrderValue float64          `json:"avg_order_value"`
	StatusCounts  map[string]int64 `json:"status_counts"`
}
