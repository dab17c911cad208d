package response

import "satici_paneli/internal/domain/entities"

type WindowStatsResponse struct {
	Orders  int64   `json:"orders"`
	Revenue float64 `json:"revenue"`
}

type PendingStatsResponse struct {
	Orders int64 `json:"orders"`
}

type ProductStatsResponse struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	LowStock int64 `json:"lowStock"`
}

type ChartPointResponse struct {
	Date    string  `json:"date"`
	Orders  int64   `json:"orders"`
	Revenue float64 `json:"revenue"`
}

type DashboardResponse struct {
	Today        WindowStatsResponse  `json:"today"`
	Week         WindowStatsResponse  `json:"week"`
	Month        WindowStatsResponse  `json:"month"`
	Pending      PendingStatsResponse `json:"pending"`
	Products     ProductStatsResponse `json:"products"`
	RecentOrders []OrderResponse      `json:"recentOrders"`
	ChartData    []ChartPointResponse `json:"chartData"`
}

func FromDashboard(s entities.DashboardSnapshot) DashboardResponse {
	chart := make([]ChartPointResponse, 0, len(s.ChartData))
	for _, p := range s.ChartData {
		chart = append(chart, ChartPointResponse{Date: p.Date, Orders: p.Orders, Revenue: p.Revenue})
	}
	return DashboardResponse{
		Today:        WindowStatsResponse{Orders: s.Today.Orders, Revenue: s.Today.Revenue},
		Week:         WindowStatsResponse{Orders: s.Week.Orders, Revenue: s.Week.Revenue},
		Month:        WindowStatsResponse{Orders: s.Month.Orders, Revenue: s.Month.Revenue},
		Pending:      PendingStatsResponse{Orders: s.PendingOrders},
		Products:     ProductStatsResponse{Total: s.Products.Total, Active: s.Products.Active, LowStock: s.Products.LowStock},
		RecentOrders: FromOrders(s.RecentOrders),
		ChartData:    chart,
	}
}
