package usecase

import (
	"context"
	"strings"
	"time"

	"satici_paneli/internal/domain/entities"
	"satici_paneli/internal/usecase/interfaces"
)

const (
	chartDays       = 7
	recentOrderRows = 10
)

// IDashboardUseCase produces the vendor's point-in-time activity snapshot.
type IDashboardUseCase interface {
	GetDashboard(ctx context.Context, vendorID string) (entities.DashboardSnapshot, error)
}

// DashboardUseCase aggregates order activity client-side from a single
// trailing-30-day read. Every window boundary derives from one instant
// captured at the start of the call; nothing mutates a shared date value, so
// today/week/month cannot drift apart.
type DashboardUseCase struct {
	orders   interfaces.IOrderRepository
	products interfaces.IProductStatsRepository
	now      func() time.Time
}

var _ IDashboardUseCase = (*DashboardUseCase)(nil)

func NewDashboardUseCase(orders interfaces.IOrderRepository, products interfaces.IProductStatsRepository) *DashboardUseCase {
	return &DashboardUseCase{orders: orders, products: products, now: time.Now}
}

func (u *DashboardUseCase) GetDashboard(ctx context.Context, vendorID string) (entities.DashboardSnapshot, error) {
	vendorID = strings.TrimSpace(vendorID)
	if vendorID == "" {
		return entities.DashboardSnapshot{}, ErrInvalidVendorID
	}

	now := u.now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := now.AddDate(0, 0, -chartDays)
	monthStart := now.AddDate(0, 0, -30)

	// The month window is a superset of week, today and the chart range, so
	// one query feeds every windowed figure.
	monthOrders, err := u.orders.ListByVendor(ctx, vendorID, interfaces.OrderFilter{From: &monthStart})
	if err != nil {
		return entities.DashboardSnapshot{}, err
	}

	pending, err := u.orders.CountByStatus(ctx, vendorID, entities.OrderStatusPending)
	if err != nil {
		return entities.DashboardSnapshot{}, err
	}

	products, err := u.products.GetStats(ctx, vendorID)
	if err != nil {
		return entities.DashboardSnapshot{}, err
	}

	recent, err := u.orders.ListRecent(ctx, vendorID, recentOrderRows)
	if err != nil {
		return entities.DashboardSnapshot{}, err
	}
	if recent == nil {
		recent = []entities.Order{}
	}

	return entities.DashboardSnapshot{
		Today:         windowStats(monthOrders, todayStart),
		Week:          windowStats(monthOrders, weekStart),
		Month:         windowStats(monthOrders, monthStart),
		PendingOrders: pending,
		Products:      products,
		RecentOrders:  recent,
		ChartData:     chartSeries(monthOrders, now),
	}, nil
}

// windowStats counts every order created on or after start and sums revenue
// over the non-cancelled ones. The asymmetry is deliberate: cancellations
// still represent demand but not income.
func windowStats(orders []entities.Order, start time.Time) entities.WindowStats {
	var w entities.WindowStats
	for _, o := range orders {
		if o.CreatedAt.Before(start) {
			continue
		}
		w.Orders++
		if o.Status != entities.OrderStatusCancelled {
			w.Revenue += o.Total
		}
	}
	return w
}

// chartSeries builds the trailing 7-day series ending today, local calendar
// days, zero-filled so the series never has gaps.
func chartSeries(orders []entities.Order, now time.Time) []entities.ChartPoint {
	loc := now.Location()
	byDay := make(map[string]*entities.ChartPoint, chartDays)

	series := make([]entities.ChartPoint, 0, chartDays)
	for i := chartDays - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i).In(loc).Format("2006-01-02")
		series = append(series, entities.ChartPoint{Date: date})
	}
	for i := range series {
		byDay[series[i].Date] = &series[i]
	}

	for _, o := range orders {
		point, ok := byDay[o.CreatedAt.In(loc).Format("2006-01-02")]
		if !ok {
			continue
		}
		point.Orders++
		if o.Status != entities.OrderStatusCancelled {
			point.Revenue += o.Total
		}
	}
	return series
}
