package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"satici_paneli/internal/domain/entities"
	"satici_paneli/internal/usecase/interfaces"
	mock_interfaces "satici_paneli/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func dashboardOrder(id string, createdAt time.Time, status entities.OrderStatus, total float64) entities.Order {
	return entities.Order{
		ID:        id,
		VendorID:  "v-1",
		Status:    status,
		Total:     total,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func newDashboardFixture(t *testing.T, now time.Time) (*DashboardUseCase, *mock_interfaces.MockIOrderRepository, *mock_interfaces.MockIProductStatsRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	orders := mock_interfaces.NewMockIOrderRepository(ctrl)
	products := mock_interfaces.NewMockIProductStatsRepository(ctrl)
	uc := NewDashboardUseCase(orders, products)
	uc.now = func() time.Time { return now }
	return uc, orders, products
}

func TestDashboardUseCase_GetDashboard(t *testing.T) {
	now := time.Date(2024, 5, 15, 14, 30, 0, 0, time.UTC)

	t.Run("invalid vendor id", func(t *testing.T) {
		uc, _, _ := newDashboardFixture(t, now)
		_, err := uc.GetDashboard(context.Background(), " ")
		if !errors.Is(err, ErrInvalidVendorID) {
			t.Fatalf("expected ErrInvalidVendorID, got %v", err)
		}
	})

	t.Run("windows count cancelled but do not bill them", func(t *testing.T) {
		uc, orders, products := newDashboardFixture(t, now)

		monthOrders := []entities.Order{
			dashboardOrder("o-1", now.Add(-2*time.Hour), entities.OrderStatusDelivered, 100), // today
			dashboardOrder("o-2", now.Add(-2*time.Hour), entities.OrderStatusCancelled, 40),  // today, no revenue
			dashboardOrder("o-3", now.AddDate(0, 0, -3), entities.OrderStatusDelivered, 50),  // this week
			dashboardOrder("o-4", now.AddDate(0, 0, -20), entities.OrderStatusDelivered, 30), // this month only
		}
		orders.EXPECT().ListByVendor(gomock.Any(), "v-1", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, f interfaces.OrderFilter) ([]entities.Order, error) {
				if f.From == nil || !f.From.Equal(now.AddDate(0, 0, -30)) {
					t.Fatalf("expected trailing 30-day lower bound, got %+v", f.From)
				}
				return monthOrders, nil
			},
		)
		orders.EXPECT().CountByStatus(gomock.Any(), "v-1", entities.OrderStatusPending).Return(int64(4), nil)
		orders.EXPECT().ListRecent(gomock.Any(), "v-1", int32(10)).Return(monthOrders[:2], nil)
		products.EXPECT().GetStats(gomock.Any(), "v-1").Return(entities.ProductStats{Total: 12, Active: 9, LowStock: 2}, nil)

		snap, err := uc.GetDashboard(context.Background(), "v-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if snap.Today.Orders != 2 || snap.Today.Revenue != 100 {
			t.Fatalf("unexpected today window: %+v", snap.Today)
		}
		if snap.Week.Orders != 3 || snap.Week.Revenue != 150 {
			t.Fatalf("unexpected week window: %+v", snap.Week)
		}
		if snap.Month.Orders != 4 || snap.Month.Revenue != 180 {
			t.Fatalf("unexpected month window: %+v", snap.Month)
		}
		if snap.PendingOrders != 4 {
			t.Fatalf("unexpected pending count: %d", snap.PendingOrders)
		}
		if snap.Products.LowStock != 2 {
			t.Fatalf("unexpected product stats: %+v", snap.Products)
		}
		if len(snap.RecentOrders) != 2 {
			t.Fatalf("unexpected recent orders: %d", len(snap.RecentOrders))
		}
	})

	t.Run("chart covers exactly seven contiguous days ending today", func(t *testing.T) {
		uc, orders, products := newDashboardFixture(t, now)

		monthOrders := []entities.Order{
			dashboardOrder("o-1", now.Add(-time.Hour), entities.OrderStatusDelivered, 10),
			dashboardOrder("o-2", now.AddDate(0, 0, -6), entities.OrderStatusDelivered, 20),
			dashboardOrder("o-3", now.AddDate(0, 0, -6), entities.OrderStatusCancelled, 99),
			// outside the chart range, inside the month window
			dashboardOrder("o-4", now.AddDate(0, 0, -10), entities.OrderStatusDelivered, 30),
		}
		orders.EXPECT().ListByVendor(gomock.Any(), "v-1", gomock.Any()).Return(monthOrders, nil)
		orders.EXPECT().CountByStatus(gomock.Any(), "v-1", entities.OrderStatusPending).Return(int64(0), nil)
		orders.EXPECT().ListRecent(gomock.Any(), "v-1", int32(10)).Return(nil, nil)
		products.EXPECT().GetStats(gomock.Any(), "v-1").Return(entities.ProductStats{}, nil)

		snap, err := uc.GetDashboard(context.Background(), "v-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(snap.ChartData) != 7 {
			t.Fatalf("expected 7 chart points, got %d", len(snap.ChartData))
		}
		for i, point := range snap.ChartData {
			want := now.AddDate(0, 0, -(6 - i)).Format("2006-01-02")
			if point.Date != want {
				t.Fatalf("point %d: expected %s, got %s", i, want, point.Date)
			}
		}
		first := snap.ChartData[0]
		if first.Orders != 2 || first.Revenue != 20 {
			t.Fatalf("cancelled order should count but not bill: %+v", first)
		}
		last := snap.ChartData[6]
		if last.Date != "2024-05-15" || last.Orders != 1 || last.Revenue != 10 {
			t.Fatalf("unexpected last point: %+v", last)
		}
		for _, point := range snap.ChartData[1:6] {
			if point.Orders != 0 || point.Revenue != 0 {
				t.Fatalf("expected zero-filled middle day, got %+v", point)
			}
		}
		if snap.RecentOrders == nil {
			t.Fatalf("recent orders must be an empty slice, not nil")
		}
	})

	t.Run("boundaries derive from one captured instant", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIOrderRepository(ctrl)
		products := mock_interfaces.NewMockIProductStatsRepository(ctrl)
		uc := NewDashboardUseCase(orders, products)

		// A clock that jumps a full day between reads. Only the first read may
		// influence the snapshot.
		calls := 0
		uc.now = func() time.Time {
			calls++
			return now.AddDate(0, 0, calls-1)
		}

		orders.EXPECT().ListByVendor(gomock.Any(), "v-1", gomock.Any()).Return(nil, nil)
		orders.EXPECT().CountByStatus(gomock.Any(), "v-1", entities.OrderStatusPending).Return(int64(0), nil)
		orders.EXPECT().ListRecent(gomock.Any(), "v-1", int32(10)).Return(nil, nil)
		products.EXPECT().GetStats(gomock.Any(), "v-1").Return(entities.ProductStats{}, nil)

		snap, err := uc.GetDashboard(context.Background(), "v-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if calls != 1 {
			t.Fatalf("clock read %d times, want 1", calls)
		}
		if snap.ChartData[6].Date != "2024-05-15" {
			t.Fatalf("chart anchored to wrong day: %s", snap.ChartData[6].Date)
		}
	})

	t.Run("collaborator failure aborts the snapshot", func(t *testing.T) {
		uc, orders, _ := newDashboardFixture(t, now)

		orders.EXPECT().ListByVendor(gomock.Any(), "v-1", gomock.Any()).Return(nil, errors.New("db"))

		_, err := uc.GetDashboard(context.Background(), "v-1")
		if err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})

	t.Run("product stats failure aborts the snapshot", func(t *testing.T) {
		uc, orders, products := newDashboardFixture(t, now)

		orders.EXPECT().ListByVendor(gomock.Any(), "v-1", gomock.Any()).Return(nil, nil)
		orders.EXPECT().CountByStatus(gomock.Any(), "v-1", entities.OrderStatusPending).Return(int64(0), nil)
		products.EXPECT().GetStats(gomock.Any(), "v-1").Return(entities.ProductStats{}, errors.New("products down"))

		_, err := uc.GetDashboard(context.Background(), "v-1")
		if err == nil || err.Error() != "products down" {
			t.Fatalf("expected products error, got %v", err)
		}
	})
}

func TestIdentityUseCase_Resolve(t *testing.T) {
	t.Run("blank credential", func(t *testing.T) {
		uc := NewIdentityUseCase(nil, nil)
		_, err := uc.Resolve(context.Background(), "  ")
		if !errors.Is(err, ErrMissingCredential) {
			t.Fatalf("expected ErrMissingCredential, got %v", err)
		}
	})

	t.Run("verification failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		tokens := mock_interfaces.NewMockITokenVerifier(ctrl)
		uc := NewIdentityUseCase(tokens, nil)

		tokens.EXPECT().Verify("bad").Return("", errors.New("expired"))

		_, err := uc.Resolve(context.Background(), "bad")
		if !errors.Is(err, ErrInvalidCredential) {
			t.Fatalf("expected ErrInvalidCredential, got %v", err)
		}
	})

	t.Run("vendor missing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		tokens := mock_interfaces.NewMockITokenVerifier(ctrl)
		vendors := mock_interfaces.NewMockIVendorRepository(ctrl)
		uc := NewIdentityUseCase(tokens, vendors)

		tokens.EXPECT().Verify("tok").Return("v-1", nil)
		vendors.EXPECT().GetByID(gomock.Any(), "v-1").Return(entities.Vendor{}, nil)

		_, err := uc.Resolve(context.Background(), "tok")
		if !errors.Is(err, ErrVendorNotFound) {
			t.Fatalf("expected ErrVendorNotFound, got %v", err)
		}
	})

	t.Run("resolves vendor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		tokens := mock_interfaces.NewMockITokenVerifier(ctrl)
		vendors := mock_interfaces.NewMockIVendorRepository(ctrl)
		uc := NewIdentityUseCase(tokens, vendors)

		tokens.EXPECT().Verify("tok").Return("v-1", nil)
		vendors.EXPECT().GetByID(gomock.Any(), "v-1").Return(entities.Vendor{ID: "v-1", Status: entities.VendorStatusApproved}, nil)

		vendor, err := uc.Resolve(context.Background(), "tok")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if vendor.ID != "v-1" || vendor.Status != entities.VendorStatusApproved {
			t.Fatalf("unexpected vendor: %+v", vendor)
		}
	})
}
