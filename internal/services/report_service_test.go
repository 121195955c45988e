package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tewodrosm/sera-api/internal/models"
	"github.com/tewodrosm/sera-api/internal/repository"
)

type dashboardRepo struct {
	repository.ReportRepository
	mockDashboardCounts      func(ctx context.Context) (*repository.DashboardCounts, error)
	mockAssetsByStatus       func(ctx context.Context) ([]repository.CountRow, error)
	mockLowStockItems        func(ctx context.Context) ([]models.InventoryItem, error)
	mockMonthlyRentalRevenue func(ctx context.Context) (float64, error)
	mockServiceRevenue       func(ctx context.Context) (float64, error)
	mockMonthlyRentRevenue   func(ctx context.Context, months int) ([]repository.RevenueRow, error)
}

func (m *dashboardRepo) DashboardCounts(ctx context.Context) (*repository.DashboardCounts, error) {
	return m.mockDashboardCounts(ctx)
}

func (m *dashboardRepo) AssetsByStatus(ctx context.Context) ([]repository.CountRow, error) {
	return m.mockAssetsByStatus(ctx)
}

func (m *dashboardRepo) LowStockItems(ctx context.Context) ([]models.InventoryItem, error) {
	return m.mockLowStockItems(ctx)
}

func (m *dashboardRepo) MonthlyRentalRevenue(ctx context.Context) (float64, error) {
	return m.mockMonthlyRentalRevenue(ctx)
}

func (m *dashboardRepo) ServiceRevenue(ctx context.Context) (float64, error) {
	return m.mockServiceRevenue(ctx)
}

func (m *dashboardRepo) MonthlyRentRevenue(ctx context.Context, months int) ([]repository.RevenueRow, error) {
	return m.mockMonthlyRentRevenue(ctx, months)
}

func dashboardReportRepo() *dashboardRepo {
	return &dashboardRepo{
		mockDashboardCounts: func(ctx context.Context) (*repository.DashboardCounts, error) {
			return &repository.DashboardCounts{Assets: 12, Properties: 5, RentedProperties: 3}, nil
		},
		mockAssetsByStatus: func(ctx context.Context) ([]repository.CountRow, error) {
			return []repository.CountRow{{Label: "available", Count: 10}, {Label: "assigned", Count: 2}}, nil
		},
		mockLowStockItems: func(ctx context.Context) ([]models.InventoryItem, error) {
			return []models.InventoryItem{{ID: 1, Name: "Gloves"}}, nil
		},
		mockMonthlyRentalRevenue: func(ctx context.Context) (float64, error) {
			return 45000, nil
		},
		mockServiceRevenue: func(ctx context.Context) (float64, error) {
			return 120000.50, nil
		},
		mockMonthlyRentRevenue: func(ctx context.Context, months int) ([]repository.RevenueRow, error) {
			return []repository.RevenueRow{{Month: "2026-07", Revenue: 43000}}, nil
		},
	}
}

func TestReportService_Dashboard_Revenues(t *testing.T) {
	service := NewReportService(dashboardReportRepo(), nil)

	dashboard, err := service.Dashboard(context.Background())
	require.NoError(t, err)

	// Derived from current property and contract state, not payment history
	assert.Equal(t, 45000.0, dashboard.MonthlyRentalRevenue)
	assert.Equal(t, 120000.50, dashboard.ServiceRevenue)

	assert.Equal(t, int64(12), dashboard.Counts.Assets)
	assert.Len(t, dashboard.AssetsByStatus, 2)
	assert.Len(t, dashboard.LowStockItems, 1)
	require.Len(t, dashboard.MonthlyRevenue, 1)
	assert.Equal(t, "2026-07", dashboard.MonthlyRevenue[0].Month)
}

func TestReportService_MonthlyRevenue_ClampsWindow(t *testing.T) {
	mockRepo := dashboardReportRepo()
	service := NewReportService(mockRepo, nil)

	var seen int
	mockRepo.mockMonthlyRentRevenue = func(ctx context.Context, months int) ([]repository.RevenueRow, error) {
		seen = months
		return nil, nil
	}

	for _, months := range []int{-1, 0, 37} {
		_, err := service.MonthlyRevenue(context.Background(), months)
		require.NoError(t, err)
		assert.Equal(t, 12, seen, months)
	}

	_, err := service.MonthlyRevenue(context.Background(), 6)
	require.NoError(t, err)
	assert.Equal(t, 6, seen)
}
