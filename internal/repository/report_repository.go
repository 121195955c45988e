package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tewodrosm/sera-api/internal/models"
)

// CountRow is a generic label/count aggregate row.
type CountRow struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// RevenueRow aggregates revenue for one month.
type RevenueRow struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

// DashboardCounts are the headline numbers on the dashboard.
type DashboardCounts struct {
	Assets           int64 `json:"assets"`
	InventoryItems   int64 `json:"inventory_items"`
	LowStockItems    int64 `json:"low_stock_items"`
	Employees        int64 `json:"employees"`
	ActiveEmployees  int64 `json:"active_employees"`
	Clients          int64 `json:"clients"`
	ActiveContracts  int64 `json:"active_contracts"`
	Properties       int64 `json:"properties"`
	RentedProperties int64 `json:"rented_properties"`
}

// ReportRepository defines the interface for aggregate report queries
type ReportRepository interface {
	DashboardCounts(ctx context.Context) (*DashboardCounts, error)
	AssetsByStatus(ctx context.Context) ([]CountRow, error)
	AssetsByCategory(ctx context.Context) ([]CountRow, error)
	EmployeesByDepartment(ctx context.Context) ([]CountRow, error)
	EmployeesByType(ctx context.Context) ([]CountRow, error)
	StockByCategory(ctx context.Context) ([]CountRow, error)
	LowStockItems(ctx context.Context) ([]models.InventoryItem, error)
	MonthlyRentalRevenue(ctx context.Context) (float64, error)
	ServiceRevenue(ctx context.Context) (float64, error)
	MonthlyRentRevenue(ctx context.Context, months int) ([]RevenueRow, error)
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) DashboardCounts(ctx context.Context) (*DashboardCounts, error) {
	var counts DashboardCounts
	db := r.db.WithContext(ctx)

	type countQuery struct {
		dest  *int64
		model interface{}
		conds []interface{}
	}
	queries := []countQuery{
		{&counts.Assets, &models.Asset{}, nil},
		{&counts.InventoryItems, &models.InventoryItem{}, nil},
		{&counts.LowStockItems, &models.InventoryItem{}, []interface{}{"current_stock <= min_stock AND status = ?", models.StatusActive}},
		{&counts.Employees, &models.Employee{}, nil},
		{&counts.ActiveEmployees, &models.Employee{}, []interface{}{"status = ?", models.StatusActive}},
		{&counts.Clients, &models.Client{}, nil},
		{&counts.ActiveContracts, &models.ServiceContract{}, []interface{}{"status = ?", models.ContractActive}},
		{&counts.Properties, &models.RentalProperty{}, nil},
		{&counts.RentedProperties, &models.RentalProperty{}, []interface{}{"status = ?", models.PropertyRented}},
	}
	for _, q := range queries {
		tx := db.Model(q.model)
		if q.conds != nil {
			tx = tx.Where(q.conds[0], q.conds[1:]...)
		}
		if err := tx.Count(q.dest).Error; err != nil {
			return nil, err
		}
	}
	return &counts, nil
}

func (r *reportRepository) groupCount(ctx context.Context, model interface{}, column string) ([]CountRow, error) {
	var rows []CountRow
	err := r.db.WithContext(ctx).
		Model(model).
		Select(column + " AS label, COUNT(*) AS count").
		Group(column).
		Order("count DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepository) AssetsByStatus(ctx context.Context) ([]CountRow, error) {
	return r.groupCount(ctx, &models.Asset{}, "status")
}

func (r *reportRepository) AssetsByCategory(ctx context.Context) ([]CountRow, error) {
	return r.groupCount(ctx, &models.Asset{}, "category")
}

func (r *reportRepository) EmployeesByDepartment(ctx context.Context) ([]CountRow, error) {
	return r.groupCount(ctx, &models.Employee{}, "department")
}

func (r *reportRepository) EmployeesByType(ctx context.Context) ([]CountRow, error) {
	return r.groupCount(ctx, &models.Employee{}, "employment_type")
}

func (r *reportRepository) StockByCategory(ctx context.Context) ([]CountRow, error) {
	var rows []CountRow
	err := r.db.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Select("category AS label, COALESCE(SUM(current_stock), 0) AS count").
		Group("category").
		Order("count DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepository) LowStockItems(ctx context.Context) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := r.db.WithContext(ctx).
		Where("current_stock <= min_stock AND status = ?", models.StatusActive).
		Order("current_stock ASC").
		Find(&items).Error
	return items, err
}

// MonthlyRentalRevenue is the rent the currently-rented properties bring
// in per month, recomputed from property state on every call.
func (r *reportRepository) MonthlyRentalRevenue(ctx context.Context) (float64, error) {
	var revenue float64
	err := r.db.WithContext(ctx).
		Model(&models.RentalProperty{}).
		Where("status = ?", models.PropertyRented).
		Select("COALESCE(SUM(monthly_rent), 0)").
		Scan(&revenue).Error
	return revenue, err
}

// ServiceRevenue is the monthly fee total across active service contracts.
func (r *reportRepository) ServiceRevenue(ctx context.Context) (float64, error) {
	var revenue float64
	err := r.db.WithContext(ctx).
		Model(&models.ServiceContract{}).
		Where("status = ?", models.ContractActive).
		Select("COALESCE(SUM(monthly_fee), 0)").
		Scan(&revenue).Error
	return revenue, err
}

// MonthlyRentRevenue sums rent payments per month over the trailing
// window, oldest month first.
func (r *reportRepository) MonthlyRentRevenue(ctx context.Context, months int) ([]RevenueRow, error) {
	since := time.Now().AddDate(0, -months, 0)
	var rows []RevenueRow
	err := r.db.WithContext(ctx).
		Model(&models.RentPayment{}).
		Select("TO_CHAR(payment_date, 'YYYY-MM') AS month, COALESCE(SUM(amount), 0) AS revenue").
		Where("payment_date >= ?", since).
		Group("month").
		Order("month ASC").
		Scan(&rows).Error
	return rows, err
}
