package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/tewodrosm/sera-api/internal/models"
	"github.com/tewodrosm/sera-api/internal/repository"
)

// ReportService builds aggregate views for the dashboard and reports
type ReportService struct {
	reportRepo repository.ReportRepository
	auditRepo  repository.AuditRepository
}

// NewReportService creates a new report service
func NewReportService(reportRepo repository.ReportRepository, auditRepo repository.AuditRepository) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		auditRepo:  auditRepo,
	}
}

// Dashboard is the aggregate payload behind the dashboard view.
// MonthlyRentalRevenue and ServiceRevenue derive from current property
// and contract state; MonthlyRevenue is the recorded payment history.
type Dashboard struct {
	Counts               *repository.DashboardCounts `json:"counts"`
	AssetsByStatus       []repository.CountRow       `json:"assets_by_status"`
	LowStockItems        []models.InventoryItem      `json:"low_stock_items"`
	MonthlyRentalRevenue float64                     `json:"monthly_rental_revenue"`
	ServiceRevenue       float64                     `json:"service_revenue"`
	MonthlyRevenue       []repository.RevenueRow     `json:"monthly_revenue"`
}

// Dashboard assembles the headline numbers and supporting breakdowns
func (s *ReportService) Dashboard(ctx context.Context) (*Dashboard, error) {
	counts, err := s.reportRepo.DashboardCounts(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.reportRepo.AssetsByStatus(ctx)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.reportRepo.LowStockItems(ctx)
	if err != nil {
		return nil, err
	}
	rentalRevenue, err := s.reportRepo.MonthlyRentalRevenue(ctx)
	if err != nil {
		return nil, err
	}
	serviceRevenue, err := s.reportRepo.ServiceRevenue(ctx)
	if err != nil {
		return nil, err
	}
	revenue, err := s.reportRepo.MonthlyRentRevenue(ctx, 12)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Counts:               counts,
		AssetsByStatus:       byStatus,
		LowStockItems:        lowStock,
		MonthlyRentalRevenue: rentalRevenue,
		ServiceRevenue:       serviceRevenue,
		MonthlyRevenue:       revenue,
	}, nil
}

// AssetUtilization breaks assets down by status and category
func (s *ReportService) AssetUtilization(ctx context.Context) (map[string][]repository.CountRow, error) {
	byStatus, err := s.reportRepo.AssetsByStatus(ctx)
	if err != nil {
		return nil, err
	}
	byCategory, err := s.reportRepo.AssetsByCategory(ctx)
	if err != nil {
		return nil, err
	}
	return map[string][]repository.CountRow{
		"by_status":   byStatus,
		"by_category": byCategory,
	}, nil
}

// EmployeeDistribution breaks employees down by department and type
func (s *ReportService) EmployeeDistribution(ctx context.Context) (map[string][]repository.CountRow, error) {
	byDepartment, err := s.reportRepo.EmployeesByDepartment(ctx)
	if err != nil {
		return nil, err
	}
	byType, err := s.reportRepo.EmployeesByType(ctx)
	if err != nil {
		return nil, err
	}
	return map[string][]repository.CountRow{
		"by_department": byDepartment,
		"by_type":       byType,
	}, nil
}

// InventoryStock reports stock totals by category plus low-stock items
func (s *ReportService) InventoryStock(ctx context.Context) (map[string]interface{}, error) {
	byCategory, err := s.reportRepo.StockByCategory(ctx)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.reportRepo.LowStockItems(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"stock_by_category": byCategory,
		"low_stock_items":   lowStock,
	}, nil
}

// MonthlyRevenue returns rent revenue per month for the trailing window
func (s *ReportService) MonthlyRevenue(ctx context.Context, months int) ([]repository.RevenueRow, error) {
	if months <= 0 || months > 36 {
		months = 12
	}
	return s.reportRepo.MonthlyRentRevenue(ctx, months)
}

// RecentActivities returns the latest audit entries
func (s *ReportService) RecentActivities(ctx context.Context, limit int) ([]models.AuditLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.auditRepo.Recent(ctx, limit)
}

// DashboardPDF renders the dashboard summary as a PDF document
func (s *ReportService) DashboardPDF(ctx context.Context) ([]byte, string, error) {
	dashboard, err := s.Dashboard(ctx)
	if err != nil {
		return nil, "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Dashboard Summary")
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(40, 10, time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(14)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Overview")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 11)
	counts := dashboard.Counts
	rows := [][2]string{
		{"Assets", fmt.Sprintf("%d", counts.Assets)},
		{"Inventory items", fmt.Sprintf("%d", counts.InventoryItems)},
		{"Low stock items", fmt.Sprintf("%d", counts.LowStockItems)},
		{"Employees", fmt.Sprintf("%d (%d active)", counts.Employees, counts.ActiveEmployees)},
		{"Clients", fmt.Sprintf("%d", counts.Clients)},
		{"Active contracts", fmt.Sprintf("%d", counts.ActiveContracts)},
		{"Rental properties", fmt.Sprintf("%d (%d rented)", counts.Properties, counts.RentedProperties)},
		{"Monthly rental revenue", fmt.Sprintf("%.2f", dashboard.MonthlyRentalRevenue)},
		{"Service revenue", fmt.Sprintf("%.2f", dashboard.ServiceRevenue)},
	}
	for _, row := range rows {
		pdf.Cell(60, 8, row[0])
		pdf.Cell(60, 8, row[1])
		pdf.Ln(8)
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Assets by Status")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	for _, row := range dashboard.AssetsByStatus {
		pdf.Cell(60, 8, row.Label)
		pdf.Cell(60, 8, fmt.Sprintf("%d", row.Count))
		pdf.Ln(8)
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Monthly Rent Revenue")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	for _, row := range dashboard.MonthlyRevenue {
		pdf.Cell(60, 8, row.Month)
		pdf.Cell(60, 8, fmt.Sprintf("%.2f", row.Revenue))
		pdf.Ln(8)
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("dashboard_%s.pdf", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}
