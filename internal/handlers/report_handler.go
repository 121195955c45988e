package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tewodrosm/sera-api/internal/services"
)

type ReportHandler struct {
	reportService       *services.ReportService
	notificationService *services.NotificationService
}

func NewReportHandler(reportService *services.ReportService, notificationService *services.NotificationService) *ReportHandler {
	return &ReportHandler{
		reportService:       reportService,
		notificationService: notificationService,
	}
}

// @Summary Dashboard
// @Description Returns headline counts, asset status breakdown, low stock, and revenue
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.Dashboard
// @Router /reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.reportService.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// @Summary Asset utilization
// @Description Breaks assets down by status and category
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /reports/asset-utilization [get]
func (h *ReportHandler) AssetUtilization(c *gin.Context) {
	report, err := h.reportService.AssetUtilization(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// @Summary Employee distribution
// @Description Breaks employees down by department and employment type
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /reports/employee-distribution [get]
func (h *ReportHandler) EmployeeDistribution(c *gin.Context) {
	report, err := h.reportService.EmployeeDistribution(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// @Summary Inventory stock report
// @Description Stock totals by category plus low-stock items
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /reports/inventory-stock [get]
func (h *ReportHandler) InventoryStock(c *gin.Context) {
	report, err := h.reportService.InventoryStock(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// @Summary Monthly revenue
// @Description Rent revenue per month for the trailing window (default 12 months)
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param months query int false "Months to include"
// @Success 200 {array} repository.RevenueRow
// @Router /reports/monthly-revenue [get]
func (h *ReportHandler) MonthlyRevenue(c *gin.Context) {
	months, _ := strconv.Atoi(c.DefaultQuery("months", "12"))

	rows, err := h.reportService.MonthlyRevenue(c.Request.Context(), months)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// @Summary Recent activities
// @Description Returns the latest audit entries for the dashboard feed
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Entries to return (default 20)"
// @Success 200 {array} models.AuditLog
// @Router /reports/recent-activities [get]
func (h *ReportHandler) RecentActivities(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	logs, err := h.reportService.RecentActivities(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

// @Summary Notifications
// @Description Derives current alerts: low stock, expiring documents, ending leases
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Notification
// @Router /reports/notifications [get]
func (h *ReportHandler) Notifications(c *gin.Context) {
	notifications, err := h.notificationService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// @Summary Dashboard PDF
// @Description Downloads the dashboard summary as a PDF
// @Tags Reports
// @Produce application/pdf
// @Security BearerAuth
// @Success 200 {file} binary
// @Router /reports/dashboard-pdf [get]
func (h *ReportHandler) DashboardPDF(c *gin.Context) {
	data, filename, err := h.reportService.DashboardPDF(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
