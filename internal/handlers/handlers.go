package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tewodrosm/sera-api/internal/middleware"
	"github.com/tewodrosm/sera-api/internal/repository"
	"github.com/tewodrosm/sera-api/internal/services"
)

// Handlers holds all handler instances
type Handlers struct {
	Health    *HealthHandler
	Auth      *AuthHandler
	User      *UserHandler
	Asset     *AssetHandler
	Inventory *InventoryHandler
	Employee  *EmployeeHandler
	Client    *ClientHandler
	Rental    *RentalHandler
	Report    *ReportHandler
	Settings  *SettingsHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(),
		Auth:      NewAuthHandler(svcs.Auth),
		User:      NewUserHandler(svcs.User),
		Asset:     NewAssetHandler(svcs.Asset),
		Inventory: NewInventoryHandler(svcs.Inventory),
		Employee:  NewEmployeeHandler(svcs.Employee),
		Client:    NewClientHandler(svcs.Client),
		Rental:    NewRentalHandler(svcs.Rental),
		Report:    NewReportHandler(svcs.Report, svcs.Notification),
		Settings:  NewSettingsHandler(svcs.Settings, svcs.Backup, svcs.Audit),
	}
}

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// @Summary Health Check
// @Description Checks if the API is running
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "sera-api",
		"version": "1.0.0",
	})
}

// parseListQuery reads the common pagination, search, and sort params
// plus any named filters from the request query string.
func parseListQuery(c *gin.Context, filterKeys ...string) *repository.ListQuery {
	query := repository.NewListQuery()

	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		query.Page = page
	}
	if perPage, err := strconv.Atoi(c.Query("per_page")); err == nil && perPage > 0 && perPage <= 100 {
		query.PerPage = perPage
	}
	query.Search = c.Query("search")
	query.SortBy = c.Query("sort_by")
	query.SortDir = c.Query("sort_dir")

	for _, key := range filterKeys {
		if v := c.Query(key); v != "" {
			query.Filters[key] = v
		}
	}
	return query
}

// parseID reads a numeric path parameter
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// actor bundles who is performing the request for audit trails
type actor struct {
	ID   uint
	Name string
	IP   string
}

func requestActor(c *gin.Context) actor {
	return actor{
		ID:   middleware.GetUserID(c),
		Name: middleware.GetUsername(c),
		IP:   c.ClientIP(),
	}
}

// respondError maps service errors to HTTP status codes
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
	case errors.Is(err, services.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": "A record with this code already exists"})
	case errors.Is(err, services.ErrInsufficientStock):
		c.JSON(http.StatusConflict, gin.H{"error": "Insufficient stock for this transaction"})
	case errors.Is(err, services.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrSelfDelete):
		c.JSON(http.StatusForbidden, gin.H{"error": "You cannot delete your own account"})
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrAccountInactive):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidPassword):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Current password is incorrect"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// listResponse is the standard paginated payload
func listResponse(items interface{}, total int64, query *repository.ListQuery) gin.H {
	return gin.H{
		"data":     items,
		"total":    total,
		"page":     query.Page,
		"per_page": query.PerPage,
	}
}
