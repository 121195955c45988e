package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tewodrosm/sera-api/internal/services"
)

type SettingsHandler struct {
	settingsService *services.SettingsService
	backupService   *services.BackupService
	auditService    *services.AuditService
}

func NewSettingsHandler(settingsService *services.SettingsService, backupService *services.BackupService, auditService *services.AuditService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		backupService:   backupService,
		auditService:    auditService,
	}
}

// @Summary Get settings
// @Description Returns the settings singleton, creating defaults on first access (admin only)
// @Tags Settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Settings
// @Router /settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settingsService.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// @Summary Update company settings
// @Description Updates the company identity fields (admin only)
// @Tags Settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body services.CompanyInput true "Company fields"
// @Success 200 {object} models.Settings
// @Router /settings/company [put]
func (h *SettingsHandler) UpdateCompany(c *gin.Context) {
	var input services.CompanyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	a := requestActor(c)
	settings, err := h.settingsService.UpdateCompany(c.Request.Context(), input, a.ID, a.Name, a.IP)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// @Summary Update system settings
// @Description Updates currency, date format, timezone, and stock threshold (admin only)
// @Tags Settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body services.SystemInput true "System fields"
// @Success 200 {object} models.Settings
// @Router /settings/system [put]
func (h *SettingsHandler) UpdateSystem(c *gin.Context) {
	var input services.SystemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	a := requestActor(c)
	settings, err := h.settingsService.UpdateSystem(c.Request.Context(), input, a.ID, a.Name, a.IP)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// @Summary Download backup
// @Description Streams a zip archive of all uploaded files plus a manifest (admin only)
// @Tags Settings
// @Produce application/zip
// @Security BearerAuth
// @Success 200 {file} binary
// @Router /settings/backup [get]
func (h *SettingsHandler) Backup(c *gin.Context) {
	a := requestActor(c)

	filename := fmt.Sprintf("backup_%s.zip", time.Now().Format("2006-01-02_150405"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/zip")
	c.Status(http.StatusOK)

	if _, err := h.backupService.Build(c.Request.Context(), c.Writer, a.ID, a.Name, a.IP); err != nil {
		// Headers are already out; all we can do is log via the error chain.
		_ = c.Error(err)
	}
}

// @Summary Clear cache
// @Description No server-side cache exists; acknowledges so clients can clear their own (admin only)
// @Tags Settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Router /settings/clear-cache [post]
func (h *SettingsHandler) ClearCache(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Cache cleared"})
}

// @Summary Audit logs
// @Description Lists audit log entries with filters (admin only)
// @Tags Settings
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param search query string false "Search username or details"
// @Param action query string false "Filter by action"
// @Param entity_type query string false "Filter by entity type"
// @Param user_id query int false "Filter by user"
// @Success 200 {object} map[string]interface{}
// @Router /settings/logs [get]
func (h *SettingsHandler) Logs(c *gin.Context) {
	query := parseListQuery(c, "action", "entity_type", "user_id")

	logs, total, err := h.auditService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(logs, total, query))
}
