package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tewodrosm/sera-api/internal/models"
	"github.com/tewodrosm/sera-api/internal/services"
)

type RentalHandler struct {
	rentalService *services.RentalService
}

func NewRentalHandler(rentalService *services.RentalService) *RentalHandler {
	return &RentalHandler{rentalService: rentalService}
}

// @Summary List properties
// @Description Lists rental properties with pagination, search, and filters
// @Tags Rentals
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param search query string false "Search by name, code, or address"
// @Param property_type query string false "Filter by type"
// @Param status query string false "Filter by status"
// @Success 200 {object} map[string]interface{}
// @Router /rentals [get]
func (h *RentalHandler) ListProperties(c *gin.Context) {
	query := parseListQuery(c, "property_type", "status")

	properties, total, err := h.rentalService.ListProperties(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(properties, total, query))
}

// @Summary Get property
// @Description Returns a property with its tenants
// @Tags Rentals
// @Produce json
// @Security BearerAuth
// @Param id path int true "Property ID"
// @Success 200 {object} models.RentalProperty
// @Router /rentals/{id} [get]
func (h *RentalHandler) GetProperty(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	property, err := h.rentalService.GetProperty(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, property)
}

// @Summary Create property
// @Description Registers a rental property
// @Tags Rentals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.RentalProperty true "Property fields"
// @Success 201 {object} models.RentalProperty
// @Failure 409 {object} map[string]string
// @Router /rentals [post]
func (h *RentalHandler) CreateProperty(c *gin.Context) {
	var property models.RentalProperty
	if err := c.ShouldBindJSON(&property); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "property_code and name are required"})
		return
	}
	if property.PropertyCode == "" || property.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "property_code and name are required"})
		return
	}

	a := requestActor(c)
	if err := h.rentalService.CreateProperty(c.Request.Context(), &property, a.ID, a.Name, a.IP); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, property)
}

// @Summary Update property
// @Description Updates a rental property
// @Tags Rentals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Property ID"
// @Param request body models.RentalProperty true "Property fields"
// @Success 200 {object} models.RentalProperty
// @Router /rentals/{id} [put]
func (h *RentalHandler) UpdateProperty(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var property models.RentalProperty
	if err := c.ShouldBindJSON(&property); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	a := requestActor(c)
	updated, err := h.rentalService.UpdateProperty(c.Request.Context(), id, &property, a.ID, a.Name, a.IP)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// @Summary Delete property
// @Description Deletes a property and its tenant history
// @Tags Rentals
// @Produce json
// @Security BearerAuth
// @Param id path int true "Property ID"
// @Success 200 {object} map[string]string
// @Router /rentals/{id} [delete]
func (h *RentalHandler) DeleteProperty(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	a := requestActor(c)
	if err := h.rentalService.DeleteProperty(c.Request.Context(), id, a.ID, a.Name, a.IP); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Property deleted"})
}

// @Summary List tenants
// @Description Lists tenants with pagination, search, and filters
// @Tags Tenants
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search by name or phone"
// @Param property_id query int false "Filter by property"
// @Param status query string false "Filter by status"
// @Success 200 {object} map[string]interface{}
// @Router /rentals/tenants [get]
func (h *RentalHandler) ListTenants(c *gin.Context) {
	query := parseListQuery(c, "property_id", "status")

	tenants, total, err := h.rentalService.ListTenants(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(tenants, total, query))
}

// @Summary Get tenant
// @Description Returns a tenant with property and payments
// @Tags Tenants
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tenant ID"
// @Success 200 {object} models.Tenant
// @Router /rentals/tenants/{id} [get]
func (h *RentalHandler) GetTenant(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	tenant, err := h.rentalService.GetTenant(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tenant)
}

// @Summary Create tenant
// @Description Places a tenant; the property flips to rented atomically
// @Tags Tenants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.Tenant true "Tenant fields"
// @Success 201 {object} models.Tenant
// @Router /rentals/tenants [post]
func (h *RentalHandler) CreateTenant(c *gin.Context) {
	var tenant models.Tenant
	if err := c.ShouldBindJSON(&tenant); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "property_id and name are required"})
		return
	}
	if tenant.PropertyID == 0 || tenant.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "property_id and name are required"})
		return
	}

	a := requestActor(c)
	if err := h.rentalService.CreateTenant(c.Request.Context(), &tenant, a.ID, a.Name, a.IP); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tenant)
}

// @Summary Update tenant
// @Description Updates a tenant record
// @Tags Tenants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tenant ID"
// @Param request body models.Tenant true "Tenant fields"
// @Success 200 {object} models.Tenant
// @Router /rentals/tenants/{id} [put]
func (h *RentalHandler) UpdateTenant(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var tenant models.Tenant
	if err := c.ShouldBindJSON(&tenant); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	a := requestActor(c)
	updated, err := h.rentalService.UpdateTenant(c.Request.Context(), id, &tenant, a.ID, a.Name, a.IP)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// @Summary Delete tenant
// @Description Removes a tenant; the property goes back to available if empty
// @Tags Tenants
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tenant ID"
// @Success 200 {object} map[string]string
// @Router /rentals/tenants/{id} [delete]
func (h *RentalHandler) DeleteTenant(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	a := requestActor(c)
	if err := h.rentalService.DeleteTenant(c.Request.Context(), id, a.ID, a.Name, a.IP); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tenant removed"})
}

// @Summary List rent payments
// @Description Lists a tenant's payments, newest first
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tenant ID"
// @Success 200 {array} models.RentPayment
// @Router /rentals/tenants/{id}/payments [get]
func (h *RentalHandler) ListPayments(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	payments, err := h.rentalService.ListPayments(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

// @Summary Record rent payment
// @Description Records a payment for a tenant
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tenant ID"
// @Param request body services.PaymentInput true "Payment fields"
// @Success 201 {object} models.RentPayment
// @Router /rentals/tenants/{id}/payments [post]
func (h *RentalHandler) RecordPayment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input services.PaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A positive amount is required"})
		return
	}

	a := requestActor(c)
	payment, err := h.rentalService.RecordPayment(c.Request.Context(), id, input, a.ID, a.Name, a.IP)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}
