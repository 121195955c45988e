package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tewodrosm/sera-api/internal/models"
	"github.com/tewodrosm/sera-api/internal/services"
)

type InventoryHandler struct {
	inventoryService *services.InventoryService
}

func NewInventoryHandler(inventoryService *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// @Summary List inventory items
// @Description Lists stock items with pagination, search, and filters
// @Tags Inventory
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param search query string false "Search by name or code"
// @Param category query string false "Filter by category"
// @Param status query string false "Filter by status"
// @Param low_stock query bool false "Only items at or below minimum stock"
// @Success 200 {object} map[string]interface{}
// @Router /inventory [get]
func (h *InventoryHandler) List(c *gin.Context) {
	query := parseListQuery(c, "category", "status", "low_stock")

	items, total, err := h.inventoryService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(items, total, query))
}

// @Summary Get inventory item
// @Description Returns a single stock item
// @Tags Inventory
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Success 200 {object} models.InventoryItem
// @Router /inventory/{id} [get]
func (h *InventoryHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	item, err := h.inventoryService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// @Summary Create inventory item
// @Description Registers a stock item; opening stock becomes an initial "in" transaction
// @Tags Inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.InventoryItem true "Item fields"
// @Success 201 {object} models.InventoryItem
// @Failure 409 {object} map[string]string
// @Router /inventory [post]
func (h *InventoryHandler) Create(c *gin.Context) {
	var item models.InventoryItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item_code, name, and category are required"})
		return
	}
	if item.ItemCode == "" || item.Name == "" || item.Category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item_code, name, and category are required"})
		return
	}

	a := requestActor(c)
	if err := h.inventoryService.Create(c.Request.Context(), &item, a.ID, a.Name, a.IP); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// @Summary Update inventory item
// @Description Updates item metadata; stock level cannot be edited here
// @Tags Inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Param request body models.InventoryItem true "Item fields"
// @Success 200 {object} models.InventoryItem
// @Router /inventory/{id} [put]
func (h *InventoryHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var item models.InventoryItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	a := requestActor(c)
	updated, err := h.inventoryService.Update(c.Request.Context(), id, &item, a.ID, a.Name, a.IP)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// @Summary Delete inventory item
// @Description Deletes a stock item and its transaction history
// @Tags Inventory
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Success 200 {object} map[string]string
// @Router /inventory/{id} [delete]
func (h *InventoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	a := requestActor(c)
	if err := h.inventoryService.Delete(c.Request.Context(), id, a.ID, a.Name, a.IP); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
}

// @Summary Record stock transaction
// @Description Applies an in/out/adjustment movement; out below zero is rejected
// @Tags Inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Param request body services.TransactionInput true "Transaction fields"
// @Success 201 {object} map[string]interface{}
// @Failure 409 {object} map[string]string
// @Router /inventory/{id}/transactions [post]
func (h *InventoryHandler) RecordTransaction(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input services.TransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "transaction_type and quantity are required"})
		return
	}

	a := requestActor(c)
	item, txn, err := h.inventoryService.RecordTransaction(c.Request.Context(), id, input, a.ID, a.Name, a.IP)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"transaction":   txn,
		"current_stock": item.CurrentStock,
	})
}

// @Summary List stock transactions
// @Description Lists an item's movement history, newest first
// @Tags Inventory
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Param transaction_type query string false "Filter by type"
// @Success 200 {object} map[string]interface{}
// @Router /inventory/{id}/transactions [get]
func (h *InventoryHandler) ListTransactions(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	query := parseListQuery(c, "transaction_type")

	txns, total, err := h.inventoryService.ListTransactions(c.Request.Context(), id, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(txns, total, query))
}

// @Summary List suppliers
// @Description Lists suppliers with pagination and search
// @Tags Suppliers
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search by name or contact"
// @Success 200 {object} map[string]interface{}
// @Router /inventory/suppliers [get]
func (h *InventoryHandler) ListSuppliers(c *gin.Context) {
	query := parseListQuery(c, "status")

	suppliers, total, err := h.inventoryService.ListSuppliers(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(suppliers, total, query))
}

// @Summary Create supplier
// @Description Registers a supplier
// @Tags Suppliers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.Supplier true "Supplier fields"
// @Success 201 {object} models.Supplier
// @Router /inventory/suppliers [post]
func (h *InventoryHandler) CreateSupplier(c *gin.Context) {
	var supplier models.Supplier
	if err := c.ShouldBindJSON(&supplier); err != nil || supplier.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Supplier name is required"})
		return
	}

	a := requestActor(c)
	if err := h.inventoryService.CreateSupplier(c.Request.Context(), &supplier, a.ID, a.Name, a.IP); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, supplier)
}

// @Summary Update supplier
// @Description Updates a supplier
// @Tags Suppliers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Supplier ID"
// @Param request body models.Supplier true "Supplier fields"
// @Success 200 {object} models.Supplier
// @Router /inventory/suppliers/{id} [put]
func (h *InventoryHandler) UpdateSupplier(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var supplier models.Supplier
	if err := c.ShouldBindJSON(&supplier); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	a := requestActor(c)
	updated, err := h.inventoryService.UpdateSupplier(c.Request.Context(), id, &supplier, a.ID, a.Name, a.IP)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// @Summary Delete supplier
// @Description Deletes a supplier
// @Tags Suppliers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Supplier ID"
// @Success 200 {object} map[string]string
// @Router /inventory/suppliers/{id} [delete]
func (h *InventoryHandler) DeleteSupplier(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	a := requestActor(c)
	if err := h.inventoryService.DeleteSupplier(c.Request.Context(), id, a.ID, a.Name, a.IP); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Supplier deleted"})
}
