package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tewodrosm/sera-api/internal/models"
	"github.com/tewodrosm/sera-api/internal/services"
	"github.com/tewodrosm/sera-api/internal/storage"
)

type AssetHandler struct {
	assetService *services.AssetService
}

func NewAssetHandler(assetService *services.AssetService) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

// @Summary List assets
// @Description Lists assets with pagination, search, and filters
// @Tags Assets
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param search query string false "Search by name, code, or location"
// @Param category query string false "Filter by category"
// @Param status query string false "Filter by status"
// @Param department query string false "Filter by department"
// @Success 200 {object} map[string]interface{}
// @Router /assets [get]
func (h *AssetHandler) List(c *gin.Context) {
	query := parseListQuery(c, "category", "status", "department")

	assets, total, err := h.assetService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(assets, total, query))
}

// @Summary Get asset
// @Description Returns a single asset with its documents
// @Tags Assets
// @Produce json
// @Security BearerAuth
// @Param id path int true "Asset ID"
// @Success 200 {object} models.Asset
// @Failure 404 {object} map[string]string
// @Router /assets/{id} [get]
func (h *AssetHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	asset, err := h.assetService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, asset)
}

// @Summary Create asset
// @Description Registers a new asset
// @Tags Assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.Asset true "Asset fields"
// @Success 201 {object} models.Asset
// @Failure 409 {object} map[string]string
// @Router /assets [post]
func (h *AssetHandler) Create(c *gin.Context) {
	var asset models.Asset
	if err := c.ShouldBindJSON(&asset); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "asset_code, name, and category are required"})
		return
	}
	if asset.AssetCode == "" || asset.Name == "" || asset.Category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "asset_code, name, and category are required"})
		return
	}

	a := requestActor(c)
	if a.ID != 0 {
		asset.CreatedBy = &a.ID
	}
	if err := h.assetService.Create(c.Request.Context(), &asset, a.ID, a.Name, a.IP); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, asset)
}

// @Summary Update asset
// @Description Updates an asset and appends a history entry
// @Tags Assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Asset ID"
// @Param request body models.Asset true "Asset fields"
// @Success 200 {object} models.Asset
// @Router /assets/{id} [put]
func (h *AssetHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var asset models.Asset
	if err := c.ShouldBindJSON(&asset); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	a := requestActor(c)
	updated, err := h.assetService.Update(c.Request.Context(), id, &asset, a.ID, a.Name, a.IP)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// @Summary Delete asset
// @Description Deletes an asset with its documents, history, and files
// @Tags Assets
// @Produce json
// @Security BearerAuth
// @Param id path int true "Asset ID"
// @Success 200 {object} map[string]string
// @Router /assets/{id} [delete]
func (h *AssetHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	a := requestActor(c)
	if err := h.assetService.Delete(c.Request.Context(), id, a.ID, a.Name, a.IP); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Asset deleted"})
}

// @Summary Upload asset document
// @Description Attaches a file to an asset
// @Tags Assets
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Asset ID"
// @Param file formData file true "Document file"
// @Param document_type formData string false "Document type"
// @Success 201 {object} models.AssetDocument
// @Router /assets/{id}/documents [post]
func (h *AssetHandler) UploadDocument(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}
	defer file.Close()

	if header.Size > storage.MaxFileSize() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds the 10MB limit"})
		return
	}
	if ct := header.Header.Get("Content-Type"); !storage.IsValidContentType(ct) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only PDF, JPEG, and PNG files are allowed"})
		return
	}

	docType := c.PostForm("document_type")
	if docType == "" {
		docType = "general"
	}

	a := requestActor(c)
	doc, err := h.assetService.UploadDocument(c.Request.Context(), id, file, header, docType, a.ID, a.Name, a.IP)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, doc)
}

// @Summary Download asset document
// @Description Serves an asset document file
// @Tags Assets
// @Produce octet-stream
// @Security BearerAuth
// @Param id path int true "Asset ID"
// @Param docId path int true "Document ID"
// @Success 200 {file} binary
// @Router /assets/{id}/documents/{docId}/download [get]
func (h *AssetHandler) DownloadDocument(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	docID, ok := parseID(c, "docId")
	if !ok {
		return
	}

	doc, err := h.assetService.GetDocument(c.Request.Context(), id, docID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.FileAttachment(h.assetService.FilePath(doc.FilePath), doc.FileName)
}

// @Summary Delete asset document
// @Description Removes an asset document and its file
// @Tags Assets
// @Produce json
// @Security BearerAuth
// @Param id path int true "Asset ID"
// @Param docId path int true "Document ID"
// @Success 200 {object} map[string]string
// @Router /assets/{id}/documents/{docId} [delete]
func (h *AssetHandler) DeleteDocument(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	docID, ok := parseID(c, "docId")
	if !ok {
		return
	}

	a := requestActor(c)
	if err := h.assetService.DeleteDocument(c.Request.Context(), id, docID, a.ID, a.Name, a.IP); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Document deleted"})
}

// @Summary Asset history
// @Description Lists an asset's history entries, newest first
// @Tags Assets
// @Produce json
// @Security BearerAuth
// @Param id path int true "Asset ID"
// @Success 200 {array} models.AssetHistory
// @Router /assets/{id}/history [get]
func (h *AssetHandler) History(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	history, err := h.assetService.History(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}
