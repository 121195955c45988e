package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tewodrosm/sera-api/internal/models"
	"github.com/tewodrosm/sera-api/internal/repository"
	"github.com/tewodrosm/sera-api/internal/services"
	"github.com/tewodrosm/sera-api/internal/storage"
)

type EmployeeHandler struct {
	employeeService *services.EmployeeService
}

func NewEmployeeHandler(employeeService *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// @Summary List employees
// @Description Lists employees with pagination, search, and filters. The guarantee filter accepts a comma-separated set of verified, expired, missing.
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param search query string false "Search by name, code, or phone"
// @Param department query string false "Filter by department"
// @Param status query string false "Filter by status"
// @Param employment_type query string false "Filter by employment type"
// @Param doc_status query string false "Document completeness filter (complete or incomplete)"
// @Param guarantee query string false "Guarantee state filter"
// @Success 200 {object} map[string]interface{}
// @Router /employees [get]
func (h *EmployeeHandler) List(c *gin.Context) {
	query := parseListQuery(c, "department", "status", "employment_type", "doc_status", "guarantee")

	employees, total, err := h.employeeService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(employees, total, query))
}

// @Summary Get employee
// @Description Returns an employee with documents, guarantors, and assignments
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Success 200 {object} models.Employee
// @Router /employees/{id} [get]
func (h *EmployeeHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	employee, err := h.employeeService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"employee":    employee,
		"is_complete": employee.IsComplete(),
	})
}

// @Summary Create employee
// @Description Registers a new employee; full_name derives from the name parts
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.Employee true "Employee fields"
// @Success 201 {object} models.Employee
// @Failure 409 {object} map[string]string
// @Router /employees [post]
func (h *EmployeeHandler) Create(c *gin.Context) {
	var employee models.Employee
	if err := c.ShouldBindJSON(&employee); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "employee_code, first_name, and last_name are required"})
		return
	}
	if employee.EmployeeCode == "" || employee.FirstName == "" || employee.LastName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "employee_code, first_name, and last_name are required"})
		return
	}

	a := requestActor(c)
	if err := h.employeeService.Create(c.Request.Context(), &employee, a.ID, a.Name, a.IP); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, employee)
}

// @Summary Update employee
// @Description Updates an employee record
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Param request body models.Employee true "Employee fields"
// @Success 200 {object} models.Employee
// @Router /employees/{id} [put]
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var employee models.Employee
	if err := c.ShouldBindJSON(&employee); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	a := requestActor(c)
	updated, err := h.employeeService.Update(c.Request.Context(), id, &employee, a.ID, a.Name, a.IP)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// @Summary Delete employee
// @Description Deletes an employee with all documents, guarantors, and files
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Success 200 {object} map[string]string
// @Router /employees/{id} [delete]
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	a := requestActor(c)
	if err := h.employeeService.Delete(c.Request.Context(), id, a.ID, a.Name, a.IP); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted"})
}

// exportQuery parses the filter set shared by both export formats.
func exportQuery(c *gin.Context) *repository.ListQuery {
	return parseListQuery(c, "department", "status", "employment_type", "gender",
		"position", "salary_min", "salary_max", "doc_status", "guarantee")
}

// @Summary Export employees to CSV
// @Description Downloads the roster as CSV; accepts the same filters as the list plus gender, position, and salary range
// @Tags Employees
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {file} binary
// @Router /employees/export [get]
func (h *EmployeeHandler) ExportCSV(c *gin.Context) {
	a := requestActor(c)
	data, filename, err := h.employeeService.ExportCSV(c.Request.Context(), exportQuery(c), a.ID, a.Name, a.IP)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", data)
}

// @Summary Export employees to XLSX
// @Description Downloads the roster as a spreadsheet; accepts the same filters as the CSV export
// @Tags Employees
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} binary
// @Router /employees/export-xlsx [get]
func (h *EmployeeHandler) ExportXLSX(c *gin.Context) {
	a := requestActor(c)
	data, filename, err := h.employeeService.ExportXLSX(c.Request.Context(), exportQuery(c), a.ID, a.Name, a.IP)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// @Summary Import employees from CSV
// @Description Loads employees from an uploaded CSV; rows fail independently
// @Tags Employees
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "CSV file"
// @Param skip_duplicates formData bool false "Count existing codes as skipped instead of errors"
// @Success 200 {object} services.ImportResult
// @Router /employees/import [post]
func (h *EmployeeHandler) ImportCSV(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "CSV file is required"})
		return
	}
	defer file.Close()

	skipDuplicates := c.PostForm("skip_duplicates") == "true"

	a := requestActor(c)
	result, err := h.employeeService.ImportCSV(c.Request.Context(), file, skipDuplicates, a.ID, a.Name, a.IP)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary Upload employee document
// @Description Attaches a file to an employee record
// @Tags Employees
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Param file formData file true "Document file"
// @Param document_type formData string true "Document type"
// @Param expiry_date formData string false "Expiry date (YYYY-MM-DD)"
// @Success 201 {object} models.EmployeeDocument
// @Router /employees/{id}/documents [post]
func (h *EmployeeHandler) UploadDocument(c *gin.Context) {
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
		c.JSON(http.StatusBadRequest, gin.H{"error": "document_type is required"})
		return
	}

	var expiry *time.Time
	if v := c.PostForm("expiry_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "expiry_date must be YYYY-MM-DD"})
			return
		}
		expiry = &t
	}

	a := requestActor(c)
	doc, err := h.employeeService.UploadDocument(c.Request.Context(), id, file, header, docType, expiry, a.ID, a.Name, a.IP)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, doc)
}

// @Summary Download employee document
// @Description Serves an employee document file
// @Tags Employees
// @Produce octet-stream
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Param docId path int true "Document ID"
// @Success 200 {file} binary
// @Router /employees/{id}/documents/{docId}/download [get]
func (h *EmployeeHandler) DownloadDocument(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	docID, ok := parseID(c, "docId")
	if !ok {
		return
	}

	doc, err := h.employeeService.GetDocument(c.Request.Context(), id, docID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.FileAttachment(h.employeeService.FilePath(doc.FilePath), doc.FileName)
}

// @Summary Delete employee document
// @Description Removes an employee document and its file
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Param docId path int true "Document ID"
// @Success 200 {object} map[string]string
// @Router /employees/{id}/documents/{docId} [delete]
func (h *EmployeeHandler) DeleteDocument(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	docID, ok := parseID(c, "docId")
	if !ok {
		return
	}

	a := requestActor(c)
	if err := h.employeeService.DeleteDocument(c.Request.Context(), id, docID, a.ID, a.Name, a.IP); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Document deleted"})
}

// @Summary Add guarantor
// @Description Attaches a guarantor to an employee, starting in pending
// @Tags Guarantors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Param request body models.Guarantor true "Guarantor fields"
// @Success 201 {object} models.Guarantor
// @Router /employees/{id}/guarantors [post]
func (h *EmployeeHandler) AddGuarantor(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var g models.Guarantor
	if err := c.ShouldBindJSON(&g); err != nil || g.FullName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Guarantor full_name is required"})
		return
	}

	a := requestActor(c)
	if err := h.employeeService.AddGuarantor(c.Request.Context(), id, &g, a.ID, a.Name, a.IP); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, g)
}

// @Summary Update guarantor
// @Description Edits guarantor details; decided guarantors fall back to pending
// @Tags Guarantors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Param guarantorId path int true "Guarantor ID"
// @Param request body models.Guarantor true "Guarantor fields"
// @Success 200 {object} models.Guarantor
// @Router /employees/{id}/guarantors/{guarantorId} [put]
func (h *EmployeeHandler) UpdateGuarantor(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	guarantorID, ok := parseID(c, "guarantorId")
	if !ok {
		return
	}

	var g models.Guarantor
	if err := c.ShouldBindJSON(&g); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	a := requestActor(c)
	updated, err := h.employeeService.UpdateGuarantor(c.Request.Context(), id, guarantorID, &g, a.ID, a.Name, a.IP)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

type VerifyGuarantorRequest struct {
	Approve bool   `json:"approve"`
	Notes   string `json:"notes"`
}

// @Summary Verify guarantor
// @Description Moves a pending guarantor to verified or rejected
// @Tags Guarantors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Param guarantorId path int true "Guarantor ID"
// @Param request body VerifyGuarantorRequest true "Decision"
// @Success 200 {object} models.Guarantor
// @Failure 409 {object} map[string]string
// @Router /employees/{id}/guarantors/{guarantorId}/verify [post]
func (h *EmployeeHandler) VerifyGuarantor(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	guarantorID, ok := parseID(c, "guarantorId")
	if !ok {
		return
	}

	var req VerifyGuarantorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	a := requestActor(c)
	g, err := h.employeeService.VerifyGuarantor(c.Request.Context(), id, guarantorID, req.Approve, req.Notes, a.ID, a.Name, a.IP)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

// @Summary Delete guarantor
// @Description Removes a guarantor, its documents, and their files
// @Tags Guarantors
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Param guarantorId path int true "Guarantor ID"
// @Success 200 {object} map[string]string
// @Router /employees/{id}/guarantors/{guarantorId} [delete]
func (h *EmployeeHandler) DeleteGuarantor(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	guarantorID, ok := parseID(c, "guarantorId")
	if !ok {
		return
	}

	a := requestActor(c)
	if err := h.employeeService.DeleteGuarantor(c.Request.Context(), id, guarantorID, a.ID, a.Name, a.IP); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Guarantor deleted"})
}

// @Summary Upload guarantor document
// @Description Attaches a file to a guarantor
// @Tags Guarantors
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Param guarantorId path int true "Guarantor ID"
// @Param file formData file true "Document file"
// @Param document_type formData string false "Document type"
// @Success 201 {object} models.GuarantorDocument
// @Router /employees/{id}/guarantors/{guarantorId}/documents [post]
func (h *EmployeeHandler) UploadGuarantorDocument(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	guarantorID, ok := parseID(c, "guarantorId")
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
	doc, err := h.employeeService.UploadGuarantorDocument(c.Request.Context(), id, guarantorID, file, header, docType, a.ID, a.Name, a.IP)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, doc)
}

// @Summary Download guarantor document
// @Description Serves a guarantor document file
// @Tags Guarantors
// @Produce octet-stream
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Param guarantorId path int true "Guarantor ID"
// @Param docId path int true "Document ID"
// @Success 200 {file} binary
// @Router /employees/{id}/guarantors/{guarantorId}/documents/{docId}/download [get]
func (h *EmployeeHandler) DownloadGuarantorDocument(c *gin.Context) {
	if _, ok := parseID(c, "id"); !ok {
		return
	}
	guarantorID, ok := parseID(c, "guarantorId")
	if !ok {
		return
	}
	docID, ok := parseID(c, "docId")
	if !ok {
		return
	}

	doc, err := h.employeeService.GetGuarantorDocument(c.Request.Context(), guarantorID, docID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.FileAttachment(h.employeeService.FilePath(doc.FilePath), doc.FileName)
}

// @Summary Delete guarantor document
// @Description Removes a guarantor document and its file
// @Tags Guarantors
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Param guarantorId path int true "Guarantor ID"
// @Param docId path int true "Document ID"
// @Success 200 {object} map[string]string
// @Router /employees/{id}/guarantors/{guarantorId}/documents/{docId} [delete]
func (h *EmployeeHandler) DeleteGuarantorDocument(c *gin.Context) {
	if _, ok := parseID(c, "id"); !ok {
		return
	}
	guarantorID, ok := parseID(c, "guarantorId")
	if !ok {
		return
	}
	docID, ok := parseID(c, "docId")
	if !ok {
		return
	}

	a := requestActor(c)
	if err := h.employeeService.DeleteGuarantorDocument(c.Request.Context(), guarantorID, docID, a.ID, a.Name, a.IP); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Document deleted"})
}

// @Summary Record attendance
// @Description Inserts or overwrites the attendance entry for a day
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Param request body services.AttendanceInput true "Attendance fields"
// @Success 201 {object} models.AttendanceRecord
// @Router /employees/{id}/attendance [post]
func (h *EmployeeHandler) RecordAttendance(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input services.AttendanceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date and status are required"})
		return
	}

	a := requestActor(c)
	record, err := h.employeeService.RecordAttendance(c.Request.Context(), id, input, a.ID, a.Name, a.IP)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// @Summary List attendance
// @Description Lists attendance entries, optionally bounded by from/to dates
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {array} models.AttendanceRecord
// @Router /employees/{id}/attendance [get]
func (h *EmployeeHandler) ListAttendance(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var from, to *time.Time
	if v := c.Query("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be YYYY-MM-DD"})
			return
		}
		from = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must be YYYY-MM-DD"})
			return
		}
		to = &t
	}

	records, err := h.employeeService.ListAttendance(c.Request.Context(), id, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}
