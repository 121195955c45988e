package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/tewodrosm/sera-api/internal/models"
	"github.com/tewodrosm/sera-api/internal/repository"
	"github.com/tewodrosm/sera-api/internal/statemachine"
	"github.com/tewodrosm/sera-api/internal/storage"
	"github.com/tewodrosm/sera-api/pkg/logger"
)

// EmployeeService handles employee records, documents, guarantors, and
// attendance
type EmployeeService struct {
	employeeRepo repository.EmployeeRepository
	storage      *storage.LocalStorage
	auditSvc     *AuditService
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(employeeRepo repository.EmployeeRepository, store *storage.LocalStorage, auditSvc *AuditService) *EmployeeService {
	return &EmployeeService{
		employeeRepo: employeeRepo,
		storage:      store,
		auditSvc:     auditSvc,
	}
}

// List returns employees matching the query. The doc_status and
// guarantee filters derive from child rows, so they run in-memory after
// the SQL page and compose with it.
func (s *EmployeeService) List(ctx context.Context, query *repository.ListQuery) ([]models.Employee, int64, error) {
	employees, total, err := s.employeeRepo.List(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	if filtered, applied := applyComputedFilters(employees, query); applied {
		return filtered, int64(len(filtered)), nil
	}
	return employees, total, nil
}

// applyComputedFilters runs the derived filters over an already-fetched
// set. The second return reports whether any filter was applied, since
// the caller's SQL total is no longer valid once one was.
func applyComputedFilters(employees []models.Employee, query *repository.ListQuery) ([]models.Employee, bool) {
	filtered := employees
	applied := false

	if ds := query.Filters["doc_status"]; ds != "" {
		filtered = filterByDocStatus(filtered, ds)
		applied = true
	}
	if g := query.Filters["guarantee"]; g != "" {
		filtered = filterByGuarantee(filtered, strings.Split(g, ","))
		applied = true
	}
	return filtered, applied
}

// filterByDocStatus keeps employees whose computed document completeness
// matches: complete means at least RequiredDocumentCount documents.
func filterByDocStatus(employees []models.Employee, status string) []models.Employee {
	var wantComplete bool
	switch status {
	case "complete":
		wantComplete = true
	case "incomplete":
		wantComplete = false
	default:
		return employees
	}

	out := make([]models.Employee, 0, len(employees))
	for _, e := range employees {
		if e.IsComplete() == wantComplete {
			out = append(out, e)
		}
	}
	return out
}

// filterByGuarantee keeps employees matching any of the requested
// guarantee states: verified (at least one verified guarantor), expired
// (at least one rejected guarantor), missing (no guarantors at all).
func filterByGuarantee(employees []models.Employee, states []string) []models.Employee {
	want := make(map[string]bool, len(states))
	for _, st := range states {
		want[strings.TrimSpace(st)] = true
	}

	out := make([]models.Employee, 0, len(employees))
	for _, e := range employees {
		var verified, expired bool
		for _, g := range e.Guarantors {
			switch g.VerificationStatus {
			case models.GuarantorVerified:
				verified = true
			case models.GuarantorRejected:
				expired = true
			}
		}
		missing := len(e.Guarantors) == 0

		if (want["verified"] && verified) || (want["expired"] && expired) || (want["missing"] && missing) {
			out = append(out, e)
		}
	}
	return out
}

// Get returns a single employee with documents, guarantors, and
// assignments loaded
func (s *EmployeeService) Get(ctx context.Context, id uint) (*models.Employee, error) {
	employee, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return employee, nil
}

// Create registers a new employee
func (s *EmployeeService) Create(ctx context.Context, employee *models.Employee, actorID uint, actorName, ip string) error {
	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrDuplicate
		}
		return err
	}

	s.auditSvc.Log(ctx, actorID, actorName, models.AuditActionCreate, "employee", employee.ID,
		fmt.Sprintf("Created employee %s (%s)", employee.FullName, employee.EmployeeCode), ip)
	return nil
}

// Update modifies an employee record
func (s *EmployeeService) Update(ctx context.Context, id uint, updated *models.Employee, actorID uint, actorName, ip string) (*models.Employee, error) {
	employee, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updated.ID = employee.ID
	updated.EmployeeCode = employee.EmployeeCode
	updated.CreatedAt = employee.CreatedAt

	if err := s.employeeRepo.Update(ctx, updated); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	s.auditSvc.Log(ctx, actorID, actorName, models.AuditActionUpdate, "employee", id,
		fmt.Sprintf("Updated employee %s", updated.FullName), ip)
	return updated, nil
}

// Delete removes an employee and every file attached to the record,
// including guarantor documents. Files go first; a filesystem failure
// aborts the whole cascade before any row is touched.
func (s *EmployeeService) Delete(ctx context.Context, id, actorID uint, actorName, ip string) error {
	employee, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	paths, err := s.employeeRepo.FilePaths(ctx, id)
	if err != nil {
		return err
	}
	for _, p := range paths {
		if err := s.storage.Delete(p); err != nil {
			return fmt.Errorf("failed to delete employee file %s: %w", p, err)
		}
	}

	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.auditSvc.Log(ctx, actorID, actorName, models.AuditActionDelete, "employee", id,
		fmt.Sprintf("Deleted employee %s (%s)", employee.FullName, employee.EmployeeCode), ip)
	return nil
}

// --- Documents ---

// UploadDocument stores a file for an employee. The stored name is
// derived from the employee's name and the document type.
func (s *EmployeeService) UploadDocument(ctx context.Context, employeeID uint, file multipart.File, header *multipart.FileHeader, docType string, expiryDate *time.Time, actorID uint, actorName, ip string) (*models.EmployeeDocument, error) {
	employee, err := s.Get(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	path, err := s.storage.Upload(file, header, storage.DirEmployees, employee.FullName, docType)
	if err != nil {
		return nil, err
	}

	doc := &models.EmployeeDocument{
		EmployeeID:   employeeID,
		DocumentType: docType,
		FileName:     header.Filename,
		FilePath:     path,
		ExpiryDate:   expiryDate,
	}
	if err := s.employeeRepo.AddDocument(ctx, doc); err != nil {
		if derr := s.storage.Delete(path); derr != nil {
			logger.Error("failed to remove orphaned upload", "path", path, "error", derr)
		}
		return nil, err
	}

	s.auditSvc.Log(ctx, actorID, actorName, models.AuditActionCreate, "employee_document", doc.ID,
		fmt.Sprintf("Uploaded %s for employee %s", docType, employee.EmployeeCode), ip)
	return doc, nil
}

// GetDocument returns a document row for download
func (s *EmployeeService) GetDocument(ctx context.Context, employeeID, docID uint) (*models.EmployeeDocument, error) {
	doc, err := s.employeeRepo.FindDocument(ctx, employeeID, docID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

// DeleteDocument removes a document row and its file
func (s *EmployeeService) DeleteDocument(ctx context.Context, employeeID, docID, actorID uint, actorName, ip string) error {
	doc, err := s.GetDocument(ctx, employeeID, docID)
	if err != nil {
		return err
	}

	if doc.FilePath != "" {
		if err := s.storage.Delete(doc.FilePath); err != nil {
			return fmt.Errorf("failed to delete file %s: %w", doc.FilePath, err)
		}
	}
	if err := s.employeeRepo.DeleteDocument(ctx, docID); err != nil {
		return err
	}

	s.auditSvc.Log(ctx, actorID, actorName, models.AuditActionDelete, "employee_document", docID,
		fmt.Sprintf("Deleted document %s from employee %d", doc.FileName, employeeID), ip)
	return nil
}

// --- Guarantors ---

// AddGuarantor attaches a guarantor to an employee, starting pending
func (s *EmployeeService) AddGuarantor(ctx context.Context, employeeID uint, g *models.Guarantor, actorID uint, actorName, ip string) error {
	employee, err := s.Get(ctx, employeeID)
	if err != nil {
		return err
	}

	g.EmployeeID = employeeID
	g.VerificationStatus = models.GuarantorPending

	if err := s.employeeRepo.AddGuarantor(ctx, g); err != nil {
		return err
	}

	s.auditSvc.Log(ctx, actorID, actorName, models.AuditActionCreate, "guarantor", g.ID,
		fmt.Sprintf("Added guarantor %s for employee %s", g.FullName, employee.EmployeeCode), ip)
	return nil
}

// UpdateGuarantor edits guarantor details. Editing a decided guarantor
// drops it back to pending so it has to be verified again.
func (s *EmployeeService) UpdateGuarantor(ctx context.Context, employeeID, guarantorID uint, updated *models.Guarantor, actorID uint, actorName, ip string) (*models.Guarantor, error) {
	g, err := s.findGuarantorOf(ctx, employeeID, guarantorID)
	if err != nil {
		return nil, err
	}

	if g.VerificationStatus != models.GuarantorPending {
		machine := statemachine.NewGuarantorFSM(g)
		if err := machine.Resubmit(ctx); err != nil {
			return nil, ErrInvalidState
		}
	}

	updated.ID = g.ID
	updated.EmployeeID = g.EmployeeID
	updated.VerificationStatus = g.VerificationStatus
	updated.VerifiedBy = nil
	updated.VerifiedAt = nil
	updated.CreatedAt = g.CreatedAt

	if err := s.employeeRepo.UpdateGuarantor(ctx, updated); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, actorID, actorName, models.AuditActionUpdate, "guarantor", guarantorID,
		fmt.Sprintf("Updated guarantor %s", updated.FullName), ip)
	return updated, nil
}

// VerifyGuarantor moves a pending guarantor to verified or rejected
func (s *EmployeeService) VerifyGuarantor(ctx context.Context, employeeID, guarantorID uint, approve bool, notes string, actorID uint, actorName, ip string) (*models.Guarantor, error) {
	g, err := s.findGuarantorOf(ctx, employeeID, guarantorID)
	if err != nil {
		return nil, err
	}

	machine := statemachine.NewGuarantorFSM(g)
	if approve {
		err = machine.Verify(ctx)
	} else {
		err = machine.Reject(ctx)
	}
	if err != nil {
		return nil, ErrInvalidState
	}

	now := time.Now()
	g.VerifiedAt = &now
	if actorID != 0 {
		g.VerifiedBy = &actorID
	}
	if notes != "" {
		g.Notes = notes
	}

	if err := s.employeeRepo.UpdateGuarantor(ctx, g); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, actorID, actorName, models.AuditActionUpdate, "guarantor", guarantorID,
		fmt.Sprintf("Guarantor %s marked %s", g.FullName, g.VerificationStatus), ip)
	return g, nil
}

// DeleteGuarantor removes a guarantor, its documents, and their files
func (s *EmployeeService) DeleteGuarantor(ctx context.Context, employeeID, guarantorID, actorID uint, actorName, ip string) error {
	g, err := s.findGuarantorOf(ctx, employeeID, guarantorID)
	if err != nil {
		return err
	}

	for _, doc := range g.Documents {
		if doc.FilePath == "" {
			continue
		}
		if err := s.storage.Delete(doc.FilePath); err != nil {
			return fmt.Errorf("failed to delete guarantor file %s: %w", doc.FilePath, err)
		}
	}

	if err := s.employeeRepo.DeleteGuarantor(ctx, guarantorID); err != nil {
		return err
	}

	s.auditSvc.Log(ctx, actorID, actorName, models.AuditActionDelete, "guarantor", guarantorID,
		fmt.Sprintf("Deleted guarantor %s", g.FullName), ip)
	return nil
}

// UploadGuarantorDocument stores a file for a guarantor. The stored name
// carries both the employee's and the guarantor's name.
func (s *EmployeeService) UploadGuarantorDocument(ctx context.Context, employeeID, guarantorID uint, file multipart.File, header *multipart.FileHeader, docType string, actorID uint, actorName, ip string) (*models.GuarantorDocument, error) {
	employee, err := s.Get(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	g, err := s.findGuarantorOf(ctx, employeeID, guarantorID)
	if err != nil {
		return nil, err
	}

	path, err := s.storage.Upload(file, header, storage.DirGuarantors, employee.FullName, g.FullName, docType)
	if err != nil {
		return nil, err
	}

	doc := &models.GuarantorDocument{
		GuarantorID:  guarantorID,
		DocumentType: docType,
		FileName:     header.Filename,
		FilePath:     path,
	}
	if err := s.employeeRepo.AddGuarantorDocument(ctx, doc); err != nil {
		if derr := s.storage.Delete(path); derr != nil {
			logger.Error("failed to remove orphaned upload", "path", path, "error", derr)
		}
		return nil, err
	}

	s.auditSvc.Log(ctx, actorID, actorName, models.AuditActionCreate, "guarantor_document", doc.ID,
		fmt.Sprintf("Uploaded %s for guarantor %s", docType, g.FullName), ip)
	return doc, nil
}

// GetGuarantorDocument returns a guarantor document row for download
func (s *EmployeeService) GetGuarantorDocument(ctx context.Context, guarantorID, docID uint) (*models.GuarantorDocument, error) {
	doc, err := s.employeeRepo.FindGuarantorDocument(ctx, guarantorID, docID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

// DeleteGuarantorDocument removes a guarantor document and its file
func (s *EmployeeService) DeleteGuarantorDocument(ctx context.Context, guarantorID, docID, actorID uint, actorName, ip string) error {
	doc, err := s.GetGuarantorDocument(ctx, guarantorID, docID)
	if err != nil {
		return err
	}

	if doc.FilePath != "" {
		if err := s.storage.Delete(doc.FilePath); err != nil {
			return fmt.Errorf("failed to delete file %s: %w", doc.FilePath, err)
		}
	}
	if err := s.employeeRepo.DeleteGuarantorDocument(ctx, docID); err != nil {
		return err
	}

	s.auditSvc.Log(ctx, actorID, actorName, models.AuditActionDelete, "guarantor_document", docID,
		fmt.Sprintf("Deleted guarantor document %s", doc.FileName), ip)
	return nil
}

func (s *EmployeeService) findGuarantorOf(ctx context.Context, employeeID, guarantorID uint) (*models.Guarantor, error) {
	g, err := s.employeeRepo.FindGuarantor(ctx, guarantorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if g.EmployeeID != employeeID {
		return nil, ErrNotFound
	}
	return g, nil
}

// --- Attendance ---

// AttendanceInput holds the fields for one attendance entry
type AttendanceInput struct {
	Date     string `json:"date" binding:"required"`
	Status   string `json:"status" binding:"required"`
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
	Notes    string `json:"notes"`
}

// RecordAttendance inserts or overwrites the entry for the given day
func (s *EmployeeService) RecordAttendance(ctx context.Context, employeeID uint, input AttendanceInput, actorID uint, actorName, ip string) (*models.AttendanceRecord, error) {
	if !models.IsValidAttendanceStatus(input.Status) {
		return nil, fmt.Errorf("%w: unknown attendance status %q", ErrValidation, input.Status)
	}
	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", ErrValidation, input.Date)
	}

	if _, err := s.Get(ctx, employeeID); err != nil {
		return nil, err
	}

	record := &models.AttendanceRecord{
		EmployeeID: employeeID,
		Date:       date,
		Status:     input.Status,
		CheckIn:    input.CheckIn,
		CheckOut:   input.CheckOut,
		Notes:      input.Notes,
	}
	if err := s.employeeRepo.UpsertAttendance(ctx, record); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, actorID, actorName, models.AuditActionCreate, "attendance", record.ID,
		fmt.Sprintf("Attendance %s for employee %d on %s", input.Status, employeeID, input.Date), ip)
	return record, nil
}

// ListAttendance returns attendance entries, optionally bounded by a
// date range
func (s *EmployeeService) ListAttendance(ctx context.Context, employeeID uint, from, to *time.Time) ([]models.AttendanceRecord, error) {
	if _, err := s.Get(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.employeeRepo.ListAttendance(ctx, employeeID, from, to)
}

// FilePath resolves a stored file's absolute path for serving
func (s *EmployeeService) FilePath(relative string) string {
	return s.storage.GetFullPath(relative)
}
