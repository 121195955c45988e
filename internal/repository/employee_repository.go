package repository

import (
	"context"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/tewodrosm/sera-api/internal/models"
)

// EmployeeRepository defines the interface for employee data access
type EmployeeRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Employee, error)
	FindByCode(ctx context.Context, code string) (*models.Employee, error)
	Create(ctx context.Context, employee *models.Employee) error
	Update(ctx context.Context, employee *models.Employee) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query *ListQuery) ([]models.Employee, int64, error)
	FindAllWithRelations(ctx context.Context, query *ListQuery) ([]models.Employee, error)

	AddDocument(ctx context.Context, doc *models.EmployeeDocument) error
	FindDocument(ctx context.Context, employeeID, docID uint) (*models.EmployeeDocument, error)
	DeleteDocument(ctx context.Context, docID uint) error
	FindExpiringDocuments(ctx context.Context, before time.Time) ([]models.EmployeeDocument, error)

	AddGuarantor(ctx context.Context, g *models.Guarantor) error
	FindGuarantor(ctx context.Context, id uint) (*models.Guarantor, error)
	UpdateGuarantor(ctx context.Context, g *models.Guarantor) error
	DeleteGuarantor(ctx context.Context, id uint) error
	AddGuarantorDocument(ctx context.Context, doc *models.GuarantorDocument) error
	FindGuarantorDocument(ctx context.Context, guarantorID, docID uint) (*models.GuarantorDocument, error)
	DeleteGuarantorDocument(ctx context.Context, docID uint) error

	UpsertAttendance(ctx context.Context, record *models.AttendanceRecord) error
	ListAttendance(ctx context.Context, employeeID uint, from, to *time.Time) ([]models.AttendanceRecord, error)

	FilePaths(ctx context.Context, employeeID uint) ([]string, error)
}

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) FindByID(ctx context.Context, id uint) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.WithContext(ctx).
		Preload("Documents").
		Preload("Guarantors").
		Preload("Guarantors.Documents").
		Preload("Assignments").
		Preload("Assignments.Client").
		First(&employee, id).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) FindByCode(ctx context.Context, code string) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.WithContext(ctx).
		Where("employee_code = ?", code).
		First(&employee).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) Create(ctx context.Context, employee *models.Employee) error {
	if err := r.db.WithContext(ctx).Create(employee).Error; err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *employeeRepository) Update(ctx context.Context, employee *models.Employee) error {
	if err := r.db.WithContext(ctx).Save(employee).Error; err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *employeeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Select("Documents", "Guarantors", "Attendance", "Assignments").
		Delete(&models.Employee{ID: id}).Error
}

// applyEmployeeFilters translates the SQL-level query filters into WHERE
// clauses. Derived filters (doc_status, guarantee) are the service's job.
func applyEmployeeFilters(db *gorm.DB, query *ListQuery) *gorm.DB {
	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("full_name ILIKE ? OR employee_code ILIKE ? OR phone ILIKE ?",
			search, search, search)
	}
	for _, column := range []string{"department", "status", "employment_type", "gender", "position"} {
		if v := query.Filters[column]; v != "" {
			db = db.Where(column+" = ?", v)
		}
	}
	if v := query.Filters["salary_min"]; v != "" {
		if min, err := strconv.ParseFloat(v, 64); err == nil {
			db = db.Where("salary >= ?", min)
		}
	}
	if v := query.Filters["salary_max"]; v != "" {
		if max, err := strconv.ParseFloat(v, 64); err == nil {
			db = db.Where("salary <= ?", max)
		}
	}
	return db
}

func (r *employeeRepository) List(ctx context.Context, query *ListQuery) ([]models.Employee, int64, error) {
	var employees []models.Employee
	var total int64

	db := applyEmployeeFilters(r.db.WithContext(ctx).Model(&models.Employee{}), query)

	db.Count(&total)
	db = applySortAndPage(db, query, "created_at DESC")

	err := db.Preload("Documents").Preload("Guarantors").Find(&employees).Error
	return employees, total, err
}

// FindAllWithRelations fetches the roster for export: same SQL filters
// as List, no pagination.
func (r *employeeRepository) FindAllWithRelations(ctx context.Context, query *ListQuery) ([]models.Employee, error) {
	var employees []models.Employee
	err := applyEmployeeFilters(r.db.WithContext(ctx).Model(&models.Employee{}), query).
		Preload("Documents").
		Preload("Guarantors").
		Order("employee_code ASC").
		Find(&employees).Error
	return employees, err
}

func (r *employeeRepository) AddDocument(ctx context.Context, doc *models.EmployeeDocument) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *employeeRepository) FindDocument(ctx context.Context, employeeID, docID uint) (*models.EmployeeDocument, error) {
	var doc models.EmployeeDocument
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		First(&doc, docID).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *employeeRepository) DeleteDocument(ctx context.Context, docID uint) error {
	return r.db.WithContext(ctx).Delete(&models.EmployeeDocument{}, docID).Error
}

func (r *employeeRepository) FindExpiringDocuments(ctx context.Context, before time.Time) ([]models.EmployeeDocument, error) {
	var docs []models.EmployeeDocument
	err := r.db.WithContext(ctx).
		Where("expiry_date IS NOT NULL AND expiry_date <= ?", before).
		Order("expiry_date ASC").
		Find(&docs).Error
	return docs, err
}

func (r *employeeRepository) AddGuarantor(ctx context.Context, g *models.Guarantor) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *employeeRepository) FindGuarantor(ctx context.Context, id uint) (*models.Guarantor, error) {
	var g models.Guarantor
	err := r.db.WithContext(ctx).
		Preload("Documents").
		First(&g, id).Error
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *employeeRepository) UpdateGuarantor(ctx context.Context, g *models.Guarantor) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *employeeRepository) DeleteGuarantor(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Select("Documents").Delete(&models.Guarantor{ID: id}).Error
}

func (r *employeeRepository) AddGuarantorDocument(ctx context.Context, doc *models.GuarantorDocument) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *employeeRepository) FindGuarantorDocument(ctx context.Context, guarantorID, docID uint) (*models.GuarantorDocument, error) {
	var doc models.GuarantorDocument
	err := r.db.WithContext(ctx).
		Where("guarantor_id = ?", guarantorID).
		First(&doc, docID).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *employeeRepository) DeleteGuarantorDocument(ctx context.Context, docID uint) error {
	return r.db.WithContext(ctx).Delete(&models.GuarantorDocument{}, docID).Error
}

// UpsertAttendance inserts or overwrites the record for the
// employee/date pair. One row per employee per day.
func (r *employeeRepository) UpsertAttendance(ctx context.Context, record *models.AttendanceRecord) error {
	var existing models.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND date = ?", record.EmployeeID, record.Date).
		First(&existing).Error
	if err == nil {
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
		return r.db.WithContext(ctx).Save(record).Error
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *employeeRepository) ListAttendance(ctx context.Context, employeeID uint, from, to *time.Time) ([]models.AttendanceRecord, error) {
	db := r.db.WithContext(ctx).Where("employee_id = ?", employeeID)
	if from != nil {
		db = db.Where("date >= ?", *from)
	}
	if to != nil {
		db = db.Where("date <= ?", *to)
	}

	var records []models.AttendanceRecord
	err := db.Order("date DESC").Find(&records).Error
	return records, err
}

// FilePaths collects every stored file path belonging to an employee,
// including guarantor documents, for cascade deletion.
func (r *employeeRepository) FilePaths(ctx context.Context, employeeID uint) ([]string, error) {
	var paths []string

	var docPaths []string
	if err := r.db.WithContext(ctx).
		Model(&models.EmployeeDocument{}).
		Where("employee_id = ? AND file_path <> ''", employeeID).
		Pluck("file_path", &docPaths).Error; err != nil {
		return nil, err
	}
	paths = append(paths, docPaths...)

	var guarantorPaths []string
	err := r.db.WithContext(ctx).
		Model(&models.GuarantorDocument{}).
		Joins("JOIN guarantors ON guarantors.id = guarantor_documents.guarantor_id").
		Where("guarantors.employee_id = ? AND guarantor_documents.file_path <> ''", employeeID).
		Pluck("guarantor_documents.file_path", &guarantorPaths).Error
	if err != nil {
		return nil, err
	}
	return append(paths, guarantorPaths...), nil
}
