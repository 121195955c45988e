package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/tewodrosm/sera-api/internal/models"
)

// ClientRepository defines the interface for client data access
type ClientRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Client, error)
	Create(ctx context.Context, client *models.Client) error
	Update(ctx context.Context, client *models.Client) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query *ListQuery) ([]models.Client, int64, error)

	CreateContract(ctx context.Context, contract *models.ServiceContract) error
	FindContract(ctx context.Context, id uint) (*models.ServiceContract, error)
	UpdateContract(ctx context.Context, contract *models.ServiceContract) error
	DeleteContract(ctx context.Context, id uint) error
	ListContracts(ctx context.Context, clientID uint) ([]models.ServiceContract, error)

	CreateAssignment(ctx context.Context, assignment *models.EmployeeAssignment) error
	FindAssignment(ctx context.Context, id uint) (*models.EmployeeAssignment, error)
	UpdateAssignment(ctx context.Context, assignment *models.EmployeeAssignment) error
	DeleteAssignment(ctx context.Context, id uint) error
	ListAssignments(ctx context.Context, clientID uint) ([]models.EmployeeAssignment, error)
}

type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) FindByID(ctx context.Context, id uint) (*models.Client, error) {
	var client models.Client
	err := r.db.WithContext(ctx).
		Preload("Contracts").
		Preload("Assignments").
		Preload("Assignments.Employee").
		First(&client, id).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) Create(ctx context.Context, client *models.Client) error {
	if err := r.db.WithContext(ctx).Create(client).Error; err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *clientRepository) Update(ctx context.Context, client *models.Client) error {
	if err := r.db.WithContext(ctx).Save(client).Error; err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *clientRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Select("Contracts", "Assignments").
		Delete(&models.Client{ID: id}).Error
}

func (r *clientRepository) List(ctx context.Context, query *ListQuery) ([]models.Client, int64, error) {
	var clients []models.Client
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Client{})

	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("name ILIKE ? OR client_code ILIKE ? OR contact_person ILIKE ?",
			search, search, search)
	}
	if query.Filters["client_type"] != "" {
		db = db.Where("client_type = ?", query.Filters["client_type"])
	}
	if query.Filters["status"] != "" {
		db = db.Where("status = ?", query.Filters["status"])
	}

	db.Count(&total)
	db = applySortAndPage(db, query, "created_at DESC")

	err := db.Preload("Contracts").Find(&clients).Error
	return clients, total, err
}

func (r *clientRepository) CreateContract(ctx context.Context, contract *models.ServiceContract) error {
	if err := r.db.WithContext(ctx).Create(contract).Error; err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *clientRepository) FindContract(ctx context.Context, id uint) (*models.ServiceContract, error) {
	var contract models.ServiceContract
	err := r.db.WithContext(ctx).
		Preload("Client").
		First(&contract, id).Error
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *clientRepository) UpdateContract(ctx context.Context, contract *models.ServiceContract) error {
	return r.db.WithContext(ctx).Save(contract).Error
}

func (r *clientRepository) DeleteContract(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.ServiceContract{}, id).Error
}

func (r *clientRepository) ListContracts(ctx context.Context, clientID uint) ([]models.ServiceContract, error) {
	var contracts []models.ServiceContract
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&contracts).Error
	return contracts, err
}

func (r *clientRepository) CreateAssignment(ctx context.Context, assignment *models.EmployeeAssignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *clientRepository) FindAssignment(ctx context.Context, id uint) (*models.EmployeeAssignment, error) {
	var assignment models.EmployeeAssignment
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Client").
		First(&assignment, id).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *clientRepository) UpdateAssignment(ctx context.Context, assignment *models.EmployeeAssignment) error {
	return r.db.WithContext(ctx).Save(assignment).Error
}

func (r *clientRepository) DeleteAssignment(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.EmployeeAssignment{}, id).Error
}

func (r *clientRepository) ListAssignments(ctx context.Context, clientID uint) ([]models.EmployeeAssignment, error) {
	var assignments []models.EmployeeAssignment
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Preload("Employee").
		Order("created_at DESC").
		Find(&assignments).Error
	return assignments, err
}
