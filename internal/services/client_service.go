package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/tewodrosm/sera-api/internal/models"
	"github.com/tewodrosm/sera-api/internal/repository"
)

// ClientService handles clients, service contracts, and employee
// assignments
type ClientService struct {
	clientRepo   repository.ClientRepository
	employeeRepo repository.EmployeeRepository
	auditSvc     *AuditService
}

// NewClientService creates a new client service
func NewClientService(clientRepo repository.ClientRepository, employeeRepo repository.EmployeeRepository, auditSvc *AuditService) *ClientService {
	return &ClientService{
		clientRepo:   clientRepo,
		employeeRepo: employeeRepo,
		auditSvc:     auditSvc,
	}
}

// List returns clients matching the query
func (s *ClientService) List(ctx context.Context, query *repository.ListQuery) ([]models.Client, int64, error) {
	return s.clientRepo.List(ctx, query)
}

// Get returns a single client with contracts and assignments
func (s *ClientService) Get(ctx context.Context, id uint) (*models.Client, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return client, nil
}

// Create registers a new client
func (s *ClientService) Create(ctx context.Context, client *models.Client, actorID uint, actorName, ip string) error {
	if err := s.clientRepo.Create(ctx, client); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrDuplicate
		}
		return err
	}

	s.auditSvc.Log(ctx, actorID, actorName, models.AuditActionCreate, "client", client.ID,
		fmt.Sprintf("Created client %s (%s)", client.Name, client.ClientCode), ip)
	return nil
}

// Update modifies a client
func (s *ClientService) Update(ctx context.Context, id uint, updated *models.Client, actorID uint, actorName, ip string) (*models.Client, error) {
	client, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updated.ID = client.ID
	updated.ClientCode = client.ClientCode
	updated.CreatedAt = client.CreatedAt

	if err := s.clientRepo.Update(ctx, updated); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	s.auditSvc.Log(ctx, actorID, actorName, models.AuditActionUpdate, "client", id,
		fmt.Sprintf("Updated client %s", updated.Name), ip)
	return updated, nil
}

// Delete removes a client with its contracts and assignments
func (s *ClientService) Delete(ctx context.Context, id, actorID uint, actorName, ip string) error {
	client, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.clientRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.auditSvc.Log(ctx, actorID, actorName, models.AuditActionDelete, "client", id,
		fmt.Sprintf("Deleted client %s (%s)", client.Name, client.ClientCode), ip)
	return nil
}

// --- Contracts ---

// ListContracts returns a client's service contracts
func (s *ClientService) ListContracts(ctx context.Context, clientID uint) ([]models.ServiceContract, error) {
	if _, err := s.Get(ctx, clientID); err != nil {
		return nil, err
	}
	return s.clientRepo.ListContracts(ctx, clientID)
}

// CreateContract opens a new service contract for a client
func (s *ClientService) CreateContract(ctx context.Context, clientID uint, contract *models.ServiceContract, actorID uint, actorName, ip string) error {
	client, err := s.Get(ctx, clientID)
	if err != nil {
		return err
	}

	contract.ClientID = clientID
	if err := s.clientRepo.CreateContract(ctx, contract); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrDuplicate
		}
		return err
	}

	s.auditSvc.Log(ctx, actorID, actorName, models.AuditActionCreate, "service_contract", contract.ID,
		fmt.Sprintf("Created contract %s for client %s", contract.ContractCode, client.Name), ip)
	return nil
}

// UpdateContract modifies a service contract
func (s *ClientService) UpdateContract(ctx context.Context, clientID, contractID uint, updated *models.ServiceContract, actorID uint, actorName, ip string) (*models.ServiceContract, error) {
	contract, err := s.findContractOf(ctx, clientID, contractID)
	if err != nil {
		return nil, err
	}

	updated.ID = contract.ID
	updated.ClientID = contract.ClientID
	updated.ContractCode = contract.ContractCode
	updated.CreatedAt = contract.CreatedAt

	if err := s.clientRepo.UpdateContract(ctx, updated); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, actorID, actorName, models.AuditActionUpdate, "service_contract", contractID,
		fmt.Sprintf("Updated contract %s", updated.ContractCode), ip)
	return updated, nil
}

// DeleteContract removes a service contract
func (s *ClientService) DeleteContract(ctx context.Context, clientID, contractID, actorID uint, actorName, ip string) error {
	contract, err := s.findContractOf(ctx, clientID, contractID)
	if err != nil {
		return err
	}

	if err := s.clientRepo.DeleteContract(ctx, contractID); err != nil {
		return err
	}

	s.auditSvc.Log(ctx, actorID, actorName, models.AuditActionDelete, "service_contract", contractID,
		fmt.Sprintf("Deleted contract %s", contract.ContractCode), ip)
	return nil
}

func (s *ClientService) findContractOf(ctx context.Context, clientID, contractID uint) (*models.ServiceContract, error) {
	contract, err := s.clientRepo.FindContract(ctx, contractID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if contract.ClientID != clientID {
		return nil, ErrNotFound
	}
	return contract, nil
}

// --- Assignments ---

// AssignEmployeeInput holds the fields for placing an employee
type AssignEmployeeInput struct {
	EmployeeID uint   `json:"employee_id" binding:"required"`
	ContractID *uint  `json:"contract_id"`
	Role       string `json:"role"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

// ListAssignments returns a client's employee assignments
func (s *ClientService) ListAssignments(ctx context.Context, clientID uint) ([]models.EmployeeAssignment, error) {
	if _, err := s.Get(ctx, clientID); err != nil {
		return nil, err
	}
	return s.clientRepo.ListAssignments(ctx, clientID)
}

// AssignEmployee places an employee with a client. The employee must
// exist; an optional contract must belong to the same client.
func (s *ClientService) AssignEmployee(ctx context.Context, clientID uint, input AssignEmployeeInput, actorID uint, actorName, ip string) (*models.EmployeeAssignment, error) {
	client, err := s.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}

	employee, err := s.employeeRepo.FindByID(ctx, input.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: employee %d not found", ErrValidation, input.EmployeeID)
		}
		return nil, err
	}

	if input.ContractID != nil {
		if _, err := s.findContractOf(ctx, clientID, *input.ContractID); err != nil {
			return nil, fmt.Errorf("%w: contract %d does not belong to this client", ErrValidation, *input.ContractID)
		}
	}

	assignment := &models.EmployeeAssignment{
		EmployeeID: input.EmployeeID,
		ClientID:   clientID,
		ContractID: input.ContractID,
		Role:       input.Role,
		StartDate:  parseDate(input.StartDate),
		EndDate:    parseDate(input.EndDate),
	}
	if err := s.clientRepo.CreateAssignment(ctx, assignment); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, actorID, actorName, models.AuditActionCreate, "employee_assignment", assignment.ID,
		fmt.Sprintf("Assigned %s to client %s", employee.FullName, client.Name), ip)
	return assignment, nil
}

// EndAssignment removes an assignment
func (s *ClientService) EndAssignment(ctx context.Context, clientID, assignmentID, actorID uint, actorName, ip string) error {
	assignment, err := s.clientRepo.FindAssignment(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if assignment.ClientID != clientID {
		return ErrNotFound
	}

	if err := s.clientRepo.DeleteAssignment(ctx, assignmentID); err != nil {
		return err
	}

	s.auditSvc.Log(ctx, actorID, actorName, models.AuditActionDelete, "employee_assignment", assignmentID,
		fmt.Sprintf("Removed assignment %d from client %d", assignmentID, clientID), ip)
	return nil
}
