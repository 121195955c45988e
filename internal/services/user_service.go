package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/tewodrosm/sera-api/internal/models"
	"github.com/tewodrosm/sera-api/internal/repository"
)

// UserService handles user administration
type UserService struct {
	userRepo repository.UserRepository
	auditSvc *AuditService
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository, auditSvc *AuditService) *UserService {
	return &UserService{
		userRepo: userRepo,
		auditSvc: auditSvc,
	}
}

// CreateUserInput holds the fields for creating a user
type CreateUserInput struct {
	Username string `json:"username" binding:"required,min=3"`
	Password string `json:"password" binding:"required,min=6"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Role     string `json:"role" binding:"required"`
	Status   string `json:"status"`
}

// UpdateUserInput holds the fields for updating a user
type UpdateUserInput struct {
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
	Role     *string `json:"role"`
	Status   *string `json:"status"`
	Password *string `json:"password"`
}

// List returns users matching the query
func (s *UserService) List(ctx context.Context, query *repository.ListQuery) ([]models.User, int64, error) {
	return s.userRepo.List(ctx, query)
}

// Get returns a single user by ID
func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// Create adds a new user account
func (s *UserService) Create(ctx context.Context, input CreateUserInput, actorID uint, actorName, ip string) (*models.User, error) {
	if !models.IsValidRole(input.Role) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, input.Role)
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:          input.Username,
		EncryptedPassword: hashed,
		Email:             input.Email,
		FullName:          input.FullName,
		Phone:             input.Phone,
		Role:              input.Role,
		Status:            input.Status,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	s.auditSvc.Log(ctx, actorID, actorName, models.AuditActionCreate, "user", user.ID,
		fmt.Sprintf("Created user %s (%s)", user.Username, user.Role), ip)
	return user, nil
}

// Update modifies a user account
func (s *UserService) Update(ctx context.Context, id uint, input UpdateUserInput, actorID uint, actorName, ip string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if input.Role != nil {
		if !models.IsValidRole(*input.Role) {
			return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, *input.Role)
		}
		user.Role = *input.Role
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Status != nil {
		user.Status = *input.Status
	}
	if input.Password != nil && *input.Password != "" {
		hashed, err := HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.EncryptedPassword = hashed
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	s.auditSvc.Log(ctx, actorID, actorName, models.AuditActionUpdate, "user", user.ID,
		fmt.Sprintf("Updated user %s", user.Username), ip)
	return user, nil
}

// Delete removes a user account. Users cannot delete themselves; audit
// rows written by the user survive with a detached user_id.
func (s *UserService) Delete(ctx context.Context, id, actorID uint, actorName, ip string) error {
	if id == actorID {
		return ErrSelfDelete
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.auditSvc.Log(ctx, actorID, actorName, models.AuditActionDelete, "user", id,
		fmt.Sprintf("Deleted user %s", user.Username), ip)
	return nil
}
