package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/tewodrosm/sera-api/internal/config"
	"github.com/tewodrosm/sera-api/internal/models"
	"github.com/tewodrosm/sera-api/internal/repository"
)

// mockAuditRepo swallows audit writes; shared across service tests.
type mockAuditRepo struct {
	repository.AuditRepository
	entries []*models.AuditLog
}

func (m *mockAuditRepo) Create(ctx context.Context, entry *models.AuditLog) error {
	m.entries = append(m.entries, entry)
	return nil
}

func stubAudit() *AuditService {
	return NewAuditService(&mockAuditRepo{})
}

type mockUserRepo struct {
	repository.UserRepository
	mockFindByID       func(ctx context.Context, id uint) (*models.User, error)
	mockFindByUsername func(ctx context.Context, username string) (*models.User, error)
	mockCreate         func(ctx context.Context, user *models.User) error
	mockUpdate         func(ctx context.Context, user *models.User) error
	mockDelete         func(ctx context.Context, id uint) error
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return m.mockFindByID(ctx, id)
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.mockFindByUsername(ctx, username)
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	return m.mockCreate(ctx, user)
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	return m.mockUpdate(ctx, user)
}

func (m *mockUserRepo) Delete(ctx context.Context, id uint) error {
	return m.mockDelete(ctx, id)
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
	}
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	mockRepo := &mockUserRepo{}
	service := NewAuthService(mockRepo, stubAudit(), testConfig())

	mockRepo.mockFindByUsername = func(ctx context.Context, username string) (*models.User, error) {
		return &models.User{
			Username: username,
			Status:   models.StatusInactive,
		}, nil
	}

	result, err := service.Login(context.Background(), "dormant", "password", "127.0.0.1")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrAccountInactive)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	hash, err := HashPassword("correct-password")
	assert.NoError(t, err)

	mockRepo := &mockUserRepo{}
	service := NewAuthService(mockRepo, stubAudit(), testConfig())

	mockRepo.mockFindByUsername = func(ctx context.Context, username string) (*models.User, error) {
		return &models.User{
			Username:          username,
			Status:            models.StatusActive,
			EncryptedPassword: hash,
		}, nil
	}

	result, err := service.Login(context.Background(), "admin", "wrong-password", "127.0.0.1")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	mockRepo := &mockUserRepo{}
	service := NewAuthService(mockRepo, stubAudit(), testConfig())

	mockRepo.mockFindByUsername = func(ctx context.Context, username string) (*models.User, error) {
		return nil, gorm.ErrRecordNotFound
	}

	result, err := service.Login(context.Background(), "ghost", "password", "127.0.0.1")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_Success(t *testing.T) {
	hash, err := HashPassword("secret123")
	assert.NoError(t, err)

	audit := &mockAuditRepo{}
	mockRepo := &mockUserRepo{}
	service := NewAuthService(mockRepo, NewAuditService(audit), testConfig())

	mockRepo.mockFindByUsername = func(ctx context.Context, username string) (*models.User, error) {
		return &models.User{
			ID:                7,
			Username:          "admin",
			Role:              models.RoleAdmin,
			Status:            models.StatusActive,
			EncryptedPassword: hash,
		}, nil
	}

	result, err := service.Login(context.Background(), "Admin", "secret123", "127.0.0.1")
	assert.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, uint(7), result.User.ID)
	assert.Equal(t, models.RoleAdmin, result.User.Role)

	// Login is audited
	assert.Len(t, audit.entries, 1)
	assert.Equal(t, models.AuditActionLogin, audit.entries[0].Action)
}

func TestAuthService_ChangePassword_WrongCurrent(t *testing.T) {
	hash, err := HashPassword("old-password")
	assert.NoError(t, err)

	mockRepo := &mockUserRepo{}
	service := NewAuthService(mockRepo, stubAudit(), testConfig())

	mockRepo.mockFindByID = func(ctx context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, EncryptedPassword: hash}, nil
	}

	err = service.ChangePassword(context.Background(), 1, "not-the-old-one", "new-password")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestAuthService_ChangePassword_Success(t *testing.T) {
	hash, err := HashPassword("old-password")
	assert.NoError(t, err)

	var saved *models.User
	mockRepo := &mockUserRepo{}
	service := NewAuthService(mockRepo, stubAudit(), testConfig())

	mockRepo.mockFindByID = func(ctx context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, EncryptedPassword: hash}, nil
	}
	mockRepo.mockUpdate = func(ctx context.Context, user *models.User) error {
		saved = user
		return nil
	}

	err = service.ChangePassword(context.Background(), 1, "old-password", "new-password")
	assert.NoError(t, err)
	assert.NotNil(t, saved)
	assert.True(t, VerifyPassword(saved.EncryptedPassword, "new-password"))
}
