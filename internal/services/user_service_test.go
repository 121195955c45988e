package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tewodrosm/sera-api/internal/models"
)

func TestUserService_Create_UnknownRole(t *testing.T) {
	service := NewUserService(&mockUserRepo{}, stubAudit())

	user, err := service.Create(context.Background(), CreateUserInput{
		Username: "newbie",
		Password: "secret123",
		Role:     "superuser",
	}, 1, "admin", "127.0.0.1")

	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUserService_Create_HashesPassword(t *testing.T) {
	var created *models.User
	mockRepo := &mockUserRepo{}
	mockRepo.mockCreate = func(ctx context.Context, user *models.User) error {
		user.ID = 9
		created = user
		return nil
	}
	service := NewUserService(mockRepo, stubAudit())

	user, err := service.Create(context.Background(), CreateUserInput{
		Username: "newbie",
		Password: "secret123",
		Role:     models.RoleHRManager,
	}, 1, "admin", "127.0.0.1")

	assert.NoError(t, err)
	assert.Equal(t, created, user)
	assert.NotEqual(t, "secret123", created.EncryptedPassword)
	assert.True(t, VerifyPassword(created.EncryptedPassword, "secret123"))
}

func TestUserService_Delete_Self(t *testing.T) {
	service := NewUserService(&mockUserRepo{}, stubAudit())

	err := service.Delete(context.Background(), 5, 5, "admin", "127.0.0.1")
	assert.ErrorIs(t, err, ErrSelfDelete)
}

func TestUserService_Delete_OtherUser(t *testing.T) {
	var deleted uint
	mockRepo := &mockUserRepo{}
	mockRepo.mockFindByID = func(ctx context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, Username: "victim"}, nil
	}
	mockRepo.mockDelete = func(ctx context.Context, id uint) error {
		deleted = id
		return nil
	}
	service := NewUserService(mockRepo, stubAudit())

	err := service.Delete(context.Background(), 5, 1, "admin", "127.0.0.1")
	assert.NoError(t, err)
	assert.Equal(t, uint(5), deleted)
}

func TestUserService_Update_UnknownRole(t *testing.T) {
	mockRepo := &mockUserRepo{}
	mockRepo.mockFindByID = func(ctx context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, Role: models.RoleAccountant}, nil
	}
	service := NewUserService(mockRepo, stubAudit())

	role := "czar"
	user, err := service.Update(context.Background(), 3, UpdateUserInput{Role: &role}, 1, "admin", "127.0.0.1")
	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrValidation)
}
