package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tewodrosm/sera-api/internal/models"
	"github.com/tewodrosm/sera-api/internal/repository"
)

type mockEmployeeRepo struct {
	repository.EmployeeRepository
	mockFindByID             func(ctx context.Context, id uint) (*models.Employee, error)
	mockList                 func(ctx context.Context, query *repository.ListQuery) ([]models.Employee, int64, error)
	mockFindAllWithRelations func(ctx context.Context, query *repository.ListQuery) ([]models.Employee, error)
	mockFindGuarantor        func(ctx context.Context, id uint) (*models.Guarantor, error)
	mockUpdateGuarantor      func(ctx context.Context, g *models.Guarantor) error
	mockUpsert               func(ctx context.Context, record *models.AttendanceRecord) error
}

func (m *mockEmployeeRepo) FindByID(ctx context.Context, id uint) (*models.Employee, error) {
	return m.mockFindByID(ctx, id)
}

func (m *mockEmployeeRepo) List(ctx context.Context, query *repository.ListQuery) ([]models.Employee, int64, error) {
	return m.mockList(ctx, query)
}

func (m *mockEmployeeRepo) FindAllWithRelations(ctx context.Context, query *repository.ListQuery) ([]models.Employee, error) {
	return m.mockFindAllWithRelations(ctx, query)
}

func (m *mockEmployeeRepo) FindGuarantor(ctx context.Context, id uint) (*models.Guarantor, error) {
	return m.mockFindGuarantor(ctx, id)
}

func (m *mockEmployeeRepo) UpdateGuarantor(ctx context.Context, g *models.Guarantor) error {
	return m.mockUpdateGuarantor(ctx, g)
}

func (m *mockEmployeeRepo) UpsertAttendance(ctx context.Context, record *models.AttendanceRecord) error {
	return m.mockUpsert(ctx, record)
}

func documents(n int) []models.EmployeeDocument {
	return make([]models.EmployeeDocument, n)
}

func rosterWithGuarantors() []models.Employee {
	return []models.Employee{
		{ID: 1, FirstName: "A", Documents: documents(3), Guarantors: []models.Guarantor{
			{VerificationStatus: models.GuarantorVerified},
		}},
		{ID: 2, FirstName: "B", Documents: documents(1), Guarantors: []models.Guarantor{
			{VerificationStatus: models.GuarantorRejected},
		}},
		{ID: 3, FirstName: "C"},
		{ID: 4, FirstName: "D", Documents: documents(4), Guarantors: []models.Guarantor{
			{VerificationStatus: models.GuarantorVerified},
			{VerificationStatus: models.GuarantorRejected},
		}},
	}
}

func employeeIDs(employees []models.Employee) []uint {
	ids := make([]uint, 0, len(employees))
	for _, e := range employees {
		ids = append(ids, e.ID)
	}
	return ids
}

func TestEmployeeService_List_GuaranteeFilter(t *testing.T) {
	mockRepo := &mockEmployeeRepo{}
	service := NewEmployeeService(mockRepo, nil, stubAudit())

	mockRepo.mockList = func(ctx context.Context, query *repository.ListQuery) ([]models.Employee, int64, error) {
		return rosterWithGuarantors(), 4, nil
	}

	cases := []struct {
		filter string
		want   []uint
	}{
		{"verified", []uint{1, 4}},
		{"expired", []uint{2, 4}},
		{"missing", []uint{3}},
		{"verified,missing", []uint{1, 3, 4}},
		{"verified,expired,missing", []uint{1, 2, 3, 4}},
	}

	for _, tc := range cases {
		query := repository.NewListQuery()
		query.Filters["guarantee"] = tc.filter

		employees, total, err := service.List(context.Background(), query)
		require.NoError(t, err, tc.filter)
		assert.Equal(t, tc.want, employeeIDs(employees), tc.filter)
		assert.Equal(t, int64(len(tc.want)), total, tc.filter)
	}
}

func TestEmployeeService_List_DocStatusFilter(t *testing.T) {
	mockRepo := &mockEmployeeRepo{}
	service := NewEmployeeService(mockRepo, nil, stubAudit())

	mockRepo.mockList = func(ctx context.Context, query *repository.ListQuery) ([]models.Employee, int64, error) {
		return rosterWithGuarantors(), 4, nil
	}

	cases := []struct {
		filter string
		want   []uint
	}{
		{"complete", []uint{1, 4}},
		{"incomplete", []uint{2, 3}},
	}

	for _, tc := range cases {
		query := repository.NewListQuery()
		query.Filters["doc_status"] = tc.filter

		employees, total, err := service.List(context.Background(), query)
		require.NoError(t, err, tc.filter)
		assert.Equal(t, tc.want, employeeIDs(employees), tc.filter)
		assert.Equal(t, int64(len(tc.want)), total, tc.filter)
	}
}

func TestEmployeeService_List_DocStatusComposesWithGuarantee(t *testing.T) {
	mockRepo := &mockEmployeeRepo{}
	service := NewEmployeeService(mockRepo, nil, stubAudit())

	mockRepo.mockList = func(ctx context.Context, query *repository.ListQuery) ([]models.Employee, int64, error) {
		return rosterWithGuarantors(), 4, nil
	}

	query := repository.NewListQuery()
	query.Filters["doc_status"] = "complete"
	query.Filters["guarantee"] = "expired"

	// Only employee 4 is both complete and has a rejected guarantor
	employees, total, err := service.List(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, []uint{4}, employeeIDs(employees))
	assert.Equal(t, int64(1), total)
}

func TestEmployeeService_List_NoFilterPassesThrough(t *testing.T) {
	mockRepo := &mockEmployeeRepo{}
	service := NewEmployeeService(mockRepo, nil, stubAudit())

	mockRepo.mockList = func(ctx context.Context, query *repository.ListQuery) ([]models.Employee, int64, error) {
		return rosterWithGuarantors(), 40, nil
	}

	employees, total, err := service.List(context.Background(), repository.NewListQuery())
	require.NoError(t, err)
	assert.Len(t, employees, 4)
	assert.Equal(t, int64(40), total)
}

func TestEmployeeService_VerifyGuarantor_Approve(t *testing.T) {
	mockRepo := &mockEmployeeRepo{}
	service := NewEmployeeService(mockRepo, nil, stubAudit())

	mockRepo.mockFindGuarantor = func(ctx context.Context, id uint) (*models.Guarantor, error) {
		return &models.Guarantor{ID: id, EmployeeID: 2, VerificationStatus: models.GuarantorPending}, nil
	}
	mockRepo.mockUpdateGuarantor = func(ctx context.Context, g *models.Guarantor) error { return nil }

	g, err := service.VerifyGuarantor(context.Background(), 2, 10, true, "checked in person", 1, "admin", "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, models.GuarantorVerified, g.VerificationStatus)
	assert.NotNil(t, g.VerifiedAt)
	require.NotNil(t, g.VerifiedBy)
	assert.Equal(t, uint(1), *g.VerifiedBy)
	assert.Equal(t, "checked in person", g.Notes)
}

func TestEmployeeService_VerifyGuarantor_AlreadyDecided(t *testing.T) {
	mockRepo := &mockEmployeeRepo{}
	service := NewEmployeeService(mockRepo, nil, stubAudit())

	mockRepo.mockFindGuarantor = func(ctx context.Context, id uint) (*models.Guarantor, error) {
		return &models.Guarantor{ID: id, EmployeeID: 2, VerificationStatus: models.GuarantorVerified}, nil
	}

	_, err := service.VerifyGuarantor(context.Background(), 2, 10, true, "", 1, "admin", "127.0.0.1")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestEmployeeService_VerifyGuarantor_WrongEmployee(t *testing.T) {
	mockRepo := &mockEmployeeRepo{}
	service := NewEmployeeService(mockRepo, nil, stubAudit())

	mockRepo.mockFindGuarantor = func(ctx context.Context, id uint) (*models.Guarantor, error) {
		return &models.Guarantor{ID: id, EmployeeID: 99, VerificationStatus: models.GuarantorPending}, nil
	}

	_, err := service.VerifyGuarantor(context.Background(), 2, 10, true, "", 1, "admin", "127.0.0.1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEmployeeService_UpdateGuarantor_DecidedDropsToPending(t *testing.T) {
	mockRepo := &mockEmployeeRepo{}
	service := NewEmployeeService(mockRepo, nil, stubAudit())

	verifiedBy := uint(1)
	verifiedAt := time.Now()
	mockRepo.mockFindGuarantor = func(ctx context.Context, id uint) (*models.Guarantor, error) {
		return &models.Guarantor{
			ID:                 id,
			EmployeeID:         2,
			VerificationStatus: models.GuarantorVerified,
			VerifiedBy:         &verifiedBy,
			VerifiedAt:         &verifiedAt,
		}, nil
	}
	var saved *models.Guarantor
	mockRepo.mockUpdateGuarantor = func(ctx context.Context, g *models.Guarantor) error {
		saved = g
		return nil
	}

	updated, err := service.UpdateGuarantor(context.Background(), 2, 10, &models.Guarantor{FullName: "New Name"}, 1, "admin", "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, models.GuarantorPending, updated.VerificationStatus)
	assert.Nil(t, updated.VerifiedBy)
	assert.Nil(t, updated.VerifiedAt)
	assert.Equal(t, saved, updated)
}

func TestEmployeeService_RecordAttendance_Validation(t *testing.T) {
	service := NewEmployeeService(&mockEmployeeRepo{}, nil, stubAudit())

	_, err := service.RecordAttendance(context.Background(), 1, AttendanceInput{
		Date:   "2026-08-30",
		Status: "vacation",
	}, 1, "admin", "127.0.0.1")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = service.RecordAttendance(context.Background(), 1, AttendanceInput{
		Date:   "30/08/2026",
		Status: models.AttendancePresent,
	}, 1, "admin", "127.0.0.1")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestEmployeeService_RecordAttendance_Upsert(t *testing.T) {
	mockRepo := &mockEmployeeRepo{}
	service := NewEmployeeService(mockRepo, nil, stubAudit())

	mockRepo.mockFindByID = func(ctx context.Context, id uint) (*models.Employee, error) {
		return &models.Employee{ID: id}, nil
	}
	var saved *models.AttendanceRecord
	mockRepo.mockUpsert = func(ctx context.Context, record *models.AttendanceRecord) error {
		saved = record
		return nil
	}

	record, err := service.RecordAttendance(context.Background(), 3, AttendanceInput{
		Date:    "2026-08-30",
		Status:  models.AttendanceLate,
		CheckIn: "09:40",
	}, 1, "admin", "127.0.0.1")

	require.NoError(t, err)
	assert.Equal(t, saved, record)
	assert.Equal(t, uint(3), record.EmployeeID)
	assert.Equal(t, models.AttendanceLate, record.Status)
	assert.Equal(t, "2026-08-30", record.Date.Format("2006-01-02"))
}
