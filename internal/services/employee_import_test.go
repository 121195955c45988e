package services

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tewodrosm/sera-api/internal/models"
	"github.com/tewodrosm/sera-api/internal/repository"
)

type importEmployeeRepo struct {
	mockEmployeeRepo
	existing map[string]bool
	created  []*models.Employee
}

func (m *importEmployeeRepo) FindByCode(ctx context.Context, code string) (*models.Employee, error) {
	if m.existing[code] {
		return &models.Employee{EmployeeCode: code}, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *importEmployeeRepo) Create(ctx context.Context, employee *models.Employee) error {
	m.created = append(m.created, employee)
	return nil
}

func TestEmployeeService_ImportCSV(t *testing.T) {
	mockRepo := &importEmployeeRepo{existing: map[string]bool{}}
	service := NewEmployeeService(mockRepo, nil, stubAudit())

	csv := strings.Join([]string{
		"employee_code,first_name,last_name,department,salary,hire_date",
		"EMP-001,Abebe,Kebede,Security,4500.50,2024-01-15",
		"EMP-002,Chaltu,Bekele,Cleaning,,",
	}, "\n")

	result, err := service.ImportCSV(context.Background(), strings.NewReader(csv), false, 1, "admin", "127.0.0.1")
	require.NoError(t, err)

	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, 0, result.Errors)
	require.Len(t, mockRepo.created, 2)

	first := mockRepo.created[0]
	assert.Equal(t, "EMP-001", first.EmployeeCode)
	assert.Equal(t, "Security", first.Department)
	require.NotNil(t, first.Salary)
	assert.Equal(t, 4500.50, *first.Salary)
	require.NotNil(t, first.HireDate)
	assert.Equal(t, "2024-01-15", first.HireDate.Format("2006-01-02"))

	assert.Nil(t, mockRepo.created[1].Salary)
}

func TestEmployeeService_ImportCSV_ColumnOrderIndependent(t *testing.T) {
	mockRepo := &importEmployeeRepo{existing: map[string]bool{}}
	service := NewEmployeeService(mockRepo, nil, stubAudit())

	csv := "last_name,employee_code,first_name\nKebede,EMP-001,Abebe\n"

	result, err := service.ImportCSV(context.Background(), strings.NewReader(csv), false, 1, "admin", "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, "Abebe", mockRepo.created[0].FirstName)
	assert.Equal(t, "Kebede", mockRepo.created[0].LastName)
}

func TestEmployeeService_ImportCSV_MissingRequiredColumn(t *testing.T) {
	service := NewEmployeeService(&importEmployeeRepo{}, nil, stubAudit())

	csv := "employee_code,first_name\nEMP-001,Abebe\n"

	result, err := service.ImportCSV(context.Background(), strings.NewReader(csv), false, 1, "admin", "127.0.0.1")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestEmployeeService_ImportCSV_RowIsolation(t *testing.T) {
	mockRepo := &importEmployeeRepo{existing: map[string]bool{}}
	service := NewEmployeeService(mockRepo, nil, stubAudit())

	csv := strings.Join([]string{
		"employee_code,first_name,last_name",
		"EMP-001,Abebe,Kebede",
		",MissingCode,Row",
		"EMP-003,Chaltu,Bekele",
	}, "\n")

	result, err := service.ImportCSV(context.Background(), strings.NewReader(csv), false, 1, "admin", "127.0.0.1")
	require.NoError(t, err)

	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 1, result.Errors)
	require.Len(t, result.ErrorDetails, 1)
	assert.Contains(t, result.ErrorDetails[0], "row 3")
}

func TestEmployeeService_ImportCSV_Duplicates(t *testing.T) {
	mockRepo := &importEmployeeRepo{existing: map[string]bool{"EMP-001": true}}
	service := NewEmployeeService(mockRepo, nil, stubAudit())

	csv := "employee_code,first_name,last_name\nEMP-001,Abebe,Kebede\nEMP-002,Chaltu,Bekele\n"

	// Without skipDuplicates an existing code is an error
	result, err := service.ImportCSV(context.Background(), strings.NewReader(csv), false, 1, "admin", "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Errors)

	// With skipDuplicates it is counted as skipped
	mockRepo.created = nil
	result, err = service.ImportCSV(context.Background(), strings.NewReader(csv), true, 1, "admin", "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 0, result.Errors)
}

func TestExportRow_ComputedColumns(t *testing.T) {
	salary := 5000.0
	e := &models.Employee{
		EmployeeCode: "EMP-001",
		FirstName:    "Abebe",
		LastName:     "Kebede",
		FullName:     "Abebe Kebede",
		Salary:       &salary,
		Documents:    []models.EmployeeDocument{{}, {}},
		Guarantors: []models.Guarantor{
			{VerificationStatus: models.GuarantorVerified},
			{VerificationStatus: models.GuarantorPending},
			{VerificationStatus: models.GuarantorVerified},
			{VerificationStatus: models.GuarantorRejected},
		},
	}

	row := exportRow(e)
	require.Len(t, row, len(exportHeaders))

	byHeader := make(map[string]string, len(row))
	for i, h := range exportHeaders {
		byHeader[h] = row[i]
	}
	assert.Equal(t, "EMP-001", byHeader["employee_code"])
	assert.Equal(t, "5000.00", byHeader["salary"])
	assert.Equal(t, "2", byHeader["document_count"])
	assert.Equal(t, "4", byHeader["guarantor_count"])
	assert.Equal(t, "2", byHeader["verified_guarantors"])
	assert.Equal(t, "1", byHeader["rejected_guarantors"])
}

func TestEmployeeService_ExportCSV_FilteredSubset(t *testing.T) {
	mockRepo := &mockEmployeeRepo{}
	service := NewEmployeeService(mockRepo, nil, stubAudit())

	var seen *repository.ListQuery
	mockRepo.mockFindAllWithRelations = func(ctx context.Context, query *repository.ListQuery) ([]models.Employee, error) {
		seen = query
		return rosterWithGuarantors(), nil
	}

	query := repository.NewListQuery()
	query.Filters["department"] = "Security"
	query.Filters["doc_status"] = "complete"

	data, filename, err := service.ExportCSV(context.Background(), query, 1, "admin", "127.0.0.1")
	require.NoError(t, err)
	assert.Contains(t, filename, "employees_")

	// SQL-level filters reach the repository untouched
	require.NotNil(t, seen)
	assert.Equal(t, "Security", seen.Filters["department"])

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)

	// Header plus the two document-complete employees
	require.Len(t, records, 3)
	assert.Equal(t, exportHeaders, records[0])
}
