package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/tewodrosm/sera-api/internal/models"
	"github.com/tewodrosm/sera-api/internal/repository"
)

// ImportResult summarizes a CSV import run
type ImportResult struct {
	Imported     int      `json:"imported"`
	Skipped      int      `json:"skipped"`
	Errors       int      `json:"errors"`
	ErrorDetails []string `json:"error_details,omitempty"`
}

// maxImportErrorDetails caps the per-row error list in the response.
const maxImportErrorDetails = 10

// ImportCSV loads employees from a CSV stream. The header row drives
// column mapping so column order does not matter. Each row is handled
// in isolation: a bad row is counted and reported without stopping the
// run. With skipDuplicates, an existing employee_code counts as skipped
// instead of an error.
func (s *EmployeeService) ImportCSV(ctx context.Context, r io.Reader, skipDuplicates bool, actorID uint, actorName, ip string) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read CSV header", ErrValidation)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"employee_code", "first_name", "last_name"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: missing required column %q", ErrValidation, required)
		}
	}

	field := func(record []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	result := &ImportResult{}
	line := 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.Errors++
			result.addError(line, "malformed row")
			continue
		}

		code := field(record, "employee_code")
		first := field(record, "first_name")
		last := field(record, "last_name")
		if code == "" || first == "" || last == "" {
			result.Errors++
			result.addError(line, "employee_code, first_name, and last_name are required")
			continue
		}

		if _, err := s.employeeRepo.FindByCode(ctx, code); err == nil {
			if skipDuplicates {
				result.Skipped++
			} else {
				result.Errors++
				result.addError(line, fmt.Sprintf("employee_code %s already exists", code))
			}
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		employee := &models.Employee{
			EmployeeCode:     code,
			FirstName:        first,
			LastName:         last,
			GrandfatherName:  field(record, "grandfather_name"),
			Email:            field(record, "email"),
			Phone:            field(record, "phone"),
			Address:          field(record, "address"),
			NationalID:       field(record, "national_id"),
			Gender:           field(record, "gender"),
			MaritalStatus:    field(record, "marital_status"),
			Department:       field(record, "department"),
			Position:         field(record, "position"),
			EmploymentType:   field(record, "employment_type"),
			BankAccount:      field(record, "bank_account"),
			Skills:           field(record, "skills"),
			EmergencyContact: field(record, "emergency_contact"),
			EmergencyPhone:   field(record, "emergency_phone"),
			Status:           field(record, "status"),
		}
		employee.DateOfBirth = parseDate(field(record, "date_of_birth"))
		employee.HireDate = parseDate(field(record, "hire_date"))
		if salary := field(record, "salary"); salary != "" {
			if v, err := strconv.ParseFloat(salary, 64); err == nil {
				employee.Salary = &v
			}
		}

		if err := s.employeeRepo.Create(ctx, employee); err != nil {
			if errors.Is(err, repository.ErrDuplicate) && skipDuplicates {
				result.Skipped++
				continue
			}
			result.Errors++
			result.addError(line, err.Error())
			continue
		}
		result.Imported++
	}

	s.auditSvc.Log(ctx, actorID, actorName, models.AuditActionImport, "employee", 0,
		fmt.Sprintf("Imported %d employees (%d skipped, %d errors)", result.Imported, result.Skipped, result.Errors), ip)
	return result, nil
}

func (r *ImportResult) addError(line int, msg string) {
	if len(r.ErrorDetails) < maxImportErrorDetails {
		r.ErrorDetails = append(r.ErrorDetails, fmt.Sprintf("row %d: %s", line, msg))
	}
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}
