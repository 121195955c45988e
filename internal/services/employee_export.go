package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tewodrosm/sera-api/internal/models"
	"github.com/tewodrosm/sera-api/internal/repository"
)

// exportHeaders is the column set shared by the CSV and XLSX exports.
// document_count and guarantor columns are computed, not stored.
var exportHeaders = []string{
	"employee_code", "first_name", "last_name", "grandfather_name", "full_name",
	"email", "phone", "address", "national_id", "date_of_birth", "gender",
	"marital_status", "department", "position", "employment_type", "hire_date",
	"salary", "bank_account", "skills", "emergency_contact", "emergency_phone",
	"status", "document_count", "guarantor_count", "verified_guarantors",
	"rejected_guarantors",
}

func exportRow(e *models.Employee) []string {
	verified, rejected := 0, 0
	for _, g := range e.Guarantors {
		switch g.VerificationStatus {
		case models.GuarantorVerified:
			verified++
		case models.GuarantorRejected:
			rejected++
		}
	}

	return []string{
		e.EmployeeCode,
		e.FirstName,
		e.LastName,
		e.GrandfatherName,
		e.FullName,
		e.Email,
		e.Phone,
		e.Address,
		e.NationalID,
		formatDate(e.DateOfBirth),
		e.Gender,
		e.MaritalStatus,
		e.Department,
		e.Position,
		e.EmploymentType,
		formatDate(e.HireDate),
		formatFloat(e.Salary),
		e.BankAccount,
		e.Skills,
		e.EmergencyContact,
		e.EmergencyPhone,
		e.Status,
		fmt.Sprintf("%d", len(e.Documents)),
		fmt.Sprintf("%d", len(e.Guarantors)),
		fmt.Sprintf("%d", verified),
		fmt.Sprintf("%d", rejected),
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *f)
}

// exportRoster fetches the export set: SQL-level filters apply in the
// repository, derived filters compose over the result, no pagination.
func (s *EmployeeService) exportRoster(ctx context.Context, query *repository.ListQuery) ([]models.Employee, error) {
	employees, err := s.employeeRepo.FindAllWithRelations(ctx, query)
	if err != nil {
		return nil, err
	}
	filtered, _ := applyComputedFilters(employees, query)
	return filtered, nil
}

// ExportCSV writes the employee roster, or a filtered subset, as CSV
func (s *EmployeeService) ExportCSV(ctx context.Context, query *repository.ListQuery, actorID uint, actorName, ip string) ([]byte, string, error) {
	employees, err := s.exportRoster(ctx, query)
	if err != nil {
		return nil, "", err
	}

	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	_ = writer.Write(exportHeaders)
	for i := range employees {
		_ = writer.Write(exportRow(&employees[i]))
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, "", err
	}

	s.auditSvc.Log(ctx, actorID, actorName, models.AuditActionExport, "employee", 0,
		fmt.Sprintf("Exported %d employees to CSV", len(employees)), ip)

	filename := fmt.Sprintf("employees_%s.csv", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// ExportXLSX writes the employee roster, or a filtered subset, as a
// spreadsheet
func (s *EmployeeService) ExportXLSX(ctx context.Context, query *repository.ListQuery, actorID uint, actorName, ip string) ([]byte, string, error) {
	employees, err := s.exportRoster(ctx, query)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Employees"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	for col, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
		_ = f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for row := range employees {
		values := exportRow(&employees[row])
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	s.auditSvc.Log(ctx, actorID, actorName, models.AuditActionExport, "employee", 0,
		fmt.Sprintf("Exported %d employees to XLSX", len(employees)), ip)

	filename := fmt.Sprintf("employees_%s.xlsx", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}
