package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// RequiredDocumentCount is the number of documents an employee file must
// carry before it counts as complete.
const RequiredDocumentCount = 3

// Employee represents a staff member record
type Employee struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	EmployeeCode     string     `gorm:"uniqueIndex;not null" json:"employee_code"`
	FirstName        string     `gorm:"not null" json:"first_name"`
	LastName         string     `gorm:"not null" json:"last_name"`
	GrandfatherName  string     `json:"grandfather_name"`
	FullName         string     `json:"full_name"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone"`
	Address          string     `json:"address"`
	NationalID       string     `json:"national_id"`
	DateOfBirth      *time.Time `json:"date_of_birth"`
	Gender           string     `json:"gender"`
	MaritalStatus    string     `json:"marital_status"`
	Department       string     `json:"department"`
	Position         string     `json:"position"`
	EmploymentType   string     `json:"employment_type"`
	HireDate         *time.Time `json:"hire_date"`
	Salary           *float64   `json:"salary"`
	BankAccount      string     `json:"bank_account"`
	Skills           string     `json:"skills"`
	EmergencyContact string     `json:"emergency_contact"`
	EmergencyPhone   string     `json:"emergency_phone"`
	Status           string     `gorm:"default:active" json:"status"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	// Associations
	Documents   []EmployeeDocument   `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE" json:"documents,omitempty"`
	Guarantors  []Guarantor          `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE" json:"guarantors,omitempty"`
	Attendance  []AttendanceRecord   `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE" json:"attendance,omitempty"`
	Assignments []EmployeeAssignment `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE" json:"assignments,omitempty"`
}

// TableName specifies the table name for Employee
func (Employee) TableName() string {
	return "employees"
}

// BeforeSave keeps full_name derived from the name parts on every write.
func (e *Employee) BeforeSave(tx *gorm.DB) error {
	e.FullName = DeriveFullName(e.FirstName, e.LastName, e.GrandfatherName)
	if e.Status == "" {
		e.Status = StatusActive
	}
	return nil
}

// DeriveFullName joins the name parts with single spaces, skipping blanks.
func DeriveFullName(first, last, grandfather string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{first, last, grandfather} {
		p = strings.TrimSpace(p)
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// IsComplete reports whether the employee file has enough documents.
func (e *Employee) IsComplete() bool {
	return len(e.Documents) >= RequiredDocumentCount
}

// EmployeeDocument is an identity or employment document on file
type EmployeeDocument struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	EmployeeID   uint       `gorm:"not null;index" json:"employee_id"`
	DocumentType string     `gorm:"not null" json:"document_type"`
	FileName     string     `json:"file_name"`
	FilePath     string     `json:"file_path"`
	ExpiryDate   *time.Time `json:"expiry_date"`
	UploadedAt   time.Time  `gorm:"autoCreateTime" json:"uploaded_at"`
}

func (EmployeeDocument) TableName() string {
	return "employee_documents"
}

// Guarantor vouches for an employee. Verification walks a state machine:
// pending -> verified or rejected, and back to pending on re-submission.
type Guarantor struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	EmployeeID         uint       `gorm:"not null;index" json:"employee_id"`
	FullName           string     `gorm:"not null" json:"full_name"`
	Relationship       string     `json:"relationship"`
	Phone              string     `json:"phone"`
	Email              string     `json:"email"`
	Address            string     `json:"address"`
	IDNumber           string     `json:"id_number"`
	Workplace          string     `json:"workplace"`
	MonthlyIncome      *float64   `json:"monthly_income"`
	GuaranteeAmount    *float64   `json:"guarantee_amount"`
	VerificationStatus string     `gorm:"default:pending" json:"verification_status"`
	VerifiedBy         *uint      `json:"verified_by"`
	VerifiedAt         *time.Time `json:"verified_at"`
	Notes              string     `json:"notes"`
	CreatedAt          time.Time  `json:"created_at"`

	Documents []GuarantorDocument `gorm:"foreignKey:GuarantorID;constraint:OnDelete:CASCADE" json:"documents,omitempty"`
}

func (Guarantor) TableName() string {
	return "guarantors"
}

// Guarantor verification status constants
const (
	GuarantorPending  = "pending"
	GuarantorVerified = "verified"
	GuarantorRejected = "rejected"
)

// GuarantorDocument is a file attached to a guarantor
type GuarantorDocument struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	GuarantorID  uint      `gorm:"not null;index" json:"guarantor_id"`
	DocumentType string    `json:"document_type"`
	FileName     string    `json:"file_name"`
	FilePath     string    `json:"file_path"`
	UploadedAt   time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

func (GuarantorDocument) TableName() string {
	return "guarantor_documents"
}

// AttendanceRecord is one employee-day attendance entry
type AttendanceRecord struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	EmployeeID uint      `gorm:"not null;uniqueIndex:idx_attendance_employee_date" json:"employee_id"`
	Date       time.Time `gorm:"type:date;not null;uniqueIndex:idx_attendance_employee_date" json:"date"`
	Status     string    `gorm:"not null" json:"status"` // present, absent, late, leave
	CheckIn    string    `json:"check_in"`
	CheckOut   string    `json:"check_out"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
}

func (AttendanceRecord) TableName() string {
	return "attendance"
}

// Attendance status constants
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceLate    = "late"
	AttendanceLeave   = "leave"
)

// IsValidAttendanceStatus reports whether s is a known attendance status.
func IsValidAttendanceStatus(s string) bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceLeave:
		return true
	}
	return false
}

// EmployeeAssignment places an employee with a client under a contract
type EmployeeAssignment struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	EmployeeID uint       `gorm:"not null;index" json:"employee_id"`
	ClientID   uint       `gorm:"not null;index" json:"client_id"`
	ContractID *uint      `json:"contract_id"`
	Role       string     `json:"role"`
	StartDate  *time.Time `json:"start_date"`
	EndDate    *time.Time `json:"end_date"`
	Status     string     `gorm:"default:active" json:"status"`
	CreatedAt  time.Time  `json:"created_at"`

	Employee *Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	Client   *Client   `gorm:"foreignKey:ClientID" json:"client,omitempty"`
}

func (EmployeeAssignment) TableName() string {
	return "employee_assignments"
}
