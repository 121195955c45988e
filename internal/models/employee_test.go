package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveFullName(t *testing.T) {
	assert.Equal(t, "Abebe Kebede Tesfaye", DeriveFullName("Abebe", "Kebede", "Tesfaye"))
	assert.Equal(t, "Abebe Kebede", DeriveFullName("Abebe", "Kebede", ""))
	assert.Equal(t, "Abebe Tesfaye", DeriveFullName("Abebe", "", "Tesfaye"))
	assert.Equal(t, "", DeriveFullName("", "", ""))
}

func TestDeriveFullName_TrimsWhitespace(t *testing.T) {
	assert.Equal(t, "Abebe Kebede", DeriveFullName("  Abebe ", " Kebede  ", "   "))
}

func TestEmployee_IsComplete(t *testing.T) {
	e := &Employee{}
	assert.False(t, e.IsComplete())

	e.Documents = []EmployeeDocument{{}, {}}
	assert.False(t, e.IsComplete())

	e.Documents = append(e.Documents, EmployeeDocument{})
	assert.True(t, e.IsComplete())

	e.Documents = append(e.Documents, EmployeeDocument{})
	assert.True(t, e.IsComplete())
}

func TestIsValidAttendanceStatus(t *testing.T) {
	for _, s := range []string{AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceLeave} {
		assert.True(t, IsValidAttendanceStatus(s), s)
	}
	assert.False(t, IsValidAttendanceStatus("vacation"))
	assert.False(t, IsValidAttendanceStatus(""))
}
