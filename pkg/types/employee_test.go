package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmployeeValidate(t *testing.T) {
	valid := Employee{Name: "Jane Smith", Email: "jane.smith@bubbletea.com", Role: RoleStaff, Status: EmployeeActive}
	assert.NoError(t, valid.Validate())

	noEmail := valid
	noEmail.Email = ""
	assert.ErrorIs(t, noEmail.Validate(), ErrInvalidName)

	badRole := valid
	badRole.Role = "owner"
	assert.ErrorIs(t, badRole.Validate(), ErrInvalidRole)

	badStatus := valid
	badStatus.Status = "retired"
	assert.ErrorIs(t, badStatus.Validate(), ErrInvalidState)
}

func TestEmployeeActivation(t *testing.T) {
	e := &Employee{Status: EmployeeActive}
	assert.True(t, e.IsActive())

	e.Deactivate()
	e.Deactivate()
	assert.False(t, e.IsActive())

	e.Activate()
	assert.Equal(t, EmployeeActive, e.Status)
}

func TestSummarizeReport(t *testing.T) {
	lines := []*ReportLine{
		{Product: "Classic Milk Tea", Quantity: 42, Revenue: 168, Profit: 84},
		{Product: "Taro Milk Tea", Quantity: 38, Revenue: 171, Profit: 76},
	}

	got := SummarizeReport(lines)
	assert.Equal(t, 80, got.Quantity)
	assert.InDelta(t, 339.0, got.Revenue, 1e-9)
	assert.InDelta(t, 160.0, got.Profit, 1e-9)

	assert.Equal(t, ReportSummary{}, SummarizeReport(nil))
}
