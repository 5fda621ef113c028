package salary

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/approval"
)

// SalaryIncrease is a periodic or regular base salary change awaiting approval.
type SalaryIncrease struct {
	ID               string
	EmployeeID       string
	OldBaseSalary    decimal.Decimal
	NewBaseSalary    decimal.Decimal
	OldEffectiveDate time.Time
	NewEffectiveDate time.Time
	Note             *string
	Status           approval.Status
	CreatedBy        *string
	SubmittedAt      time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Relationships
	EmployeeName string
	EmployeeNIP  string
	Steps        []approval.Step
}

// Difference is the raise amount.
func (s SalaryIncrease) Difference() decimal.Decimal {
	return s.NewBaseSalary.Sub(s.OldBaseSalary)
}

// ApproverRole is the role of the step currently waiting for a decision.
func (s SalaryIncrease) ApproverRole() *string {
	if s.Status != approval.StatusSubmitted {
		return nil
	}
	step, ok := approval.CurrentStep(s.Steps)
	if !ok {
		return nil
	}
	role := string(step.ApproverRole)
	return &role
}
