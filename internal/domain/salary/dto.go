package salary

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/approval"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/pagination"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/validator"
)

type CreateSalaryIncreaseRequest struct {
	EmployeeID       string           `json:"employee_id"`
	OldBaseSalary    *decimal.Decimal `json:"old_base_salary,omitempty"`
	NewBaseSalary    decimal.Decimal  `json:"new_base_salary"`
	OldEffectiveDate string           `json:"old_effective_date"`
	NewEffectiveDate string           `json:"new_effective_date"`
	Note             *string          `json:"note,omitempty"`

	OldEffective time.Time `json:"-"`
	NewEffective time.Time `json:"-"`
}

func (r *CreateSalaryIncreaseRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.OldBaseSalary != nil && r.OldBaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "old_base_salary",
			Message: "old_base_salary must not be negative",
		})
	}

	if !r.NewBaseSalary.IsPositive() {
		errs = append(errs, validator.ValidationError{
			Field:   "new_base_salary",
			Message: "new_base_salary must be greater than zero",
		})
	}

	r.OldEffective, r.NewEffective = validator.ValidateDateRange(&errs,
		"old_effective_date", r.OldEffectiveDate, "new_effective_date", r.NewEffectiveDate)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ResubmitSalaryIncreaseRequest struct {
	ID               string           `json:"-"`
	NewBaseSalary    *decimal.Decimal `json:"new_base_salary,omitempty"`
	NewEffectiveDate *string          `json:"new_effective_date,omitempty"`
	Note             *string          `json:"note,omitempty"`
}

func (r *ResubmitSalaryIncreaseRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.NewBaseSalary != nil && !r.NewBaseSalary.IsPositive() {
		errs.Add("new_base_salary", "new_base_salary must be greater than zero")
	}
	if r.NewEffectiveDate != nil {
		if _, ok := validator.IsValidDate(*r.NewEffectiveDate); !ok {
			errs.Add("new_effective_date", "new_effective_date must be a valid date (YYYY-MM-DD)")
		}
	}

	return errs.Err()
}

type SalaryIncreaseResponse struct {
	ID               string                  `json:"id"`
	EmployeeID       string                  `json:"employee_id"`
	EmployeeName     string                  `json:"employee_name"`
	EmployeeNIP      string                  `json:"employee_nip"`
	OldBaseSalary    decimal.Decimal         `json:"old_base_salary"`
	NewBaseSalary    decimal.Decimal         `json:"new_base_salary"`
	Difference       decimal.Decimal         `json:"difference"`
	OldEffectiveDate string                  `json:"old_effective_date"`
	NewEffectiveDate string                  `json:"new_effective_date"`
	ApproverRole     *string                 `json:"approver_role,omitempty"`
	Note             *string                 `json:"note,omitempty"`
	Status           string                  `json:"status"`
	Badge            approval.Badge          `json:"badge"`
	SubmittedAt      string                  `json:"submitted_at"`
	UpdatedAt        string                  `json:"updated_at"`
	Timeline         []approval.StepResponse `json:"timeline"`
}

func ToResponse(s SalaryIncrease) SalaryIncreaseResponse {
	return SalaryIncreaseResponse{
		ID:               s.ID,
		EmployeeID:       s.EmployeeID,
		EmployeeName:     s.EmployeeName,
		EmployeeNIP:      s.EmployeeNIP,
		OldBaseSalary:    s.OldBaseSalary,
		NewBaseSalary:    s.NewBaseSalary,
		Difference:       s.Difference(),
		OldEffectiveDate: s.OldEffectiveDate.Format(validator.DateLayout),
		NewEffectiveDate: s.NewEffectiveDate.Format(validator.DateLayout),
		ApproverRole:     s.ApproverRole(),
		Note:             s.Note,
		Status:           string(s.Status),
		Badge:            approval.Classify(string(s.Status)),
		SubmittedAt:      s.SubmittedAt.Format(time.RFC3339),
		UpdatedAt:        s.UpdatedAt.Format(time.RFC3339),
		Timeline:         approval.TimelineResponse(s.Steps),
	}
}

type ListSalaryIncreaseResponse = pagination.List[SalaryIncreaseResponse]

type SalaryIncreaseFilter struct {
	EmployeeID *string
	Status     *string
	pagination.Params
	Unpaged bool
}

func (f *SalaryIncreaseFilter) Validate() error {
	var errs validator.ValidationErrors

	if !f.Unpaged {
		f.Params.Normalize(&errs)
	}
	if s := approval.StatusField(&errs, "status", f.Status); s != nil {
		v := string(*s)
		f.Status = &v
	}

	return errs.Err()
}
