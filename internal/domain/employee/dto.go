package employee

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/pagination"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/validator"
)

type EmployeeResponse struct {
	ID               string          `json:"id"`
	NIP              string          `json:"nip"`
	FullName         string          `json:"full_name"`
	Gender           string          `json:"gender"`
	BirthPlace       *string         `json:"birth_place,omitempty"`
	BirthDate        *string         `json:"birth_date,omitempty"`
	Position         string          `json:"position"`
	Rank             string          `json:"rank"`
	WorkUnit         string          `json:"work_unit"`
	EmploymentStatus string          `json:"employment_status"`
	HireDate         string          `json:"hire_date"`
	Phone            *string         `json:"phone,omitempty"`
	Email            *string         `json:"email,omitempty"`
	Address          *string         `json:"address,omitempty"`
	BaseSalary       decimal.Decimal `json:"base_salary"`
	CreatedAt        string          `json:"created_at"`
	UpdatedAt        string          `json:"updated_at"`
}

func ToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:               e.ID,
		NIP:              e.NIP,
		FullName:         e.FullName,
		Gender:           string(e.Gender),
		BirthPlace:       e.BirthPlace,
		Position:         e.Position,
		Rank:             e.Rank,
		WorkUnit:         e.WorkUnit,
		EmploymentStatus: string(e.EmploymentStatus),
		HireDate:         e.HireDate.Format(validator.DateLayout),
		Phone:            e.Phone,
		Email:            e.Email,
		Address:          e.Address,
		BaseSalary:       e.BaseSalary,
		CreatedAt:        e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        e.UpdatedAt.Format(time.RFC3339),
	}
	if e.BirthDate != nil {
		d := e.BirthDate.Format(validator.DateLayout)
		resp.BirthDate = &d
	}
	return resp
}

type ListEmployeeResponse = pagination.List[EmployeeResponse]

type CreateEmployeeRequest struct {
	NIP              string          `json:"nip"`
	FullName         string          `json:"full_name"`
	Gender           string          `json:"gender"`
	BirthPlace       *string         `json:"birth_place,omitempty"`
	BirthDate        *string         `json:"birth_date,omitempty"`
	Position         string          `json:"position"`
	Rank             string          `json:"rank"`
	WorkUnit         string          `json:"work_unit"`
	EmploymentStatus string          `json:"employment_status"`
	HireDate         string          `json:"hire_date"`
	Phone            *string         `json:"phone,omitempty"`
	Email            *string         `json:"email,omitempty"`
	Address          *string         `json:"address,omitempty"`
	BaseSalary       decimal.Decimal `json:"base_salary"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	// NIP
	if validator.IsEmpty(r.NIP) {
		errs = append(errs, validator.ValidationError{
			Field:   "nip",
			Message: "nip is required",
		})
	} else if !validator.IsValidNIP(r.NIP) {
		errs = append(errs, validator.ValidationError{
			Field:   "nip",
			Message: "nip must be exactly 18 digits",
		})
	}

	// Full name
	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	} else if len(r.FullName) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name must not exceed 255 characters",
		})
	}

	// Gender
	if r.Gender != string(Male) && r.Gender != string(Female) {
		errs = append(errs, validator.ValidationError{
			Field:   "gender",
			Message: "gender must be L or P",
		})
	}

	if r.BirthDate != nil {
		if _, ok := validator.IsValidDate(*r.BirthDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "birth_date",
				Message: "birth_date must be in YYYY-MM-DD format",
			})
		}
	}

	if validator.IsEmpty(r.Position) {
		errs = append(errs, validator.ValidationError{
			Field:   "position",
			Message: "position is required",
		})
	}

	if validator.IsEmpty(r.WorkUnit) {
		errs = append(errs, validator.ValidationError{
			Field:   "work_unit",
			Message: "work_unit is required",
		})
	}

	if !validator.IsInSlice(r.EmploymentStatus, AllEmploymentStatuses()) {
		errs = append(errs, validator.ValidationError{
			Field:   "employment_status",
			Message: "employment_status must be one of: PNS, PPPK, Honorer, Pensiun",
		})
	}

	if _, ok := validator.IsValidDate(r.HireDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "hire_date",
			Message: "hire_date must be in YYYY-MM-DD format",
		})
	}

	if r.Phone != nil && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "phone must start with 08, 62 or +62 and have 10-14 digits",
		})
	}

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email format",
		})
	}

	if r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "base_salary",
			Message: "base_salary must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateEmployeeRequest only touches the fields that are set.
type UpdateEmployeeRequest struct {
	ID               string           `json:"-"`
	NIP              *string          `json:"nip,omitempty"`
	FullName         *string          `json:"full_name,omitempty"`
	Gender           *string          `json:"gender,omitempty"`
	BirthPlace       *string          `json:"birth_place,omitempty"`
	BirthDate        *string          `json:"birth_date,omitempty"`
	Position         *string          `json:"position,omitempty"`
	Rank             *string          `json:"rank,omitempty"`
	WorkUnit         *string          `json:"work_unit,omitempty"`
	EmploymentStatus *string          `json:"employment_status,omitempty"`
	HireDate         *string          `json:"hire_date,omitempty"`
	Phone            *string          `json:"phone,omitempty"`
	Email            *string          `json:"email,omitempty"`
	Address          *string          `json:"address,omitempty"`
	BaseSalary       *decimal.Decimal `json:"base_salary,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.NIP != nil && !validator.IsValidNIP(*r.NIP) {
		errs.Add("nip", "nip must be exactly 18 digits")
	}
	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs.Add("full_name", "full_name must not be empty")
	}
	if r.Gender != nil && *r.Gender != string(Male) && *r.Gender != string(Female) {
		errs.Add("gender", "gender must be L or P")
	}
	if r.BirthDate != nil {
		if _, ok := validator.IsValidDate(*r.BirthDate); !ok {
			errs.Add("birth_date", "birth_date must be in YYYY-MM-DD format")
		}
	}
	if r.HireDate != nil {
		if _, ok := validator.IsValidDate(*r.HireDate); !ok {
			errs.Add("hire_date", "hire_date must be in YYYY-MM-DD format")
		}
	}
	if r.EmploymentStatus != nil && !validator.IsInSlice(*r.EmploymentStatus, AllEmploymentStatuses()) {
		errs.Add("employment_status", "employment_status must be one of: PNS, PPPK, Honorer, Pensiun")
	}
	if r.Phone != nil && !validator.IsValidPhoneNumber(*r.Phone) {
		errs.Add("phone", "phone must start with 08, 62 or +62 and have 10-14 digits")
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs.Add("email", "invalid email format")
	}
	if r.BaseSalary != nil && r.BaseSalary.IsNegative() {
		errs.Add("base_salary", "base_salary must not be negative")
	}

	return errs.Err()
}

// Apply copies the set fields onto e. Validate must have passed.
func (r *UpdateEmployeeRequest) Apply(e *Employee) {
	if r.NIP != nil {
		e.NIP = *r.NIP
	}
	if r.FullName != nil {
		e.FullName = *r.FullName
	}
	if r.Gender != nil {
		e.Gender = Gender(*r.Gender)
	}
	if r.BirthPlace != nil {
		e.BirthPlace = r.BirthPlace
	}
	if r.BirthDate != nil {
		d, _ := validator.IsValidDate(*r.BirthDate)
		e.BirthDate = &d
	}
	if r.Position != nil {
		e.Position = *r.Position
	}
	if r.Rank != nil {
		e.Rank = *r.Rank
	}
	if r.WorkUnit != nil {
		e.WorkUnit = *r.WorkUnit
	}
	if r.EmploymentStatus != nil {
		e.EmploymentStatus = EmploymentStatus(*r.EmploymentStatus)
	}
	if r.HireDate != nil {
		e.HireDate, _ = validator.IsValidDate(*r.HireDate)
	}
	if r.Phone != nil {
		e.Phone = r.Phone
	}
	if r.Email != nil {
		e.Email = r.Email
	}
	if r.Address != nil {
		e.Address = r.Address
	}
	if r.BaseSalary != nil {
		e.BaseSalary = *r.BaseSalary
	}
}

type EmployeeFilter struct {
	Search           *string // matches name or NIP
	WorkUnit         *string
	EmploymentStatus *string
	pagination.Params
}

func (f *EmployeeFilter) Validate() error {
	var errs validator.ValidationErrors
	f.Params.Normalize(&errs)
	if f.EmploymentStatus != nil && *f.EmploymentStatus != "" && !validator.IsInSlice(*f.EmploymentStatus, AllEmploymentStatuses()) {
		errs.Add("employment_status", "employment_status must be one of: PNS, PPPK, Honorer, Pensiun")
	}
	return errs.Err()
}
