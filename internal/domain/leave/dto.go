package leave

import (
	"mime/multipart"
	"time"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/approval"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/pagination"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/validator"
)

type LeaveQuotaResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  *string `json:"employee_name,omitempty"`
	Year          int     `json:"year"`
	TotalDays     int     `json:"total_days"`
	UsedDays      int     `json:"used_days"`
	RemainingDays int     `json:"remaining_days"`
}

func ToQuotaResponse(q LeaveQuota) LeaveQuotaResponse {
	return LeaveQuotaResponse{
		ID:            q.ID,
		EmployeeID:    q.EmployeeID,
		EmployeeName:  q.EmployeeName,
		Year:          q.Year,
		TotalDays:     q.TotalDays,
		UsedDays:      q.UsedDays(),
		RemainingDays: q.RemainingDays,
	}
}

type ListLeaveQuotaResponse = pagination.List[LeaveQuotaResponse]

type CreateLeaveQuotaRequest struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
	TotalDays  int    `json:"total_days"`
}

func (r *CreateLeaveQuotaRequest) Validate() error {
	var errs validator.ValidationErrors

	// Employee ID
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	// Year
	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 2100",
		})
	}

	// Total days
	if r.TotalDays < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "total_days",
			Message: "total_days must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateLeaveQuotaRequest struct {
	ID            string `json:"-"`
	TotalDays     *int   `json:"total_days,omitempty"`
	RemainingDays *int   `json:"remaining_days,omitempty"`
}

func (r *UpdateLeaveQuotaRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.TotalDays != nil && *r.TotalDays < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "total_days",
			Message: "total_days must not be negative",
		})
	}

	if r.RemainingDays != nil && *r.RemainingDays < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "remaining_days",
			Message: "remaining_days must not be negative",
		})
	}

	// RemainingDays should not exceed TotalDays if both are provided
	if r.TotalDays != nil && r.RemainingDays != nil && *r.RemainingDays > *r.TotalDays {
		errs = append(errs, validator.ValidationError{
			Field:   "remaining_days",
			Message: "remaining_days must not exceed total_days",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveQuotaFilter struct {
	EmployeeID *string
	Year       *int
	pagination.Params
}

func (f *LeaveQuotaFilter) Validate() error {
	var errs validator.ValidationErrors
	f.Params.Normalize(&errs)
	return errs.Err()
}

func validateLeaveType(errs *validator.ValidationErrors, value string) string {
	if validator.IsEmpty(value) {
		errs.Add("leave_type", "leave_type is required")
		return value
	}
	lt, ok := FindLeaveType(value)
	if !ok {
		errs.Add("leave_type", "leave_type is not a recognised leave type")
		return value
	}
	return lt.Name
}

// PreviewLeaveRequest asks for the day count and quota verdict without saving.
type PreviewLeaveRequest struct {
	EmployeeID string `json:"employee_id"`
	LeaveType  string `json:"leave_type"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`

	Start time.Time `json:"-"`
	End   time.Time `json:"-"`
}

func (r *PreviewLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}
	r.LeaveType = validateLeaveType(&errs, r.LeaveType)
	r.Start, r.End = validator.ValidateDateRange(&errs, "start_date", r.StartDate, "end_date", r.EndDate)

	return errs.Err()
}

type PreviewLeaveResponse struct {
	LeaveType     string `json:"leave_type"`
	IsAnnual      bool   `json:"is_annual"`
	DayCount      int    `json:"day_count"`
	RemainingDays *int   `json:"remaining_days,omitempty"`
	SubmitAllowed bool   `json:"submit_allowed"`
}

type CreateLeaveRequestRequest struct {
	EmployeeID         string `json:"employee_id"`
	LeaveType          string `json:"leave_type"`
	StartDate          string `json:"start_date"`
	EndDate            string `json:"end_date"`
	Reason             string `json:"reason"`
	AddressDuringLeave string `json:"address_during_leave"`
	PhoneDuringLeave   string `json:"phone_during_leave"`

	Start      time.Time             `json:"-"`
	End        time.Time             `json:"-"`
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	// Employee ID
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	r.LeaveType = validateLeaveType(&errs, r.LeaveType)
	r.Start, r.End = validator.ValidateDateRange(&errs, "start_date", r.StartDate, "end_date", r.EndDate)

	// Reason
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	} else if len(r.Reason) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 1000 characters",
		})
	}

	// Address
	if validator.IsEmpty(r.AddressDuringLeave) {
		errs = append(errs, validator.ValidationError{
			Field:   "address_during_leave",
			Message: "address_during_leave is required",
		})
	}

	// Phone
	if validator.IsEmpty(r.PhoneDuringLeave) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone_during_leave",
			Message: "phone_during_leave is required",
		})
	} else if !validator.IsValidPhoneNumber(r.PhoneDuringLeave) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone_during_leave",
			Message: "phone_during_leave must start with 08, 62 or +62 and have 10-14 digits",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ResubmitLeaveRequestRequest carries the fields an applicant may change after a revision.
type ResubmitLeaveRequestRequest struct {
	ID                 string  `json:"-"`
	LeaveType          *string `json:"leave_type,omitempty"`
	StartDate          *string `json:"start_date,omitempty"`
	EndDate            *string `json:"end_date,omitempty"`
	Reason             *string `json:"reason,omitempty"`
	AddressDuringLeave *string `json:"address_during_leave,omitempty"`
	PhoneDuringLeave   *string `json:"phone_during_leave,omitempty"`
}

func (r *ResubmitLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.LeaveType != nil {
		lt := validateLeaveType(&errs, *r.LeaveType)
		r.LeaveType = &lt
	}
	if r.StartDate != nil {
		if _, ok := validator.IsValidDate(*r.StartDate); !ok {
			errs.Add("start_date", "start_date must be a valid date (YYYY-MM-DD)")
		}
	}
	if r.EndDate != nil {
		if _, ok := validator.IsValidDate(*r.EndDate); !ok {
			errs.Add("end_date", "end_date must be a valid date (YYYY-MM-DD)")
		}
	}
	if r.Reason != nil && validator.IsEmpty(*r.Reason) {
		errs.Add("reason", "reason must not be empty")
	}
	if r.PhoneDuringLeave != nil && !validator.IsValidPhoneNumber(*r.PhoneDuringLeave) {
		errs.Add("phone_during_leave", "phone_during_leave must start with 08, 62 or +62 and have 10-14 digits")
	}

	return errs.Err()
}

type LeaveRequestResponse struct {
	ID                  string                  `json:"id"`
	EmployeeID          string                  `json:"employee_id"`
	EmployeeName        string                  `json:"employee_name"`
	EmployeeNIP         string                  `json:"employee_nip"`
	LeaveType           string                  `json:"leave_type"`
	StartDate           string                  `json:"start_date"`
	EndDate             string                  `json:"end_date"`
	DayCount            int                     `json:"day_count"`
	Reason              string                  `json:"reason"`
	AddressDuringLeave  string                  `json:"address_during_leave"`
	PhoneDuringLeave    string                  `json:"phone_during_leave"`
	AttachmentURL       *string                 `json:"attachment_url,omitempty"`
	Status              string                  `json:"status"`
	Badge               approval.Badge          `json:"badge"`
	CurrentApproverRole *string                 `json:"current_approver_role,omitempty"`
	SubmittedAt         string                  `json:"submitted_at"`
	UpdatedAt           string                  `json:"updated_at"`
	Timeline            []approval.StepResponse `json:"timeline"`
}

func ToRequestResponse(r LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:                 r.ID,
		EmployeeID:         r.EmployeeID,
		EmployeeName:       r.EmployeeName,
		EmployeeNIP:        r.EmployeeNIP,
		LeaveType:          r.LeaveType,
		StartDate:          r.StartDate.Format(validator.DateLayout),
		EndDate:            r.EndDate.Format(validator.DateLayout),
		DayCount:           r.DayCount,
		Reason:             r.Reason,
		AddressDuringLeave: r.AddressDuringLeave,
		PhoneDuringLeave:   r.PhoneDuringLeave,
		AttachmentURL:      r.AttachmentURL,
		Status:             string(r.Status),
		Badge:              approval.Classify(string(r.Status)),
		SubmittedAt:        r.SubmittedAt.Format(time.RFC3339),
		UpdatedAt:          r.UpdatedAt.Format(time.RFC3339),
		Timeline:           approval.TimelineResponse(r.Steps),
	}
	if r.Status == approval.StatusSubmitted {
		if step, ok := approval.CurrentStep(r.Steps); ok {
			role := string(step.ApproverRole)
			resp.CurrentApproverRole = &role
		}
	}
	return resp
}

type ListLeaveRequestResponse = pagination.List[LeaveRequestResponse]

type LeaveRequestFilter struct {
	EmployeeID *string
	Status     *string
	LeaveType  *string
	StartDate  *string
	EndDate    *string
	pagination.Params

	// Unpaged is set by exports to fetch the full filtered set.
	Unpaged bool
}

func (f *LeaveRequestFilter) Validate() error {
	var errs validator.ValidationErrors

	if !f.Unpaged {
		f.Params.Normalize(&errs)
	}
	if s := approval.StatusField(&errs, "status", f.Status); s != nil {
		v := string(*s)
		f.Status = &v
	}
	if f.LeaveType != nil && *f.LeaveType != "" {
		if lt, ok := FindLeaveType(*f.LeaveType); ok {
			f.LeaveType = &lt.Name
		} else {
			errs.Add("leave_type", "leave_type is not a recognised leave type")
		}
	}
	if f.StartDate != nil && *f.StartDate != "" {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
		}
	}
	if f.EndDate != nil && *f.EndDate != "" {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
		}
	}

	return errs.Err()
}
