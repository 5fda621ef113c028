package pension

import (
	"mime/multipart"
	"time"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/approval"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/pagination"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/validator"
)

const pensionTypeMessage = "pension_type must be one of: BUP, APS, Janda/Duda, Uzur, Meninggal"

type CreatePensionRequest struct {
	EmployeeID    string `json:"employee_id"`
	PensionType   string `json:"pension_type"`
	FilingDate    string `json:"filing_date"`
	EffectiveDate string `json:"effective_date"`
	Reason        string `json:"reason"`

	Filing     time.Time             `json:"-"`
	Effective  time.Time             `json:"-"`
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *CreatePensionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !validator.IsInSlice(r.PensionType, AllPensionTypes()) {
		errs = append(errs, validator.ValidationError{
			Field:   "pension_type",
			Message: pensionTypeMessage,
		})
	}

	r.Filing, r.Effective = validator.ValidateDateRange(&errs, "filing_date", r.FilingDate, "effective_date", r.EffectiveDate)

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ResubmitPensionRequest struct {
	ID            string  `json:"-"`
	PensionType   *string `json:"pension_type,omitempty"`
	EffectiveDate *string `json:"effective_date,omitempty"`
	Reason        *string `json:"reason,omitempty"`
}

func (r *ResubmitPensionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.PensionType != nil && !validator.IsInSlice(*r.PensionType, AllPensionTypes()) {
		errs.Add("pension_type", pensionTypeMessage)
	}
	if r.EffectiveDate != nil {
		if _, ok := validator.IsValidDate(*r.EffectiveDate); !ok {
			errs.Add("effective_date", "effective_date must be a valid date (YYYY-MM-DD)")
		}
	}
	if r.Reason != nil && validator.IsEmpty(*r.Reason) {
		errs.Add("reason", "reason must not be empty")
	}

	return errs.Err()
}

type PensionResponse struct {
	ID                  string                  `json:"id"`
	EmployeeID          string                  `json:"employee_id"`
	EmployeeName        string                  `json:"employee_name"`
	EmployeeNIP         string                  `json:"employee_nip"`
	PensionType         string                  `json:"pension_type"`
	FilingDate          string                  `json:"filing_date"`
	EffectiveDate       string                  `json:"effective_date"`
	Reason              string                  `json:"reason"`
	AttachmentURL       *string                 `json:"attachment_url,omitempty"`
	Status              string                  `json:"status"`
	Badge               approval.Badge          `json:"badge"`
	CurrentApproverRole *string                 `json:"current_approver_role,omitempty"`
	SubmittedAt         string                  `json:"submitted_at"`
	UpdatedAt           string                  `json:"updated_at"`
	Timeline            []approval.StepResponse `json:"timeline"`
}

func ToResponse(p PensionRequest) PensionResponse {
	resp := PensionResponse{
		ID:            p.ID,
		EmployeeID:    p.EmployeeID,
		EmployeeName:  p.EmployeeName,
		EmployeeNIP:   p.EmployeeNIP,
		PensionType:   string(p.PensionType),
		FilingDate:    p.FilingDate.Format(validator.DateLayout),
		EffectiveDate: p.EffectiveDate.Format(validator.DateLayout),
		Reason:        p.Reason,
		AttachmentURL: p.AttachmentURL,
		Status:        string(p.Status),
		Badge:         approval.Classify(string(p.Status)),
		SubmittedAt:   p.SubmittedAt.Format(time.RFC3339),
		UpdatedAt:     p.UpdatedAt.Format(time.RFC3339),
		Timeline:      approval.TimelineResponse(p.Steps),
	}
	if p.Status == approval.StatusSubmitted {
		if step, ok := approval.CurrentStep(p.Steps); ok {
			role := string(step.ApproverRole)
			resp.CurrentApproverRole = &role
		}
	}
	return resp
}

type ListPensionResponse = pagination.List[PensionResponse]

type PensionFilter struct {
	EmployeeID  *string
	Status      *string
	PensionType *string
	pagination.Params
	Unpaged bool
}

func (f *PensionFilter) Validate() error {
	var errs validator.ValidationErrors

	if !f.Unpaged {
		f.Params.Normalize(&errs)
	}
	if s := approval.StatusField(&errs, "status", f.Status); s != nil {
		v := string(*s)
		f.Status = &v
	}
	if f.PensionType != nil && *f.PensionType != "" && !validator.IsInSlice(*f.PensionType, AllPensionTypes()) {
		errs.Add("pension_type", pensionTypeMessage)
	}

	return errs.Err()
}
