package studypermit

import (
	"mime/multipart"
	"time"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/approval"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/pagination"
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/validator"
)

type CreateStudyPermitRequest struct {
	EmployeeID    string  `json:"employee_id"`
	Institution   string  `json:"institution"`
	Program       string  `json:"program"`
	Degree        string  `json:"degree"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	FundingSource string  `json:"funding_source"`
	Reason        *string `json:"reason,omitempty"`

	Start      time.Time             `json:"-"`
	End        time.Time             `json:"-"`
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *CreateStudyPermitRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.Institution) {
		errs = append(errs, validator.ValidationError{
			Field:   "institution",
			Message: "institution is required",
		})
	} else if len(r.Institution) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "institution",
			Message: "institution must not exceed 255 characters",
		})
	}

	if validator.IsEmpty(r.Program) {
		errs = append(errs, validator.ValidationError{
			Field:   "program",
			Message: "program is required",
		})
	}

	if !validator.IsInSlice(r.Degree, AllDegrees()) {
		errs = append(errs, validator.ValidationError{
			Field:   "degree",
			Message: "degree must be one of: D3, S1, S2, S3, Profesi",
		})
	}

	if !validator.IsInSlice(r.FundingSource, AllFundingSources()) {
		errs = append(errs, validator.ValidationError{
			Field:   "funding_source",
			Message: "funding_source must be one of: Mandiri, APBD, APBN, Beasiswa",
		})
	}

	r.Start, r.End = validator.ValidateDateRange(&errs, "start_date", r.StartDate, "end_date", r.EndDate)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ResubmitStudyPermitRequest struct {
	ID            string  `json:"-"`
	Institution   *string `json:"institution,omitempty"`
	Program       *string `json:"program,omitempty"`
	Degree        *string `json:"degree,omitempty"`
	StartDate     *string `json:"start_date,omitempty"`
	EndDate       *string `json:"end_date,omitempty"`
	FundingSource *string `json:"funding_source,omitempty"`
	Reason        *string `json:"reason,omitempty"`
}

func (r *ResubmitStudyPermitRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.Institution != nil && validator.IsEmpty(*r.Institution) {
		errs.Add("institution", "institution must not be empty")
	}
	if r.Program != nil && validator.IsEmpty(*r.Program) {
		errs.Add("program", "program must not be empty")
	}
	if r.Degree != nil && !validator.IsInSlice(*r.Degree, AllDegrees()) {
		errs.Add("degree", "degree must be one of: D3, S1, S2, S3, Profesi")
	}
	if r.FundingSource != nil && !validator.IsInSlice(*r.FundingSource, AllFundingSources()) {
		errs.Add("funding_source", "funding_source must be one of: Mandiri, APBD, APBN, Beasiswa")
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

	return errs.Err()
}

type StudyPermitResponse struct {
	ID                  string                  `json:"id"`
	EmployeeID          string                  `json:"employee_id"`
	EmployeeName        string                  `json:"employee_name"`
	EmployeeNIP         string                  `json:"employee_nip"`
	Institution         string                  `json:"institution"`
	Program             string                  `json:"program"`
	Degree              string                  `json:"degree"`
	StartDate           string                  `json:"start_date"`
	EndDate             string                  `json:"end_date"`
	DurationMonths      int                     `json:"duration_months"`
	FundingSource       string                  `json:"funding_source"`
	Reason              *string                 `json:"reason,omitempty"`
	AttachmentURL       *string                 `json:"attachment_url,omitempty"`
	Status              string                  `json:"status"`
	Badge               approval.Badge          `json:"badge"`
	CurrentApproverRole *string                 `json:"current_approver_role,omitempty"`
	SubmittedAt         string                  `json:"submitted_at"`
	UpdatedAt           string                  `json:"updated_at"`
	Timeline            []approval.StepResponse `json:"timeline"`
}

func ToResponse(r StudyPermitRequest) StudyPermitResponse {
	resp := StudyPermitResponse{
		ID:             r.ID,
		EmployeeID:     r.EmployeeID,
		EmployeeName:   r.EmployeeName,
		EmployeeNIP:    r.EmployeeNIP,
		Institution:    r.Institution,
		Program:        r.Program,
		Degree:         string(r.Degree),
		StartDate:      r.StartDate.Format(validator.DateLayout),
		EndDate:        r.EndDate.Format(validator.DateLayout),
		DurationMonths: r.DurationMonths,
		FundingSource:  string(r.FundingSource),
		Reason:         r.Reason,
		AttachmentURL:  r.AttachmentURL,
		Status:         string(r.Status),
		Badge:          approval.Classify(string(r.Status)),
		SubmittedAt:    r.SubmittedAt.Format(time.RFC3339),
		UpdatedAt:      r.UpdatedAt.Format(time.RFC3339),
		Timeline:       approval.TimelineResponse(r.Steps),
	}
	if r.Status == approval.StatusSubmitted {
		if step, ok := approval.CurrentStep(r.Steps); ok {
			role := string(step.ApproverRole)
			resp.CurrentApproverRole = &role
		}
	}
	return resp
}

type ListStudyPermitResponse = pagination.List[StudyPermitResponse]

type StudyPermitFilter struct {
	EmployeeID *string
	Status     *string
	Degree     *string
	StartDate  *string
	EndDate    *string
	pagination.Params
	Unpaged bool
}

func (f *StudyPermitFilter) Validate() error {
	var errs validator.ValidationErrors

	if !f.Unpaged {
		f.Params.Normalize(&errs)
	}
	if s := approval.StatusField(&errs, "status", f.Status); s != nil {
		v := string(*s)
		f.Status = &v
	}
	if f.Degree != nil && *f.Degree != "" && !validator.IsInSlice(*f.Degree, AllDegrees()) {
		errs.Add("degree", "degree must be one of: D3, S1, S2, S3, Profesi")
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
