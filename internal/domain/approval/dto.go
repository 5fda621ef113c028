package approval

import (
	"github.com/simpeg-id/simpeg-backend-go/internal/pkg/validator"
)

// DecisionRequest is the body of every POST .../{id}/decision endpoint.
type DecisionRequest struct {
	Decision string `json:"decision"`
	Note     string `json:"note"`
}

func (r *DecisionRequest) Validate() error {
	var errs validator.ValidationErrors

	d, err := ParseDecision(r.Decision)
	if err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "decision",
			Message: "decision must be one of: approve, reject, revise",
		})
	} else if d != DecisionApprove && validator.IsEmpty(r.Note) {
		errs = append(errs, validator.ValidationError{
			Field:   "note",
			Message: "note is required when rejecting or requesting a revision",
		})
	}
	if len(r.Note) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "note",
			Message: "note must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CancelRequest struct {
	Reason string `json:"reason"`
}

type StatusResponse struct {
	Status string `json:"status"`
	Badge  Badge  `json:"badge"`
}

func StatusList() []StatusResponse {
	out := make([]StatusResponse, 0, len(AllStatuses()))
	for _, s := range AllStatuses() {
		out = append(out, StatusResponse{Status: string(s), Badge: s.Badge()})
	}
	return out
}

// StatusField validates an optional status filter value and returns its canonical form.
func StatusField(errs *validator.ValidationErrors, field string, value *string) *Status {
	if value == nil || *value == "" {
		return nil
	}
	s, ok := ParseStatus(*value)
	if !ok {
		errs.Add(field, field+" must be one of: DIAJUKAN, DIREVISI, DISETUJUI, DITOLAK, SELESAI, DIBATALKAN")
		return nil
	}
	return &s
}
