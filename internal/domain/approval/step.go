package approval

import (
	"sort"
	"time"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/user"
)

// Kind identifies which request table an approval step belongs to.
type Kind string

const (
	KindLeave          Kind = "leave"
	KindStudyPermit    Kind = "study_permit"
	KindSalaryIncrease Kind = "salary_increase"
	KindPension        Kind = "pension"
)

func AllKinds() []Kind {
	return []Kind{KindLeave, KindStudyPermit, KindSalaryIncrease, KindPension}
}

// Label is the Indonesian name of the request kind used in documents and emails.
func (k Kind) Label() string {
	switch k {
	case KindLeave:
		return "Cuti"
	case KindStudyPermit:
		return "Izin Belajar"
	case KindSalaryIncrease:
		return "Kenaikan Gaji"
	case KindPension:
		return "Pensiun"
	}
	return string(k)
}

func ParseKind(s string) (Kind, error) {
	for _, k := range AllKinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", ErrUnknownKind
}

// Step is one approver's position in a request's approval chain.
type Step struct {
	ID           string
	RequestKind  Kind
	RequestID    string
	Sequence     int
	ApproverRole user.Role
	ApproverID   *string
	ApproverName *string
	Status       Status
	DecidedAt    *time.Time
	Note         *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type StepResponse struct {
	ID           string     `json:"id"`
	Sequence     int        `json:"sequence"`
	ApproverRole string     `json:"approver_role"`
	ApproverID   *string    `json:"approver_id,omitempty"`
	ApproverName *string    `json:"approver_name,omitempty"`
	Status       string     `json:"status"`
	Badge        Badge      `json:"badge"`
	DecidedAt    *time.Time `json:"decided_at,omitempty"`
	Note         *string    `json:"note,omitempty"`
}

// NewSteps builds pending steps numbered 1..n from an ordered list of roles.
func NewSteps(kind Kind, roles []user.Role) ([]Step, error) {
	if len(roles) == 0 {
		return nil, ErrEmptyChain
	}
	steps := make([]Step, 0, len(roles))
	for i, role := range roles {
		steps = append(steps, Step{
			RequestKind:  kind,
			Sequence:     i + 1,
			ApproverRole: role,
			Status:       StatusSubmitted,
		})
	}
	return steps, nil
}

// Timeline returns a copy of steps ordered by ascending sequence number.
func Timeline(steps []Step) []Step {
	ordered := make([]Step, len(steps))
	copy(ordered, steps)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Sequence < ordered[j].Sequence
	})
	return ordered
}

// TimelineResponse orders steps and maps them for API output.
func TimelineResponse(steps []Step) []StepResponse {
	ordered := Timeline(steps)
	out := make([]StepResponse, 0, len(ordered))
	for _, s := range ordered {
		out = append(out, StepResponse{
			ID:           s.ID,
			Sequence:     s.Sequence,
			ApproverRole: string(s.ApproverRole),
			ApproverID:   s.ApproverID,
			ApproverName: s.ApproverName,
			Status:       string(s.Status),
			Badge:        s.Status.Badge(),
			DecidedAt:    s.DecidedAt,
			Note:         s.Note,
		})
	}
	return out
}

// CurrentStep returns the lowest-sequence step still waiting for a decision.
func CurrentStep(steps []Step) (Step, bool) {
	for _, s := range Timeline(steps) {
		if s.Status == StatusSubmitted {
			return s, true
		}
	}
	return Step{}, false
}
