package approval

import (
	"strings"
	"time"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/user"
)

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
	DecisionRevise  Decision = "revise"
)

func ParseDecision(s string) (Decision, error) {
	switch d := Decision(strings.ToLower(strings.TrimSpace(s))); d {
	case DecisionApprove, DecisionReject, DecisionRevise:
		return d, nil
	}
	return "", ErrInvalidDecision
}

// Status is the step status a decision produces.
func (d Decision) Status() Status {
	switch d {
	case DecisionApprove:
		return StatusApproved
	case DecisionReject:
		return StatusRejected
	default:
		return StatusRevision
	}
}

// Actor is the authenticated caller acting on a request.
type Actor struct {
	UserID     string
	EmployeeID *string
	Name       string
	Role       user.Role
	// ViewAll is set when the caller may see requests of other employees.
	ViewAll bool
	// CancelAny is set when the caller may cancel requests of other employees,
	// including approved ones.
	CancelAny bool
}

// Owns reports whether the request of employeeID belongs to the actor.
func (a Actor) Owns(employeeID string) bool {
	return a.EmployeeID != nil && *a.EmployeeID == employeeID
}

// Cancel checks that actor may cancel a request of employeeID in requestStatus.
// Applicants may withdraw requests still in the approval flow; approved
// requests can only be cancelled with CancelAny.
func Cancel(requestStatus Status, employeeID string, actor Actor) error {
	if !CanTransition(requestStatus, StatusCancelled) {
		return ErrInvalidTransition
	}
	if actor.CancelAny {
		return nil
	}
	if !actor.Owns(employeeID) {
		return ErrCancelNotAllowed
	}
	if requestStatus == StatusApproved {
		return ErrCancelNotAllowed
	}
	return nil
}

// Outcome is the result of applying a decision to a request's steps.
type Outcome struct {
	Steps         []Step
	Step          Step
	RequestStatus Status
	Final         bool
}

// Decide applies d to the current step. The request must be DIAJUKAN and the
// actor must hold the current step's approver role (admins may act on any step).
func Decide(requestStatus Status, steps []Step, actor Actor, d Decision, note string, at time.Time) (Outcome, error) {
	if requestStatus != StatusSubmitted {
		return Outcome{}, ErrInvalidTransition
	}
	if _, err := ParseDecision(string(d)); err != nil {
		return Outcome{}, err
	}
	note = strings.TrimSpace(note)
	if d != DecisionApprove && note == "" {
		return Outcome{}, ErrNoteRequired
	}

	ordered := Timeline(steps)
	idx := -1
	for i, s := range ordered {
		if s.Status == StatusSubmitted {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Outcome{}, ErrNoPendingStep
	}
	if actor.Role != user.RoleAdmin && actor.Role != ordered[idx].ApproverRole {
		return Outcome{}, ErrNotCurrentApprover
	}

	decidedAt := at
	step := ordered[idx]
	step.Status = d.Status()
	step.ApproverID = &actor.UserID
	if actor.Name != "" {
		name := actor.Name
		step.ApproverName = &name
	}
	step.DecidedAt = &decidedAt
	if note != "" {
		step.Note = &note
	} else {
		step.Note = nil
	}
	ordered[idx] = step

	outcome := Outcome{Steps: ordered, Step: step}
	switch d {
	case DecisionApprove:
		outcome.RequestStatus = StatusSubmitted
		if idx == len(ordered)-1 {
			outcome.RequestStatus = StatusApproved
			outcome.Final = true
		}
	case DecisionReject:
		outcome.RequestStatus = StatusRejected
	case DecisionRevise:
		outcome.RequestStatus = StatusRevision
	}
	return outcome, nil
}

// Resubmit reopens the step that asked for a revision.
func Resubmit(requestStatus Status, steps []Step) (Outcome, error) {
	if !CanTransition(requestStatus, StatusSubmitted) {
		return Outcome{}, ErrInvalidTransition
	}
	ordered := Timeline(steps)
	for i, s := range ordered {
		if s.Status != StatusRevision {
			continue
		}
		s.Status = StatusSubmitted
		s.ApproverID = nil
		s.ApproverName = nil
		s.DecidedAt = nil
		s.Note = nil
		ordered[i] = s
		return Outcome{Steps: ordered, Step: s, RequestStatus: StatusSubmitted}, nil
	}
	return Outcome{}, ErrNoPendingStep
}
