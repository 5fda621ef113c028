package approval

import "errors"

var (
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrNoPendingStep      = errors.New("no pending approval step")
	ErrNotCurrentApprover = errors.New("user is not the approver of the current step")
	ErrNoteRequired       = errors.New("note is required for reject and revise decisions")
	ErrInvalidDecision    = errors.New("decision must be approve, reject or revise")
	ErrUnknownKind        = errors.New("unknown request kind")
	ErrEmptyChain         = errors.New("approval chain has no approver")
	ErrCancelNotAllowed   = errors.New("user may not cancel this request")
)
