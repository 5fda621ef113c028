package approval

import "strings"

// Status is the approval status shared by every request kind.
type Status string

const (
	StatusSubmitted Status = "DIAJUKAN"
	StatusRevision  Status = "DIREVISI"
	StatusApproved  Status = "DISETUJUI"
	StatusRejected  Status = "DITOLAK"
	StatusCompleted Status = "SELESAI"
	StatusCancelled Status = "DIBATALKAN"
)

// AllStatuses returns the status vocabulary in lifecycle order.
func AllStatuses() []Status {
	return []Status{
		StatusSubmitted,
		StatusRevision,
		StatusApproved,
		StatusRejected,
		StatusCompleted,
		StatusCancelled,
	}
}

// ParseStatus normalizes s and reports whether it belongs to the vocabulary.
func ParseStatus(s string) (Status, bool) {
	normalized := Status(strings.ToUpper(strings.TrimSpace(s)))
	for _, st := range AllStatuses() {
		if st == normalized {
			return st, true
		}
	}
	return "", false
}

func (s Status) IsTerminal() bool {
	return s == StatusRejected || s == StatusCompleted || s == StatusCancelled
}

var transitions = map[Status][]Status{
	StatusSubmitted: {StatusApproved, StatusRejected, StatusRevision, StatusCancelled},
	StatusRevision:  {StatusSubmitted, StatusCancelled},
	StatusApproved:  {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether a request may move from one status to another.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
