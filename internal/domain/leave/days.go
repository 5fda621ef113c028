package leave

import "time"

func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// dayNumber counts days since the Unix epoch. Unlike time.Duration it does
// not saturate for ranges spanning centuries.
func dayNumber(t time.Time) int64 {
	return calendarDate(t).Unix() / 86400
}

// CountDays returns the inclusive number of calendar days between start and end.
// Time of day and zone are ignored.
func CountDays(start, end time.Time) (int, error) {
	s, e := dayNumber(start), dayNumber(end)
	if e < s {
		return 0, ErrInvalidDateRange
	}
	return int(e-s) + 1, nil
}

// SubmitAllowed reports whether a request of requestedDays may be submitted.
// Only annual leave is bounded by the remaining quota.
func SubmitAllowed(leaveType string, requestedDays, remaining int) bool {
	if requestedDays <= 0 {
		return false
	}
	if IsAnnual(leaveType) && requestedDays > remaining {
		return false
	}
	return true
}

// HasEnded reports whether the leave period is over as of now.
func (r LeaveRequest) HasEnded(now time.Time) bool {
	return calendarDate(r.EndDate).Before(calendarDate(now))
}
