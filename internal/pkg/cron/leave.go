package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/simpeg-id/simpeg-backend-go/internal/domain/leave"
)

const CompleteFinishedLeaveJob = "complete_finished_leave"

// RegisterLeaveJobs schedules the job that closes approved leave whose period is over.
func RegisterLeaveJobs(s *Scheduler, svc leave.LeaveService, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	s.Register(CompleteFinishedLeaveJob, interval, func(ctx context.Context) error {
		n, err := svc.CompleteFinishedLeave(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			slog.Info("Finished leave requests completed", "count", n)
		}
		return nil
	})
}
