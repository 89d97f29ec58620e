package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/applytrack/timing-be/internal/notify"
	"github.com/applytrack/timing-be/internal/timing/domain"
)

// RunOnce executes a single poll cycle: query due records, then process
// each one independently. A due-query failure aborts the cycle; a single
// record failing only marks that record.
func (d *Daemon) RunOnce(ctx context.Context) error {
	now := d.now()

	due, err := d.store.DueRecords(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to load due records: %w", err)
	}

	if len(due) == 0 {
		d.logger.Debug("Poll cycle: nothing due")
		return nil
	}

	d.logger.Info("Poll cycle started",
		slog.Int("due_records", len(due)),
	)

	g := new(errgroup.Group)
	g.SetLimit(d.concurrency)

	for i := range due {
		rec := due[i]
		g.Go(func() error {
			d.processRecord(ctx, &rec)
			return nil
		})
	}

	_ = g.Wait()

	d.logger.Info("Poll cycle finished",
		slog.Int("due_records", len(due)),
	)
	return nil
}

// processRecord completes one due submission. A panic marks the record
// failed instead of taking down the cycle.
func (d *Daemon) processRecord(ctx context.Context, rec *domain.TimingRecord) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("Panic while processing record",
				slog.String("user_id", rec.UserID),
				slog.String("job_id", rec.JobID),
				slog.Any("panic", r),
			)
			d.failRecord(ctx, rec, fmt.Sprintf("panic: %v", r))
		}
	}()

	job, err := d.store.GetJob(ctx, rec.UserID, rec.JobID)
	if err != nil {
		// Missing or unreadable collaborators leave the record scheduled;
		// the next cycle retries it
		d.logger.Warn("Skipping due record - job unavailable",
			slog.String("user_id", rec.UserID),
			slog.String("job_id", rec.JobID),
			slog.Any("error", err),
		)
		return
	}

	user, err := d.store.GetUser(ctx, rec.UserID)
	if err != nil {
		d.logger.Warn("Skipping due record - user unavailable",
			slog.String("user_id", rec.UserID),
			slog.String("job_id", rec.JobID),
			slog.Any("error", err),
		)
		return
	}

	if rec.ScheduledSubmission.AutoSubmit {
		d.autoSubmit(ctx, rec, job, user)
	} else {
		d.remind(ctx, rec, job, user)
	}
}

// autoSubmit marks the job applied, claims the record as submitted, and
// sends the confirmation. The job write comes first: if it fails the record
// stays scheduled and the next cycle retries the whole submission. The
// notification is best-effort: once the claim is persisted the submission
// stands whether or not the email goes out.
func (d *Daemon) autoSubmit(ctx context.Context, rec *domain.TimingRecord, job *domain.Job, user *domain.User) {
	now := d.now()

	if err := rec.CompleteAutoSubmit(now); err != nil {
		d.logger.Warn("Due record no longer submittable",
			slog.String("user_id", rec.UserID),
			slog.String("job_id", rec.JobID),
			slog.Any("error", err),
		)
		return
	}

	if err := d.store.MarkJobApplied(ctx, rec.UserID, rec.JobID, now); err != nil {
		d.logger.Error("Failed to mark job applied, record stays scheduled",
			slog.String("user_id", rec.UserID),
			slog.String("job_id", rec.JobID),
			slog.Any("error", err),
		)
		return
	}

	if !d.claim(ctx, rec) {
		return
	}

	d.logger.Info("Auto-submitted application",
		slog.String("user_id", rec.UserID),
		slog.String("job_id", rec.JobID),
		slog.String("company", job.Company),
	)

	if err := d.sender.Send(ctx, notify.ConfirmationEmail(*user, *job, now)); err != nil {
		d.logger.Warn("Failed to send confirmation",
			slog.String("user_id", rec.UserID),
			slog.String("job_id", rec.JobID),
			slog.Any("error", err),
		)
	}
}

// remind claims the record as reminded and sends the reminder email.
// The reminded state is terminal, so a user is never reminded twice for
// the same schedule.
func (d *Daemon) remind(ctx context.Context, rec *domain.TimingRecord, job *domain.Job, user *domain.User) {
	now := d.now()

	scheduledFor := now
	if rec.ScheduledSubmission.ScheduledTime != nil {
		scheduledFor = *rec.ScheduledSubmission.ScheduledTime
	}

	if err := rec.CompleteReminder(now); err != nil {
		d.logger.Warn("Due record no longer remindable",
			slog.String("user_id", rec.UserID),
			slog.String("job_id", rec.JobID),
			slog.Any("error", err),
		)
		return
	}

	if !d.claim(ctx, rec) {
		return
	}

	d.logger.Info("Reminder sent for scheduled submission",
		slog.String("user_id", rec.UserID),
		slog.String("job_id", rec.JobID),
		slog.String("company", job.Company),
	)

	if err := d.sender.Send(ctx, notify.ReminderEmail(*user, *job, scheduledFor)); err != nil {
		d.logger.Warn("Failed to send reminder",
			slog.String("user_id", rec.UserID),
			slog.String("job_id", rec.JobID),
			slog.Any("error", err),
		)
	}
}

// claim persists the record's transition, reporting whether this instance
// won the write. Losing the compare-and-set just means another instance
// or a concurrent cancel got there first.
func (d *Daemon) claim(ctx context.Context, rec *domain.TimingRecord) bool {
	err := d.store.ClaimProcessed(ctx, rec)
	if err == nil {
		return true
	}

	if errors.Is(err, domain.ErrScheduleConflict) {
		d.logger.Info("Record already transitioned elsewhere, skipping",
			slog.String("user_id", rec.UserID),
			slog.String("job_id", rec.JobID),
		)
		return false
	}

	d.logger.Error("Failed to persist record transition",
		slog.String("user_id", rec.UserID),
		slog.String("job_id", rec.JobID),
		slog.Any("error", err),
	)
	return false
}

// failRecord marks the record failed so it drops out of the due query
func (d *Daemon) failRecord(ctx context.Context, rec *domain.TimingRecord, reason string) {
	rec.FailSchedule(reason, d.now())

	if err := d.store.ClaimProcessed(ctx, rec); err != nil && !errors.Is(err, domain.ErrScheduleConflict) {
		d.logger.Error("Failed to mark record failed",
			slog.String("user_id", rec.UserID),
			slog.String("job_id", rec.JobID),
			slog.Any("error", err),
		)
	}
}
