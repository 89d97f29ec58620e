package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/applytrack/timing-be/internal/timing/domain"
	"github.com/applytrack/timing-be/internal/timing/model"
)

// Storage handles all database operations for the scheduler
type Storage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStorage creates a new Storage instance
func NewStorage(db *sqlx.DB, logger *slog.Logger) *Storage {
	return &Storage{
		db:     db,
		logger: logger,
	}
}

// DueRecords returns records whose scheduled submission has come due.
// Failed, cancelled, and completed schedules never match, so one bad
// record cannot reappear cycle after cycle.
func (s *Storage) DueRecords(ctx context.Context, now time.Time) ([]domain.TimingRecord, error) {
	query := `
		SELECT user_id, job_id, industry, company_size, location, timezone, is_remote,
		       recommendation, schedule_status, scheduled_time, auto_submit, reminder_sent,
		       submitted_at, cancelled_at, cancel_reason, failure_reason,
		       submission_history, ab_test_group, metrics, created_at, updated_at
		FROM timing_records
		WHERE schedule_status = $1
		  AND scheduled_time <= $2
		ORDER BY scheduled_time ASC
	`

	var rows []model.TimingRecord
	if err := s.db.SelectContext(ctx, &rows, query, domain.ScheduleStatusScheduled, now); err != nil {
		return nil, fmt.Errorf("failed to query due records: %w", err)
	}

	records := make([]domain.TimingRecord, 0, len(rows))
	for i := range rows {
		rec, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}

	return records, nil
}

// GetJob retrieves the tracked job a timing record refers to
func (s *Storage) GetJob(ctx context.Context, userID, jobID string) (*domain.Job, error) {
	query := `
		SELECT job_id, user_id, title, company, industry, company_size,
		       location, work_mode, application_url, status, application_date
		FROM jobs
		WHERE user_id = $1 AND job_id = $2
	`

	var job domain.Job
	err := s.db.GetContext(ctx, &job, query, userID, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	return &job, nil
}

// GetUser retrieves the owner of a timing record
func (s *Storage) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	query := `
		SELECT user_id, email, name
		FROM users
		WHERE user_id = $1
	`

	var user domain.User
	err := s.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// MarkJobApplied flips the job status to Applied and stamps the
// application date
func (s *Storage) MarkJobApplied(ctx context.Context, userID, jobID string, appliedAt time.Time) error {
	query := `
		UPDATE jobs
		SET status = $1,
		    application_date = $2
		WHERE user_id = $3 AND job_id = $4
	`

	result, err := s.db.ExecContext(ctx, query, domain.JobStatusApplied, appliedAt, userID, jobID)
	if err != nil {
		return fmt.Errorf("failed to mark job applied: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		s.logger.Warn("Mark job applied - no rows affected",
			slog.String("user_id", userID),
			slog.String("job_id", jobID),
		)
	}

	return nil
}

// ClaimProcessed writes a processed record back using optimistic locking:
// the row must still be in scheduled status. Another scheduler instance or
// a concurrent cancel makes the write a no-op and returns
// ErrScheduleConflict, which callers treat as "someone else got it".
func (s *Storage) ClaimProcessed(ctx context.Context, rec *domain.TimingRecord) error {
	row, err := model.FromDomain(rec)
	if err != nil {
		return err
	}

	query := `
		UPDATE timing_records SET
			schedule_status = :schedule_status,
			scheduled_time = :scheduled_time,
			auto_submit = :auto_submit,
			reminder_sent = :reminder_sent,
			submitted_at = :submitted_at,
			cancelled_at = :cancelled_at,
			cancel_reason = :cancel_reason,
			failure_reason = :failure_reason,
			submission_history = :submission_history,
			metrics = :metrics,
			updated_at = :updated_at
		WHERE user_id = :user_id
		  AND job_id = :job_id
		  AND schedule_status = :prev_status
	`

	result, err := s.db.NamedExecContext(ctx, query, struct {
		*model.TimingRecord
		PrevStatus string `db:"prev_status"`
	}{row, domain.ScheduleStatusScheduled})
	if err != nil {
		return fmt.Errorf("failed to write processed record: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		s.logger.Warn("Failed to claim record - already transitioned",
			slog.String("user_id", rec.UserID),
			slog.String("job_id", rec.JobID),
		)
		return domain.ErrScheduleConflict
	}

	return nil
}
