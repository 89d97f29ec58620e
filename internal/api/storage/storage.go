package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/applytrack/timing-be/internal/timing/domain"
	"github.com/applytrack/timing-be/internal/timing/model"
	"github.com/applytrack/timing-be/shared/postgresql"
)

const recordColumns = `
	user_id, job_id, industry, company_size, location, timezone, is_remote,
	recommendation, schedule_status, scheduled_time, auto_submit, reminder_sent,
	submitted_at, cancelled_at, cancel_reason, failure_reason,
	submission_history, ab_test_group, metrics, created_at, updated_at
`

type Storage struct {
	db *sqlx.DB
}

func NewStorage(pg *postgresql.Client) *Storage {
	return &Storage{
		db: pg.GetDB(),
	}
}

// UpsertRecord inserts a timing record or replaces the existing row for the
// same (user_id, job_id).
func (s *Storage) UpsertRecord(ctx context.Context, rec *domain.TimingRecord) error {
	row, err := model.FromDomain(rec)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO timing_records (
			user_id, job_id, industry, company_size, location, timezone, is_remote,
			recommendation, schedule_status, scheduled_time, auto_submit, reminder_sent,
			submitted_at, cancelled_at, cancel_reason, failure_reason,
			submission_history, ab_test_group, metrics, created_at, updated_at
		) VALUES (
			:user_id, :job_id, :industry, :company_size, :location, :timezone, :is_remote,
			:recommendation, :schedule_status, :scheduled_time, :auto_submit, :reminder_sent,
			:submitted_at, :cancelled_at, :cancel_reason, :failure_reason,
			:submission_history, :ab_test_group, :metrics, :created_at, :updated_at
		)
		ON CONFLICT (user_id, job_id) DO UPDATE SET
			industry = EXCLUDED.industry,
			company_size = EXCLUDED.company_size,
			location = EXCLUDED.location,
			timezone = EXCLUDED.timezone,
			is_remote = EXCLUDED.is_remote,
			recommendation = EXCLUDED.recommendation,
			schedule_status = EXCLUDED.schedule_status,
			scheduled_time = EXCLUDED.scheduled_time,
			auto_submit = EXCLUDED.auto_submit,
			reminder_sent = EXCLUDED.reminder_sent,
			submitted_at = EXCLUDED.submitted_at,
			cancelled_at = EXCLUDED.cancelled_at,
			cancel_reason = EXCLUDED.cancel_reason,
			failure_reason = EXCLUDED.failure_reason,
			submission_history = EXCLUDED.submission_history,
			ab_test_group = EXCLUDED.ab_test_group,
			metrics = EXCLUDED.metrics,
			updated_at = EXCLUDED.updated_at
	`

	if _, err := s.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("failed to upsert timing record: %w", err)
	}

	return nil
}

// GetRecord retrieves one timing record.
func (s *Storage) GetRecord(ctx context.Context, userID, jobID string) (*domain.TimingRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM timing_records
		WHERE user_id = $1 AND job_id = $2
	`

	var row model.TimingRecord
	err := s.db.GetContext(ctx, &row, query, userID, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get timing record: %w", err)
	}

	return row.ToDomain()
}

// UpdateRecordCAS writes the record back only if the schedule status in the
// database still matches prevStatus. A concurrent transition (scheduler
// completing the submission, another request cancelling it) makes the write
// a no-op and returns ErrScheduleConflict.
func (s *Storage) UpdateRecordCAS(ctx context.Context, rec *domain.TimingRecord, prevStatus string) error {
	row, err := model.FromDomain(rec)
	if err != nil {
		return err
	}

	query := `
		UPDATE timing_records SET
			industry = :industry,
			company_size = :company_size,
			location = :location,
			timezone = :timezone,
			is_remote = :is_remote,
			recommendation = :recommendation,
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
		  AND schedule_status IS NOT DISTINCT FROM :prev_status
	`

	result, err := s.db.NamedExecContext(ctx, query, struct {
		*model.TimingRecord
		PrevStatus sql.NullString `db:"prev_status"`
	}{row, nullableStatus(prevStatus)})
	if err != nil {
		return fmt.Errorf("failed to update timing record: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return domain.ErrScheduleConflict
	}

	return nil
}

type RecordFilter struct {
	UserID   string
	Industry string
	PageSize int
	Cursor   *RecordCursor
}

type RecordCursor struct {
	CreatedAt time.Time
	JobID     string
}

// ListRecords pages through timing records newest-first.
func (s *Storage) ListRecords(ctx context.Context, filter RecordFilter) ([]domain.TimingRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM timing_records
		WHERE 1=1
	`
	args := []interface{}{}
	argIdx := 1

	if filter.UserID != "" {
		query += fmt.Sprintf(" AND user_id = $%d", argIdx)
		args = append(args, filter.UserID)
		argIdx++
	}

	if filter.Industry != "" {
		query += fmt.Sprintf(" AND LOWER(industry) = LOWER($%d)", argIdx)
		args = append(args, filter.Industry)
		argIdx++
	}

	if filter.Cursor != nil {
		query += fmt.Sprintf(" AND (created_at, job_id) < ($%d, $%d)", argIdx, argIdx+1)
		args = append(args, filter.Cursor.CreatedAt, filter.Cursor.JobID)
		argIdx += 2
	}

	// Order by created_at DESC, job_id DESC for consistent pagination
	query += " ORDER BY created_at DESC, job_id DESC"

	// Fetch one extra to determine if there are more results
	query += fmt.Sprintf(" LIMIT $%d", argIdx)
	args = append(args, filter.PageSize+1)

	var rows []model.TimingRecord
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list timing records: %w", err)
	}

	return toDomainRecords(rows)
}

// RecordsByUser returns every timing record owned by a user. Satisfies the
// analyzer's record source.
func (s *Storage) RecordsByUser(ctx context.Context, userID string) ([]domain.TimingRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM timing_records
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	var rows []model.TimingRecord
	if err := s.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list records for user: %w", err)
	}

	return toDomainRecords(rows)
}

// RecordsByIndustry returns every timing record in an industry.
func (s *Storage) RecordsByIndustry(ctx context.Context, industry string) ([]domain.TimingRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM timing_records
		WHERE LOWER(industry) = LOWER($1)
		ORDER BY created_at DESC
	`

	var rows []model.TimingRecord
	if err := s.db.SelectContext(ctx, &rows, query, industry); err != nil {
		return nil, fmt.Errorf("failed to list records for industry: %w", err)
	}

	return toDomainRecords(rows)
}

// GetJob loads the tracked job a timing record refers to.
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

func toDomainRecords(rows []model.TimingRecord) ([]domain.TimingRecord, error) {
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

func nullableStatus(status string) sql.NullString {
	return sql.NullString{String: status, Valid: status != ""}
}
