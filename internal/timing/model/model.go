// Package model maps timing records between their domain form and the
// timing_records table. Schedule fields live in real columns so the
// scheduler can query on them; the recommendation, history, and metrics
// ride along as JSON.
package model

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/applytrack/timing-be/internal/timing/domain"
)

// TimingRecord is one row of timing_records.
type TimingRecord struct {
	UserID      string `db:"user_id"`
	JobID       string `db:"job_id"`
	Industry    string `db:"industry"`
	CompanySize string `db:"company_size"`
	Location    string `db:"location"`
	Timezone    string `db:"timezone"`
	IsRemote    bool   `db:"is_remote"`

	Recommendation sql.NullString `db:"recommendation"`

	ScheduleStatus sql.NullString `db:"schedule_status"`
	ScheduledTime  sql.NullTime   `db:"scheduled_time"`
	AutoSubmit     bool           `db:"auto_submit"`
	ReminderSent   bool           `db:"reminder_sent"`
	SubmittedAt    sql.NullTime   `db:"submitted_at"`
	CancelledAt    sql.NullTime   `db:"cancelled_at"`
	CancelReason   sql.NullString `db:"cancel_reason"`
	FailureReason  sql.NullString `db:"failure_reason"`

	SubmissionHistory string         `db:"submission_history"`
	ABTestGroup       sql.NullString `db:"ab_test_group"`
	Metrics           string         `db:"metrics"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// FromDomain converts a domain record into its row form.
func FromDomain(rec *domain.TimingRecord) (*TimingRecord, error) {
	row := &TimingRecord{
		UserID:       rec.UserID,
		JobID:        rec.JobID,
		Industry:     rec.Industry,
		CompanySize:  rec.CompanySize,
		Location:     rec.Location,
		Timezone:     rec.Timezone,
		IsRemote:     rec.IsRemote,
		AutoSubmit:   rec.ScheduledSubmission.AutoSubmit,
		ReminderSent: rec.ScheduledSubmission.ReminderSent,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}

	if rec.CurrentRecommendation != nil {
		data, err := json.Marshal(rec.CurrentRecommendation)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal recommendation: %w", err)
		}
		row.Recommendation = sql.NullString{String: string(data), Valid: true}
	}

	sched := rec.ScheduledSubmission
	row.ScheduleStatus = nullString(sched.Status)
	row.ScheduledTime = nullTime(sched.ScheduledTime)
	row.SubmittedAt = nullTime(sched.SubmittedAt)
	row.CancelledAt = nullTime(sched.CancelledAt)
	row.CancelReason = nullString(sched.CancelReason)
	row.FailureReason = nullString(sched.FailureReason)
	row.ABTestGroup = nullString(rec.ABTestGroup)

	history := rec.SubmissionHistory
	if history == nil {
		history = []domain.SubmissionEntry{}
	}
	historyJSON, err := json.Marshal(history)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal submission history: %w", err)
	}
	row.SubmissionHistory = string(historyJSON)

	metricsJSON, err := json.Marshal(rec.Metrics)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metrics: %w", err)
	}
	row.Metrics = string(metricsJSON)

	return row, nil
}

// ToDomain converts a row back into a domain record.
func (r *TimingRecord) ToDomain() (*domain.TimingRecord, error) {
	rec := &domain.TimingRecord{
		UserID:      r.UserID,
		JobID:       r.JobID,
		Industry:    r.Industry,
		CompanySize: r.CompanySize,
		Location:    r.Location,
		Timezone:    r.Timezone,
		IsRemote:    r.IsRemote,
		ABTestGroup: r.ABTestGroup.String,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}

	if r.Recommendation.Valid {
		var recommendation domain.Recommendation
		if err := json.Unmarshal([]byte(r.Recommendation.String), &recommendation); err != nil {
			return nil, fmt.Errorf("failed to unmarshal recommendation: %w", err)
		}
		rec.CurrentRecommendation = &recommendation
	}

	rec.ScheduledSubmission = domain.ScheduledSubmission{
		ScheduledTime: timePtr(r.ScheduledTime),
		Status:        r.ScheduleStatus.String,
		SubmittedAt:   timePtr(r.SubmittedAt),
		CancelledAt:   timePtr(r.CancelledAt),
		CancelReason:  r.CancelReason.String,
		FailureReason: r.FailureReason.String,
		ReminderSent:  r.ReminderSent,
		AutoSubmit:    r.AutoSubmit,
	}

	if r.SubmissionHistory != "" {
		if err := json.Unmarshal([]byte(r.SubmissionHistory), &rec.SubmissionHistory); err != nil {
			return nil, fmt.Errorf("failed to unmarshal submission history: %w", err)
		}
	}

	if r.Metrics != "" {
		if err := json.Unmarshal([]byte(r.Metrics), &rec.Metrics); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metrics: %w", err)
		}
	}

	return rec, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
