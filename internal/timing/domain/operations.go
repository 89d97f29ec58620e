package domain

import "time"

// ScheduleSubmission sets (or replaces) the record's scheduled submission.
// The scheduled time must be a real instant strictly in the future.
func (r *TimingRecord) ScheduleSubmission(scheduledTime time.Time, autoSubmit bool, now time.Time) error {
	if scheduledTime.IsZero() {
		return NewValidationError("scheduled_time", "must be set")
	}

	if !scheduledTime.After(now) {
		return NewValidationError("scheduled_time", "must be in the future")
	}

	t := scheduledTime
	r.ScheduledSubmission = ScheduledSubmission{
		ScheduledTime: &t,
		Status:        ScheduleStatusScheduled,
		AutoSubmit:    autoSubmit,
	}
	r.UpdatedAt = now

	return nil
}

// CancelScheduledSubmission moves a scheduled submission to cancelled.
// Rejected with ErrScheduleConflict on any other state; terminal states
// stay terminal.
func (r *TimingRecord) CancelScheduledSubmission(reason string, now time.Time) error {
	if r.ScheduledSubmission.Status != ScheduleStatusScheduled {
		return ErrScheduleConflict
	}

	t := now
	r.ScheduledSubmission.Status = ScheduleStatusCancelled
	r.ScheduledSubmission.CancelledAt = &t
	r.ScheduledSubmission.CancelReason = reason
	r.UpdatedAt = now

	return nil
}

// RecordSubmission appends a history entry and recomputes metrics. A still
// pending scheduled submission is completed as submitted: this is the
// manual early-submit path, independent of the scheduler daemon.
func (r *TimingRecord) RecordSubmission(entry SubmissionEntry, now time.Time) {
	if entry.SubmittedAt.IsZero() {
		entry.SubmittedAt = now
	}
	if entry.DayOfWeek == "" {
		entry.DayOfWeek = entry.SubmittedAt.Weekday().String()
		entry.HourOfDay = entry.SubmittedAt.Hour()
	}
	if entry.ResponseType == "" {
		entry.ResponseType = ResponseTypeNone
	}

	r.SubmissionHistory = append(r.SubmissionHistory, entry)

	if r.ScheduledSubmission.Status == ScheduleStatusScheduled {
		t := now
		r.ScheduledSubmission.Status = ScheduleStatusSubmitted
		r.ScheduledSubmission.SubmittedAt = &t
	}

	r.Metrics = RecomputeMetrics(r.SubmissionHistory)
	r.UpdatedAt = now
}

// RecordResponse sets the response fields of one history entry, once, and
// recomputes metrics. Response time is the span between submission and
// response in hours. Fails without mutation when the index is out of range
// or the entry already has a response.
func (r *TimingRecord) RecordResponse(index int, responseType string, respondedAt time.Time, now time.Time) error {
	if index < 0 || index >= len(r.SubmissionHistory) {
		return ErrHistoryIndexOutOfRange
	}

	entry := &r.SubmissionHistory[index]
	if entry.ResponseReceived {
		return ErrResponseAlreadyRecorded
	}

	if responseType == "" {
		return NewValidationError("response_type", "must be set")
	}

	hours := respondedAt.Sub(entry.SubmittedAt).Hours()
	entry.ResponseReceived = true
	entry.ResponseType = responseType
	entry.ResponseTime = &hours

	r.Metrics = RecomputeMetrics(r.SubmissionHistory)
	r.UpdatedAt = now

	return nil
}

// CompleteAutoSubmit applies the scheduler's auto-submit transition:
// append a scheduled history entry and move scheduled -> submitted.
func (r *TimingRecord) CompleteAutoSubmit(now time.Time) error {
	if r.ScheduledSubmission.Status != ScheduleStatusScheduled {
		return ErrScheduleConflict
	}

	r.RecordSubmission(SubmissionEntry{
		SubmittedAt:            now,
		WasScheduled:           true,
		FollowedRecommendation: true,
	}, now)

	return nil
}

// CompleteReminder applies the scheduler's reminder transition: move
// scheduled -> reminded and latch reminder_sent so a reminder is never
// sent twice.
func (r *TimingRecord) CompleteReminder(now time.Time) error {
	if r.ScheduledSubmission.Status != ScheduleStatusScheduled {
		return ErrScheduleConflict
	}

	t := now
	r.ScheduledSubmission.Status = ScheduleStatusReminded
	r.ScheduledSubmission.SubmittedAt = &t
	r.ScheduledSubmission.ReminderSent = true
	r.UpdatedAt = now

	return nil
}

// FailSchedule marks a scheduled submission failed. Failed is terminal and
// excluded from the due query, so one bad record cannot starve the cycle.
func (r *TimingRecord) FailSchedule(reason string, now time.Time) {
	r.ScheduledSubmission.Status = ScheduleStatusFailed
	r.ScheduledSubmission.FailureReason = reason
	r.UpdatedAt = now
}
