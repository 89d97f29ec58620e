package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func newTestRecord() *TimingRecord {
	return &TimingRecord{
		UserID:      "user-1",
		JobID:       "job-1",
		Industry:    "Technology",
		CompanySize: "51-200",
	}
}

func TestScheduleSubmission(t *testing.T) {
	t.Run("valid future time", func(t *testing.T) {
		rec := newTestRecord()
		scheduled := testNow.Add(48 * time.Hour)

		err := rec.ScheduleSubmission(scheduled, true, testNow)
		require.NoError(t, err)

		assert.Equal(t, ScheduleStatusScheduled, rec.ScheduledSubmission.Status)
		assert.True(t, rec.ScheduledSubmission.AutoSubmit)
		require.NotNil(t, rec.ScheduledSubmission.ScheduledTime)
		assert.Equal(t, scheduled, *rec.ScheduledSubmission.ScheduledTime)
	})

	t.Run("zero time rejected", func(t *testing.T) {
		rec := newTestRecord()
		err := rec.ScheduleSubmission(time.Time{}, false, testNow)

		require.Error(t, err)
		assert.True(t, IsValidation(err))
		assert.Empty(t, rec.ScheduledSubmission.Status)
	})

	t.Run("past time rejected", func(t *testing.T) {
		rec := newTestRecord()
		err := rec.ScheduleSubmission(testNow.Add(-time.Hour), false, testNow)

		require.Error(t, err)
		assert.True(t, IsValidation(err))
	})

	t.Run("reschedule replaces previous schedule", func(t *testing.T) {
		rec := newTestRecord()
		require.NoError(t, rec.ScheduleSubmission(testNow.Add(24*time.Hour), true, testNow))
		require.NoError(t, rec.ScheduleSubmission(testNow.Add(72*time.Hour), false, testNow))

		assert.False(t, rec.ScheduledSubmission.AutoSubmit)
		assert.Equal(t, testNow.Add(72*time.Hour), *rec.ScheduledSubmission.ScheduledTime)
	})
}

func TestCancelScheduledSubmission(t *testing.T) {
	t.Run("cancels a scheduled submission", func(t *testing.T) {
		rec := newTestRecord()
		require.NoError(t, rec.ScheduleSubmission(testNow.Add(24*time.Hour), true, testNow))

		err := rec.CancelScheduledSubmission("changed my mind", testNow)
		require.NoError(t, err)

		assert.Equal(t, ScheduleStatusCancelled, rec.ScheduledSubmission.Status)
		assert.Equal(t, "changed my mind", rec.ScheduledSubmission.CancelReason)
		require.NotNil(t, rec.ScheduledSubmission.CancelledAt)
	})

	t.Run("rejected on non-scheduled record", func(t *testing.T) {
		rec := newTestRecord()
		rec.ScheduledSubmission.Status = ScheduleStatusSubmitted

		err := rec.CancelScheduledSubmission("too late", testNow)
		assert.ErrorIs(t, err, ErrScheduleConflict)
		assert.Equal(t, ScheduleStatusSubmitted, rec.ScheduledSubmission.Status)
	})

	t.Run("rejected on record with no schedule", func(t *testing.T) {
		rec := newTestRecord()
		err := rec.CancelScheduledSubmission("nothing there", testNow)
		assert.ErrorIs(t, err, ErrScheduleConflict)
	})
}

func TestRecordSubmission(t *testing.T) {
	t.Run("appends entry and derives day fields", func(t *testing.T) {
		rec := newTestRecord()
		submitted := time.Date(2026, time.March, 9, 10, 30, 0, 0, time.UTC) // Monday

		rec.RecordSubmission(SubmissionEntry{SubmittedAt: submitted}, testNow)

		require.Len(t, rec.SubmissionHistory, 1)
		entry := rec.SubmissionHistory[0]
		assert.Equal(t, "Monday", entry.DayOfWeek)
		assert.Equal(t, 10, entry.HourOfDay)
		assert.Equal(t, ResponseTypeNone, entry.ResponseType)
		assert.Equal(t, 1, rec.Metrics.TotalSubmissions)
	})

	t.Run("manual submit completes a pending schedule", func(t *testing.T) {
		rec := newTestRecord()
		require.NoError(t, rec.ScheduleSubmission(testNow.Add(24*time.Hour), true, testNow))

		rec.RecordSubmission(SubmissionEntry{}, testNow)

		assert.Equal(t, ScheduleStatusSubmitted, rec.ScheduledSubmission.Status)
		require.NotNil(t, rec.ScheduledSubmission.SubmittedAt)
	})

	t.Run("metrics stay consistent with history", func(t *testing.T) {
		rec := newTestRecord()
		rec.RecordSubmission(SubmissionEntry{}, testNow)
		rec.RecordSubmission(SubmissionEntry{FollowedRecommendation: true}, testNow)

		assert.Equal(t, RecomputeMetrics(rec.SubmissionHistory), rec.Metrics)
	})
}

func TestRecordResponse(t *testing.T) {
	submitted := testNow.Add(-72 * time.Hour)

	newRecordWithEntry := func() *TimingRecord {
		rec := newTestRecord()
		rec.RecordSubmission(SubmissionEntry{SubmittedAt: submitted}, testNow)
		return rec
	}

	t.Run("sets response fields and response time", func(t *testing.T) {
		rec := newRecordWithEntry()

		err := rec.RecordResponse(0, ResponseTypePositive, testNow, testNow)
		require.NoError(t, err)

		entry := rec.SubmissionHistory[0]
		assert.True(t, entry.ResponseReceived)
		assert.Equal(t, ResponseTypePositive, entry.ResponseType)
		require.NotNil(t, entry.ResponseTime)
		assert.InDelta(t, 72.0, *entry.ResponseTime, 0.001)
		assert.InDelta(t, 100.0, rec.Metrics.ResponseRate, 0.001)
	})

	t.Run("out of range index fails without mutating metrics", func(t *testing.T) {
		rec := newRecordWithEntry()
		before := rec.Metrics

		err := rec.RecordResponse(1, ResponseTypePositive, testNow, testNow)
		assert.ErrorIs(t, err, ErrHistoryIndexOutOfRange)
		assert.Equal(t, before, rec.Metrics)

		err = rec.RecordResponse(-1, ResponseTypePositive, testNow, testNow)
		assert.ErrorIs(t, err, ErrHistoryIndexOutOfRange)
	})

	t.Run("response fields set only once", func(t *testing.T) {
		rec := newRecordWithEntry()
		require.NoError(t, rec.RecordResponse(0, ResponseTypeNegative, testNow, testNow))

		err := rec.RecordResponse(0, ResponseTypePositive, testNow, testNow)
		assert.ErrorIs(t, err, ErrResponseAlreadyRecorded)
		assert.Equal(t, ResponseTypeNegative, rec.SubmissionHistory[0].ResponseType)
	})
}

func TestCompleteAutoSubmit(t *testing.T) {
	t.Run("transitions and appends scheduled entry", func(t *testing.T) {
		rec := newTestRecord()
		require.NoError(t, rec.ScheduleSubmission(testNow.Add(time.Hour), true, testNow))

		later := testNow.Add(2 * time.Hour)
		require.NoError(t, rec.CompleteAutoSubmit(later))

		assert.Equal(t, ScheduleStatusSubmitted, rec.ScheduledSubmission.Status)
		require.Len(t, rec.SubmissionHistory, 1)
		assert.True(t, rec.SubmissionHistory[0].WasScheduled)
		assert.True(t, rec.SubmissionHistory[0].FollowedRecommendation)
	})

	t.Run("no-op guard on already submitted", func(t *testing.T) {
		rec := newTestRecord()
		rec.ScheduledSubmission.Status = ScheduleStatusSubmitted

		err := rec.CompleteAutoSubmit(testNow)
		assert.ErrorIs(t, err, ErrScheduleConflict)
		assert.Empty(t, rec.SubmissionHistory)
	})
}

func TestCompleteReminder(t *testing.T) {
	rec := newTestRecord()
	require.NoError(t, rec.ScheduleSubmission(testNow.Add(time.Hour), false, testNow))

	require.NoError(t, rec.CompleteReminder(testNow.Add(2*time.Hour)))

	assert.Equal(t, ScheduleStatusReminded, rec.ScheduledSubmission.Status)
	assert.True(t, rec.ScheduledSubmission.ReminderSent)

	// Reminded is terminal
	err := rec.CompleteReminder(testNow.Add(3 * time.Hour))
	assert.ErrorIs(t, err, ErrScheduleConflict)
}

func TestFailSchedule(t *testing.T) {
	rec := newTestRecord()
	require.NoError(t, rec.ScheduleSubmission(testNow.Add(time.Hour), true, testNow))

	rec.FailSchedule("job row missing", testNow)

	assert.Equal(t, ScheduleStatusFailed, rec.ScheduledSubmission.Status)
	assert.Equal(t, "job row missing", rec.ScheduledSubmission.FailureReason)
}
