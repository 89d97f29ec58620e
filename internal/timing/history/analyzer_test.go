package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/applytrack/timing-be/internal/timing/domain"
)

type fakeSource struct {
	byUser     map[string][]domain.TimingRecord
	byIndustry map[string][]domain.TimingRecord
	err        error
}

func (f *fakeSource) RecordsByUser(_ context.Context, userID string) ([]domain.TimingRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byUser[userID], nil
}

func (f *fakeSource) RecordsByIndustry(_ context.Context, industry string) ([]domain.TimingRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byIndustry[industry], nil
}

// at builds a submission entry for a given weekday/hour in March 2026.
// March 2, 2026 is a Monday.
func at(weekday time.Weekday, hour int, responseType string) domain.SubmissionEntry {
	day := 2 + (int(weekday)+6)%7
	return domain.SubmissionEntry{
		SubmittedAt:      time.Date(2026, time.March, day, hour, 0, 0, 0, time.UTC),
		HourOfDay:        hour,
		ResponseReceived: responseType != "",
		ResponseType:     responseType,
	}
}

func TestUserStats(t *testing.T) {
	t.Run("mode of positive responses wins", func(t *testing.T) {
		source := &fakeSource{byUser: map[string][]domain.TimingRecord{
			"u1": {
				{
					UserID: "u1",
					SubmissionHistory: []domain.SubmissionEntry{
						at(time.Tuesday, 10, domain.ResponseTypePositive),
						at(time.Tuesday, 10, domain.ResponseTypePositive),
						at(time.Wednesday, 14, domain.ResponseTypePositive),
						at(time.Thursday, 9, domain.ResponseTypeNegative),
						at(time.Friday, 16, ""),
					},
				},
			},
		}}

		stats, err := NewAnalyzer(source).UserStats(context.Background(), "u1")
		require.NoError(t, err)

		require.NotNil(t, stats.BestDay)
		assert.Equal(t, time.Tuesday, *stats.BestDay)
		require.NotNil(t, stats.BestHour)
		assert.Equal(t, 10, *stats.BestHour)
		assert.Equal(t, 5, stats.TotalSubmissions)
		assert.Equal(t, 3, stats.PositiveResponses)
		assert.InDelta(t, 0.6, stats.SuccessRate, 0.001)
	})

	t.Run("ties break by first seen", func(t *testing.T) {
		source := &fakeSource{byUser: map[string][]domain.TimingRecord{
			"u1": {
				{
					SubmissionHistory: []domain.SubmissionEntry{
						at(time.Wednesday, 14, domain.ResponseTypePositive),
						at(time.Tuesday, 9, domain.ResponseTypePositive),
					},
				},
			},
		}}

		stats, err := NewAnalyzer(source).UserStats(context.Background(), "u1")
		require.NoError(t, err)

		assert.Equal(t, time.Wednesday, *stats.BestDay)
		assert.Equal(t, 14, *stats.BestHour)
	})

	t.Run("stored day name wins over the timestamp", func(t *testing.T) {
		// An entry written by a client in another zone can carry a day
		// name that differs from the UTC timestamp's weekday
		entry := at(time.Tuesday, 22, domain.ResponseTypePositive)
		entry.DayOfWeek = time.Wednesday.String()

		source := &fakeSource{byUser: map[string][]domain.TimingRecord{
			"u1": {{SubmissionHistory: []domain.SubmissionEntry{entry}}},
		}}

		stats, err := NewAnalyzer(source).UserStats(context.Background(), "u1")
		require.NoError(t, err)

		require.NotNil(t, stats.BestDay)
		assert.Equal(t, time.Wednesday, *stats.BestDay)
	})

	t.Run("no submissions yields zero stats", func(t *testing.T) {
		source := &fakeSource{byUser: map[string][]domain.TimingRecord{}}

		stats, err := NewAnalyzer(source).UserStats(context.Background(), "nobody")
		require.NoError(t, err)

		assert.Nil(t, stats.BestDay)
		assert.Nil(t, stats.BestHour)
		assert.Zero(t, stats.SuccessRate)
	})

	t.Run("negative-only history yields no best day", func(t *testing.T) {
		source := &fakeSource{byUser: map[string][]domain.TimingRecord{
			"u1": {
				{SubmissionHistory: []domain.SubmissionEntry{
					at(time.Monday, 9, domain.ResponseTypeNegative),
					at(time.Tuesday, 10, domain.ResponseTypeRejection),
				}},
			},
		}}

		stats, err := NewAnalyzer(source).UserStats(context.Background(), "u1")
		require.NoError(t, err)

		assert.Nil(t, stats.BestDay)
		assert.Equal(t, 2, stats.TotalSubmissions)
		assert.Zero(t, stats.SuccessRate)
	})

	t.Run("source error propagates", func(t *testing.T) {
		source := &fakeSource{err: errors.New("connection refused")}

		_, err := NewAnalyzer(source).UserStats(context.Background(), "u1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})
}

func TestIndustryStats(t *testing.T) {
	source := &fakeSource{byIndustry: map[string][]domain.TimingRecord{
		"Finance": {
			{
				UserID: "u1",
				SubmissionHistory: []domain.SubmissionEntry{
					at(time.Monday, 8, domain.ResponseTypePositive),
				},
			},
			{
				UserID: "u2",
				SubmissionHistory: []domain.SubmissionEntry{
					at(time.Monday, 8, domain.ResponseTypePositive),
					at(time.Thursday, 14, ""),
				},
			},
		},
	}}

	stats, err := NewAnalyzer(source).IndustryStats(context.Background(), "Finance")
	require.NoError(t, err)

	require.NotNil(t, stats.BestDay)
	assert.Equal(t, time.Monday, *stats.BestDay)
	assert.Equal(t, 8, *stats.BestHour)
	assert.Equal(t, 3, stats.TotalSubmissions)
	assert.Equal(t, 2, stats.PositiveResponses)
}
