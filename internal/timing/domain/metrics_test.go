package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func hoursPtr(h float64) *float64 { return &h }

func TestRecomputeMetrics_EmptyHistory(t *testing.T) {
	m := RecomputeMetrics(nil)

	assert.Equal(t, 0, m.TotalSubmissions)
	assert.Zero(t, m.ResponseRate)
	assert.Zero(t, m.AverageResponseTime)
	assert.Zero(t, m.OptimalTimeSuccessRate)
	assert.Zero(t, m.NonOptimalTimeSuccessRate)
}

func TestRecomputeMetrics_NoResponses(t *testing.T) {
	history := []SubmissionEntry{
		{SubmittedAt: time.Now(), ResponseType: ResponseTypeNone},
		{SubmittedAt: time.Now(), ResponseType: ResponseTypeNone, FollowedRecommendation: true},
	}

	m := RecomputeMetrics(history)

	assert.Equal(t, 2, m.TotalSubmissions)
	assert.Zero(t, m.ResponseRate)
	assert.Zero(t, m.AverageResponseTime)
	// Denominators exist but no positives
	assert.Zero(t, m.OptimalTimeSuccessRate)
	assert.Zero(t, m.NonOptimalTimeSuccessRate)
}

func TestRecomputeMetrics_MixedHistory(t *testing.T) {
	history := []SubmissionEntry{
		{
			ResponseReceived:       true,
			ResponseType:           ResponseTypePositive,
			ResponseTime:           hoursPtr(48),
			FollowedRecommendation: true,
		},
		{
			ResponseReceived:       true,
			ResponseType:           ResponseTypeNegative,
			ResponseTime:           hoursPtr(24),
			FollowedRecommendation: true,
		},
		{
			ResponseReceived: true,
			ResponseType:     ResponseTypePositive,
			ResponseTime:     hoursPtr(72),
		},
		{
			ResponseType: ResponseTypeNone,
		},
	}

	m := RecomputeMetrics(history)

	assert.Equal(t, 4, m.TotalSubmissions)
	assert.InDelta(t, 75.0, m.ResponseRate, 0.001)
	assert.InDelta(t, 48.0, m.AverageResponseTime, 0.001)
	assert.InDelta(t, 50.0, m.OptimalTimeSuccessRate, 0.001)    // 1 of 2 followed
	assert.InDelta(t, 50.0, m.NonOptimalTimeSuccessRate, 0.001) // 1 of 2 unfollowed
}

func TestRecomputeMetrics_AllFollowed(t *testing.T) {
	history := []SubmissionEntry{
		{ResponseReceived: true, ResponseType: ResponseTypePositive, ResponseTime: hoursPtr(10), FollowedRecommendation: true},
	}

	m := RecomputeMetrics(history)

	assert.InDelta(t, 100.0, m.OptimalTimeSuccessRate, 0.001)
	// No unfollowed entries: rate stays 0 rather than NaN
	assert.Zero(t, m.NonOptimalTimeSuccessRate)
}
