// Package history aggregates past submission outcomes into simple
// frequency-based patterns. No statistical modeling: the best day and hour
// are the modes of the positive-response tallies.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/applytrack/timing-be/internal/timing/domain"
)

// RecordSource provides read access to persisted timing records.
type RecordSource interface {
	RecordsByUser(ctx context.Context, userID string) ([]domain.TimingRecord, error)
	RecordsByIndustry(ctx context.Context, industry string) ([]domain.TimingRecord, error)
}

// Stats summarizes the positive-response pattern across a set of records.
// BestDay and BestHour are nil when there are no positive responses.
type Stats struct {
	BestDay           *time.Weekday
	BestHour          *int
	SuccessRate       float64 // positive responses / total submissions, 0..1
	TotalSubmissions  int
	PositiveResponses int
}

// Analyzer computes Stats over persisted records. Pure reads; safe under
// arbitrary concurrency.
type Analyzer struct {
	source RecordSource
}

// NewAnalyzer creates an Analyzer over the given source
func NewAnalyzer(source RecordSource) *Analyzer {
	return &Analyzer{source: source}
}

// UserStats tallies one user's submission histories across all their
// records.
func (a *Analyzer) UserStats(ctx context.Context, userID string) (Stats, error) {
	records, err := a.source.RecordsByUser(ctx, userID)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to load records for user %s: %w", userID, err)
	}
	return tally(records), nil
}

// IndustryStats tallies submission histories across every user's records
// in an industry.
func (a *Analyzer) IndustryStats(ctx context.Context, industry string) (Stats, error) {
	records, err := a.source.RecordsByIndustry(ctx, industry)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to load records for industry %s: %w", industry, err)
	}
	return tally(records), nil
}

// tally counts positive responses by weekday and hour. The mode of each
// count is the best day/hour; ties break by first appearance in iteration
// order, which follows record then entry order.
func tally(records []domain.TimingRecord) Stats {
	var stats Stats

	dayCounts := make(map[time.Weekday]int)
	hourCounts := make(map[int]int)
	var dayOrder []time.Weekday
	var hourOrder []int

	for _, rec := range records {
		for _, entry := range rec.SubmissionHistory {
			stats.TotalSubmissions++

			if !entry.ResponseReceived || entry.ResponseType != domain.ResponseTypePositive {
				continue
			}
			stats.PositiveResponses++

			day := entryWeekday(entry)
			if _, seen := dayCounts[day]; !seen {
				dayOrder = append(dayOrder, day)
			}
			dayCounts[day]++

			hour := entry.HourOfDay
			if _, seen := hourCounts[hour]; !seen {
				hourOrder = append(hourOrder, hour)
			}
			hourCounts[hour]++
		}
	}

	if stats.TotalSubmissions > 0 {
		stats.SuccessRate = float64(stats.PositiveResponses) / float64(stats.TotalSubmissions)
	}

	if len(dayOrder) > 0 {
		best := dayOrder[0]
		for _, d := range dayOrder[1:] {
			if dayCounts[d] > dayCounts[best] {
				best = d
			}
		}
		stats.BestDay = &best
	}

	if len(hourOrder) > 0 {
		best := hourOrder[0]
		for _, h := range hourOrder[1:] {
			if hourCounts[h] > hourCounts[best] {
				best = h
			}
		}
		stats.BestHour = &best
	}

	return stats
}

// entryWeekday prefers the day name the entry itself recorded, falling back
// to the timestamp's weekday when the stored name is empty or unparseable.
func entryWeekday(entry domain.SubmissionEntry) time.Weekday {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if entry.DayOfWeek == d.String() {
			return d
		}
	}
	return entry.SubmittedAt.Weekday()
}
