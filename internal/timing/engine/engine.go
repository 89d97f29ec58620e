// Package engine turns pattern-catalog data and historical outcomes into
// a single scored submission-time recommendation.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/applytrack/timing-be/internal/timing/domain"
	"github.com/applytrack/timing-be/internal/timing/history"
	"github.com/applytrack/timing-be/internal/timing/patterns"
)

// daysearchWindow bounds the day-selection loop. When every day in the
// window is disqualified the current candidate is accepted as-is with a
// low-severity warning rather than looping further.
const daySearchWindow = 14

// quarterEndWindowDays is how close to the end of a quarter-end month a
// candidate must be to trigger the fiscal warning.
const quarterEndWindowDays = 14

const (
	baseConfidence        = 50
	positiveFactorBonus   = 10
	historicalBonus       = 15
	highSeverityPenalty   = 15
	mediumSeverityPenalty = 10
	lowSeverityPenalty    = 5
)

// JobData is the job-side input to a recommendation.
type JobData struct {
	Industry    string `json:"industry"`
	CompanySize string `json:"company_size"`
	Location    string `json:"location"`
	Timezone    string `json:"timezone"`
	IsRemote    bool   `json:"is_remote"`
}

// UserData is the user-side input. Everything is optional; gaps just mean
// fewer signals.
type UserData struct {
	UserID   string `json:"user_id"`
	Timezone string `json:"timezone"`
}

// Engine computes recommendations. Pure reads, safe under arbitrary
// concurrency.
type Engine struct {
	analyzer *history.Analyzer
	logger   *slog.Logger
	now      func() time.Time
}

// New creates an Engine. The analyzer may be nil, in which case
// recommendations use catalog patterns only.
func New(analyzer *history.Analyzer, logger *slog.Logger) *Engine {
	return &Engine{
		analyzer: analyzer,
		logger:   logger,
		now:      time.Now,
	}
}

// Recommend computes a submission-time recommendation. It never fails:
// unknown industries and sizes fall back to default patterns, and a
// historical-data read error only drops that signal.
func (e *Engine) Recommend(ctx context.Context, job JobData, user UserData) domain.Recommendation {
	now := e.now()

	industryPattern := patterns.Industry(job.Industry)
	sizePattern := patterns.CompanySize(job.CompanySize)

	var stats history.Stats
	if user.UserID != "" && e.analyzer != nil {
		var err error
		stats, err = e.analyzer.UserStats(ctx, user.UserID)
		if err != nil {
			e.logger.Warn("Failed to load historical stats, continuing without them",
				slog.String("user_id", user.UserID),
				slog.Any("error", err),
			)
			stats = history.Stats{}
		}
	}

	var factors []domain.Factor
	var warnings []domain.Warning

	candidate := nextBusinessStart(now)
	candidate, dayFactor, dayWarnings := e.selectDay(candidate, industryPattern)
	factors = append(factors, dayFactor)
	warnings = append(warnings, dayWarnings...)

	hour, hourFactor := selectHour(stats, industryPattern, sizePattern)
	factors = append(factors, hourFactor)

	candidate = time.Date(candidate.Year(), candidate.Month(), candidate.Day(), hour, 0, 0, 0, candidate.Location())

	if job.IsRemote && job.Timezone != "" && user.Timezone != "" && !strings.EqualFold(job.Timezone, user.Timezone) {
		if shift, ok := patterns.ZoneShift(user.Timezone, job.Timezone); ok {
			candidate = candidate.Add(time.Duration(shift) * time.Hour)
			factors = append(factors, domain.Factor{
				Factor:      domain.FactorTimezone,
				Impact:      domain.ImpactNeutral,
				Weight:      6,
				Description: fmt.Sprintf("Shifted %+d hours to align your %s schedule with the company's %s timezone", shift, strings.ToUpper(user.Timezone), strings.ToUpper(job.Timezone)),
			})
		}
	}

	responseDays := int(math.Round(float64(sizePattern.ResponseTimeHours) / 24))
	factors = append(factors, domain.Factor{
		Factor:      domain.FactorCompanySize,
		Impact:      domain.ImpactNeutral,
		Weight:      5,
		Description: fmt.Sprintf("Companies of this size typically respond within %d days", responseDays),
	})

	// A same-day recommendation can land behind the clock once the hour is
	// applied; push it a week out rather than recommending the past.
	if !candidate.After(now) {
		candidate = candidate.Add(7 * 24 * time.Hour)
	}

	rec := domain.Recommendation{
		RecommendedTime: candidate,
		DayOfWeek:       candidate.Weekday().String(),
		HourOfDay:       candidate.Hour(),
		Factors:         factors,
		Warnings:        warnings,
	}
	rec.Reasoning = buildReasoning(&rec, stats)
	rec.Confidence = computeConfidence(&rec, stats)

	return rec
}

// nextBusinessStart advances a weekend start to the following Monday
func nextBusinessStart(t time.Time) time.Time {
	switch t.Weekday() {
	case time.Saturday:
		return t.AddDate(0, 0, 2)
	case time.Sunday:
		return t.AddDate(0, 0, 1)
	default:
		return t
	}
}

// selectDay walks forward from the candidate looking for an acceptable
// submission day, collecting warnings along the way.
func (e *Engine) selectDay(candidate time.Time, pattern patterns.IndustryPattern) (time.Time, domain.Factor, []domain.Warning) {
	var warnings []domain.Warning

	for i := 0; i < daySearchWindow; i++ {
		if patterns.IsHoliday(candidate) {
			warnings = append(warnings, domain.Warning{
				Type:     domain.WarningHoliday,
				Severity: domain.SeverityHigh,
				Message:  fmt.Sprintf("%s falls on a holiday; most recruiters are out", candidate.Format("January 2")),
			})
			candidate = candidate.AddDate(0, 0, 1)
			continue
		}

		if nearQuarterEnd(candidate, pattern.QuarterEndMonths) {
			warnings = append(warnings, domain.Warning{
				Type:     domain.WarningFiscalQuarterEnd,
				Severity: domain.SeverityMedium,
				Message:  "Close to fiscal quarter end; hiring decisions may be slower",
			})
		}

		weekday := candidate.Weekday()

		if patterns.ContainsWeekday(pattern.BestDays, weekday) {
			return candidate, domain.Factor{
				Factor:      domain.FactorDayOfWeek,
				Impact:      domain.ImpactPositive,
				Weight:      8,
				Description: fmt.Sprintf("%s is a peak response day for this industry", weekday),
			}, warnings
		}

		if patterns.ContainsWeekday(pattern.AvoidDays, weekday) {
			if weekday == time.Friday {
				warnings = append(warnings, domain.Warning{
					Type:     domain.WarningLateFriday,
					Severity: domain.SeverityMedium,
					Message:  "Friday submissions tend to sit unread over the weekend",
				})
			}
			candidate = candidate.AddDate(0, 0, 1)
			continue
		}

		return candidate, domain.Factor{
			Factor:      domain.FactorDayOfWeek,
			Impact:      domain.ImpactNeutral,
			Weight:      5,
			Description: fmt.Sprintf("%s is an acceptable submission day", weekday),
		}, warnings
	}

	// Window exhausted: accept the candidate rather than loop further
	warnings = append(warnings, domain.Warning{
		Type:     domain.WarningSchedulingConflict,
		Severity: domain.SeverityLow,
		Message:  fmt.Sprintf("No preferred day within %d days; accepting %s", daySearchWindow, candidate.Weekday()),
	})
	return candidate, domain.Factor{
		Factor:      domain.FactorDayOfWeek,
		Impact:      domain.ImpactNeutral,
		Weight:      5,
		Description: fmt.Sprintf("%s accepted after exhausting the scheduling window", candidate.Weekday()),
	}, warnings
}

// nearQuarterEnd reports whether t sits in the final stretch of a
// quarter-end month.
func nearQuarterEnd(t time.Time, quarterEndMonths []time.Month) bool {
	inQuarterEnd := false
	for _, m := range quarterEndMonths {
		if t.Month() == m {
			inQuarterEnd = true
			break
		}
	}
	if !inQuarterEnd {
		return false
	}

	lastDay := time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, t.Location()).AddDate(0, 0, -1).Day()
	return lastDay-t.Day() < quarterEndWindowDays
}

// selectHour prefers the user's historically best hour, then the industry
// hour closest to the company-size preference.
func selectHour(stats history.Stats, industryPattern patterns.IndustryPattern, sizePattern patterns.CompanySizePattern) (int, domain.Factor) {
	if stats.BestHour != nil {
		return *stats.BestHour, domain.Factor{
			Factor:      domain.FactorHistoricalSuccess,
			Impact:      domain.ImpactPositive,
			Weight:      9,
			Description: fmt.Sprintf("Your past applications around %02d:00 drew the most positive responses", *stats.BestHour),
		}
	}

	index := 0
	if len(sizePattern.PreferredTimes) > 0 {
		for i, h := range industryPattern.BestHours {
			if h == sizePattern.PreferredTimes[0] {
				index = i
				break
			}
		}
	}

	hour := 9
	if len(industryPattern.BestHours) > 0 {
		hour = industryPattern.BestHours[index]
	}

	return hour, domain.Factor{
		Factor:      domain.FactorTimeOfDay,
		Impact:      domain.ImpactPositive,
		Weight:      7,
		Description: fmt.Sprintf("%02d:00 is a high-response hour for this industry and company size", hour),
	}
}

// buildReasoning composes the lead sentence, the two strongest positive
// factors, and a historical note when one exists.
func buildReasoning(rec *domain.Recommendation, stats history.Stats) string {
	parts := []string{
		fmt.Sprintf("Best submission window: %s at %02d:00.", rec.DayOfWeek, rec.HourOfDay),
	}

	var positives []domain.Factor
	for _, f := range rec.Factors {
		if f.Impact == domain.ImpactPositive {
			positives = append(positives, f)
		}
	}
	// Highest weight first; stable for equal weights
	for i := 1; i < len(positives); i++ {
		for j := i; j > 0 && positives[j].Weight > positives[j-1].Weight; j-- {
			positives[j], positives[j-1] = positives[j-1], positives[j]
		}
	}
	if len(positives) > 2 {
		positives = positives[:2]
	}
	for _, f := range positives {
		parts = append(parts, f.Description+".")
	}

	if stats.SuccessRate > 0 {
		parts = append(parts, fmt.Sprintf("Your submissions have a %.0f%% positive-response rate so far.", stats.SuccessRate*100))
	}

	return strings.Join(parts, " ")
}

// computeConfidence scores the recommendation in [0,100]
func computeConfidence(rec *domain.Recommendation, stats history.Stats) int {
	confidence := baseConfidence + positiveFactorBonus*rec.PositiveFactorCount()

	if stats.SuccessRate > 0 {
		confidence += historicalBonus
	}

	for _, w := range rec.Warnings {
		switch w.Severity {
		case domain.SeverityHigh:
			confidence -= highSeverityPenalty
		case domain.SeverityMedium:
			confidence -= mediumSeverityPenalty
		case domain.SeverityLow:
			confidence -= lowSeverityPenalty
		}
	}

	if confidence < 0 {
		return 0
	}
	if confidence > 100 {
		return 100
	}
	return confidence
}
