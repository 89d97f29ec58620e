// Package patterns holds the static reference data behind timing
// recommendations: industry submission windows, company-size response
// expectations, the US holiday calendar, and a DST-naive timezone offset
// table. Everything here is immutable configuration; lookups never fail,
// unknown keys resolve to the default entry.
package patterns

import (
	"strings"
	"time"
)

// IndustryPattern describes when an industry tends to respond well to
// applications. BestDays and BestHours are ordered, earlier = stronger
// preference.
type IndustryPattern struct {
	BestDays         []time.Weekday
	BestHours        []int
	AvoidDays        []time.Weekday
	QuarterEndMonths []time.Month
	HiringSeasonHigh []time.Month
	HiringSeasonLow  []time.Month
}

// CompanySizePattern describes response expectations per company-size
// bucket. PreferredTimes is ordered.
type CompanySizePattern struct {
	ResponseTimeHours int
	PreferredTimes    []int
}

const defaultKey = "default"

var industryPatterns = map[string]IndustryPattern{
	"technology": {
		BestDays:         []time.Weekday{time.Tuesday, time.Wednesday, time.Thursday},
		BestHours:        []int{10, 11, 14, 15},
		AvoidDays:        []time.Weekday{time.Friday, time.Saturday, time.Sunday},
		QuarterEndMonths: []time.Month{time.March, time.June, time.September, time.December},
		HiringSeasonHigh: []time.Month{time.January, time.February, time.September, time.October},
		HiringSeasonLow:  []time.Month{time.July, time.August, time.December},
	},
	"finance": {
		BestDays:         []time.Weekday{time.Tuesday, time.Wednesday, time.Thursday, time.Monday},
		BestHours:        []int{8, 9, 10, 14},
		AvoidDays:        []time.Weekday{time.Friday, time.Saturday, time.Sunday},
		QuarterEndMonths: []time.Month{time.March, time.June, time.September, time.December},
		HiringSeasonHigh: []time.Month{time.January, time.February, time.August, time.September},
		HiringSeasonLow:  []time.Month{time.June, time.July, time.December},
	},
	"healthcare": {
		BestDays:         []time.Weekday{time.Monday, time.Tuesday, time.Wednesday},
		BestHours:        []int{9, 10, 13, 14},
		AvoidDays:        []time.Weekday{time.Saturday, time.Sunday},
		QuarterEndMonths: []time.Month{time.June, time.December},
		HiringSeasonHigh: []time.Month{time.January, time.May, time.June, time.September},
		HiringSeasonLow:  []time.Month{time.November, time.December},
	},
	"marketing": {
		BestDays:         []time.Weekday{time.Tuesday, time.Wednesday, time.Thursday},
		BestHours:        []int{10, 11, 15},
		AvoidDays:        []time.Weekday{time.Monday, time.Friday, time.Saturday, time.Sunday},
		QuarterEndMonths: []time.Month{time.March, time.June, time.September, time.December},
		HiringSeasonHigh: []time.Month{time.January, time.September, time.October},
		HiringSeasonLow:  []time.Month{time.July, time.August},
	},
	"education": {
		BestDays:         []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday},
		BestHours:        []int{9, 10, 14},
		AvoidDays:        []time.Weekday{time.Saturday, time.Sunday},
		QuarterEndMonths: []time.Month{time.June, time.December},
		HiringSeasonHigh: []time.Month{time.February, time.March, time.April},
		HiringSeasonLow:  []time.Month{time.June, time.July, time.November, time.December},
	},
	"retail": {
		BestDays:         []time.Weekday{time.Monday, time.Tuesday, time.Wednesday},
		BestHours:        []int{9, 10, 13},
		AvoidDays:        []time.Weekday{time.Friday, time.Saturday, time.Sunday},
		QuarterEndMonths: []time.Month{time.January, time.July},
		HiringSeasonHigh: []time.Month{time.September, time.October, time.November},
		HiringSeasonLow:  []time.Month{time.January, time.February},
	},
	"consulting": {
		BestDays:         []time.Weekday{time.Tuesday, time.Wednesday, time.Thursday},
		BestHours:        []int{8, 9, 14, 16},
		AvoidDays:        []time.Weekday{time.Friday, time.Saturday, time.Sunday},
		QuarterEndMonths: []time.Month{time.March, time.June, time.September, time.December},
		HiringSeasonHigh: []time.Month{time.January, time.September},
		HiringSeasonLow:  []time.Month{time.July, time.August, time.December},
	},
	defaultKey: {
		BestDays:         []time.Weekday{time.Tuesday, time.Wednesday, time.Thursday},
		BestHours:        []int{9, 10, 14},
		AvoidDays:        []time.Weekday{time.Saturday, time.Sunday},
		QuarterEndMonths: []time.Month{time.March, time.June, time.September, time.December},
		HiringSeasonHigh: []time.Month{time.January, time.September},
		HiringSeasonLow:  []time.Month{time.July, time.December},
	},
}

var companySizePatterns = map[string]CompanySizePattern{
	"1-10":     {ResponseTimeHours: 72, PreferredTimes: []int{9, 10, 15}},
	"11-50":    {ResponseTimeHours: 96, PreferredTimes: []int{9, 10, 14}},
	"51-200":   {ResponseTimeHours: 120, PreferredTimes: []int{10, 9, 14}},
	"201-500":  {ResponseTimeHours: 168, PreferredTimes: []int{9, 14, 15}},
	"501-1000": {ResponseTimeHours: 216, PreferredTimes: []int{10, 14}},
	"1000+":    {ResponseTimeHours: 240, PreferredTimes: []int{9, 10}},
	defaultKey: {ResponseTimeHours: 120, PreferredTimes: []int{9, 10, 14}},
}

// Industry returns the submission pattern for an industry, falling back to
// the default entry for unknown names.
func Industry(name string) IndustryPattern {
	if p, ok := industryPatterns[strings.ToLower(strings.TrimSpace(name))]; ok {
		return p
	}
	return industryPatterns[defaultKey]
}

// CompanySize returns the response pattern for a company-size bucket,
// falling back to the default entry for unknown buckets.
func CompanySize(bucket string) CompanySizePattern {
	if p, ok := companySizePatterns[strings.TrimSpace(bucket)]; ok {
		return p
	}
	return companySizePatterns[defaultKey]
}

// ContainsWeekday reports whether day appears in days
func ContainsWeekday(days []time.Weekday, day time.Weekday) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}
