package domain

// Scheduled submission status values. "scheduled" is the only non-terminal
// state; every transition out of it is final.
const (
	ScheduleStatusScheduled = "scheduled"
	ScheduleStatusSubmitted = "submitted"
	ScheduleStatusReminded  = "reminded"
	ScheduleStatusCancelled = "cancelled"
	ScheduleStatusFailed    = "failed"
)

// Response type values for submission history entries
const (
	ResponseTypeNone      = "none"
	ResponseTypePositive  = "positive"
	ResponseTypeNegative  = "negative"
	ResponseTypeRejection = "rejection"
)

// Factor identifiers for recommendation signals
const (
	FactorDayOfWeek         = "day_of_week"
	FactorTimeOfDay         = "time_of_day"
	FactorHistoricalSuccess = "historical_success"
	FactorTimezone          = "timezone"
	FactorCompanySize       = "company_size"
)

// Factor impact directions
const (
	ImpactPositive = "positive"
	ImpactNegative = "negative"
	ImpactNeutral  = "neutral"
)

// Warning types
const (
	WarningHoliday            = "holiday"
	WarningFiscalQuarterEnd   = "fiscal_quarter_end"
	WarningLateFriday         = "late_friday"
	WarningSchedulingConflict = "scheduling_conflict"
)

// Warning severities
const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// Job status written on auto-submit
const JobStatusApplied = "Applied"
