package domain

import "time"

// ScheduledSubmission tracks a user-requested future auto-submit or
// reminder tied to a TimingRecord.
type ScheduledSubmission struct {
	ScheduledTime *time.Time `json:"scheduled_time,omitempty"`
	Status        string     `json:"status,omitempty"`
	SubmittedAt   *time.Time `json:"submitted_at,omitempty"`
	CancelledAt   *time.Time `json:"cancelled_at,omitempty"`
	CancelReason  string     `json:"cancel_reason,omitempty"`
	FailureReason string     `json:"failure_reason,omitempty"`
	ReminderSent  bool       `json:"reminder_sent"`
	AutoSubmit    bool       `json:"auto_submit"`
}

// SubmissionEntry is one row of a record's submission history. Entries are
// append-only; only the response fields mutate, once, via RecordResponse.
type SubmissionEntry struct {
	SubmittedAt            time.Time `json:"submitted_at"`
	DayOfWeek              string    `json:"day_of_week"`
	HourOfDay              int       `json:"hour_of_day"`
	ResponseReceived       bool      `json:"response_received"`
	ResponseTime           *float64  `json:"response_time,omitempty"` // hours
	ResponseType           string    `json:"response_type"`
	WasScheduled           bool      `json:"was_scheduled"`
	FollowedRecommendation bool      `json:"followed_recommendation"`
}

// Metrics are aggregates derived from SubmissionHistory. They are a cache,
// never the source of truth: RecomputeMetrics(history) must equal this
// struct after every mutating operation.
type Metrics struct {
	TotalSubmissions          int     `json:"total_submissions"`
	ResponseRate              float64 `json:"response_rate"`
	AverageResponseTime       float64 `json:"average_response_time"`
	OptimalTimeSuccessRate    float64 `json:"optimal_time_success_rate"`
	NonOptimalTimeSuccessRate float64 `json:"non_optimal_time_success_rate"`
}

// TimingRecord is the persisted per-(user, job) entity holding the current
// recommendation, the scheduled submission, and the submission history.
type TimingRecord struct {
	UserID      string `json:"user_id"`
	JobID       string `json:"job_id"`
	Industry    string `json:"industry"`
	CompanySize string `json:"company_size"`
	Location    string `json:"location"`
	Timezone    string `json:"timezone"`
	IsRemote    bool   `json:"is_remote"`

	CurrentRecommendation *Recommendation     `json:"current_recommendation,omitempty"`
	ScheduledSubmission   ScheduledSubmission `json:"scheduled_submission"`
	SubmissionHistory     []SubmissionEntry   `json:"submission_history"`
	ABTestGroup           string              `json:"ab_test_group,omitempty"`
	Metrics               Metrics             `json:"metrics"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Job is the tracked job application this subsystem reads context from and
// marks Applied on auto-submit. CRUD for it lives outside this core.
type Job struct {
	JobID           string     `db:"job_id" json:"job_id"`
	UserID          string     `db:"user_id" json:"user_id"`
	Title           string     `db:"title" json:"title"`
	Company         string     `db:"company" json:"company"`
	Industry        string     `db:"industry" json:"industry"`
	CompanySize     string     `db:"company_size" json:"company_size"`
	Location        string     `db:"location" json:"location"`
	WorkMode        string     `db:"work_mode" json:"work_mode"`
	ApplicationURL  string     `db:"application_url" json:"application_url"`
	Status          string     `db:"status" json:"status"`
	ApplicationDate *time.Time `db:"application_date" json:"application_date,omitempty"`
}

// User holds the collaborator fields notifications need.
type User struct {
	UserID string `db:"user_id" json:"user_id"`
	Email  string `db:"email" json:"email"`
	Name   string `db:"name" json:"name"`
}
