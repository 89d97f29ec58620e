package dto

import (
	"time"

	"github.com/applytrack/timing-be/internal/timing/domain"
)

// RecommendationRequest carries the job and user context a recommendation
// is computed from. job_id is required when the result should be stored on
// a timing record; the advisory endpoint accepts it empty.
type RecommendationRequest struct {
	UserID       string `json:"user_id" binding:"required"`
	JobID        string `json:"job_id"`
	Industry     string `json:"industry"`
	CompanySize  string `json:"company_size"`
	Location     string `json:"location"`
	JobTimezone  string `json:"job_timezone"`
	UserTimezone string `json:"user_timezone"`
	IsRemote     bool   `json:"is_remote"`
}

type ScheduleRequest struct {
	ScheduledTime time.Time `json:"scheduled_time" binding:"required"`
	AutoSubmit    bool      `json:"auto_submit"`
}

type CancelRequest struct {
	Reason string `json:"reason"`
}

// SubmissionRequest records a manual submission. submitted_at defaults to
// the current time.
type SubmissionRequest struct {
	SubmittedAt            *time.Time `json:"submitted_at"`
	FollowedRecommendation bool       `json:"followed_recommendation"`
}

type ResponseRequest struct {
	ResponseType string     `json:"response_type" binding:"required,oneof=positive negative rejection"`
	RespondedAt  *time.Time `json:"responded_at"`
}

type ListTimingRequest struct {
	UserID   string `form:"user_id"`
	Industry string `form:"industry"`
	PageSize int    `form:"page_size"`
	Cursor   string `form:"cursor"`
}

type ListTimingResponse struct {
	Records    []domain.TimingRecord `json:"records"`
	NextCursor string                `json:"next_cursor,omitempty"`
}

type SubmissionsResponse struct {
	Submissions []domain.SubmissionEntry `json:"submissions"`
	Metrics     domain.Metrics           `json:"metrics"`
}
