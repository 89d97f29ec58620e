package engine

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/applytrack/timing-be/internal/timing/domain"
)

// Advisory actions
const (
	ActionSubmitNow   = "submit_now"
	ActionWaitBriefly = "wait_briefly"
	ActionSchedule    = "schedule"
)

// Advisory classifies whether to submit now, wait, or schedule.
type Advisory struct {
	Action            string                `json:"action"`
	Message           string                `json:"message"`
	Recommendation    domain.Recommendation `json:"recommendation"`
	HoursUntilOptimal float64               `json:"hours_until_optimal"`
}

// Advise computes a recommendation and classifies its distance from now.
//
// The schedule message counts calendar days while HoursUntilOptimal counts
// clock hours, so "in 2 days" can accompany 40-odd hours. The two are
// computed independently on purpose; do not reconcile them.
func (e *Engine) Advise(ctx context.Context, job JobData, user UserData) Advisory {
	rec := e.Recommend(ctx, job, user)
	now := e.now()

	hoursUntil := rec.RecommendedTime.Sub(now).Hours()

	advisory := Advisory{
		Recommendation:    rec,
		HoursUntilOptimal: hoursUntil,
	}

	switch {
	case hoursUntil < 1:
		advisory.Action = ActionSubmitNow
		advisory.Message = "Now is a good time to submit this application."

	case hoursUntil < 24:
		advisory.Action = ActionWaitBriefly
		advisory.Message = fmt.Sprintf(
			"Wait about %d hours and submit at %s.",
			int(math.Round(hoursUntil)),
			rec.RecommendedTime.Format("3:04 PM"),
		)

	default:
		advisory.Action = ActionSchedule
		advisory.Message = fmt.Sprintf(
			"Schedule this submission for %s %s.",
			rec.DayOfWeek,
			relativeDayPhrase(now, rec.RecommendedTime),
		)
	}

	return advisory
}

// relativeDayPhrase describes the calendar-day distance between two
// instants.
func relativeDayPhrase(now, target time.Time) string {
	nowDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	targetDate := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, target.Location())

	days := int(targetDate.Sub(nowDate).Hours() / 24)
	switch days {
	case 0:
		return "later today"
	case 1:
		return "tomorrow"
	default:
		return fmt.Sprintf("in %d days", days)
	}
}
