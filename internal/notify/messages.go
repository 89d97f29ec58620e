package notify

import (
	"fmt"
	"time"

	"github.com/applytrack/timing-be/internal/timing/domain"
)

// ConfirmationEmail is sent after an auto-submitted application.
func ConfirmationEmail(user domain.User, job domain.Job, submittedAt time.Time) Message {
	return Message{
		To:      user.Email,
		Subject: fmt.Sprintf("Application submitted: %s at %s", job.Title, job.Company),
		Body: fmt.Sprintf(
			"Hi %s,\n\nYour application for %s at %s was submitted automatically on %s, the optimal time we identified for this role.\n\nGood luck!\n",
			user.Name,
			job.Title,
			job.Company,
			submittedAt.Format("Monday, January 2 at 3:04 PM"),
		),
	}
}

// ReminderEmail is sent when a scheduled submission comes due without
// auto-submit enabled.
func ReminderEmail(user domain.User, job domain.Job, scheduledFor time.Time) Message {
	return Message{
		To:      user.Email,
		Subject: fmt.Sprintf("Time to apply: %s at %s", job.Title, job.Company),
		Body: fmt.Sprintf(
			"Hi %s,\n\nThis is your reminder to submit your application for %s at %s. You scheduled it for %s, which is the optimal submission window for this role.\n\nApply here: %s\n",
			user.Name,
			job.Title,
			job.Company,
			scheduledFor.Format("Monday, January 2 at 3:04 PM"),
			job.ApplicationURL,
		),
	}
}
