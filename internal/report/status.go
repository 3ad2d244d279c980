package report

import (
	"strings"
	"time"

	"guest-recovery-portal/internal/models"
)

// StatusResult is one classification outcome. DaysOverdue is meaningful
// only when Status is Overdue; Detail carries the explanatory note for the
// Active outcomes that have one.
type StatusResult struct {
	Status      models.Status
	DaysOverdue int
	Detail      string
}

// Classify evaluates the follow-up decision table for one complaint
// against refDate, top to bottom, first match wins:
//
//   - follow-up required blank          -> Active, "No Follow up Details Recorded"
//   - follow-up required not yes/y      -> Completed
//   - no follow-up date                 -> Active, "No Follow up Date Assigned"
//   - follow-up date in the future      -> Active
//   - date passed, follow-up staff set  -> Active, "No Follow up comments recorded"
//   - date passed, no follow-up staff   -> Overdue, with days elapsed
//
// Both dates are truncated to midnight before comparison. The function is
// pure; two calls with different reference dates may legitimately disagree.
func Classify(c models.Complaint, refDate time.Time) StatusResult {
	if c.FollowUpRequired == nil || strings.TrimSpace(*c.FollowUpRequired) == "" {
		return StatusResult{Status: models.StatusActive, Detail: "No Follow up Details Recorded"}
	}

	required := strings.ToLower(strings.TrimSpace(*c.FollowUpRequired))
	if required != "yes" && required != "y" {
		return StatusResult{Status: models.StatusCompleted}
	}

	if c.FollowUpDate == nil {
		return StatusResult{Status: models.StatusActive, Detail: "No Follow up Date Assigned"}
	}

	ref := truncateToDay(refDate)
	due := truncateToDay(*c.FollowUpDate)

	if due.After(ref) {
		return StatusResult{Status: models.StatusActive}
	}

	if c.FollowUpStaff != nil && strings.TrimSpace(*c.FollowUpStaff) != "" {
		return StatusResult{Status: models.StatusActive, Detail: "No Follow up comments recorded"}
	}

	days := int(ref.Sub(due).Hours() / 24)
	return StatusResult{Status: models.StatusOverdue, DaysOverdue: days}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
