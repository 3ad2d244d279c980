package report

import (
	"time"

	"guest-recovery-portal/internal/models"
)

// FilterByDateRange keeps complaints whose timestamp falls within
// [start, end], both bounds inclusive. The end bound is extended to
// 23:59:59 of its calendar day, so a record logged any time on the end
// date is still in range.
func FilterByDateRange(complaints []models.Complaint, start, end time.Time) []models.Complaint {
	endOfDay := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, end.Location())

	filtered := make([]models.Complaint, 0, len(complaints))
	for _, c := range complaints {
		if c.DateTime.Before(start) || c.DateTime.After(endOfDay) {
			continue
		}
		filtered = append(filtered, c)
	}
	return filtered
}
