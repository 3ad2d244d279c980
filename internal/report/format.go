package report

import (
	"fmt"
	"time"
)

// FormatDate renders a date for display as MM/DD/YYYY.
func FormatDate(t time.Time) string {
	return t.Format("01/02/2006")
}

// ReportPeriodLabel renders the report date range for the document header.
func ReportPeriodLabel(start, end time.Time) string {
	return fmt.Sprintf("%s to %s", FormatDate(start), FormatDate(end))
}

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthName returns the English month name for 1-12, or "" out of range.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month-1]
}
