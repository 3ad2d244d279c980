package render

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"guest-recovery-portal/internal/models"
)

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func sampleComplaints() []models.Complaint {
	return []models.Complaint{
		{
			DateTime:         time.Date(2026, 3, 5, 14, 30, 0, 0, time.UTC),
			GuestName:        "Alice Morgan",
			Room:             "412",
			ProblemArea:      "Housekeeping",
			ConfirmationNo:   strPtr("CNF-1001"),
			MembershipTier:   strPtr("Diamond"),
			ComplaintDetails: strPtr("Room was not cleaned on arrival"),
			ActionTaken:      strPtr("Apologized and dispatched housekeeping"),
			FDStaff:          strPtr("Priya"),
			FollowUpRequired: strPtr("no"),
		},
		{
			DateTime:         time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
			GuestName:        "Ben Torres",
			Room:             "218",
			ProblemArea:      "Noise",
			FDStaff:          strPtr("Priya"),
			FollowUpRequired: strPtr("yes"),
			FollowUpDate:     timePtr(time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)),
		},
		{
			DateTime:         time.Date(2026, 3, 18, 20, 15, 0, 0, time.UTC),
			GuestName:        "Carol Ng",
			Room:             "305",
			ProblemArea:      "Housekeeping",
			FDStaff:          strPtr("Marco"),
			FollowUpRequired: strPtr("yes"),
			FollowUpDate:     timePtr(time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)),
			FollowUpStaff:    strPtr("Marco"),
			FollowUpComments: strPtr("Waiting on guest callback"),
		},
	}
}

func renderDoc(t *testing.T) *goquery.Document {
	t.Helper()
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	html, err := BuildReportHTML(sampleComplaints(), start, end, "Holiday Inn Express Markham")
	if err != nil {
		t.Fatalf("BuildReportHTML: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse rendered HTML: %v", err)
	}
	return doc
}

func TestBuildReportHTMLHeaderAndMetrics(t *testing.T) {
	doc := renderDoc(t)

	if got := doc.Find(".header h1").Text(); got != "Holiday Inn Express Markham" {
		t.Errorf("header = %q", got)
	}
	if got := doc.Find(".report-period").Text(); !strings.Contains(got, "03/01/2026 to 03/31/2026") {
		t.Errorf("report period = %q", got)
	}

	// One completed of three: 33%. Ben is overdue on the 31st, Carol active.
	values := doc.Find(".metric-value").Map(func(_ int, s *goquery.Selection) string {
		return strings.TrimSpace(s.Text())
	})
	want := []string{"3", "1 (33%)", "1", "1"}
	if len(values) != len(want) {
		t.Fatalf("metric cards = %v", values)
	}
	for i := range want {
		if values[i] != want[i] {
			t.Errorf("metric %d = %q, want %q", i, values[i], want[i])
		}
	}
}

func TestBuildReportHTMLStaffPills(t *testing.T) {
	doc := renderDoc(t)

	rows := doc.Find(".section").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.Contains(s.Find(".section-title").Text(), "Staff Performance")
	}).Find("tbody tr")

	if rows.Length() != 2 {
		t.Fatalf("staff rows = %d, want 2", rows.Length())
	}

	first := rows.Eq(0)
	if got := first.Find("td").Eq(0).Text(); got != "Priya" {
		t.Errorf("top staff = %q, want Priya", got)
	}
	if first.Find(".pill-overdue-status").Length() != 1 {
		t.Error("Priya should carry an overdue pill")
	}
	if first.Find(".pill-active-status").Length() != 0 {
		t.Error("Priya has no active cases")
	}

	second := rows.Eq(1)
	if second.Find(".pill-active-status").Length() != 1 {
		t.Error("Marco should carry an active pill")
	}
}

func TestBuildReportHTMLTierRows(t *testing.T) {
	doc := renderDoc(t)

	rows := doc.Find(".section").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.Contains(s.Find(".section-title").Text(), "Member Tier Analysis")
	}).Find("tbody tr")

	if rows.Length() != 6 {
		t.Fatalf("tier rows = %d, want 6", rows.Length())
	}
	if doc.Find(".attention-badge").Length() != 0 {
		t.Error("no tier exceeds the attention threshold")
	}
}

func TestBuildReportHTMLIncidentSections(t *testing.T) {
	doc := renderDoc(t)

	detailed := doc.Find(".section").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.Contains(s.Find(".section-title").Text(), "Detailed Incident Report")
	})
	if got := detailed.Find("tbody tr").Length(); got != 3 {
		t.Errorf("detailed rows = %d, want 3", got)
	}

	// Newest incident comes first.
	firstGuest := detailed.Find("tbody tr").Eq(0).Find("td").Eq(1).Text()
	if firstGuest != "Carol Ng" {
		t.Errorf("first detailed guest = %q, want Carol Ng", firstGuest)
	}

	open := doc.Find(".section").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.Contains(s.Find(".section-title").Text(), "Active and Overdue Cases")
	})
	rows := open.Find("tbody tr")
	if rows.Length() != 2 {
		t.Fatalf("open case rows = %d, want 2", rows.Length())
	}
	// Active cases are listed before overdue ones.
	if rows.Eq(0).Find("td").Eq(1).Text() != "Carol Ng" {
		t.Errorf("first open case = %q, want Carol Ng", rows.Eq(0).Find("td").Eq(1).Text())
	}
	if got := rows.Eq(1).Find(".status-badge").Text(); !strings.Contains(got, "Overdue by") {
		t.Errorf("second open case badge = %q", got)
	}
	if note := rows.Eq(1).Find(".overdue-details").Text(); !strings.Contains(note, "Follow Up date was 03/12/2026") {
		t.Errorf("overdue note = %q", note)
	}
}

func TestBuildReportHTMLEmptyOpenCasesOmitted(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	completed := []models.Complaint{{
		DateTime:         time.Date(2026, 3, 5, 14, 30, 0, 0, time.UTC),
		GuestName:        "Alice Morgan",
		Room:             "412",
		ProblemArea:      "Housekeeping",
		FollowUpRequired: strPtr("no"),
	}}
	html, err := BuildReportHTML(completed, start, end, "Test Property")
	if err != nil {
		t.Fatalf("BuildReportHTML: %v", err)
	}
	if strings.Contains(html, "Active and Overdue Cases") {
		t.Error("open case section should be omitted when everything is completed")
	}
}

func TestReportFileName(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	want := "Guest Service Recovery Report 03-01-2026 to 03-31-2026.pdf"
	if got := ReportFileName(start, end); got != want {
		t.Errorf("ReportFileName = %q, want %q", got, want)
	}
}
