package render

import (
	"fmt"
	"html/template"
	"sort"
	"strings"
	"time"

	"guest-recovery-portal/internal/models"
	"guest-recovery-portal/internal/report"
)

// reportView is the data handed to the report template.
type reportView struct {
	PropertyName  string
	PeriodLabel   string
	Metrics       report.Metrics
	Staff         []staffView
	ProblemAreas  []report.ProblemAreaBreakdown
	Tiers         []report.TierBreakdown
	ActiveOverdue []incidentView
	Incidents     []incidentView
}

type staffView struct {
	Name       string
	Count      int
	HasActive  bool
	HasOverdue bool
}

type incidentView struct {
	Date           string
	ConfirmationNo string
	Room           string
	Tier           string
	ProblemArea    string
	GuestName      string
	Details        string
	ActionTaken    string
	Staff          string
	StatusClass    string
	StatusLabel    string
	Detail         string
	FollowUpNote   string
}

// BuildReportHTML renders the full report document for the given records
// and period. The end date doubles as the classifier's reference date.
func BuildReportHTML(complaints []models.Complaint, start, end time.Time, propertyName string) (string, error) {
	view := reportView{
		PropertyName: propertyName,
		PeriodLabel:  report.ReportPeriodLabel(start, end),
		Metrics:      report.CalculateMetrics(complaints, end),
		ProblemAreas: report.CalculateProblemAreas(complaints),
		Tiers:        report.CalculateMembershipTiers(complaints),
	}

	// Staff table rows, annotated with whether that staff member still has
	// open cases in this period.
	type caseFlags struct{ active, overdue bool }
	flags := make(map[string]*caseFlags)
	for _, c := range complaints {
		name := staffName(c)
		f, ok := flags[name]
		if !ok {
			f = &caseFlags{}
			flags[name] = f
		}
		switch report.Classify(c, end).Status {
		case models.StatusActive:
			f.active = true
		case models.StatusOverdue:
			f.overdue = true
		}
	}
	for _, s := range report.CalculateStaffPerformance(complaints) {
		row := staffView{Name: s.Name, Count: s.Count}
		if f, ok := flags[s.Name]; ok {
			row.HasActive = f.active
			row.HasOverdue = f.overdue
		}
		view.Staff = append(view.Staff, row)
	}

	// Detailed incidents, newest first.
	sorted := make([]models.Complaint, len(complaints))
	copy(sorted, complaints)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DateTime.After(sorted[j].DateTime)
	})
	for _, c := range sorted {
		view.Incidents = append(view.Incidents, incidentView0(c, end))
	}

	// Open cases only: active before overdue, newest first within each
	// group (the ordering the legacy report shipped with).
	var open []models.Complaint
	for _, c := range complaints {
		if report.Classify(c, end).Status != models.StatusCompleted {
			open = append(open, c)
		}
	}
	sort.SliceStable(open, func(i, j int) bool {
		oi := report.Classify(open[i], end).Status == models.StatusOverdue
		oj := report.Classify(open[j], end).Status == models.StatusOverdue
		if oi != oj {
			return !oi
		}
		return open[i].DateTime.After(open[j].DateTime)
	})
	for _, c := range open {
		view.ActiveOverdue = append(view.ActiveOverdue, incidentView0(c, end))
	}

	var b strings.Builder
	if err := reportTemplate.Execute(&b, view); err != nil {
		return "", fmt.Errorf("failed to render report template: %w", err)
	}
	return b.String(), nil
}

// ReportFileName is the download name for a generated report.
func ReportFileName(start, end time.Time) string {
	return fmt.Sprintf("Guest Service Recovery Report %s to %s.pdf",
		start.Format("01-02-2006"), end.Format("01-02-2006"))
}

func incidentView0(c models.Complaint, refDate time.Time) incidentView {
	result := report.Classify(c, refDate)

	v := incidentView{
		Date:           report.FormatDate(c.DateTime),
		ConfirmationNo: orDash(c.ConfirmationNo),
		Room:           c.Room,
		Tier:           orEmpty(c.MembershipTier),
		ProblemArea:    c.ProblemArea,
		GuestName:      c.GuestName,
		Details:        orDash(c.ComplaintDetails),
		ActionTaken:    orDash(c.ActionTaken),
		Staff:          orDash(c.FDStaff),
		StatusClass:    "status-" + strings.ToLower(string(result.Status)),
		StatusLabel:    string(result.Status),
	}

	if result.Status == models.StatusOverdue {
		v.StatusLabel = fmt.Sprintf("Overdue by %d Days", result.DaysOverdue)
		due := "-"
		if c.FollowUpDate != nil {
			due = report.FormatDate(*c.FollowUpDate)
		}
		v.FollowUpNote = "Follow Up date was " + due
	} else {
		v.Detail = result.Detail
	}

	return v
}

func staffName(c models.Complaint) string {
	if c.FDStaff != nil && *c.FDStaff != "" {
		return *c.FDStaff
	}
	return "Unassigned"
}

func orDash(p *string) string {
	if p == nil || *p == "" {
		return "-"
	}
	return *p
}

func orEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

var reportTemplate = template.Must(template.New("report").Parse(reportHTML))

const reportHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
* { margin: 0; padding: 0; box-sizing: border-box; }
body {
    font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
    color: #333; background-color: white; line-height: 1.3; font-size: 11px;
}
.container { width: 100%; margin: 0; padding: 20px; background-color: white; }
.header {
    text-align: center; margin-bottom: 20px;
    border-bottom: 3px solid #0078d4; padding-bottom: 10px;
}
.header h1 { font-size: 26px; color: #0078d4; margin-bottom: 2px; font-weight: bold; }
.header p { font-size: 13px; color: #666; margin: 0; }
.report-period { text-align: center; font-size: 11px; color: #666; margin-bottom: 20px; }
.metrics {
    display: grid; grid-template-columns: repeat(4, 1fr);
    gap: 12px; margin-bottom: 25px;
}
.metric-card {
    background-color: #f5f5f5; border-left: 4px solid #0078d4;
    padding: 12px; border-radius: 2px;
}
.metric-card.closed { border-left-color: #28a745; }
.metric-card.active { border-left-color: #ffc107; }
.metric-card.overdue { border-left-color: #dc3545; }
.metric-label {
    font-size: 9px; color: #666; text-transform: uppercase;
    margin-bottom: 5px; font-weight: 600;
}
.metric-value { font-size: 22px; font-weight: bold; color: #0078d4; }
.metric-card.closed .metric-value { color: #28a745; }
.metric-card.active .metric-value { color: #ffc107; }
.metric-card.overdue .metric-value { color: #dc3545; }
.section { margin-bottom: 25px; page-break-inside: auto; }
.section-title {
    font-size: 14px; font-weight: bold; color: #0078d4;
    margin-bottom: 10px; padding-bottom: 8px; border-bottom: 2px solid #0078d4;
}
table { width: 100%; border-collapse: collapse; margin-bottom: 15px; }
tr { page-break-inside: avoid; }
th {
    background-color: #0078d4; color: white; padding: 8px; text-align: left;
    font-weight: 600; font-size: 12px; border: 1px solid #0078d4;
}
td { padding: 12px; border: 1px solid #ddd; font-size: 11px; vertical-align: top; }
tbody tr:nth-child(even) { background-color: #f0f4f8; }
tbody tr:nth-child(odd) { background-color: #ffffff; }
.status-badge {
    display: inline-block; padding: 4px 8px; border-radius: 14px;
    font-size: 10px; font-weight: 700; text-transform: uppercase;
    white-space: normal; word-break: break-word; max-width: 100%;
}
.status-completed { background-color: #28a745; color: white; }
.status-active { background-color: #ffc107; color: #333; }
.status-overdue { background-color: #dc3545; color: white; }
.percentage { font-weight: bold; color: #0078d4; }
.overdue-details { font-size: 9px; color: #666; margin-top: 3px; }
.attention-badge {
    display: inline-block; background-color: #dc3545; color: white;
    padding: 2px 5px; border-radius: 3px; font-size: 9px;
    font-weight: bold; margin-left: 5px;
}
.detail-pills { display: flex; flex-direction: column; gap: 8px; }
.pill {
    display: inline-block; padding: 4px 8px; border-radius: 14px;
    font-size: 10px; font-weight: 600; color: #333; width: fit-content;
}
.pill-date { background-color: #e8e8e8; color: #333; }
.pill-crn { background-color: transparent; border: 2px solid #0078d4; color: #0078d4; }
.pill-room { background-color: transparent; border: 2px solid #6f42c1; color: #6f42c1; }
.pill-tier { background-color: transparent; border: 2px solid #e83e8c; color: #e83e8c; }
.pill-problem { background-color: transparent; border: 2px solid #ffc107; color: #ffc107; }
.pill-overdue-status { background-color: #dc3545; color: white; border: none; }
.pill-active-status { background-color: #ffc107; color: #333; border: none; }
.staff-name { font-weight: 600; margin-bottom: 4px; }
.detailed-table th:nth-child(1), .detailed-table td:nth-child(1) { width: 14%; }
.detailed-table th:nth-child(2), .detailed-table td:nth-child(2) { width: 18%; }
.detailed-table th:nth-child(3), .detailed-table td:nth-child(3) { width: 24%; }
.detailed-table th:nth-child(4), .detailed-table td:nth-child(4) { width: 24%; }
.detailed-table th:nth-child(5), .detailed-table td:nth-child(5) { width: 20%; }
</style>
</head>
<body>
<div class="container">
    <div class="header">
        <h1>{{.PropertyName}}</h1>
        <p>Guest Service Recovery Report</p>
    </div>

    <div class="report-period">Report Period: {{.PeriodLabel}}</div>

    <div class="metrics">
        <div class="metric-card">
            <div class="metric-label">Total Incidents</div>
            <div class="metric-value">{{.Metrics.Total}}</div>
        </div>
        <div class="metric-card closed">
            <div class="metric-label">Completed</div>
            <div class="metric-value">{{.Metrics.Completed}} ({{.Metrics.CompletedPercentage}}%)</div>
        </div>
        <div class="metric-card active">
            <div class="metric-label">Active</div>
            <div class="metric-value">{{.Metrics.Active}}</div>
        </div>
        <div class="metric-card overdue">
            <div class="metric-label">Overdue</div>
            <div class="metric-value">{{.Metrics.Overdue}}</div>
        </div>
    </div>

    <div class="section">
        <h2 class="section-title">Staff Performance</h2>
        <table>
            <thead>
                <tr><th>Staff Name</th><th>Number of Complaints</th></tr>
            </thead>
            <tbody>
            {{range .Staff}}
                <tr>
                    <td>{{.Name}}</td>
                    <td>{{.Count}}{{if .HasOverdue}} <span class="pill pill-overdue-status">has overdue cases</span>{{end}}{{if .HasActive}} <span class="pill pill-active-status">has active cases</span>{{end}}</td>
                </tr>
            {{end}}
            </tbody>
        </table>
    </div>

    <div class="section">
        <h2 class="section-title">Problem Area Breakdown</h2>
        <table>
            <thead>
                <tr><th>Problem Area</th><th>Count</th><th>Percentage</th><th>Rooms</th></tr>
            </thead>
            <tbody>
            {{range .ProblemAreas}}
                <tr>
                    <td>{{.Area}}</td>
                    <td>{{.Count}}</td>
                    <td><span class="percentage">{{.Percentage}}%</span></td>
                    <td>{{.Rooms}}</td>
                </tr>
            {{end}}
            </tbody>
        </table>
    </div>

    <div class="section">
        <h2 class="section-title">Member Tier Analysis</h2>
        <table>
            <thead>
                <tr><th>Member Tier</th><th>Number of Complaints</th></tr>
            </thead>
            <tbody>
            {{range .Tiers}}
                <tr>
                    <td>{{.Tier}}{{if .NeedsAttention}} <span class="attention-badge">Needs Attention!</span>{{end}}</td>
                    <td>{{.Count}}</td>
                </tr>
            {{end}}
            </tbody>
        </table>
    </div>

    {{if .ActiveOverdue}}
    <div class="section">
        <h2 class="section-title">Active and Overdue Cases</h2>
        <table class="detailed-table">
            <thead>
                <tr><th>Date &amp; Details</th><th>Guest Name</th><th>Complaint Details</th><th>Action Taken</th><th>Staff &amp; Status</th></tr>
            </thead>
            <tbody>
            {{range .ActiveOverdue}}{{template "incident" .}}{{end}}
            </tbody>
        </table>
    </div>
    {{end}}

    <div class="section">
        <h2 class="section-title">Detailed Incident Report</h2>
        <table class="detailed-table">
            <thead>
                <tr><th>Date &amp; Details</th><th>Guest Name</th><th>Complaint Details</th><th>Action Taken</th><th>Staff &amp; Status</th></tr>
            </thead>
            <tbody>
            {{range .Incidents}}{{template "incident" .}}{{end}}
            </tbody>
        </table>
    </div>
</div>
</body>
</html>
{{define "incident"}}
                <tr>
                    <td>
                        <div class="detail-pills">
                            <span class="pill pill-date">{{.Date}}</span>
                            <span class="pill pill-crn">CRN# {{.ConfirmationNo}}</span>
                            <span class="pill pill-room">Room {{.Room}}</span>
                            {{if .Tier}}<span class="pill pill-tier">{{.Tier}}</span>{{end}}
                            <span class="pill pill-problem">{{.ProblemArea}}</span>
                        </div>
                    </td>
                    <td>{{.GuestName}}</td>
                    <td>{{.Details}}</td>
                    <td>{{.ActionTaken}}</td>
                    <td>
                        <div class="detail-pills">
                            <div class="staff-name">{{.Staff}}</div>
                            <span class="status-badge {{.StatusClass}}">{{.StatusLabel}}</span>
                            {{if .Detail}}<div class="overdue-details">{{.Detail}}</div>{{end}}
                            {{if .FollowUpNote}}<div class="overdue-details">{{.FollowUpNote}}</div>{{end}}
                        </div>
                    </td>
                </tr>
{{end}}`
