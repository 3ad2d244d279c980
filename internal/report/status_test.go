package report

import (
	"testing"
	"time"

	"guest-recovery-portal/internal/models"
)

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func TestClassifyDecisionTable(t *testing.T) {
	ref := time.Date(2026, 6, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name        string
		complaint   models.Complaint
		wantStatus  models.Status
		wantDays    int
		wantDetail  string
	}{
		{
			"FollowUpRequiredMissing",
			models.Complaint{},
			models.StatusActive, 0, "No Follow up Details Recorded",
		},
		{
			"FollowUpRequiredBlank",
			models.Complaint{FollowUpRequired: strPtr("   ")},
			models.StatusActive, 0, "No Follow up Details Recorded",
		},
		{
			"FollowUpNotRequired",
			models.Complaint{FollowUpRequired: strPtr("No")},
			models.StatusCompleted, 0, "",
		},
		{
			"FollowUpRequiredYesNoDate",
			models.Complaint{FollowUpRequired: strPtr("Yes")},
			models.StatusActive, 0, "No Follow up Date Assigned",
		},
		{
			"FollowUpRequiredShortY",
			models.Complaint{FollowUpRequired: strPtr("y")},
			models.StatusActive, 0, "No Follow up Date Assigned",
		},
		{
			"FollowUpDateInFuture",
			models.Complaint{
				FollowUpRequired: strPtr("Yes"),
				FollowUpDate:     timePtr(time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC)),
			},
			models.StatusActive, 0, "",
		},
		{
			"DatePassedWithStaff",
			models.Complaint{
				FollowUpRequired: strPtr("Yes"),
				FollowUpDate:     timePtr(time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)),
				FollowUpStaff:    strPtr("Bob"),
			},
			models.StatusActive, 0, "No Follow up comments recorded",
		},
		{
			"DatePassedWithoutStaff",
			models.Complaint{
				FollowUpRequired: strPtr("Yes"),
				FollowUpDate:     timePtr(time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)),
			},
			models.StatusOverdue, 5, "",
		},
		{
			"DueTodayWithoutStaff",
			models.Complaint{
				FollowUpRequired: strPtr("YES"),
				FollowUpDate:     timePtr(time.Date(2026, 6, 15, 23, 0, 0, 0, time.UTC)),
			},
			models.StatusOverdue, 0, "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.complaint, ref)
			if got.Status != tt.wantStatus {
				t.Errorf("Status = %v, want %v", got.Status, tt.wantStatus)
			}
			if got.DaysOverdue != tt.wantDays {
				t.Errorf("DaysOverdue = %d, want %d", got.DaysOverdue, tt.wantDays)
			}
			if got.Detail != tt.wantDetail {
				t.Errorf("Detail = %q, want %q", got.Detail, tt.wantDetail)
			}
		})
	}
}

func TestClassifyDependsOnReferenceDate(t *testing.T) {
	c := models.Complaint{
		FollowUpRequired: strPtr("Yes"),
		FollowUpDate:     timePtr(time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)),
	}

	before := Classify(c, time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC))
	after := Classify(c, time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC))

	if before.Status != models.StatusActive {
		t.Errorf("before due date: Status = %v, want Active", before.Status)
	}
	if after.Status != models.StatusOverdue || after.DaysOverdue != 5 {
		t.Errorf("after due date: got %+v, want Overdue by 5", after)
	}
}

func TestClassifyTotality(t *testing.T) {
	ref := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	valid := map[models.Status]bool{
		models.StatusCompleted: true,
		models.StatusActive:    true,
		models.StatusOverdue:   true,
	}

	required := []*string{nil, strPtr(""), strPtr("No"), strPtr("Yes"), strPtr("y"), strPtr("maybe")}
	dates := []*time.Time{
		nil,
		timePtr(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)),
		timePtr(time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)),
	}
	staff := []*string{nil, strPtr("Bob")}

	for _, r := range required {
		for _, d := range dates {
			for _, s := range staff {
				c := models.Complaint{FollowUpRequired: r, FollowUpDate: d, FollowUpStaff: s}
				got := Classify(c, ref)
				if !valid[got.Status] {
					t.Fatalf("Classify produced unknown status %q for %+v", got.Status, c)
				}
			}
		}
	}
}
