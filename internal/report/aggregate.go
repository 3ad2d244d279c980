package report

import (
	"math"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"guest-recovery-portal/internal/models"
)

// Metrics summarizes status counts over one record collection.
type Metrics struct {
	Total               int `json:"total"`
	Completed           int `json:"completed"`
	Active              int `json:"active"`
	Overdue             int `json:"overdue"`
	CompletedPercentage int `json:"completedPercentage"`
}

// StaffPerformance is the incident count for one front-desk staff member.
type StaffPerformance struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ProblemAreaBreakdown is the share of incidents for one problem area.
// Rooms is the comma-joined, lexicographically sorted set of affected
// room identifiers.
type ProblemAreaBreakdown struct {
	Area       string `json:"area"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
	Rooms      string `json:"rooms"`
}

// TierBreakdown is the incident count for one membership tier bucket.
type TierBreakdown struct {
	Tier           string `json:"tier"`
	Count          int    `json:"count"`
	NeedsAttention bool   `json:"needsAttention"`
}

// membershipTierOrder is the fixed bucket order of the tier breakdown.
// Anything not normalizing to the first five lands in Non Members.
var membershipTierOrder = []string{"Diamond", "Platinum", "Gold", "Silver", "Club", "Non Members"}

const tierAttentionThreshold = 10

var tierTitler = cases.Title(language.English)

// CalculateMetrics classifies every record against refDate and tallies the
// per-status counts. The completed percentage rounds half away from zero
// and is 0 for an empty collection.
func CalculateMetrics(complaints []models.Complaint, refDate time.Time) Metrics {
	m := Metrics{Total: len(complaints)}

	for _, c := range complaints {
		switch Classify(c, refDate).Status {
		case models.StatusCompleted:
			m.Completed++
		case models.StatusActive:
			m.Active++
		case models.StatusOverdue:
			m.Overdue++
		}
	}

	m.CompletedPercentage = percentage(m.Completed, m.Total)
	return m
}

// CalculateStaffPerformance groups records by FD staff, labeling records
// without one "Unassigned". Results sort by count descending; equal counts
// order alphabetically by name so the ranking is stable across runs.
func CalculateStaffPerformance(complaints []models.Complaint) []StaffPerformance {
	counts := make(map[string]int)
	for _, c := range complaints {
		name := "Unassigned"
		if c.FDStaff != nil && *c.FDStaff != "" {
			name = *c.FDStaff
		}
		counts[name]++
	}

	result := make([]StaffPerformance, 0, len(counts))
	for name, count := range counts {
		result = append(result, StaffPerformance{Name: name, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Name < result[j].Name
	})

	return result
}

// CalculateProblemAreas groups records by problem area with each group's
// share of the total and its distinct rooms. Groups sort by count
// descending, ties alphabetically by area.
func CalculateProblemAreas(complaints []models.Complaint) []ProblemAreaBreakdown {
	type group struct {
		count int
		rooms map[string]struct{}
	}
	groups := make(map[string]*group)

	for _, c := range complaints {
		g, ok := groups[c.ProblemArea]
		if !ok {
			g = &group{rooms: make(map[string]struct{})}
			groups[c.ProblemArea] = g
		}
		g.count++
		g.rooms[c.Room] = struct{}{}
	}

	total := len(complaints)
	result := make([]ProblemAreaBreakdown, 0, len(groups))
	for area, g := range groups {
		rooms := make([]string, 0, len(g.rooms))
		for room := range g.rooms {
			rooms = append(rooms, room)
		}
		sort.Strings(rooms)

		result = append(result, ProblemAreaBreakdown{
			Area:       area,
			Count:      g.count,
			Percentage: percentage(g.count, total),
			Rooms:      strings.Join(rooms, ", "),
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Area < result[j].Area
	})

	return result
}

// CalculateMembershipTiers buckets records into the fixed tier set. Tier
// text is trimmed and title-cased before matching; anything unrecognized,
// including a missing tier, counts as Non Members. A bucket over the
// attention threshold gets flagged.
func CalculateMembershipTiers(complaints []models.Complaint) []TierBreakdown {
	counts := make(map[string]int, len(membershipTierOrder))
	for _, tier := range membershipTierOrder {
		counts[tier] = 0
	}

	for _, c := range complaints {
		tier := "Non Members"
		if c.MembershipTier != nil {
			normalized := tierTitler.String(strings.TrimSpace(*c.MembershipTier))
			if _, known := counts[normalized]; known {
				tier = normalized
			}
		}
		counts[tier]++
	}

	result := make([]TierBreakdown, 0, len(membershipTierOrder))
	for _, tier := range membershipTierOrder {
		result = append(result, TierBreakdown{
			Tier:           tier,
			Count:          counts[tier],
			NeedsAttention: counts[tier] > tierAttentionThreshold,
		})
	}

	return result
}

func percentage(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
