package stats

import "time"

// DailyFocus is the focused minutes accumulated on one calendar day, summed
// across every plan's tasks.
type DailyFocus struct {
	Date    time.Time
	Minutes int
}

// PlanFocus is one plan's contribution to the report window plus its overall
// reading progress.
type PlanFocus struct {
	PlanId          string
	Subject         string
	Color           string
	WeeklyMinutes   int
	TotalMinutes    int
	ProgressPercent int
}

// WeeklyReport covers the trailing seven days ending today.
type WeeklyReport struct {
	StartDate      time.Time
	EndDate        time.Time
	Days           []DailyFocus
	WeeklyMinutes  int
	DailyAverage   int
	ActiveSubjects int
	Plans          []PlanFocus
}
