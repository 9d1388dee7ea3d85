package event_bus

import "time"

// FocusSessionCompleted is published when a timed focus session finishes.
// Date is the calendar day the minutes should be credited to.
type FocusSessionCompleted struct {
	PlanId  string
	Date    time.Time
	Minutes int
}

// StudyPlanCreated is published after a plan and its task schedule are stored.
type StudyPlanCreated struct {
	PlanId     string
	Subject    string
	StartDate  time.Time
	EndDate    time.Time
	TotalPages int
}
