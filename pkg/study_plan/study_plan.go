package study_plan

import "time"

// DateLayout is the wire and storage format for calendar dates.
const DateLayout = "2006-01-02"

type StudyPlan struct {
	Id               string
	Subject          string
	Category         string
	Color            string
	StartDate        time.Time // calendar date, UTC midnight
	EndDate          time.Time // calendar date, UTC midnight, inclusive
	TotalPages       int
	FrequencyPerWeek int
	Tasks            []DailyTask // one per date in range, ascending
	// CompletedPages is derived on every read as the sum of PagesToRead over
	// completed tasks. It is never stored independently.
	CompletedPages int
	// TotalMinutes is a stored accumulator and only ever grows. It can exceed
	// the sum of per-task minutes because minutes logged for a date outside
	// the schedule still count toward the plan.
	TotalMinutes int
	AiAdvice     string
}

type DailyTask struct {
	Date        time.Time
	PagesToRead int
	IsRestDay   bool
	IsCompleted bool
	// MinutesSpent accumulates completed focus sessions and never decreases.
	MinutesSpent int
}

// Date truncates t to its calendar date at UTC midnight.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// completedPagesOf sums pages over completed tasks.
func completedPagesOf(tasks []DailyTask) int {
	total := 0
	for _, task := range tasks {
		if task.IsCompleted {
			total += task.PagesToRead
		}
	}
	return total
}
