package study_plan

import "time"

// studyWeekdaysByFrequency is a fixed lookup chosen to spread study days
// evenly across the week instead of clustering them. It is intentionally a
// table, not a derived formula.
var studyWeekdaysByFrequency = map[int][]time.Weekday{
	1: {time.Saturday},
	2: {time.Tuesday, time.Thursday},
	3: {time.Monday, time.Wednesday, time.Friday},
	4: {time.Monday, time.Wednesday, time.Friday, time.Sunday},
	5: {time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
	6: {time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday},
}

// StudyWeekdays returns the set of weekdays designated for studying at the
// given weekly frequency. A frequency of 7, or any value outside the table,
// selects every day of the week.
func StudyWeekdays(frequencyPerWeek int) map[time.Weekday]bool {
	days, ok := studyWeekdaysByFrequency[frequencyPerWeek]
	if !ok {
		days = []time.Weekday{
			time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
			time.Thursday, time.Friday, time.Saturday,
		}
	}
	set := make(map[time.Weekday]bool, len(days))
	for _, day := range days {
		set[day] = true
	}
	return set
}

// datesBetween enumerates every calendar date from start to end, both
// inclusive. The caller guarantees start <= end.
func datesBetween(start, end time.Time) []time.Time {
	start = Date(start)
	end = Date(end)

	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// BuildTasks produces the full daily task schedule for a new plan. It runs
// exactly once, at plan creation; later progress mutates the stored tasks
// rather than regenerating them.
//
// Pages are distributed so that every study day receives either base or
// base+1 pages and the sum over all study days equals totalPages exactly.
// The extra page goes to the first remainder study days in chronological
// order, counted by study days seen, not by calendar position.
func BuildTasks(start, end time.Time, totalPages, frequencyPerWeek int) []DailyTask {
	studyDays := StudyWeekdays(frequencyPerWeek)
	dates := datesBetween(start, end)

	studyDaysCount := 0
	for _, date := range dates {
		if studyDays[date.Weekday()] {
			studyDaysCount++
		}
	}
	if studyDaysCount == 0 {
		// Ranges shorter than a week can miss every study weekday.
		studyDaysCount = 1
	}

	base := totalPages / studyDaysCount
	remainder := totalPages % studyDaysCount

	tasks := make([]DailyTask, 0, len(dates))
	studyDaysSeen := 0
	for _, date := range dates {
		isStudyDay := studyDays[date.Weekday()]
		pages := 0
		if isStudyDay {
			pages = base
			if studyDaysSeen < remainder {
				pages++
			}
			studyDaysSeen++
		}
		tasks = append(tasks, DailyTask{
			Date:        date,
			PagesToRead: pages,
			IsRestDay:   !isStudyDay,
		})
	}
	return tasks
}
