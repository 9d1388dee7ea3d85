package study_plan

import (
	"testing"
	"time"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestStudyWeekdays(t *testing.T) {
	tests := []struct {
		name      string
		frequency int
		want      []time.Weekday
	}{
		{"once a week is Saturday only", 1, []time.Weekday{time.Saturday}},
		{"twice a week is Tuesday and Thursday", 2, []time.Weekday{time.Tuesday, time.Thursday}},
		{"three times is Mon/Wed/Fri", 3, []time.Weekday{time.Monday, time.Wednesday, time.Friday}},
		{"four times adds Sunday", 4, []time.Weekday{time.Sunday, time.Monday, time.Wednesday, time.Friday}},
		{"five times is weekdays", 5, []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}},
		{"six times is all but Sunday", 6, []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday}},
		{"seven times is every day", 7, []time.Weekday{time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday}},
		{"out of range falls back to every day", 0, []time.Weekday{time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday}},
		{"above seven falls back to every day", 9, []time.Weekday{time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := StudyWeekdays(tt.frequency)
			if len(got) != len(tt.want) {
				t.Fatalf("StudyWeekdays(%d) has %d days, want %d", tt.frequency, len(got), len(tt.want))
			}
			for _, day := range tt.want {
				if !got[day] {
					t.Fatalf("StudyWeekdays(%d) is missing %v", tt.frequency, day)
				}
			}
		})
	}
}

func TestDatesBetween(t *testing.T) {
	tests := []struct {
		name      string
		start     time.Time
		end       time.Time
		wantCount int
	}{
		{"single day", date(2025, 1, 6), date(2025, 1, 6), 1},
		{"one week", date(2025, 1, 6), date(2025, 1, 12), 7},
		{"month boundary", date(2025, 1, 30), date(2025, 2, 2), 4},
		{"year boundary", date(2025, 12, 30), date(2026, 1, 2), 4},
		{"leap day included", date(2024, 2, 28), date(2024, 3, 1), 3},
		{"non-leap february", date(2025, 2, 28), date(2025, 3, 1), 2},
		{"full leap year", date(2024, 1, 1), date(2024, 12, 31), 366},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			dates := datesBetween(tt.start, tt.end)
			if len(dates) != tt.wantCount {
				t.Fatalf("datesBetween(%v, %v) has %d dates, want %d", tt.start, tt.end, len(dates), tt.wantCount)
			}
			if !dates[0].Equal(tt.start) {
				t.Errorf("first date = %v, want %v", dates[0], tt.start)
			}
			if !dates[len(dates)-1].Equal(tt.end) {
				t.Errorf("last date = %v, want %v", dates[len(dates)-1], tt.end)
			}
			for i := 1; i < len(dates); i++ {
				if !dates[i].Equal(dates[i-1].AddDate(0, 0, 1)) {
					t.Fatalf("gap or duplicate between %v and %v", dates[i-1], dates[i])
				}
			}
		})
	}
}

func TestBuildTasks_MondayToSundayThreeTimesAWeek(t *testing.T) {
	// 2025-01-06 is a Monday
	tasks := BuildTasks(date(2025, 1, 6), date(2025, 1, 12), 10, 3)

	if len(tasks) != 7 {
		t.Fatalf("got %d tasks, want 7", len(tasks))
	}

	// base=3, remainder=1: first study day (Monday) gets the extra page
	wantPages := map[time.Weekday]int{
		time.Monday:    4,
		time.Wednesday: 3,
		time.Friday:    3,
	}
	for _, task := range tasks {
		want, isStudyDay := wantPages[task.Date.Weekday()]
		if isStudyDay {
			if task.IsRestDay {
				t.Errorf("%v flagged as rest day, want study day", task.Date)
			}
			if task.PagesToRead != want {
				t.Errorf("%v has %d pages, want %d", task.Date, task.PagesToRead, want)
			}
		} else {
			if !task.IsRestDay {
				t.Errorf("%v flagged as study day, want rest day", task.Date)
			}
			if task.PagesToRead != 0 {
				t.Errorf("rest day %v has %d pages, want 0", task.Date, task.PagesToRead)
			}
		}
	}
}

func TestBuildTasks_PageConservation(t *testing.T) {
	tests := []struct {
		name       string
		start      time.Time
		end        time.Time
		totalPages int
		frequency  int
	}{
		{"one week daily", date(2025, 1, 6), date(2025, 1, 12), 100, 7},
		{"one week remainder", date(2025, 1, 6), date(2025, 1, 12), 10, 3},
		{"one month twice a week", date(2025, 3, 1), date(2025, 3, 31), 250, 2},
		{"across year boundary", date(2025, 12, 1), date(2026, 1, 31), 777, 5},
		{"leap february", date(2024, 2, 1), date(2024, 2, 29), 99, 4},
		{"single saturday", date(2025, 1, 11), date(2025, 1, 11), 42, 1},
		{"fewer pages than study days", date(2025, 1, 1), date(2025, 6, 30), 3, 6},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			tasks := BuildTasks(tt.start, tt.end, tt.totalPages, tt.frequency)

			sum := 0
			minPages, maxPages := -1, -1
			for _, task := range tasks {
				sum += task.PagesToRead
				if task.IsRestDay {
					continue
				}
				if minPages == -1 || task.PagesToRead < minPages {
					minPages = task.PagesToRead
				}
				if task.PagesToRead > maxPages {
					maxPages = task.PagesToRead
				}
			}

			if sum != tt.totalPages {
				t.Errorf("pages sum to %d, want %d", sum, tt.totalPages)
			}
			if maxPages-minPages > 1 {
				t.Errorf("study day pages range from %d to %d, want spread of at most 1", minPages, maxPages)
			}
		})
	}
}

func TestBuildTasks_ExtraPagesGoToEarliestStudyDays(t *testing.T) {
	// Two weeks, Mon/Wed/Fri: 6 study days, 20 pages -> base=3, remainder=2.
	tasks := BuildTasks(date(2025, 1, 6), date(2025, 1, 19), 20, 3)

	var studyPages []int
	for _, task := range tasks {
		if !task.IsRestDay {
			studyPages = append(studyPages, task.PagesToRead)
		}
	}
	want := []int{4, 4, 3, 3, 3, 3}
	if len(studyPages) != len(want) {
		t.Fatalf("got %d study days, want %d", len(studyPages), len(want))
	}
	for i := range want {
		if studyPages[i] != want[i] {
			t.Errorf("study day %d has %d pages, want %d", i, studyPages[i], want[i])
		}
	}
}

func TestBuildTasks_ZeroPages(t *testing.T) {
	tasks := BuildTasks(date(2025, 1, 6), date(2025, 1, 12), 0, 3)

	for _, task := range tasks {
		if task.PagesToRead != 0 {
			t.Errorf("%v has %d pages, want 0", task.Date, task.PagesToRead)
		}
	}
	// Rest-day flags stay driven by the weekday table, independent of the
	// zero page count.
	studyDays := 0
	for _, task := range tasks {
		if !task.IsRestDay {
			studyDays++
		}
	}
	if studyDays != 3 {
		t.Errorf("got %d study days, want 3", studyDays)
	}
}

func TestBuildTasks_RangeWithoutStudyWeekday(t *testing.T) {
	// Monday through Wednesday with frequency 1 (Saturday only): no study
	// days in range, and the divisor fallback must not fault.
	tasks := BuildTasks(date(2025, 1, 6), date(2025, 1, 8), 50, 1)

	if len(tasks) != 3 {
		t.Fatalf("got %d tasks, want 3", len(tasks))
	}
	for _, task := range tasks {
		if !task.IsRestDay {
			t.Errorf("%v flagged as study day, want rest day", task.Date)
		}
		if task.PagesToRead != 0 {
			t.Errorf("%v has %d pages, want 0", task.Date, task.PagesToRead)
		}
	}
}

func TestBuildTasks_RestDayMatchesSelectorForEveryFrequency(t *testing.T) {
	start, end := date(2025, 1, 6), date(2025, 1, 19)
	for frequency := 1; frequency <= 7; frequency++ {
		studyDays := StudyWeekdays(frequency)
		tasks := BuildTasks(start, end, 60, frequency)
		for _, task := range tasks {
			wantRest := !studyDays[task.Date.Weekday()]
			if task.IsRestDay != wantRest {
				t.Errorf("frequency %d: %v isRestDay = %v, want %v",
					frequency, task.Date, task.IsRestDay, wantRest)
			}
		}
	}
}
