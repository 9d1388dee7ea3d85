package stats

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/studyflow/studyflow/internal/utils"
	"github.com/studyflow/studyflow/pkg/study_plan"
)

type StatsService interface {
	GetWeeklyReport(ctx context.Context) (WeeklyReport, error)
}

type StatsServiceImpl struct {
	planService study_plan.Service
	clock       utils.Clock
}

func NewStatsService(planService study_plan.Service, clock utils.Clock) *StatsServiceImpl {
	return &StatsServiceImpl{
		planService: planService,
		clock:       clock,
	}
}

// GetWeeklyReport aggregates focused minutes over the trailing seven days
// (today included) across all plans' tasks.
func (s *StatsServiceImpl) GetWeeklyReport(ctx context.Context) (WeeklyReport, error) {
	plans, err := s.planService.ListPlans(ctx)
	if err != nil {
		return WeeklyReport{}, err
	}
	log.Tracef("Building weekly report over %d plans", len(plans))

	today := study_plan.Date(s.clock.Now())
	startDate := today.AddDate(0, 0, -6)

	minutesByDay := make(map[time.Time]int, 7)
	for offset := 0; offset < 7; offset++ {
		minutesByDay[startDate.AddDate(0, 0, offset)] = 0
	}

	planFocus := make([]PlanFocus, 0, len(plans))
	activeSubjects := 0
	for _, plan := range plans {
		weeklyMinutes := 0
		for _, task := range plan.Tasks {
			date := study_plan.Date(task.Date)
			if _, inWindow := minutesByDay[date]; inWindow {
				minutesByDay[date] += task.MinutesSpent
				weeklyMinutes += task.MinutesSpent
			}
		}
		if plan.TotalMinutes > 0 {
			activeSubjects++
		}

		progressPercent := 0
		if plan.TotalPages > 0 {
			progressPercent = plan.CompletedPages * 100 / plan.TotalPages
		}
		planFocus = append(planFocus, PlanFocus{
			PlanId:          plan.Id,
			Subject:         plan.Subject,
			Color:           plan.Color,
			WeeklyMinutes:   weeklyMinutes,
			TotalMinutes:    plan.TotalMinutes,
			ProgressPercent: progressPercent,
		})
	}

	days := make([]DailyFocus, 0, 7)
	weeklyMinutes := 0
	for offset := 0; offset < 7; offset++ {
		date := startDate.AddDate(0, 0, offset)
		days = append(days, DailyFocus{Date: date, Minutes: minutesByDay[date]})
		weeklyMinutes += minutesByDay[date]
	}

	return WeeklyReport{
		StartDate:      startDate,
		EndDate:        today,
		Days:           days,
		WeeklyMinutes:  weeklyMinutes,
		DailyAverage:   weeklyMinutes / 7,
		ActiveSubjects: activeSubjects,
		Plans:          planFocus,
	}, nil
}
