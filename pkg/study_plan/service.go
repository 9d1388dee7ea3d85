package study_plan

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/studyflow/studyflow/internal/event_bus"
	"github.com/studyflow/studyflow/pkg/gemini"
)

var ErrPlanNotFound = fmt.Errorf("study plan not found")
var ErrInvalidDateRange = fmt.Errorf("end date is before start date")
var ErrInvalidTotalPages = fmt.Errorf("total pages must be positive")
var ErrInvalidFrequency = fmt.Errorf("frequency must be between 1 and 7")
var ErrNegativeMinutes = fmt.Errorf("minutes must not be negative")

// StudyAdvisor supplies prose feedback for a new plan. Implementations must
// absorb their own failures and return fallback content; plan creation never
// fails because of the advisor.
type StudyAdvisor interface {
	StudyAdvice(ctx context.Context, req gemini.AdviceRequest) gemini.Advice
}

type Service interface {
	// CreatePlan builds the full task schedule for the plan, fetches advisory
	// text, and stores everything atomically. The schedule is generated
	// exactly once here and never regenerated.
	CreatePlan(ctx context.Context, plan StudyPlan) (StudyPlan, error)
	GetPlan(ctx context.Context, planId string) (StudyPlan, error)
	ListPlans(ctx context.Context) ([]StudyPlan, error)
	DeletePlan(ctx context.Context, planId string) (bool, error)
	// ToggleTask flips completion of the task on the given date. A date with
	// no matching task is a no-op, not an error.
	ToggleTask(ctx context.Context, planId string, date time.Time) (StudyPlan, error)
	// AddMinutes credits focused minutes to the task on the given date and to
	// the plan total. The plan total is incremented even when no task matches
	// the date: minutes logged for a day outside the schedule still count.
	AddMinutes(ctx context.Context, planId string, date time.Time, minutes int) (StudyPlan, error)
}

type ServiceImpl struct {
	repo     Repository
	advisor  StudyAdvisor
	eventBus *event_bus.EventBus
}

func NewService(repo Repository, advisor StudyAdvisor, eventBus *event_bus.EventBus) Service {
	service := &ServiceImpl{repo: repo, advisor: advisor, eventBus: eventBus}
	event_bus.SubscribeTyped[event_bus.FocusSessionCompleted](
		eventBus,
		"focus.session.completed",
		func(e event_bus.EventT[event_bus.FocusSessionCompleted]) error {
			log.Debugf("received focus session completed event: %v", e)
			_, err := service.AddMinutes(e.Context(), e.Data.PlanId, e.Data.Date, e.Data.Minutes)
			if err != nil {
				log.Errorf("failed to credit focus session minutes: %v", err)
				return err
			}
			return nil
		},
	)
	return service
}

func (s *ServiceImpl) CreatePlan(ctx context.Context, plan StudyPlan) (StudyPlan, error) {
	plan.StartDate = Date(plan.StartDate)
	plan.EndDate = Date(plan.EndDate)
	if plan.EndDate.Before(plan.StartDate) {
		return StudyPlan{}, ErrInvalidDateRange
	}
	if plan.TotalPages <= 0 {
		return StudyPlan{}, ErrInvalidTotalPages
	}
	if plan.FrequencyPerWeek < 1 || plan.FrequencyPerWeek > 7 {
		return StudyPlan{}, ErrInvalidFrequency
	}

	plan.Id = uuid.NewString()
	plan.Tasks = BuildTasks(plan.StartDate, plan.EndDate, plan.TotalPages, plan.FrequencyPerWeek)
	plan.CompletedPages = 0
	plan.TotalMinutes = 0

	// The advisor returns fallback content on failure, so this cannot fail
	// the creation.
	advice := s.advisor.StudyAdvice(ctx, gemini.AdviceRequest{
		Subject:    plan.Subject,
		Category:   plan.Category,
		TotalPages: plan.TotalPages,
		StartDate:  plan.StartDate.Format(DateLayout),
		EndDate:    plan.EndDate.Format(DateLayout),
	})
	plan.AiAdvice = fmt.Sprintf("%s - %s\n\n%s", advice.Difficulty, advice.SuggestedPace, advice.Advice)

	created, err := s.repo.CreatePlan(ctx, plan)
	if err != nil {
		return StudyPlan{}, fmt.Errorf("failed to create study plan: %w", err)
	}

	err = s.eventBus.Publish(event_bus.NewEvent(ctx, "study_plan.created", event_bus.StudyPlanCreated{
		PlanId:     created.Id,
		Subject:    created.Subject,
		StartDate:  created.StartDate,
		EndDate:    created.EndDate,
		TotalPages: created.TotalPages,
	}))
	if err != nil {
		log.Errorf("failed to publish study plan created event: %v", err)
	}

	return created, nil
}

func (s *ServiceImpl) GetPlan(ctx context.Context, planId string) (StudyPlan, error) {
	return s.repo.GetPlan(ctx, planId)
}

func (s *ServiceImpl) ListPlans(ctx context.Context) ([]StudyPlan, error) {
	return s.repo.ListPlans(ctx)
}

func (s *ServiceImpl) DeletePlan(ctx context.Context, planId string) (bool, error) {
	deleted, err := s.repo.DeletePlan(ctx, planId)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("plan not deleted, probably because it does not exist (%s)", planId)
	}
	return deleted, nil
}

func (s *ServiceImpl) ToggleTask(ctx context.Context, planId string, date time.Time) (StudyPlan, error) {
	matched, err := s.repo.ToggleTask(ctx, planId, Date(date))
	if err != nil {
		return StudyPlan{}, fmt.Errorf("failed to toggle task: %w", err)
	}
	if !matched {
		log.Debugf("no task on %s for plan %s, toggle ignored", date.Format(DateLayout), planId)
	}
	return s.repo.GetPlan(ctx, planId)
}

func (s *ServiceImpl) AddMinutes(ctx context.Context, planId string, date time.Time, minutes int) (StudyPlan, error) {
	if minutes < 0 {
		return StudyPlan{}, ErrNegativeMinutes
	}

	err := s.repo.WithTransaction(ctx, func(repo Repository) error {
		matched, err := repo.AddTaskMinutes(ctx, planId, Date(date), minutes)
		if err != nil {
			return err
		}
		if !matched {
			// Minutes always count toward the plan total, even when the
			// schedule has no entry for the given day.
			log.Debugf("no task on %s for plan %s, crediting plan total only", date.Format(DateLayout), planId)
		}
		planMatched, err := repo.AddPlanMinutes(ctx, planId, minutes)
		if err != nil {
			return err
		}
		if !planMatched {
			return ErrPlanNotFound
		}
		return nil
	})
	if err != nil {
		return StudyPlan{}, err
	}

	return s.repo.GetPlan(ctx, planId)
}
