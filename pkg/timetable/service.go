package timetable

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/studyflow/studyflow/pkg/gemini"
)

var (
	ErrInvalidDay       = errors.New("day of week must be between 0 and 6")
	ErrInvalidTimeRange = errors.New("start time must be before end time")
	ErrInvalidTime      = errors.New("time must be in HH:mm format")
	ErrEmptyTitle       = errors.New("title must not be empty")
)

// SchedulePlanner turns free-form availability text into proposed weekly
// blocks. Satisfied by gemini.Client.
type SchedulePlanner interface {
	ParseSchedule(ctx context.Context, text string, existing []gemini.ExistingEvent) []gemini.ProposedEvent
}

type Service interface {
	AddEvent(ctx context.Context, event FixedEvent) (FixedEvent, error)
	ListEvents(ctx context.Context) ([]FixedEvent, error)
	DeleteEvent(ctx context.Context, eventId string) error
	ClearAll(ctx context.Context) (int, error)
	GetGrid(ctx context.Context) (Grid, error)
	ScheduleFromText(ctx context.Context, text string) ([]FixedEvent, error)
}

type ServiceImpl struct {
	repository Repository
	planner    SchedulePlanner
}

func NewService(repository Repository, planner SchedulePlanner) *ServiceImpl {
	return &ServiceImpl{
		repository: repository,
		planner:    planner,
	}
}

func (s *ServiceImpl) AddEvent(ctx context.Context, event FixedEvent) (FixedEvent, error) {
	if err := validateEvent(event); err != nil {
		return FixedEvent{}, err
	}
	if event.Id == "" {
		event.Id = uuid.NewString()
	}
	return s.repository.CreateEvent(ctx, event)
}

func (s *ServiceImpl) ListEvents(ctx context.Context) ([]FixedEvent, error) {
	return s.repository.ListEvents(ctx)
}

// DeleteEvent removes an event. The grid is not stored, so freed slots simply
// resolve to whatever remaining events cover them on the next GetGrid.
func (s *ServiceImpl) DeleteEvent(ctx context.Context, eventId string) error {
	deleted, err := s.repository.DeleteEvent(ctx, eventId)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrEventNotFound
	}
	return nil
}

func (s *ServiceImpl) ClearAll(ctx context.Context) (int, error) {
	return s.repository.DeleteAllEvents(ctx)
}

func (s *ServiceImpl) GetGrid(ctx context.Context) (Grid, error) {
	events, err := s.repository.ListEvents(ctx)
	if err != nil {
		return Grid{}, err
	}
	return BuildGrid(events), nil
}

// ScheduleFromText asks the planner for study blocks that fit around the
// current events and stores every proposal as an AI-origin event. A failing
// planner yields an empty proposal list, so the call succeeds with no new
// events rather than erroring.
func (s *ServiceImpl) ScheduleFromText(ctx context.Context, text string) ([]FixedEvent, error) {
	existingEvents, err := s.repository.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	existing := make([]gemini.ExistingEvent, 0, len(existingEvents))
	for _, event := range existingEvents {
		existing = append(existing, gemini.ExistingEvent{
			Title:     event.Title,
			DayOfWeek: event.DayOfWeek,
			StartTime: event.StartTime,
			EndTime:   event.EndTime,
		})
	}

	proposals := s.planner.ParseSchedule(ctx, text, existing)
	var created []FixedEvent
	for _, proposal := range proposals {
		event := FixedEvent{
			Id:        uuid.NewString(),
			Title:     proposal.Title,
			DayOfWeek: proposal.DayOfWeek,
			StartTime: proposal.StartTime,
			EndTime:   proposal.EndTime,
			IsAI:      true,
		}
		if err := validateEvent(event); err != nil {
			log.Warnf("Skipping invalid proposed event %q: %v", proposal.Title, err)
			continue
		}
		stored, err := s.repository.CreateEvent(ctx, event)
		if err != nil {
			return created, err
		}
		created = append(created, stored)
	}
	return created, nil
}

func validateEvent(event FixedEvent) error {
	if strings.TrimSpace(event.Title) == "" {
		return ErrEmptyTitle
	}
	if event.DayOfWeek < 0 || event.DayOfWeek > 6 {
		return ErrInvalidDay
	}
	start, err := minuteOfDay(event.StartTime, false)
	if err != nil {
		return ErrInvalidTime
	}
	end, err := minuteOfDay(event.EndTime, true)
	if err != nil {
		return ErrInvalidTime
	}
	if start >= end {
		return ErrInvalidTimeRange
	}
	return nil
}
