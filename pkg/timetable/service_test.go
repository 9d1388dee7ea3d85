package timetable

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyflow/studyflow/pkg/gemini"
)

var (
	timetableRepoStub = NewRepositoryStub()
	plannerStub       = gemini.NewStubClient()
	timetableService  = NewService(timetableRepoStub, plannerStub)
)

func setup(t *testing.T) func() {
	return func() {
		timetableRepoStub.Reset()
		plannerStub.Reset()
	}
}

func TestAddEvent(t *testing.T) {
	t.Run("stores a valid event with a generated id", func(t *testing.T) {
		defer setup(t)()

		event, err := timetableService.AddEvent(context.Background(), FixedEvent{
			Title:     "Gym",
			Color:     "#ff8800",
			DayOfWeek: 1,
			StartTime: "09:00",
			EndTime:   "11:00",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, event.Id)
		assert.False(t, event.IsAI)

		events, err := timetableService.ListEvents(context.Background())
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "Gym", events[0].Title)
	})

	t.Run("accepts midnight as end time", func(t *testing.T) {
		defer setup(t)()

		_, err := timetableService.AddEvent(context.Background(), FixedEvent{
			Title:     "Night shift",
			DayOfWeek: 5,
			StartTime: "22:00",
			EndTime:   "00:00",
		})

		require.NoError(t, err)
	})

	t.Run("rejects invalid events", func(t *testing.T) {
		defer setup(t)()

		cases := []struct {
			name    string
			event   FixedEvent
			wantErr error
		}{
			{"empty title", FixedEvent{Title: "  ", DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00"}, ErrEmptyTitle},
			{"day too large", FixedEvent{Title: "X", DayOfWeek: 7, StartTime: "09:00", EndTime: "10:00"}, ErrInvalidDay},
			{"negative day", FixedEvent{Title: "X", DayOfWeek: -1, StartTime: "09:00", EndTime: "10:00"}, ErrInvalidDay},
			{"malformed time", FixedEvent{Title: "X", DayOfWeek: 1, StartTime: "morning", EndTime: "10:00"}, ErrInvalidTime},
			{"start after end", FixedEvent{Title: "X", DayOfWeek: 1, StartTime: "11:00", EndTime: "10:00"}, ErrInvalidTimeRange},
			{"zero-length", FixedEvent{Title: "X", DayOfWeek: 1, StartTime: "10:00", EndTime: "10:00"}, ErrInvalidTimeRange},
		}
		for _, c := range cases {
			_, err := timetableService.AddEvent(context.Background(), c.event)
			assert.ErrorIs(t, err, c.wantErr, c.name)
		}

		events, err := timetableService.ListEvents(context.Background())
		require.NoError(t, err)
		assert.Empty(t, events)
	})
}

func TestDeleteEvent(t *testing.T) {
	t.Run("frees the event's grid slots", func(t *testing.T) {
		defer setup(t)()

		event, err := timetableService.AddEvent(context.Background(), FixedEvent{
			Title: "Gym", DayOfWeek: 1, StartTime: "09:00", EndTime: "11:00",
		})
		require.NoError(t, err)

		require.NoError(t, timetableService.DeleteEvent(context.Background(), event.Id))

		grid, err := timetableService.GetGrid(context.Background())
		require.NoError(t, err)
		_, occupied := grid.Lookup(1, 9)
		assert.False(t, occupied)
	})

	t.Run("uncovers an earlier overlapping event", func(t *testing.T) {
		defer setup(t)()

		first, err := timetableService.AddEvent(context.Background(), FixedEvent{
			Title: "Gym", DayOfWeek: 1, StartTime: "09:00", EndTime: "11:00",
		})
		require.NoError(t, err)
		second, err := timetableService.AddEvent(context.Background(), FixedEvent{
			Title: "Lecture", DayOfWeek: 1, StartTime: "10:00", EndTime: "12:00",
		})
		require.NoError(t, err)

		require.NoError(t, timetableService.DeleteEvent(context.Background(), second.Id))

		grid, err := timetableService.GetGrid(context.Background())
		require.NoError(t, err)
		slot, occupied := grid.Lookup(1, 10)
		require.True(t, occupied)
		assert.Equal(t, first.Id, slot.EventId)
		_, occupied = grid.Lookup(1, 11)
		assert.False(t, occupied)
	})

	t.Run("returns not found for an unknown id", func(t *testing.T) {
		defer setup(t)()

		err := timetableService.DeleteEvent(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrEventNotFound)
	})
}

func TestClearAll(t *testing.T) {
	defer setup(t)()

	for _, title := range []string{"Gym", "Lecture", "Dinner"} {
		_, err := timetableService.AddEvent(context.Background(), FixedEvent{
			Title: title, DayOfWeek: 2, StartTime: "09:00", EndTime: "10:00",
		})
		require.NoError(t, err)
	}

	deleted, err := timetableService.ClearAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, deleted)

	events, err := timetableService.ListEvents(context.Background())
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestGetGrid_AIEventOverridesFixedEvent(t *testing.T) {
	defer setup(t)()

	_, err := timetableService.AddEvent(context.Background(), FixedEvent{
		Title: "Gym", DayOfWeek: 1, StartTime: "09:00", EndTime: "11:00",
	})
	require.NoError(t, err)

	plannerStub.ScheduleResponse = []gemini.ProposedEvent{
		{Title: "Algebra review", DayOfWeek: 1, StartTime: "10:00", EndTime: "12:00"},
	}
	created, err := timetableService.ScheduleFromText(context.Background(), "free weekday mornings")
	require.NoError(t, err)
	require.Len(t, created, 1)

	grid, err := timetableService.GetGrid(context.Background())
	require.NoError(t, err)

	slot, occupied := grid.Lookup(1, 9)
	require.True(t, occupied)
	assert.Equal(t, "Gym", slot.Title)

	slot, occupied = grid.Lookup(1, 10)
	require.True(t, occupied)
	assert.Equal(t, "Algebra review", slot.Title)
	assert.True(t, slot.IsAI)
}

func TestScheduleFromText(t *testing.T) {
	t.Run("stores proposals as AI events and passes existing events to the planner", func(t *testing.T) {
		defer setup(t)()

		_, err := timetableService.AddEvent(context.Background(), FixedEvent{
			Title: "Work", DayOfWeek: 2, StartTime: "09:00", EndTime: "17:00",
		})
		require.NoError(t, err)

		plannerStub.ScheduleResponse = []gemini.ProposedEvent{
			{Title: "Evening reading", DayOfWeek: 2, StartTime: "19:00", EndTime: "21:00"},
			{Title: "Weekend deep work", DayOfWeek: 6, StartTime: "10:00", EndTime: "13:00"},
		}

		created, err := timetableService.ScheduleFromText(context.Background(), "evenings after work and saturdays")
		require.NoError(t, err)
		require.Len(t, created, 2)
		for _, event := range created {
			assert.True(t, event.IsAI)
			assert.NotEmpty(t, event.Id)
		}

		require.Len(t, plannerStub.ScheduleCalls, 1)
		assert.Equal(t, "evenings after work and saturdays", plannerStub.ScheduleCalls[0])

		events, err := timetableService.ListEvents(context.Background())
		require.NoError(t, err)
		assert.Len(t, events, 3)
	})

	t.Run("failing planner yields no events and no error", func(t *testing.T) {
		defer setup(t)()

		created, err := timetableService.ScheduleFromText(context.Background(), "anytime")
		require.NoError(t, err)
		assert.Empty(t, created)
	})

	t.Run("skips malformed proposals", func(t *testing.T) {
		defer setup(t)()

		plannerStub.ScheduleResponse = []gemini.ProposedEvent{
			{Title: "Bad hours", DayOfWeek: 1, StartTime: "25:00", EndTime: "26:00"},
			{Title: "Good block", DayOfWeek: 1, StartTime: "18:00", EndTime: "20:00"},
		}

		created, err := timetableService.ScheduleFromText(context.Background(), "weekday evenings")
		require.NoError(t, err)
		require.Len(t, created, 1)
		assert.Equal(t, "Good block", created[0].Title)
	})
}
