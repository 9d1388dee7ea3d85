package focus

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyflow/studyflow/internal/event_bus"
)

func TestCompleteSession(t *testing.T) {
	t.Run("publishes the session on the bus", func(t *testing.T) {
		bus := event_bus.NewEventBus()
		service := NewService(bus)

		var received []event_bus.FocusSessionCompleted
		unsubscribe := event_bus.SubscribeTyped(bus, "focus.session.completed",
			func(e event_bus.EventT[event_bus.FocusSessionCompleted]) error {
				received = append(received, e.Data)
				return nil
			})
		defer unsubscribe()

		date := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
		err := service.CompleteSession(context.Background(), Session{
			PlanId:  "plan-1",
			Date:    date,
			Minutes: 25,
		})

		require.NoError(t, err)
		require.Len(t, received, 1)
		assert.Equal(t, "plan-1", received[0].PlanId)
		assert.Equal(t, date, received[0].Date)
		assert.Equal(t, 25, received[0].Minutes)
	})

	t.Run("rejects negative minutes without publishing", func(t *testing.T) {
		bus := event_bus.NewEventBus()
		service := NewService(bus)

		published := 0
		unsubscribe := bus.Subscribe("focus.session.completed", func(event_bus.Event) error {
			published++
			return nil
		})
		defer unsubscribe()

		err := service.CompleteSession(context.Background(), Session{
			PlanId:  "plan-1",
			Date:    time.Now(),
			Minutes: -5,
		})

		assert.ErrorIs(t, err, ErrNegativeMinutes)
		assert.Zero(t, published)
	})

	t.Run("zero-minute session is allowed", func(t *testing.T) {
		bus := event_bus.NewEventBus()
		service := NewService(bus)

		err := service.CompleteSession(context.Background(), Session{
			PlanId:  "plan-1",
			Date:    time.Now(),
			Minutes: 0,
		})
		require.NoError(t, err)
	})
}
