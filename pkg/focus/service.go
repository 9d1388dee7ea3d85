package focus

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/studyflow/studyflow/internal/event_bus"
)

var ErrNegativeMinutes = errors.New("minutes must not be negative")

// Session is one completed stretch of focused work. The countdown runs on the
// client; only the completed result is recorded here.
type Session struct {
	PlanId  string
	Date    time.Time
	Minutes int
}

type Service interface {
	CompleteSession(ctx context.Context, session Session) error
}

type ServiceImpl struct {
	eventBus *event_bus.EventBus
}

func NewService(eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{
		eventBus: eventBus,
	}
}

// CompleteSession publishes the session on the event bus. The study-plan
// service subscribes and credits the minutes to the plan, so the session is
// absorbed even when the date matches no scheduled task.
func (s *ServiceImpl) CompleteSession(ctx context.Context, session Session) error {
	if session.Minutes < 0 {
		return ErrNegativeMinutes
	}
	log.Debugf("focus session completed: plan=%s minutes=%d", session.PlanId, session.Minutes)
	return s.eventBus.Publish(event_bus.NewEvent(ctx, "focus.session.completed", event_bus.FocusSessionCompleted{
		PlanId:  session.PlanId,
		Date:    session.Date,
		Minutes: session.Minutes,
	}))
}
