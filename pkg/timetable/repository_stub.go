package timetable

import (
	"context"
	"sync"
)

// RepositoryStub is an in-memory Repository for tests.
type RepositoryStub struct {
	mu     sync.Mutex
	events []FixedEvent
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{}
}

func (r *RepositoryStub) CreateEvent(_ context.Context, event FixedEvent) (FixedEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return event, nil
}

func (r *RepositoryStub) ListEvents(_ context.Context) ([]FixedEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	events := make([]FixedEvent, len(r.events))
	copy(events, r.events)
	return events, nil
}

func (r *RepositoryStub) DeleteEvent(_ context.Context, eventId string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, event := range r.events {
		if event.Id == eventId {
			r.events = append(r.events[:i], r.events[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *RepositoryStub) DeleteAllEvents(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := len(r.events)
	r.events = nil
	return count, nil
}

func (r *RepositoryStub) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
