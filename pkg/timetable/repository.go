package timetable

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrEventNotFound = errors.New("event not found")

type Repository interface {
	CreateEvent(ctx context.Context, event FixedEvent) (FixedEvent, error)
	ListEvents(ctx context.Context) ([]FixedEvent, error)
	DeleteEvent(ctx context.Context, eventId string) (bool, error)
	DeleteAllEvents(ctx context.Context) (int, error)
}

type repositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) CreateEvent(ctx context.Context, event FixedEvent) (FixedEvent, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO fixed_event (id, title, color, day_of_week, start_time, end_time, is_ai)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		event.Id, event.Title, event.Color, event.DayOfWeek, event.StartTime, event.EndTime, event.IsAI,
	)
	if err != nil {
		log.Errorf("Error creating fixed event: %v", err)
		return FixedEvent{}, err
	}
	return event, nil
}

// ListEvents returns events in insertion order, which is the order the grid
// resolves overlaps in.
func (r *repositoryImpl) ListEvents(ctx context.Context) ([]FixedEvent, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, title, color, day_of_week, start_time, end_time, is_ai
		 FROM fixed_event
		 ORDER BY seq`,
	)
	if err != nil {
		log.Errorf("Error listing fixed events: %v", err)
		return nil, err
	}
	defer rows.Close()

	var events []FixedEvent
	for rows.Next() {
		var event FixedEvent
		err = rows.Scan(&event.Id, &event.Title, &event.Color, &event.DayOfWeek, &event.StartTime, &event.EndTime, &event.IsAI)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func (r *repositoryImpl) DeleteEvent(ctx context.Context, eventId string) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM fixed_event WHERE id = $1`, eventId)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		log.Errorf("Error deleting fixed event: %v", err)
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *repositoryImpl) DeleteAllEvents(ctx context.Context) (int, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM fixed_event`)
	if err != nil {
		log.Errorf("Error clearing fixed events: %v", err)
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
