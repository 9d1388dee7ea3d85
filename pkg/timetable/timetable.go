package timetable

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeLayout is the wire format for event start and end times.
const TimeLayout = "15:04"

// FixedEvent is a weekly-recurring time block. User-declared and AI-suggested
// events live in the same list; IsAI only marks the origin.
type FixedEvent struct {
	Id        string
	Title     string
	Color     string
	DayOfWeek int    // 0=Sunday .. 6=Saturday
	StartTime string // "HH:mm"
	EndTime   string // "HH:mm"; "00:00" means end of day
	IsAI      bool
}

// GridSlot is the occupant of one (day, hour) cell.
type GridSlot struct {
	EventId string
	Title   string
	Color   string
	IsAI    bool
}

// Grid is the hour-by-weekday lookup over a week. Each cell holds at most one
// event; overlapping events resolve by last write wins.
type Grid struct {
	slots [7][24]*GridSlot
}

// BuildGrid folds events into the weekly grid in input order. An event covers
// every full hour in [startHour, endHour); an end time of "00:00" counts as
// hour 24 so blocks running to midnight keep their length. When two events
// cover the same cell the later one in the input overwrites the earlier, with
// no conflict error. Events with out-of-range days or unparseable times are
// skipped.
func BuildGrid(events []FixedEvent) Grid {
	var grid Grid
	for _, event := range events {
		if event.DayOfWeek < 0 || event.DayOfWeek > 6 {
			continue
		}
		startHour, err := hourOf(event.StartTime)
		if err != nil {
			continue
		}
		endHour, err := hourOf(event.EndTime)
		if err != nil {
			continue
		}
		if endHour == 0 {
			endHour = 24
		}

		slot := &GridSlot{
			EventId: event.Id,
			Title:   event.Title,
			Color:   event.Color,
			IsAI:    event.IsAI,
		}
		for hour := startHour; hour < endHour && hour < 24; hour++ {
			grid.slots[event.DayOfWeek][hour] = slot
		}
	}
	return grid
}

// Lookup returns the event occupying the given cell, if any.
func (g Grid) Lookup(day int, hour int) (GridSlot, bool) {
	if day < 0 || day > 6 || hour < 0 || hour > 23 {
		return GridSlot{}, false
	}
	slot := g.slots[day][hour]
	if slot == nil {
		return GridSlot{}, false
	}
	return *slot, true
}

// hourOf extracts the integer hour from an "HH:mm" string.
func hourOf(hhmm string) (int, error) {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time format: %s", hhmm)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in: %s", hhmm)
	}
	return hour, nil
}

// minuteOfDay converts "HH:mm" to minutes since midnight, validating the
// format. An end time of "00:00" is reported as minute 1440.
func minuteOfDay(hhmm string, isEnd bool) (int, error) {
	parsed, err := time.Parse(TimeLayout, hhmm)
	if err != nil {
		return 0, fmt.Errorf("invalid time format: %s", hhmm)
	}
	minutes := parsed.Hour()*60 + parsed.Minute()
	if isEnd && minutes == 0 {
		minutes = 24 * 60
	}
	return minutes, nil
}
