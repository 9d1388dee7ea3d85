package timetable

import "testing"

func TestBuildGrid_SingleEventCoversItsHours(t *testing.T) {
	grid := BuildGrid([]FixedEvent{
		{Id: "gym", Title: "Gym", DayOfWeek: 1, StartTime: "09:00", EndTime: "11:00"},
	})

	for _, hour := range []int{9, 10} {
		slot, ok := grid.Lookup(1, hour)
		if !ok {
			t.Fatalf("expected slot at (1, %d)", hour)
		}
		if slot.EventId != "gym" {
			t.Errorf("slot at (1, %d) = %q, want gym", hour, slot.EventId)
		}
	}
	if _, ok := grid.Lookup(1, 8); ok {
		t.Error("hour before the event should be empty")
	}
	if _, ok := grid.Lookup(1, 11); ok {
		t.Error("end hour is exclusive, (1, 11) should be empty")
	}
	if _, ok := grid.Lookup(2, 9); ok {
		t.Error("other days should be empty")
	}
}

func TestBuildGrid_LastWriteWins(t *testing.T) {
	grid := BuildGrid([]FixedEvent{
		{Id: "fixed", Title: "Gym", DayOfWeek: 1, StartTime: "09:00", EndTime: "11:00"},
		{Id: "ai", Title: "Study block", DayOfWeek: 1, StartTime: "10:00", EndTime: "12:00", IsAI: true},
	})

	cases := []struct {
		hour     int
		wantId   string
		wantIsAI bool
	}{
		{9, "fixed", false},
		{10, "ai", true},
		{11, "ai", true},
	}
	for _, c := range cases {
		slot, ok := grid.Lookup(1, c.hour)
		if !ok {
			t.Fatalf("expected slot at (1, %d)", c.hour)
		}
		if slot.EventId != c.wantId || slot.IsAI != c.wantIsAI {
			t.Errorf("slot at (1, %d) = {%s, isAI=%v}, want {%s, isAI=%v}",
				c.hour, slot.EventId, slot.IsAI, c.wantId, c.wantIsAI)
		}
	}
}

func TestBuildGrid_MidnightEndCoversToEndOfDay(t *testing.T) {
	grid := BuildGrid([]FixedEvent{
		{Id: "night", Title: "Night shift", DayOfWeek: 5, StartTime: "22:00", EndTime: "00:00"},
	})

	for _, hour := range []int{22, 23} {
		slot, ok := grid.Lookup(5, hour)
		if !ok || slot.EventId != "night" {
			t.Errorf("expected night shift at (5, %d)", hour)
		}
	}
	if _, ok := grid.Lookup(5, 21); ok {
		t.Error("hour before the event should be empty")
	}
	if _, ok := grid.Lookup(6, 0); ok {
		t.Error("event must not spill into the next day")
	}
}

func TestBuildGrid_SubHourEventStillClaimsItsStartHour(t *testing.T) {
	grid := BuildGrid([]FixedEvent{
		{Id: "standup", Title: "Standup", DayOfWeek: 3, StartTime: "09:15", EndTime: "10:00"},
	})

	if slot, ok := grid.Lookup(3, 9); !ok || slot.EventId != "standup" {
		t.Error("event starting mid-hour should claim its start hour")
	}
	if _, ok := grid.Lookup(3, 10); ok {
		t.Error("(3, 10) should be empty")
	}
}

func TestBuildGrid_SkipsMalformedEvents(t *testing.T) {
	grid := BuildGrid([]FixedEvent{
		{Id: "bad-day", Title: "Bad day", DayOfWeek: 7, StartTime: "09:00", EndTime: "10:00"},
		{Id: "bad-time", Title: "Bad time", DayOfWeek: 1, StartTime: "morning", EndTime: "10:00"},
		{Id: "good", Title: "Good", DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00"},
	})

	slot, ok := grid.Lookup(1, 9)
	if !ok || slot.EventId != "good" {
		t.Fatalf("expected only the well-formed event in the grid, got %+v ok=%v", slot, ok)
	}
	for day := 0; day < 7; day++ {
		for hour := 0; hour < 24; hour++ {
			if day == 1 && hour == 9 {
				continue
			}
			if s, occupied := grid.Lookup(day, hour); occupied {
				t.Errorf("unexpected slot %q at (%d, %d)", s.EventId, day, hour)
			}
		}
	}
}

func TestBuildGrid_EmptyInput(t *testing.T) {
	grid := BuildGrid(nil)
	for day := 0; day < 7; day++ {
		for hour := 0; hour < 24; hour++ {
			if _, ok := grid.Lookup(day, hour); ok {
				t.Fatalf("empty grid has occupant at (%d, %d)", day, hour)
			}
		}
	}
}

func TestGridLookup_OutOfRange(t *testing.T) {
	grid := BuildGrid([]FixedEvent{
		{Id: "gym", Title: "Gym", DayOfWeek: 0, StartTime: "00:00", EndTime: "01:00"},
	})
	for _, c := range []struct{ day, hour int }{
		{-1, 0}, {7, 0}, {0, -1}, {0, 24},
	} {
		if _, ok := grid.Lookup(c.day, c.hour); ok {
			t.Errorf("Lookup(%d, %d) should report no slot", c.day, c.hour)
		}
	}
}
