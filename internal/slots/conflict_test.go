package slots

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

var day = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

func at(hour, min int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
}

func fixedSlot(startHour, endHour int) ProtectedSlot {
	return ProtectedSlot{
		ID:        uuid.New(),
		Title:     "focus",
		StartTime: at(startHour, 0),
		EndTime:   at(endHour, 0),
	}
}

func TestHasConflict_HalfOpenOverlap(t *testing.T) {
	slot := fixedSlot(10, 11)

	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{"fully inside", at(10, 15), at(10, 45), true},
		{"straddles start", at(9, 30), at(10, 30), true},
		{"straddles end", at(10, 30), at(11, 30), true},
		{"contains slot", at(9, 0), at(12, 0), true},
		{"before, touching", at(9, 0), at(10, 0), false},
		{"after, touching", at(11, 0), at(12, 0), false},
		{"disjoint", at(13, 0), at(14, 0), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := HasConflict(TimeRange{Start: tc.start, End: tc.end}, []ProtectedSlot{slot}, nil)
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestConflicts_ReturnsMatchingSlots(t *testing.T) {
	a := fixedSlot(9, 10)
	b := fixedSlot(14, 15)

	got := Conflicts(TimeRange{Start: at(9, 30), End: at(10, 30)}, []ProtectedSlot{a, b}, nil)

	if len(got) != 1 {
		t.Fatalf("expected 1 conflict, got %d", len(got))
	}
	if got[0].ID != a.ID {
		t.Fatalf("expected slot %s, got %s", a.ID, got[0].ID)
	}
}

func TestHasConflict_RecurringUsesOccurrences(t *testing.T) {
	recurring := ProtectedSlot{
		ID:             uuid.New(),
		Title:          "standup",
		StartTime:      at(9, 0).AddDate(0, 0, -7), // template a week earlier
		EndTime:        at(9, 30).AddDate(0, 0, -7),
		IsRecurring:    true,
		RecurrenceRule: "FREQ=WEEKLY",
	}

	occ := func(rule string, dtstart, rangeStart, rangeEnd time.Time, limit int) []time.Time {
		return []time.Time{at(9, 0)} // one occurrence on the queried day
	}

	if !HasConflict(TimeRange{Start: at(9, 15), End: at(10, 0)}, []ProtectedSlot{recurring}, occ) {
		t.Fatalf("expected conflict with expanded occurrence")
	}
	if HasConflict(TimeRange{Start: at(10, 0), End: at(11, 0)}, []ProtectedSlot{recurring}, occ) {
		t.Fatalf("expected no conflict outside the occurrence window")
	}
}

func TestHasConflict_RecurringWithoutExpander(t *testing.T) {
	recurring := ProtectedSlot{
		ID:             uuid.New(),
		StartTime:      at(9, 0),
		EndTime:        at(10, 0),
		IsRecurring:    true,
		RecurrenceRule: "FREQ=DAILY",
	}

	// No expander wired: the recurring slot cannot be checked, so the
	// conservative-silent policy yields no conflict.
	if HasConflict(TimeRange{Start: at(9, 0), End: at(10, 0)}, []ProtectedSlot{recurring}, nil) {
		t.Fatalf("recurring slot without expander must not conflict")
	}
}

func TestFindAvailableSlots_SkipsProtectedTime(t *testing.T) {
	protected := []ProtectedSlot{fixedSlot(10, 11)}

	got := FindAvailableSlots(day, 60, protected, DefaultWorkingWindow(), nil)

	// 30-minute starts 09:00..16:00 = 15 candidates; 09:30, 10:00 and
	// 10:30 collide with the 10:00-11:00 slot.
	if len(got) != 12 {
		t.Fatalf("expected 12 available starts, got %d", len(got))
	}
	if !got[0].Equal(at(9, 0)) {
		t.Fatalf("expected first start 09:00, got %v", got[0])
	}
	for _, s := range got {
		if s.Equal(at(10, 0)) || s.Equal(at(9, 30)) || s.Equal(at(10, 30)) {
			t.Fatalf("start %v collides with protected slot", s)
		}
	}
}

func TestFindAvailableSlots_RespectsWindowEnd(t *testing.T) {
	got := FindAvailableSlots(day, 120, nil, DefaultWorkingWindow(), nil)

	last := got[len(got)-1]
	if !last.Equal(at(15, 0)) {
		t.Fatalf("last 2h start inside a 9-17 window must be 15:00, got %v", last)
	}
}

func TestFindAvailableSlots_ZeroDuration(t *testing.T) {
	if got := FindAvailableSlots(day, 0, nil, DefaultWorkingWindow(), nil); got != nil {
		t.Fatalf("expected nil for non-positive duration, got %v", got)
	}
}
