package recurrence

import (
	"testing"
	"time"
)

var start = time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)

func TestOccurrences_Daily(t *testing.T) {
	got := Occurrences("FREQ=DAILY", start, start, start.AddDate(0, 0, 3), 10)

	if len(got) != 4 {
		t.Fatalf("expected 4 occurrences, got %d", len(got))
	}
	if !got[1].Equal(start.AddDate(0, 0, 1)) {
		t.Fatalf("expected second occurrence next day, got %v", got[1])
	}
}

func TestOccurrences_WeeklyInterval(t *testing.T) {
	got := Occurrences("FREQ=WEEKLY;INTERVAL=2", start, start, start.AddDate(0, 0, 28), 10)

	if len(got) != 3 {
		t.Fatalf("expected 3 occurrences, got %d", len(got))
	}
	if !got[1].Equal(start.AddDate(0, 0, 14)) {
		t.Fatalf("expected 2-week gap, got %v", got[1])
	}
}

func TestOccurrences_CountStops(t *testing.T) {
	got := Occurrences("FREQ=DAILY;COUNT=2", start, start, start.AddDate(0, 0, 30), 10)

	if len(got) != 2 {
		t.Fatalf("expected COUNT to stop expansion at 2, got %d", len(got))
	}
}

func TestOccurrences_UntilStops(t *testing.T) {
	until := start.AddDate(0, 0, 2).Format("20060102T150405Z")
	got := Occurrences("FREQ=DAILY;UNTIL="+until, start, start, start.AddDate(0, 0, 30), 10)

	if len(got) != 3 {
		t.Fatalf("expected 3 occurrences up to UNTIL, got %d", len(got))
	}
}

func TestOccurrences_LimitCaps(t *testing.T) {
	got := Occurrences("FREQ=DAILY", start, start, start.AddDate(0, 0, 365), 10)

	if len(got) != 10 {
		t.Fatalf("expected the limit to cap expansion at 10, got %d", len(got))
	}
}

func TestOccurrences_RangeFilters(t *testing.T) {
	got := Occurrences("FREQ=DAILY", start, start.AddDate(0, 0, 5), start.AddDate(0, 0, 6), 10)

	if len(got) != 2 {
		t.Fatalf("expected 2 occurrences inside the range, got %d", len(got))
	}
	if !got[0].Equal(start.AddDate(0, 0, 5)) {
		t.Fatalf("expected first occurrence at range start, got %v", got[0])
	}
}

func TestOccurrences_MalformedRule(t *testing.T) {
	cases := []string{
		"",
		"FREQ=MONTHLY",       // unsupported frequency
		"FREQ=DAILY;COUNT=x", // bad count
		"INTERVAL=2",         // missing FREQ
		"garbage",
	}
	for _, rule := range cases {
		if got := Occurrences(rule, start, start, start.AddDate(0, 0, 10), 10); got != nil {
			t.Fatalf("rule %q: expected nil, got %v", rule, got)
		}
	}
}

func TestOccurrences_IgnoresUnsupportedKeys(t *testing.T) {
	got := Occurrences("FREQ=WEEKLY;BYDAY=MO", start, start, start.AddDate(0, 0, 7), 10)

	if len(got) != 2 {
		t.Fatalf("expected BYDAY to be ignored, got %d occurrences", len(got))
	}
}
