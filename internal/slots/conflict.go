package slots

import "time"

// maxOccurrences caps recurrence expansion per conflict query so a
// pathological rule cannot make the check unbounded.
const maxOccurrences = 10

// scanStepMinutes is the candidate-start resolution of FindAvailableSlots.
const scanStepMinutes = 30

// WorkingWindow bounds availability scans to a wall-clock hour range.
type WorkingWindow struct {
	StartHour int
	EndHour   int
}

func DefaultWorkingWindow() WorkingWindow {
	return WorkingWindow{StartHour: 9, EndHour: 17}
}

// HasConflict reports whether the candidate range overlaps any protected
// slot. Recurring slots are expanded via occ across the day span of the
// range; each occurrence keeps the slot's original duration.
func HasConflict(r TimeRange, protected []ProtectedSlot, occ OccurrenceFunc) bool {
	for _, s := range protected {
		if slotConflicts(r, s, occ) {
			return true
		}
	}
	return false
}

// Conflicts returns the protected slots that overlap the candidate range.
func Conflicts(r TimeRange, protected []ProtectedSlot, occ OccurrenceFunc) []ProtectedSlot {
	var out []ProtectedSlot
	for _, s := range protected {
		if slotConflicts(r, s, occ) {
			out = append(out, s)
		}
	}
	return out
}

func slotConflicts(r TimeRange, s ProtectedSlot, occ OccurrenceFunc) bool {
	if !s.IsRecurring || s.RecurrenceRule == "" {
		return overlaps(r.Start, r.End, s.StartTime, s.EndTime)
	}
	if occ == nil {
		return false
	}

	duration := s.EndTime.Sub(s.StartTime)
	starts := occ(s.RecurrenceRule, s.StartTime, dayStart(r.Start), dayEnd(r.End), maxOccurrences)
	for _, start := range starts {
		if overlaps(r.Start, r.End, start, start.Add(duration)) {
			return true
		}
	}
	return false
}

// overlaps tests half-open interval overlap: [aStart,aEnd) vs [bStart,bEnd).
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return bStart.Before(aEnd) && bEnd.After(aStart)
}

// FindAvailableSlots lists candidate start times on the given date at which
// a durationMinutes-long interval fits inside the working window without
// touching any protected slot. Scans at 30-minute resolution.
func FindAvailableSlots(date time.Time, durationMinutes int, protected []ProtectedSlot, window WorkingWindow, occ OccurrenceFunc) []time.Time {
	if durationMinutes <= 0 {
		return nil
	}

	day := dayStart(date)
	windowEnd := day.Add(time.Duration(window.EndHour) * time.Hour)
	duration := time.Duration(durationMinutes) * time.Minute

	var out []time.Time
	for cursor := day.Add(time.Duration(window.StartHour) * time.Hour); cursor.Before(windowEnd); cursor = cursor.Add(scanStepMinutes * time.Minute) {
		end := cursor.Add(duration)
		if end.After(windowEnd) {
			break
		}
		if !HasConflict(TimeRange{Start: cursor, End: end}, protected, occ) {
			out = append(out, cursor)
		}
	}
	return out
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayEnd(t time.Time) time.Time {
	return dayStart(t).Add(24*time.Hour - time.Nanosecond)
}
