package slots

import (
	"time"

	"github.com/google/uuid"
)

// ProtectedSlot is a block of time the scheduler must not double-book:
// focus blocks, standing meetings, gym, etc.
type ProtectedSlot struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	IsRecurring    bool      `json:"is_recurring"`
	RecurrenceRule string    `json:"recurrence_rule,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// TimeRange is a half-open [Start, End) interval.
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// OccurrenceFunc expands a recurrence rule into concrete occurrence start
// times within [rangeStart, rangeEnd], at most limit of them. A malformed
// rule yields an empty list; the conflict helper treats that as "no
// occurrences" rather than an error.
type OccurrenceFunc func(rule string, dtstart, rangeStart, rangeEnd time.Time, limit int) []time.Time
