// Package recurrence expands a small subset of RRULE-style recurrence
// strings (FREQ=DAILY|WEEKLY with INTERVAL, COUNT and UNTIL) into concrete
// occurrence start times. The conflict helper consumes it through the
// slots.OccurrenceFunc type and never depends on this package directly.
package recurrence

import (
	"strconv"
	"strings"
	"time"
)

type rule struct {
	freq     string
	interval int
	count    int
	until    time.Time
	hasUntil bool
}

// Occurrences expands rule starting at dtstart into occurrence start times
// that fall within [rangeStart, rangeEnd], at most limit of them.
// A malformed or unsupported rule yields nil: the caller treats that as
// "no occurrences", never as an error.
func Occurrences(raw string, dtstart, rangeStart, rangeEnd time.Time, limit int) []time.Time {
	r, ok := parse(raw)
	if !ok || limit <= 0 {
		return nil
	}

	var step time.Duration
	switch r.freq {
	case "DAILY":
		step = 24 * time.Hour
	case "WEEKLY":
		step = 7 * 24 * time.Hour
	default:
		return nil
	}
	step *= time.Duration(r.interval)

	var out []time.Time
	cursor := dtstart
	for i := 0; ; i++ {
		if r.count > 0 && i >= r.count {
			break
		}
		if r.hasUntil && cursor.After(r.until) {
			break
		}
		if cursor.After(rangeEnd) {
			break
		}
		if !cursor.Before(rangeStart) {
			out = append(out, cursor)
			if len(out) >= limit {
				break
			}
		}
		cursor = cursor.Add(step)
	}
	return out
}

func parse(raw string) (rule, bool) {
	r := rule{interval: 1}
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "RRULE:"))
	if raw == "" {
		return rule{}, false
	}

	for _, part := range strings.Split(raw, ";") {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			return rule{}, false
		}
		key := strings.ToUpper(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])

		switch key {
		case "FREQ":
			r.freq = strings.ToUpper(val)
		case "INTERVAL":
			n, err := strconv.Atoi(val)
			if err != nil || n < 1 {
				return rule{}, false
			}
			r.interval = n
		case "COUNT":
			n, err := strconv.Atoi(val)
			if err != nil || n < 1 {
				return rule{}, false
			}
			r.count = n
		case "UNTIL":
			t, err := parseUntil(val)
			if err != nil {
				return rule{}, false
			}
			r.until = t
			r.hasUntil = true
		default:
			// unsupported keys (BYDAY etc.) are ignored rather than fatal
		}
	}

	if r.freq == "" {
		return rule{}, false
	}
	return r, true
}

func parseUntil(val string) (time.Time, error) {
	for _, layout := range []string{"20060102T150405Z", "20060102", time.RFC3339} {
		if t, err := time.Parse(layout, val); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &time.ParseError{Layout: "20060102T150405Z", Value: val}
}
