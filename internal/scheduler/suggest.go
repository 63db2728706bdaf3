package scheduler

import (
	"sort"
	"time"

	"dayflow-backend/internal/tasks"
)

type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
)

type SuggestOptions struct {
	WorkingHours   int       `json:"working_hours"`
	MaxSuggestions int       `json:"max_suggestions"`
	ConsiderEnergy bool      `json:"consider_energy"`
	TimeOfDay      TimeOfDay `json:"time_of_day"`
}

func (o SuggestOptions) withDefaults() SuggestOptions {
	if o.WorkingHours <= 0 {
		o.WorkingHours = 8
	}
	if o.MaxSuggestions <= 0 {
		o.MaxSuggestions = 3
	}
	switch o.TimeOfDay {
	case Morning, Afternoon, Evening:
	default:
		o.TimeOfDay = Morning
	}
	return o
}

type Insights struct {
	Workload     string `json:"workload"` // light | balanced | heavy
	TotalMinutes int    `json:"total_minutes"`
	BlockedCount int    `json:"blocked_count"`
	UrgentCount  int    `json:"urgent_count"`
	OverdueCount int    `json:"overdue_count"`
}

type SuggestionsResponse struct {
	Suggestions []tasks.Task `json:"suggestions"`
	Insights    Insights     `json:"insights"`
}

// GenerateSuggestions picks a short, time-boxed list of what to work on
// today. today is passed explicitly so callers and tests control the date.
func GenerateSuggestions(all []tasks.Task, opts SuggestOptions, today time.Time) SuggestionsResponse {
	opts = opts.withDefaults()
	all = tasks.NormalizeAll(all)
	day := dateOnly(today)

	// Candidate filter: todo, unblocked, and either due by today or high
	// priority. Blocked todos are only counted.
	var candidates []tasks.Task
	blockedCount := 0
	for _, t := range all {
		if t.Status != tasks.StatusTodo {
			continue
		}
		if IsBlocked(t, all) {
			blockedCount++
			continue
		}
		dueByToday := t.DueDate != nil && !dateOnly(*t.DueDate).After(day)
		if !dueByToday && t.Priority > tasks.PriorityHigh {
			continue
		}
		candidates = append(candidates, t)
	}

	urgentCount := 0
	overdueCount := 0
	for _, t := range candidates {
		if t.Priority == tasks.PriorityUrgent {
			urgentCount++
		}
		if isOverdue(t, day) {
			overdueCount++
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		si, sj := suggestionScore(candidates[i], day), suggestionScore(candidates[j], day)
		if si != sj {
			return si > sj
		}
		if c := compareDue(candidates[i].DueDate, candidates[j].DueDate); c != 0 {
			return c < 0
		}
		return candidates[i].EstimatedMinutes < candidates[j].EstimatedMinutes
	})

	// Time-boxing: fill the working-hours budget, but never return an empty
	// list when a candidate exists.
	budget := opts.WorkingHours * 60
	var picked []tasks.Task
	total := 0
	for _, t := range candidates {
		if len(picked) >= opts.MaxSuggestions {
			break
		}
		if total+t.EstimatedMinutes <= budget || len(picked) == 0 {
			picked = append(picked, t)
			total += t.EstimatedMinutes
		}
	}

	if opts.ConsiderEnergy {
		picked = reorderByEnergy(picked, opts.TimeOfDay)
	}

	return SuggestionsResponse{
		Suggestions: picked,
		Insights: Insights{
			Workload:     workloadLabel(total),
			TotalMinutes: total,
			BlockedCount: blockedCount,
			UrgentCount:  urgentCount,
			OverdueCount: overdueCount,
		},
	}
}

// suggestionScore: priority base (urgent=40 .. low=10), overdue +25 or
// due-today +15, plus a quick-win bonus favoring short tasks (cap 30).
func suggestionScore(t tasks.Task, day time.Time) int {
	score := (3-int(t.Priority))*10 + 10

	if t.DueDate != nil {
		due := dateOnly(*t.DueDate)
		if due.Before(day) {
			score += 25
		} else if due.Equal(day) {
			score += 15
		}
	}

	quickWin := 30 - t.EstimatedMinutes/4
	if quickWin > 0 {
		score += quickWin
	}
	return score
}

func isOverdue(t tasks.Task, day time.Time) bool {
	return t.DueDate != nil && dateOnly(*t.DueDate).Before(day)
}

// compareDue orders due dates ascending with nil sorting last.
func compareDue(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	da, db := dateOnly(*a), dateOnly(*b)
	switch {
	case da.Before(db):
		return -1
	case da.After(db):
		return 1
	}
	return 0
}

// reorderByEnergy stable-sorts by energy rank: mornings front-load
// high-energy work, evenings front-load low-energy work, afternoons keep
// the score order.
func reorderByEnergy(picked []tasks.Task, tod TimeOfDay) []tasks.Task {
	if tod == Afternoon {
		return picked
	}

	rank := func(e tasks.EnergyLevel) int {
		switch e {
		case tasks.EnergyHigh:
			return 2
		case tasks.EnergyMedium:
			return 1
		default:
			return 0
		}
	}

	out := make([]tasks.Task, len(picked))
	copy(out, picked)
	sort.SliceStable(out, func(i, j int) bool {
		if tod == Morning {
			return rank(out[i].Energy) > rank(out[j].Energy)
		}
		return rank(out[i].Energy) < rank(out[j].Energy)
	})
	return out
}

func workloadLabel(totalMinutes int) string {
	switch {
	case totalMinutes > 480:
		return "heavy"
	case totalMinutes < 240:
		return "light"
	default:
		return "balanced"
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
