package scheduler

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"dayflow-backend/internal/tasks"
)

const (
	daysPerWeek   = 7
	firstSlotHour = 6  // grid starts 06:00
	lastSlotHour  = 22 // last hourly start, day ends 23:00
	slotsPerDay   = lastSlotHour - firstSlotHour + 1
)

type EnergyPreference string

const (
	PreferMorning  EnergyPreference = "morning"
	PreferEvening  EnergyPreference = "evening"
	PreferBalanced EnergyPreference = "balanced"
)

// Preferences are the caller-supplied scheduling preferences. Timezone is
// advisory only; all math uses the wall-clock hours of the slot times.
type Preferences struct {
	WorkingHoursStart string           `json:"working_hours_start"` // "HH:MM:SS"
	WorkingHoursEnd   string           `json:"working_hours_end"`
	EnergyPreference  EnergyPreference `json:"energy_preference"`
	Timezone          string           `json:"timezone"`
}

type OptimizeOptions struct {
	WeekStart        time.Time   `json:"week_start"` // a Monday; validated by the caller
	Preferences      Preferences `json:"preferences"`
	PreserveExisting bool        `json:"preserve_existing"`
}

// ScheduledTask is a pure placement recommendation, not a persisted entity.
type ScheduledTask struct {
	TaskID      uuid.UUID `json:"task_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

type WeekStats struct {
	TotalScheduled     int     `json:"total_scheduled"`
	UnscheduledCount   int     `json:"unscheduled_count"`
	AverageTasksPerDay float64 `json:"average_tasks_per_day"`
}

type OptimizeWeekResponse struct {
	OptimizedSchedule []ScheduledTask `json:"optimized_schedule"`
	Unscheduled       []uuid.UUID     `json:"unscheduled"`
	BlockedCount      int             `json:"blocked_count"`
	Reasoning         string          `json:"reasoning"`
	Stats             WeekStats       `json:"stats"`
}

type slot struct {
	day      int
	start    time.Time
	assigned bool
}

// OptimizeWeek assigns every eligible task to an hourly slot across the
// 7-day window starting at opts.WeekStart, using a single-pass greedy
// best-fit per task in priority order. It never fails for a valid
// snapshot; overflow surfaces in the unscheduled list.
func OptimizeWeek(all []tasks.Task, opts OptimizeOptions, today time.Time) OptimizeWeekResponse {
	all = tasks.NormalizeAll(all)
	day := dateOnly(today)
	weekStart := dateOnly(opts.WeekStart)
	weekEnd := weekStart.AddDate(0, 0, daysPerWeek)

	var schedulable []tasks.Task
	blockedCount := 0
	for _, t := range all {
		if t.Status != tasks.StatusTodo && t.Status != tasks.StatusInProgress {
			continue
		}
		if IsBlocked(t, all) {
			blockedCount++
			continue
		}
		schedulable = append(schedulable, t)
	}

	sort.SliceStable(schedulable, func(i, j int) bool {
		si := weekScore(schedulable[i], day, weekStart, weekEnd)
		sj := weekScore(schedulable[j], day, weekStart, weekEnd)
		if si != sj {
			return si > sj
		}
		if c := compareDue(schedulable[i].DueDate, schedulable[j].DueDate); c != 0 {
			return c < 0
		}
		return compareCreated(schedulable[i].CreatedAt, schedulable[j].CreatedAt)
	})

	grid := makeGrid(weekStart)
	whStart := parseClock(opts.Preferences.WorkingHoursStart, 9*60)
	whEnd := parseClock(opts.Preferences.WorkingHoursEnd, 17*60)
	tasksPerDay := make([]int, daysPerWeek)

	var scheduled []ScheduledTask
	var unscheduled []uuid.UUID

	for _, t := range schedulable {
		best := -1
		bestScore := 0
		// Stable scan: earliest day, earliest hour. A later slot must beat
		// the current best strictly, so equal scores keep the earliest slot.
		for i := range grid {
			if grid[i].assigned {
				continue
			}
			score := slotFitness(t, grid[i], opts.Preferences.EnergyPreference, whStart, whEnd, tasksPerDay[grid[i].day])
			if best == -1 || score > bestScore {
				best = i
				bestScore = score
			}
		}

		if best == -1 {
			unscheduled = append(unscheduled, t.ID)
			continue
		}

		grid[best].assigned = true
		tasksPerDay[grid[best].day]++
		scheduled = append(scheduled, ScheduledTask{TaskID: t.ID, ScheduledAt: grid[best].start})
	}

	stats := WeekStats{
		TotalScheduled:     len(scheduled),
		UnscheduledCount:   len(unscheduled),
		AverageTasksPerDay: float64(len(scheduled)) / daysPerWeek,
	}

	return OptimizeWeekResponse{
		OptimizedSchedule: scheduled,
		Unscheduled:       unscheduled,
		BlockedCount:      blockedCount,
		Reasoning:         buildReasoning(stats, blockedCount, tasksPerDay, weekStart),
		Stats:             stats,
	}
}

// weekScore ranks tasks for placement order: priority base (urgent=50 ..
// low=20) plus a due-date bump — overdue outranks due-this-week, which
// outranks any other due date.
func weekScore(t tasks.Task, day, weekStart, weekEnd time.Time) int {
	score := (3-int(t.Priority))*10 + 20

	if t.DueDate != nil {
		due := dateOnly(*t.DueDate)
		switch {
		case due.Before(day):
			score += 30
		case !due.Before(weekStart) && due.Before(weekEnd):
			score += 15
		default:
			score += 20
		}
	}
	return score
}

func compareCreated(a, b time.Time) bool {
	if a.IsZero() {
		return false
	}
	if b.IsZero() {
		return true
	}
	return a.Before(b)
}

func makeGrid(weekStart time.Time) []slot {
	grid := make([]slot, 0, daysPerWeek*slotsPerDay)
	for d := 0; d < daysPerWeek; d++ {
		dayStart := weekStart.AddDate(0, 0, d)
		for h := firstSlotHour; h <= lastSlotHour; h++ {
			grid = append(grid, slot{day: d, start: dayStart.Add(time.Duration(h) * time.Hour)})
		}
	}
	return grid
}

// slotFitness scores one candidate slot for one task: energy/daypart match,
// a soft working-hours bonus, a per-day load penalty and an early-week bias
// for urgent and high-priority tasks.
func slotFitness(t tasks.Task, s slot, pref EnergyPreference, whStart, whEnd, dayLoad int) int {
	hour := s.start.Hour()
	score := energyFit(t.Energy, hour, pref)

	minute := hour*60 + s.start.Minute()
	if minute >= whStart && minute < whEnd {
		score += 5
	}

	score -= 2 * dayLoad

	if t.Priority <= tasks.PriorityHigh {
		score += (daysPerWeek - s.day) * 3
	}
	return score
}

func energyFit(energy tasks.EnergyLevel, hour int, pref EnergyPreference) int {
	switch energy {
	case tasks.EnergyHigh:
		switch {
		case hour < 12:
			return 10
		case hour < 17:
			return 5
		default:
			return 0
		}
	case tasks.EnergyLow:
		switch {
		case hour >= 17:
			return 10
		case hour >= 12:
			return 5
		default:
			return 0
		}
	default: // medium
		switch {
		case pref == PreferMorning && hour < 12:
			return 8
		case pref == PreferEvening && hour >= 17:
			return 8
		case hour >= 12 && hour < 17:
			return 7
		default:
			return 5
		}
	}
}

// parseClock turns "HH:MM:SS" into minutes since midnight, falling back to
// the given default on malformed input.
func parseClock(s string, fallback int) int {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		return fallback
	}
	return t.Hour()*60 + t.Minute()
}

func buildReasoning(stats WeekStats, blockedCount int, tasksPerDay []int, weekStart time.Time) string {
	if stats.TotalScheduled == 0 {
		if blockedCount > 0 {
			return fmt.Sprintf("No tasks scheduled: all %d candidate task(s) are blocked by incomplete prerequisites.", blockedCount)
		}
		return "No tasks to schedule this week."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Scheduled %d task(s) across the week", stats.TotalScheduled)
	if stats.UnscheduledCount > 0 {
		fmt.Fprintf(&b, "; %d task(s) did not fit and remain unscheduled", stats.UnscheduledCount)
	}
	if blockedCount > 0 {
		fmt.Fprintf(&b, "; %d task(s) skipped as blocked", blockedCount)
	}
	b.WriteString(". ")

	max := 0
	for _, n := range tasksPerDay {
		if n > max {
			max = n
		}
	}
	var busiest []string
	for d, n := range tasksPerDay {
		if n == max {
			busiest = append(busiest, weekStart.AddDate(0, 0, d).Weekday().String())
		}
	}
	fmt.Fprintf(&b, "Busiest day: %s (%d task(s)).", strings.Join(busiest, ", "), max)

	return b.String()
}
