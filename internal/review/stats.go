// Package review computes the numeric weekly-review aggregation. The
// narrative text on top of these numbers comes from an external text
// model; only the numbers are produced here.
package review

import (
	"time"

	"dayflow-backend/internal/scheduler"
	"dayflow-backend/internal/tasks"
)

type Summary struct {
	WeekStart string `json:"week_start"`

	TotalTasks     int `json:"total_tasks"`
	CompletedCount int `json:"completed_count"`
	CancelledCount int `json:"cancelled_count"`
	OpenCount      int `json:"open_count"`
	BlockedCount   int `json:"blocked_count"`
	OverdueCount   int `json:"overdue_count"`
	DueThisWeek    int `json:"due_this_week"`

	MinutesCompleted int `json:"minutes_completed"`
	MinutesRemaining int `json:"minutes_remaining"`

	// ScheduledPerDay counts tasks whose scheduled_at falls on each day of
	// the week, Monday first.
	ScheduledPerDay [7]int  `json:"scheduled_per_day"`
	CompletionRate  float64 `json:"completion_rate"`
}

// Summarize aggregates a task snapshot against the week starting at
// weekStart. Pure; today is explicit for deterministic tests.
func Summarize(all []tasks.Task, weekStart, today time.Time) Summary {
	all = tasks.NormalizeAll(all)
	week := dateOnly(weekStart)
	weekEnd := week.AddDate(0, 0, 7)
	day := dateOnly(today)

	s := Summary{
		WeekStart:  week.Format("2006-01-02"),
		TotalTasks: len(all),
	}

	for _, t := range all {
		switch t.Status {
		case tasks.StatusDone:
			s.CompletedCount++
			s.MinutesCompleted += t.EstimatedMinutes
		case tasks.StatusCancelled:
			s.CancelledCount++
		default:
			s.OpenCount++
			s.MinutesRemaining += t.EstimatedMinutes
			if scheduler.IsBlocked(t, all) {
				s.BlockedCount++
			}
			if t.DueDate != nil && dateOnly(*t.DueDate).Before(day) {
				s.OverdueCount++
			}
		}

		if t.DueDate != nil {
			due := dateOnly(*t.DueDate)
			if !due.Before(week) && due.Before(weekEnd) {
				s.DueThisWeek++
			}
		}

		if t.ScheduledAt != nil {
			at := dateOnly(*t.ScheduledAt)
			if !at.Before(week) && at.Before(weekEnd) {
				d := int(at.Sub(week).Hours() / 24)
				if d >= 0 && d < 7 {
					s.ScheduledPerDay[d]++
				}
			}
		}
	}

	if s.CompletedCount+s.OpenCount > 0 {
		s.CompletionRate = float64(s.CompletedCount) / float64(s.CompletedCount+s.OpenCount)
	}
	return s
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
