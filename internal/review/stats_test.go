package review

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"dayflow-backend/internal/tasks"
)

var (
	weekStart = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC) // Monday
	today     = weekStart.AddDate(0, 0, 4)                  // Friday
)

func TestSummarize(t *testing.T) {
	wedMorning := weekStart.AddDate(0, 0, 2).Add(9 * time.Hour)
	overdueDate := weekStart.AddDate(0, 0, -3)
	dueFriday := weekStart.AddDate(0, 0, 4)

	dep := tasks.Task{ID: uuid.New(), Status: tasks.StatusTodo}
	snapshot := []tasks.Task{
		{ID: uuid.New(), Status: tasks.StatusDone, EstimatedMinutes: 90, ScheduledAt: &wedMorning},
		{ID: uuid.New(), Status: tasks.StatusDone, EstimatedMinutes: 30},
		{ID: uuid.New(), Status: tasks.StatusCancelled},
		{ID: uuid.New(), Status: tasks.StatusTodo, EstimatedMinutes: 60, DueDate: &overdueDate},
		{ID: uuid.New(), Status: tasks.StatusInProgress, DueDate: &dueFriday},
		dep,
		{ID: uuid.New(), Status: tasks.StatusTodo, BlockedBy: []uuid.UUID{dep.ID}},
	}

	s := Summarize(snapshot, weekStart, today)

	if s.TotalTasks != 7 {
		t.Fatalf("expected 7 total tasks, got %d", s.TotalTasks)
	}
	if s.CompletedCount != 2 {
		t.Fatalf("expected 2 completed, got %d", s.CompletedCount)
	}
	if s.CancelledCount != 1 {
		t.Fatalf("expected 1 cancelled, got %d", s.CancelledCount)
	}
	if s.OpenCount != 4 {
		t.Fatalf("expected 4 open, got %d", s.OpenCount)
	}
	if s.BlockedCount != 1 {
		t.Fatalf("expected 1 blocked, got %d", s.BlockedCount)
	}
	if s.OverdueCount != 1 {
		t.Fatalf("expected 1 overdue, got %d", s.OverdueCount)
	}
	if s.DueThisWeek != 1 {
		t.Fatalf("expected 1 due this week, got %d", s.DueThisWeek)
	}
	if s.MinutesCompleted != 120 {
		t.Fatalf("expected 120 minutes completed, got %d", s.MinutesCompleted)
	}
	if s.ScheduledPerDay[2] != 1 {
		t.Fatalf("expected 1 task scheduled on Wednesday, got %d", s.ScheduledPerDay[2])
	}
	if want := 2.0 / 6.0; s.CompletionRate != want {
		t.Fatalf("expected completion rate %.3f, got %.3f", want, s.CompletionRate)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, weekStart, today)

	if s.TotalTasks != 0 || s.CompletionRate != 0 {
		t.Fatalf("expected zeroed summary, got %+v", s)
	}
}
