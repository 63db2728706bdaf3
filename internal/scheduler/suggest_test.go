package scheduler

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"dayflow-backend/internal/tasks"
)

var testToday = time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)

func datePtr(t time.Time) *time.Time { return &t }

func todoTask(priority tasks.Priority, due *time.Time, minutes int) tasks.Task {
	return tasks.Task{
		ID:               uuid.New(),
		Status:           tasks.StatusTodo,
		Priority:         priority,
		DueDate:          due,
		EstimatedMinutes: minutes,
	}
}

func TestGenerateSuggestions_PrefersUrgentDueToday(t *testing.T) {
	urgent := todoTask(tasks.PriorityUrgent, datePtr(testToday), 30)
	lowLong := todoTask(tasks.PriorityLow, nil, 600)

	resp := GenerateSuggestions([]tasks.Task{lowLong, urgent}, SuggestOptions{WorkingHours: 8, MaxSuggestions: 3}, testToday)

	if len(resp.Suggestions) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(resp.Suggestions))
	}
	if resp.Suggestions[0].ID != urgent.ID {
		t.Fatalf("expected urgent task first, got %s", resp.Suggestions[0].ID)
	}
}

func TestGenerateSuggestions_TimeBudget(t *testing.T) {
	var snapshot []tasks.Task
	for i := 0; i < 6; i++ {
		snapshot = append(snapshot, todoTask(tasks.PriorityHigh, nil, 120))
	}

	resp := GenerateSuggestions(snapshot, SuggestOptions{WorkingHours: 4, MaxSuggestions: 10}, testToday)

	total := 0
	for _, s := range resp.Suggestions {
		total += s.EstimatedMinutes
	}
	if total > 4*60 {
		t.Fatalf("total %d min exceeds 4h budget", total)
	}
	if len(resp.Suggestions) != 2 {
		t.Fatalf("expected 2 suggestions in a 4h budget, got %d", len(resp.Suggestions))
	}
}

func TestGenerateSuggestions_GuaranteedNonEmpty(t *testing.T) {
	// A single candidate larger than the whole budget is still returned.
	big := todoTask(tasks.PriorityHigh, nil, 600)

	resp := GenerateSuggestions([]tasks.Task{big}, SuggestOptions{WorkingHours: 8}, testToday)

	if len(resp.Suggestions) != 1 {
		t.Fatalf("expected the over-budget task to be suggested, got %d suggestions", len(resp.Suggestions))
	}
	if resp.Insights.TotalMinutes != 600 {
		t.Fatalf("expected total 600, got %d", resp.Insights.TotalMinutes)
	}
}

func TestGenerateSuggestions_MaxSuggestionsBound(t *testing.T) {
	var snapshot []tasks.Task
	for i := 0; i < 10; i++ {
		snapshot = append(snapshot, todoTask(tasks.PriorityUrgent, nil, 15))
	}

	resp := GenerateSuggestions(snapshot, SuggestOptions{MaxSuggestions: 3}, testToday)

	if len(resp.Suggestions) != 3 {
		t.Fatalf("expected 3 suggestions, got %d", len(resp.Suggestions))
	}
}

func TestGenerateSuggestions_OverdueOutranksDueToday(t *testing.T) {
	overdue := todoTask(tasks.PriorityMedium, datePtr(testToday.AddDate(0, 0, -2)), 60)
	dueToday := todoTask(tasks.PriorityMedium, datePtr(testToday), 60)

	resp := GenerateSuggestions([]tasks.Task{dueToday, overdue}, SuggestOptions{}, testToday)

	if len(resp.Suggestions) < 2 {
		t.Fatalf("expected both tasks suggested, got %d", len(resp.Suggestions))
	}
	if resp.Suggestions[0].ID != overdue.ID {
		t.Fatalf("expected overdue task ranked first")
	}
	if resp.Insights.OverdueCount != 1 {
		t.Fatalf("expected overdue_count 1, got %d", resp.Insights.OverdueCount)
	}
}

func TestGenerateSuggestions_BlockedExcludedAndCounted(t *testing.T) {
	dep := todoTask(tasks.PriorityLow, nil, 30)
	blocked := todoTask(tasks.PriorityUrgent, datePtr(testToday), 30)
	blocked.BlockedBy = []uuid.UUID{dep.ID}
	free := todoTask(tasks.PriorityUrgent, datePtr(testToday), 30)

	resp := GenerateSuggestions([]tasks.Task{dep, blocked, free}, SuggestOptions{}, testToday)

	for _, s := range resp.Suggestions {
		if s.ID == blocked.ID {
			t.Fatalf("blocked task must not be suggested")
		}
	}
	if resp.Insights.BlockedCount != 1 {
		t.Fatalf("expected blocked_count 1, got %d", resp.Insights.BlockedCount)
	}
}

func TestGenerateSuggestions_EnergyReorder(t *testing.T) {
	low := todoTask(tasks.PriorityUrgent, nil, 30)
	low.Energy = tasks.EnergyLow
	high := todoTask(tasks.PriorityUrgent, nil, 30)
	high.Energy = tasks.EnergyHigh

	morning := GenerateSuggestions([]tasks.Task{low, high}, SuggestOptions{ConsiderEnergy: true, TimeOfDay: Morning}, testToday)
	if morning.Suggestions[0].Energy != tasks.EnergyHigh {
		t.Fatalf("morning must front-load high energy, got %s first", morning.Suggestions[0].Energy)
	}

	evening := GenerateSuggestions([]tasks.Task{low, high}, SuggestOptions{ConsiderEnergy: true, TimeOfDay: Evening}, testToday)
	if evening.Suggestions[0].Energy != tasks.EnergyLow {
		t.Fatalf("evening must front-load low energy, got %s first", evening.Suggestions[0].Energy)
	}
}

func TestGenerateSuggestions_EmptyInput(t *testing.T) {
	resp := GenerateSuggestions(nil, SuggestOptions{}, testToday)

	if len(resp.Suggestions) != 0 {
		t.Fatalf("expected no suggestions, got %d", len(resp.Suggestions))
	}
	if resp.Insights.TotalMinutes != 0 || resp.Insights.BlockedCount != 0 {
		t.Fatalf("expected zeroed insights, got %+v", resp.Insights)
	}
}

func TestGenerateSuggestions_Deterministic(t *testing.T) {
	snapshot := []tasks.Task{
		todoTask(tasks.PriorityUrgent, datePtr(testToday), 45),
		todoTask(tasks.PriorityHigh, datePtr(testToday.AddDate(0, 0, -1)), 90),
		todoTask(tasks.PriorityHigh, nil, 20),
		todoTask(tasks.PriorityMedium, datePtr(testToday), 60),
	}

	first := GenerateSuggestions(snapshot, SuggestOptions{}, testToday)
	second := GenerateSuggestions(snapshot, SuggestOptions{}, testToday)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same snapshot must yield identical results")
	}
}
