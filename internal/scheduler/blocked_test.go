package scheduler

import (
	"testing"

	"github.com/google/uuid"

	"dayflow-backend/internal/tasks"
)

func TestResolve_NoDependencies(t *testing.T) {
	task := tasks.Task{ID: uuid.New(), Status: tasks.StatusTodo}
	if Resolve(task, []tasks.Task{task}) != Eligible {
		t.Fatalf("task without blocked_by must be eligible")
	}
}

func TestResolve_DependencyDone(t *testing.T) {
	b := tasks.Task{ID: uuid.New(), Status: tasks.StatusDone}
	a := tasks.Task{ID: uuid.New(), Status: tasks.StatusTodo, BlockedBy: []uuid.UUID{b.ID}}

	if IsBlocked(a, []tasks.Task{a, b}) {
		t.Fatalf("expected a unblocked when b is done")
	}

	b.Status = tasks.StatusTodo
	if !IsBlocked(a, []tasks.Task{a, b}) {
		t.Fatalf("expected a blocked when b is todo")
	}
}

func TestResolve_CancelledSatisfies(t *testing.T) {
	b := tasks.Task{ID: uuid.New(), Status: tasks.StatusCancelled}
	a := tasks.Task{ID: uuid.New(), Status: tasks.StatusTodo, BlockedBy: []uuid.UUID{b.ID}}

	if IsBlocked(a, []tasks.Task{a, b}) {
		t.Fatalf("cancelled dependency must not block")
	}
}

func TestResolve_DanglingIDStaysBlocked(t *testing.T) {
	a := tasks.Task{ID: uuid.New(), Status: tasks.StatusTodo, BlockedBy: []uuid.UUID{uuid.New()}}

	if Resolve(a, []tasks.Task{a}) != Blocked {
		t.Fatalf("dangling blocked_by id must keep the task blocked")
	}
}

func TestResolve_OneUnsatisfiedOfMany(t *testing.T) {
	done := tasks.Task{ID: uuid.New(), Status: tasks.StatusDone}
	open := tasks.Task{ID: uuid.New(), Status: tasks.StatusInProgress}
	a := tasks.Task{ID: uuid.New(), Status: tasks.StatusTodo, BlockedBy: []uuid.UUID{done.ID, open.ID}}

	if !IsBlocked(a, []tasks.Task{a, done, open}) {
		t.Fatalf("one open dependency must block the task")
	}
}
