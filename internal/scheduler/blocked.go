// Package scheduler holds the pure scheduling core: the dependency
// resolver, the daily suggestion engine and the weekly scheduling engine.
// Everything here operates on in-memory task snapshots and returns new
// result values; persistence stays in the HTTP handlers.
package scheduler

import (
	"github.com/google/uuid"

	"dayflow-backend/internal/tasks"
)

// Resolution names the blocking policy explicitly so the conservative
// default (dangling ids keep a task blocked) is visible at call sites.
type Resolution int

const (
	Eligible Resolution = iota
	Blocked
)

// Resolve classifies a task against the full snapshot. A task with no
// blocked_by entries is always Eligible. Otherwise it is Blocked when at
// least one referenced id is missing from the snapshot or points at a task
// that is not done or cancelled. Missing ids are treated as unsatisfied —
// silently, with no error path.
func Resolve(t tasks.Task, all []tasks.Task) Resolution {
	if len(t.BlockedBy) == 0 {
		return Eligible
	}

	statusByID := make(map[uuid.UUID]tasks.Status, len(all))
	for _, other := range all {
		statusByID[other.ID] = other.Status
	}

	for _, dep := range t.BlockedBy {
		status, found := statusByID[dep]
		if !found || !status.Closed() {
			return Blocked
		}
	}
	return Eligible
}

// IsBlocked is the boolean form of Resolve.
func IsBlocked(t tasks.Task, all []tasks.Task) bool {
	return Resolve(t, all) == Blocked
}
