package scheduler

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"dayflow-backend/internal/analytics"
	"dayflow-backend/internal/auth"
	"dayflow-backend/internal/tasks"
)

// SuggestionsHandler serves GET /suggestions. Query params:
// working_hours, max, consider_energy, time_of_day.
func SuggestionsHandler(store *tasks.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		q := r.URL.Query()
		opts := SuggestOptions{
			TimeOfDay: TimeOfDay(q.Get("time_of_day")),
		}
		if raw := q.Get("working_hours"); raw != "" {
			opts.WorkingHours, _ = strconv.Atoi(raw)
		}
		if raw := q.Get("max"); raw != "" {
			opts.MaxSuggestions, _ = strconv.Atoi(raw)
		}
		if q.Get("consider_energy") == "true" {
			opts.ConsiderEnergy = true
		}

		snapshot, err := store.Snapshot(r.Context(), uid)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), 500)
			return
		}

		resp := GenerateSuggestions(snapshot, opts, time.Now())
		if resp.Suggestions == nil {
			resp.Suggestions = []tasks.Task{}
		}

		{
			env := analytics.FromRequest(r)
			env.UserID = uid
			props := map[string]any{
				"suggestion_count": len(resp.Suggestions),
				"total_minutes":    resp.Insights.TotalMinutes,
				"workload":         analytics.MinutesBucket(resp.Insights.TotalMinutes),
				"blocked_count":    resp.Insights.BlockedCount,
			}
			_ = analytics.Log(r.Context(), store.DB, env, analytics.EventSuggestionsGenerated, props, analytics.SourceEventKeyFromRequest(r))
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// OptimizeWeekHandler serves POST /optimize-week:
// {"week_start": "2026-09-07", "preserve_existing": false}
// Preferences come from the user's stored row (config defaults otherwise).
func OptimizeWeekHandler(store *tasks.Store, prefs *PrefStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var body struct {
			WeekStart        string `json:"week_start"` // YYYY-MM-DD
			PreserveExisting bool   `json:"preserve_existing"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", 400)
			return
		}

		weekStart, err := time.Parse("2006-01-02", body.WeekStart)
		if err != nil {
			http.Error(w, "week_start must be YYYY-MM-DD", 400)
			return
		}
		if weekStart.Weekday() != time.Monday {
			http.Error(w, "week_start must be a Monday", 400)
			return
		}

		p, err := prefs.Get(r.Context(), uid)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), 500)
			return
		}

		snapshot, err := store.Snapshot(r.Context(), uid)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), 500)
			return
		}

		resp := OptimizeWeek(snapshot, OptimizeOptions{
			WeekStart:        weekStart,
			Preferences:      p,
			PreserveExisting: body.PreserveExisting,
		}, time.Now())
		if resp.OptimizedSchedule == nil {
			resp.OptimizedSchedule = []ScheduledTask{}
		}
		if resp.Unscheduled == nil {
			resp.Unscheduled = []uuid.UUID{}
		}

		{
			env := analytics.FromRequest(r)
			env.UserID = uid
			props := map[string]any{
				"week_start":        body.WeekStart,
				"total_scheduled":   resp.Stats.TotalScheduled,
				"unscheduled_count": resp.Stats.UnscheduledCount,
				"blocked_count":     resp.BlockedCount,
			}
			_ = analytics.Log(r.Context(), store.DB, env, analytics.EventWeekOptimized, props, analytics.SourceEventKeyFromRequest(r))
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// ApplyScheduleHandler serves POST /optimize-week/apply. The engine only
// recommends placements; this endpoint is where the caller persists them.
func ApplyScheduleHandler(store *tasks.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var body struct {
			Schedule []ScheduledTask `json:"schedule"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", 400)
			return
		}
		if len(body.Schedule) == 0 {
			http.Error(w, "schedule required", 400)
			return
		}

		applied := 0
		for _, st := range body.Schedule {
			if st.TaskID == uuid.Nil {
				continue
			}
			if err := store.SetScheduledAt(r.Context(), uid, st.TaskID, st.ScheduledAt); err != nil {
				log.Printf("[WARN] apply schedule: task %s skipped: %v", st.TaskID, err)
				continue
			}
			applied++
		}

		{
			env := analytics.FromRequest(r)
			env.UserID = uid
			props := map[string]any{
				"requested": len(body.Schedule),
				"applied":   applied,
			}
			_ = analytics.Log(r.Context(), store.DB, env, analytics.EventScheduleApplied, props, analytics.SourceEventKeyFromRequest(r))
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"applied": applied,
			"total":   len(body.Schedule),
		})
	}
}
