package slots

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"dayflow-backend/internal/analytics"
	"dayflow-backend/internal/auth"
)

func ListHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		list, err := store.List(r.Context(), uid)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), 500)
			return
		}
		if list == nil {
			list = []ProtectedSlot{}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(list)
	}
}

func CreateHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var body struct {
			Title          string    `json:"title"`
			StartTime      time.Time `json:"start_time"`
			EndTime        time.Time `json:"end_time"`
			IsRecurring    bool      `json:"is_recurring"`
			RecurrenceRule string    `json:"recurrence_rule"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", 400)
			return
		}
		if body.Title == "" {
			http.Error(w, "title required", 400)
			return
		}
		// start < end invariant is enforced here, at the API boundary.
		if !body.StartTime.Before(body.EndTime) {
			http.Error(w, "start_time must be before end_time", 400)
			return
		}

		created, err := store.Create(r.Context(), uid, ProtectedSlot{
			Title:          body.Title,
			StartTime:      body.StartTime,
			EndTime:        body.EndTime,
			IsRecurring:    body.IsRecurring,
			RecurrenceRule: body.RecurrenceRule,
		})
		if err != nil {
			http.Error(w, "db error: "+err.Error(), 500)
			return
		}

		{
			env := analytics.FromRequest(r)
			env.UserID = uid
			props := map[string]any{
				"slot_id":      created.ID,
				"is_recurring": created.IsRecurring,
				"minutes":      int(created.EndTime.Sub(created.StartTime).Minutes()),
			}
			_ = analytics.Log(r.Context(), store.DB, env, analytics.EventSlotCreated, props, analytics.SourceEventKeyFromRequest(r))
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(created)
	}
}

func DeleteHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var body struct {
			SlotID string `json:"slot_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", 400)
			return
		}
		id, err := uuid.Parse(body.SlotID)
		if err != nil {
			http.Error(w, "slot_id required", 400)
			return
		}

		if err := store.Delete(r.Context(), uid, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				http.Error(w, "slot not found", 404)
				return
			}
			http.Error(w, "db error: "+err.Error(), 500)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}
}

// ConflictsHandler checks a candidate range against the user's protected
// slots: POST /slots/conflicts {"start": ..., "end": ...}.
func ConflictsHandler(store *Store, occ OccurrenceFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var body TimeRange
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", 400)
			return
		}
		if !body.Start.Before(body.End) {
			http.Error(w, "start must be before end", 400)
			return
		}

		protected, err := store.List(r.Context(), uid)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), 500)
			return
		}

		conflicts := Conflicts(body, protected, occ)
		if conflicts == nil {
			conflicts = []ProtectedSlot{}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"has_conflict": len(conflicts) > 0,
			"conflicts":    conflicts,
		})
	}
}

// AvailableHandler lists free start times on a date:
// GET /slots/available?date=2026-09-07&duration=60
func AvailableHandler(store *Store, occ OccurrenceFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		date, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", 400)
			return
		}

		duration := 30
		if raw := r.URL.Query().Get("duration"); raw != "" {
			duration, err = strconv.Atoi(raw)
			if err != nil || duration <= 0 {
				http.Error(w, "duration must be positive minutes", 400)
				return
			}
		}

		protected, err := store.List(r.Context(), uid)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), 500)
			return
		}

		available := FindAvailableSlots(date, duration, protected, DefaultWorkingWindow(), occ)
		if available == nil {
			available = []time.Time{}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"date":             date.Format("2006-01-02"),
			"duration_minutes": duration,
			"available":        available,
		})
	}
}
