package tasks

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"dayflow-backend/internal/analytics"
	"dayflow-backend/internal/auth"
)

type taskBody struct {
	Title            string      `json:"title"`
	Priority         *int        `json:"priority"`
	DueDate          *string     `json:"due_date"` // YYYY-MM-DD
	EstimatedMinutes int         `json:"estimated_time_minutes"`
	Energy           EnergyLevel `json:"energy_level"`
	BlockedBy        []string    `json:"blocked_by"`
}

func (b taskBody) toTask() (Task, error) {
	t := Task{
		Title:            b.Title,
		Status:           StatusTodo,
		Priority:         PriorityMedium,
		EstimatedMinutes: b.EstimatedMinutes,
		Energy:           b.Energy,
	}
	if b.Priority != nil {
		if *b.Priority < int(PriorityUrgent) || *b.Priority > int(PriorityLow) {
			return Task{}, errors.New("priority must be 0..3")
		}
		t.Priority = Priority(*b.Priority)
	}
	if b.DueDate != nil && *b.DueDate != "" {
		d, err := time.Parse("2006-01-02", *b.DueDate)
		if err != nil {
			return Task{}, errors.New("due_date must be YYYY-MM-DD")
		}
		t.DueDate = &d
	}
	for _, raw := range b.BlockedBy {
		id, err := uuid.Parse(raw)
		if err != nil {
			return Task{}, errors.New("blocked_by must be task ids")
		}
		t.BlockedBy = append(t.BlockedBy, id)
	}
	return t, nil
}

func ListHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		ts, err := store.Snapshot(r.Context(), uid)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), 500)
			return
		}
		if ts == nil {
			ts = []Task{}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ts)
	}
}

func CreateHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var body taskBody
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Title == "" {
			http.Error(w, "title required", 400)
			return
		}

		t, err := body.toTask()
		if err != nil {
			http.Error(w, err.Error(), 400)
			return
		}

		created, err := store.Create(r.Context(), uid, t)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), 500)
			return
		}

		{
			env := analytics.FromRequest(r)
			env.UserID = uid
			props := map[string]any{
				"task_id":      created.ID,
				"priority":     int(created.Priority),
				"has_due_date": created.DueDate != nil,
				"estimate_min": created.EstimatedMinutes,
				"energy":       created.Energy,
				"blocked_by_n": len(created.BlockedBy),
			}
			_ = analytics.Log(r.Context(), store.DB, env, analytics.EventTaskCreated, props, analytics.SourceEventKeyFromRequest(r))
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(created)
	}
}

func UpdateHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var body struct {
			TaskID string `json:"task_id"`
			taskBody
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", 400)
			return
		}
		id, err := uuid.Parse(body.TaskID)
		if err != nil {
			http.Error(w, "task_id required", 400)
			return
		}
		if body.Title == "" {
			http.Error(w, "title required", 400)
			return
		}

		t, err := body.toTask()
		if err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		t.ID = id
		t = t.Normalize()

		if err := store.Update(r.Context(), uid, t); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				http.Error(w, "task not found", 404)
				return
			}
			http.Error(w, "db error: "+err.Error(), 500)
			return
		}

		full, err := store.Get(r.Context(), uid, id)
		if err != nil {
			http.Error(w, "fetch error: "+err.Error(), 500)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(full)
	}
}

func SetStatusHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var body struct {
			TaskID string `json:"task_id"`
			Status Status `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", 400)
			return
		}
		id, err := uuid.Parse(body.TaskID)
		if err != nil {
			http.Error(w, "task_id required", 400)
			return
		}
		if !body.Status.Valid() {
			http.Error(w, "invalid status", 400)
			return
		}

		prev, err := store.Get(r.Context(), uid, id)
		if err != nil {
			http.Error(w, "task not found", 404)
			return
		}

		if err := store.SetStatus(r.Context(), uid, id, body.Status); err != nil {
			http.Error(w, "db error: "+err.Error(), 500)
			return
		}

		if prev.Status != StatusDone && body.Status == StatusDone {
			env := analytics.FromRequest(r)
			env.UserID = uid
			props := map[string]any{
				"task_id":                id,
				"priority_at_completion": int(prev.Priority),
				"time_since_created_sec": int(time.Now().UTC().Sub(prev.CreatedAt).Seconds()),
			}
			_ = analytics.Log(r.Context(), store.DB, env, analytics.EventTaskCompleted, props, analytics.SourceEventKeyFromRequest(r))
		}

		full, err := store.Get(r.Context(), uid, id)
		if err != nil {
			http.Error(w, "fetch error: "+err.Error(), 500)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(full)
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
			TaskID string `json:"task_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", 400)
			return
		}
		id, err := uuid.Parse(body.TaskID)
		if err != nil {
			http.Error(w, "task_id required", 400)
			return
		}

		if err := store.Delete(r.Context(), uid, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				http.Error(w, "task not found", 404)
				return
			}
			http.Error(w, "db error: "+err.Error(), 500)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}
}
