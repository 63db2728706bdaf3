package review

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"dayflow-backend/internal/ai"
	"dayflow-backend/internal/auth"
	"dayflow-backend/internal/tasks"
)

// WeekHandler serves GET /review/week?week_start=YYYY-MM-DD.
// The numbers are always returned; the narrative is best-effort and
// degrades to empty when the text model is unavailable.
func WeekHandler(store *tasks.Store, client *ai.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		weekStart, err := time.Parse("2006-01-02", r.URL.Query().Get("week_start"))
		if err != nil {
			http.Error(w, "week_start must be YYYY-MM-DD", 400)
			return
		}
		if weekStart.Weekday() != time.Monday {
			http.Error(w, "week_start must be a Monday", 400)
			return
		}

		snapshot, err := store.Snapshot(r.Context(), uid)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), 500)
			return
		}

		summary := Summarize(snapshot, weekStart, time.Now())

		narrative := ""
		if client != nil && client.Configured() {
			b, _ := json.Marshal(summary)
			narrative, err = client.GenerateWeeklyReview(r.Context(), string(b))
			if err != nil {
				log.Printf("[WARN] weekly review text failed: %v", err)
				w.Header().Set("X-AI-Error", "1")
				narrative = ""
			}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"summary":   summary,
			"narrative": narrative,
		})
	}
}
