package scheduler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"regexp"

	"dayflow-backend/internal/auth"
	"dayflow-backend/internal/config"
)

// PrefStore persists per-user scheduling preferences, falling back to the
// configured defaults when a user has no row.
type PrefStore struct {
	DB       *sql.DB
	Defaults config.SchedulingDefaults
}

func NewPrefStore(db *sql.DB, defaults config.SchedulingDefaults) *PrefStore {
	return &PrefStore{DB: db, Defaults: defaults}
}

func (s *PrefStore) defaultPrefs() Preferences {
	return Preferences{
		WorkingHoursStart: s.Defaults.WorkingHoursStart,
		WorkingHoursEnd:   s.Defaults.WorkingHoursEnd,
		EnergyPreference:  EnergyPreference(s.Defaults.EnergyPreference),
		Timezone:          s.Defaults.Timezone,
	}
}

func (s *PrefStore) Get(ctx context.Context, userID int64) (Preferences, error) {
	p := s.defaultPrefs()
	err := s.DB.QueryRowContext(ctx, `
		SELECT working_hours_start, working_hours_end, energy_preference, timezone
		FROM scheduling_preferences
		WHERE user_id = $1
	`, userID).Scan(&p.WorkingHoursStart, &p.WorkingHoursEnd, &p.EnergyPreference, &p.Timezone)
	if err == sql.ErrNoRows {
		return s.defaultPrefs(), nil
	}
	if err != nil {
		return Preferences{}, err
	}
	return p, nil
}

func (s *PrefStore) Put(ctx context.Context, userID int64, p Preferences) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO scheduling_preferences (
			user_id, working_hours_start, working_hours_end, energy_preference, timezone
		)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			working_hours_start = EXCLUDED.working_hours_start,
			working_hours_end   = EXCLUDED.working_hours_end,
			energy_preference   = EXCLUDED.energy_preference,
			timezone            = EXCLUDED.timezone
	`, userID, p.WorkingHoursStart, p.WorkingHoursEnd, p.EnergyPreference, p.Timezone)
	return err
}

var clockRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d:[0-5]\d$`)

func GetPreferencesHandler(store *PrefStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := store.Get(r.Context(), uid)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), 500)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(p)
	}
}

func PutPreferencesHandler(store *PrefStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var p Preferences
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			http.Error(w, "invalid json", 400)
			return
		}
		if !clockRe.MatchString(p.WorkingHoursStart) || !clockRe.MatchString(p.WorkingHoursEnd) {
			http.Error(w, "working hours must be HH:MM:SS", 400)
			return
		}
		switch p.EnergyPreference {
		case PreferMorning, PreferEvening, PreferBalanced:
		default:
			http.Error(w, "energy_preference must be morning, evening or balanced", 400)
			return
		}
		if p.Timezone == "" {
			p.Timezone = "UTC"
		}

		if err := store.Put(r.Context(), uid, p); err != nil {
			http.Error(w, "db error: "+err.Error(), 500)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(p)
	}
}
