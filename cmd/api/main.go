package main

import (
	"fmt"
	"log"
	"net"
	"net/http"

	"github.com/rs/cors"
	"golang.org/x/net/netutil"

	"dayflow-backend/internal/ai"
	"dayflow-backend/internal/auth"
	"dayflow-backend/internal/config"
	"dayflow-backend/internal/db"
	"dayflow-backend/internal/recurrence"
	"dayflow-backend/internal/review"
	"dayflow-backend/internal/scheduler"
	"dayflow-backend/internal/slots"
	"dayflow-backend/internal/tasks"
)

const maxConns = 256

func main() {
	cfg := config.Load()

	database, err := db.Connect(cfg.ConnString())
	if err != nil {
		log.Fatal("failed to connect DB: ", err)
	}
	defer database.Close()

	log.Println("connected to PostgreSQL")

	secret := []byte(cfg.JWTSecret)
	mw := auth.New(secret)

	taskStore := tasks.NewStore(database)
	slotStore := slots.NewStore(database)
	prefStore := scheduler.NewPrefStore(database, cfg.Scheduling)
	aiClient := ai.New(cfg.OpenAIKey, cfg.OpenAIModel)

	// The conflict helper only sees the function type; the concrete
	// expansion lives in internal/recurrence.
	var occ slots.OccurrenceFunc = recurrence.Occurrences

	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// ----- AUTH -----
	mux.HandleFunc("/auth/register", auth.RegisterHandler(database, secret))
	mux.HandleFunc("/auth/login", auth.LoginHandler(database, secret))
	mux.HandleFunc("/auth/me", mw.Wrap(auth.MeHandler(database)))
	mux.HandleFunc("/auth/logout", mw.Wrap(auth.LogoutHandler()))
	mux.HandleFunc("/auth/delete", mw.Wrap(auth.DeleteAccountHandler(database)))

	// ----- TASKS -----
	mux.HandleFunc("/tasks", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			mw.Wrap(tasks.ListHandler(taskStore))(w, r)
		case http.MethodPost:
			mw.Wrap(tasks.CreateHandler(taskStore))(w, r)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/tasks/update", mw.Wrap(tasks.UpdateHandler(taskStore)))
	mux.HandleFunc("/tasks/status", mw.Wrap(tasks.SetStatusHandler(taskStore)))
	mux.HandleFunc("/tasks/delete", mw.Wrap(tasks.DeleteHandler(taskStore)))

	// ----- PROTECTED SLOTS -----
	mux.HandleFunc("/slots", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			mw.Wrap(slots.ListHandler(slotStore))(w, r)
		case http.MethodPost:
			mw.Wrap(slots.CreateHandler(slotStore))(w, r)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/slots/delete", mw.Wrap(slots.DeleteHandler(slotStore)))
	mux.HandleFunc("/slots/conflicts", mw.Wrap(slots.ConflictsHandler(slotStore, occ)))
	mux.HandleFunc("/slots/available", mw.Wrap(slots.AvailableHandler(slotStore, occ)))

	// ----- SCHEDULING ENGINE -----
	mux.HandleFunc("/suggestions", mw.Wrap(scheduler.SuggestionsHandler(taskStore)))
	mux.HandleFunc("/optimize-week", mw.Wrap(scheduler.OptimizeWeekHandler(taskStore, prefStore)))
	mux.HandleFunc("/optimize-week/apply", mw.Wrap(scheduler.ApplyScheduleHandler(taskStore)))

	// ----- PREFERENCES -----
	mux.HandleFunc("/preferences", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			mw.Wrap(scheduler.GetPreferencesHandler(prefStore))(w, r)
		case http.MethodPut, http.MethodPost:
			mw.Wrap(scheduler.PutPreferencesHandler(prefStore))(w, r)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// ----- WEEKLY REVIEW -----
	mux.HandleFunc("/review/week", mw.Wrap(review.WeekHandler(taskStore, aiClient)))

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "Idempotency-Key", "X-Platform", "X-App-Version", "X-Session-Id"},
		AllowCredentials: true,
	})

	handler := c.Handler(mux)

	addr := fmt.Sprintf(":%d", cfg.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal("listen failed: ", err)
	}
	ln = netutil.LimitListener(ln, maxConns)

	log.Println("API server is running on", addr)
	log.Fatal(http.Serve(ln, handler))
}
