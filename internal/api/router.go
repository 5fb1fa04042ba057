package api

import (
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/inquestlab/inquest/internal/api/handlers"
	mw "github.com/inquestlab/inquest/internal/api/middleware"
	"github.com/inquestlab/inquest/internal/config"
	"github.com/inquestlab/inquest/internal/domain"
	"github.com/inquestlab/inquest/internal/profile"
	"github.com/inquestlab/inquest/internal/session"
	"github.com/inquestlab/inquest/internal/store"
)

// App holds the router and the session manager for lifecycle management.
type App struct {
	Router    *chi.Mux
	Manager   *session.Manager
	startTime time.Time
	metrics   *mw.MetricsCollector
}

// NewApp wires stores, the session manager, handlers, and middleware into a
// ready router. db may be nil, in which case sessions run fully in-memory.
func NewApp(db *pgxpool.Pool, registry *profile.Registry, logger *zap.Logger) *App {
	manager := session.NewManager(registry, config.DefaultProfile(), logger)

	var turnStore domain.TurnStore
	if db != nil {
		sessionStore := store.NewSessionStore(db)
		ts := store.NewTurnStore(db)
		verdictStore := store.NewVerdictStore(db)
		manager.SetStores(sessionStore, ts, verdictStore)
		turnStore = ts
	}

	sessionHandler := handlers.NewSessionHandler(manager, turnStore)
	profileHandler := handlers.NewProfileHandler(registry)

	r := chi.NewRouter()

	app := &App{
		Router:    r,
		Manager:   manager,
		startTime: time.Now(),
		metrics:   mw.NewMetricsCollector(),
	}

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(app.metrics.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.RateLimit(config.RateLimitRPS(), config.RateLimitBurst()))

	// Health (no auth)
	r.Get("/health", healthHandler(db))

	// Metrics (no auth)
	r.Get("/metrics", app.metricsHandler())

	// Authenticated routes
	r.Route("/v1", func(r chi.Router) {
		r.Use(mw.APIKeyAuth(config.APIKey()))

		r.Get("/profiles", profileHandler.List)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessionHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", sessionHandler.GetByID)
				r.Delete("/", sessionHandler.Delete)
				r.Post("/respond", sessionHandler.Respond)
				r.Post("/run", sessionHandler.RunTest)
				r.Post("/judge", sessionHandler.Judge)
				r.Post("/notes", sessionHandler.AddNote)
				r.Get("/evidence", sessionHandler.Evidence)
				r.Get("/events", sessionHandler.Events)
				r.Get("/turns/{turn}/similar", sessionHandler.SimilarTurns)
			})
		})
	})

	return app
}

func healthHandler(db *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.Ping(r.Context()); err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusServiceUnavailable)
				_ = json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": err.Error()})
				return
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

func (app *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		uptime := time.Since(app.startTime)

		response := map[string]any{
			"uptime_seconds": uptime.Seconds(),
			"uptime_human":   uptime.Round(time.Second).String(),
			"request_count":  app.metrics.Requests.Load(),
			"error_count":    app.metrics.Errors.Load(),
			"turn_count":     app.metrics.Turns.Load(),
			"probe_count":    app.metrics.Probes.Load(),
			"judgment_count": app.metrics.Judgments.Load(),
			"live_sessions":  app.Manager.Count(),
			"goroutines":     runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb":       float64(memStats.Alloc) / 1024 / 1024,
				"total_alloc_mb": float64(memStats.TotalAlloc) / 1024 / 1024,
				"sys_mb":         float64(memStats.Sys) / 1024 / 1024,
				"num_gc":         memStats.NumGC,
			},
			"go_version": runtime.Version(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

// Ensure stores satisfy the domain interfaces at compile time.
var (
	_ domain.SessionStore = (*store.SessionStore)(nil)
	_ domain.TurnStore    = (*store.TurnStore)(nil)
	_ domain.VerdictStore = (*store.VerdictStore)(nil)
)
