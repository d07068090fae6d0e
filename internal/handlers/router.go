package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/XavierBriggs/fortuna/services/riskcourt/internal/config"
	"github.com/XavierBriggs/fortuna/services/riskcourt/internal/db"
	"github.com/XavierBriggs/fortuna/services/riskcourt/internal/middleware"
)

// RouterDeps holds everything the router wires into handlers
type RouterDeps struct {
	DB          db.LedgerDB
	Publisher   EventPublisher
	Defaults    config.SizingDefaults
	CORSOrigins []string
	Logger      logrus.FieldLogger
}

// NewRouter builds the HTTP API
func NewRouter(deps RouterDeps) http.Handler {
	handler := NewHandler(deps.DB, deps.Logger)
	oddsHandler := NewOddsHandler(deps.Logger)
	sizingHandler := NewSizingHandler(deps.DB, deps.Publisher, deps.Defaults, deps.Logger)
	pickHandler := NewPickHandler(deps.DB, deps.Publisher, deps.Logger)
	preferencesHandler := NewPreferencesHandler(deps.DB, deps.Defaults, deps.Logger)

	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-User-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Routes
	r.Get("/health", handler.HealthCheck)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Odds math
		r.Post("/odds/convert", oddsHandler.Convert)
		r.Post("/odds/devig", oddsHandler.Devig)
		r.Post("/odds/ev", oddsHandler.ExpectedValue)

		// Sizing
		r.Post("/stake-size", sizingHandler.StakeSize)

		// Ledger
		r.Post("/picks", pickHandler.CreatePick)
		r.Get("/picks", pickHandler.GetPicks)
		r.Get("/picks/summary", pickHandler.GetPickSummary)
		r.Get("/picks/{id}", pickHandler.GetPick)
		r.Post("/picks/{id}/settle", pickHandler.SettlePick)

		// Preferences
		r.Get("/preferences", preferencesHandler.GetPreferences)
		r.Put("/preferences", preferencesHandler.UpdatePreferences)
	})

	return r
}
