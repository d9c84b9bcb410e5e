// Package router wires the HTTP surface: public engine and capability
// endpoints, admin endpoints behind JWT auth, health and metrics.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/arogyalabs/clinicflow/internal/http/handlers"
	httpmiddleware "github.com/arogyalabs/clinicflow/internal/http/middleware"
	"github.com/arogyalabs/clinicflow/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger *logging.Logger

	AgentHandler      *handlers.AgentHandler
	CapabilityHandler *handlers.CapabilityHandler
	AuditHandler      *handlers.AuditHandler
	StatsHandler      *handlers.StatsHandler

	// AdminAuthSecret signs the admin JWT; audit and stats endpoints
	// return 401 when it is unset.
	AdminAuthSecret string

	MetricsHandler http.Handler

	// AgentRateLimit caps conversational requests per IP and
	// CapabilityRateLimit caps direct capability calls; a zero PerMinute
	// disables the corresponding limiter. Capability calls get a higher
	// ceiling since one agent request fans out into several of them.
	AgentRateLimit      httpmiddleware.Limit
	CapabilityRateLimit httpmiddleware.Limit
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", handlers.Health)

	if cfg.AgentHandler != nil {
		r.With(httpmiddleware.RateLimit(cfg.AgentRateLimit)).
			Post("/v1/agent/requests", cfg.AgentHandler.ProcessRequest)
	}
	if cfg.CapabilityHandler != nil {
		r.Route("/v1/capabilities", func(caps chi.Router) {
			caps.Use(httpmiddleware.RateLimit(cfg.CapabilityRateLimit))
			caps.Post("/search-patient", cfg.CapabilityHandler.SearchPatient)
			caps.Post("/insurance-eligibility", cfg.CapabilityHandler.CheckInsuranceEligibility)
			caps.Post("/slot-search", cfg.CapabilityHandler.FindAvailableSlots)
			caps.Post("/book", cfg.CapabilityHandler.BookAppointment)
		})
	}

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	// Admin endpoints
	r.Group(func(admin chi.Router) {
		admin.Use(httpmiddleware.AdminJWT(cfg.AdminAuthSecret))
		if cfg.AuditHandler != nil {
			admin.Get("/v1/audit", cfg.AuditHandler.List)
		}
		if cfg.StatsHandler != nil {
			admin.Get("/v1/stats", cfg.StatsHandler.Get)
		}
	})

	return r
}
