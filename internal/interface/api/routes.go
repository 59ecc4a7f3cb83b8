package api

import (
	"net/http"

	"airops-service/pkg/logger"

	"github.com/go-chi/chi/v5"
)

// Router is the API router
type Router struct {
	handler    *Handler
	middleware *Middleware
	metrics    http.Handler
	logger     logger.Logger
}

// NewRouter creates a new API router. metrics, if set, is mounted at /metrics.
func NewRouter(services Services, metrics http.Handler, logger logger.Logger) *Router {
	return &Router{
		handler:    NewHandler(services, logger),
		middleware: NewMiddleware(logger),
		metrics:    metrics,
		logger:     logger.Named("api-router"),
	}
}

// Routes returns the API routes
func (r *Router) Routes() http.Handler {
	router := chi.NewRouter()

	// Middleware
	router.Use(r.middleware.RequestID)
	router.Use(r.middleware.Logger)
	router.Use(r.middleware.Recoverer)

	router.Get("/health", r.handler.GetHealth)
	if r.metrics != nil {
		router.Handle("/metrics", r.metrics)
	}

	router.Route("/api/v1", func(router chi.Router) {
		// Schedule
		router.Get("/flights", r.handler.ListFlights)
		router.Get("/flights/{id}", r.handler.GetFlight)

		// Reservation terminal
		router.Post("/terminal/sessions", r.handler.OpenSession)
		router.Post("/terminal/sessions/{id}/commands", r.handler.ExecuteCommand)
		router.Get("/terminal/sessions/{id}/transcript", r.handler.GetTranscript)
		router.Delete("/terminal/sessions/{id}", r.handler.CloseSession)

		// Bookings
		router.Get("/bookings/{pnr}", r.handler.GetBooking)
		router.Post("/bookings/{pnr}/check-in", r.handler.CheckIn)

		// Lost & found
		router.Post("/lost-items", r.handler.CreateLostItem)
		router.Post("/lost-items/reports", r.handler.ReportLostBaggage)
		router.Get("/lost-items", r.handler.ListLostItems)
		router.Get("/lost-items/{id}", r.handler.GetLostItem)
		router.Patch("/lost-items/{id}", r.handler.UpdateLostItem)
		router.Post("/lost-items/{id}/claim", r.handler.ClaimLostItem)
		router.Post("/lost-items/{id}/suspend", r.handler.SuspendLostItem)
		router.Post("/lost-items/{id}/archive", r.handler.ArchiveLostItem)
		router.Post("/lost-items/{id}/notify", r.handler.NotifyLostItem)
		router.Get("/lost-items/{id}/audit", r.handler.GetAuditTrail)
		router.Post("/files/{frn}/close", r.handler.CloseFile)

		// Operations log
		router.Get("/logs", r.handler.ListLogs)
	})

	return router
}
