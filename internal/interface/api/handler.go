package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"airops-service/internal/domain/entity"
	"airops-service/internal/domain/repository"
	"airops-service/internal/usecase"
	"airops-service/pkg/logger"

	"github.com/go-chi/chi/v5"
)

const defaultLogLimit = 100

// Services are the use cases exposed over HTTP
type Services struct {
	Terminal  *usecase.Terminal
	Flights   *usecase.FlightDirectory
	Bookings  *usecase.BookingReader
	CheckIn   *usecase.CheckInService
	LostFound *usecase.LostFoundService
	Logs      repository.LogRepository
}

// Handler contains HTTP handlers for the API
type Handler struct {
	services Services
	logger   logger.Logger
}

// NewHandler creates a new Handler instance
func NewHandler(services Services, logger logger.Logger) *Handler {
	return &Handler{
		services: services,
		logger:   logger.Named("api-handler"),
	}
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, usecase.ErrPNRNotFound),
		errors.Is(err, usecase.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrInvalidTransition),
		errors.Is(err, repository.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, usecase.ErrValidation),
		errors.Is(err, entity.ErrUnknownCode):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		respondError(w, status, "internal error")
		return
	}
	respondError(w, status, err.Error())
}

func decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.New("invalid request body")
	}
	return nil
}

// GetHealth handles GET /health
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListFlights handles GET /api/v1/flights
func (h *Handler) ListFlights(w http.ResponseWriter, r *http.Request) {
	flights, err := h.services.Flights.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, flights)
}

// GetFlight handles GET /api/v1/flights/{id}
func (h *Handler) GetFlight(w http.ResponseWriter, r *http.Request) {
	flight, err := h.services.Flights.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, flight)
}

// OpenSession handles POST /api/v1/terminal/sessions
func (h *Handler) OpenSession(w http.ResponseWriter, r *http.Request) {
	s := h.services.Terminal.OpenSession()
	respondJSON(w, http.StatusCreated, map[string]interface{}{"id": s.ID, "createdAt": s.CreatedAt})
}

type commandRequest struct {
	Command string `json:"command"`
}

// ExecuteCommand handles POST /api/v1/terminal/sessions/{id}/commands
func (h *Handler) ExecuteCommand(w http.ResponseWriter, r *http.Request) {
	var req commandRequest
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Command) == "" {
		respondError(w, http.StatusBadRequest, "command is required")
		return
	}

	lines, err := h.services.Terminal.Execute(r.Context(), chi.URLParam(r, "id"), req.Command)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string][]string{"lines": lines})
}

// GetTranscript handles GET /api/v1/terminal/sessions/{id}/transcript
func (h *Handler) GetTranscript(w http.ResponseWriter, r *http.Request) {
	s, err := h.services.Terminal.Session(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string][]string{"lines": s.Transcript()})
}

// CloseSession handles DELETE /api/v1/terminal/sessions/{id}
func (h *Handler) CloseSession(w http.ResponseWriter, r *http.Request) {
	if err := h.services.Terminal.CloseSession(chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetBooking handles GET /api/v1/bookings/{pnr}
func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
	pnr := strings.ToUpper(chi.URLParam(r, "pnr"))
	booking, _, err := h.services.Bookings.Get(r.Context(), pnr)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, booking)
}

type checkInRequest struct {
	Bags  int    `json:"bags"`
	Email string `json:"email"`
}

// CheckIn handles POST /api/v1/bookings/{pnr}/check-in
func (h *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req checkInRequest
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.services.CheckIn.CheckIn(r.Context(), chi.URLParam(r, "pnr"), req.Bags, req.Email)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// CreateLostItem handles POST /api/v1/lost-items
func (h *Handler) CreateLostItem(w http.ResponseWriter, r *http.Request) {
	var req usecase.NewItemInput
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.services.LostFound.AddItem(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

// ReportLostBaggage handles POST /api/v1/lost-items/reports
func (h *Handler) ReportLostBaggage(w http.ResponseWriter, r *http.Request) {
	var req usecase.LostBaggageReport
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := h.services.LostFound.ReportLostBaggage(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, items)
}

// ListLostItems handles GET /api/v1/lost-items?status=&frn=&category=&q=
func (h *Handler) ListLostItems(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := entity.LostItemFilter{
		Status:        entity.LostItemStatus(strings.ToUpper(query.Get("status"))),
		FileReference: strings.ToUpper(query.Get("frn")),
		Category:      query.Get("category"),
		Query:         query.Get("q"),
	}

	items, err := h.services.LostFound.List(r.Context(), filter)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if items == nil {
		items = []entity.LostItem{}
	}
	respondJSON(w, http.StatusOK, items)
}

// GetLostItem handles GET /api/v1/lost-items/{id}
func (h *Handler) GetLostItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.services.LostFound.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

// UpdateLostItem handles PATCH /api/v1/lost-items/{id}
func (h *Handler) UpdateLostItem(w http.ResponseWriter, r *http.Request) {
	var req usecase.ItemUpdate
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.services.LostFound.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

// ClaimLostItem handles POST /api/v1/lost-items/{id}/claim
func (h *Handler) ClaimLostItem(w http.ResponseWriter, r *http.Request) {
	var req usecase.ClaimInput
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.services.LostFound.Claim(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

// SuspendLostItem handles POST /api/v1/lost-items/{id}/suspend
func (h *Handler) SuspendLostItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.services.LostFound.Suspend(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

// ArchiveLostItem handles POST /api/v1/lost-items/{id}/archive
func (h *Handler) ArchiveLostItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.services.LostFound.Archive(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

type notifyRequest struct {
	Email string `json:"email"`
}

// NotifyLostItem handles POST /api/v1/lost-items/{id}/notify. A failed send
// is reported in the body, not as an HTTP error.
func (h *Handler) NotifyLostItem(w http.ResponseWriter, r *http.Request) {
	var req notifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.services.LostFound.SendStatusUpdate(r.Context(), chi.URLParam(r, "id"), req.Email)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// GetAuditTrail handles GET /api/v1/lost-items/{id}/audit
func (h *Handler) GetAuditTrail(w http.ResponseWriter, r *http.Request) {
	entries, err := h.services.LostFound.AuditTrail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if entries == nil {
		entries = []entity.LogEntry{}
	}
	respondJSON(w, http.StatusOK, entries)
}

// CloseFile handles POST /api/v1/files/{frn}/close
func (h *Handler) CloseFile(w http.ResponseWriter, r *http.Request) {
	closed, err := h.services.LostFound.CloseFile(r.Context(), chi.URLParam(r, "frn"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if closed == nil {
		closed = []entity.LostItem{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"closed": closed})
}

// ListLogs handles GET /api/v1/logs?limit=
func (h *Handler) ListLogs(w http.ResponseWriter, r *http.Request) {
	limit := defaultLogLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	entries, err := h.services.Logs.List(r.Context(), limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if entries == nil {
		entries = []entity.LogEntry{}
	}
	respondJSON(w, http.StatusOK, entries)
}
