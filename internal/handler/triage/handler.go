package triage

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/davemont/deskpilot/internal/model/customer"
	triageService "github.com/davemont/deskpilot/internal/service/triage"
)

// Handler exposes the triage pipeline over HTTP.
type Handler struct {
	triageSvc     *triageService.Service
	customerStore customer.Store
	logger        *logrus.Logger
}

// New creates a triage handler.
func New(triageSvc *triageService.Service, customerStore customer.Store, logger *logrus.Logger) *Handler {
	return &Handler{
		triageSvc:     triageSvc,
		customerStore: customerStore,
		logger:        logger,
	}
}

// RegisterRoutes registers the conversation routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/session", h.handleCreateSession)
	r.Post("/messages", h.handleMessage)
	r.Get("/session/{sessionID}/transcript", h.handleTranscript)
	r.Get("/session/{sessionID}/escalations", h.handleEscalations)
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		CustomerID string `json:"customerId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.triageSvc.CreateSession(r.Context(), payload.CustomerID)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, known := h.customerStore.FindByID(payload.CustomerID); !known && payload.CustomerID != "" {
		h.logger.WithField("customer_id", payload.CustomerID).Debug("Session opened for unknown customer")
	}

	respondJSON(w, http.StatusCreated, session)
}

func (h *Handler) handleMessage(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID string `json:"sessionId"`
		Content   string `json:"content"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if payload.SessionID == "" {
		respondError(w, http.StatusBadRequest, "sessionId is required")
		return
	}

	turn, err := h.triageSvc.Process(r.Context(), payload.SessionID, payload.Content)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, triageService.ErrSessionNotFound) {
			status = http.StatusNotFound
		} else if errors.Is(err, triageService.ErrSessionIDRequired) {
			status = http.StatusBadRequest
		}
		respondError(w, status, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, turn)
}

func (h *Handler) handleTranscript(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	transcript, err := h.triageSvc.Transcript(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, transcript)
}

func (h *Handler) handleEscalations(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	log, err := h.triageSvc.Escalations(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, log)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
