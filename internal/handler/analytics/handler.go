package analytics

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/davemont/deskpilot/internal/service/analytics"
	"github.com/davemont/deskpilot/pkg/utils"
)

// Handler exposes the aggregate counters to the dashboard: a point-in-time
// snapshot and a websocket feed pushing snapshots on an interval.
type Handler struct {
	analyticsSvc *analytics.Service
	interval     time.Duration
	logger       *logrus.Logger
	upgrader     websocket.Upgrader
}

// New creates an analytics handler pushing live updates every interval.
func New(analyticsSvc *analytics.Service, interval time.Duration, logger *logrus.Logger) *Handler {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Handler{
		analyticsSvc: analyticsSvc,
		interval:     interval,
		logger:       logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes registers the analytics routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/analytics", h.handleSnapshot)
	r.Get("/analytics/live", h.handleLive)
}

func (h *Handler) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.analyticsSvc.Snapshot())
}

// handleLive upgrades to a websocket and streams snapshots until the client
// disconnects. The feed is read-only; inbound frames are drained and dropped.
func (h *Handler) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("Failed to upgrade analytics feed connection")
		return
	}
	defer conn.Close()

	// Reader goroutine notices client close; no payloads are expected.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := conn.WriteJSON(h.analyticsSvc.Snapshot()); err != nil {
		return
	}

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if err := conn.WriteJSON(h.analyticsSvc.Snapshot()); err != nil {
				return
			}
		}
	}
}
