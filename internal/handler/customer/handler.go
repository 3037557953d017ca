package customer

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/davemont/deskpilot/internal/model/customer"
	"github.com/davemont/deskpilot/pkg/utils"
)

// Handler serves the read-only customer directory.
type Handler struct {
	store customer.Store
}

// New creates a customer handler.
func New(store customer.Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes registers the customer routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/customers", h.handleList)
	r.Get("/customers/{customerID}", h.handleGet)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.store.List())
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerID")

	profile, ok := h.store.FindByID(customerID)
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "customer not found")
		return
	}

	utils.RespondJSON(w, http.StatusOK, profile)
}
