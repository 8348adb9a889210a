package events_api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ms-admin-dashboard/internal/events"
	"ms-admin-dashboard/internal/logger"
	"ms-admin-dashboard/internal/utils"
)

type Handler struct {
	Service *events.Service
	Logger  *logger.Logger
}

func NewHandler(service *events.Service, log *logger.Logger) *Handler {
	return &Handler{Service: service, Logger: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/events", h.ListEvents)
}

// ListEvents serves the dashboard's event table.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Service.ListEvents(r.Context())
	if err != nil {
		h.Logger.Error("EVENTS", fmt.Sprintf("ListEvents: fetch failed: %v", err))
		utils.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	utils.JSON(w, http.StatusOK, resp)
}
