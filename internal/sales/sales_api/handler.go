package sales_api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"ms-admin-dashboard/internal/logger"
	"ms-admin-dashboard/internal/sales"
	"ms-admin-dashboard/internal/utils"
)

type Handler struct {
	Service *sales.Service
	Logger  *logger.Logger
}

func NewHandler(service *sales.Service, log *logger.Logger) *Handler {
	return &Handler{Service: service, Logger: log}
}

// RegisterRoutes registers the sales routes on a chi router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/events/{eventId}/sales", h.GetEventSales)
}

// GetEventSales serves the hourly ticket-sales series for one event.
func (h *Handler) GetEventSales(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")

	if _, err := uuid.Parse(eventID); err != nil {
		h.Logger.Warn("SALES", fmt.Sprintf("GetEventSales: malformed event id %q", eventID))
		utils.Error(w, http.StatusBadRequest, "invalid event id")
		return
	}

	resp, err := h.Service.GetEventSales(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, sales.ErrEventNotFound) {
			utils.Error(w, http.StatusNotFound, "event not found")
			return
		}
		h.Logger.Error("SALES", fmt.Sprintf("GetEventSales: fetch failed for event %s: %v", eventID, err))
		utils.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	utils.JSON(w, http.StatusOK, resp)
}
