package waitlist_api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"ms-admin-dashboard/internal/logger"
	"ms-admin-dashboard/internal/utils"
	"ms-admin-dashboard/internal/waitlist"
)

type Handler struct {
	Service *waitlist.Service
	Logger  *logger.Logger
}

func NewHandler(service *waitlist.Service, log *logger.Logger) *Handler {
	return &Handler{Service: service, Logger: log}
}

// RegisterRoutes registers the waitlist routes on a chi router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/waitlist", h.GetWaitlist)
}

// GetWaitlist serves both waitlist views. Without an eventId query param
// it returns the grouped leaderboard; with one it returns that event's
// waitlist. A malformed id is rejected before any query runs.
func (h *Handler) GetWaitlist(w http.ResponseWriter, r *http.Request) {
	eventID := r.URL.Query().Get("eventId")

	if eventID == "" {
		resp, err := h.Service.GetGroupedWaitlist(r.Context())
		if err != nil {
			h.Logger.Error("WAITLIST", fmt.Sprintf("GetWaitlist: grouped fetch failed: %v", err))
			utils.Error(w, http.StatusInternalServerError, "internal server error")
			return
		}
		utils.JSON(w, http.StatusOK, resp)
		return
	}

	if _, err := uuid.Parse(eventID); err != nil {
		h.Logger.Warn("WAITLIST", fmt.Sprintf("GetWaitlist: malformed event id %q", eventID))
		utils.Error(w, http.StatusBadRequest, "invalid event id")
		return
	}

	resp, err := h.Service.GetEventWaitlist(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, waitlist.ErrEventNotFound) {
			utils.Error(w, http.StatusNotFound, "event not found")
			return
		}
		h.Logger.Error("WAITLIST", fmt.Sprintf("GetWaitlist: fetch failed for event %s: %v", eventID, err))
		utils.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	utils.JSON(w, http.StatusOK, resp)
}
