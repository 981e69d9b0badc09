package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/choreboard/internal/service"
	"github.com/dukerupert/choreboard/internal/websocket"
)

type PointUsageHandler struct {
	base
}

func NewPointUsageHandler(svc *service.Service, hub websocket.Broadcaster, logger *slog.Logger) *PointUsageHandler {
	return &PointUsageHandler{base{svc: svc, hub: hub, logger: logger}}
}

type pointUsageRequest struct {
	UserID      int64  `json:"user_id"`
	PointsUsed  int    `json:"points_used"`
	Description string `json:"description"`
}

func (h *PointUsageHandler) List(w http.ResponseWriter, r *http.Request) {
	usages, err := h.svc.ListPointUsages(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, usages)
}

func (h *PointUsageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req pointUsageRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	u, err := h.svc.CreatePointUsage(r.Context(), req.UserID, req.PointsUsed, req.Description)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.broadcast(websocket.EntityPointUsage, websocket.ActionCreated, u.ID, map[string]any{"user_id": u.UserID})
	writeJSON(w, http.StatusCreated, u)
}
