package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/choreboard/internal/service"
	"github.com/dukerupert/choreboard/internal/websocket"
)

type BuildingHandler struct {
	base
}

func NewBuildingHandler(svc *service.Service, hub websocket.Broadcaster, logger *slog.Logger) *BuildingHandler {
	return &BuildingHandler{base{svc: svc, hub: hub, logger: logger}}
}

type buildingRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *BuildingHandler) List(w http.ResponseWriter, r *http.Request) {
	buildings, err := h.svc.ListBuildings(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, buildings)
}

func (h *BuildingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	b, err := h.svc.GetBuilding(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *BuildingHandler) Places(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	places, err := h.svc.ListPlacesByBuilding(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, places)
}

func (h *BuildingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req buildingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	b, err := h.svc.CreateBuilding(r.Context(), req.Name, req.Description)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.broadcast(websocket.EntityBuilding, websocket.ActionCreated, b.ID, nil)
	writeJSON(w, http.StatusCreated, b)
}

// Delete removes the building and its places.
func (h *BuildingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteBuilding(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.broadcast(websocket.EntityBuilding, websocket.ActionDeleted, id, nil)
	w.WriteHeader(http.StatusNoContent)
}
