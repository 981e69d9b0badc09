package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/choreboard/internal/service"
	"github.com/dukerupert/choreboard/internal/websocket"
)

type PlaceHandler struct {
	base
}

func NewPlaceHandler(svc *service.Service, hub websocket.Broadcaster, logger *slog.Logger) *PlaceHandler {
	return &PlaceHandler{base{svc: svc, hub: hub, logger: logger}}
}

type placeRequest struct {
	BuildingID  int64  `json:"building_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *PlaceHandler) List(w http.ResponseWriter, r *http.Request) {
	places, err := h.svc.ListPlaces(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, places)
}

func (h *PlaceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	p, err := h.svc.GetPlace(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *PlaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req placeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	p, err := h.svc.CreatePlace(r.Context(), req.BuildingID, req.Name, req.Description)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.broadcast(websocket.EntityPlace, websocket.ActionCreated, p.ID, map[string]any{"building_id": p.BuildingID})
	writeJSON(w, http.StatusCreated, p)
}

func (h *PlaceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.DeletePlace(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.broadcast(websocket.EntityPlace, websocket.ActionDeleted, id, nil)
	w.WriteHeader(http.StatusNoContent)
}
