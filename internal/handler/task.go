package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/choreboard/internal/service"
	"github.com/dukerupert/choreboard/internal/websocket"
)

type TaskHandler struct {
	base
}

func NewTaskHandler(svc *service.Service, hub websocket.Broadcaster, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{base{svc: svc, hub: hub, logger: logger}}
}

type taskRequest struct {
	PlaceID   int64  `json:"place_id"`
	Name      string `json:"name"`
	Point     int    `json:"point"`
	CycleDays int    `json:"cycle_days"`
}

func (req taskRequest) input() service.TaskInput {
	return service.TaskInput{
		PlaceID:   req.PlaceID,
		Name:      req.Name,
		Point:     req.Point,
		CycleDays: req.CycleDays,
	}
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.svc.ListTasks(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	t, err := h.svc.GetTask(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	t, err := h.svc.CreateTask(r.Context(), req.input())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.broadcast(websocket.EntityTask, websocket.ActionCreated, t.ID, nil)
	writeJSON(w, http.StatusCreated, t)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req taskRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	t, err := h.svc.UpdateTask(r.Context(), id, req.input())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.broadcast(websocket.EntityTask, websocket.ActionUpdated, id, nil)
	writeJSON(w, http.StatusOK, t)
}

// Delete soft-deletes the task.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteTask(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.broadcast(websocket.EntityTask, websocket.ActionDeleted, id, nil)
	w.WriteHeader(http.StatusNoContent)
}
