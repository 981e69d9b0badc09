package handler

import (
	"log/slog"
	"net/http"

	"github.com/dukerupert/choreboard/internal/service"
	"github.com/dukerupert/choreboard/internal/websocket"
)

type AssignmentHandler struct {
	base
}

func NewAssignmentHandler(svc *service.Service, hub websocket.Broadcaster, logger *slog.Logger) *AssignmentHandler {
	return &AssignmentHandler{base{svc: svc, hub: hub, logger: logger}}
}

type assignmentRequest struct {
	TaskID int64 `json:"task_id"`
	UserID int64 `json:"user_id"`
}

func (h *AssignmentHandler) List(w http.ResponseWriter, r *http.Request) {
	assignments, err := h.svc.ListAssignments(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, assignments)
}

func (h *AssignmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req assignmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.create(w, r, req.TaskID, req.UserID)
}

func (h *AssignmentHandler) create(w http.ResponseWriter, r *http.Request, taskID, userID int64) {
	a, err := h.svc.CreateAssignment(r.Context(), taskID, userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.broadcast(websocket.EntityAssignment, websocket.ActionCreated, a.ID, map[string]any{"task_id": a.TaskID})
	writeJSON(w, http.StatusCreated, a)
}

func (h *AssignmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteAssignment(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.broadcast(websocket.EntityAssignment, websocket.ActionDeleted, id, nil)
	w.WriteHeader(http.StatusNoContent)
}

// ListForTask serves GET /api/tasks/{id}/assignments.
func (h *AssignmentHandler) ListForTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	assignments, err := h.svc.ListTaskAssignments(r.Context(), taskID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, assignments)
}

// CreateForTask serves POST /api/tasks/{id}/assignments with body {"user_id": n}.
func (h *AssignmentHandler) CreateForTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req assignmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.create(w, r, taskID, req.UserID)
}

// DeleteForTask serves DELETE /api/tasks/{id}/assignments/{assignment_id}.
func (h *AssignmentHandler) DeleteForTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	assignmentID, ok := pathID(w, r, "assignment_id")
	if !ok {
		return
	}
	if err := h.svc.DeleteTaskAssignment(r.Context(), taskID, assignmentID); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.broadcast(websocket.EntityAssignment, websocket.ActionDeleted, assignmentID, map[string]any{"task_id": taskID})
	w.WriteHeader(http.StatusNoContent)
}
