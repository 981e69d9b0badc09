package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dukerupert/choreboard/internal/service"
	"github.com/dukerupert/choreboard/internal/websocket"
)

type TaskLogHandler struct {
	base
}

func NewTaskLogHandler(svc *service.Service, hub websocket.Broadcaster, logger *slog.Logger) *TaskLogHandler {
	return &TaskLogHandler{base{svc: svc, hub: hub, logger: logger}}
}

type taskLogRequest struct {
	TaskID   int64  `json:"task_id"`
	UserID   int64  `json:"user_id"`
	DateDone string `json:"date_done"`
}

func (h *TaskLogHandler) List(w http.ResponseWriter, r *http.Request) {
	logs, err := h.svc.ListTaskLogs(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

func (h *TaskLogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req taskLogRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	dateDone, err := parseDateDone(req.DateDone, h.svc.Location())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: "date_done must be RFC 3339 or YYYY-MM-DD",
			Field: "date_done",
		})
		return
	}

	l, err := h.svc.CreateTaskLog(r.Context(), req.TaskID, req.UserID, dateDone)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.broadcast(websocket.EntityTaskLog, websocket.ActionCreated, l.ID, map[string]any{
		"task_id": l.TaskID,
		"user_id": l.UserID,
	})
	writeJSON(w, http.StatusCreated, l)
}

// parseDateDone accepts an RFC 3339 timestamp or a bare date, which is taken
// as midnight in loc. An empty string yields nil.
func parseDateDone(s string, loc *time.Location) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, s, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
