// Package handler exposes the service layer as a JSON API.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dukerupert/choreboard/internal/service"
	"github.com/dukerupert/choreboard/internal/websocket"
)

// base is shared by every entity handler.
type base struct {
	svc    *service.Service
	hub    websocket.Broadcaster
	logger *slog.Logger
}

func (h *base) broadcast(entity websocket.Entity, action websocket.Action, id int64, extra map[string]any) {
	if h.hub != nil {
		h.hub.Broadcast(websocket.NewMessage(entity, action, id, extra))
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// writeError writes a service error with the status its kind maps to.
// Internal errors are logged with their cause and reported generically.
func (h *base) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var se *service.Error
	if !errors.As(err, &se) {
		se = &service.Error{Kind: service.KindInternal, Message: "internal error", Err: err}
	}

	status := statusFor(se.Kind)
	if status == http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), se.Message, "error", se.Err, "method", r.Method, "path", r.URL.Path)
	}
	writeJSON(w, status, errorResponse{Error: se.Message, Field: se.Field})
}

func statusFor(kind service.Kind) int {
	switch kind {
	case service.KindValidation:
		return http.StatusBadRequest
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindConflict, service.KindInUse:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return false
	}
	return true
}

// pathID parses a numeric path parameter, writing a 400 if it is malformed.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid " + name, Field: name})
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
