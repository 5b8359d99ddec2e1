// Package handler exposes the dispatch surface over HTTP: one POST endpoint
// carrying a named action and its payload.
package handler

import (
	"encoding/json"
	"net/http"

	"gourmetgo/internal/dispatch"
	"gourmetgo/internal/model"

	"github.com/rs/zerolog"
)

// apiRequest is the wire envelope for every action.
type apiRequest struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload"`
}

// APIHandler decodes action envelopes and hands them to the dispatcher.
type APIHandler struct {
	dispatcher *dispatch.Dispatcher
	logger     zerolog.Logger
}

// NewAPIHandler creates the API handler.
func NewAPIHandler(dispatcher *dispatch.Dispatcher, logger zerolog.Logger) *APIHandler {
	return &APIHandler{
		dispatcher: dispatcher,
		logger:     logger.With().Str("handler", "api").Logger(),
	}
}

// Dispatch handles POST /api. Business-rule rejections are 200 responses
// with success=false; unknown actions are 400; storage faults are 500 with a
// non-specific message.
func (h *APIHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	var req apiRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, model.Fail("Invalid request body."), h.logger)
		return
	}
	if req.Action == "" {
		writeJSON(w, http.StatusBadRequest, model.Fail("Action not specified."), h.logger)
		return
	}

	cmd, err := dispatch.Decode(req.Action, req.Payload)
	if err != nil {
		h.logger.Warn().Str("action", req.Action).Msg("unrecognised action")
		writeJSON(w, http.StatusBadRequest, model.Fail(err.Error()), h.logger)
		return
	}

	resp, err := h.dispatcher.Dispatch(r.Context(), cmd)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError,
			model.Fail("An internal server error occurred."), h.logger)
		return
	}
	writeJSON(w, http.StatusOK, resp, h.logger)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any, logger zerolog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}
