package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	app_errors "chat-assistant/backend/internal/errors"
	"chat-assistant/backend/internal/model"
)

// Response envelopes. Every JSON body is an object keyed by the resource name.

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type DeleteAllResponse struct {
	Success bool `json:"success"`
	Deleted int  `json:"deleted"`
}

type ChatResponse struct {
	Chat *model.Chat `json:"chat"`
}

type ChatsResponse struct {
	Chats []*model.Chat `json:"chats"`
}

type MessageResponse struct {
	Message *model.Message `json:"message"`
}

type MessagesResponse struct {
	Messages []model.Message `json:"messages"`
}

// respondWithError maps sentinel errors from the service layer to HTTP status
// codes. Unknown errors become a 500 and the detail is only logged.
func respondWithError(w http.ResponseWriter, err error) {
	var statusCode int
	var message string

	switch {
	case errors.Is(err, app_errors.ErrNotFound):
		statusCode = http.StatusNotFound
		message = "Chat not found"
	case errors.Is(err, app_errors.ErrValidation):
		statusCode = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, app_errors.ErrConflict):
		statusCode = http.StatusConflict
		message = "A conflict occurred with the current state of the resource."
	case errors.Is(err, app_errors.ErrPermission):
		statusCode = http.StatusForbidden
		message = "You do not have permission to perform this action."
	default:
		statusCode = http.StatusInternalServerError
		message = "Internal server error"
	}

	if statusCode >= http.StatusInternalServerError {
		slog.Error("Request failed", "status_code", statusCode, "internal_error", err)
	} else {
		slog.Warn("Responding with error", "status_code", statusCode, "client_message", message, "internal_error", err)
	}

	respondWithJSON(w, statusCode, ErrorResponse{Error: message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to marshal JSON response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}
