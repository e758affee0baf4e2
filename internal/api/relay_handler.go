package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"chat-assistant/backend/internal/interfaces"
	"chat-assistant/backend/internal/llm"
	"chat-assistant/backend/internal/service"
)

// relayBufferSize is the read size for copying an upstream stream; each read
// is flushed to the client immediately.
const relayBufferSize = 32 << 10

// RelayHandler proxies generation streams from the inference service. The
// stream body is never parsed.
type RelayHandler struct {
	service interfaces.RelayService
}

func NewRelayHandler(svc interfaces.RelayService) *RelayHandler {
	return &RelayHandler{service: svc}
}

// Stream godoc
// @Summary      Stream a chat answer
// @Description  Forwards the question to the inference service and relays its event stream unchanged.
// @Tags         Relay
// @Accept       json
// @Produce      text/event-stream
// @Param        request  body  service.StreamRequest  true  "Generation request"
// @Success      200      {string}  string  "Event stream"
// @Failure      400      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Router       /chat/stream [post]
func (h *RelayHandler) Stream(w http.ResponseWriter, r *http.Request) {
	var req service.StreamRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		respondWithError(w, err)
		return
	}

	resp, err := h.service.Stream(r.Context(), &req)
	if err != nil {
		slog.Error("Failed to open generation stream", "error", err)
		respondWithJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		return
	}
	relayStream(w, resp)
}

// RewriteEmail godoc
// @Summary      Rewrite an email
// @Description  Relays the inference service's email rewriting stream unchanged.
// @Tags         Relay
// @Accept       json
// @Produce      text/event-stream
// @Param        request  body  service.EmailRewriteRequest  true  "Email and tone"
// @Success      200      {string}  string  "Event stream"
// @Failure      400      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Router       /chat/email/rewrite [post]
func (h *RelayHandler) RewriteEmail(w http.ResponseWriter, r *http.Request) {
	var req service.EmailRewriteRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		respondWithError(w, err)
		return
	}

	resp, err := h.service.RewriteEmail(r.Context(), &req)
	if err != nil {
		slog.Error("Failed to open email rewrite stream", "error", err)
		respondWithJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		return
	}
	relayStream(w, resp)
}

// relayStream writes resp to w. A non-2xx upstream status is mirrored together
// with the upstream body; otherwise the body is copied as an event stream.
func relayStream(w http.ResponseWriter, resp *llm.StreamResponse) {
	defer resp.Body.Close()

	if !resp.OK() {
		body := llm.ReadErrorBody(resp.Body)
		slog.Warn("Inference service returned an error", "status_code", resp.StatusCode, "body", string(body))
		if ct := resp.Header.Get("Content-Type"); ct != "" {
			w.Header().Set("Content-Type", ct)
		}
		w.WriteHeader(resp.StatusCode)
		if _, err := w.Write(body); err != nil {
			slog.Warn("Failed to write upstream error body", "error", err)
		}
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	rc := http.NewResponseController(w)
	flush := func() {
		if err := rc.Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
			slog.Debug("Flush failed", "error", err)
		}
	}
	flush()

	buf := make([]byte, relayBufferSize)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, err := w.Write(buf[:n]); err != nil {
				slog.Info("Client disconnected during stream", "error", err)
				return
			}
			flush()
		}
		if readErr != nil {
			if !errors.Is(readErr, io.EOF) {
				slog.Warn("Upstream stream ended with error", "error", readErr)
			}
			return
		}
	}
}
