package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHTTPProvider runs the client against an httptest stand-in for the
// inference service.
func TestHTTPProvider(t *testing.T) {
	var capturedPath string
	var capturedBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedPath = r.URL.Path
		capturedBody = nil
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&capturedBody)
		}

		switch r.URL.Path {
		case "/api/chats/generate", "/email_assistant":
			w.Header().Set("Content-Type", "text/event-stream")
			_, err := w.Write([]byte("data: {\"type\":\"content\",\"content\":\"hi\"}\n\n"))
			assert.NoError(t, err)
		case "/chat/title":
			if capturedBody["chat_id"] == "broken" {
				http.Error(w, "boom", http.StatusBadGateway)
				return
			}
			if capturedBody["chat_id"] == "rejected" {
				http.Error(w, "bad input", http.StatusUnprocessableEntity)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, err := w.Write([]byte(`{"title":"Short title"}`))
			assert.NoError(t, err)
		case "/":
			w.WriteHeader(http.StatusNotFound)
		default:
			http.Error(w, "no such route", http.StatusNotFound)
		}
	}))
	defer server.Close()

	provider := NewHTTPProvider(server.URL+"/", "")
	ctx := context.Background()

	t.Run("GenerateStream renames and forwards fields", func(t *testing.T) {
		temp := 0.2
		resp, err := provider.GenerateStream(ctx, &GenerateRequest{Prompt: "why?", Model: "m", Temperature: &temp, Alpha: 0.7})
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.True(t, resp.OK())
		assert.Equal(t, "/api/chats/generate", capturedPath)
		assert.Equal(t, "why?", capturedBody["prompt"])
		assert.Equal(t, 0.7, capturedBody["alpha"])
		assert.Equal(t, false, capturedBody["ragEnabled"])
		assert.Equal(t, "", capturedBody["file_name"])

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), `"content":"hi"`)
	})

	t.Run("RewriteEmail", func(t *testing.T) {
		resp, err := provider.RewriteEmail(ctx, &EmailRequest{Email: "hey", Tone: "formal"})
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, "/email_assistant", capturedPath)
		assert.Equal(t, "formal", capturedBody["tone"])
	})

	t.Run("Stream non-2xx is returned, not an error", func(t *testing.T) {
		custom := NewHTTPProvider(server.URL, "/missing")
		resp, err := custom.GenerateStream(ctx, &GenerateRequest{Prompt: "x", Model: "m"})
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.False(t, resp.OK())
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Contains(t, string(ReadErrorBody(resp.Body)), "no such route")
	})

	t.Run("GenerateTitle", func(t *testing.T) {
		resp, err := provider.GenerateTitle(ctx, &TitleRequest{Message: "hello", ChatID: "c1"})
		require.NoError(t, err)
		assert.Equal(t, "Short title", resp.Title)
		assert.Equal(t, "/chat/title", capturedPath)
		assert.Equal(t, "hello", capturedBody["message"])
	})

	t.Run("GenerateTitle status errors", func(t *testing.T) {
		_, err := provider.GenerateTitle(ctx, &TitleRequest{Message: "hello", ChatID: "broken"})
		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
		assert.True(t, Retryable(err))

		_, err = provider.GenerateTitle(ctx, &TitleRequest{Message: "hello", ChatID: "rejected"})
		require.Error(t, err)
		assert.False(t, Retryable(err))
	})

	t.Run("Ping", func(t *testing.T) {
		assert.NoError(t, provider.Ping(ctx))
	})
}

func TestHTTPProvider_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	provider := NewHTTPProvider(url, "")
	_, err := provider.GenerateStream(context.Background(), &GenerateRequest{Prompt: "x", Model: "m"})
	assert.Error(t, err)

	_, err = provider.GenerateTitle(context.Background(), &TitleRequest{Message: "x"})
	assert.Error(t, err)
	assert.True(t, Retryable(err))

	assert.Error(t, provider.Ping(context.Background()))
}

func TestRetryable(t *testing.T) {
	assert.False(t, Retryable(nil))
	assert.False(t, Retryable(context.Canceled))
	assert.False(t, Retryable(&StatusError{StatusCode: 400}))
	assert.True(t, Retryable(&StatusError{StatusCode: 503}))
	assert.True(t, Retryable(errors.New("connection reset")))
}
