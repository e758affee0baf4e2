package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"chat-assistant/backend/internal/api"
	"chat-assistant/backend/internal/interfaces/mocks"
	"chat-assistant/backend/internal/model"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func setupRouter(t *testing.T, store, cache api.Pinger) (http.Handler, *mocks.MockChatService) {
	chatSvc := mocks.NewMockChatService(t)
	relaySvc := mocks.NewMockRelayService(t)
	router := api.NewRouter(
		api.RouterConfig{AllowedOrigins: []string{"http://localhost:5173"}, DefaultUserID: "anonymous"},
		api.NewChatHandler(chatSvc),
		api.NewRelayHandler(relaySvc),
		api.NewHealthHandler(store, cache),
	)
	return router, chatSvc
}

func TestRouter_Identity(t *testing.T) {
	t.Run("Header identity", func(t *testing.T) {
		router, chatSvc := setupRouter(t, stubPinger{}, nil)
		chatSvc.On("ListChats", mock.Anything, "alice").Return([]*model.Chat{}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/chats", nil)
		req.Header.Set("x-user-id", "alice")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"chats":[]}`, rr.Body.String())
	})

	t.Run("Falls back to default identity", func(t *testing.T) {
		router, chatSvc := setupRouter(t, stubPinger{}, nil)
		chatSvc.On("ListChats", mock.Anything, "anonymous").Return([]*model.Chat{}, nil).Once()

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/chats", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("URL params reach the handler", func(t *testing.T) {
		router, chatSvc := setupRouter(t, stubPinger{}, nil)
		chatSvc.On("DeleteChat", mock.Anything, "abc", "anonymous").Return(nil).Once()

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/api/chats/abc", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	})
}

func TestRouter_CORS(t *testing.T) {
	router, _ := setupRouter(t, stubPinger{}, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/chats", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "x-user-id")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, "http://localhost:5173", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_Health(t *testing.T) {
	t.Run("Live", func(t *testing.T) {
		router, _ := setupRouter(t, stubPinger{err: errors.New("down")}, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Ready with cache down", func(t *testing.T) {
		router, _ := setupRouter(t, stubPinger{}, stubPinger{err: errors.New("redis down")})
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"status":"ok","database":"ok","cache":"down"}`, rr.Body.String())
	})

	t.Run("Not ready without database", func(t *testing.T) {
		router, _ := setupRouter(t, stubPinger{err: errors.New("db down")}, stubPinger{})
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.JSONEq(t, `{"status":"unavailable","database":"down","cache":"ok"}`, rr.Body.String())
	})
}
