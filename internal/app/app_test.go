package app

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chat-assistant/backend/internal/cache"
	"chat-assistant/backend/internal/config"
	"chat-assistant/backend/internal/llm"
	"chat-assistant/backend/internal/repository"
)

func TestParseLevel(t *testing.T) {
	testCases := map[string]slog.Level{
		"DEBUG":   slog.LevelDebug,
		"debug":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"WARNING": slog.LevelWarn,
		"ERROR":   slog.LevelError,
		"INFO":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range testCases {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestWaitForBackend(t *testing.T) {
	t.Run("Ready", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		ok := waitForBackend(context.Background(), llm.NewHTTPProvider(srv.URL, ""), srv.URL, 3, time.Millisecond)
		assert.True(t, ok)
	})

	t.Run("Gives up after bounded attempts", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		start := time.Now()
		ok := waitForBackend(context.Background(), llm.NewHTTPProvider(url, ""), url, 2, 10*time.Millisecond)
		assert.False(t, ok)
		assert.Less(t, time.Since(start), 5*time.Second)
	})

	t.Run("Stops on cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		ok := waitForBackend(ctx, llm.NewHTTPProvider("http://127.0.0.1:1", ""), "http://127.0.0.1:1", 5, time.Hour)
		assert.False(t, ok)
	})
}

func testConfig() *config.Config {
	return &config.Config{
		AppPort:         3000,
		DefaultUserID:   "anonymous",
		CORSOrigins:     "http://localhost:5173",
		TitleTimeout:    time.Second,
		TitleMaxRetries: 0,
	}
}

func TestAssemble(t *testing.T) {
	db, mockDB, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	mr := miniredis.RunT(t)
	redisCache := cache.NewRedisCache(cache.RedisOptions{Addr: mr.Addr()})

	inference := httptest.NewServer(http.NotFoundHandler())
	defer inference.Close()

	app := assemble(testConfig(), db, repository.NewPostgresRepository(db), redisCache, llm.NewHTTPProvider(inference.URL, ""))
	assert.Equal(t, ":3000", app.Server.Addr)
	assert.Zero(t, app.Server.WriteTimeout)

	t.Run("Liveness", func(t *testing.T) {
		rr := httptest.NewRecorder()
		app.Server.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Readiness with cache down", func(t *testing.T) {
		mockDB.ExpectPing()
		mr.Close()

		rr := httptest.NewRecorder()
		app.Server.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		assert.Equal(t, http.StatusOK, rr.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "ok", body["database"])
		assert.Equal(t, "down", body["cache"])
	})

	t.Run("Readiness with database down", func(t *testing.T) {
		mockDB.ExpectPing().WillReturnError(errors.New("connection refused"))

		rr := httptest.NewRecorder()
		app.Server.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})

	require.NoError(t, app.Shutdown(context.Background()))
	mockDB.ExpectClose()
	app.Close()
	assert.NoError(t, mockDB.ExpectationsWereMet())
}
