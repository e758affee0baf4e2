package api

import (
	"net/http"
	"time"

	// Registers the swagger document served under /api/swagger.
	_ "chat-assistant/backend/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type RouterConfig struct {
	AllowedOrigins []string
	DefaultUserID  string
}

// NewRouter wires every route of the service.
func NewRouter(cfg RouterConfig, chatHandler *ChatHandler, relayHandler *RelayHandler, healthHandler *HealthHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/swagger/*", httpSwagger.WrapHandler)
	r.Get("/healthz", healthHandler.Live)
	r.Get("/readyz", healthHandler.Ready)

	r.Route("/api", func(r chi.Router) {
		r.Use(Identity(cfg.DefaultUserID))

		// JSON routes get a request timeout.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))

			r.Post("/chats", chatHandler.CreateChat)
			r.Get("/chats", chatHandler.ListChats)
			r.Delete("/chats", chatHandler.DeleteAllChats)
			r.Get("/chats/{chatID}", chatHandler.GetChat)
			r.Patch("/chats/{chatID}", chatHandler.UpdateChatTitle)
			r.Delete("/chats/{chatID}", chatHandler.DeleteChat)
			r.Get("/chats/{chatID}/messages", chatHandler.ListMessages)
			r.Post("/chats/{chatID}/messages", chatHandler.AddMessage)
		})

		// Streaming routes must not time out.
		r.Group(func(r chi.Router) {
			r.Post("/chat/stream", relayHandler.Stream)
			r.Post("/chat/email/rewrite", relayHandler.RewriteEmail)
		})
	})

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", UserIDHeader},
		AllowCredentials: true,
	})
	return corsHandler.Handler(r)
}
