package interfaces

import (
	"context"

	"chat-assistant/backend/internal/llm"
	"chat-assistant/backend/internal/model"
	"chat-assistant/backend/internal/service"
)

// The API layer depends on these contracts, not on the concrete services, so
// handlers can be tested against mocks.

// ChatService is the chat history contract. Every call is scoped to userID.
type ChatService interface {
	CreateChat(ctx context.Context, userID, firstMessage string) (*model.Chat, error)
	ListChats(ctx context.Context, userID string) ([]*model.Chat, error)
	GetChat(ctx context.Context, chatID, userID string) (*model.Chat, error)
	GetMessages(ctx context.Context, chatID, userID string) ([]model.Message, error)
	AddMessage(ctx context.Context, chatID, userID string, req *service.AddMessageRequest) (*model.Message, error)
	UpdateChatTitle(ctx context.Context, chatID, userID, title string) error
	DeleteChat(ctx context.Context, chatID, userID string) error
	DeleteAllChats(ctx context.Context, userID string) (int, error)
	Ping(ctx context.Context) error
}

// RelayService opens upstream streams for the relay endpoints.
type RelayService interface {
	Stream(ctx context.Context, req *service.StreamRequest) (*llm.StreamResponse, error)
	RewriteEmail(ctx context.Context, req *service.EmailRewriteRequest) (*llm.StreamResponse, error)
}

var (
	_ ChatService  = (*service.ChatService)(nil)
	_ RelayService = (*service.RelayService)(nil)
)
