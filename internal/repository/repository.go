package repository

import (
	"context"

	"chat-assistant/backend/internal/model"
)

// Repository is the persistence contract consumed by the service layer.
// CachedRepository is the production implementation.
type Repository interface {
	CreateChat(ctx context.Context, userID, title, firstMessage string) (*model.Chat, error)
	GetUserChats(ctx context.Context, userID string) ([]*model.Chat, error)
	GetChatByID(ctx context.Context, chatID, userID string) (*model.Chat, error)
	GetChatMessages(ctx context.Context, chatID string) ([]model.Message, error)
	AddMessage(ctx context.Context, chatID string, msg model.NewMessage) (*model.Message, error)

	// DeleteChat, UpdateChatTitle and SetGeneratedTitle report whether a row
	// owned by userID was affected.
	DeleteChat(ctx context.Context, chatID, userID string) (bool, error)
	DeleteAllChats(ctx context.Context, userID string) (int, error)
	UpdateChatTitle(ctx context.Context, chatID, userID, title string) (bool, error)
	SetGeneratedTitle(ctx context.Context, chatID, userID, title string) (bool, error)

	Ping(ctx context.Context) error
}

// Store is the relational half of the gateway. It owns the rows; it knows
// nothing about caching.
type Store interface {
	CreateChat(ctx context.Context, userID, title, firstMessage string) (*model.Chat, error)
	GetUserChats(ctx context.Context, userID string) ([]*model.Chat, error)
	GetChatByID(ctx context.Context, chatID, userID string) (*model.Chat, error)
	GetChatMessages(ctx context.Context, chatID string) ([]model.Message, error)

	// AddMessage also returns the id of the user owning the chat.
	AddMessage(ctx context.Context, chatID string, msg model.NewMessage) (*model.Message, string, error)

	DeleteChat(ctx context.Context, chatID, userID string) (bool, error)
	// DeleteAllChats returns the ids of the removed chats.
	DeleteAllChats(ctx context.Context, userID string) ([]string, error)
	UpdateChatTitle(ctx context.Context, chatID, userID, title string) (bool, error)
	SetGeneratedTitle(ctx context.Context, chatID, userID, title string) (bool, error)

	Ping(ctx context.Context) error
}
