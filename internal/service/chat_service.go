package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	app_errors "chat-assistant/backend/internal/errors"
	"chat-assistant/backend/internal/model"
	"chat-assistant/backend/internal/repository"
)

const (
	// MaxTitleLength bounds every stored title, generated or manual.
	MaxTitleLength = 100

	fallbackTitleLength = 60
	defaultChatTitle    = "New Chat"
)

var firstSentence = regexp.MustCompile(`^[^.!?]+[.!?]`)

// CreateChatRequest is the body of POST /api/chats.
type CreateChatRequest struct {
	Message string `json:"message" validate:"required" example:"Summarize this report"`
}

// AddMessageRequest is the body of POST /api/chats/{chatID}/messages.
type AddMessageRequest struct {
	Role        string             `json:"role" validate:"required,oneof=user assistant" example:"assistant"`
	Content     string             `json:"content" validate:"required" example:"Sure, here is the summary."`
	References  json.RawMessage    `json:"references,omitempty" swaggertype:"array,object"`
	TokenCounts *model.TokenCounts `json:"token_counts,omitempty"`
}

// UpdateTitleRequest is the body of PATCH /api/chats/{chatID}.
type UpdateTitleRequest struct {
	Title string `json:"title" validate:"required,max=100" example:"Quarterly report summary"`
}

type ChatService struct {
	repo   repository.Repository
	titles *TitleWorker
}

// NewChatService wires the orchestrator. titles may be nil, in which case
// chats keep their fallback title.
func NewChatService(repo repository.Repository, titles *TitleWorker) *ChatService {
	return &ChatService{repo: repo, titles: titles}
}

// CreateChat stores the chat with a fallback title and the first message, then
// hands title generation to the worker. It never waits for the title service.
func (s *ChatService) CreateChat(ctx context.Context, userID, firstMessage string) (*model.Chat, error) {
	if strings.TrimSpace(firstMessage) == "" {
		return nil, fmt.Errorf("%w: message is required", app_errors.ErrValidation)
	}

	chat, err := s.repo.CreateChat(ctx, userID, FallbackTitle(firstMessage), firstMessage)
	if err != nil {
		return nil, fmt.Errorf("could not create chat: %w", err)
	}
	slog.Info("Chat created", "chat_id", chat.ID, "user_id", userID)

	if s.titles != nil {
		s.titles.Submit(TitleJob{ChatID: chat.ID, UserID: userID, Message: firstMessage})
	}
	return chat, nil
}

func (s *ChatService) ListChats(ctx context.Context, userID string) ([]*model.Chat, error) {
	chats, err := s.repo.GetUserChats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("could not list chats: %w", err)
	}
	return chats, nil
}

func (s *ChatService) GetChat(ctx context.Context, chatID, userID string) (*model.Chat, error) {
	chat, err := s.repo.GetChatByID(ctx, chatID, userID)
	if err != nil {
		return nil, mapRepoError(err, chatID)
	}
	return chat, nil
}

// GetMessages returns the conversation of a chat the caller owns, oldest first.
func (s *ChatService) GetMessages(ctx context.Context, chatID, userID string) ([]model.Message, error) {
	if _, err := s.GetChat(ctx, chatID, userID); err != nil {
		return nil, err
	}
	messages, err := s.repo.GetChatMessages(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("could not get messages: %w", err)
	}
	return messages, nil
}

func (s *ChatService) AddMessage(ctx context.Context, chatID, userID string, req *AddMessageRequest) (*model.Message, error) {
	if !model.IsValidRole(req.Role) {
		return nil, fmt.Errorf("%w: role must be 'user' or 'assistant'", app_errors.ErrValidation)
	}
	if req.Content == "" {
		return nil, fmt.Errorf("%w: content is required", app_errors.ErrValidation)
	}
	references := model.NormalizeReferences(req.References)
	if references != nil && !model.IsJSONArray(references) {
		return nil, fmt.Errorf("%w: references must be an array", app_errors.ErrValidation)
	}
	if _, err := s.GetChat(ctx, chatID, userID); err != nil {
		return nil, err
	}

	msg, err := s.repo.AddMessage(ctx, chatID, model.NewMessage{
		Role:        req.Role,
		Content:     req.Content,
		References:  references,
		TokenCounts: req.TokenCounts,
	})
	if err != nil {
		return nil, mapRepoError(err, chatID)
	}
	return msg, nil
}

func (s *ChatService) UpdateChatTitle(ctx context.Context, chatID, userID, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("%w: title cannot be empty", app_errors.ErrValidation)
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return fmt.Errorf("%w: title must be at most %d characters", app_errors.ErrValidation, MaxTitleLength)
	}

	updated, err := s.repo.UpdateChatTitle(ctx, chatID, userID, title)
	if err != nil {
		return fmt.Errorf("could not update title: %w", err)
	}
	if !updated {
		return fmt.Errorf("%w: chat %s", app_errors.ErrNotFound, chatID)
	}
	slog.Info("Chat renamed", "chat_id", chatID)
	return nil
}

// DeleteChat removes an owned chat with its messages. Deleting a missing or
// foreign chat is reported as not found.
func (s *ChatService) DeleteChat(ctx context.Context, chatID, userID string) error {
	deleted, err := s.repo.DeleteChat(ctx, chatID, userID)
	if err != nil {
		return fmt.Errorf("could not delete chat: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: chat %s", app_errors.ErrNotFound, chatID)
	}
	slog.Info("Chat deleted", "chat_id", chatID)
	return nil
}

func (s *ChatService) DeleteAllChats(ctx context.Context, userID string) (int, error) {
	n, err := s.repo.DeleteAllChats(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("could not delete chats: %w", err)
	}
	slog.Info("Deleted all chats", "user_id", userID, "count", n)
	return n, nil
}

// Ping reports whether the relational store is reachable.
func (s *ChatService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// FallbackTitle derives a title from the first message without any external
// call: the first sentence when there is more than one, capped at 60 runes.
func FallbackTitle(message string) string {
	// strings.Fields splits on Unicode white space, NBSP and line separators included.
	text := strings.Join(strings.Fields(message), " ")
	if text == "" {
		return defaultChatTitle
	}

	title := text
	if sentence := firstSentence.FindString(text); sentence != "" && len(sentence) < len(text) {
		title = strings.TrimSpace(sentence)
	}

	if utf8.RuneCountInString(title) > fallbackTitleLength {
		runes := []rune(title)
		title = string(runes[:fallbackTitleLength-3]) + "..."
	}
	return title
}

func mapRepoError(err error, chatID string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: chat %s", app_errors.ErrNotFound, chatID)
	}
	return err
}
