package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"chat-assistant/backend/internal/model"
)

// userChatsLimit caps the chat list returned for the sidebar.
const userChatsLimit = 50

type postgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) Store {
	return &postgresRepository{db: db}
}

// CreateChat inserts the chat and its first user message as one transaction.
func (r *postgresRepository) CreateChat(ctx context.Context, userID, title, firstMessage string) (*model.Chat, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	chat := &model.Chat{ID: uuid.NewString(), UserID: userID, Title: title}

	insertChatQuery := `
		INSERT INTO chats (id, user_id, title, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	if err := tx.QueryRowContext(ctx, insertChatQuery, chat.ID, userID, title).Scan(&chat.CreatedAt, &chat.UpdatedAt); err != nil {
		return nil, fmt.Errorf("could not insert chat: %w", err)
	}

	insertMsgQuery := `
		INSERT INTO messages (id, chat_id, role, content, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`
	if _, err := tx.ExecContext(ctx, insertMsgQuery, uuid.NewString(), chat.ID, model.RoleUser, firstMessage); err != nil {
		return nil, fmt.Errorf("could not insert first message: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("could not commit chat creation: %w", err)
	}
	return chat, nil
}

func (r *postgresRepository) GetUserChats(ctx context.Context, userID string) ([]*model.Chat, error) {
	query := `
		SELECT id, user_id, title, created_at, updated_at
		FROM chats
		WHERE user_id = $1
		ORDER BY updated_at DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, userID, userChatsLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	chats := make([]*model.Chat, 0)
	for rows.Next() {
		var chat model.Chat
		if err := rows.Scan(&chat.ID, &chat.UserID, &chat.Title, &chat.CreatedAt, &chat.UpdatedAt); err != nil {
			return nil, err
		}
		chats = append(chats, &chat)
	}
	return chats, rows.Err()
}

// GetChatByID filters on ownership in the query itself.
func (r *postgresRepository) GetChatByID(ctx context.Context, chatID, userID string) (*model.Chat, error) {
	if !isUUID(chatID) {
		return nil, ErrNotFound
	}
	query := "SELECT id, user_id, title, created_at, updated_at FROM chats WHERE id = $1 AND user_id = $2"
	var chat model.Chat
	err := r.db.QueryRowContext(ctx, query, chatID, userID).Scan(&chat.ID, &chat.UserID, &chat.Title, &chat.CreatedAt, &chat.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &chat, nil
}

// GetChatMessages returns the conversation in insertion order.
func (r *postgresRepository) GetChatMessages(ctx context.Context, chatID string) ([]model.Message, error) {
	messages := make([]model.Message, 0)
	if !isUUID(chatID) {
		return messages, nil
	}
	query := `
		SELECT id, chat_id, role, content, rag_references, token_counts, created_at
		FROM messages
		WHERE chat_id = $1
		ORDER BY created_at ASC, seq ASC
	`
	rows, err := r.db.QueryContext(ctx, query, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var msg model.Message
		var references, tokenCounts []byte
		if err := rows.Scan(&msg.ID, &msg.ChatID, &msg.Role, &msg.Content, &references, &tokenCounts, &msg.CreatedAt); err != nil {
			return nil, err
		}
		msg.References = decodeReferences(msg.ID, references)
		msg.TokenCounts = decodeTokenCounts(msg.ID, tokenCounts)
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// AddMessage inserts the message and bumps the chat's updated_at in one transaction.
func (r *postgresRepository) AddMessage(ctx context.Context, chatID string, msg model.NewMessage) (*model.Message, string, error) {
	if !isUUID(chatID) {
		return nil, "", ErrNotFound
	}
	references, err := msg.ReferencesJSON()
	if err != nil {
		return nil, "", fmt.Errorf("could not encode references: %w", err)
	}
	tokenCounts, err := msg.TokenCountsJSON()
	if err != nil {
		return nil, "", fmt.Errorf("could not encode token counts: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, "", fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	message := &model.Message{
		ID:          uuid.NewString(),
		ChatID:      chatID,
		Role:        msg.Role,
		Content:     msg.Content,
		References:  msg.References,
		TokenCounts: msg.TokenCounts,
	}

	insertMsgQuery := `
		INSERT INTO messages (id, chat_id, role, content, rag_references, token_counts, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING created_at
	`
	err = tx.QueryRowContext(ctx, insertMsgQuery,
		message.ID,
		chatID,
		msg.Role,
		msg.Content,
		nullableJSON(references),
		nullableJSON(tokenCounts),
	).Scan(&message.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, "", ErrNotFound
		}
		return nil, "", fmt.Errorf("could not insert message: %w", err)
	}

	var ownerID string
	updateChatQuery := "UPDATE chats SET updated_at = NOW() WHERE id = $1 RETURNING user_id"
	if err := tx.QueryRowContext(ctx, updateChatQuery, chatID).Scan(&ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", ErrNotFound
		}
		return nil, "", fmt.Errorf("could not update chat timestamp: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, "", fmt.Errorf("could not commit message: %w", err)
	}
	return message, ownerID, nil
}

func (r *postgresRepository) DeleteChat(ctx context.Context, chatID, userID string) (bool, error) {
	if !isUUID(chatID) {
		return false, nil
	}
	res, err := r.db.ExecContext(ctx, "DELETE FROM chats WHERE id = $1 AND user_id = $2", chatID, userID)
	if err != nil {
		return false, err
	}
	return affected(res)
}

func (r *postgresRepository) DeleteAllChats(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "DELETE FROM chats WHERE user_id = $1 RETURNING id", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *postgresRepository) UpdateChatTitle(ctx context.Context, chatID, userID, title string) (bool, error) {
	if !isUUID(chatID) {
		return false, nil
	}
	query := "UPDATE chats SET title = $1, updated_at = NOW() WHERE id = $2 AND user_id = $3"
	res, err := r.db.ExecContext(ctx, query, title, chatID, userID)
	if err != nil {
		return false, err
	}
	return affected(res)
}

// SetGeneratedTitle replaces the fallback title without touching updated_at.
func (r *postgresRepository) SetGeneratedTitle(ctx context.Context, chatID, userID, title string) (bool, error) {
	if !isUUID(chatID) {
		return false, nil
	}
	res, err := r.db.ExecContext(ctx, "UPDATE chats SET title = $1 WHERE id = $2 AND user_id = $3", title, chatID, userID)
	if err != nil {
		return false, err
	}
	return affected(res)
}

func (r *postgresRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// --- Helper Functions ---

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

func nullableJSON(b []byte) any {
	if b == nil {
		return nil
	}
	return string(b)
}

// decodeReferences keeps a JSON array exactly as stored; anything else is
// treated as absent.
func decodeReferences(messageID string, raw []byte) model.References {
	refs := model.NormalizeReferences(raw)
	if refs == nil {
		return nil
	}
	if !model.IsJSONArray(refs) {
		slog.Debug("Ignoring malformed rag_references", "message_id", messageID)
		return nil
	}
	return append(model.References(nil), refs...)
}

// decodeTokenCounts keeps only a JSON object; anything else is treated as absent.
func decodeTokenCounts(messageID string, raw []byte) *model.TokenCounts {
	if len(raw) == 0 || raw[0] != '{' {
		return nil
	}
	var counts model.TokenCounts
	if err := json.Unmarshal(raw, &counts); err != nil {
		slog.Debug("Ignoring malformed token_counts", "message_id", messageID, "error", err)
		return nil
	}
	return &counts
}
