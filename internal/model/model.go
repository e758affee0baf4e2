package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"
)

// Message roles accepted by the store.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Chat stores metadata about a conversation.
type Chat struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// References is the JSON array of retrieval results returned by the RAG
// backend, typically objects with file_name, content and score. It is kept
// raw so every field and number passes through untouched.
type References = json.RawMessage

// TokenCounts is the token usage summary reported by the backend for a message.
type TokenCounts struct {
	PromptTokens     int `json:"prompt_tokens,omitempty"`
	CompletionTokens int `json:"completion_tokens,omitempty"`
	TotalTokens      int `json:"total_tokens,omitempty"`
}

// Message stores a single message in a chat.
type Message struct {
	ID          string       `json:"id"`
	ChatID      string       `json:"chatId"`
	Role        string       `json:"role"`
	Content     string       `json:"content"`
	References  References   `json:"rag_references,omitempty" swaggertype:"array,object"`
	TokenCounts *TokenCounts `json:"tokenCounts,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// NewMessage is the input for appending a message to a chat.
type NewMessage struct {
	Role        string
	Content     string
	References  References
	TokenCounts *TokenCounts
}

// ReferencesJSON returns the references for a JSONB column, nil when there
// are none. Anything but a JSON array is rejected.
func (m NewMessage) ReferencesJSON() ([]byte, error) {
	refs := NormalizeReferences(m.References)
	if refs == nil {
		return nil, nil
	}
	if !IsJSONArray(refs) {
		return nil, errors.New("references must be a JSON array")
	}
	return refs, nil
}

// NormalizeReferences maps empty input and JSON null to nil.
func NormalizeReferences(raw json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	return trimmed
}

// IsJSONArray reports whether raw is a well-formed JSON array.
func IsJSONArray(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '[' && json.Valid(trimmed)
}

// TokenCountsJSON encodes the token counts for a JSONB column, nil when absent.
func (m NewMessage) TokenCountsJSON() ([]byte, error) {
	if m.TokenCounts == nil {
		return nil, nil
	}
	return json.Marshal(m.TokenCounts)
}

// IsValidRole reports whether role may be stored on a message.
func IsValidRole(role string) bool {
	return role == RoleUser || role == RoleAssistant
}
