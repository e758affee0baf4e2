package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"chat-assistant/backend/internal/interfaces"
	"chat-assistant/backend/internal/service"
)

// ChatHandler serves chat history. Every route is scoped to the identity
// resolved by the Identity middleware.
type ChatHandler struct {
	service interfaces.ChatService
}

func NewChatHandler(svc interfaces.ChatService) *ChatHandler {
	return &ChatHandler{service: svc}
}

// CreateChat godoc
// @Summary      Create a chat
// @Description  Creates a chat from its first user message. The title is derived from the message and may later be replaced by a generated one.
// @Tags         Chats
// @Accept       json
// @Produce      json
// @Param        x-user-id  header  string                     false  "Caller identity"
// @Param        request    body    service.CreateChatRequest  true   "First message"
// @Success      201        {object}  ChatResponse
// @Failure      400        {object}  ErrorResponse
// @Failure      500        {object}  ErrorResponse
// @Router       /chats [post]
func (h *ChatHandler) CreateChat(w http.ResponseWriter, r *http.Request) {
	var req service.CreateChatRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		respondWithError(w, err)
		return
	}

	chat, err := h.service.CreateChat(r.Context(), UserIDFromContext(r.Context()), req.Message)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, ChatResponse{Chat: chat})
}

// ListChats godoc
// @Summary      List chats
// @Description  Returns the caller's 50 most recently updated chats.
// @Tags         Chats
// @Produce      json
// @Param        x-user-id  header  string  false  "Caller identity"
// @Success      200        {object}  ChatsResponse
// @Failure      500        {object}  ErrorResponse
// @Router       /chats [get]
func (h *ChatHandler) ListChats(w http.ResponseWriter, r *http.Request) {
	chats, err := h.service.ListChats(r.Context(), UserIDFromContext(r.Context()))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, ChatsResponse{Chats: chats})
}

// DeleteAllChats godoc
// @Summary      Delete all chats
// @Tags         Chats
// @Produce      json
// @Param        x-user-id  header  string  false  "Caller identity"
// @Success      200        {object}  DeleteAllResponse
// @Failure      500        {object}  ErrorResponse
// @Router       /chats [delete]
func (h *ChatHandler) DeleteAllChats(w http.ResponseWriter, r *http.Request) {
	n, err := h.service.DeleteAllChats(r.Context(), UserIDFromContext(r.Context()))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, DeleteAllResponse{Success: true, Deleted: n})
}

// GetChat godoc
// @Summary      Get a chat
// @Tags         Chats
// @Produce      json
// @Param        x-user-id  header  string  false  "Caller identity"
// @Param        chatID     path    string  true   "Chat ID"
// @Success      200        {object}  ChatResponse
// @Failure      404        {object}  ErrorResponse
// @Router       /chats/{chatID} [get]
func (h *ChatHandler) GetChat(w http.ResponseWriter, r *http.Request) {
	chat, err := h.service.GetChat(r.Context(), chi.URLParam(r, "chatID"), UserIDFromContext(r.Context()))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, ChatResponse{Chat: chat})
}

// DeleteChat godoc
// @Summary      Delete a chat
// @Description  Deletes the chat and all of its messages.
// @Tags         Chats
// @Produce      json
// @Param        x-user-id  header  string  false  "Caller identity"
// @Param        chatID     path    string  true   "Chat ID"
// @Success      200        {object}  SuccessResponse
// @Failure      404        {object}  ErrorResponse
// @Router       /chats/{chatID} [delete]
func (h *ChatHandler) DeleteChat(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteChat(r.Context(), chi.URLParam(r, "chatID"), UserIDFromContext(r.Context())); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// UpdateChatTitle godoc
// @Summary      Rename a chat
// @Tags         Chats
// @Accept       json
// @Produce      json
// @Param        x-user-id  header  string                      false  "Caller identity"
// @Param        chatID     path    string                      true   "Chat ID"
// @Param        request    body    service.UpdateTitleRequest  true   "New title"
// @Success      200        {object}  SuccessResponse
// @Failure      400        {object}  ErrorResponse
// @Failure      404        {object}  ErrorResponse
// @Router       /chats/{chatID} [patch]
func (h *ChatHandler) UpdateChatTitle(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateTitleRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		respondWithError(w, err)
		return
	}

	if err := h.service.UpdateChatTitle(r.Context(), chi.URLParam(r, "chatID"), UserIDFromContext(r.Context()), req.Title); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// ListMessages godoc
// @Summary      List messages
// @Description  Returns the chat's messages, oldest first.
// @Tags         Messages
// @Produce      json
// @Param        x-user-id  header  string  false  "Caller identity"
// @Param        chatID     path    string  true   "Chat ID"
// @Success      200        {object}  MessagesResponse
// @Failure      404        {object}  ErrorResponse
// @Router       /chats/{chatID}/messages [get]
func (h *ChatHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.service.GetMessages(r.Context(), chi.URLParam(r, "chatID"), UserIDFromContext(r.Context()))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, MessagesResponse{Messages: messages})
}

// AddMessage godoc
// @Summary      Append a message
// @Tags         Messages
// @Accept       json
// @Produce      json
// @Param        x-user-id  header  string                     false  "Caller identity"
// @Param        chatID     path    string                     true   "Chat ID"
// @Param        request    body    service.AddMessageRequest  true   "Message"
// @Success      201        {object}  MessageResponse
// @Failure      400        {object}  ErrorResponse
// @Failure      404        {object}  ErrorResponse
// @Router       /chats/{chatID}/messages [post]
func (h *ChatHandler) AddMessage(w http.ResponseWriter, r *http.Request) {
	var req service.AddMessageRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		respondWithError(w, err)
		return
	}

	msg, err := h.service.AddMessage(r.Context(), chi.URLParam(r, "chatID"), UserIDFromContext(r.Context()), &req)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, MessageResponse{Message: msg})
}
