package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"chat-assistant/backend/internal/model"
	"chat-assistant/backend/internal/service"
	"chat-assistant/backend/internal/stream"
)

// Mode selects whether a conversation is saved on the server.
type Mode int

const (
	Persistent Mode = iota
	Temporary
)

// State is the phase of the current send.
type State string

const (
	StateIdle       State = "idle"
	StateSending    State = "sending"
	StateStreaming  State = "streaming"
	StateFinalizing State = "finalizing"
	StateAborted    State = "aborted"
)

// ErrBusy is returned when a send starts while another is still running.
var ErrBusy = errors.New("conversation is busy")

// AskOptions carries the generation settings of one question.
type AskOptions struct {
	Model       string
	Temperature *float64
	RAGEnabled  bool
	FileName    string
	Keyword     string
	Cached      bool
	Alpha       *float64
}

// Result is what one send produced. Text holds partial output when the send
// failed mid-stream.
type Result struct {
	ChatID    string
	Text      string
	Reasoning string
	Saved     *model.Message
}

// Conversation drives one chat from the client side. Each send moves through
// idle, sending, streaming, then finalizing or aborted, and back to idle.
type Conversation struct {
	client *Client
	mode   Mode

	// OnUpdate receives the transcript after every event that changed it.
	OnUpdate func(*stream.Transcript)
	// OnState is told about every state transition.
	OnState func(State)

	mu       sync.Mutex
	state    State
	chatID   string
	messages []model.Message
}

func NewConversation(c *Client, mode Mode) *Conversation {
	return &Conversation{client: c, mode: mode, state: StateIdle}
}

// ResumeConversation continues an existing persistent chat with its history.
func ResumeConversation(ctx context.Context, c *Client, chatID string) (*Conversation, error) {
	history, err := c.ListMessages(ctx, chatID)
	if err != nil {
		return nil, err
	}
	conv := NewConversation(c, Persistent)
	conv.chatID = chatID
	conv.messages = history
	return conv, nil
}

func (cv *Conversation) ChatID() string {
	cv.mu.Lock()
	defer cv.mu.Unlock()
	return cv.chatID
}

func (cv *Conversation) State() State {
	cv.mu.Lock()
	defer cv.mu.Unlock()
	return cv.state
}

// Messages returns a copy of the local message view, including partial
// assistant output from failed sends.
func (cv *Conversation) Messages() []model.Message {
	cv.mu.Lock()
	defer cv.mu.Unlock()
	out := make([]model.Message, len(cv.messages))
	copy(out, cv.messages)
	return out
}

func (cv *Conversation) Ask(ctx context.Context, question string, opts AskOptions) (*Result, error) {
	req := &service.StreamRequest{
		Question:    question,
		Model:       opts.Model,
		Temperature: opts.Temperature,
		RAGEnabled:  opts.RAGEnabled,
		FileName:    opts.FileName,
		Keyword:     opts.Keyword,
		Cached:      opts.Cached,
		Alpha:       opts.Alpha,
	}
	return cv.send(ctx, question, func(ctx context.Context) (io.ReadCloser, error) {
		return cv.client.OpenStream(ctx, req)
	})
}

// RewriteEmail streams a rewrite of email in the given tone. The email itself
// is recorded as the user message.
func (cv *Conversation) RewriteEmail(ctx context.Context, email, tone string) (*Result, error) {
	req := &service.EmailRewriteRequest{Email: email, Tone: tone}
	return cv.send(ctx, email, func(ctx context.Context) (io.ReadCloser, error) {
		return cv.client.OpenEmailRewrite(ctx, req)
	})
}

func (cv *Conversation) send(ctx context.Context, userContent string, open func(context.Context) (io.ReadCloser, error)) (*Result, error) {
	if err := cv.begin(); err != nil {
		return nil, err
	}
	defer cv.transition(StateIdle)

	// The user message is stored before the stream opens so server order
	// matches local order.
	if err := cv.saveUserMessage(ctx, userContent); err != nil {
		cv.transition(StateAborted)
		return nil, err
	}
	res := &Result{ChatID: cv.ChatID()}

	body, err := open(ctx)
	if err != nil {
		cv.transition(StateAborted)
		return res, fmt.Errorf("could not open stream: %w", err)
	}
	defer body.Close()

	cv.transition(StateStreaming)
	tr, err := stream.Consume(ctx, body, cv.OnUpdate)
	res.Text = tr.Text()
	res.Reasoning = tr.Reasoning()
	if err != nil {
		cv.appendLocal(model.RoleAssistant, res.Text)
		cv.transition(StateAborted)
		return res, err
	}

	cv.transition(StateFinalizing)
	saved, err := cv.saveAssistantMessage(ctx, res.Text)
	if err != nil {
		cv.transition(StateAborted)
		return res, err
	}
	res.Saved = saved
	return res, nil
}

func (cv *Conversation) begin() error {
	cv.mu.Lock()
	if cv.state != StateIdle {
		cv.mu.Unlock()
		return ErrBusy
	}
	cv.state = StateSending
	cv.mu.Unlock()
	cv.notify(StateSending)
	return nil
}

func (cv *Conversation) transition(s State) {
	cv.mu.Lock()
	cv.state = s
	cv.mu.Unlock()
	cv.notify(s)
}

func (cv *Conversation) notify(s State) {
	if cv.OnState != nil {
		cv.OnState(s)
	}
}

// saveUserMessage creates the chat on the first persistent send; the server
// stores that first message itself.
func (cv *Conversation) saveUserMessage(ctx context.Context, content string) error {
	if cv.mode == Temporary {
		cv.appendLocal(model.RoleUser, content)
		return nil
	}

	chatID := cv.ChatID()
	if chatID == "" {
		chat, err := cv.client.CreateChat(ctx, content)
		if err != nil {
			return fmt.Errorf("could not create chat: %w", err)
		}
		cv.mu.Lock()
		cv.chatID = chat.ID
		cv.mu.Unlock()
		cv.appendLocal(model.RoleUser, content)
		return nil
	}

	msg, err := cv.client.AddMessage(ctx, chatID, &service.AddMessageRequest{Role: model.RoleUser, Content: content})
	if err != nil {
		return fmt.Errorf("could not save user message: %w", err)
	}
	cv.mu.Lock()
	cv.messages = append(cv.messages, *msg)
	cv.mu.Unlock()
	return nil
}

// saveAssistantMessage persists the finished answer unless it is blank.
func (cv *Conversation) saveAssistantMessage(ctx context.Context, text string) (*model.Message, error) {
	if cv.mode == Temporary || strings.TrimSpace(text) == "" {
		cv.appendLocal(model.RoleAssistant, text)
		return nil, nil
	}
	msg, err := cv.client.AddMessage(ctx, cv.ChatID(), &service.AddMessageRequest{Role: model.RoleAssistant, Content: text})
	if err != nil {
		slog.Warn("Failed to save assistant message", "chat_id", cv.ChatID(), "error", err)
		cv.appendLocal(model.RoleAssistant, text)
		return nil, fmt.Errorf("could not save assistant message: %w", err)
	}
	cv.mu.Lock()
	cv.messages = append(cv.messages, *msg)
	cv.mu.Unlock()
	return msg, nil
}

func (cv *Conversation) appendLocal(role, content string) {
	if role == model.RoleAssistant && content == "" {
		return
	}
	cv.mu.Lock()
	cv.messages = append(cv.messages, model.Message{ChatID: cv.chatID, Role: role, Content: content})
	cv.mu.Unlock()
}
