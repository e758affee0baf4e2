// Package client is a Go client for the chat assistant API, including the
// per-send conversation flow the browser front-end runs.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"chat-assistant/backend/internal/model"
	"chat-assistant/backend/internal/service"
)

const userIDHeader = "x-user-id"

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

type Client struct {
	baseURL string
	userID  string
	http    *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default client. It must not set a Timeout, or
// long streams will be cut off.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New returns a client for the server at baseURL acting as userID. An empty
// userID leaves identity to the server's default.
func New(baseURL, userID string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		userID:  userID,
		http:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) CreateChat(ctx context.Context, message string) (*model.Chat, error) {
	var out struct {
		Chat *model.Chat `json:"chat"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/chats", service.CreateChatRequest{Message: message}, &out); err != nil {
		return nil, err
	}
	return out.Chat, nil
}

func (c *Client) ListChats(ctx context.Context) ([]*model.Chat, error) {
	var out struct {
		Chats []*model.Chat `json:"chats"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/chats", nil, &out); err != nil {
		return nil, err
	}
	return out.Chats, nil
}

func (c *Client) GetChat(ctx context.Context, chatID string) (*model.Chat, error) {
	var out struct {
		Chat *model.Chat `json:"chat"`
	}
	if err := c.doJSON(ctx, http.MethodGet, chatPath(chatID), nil, &out); err != nil {
		return nil, err
	}
	return out.Chat, nil
}

func (c *Client) DeleteChat(ctx context.Context, chatID string) error {
	return c.doJSON(ctx, http.MethodDelete, chatPath(chatID), nil, nil)
}

func (c *Client) DeleteAllChats(ctx context.Context) (int, error) {
	var out struct {
		Deleted int `json:"deleted"`
	}
	if err := c.doJSON(ctx, http.MethodDelete, "/api/chats", nil, &out); err != nil {
		return 0, err
	}
	return out.Deleted, nil
}

func (c *Client) RenameChat(ctx context.Context, chatID, title string) error {
	return c.doJSON(ctx, http.MethodPatch, chatPath(chatID), service.UpdateTitleRequest{Title: title}, nil)
}

func (c *Client) ListMessages(ctx context.Context, chatID string) ([]model.Message, error) {
	var out struct {
		Messages []model.Message `json:"messages"`
	}
	if err := c.doJSON(ctx, http.MethodGet, chatPath(chatID)+"/messages", nil, &out); err != nil {
		return nil, err
	}
	return out.Messages, nil
}

func (c *Client) AddMessage(ctx context.Context, chatID string, req *service.AddMessageRequest) (*model.Message, error) {
	var out struct {
		Message *model.Message `json:"message"`
	}
	if err := c.doJSON(ctx, http.MethodPost, chatPath(chatID)+"/messages", req, &out); err != nil {
		return nil, err
	}
	return out.Message, nil
}

// OpenStream starts a generation and returns the raw event stream. The caller
// must close it.
func (c *Client) OpenStream(ctx context.Context, req *service.StreamRequest) (io.ReadCloser, error) {
	return c.openStream(ctx, "/api/chat/stream", req)
}

func (c *Client) OpenEmailRewrite(ctx context.Context, req *service.EmailRewriteRequest) (io.ReadCloser, error) {
	return c.openStream(ctx, "/api/chat/email/rewrite", req)
}

func (c *Client) openStream(ctx context.Context, path string, payload any) (io.ReadCloser, error) {
	httpReq, err := c.newRequest(ctx, http.MethodPost, path, payload)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "text/event-stream")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, decodeAPIError(resp)
	}
	return resp.Body, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload, out any) error {
	httpReq, err := c.newRequest(ctx, method, path, payload)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("could not decode response: %w", err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, payload any) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("could not marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.userID != "" {
		httpReq.Header.Set(userIDHeader, c.userID)
	}
	return httpReq, nil
}

func chatPath(chatID string) string {
	return "/api/chats/" + url.PathEscape(chatID)
}

func decodeAPIError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var body struct {
		Error string `json:"error"`
	}
	msg := strings.TrimSpace(string(raw))
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		msg = body.Error
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}
