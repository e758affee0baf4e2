package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxErrorBody bounds how much of an upstream error body is read into memory.
const maxErrorBody = 64 << 10

// Provider is the client of the Python inference service.
type Provider interface {
	// GenerateStream and RewriteEmail return the open upstream response. A
	// non-2xx status is not an error: callers mirror it. An error means the
	// request could not be sent at all.
	GenerateStream(ctx context.Context, req *GenerateRequest) (*StreamResponse, error)
	RewriteEmail(ctx context.Context, req *EmailRequest) (*StreamResponse, error)

	// GenerateTitle returns a *StatusError for non-2xx responses.
	GenerateTitle(ctx context.Context, req *TitleRequest) (*TitleResponse, error)

	Ping(ctx context.Context) error
}

// GenerateRequest is the body of the generation endpoint.
type GenerateRequest struct {
	Prompt      string   `json:"prompt"`
	Model       string   `json:"model"`
	Temperature *float64 `json:"temperature,omitempty"`
	RAGEnabled  bool     `json:"ragEnabled"`
	FileName    string   `json:"file_name"`
	Keyword     string   `json:"keyword"`
	Cached      bool     `json:"cached"`
	Alpha       float64  `json:"alpha"`
}

type EmailRequest struct {
	Email string `json:"email"`
	Tone  string `json:"tone"`
}

type TitleRequest struct {
	Message string `json:"message"`
	ChatID  string `json:"chat_id"`
}

type TitleResponse struct {
	Title string `json:"title"`
}

// StreamResponse is an upstream response whose body has not been read.
// The caller must close Body.
type StreamResponse struct {
	StatusCode int
	Header     http.Header
	Body       io.ReadCloser
}

// OK reports a 2xx status.
func (r *StreamResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// StatusError is a non-2xx answer from the inference service.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("inference service returned status %d: %s", e.StatusCode, e.Body)
}

// Retryable reports whether a failed call may succeed when repeated: transport
// errors and 5xx are retryable, 4xx are not.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode >= 500
	}
	return true
}

type httpProvider struct {
	streamClient *http.Client
	client       *http.Client
	baseURL      string
	generatePath string
}

// NewHTTPProvider builds a Provider for the service at baseURL. Streaming calls
// use a client without timeout; generation can run for minutes.
func NewHTTPProvider(baseURL, generatePath string) Provider {
	if generatePath == "" {
		generatePath = "/api/chats/generate"
	}
	return &httpProvider{
		streamClient: &http.Client{Timeout: 0},
		client:       &http.Client{Timeout: 30 * time.Second},
		baseURL:      strings.TrimRight(baseURL, "/"),
		generatePath: "/" + strings.TrimLeft(generatePath, "/"),
	}
}

func (p *httpProvider) GenerateStream(ctx context.Context, req *GenerateRequest) (*StreamResponse, error) {
	return p.openStream(ctx, p.generatePath, req)
}

func (p *httpProvider) RewriteEmail(ctx context.Context, req *EmailRequest) (*StreamResponse, error) {
	return p.openStream(ctx, "/email_assistant", req)
}

func (p *httpProvider) openStream(ctx context.Context, path string, payload any) (*StreamResponse, error) {
	httpReq, err := p.newJSONRequest(ctx, path, payload)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "text/event-stream")

	resp, err := p.streamClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return &StreamResponse{StatusCode: resp.StatusCode, Header: resp.Header, Body: resp.Body}, nil
}

func (p *httpProvider) GenerateTitle(ctx context.Context, req *TitleRequest) (*TitleResponse, error) {
	httpReq, err := p.newJSONRequest(ctx, "/chat/title", req)
	if err != nil {
		return nil, err
	}
	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(ReadErrorBody(resp.Body))}
	}

	var titleResp TitleResponse
	if err := json.NewDecoder(resp.Body).Decode(&titleResp); err != nil {
		return nil, fmt.Errorf("could not decode title response: %w", err)
	}
	return &titleResp, nil
}

// Ping succeeds when the service answers at all.
func (p *httpProvider) Ping(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}
	resp, err := p.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("inference service unreachable: %w", err)
	}
	_ = resp.Body.Close()
	return nil
}

func (p *httpProvider) newJSONRequest(ctx context.Context, path string, payload any) (*http.Request, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("could not marshal request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("could not create http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	return httpReq, nil
}

// ReadErrorBody drains at most maxErrorBody bytes of an upstream error response.
func ReadErrorBody(r io.Reader) []byte {
	b, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	return b
}
