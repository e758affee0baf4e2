package service

import (
	"context"
	"fmt"

	"chat-assistant/backend/internal/llm"
)

const defaultAlpha = 0.7

// StreamRequest is the body of POST /api/chat/stream.
type StreamRequest struct {
	Question    string   `json:"question" validate:"required" example:"What does the report conclude?"`
	Model       string   `json:"model" validate:"required" example:"llama3"`
	Temperature *float64 `json:"temperature,omitempty" validate:"omitempty,min=0,max=2" example:"0.7"`
	RAGEnabled  bool     `json:"ragEnabled"`
	FileName    string   `json:"file_name"`
	Keyword     string   `json:"keyword"`
	Cached      bool     `json:"cached"`
	Alpha       *float64 `json:"alpha,omitempty" validate:"omitempty,min=0,max=1" example:"0.7"`
}

// EmailRewriteRequest is the body of POST /api/chat/email/rewrite.
type EmailRewriteRequest struct {
	Email string `json:"email" validate:"required" example:"hey, can u send the file"`
	Tone  string `json:"tone" validate:"required" example:"formal"`
}

// RelayService forwards generation requests to the inference service and
// hands back the open response. It never inspects the stream.
type RelayService struct {
	llm llm.Provider
}

func NewRelayService(provider llm.Provider) *RelayService {
	return &RelayService{llm: provider}
}

// Stream opens a generation stream. The upstream call outlives a client that
// goes away; it ends when the caller closes the body.
func (s *RelayService) Stream(ctx context.Context, req *StreamRequest) (*llm.StreamResponse, error) {
	resp, err := s.llm.GenerateStream(context.WithoutCancel(ctx), toGenerateRequest(req))
	if err != nil {
		return nil, fmt.Errorf("could not reach inference service: %w", err)
	}
	return resp, nil
}

func (s *RelayService) RewriteEmail(ctx context.Context, req *EmailRewriteRequest) (*llm.StreamResponse, error) {
	resp, err := s.llm.RewriteEmail(context.WithoutCancel(ctx), &llm.EmailRequest{Email: req.Email, Tone: req.Tone})
	if err != nil {
		return nil, fmt.Errorf("could not reach inference service: %w", err)
	}
	return resp, nil
}

func toGenerateRequest(req *StreamRequest) *llm.GenerateRequest {
	alpha := defaultAlpha
	if req.Alpha != nil {
		alpha = *req.Alpha
	}
	return &llm.GenerateRequest{
		Prompt:      req.Question,
		Model:       req.Model,
		Temperature: req.Temperature,
		RAGEnabled:  req.RAGEnabled,
		FileName:    req.FileName,
		Keyword:     req.Keyword,
		Cached:      req.Cached,
		Alpha:       alpha,
	}
}
