package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"chat-assistant/backend/internal/llm"
)

// ErrWorkerClosed is reported for jobs submitted after Shutdown.
var ErrWorkerClosed = errors.New("title worker is shut down")

// TitleGenerator is the part of the inference client the worker needs.
type TitleGenerator interface {
	GenerateTitle(ctx context.Context, req *llm.TitleRequest) (*llm.TitleResponse, error)
}

// TitleStore persists an accepted title.
type TitleStore interface {
	SetGeneratedTitle(ctx context.Context, chatID, userID, title string) (bool, error)
}

type TitleJob struct {
	ChatID  string
	UserID  string
	Message string
}

// TitleOutcome reports how a job ended. Applied is false whenever the
// fallback title was kept.
type TitleOutcome struct {
	ChatID  string
	Title   string
	Applied bool
	Err     error
}

type TitleWorkerConfig struct {
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// TitleWorker runs title generation off the request path. Jobs are bound to
// the worker's own lifetime, never to the request that created the chat.
type TitleWorker struct {
	gen   TitleGenerator
	store TitleStore
	cfg   TitleWorkerConfig

	root   context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewTitleWorker(gen TitleGenerator, store TitleStore, cfg TitleWorkerConfig) *TitleWorker {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	root, cancel := context.WithCancel(context.Background())
	return &TitleWorker{gen: gen, store: store, cfg: cfg, root: root, cancel: cancel}
}

// Submit starts the job and returns immediately. The returned channel is
// buffered and receives exactly one outcome; callers may ignore it.
func (w *TitleWorker) Submit(job TitleJob) <-chan TitleOutcome {
	out := make(chan TitleOutcome, 1)

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		out <- TitleOutcome{ChatID: job.ChatID, Err: ErrWorkerClosed}
		close(out)
		return out
	}
	w.wg.Add(1)
	w.mu.Unlock()

	go func() {
		defer w.wg.Done()
		defer close(out)
		out <- w.run(job)
	}()
	return out
}

// Shutdown cancels in-flight jobs and waits for them to return, or for ctx to
// expire.
func (w *TitleWorker) Shutdown(ctx context.Context) error {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()
	w.cancel()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *TitleWorker) run(job TitleJob) TitleOutcome {
	ctx, cancel := context.WithTimeout(w.root, w.cfg.Timeout)
	defer cancel()

	outcome := TitleOutcome{ChatID: job.ChatID}

	title, err := w.generate(ctx, job)
	if err != nil {
		slog.Warn("Title generation failed, keeping fallback title", "chat_id", job.ChatID, "error", err)
		outcome.Err = err
		return outcome
	}

	updated, err := w.store.SetGeneratedTitle(ctx, job.ChatID, job.UserID, title)
	if err != nil {
		slog.Error("Failed to store generated title", "chat_id", job.ChatID, "error", err)
		outcome.Err = err
		return outcome
	}
	if !updated {
		// The chat was deleted while the title was being generated.
		slog.Debug("Chat gone before title could be stored", "chat_id", job.ChatID)
		return outcome
	}

	slog.Info("Applied generated title", "chat_id", job.ChatID, "title", title)
	outcome.Title = title
	outcome.Applied = true
	return outcome
}

// generate calls the title service with bounded retries and validates the result.
func (w *TitleWorker) generate(ctx context.Context, job TitleJob) (string, error) {
	req := &llm.TitleRequest{Message: job.Message, ChatID: job.ChatID}

	var lastErr error
	for attempt := 0; attempt <= w.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			slog.Debug("Retrying title generation", "chat_id", job.ChatID, "attempt", attempt)
			select {
			case <-ctx.Done():
				return "", fmt.Errorf("title generation timed out: %w", ctx.Err())
			case <-time.After(w.cfg.RetryDelay):
			}
		}

		resp, err := w.gen.GenerateTitle(ctx, req)
		if err == nil {
			return acceptTitle(resp.Title)
		}
		lastErr = err

		if ctx.Err() != nil {
			return "", fmt.Errorf("title generation timed out: %w", ctx.Err())
		}
		if !llm.Retryable(err) {
			return "", err
		}
	}
	return "", fmt.Errorf("title generation failed after %d attempts: %w", w.cfg.MaxRetries+1, lastErr)
}

func acceptTitle(raw string) (string, error) {
	title := strings.TrimSpace(raw)
	if title == "" {
		return "", errors.New("generated title is empty")
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return "", fmt.Errorf("generated title exceeds %d characters", MaxTitleLength)
	}
	return title, nil
}
