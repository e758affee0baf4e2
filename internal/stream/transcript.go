package stream

import (
	"context"
	"errors"
	"io"
	"strings"
)

// StreamError is an error record sent by the inference service.
type StreamError struct {
	Message string
}

func (e *StreamError) Error() string {
	return "stream error: " + e.Message
}

// Transcript accumulates the visible answer and the reasoning trace of one
// stream.
type Transcript struct {
	text      strings.Builder
	reasoning strings.Builder
	err       *StreamError
	done      bool
}

// Apply folds one event into the transcript and reports whether consumption
// should stop. An error record stops it and is kept; a done record stops it.
func (t *Transcript) Apply(ev Event) bool {
	if t.Finished() {
		return true
	}
	switch {
	case ev.Error != "":
		t.err = &StreamError{Message: ev.Error}
		return true
	case ev.Done:
		t.done = true
		return true
	case ev.Type == TypeReasoning:
		t.reasoning.WriteString(ev.Content)
	case ev.Type == TypeContent, ev.Content != "":
		t.text.WriteString(ev.Content)
	}
	return false
}

// Text is the full answer so far. Renderers replace, never append.
func (t *Transcript) Text() string { return t.text.String() }

func (t *Transcript) Reasoning() string { return t.reasoning.String() }

// Err returns the stream's error record, if any.
func (t *Transcript) Err() error {
	if t.err == nil {
		return nil
	}
	return t.err
}

// Done reports whether a done record was seen.
func (t *Transcript) Done() bool { return t.done }

func (t *Transcript) Finished() bool { return t.done || t.err != nil }

// Consume decodes r into a new transcript until a done or error record, EOF,
// or ctx cancellation. onUpdate, when set, is called after every event that
// changed the text or reasoning. The returned transcript is never nil, so
// partial text survives a failure.
func Consume(ctx context.Context, r io.Reader, onUpdate func(*Transcript)) (*Transcript, error) {
	t := &Transcript{}
	dec := NewDecoder(r)
	for {
		if err := ctx.Err(); err != nil {
			return t, err
		}
		ev, err := dec.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return t, nil
			}
			return t, err
		}
		if t.Apply(ev) {
			return t, t.Err()
		}
		if onUpdate != nil {
			onUpdate(t)
		}
	}
}
