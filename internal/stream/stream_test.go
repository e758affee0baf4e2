package stream_test

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chat-assistant/backend/internal/stream"
)

const sample = "data: {\"type\":\"reasoning\",\"content\":\"Thinking\"}\n" +
	"\n" +
	": keep-alive comment\n" +
	"data: {\"type\":\"content\",\"content\":\"Hel\"}\r\n" +
	"data: {not json}\n" +
	"data: {\"content\":\"lo, \"}\n" +
	"data: {\"type\":\"content\",\"content\":\"wörld\",\"metadata\":{\"rag_enabled\":true}}\n" +
	"data: {\"done\":true}\n" +
	"data: {\"type\":\"content\",\"content\":\"ignored after done\"}\n"

// chunkedReader serves the given chunks one Read at a time.
type chunkedReader struct {
	chunks []string
}

func (c *chunkedReader) Read(p []byte) (int, error) {
	if len(c.chunks) == 0 {
		return 0, io.EOF
	}
	n := copy(p, c.chunks[0])
	if n < len(c.chunks[0]) {
		c.chunks[0] = c.chunks[0][n:]
	} else {
		c.chunks = c.chunks[1:]
	}
	return n, nil
}

func splitAt(s string, cuts []int) []string {
	var chunks []string
	prev := 0
	for _, c := range cuts {
		chunks = append(chunks, s[prev:c])
		prev = c
	}
	return append(chunks, s[prev:])
}

func consume(t *testing.T, r io.Reader) *stream.Transcript {
	t.Helper()
	tr, err := stream.Consume(context.Background(), r, nil)
	require.NoError(t, err)
	return tr
}

func TestConsume(t *testing.T) {
	tr := consume(t, strings.NewReader(sample))

	assert.Equal(t, "Hello, wörld", tr.Text())
	assert.Equal(t, "Thinking", tr.Reasoning())
	assert.True(t, tr.Done())
	assert.NoError(t, tr.Err())
}

func TestConsume_ChunkBoundariesDoNotMatter(t *testing.T) {
	want := consume(t, strings.NewReader(sample))

	t.Run("One byte at a time", func(t *testing.T) {
		got := consume(t, iotest.OneByteReader(strings.NewReader(sample)))
		assert.Equal(t, want.Text(), got.Text())
		assert.Equal(t, want.Reasoning(), got.Reasoning())
	})

	t.Run("Every single split point", func(t *testing.T) {
		for i := 1; i < len(sample); i++ {
			got := consume(t, &chunkedReader{chunks: splitAt(sample, []int{i})})
			require.Equal(t, want.Text(), got.Text(), "split at %d", i)
			require.Equal(t, want.Reasoning(), got.Reasoning(), "split at %d", i)
		}
	})

	t.Run("Random multi-way splits", func(t *testing.T) {
		rng := rand.New(rand.NewSource(42))
		for round := 0; round < 200; round++ {
			var cuts []int
			for pos := 1 + rng.Intn(8); pos < len(sample); pos += 1 + rng.Intn(8) {
				cuts = append(cuts, pos)
			}
			got := consume(t, &chunkedReader{chunks: splitAt(sample, cuts)})
			require.Equal(t, want.Text(), got.Text(), "cuts %v", cuts)
			require.Equal(t, want.Reasoning(), got.Reasoning(), "cuts %v", cuts)
		}
	})
}

func TestConsume_ErrorRecord(t *testing.T) {
	body := "data: {\"type\":\"content\",\"content\":\"partial\"}\n" +
		"data: {\"error\":\"model crashed\"}\n" +
		"data: {\"type\":\"content\",\"content\":\" never shown\"}\n"

	tr, err := stream.Consume(context.Background(), strings.NewReader(body), nil)

	var streamErr *stream.StreamError
	require.ErrorAs(t, err, &streamErr)
	assert.Equal(t, "model crashed", streamErr.Message)
	assert.Equal(t, "partial", tr.Text())
	assert.False(t, tr.Done())
}

func TestConsume_ReadErrorKeepsPartialText(t *testing.T) {
	r := io.MultiReader(strings.NewReader("data: {\"content\":\"half\"}\n"), iotest.ErrReader(errors.New("connection reset")))

	tr, err := stream.Consume(context.Background(), r, nil)
	assert.ErrorContains(t, err, "connection reset")
	assert.Equal(t, "half", tr.Text())
}

func TestConsume_UnterminatedFinalLine(t *testing.T) {
	tr := consume(t, strings.NewReader("data: {\"content\":\"a\"}\ndata: {\"content\":\"b\"}"))
	assert.Equal(t, "ab", tr.Text())
	assert.False(t, tr.Done())
}

func TestConsume_OnUpdateSeesGrowingText(t *testing.T) {
	var renders []string
	_, err := stream.Consume(context.Background(), strings.NewReader(sample), func(tr *stream.Transcript) {
		renders = append(renders, tr.Text())
	})
	require.NoError(t, err)
	require.NotEmpty(t, renders)
	assert.Equal(t, "Hello, wörld", renders[len(renders)-1])
	for i := 1; i < len(renders); i++ {
		assert.True(t, strings.HasPrefix(renders[i], renders[i-1]))
	}
}

func TestConsume_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tr, err := stream.Consume(ctx, strings.NewReader(sample), nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, tr.Text())
}

func TestDecoder_SkipsMalformed(t *testing.T) {
	dec := stream.NewDecoder(strings.NewReader("data: {oops\ndata: {\"done\":true}\n"))

	ev, err := dec.Next()
	require.NoError(t, err)
	assert.True(t, ev.Done)
	assert.Equal(t, 1, dec.Skipped)

	_, err = dec.Next()
	assert.ErrorIs(t, err, io.EOF)
}
