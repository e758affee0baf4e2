// Package stream decodes the event stream produced by the inference service
// and relayed by this server.
//
// The framing is newline-delimited: each line is blank, or "data: " followed by
// a JSON object. Lines carrying anything else are ignored.
package stream

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
)

const dataPrefix = "data: "

// Record types carried in Event.Type.
const (
	TypeReasoning = "reasoning"
	TypeContent   = "content"
)

// Event is one decoded data line.
type Event struct {
	Type     string          `json:"type,omitempty"`
	Content  string          `json:"content,omitempty"`
	Error    string          `json:"error,omitempty"`
	Done     bool            `json:"done,omitempty"`
	Metadata json.RawMessage `json:"metadata,omitempty"`
}

// Decoder reads events from a byte stream whose chunk boundaries need not
// line up with line boundaries. An incomplete trailing line is kept until
// the rest of it arrives.
type Decoder struct {
	r   *bufio.Reader
	eof bool

	// Skipped counts data lines dropped because their JSON was malformed.
	Skipped int
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// Next returns the next event, or io.EOF once the stream is exhausted. At EOF
// an unterminated final line is still decoded. Read errors other than EOF are
// returned as-is.
func (d *Decoder) Next() (Event, error) {
	for !d.eof {
		line, err := d.r.ReadBytes('\n')
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return Event{}, err
			}
			d.eof = true
		}

		ev, ok := d.parseLine(line)
		if ok {
			return ev, nil
		}
	}
	return Event{}, io.EOF
}

func (d *Decoder) parseLine(line []byte) (Event, bool) {
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))
	if !bytes.HasPrefix(line, []byte(dataPrefix)) {
		return Event{}, false
	}

	var ev Event
	if err := json.Unmarshal(line[len(dataPrefix):], &ev); err != nil {
		d.Skipped++
		slog.Debug("Skipping malformed stream record", "error", err)
		return Event{}, false
	}
	return ev, true
}
