// Package sse decodes a text/event-stream body into frames.
// Pure function of the byte stream: no network or store dependencies.
package sse

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// DefaultEvent is the event name a frame carries when no "event:" line was sent.
const DefaultEvent = "message"

// Frame is one dispatched event-stream message.
type Frame struct {
	Event string // "message" when the server omitted the event line
	Data  string // data lines joined with "\n"
	ID    string // last id seen on the stream, may be empty
}

// HasExplicitEvent reports whether the server named the event.
func (f Frame) HasExplicitEvent() bool {
	return f.Event != "" && f.Event != DefaultEvent
}

// Decoder reads frames from an event stream in arrival order.
type Decoder struct {
	r      *bufio.Reader
	lastID string

	// Comments counts ":" keep-alive lines seen so far.
	Comments int
}

// NewDecoder creates a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// LastID returns the most recent id field received.
func (d *Decoder) LastID() string {
	return d.lastID
}

// Next blocks until a complete frame is available. A message that carries
// no data lines is not dispatched. At end of stream Next returns io.EOF and
// any partially received message is discarded.
func (d *Decoder) Next() (Frame, error) {
	var (
		event   string
		data    strings.Builder
		hasData bool
	)

	for {
		line, err := d.r.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return Frame{}, io.EOF
			}
			return Frame{}, err
		}
		line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")

		if line == "" {
			if !hasData {
				event = ""
				continue
			}
			if event == "" {
				event = DefaultEvent
			}
			return Frame{Event: event, Data: data.String(), ID: d.lastID}, nil
		}

		if strings.HasPrefix(line, ":") {
			d.Comments++
			continue
		}

		field, value := splitField(line)
		switch field {
		case "event":
			event = value
		case "data":
			if hasData {
				data.WriteByte('\n')
			}
			data.WriteString(value)
			hasData = true
		case "id":
			if !strings.ContainsRune(value, 0) {
				d.lastID = value
			}
		default:
			// "retry" and unknown fields are ignored.
		}
	}
}

// splitField splits "name: value" stripping a single leading space from value.
// A line without a colon is a field name with an empty value.
func splitField(line string) (string, string) {
	name, value, ok := strings.Cut(line, ":")
	if !ok {
		return line, ""
	}
	return name, strings.TrimPrefix(value, " ")
}
