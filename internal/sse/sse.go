// Package sse writes driver records as Server-Sent Events frames.
package sse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"portfolio-backend/internal/stream"
)

// ErrStreamingUnsupported is returned when the response cannot be flushed per frame
var ErrStreamingUnsupported = errors.New("streaming unsupported")

// SetHeaders marks a response as an unbuffered, uncached event stream
func SetHeaders(h http.Header) {
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
}

// Frame encodes one record as "data: <json>\n\n"
func Frame(record any) ([]byte, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record: %w", err)
	}
	frame := make([]byte, 0, len(data)+8)
	frame = append(frame, "data: "...)
	frame = append(frame, data...)
	frame = append(frame, '\n', '\n')
	return frame, nil
}

// Writer is a stream.Sink that writes and flushes one frame per record
type Writer struct {
	out   io.Writer
	flush func() error
}

// NewWriter wraps out. Flushing is used when out is an http.Flusher or has a Flush() error method.
func NewWriter(out io.Writer) *Writer {
	w := &Writer{out: out, flush: func() error { return nil }}
	switch f := out.(type) {
	case http.Flusher:
		w.flush = func() error { f.Flush(); return nil }
	case interface{ Flush() error }:
		w.flush = f.Flush
	}
	return w
}

// Send writes record as one frame and flushes it before returning
func (w *Writer) Send(ctx context.Context, record any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	frame, err := Frame(record)
	if err != nil {
		return err
	}
	if _, err := w.out.Write(frame); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}
	if err := w.flush(); err != nil {
		return fmt.Errorf("failed to flush frame: %w", err)
	}
	return nil
}

// Serve streams session to the client until it disconnects
func Serve(w http.ResponseWriter, r *http.Request, session *stream.Session) (stream.State, error) {
	if _, ok := w.(http.Flusher); !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return stream.StateIdle, ErrStreamingUnsupported
	}

	SetHeaders(w.Header())
	w.WriteHeader(http.StatusOK)

	return session.Run(r.Context(), NewWriter(w)), nil
}
