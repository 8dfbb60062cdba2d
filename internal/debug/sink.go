package debug

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
)

// Sink is the interface for debug output destinations.
type Sink interface {
	Write(event Event) error
	Flush() error
	Close() error
}

// JSONSink writes events in JSON Lines format.
type JSONSink struct {
	w       *bufio.Writer
	encoder *json.Encoder
}

// NewJSONSink creates a new JSON Lines sink writing to w.
func NewJSONSink(w io.Writer) *JSONSink {
	bw := bufio.NewWriter(w)
	return &JSONSink{
		w:       bw,
		encoder: json.NewEncoder(bw),
	}
}

// Write encodes and writes an event as a JSON line.
func (s *JSONSink) Write(event Event) error {
	return s.encoder.Encode(event)
}

// Flush writes any buffered data to the underlying writer.
func (s *JSONSink) Flush() error {
	return s.w.Flush()
}

// Close flushes the buffer.
func (s *JSONSink) Close() error {
	return s.Flush()
}

// PrettySink writes events in human-readable format.
type PrettySink struct {
	w *bufio.Writer
}

// NewPrettySink creates a new pretty-format sink writing to w.
func NewPrettySink(w io.Writer) *PrettySink {
	return &PrettySink{
		w: bufio.NewWriter(w),
	}
}

// Write formats and writes an event in human-readable format.
func (s *PrettySink) Write(event Event) error {
	// Format: [timestamp] [phase/event]
	fmt.Fprintf(s.w, "[%s] [%s/%s] session=%s\n", event.Timestamp, event.Phase, event.Event, event.SessionID)

	// Pretty print data based on type
	switch d := event.Data.(type) {
	case SessionStartData:
		fmt.Fprintf(s.w, "  schema: %d, pid: %d\n", d.Schema, d.PID)
	case SessionEndData:
		fmt.Fprintf(s.w, "  renders: %d, elapsed_ms: %d\n", d.Renders, d.ElapsedMs)
	case RenderStartData:
		s.writeRenderStart(d)
	case RowData:
		s.writeRow(d)
	case RenderEndData:
		s.writeRenderEnd(d)
	case ErrorData:
		s.writeError(d)
	default:
		fmt.Fprintf(s.w, "  data: %+v\n", d)
	}

	return nil
}

func (s *PrettySink) writeRenderStart(d RenderStartData) {
	fmt.Fprintf(s.w, "  bitmap: %dx%d (%s)\n", d.Width, d.Height, humanize.Bytes(uint64(d.BufferLen)))
	fmt.Fprintf(s.w, "  style: %s (block %dx%d), frame: %s\n", d.Style, d.BlockW, d.BlockH, d.Frame)
	fmt.Fprintf(s.w, "  glyphs: %d columns x %d rows\n", d.Columns, d.Rows)
	fmt.Fprintf(s.w, "  addressing: %s, %s\n", d.BitOrder, d.Alignment)
	fmt.Fprintf(s.w, "  positioning: %s\n", d.Positioning)
}

func (s *PrettySink) writeRow(d RowData) {
	fmt.Fprintf(s.w, "  row: %d, pixel_y: %d, line: %d\n", d.Row, d.PixelY, d.Line)
	fmt.Fprintf(s.w, "  glyphs: %d, set_blocks: %d\n", d.Glyphs, d.Set)
}

func (s *PrettySink) writeRenderEnd(d RenderEndData) {
	fmt.Fprintf(s.w, "  total_lines: %d, total_glyphs: %d\n", d.TotalLines, d.TotalGlyphs)
	fmt.Fprintf(s.w, "  elapsed_ms: %d, bytes_written: %s, flushed: %t\n", d.ElapsedMs, humanize.Bytes(uint64(d.BytesWritten)), d.Flushed)
}

func (s *PrettySink) writeError(d ErrorData) {
	fmt.Fprintf(s.w, "  type: %s\n", d.Type)
	fmt.Fprintf(s.w, "  message: %s\n", d.Message)
	for k, v := range d.Context {
		fmt.Fprintf(s.w, "  %s: %v\n", k, v)
	}
}

// Flush writes any buffered data to the underlying writer.
func (s *PrettySink) Flush() error {
	return s.w.Flush()
}

// Close flushes the buffer.
func (s *PrettySink) Close() error {
	return s.Flush()
}
