package renderer

import (
	"github.com/ryanlewis/bitmapwriter/internal/common"
	"github.com/ryanlewis/bitmapwriter/internal/debug"
)

// Error definitions for the renderer package
var (
	// ErrNilBitmap is returned when a nil bitmap is provided to Render
	ErrNilBitmap = common.ErrNilBitmap
	// ErrSinkWrite wraps every failure reported by the destination
	ErrSinkWrite = common.ErrSinkWrite
)

// Bitmap is the pixel buffer handed over by the main package.
// Pix holds width*height bits, 8 pixels per byte, in row-major order.
type Bitmap struct {
	Width  int
	Height int
	Pix    []byte
}

// Position is a 1-based terminal line and column.
type Position struct {
	Line   int
	Column int
}

// Flusher is implemented by sinks that buffer output. RenderTo flushes such
// a sink after the final character has been written.
type Flusher interface {
	Flush() error
}

// Options contains rendering options passed from the main package
type Options struct {
	// Style is one of the common.Style* identifiers
	Style int
	// Set is the glyph for set pixels in the ASCII style
	Set rune
	// Frame is one of the common.Frame* identifiers
	Frame int
	// Position enables per-line cursor placement when non-nil
	Position *Position
	// PositionRestore wraps the output in cursor save/restore and
	// takes precedence over Position
	PositionRestore bool
	// BigEndian selects the LSB-first bit order within each byte
	BigEndian bool
	// ByteAligned starts every pixel row on a byte boundary
	ByteAligned bool
	// Debug receives trace events when non-nil
	Debug *debug.Session
}
