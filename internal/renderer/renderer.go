// Package renderer converts packed monochrome bitmaps into glyph streams.
package renderer

import (
	"io"
	"strings"
	"time"

	"github.com/ryanlewis/bitmapwriter/internal/common"
	"github.com/ryanlewis/bitmapwriter/internal/debug"
	"github.com/ryanlewis/bitmapwriter/internal/glyphs"
)

// ceilDiv divides a by b rounding up; negative sizes count as zero.
func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

// RenderTo writes the glyph representation of bm to w.
//
// Output order: cursor save (restore mode), top border, one line per block
// row with left edge, glyphs and right edge, bottom border, cursor restore.
// In explicit positioning mode every line is preceded by a cursor move to
// the configured line plus the number of lines already written.
//
// The first failed write aborts the render; the returned error wraps
// ErrSinkWrite and the sink's error. If w implements Flusher it is flushed
// after the final character.
func RenderTo(w io.Writer, bm *Bitmap, opts *Options) error {
	if bm == nil {
		return ErrNilBitmap
	}
	if opts == nil {
		opts = &Options{Style: common.StyleUnicodeBlock1x2}
	}

	table := glyphs.Style(opts.Style, opts.Set)
	enc := newBlockEncoder(bm, table, opts.BigEndian, opts.ByteAligned)
	cols := ceilDiv(bm.Width, table.W)
	rows := ceilDiv(bm.Height, table.H)
	frame := newFrameRenderer(opts.Frame, cols)
	cursor := newCursorPositioner(opts.Position, opts.PositionRestore)

	out := acquireOutput(w)
	defer releaseOutput(out)

	var startTime time.Time
	if opts.Debug != nil {
		startTime = time.Now()
		opts.Debug.Emit("render", "Start", debug.RenderStartData{
			Width:       bm.Width,
			Height:      bm.Height,
			BufferLen:   len(bm.Pix),
			Style:       common.StyleName(opts.Style),
			Frame:       common.FrameName(opts.Frame),
			BlockW:      table.W,
			BlockH:      table.H,
			Columns:     cols,
			Rows:        rows,
			BitOrder:    debug.BitOrder(opts.BigEndian),
			Alignment:   debug.Alignment(opts.ByteAligned),
			Positioning: cursor.mode.String(),
		})
	}

	written, err := render(out, enc, frame, cursor, bm, cols, opts.Debug)
	flushed := false
	if err == nil {
		flushed, err = out.flushSink()
	}

	if opts.Debug != nil {
		if err != nil {
			opts.Debug.Emit("render", "Error", debug.ErrorData{
				Type:    "sink_write",
				Message: err.Error(),
				Context: map[string]interface{}{
					"lines_written": out.lines,
					"bytes_written": out.written,
				},
			})
		}
		opts.Debug.Emit("render", "End", debug.RenderEndData{
			TotalLines:   out.lines,
			TotalGlyphs:  written * cols,
			ElapsedMs:    time.Since(startTime).Milliseconds(),
			BytesWritten: out.written,
			Flushed:      flushed,
		})
	}

	return err
}

// render runs the row loop and returns the number of content rows written.
// Each line is handed to the sink as soon as it is complete and the loop
// stops at the first write error.
func render(out *output, enc blockEncoder, frame frameRenderer, cursor cursorPositioner, bm *Bitmap, cols int, session *debug.Session) (int, error) {
	line := 0
	cursor.begin(out)

	if frame.enabled {
		cursor.moveTo(out, line)
		frame.top(out)
		if err := out.endLine(); err != nil {
			return 0, err
		}
		line++
	}

	row := 0
	for y := 0; y < bm.Height; y += enc.table.H {
		cursor.moveTo(out, line)
		frame.left(out)
		set := 0
		for x := 0; x < bm.Width; x += enc.table.W {
			idx := enc.index(x, y)
			if idx != 0 {
				set++
			}
			out.writeRune(enc.table.Glyphs[idx])
		}
		frame.right(out)
		if err := out.endLine(); err != nil {
			return row, err
		}

		if session != nil {
			session.Emit("render", "Row", debug.RowData{
				Row:    row,
				PixelY: y,
				Line:   line,
				Glyphs: cols,
				Set:    set,
			})
		}
		line++
		row++
	}

	if frame.enabled {
		cursor.moveTo(out, line)
		frame.bottom(out)
		if err := out.endLine(); err != nil {
			return row, err
		}
	}

	cursor.end(out)
	return row, out.flush()
}

// Render converts bm using opts and returns the output as a string.
func Render(bm *Bitmap, opts *Options) (string, error) {
	var sb strings.Builder
	if bm != nil {
		// Estimate: up to 4 bytes per glyph plus frame and newline
		estimated := (bm.Width + 3) * (bm.Height + 2) * 4
		if estimated > 0 && estimated < 1<<20 {
			sb.Grow(estimated)
		}
	}

	if err := RenderTo(&sb, bm, opts); err != nil {
		return "", err
	}
	return sb.String(), nil
}
