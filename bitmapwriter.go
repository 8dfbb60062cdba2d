// Package bitmapwriter renders monochrome bit-packed bitmaps as text.
//
// Pixels are grouped into blocks of 1x1 up to 2x3 and each block is drawn
// as a single character from a Unicode block or sextant table (or a
// caller-chosen ASCII character). The output can be framed with a border
// and positioned on a terminal with ANSI cursor sequences, which makes it
// suitable for showing icons, sensor readouts or clock digits in place.
//
// Rendering only ever reads an in-memory buffer handed over by the caller.
// ParseArt, LoadArt, LoadArtFS and the art cache turn textual pixel art into
// such buffers for tests, goldens and the command-line tool. They are a
// convenience layered on top and sit outside the rendering contract; Render
// neither reads files nor depends on them.
//
// Example:
//
//	bm := bitmapwriter.NewBitmap(8, 2, []byte{0x3c, 0x42})
//	w := bitmapwriter.New().
//	    SetStyle(bitmapwriter.UnicodeBlock1x2).
//	    SetFrame(bitmapwriter.UnicodeFrame)
//	if err := w.Print(bm); err != nil {
//	    log.Fatal(err)
//	}
package bitmapwriter

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/ryanlewis/bitmapwriter/internal/debug"
	"github.com/ryanlewis/bitmapwriter/internal/parser"
	"github.com/ryanlewis/bitmapwriter/internal/renderer"
)

// stdout is the destination of Writer.Print.
var stdout io.Writer = os.Stdout

// Writer holds a rendering configuration that persists across renders, so
// one configured Writer can draw many bitmaps (for example the frames of an
// animation). The setters return the Writer for chaining.
//
// A Writer is not safe for concurrent mutation; concurrent renders with an
// unchanged configuration are fine.
type Writer struct {
	opts options
}

// New returns a Writer with the default configuration (UnicodeBlock1x2, no
// frame, no positioning, little-endian, packed rows) modified by opts.
func New(opts ...Option) *Writer {
	w := &Writer{opts: *defaultOptions()}
	for _, opt := range opts {
		opt(&w.opts)
	}
	return w
}

// SetStyle sets the glyph style.
func (w *Writer) SetStyle(s Style) *Writer {
	w.opts.style = s
	return w
}

// SetFrame sets the border.
func (w *Writer) SetFrame(f Frame) *Writer {
	w.opts.frame = f
	return w
}

// SetPosition enables explicit positioning at the 1-based line and column.
func (w *Writer) SetPosition(line, column int) *Writer {
	w.opts.position = &Position{Line: line, Column: column}
	return w
}

// ClearPosition disables explicit positioning.
func (w *Writer) ClearPosition() *Writer {
	w.opts.position = nil
	return w
}

// SetPositionRestore enables or disables cursor save/restore mode. While
// enabled any explicit position is ignored.
func (w *Writer) SetPositionRestore(restore bool) *Writer {
	w.opts.restore = restore
	return w
}

// SetBigEndian selects the bit order within each byte.
func (w *Writer) SetBigEndian(bigEndian bool) *Writer {
	w.opts.bigEndian = bigEndian
	return w
}

// SetByteAligned selects whether rows start on byte boundaries.
func (w *Writer) SetByteAligned(aligned bool) *Writer {
	w.opts.byteAligned = aligned
	return w
}

// SetDebug attaches a debug session; nil disables tracing.
func (w *Writer) SetDebug(s *debug.Session) *Writer {
	w.opts.debug = s
	return w
}

// Style returns the configured style.
func (w *Writer) Style() Style { return w.opts.style }

// Frame returns the configured frame.
func (w *Writer) Frame() Frame { return w.opts.frame }

// Position returns the explicit position, if one is set.
func (w *Writer) Position() (Position, bool) {
	if w.opts.position == nil {
		return Position{}, false
	}
	return *w.opts.position, true
}

// PositionRestore reports whether cursor save/restore mode is enabled.
func (w *Writer) PositionRestore() bool { return w.opts.restore }

// BigEndian reports whether big-endian bit order is selected.
func (w *Writer) BigEndian() bool { return w.opts.bigEndian }

// ByteAligned reports whether rows are byte-aligned.
func (w *Writer) ByteAligned() bool { return w.opts.byteAligned }

// Render writes bm to dst. Writing stops at the first failure, which is
// returned wrapped in ErrSinkWrite. If dst has a Flush() error method it
// is called after the last character.
func (w *Writer) Render(dst io.Writer, bm *Bitmap) error {
	if bm == nil {
		return ErrNilBitmap
	}
	return renderer.RenderTo(dst, bm.toInternal(), w.opts.toInternal())
}

// Print renders bm to standard output and flushes it.
func (w *Writer) Print(bm *Bitmap) error {
	bw := bufio.NewWriter(stdout)
	return w.Render(bw, bm)
}

// String renders bm and returns the output.
func (w *Writer) String(bm *Bitmap) (string, error) {
	if bm == nil {
		return "", ErrNilBitmap
	}
	return renderer.Render(bm.toInternal(), w.opts.toInternal())
}

// Render renders bm with the given options and returns the output.
func Render(bm *Bitmap, opts ...Option) (string, error) {
	return New(opts...).String(bm)
}

// RenderTo renders bm with the given options to dst.
func RenderTo(dst io.Writer, bm *Bitmap, opts ...Option) error {
	return New(opts...).Render(dst, bm)
}

// ParseArt reads textual pixel art from r: one row per line, with any of
// the characters "#@X*1█" marking a set pixel and anything else unset.
// The bitmap is packed using the layout selected by WithBigEndian and
// WithByteAligned, so it renders correctly with the same options.
func ParseArt(r io.Reader, opts ...Option) (*Bitmap, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	art, err := parser.Parse(r, &parser.Options{BigEndian: o.bigEndian, ByteAligned: o.byteAligned})
	if err != nil {
		return nil, err
	}
	return NewBitmap(art.Width, art.Height, art.Pix), nil
}

// ParseArtBytes parses pixel art held in memory.
func ParseArtBytes(data []byte, opts ...Option) (*Bitmap, error) {
	return ParseArt(bytes.NewReader(data), opts...)
}

// LoadArt reads pixel art from a file.
func LoadArt(filePath string, opts ...Option) (*Bitmap, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open art file: %w", err)
	}
	defer f.Close()

	bm, err := ParseArt(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse art %s: %w", filePath, err)
	}
	return bm, nil
}

// cleanFSPath validates and cleans a path for use with fs.FS.
func cleanFSPath(p string) (string, error) {
	if p == "" {
		return "", errors.New("path cannot be empty")
	}
	if strings.HasPrefix(p, "/") {
		return "", errors.New("absolute paths not allowed")
	}
	if strings.ContainsRune(p, '\\') {
		return "", errors.New("backslashes not allowed in fs paths")
	}
	if !fs.ValidPath(p) {
		return "", fmt.Errorf("invalid fs path: %s", p)
	}
	clean := path.Clean(p)
	if clean == "." || strings.HasPrefix(clean, "../") {
		return "", errors.New("path traversal not allowed")
	}
	return clean, nil
}

// LoadArtFS reads pixel art from a filesystem such as an embed.FS.
//
// Example:
//
//	//go:embed icons/*.txt
//	var icons embed.FS
//
//	bm, err := bitmapwriter.LoadArtFS(icons, "icons/heart.txt")
func LoadArtFS(fsys fs.FS, artPath string, opts ...Option) (*Bitmap, error) {
	if fsys == nil {
		return nil, errors.New("filesystem cannot be nil")
	}
	clean, err := cleanFSPath(artPath)
	if err != nil {
		return nil, err
	}

	f, err := fsys.Open(clean)
	if err != nil {
		return nil, fmt.Errorf("failed to open art file: %w", err)
	}
	defer f.Close()

	bm, err := ParseArt(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse art %s: %w", clean, err)
	}
	return bm, nil
}
