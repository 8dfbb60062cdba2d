package bitmapwriter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ryanlewis/bitmapwriter/internal/common"
	"github.com/ryanlewis/bitmapwriter/internal/debug"
	"github.com/ryanlewis/bitmapwriter/internal/parser"
	"github.com/ryanlewis/bitmapwriter/internal/renderer"
)

// Bitmap is a monochrome pixel buffer: width x height pixels packed 8 per
// byte in row-major order. A Bitmap is never modified by rendering and may
// be shared across goroutines.
type Bitmap struct {
	width  int
	height int
	pix    []byte
}

// NewBitmap wraps pix as a width x height bitmap. The slice is not copied.
//
// pix does not have to be long enough for the declared size: pixels
// addressed past its end render as unset.
func NewBitmap(width, height int, pix []byte) *Bitmap {
	return &Bitmap{width: width, height: height, pix: pix}
}

// Width returns the bitmap width in pixels.
func (b *Bitmap) Width() int { return b.width }

// Height returns the bitmap height in pixels.
func (b *Bitmap) Height() int { return b.height }

// Pix returns the packed pixel data. The returned slice should not be modified.
func (b *Bitmap) Pix() []byte { return b.pix }

// PixelSet reports whether the pixel at (x, y) is set under the bit order
// and row alignment selected by opts. Only WithBigEndian and WithByteAligned
// are consulted.
func (b *Bitmap) PixelSet(x, y int, opts ...Option) bool {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return renderer.PixelSet(b.pix, x, y, b.width, o.bigEndian, o.byteAligned)
}

func (b *Bitmap) toInternal() *renderer.Bitmap {
	if b == nil {
		return nil
	}
	return &renderer.Bitmap{Width: b.width, Height: b.height, Pix: b.pix}
}

// Style selects how pixels are grouped into glyphs.
//
// The zero Style is ASCII1x1 with a NUL set glyph; use one of the exported
// values or ASCII1x1 instead.
type Style struct {
	kind int
	set  rune
}

// Built-in Unicode styles. The block size is given as width x height pixels.
var (
	// UnicodeBlock1x1 draws every pixel as a full block.
	UnicodeBlock1x1 = Style{kind: common.StyleUnicodeBlock1x1}
	// UnicodeBlock1x2 stacks two pixels per glyph with half blocks. This is
	// the default style.
	UnicodeBlock1x2 = Style{kind: common.StyleUnicodeBlock1x2}
	// UnicodeBlock2x2 encodes 2x2 pixels with quadrant blocks.
	UnicodeBlock2x2 = Style{kind: common.StyleUnicodeBlock2x2}
	// UnicodeSextant1x3 encodes a column of three pixels with sextants.
	UnicodeSextant1x3 = Style{kind: common.StyleUnicodeSextant1x3}
	// UnicodeSextant2x3 encodes 2x3 pixels with sextants.
	UnicodeSextant2x3 = Style{kind: common.StyleUnicodeSextant2x3}
)

// ASCII1x1 draws every set pixel as set and every unset pixel as a space.
func ASCII1x1(set rune) Style {
	return Style{kind: common.StyleASCII1x1, set: set}
}

// Set returns the set glyph of an ASCII1x1 style, or 0 for other styles.
func (s Style) Set() rune {
	if s.kind != common.StyleASCII1x1 {
		return 0
	}
	return s.set
}

// BlockSize returns the number of pixels encoded by one glyph horizontally
// and vertically.
func (s Style) BlockSize() (w, h int) {
	switch s.kind {
	case common.StyleUnicodeBlock1x2:
		return 1, 2
	case common.StyleUnicodeBlock2x2:
		return 2, 2
	case common.StyleUnicodeSextant1x3:
		return 1, 3
	case common.StyleUnicodeSextant2x3:
		return 2, 3
	default:
		return 1, 1
	}
}

// String returns the style name accepted by ParseStyle.
func (s Style) String() string {
	return common.StyleName(s.kind)
}

// ParseStyle returns the style with the given name. set is the glyph used
// by the "ascii" style and ignored otherwise.
func ParseStyle(name string, set rune) (Style, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for kind, n := range common.StyleNames {
		if n != name {
			continue
		}
		if kind == common.StyleASCII1x1 {
			return ASCII1x1(set), nil
		}
		return Style{kind: kind}, nil
	}
	return Style{}, fmt.Errorf("%w: %q", ErrUnknownStyle, name)
}

// Frame selects the border drawn around the rendered glyphs.
type Frame int

// Available frames.
const (
	NoFrame            Frame = common.FrameNone
	ASCIIFrame         Frame = common.FrameASCII
	UnicodeFrame       Frame = common.FrameUnicode
	UnicodeBoldFrame   Frame = common.FrameUnicodeBold
	UnicodeDoubleFrame Frame = common.FrameUnicodeDouble
	UnicodeBlockFrame  Frame = common.FrameUnicodeBlock
	UnicodeShadeFrame  Frame = common.FrameUnicodeShade
)

// String returns the frame name accepted by ParseFrame.
func (f Frame) String() string {
	return common.FrameName(int(f))
}

// ParseFrame returns the frame with the given name.
func ParseFrame(name string) (Frame, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for f, n := range common.FrameNames {
		if n == name {
			return Frame(f), nil
		}
	}
	return NoFrame, fmt.Errorf("%w: %q", ErrUnknownFrame, name)
}

// Position is a 1-based terminal line and column.
type Position struct {
	Line   int
	Column int
}

// String formats p as "line,column".
func (p Position) String() string {
	return strconv.Itoa(p.Line) + "," + strconv.Itoa(p.Column)
}

// ParsePosition parses "line,column" with both values 1 or greater.
func ParsePosition(s string) (Position, error) {
	lineStr, colStr, ok := strings.Cut(s, ",")
	if !ok {
		return Position{}, fmt.Errorf("%w: %q (want line,column)", ErrInvalidPosition, s)
	}
	line, err := strconv.Atoi(strings.TrimSpace(lineStr))
	if err != nil || line < 1 {
		return Position{}, fmt.Errorf("%w: bad line %q", ErrInvalidPosition, lineStr)
	}
	col, err := strconv.Atoi(strings.TrimSpace(colStr))
	if err != nil || col < 1 {
		return Position{}, fmt.Errorf("%w: bad column %q", ErrInvalidPosition, colStr)
	}
	return Position{Line: line, Column: col}, nil
}

// Common errors returned by the bitmapwriter package
var (
	// ErrSinkWrite wraps every failure reported by the destination of a
	// render. The sink's own error is wrapped as well.
	ErrSinkWrite = common.ErrSinkWrite

	// ErrNilBitmap is returned when a nil *Bitmap is rendered
	ErrNilBitmap = common.ErrNilBitmap

	// ErrUnknownStyle is returned by ParseStyle for unknown names
	ErrUnknownStyle = common.ErrUnknownStyle

	// ErrUnknownFrame is returned by ParseFrame for unknown names
	ErrUnknownFrame = common.ErrUnknownFrame

	// ErrInvalidPosition is returned by ParsePosition for malformed input
	ErrInvalidPosition = common.ErrInvalidPosition

	// ErrEmptyArt is returned when parsed pixel art contains no pixels
	ErrEmptyArt = parser.ErrEmptyArt
)

// Option configures a Writer or a single render call.
type Option func(*options)

type options struct {
	style       Style
	frame       Frame
	position    *Position
	restore     bool
	bigEndian   bool
	byteAligned bool
	debug       *debug.Session
}

func defaultOptions() *options {
	return &options{style: UnicodeBlock1x2}
}

func (o *options) toInternal() *renderer.Options {
	ro := &renderer.Options{
		Style:           o.style.kind,
		Set:             o.style.set,
		Frame:           int(o.frame),
		PositionRestore: o.restore,
		BigEndian:       o.bigEndian,
		ByteAligned:     o.byteAligned,
		Debug:           o.debug,
	}
	if o.position != nil {
		ro.Position = &renderer.Position{Line: o.position.Line, Column: o.position.Column}
	}
	return ro
}

// WithStyle sets the glyph style. The default is UnicodeBlock1x2.
func WithStyle(s Style) Option {
	return func(opts *options) {
		opts.style = s
	}
}

// WithFrame sets the border. The default is NoFrame.
func WithFrame(f Frame) Option {
	return func(opts *options) {
		opts.frame = f
	}
}

// WithPosition places the output at a fixed terminal position: before
// every output line, including borders, the cursor is moved to
// (line + lines already written, column).
//
// Ignored when WithPositionRestore(true) is also given.
func WithPosition(line, column int) Option {
	return func(opts *options) {
		opts.position = &Position{Line: line, Column: column}
	}
}

// WithPositionRestore wraps the output in cursor save and restore
// sequences, so repeated renders overwrite the same screen region.
func WithPositionRestore(restore bool) Option {
	return func(opts *options) {
		opts.restore = restore
	}
}

// WithBigEndian selects the bit order within each byte. Little-endian
// (the default) treats the most significant bit as the leftmost pixel;
// big-endian treats the least significant bit as leftmost.
func WithBigEndian(bigEndian bool) Option {
	return func(opts *options) {
		opts.bigEndian = bigEndian
	}
}

// WithByteAligned starts every pixel row on a byte boundary, skipping the
// unused bits at the end of each row's last byte.
func WithByteAligned(aligned bool) Option {
	return func(opts *options) {
		opts.byteAligned = aligned
	}
}

// WithDebug attaches a debug session that receives render trace events.
// A nil session disables tracing.
func WithDebug(s *debug.Session) Option {
	return func(opts *options) {
		opts.debug = s
	}
}
