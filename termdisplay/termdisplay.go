// Package termdisplay is a monochrome display drawn on a terminal.
//
// Dev implements periph.io's display.Drawer, so code written for a small
// OLED or e-paper panel can be pointed at a terminal instead. Every change
// to the frame buffer re-renders the whole display through bitmapwriter in
// cursor save/restore mode, so successive frames overwrite each other in
// place.
//
// Example:
//
//	dev, err := termdisplay.New(os.Stdout, &termdisplay.Opts{W: 64, H: 32})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer dev.Halt()
//	err = dev.Draw(dev.Bounds(), img, image.Point{})
package termdisplay

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"periph.io/x/conn/v3/display"

	"github.com/ryanlewis/bitmapwriter"
	"github.com/ryanlewis/bitmapwriter/termdisplay/image1bit"
)

var _ display.Drawer = (*Dev)(nil)

// ErrHalted is returned by every operation after Halt.
var ErrHalted = errors.New("termdisplay: halted")

// maxSize bounds each dimension to keep a frame within a terminal.
const maxSize = 1024

// Opts is the configuration for a terminal display.
type Opts struct {
	// Display dimensions in pixels
	W int
	H int

	// Style defaults to bitmapwriter.UnicodeBlock2x2 when zero
	Style bitmapwriter.Style
	// Frame drawn around the display
	Frame bitmapwriter.Frame

	// Threshold is the 8-bit luminance at or above which a source pixel is
	// lit. Zero means image1bit.DefaultThreshold.
	Threshold uint8
	// Invert lights dark source pixels instead of bright ones
	Invert bool
}

// Dev is a terminal-backed monochrome display.
type Dev struct {
	w      io.Writer
	rect   image.Rectangle
	writer *bitmapwriter.Writer

	threshold uint8
	invert    bool

	// Frame buffers
	next *image1bit.Packed // Being drawn
	last []byte            // Last rendered frame, nil before the first render

	halted bool
}

// New creates a display of opts.W x opts.H pixels that renders to w.
// Nothing is written until the first Draw or Write.
func New(w io.Writer, opts *Opts) (*Dev, error) {
	if w == nil {
		return nil, errors.New("termdisplay: writer cannot be nil")
	}
	if opts == nil {
		opts = &Opts{W: 128, H: 64}
	}
	if opts.W <= 0 || opts.W > maxSize {
		return nil, fmt.Errorf("termdisplay: width must be between 1 and %d", maxSize)
	}
	if opts.H <= 0 || opts.H > maxSize {
		return nil, fmt.Errorf("termdisplay: height must be between 1 and %d", maxSize)
	}

	style := opts.Style
	if style == (bitmapwriter.Style{}) {
		style = bitmapwriter.UnicodeBlock2x2
	}
	threshold := opts.Threshold
	if threshold == 0 {
		threshold = image1bit.DefaultThreshold
	}

	rect := image.Rect(0, 0, opts.W, opts.H)
	return &Dev{
		w:    w,
		rect: rect,
		writer: bitmapwriter.New(
			bitmapwriter.WithStyle(style),
			bitmapwriter.WithFrame(opts.Frame),
			bitmapwriter.WithPositionRestore(true),
			bitmapwriter.WithByteAligned(true),
		),
		threshold: threshold,
		invert:    opts.Invert,
		next:      image1bit.NewPacked(rect),
	}, nil
}

// ColorModel returns the color model of the display.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds returns the image bounds of the display.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Draw draws src onto the display. The dst rectangle is clipped to the
// display bounds and src is read starting at sp. Each source pixel is lit
// when its luminance reaches the threshold (reversed when inverted).
// The display is re-rendered only if the frame buffer changed.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return ErrHalted
	}

	origin := dst.Min
	dst = dst.Intersect(d.rect)
	if dst.Empty() {
		return nil
	}

	// Fast path: a full frame in the native format
	if srcImg, ok := src.(*image1bit.Packed); ok && !d.invert {
		if dst == d.rect && sp == (image.Point{}) && srcImg.Rect == d.rect {
			copy(d.next.Pix, srcImg.Pix)
			return d.refresh()
		}
	}

	for y := dst.Min.Y; y < dst.Max.Y; y++ {
		sy := sp.Y + y - origin.Y
		for x := dst.Min.X; x < dst.Max.X; x++ {
			sx := sp.X + x - origin.X
			lit := image1bit.Threshold(src.At(sx, sy), d.threshold)
			if d.invert {
				lit = !lit
			}
			d.next.SetBit(x, y, lit)
		}
	}
	return d.refresh()
}

// Write replaces the frame buffer with raw pixel data in image1bit.Packed
// layout and renders it. The data must be exactly ceil(W/8)*H bytes.
func (d *Dev) Write(pixels []byte) (int, error) {
	if d.halted {
		return 0, ErrHalted
	}
	if len(pixels) != len(d.next.Pix) {
		return 0, errors.New("termdisplay: invalid buffer size")
	}
	copy(d.next.Pix, pixels)
	if err := d.refresh(); err != nil {
		return 0, err
	}
	return len(pixels), nil
}

// Halt stops the display. Later calls fail with ErrHalted.
func (d *Dev) Halt() error {
	d.halted = true
	return nil
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("termdisplay.Dev{%dx%d}", d.rect.Dx(), d.rect.Dy())
}

// refresh renders the frame buffer unless it equals the last frame.
func (d *Dev) refresh() error {
	if d.last != nil && bytes.Equal(d.last, d.next.Pix) {
		return nil
	}
	bm := bitmapwriter.NewBitmap(d.rect.Dx(), d.rect.Dy(), d.next.Pix)
	if err := d.writer.Render(d.w, bm); err != nil {
		return err
	}
	if d.last == nil {
		d.last = make([]byte, len(d.next.Pix))
	}
	copy(d.last, d.next.Pix)
	return nil
}
