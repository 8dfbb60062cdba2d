package image1bit

import (
	"image"
	"image/color"
)

// Bit is a monochrome color: On is lit, Off is dark.
type Bit bool

// The two Bit values.
const (
	Off Bit = false
	On  Bit = true
)

// RGBA converts the bit to white (On) or black (Off).
func (b Bit) RGBA() (r, g, bl, a uint32) {
	if b {
		return 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF
	}
	return 0, 0, 0, 0xFFFF
}

// DefaultThreshold is the 8-bit luminance at or above which BitModel
// converts a color to On.
const DefaultThreshold = 0x80

// Luma returns the 8-bit luminance of c, premultiplied by its alpha so that
// transparent pixels are dark.
func Luma(c color.Color) uint8 {
	r, g, b, _ := c.RGBA()
	// 0.299R + 0.587G + 0.114B on 16-bit channels
	y := (299*r + 587*g + 114*b + 500) / 1000
	return uint8(y >> 8)
}

// Threshold converts c to a Bit using the given luminance level.
func Threshold(c color.Color, level uint8) Bit {
	if b, ok := c.(Bit); ok {
		return b
	}
	return Bit(Luma(c) >= level)
}

func toBit(c color.Color) color.Color {
	return Threshold(c, DefaultThreshold)
}

// BitModel converts colors to Bit at DefaultThreshold.
var BitModel = color.ModelFunc(toBit)

// Packed is a 1-bit image with MSB-first pixels and byte-aligned rows.
type Packed struct {
	Pix    []byte          // Pixel data (8 pixels per byte)
	Stride int             // Bytes per row
	Rect   image.Rectangle // Image bounds
}

// NewPacked creates a blank image with the given bounds.
func NewPacked(r image.Rectangle) *Packed {
	w, h := r.Dx(), r.Dy()
	if w <= 0 || h <= 0 {
		return &Packed{Rect: r}
	}
	stride := (w + 7) / 8
	return &Packed{
		Pix:    make([]byte, stride*h),
		Stride: stride,
		Rect:   r,
	}
}

// ColorModel returns BitModel.
func (p *Packed) ColorModel() color.Model {
	return BitModel
}

// Bounds returns the image bounds.
func (p *Packed) Bounds() image.Rectangle {
	return p.Rect
}

// At returns the color of the pixel at (x, y).
func (p *Packed) At(x, y int) color.Color {
	return p.BitAt(x, y)
}

// BitAt returns the pixel at (x, y); pixels outside the bounds are Off.
func (p *Packed) BitAt(x, y int) Bit {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return Off
	}
	offset, mask := p.pixOffset(x, y)
	return p.Pix[offset]&mask != 0
}

// Set sets the pixel at (x, y) to c converted by BitModel.
func (p *Packed) Set(x, y int, c color.Color) {
	p.SetBit(x, y, Threshold(c, DefaultThreshold))
}

// SetBit sets the pixel at (x, y). Points outside the bounds are ignored.
func (p *Packed) SetBit(x, y int, b Bit) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	offset, mask := p.pixOffset(x, y)
	if b {
		p.Pix[offset] |= mask
	} else {
		p.Pix[offset] &^= mask
	}
}

// pixOffset returns the byte offset and bit mask for the pixel at (x, y).
func (p *Packed) pixOffset(x, y int) (offset int, mask byte) {
	dx := x - p.Rect.Min.X
	offset = (y-p.Rect.Min.Y)*p.Stride + dx/8
	mask = 0x80 >> (dx % 8)
	return
}
