// Package common provides shared constants and types for internal packages.
// These constants must match the public API in the bitmapwriter package.
package common

import "errors"

// Style identifiers (must match public API in bitmapwriter package)
const (
	// StyleASCII1x1 encodes one pixel per glyph using a caller-supplied rune
	StyleASCII1x1 = iota
	// StyleUnicodeBlock1x1 encodes one pixel per glyph using the full block
	StyleUnicodeBlock1x1
	// StyleUnicodeBlock1x2 encodes a 1x2 pixel column using half blocks
	StyleUnicodeBlock1x2
	// StyleUnicodeBlock2x2 encodes a 2x2 pixel block using quadrants
	StyleUnicodeBlock2x2
	// StyleUnicodeSextant1x3 encodes a 1x3 pixel column using sextants
	StyleUnicodeSextant1x3
	// StyleUnicodeSextant2x3 encodes a 2x3 pixel block using sextants
	StyleUnicodeSextant2x3
)

// Frame identifiers (must match public API)
const (
	FrameNone = iota
	FrameASCII
	FrameUnicode
	FrameUnicodeBold
	FrameUnicodeDouble
	FrameUnicodeBlock
	FrameUnicodeShade
)

// Common errors (must match public API in bitmapwriter package)
var (
	// ErrSinkWrite is returned when the destination fails a write or flush
	ErrSinkWrite = errors.New("sink write failed")
	// ErrNilBitmap is returned when a nil bitmap is rendered
	ErrNilBitmap = errors.New("bitmap cannot be nil")
	// ErrUnknownStyle is returned when a style name cannot be resolved
	ErrUnknownStyle = errors.New("unknown style")
	// ErrUnknownFrame is returned when a frame name cannot be resolved
	ErrUnknownFrame = errors.New("unknown frame")
	// ErrInvalidPosition is returned for cursor positions below 1
	ErrInvalidPosition = errors.New("invalid position")
)

// StyleNames maps style identifiers to their CLI/config names.
var StyleNames = [...]string{
	StyleASCII1x1:          "ascii",
	StyleUnicodeBlock1x1:   "block1x1",
	StyleUnicodeBlock1x2:   "block1x2",
	StyleUnicodeBlock2x2:   "block2x2",
	StyleUnicodeSextant1x3: "sextant1x3",
	StyleUnicodeSextant2x3: "sextant2x3",
}

// FrameNames maps frame identifiers to their CLI/config names.
var FrameNames = [...]string{
	FrameNone:          "none",
	FrameASCII:         "ascii",
	FrameUnicode:       "light",
	FrameUnicodeBold:   "bold",
	FrameUnicodeDouble: "double",
	FrameUnicodeBlock:  "block",
	FrameUnicodeShade:  "shade",
}

// StyleName returns the name of a style identifier, or "unknown".
func StyleName(style int) string {
	if style < 0 || style >= len(StyleNames) {
		return "unknown"
	}
	return StyleNames[style]
}

// FrameName returns the name of a frame identifier, or "unknown".
func FrameName(frame int) string {
	if frame < 0 || frame >= len(FrameNames) {
		return "unknown"
	}
	return FrameNames[frame]
}
