// Package glyphs holds the lookup tables used to turn pixel blocks into
// characters and to draw frames around the result.
//
// Block tables are indexed by the block's bit pattern: the pixel at local
// position (xx, yy) contributes bit yy*w+xx. Every table is an array whose
// length is fixed to 1<<(w*h) at compile time.
package glyphs

import "github.com/ryanlewis/bitmapwriter/internal/common"

// Table describes the block geometry of a style and its glyph list.
type Table struct {
	W, H   int
	Glyphs []rune
}

// Size returns the number of pixels encoded per glyph.
func (t Table) Size() int {
	return t.W * t.H
}

var (
	block1x1 = [1 << (1 * 1)]rune{
		' ', '█',
	}

	block1x2 = [1 << (1 * 2)]rune{
		' ', '▀', '▄', '█',
	}

	block2x2 = [1 << (2 * 2)]rune{
		' ', '▘', '▝', '▀', '▖', '▋', '▞', '▛',
		'▗', '▚', '▐', '▜', '▄', '▙', '▟', '█',
	}

	sextant1x3 = [1 << (1 * 3)]rune{
		' ', '🬀', '🬃', '🬄', '🬏', '🬐', '🬓', '▋',
	}

	sextant2x3 = [1 << (2 * 3)]rune{
		' ', '🬀', '🬁', '🬂', '🬃', '🬄', '🬅', '🬆',
		'🬇', '🬈', '🬉', '🬊', '🬋', '🬌', '🬍', '🬎',
		'🬏', '🬐', '🬑', '🬒', '🬓', '▋', '🬔', '🬕',
		'🬖', '🬗', '🬘', '🬙', '🬚', '🬛', '🬜', '🬝',
		'🬞', '🬟', '🬠', '🬡', '🬢', '🬣', '🬤', '🬥',
		'🬦', '🬧', '▐', '🬨', '🬩', '🬪', '🬫', '🬬',
		'🬭', '🬮', '🬯', '🬰', '🬱', '🬲', '🬳', '🬴',
		'🬵', '🬶', '🬷', '🬸', '🬹', '🬺', '🬻', '🮋',
	}
)

// Style returns the table for the given style identifier. set is the glyph
// used for set pixels by the ASCII style and ignored otherwise. Unknown
// identifiers fall back to the default 1x2 block style.
func Style(style int, set rune) Table {
	switch style {
	case common.StyleASCII1x1:
		return Table{W: 1, H: 1, Glyphs: []rune{' ', set}}
	case common.StyleUnicodeBlock1x1:
		return Table{W: 1, H: 1, Glyphs: block1x1[:]}
	case common.StyleUnicodeBlock2x2:
		return Table{W: 2, H: 2, Glyphs: block2x2[:]}
	case common.StyleUnicodeSextant1x3:
		return Table{W: 1, H: 3, Glyphs: sextant1x3[:]}
	case common.StyleUnicodeSextant2x3:
		return Table{W: 2, H: 3, Glyphs: sextant2x3[:]}
	default:
		return Table{W: 1, H: 2, Glyphs: block1x2[:]}
	}
}

// Tile positions inside a NinePatch.
const (
	TopLeft = iota
	Top
	TopRight
	Left
	Fill
	Right
	BottomLeft
	Bottom
	BottomRight
)

// NinePatch is a frame tile set in row-major order: corners, edges and the
// (unused) fill tile.
type NinePatch [9]rune

var (
	asciiFrame  = NinePatch{'.', '-', '.', '|', ' ', '|', '\'', '-', '\''}
	lightFrame  = NinePatch{'┌', '─', '┐', '│', ' ', '│', '└', '─', '┘'}
	boldFrame   = NinePatch{'┏', '━', '┓', '┃', ' ', '┃', '┗', '━', '┛'}
	doubleFrame = NinePatch{'╔', '═', '╗', '║', ' ', '║', '╚', '═', '╝'}
	blockFrame  = NinePatch{'▞', '▀', '▚', '▌', ' ', '▐', '▚', '▄', '▞'}
	shadeFrame  = NinePatch{'🮞', '🮐', '🮟', '🮐', ' ', '🮐', '🮝', '🮐', '🮜'}
)

// Frame returns the tile set for the given frame identifier. FrameNone has
// no tiles of its own and reports ok=false.
func Frame(frame int) (patch NinePatch, ok bool) {
	switch frame {
	case common.FrameNone:
		return NinePatch{}, false
	case common.FrameASCII:
		return asciiFrame, true
	case common.FrameUnicodeBold:
		return boldFrame, true
	case common.FrameUnicodeDouble:
		return doubleFrame, true
	case common.FrameUnicodeBlock:
		return blockFrame, true
	case common.FrameUnicodeShade:
		return shadeFrame, true
	default:
		return lightFrame, true
	}
}
