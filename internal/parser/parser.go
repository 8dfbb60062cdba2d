// Package parser turns textual pixel art into packed monochrome bit buffers.
//
// Each input line is one pixel row. Runes listed in Options.Set mark a set
// pixel; every other rune is unset. Rows shorter than the widest row are
// padded with unset pixels.
package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// DefaultSet lists the runes treated as set pixels when Options.Set is empty.
const DefaultSet = "#@X*1█"

const (
	// maxLineLength guards the scanner against unbounded lines
	maxLineLength = 64 * 1024
)

var (
	// ErrEmptyArt is returned when the input contains no pixels
	ErrEmptyArt = errors.New("art has no pixels")
)

// Options controls how parsed pixels are packed.
type Options struct {
	// Set lists the runes that mark a set pixel (DefaultSet if empty)
	Set string
	// BigEndian packs the first pixel of a byte into its least significant bit
	BigEndian bool
	// ByteAligned starts every row on a byte boundary
	ByteAligned bool
}

// Art is a parsed pixel pattern in packed form.
type Art struct {
	Width  int
	Height int
	Pix    []byte
}

// Parse reads pixel art from r, one row per line.
// A trailing newline does not add an empty row.
func Parse(r io.Reader, opts *Options) (*Art, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineLength)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read art: %w", err)
	}
	return ParseLines(lines, opts)
}

// ParseLines parses pixel art given as individual rows.
func ParseLines(lines []string, opts *Options) (*Art, error) {
	if opts == nil {
		opts = &Options{}
	}
	set := opts.Set
	if set == "" {
		set = DefaultSet
	}

	width := 0
	for _, line := range lines {
		if n := utf8.RuneCountInString(line); n > width {
			width = n
		}
	}
	if width == 0 || len(lines) == 0 {
		return nil, ErrEmptyArt
	}

	rows := make([][]bool, len(lines))
	for y, line := range lines {
		row := make([]bool, width)
		x := 0
		for _, r := range line {
			row[x] = strings.ContainsRune(set, r)
			x++
		}
		rows[y] = row
	}

	pix := Pack(width, len(rows), func(x, y int) bool {
		return rows[y][x]
	}, opts.BigEndian, opts.ByteAligned)

	return &Art{Width: width, Height: len(rows), Pix: pix}, nil
}

// Stride returns the row stride in bits for the given width and alignment.
func Stride(width int, byteAligned bool) int {
	if byteAligned {
		return (width + 7) / 8 * 8
	}
	return width
}

// Pack builds a packed bit buffer of width x height pixels, asking set for
// the value of each pixel. The buffer is exactly large enough for the
// requested layout.
func Pack(width, height int, set func(x, y int) bool, bigEndian, byteAligned bool) []byte {
	if width <= 0 || height <= 0 {
		return nil
	}
	stride := Stride(width, byteAligned)
	pix := make([]byte, (stride*(height-1)+width+7)/8)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !set(x, y) {
				continue
			}
			bit := y*stride + x
			shift := 7 - bit%8
			if bigEndian {
				shift = bit % 8
			}
			pix[bit/8] |= 1 << shift
		}
	}
	return pix
}
