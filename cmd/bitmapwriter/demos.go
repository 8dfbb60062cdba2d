package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"github.com/ryanlewis/bitmapwriter"
	"github.com/ryanlewis/bitmapwriter/internal/debug"
	"github.com/ryanlewis/bitmapwriter/termdisplay"
)

var errNotTerminal = errors.New("demo needs a terminal on stdout")

type demoConfig struct {
	frames   int
	interval time.Duration
	debug    *debug.Session
}

type demoFunc func(w io.Writer, cfg demoConfig) error

var demos = map[string]demoFunc{
	"clock":    clockDemo,
	"frames":   framesDemo,
	"styles":   stylesDemo,
	"position": positionDemo,
	"animate":  animateDemo,
	"display":  displayDemo,
}

// interactive demos redraw in place and are refused when stdout is not a
// terminal.
var interactive = map[string]bool{"animate": true, "display": true}

// now is swapped by tests.
var now = time.Now

func demoNames() []string {
	names := make([]string, 0, len(demos))
	for name := range demos {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func runDemo(w io.Writer, name string, cfg demoConfig) error {
	demo, ok := demos[name]
	if !ok {
		return fmt.Errorf("unknown demo %q (want one of %s)", name, strings.Join(demoNames(), ", "))
	}
	if interactive[name] && !isTerminal() {
		return fmt.Errorf("%s: %w", name, errNotTerminal)
	}
	return demo(w, cfg)
}

// heart is the 16x8 sample bitmap shared by most demos.
var heart = []byte{
	0b00010000, 0b00001000,
	0b00111111, 0b11111100,
	0b01111111, 0b11111110,
	0b11111111, 0b11111111,
	0b01111111, 0b11111110,
	0b00000111, 0b11100000,
	0b11001111, 0b11110000,
	0b01111111, 0b11111000,
}

// heartDropped is heart moved down one pixel with its base squashed.
var heartDropped = []byte{
	0b00000000, 0b00000000,
	0b00010000, 0b00001000,
	0b00111111, 0b11111100,
	0b01111111, 0b11111110,
	0b11111111, 0b11111111,
	0b01111111, 0b11111110,
	0b11001111, 0b11110000,
	0b01111111, 0b11111000,
}

// heartWide is a 19x8 bitmap with byte-aligned rows; the last three bits of
// every row's third byte are padding.
var heartWide = []byte{
	0b00010000, 0b00001000, 0b00100000,
	0b00111111, 0b11111100, 0b01000000,
	0b01111111, 0b11111110, 0b00100000,
	0b11111111, 0b11111111, 0b01000000,
	0b01111111, 0b11111110, 0b00100000,
	0b00000111, 0b11100000, 0b01000000,
	0b11001111, 0b11110000, 0b00100000,
	0b01111111, 0b11111000, 0b01000000,
}

// clockFont holds the digits 0-9 and a colon, eight rows of eight pixels each.
// Glyphs from ZX Baveuse by Raymond Larabie.
var clockFont = [11][8]byte{
	{0b01111100, 0b11111110, 0b11111110, 0b11100110, 0b11100110, 0b11100110, 0b01111100, 0b00000000},
	{0b00011100, 0b00111100, 0b00111100, 0b00011100, 0b00011100, 0b00011100, 0b00011100, 0b00000000},
	{0b11111100, 0b11111110, 0b11111110, 0b00001110, 0b01111100, 0b11000000, 0b11111110, 0b00000000},
	{0b11111110, 0b11111110, 0b11111110, 0b00001110, 0b00011100, 0b00000110, 0b11111100, 0b00000000},
	{0b00001110, 0b00011110, 0b00111110, 0b01110110, 0b11100110, 0b11111111, 0b00001110, 0b00000000},
	{0b11111110, 0b11111110, 0b11111110, 0b11000000, 0b11111100, 0b00000010, 0b11111100, 0b00000000},
	{0b01111110, 0b11111110, 0b11111110, 0b11100000, 0b11111110, 0b11000010, 0b01111100, 0b00000000},
	{0b11111100, 0b11111110, 0b11111110, 0b00011100, 0b00111000, 0b01110000, 0b11110000, 0b00000000},
	{0b01111100, 0b11111110, 0b11111110, 0b11100110, 0b01111100, 0b11001110, 0b01111100, 0b00000000},
	{0b01111100, 0b11111110, 0b11111110, 0b11000110, 0b01111110, 0b00001110, 0b11111100, 0b00000000},
	{0b00000000, 0b00111000, 0b00111000, 0b00111000, 0b00000000, 0b00111000, 0b00111000, 0b00000000},
}

const clockColon = 10

// clockBitmap lays out HH:MM:SS as a 64x8 bitmap.
func clockBitmap(t time.Time) *bitmapwriter.Bitmap {
	h, m, s := t.Clock()
	glyphs := [8]int{h / 10, h % 10, clockColon, m / 10, m % 10, clockColon, s / 10, s % 10}

	pix := make([]byte, 8*8)
	for i, g := range glyphs {
		for row := 0; row < 8; row++ {
			pix[row*8+i] = clockFont[g][row]
		}
	}
	return bitmapwriter.NewBitmap(64, 8, pix)
}

func clockDemo(w io.Writer, cfg demoConfig) error {
	return bitmapwriter.RenderTo(w, clockBitmap(now()),
		bitmapwriter.WithStyle(bitmapwriter.UnicodeBlock1x2),
		bitmapwriter.WithFrame(bitmapwriter.UnicodeBoldFrame),
		bitmapwriter.WithDebug(cfg.debug),
	)
}

// labelWidth is the column width of demo labels.
const labelWidth = 12

// writeLabeled writes label followed by the terminal size of out, then out.
func writeLabeled(w io.Writer, label, out string) error {
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	cols := 0
	for _, line := range lines {
		cols = max(cols, runewidth.StringWidth(line))
	}
	if _, err := fmt.Fprintf(w, "%s%d columns x %d lines\n", runewidth.FillRight(label, labelWidth), cols, len(lines)); err != nil {
		return err
	}
	_, err := io.WriteString(w, out)
	return err
}

func framesDemo(w io.Writer, cfg demoConfig) error {
	bm := bitmapwriter.NewBitmap(16, 8, heart)
	writer := bitmapwriter.New(bitmapwriter.WithStyle(bitmapwriter.UnicodeBlock2x2), bitmapwriter.WithDebug(cfg.debug))

	for f := bitmapwriter.ASCIIFrame; f <= bitmapwriter.UnicodeShadeFrame; f++ {
		out, err := writer.SetFrame(f).String(bm)
		if err != nil {
			return err
		}
		if err := writeLabeled(w, f.String(), out); err != nil {
			return err
		}
	}
	return nil
}

func stylesDemo(w io.Writer, cfg demoConfig) error {
	bm := bitmapwriter.NewBitmap(19, 8, heartWide)
	writer := bitmapwriter.New(
		bitmapwriter.WithFrame(bitmapwriter.UnicodeDoubleFrame),
		bitmapwriter.WithByteAligned(true),
		bitmapwriter.WithDebug(cfg.debug),
	)

	styles := []bitmapwriter.Style{
		bitmapwriter.ASCII1x1('@'),
		bitmapwriter.UnicodeBlock1x1,
		bitmapwriter.UnicodeBlock1x2,
		bitmapwriter.UnicodeSextant1x3,
		bitmapwriter.UnicodeBlock2x2,
		bitmapwriter.UnicodeSextant2x3,
	}
	for _, s := range styles {
		out, err := writer.SetStyle(s).String(bm)
		if err != nil {
			return err
		}
		if err := writeLabeled(w, s.String(), out); err != nil {
			return err
		}
	}
	return nil
}

// positionDemo clears the screen and draws the heart at fixed positions,
// then once more at the cursor.
func positionDemo(w io.Writer, cfg demoConfig) error {
	termenv.NewOutput(w).ClearScreen()

	bm := bitmapwriter.NewBitmap(16, 8, heart)
	writer := bitmapwriter.New(
		bitmapwriter.WithStyle(bitmapwriter.UnicodeBlock2x2),
		bitmapwriter.WithFrame(bitmapwriter.UnicodeFrame),
		bitmapwriter.WithDebug(cfg.debug),
	)

	for _, pos := range []bitmapwriter.Position{{Line: 6, Column: 12}, {Line: 12, Column: 24}, {Line: 6, Column: 36}, {Line: 12, Column: 48}} {
		if err := writer.SetPosition(pos.Line, pos.Column).Render(w, bm); err != nil {
			return err
		}
	}
	return writer.ClearPosition().Render(w, bm)
}

// animateDemo alternates two hearts in place, switching frame on every
// step.
func animateDemo(w io.Writer, cfg demoConfig) error {
	images := [2]*bitmapwriter.Bitmap{
		bitmapwriter.NewBitmap(16, 8, heart),
		bitmapwriter.NewBitmap(16, 8, heartDropped),
	}
	frames := [2]bitmapwriter.Frame{bitmapwriter.UnicodeFrame, bitmapwriter.UnicodeDoubleFrame}

	writer := bitmapwriter.New(
		bitmapwriter.WithStyle(bitmapwriter.UnicodeBlock2x2),
		bitmapwriter.WithPositionRestore(true),
		bitmapwriter.WithDebug(cfg.debug),
	)
	for i := 0; i < cfg.frames; i++ {
		if i > 0 {
			time.Sleep(cfg.interval)
		}
		if err := writer.SetFrame(frames[i%2]).Render(w, images[i%2]); err != nil {
			return err
		}
	}
	return nil
}

// displayDemo bounces a ball across a terminal display.
func displayDemo(w io.Writer, cfg demoConfig) error {
	const width, height, radius = 48, 24, 5

	dev, err := termdisplay.New(w, &termdisplay.Opts{
		W:     width,
		H:     height,
		Style: bitmapwriter.UnicodeSextant2x3,
		Frame: bitmapwriter.UnicodeFrame,
	})
	if err != nil {
		return err
	}
	defer dev.Halt() //nolint:errcheck

	x, y, dx, dy := radius, radius, 3, 2
	for i := 0; i < cfg.frames; i++ {
		if i > 0 {
			time.Sleep(cfg.interval)
		}
		if err := dev.Draw(dev.Bounds(), ball(width, height, x, y, radius), image.Point{}); err != nil {
			return err
		}
		x, dx = bounce(x+dx, dx, radius, width-1-radius)
		y, dy = bounce(y+dy, dy, radius, height-1-radius)
	}
	return nil
}

// ball returns a white disc on black.
func ball(width, height, cx, cy, r int) image.Image {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			if (x-cx)*(x-cx)+(y-cy)*(y-cy) <= r*r {
				img.SetGray(x, y, color.Gray{Y: 0xff})
			}
		}
	}
	return img
}

func bounce(pos, delta, lo, hi int) (int, int) {
	switch {
	case pos < lo:
		return 2*lo - pos, -delta
	case pos > hi:
		return 2*hi - pos, -delta
	}
	return pos, delta
}
