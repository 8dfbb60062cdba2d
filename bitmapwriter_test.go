package bitmapwriter

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// heart is a 16x8 packed test image.
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

func TestWriterDefaults(t *testing.T) {
	w := New()

	if w.Style() != UnicodeBlock1x2 {
		t.Errorf("default style = %v, want %v", w.Style(), UnicodeBlock1x2)
	}
	if w.Frame() != NoFrame {
		t.Errorf("default frame = %v, want %v", w.Frame(), NoFrame)
	}
	if _, ok := w.Position(); ok {
		t.Error("default writer has a position")
	}
	if w.PositionRestore() || w.BigEndian() || w.ByteAligned() {
		t.Error("default writer has a boolean option enabled")
	}
}

func TestWriterFluentSetters(t *testing.T) {
	w := New()
	got := w.SetStyle(ASCII1x1('*')).
		SetFrame(UnicodeDoubleFrame).
		SetPosition(3, 7).
		SetPositionRestore(true).
		SetBigEndian(true).
		SetByteAligned(true)

	if got != w {
		t.Fatal("setters must return the same writer")
	}
	if w.Style() != ASCII1x1('*') || w.Style().Set() != '*' {
		t.Errorf("style = %v", w.Style())
	}
	if w.Frame() != UnicodeDoubleFrame {
		t.Errorf("frame = %v", w.Frame())
	}
	if pos, ok := w.Position(); !ok || pos != (Position{Line: 3, Column: 7}) {
		t.Errorf("position = %v, %v", pos, ok)
	}
	if !w.PositionRestore() || !w.BigEndian() || !w.ByteAligned() {
		t.Error("boolean setters did not apply")
	}

	w.ClearPosition()
	if _, ok := w.Position(); ok {
		t.Error("ClearPosition did not clear the position")
	}
}

func TestNewWithOptions(t *testing.T) {
	w := New(
		WithStyle(UnicodeSextant2x3),
		WithFrame(ASCIIFrame),
		WithPosition(2, 4),
		WithPositionRestore(true),
		WithBigEndian(true),
		WithByteAligned(true),
	)

	if w.Style() != UnicodeSextant2x3 || w.Frame() != ASCIIFrame {
		t.Errorf("style/frame = %v/%v", w.Style(), w.Frame())
	}
	if pos, ok := w.Position(); !ok || pos.Line != 2 || pos.Column != 4 {
		t.Errorf("position = %v, %v", pos, ok)
	}
	if !w.PositionRestore() || !w.BigEndian() || !w.ByteAligned() {
		t.Error("boolean options did not apply")
	}
}

func TestWriterRender(t *testing.T) {
	bm := NewBitmap(16, 8, heart)

	tests := []struct {
		name   string
		writer *Writer
		want   string
	}{
		{
			name:   "block 2x2 light frame",
			writer: New().SetStyle(UnicodeBlock2x2).SetFrame(UnicodeFrame),
			want: "┌────────┐\n" +
				"│ ▟▄▄▄▄▙ │\n" +
				"│▟██████▙│\n" +
				"│▝▀▜██▛▀▘│\n" +
				"│▜▄████▖ │\n" +
				"└────────┘\n",
		},
		{
			name:   "position restore on block 2x2",
			writer: New().SetStyle(UnicodeBlock2x2).SetPosition(5, 5).SetPositionRestore(true),
			want: "\x1b[s" +
				" ▟▄▄▄▄▙ \n" +
				"▟██████▙\n" +
				"▝▀▜██▛▀▘\n" +
				"▜▄████▖ \n" +
				"\x1b[u",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tt.writer.Render(&buf, bm); err != nil {
				t.Fatalf("Render() unexpected error: %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("Render() =\n%q\nwant\n%q", buf.String(), tt.want)
			}

			s, err := tt.writer.String(bm)
			if err != nil {
				t.Fatalf("String() unexpected error: %v", err)
			}
			if s != tt.want {
				t.Errorf("String() differs from Render()")
			}
		})
	}
}

func TestWriterReuse(t *testing.T) {
	w := New().SetStyle(UnicodeBlock1x1).SetFrame(ASCIIFrame)
	a := NewBitmap(2, 1, []byte{0x80})
	b := NewBitmap(2, 1, []byte{0x40})

	first, err := w.String(a)
	if err != nil {
		t.Fatal(err)
	}
	second, err := w.String(b)
	if err != nil {
		t.Fatal(err)
	}
	if first != ".--.\n|█ |\n'--'\n" {
		t.Errorf("first = %q", first)
	}
	if second != ".--.\n| █|\n'--'\n" {
		t.Errorf("second = %q", second)
	}
}

func TestRenderPackageFunctions(t *testing.T) {
	bm := NewBitmap(8, 1, []byte{0b10110000})

	got, err := Render(bm, WithStyle(UnicodeBlock1x1))
	if err != nil {
		t.Fatal(err)
	}
	if got != "█ ██    \n" {
		t.Errorf("Render() = %q", got)
	}

	var buf bytes.Buffer
	if err := RenderTo(&buf, bm, WithStyle(ASCII1x1('#')), WithBigEndian(true)); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "    ## #\n" {
		t.Errorf("RenderTo() = %q", buf.String())
	}
}

func TestRenderNilBitmap(t *testing.T) {
	if _, err := Render(nil); !errors.Is(err, ErrNilBitmap) {
		t.Errorf("Render(nil) error = %v", err)
	}
	if err := RenderTo(&bytes.Buffer{}, nil); !errors.Is(err, ErrNilBitmap) {
		t.Errorf("RenderTo(nil) error = %v", err)
	}
	if err := New().Print(nil); !errors.Is(err, ErrNilBitmap) {
		t.Errorf("Print(nil) error = %v", err)
	}
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	saved := stdout
	stdout = &buf
	defer func() { stdout = saved }()

	bm := NewBitmap(2, 2, []byte{0b10010000})
	if err := New().Print(bm); err != nil {
		t.Fatalf("Print() unexpected error: %v", err)
	}
	if buf.String() != "▀▄\n" {
		t.Errorf("stdout = %q, want flushed output", buf.String())
	}
}

type brokenSink struct{ writes int }

var errClosed = errors.New("closed pipe")

func (b *brokenSink) Write(p []byte) (int, error) {
	b.writes++
	return 0, errClosed
}

func TestRenderSinkFailure(t *testing.T) {
	sink := &brokenSink{}
	err := RenderTo(sink, NewBitmap(16, 8, heart), WithFrame(UnicodeFrame))
	if !errors.Is(err, ErrSinkWrite) {
		t.Fatalf("error = %v, want ErrSinkWrite", err)
	}
	if !errors.Is(err, errClosed) {
		t.Errorf("error %v does not wrap the sink error", err)
	}
	if sink.writes != 1 {
		t.Errorf("sink saw %d writes, want 1", sink.writes)
	}
}

func TestBitmapAccessors(t *testing.T) {
	pix := []byte{0xaa}
	bm := NewBitmap(4, 2, pix)

	if bm.Width() != 4 || bm.Height() != 2 {
		t.Errorf("size = %dx%d", bm.Width(), bm.Height())
	}
	if &bm.Pix()[0] != &pix[0] {
		t.Error("Pix() must not copy")
	}

	var row []string
	for y := 0; y < 2; y++ {
		var sb strings.Builder
		for x := 0; x < 4; x++ {
			if bm.PixelSet(x, y) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		row = append(row, sb.String())
	}
	if strings.Join(row, "/") != "#.#./#.#." {
		t.Errorf("pixels = %v", row)
	}
	if !bm.PixelSet(1, 0, WithBigEndian(true)) {
		t.Error("big-endian pixel (1,0) should be set")
	}
	if bm.PixelSet(0, 5) {
		t.Error("pixel past the buffer should be unset")
	}
}
