package renderer

import "github.com/ryanlewis/bitmapwriter/internal/glyphs"

// frameRenderer draws the nine-patch border around content rows.
// A zero frameRenderer (no frame) draws nothing.
type frameRenderer struct {
	patch   glyphs.NinePatch
	enabled bool
	cols    int
}

func newFrameRenderer(frame, cols int) frameRenderer {
	patch, ok := glyphs.Frame(frame)
	return frameRenderer{patch: patch, enabled: ok, cols: cols}
}

// top writes the top border line without its terminator.
func (f frameRenderer) top(o *output) {
	f.border(o, glyphs.TopLeft, glyphs.Top, glyphs.TopRight)
}

// bottom writes the bottom border line without its terminator.
func (f frameRenderer) bottom(o *output) {
	f.border(o, glyphs.BottomLeft, glyphs.Bottom, glyphs.BottomRight)
}

func (f frameRenderer) border(o *output, left, edge, right int) {
	o.writeRune(f.patch[left])
	o.repeat(f.patch[edge], f.cols)
	o.writeRune(f.patch[right])
}

func (f frameRenderer) left(o *output) {
	if f.enabled {
		o.writeRune(f.patch[glyphs.Left])
	}
}

func (f frameRenderer) right(o *output) {
	if f.enabled {
		o.writeRune(f.patch[glyphs.Right])
	}
}
