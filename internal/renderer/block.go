package renderer

import "github.com/ryanlewis/bitmapwriter/internal/glyphs"

// blockEncoder maps w x h pixel blocks to glyphs.
type blockEncoder struct {
	addr  addressor
	table glyphs.Table
}

func newBlockEncoder(bm *Bitmap, table glyphs.Table, bigEndian, byteAligned bool) blockEncoder {
	return blockEncoder{
		addr:  newAddressor(bm.Pix, bm.Width, bigEndian, byteAligned),
		table: table,
	}
}

// index assembles the block at (x, y) into its table index: the pixel at
// local (xx, yy) contributes bit yy*w+xx.
//
// Edge blocks that reach past the declared width or height are sampled like
// any other block. In packed rows the pixels right of the last column are
// the first pixels of the next row; only addresses beyond the end of the
// buffer read as unset.
func (e blockEncoder) index(x, y int) int {
	block := 0
	for yy := 0; yy < e.table.H; yy++ {
		for xx := 0; xx < e.table.W; xx++ {
			if e.addr.set(x+xx, y+yy) {
				block |= 1 << (yy*e.table.W + xx)
			}
		}
	}
	return block
}
