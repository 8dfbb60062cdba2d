package renderer

// addressor locates single pixels inside a packed bit buffer.
type addressor struct {
	pix       []byte
	stride    int // row stride in bits
	bigEndian bool
}

func newAddressor(pix []byte, width int, bigEndian, byteAligned bool) addressor {
	stride := width
	if byteAligned {
		stride = (width + 7) / 8 * 8
	}
	return addressor{pix: pix, stride: stride, bigEndian: bigEndian}
}

// pixOffset returns the byte offset and bit mask for the pixel at (x, y).
// Little-endian (the default) treats the most significant bit as the first
// pixel of a byte; big-endian treats the least significant bit as first.
func (a addressor) pixOffset(x, y int) (offset int, mask byte) {
	bit := y*a.stride + x
	offset = bit / 8
	if a.bigEndian {
		mask = 1 << (bit % 8)
	} else {
		mask = 1 << (7 - bit%8)
	}
	return
}

// set reports whether the pixel at (x, y) is set. Addresses past the end
// of the buffer are unset.
func (a addressor) set(x, y int) bool {
	if x < 0 || y < 0 {
		return false
	}
	offset, mask := a.pixOffset(x, y)
	if offset >= len(a.pix) {
		return false
	}
	return a.pix[offset]&mask != 0
}

// PixelSet reports whether the pixel at (x, y) of a width-pixel wide buffer
// is set under the given bit order and row alignment. It never fails:
// addresses beyond the buffer read as unset.
func PixelSet(pix []byte, x, y, width int, bigEndian, byteAligned bool) bool {
	return newAddressor(pix, width, bigEndian, byteAligned).set(x, y)
}
