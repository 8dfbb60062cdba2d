package debug

// BitOrder names the bit order used for pixel addressing.
func BitOrder(bigEndian bool) string {
	if bigEndian {
		return "big-endian"
	}
	return "little-endian"
}

// Alignment names the row layout used for pixel addressing.
func Alignment(byteAligned bool) string {
	if byteAligned {
		return "byte-aligned"
	}
	return "packed"
}
