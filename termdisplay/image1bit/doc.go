// Package image1bit provides a 1-bit monochrome image format matching the
// packed buffers rendered by bitmapwriter.
//
// Pixels are stored 8 per byte, most significant bit first, and every row
// starts on a byte boundary. A 12x2 image therefore uses 4 bytes:
//
//	Pixels: 0 1 2 3 4 5 6 7 | 8 9 10 11 (4 bits padding)
//	Row 0:  byte 0          | byte 1
//	Row 1:  byte 2          | byte 3
//
// This is the little-endian, byte-aligned layout of bitmapwriter, so Pix
// can be handed to bitmapwriter.NewBitmap directly.
//
// Example usage:
//
//	img := image1bit.NewPacked(image.Rect(0, 0, 128, 64))
//	img.SetBit(10, 20, image1bit.On)
//	draw.Draw(img, img.Bounds(), src, image.Point{}, draw.Src)
package image1bit
