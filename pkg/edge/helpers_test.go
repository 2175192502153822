package edge

// grayBuffer returns a tightly packed single-channel buffer filled with v.
func grayBuffer(w, h int, v uint8) *PixelBuffer {
	buf := NewPixelBuffer(w, h, w, 1)
	for i := range buf.Pix {
		buf.Pix[i] = v
	}
	return buf
}

// dotBuffer is a black square of side n with a single 255 pixel in the middle.
func dotBuffer(n int) *PixelBuffer {
	buf := grayBuffer(n, n, 0)
	buf.Pix[buf.Offset(n/2, n/2)] = 255
	return buf
}

// rows returns the buffer's single-channel values as a grid for readable comparisons.
func rows(buf *PixelBuffer) [][]uint8 {
	out := make([][]uint8, buf.Height)
	for y := range out {
		out[y] = make([]uint8, buf.Width)
		for x := range out[y] {
			out[y][x] = buf.Pix[buf.Offset(x, y)]
		}
	}
	return out
}

// borderEqual reports whether every pixel within r of an edge is identical in a and b.
func borderEqual(a, b *PixelBuffer, r int) bool {
	for y := 0; y < a.Height; y++ {
		for x := 0; x < a.Width; x++ {
			if x >= r && y >= r && x < a.Width-r && y < a.Height-r {
				continue
			}
			for c := 0; c < a.BytesPerPixel; c++ {
				if a.Pix[a.Offset(x, y)+c] != b.Pix[b.Offset(x, y)+c] {
					return false
				}
			}
		}
	}
	return true
}
