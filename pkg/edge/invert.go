package edge

// Invert replaces every byte v of buf with 255-v, in place. Alpha and border pixels are
// inverted too, so applying Invert twice restores the buffer.
func Invert(buf *PixelBuffer) *PixelBuffer {
	for y := 0; y < buf.Height; y++ {
		row := buf.Pix[y*buf.Stride : y*buf.Stride+buf.Width*buf.BytesPerPixel]
		for i, v := range row {
			row[i] = 255 - v
		}
	}
	return buf
}
