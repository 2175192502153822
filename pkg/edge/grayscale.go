package edge

import "math"

// Grayscale collapses the color channels of an RGB or RGBA buffer in place, writing
// round(0.299*R + 0.587*G + 0.114*B) to all three. Alpha is left alone and single-channel
// buffers are returned untouched.
func Grayscale(buf *PixelBuffer) *PixelBuffer {
	if buf.BytesPerPixel < 3 {
		return buf
	}
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			i := buf.Offset(x, y)
			r := float64(buf.Pix[i+0])
			g := float64(buf.Pix[i+1])
			b := float64(buf.Pix[i+2])
			gray := uint8(math.Round(0.299*r + 0.587*g + 0.114*b))
			buf.Pix[i+0] = gray
			buf.Pix[i+1] = gray
			buf.Pix[i+2] = gray
		}
	}
	return buf
}
