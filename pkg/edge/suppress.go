package edge

import "math"

// SuppressNonMaxima thins gradient ridges. Each interior channel is compared with its two
// neighbors along the quantized orientation (y grows downward):
//
//	  0: left and right
//	 45: upper-left and lower-right
//	 90: above and below
//	135: upper-right and lower-left
//
// A magnitude smaller than either neighbor becomes 0; survivors are scaled to
// round(magnitude/Max*255). The border, where no gradient exists, is 0, and so is the whole
// output when Max is 0.
func SuppressNonMaxima(gf *GradientField) *PixelBuffer {
	dst := NewPixelBuffer(gf.width, gf.height, gf.width*gf.channels, gf.channels)
	if gf.Max <= 0 {
		return dst
	}
	for y := 1; y < gf.height-1; y++ {
		for x := 1; x < gf.width-1; x++ {
			for c := 0; c < gf.channels; c++ {
				var a, b float64
				switch gf.Orientation(x, y, c) {
				case Orientation0:
					a = gf.Magnitude(x-1, y, c)
					b = gf.Magnitude(x+1, y, c)
				case Orientation45:
					a = gf.Magnitude(x-1, y-1, c)
					b = gf.Magnitude(x+1, y+1, c)
				case Orientation90:
					a = gf.Magnitude(x, y-1, c)
					b = gf.Magnitude(x, y+1, c)
				case Orientation135:
					a = gf.Magnitude(x+1, y-1, c)
					b = gf.Magnitude(x-1, y+1, c)
				}
				m := gf.Magnitude(x, y, c)
				if m < a || m < b {
					continue
				}
				dst.Pix[dst.Offset(x, y)+c] = uint8(clampFloatToUint8(math.Round(m / gf.Max * 255)))
			}
		}
	}
	return dst
}
