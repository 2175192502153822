package edge

// Hysteresis classifies every interior channel of src: values at or above high become 255,
// values below low become 0, and values in between become 255 only when one of their eight
// neighbors in src is strictly greater than high. Neighbors are always read from src, so the
// result does not depend on scan order. The border is copied from src.
func Hysteresis(src *PixelBuffer, high, low float64) *PixelBuffer {
	dst := src.Clone()
	forEachInterior(src, 1, func(i int) {
		v := float64(src.Pix[i])
		switch {
		case v >= high:
			dst.Pix[i] = 255
		case v < low:
			dst.Pix[i] = 0
		case hasStrongNeighbor(src, i, high):
			dst.Pix[i] = 255
		default:
			dst.Pix[i] = 0
		}
	})
	return dst
}

func hasStrongNeighbor(src *PixelBuffer, i int, high float64) bool {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if float64(src.Pix[i+dy*src.Stride+dx*src.BytesPerPixel]) > high {
				return true
			}
		}
	}
	return false
}
