package edge

import (
	"testing"

	"go.viam.com/test"
)

func TestGrayscale(t *testing.T) {
	buf := NewPixelBuffer(2, 1, 8, 4)
	copy(buf.Pix, []byte{255, 0, 0, 77, 10, 200, 30, 255})
	Grayscale(buf)
	// 0.299*255 = 76.245
	test.That(t, buf.Pix[:4], test.ShouldResemble, []byte{76, 76, 76, 77})
	// 0.299*10 + 0.587*200 + 0.114*30 = 123.81
	test.That(t, buf.Pix[4:], test.ShouldResemble, []byte{124, 124, 124, 255})

	again := buf.Clone()
	Grayscale(again)
	test.That(t, again.Pix, test.ShouldResemble, buf.Pix)
}

func TestGrayscaleIndexedIsNoop(t *testing.T) {
	buf := grayBuffer(3, 3, 42)
	buf.Pix[4] = 7
	before := buf.Clone()
	Grayscale(buf)
	test.That(t, buf.Pix, test.ShouldResemble, before.Pix)
}

func TestInvertInvolution(t *testing.T) {
	buf := NewPixelBuffer(3, 2, 12, 3)
	for i := range buf.Pix {
		buf.Pix[i] = uint8(i * 17)
	}
	orig := buf.Clone()
	Invert(buf)
	test.That(t, buf.Pix[0], test.ShouldEqual, uint8(255))
	test.That(t, buf.Pix[5], test.ShouldEqual, uint8(255-5*17))
	Invert(buf)
	test.That(t, buf.Pix, test.ShouldResemble, orig.Pix)
}

func TestConvolveBorderCopied(t *testing.T) {
	src := dotBuffer(9)
	src.Pix[0] = 9
	src.Pix[src.Offset(8, 1)] = 99

	blurred := Convolve(src, GaussianBlurKernel(1.4))
	test.That(t, borderEqual(blurred, src, 2), test.ShouldBeTrue)
	test.That(t, rows(blurred)[4][2:7], test.ShouldResemble, []uint8{8, 18, 23, 18, 8})

	sharpened := Convolve(src, GaussianSharpenKernel())
	test.That(t, borderEqual(sharpened, src, 1), test.ShouldBeTrue)
	// 1.8*255 clamps, orthogonal neighbors go negative and clamp to 0
	test.That(t, sharpened.Pix[sharpened.Offset(4, 4)], test.ShouldEqual, uint8(255))
	test.That(t, sharpened.Pix[sharpened.Offset(4, 3)], test.ShouldEqual, uint8(0))
	// src untouched
	test.That(t, src.Pix[src.Offset(4, 4)], test.ShouldEqual, uint8(255))
}

func TestConvolveDegenerateSizes(t *testing.T) {
	for _, dims := range [][2]int{{0, 0}, {1, 1}, {2, 7}, {4, 4}, {7, 1}} {
		src := grayBuffer(dims[0], dims[1], 33)
		for i := range src.Pix {
			src.Pix[i] = uint8(i)
		}
		out := Convolve(src, GaussianBlurKernel(2))
		test.That(t, out.Pix, test.ShouldResemble, src.Pix)
		gf := ComputeGradients(src, SobelPair())
		if dims[0] < 3 || dims[1] < 3 {
			test.That(t, gf.Max, test.ShouldEqual, 0.0)
		}
	}
}

func TestConvolvePadded(t *testing.T) {
	src := NewPixelBuffer(3, 3, 5, 1)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			src.Pix[src.Offset(x, y)] = 10
		}
		src.Pix[y*5+3] = 200
		src.Pix[y*5+4] = 200
	}
	k, err := NewKernelFromWeights([]float64{0, 0, 0, 0, 0, 1, 0, 0, 0})
	test.That(t, err, test.ShouldBeNil)
	out := Convolve(src, k)
	// the right neighbor of the center is a real pixel, not padding
	test.That(t, out.Pix[out.Offset(1, 1)], test.ShouldEqual, uint8(10))
	test.That(t, out.Pix[3], test.ShouldEqual, uint8(200))
}

func TestQuantizeOrientation(t *testing.T) {
	for _, tc := range []struct {
		gx, gy float64
		want   Orientation
	}{
		{0, 0, Orientation0},
		{1, 0, Orientation0},
		{0, 1, Orientation90},
		{0, -5, Orientation90},
		{1, 1, Orientation45},
		{-1, -1, Orientation45},
		{1, -1, Orientation135},
		{-1, 1, Orientation135},
		{-1, 0, Orientation0},
		{10, 1, Orientation0},
		{10, -1, Orientation0},
		{1, 10, Orientation90},
		{1, 2, Orientation45},
		{1, 3, Orientation90},
	} {
		test.That(t, QuantizeOrientation(tc.gx, tc.gy), test.ShouldEqual, tc.want)
	}
}

func TestUniformImageHasNoEdges(t *testing.T) {
	src := grayBuffer(6, 5, 137)
	gf := ComputeGradients(src, SobelPair())
	test.That(t, gf.Max, test.ShouldEqual, 0.0)
	for y := 0; y < 5; y++ {
		for x := 0; x < 6; x++ {
			test.That(t, gf.Magnitude(x, y, 0), test.ShouldEqual, 0.0)
		}
	}
	nms := SuppressNonMaxima(gf)
	for _, v := range nms.Pix {
		test.That(t, v, test.ShouldEqual, uint8(0))
	}
	linked := Hysteresis(nms, 100, 20)
	for _, v := range linked.Pix {
		test.That(t, v, test.ShouldEqual, uint8(0))
	}
	Invert(linked)
	for _, v := range linked.Pix {
		test.That(t, v, test.ShouldEqual, uint8(255))
	}
}

func TestSobelVerticalStep(t *testing.T) {
	src := grayBuffer(8, 6, 0)
	for y := 0; y < 6; y++ {
		for x := 4; x < 8; x++ {
			src.Pix[src.Offset(x, y)] = 255
		}
	}
	out := ThresholdGradients(src, SobelPair(), 100)
	test.That(t, borderEqual(out, src, 1), test.ShouldBeTrue)
	for y := 1; y < 5; y++ {
		test.That(t, rows(out)[y][1:7], test.ShouldResemble, []uint8{255, 255, 0, 0, 255, 255})
	}

	prewitt := ThresholdGradients(src, PrewittPair(), 100)
	for y := 1; y < 5; y++ {
		test.That(t, rows(prewitt)[y][1:7], test.ShouldResemble, []uint8{255, 255, 0, 0, 255, 255})
	}
}

func TestComputeGradientsRing(t *testing.T) {
	src := grayBuffer(5, 5, 0)
	src.Pix[src.Offset(2, 2)] = 41
	gf := ComputeGradients(src, SobelPair())
	test.That(t, gf.Max, test.ShouldEqual, 82.0)
	test.That(t, gf.Magnitude(2, 2, 0), test.ShouldEqual, 0.0)
	test.That(t, gf.Magnitude(1, 2, 0), test.ShouldEqual, 82.0)
	test.That(t, gf.Magnitude(1, 1, 0), test.ShouldEqual, 82.0)
	test.That(t, gf.Magnitude(0, 0, 0), test.ShouldEqual, 0.0)
	test.That(t, gf.Orientation(1, 1, 0), test.ShouldEqual, Orientation45)
	test.That(t, gf.Orientation(2, 1, 0), test.ShouldEqual, Orientation90)
	test.That(t, gf.Orientation(3, 1, 0), test.ShouldEqual, Orientation135)
	test.That(t, gf.Orientation(1, 2, 0), test.ShouldEqual, Orientation0)

	dense := gf.MagnitudeDense(0)
	r, c := dense.Dims()
	test.That(t, r, test.ShouldEqual, 5)
	test.That(t, c, test.ShouldEqual, 5)
	test.That(t, dense.At(1, 3), test.ShouldEqual, 82.0)
}

func TestSuppressNonMaxima(t *testing.T) {
	gf := NewGradientField(5, 3, 1)
	// a horizontal ridge of 0-degree gradients peaking at x=2
	gf.Set(1, 1, 0, 40, Orientation0)
	gf.Set(2, 1, 0, 80, Orientation0)
	gf.Set(3, 1, 0, 40, Orientation0)
	out := SuppressNonMaxima(gf)
	test.That(t, rows(out)[1], test.ShouldResemble, []uint8{0, 0, 255, 0, 0})

	// diagonal neighbors: 45 compares upper-left and lower-right
	gf = NewGradientField(3, 3, 1)
	gf.Set(1, 1, 0, 50, Orientation45)
	gf.Set(2, 0, 0, 100, Orientation0)
	gf.Set(0, 2, 0, 100, Orientation0)
	out = SuppressNonMaxima(gf)
	test.That(t, out.Pix[out.Offset(1, 1)], test.ShouldEqual, uint8(128))

	gf.Set(1, 1, 0, 50, Orientation135)
	out = SuppressNonMaxima(gf)
	test.That(t, out.Pix[out.Offset(1, 1)], test.ShouldEqual, uint8(0))

	// flat field
	out = SuppressNonMaxima(NewGradientField(4, 4, 3))
	for _, v := range out.Pix {
		test.That(t, v, test.ShouldEqual, uint8(0))
	}
}

func TestHysteresisSnapshot(t *testing.T) {
	src := grayBuffer(6, 3, 0)
	copy(src.Pix[6:12], []byte{0, 150, 50, 50, 10, 0})
	out := Hysteresis(src, 100, 20)
	// the first weak pixel sits next to a strong one; the second only next to a weak one
	test.That(t, rows(out)[1], test.ShouldResemble, []uint8{0, 255, 255, 0, 0, 0})
	test.That(t, src.Pix[6:12], test.ShouldResemble, []byte{0, 150, 50, 50, 10, 0})
}

func TestHysteresisBoundaries(t *testing.T) {
	src := grayBuffer(3, 3, 0)
	src.Pix[4] = 100
	test.That(t, Hysteresis(src, 100, 20).Pix[4], test.ShouldEqual, uint8(255))

	src.Pix[4] = 19
	src.Pix[0] = 255
	test.That(t, Hysteresis(src, 100, 20).Pix[4], test.ShouldEqual, uint8(0))

	// neighbor equal to high does not promote
	src.Pix[4] = 50
	src.Pix[0] = 100
	out := Hysteresis(src, 100, 20)
	test.That(t, out.Pix[4], test.ShouldEqual, uint8(0))
	test.That(t, out.Pix[0], test.ShouldEqual, uint8(100))
}
