package edge

import (
	"errors"
	"image"
	"image/color"
	"sync"
	"testing"

	"go.viam.com/test"
)

func TestAcquireCommit(t *testing.T) {
	img := NewBitmapStride(3, 2, 12, FormatRGB24)
	img.Pix[0] = 10
	img.Pix[11] = 99 // padding

	lock, err := Acquire(img)
	test.That(t, err, test.ShouldBeNil)
	buf := lock.Buffer()
	test.That(t, buf.BytesPerPixel, test.ShouldEqual, 3)
	test.That(t, buf.Stride, test.ShouldEqual, 12)
	test.That(t, buf.Pix[0], test.ShouldEqual, uint8(10))

	out := buf.Clone()
	out.Pix[0] = 20
	// the lock owns a copy, nothing reaches the image before Commit
	test.That(t, img.Pix[0], test.ShouldEqual, uint8(10))
	test.That(t, lock.Commit(out), test.ShouldBeNil)
	test.That(t, img.Pix[0], test.ShouldEqual, uint8(20))
	test.That(t, img.Pix[11], test.ShouldEqual, uint8(99))

	// released: a second acquire does not block, a second commit fails
	lock.Release()
	test.That(t, lock.Commit(out), test.ShouldNotBeNil)
	lock2, err := Acquire(img)
	test.That(t, err, test.ShouldBeNil)
	lock2.Release()
	lock2.Release()
}

func TestAcquireErrors(t *testing.T) {
	_, err := Acquire(nil)
	test.That(t, errors.Is(err, ErrNullBuffer), test.ShouldBeTrue)

	_, err = Acquire(NewBitmap(0, 0, FormatRGBA32))
	test.That(t, errors.Is(err, ErrNullBuffer), test.ShouldBeTrue)

	for _, f := range []Format{FormatGray16, FormatRGBA64, Format(42)} {
		img := NewBitmap(2, 2, f)
		_, err = Acquire(img)
		test.That(t, errors.Is(err, ErrUnsupportedFormat), test.ShouldBeTrue)
		// no lock is held after a failure
		test.That(t, img.mu.TryLock(), test.ShouldBeTrue)
		img.mu.Unlock()
	}

	for _, img := range []*Bitmap{
		// rows of 12 bytes do not fit a stride of 4
		{Width: 4, Height: 4, Stride: 4, Format: FormatRGB24, Pix: make([]byte, 16)},
		{Width: -1, Height: 4, Stride: 4, Format: FormatIndexed8, Pix: make([]byte, 16)},
		{Width: 4, Height: -4, Stride: 4, Format: FormatIndexed8, Pix: make([]byte, 16)},
	} {
		_, err = Acquire(img)
		test.That(t, errors.Is(err, ErrBufferMismatch), test.ShouldBeTrue)
		test.That(t, img.mu.TryLock(), test.ShouldBeTrue)
		img.mu.Unlock()
	}
}

func TestCommitMismatch(t *testing.T) {
	img := NewBitmap(4, 4, FormatIndexed8)
	lock, err := Acquire(img)
	test.That(t, err, test.ShouldBeNil)
	err = lock.Commit(NewPixelBuffer(3, 4, 3, 1))
	test.That(t, errors.Is(err, ErrBufferMismatch), test.ShouldBeTrue)

	lock, err = Acquire(img)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, errors.Is(lock.Commit(nil), ErrBufferMismatch), test.ShouldBeTrue)
}

func TestAcquireSerializes(t *testing.T) {
	img := NewBitmap(1, 1, FormatIndexed8)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			lock, err := Acquire(img)
			if err != nil {
				return
			}
			defer lock.Release()
			buf := lock.Buffer()
			buf.Pix[0]++
			_ = lock.Commit(buf)
		}()
	}
	wg.Wait()
	test.That(t, img.Pix[0], test.ShouldEqual, uint8(50))
}

func TestFromImage(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 2, 2))
	gray.SetGray(1, 1, color.Gray{Y: 200})
	bm := FromImage(gray)
	test.That(t, bm.Format, test.ShouldEqual, FormatIndexed8)
	test.That(t, bm.Pix, test.ShouldResemble, []byte{0, 0, 0, 200})
	back, ok := bm.ToImage().(*image.Gray)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, back.Pix, test.ShouldResemble, gray.Pix)

	nrgba := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	nrgba.SetNRGBA(0, 0, color.NRGBA{R: 1, G: 2, B: 3, A: 4})
	bm = FromImage(nrgba)
	test.That(t, bm.Format, test.ShouldEqual, FormatRGBA32)
	test.That(t, bm.Pix, test.ShouldResemble, []byte{1, 2, 3, 4})

	ycc := image.NewYCbCr(image.Rect(0, 0, 2, 1), image.YCbCrSubsampleRatio444)
	bm = FromImage(ycc)
	test.That(t, bm.Format, test.ShouldEqual, FormatRGB24)
	test.That(t, len(bm.Pix), test.ShouldEqual, 6)
	test.That(t, bm.ToImage().Bounds(), test.ShouldResemble, image.Rect(0, 0, 2, 1))

	bm = FromImage(image.NewGray16(image.Rect(0, 0, 2, 2)))
	test.That(t, bm.Format, test.ShouldEqual, FormatGray16)
	_, err := Acquire(bm)
	test.That(t, errors.Is(err, ErrUnsupportedFormat), test.ShouldBeTrue)

	test.That(t, FromImage(nil), test.ShouldBeNil)
}

func TestBitmapAt(t *testing.T) {
	bm := NewBitmap(2, 1, FormatRGB24)
	copy(bm.Pix, []byte{1, 2, 3, 4, 5, 6})
	test.That(t, bm.At(1, 0), test.ShouldResemble, color.RGBA{R: 4, G: 5, B: 6, A: 255})
	test.That(t, bm.At(5, 0), test.ShouldResemble, color.Transparent)
	test.That(t, bm.Bounds(), test.ShouldResemble, image.Rect(0, 0, 2, 1))
}
