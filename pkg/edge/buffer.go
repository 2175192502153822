package edge

import (
	"sync"

	"github.com/pkg/errors"
)

// PixelBuffer is a row-major byte grid of interleaved channels. Rows may be padded, so
// Stride can exceed Width*BytesPerPixel.
type PixelBuffer struct {
	Width         int
	Height        int
	Stride        int
	BytesPerPixel int
	Pix           []byte
}

// NewPixelBuffer allocates a zeroed buffer.
func NewPixelBuffer(width, height, stride, bytesPerPixel int) *PixelBuffer {
	return &PixelBuffer{
		Width:         width,
		Height:        height,
		Stride:        stride,
		BytesPerPixel: bytesPerPixel,
		Pix:           make([]byte, stride*height),
	}
}

// NewPixelBufferLike allocates a zeroed buffer with the geometry of src.
func NewPixelBufferLike(src *PixelBuffer) *PixelBuffer {
	return NewPixelBuffer(src.Width, src.Height, src.Stride, src.BytesPerPixel)
}

// Offset returns the index of the first channel of pixel (x, y).
func (pb *PixelBuffer) Offset(x, y int) int {
	return y*pb.Stride + x*pb.BytesPerPixel
}

// Clone returns a deep copy of the buffer.
func (pb *PixelBuffer) Clone() *PixelBuffer {
	out := *pb
	out.Pix = make([]byte, len(pb.Pix))
	copy(out.Pix, pb.Pix)
	return &out
}

func (pb *PixelBuffer) sameGeometry(o *PixelBuffer) bool {
	return pb.Width == o.Width && pb.Height == o.Height && pb.Stride == o.Stride &&
		pb.BytesPerPixel == o.BytesPerPixel && len(pb.Pix) == len(o.Pix)
}

// Lock is exclusive access to a Bitmap's pixel storage obtained from Acquire.
// Every Lock must end with Commit or Release; Release is safe to defer alongside Commit.
type Lock struct {
	img  *Bitmap
	buf  *PixelBuffer
	once sync.Once
}

// Acquire locks img for read/write and copies its pixel bytes into a PixelBuffer.
// It returns ErrNullBuffer when there is nothing to acquire, ErrUnsupportedFormat when the
// layout is not one the engine processes and ErrBufferMismatch when rows do not fit in the
// stride; in all cases no lock is held.
func Acquire(img *Bitmap) (*Lock, error) {
	if img == nil {
		return nil, ErrNullBuffer
	}
	if !img.Format.Supported() {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "format %s", img.Format)
	}
	if img.Width < 0 || img.Height < 0 || img.Stride < img.Width*img.Format.BytesPerPixel() {
		return nil, errors.Wrapf(ErrBufferMismatch, "%dx%d %s image with stride %d",
			img.Width, img.Height, img.Format, img.Stride)
	}
	img.mu.Lock()
	if len(img.Pix) == 0 || len(img.Pix) < img.Stride*img.Height {
		img.mu.Unlock()
		return nil, ErrNullBuffer
	}
	buf := &PixelBuffer{
		Width:         img.Width,
		Height:        img.Height,
		Stride:        img.Stride,
		BytesPerPixel: img.Format.BytesPerPixel(),
		Pix:           make([]byte, img.Stride*img.Height),
	}
	copy(buf.Pix, img.Pix)
	return &Lock{img: img, buf: buf}, nil
}

// Buffer returns the bytes copied out of the image at Acquire time.
func (l *Lock) Buffer() *PixelBuffer {
	return l.buf
}

// Commit copies buf back into the image and releases the lock.
// A buffer with different geometry is rejected with ErrBufferMismatch and the image is left as is.
func (l *Lock) Commit(buf *PixelBuffer) error {
	var err error
	committed := false
	l.once.Do(func() {
		committed = true
		defer l.img.mu.Unlock()
		if buf == nil || !buf.sameGeometry(l.buf) {
			err = ErrBufferMismatch
			return
		}
		copy(l.img.Pix, buf.Pix)
	})
	if !committed {
		return errors.New("lock already released")
	}
	return err
}

// Release gives up the lock without writing anything. It does nothing after Commit.
func (l *Lock) Release() {
	if l == nil {
		return
	}
	l.once.Do(l.img.mu.Unlock)
}
