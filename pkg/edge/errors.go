package edge

import "github.com/pkg/errors"

var (
	// ErrUnsupportedFormat is returned when an image's channel layout is not
	// 8-bit indexed, 24-bit RGB or 32-bit RGBA.
	ErrUnsupportedFormat = errors.New("unsupported pixel format")

	// ErrNullBuffer is returned by Acquire when there is no image or pixel storage to work on.
	// Detector operations treat it as "nothing to do" rather than a failure.
	ErrNullBuffer = errors.New("no pixel buffer to acquire")

	// ErrBufferMismatch is returned when a committed buffer does not have the geometry of the image.
	ErrBufferMismatch = errors.New("buffer geometry does not match image")

	// ErrInvalidKernel is returned for kernels that are empty, non-square or even-sized.
	ErrInvalidKernel = errors.New("invalid convolution kernel")

	// ErrUnknownCommand is returned by ApplyCommand for names missing from Commands.
	ErrUnknownCommand = errors.New("unknown command")
)
