package timecode

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFormat matches every *FormatError.
	ErrInvalidFormat = errors.New("invalid timecode format")

	// ErrDegenerateRange matches every *DegenerateRangeError.
	ErrDegenerateRange = errors.New("degenerate clip range")

	// ErrInvalidFrameRate is returned for zero, negative or non-finite rates.
	ErrInvalidFrameRate = errors.New("frame rate must be a positive number")

	// ErrFrameOverflow is returned when a frame count does not fit in an int.
	ErrFrameOverflow = errors.New("frame count out of range")
)

// FormatError reports a timecode string that is not S, M:S or H:M:S with
// non-negative decimal components.
type FormatError struct {
	Timecode string
	Reason   string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid timecode format %q: %s", e.Timecode, e.Reason)
}

func (e *FormatError) Is(target error) bool {
	return target == ErrInvalidFormat
}

// DegenerateRangeError reports a clip whose end frame does not come after
// its start frame.
type DegenerateRangeError struct {
	StartTimecode string
	EndTimecode   string
	StartFrame    int
	EndFrame      int
}

func (e *DegenerateRangeError) Error() string {
	return fmt.Sprintf(
		"clip range %q - %q has zero or negative duration (frames %d-%d)",
		e.StartTimecode,
		e.EndTimecode,
		e.StartFrame,
		e.EndFrame,
	)
}

func (e *DegenerateRangeError) Is(target error) bool {
	return target == ErrDegenerateRange
}
