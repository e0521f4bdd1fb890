package editor

import (
	"errors"
	"fmt"
)

var (
	ErrMediaNotFound    = errors.New("source media not found")
	ErrTimelineNotFound = errors.New("timeline not found")
	ErrTimelineCreation = errors.New("failed to create timeline")
	ErrHostOperation    = errors.New("host operation failed")
)

// ClipError is a per-clip host failure. The assembler records it and moves
// on to the next clip.
type ClipError struct {
	Position int
	Total    int
	Op       string
	Err      error
}

func (e *ClipError) Error() string {
	return fmt.Sprintf("clip %d/%d: %s: %v", e.Position, e.Total, e.Op, e.Err)
}

func (e *ClipError) Unwrap() error {
	return e.Err
}

func (e *ClipError) Is(target error) bool {
	return target == ErrHostOperation
}
