package youtube

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTranscriptUnavailable matches every failure to obtain a transcript.
	ErrTranscriptUnavailable = errors.New("transcript unavailable")

	ErrInvalidVideoID      = errors.New("invalid YouTube video ID")
	ErrTranscriptsDisabled = errors.New("transcripts are disabled for this video")
	ErrNoTranscript        = errors.New("no transcript found")
	ErrVideoUnavailable    = errors.New("video is unavailable")
)

// FetchError reports why no transcript could be retrieved. It matches both
// its Kind and ErrTranscriptUnavailable.
type FetchError struct {
	VideoID string
	Kind    error
	Err     error
}

func (e *FetchError) Error() string {
	msg := e.Kind.Error()
	if e.VideoID != "" {
		msg = fmt.Sprintf("%s (video %s)", msg, e.VideoID)
	}
	if e.Err != nil && e.Err != e.Kind {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) Is(target error) bool {
	return target == ErrTranscriptUnavailable || target == e.Kind
}

// classify maps a source failure onto one of the error kinds. The
// transcript library reports failures as plain errors, so its messages are
// matched when no kind is wrapped.
func classify(err error) error {
	for _, kind := range []error{ErrTranscriptsDisabled, ErrVideoUnavailable, ErrNoTranscript, ErrInvalidVideoID} {
		if errors.Is(err, kind) {
			return kind
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "disabled"):
		return ErrTranscriptsDisabled
	case strings.Contains(msg, "unavailable"),
		strings.Contains(msg, "private"),
		strings.Contains(msg, "no longer available"),
		strings.Contains(msg, "removed"):
		return ErrVideoUnavailable
	case strings.Contains(msg, "no transcript"),
		strings.Contains(msg, "not found"),
		strings.Contains(msg, "no captions"),
		strings.Contains(msg, "could not find"):
		return ErrNoTranscript
	default:
		return ErrTranscriptUnavailable
	}
}
