// Package timecode converts positional S, M:S and H:M:S timecodes into frame
// counts and clip ranges. Everything here is pure and safe for concurrent use.
package timecode

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Timecode is a parsed positional timecode. Components are not clock
// wrapped: "90" is ninety seconds and "75:00" is seventy-five minutes.
type Timecode struct {
	Hours   int
	Minutes int
	Seconds int
}

// Parse splits tc on ':' and reads one, two or three non-negative decimal
// components as seconds, minutes:seconds or hours:minutes:seconds.
func Parse(tc string) (Timecode, error) {
	s := strings.TrimSpace(tc)
	if s == "" {
		return Timecode{}, &FormatError{Timecode: tc, Reason: "empty"}
	}

	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return Timecode{}, &FormatError{
			Timecode: tc,
			Reason:   fmt.Sprintf("expected 1 to 3 components, got %d", len(parts)),
		}
	}

	values := make([]int, len(parts))
	for i, p := range parts {
		v, err := parseComponent(p)
		if err != nil {
			return Timecode{}, &FormatError{Timecode: tc, Reason: err.Error()}
		}
		values[i] = v
	}

	var t Timecode
	switch len(values) {
	case 1:
		t.Seconds = values[0]
	case 2:
		t.Minutes, t.Seconds = values[0], values[1]
	case 3:
		t.Hours, t.Minutes, t.Seconds = values[0], values[1], values[2]
	}
	return t, nil
}

func parseComponent(p string) (int, error) {
	if p == "" {
		return 0, fmt.Errorf("empty component")
	}
	for _, r := range p {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("component %q is not a non-negative integer", p)
		}
	}
	v, err := strconv.ParseInt(p, 10, strconv.IntSize)
	if err != nil {
		return 0, fmt.Errorf("component %q is out of range", p)
	}
	return int(v), nil
}

// TotalSeconds is hours*3600 + minutes*60 + seconds.
func (t Timecode) TotalSeconds() int {
	return t.Hours*3600 + t.Minutes*60 + t.Seconds
}

// Frames converts the timecode to a frame count at frameRate, truncating
// toward zero. Counts that do not fit in an int fail with ErrFrameOverflow.
func (t Timecode) Frames(frameRate float64) (int, error) {
	if err := validateRate(frameRate); err != nil {
		return 0, err
	}
	seconds := float64(t.Hours)*3600 + float64(t.Minutes)*60 + float64(t.Seconds)
	frames := math.Trunc(seconds * frameRate)
	// float64(math.MaxInt) may round up past MaxInt
	if math.IsInf(frames, 0) || frames >= float64(math.MaxInt) {
		return 0, fmt.Errorf("%w: %v seconds at %v fps", ErrFrameOverflow, seconds, frameRate)
	}
	return int(frames), nil
}

// String renders the canonical form: M:SS below an hour, H:MM:SS above.
func (t Timecode) String() string {
	total := t.TotalSeconds()
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// ToFrames parses tc and converts it to a frame count at frameRate.
func ToFrames(tc string, frameRate float64) (int, error) {
	t, err := Parse(tc)
	if err != nil {
		return 0, err
	}
	return t.Frames(frameRate)
}

// FromSeconds builds a timecode from a seconds offset, dropping the
// fractional part. Negative offsets clamp to zero.
func FromSeconds(seconds float64) Timecode {
	if seconds <= 0 || math.IsNaN(seconds) {
		return Timecode{}
	}
	total := int(math.Floor(seconds))
	return Timecode{
		Hours:   total / 3600,
		Minutes: (total % 3600) / 60,
		Seconds: total % 60,
	}
}

// Format renders a seconds offset as a canonical timecode string.
func Format(seconds float64) string {
	return FromSeconds(seconds).String()
}

func validateRate(frameRate float64) error {
	if frameRate <= 0 || math.IsNaN(frameRate) || math.IsInf(frameRate, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidFrameRate, frameRate)
	}
	return nil
}
