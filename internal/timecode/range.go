package timecode

import "fmt"

// Range is a half-open frame range [Start, End).
type Range struct {
	Start int
	End   int
}

// Len is the number of frames in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// EndInclusive is the last frame inside the range, the form host
// timeline APIs take for a clip's out point.
func (r Range) EndInclusive() int {
	return r.End - 1
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}

// NewRange converts a start/end timecode pair at a shared frame rate. A
// malformed timecode yields a *FormatError; a range whose end does not
// exceed its start yields a *DegenerateRangeError.
func NewRange(startTC, endTC string, frameRate float64) (Range, error) {
	start, err := ToFrames(startTC, frameRate)
	if err != nil {
		return Range{}, err
	}
	end, err := ToFrames(endTC, frameRate)
	if err != nil {
		return Range{}, err
	}
	if end <= start {
		return Range{}, &DegenerateRangeError{
			StartTimecode: startTC,
			EndTimecode:   endTC,
			StartFrame:    start,
			EndFrame:      end,
		}
	}
	return Range{Start: start, End: end}, nil
}
