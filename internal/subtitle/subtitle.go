package subtitle

import (
	"sort"
	"strings"
)

// Segment is one timed unit of transcript text. Start and Duration are in
// seconds from the beginning of the media. Every transcript source
// normalises its output into this record.
type Segment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// End is Start + Duration.
func (s Segment) End() float64 {
	return s.Start + s.Duration
}

// represents supported output formats
type Format string

const (
	FormatSRT  Format = "srt"
	FormatVTT  Format = "vtt"
	FormatText Format = "txt"
)

// interface for writing segments to files
type Writer interface {
	Write(segments []Segment, path string) error
}

// BuildPlainText joins every segment's text with a single space.
func BuildPlainText(segments []Segment) string {
	if len(segments) == 0 {
		return ""
	}
	texts := make([]string, len(segments))
	for i, seg := range segments {
		texts[i] = seg.Text
	}
	return strings.Join(texts, " ")
}

// SortByStart returns a copy of segments ordered by start time. Segments
// with equal starts keep their input order.
func SortByStart(segments []Segment) []Segment {
	sorted := make([]Segment, len(segments))
	copy(sorted, segments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})
	return sorted
}

// IsOrdered reports whether segment starts never decrease.
func IsOrdered(segments []Segment) bool {
	for i := 1; i < len(segments); i++ {
		if segments[i].Start < segments[i-1].Start {
			return false
		}
	}
	return true
}
