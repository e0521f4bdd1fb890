package subtitle

import (
	"fmt"
	"strings"
)

// BuildSRT renders segments as a SubRip document, one cue per segment in
// input order:
//
//	1
//	00:00:00,000 --> 00:00:01,000
//	Hi
//	<blank>
//
// An empty input yields "".
func BuildSRT(segments []Segment) string {
	if len(segments) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, seg := range segments {
		// index (1-based)
		sb.WriteString(fmt.Sprintf("%d\n", i+1))

		sb.WriteString(fmt.Sprintf("%s --> %s\n",
			FormatSRTTimestamp(seg.Start),
			FormatSRTTimestamp(seg.End())))

		sb.WriteString(seg.Text)
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// BuildVTT renders segments as a WebVTT document.
func BuildVTT(segments []Segment) string {
	var sb strings.Builder

	sb.WriteString("WEBVTT\n\n")

	for i, seg := range segments {
		// optional cue identifier
		sb.WriteString(fmt.Sprintf("%d\n", i+1))

		sb.WriteString(fmt.Sprintf("%s --> %s\n",
			FormatVTTTimestamp(seg.Start),
			FormatVTTTimestamp(seg.End())))

		sb.WriteString(seg.Text)
		sb.WriteString("\n\n")
	}
	return sb.String()
}
