package transcribe

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/mgpai22/teaser/internal/subtitle"
)

// segment as requested from generative models
type transcriptSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

var jsonBlockRegex = regexp.MustCompile("```(?:json)?\\s*")

// removes markdown formatting from the response
func cleanJSONResponse(s string) string {
	s = strings.TrimSpace(s)
	s = jsonBlockRegex.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// extractTranscriptSegments finds the first JSON value in s that holds a
// segment array: a bare array, or one nested under any object key. Models
// often wrap the JSON in prose, so every '[' and '{' is tried in turn.
func extractTranscriptSegments(s string) ([]transcriptSegment, error) {
	for i := 0; i < len(s); i++ {
		if s[i] != '[' && s[i] != '{' {
			continue
		}
		var raw json.RawMessage
		if err := json.NewDecoder(strings.NewReader(s[i:])).Decode(&raw); err != nil {
			continue
		}
		if segs, ok := segmentsFromJSON(raw); ok {
			return segs, nil
		}
	}
	return nil, fmt.Errorf("no transcript segments found in response: %s", truncateString(s, 200))
}

var preferredKeys = []string{"segments", "transcript", "data"}

func segmentsFromJSON(raw json.RawMessage) ([]transcriptSegment, bool) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return nil, false
	}

	switch trimmed[0] {
	case '[':
		var segs []transcriptSegment
		if err := json.Unmarshal(raw, &segs); err != nil || !validateSegments(segs) {
			return nil, false
		}
		return segs, true
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, false
		}
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		keys = append(preferredKeys, keys...)
		for _, k := range keys {
			v, ok := obj[k]
			if !ok {
				continue
			}
			if segs, ok := segmentsFromJSON(v); ok {
				return segs, true
			}
		}
	}
	return nil, false
}

// reports whether at least one segment carries any data
func validateSegments(segs []transcriptSegment) bool {
	for _, s := range segs {
		if s.Text != "" || s.Start != 0 || s.End != 0 {
			return true
		}
	}
	return false
}

func toSubtitleSegments(segs []transcriptSegment) []subtitle.Segment {
	out := make([]subtitle.Segment, 0, len(segs))
	for _, s := range segs {
		duration := s.End - s.Start
		if duration < 0 {
			duration = 0
		}
		out = append(out, subtitle.Segment{
			Text:     strings.TrimSpace(s.Text),
			Start:    s.Start,
			Duration: duration,
		})
	}
	return out
}

// truncates a string to maxLen characters
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
