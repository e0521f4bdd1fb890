// Package youtube retrieves published transcripts for YouTube videos and
// normalises them into subtitle segments.
package youtube

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	videoURLPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/watch\?v=([a-zA-Z0-9_-]{11})`),
		regexp.MustCompile(`(?:https?://)?youtu\.be/([a-zA-Z0-9_-]{11})`),
		regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/embed/([a-zA-Z0-9_-]{11})`),
		regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/live/([a-zA-Z0-9_-]{11})`),
	}
	bareVideoID = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)
)

// ExtractVideoID returns the 11-character id from a watch, youtu.be, embed
// or live URL, or s itself when it already is an id.
func ExtractVideoID(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, re := range videoURLPatterns {
		if m := re.FindStringSubmatch(s); m != nil {
			return m[1], nil
		}
	}
	if bareVideoID.MatchString(s) {
		return s, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidVideoID, s)
}
