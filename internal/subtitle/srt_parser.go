package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

var cueTimingRegex = regexp.MustCompile(
	`^\s*((?:\d+:)?\d{1,2}:\d{2}[,.]\d{3})\s*-->\s*((?:\d+:)?\d{1,2}:\d{2}[,.]\d{3})`,
)

// ParseSRT reads a SubRip document into segments.
func ParseSRT(r io.Reader) ([]Segment, error) {
	var segments []Segment
	scanner := bufio.NewScanner(r)

	var (
		current   *Segment
		textLines []string
		lineNum   int
		hasIndex  bool
	)

	flush := func() {
		if current != nil && len(textLines) > 0 {
			current.Text = strings.Join(textLines, "\n")
			segments = append(segments, *current)
		}
		current = nil
		textLines = nil
		hasIndex = false
	}

	for scanner.Scan() {
		line := scanner.Text()
		lineNum++

		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}

		if current == nil && !hasIndex {
			if _, err := strconv.Atoi(strings.TrimSpace(line)); err == nil {
				hasIndex = true
				continue
			}
		}

		if current == nil {
			seg, ok, err := parseCueTiming(line)
			if err != nil {
				return nil, fmt.Errorf("invalid timing at line %d: %w", lineNum, err)
			}
			if ok {
				current = &seg
				continue
			}
		}

		if current != nil {
			textLines = append(textLines, line)
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading SRT: %w", err)
	}

	return segments, nil
}

// parses a "start --> end" line; ok is false when the line is not a timing line
func parseCueTiming(line string) (Segment, bool, error) {
	m := cueTimingRegex.FindStringSubmatch(line)
	if m == nil {
		return Segment{}, false, nil
	}
	start, err := ParseSRTTimestamp(m[1])
	if err != nil {
		return Segment{}, false, err
	}
	end, err := ParseSRTTimestamp(m[2])
	if err != nil {
		return Segment{}, false, err
	}
	if end < start {
		return Segment{}, false, fmt.Errorf("cue ends before it starts: %s", strings.TrimSpace(line))
	}
	return Segment{Start: start, Duration: end - start}, true, nil
}
