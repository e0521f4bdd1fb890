package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ParseVTT reads a WebVTT document into segments. NOTE and STYLE blocks
// and cue identifiers are skipped.
func ParseVTT(r io.Reader) ([]Segment, error) {
	var segments []Segment
	scanner := bufio.NewScanner(r)

	var (
		current   *Segment
		textLines []string
		lineNum   int
	)

	flush := func() {
		if current != nil && len(textLines) > 0 {
			current.Text = strings.Join(textLines, "\n")
			segments = append(segments, *current)
		}
		current = nil
		textLines = nil
	}

	headerParsed := false
	for scanner.Scan() {
		line := scanner.Text()
		lineNum++

		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		trimmed := strings.TrimSpace(line)

		if !headerParsed && strings.HasPrefix(trimmed, "WEBVTT") {
			headerParsed = true
			continue
		}

		if current == nil && (strings.HasPrefix(trimmed, "NOTE") || strings.HasPrefix(trimmed, "STYLE")) {
			for scanner.Scan() {
				lineNum++
				if strings.TrimSpace(scanner.Text()) == "" {
					break
				}
			}
			continue
		}

		if trimmed == "" {
			flush()
			continue
		}

		seg, ok, err := parseCueTiming(line)
		if err != nil {
			return nil, fmt.Errorf("invalid timing at line %d: %w", lineNum, err)
		}
		if ok {
			flush()
			current = &seg
			continue
		}

		if current != nil {
			textLines = append(textLines, line)
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading VTT: %w", err)
	}

	return segments, nil
}
