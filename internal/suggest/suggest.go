// Package suggest asks a language model to pick teaser-worthy ranges from a
// transcript and turns its answer into plan clips.
package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/mgpai22/teaser/internal/plan"
	"github.com/mgpai22/teaser/internal/subtitle"
	"github.com/mgpai22/teaser/internal/timecode"
)

const DefaultCount = 5

// Suggestion is one range proposed by the model, in seconds.
type Suggestion struct {
	Start  float64 `json:"start"`
	End    float64 `json:"end"`
	Label  string  `json:"label"`
	Reason string  `json:"reason,omitempty"`
}

// Dropped is a suggestion rejected during validation.
type Dropped struct {
	Suggestion Suggestion
	Reason     string
}

type Result struct {
	Clips   []plan.Clip
	Dropped []Dropped
}

// interface for clip suggestion
type Suggester interface {
	Suggest(ctx context.Context, segments []subtitle.Segment) (*Result, error)
}

type Options struct {
	Count      int     // clips to ask for (default 5)
	MinSeconds float64 // shortest acceptable clip, 0 for no limit
	MaxSeconds float64 // longest acceptable clip, 0 for no limit
	Model      string
	Prompt     string // extra editorial guidance
}

func (o Options) count() int {
	if o.Count > 0 {
		return o.Count
	}
	return DefaultCount
}

// BuildPrompt renders the numbered transcript and the reply contract.
func BuildPrompt(opts Options, segments []subtitle.Segment) string {
	var sb strings.Builder

	sb.WriteString("You are editing a short teaser from the transcript below. ")
	fmt.Fprintf(&sb, "Pick the %d most compelling moments, each one understandable on its own. ", opts.count())
	if opts.MinSeconds > 0 || opts.MaxSeconds > 0 {
		fmt.Fprintf(&sb, "Each moment should last between %g and %g seconds. ", opts.MinSeconds, opts.MaxSeconds)
	}
	sb.WriteString("List them in the order they should play in the teaser. ")
	if opts.Prompt != "" {
		sb.WriteString(opts.Prompt)
		sb.WriteString(" ")
	}
	sb.WriteString("Return ONLY a JSON array of objects with 'start' and 'end' in seconds (numbers), ")
	sb.WriteString("a short 'label' quoting the key phrase, and a one-sentence 'reason'.\n\nTranscript:\n")

	for i, seg := range segments {
		fmt.Fprintf(&sb, "[%d] %s --> %s %s\n",
			i+1,
			subtitle.FormatSRTTimestamp(seg.Start),
			subtitle.FormatSRTTimestamp(seg.End()),
			strings.TrimSpace(seg.Text),
		)
	}
	return sb.String()
}

var jsonBlockRegex = regexp.MustCompile("```(?:json)?\\s*")

// removes markdown formatting from the response
func cleanJSONResponse(s string) string {
	s = jsonBlockRegex.ReplaceAllString(strings.TrimSpace(s), "")
	return strings.TrimSpace(strings.ReplaceAll(s, "```", ""))
}

// ParseSuggestions extracts the first JSON array of suggestions from a
// model reply, skipping any prose around it.
func ParseSuggestions(reply string) ([]Suggestion, error) {
	reply = cleanJSONResponse(reply)
	for i := 0; i < len(reply); i++ {
		if reply[i] != '[' {
			continue
		}
		var out []Suggestion
		if err := json.NewDecoder(strings.NewReader(reply[i:])).Decode(&out); err != nil {
			continue
		}
		if len(out) > 0 {
			return out, nil
		}
	}
	return nil, fmt.Errorf("no suggestions found in response: %s", truncateString(reply, 200))
}

// ToClips validates suggestions against the transcript length and converts
// them to whole-second plan clips. Start rounds down and end rounds up so the
// clip covers the suggested words.
func ToClips(suggestions []Suggestion, transcriptEnd float64, opts Options) *Result {
	res := &Result{}
	drop := func(s Suggestion, format string, args ...any) {
		res.Dropped = append(res.Dropped, Dropped{Suggestion: s, Reason: fmt.Sprintf(format, args...)})
	}

	for _, s := range suggestions {
		switch {
		case len(res.Clips) >= opts.count():
			drop(s, "more than %d clips", opts.count())
			continue
		case math.IsNaN(s.Start) || math.IsNaN(s.End) || s.Start < 0:
			drop(s, "invalid range %v-%v", s.Start, s.End)
			continue
		case s.End <= s.Start:
			drop(s, "end %v is not after start %v", s.End, s.Start)
			continue
		case transcriptEnd > 0 && s.Start >= transcriptEnd:
			drop(s, "starts after the transcript ends at %v", transcriptEnd)
			continue
		}

		length := s.End - s.Start
		if opts.MinSeconds > 0 && length < opts.MinSeconds {
			drop(s, "shorter than %g seconds", opts.MinSeconds)
			continue
		}
		if opts.MaxSeconds > 0 && length > opts.MaxSeconds {
			drop(s, "longer than %g seconds", opts.MaxSeconds)
			continue
		}

		end := s.End
		if transcriptEnd > 0 && end > transcriptEnd {
			end = transcriptEnd
		}
		res.Clips = append(res.Clips, plan.Clip{
			Start: timecode.Format(s.Start),
			End:   timecode.Format(math.Ceil(end)),
			Label: strings.TrimSpace(s.Label),
		})
	}
	return res
}

func transcriptEnd(segments []subtitle.Segment) float64 {
	var end float64
	for _, s := range segments {
		end = math.Max(end, s.End())
	}
	return end
}

// truncates a string to maxLen characters
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
