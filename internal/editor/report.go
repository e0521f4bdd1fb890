package editor

import (
	"fmt"
	"io"
	"sort"

	"github.com/mgpai22/teaser/internal/plan"
	"github.com/mgpai22/teaser/internal/subtitle"
	"github.com/mgpai22/teaser/internal/timecode"
)

// Report summarises one assembly run.
type Report struct {
	Project           string
	Timeline          string
	Reused            bool
	FrameRate         float64
	FrameRateFallback bool
	Appended          []AppendedClip
	Skipped           []SkippedClip
	RecordFrames      int
}

// AppendedClip is a clip that landed on the timeline.
type AppendedClip struct {
	Position int
	Clip     plan.Clip
	Source   timecode.Range
	Record   Placement
	Titled   bool
	TitleErr error
}

// SkippedClip is a clip left out, with the reason.
type SkippedClip struct {
	Position int
	Clip     plan.Clip
	Reason   error
}

func (r *Report) sortSkipped() {
	sort.SliceStable(r.Skipped, func(i, j int) bool {
		return r.Skipped[i].Position < r.Skipped[j].Position
	})
}

// Duration is the assembled record length in seconds.
func (r *Report) Duration() float64 {
	if r.FrameRate <= 0 {
		return 0
	}
	return float64(r.RecordFrames) / r.FrameRate
}

// Print writes a human-readable summary.
func (r *Report) Print(w io.Writer) {
	fmt.Fprintf(w, "Timeline:   %s", r.Timeline)
	if r.Reused {
		fmt.Fprint(w, " (existing)")
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Frame rate: %g fps", r.FrameRate)
	if r.FrameRateFallback {
		fmt.Fprint(w, " (fallback)")
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Duration:   %s (%d frames)\n", subtitle.FormatSRTTimestamp(r.Duration()), r.RecordFrames)
	fmt.Fprintf(w, "Appended:   %d\n", len(r.Appended))
	for _, c := range r.Appended {
		fmt.Fprintf(w, "  %2d. %s-%s  src %d-%d  rec %d-%d",
			c.Position, c.Clip.Start, c.Clip.End,
			c.Source.Start, c.Source.EndInclusive(),
			c.Record.In, c.Record.Out)
		if c.Clip.Label != "" {
			fmt.Fprintf(w, "  %q", c.Clip.Label)
		}
		fmt.Fprintln(w)
	}
	if len(r.Skipped) > 0 {
		fmt.Fprintf(w, "Skipped:    %d\n", len(r.Skipped))
		for _, c := range r.Skipped {
			fmt.Fprintf(w, "  %2d. %s-%s  %v\n", c.Position, c.Clip.Start, c.Clip.End, c.Reason)
		}
	}
}
