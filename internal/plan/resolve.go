package plan

import (
	"errors"
	"fmt"

	"github.com/mgpai22/teaser/internal/timecode"
)

// ResolvedClip is a plan clip converted to a source frame range.
type ResolvedClip struct {
	Position int // 1-based position in the plan
	Clip     Clip
	Range    timecode.Range
}

// Warning records a clip skipped during resolution.
type Warning struct {
	Position int
	Total    int
	Clip     Clip
	Err      error
}

func (w Warning) String() string {
	return fmt.Sprintf(
		"clip %d/%d ('%s' - '%s') has zero or negative duration, skipping",
		w.Position,
		w.Total,
		w.Clip.Start,
		w.Clip.End,
	)
}

// Resolve converts every clip at frameRate. Degenerate ranges are skipped
// and reported as warnings so the rest of the batch still assembles; a
// malformed timecode aborts resolution.
func (p *Plan) Resolve(frameRate float64) ([]ResolvedClip, []Warning, error) {
	var (
		resolved []ResolvedClip
		warnings []Warning
	)

	total := len(p.Clips)
	for i, c := range p.Clips {
		r, err := timecode.NewRange(c.Start, c.End, frameRate)
		if errors.Is(err, timecode.ErrDegenerateRange) {
			warnings = append(warnings, Warning{
				Position: i + 1,
				Total:    total,
				Clip:     c,
				Err:      err,
			})
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("clip %d/%d: %w", i+1, total, err)
		}
		resolved = append(resolved, ResolvedClip{
			Position: i + 1,
			Clip:     c,
			Range:    r,
		})
	}

	return resolved, warnings, nil
}
