package editor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mgpai22/teaser/internal/logging"
	"github.com/mgpai22/teaser/internal/plan"
)

// FallbackFrameRate is used when neither the plan nor the timeline
// provides a frame rate.
const FallbackFrameRate = 24.0

// Assembler appends the clips of a plan to a host timeline.
type Assembler struct {
	Host   Host
	Logger *logging.Logger
	// Settle is a pause after every host edit, for hosts that apply edits
	// asynchronously. Zero for synchronous hosts.
	Settle time.Duration
}

// Assemble builds the plan's timeline. Missing media and timeline creation
// failures abort; per-clip failures are recorded in the report and the
// rest of the batch still runs.
func (a *Assembler) Assemble(ctx context.Context, p *plan.Plan) (*Report, error) {
	if a.Host == nil {
		return nil, errors.New("no editor host configured")
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid plan: %w", err)
	}
	logger := logging.OrNop(a.Logger)

	project, err := a.Host.Project(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: open project: %w", ErrHostOperation, err)
	}
	logger.Infow("Working with project", "project", project.Name())

	report := &Report{Project: project.Name(), Timeline: p.Timeline}

	timeline, err := a.openTimeline(ctx, project, p, report)
	if err != nil {
		return nil, err
	}

	report.FrameRate = a.frameRate(p, timeline, report)
	logger.Infow("Using timeline", "timeline", timeline.Name(), "fps", report.FrameRate)

	media, err := project.FindMedia(ctx, p.Source)
	if err != nil {
		if errors.Is(err, ErrMediaNotFound) {
			return nil, fmt.Errorf("%w: %q", err, p.Source)
		}
		return nil, fmt.Errorf("%w: find media %q: %w", ErrHostOperation, p.Source, err)
	}
	logger.Infow("Found source media", "media", media.Name())

	resolved, warnings, err := p.Resolve(report.FrameRate)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		logger.Warn(w.String())
		report.Skipped = append(report.Skipped, SkippedClip{
			Position: w.Position,
			Clip:     w.Clip,
			Reason:   w.Err,
		})
	}

	gapFrames, err := p.GapFrames(report.FrameRate)
	if err != nil {
		return nil, fmt.Errorf("gap: %w", err)
	}
	titleFrames, err := p.TitleFrames(report.FrameRate)
	if err != nil {
		return nil, fmt.Errorf("titles: %w", err)
	}

	total := len(p.Clips)
	for _, rc := range resolved {
		if err := ctx.Err(); err != nil {
			report.RecordFrames = timeline.Duration()
			return report, err
		}

		logger.Infow("Processing clip",
			"clip", fmt.Sprintf("%d/%d", rc.Position, total),
			"in", rc.Clip.Start,
			"out", rc.Clip.End,
		)

		placed, err := a.placeClip(ctx, timeline, media, p, rc, total, gapFrames, titleFrames)
		if err != nil {
			logger.Errorw("Failed to append clip", "clip", fmt.Sprintf("%d/%d", rc.Position, total), "error", err)
			report.Skipped = append(report.Skipped, SkippedClip{
				Position: rc.Position,
				Clip:     rc.Clip,
				Reason:   err,
			})
			continue
		}
		report.Appended = append(report.Appended, placed)
		logger.Debugw("Clip appended", "record_in", placed.Record.In, "record_out", placed.Record.Out)
	}

	report.RecordFrames = timeline.Duration()
	report.sortSkipped()

	logger.Infow("Teaser assembly complete",
		"timeline", timeline.Name(),
		"appended", len(report.Appended),
		"skipped", len(report.Skipped),
	)
	return report, nil
}

func (a *Assembler) openTimeline(
	ctx context.Context,
	project Project,
	p *plan.Plan,
	report *Report,
) (Timeline, error) {
	logger := logging.OrNop(a.Logger)

	timeline, err := project.FindTimeline(ctx, p.Timeline)
	switch {
	case err == nil:
		report.Reused = true
		logger.Infow("Timeline exists, using it", "timeline", p.Timeline)
		logger.Warnw("Appending to existing timeline; clear it or use a new timeline name for a clean slate",
			"timeline", p.Timeline)
	case errors.Is(err, ErrTimelineNotFound):
		logger.Infow("Creating new timeline", "timeline", p.Timeline)
		timeline, err = project.CreateTimeline(ctx, p.Timeline, p.FrameRate)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrTimelineCreation, p.Timeline, err)
		}
		if timeline == nil {
			return nil, fmt.Errorf("%w %q", ErrTimelineCreation, p.Timeline)
		}
	default:
		return nil, fmt.Errorf("%w: find timeline %q: %w", ErrHostOperation, p.Timeline, err)
	}

	if err := project.SetCurrentTimeline(ctx, timeline); err != nil {
		return nil, fmt.Errorf("%w: set current timeline: %w", ErrHostOperation, err)
	}
	return timeline, nil
}

// plan override, then the timeline setting, then FallbackFrameRate
func (a *Assembler) frameRate(p *plan.Plan, timeline Timeline, report *Report) float64 {
	if p.FrameRate > 0 {
		return p.FrameRate
	}
	rate, err := timeline.FrameRate()
	if err == nil && rate > 0 {
		return rate
	}
	if err == nil {
		err = fmt.Errorf("timeline reported frame rate %v", rate)
	}
	report.FrameRateFallback = true
	logging.OrNop(a.Logger).Warnw("Could not read timeline frame rate, using fallback",
		"error", err, "fps", FallbackFrameRate)
	return FallbackFrameRate
}

func (a *Assembler) placeClip(
	ctx context.Context,
	timeline Timeline,
	media MediaItem,
	p *plan.Plan,
	rc plan.ResolvedClip,
	total, gapFrames, titleFrames int,
) (AppendedClip, error) {
	fail := func(op string, err error) (AppendedClip, error) {
		return AppendedClip{}, &ClipError{Position: rc.Position, Total: total, Op: op, Err: err}
	}

	recordStart := timeline.Duration()

	if gapFrames > 0 {
		if _, err := timeline.InsertGap(ctx, gapFrames); err != nil {
			return fail("insert gap", err)
		}
		a.settle(ctx)
	}

	placement, err := timeline.AppendClip(ctx, ClipSpec{
		Media:      media,
		Name:       rc.Clip.Label,
		StartFrame: rc.Range.Start,
		EndFrame:   rc.Range.EndInclusive(),
		VideoTrack: p.VideoTrack,
		AudioTrack: p.AudioTrack,
	})
	if err != nil {
		return fail("append", err)
	}
	a.settle(ctx)

	appended := AppendedClip{
		Position: rc.Position,
		Clip:     rc.Clip,
		Source:   rc.Range,
		Record:   placement,
	}

	if p.Titles.Enabled && rc.Clip.Label != "" {
		duration := titleFrames
		if duration == 0 {
			duration = gapFrames
		}
		if duration == 0 {
			duration = placement.Len()
		}
		err := timeline.InsertTitle(ctx, TitleSpec{
			Text:     rc.Clip.Label,
			Track:    p.Titles.Track,
			Offset:   recordStart,
			Duration: duration,
		})
		if err != nil {
			// the clip stays; only its title is missing
			logging.OrNop(a.Logger).Warnw("Failed to add title",
				"clip", fmt.Sprintf("%d/%d", rc.Position, total), "error", err)
			appended.TitleErr = err
		} else {
			appended.Titled = true
			a.settle(ctx)
		}
	}

	return appended, nil
}

// cancellation cuts the pause short; the clip loop checks ctx itself
func (a *Assembler) settle(ctx context.Context) {
	if a.Settle <= 0 {
		return
	}
	timer := time.NewTimer(a.Settle)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
