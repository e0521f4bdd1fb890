// Package editor drives a non-linear editor host to assemble a teaser
// timeline from a plan.
package editor

import "context"

// Host is an open editor session. It is injected by the caller; nothing in
// this package reaches for a process-wide host object.
type Host interface {
	Project(ctx context.Context) (Project, error)
}

// Project is the current project of a host session.
type Project interface {
	Name() string
	// FindTimeline returns ErrTimelineNotFound when no timeline has the name.
	FindTimeline(ctx context.Context, name string) (Timeline, error)
	// CreateTimeline creates an empty timeline. A zero frameRate leaves the
	// choice to the host.
	CreateTimeline(ctx context.Context, name string, frameRate float64) (Timeline, error)
	SetCurrentTimeline(ctx context.Context, tl Timeline) error
	// FindMedia looks up a media item by name in the media pool root and
	// one level of sub-folders. Returns ErrMediaNotFound when absent.
	FindMedia(ctx context.Context, name string) (MediaItem, error)
}

// MediaItem is a source clip in the host's media pool.
type MediaItem interface {
	Name() string
}

// Timeline is an editable sequence. Record positions are frames from the
// start of the timeline.
type Timeline interface {
	Name() string
	FrameRate() (float64, error)
	// Duration is the current record end in frames.
	Duration() int
	AppendClip(ctx context.Context, spec ClipSpec) (Placement, error)
	InsertGap(ctx context.Context, frames int) (Placement, error)
	InsertTitle(ctx context.Context, spec TitleSpec) error
}

// ClipSpec selects source frames StartFrame..EndFrame, both inclusive, the
// convention editor hosts use for append calls.
type ClipSpec struct {
	Media      MediaItem
	Name       string
	StartFrame int
	EndFrame   int
	VideoTrack int // <= 0 omits video
	AudioTrack int // <= 0 omits audio
}

// Frames is the number of source frames selected.
func (s ClipSpec) Frames() int {
	return s.EndFrame - s.StartFrame + 1
}

// TitleSpec places a text title on a track above the spine.
type TitleSpec struct {
	Text     string
	Track    int
	Offset   int // record frame where the title starts
	Duration int
}

// Placement is a half-open record range [In, Out).
type Placement struct {
	In  int
	Out int
}

func (p Placement) Len() int {
	return p.Out - p.In
}
