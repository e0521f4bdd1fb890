// Package fcpxml is an editor host that builds timelines in memory and
// writes them as an FCPXML document for import into DaVinci Resolve or
// Final Cut Pro.
package fcpxml

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/mgpai22/teaser/internal/editor"
	"github.com/mgpai22/teaser/internal/media"
)

var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/mgpai22/teaser/fcpxml"))

// deterministic per file name so re-imports keep the same identity
func generateUID(kind, name string) string {
	return strings.ToUpper(uuid.NewSHA1(uidNamespace, []byte(kind+":"+name)).String())
}

// Options configures a new host.
type Options struct {
	Project   string  // event name in the library
	FrameRate float64 // default for new timelines
	Width     int
	Height    int
}

// Host is an in-memory project. It is not safe for concurrent use.
type Host struct {
	project *project
}

func New(opts Options) *Host {
	if opts.Project == "" {
		opts.Project = "Teaser"
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 1920, 1080
	}
	return &Host{project: &project{opts: opts}}
}

func (h *Host) Project(ctx context.Context) (editor.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return h.project, nil
}

// Media is a source file in the media pool. Folder "" is the pool root.
type Media struct {
	Name      string
	Path      string
	Folder    string
	Duration  float64 // seconds, 0 when unknown
	FrameRate float64
	Width     int
	Height    int
	HasVideo  bool
	HasAudio  bool
}

// AddMedia declares a media item.
func (h *Host) AddMedia(m Media) *Media {
	if m.Name == "" {
		m.Name = filepath.Base(m.Path)
	}
	item := &mediaItem{Media: m}
	h.project.media = append(h.project.media, item)
	return &item.Media
}

// ProbeMedia describes the file at path with ffprobe, named after its
// base name at the pool root.
func ProbeMedia(ctx context.Context, path string) (Media, error) {
	info, err := media.Probe(ctx, path)
	if err != nil {
		return Media{}, err
	}
	return Media{
		Name:      filepath.Base(path),
		Path:      path,
		Duration:  info.Duration.Seconds(),
		FrameRate: info.FrameRate,
		Width:     info.Width,
		Height:    info.Height,
		HasVideo:  info.HasVideo,
		HasAudio:  info.HasAudio,
	}, nil
}

type mediaItem struct {
	Media Media
}

func (m *mediaItem) Name() string { return m.Media.Name }

type project struct {
	opts      Options
	media     []*mediaItem
	timelines []*Timeline
	current   *Timeline
}

func (p *project) Name() string { return p.opts.Project }

func (p *project) FindTimeline(ctx context.Context, name string) (editor.Timeline, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, tl := range p.timelines {
		if tl.name == name {
			return tl, nil
		}
	}
	return nil, editor.ErrTimelineNotFound
}

func (p *project) CreateTimeline(ctx context.Context, name string, frameRate float64) (editor.Timeline, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("timeline name is empty")
	}
	for _, tl := range p.timelines {
		if tl.name == name {
			return nil, fmt.Errorf("timeline %q already exists", name)
		}
	}
	if frameRate <= 0 {
		frameRate = p.opts.FrameRate
	}
	tl := &Timeline{name: name, rate: frameRate, baseTrack: 1}
	p.timelines = append(p.timelines, tl)
	return tl, nil
}

func (p *project) SetCurrentTimeline(ctx context.Context, tl editor.Timeline) error {
	t, ok := tl.(*Timeline)
	if !ok {
		return fmt.Errorf("timeline %q does not belong to this project", tl.Name())
	}
	p.current = t
	return nil
}

// FindMedia searches the pool root, then each folder one level down.
func (p *project) FindMedia(ctx context.Context, name string) (editor.MediaItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, m := range p.media {
		if m.Media.Folder == "" && m.Media.Name == name {
			return m, nil
		}
	}
	for _, m := range p.media {
		if m.Media.Folder != "" && !strings.Contains(m.Media.Folder, "/") && m.Media.Name == name {
			return m, nil
		}
	}
	return nil, editor.ErrMediaNotFound
}

// Timeline is an FCPXML project: a spine of clips and gaps with titles
// connected above it.
type Timeline struct {
	name      string
	rate      float64
	baseTrack int
	spine     []spineItem
	titles    []titleItem
	duration  int
}

type titleItem struct {
	editor.TitleSpec
	lane int
}

type spineItem struct {
	media  *mediaItem // nil for a gap
	name   string
	offset int
	start  int
	frames int
	video  bool
	audio  bool
}

func (t *Timeline) Name() string { return t.name }

func (t *Timeline) FrameRate() (float64, error) {
	if t.rate <= 0 {
		return 0, errors.New("timeline has no frame rate")
	}
	return t.rate, nil
}

func (t *Timeline) Duration() int { return t.duration }

func (t *Timeline) AppendClip(ctx context.Context, spec editor.ClipSpec) (editor.Placement, error) {
	if err := ctx.Err(); err != nil {
		return editor.Placement{}, err
	}
	m, ok := spec.Media.(*mediaItem)
	if !ok || m == nil {
		return editor.Placement{}, errors.New("media item does not belong to this project")
	}
	if spec.StartFrame < 0 || spec.EndFrame < spec.StartFrame {
		return editor.Placement{}, fmt.Errorf("invalid source frames %d..%d", spec.StartFrame, spec.EndFrame)
	}
	if spec.VideoTrack <= 0 && spec.AudioTrack <= 0 {
		return editor.Placement{}, errors.New("clip has neither video nor audio enabled")
	}
	if limit := secondsToFrames(m.Media.Duration, t.effectiveRate()); limit > 0 && spec.EndFrame >= limit {
		return editor.Placement{}, fmt.Errorf("source frames %d..%d exceed media length of %d frames",
			spec.StartFrame, spec.EndFrame, limit)
	}

	name := spec.Name
	if name == "" {
		name = m.Media.Name
	}
	if spec.VideoTrack > 0 {
		t.baseTrack = spec.VideoTrack
	}

	p := editor.Placement{In: t.duration, Out: t.duration + spec.Frames()}
	t.spine = append(t.spine, spineItem{
		media:  m,
		name:   name,
		offset: p.In,
		start:  spec.StartFrame,
		frames: spec.Frames(),
		video:  spec.VideoTrack > 0,
		audio:  spec.AudioTrack > 0,
	})
	t.duration = p.Out
	return p, nil
}

func (t *Timeline) InsertGap(ctx context.Context, frames int) (editor.Placement, error) {
	if err := ctx.Err(); err != nil {
		return editor.Placement{}, err
	}
	if frames <= 0 {
		return editor.Placement{}, fmt.Errorf("gap length must be positive, got %d", frames)
	}
	p := editor.Placement{In: t.duration, Out: t.duration + frames}
	t.spine = append(t.spine, spineItem{name: "Gap", offset: p.In, frames: frames})
	t.duration = p.Out
	return p, nil
}

// InsertTitle connects a title above the spine. The lane is the title
// track relative to the clips' video track.
func (t *Timeline) InsertTitle(ctx context.Context, spec editor.TitleSpec) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if spec.Track-t.baseTrack < 1 {
		return fmt.Errorf("title track %d must be above video track %d", spec.Track, t.baseTrack)
	}
	if spec.Offset < 0 || spec.Offset >= t.duration {
		return fmt.Errorf("title offset %d is outside the timeline (0..%d)", spec.Offset, t.duration)
	}
	if spec.Duration <= 0 {
		return fmt.Errorf("title duration must be positive, got %d", spec.Duration)
	}
	t.titles = append(t.titles, titleItem{TitleSpec: spec, lane: spec.Track - t.baseTrack})
	return nil
}

func (t *Timeline) effectiveRate() float64 {
	if t.rate > 0 {
		return t.rate
	}
	return editor.FallbackFrameRate
}

// Timelines returns the project's timelines in creation order.
func (h *Host) Timelines() []*Timeline {
	return h.project.timelines
}
