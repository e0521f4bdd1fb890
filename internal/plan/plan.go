// Package plan loads teaser plans: the source media, target timeline and
// ordered clip ranges a teaser is assembled from.
package plan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mgpai22/teaser/internal/timecode"
)

// Plan describes one teaser timeline.
type Plan struct {
	Source     string  `yaml:"source"`
	Timeline   string  `yaml:"timeline"`
	FrameRate  float64 `yaml:"frame_rate,omitempty"` // 0 = use the timeline's rate
	VideoTrack int     `yaml:"video_track"`          // <= 0 disables video
	AudioTrack int     `yaml:"audio_track"`          // <= 0 disables audio
	Gap        string  `yaml:"gap,omitempty"`        // slug inserted before each clip
	Titles     Titles  `yaml:"titles,omitempty"`
	Clips      []Clip  `yaml:"clips"`
}

// Titles configures the text overlay shown over each clip's gap slug (or
// over the clip itself when there is no gap).
type Titles struct {
	Enabled  bool   `yaml:"enabled"`
	Track    int    `yaml:"track,omitempty"`
	Duration string `yaml:"duration,omitempty"` // defaults to the gap, else the clip
}

// Clip is one source range in authoring-time timecodes.
type Clip struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
	Label string `yaml:"label,omitempty"`
}

const (
	DefaultVideoTrack = 1
	DefaultAudioTrack = 1
	DefaultTitleTrack = 2
)

// New returns a plan with default tracks.
func New(source, timeline string, clips []Clip) *Plan {
	return &Plan{
		Source:     source,
		Timeline:   timeline,
		VideoTrack: DefaultVideoTrack,
		AudioTrack: DefaultAudioTrack,
		Clips:      clips,
	}
}

// Load reads and validates a YAML plan file.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse decodes and validates a YAML plan. Absent track keys keep their
// defaults.
func Parse(data []byte) (*Plan, error) {
	p := New("", "", nil)
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("failed to parse plan: %w", err)
	}
	if p.Titles.Enabled && p.Titles.Track == 0 {
		p.Titles.Track = DefaultTitleTrack
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the structural rules of a plan. Malformed timecodes are
// reported here, before any host call is made.
func (p *Plan) Validate() error {
	var errs []error

	if strings.TrimSpace(p.Source) == "" {
		errs = append(errs, errors.New("source is required"))
	}
	if strings.TrimSpace(p.Timeline) == "" {
		errs = append(errs, errors.New("timeline is required"))
	}
	if p.FrameRate < 0 {
		errs = append(errs, fmt.Errorf("frame_rate must not be negative, got %v", p.FrameRate))
	}
	if p.VideoTrack <= 0 && p.AudioTrack <= 0 {
		errs = append(errs, errors.New("at least one of video_track and audio_track must be positive"))
	}
	if p.Gap != "" {
		if _, err := timecode.Parse(p.Gap); err != nil {
			errs = append(errs, fmt.Errorf("gap: %w", err))
		}
	}
	if p.Titles.Enabled {
		if p.Titles.Track <= 0 {
			errs = append(errs, fmt.Errorf("titles.track must be positive, got %d", p.Titles.Track))
		} else if p.Titles.Track == p.VideoTrack {
			errs = append(errs, fmt.Errorf("titles.track %d collides with video_track", p.Titles.Track))
		}
		if p.Titles.Duration != "" {
			if _, err := timecode.Parse(p.Titles.Duration); err != nil {
				errs = append(errs, fmt.Errorf("titles.duration: %w", err))
			}
		}
	}
	if len(p.Clips) == 0 {
		errs = append(errs, errors.New("at least one clip is required"))
	}
	for i, c := range p.Clips {
		if _, err := timecode.Parse(c.Start); err != nil {
			errs = append(errs, fmt.Errorf("clip %d start: %w", i+1, err))
		}
		if _, err := timecode.Parse(c.End); err != nil {
			errs = append(errs, fmt.Errorf("clip %d end: %w", i+1, err))
		}
	}

	return errors.Join(errs...)
}

// GapFrames is the gap slug length at frameRate; 0 when no gap is set.
func (p *Plan) GapFrames(frameRate float64) (int, error) {
	if p.Gap == "" {
		return 0, nil
	}
	return timecode.ToFrames(p.Gap, frameRate)
}

// TitleFrames is the configured title length at frameRate; 0 means the
// title follows the gap or clip it sits on.
func (p *Plan) TitleFrames(frameRate float64) (int, error) {
	if !p.Titles.Enabled || p.Titles.Duration == "" {
		return 0, nil
	}
	return timecode.ToFrames(p.Titles.Duration, frameRate)
}

// Write stores the plan as YAML.
func (p *Plan) Write(path string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
