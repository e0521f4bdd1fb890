package fcpxml

import (
	"encoding/xml"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
)

const (
	basicTitleUID = ".../Titles.localized/Bumper:Opener.localized/Basic Title.localized/Basic Title.moti"
	colorSpace    = "1-1-1 (Rec. 709)"
)

type builder struct {
	host       *Host
	doc        *Document
	nextID     int
	formats    map[string]string
	assets     map[*mediaItem]string
	titleRef   string
	styleCount int
}

func (b *builder) id() string {
	b.nextID++
	return fmt.Sprintf("r%d", b.nextID)
}

func (b *builder) format(rate float64, width, height int) string {
	fd := frameTime(1, rate)
	key := fmt.Sprintf("%s@%dx%d", fd, width, height)
	if id, ok := b.formats[key]; ok {
		return id
	}
	id := b.id()
	f := Format{ID: id, FrameDuration: fd, ColorSpace: colorSpace}
	if width > 0 && height > 0 {
		f.Width = fmt.Sprint(width)
		f.Height = fmt.Sprint(height)
	}
	b.doc.Resources.Formats = append(b.doc.Resources.Formats, f)
	b.formats[key] = id
	return id
}

// Document builds the FCPXML tree for every timeline in the project.
func (h *Host) Document() *Document {
	b := &builder{
		host:    h,
		doc:     &Document{Version: Version},
		formats: map[string]string{},
		assets:  map[*mediaItem]string{},
	}
	opts := h.project.opts

	// timeline formats first so r1 is the primary sequence format
	for _, tl := range h.project.timelines {
		b.format(tl.effectiveRate(), opts.Width, opts.Height)
	}
	for _, m := range h.project.media {
		b.addAsset(m)
	}
	for _, tl := range h.project.timelines {
		if len(tl.titles) > 0 {
			b.titleRef = b.id()
			b.doc.Resources.Effects = append(b.doc.Resources.Effects, Effect{
				ID:   b.titleRef,
				Name: "Basic Title",
				UID:  basicTitleUID,
			})
			break
		}
	}

	event := Event{Name: opts.Project, UID: generateUID("event", opts.Project)}
	for _, tl := range h.project.timelines {
		event.Projects = append(event.Projects, b.project(tl))
	}
	b.doc.Library.Events = []Event{event}
	return b.doc
}

func (b *builder) addAsset(m *mediaItem) {
	rate := m.Media.FrameRate
	if rate <= 0 {
		rate = b.defaultRate()
	}

	durationFrames := secondsToFrames(m.Media.Duration, rate)
	if durationFrames == 0 {
		// unknown length: cover every range the timelines use
		durationFrames = secondsToFrames(b.usedSeconds(m), rate)
	}

	src := m.Media.Path
	if src == "" {
		src = m.Media.Name
	}
	if abs, err := filepath.Abs(src); err == nil {
		src = abs
	}

	asset := Asset{
		ID:       b.id(),
		Name:     m.Media.Name,
		UID:      generateUID("media", m.Media.Name),
		Start:    "0s",
		Duration: frameTime(durationFrames, rate),
		MediaRep: MediaRep{
			Kind: "original-media",
			Src:  (&url.URL{Scheme: "file", Path: filepath.ToSlash(src)}).String(),
		},
	}
	// undeclared streams are treated as a regular video with sound
	hasVideo := m.Media.HasVideo || !m.Media.HasAudio
	hasAudio := m.Media.HasAudio || !m.Media.HasVideo
	if hasVideo {
		asset.HasVideo = "1"
		asset.Format = b.format(rate, m.Media.Width, m.Media.Height)
	}
	if hasAudio {
		asset.HasAudio = "1"
		asset.AudioSources = "1"
		asset.AudioChannels = "2"
		asset.AudioRate = "48000"
	}

	b.doc.Resources.Assets = append(b.doc.Resources.Assets, asset)
	b.assets[m] = asset.ID
}

func (b *builder) defaultRate() float64 {
	if tls := b.host.project.timelines; len(tls) > 0 {
		return tls[0].effectiveRate()
	}
	if r := b.host.project.opts.FrameRate; r > 0 {
		return r
	}
	return 24
}

func (b *builder) usedSeconds(m *mediaItem) float64 {
	var longest float64
	for _, tl := range b.host.project.timelines {
		for _, item := range tl.spine {
			if item.media != m {
				continue
			}
			end := float64(item.start+item.frames) / tl.effectiveRate()
			if end > longest {
				longest = end
			}
		}
	}
	return longest
}

func (b *builder) project(tl *Timeline) Project {
	rate := tl.effectiveRate()
	opts := b.host.project.opts
	formatID := b.format(rate, opts.Width, opts.Height)

	spine := make([]any, 0, len(tl.spine))
	clips := make([]*AssetClip, len(tl.spine))
	gaps := make([]*Gap, len(tl.spine))
	for i, item := range tl.spine {
		if item.media == nil {
			gaps[i] = &Gap{
				Name:     item.name,
				Offset:   frameTime(item.offset, rate),
				Start:    "0s",
				Duration: frameTime(item.frames, rate),
			}
			continue
		}
		clip := &AssetClip{
			Ref:      b.assets[item.media],
			Offset:   frameTime(item.offset, rate),
			Name:     item.name,
			Start:    frameTime(item.start, rate),
			Duration: frameTime(item.frames, rate),
			TCFormat: "NDF",
		}
		switch {
		case item.video && !item.audio:
			clip.SrcEnable = "video"
		case item.audio && !item.video:
			clip.SrcEnable = "audio"
		}
		clips[i] = clip
	}

	for _, title := range tl.titles {
		i := tl.spineIndexAt(title.Offset)
		if i < 0 {
			continue
		}
		parent := tl.spine[i]
		local := title.Offset - parent.offset
		if parent.media != nil {
			local += parent.start
		}
		t := b.title(title, local, rate)
		if clips[i] != nil {
			clips[i].Titles = append(clips[i].Titles, t)
		} else {
			gaps[i].Titles = append(gaps[i].Titles, t)
		}
	}

	for i := range tl.spine {
		if clips[i] != nil {
			spine = append(spine, *clips[i])
		} else {
			spine = append(spine, *gaps[i])
		}
	}

	return Project{
		Name: tl.name,
		UID:  generateUID("project", tl.name),
		Sequence: Sequence{
			Format:      formatID,
			Duration:    frameTime(tl.duration, rate),
			TCStart:     "0s",
			TCFormat:    "NDF",
			AudioLayout: "stereo",
			AudioRate:   "48k",
			Spine:       Spine{Items: spine},
		},
	}
}

func (b *builder) title(item titleItem, localOffset int, rate float64) Title {
	b.styleCount++
	styleID := fmt.Sprintf("ts%d", b.styleCount)
	return Title{
		Ref:      b.titleRef,
		Lane:     fmt.Sprint(item.lane),
		Offset:   frameTime(localOffset, rate),
		Name:     item.Text,
		Duration: frameTime(item.Duration, rate),
		Text: &TitleText{
			TextStyle: TextStyleRef{Ref: styleID, Text: item.Text},
		},
		TextStyleDef: &TextStyleDef{
			ID: styleID,
			TextStyle: TextStyle{
				Font:      "Helvetica",
				FontSize:  "63",
				FontFace:  "Regular",
				FontColor: "1 1 1 1",
				Alignment: "center",
			},
		},
	}
}

// index of the spine item covering record frame, or -1
func (t *Timeline) spineIndexAt(frame int) int {
	for i, item := range t.spine {
		if frame >= item.offset && frame < item.offset+item.frames {
			return i
		}
	}
	return -1
}

// Marshal renders the project as an FCPXML document.
func (h *Host) Marshal() ([]byte, error) {
	body, err := xml.MarshalIndent(h.Document(), "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode fcpxml: %w", err)
	}
	out := xml.Header + "<!DOCTYPE fcpxml>\n\n" + string(body) + "\n"
	return []byte(out), nil
}

// Write saves the document to path.
func (h *Host) Write(path string) error {
	data, err := h.Marshal()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write fcpxml: %w", err)
	}
	return nil
}
