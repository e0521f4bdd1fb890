// Package media wraps ffprobe and ffmpeg for the few operations teaser
// needs on source files: probing, audio extraction and preview cuts.
package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// media file information
type Info struct {
	Path      string
	Duration  time.Duration
	Width     int
	Height    int
	FrameRate float64
	Codec     string
	HasVideo  bool
	HasAudio  bool
}

// JSON output from ffprobe -show_format -show_streams
type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecType    string `json:"codec_type"`
		CodecName    string `json:"codec_name"`
		Width        int    `json:"width"`
		Height       int    `json:"height"`
		RFrameRate   string `json:"r_frame_rate"`
		AvgFrameRate string `json:"avg_frame_rate"`
	} `json:"streams"`
}

// Probe runs ffprobe on path.
func Probe(ctx context.Context, path string) (*Info, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s", path)
	}

	ffprobePath, err := FFprobePath()
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	info, err := parseProbeOutput(out.Bytes())
	if err != nil {
		return nil, err
	}
	info.Path = path
	return info, nil
}

func parseProbeOutput(data []byte) (*Info, error) {
	var probe ffprobeOutput
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	info := &Info{}
	if probe.Format.Duration != "" {
		seconds, err := strconv.ParseFloat(probe.Format.Duration, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse duration: %w", err)
		}
		info.Duration = time.Duration(seconds * float64(time.Second))
	}

	for _, s := range probe.Streams {
		switch s.CodecType {
		case "video":
			if info.HasVideo {
				continue
			}
			info.HasVideo = true
			info.Codec = s.CodecName
			info.Width = s.Width
			info.Height = s.Height
			rate, err := ParseFrameRate(s.RFrameRate)
			if err != nil || rate == 0 {
				rate, _ = ParseFrameRate(s.AvgFrameRate)
			}
			info.FrameRate = rate
		case "audio":
			info.HasAudio = true
		}
	}

	return info, nil
}

// ParseFrameRate reads ffprobe's rational ("30000/1001") or decimal rate.
// "0/0" yields 0 without error.
func ParseFrameRate(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty frame rate")
	}
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		return strconv.ParseFloat(s, 64)
	}
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid frame rate %q: %w", s, err)
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid frame rate %q: %w", s, err)
	}
	if d == 0 {
		return 0, nil
	}
	return n / d, nil
}
