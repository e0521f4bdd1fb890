package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/mgpai22/teaser/internal/timecode"
)

// Cut is one source range to render.
type Cut struct {
	Name  string
	Range timecode.Range
}

// seek arguments for a frame range; re-encodes so cuts land on the
// requested frame instead of the nearest keyframe
func cutArgs(r timecode.Range, frameRate float64) ffmpeg.KwArgs {
	return ffmpeg.KwArgs{
		"ss":  fmt.Sprintf("%.6f", float64(r.Start)/frameRate),
		"t":   fmt.Sprintf("%.6f", float64(r.Len())/frameRate),
		"c:v": "libx264",
		"c:a": "aac",
		"r":   frameRate,
	}
}

// CutClips renders each cut of inputPath into outputDir and returns the
// written files in order.
func CutClips(
	ctx context.Context,
	inputPath string,
	cuts []Cut,
	frameRate float64,
	outputDir string,
) ([]string, error) {
	if frameRate <= 0 {
		return nil, fmt.Errorf("frame rate must be positive, got %v", frameRate)
	}
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("input file not found: %s", inputPath)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	ffmpegPath, err := FFmpegPath()
	if err != nil {
		return nil, err
	}

	ext := filepath.Ext(inputPath)
	if ext == "" || IsAudioFile(inputPath) {
		ext = ".mp4"
	}

	paths := make([]string, 0, len(cuts))
	for i, c := range cuts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := c.Name
		if name == "" {
			name = "clip"
		}
		out := filepath.Join(outputDir, fmt.Sprintf("%03d_%s%s", i+1, sanitizeName(name), ext))

		err := ffmpeg.Input(inputPath).
			Output(out, cutArgs(c.Range, frameRate)).
			OverWriteOutput().
			SetFfmpegPath(ffmpegPath).
			Run()
		if err != nil {
			return nil, fmt.Errorf("failed to cut clip %d: %w", i+1, err)
		}
		paths = append(paths, out)
	}

	return paths, nil
}

// Concat joins already-encoded clips into outputPath with the concat
// demuxer.
func Concat(ctx context.Context, clips []string, outputPath string) error {
	if len(clips) == 0 {
		return fmt.Errorf("no clips to concatenate")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	ffmpegPath, err := FFmpegPath()
	if err != nil {
		return err
	}

	listPath := outputPath + ".txt"
	if err := os.WriteFile(listPath, []byte(concatList(clips)), 0644); err != nil {
		return fmt.Errorf("failed to write concat list: %w", err)
	}
	defer func() { _ = os.Remove(listPath) }()

	err = ffmpeg.Input(listPath, ffmpeg.KwArgs{"f": "concat", "safe": 0}).
		Output(outputPath, ffmpeg.KwArgs{"c": "copy"}).
		OverWriteOutput().
		SetFfmpegPath(ffmpegPath).
		Run()
	if err != nil {
		return fmt.Errorf("concat failed: %w", err)
	}
	return nil
}

func concatList(clips []string) string {
	var sb strings.Builder
	for _, c := range clips {
		abs, err := filepath.Abs(c)
		if err != nil {
			abs = c
		}
		sb.WriteString("file '")
		sb.WriteString(strings.ReplaceAll(abs, "'", `'\''`))
		sb.WriteString("'\n")
	}
	return sb.String()
}

func sanitizeName(name string) string {
	name = strings.Map(func(r rune) rune {
		if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '_'
	}, name)
	if len(name) > 40 {
		name = name[:40]
	}
	return name
}
