package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mgpai22/teaser/internal/editor"
	"github.com/mgpai22/teaser/internal/media"
	"github.com/mgpai22/teaser/internal/plan"
)

var previewCmd = &cobra.Command{
	Use:   "preview [plan_file]",
	Short: "Cut the plan's clips with ffmpeg for a quick look",
	Long: `Render each clip of a teaser plan to its own file, and optionally join
them into one preview, without opening an editor.

Examples:
  teaser preview teaser.yaml
  teaser preview teaser.yaml --media interview.mkv --dir clips --concat teaser.mp4`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().
		String("media", "", "Path to the source media (default: the plan's source)")
	previewCmd.Flags().
		String("dir", "", "Directory for the cut clips (default: <plan>_clips)")
	previewCmd.Flags().
		String("concat", "", "Also join the clips into this file")
	previewCmd.Flags().
		Float64("fps", 0, "Frame rate when the plan and media don't set one")
}

func runPreview(cmd *cobra.Command, args []string) error {
	planPath := args[0]
	ctx := context.Background()

	mediaFlag, _ := cmd.Flags().GetString("media")
	dir, _ := cmd.Flags().GetString("dir")
	concatPath, _ := cmd.Flags().GetString("concat")
	fps, _ := cmd.Flags().GetFloat64("fps")

	p, err := plan.Load(planPath)
	if err != nil {
		return err
	}
	mediaPath, err := sourcePath(planPath, p, mediaFlag)
	if err != nil {
		return err
	}
	if dir == "" {
		dir = strings.TrimSuffix(planPath, filepath.Ext(planPath)) + "_clips"
	}

	rate := previewFrameRate(ctx, p, mediaPath, fps)

	resolved, warnings, err := p.Resolve(rate)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		logger.Warn(w.String())
	}
	if len(resolved) == 0 {
		return fmt.Errorf("no usable clips in %s", planPath)
	}

	cuts := make([]media.Cut, 0, len(resolved))
	for _, rc := range resolved {
		cuts = append(cuts, media.Cut{Name: rc.Clip.Label, Range: rc.Range})
	}

	logger.Infow("Cutting clips", "count", len(cuts), "fps", rate, "dir", dir)
	paths, err := media.CutClips(ctx, mediaPath, cuts, rate, dir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Cut %d clips at %g fps:\n", len(paths), rate)
	for _, path := range paths {
		fmt.Fprintf(out, "  %s\n", path)
	}

	if concatPath != "" {
		if err := media.Concat(ctx, paths, concatPath); err != nil {
			return err
		}
		absConcat, _ := filepath.Abs(concatPath)
		fmt.Fprintf(out, "Preview written: %s\n", absConcat)
	}
	return nil
}

// plan override, then the media's rate, then --fps, then the editor fallback
func previewFrameRate(ctx context.Context, p *plan.Plan, mediaPath string, fps float64) float64 {
	if p.FrameRate > 0 {
		return p.FrameRate
	}
	info, err := media.Probe(ctx, mediaPath)
	if err == nil && info.FrameRate > 0 {
		return info.FrameRate
	}
	if fps > 0 {
		return fps
	}
	logger.Warnw("Could not determine frame rate, using fallback",
		"error", err, "fps", editor.FallbackFrameRate)
	return editor.FallbackFrameRate
}
