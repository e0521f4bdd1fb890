package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mgpai22/teaser/internal/timecode"
)

var framesCmd = &cobra.Command{
	Use:   "frames [timecode...]",
	Short: "Convert timecodes to frame counts",
	Long: `Convert M:SS or H:MM:SS timecodes to frame counts at a frame rate.

Examples:
  teaser frames 0:47 1:02:05
  teaser frames 0:47 --fps 29.97`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFrames,
}

func init() {
	rootCmd.AddCommand(framesCmd)

	framesCmd.Flags().Float64("fps", 24, "Frame rate")
}

func runFrames(cmd *cobra.Command, args []string) error {
	fps, _ := cmd.Flags().GetFloat64("fps")

	out := cmd.OutOrStdout()
	for _, tc := range args {
		frames, err := timecode.ToFrames(tc, fps)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\t%d\n", tc, frames)
	}
	return nil
}
