package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mgpai22/teaser/internal/plan"
	"github.com/mgpai22/teaser/internal/subtitle"
	"github.com/mgpai22/teaser/internal/suggest"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [subtitle_file]",
	Short: "Suggest teaser clips from a transcript and write a plan",
	Long: `Ask Claude to pick the strongest moments of a transcript and write
them as a teaser plan that "assemble" and "preview" can use.

The transcript is an SRT or VTT file, e.g. from "teaser transcript" or
"teaser transcribe". Review and edit the plan before assembling.

Examples:
  teaser suggest dQw4w9WgXcQ_transcript.srt --source "interview.mkv"
  teaser suggest talk.srt --source talk.mp4 --count 8 --max 12 -o teaser.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runSuggest,
}

func init() {
	rootCmd.AddCommand(suggestCmd)

	suggestCmd.Flags().
		String("source", "", "Source media name as it appears in the editor (required)")
	suggestCmd.Flags().
		String("timeline", "Teaser", "Name of the timeline to build")
	suggestCmd.Flags().
		Int("count", suggest.DefaultCount, "Number of clips to suggest")
	suggestCmd.Flags().
		Float64("min", 0, "Shortest clip in seconds (0 for no limit)")
	suggestCmd.Flags().
		Float64("max", 0, "Longest clip in seconds (0 for no limit)")
	suggestCmd.Flags().
		String("gap", "", "Slug between clips as a timecode, e.g. 0:02")
	suggestCmd.Flags().
		Bool("titles", false, "Overlay each clip's label as a title")
	suggestCmd.Flags().
		StringP("api-key", "k", "", "Anthropic API key (or set ANTHROPIC_API_KEY env var)")
	suggestCmd.Flags().
		String("model", "", "Claude model to use (default claude-haiku-4-5)")
	suggestCmd.Flags().
		String("prompt", "", "Extra editorial guidance for the model")

	_ = suggestCmd.MarkFlagRequired("source")
}

func runSuggest(cmd *cobra.Command, args []string) error {
	subtitlePath := args[0]
	ctx := context.Background()

	if _, err := os.Stat(subtitlePath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", subtitlePath)
	}

	source, _ := cmd.Flags().GetString("source")
	timeline, _ := cmd.Flags().GetString("timeline")
	count, _ := cmd.Flags().GetInt("count")
	minSecs, _ := cmd.Flags().GetFloat64("min")
	maxSecs, _ := cmd.Flags().GetFloat64("max")
	gap, _ := cmd.Flags().GetString("gap")
	titles, _ := cmd.Flags().GetBool("titles")
	model, _ := cmd.Flags().GetString("model")
	prompt, _ := cmd.Flags().GetString("prompt")
	outputPath, _ := cmd.Flags().GetString("output")

	if outputPath == "" {
		outputPath = strings.TrimSuffix(subtitlePath, filepath.Ext(subtitlePath)) + ".teaser.yaml"
	}

	apiKey, err := apiKeyFrom(cmd, "ANTHROPIC_API_KEY", "Anthropic")
	if err != nil {
		return err
	}

	segments, err := subtitle.Open(subtitlePath)
	if err != nil {
		return fmt.Errorf("failed to read transcript: %w", err)
	}
	if !subtitle.IsOrdered(segments) {
		logger.Warnw("Transcript segments are out of order, sorting by start time")
		segments = subtitle.SortByStart(segments)
	}

	logger.Infow("Requesting suggestions",
		"segments", len(segments),
		"count", count,
	)

	suggester, err := suggest.NewAnthropicSuggester(ctx, apiKey, suggest.Options{
		Count:      count,
		MinSeconds: minSecs,
		MaxSeconds: maxSecs,
		Model:      model,
		Prompt:     prompt,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to create suggester: %w", err)
	}

	result, err := suggester.Suggest(ctx, segments)
	if err != nil {
		return err
	}

	p := plan.New(source, timeline, result.Clips)
	p.Gap = gap
	if titles {
		p.Titles = plan.Titles{Enabled: true, Track: plan.DefaultTitleTrack}
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("suggested plan is invalid: %w", err)
	}
	if err := p.Write(outputPath); err != nil {
		return fmt.Errorf("failed to write plan: %w", err)
	}

	out := cmd.OutOrStdout()
	absOutput, _ := filepath.Abs(outputPath)
	fmt.Fprintf(out, "Plan written: %s\n", absOutput)
	for i, c := range result.Clips {
		fmt.Fprintf(out, "  %d. %s-%s %s\n", i+1, c.Start, c.End, c.Label)
	}
	if n := len(result.Dropped); n > 0 {
		fmt.Fprintf(out, "  Dropped: %d\n", n)
	}
	return nil
}
