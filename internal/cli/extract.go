package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mgpai22/teaser/internal/media"
)

var extractCmd = &cobra.Command{
	Use:   "extract [video_file]",
	Short: "Extract speech audio from a video file",
	Long: `Extract the audio of a recording as a small speech-ready file, the same
audio "transcribe" sends to a provider. Useful for transcribing elsewhere.

Examples:
  teaser extract interview.mkv
  teaser extract interview.mkv -o interview.wav -f wav --sample-rate 44100`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

var extractFormats = map[string]bool{"mp3": true, "wav": true, "aac": true, "flac": true}

func init() {
	rootCmd.AddCommand(extractCmd)

	defaults := media.DefaultExtractAudioOptions()
	extractCmd.Flags().
		StringP("format", "f", defaults.Format, "Output audio format (mp3, wav, aac, flac)")
	extractCmd.Flags().
		Int("sample-rate", defaults.SampleRate, "Sample rate in Hz")
	extractCmd.Flags().
		Int("channels", defaults.Channels, "Number of audio channels (1=mono, 2=stereo)")
	extractCmd.Flags().
		String("bitrate", defaults.Bitrate, "Bitrate for lossy formats (e.g., 64k, 128k)")
}

func runExtract(cmd *cobra.Command, args []string) error {
	videoPath := args[0]

	opts := media.DefaultExtractAudioOptions()
	opts.Format, _ = cmd.Flags().GetString("format")
	opts.SampleRate, _ = cmd.Flags().GetInt("sample-rate")
	opts.Channels, _ = cmd.Flags().GetInt("channels")
	opts.Bitrate, _ = cmd.Flags().GetString("bitrate")
	outputPath, _ := cmd.Flags().GetString("output")

	if !extractFormats[opts.Format] {
		return fmt.Errorf("invalid format %q: supported formats are mp3, wav, aac, flac", opts.Format)
	}
	if !media.IsVideoFile(videoPath) {
		return fmt.Errorf("unsupported file type: %s (expected a video file)", filepath.Ext(videoPath))
	}
	if outputPath == "" {
		outputPath = strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + "." + opts.Format
	}

	logger.Infow("Extracting audio",
		"video", videoPath,
		"output", outputPath,
		"format", opts.Format,
		"sample_rate", opts.SampleRate,
		"channels", opts.Channels,
	)

	if err := media.ExtractAudio(context.Background(), videoPath, outputPath, opts); err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Audio extracted: %s\n", absOutput)
	return nil
}
