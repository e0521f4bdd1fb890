package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mgpai22/teaser/internal/subtitle"
	"github.com/mgpai22/teaser/internal/youtube"
)

var transcriptCmd = &cobra.Command{
	Use:   "transcript [youtube_url_or_id]",
	Short: "Download a YouTube transcript as text and SRT",
	Long: `Download the published transcript of a YouTube video.

Languages are tried in order; when none is available the first transcript
the video offers is used. Two files are written to --dir:
<video_id>_transcript.txt and <video_id>_transcript.srt.

Examples:
  teaser transcript https://www.youtube.com/watch?v=dQw4w9WgXcQ
  teaser transcript dQw4w9WgXcQ --languages de,en --dir transcripts`,
	Args: cobra.ExactArgs(1),
	RunE: runTranscript,
}

func init() {
	rootCmd.AddCommand(transcriptCmd)

	transcriptCmd.Flags().
		String("languages", "en,en-US", "Preferred transcript languages, in order")
	transcriptCmd.Flags().
		String("dir", ".", "Directory for the transcript files")
}

func runTranscript(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	languages, _ := cmd.Flags().GetString("languages")
	dir, _ := cmd.Flags().GetString("dir")

	tr, err := youtube.NewFetcher(logger).Fetch(ctx, args[0], splitList(languages))
	if err != nil {
		return err
	}

	paths, err := writeTranscript(tr.Segments, filepath.Join(dir, tr.FileBase()))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Transcript saved: %s (%s", tr.VideoID, tr.LanguageCode)
	if tr.Generated {
		fmt.Fprint(out, ", auto-generated")
	}
	fmt.Fprintln(out, ")")
	for _, p := range paths {
		fmt.Fprintf(out, "  %s\n", p)
	}
	fmt.Fprintf(out, "  Segments: %d\n", len(tr.Segments))
	return nil
}

// writes base.txt and base.srt
func writeTranscript(segments []subtitle.Segment, base string) ([]string, error) {
	var paths []string
	for _, format := range []subtitle.Format{subtitle.FormatText, subtitle.FormatSRT} {
		writer, err := subtitle.NewWriter(format)
		if err != nil {
			return nil, err
		}
		path := base + subtitle.GetExtensionForFormat(format)
		if err := writer.Write(segments, path); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", path, err)
		}
		abs, _ := filepath.Abs(path)
		paths = append(paths, abs)
	}
	return paths, nil
}
