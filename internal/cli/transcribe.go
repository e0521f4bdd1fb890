package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mgpai22/teaser/internal/media"
	"github.com/mgpai22/teaser/internal/transcribe"
)

var transcribeCmd = &cobra.Command{
	Use:   "transcribe [media_file]",
	Short: "Transcribe a local audio or video file",
	Long: `Transcribe a local recording that has no published transcript.

For video files, audio is extracted first. With --chunk-duration the audio
is split and chunks are transcribed in parallel. Writes
<name>_transcript.txt and <name>_transcript.srt next to the input, or at
the --output base path.

Examples:
  teaser transcribe interview.mp4
  teaser transcribe podcast.mp3 --provider openai --chunk-duration 5
  teaser transcribe talk.mkv -l es --transcript-language english`,
	Args: cobra.ExactArgs(1),
	RunE: runTranscribe,
}

func init() {
	rootCmd.AddCommand(transcribeCmd)

	transcribeCmd.Flags().
		String("provider", "gemini", "Transcription provider (gemini, openai)")
	transcribeCmd.Flags().
		StringP("api-key", "k", "", "API key (or set GEMINI_API_KEY/OPENAI_API_KEY env var)")
	transcribeCmd.Flags().
		String("model", "", "Model to use (provider default when empty)")
	transcribeCmd.Flags().
		IntP("chunk-duration", "d", 0, "Chunk duration in minutes, 0 to send the whole file")
	transcribeCmd.Flags().
		Int("concurrency", 3, "Number of parallel transcription workers")
	transcribeCmd.Flags().
		String("transcript-language", "native", "Output language for transcript (e.g., 'english', or 'native' for original language)")
	transcribeCmd.Flags().
		String("prompt", "", "Extra context for the transcriber (names, terms)")
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	mediaPath := args[0]
	ctx := context.Background()

	if _, err := os.Stat(mediaPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", mediaPath)
	}
	if !media.IsMediaFile(mediaPath) {
		return fmt.Errorf("unsupported file type: %s (expected audio or video file)", filepath.Ext(mediaPath))
	}

	providerStr, _ := cmd.Flags().GetString("provider")
	model, _ := cmd.Flags().GetString("model")
	chunkMinutes, _ := cmd.Flags().GetInt("chunk-duration")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	transcriptLang, _ := cmd.Flags().GetString("transcript-language")
	prompt, _ := cmd.Flags().GetString("prompt")
	language, _ := cmd.Flags().GetString("language")
	outputPath, _ := cmd.Flags().GetString("output")

	provider := transcribe.Provider(strings.ToLower(providerStr))
	envVar := transcribe.APIKeyEnv(provider)
	if envVar == "" {
		return fmt.Errorf("unsupported provider %q: use gemini or openai", providerStr)
	}
	if provider == transcribe.ProviderOpenAI && !isValidOpenAITranscriptLanguage(transcriptLang) {
		return fmt.Errorf("openai can only transcribe natively or translate to english, got %q", transcriptLang)
	}
	apiKey, err := apiKeyFrom(cmd, envVar, string(provider))
	if err != nil {
		return err
	}

	base := strings.TrimSuffix(outputPath, filepath.Ext(outputPath))
	if outputPath == "" {
		base = strings.TrimSuffix(mediaPath, filepath.Ext(mediaPath)) + "_transcript"
	}

	transcriber, err := transcribe.Factory(ctx, provider, apiKey, transcribe.Options{
		Language:           language,
		TranscriptLanguage: transcriptLang,
		Model:              model,
		Prompt:             prompt,
	})
	if err != nil {
		return fmt.Errorf("failed to create transcriber: %w", err)
	}

	logger.Infow("Starting transcription",
		"input", mediaPath,
		"provider", provider,
		"chunk_minutes", chunkMinutes,
		"concurrency", concurrency,
	)

	result, err := transcribe.TranscribeFile(ctx, transcriber, mediaPath, transcribe.FileOptions{
		ChunkDuration: time.Duration(chunkMinutes) * time.Minute,
		Concurrency:   concurrency,
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("transcription failed: %w", err)
	}

	logger.Infow("Transcription complete", "segments", len(result.Segments))

	paths, err := writeTranscript(result.Segments, base)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Transcript generated successfully:")
	for _, p := range paths {
		fmt.Fprintf(out, "  %s\n", p)
	}
	fmt.Fprintf(out, "  Segments: %d\n", len(result.Segments))
	if result.Duration > 0 {
		fmt.Fprintf(out, "  Duration: %s\n", result.Duration)
	}
	return nil
}

// OpenAI can transcribe in the source language or translate to English only
func isValidOpenAITranscriptLanguage(lang string) bool {
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "", "native", "english", "en":
		return true
	default:
		return false
	}
}
