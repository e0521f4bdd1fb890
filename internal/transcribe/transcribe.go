// Package transcribe produces timed transcripts of local media through a
// speech-to-text provider, for sources that have no published transcript.
package transcribe

import (
	"context"
	"fmt"
	"time"

	"github.com/mgpai22/teaser/internal/subtitle"
)

// transcription result
type Result struct {
	Segments []subtitle.Segment
	Language string
	Duration time.Duration
}

// interface for audio transcription
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (*Result, error)
}

// transcription service provider
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
)

// transcription options
type Options struct {
	Language           string // Source language of audio
	TranscriptLanguage string // Output language for transcript (default: "native")
	Model              string
	Prompt             string
}

// creates transcriber based on provider
func Factory(
	ctx context.Context,
	provider Provider,
	apiKey string,
	opts Options,
) (Transcriber, error) {
	switch provider {
	case ProviderGemini:
		return NewGeminiTranscriber(ctx, apiKey, opts)
	case ProviderOpenAI:
		return NewOpenAITranscriber(ctx, apiKey, opts)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}

// APIKeyEnv is the environment variable holding the provider's key.
func APIKeyEnv(provider Provider) string {
	switch provider {
	case ProviderGemini:
		return "GEMINI_API_KEY"
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	default:
		return ""
	}
}
