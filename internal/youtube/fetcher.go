package youtube

import (
	"context"
	"errors"

	"github.com/mgpai22/teaser/internal/logging"
	"github.com/mgpai22/teaser/internal/subtitle"
)

// DefaultLanguages is the preference order used when none is given.
var DefaultLanguages = []string{"en", "en-US"}

// Transcript is a fetched transcript, normalised to segments.
type Transcript struct {
	VideoID      string
	LanguageCode string
	Language     string
	Generated    bool
	// Fallback is set when no preferred language was available and the
	// first available track was used instead.
	Fallback bool
	Segments []subtitle.Segment
}

// Text is the plain-text rendering.
func (t *Transcript) Text() string {
	return subtitle.BuildPlainText(t.Segments)
}

// SRT is the SubRip rendering.
func (t *Transcript) SRT() string {
	return subtitle.BuildSRT(t.Segments)
}

// FileBase is the output file stem, "<id>_transcript".
func (t *Transcript) FileBase() string {
	return t.VideoID + "_transcript"
}

// Fetcher retrieves transcripts in a preferred language order.
type Fetcher struct {
	Source Source
	Logger *logging.Logger
}

func NewFetcher(logger *logging.Logger) *Fetcher {
	return &Fetcher{Source: NewLibrarySource(), Logger: logger}
}

// Fetch resolves idOrURL, then tries each language in order, then falls
// back to the first available track. Failures match ErrTranscriptUnavailable
// and one of the more specific kinds.
func (f *Fetcher) Fetch(ctx context.Context, idOrURL string, languages []string) (*Transcript, error) {
	logger := logging.OrNop(f.Logger)

	videoID, err := ExtractVideoID(idOrURL)
	if err != nil {
		return nil, &FetchError{Kind: ErrInvalidVideoID, Err: err}
	}
	if len(languages) == 0 {
		languages = DefaultLanguages
	}

	for _, lang := range languages {
		track, err := f.Source.Fetch(ctx, videoID, []string{lang})
		if err == nil {
			logger.Infow("Found transcript", "video", videoID, "language", lang)
			return newTranscript(videoID, track, false), nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if kind := classify(err); kind != ErrNoTranscript {
			return nil, &FetchError{VideoID: videoID, Kind: kind, Err: err}
		}
		logger.Debugw("No transcript in language", "video", videoID, "language", lang, "error", err)
	}

	logger.Warnw("No transcript in preferred languages, fetching first available",
		"video", videoID, "languages", languages)

	track, err := f.Source.Fetch(ctx, videoID, nil)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, &FetchError{VideoID: videoID, Kind: classify(err), Err: err}
	}
	logger.Infow("Found transcript",
		"video", videoID, "language", track.LanguageCode, "name", track.Language)
	return newTranscript(videoID, track, true), nil
}

func newTranscript(videoID string, track *Track, fallback bool) *Transcript {
	return &Transcript{
		VideoID:      videoID,
		LanguageCode: track.LanguageCode,
		Language:     track.Language,
		Generated:    track.Generated,
		Fallback:     fallback,
		Segments:     track.Segments,
	}
}
