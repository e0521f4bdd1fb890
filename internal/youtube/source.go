package youtube

import (
	"context"
	"sort"

	"github.com/horiagug/youtube-transcript-api-go/pkg/yt_transcript"
	"github.com/horiagug/youtube-transcript-api-go/pkg/yt_transcript_models"

	"github.com/mgpai22/teaser/internal/subtitle"
)

// Track is one caption track of a video.
type Track struct {
	LanguageCode string
	Language     string
	Generated    bool
	Segments     []subtitle.Segment
}

// Source fetches caption tracks. An empty languages list asks for any
// available track.
type Source interface {
	Fetch(ctx context.Context, videoID string, languages []string) (*Track, error)
}

type transcriptClient interface {
	GetTranscripts(videoID string, languages []string) ([]yt_transcript_models.Transcript, error)
}

var _ transcriptClient = (*yt_transcript.YtTranscriptClient)(nil)

type librarySource struct {
	client transcriptClient
}

// NewLibrarySource returns a Source backed by youtube-transcript-api-go.
func NewLibrarySource() Source {
	return &librarySource{client: yt_transcript.NewClient()}
}

func (s *librarySource) Fetch(ctx context.Context, videoID string, languages []string) (*Track, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type result struct {
		transcripts []yt_transcript_models.Transcript
		err         error
	}
	done := make(chan result, 1)
	go func() {
		ts, err := s.client.GetTranscripts(videoID, languages)
		done <- result{transcripts: ts, err: err}
	}()

	var res result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-done:
	}
	if res.err != nil {
		return nil, res.err
	}
	if len(res.transcripts) == 0 {
		return nil, ErrNoTranscript
	}

	t := firstTrack(res.transcripts)
	segments := make([]subtitle.Segment, 0, len(t.Lines))
	for _, line := range t.Lines {
		segments = append(segments, subtitle.Segment{
			Text:     line.Text,
			Start:    line.Start,
			Duration: line.Duration,
		})
	}
	return &Track{
		LanguageCode: t.LanguageCode,
		Language:     t.Language,
		Generated:    t.IsGenerated,
		Segments:     segments,
	}, nil
}

// firstTrack picks the same track however the client ordered them: manually
// created before generated, then by language code.
func firstTrack(transcripts []yt_transcript_models.Transcript) yt_transcript_models.Transcript {
	sorted := make([]yt_transcript_models.Transcript, len(transcripts))
	copy(sorted, transcripts)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].IsGenerated != sorted[j].IsGenerated {
			return !sorted[i].IsGenerated
		}
		return sorted[i].LanguageCode < sorted[j].LanguageCode
	})
	return sorted[0]
}
