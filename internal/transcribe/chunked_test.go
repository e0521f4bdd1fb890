package transcribe

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mgpai22/teaser/internal/media"
	"github.com/mgpai22/teaser/internal/subtitle"
)

type fakeTranscriber struct {
	mu      sync.Mutex
	results map[string][]subtitle.Segment
	fail    map[string]error
	calls   int
}

func (f *fakeTranscriber) Transcribe(_ context.Context, path string) (*Result, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if err, ok := f.fail[path]; ok {
		return nil, err
	}
	return &Result{Segments: f.results[path], Language: "en"}, nil
}

func TestTranscribeChunksOffsetsAndOrders(t *testing.T) {
	tr := &fakeTranscriber{results: map[string][]subtitle.Segment{
		"c0": {{Text: "one", Start: 0, Duration: 2}, {Text: "two", Start: 2.5, Duration: 1}},
		"c1": {{Text: "three", Start: 0.5, Duration: 2}},
		"c2": {{Text: "four", Start: 1, Duration: 1}},
	}}
	chunks := []media.Chunk{
		{Path: "c2", Index: 2, Start: 20 * time.Second, End: 25 * time.Second},
		{Path: "c0", Index: 0, Start: 0, End: 10 * time.Second},
		{Path: "c1", Index: 1, Start: 10 * time.Second, End: 20 * time.Second},
	}

	res, err := TranscribeChunks(context.Background(), tr, chunks, 2)
	if err != nil {
		t.Fatalf("TranscribeChunks returned error: %v", err)
	}

	want := []struct {
		text  string
		start float64
	}{{"one", 0}, {"two", 2.5}, {"three", 10.5}, {"four", 21}}
	if len(res.Segments) != len(want) {
		t.Fatalf("got %d segments, want %d", len(res.Segments), len(want))
	}
	for i, w := range want {
		if res.Segments[i].Text != w.text || res.Segments[i].Start != w.start {
			t.Errorf("segment %d = %+v, want %s at %v", i, res.Segments[i], w.text, w.start)
		}
	}
	if !subtitle.IsOrdered(res.Segments) {
		t.Error("merged segments are not ordered")
	}
	if res.Language != "en" {
		t.Errorf("language = %q", res.Language)
	}
}

func TestTranscribeChunksFailure(t *testing.T) {
	boom := errors.New("rate limited")
	tr := &fakeTranscriber{
		results: map[string][]subtitle.Segment{"c0": {{Text: "ok", Duration: 1}}},
		fail:    map[string]error{"c1": boom},
	}
	chunks := []media.Chunk{
		{Path: "c0", Index: 0},
		{Path: "c1", Index: 1},
	}

	_, err := TranscribeChunks(context.Background(), tr, chunks, 1)
	if !errors.Is(err, boom) {
		t.Fatalf("expected chunk error, got %v", err)
	}
}

func TestTranscribeChunksEmpty(t *testing.T) {
	res, err := TranscribeChunks(context.Background(), &fakeTranscriber{}, nil, 3)
	if err != nil || len(res.Segments) != 0 {
		t.Fatalf("got %+v, %v", res, err)
	}
}

func TestTranscribeChunksCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	chunks := []media.Chunk{{Path: "c0", Index: 0}, {Path: "c1", Index: 1}}
	_, err := TranscribeChunks(ctx, &fakeTranscriber{}, chunks, 1)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestTranscribeFileMissingInput(t *testing.T) {
	_, err := TranscribeFile(context.Background(), &fakeTranscriber{}, "/nonexistent/clip.mp4", FileOptions{})
	if err == nil {
		t.Fatal("expected error for missing input")
	}
}

func TestFactoryUnknownProvider(t *testing.T) {
	if _, err := Factory(context.Background(), Provider("whisper"), "key", Options{}); err == nil {
		t.Error("expected error for unsupported provider")
	}
	if APIKeyEnv(ProviderGemini) != "GEMINI_API_KEY" || APIKeyEnv(ProviderOpenAI) != "OPENAI_API_KEY" {
		t.Error("unexpected API key env names")
	}
}
