package transcribe

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mgpai22/teaser/internal/logging"
	"github.com/mgpai22/teaser/internal/media"
	"github.com/mgpai22/teaser/internal/subtitle"
)

// FileOptions controls TranscribeFile.
type FileOptions struct {
	// WorkDir holds extracted audio and chunks; a temp dir when empty.
	WorkDir string
	// ChunkDuration splits long audio; zero transcribes in one request.
	ChunkDuration time.Duration
	Concurrency   int
	Logger        *logging.Logger
}

// TranscribeFile transcribes a video or audio file. Video is reduced to
// mono speech audio first. With a chunk duration set, chunks are sent in
// parallel and their segments shifted back onto the source timeline.
func TranscribeFile(ctx context.Context, t Transcriber, path string, opts FileOptions) (*Result, error) {
	logger := logging.OrNop(opts.Logger)

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("input file not found: %w", err)
	}

	workDir := opts.WorkDir
	if workDir == "" {
		dir, err := os.MkdirTemp("", "teaser-transcribe-*")
		if err != nil {
			return nil, fmt.Errorf("failed to create work directory: %w", err)
		}
		defer os.RemoveAll(dir)
		workDir = dir
	}

	audioPath := path
	if media.IsVideoFile(path) {
		aopts := media.DefaultExtractAudioOptions()
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		audioPath = filepath.Join(workDir, base+"."+aopts.Format)

		logger.Infow("Extracting audio", "input", path, "output", audioPath)
		if err := media.ExtractAudio(ctx, path, audioPath, aopts); err != nil {
			return nil, fmt.Errorf("failed to extract audio: %w", err)
		}
	}

	if opts.ChunkDuration <= 0 {
		logger.Infow("Transcribing", "audio", audioPath)
		return t.Transcribe(ctx, audioPath)
	}

	chunks, err := media.ChunkAudio(ctx, audioPath, opts.ChunkDuration, filepath.Join(workDir, "chunks"), opts.Concurrency)
	if err != nil {
		return nil, fmt.Errorf("failed to chunk audio: %w", err)
	}
	defer func() {
		if err := media.CleanupChunks(chunks); err != nil {
			logger.Warnw("Failed to remove chunks", "error", err)
		}
	}()

	logger.Infow("Transcribing chunks", "count", len(chunks), "concurrency", opts.Concurrency)
	return TranscribeChunks(ctx, t, chunks, opts.Concurrency)
}

// holds the result of transcribing a chunk
type chunkResult struct {
	Index    int
	Segments []subtitle.Segment
	Language string
	Error    error
}

// TranscribeChunks transcribes chunks in parallel and merges the segments
// in chunk order, offset by each chunk's start. The first failure cancels
// the remaining work.
func TranscribeChunks(
	ctx context.Context,
	t Transcriber,
	chunks []media.Chunk,
	concurrency int,
) (*Result, error) {
	if len(chunks) == 0 {
		return &Result{}, nil
	}
	if concurrency <= 0 {
		concurrency = 3
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workChan := make(chan media.Chunk)
	resultChan := make(chan chunkResult, len(chunks))

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for chunk := range workChan {
				if ctx.Err() != nil {
					return
				}
				res, err := t.Transcribe(ctx, chunk.Path)
				if err != nil {
					cancel()
					resultChan <- chunkResult{Index: chunk.Index, Error: err}
					continue
				}
				resultChan <- chunkResult{
					Index:    chunk.Index,
					Segments: offsetSegments(res.Segments, chunk.Start),
					Language: res.Language,
				}
			}
		}()
	}

	go func() {
		defer close(workChan)
		for _, chunk := range chunks {
			select {
			case <-ctx.Done():
				return
			case workChan <- chunk:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	results := make([]chunkResult, 0, len(chunks))
	var firstErr error
	for r := range resultChan {
		if r.Error != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("chunk %d failed: %w", r.Index, r.Error)
			}
			continue
		}
		results = append(results, r)
	}
	if firstErr != nil {
		return nil, firstErr
	}
	if len(results) != len(chunks) {
		return nil, ctx.Err()
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Index < results[j].Index
	})

	merged := &Result{Duration: chunks[len(chunks)-1].End}
	for _, r := range results {
		merged.Segments = append(merged.Segments, r.Segments...)
		if merged.Language == "" {
			merged.Language = r.Language
		}
	}
	return merged, nil
}

func offsetSegments(segs []subtitle.Segment, offset time.Duration) []subtitle.Segment {
	out := make([]subtitle.Segment, len(segs))
	for i, s := range segs {
		s.Start += offset.Seconds()
		out[i] = s
	}
	return out
}

// duration of a media file, zero when ffprobe cannot tell
func probeDuration(ctx context.Context, path string) time.Duration {
	info, err := media.Probe(ctx, path)
	if err != nil {
		return 0
	}
	return info.Duration
}
