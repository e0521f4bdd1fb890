package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Chunk is one slice of a longer audio file.
type Chunk struct {
	Path  string
	Index int
	Start time.Duration
	End   time.Duration
}

// chunk boundaries for a file of total length, in seconds
func chunkBounds(total, size float64) [][2]float64 {
	var bounds [][2]float64
	for i := 0; ; i++ {
		start := float64(i) * size
		if start >= total {
			break
		}
		end := start + size
		if end > total {
			end = total
		}
		bounds = append(bounds, [2]float64{start, end})
	}
	return bounds
}

// ChunkAudio splits audioPath into chunkDuration pieces with stream copy.
// Up to concurrency ffmpeg processes run at once (default 4).
func ChunkAudio(
	ctx context.Context,
	audioPath string,
	chunkDuration time.Duration,
	outputDir string,
	concurrency int,
) ([]Chunk, error) {
	if chunkDuration <= 0 {
		return nil, fmt.Errorf("chunk duration must be positive, got %v", chunkDuration)
	}
	if concurrency <= 0 {
		concurrency = 4
	}

	info, err := Probe(ctx, audioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get audio duration: %w", err)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	ffmpegPath, err := FFmpegPath()
	if err != nil {
		return nil, err
	}

	ext := filepath.Ext(audioPath)
	baseName := strings.TrimSuffix(filepath.Base(audioPath), ext)

	var (
		mu       sync.Mutex
		chunks   []Chunk
		firstErr error
		wg       sync.WaitGroup
	)
	sem := make(chan struct{}, concurrency)

	for i, b := range chunkBounds(info.Duration.Seconds(), chunkDuration.Seconds()) {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, err
		}

		wg.Add(1)
		go func(index int, start, end float64) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			mu.Lock()
			stop := firstErr != nil || ctx.Err() != nil
			mu.Unlock()
			if stop {
				return
			}

			path := filepath.Join(outputDir, fmt.Sprintf("%s_chunk_%03d%s", baseName, index, ext))
			err := ffmpeg.Input(audioPath).
				Output(path, ffmpeg.KwArgs{"ss": start, "t": end - start, "c": "copy"}).
				OverWriteOutput().
				SetFfmpegPath(ffmpegPath).
				Run()

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("failed to create chunk %d: %w", index, err)
				}
				return
			}
			chunks = append(chunks, Chunk{
				Path:  path,
				Index: index,
				Start: time.Duration(start * float64(time.Second)),
				End:   time.Duration(end * float64(time.Second)),
			})
		}(i, b[0], b[1])
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].Index < chunks[j].Index
	})
	return chunks, nil
}

// CleanupChunks removes chunk files, ignoring ones already gone.
func CleanupChunks(chunks []Chunk) error {
	var lastErr error
	for _, c := range chunks {
		if err := os.Remove(c.Path); err != nil && !os.IsNotExist(err) {
			lastErr = err
		}
	}
	return lastErr
}
