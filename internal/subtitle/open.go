package subtitle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Open parses an .srt or .vtt file into segments.
func Open(path string) ([]Segment, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".srt" && ext != ".vtt" {
		return nil, fmt.Errorf("unsupported subtitle format: %s", ext)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open subtitle file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	if ext == ".vtt" {
		return ParseVTT(file)
	}
	return ParseSRT(file)
}
