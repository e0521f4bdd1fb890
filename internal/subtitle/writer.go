package subtitle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SubRip format
type SRTWriter struct{}

// WebVTT format
type VTTWriter struct{}

// space-joined plain text
type TextWriter struct{}

func NewWriter(format Format) (Writer, error) {
	switch format {
	case FormatSRT:
		return &SRTWriter{}, nil
	case FormatVTT:
		return &VTTWriter{}, nil
	case FormatText:
		return &TextWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// writes the segments to an SRT file
func (w *SRTWriter) Write(segments []Segment, path string) error {
	return writeFile(path, BuildSRT(segments))
}

// writes the segments to a VTT file
func (w *VTTWriter) Write(segments []Segment, path string) error {
	return writeFile(path, BuildVTT(segments))
}

// writes the segment texts to a UTF-8 text file
func (w *TextWriter) Write(segments []Segment, path string) error {
	return writeFile(path, BuildPlainText(segments))
}

func writeFile(path, content string) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0755)
}

// subtitle format based on file extension
func GetFormatFromExtension(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".srt":
		return FormatSRT
	case ".vtt":
		return FormatVTT
	case ".txt":
		return FormatText
	default:
		return FormatSRT
	}
}

// file extension for a format
func GetExtensionForFormat(format Format) string {
	switch format {
	case FormatSRT:
		return ".srt"
	case FormatVTT:
		return ".vtt"
	case FormatText:
		return ".txt"
	default:
		return ".srt"
	}
}
