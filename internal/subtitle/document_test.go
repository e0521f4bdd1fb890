package subtitle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuildSRTEmpty(t *testing.T) {
	if got := BuildSRT(nil); got != "" {
		t.Errorf("BuildSRT(nil) = %q, want empty", got)
	}
	if got := BuildSRT([]Segment{}); got != "" {
		t.Errorf("BuildSRT([]) = %q, want empty", got)
	}
}

func TestBuildSRTSingleCue(t *testing.T) {
	got := BuildSRT([]Segment{{Text: "Hi", Start: 0, Duration: 1}})
	want := "1\n00:00:00,000 --> 00:00:01,000\nHi\n\n"
	if got != want {
		t.Errorf("BuildSRT = %q, want %q", got, want)
	}
}

func TestBuildSRTKeepsInputOrder(t *testing.T) {
	segments := []Segment{
		{Text: "second", Start: 5, Duration: 1},
		{Text: "first", Start: 1, Duration: 0},
		{Text: "overlap", Start: 5.5, Duration: 2},
	}

	want := "1\n00:00:05,000 --> 00:00:06,000\nsecond\n\n" +
		"2\n00:00:01,000 --> 00:00:01,000\nfirst\n\n" +
		"3\n00:00:05,500 --> 00:00:07,500\noverlap\n\n"

	got := BuildSRT(segments)
	if got != want {
		t.Errorf("BuildSRT =\n%s\nwant\n%s", got, want)
	}
	if again := BuildSRT(segments); again != got {
		t.Error("BuildSRT is not idempotent")
	}
}

func TestBuildSRTMultiHour(t *testing.T) {
	got := BuildSRT([]Segment{{Text: "late", Start: 3661.234, Duration: 0.5}})
	if !strings.Contains(got, "01:01:01,234 --> 01:01:01,734") {
		t.Errorf("unexpected cue timing: %q", got)
	}
}

func TestBuildPlainText(t *testing.T) {
	tests := []struct {
		name     string
		segments []Segment
		want     string
	}{
		{"empty", nil, ""},
		{"single", []Segment{{Text: "a"}}, "a"},
		{"two", []Segment{{Text: "a"}, {Text: "b"}}, "a b"},
		{"keeps inner whitespace", []Segment{{Text: "a\nb"}, {Text: "c"}}, "a\nb c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildPlainText(tt.segments); got != tt.want {
				t.Errorf("BuildPlainText = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildVTT(t *testing.T) {
	got := BuildVTT([]Segment{{Text: "Hi", Start: 1.5, Duration: 1}})
	want := "WEBVTT\n\n1\n00:00:01.500 --> 00:00:02.500\nHi\n\n"
	if got != want {
		t.Errorf("BuildVTT = %q, want %q", got, want)
	}
}

func TestSortByStart(t *testing.T) {
	segments := []Segment{
		{Text: "c", Start: 3},
		{Text: "a", Start: 1},
		{Text: "b1", Start: 2},
		{Text: "b2", Start: 2},
	}
	if IsOrdered(segments) {
		t.Fatal("IsOrdered reported unsorted input as ordered")
	}

	sorted := SortByStart(segments)
	var texts []string
	for _, s := range sorted {
		texts = append(texts, s.Text)
	}
	if strings.Join(texts, ",") != "a,b1,b2,c" {
		t.Errorf("SortByStart order = %v", texts)
	}
	if !IsOrdered(sorted) {
		t.Error("sorted output not ordered")
	}
	if segments[0].Text != "c" {
		t.Error("SortByStart mutated its input")
	}
}

func TestWriters(t *testing.T) {
	segments := []Segment{
		{Text: "Hello", Start: 0, Duration: 1.25},
		{Text: "world", Start: 1.25, Duration: 2},
	}
	dir := t.TempDir()

	tests := []struct {
		format Format
		want   string
	}{
		{FormatSRT, BuildSRT(segments)},
		{FormatVTT, BuildVTT(segments)},
		{FormatText, "Hello world"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			w, err := NewWriter(tt.format)
			if err != nil {
				t.Fatalf("NewWriter: %v", err)
			}
			path := filepath.Join(dir, "nested", "out"+GetExtensionForFormat(tt.format))
			if err := w.Write(segments, path); err != nil {
				t.Fatalf("Write: %v", err)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read back: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("file content = %q, want %q", data, tt.want)
			}
			if GetFormatFromExtension(path) != tt.format {
				t.Errorf("GetFormatFromExtension(%q) = %s", path, GetFormatFromExtension(path))
			}
		})
	}

	if _, err := NewWriter(Format("ass")); err == nil {
		t.Error("expected error for unsupported format")
	}
}
