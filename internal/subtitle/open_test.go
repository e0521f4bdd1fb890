package subtitle

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseSRTFile(t *testing.T) {
	content := "\ufeff" + `1
00:00:00,000 --> 00:00:04,000
Hello, world!

2
00:00:05,500 --> 00:00:08,200
This is a test.
With multiple lines.

3
00:00:10,000 --> 00:00:12,500
42
`
	tmpDir := t.TempDir()
	srtPath := filepath.Join(tmpDir, "test.srt")
	if err := os.WriteFile(srtPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	segments, err := Open(srtPath)
	if err != nil {
		t.Fatalf("failed to open SRT file: %v", err)
	}

	if len(segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segments))
	}

	if segments[0].Start != 0 || segments[0].Duration != 4 {
		t.Errorf("segment 0: got start %v duration %v", segments[0].Start, segments[0].Duration)
	}
	if segments[0].Text != "Hello, world!" {
		t.Errorf("segment 0: expected 'Hello, world!', got %q", segments[0].Text)
	}

	expectedText := "This is a test.\nWith multiple lines."
	if segments[1].Text != expectedText {
		t.Errorf("segment 1: expected %q, got %q", expectedText, segments[1].Text)
	}
	if math.Abs(segments[1].Duration-2.7) > 1e-9 {
		t.Errorf("segment 1: duration %v, want 2.7", segments[1].Duration)
	}

	if segments[2].Text != "42" {
		t.Errorf("segment 2: numeric cue text lost, got %q", segments[2].Text)
	}
}

func TestParseSRTRoundTrip(t *testing.T) {
	in := []Segment{
		{Text: "one", Start: 0.25, Duration: 1.5},
		{Text: "two\nlines", Start: 2, Duration: 0.75},
		{Text: "three", Start: 3723.5, Duration: 4},
	}

	out, err := ParseSRT(strings.NewReader(BuildSRT(in)))
	if err != nil {
		t.Fatalf("ParseSRT: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("got %d segments, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i].Text != in[i].Text {
			t.Errorf("segment %d text %q, want %q", i, out[i].Text, in[i].Text)
		}
		if math.Abs(out[i].Start-in[i].Start) > 0.001 || math.Abs(out[i].End()-in[i].End()) > 0.001 {
			t.Errorf("segment %d timing %v-%v, want %v-%v", i, out[i].Start, out[i].End(), in[i].Start, in[i].End())
		}
	}
}

func TestParseSRTRejectsBackwardsCue(t *testing.T) {
	content := "1\n00:00:05,000 --> 00:00:04,000\nbackwards\n"
	if _, err := ParseSRT(strings.NewReader(content)); err == nil {
		t.Error("expected error for cue ending before it starts")
	}
}

func TestParseVTTFile(t *testing.T) {
	content := `WEBVTT

NOTE this is a comment
spanning two lines

1
00:00:01.000 --> 00:00:04.000
Hello, world!

2
00:00:05.500 --> 00:00:08.200 align:start
This is a test.
With multiple lines.

00:10.000 --> 00:12.500
No cue identifier.
`
	tmpDir := t.TempDir()
	vttPath := filepath.Join(tmpDir, "test.vtt")
	if err := os.WriteFile(vttPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	segments, err := Open(vttPath)
	if err != nil {
		t.Fatalf("failed to open VTT file: %v", err)
	}

	if len(segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segments))
	}

	if segments[0].Start != 1 {
		t.Errorf("segment 0: expected start 1s, got %v", segments[0].Start)
	}
	if segments[0].Text != "Hello, world!" {
		t.Errorf("segment 0: expected 'Hello, world!', got %q", segments[0].Text)
	}
	if segments[1].Text != "This is a test.\nWith multiple lines." {
		t.Errorf("segment 1: got %q", segments[1].Text)
	}
	if segments[2].Start != 10 || segments[2].Text != "No cue identifier." {
		t.Errorf("segment 2: got %+v", segments[2])
	}
}

func TestOpenUnsupportedFormat(t *testing.T) {
	tmpDir := t.TempDir()
	txtPath := filepath.Join(tmpDir, "test.ass")
	if err := os.WriteFile(txtPath, []byte("test"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	_, err := Open(txtPath)
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if !strings.Contains(err.Error(), "unsupported") {
		t.Errorf("expected 'unsupported' in error, got: %v", err)
	}
}
