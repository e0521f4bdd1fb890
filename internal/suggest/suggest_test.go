package suggest

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/mgpai22/teaser/internal/subtitle"
)

var transcript = []subtitle.Segment{
	{Text: "Welcome back to the channel.", Start: 0, Duration: 3},
	{Text: "This will make you a better programmer.", Start: 47, Duration: 5},
	{Text: "Thanks for watching.", Start: 80, Duration: 4.5},
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(Options{Count: 3, MinSeconds: 3, MaxSeconds: 10, Prompt: "Favour humour."}, transcript)

	for _, want := range []string{
		"Pick the 3 most compelling moments",
		"between 3 and 10 seconds",
		"Favour humour.",
		"[2] 00:00:47,000 --> 00:00:52,000 This will make you a better programmer.",
		"[3] 00:01:20,000 --> 00:01:24,500 Thanks for watching.",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	if !strings.Contains(BuildPrompt(Options{}, transcript), "Pick the 5 most compelling") {
		t.Error("default count should be 5")
	}
}

func TestParseSuggestions(t *testing.T) {
	tests := []struct {
		name      string
		reply     string
		wantCount int
		wantErr   bool
	}{
		{
			name:      "bare array",
			reply:     `[{"start": 47, "end": 52, "label": "better programmer"}]`,
			wantCount: 1,
		},
		{
			name:      "fenced with prose",
			reply:     "Here are my picks:\n```json\n[{\"start\": 1, \"end\": 3, \"label\": \"a\"}, {\"start\": 5, \"end\": 9, \"label\": \"b\"}]\n```\nEnjoy!",
			wantCount: 2,
		},
		{
			name:      "bracket in preamble",
			reply:     "Picks [see below]:\n[{\"start\": 1, \"end\": 3, \"label\": \"a\"}]",
			wantCount: 1,
		},
		{name: "empty array", reply: `[]`, wantErr: true},
		{name: "no json", reply: "I could not find anything.", wantErr: true},
		{name: "wrong shape", reply: `[1, 2, 3]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSuggestions(tt.reply)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != tt.wantCount {
				t.Errorf("got %d suggestions, want %d", len(got), tt.wantCount)
			}
		})
	}
}

func TestToClips(t *testing.T) {
	suggestions := []Suggestion{
		{Start: 47.4, End: 51.2, Label: " better programmer "},
		{Start: 10, End: 10, Label: "empty"},
		{Start: 20, End: 15, Label: "reversed"},
		{Start: -1, End: 3, Label: "negative"},
		{Start: 90, End: 95, Label: "past the end"},
		{Start: 80.2, End: 86, Label: "clamped"},
		{Start: 12.1, End: 12.6, Label: "sub-second"},
		{Start: 0, End: 40, Label: "too long"},
		{Start: 1, End: 3, Label: "over count"},
	}

	res := ToClips(suggestions, transcriptEnd(transcript), Options{Count: 3, MaxSeconds: 30})

	if len(res.Clips) != 3 {
		t.Fatalf("got %d clips: %+v", len(res.Clips), res.Clips)
	}
	if c := res.Clips[0]; c.Start != "0:47" || c.End != "0:52" || c.Label != "better programmer" {
		t.Errorf("clip 0 = %+v", c)
	}
	if c := res.Clips[1]; c.Start != "1:20" || c.End != "1:25" {
		t.Errorf("clip 1 should clamp to the transcript end, got %+v", c)
	}
	if c := res.Clips[2]; c.Start != "0:12" || c.End != "0:13" {
		t.Errorf("clip 2 = %+v", c)
	}
	if len(res.Dropped) != 6 {
		t.Errorf("got %d dropped: %+v", len(res.Dropped), res.Dropped)
	}
}

func TestNewAnthropicSuggesterRequiresKey(t *testing.T) {
	if _, err := NewAnthropicSuggester(context.Background(), "", Options{}, nil); err == nil {
		t.Error("expected error for missing API key")
	}
}

func TestAnthropicSuggestIntegration(t *testing.T) {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		t.Skip("ANTHROPIC_API_KEY not set")
	}

	s, err := NewAnthropicSuggester(context.Background(), apiKey, Options{Count: 1}, nil)
	if err != nil {
		t.Fatalf("failed to create suggester: %v", err)
	}
	res, err := s.Suggest(context.Background(), transcript)
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	if len(res.Clips) == 0 {
		t.Error("expected at least one clip")
	}
	t.Logf("clips: %+v", res.Clips)
}
