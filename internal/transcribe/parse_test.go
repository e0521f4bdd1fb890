package transcribe

import (
	"strings"
	"testing"
)

func TestExtractTranscriptSegments(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCount int
		wantErr   bool
	}{
		{
			name: "plain array",
			input: `[
				{"start": 0.0, "end": 2.5, "text": "Hello world"},
				{"start": 2.5, "end": 5.0, "text": "How are you"}
			]`,
			wantCount: 2,
		},
		{
			name: "preamble and trailing text",
			input: `Here is your transcript:
			[{"start": 1.0, "end": 3.0, "text": "Test segment"}]
			That's all!`,
			wantCount: 1,
		},
		{
			name: "long explanation around array",
			input: `I've analyzed the audio. Here is the formatted JSON output:

			[
				{"start": 0.0, "end": 3.5, "text": "Welcome to the show"},
				{"start": 3.5, "end": 7.2, "text": "Today we'll be discussing editing"}
			]

			Note: Timestamps are in seconds.`,
			wantCount: 2,
		},
		{
			name:      "segments key",
			input:     `{"segments": [{"start": 0.0, "end": 2.0, "text": "Wrapped"}]}`,
			wantCount: 1,
		},
		{
			name:      "transcript key",
			input:     `{"transcript": [{"start": 0.0, "end": 2.0, "text": "Wrapped"}]}`,
			wantCount: 1,
		},
		{
			name:      "unknown key",
			input:     `{"lines": [{"start": 0.0, "end": 2.0, "text": "Wrapped"}]}`,
			wantCount: 1,
		},
		{
			name: "nested wrapper",
			input: `{
				"response": {
					"segments": [{"start": 0.0, "end": 1.0, "text": "Nested"}]
				}
			}`,
			wantCount: 1,
		},
		{
			name: "unrelated object first",
			input: `{"status": "ok", "count": 5}
			[{"start": 0.0, "end": 2.0, "text": "Real transcript"}]`,
			wantCount: 1,
		},
		{
			name: "number array first",
			input: `[1, 2, 3]
			[{"start": 0.0, "end": 2.0, "text": "Actual transcript"}]`,
			wantCount: 1,
		},
		{
			name:      "timestamps without text",
			input:     `[{"start": 1.0, "end": 2.0, "text": ""}]`,
			wantCount: 1,
		},
		{name: "empty array", input: `[]`, wantErr: true},
		{name: "no json", input: `This is just plain text.`, wantErr: true},
		{name: "truncated json", input: `[{"start": 0.0, "end": 2.0, "text": "incomplete"`, wantErr: true},
		{name: "all-zero segments", input: `[{"start": 0, "end": 0, "text": ""}]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments, err := extractTranscriptSegments(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(segments) != tt.wantCount {
				t.Errorf("got %d segments, want %d", len(segments), tt.wantCount)
			}
		})
	}
}

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", `[{"start": 0}]`, `[{"start": 0}]`},
		{"json fence", "```json\n[{\"start\": 0}]\n```", `[{"start": 0}]`},
		{"bare fence", "```\n[{\"start\": 0}]\n```", `[{"start": 0}]`},
		{"surrounding whitespace", "  \n\n```json\n[{\"start\": 0}]\n```\n\n  ", `[{"start": 0}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanJSONResponse(tt.input); got != tt.want {
				t.Errorf("cleanJSONResponse() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateSegments(t *testing.T) {
	tests := []struct {
		name     string
		segments []transcriptSegment
		want     bool
	}{
		{"nil", nil, false},
		{"text only", []transcriptSegment{{Text: "hello"}}, true},
		{"start only", []transcriptSegment{{Start: 1.0}}, true},
		{"end only", []transcriptSegment{{End: 2.0}}, true},
		{"all zero", []transcriptSegment{{}}, false},
		{"one of many", []transcriptSegment{{}, {Start: 1, End: 2, Text: "valid"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validateSegments(tt.segments); got != tt.want {
				t.Errorf("validateSegments() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToSubtitleSegments(t *testing.T) {
	got := toSubtitleSegments([]transcriptSegment{
		{Start: 1.5, End: 4, Text: "  padded  "},
		{Start: 5, End: 4, Text: "reversed"},
	})
	if got[0].Text != "padded" || got[0].Start != 1.5 || got[0].Duration != 2.5 {
		t.Errorf("segment 0 = %+v", got[0])
	}
	if got[1].Duration != 0 {
		t.Errorf("reversed timestamps should clamp to zero duration, got %v", got[1].Duration)
	}
}

func TestGeminiPrompt(t *testing.T) {
	tr := &GeminiTranscriber{options: Options{
		Language:           "Spanish",
		TranscriptLanguage: "English",
		Prompt:             "Speaker names are Ana and Luis.",
	}}
	prompt := tr.buildTranscriptionPrompt()

	for _, want := range []string{
		"The audio is in Spanish.",
		"Output the transcript in English.",
		"Speaker names are Ana and Luis.",
		"Return ONLY the JSON array",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q: %s", want, prompt)
		}
	}

	native := (&GeminiTranscriber{options: Options{TranscriptLanguage: "native"}}).buildTranscriptionPrompt()
	if strings.Contains(native, "Output the transcript in") {
		t.Errorf("native transcript should not request translation: %s", native)
	}
}
