package transcribe

import (
	"testing"
	"time"
)

func TestParseVerboseJSONResponse(t *testing.T) {
	transcriber := &OpenAITranscriber{}

	tests := []struct {
		name      string
		rawJSON   string
		wantCount int
		wantErr   bool
	}{
		{
			name: "segments",
			rawJSON: `{
				"text": "Hello world. How are you today?",
				"segments": [
					{"start": 0.0, "end": 1.5, "text": "Hello world."},
					{"start": 1.5, "end": 3.0, "text": "How are you today?"}
				],
				"language": "en",
				"duration": 3.0
			}`,
			wantCount: 2,
		},
		{
			name:      "text without segments",
			rawJSON:   `{"text": "No segments here.", "segments": [], "duration": 2.5}`,
			wantCount: 1,
		},
		{
			name:      "null segments",
			rawJSON:   `{"text": "Text only.", "segments": null, "duration": 1.0}`,
			wantCount: 1,
		},
		{
			name: "blank segments dropped",
			rawJSON: `{
				"text": "Hello world",
				"segments": [
					{"start": 0.0, "end": 0.5, "text": ""},
					{"start": 0.5, "end": 1.5, "text": "Hello world"},
					{"start": 1.5, "end": 2.0, "text": "   "}
				]
			}`,
			wantCount: 1,
		},
		{
			name: "extra whisper fields",
			rawJSON: `{
				"task": "transcribe",
				"language": "english",
				"duration": 8.47,
				"text": "The stale smell of old beer lingers. It takes heat to bring out the odor.",
				"segments": [
					{"id": 0, "seek": 0, "start": 0.0, "end": 3.32, "text": "The stale smell of old beer lingers.", "tokens": [50364, 440], "avg_logprob": -0.28},
					{"id": 1, "seek": 0, "start": 3.32, "end": 6.19, "text": "It takes heat to bring out the odor.", "tokens": [50530, 467], "avg_logprob": -0.28}
				]
			}`,
			wantCount: 2,
		},
		{name: "empty", rawJSON: "", wantErr: true},
		{name: "invalid", rawJSON: `{"text": "incomplete`, wantErr: true},
		{name: "nothing usable", rawJSON: `{"text": "", "segments": []}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments, err := transcriber.parseVerboseJSONResponse(tt.rawJSON, 5*time.Second)
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
			for i, seg := range segments {
				if seg.Text == "" {
					t.Errorf("segment %d has empty text", i)
				}
			}
		})
	}
}

func TestParseVerboseJSONResponseTimestamps(t *testing.T) {
	transcriber := &OpenAITranscriber{}

	rawJSON := `{
		"text": "Hello world. Goodbye.",
		"segments": [
			{"start": 1.5, "end": 3.0, "text": " Hello world. "},
			{"start": 3.0, "end": 5.5, "text": "Goodbye."}
		],
		"duration": 5.5
	}`

	segments, err := transcriber.parseVerboseJSONResponse(rawJSON, 10*time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}

	if segments[0].Start != 1.5 || segments[0].Duration != 1.5 || segments[0].Text != "Hello world." {
		t.Errorf("segment 0 = %+v", segments[0])
	}
	if segments[1].Start != 3 || segments[1].End() != 5.5 {
		t.Errorf("segment 1 = %+v", segments[1])
	}
}

func TestShouldUseTranslation(t *testing.T) {
	tests := []struct {
		transcriptLang string
		want           bool
	}{
		{"english", true},
		{"ENGLISH", true},
		{"en", true},
		{" english ", true},
		{"native", false},
		{"", false},
		{"spanish", false},
	}

	for _, tt := range tests {
		t.Run(tt.transcriptLang, func(t *testing.T) {
			transcriber := &OpenAITranscriber{
				options: Options{TranscriptLanguage: tt.transcriptLang},
			}
			if got := transcriber.shouldUseTranslation(); got != tt.want {
				t.Errorf("shouldUseTranslation() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFallbackSingleSegment(t *testing.T) {
	transcriber := &OpenAITranscriber{}

	segments, err := transcriber.parseVerboseJSONResponse(
		`{"text": "This is a transcription without segments.", "duration": 10.5}`,
		15*time.Second,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segments) != 1 {
		t.Fatalf("expected 1 fallback segment, got %d", len(segments))
	}
	if segments[0].Start != 0 || segments[0].Duration != 10.5 {
		t.Errorf("fallback segment = %+v, want start 0 duration 10.5", segments[0])
	}

	segments, err = transcriber.parseVerboseJSONResponse(`{"text": "No duration."}`, 15*time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if segments[0].Duration != 15 {
		t.Errorf("fallback duration = %v, want 15", segments[0].Duration)
	}
}

func TestNewOpenAITranscriberRequiresKey(t *testing.T) {
	if _, err := NewOpenAITranscriber(t.Context(), "", Options{}); err == nil {
		t.Error("expected error for missing API key")
	}
}
