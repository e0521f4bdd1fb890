package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/mgpai22/teaser/internal/subtitle"
)

// implements Transcriber interface using OpenAI Audio API
type OpenAITranscriber struct {
	client  openai.Client
	model   string
	options Options
}

// verbose_json response structure from Whisper
type whisperVerboseResponse struct {
	Text     string              `json:"text"`
	Segments []transcriptSegment `json:"segments"`
	Language string              `json:"language"`
	Duration float64             `json:"duration"`
}

func NewOpenAITranscriber(
	ctx context.Context,
	apiKey string,
	opts Options,
) (*OpenAITranscriber, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	model := opts.Model
	if model == "" {
		model = "whisper-1"
	}

	return &OpenAITranscriber{
		client:  openai.NewClient(option.WithAPIKey(apiKey)),
		model:   model,
		options: opts,
	}, nil
}

// transcribes single audio file
func (t *OpenAITranscriber) Transcribe(
	ctx context.Context,
	audioPath string,
) (*Result, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("audio file not found: %s", audioPath)
		}
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer file.Close()

	duration := probeDuration(ctx, audioPath)

	var (
		raw, text string
		language  = t.options.Language
	)
	if t.shouldUseTranslation() {
		params := openai.AudioTranslationNewParams{
			File:           file,
			Model:          openai.AudioModel(t.model),
			ResponseFormat: openai.AudioTranslationNewParamsResponseFormatVerboseJSON,
		}
		if t.options.Prompt != "" {
			params.Prompt = openai.String(t.options.Prompt)
		}
		resp, err := t.client.Audio.Translations.New(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("translation failed: %w", err)
		}
		raw, text, language = resp.RawJSON(), resp.Text, "en"
	} else {
		params := openai.AudioTranscriptionNewParams{
			File:                   file,
			Model:                  openai.AudioModel(t.model),
			ResponseFormat:         openai.AudioResponseFormatVerboseJSON,
			TimestampGranularities: []string{"segment"},
		}
		if t.options.Language != "" {
			params.Language = openai.String(t.options.Language)
		}
		if t.options.Prompt != "" {
			params.Prompt = openai.String(t.options.Prompt)
		}
		resp, err := t.client.Audio.Transcriptions.New(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("transcription failed: %w", err)
		}
		raw, text = resp.RawJSON(), resp.Text
	}

	segments, err := t.parseVerboseJSONResponse(raw, duration)
	if err != nil {
		segments = []subtitle.Segment{{
			Text:     strings.TrimSpace(text),
			Start:    0,
			Duration: duration.Seconds(),
		}}
	}

	return &Result{
		Segments: segments,
		Language: language,
		Duration: duration,
	}, nil
}

// the translations endpoint only produces English
func (t *OpenAITranscriber) shouldUseTranslation() bool {
	lang := strings.ToLower(strings.TrimSpace(t.options.TranscriptLanguage))
	return lang == "english" || lang == "en"
}

func (t *OpenAITranscriber) parseVerboseJSONResponse(
	rawJSON string,
	fallbackDuration time.Duration,
) ([]subtitle.Segment, error) {
	if rawJSON == "" {
		return nil, fmt.Errorf("empty response")
	}

	var resp whisperVerboseResponse
	if err := json.Unmarshal([]byte(rawJSON), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse verbose_json response: %w", err)
	}

	if len(resp.Segments) == 0 {
		if resp.Text == "" {
			return nil, fmt.Errorf("no segments or text in response")
		}
		dur := fallbackDuration.Seconds()
		if resp.Duration > 0 {
			dur = resp.Duration
		}
		return []subtitle.Segment{{
			Text:     strings.TrimSpace(resp.Text),
			Start:    0,
			Duration: dur,
		}}, nil
	}

	segs := make([]transcriptSegment, 0, len(resp.Segments))
	for _, seg := range resp.Segments {
		if strings.TrimSpace(seg.Text) == "" {
			continue
		}
		segs = append(segs, seg)
	}
	return toSubtitleSegments(segs), nil
}
