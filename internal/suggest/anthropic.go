package suggest

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/mgpai22/teaser/internal/logging"
	"github.com/mgpai22/teaser/internal/subtitle"
)

// implements Suggester using Anthropic Claude
type AnthropicSuggester struct {
	client  anthropic.Client
	model   anthropic.Model
	options Options
	logger  *logging.Logger
}

func NewAnthropicSuggester(
	ctx context.Context,
	apiKey string,
	opts Options,
	logger *logging.Logger,
) (*AnthropicSuggester, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	model := anthropic.Model(opts.Model)
	if opts.Model == "" {
		model = anthropic.ModelClaudeHaiku4_5
	}

	return &AnthropicSuggester{
		client:  anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:   model,
		options: opts,
		logger:  logging.OrNop(logger),
	}, nil
}

func (s *AnthropicSuggester) Suggest(
	ctx context.Context,
	segments []subtitle.Segment,
) (*Result, error) {
	if len(segments) == 0 {
		return nil, fmt.Errorf("transcript is empty")
	}

	message, err := s.client.Messages.New(
		ctx,
		anthropic.MessageNewParams{
			Model:     s.model,
			MaxTokens: 4096,
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(
					anthropic.NewTextBlock(BuildPrompt(s.options, segments)),
				),
			},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("suggestion failed: %w", err)
	}

	reply, err := messageText(message)
	if err != nil {
		return nil, err
	}
	suggestions, err := ParseSuggestions(reply)
	if err != nil {
		return nil, err
	}

	res := ToClips(suggestions, transcriptEnd(segments), s.options)
	for _, d := range res.Dropped {
		s.logger.Warnw("Dropping suggested clip",
			"start", d.Suggestion.Start, "end", d.Suggestion.End,
			"label", d.Suggestion.Label, "reason", d.Reason)
	}
	if len(res.Clips) == 0 {
		return nil, fmt.Errorf("no usable clips among %d suggestions", len(suggestions))
	}
	return res, nil
}

func messageText(message *anthropic.Message) (string, error) {
	if message == nil || len(message.Content) == 0 {
		return "", fmt.Errorf("empty response from Anthropic")
	}

	var sb strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("no text in Anthropic response")
	}
	return sb.String(), nil
}
