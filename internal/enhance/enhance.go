package enhance

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/daikw/streampersona/internal/builder"
	"github.com/daikw/streampersona/internal/persona"
)

// Notices shown when the deterministic output is used instead
const (
	NoticePromptNoToken  = "OPENAI_API_KEY not configured. Falling back to deterministic prompt."
	NoticePromptFailed   = "OpenAI enhancement failed. Using deterministic output."
	NoticePreviewNoToken = "No OpenAI API key available. Pass a session token with --token to unlock Enhance Preview."
	NoticePreviewsFailed = "OpenAI enhancement failed. Using deterministic previews."
)

const (
	polishSystem          = "You polish system prompts for streaming chatbots. Do not remove safety guardrails or personalization placeholders. Keep markdown structure intact and ensure length stays above 1,400 words."
	polishUserPrefix      = "Polish this prompt while keeping all rules, sections, and safety statements untouched:\n\n"
	previewSystem         = "You craft short sample chat replies for a streamer co-host. Use the provided persona summary. Keep safety guardrails intact."
	polishTemperature     = 0.3
	polishMaxTokens       = 2500
	previewTemperature    = 0.4
	previewMaxTokens      = 800
	maxPreviewReplyLength = 320
)

// PromptResult is the outcome of PolishPrompt
type PromptResult struct {
	SystemPrompt string
	Enhanced     bool
	Notice       string
}

// PreviewResult is the outcome of EnhancePreviews
type PreviewResult struct {
	Previews [3]string
	Enhanced bool
	Notice   string
}

// Enhancer wraps the deterministic builders with one optional remote pass.
// Every failure degrades to the deterministic output plus a notice.
type Enhancer struct {
	completer Completer
	token     string
}

func NewEnhancer(c Completer, token string) *Enhancer {
	return &Enhancer{completer: c, token: token}
}

// PolishPrompt builds the system prompt and asks the model to polish it
func (e *Enhancer) PolishPrompt(ctx context.Context, cfg *persona.Config, opts builder.PromptOptions) PromptResult {
	deterministic := builder.BuildSystemPrompt(cfg, opts)
	if e.token == "" {
		return PromptResult{SystemPrompt: deterministic, Notice: NoticePromptNoToken}
	}

	polished, err := e.completer.Complete(ctx, e.token, CompletionRequest{
		Temperature: polishTemperature,
		MaxTokens:   polishMaxTokens,
		Messages: []Message{
			{Role: "system", Content: polishSystem},
			{Role: "user", Content: polishUserPrefix + deterministic},
		},
	})
	if err != nil {
		log.Warn().Err(err).Msg("Prompt enhancement failed")
		return PromptResult{SystemPrompt: deterministic, Notice: NoticePromptFailed}
	}
	if polished == "" {
		return PromptResult{SystemPrompt: deterministic}
	}
	return PromptResult{SystemPrompt: polished, Enhanced: true}
}

func previewUserMessage(cfg *persona.Config) (string, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode persona: %w", err)
	}
	return strings.Join([]string{
		"Persona config JSON:",
		string(data),
		"",
		"Create three distinct replies for:",
		"1. First-time chatter says hi.",
		"2. There's a lull; fill 1 line.",
		"3. Viewer asks for a gentle roast.",
		"",
		"Respond with minified JSON only (no markdown, no code fences) in the shape:",
		`{"previews":["reply for scenario 1","reply for scenario 2","reply for scenario 3"]}`,
		fmt.Sprintf("Each reply must be a string under %d characters that reflects the persona voice and safety guardrails. Do not include numbering or scenario labels inside the strings.", maxPreviewReplyLength),
	}, "\n"), nil
}

// EnhancePreviews asks the model for three replies and merges them over the
// deterministic baseline
func (e *Enhancer) EnhancePreviews(ctx context.Context, cfg *persona.Config) PreviewResult {
	baseline := builder.BuildPreviewReplies(cfg)
	if e.token == "" {
		return PreviewResult{Previews: baseline, Notice: NoticePreviewNoToken}
	}

	user, err := previewUserMessage(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("Preview enhancement failed")
		return PreviewResult{Previews: baseline, Notice: NoticePreviewsFailed}
	}

	content, err := e.completer.Complete(ctx, e.token, CompletionRequest{
		Temperature: previewTemperature,
		MaxTokens:   previewMaxTokens,
		Messages: []Message{
			{Role: "system", Content: previewSystem},
			{Role: "user", Content: user},
		},
	})
	if err == nil && content == "" {
		err = fmt.Errorf("%w: empty content", ErrMalformedResponse)
	}
	if err != nil {
		log.Warn().Err(err).Msg("Preview enhancement failed")
		return PreviewResult{Previews: baseline, Notice: NoticePreviewsFailed}
	}

	replies, ok := parsePreviews(content)
	if !ok {
		return PreviewResult{Previews: baseline}
	}
	return PreviewResult{Previews: mergePreviews(replies, baseline), Enhanced: true}
}

// parsePreviews keeps up to three trimmed non-empty strings. Non-string
// entries are skipped.
func parsePreviews(content string) ([]string, bool) {
	var payload struct {
		Previews []any `json:"previews"`
	}
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		log.Warn().Err(err).Msg("Preview enhance JSON parse failed")
		return nil, false
	}

	var cleaned []string
	for _, item := range payload.Previews {
		s, ok := item.(string)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	if len(cleaned) == 0 {
		return nil, false
	}
	return cleaned[:min(len(cleaned), 3)], true
}

func mergePreviews(replies []string, baseline [3]string) [3]string {
	out := baseline
	copy(out[:], replies)
	return out
}
