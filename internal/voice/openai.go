package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	OpenAIBaseURL     = "https://api.openai.com/v1"
	OpenAITTSEndpoint = "/audio/speech"
)

// OpenAIProvider implements the Provider interface for the OpenAI Audio API
type OpenAIProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewOpenAIProvider(apiKey string) *OpenAIProvider {
	return &OpenAIProvider{
		apiKey:  apiKey,
		baseURL: OpenAIBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// WithBaseURL points the provider at a compatible server
func (p *OpenAIProvider) WithBaseURL(u string) *OpenAIProvider {
	if u != "" {
		p.baseURL = strings.TrimSuffix(u, "/")
	}
	return p
}

func (p *OpenAIProvider) Name() string {
	return "openai"
}

func (p *OpenAIProvider) Synthesize(ctx context.Context, text string, options SynthesizeOptions) (io.ReadCloser, error) {
	if text == "" {
		return nil, ErrEmptyText
	}

	voice := options.Voice
	if voice == "" {
		voice = "nova"
	}
	model := options.Model
	if model == "" {
		model = "tts-1"
	}
	format := options.Format
	if format == "" {
		format = "mp3"
	}
	speed := clampSpeed(options.Speed)

	payload, err := json.Marshal(map[string]any{
		"model":           model,
		"input":           text,
		"voice":           voice,
		"response_format": format,
		"speed":           speed,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := p.baseURL + OpenAITTSEndpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	log.Debug().
		Str("endpoint", endpoint).
		Str("voice", voice).
		Str("model", model).
		Str("format", format).
		Float64("speed", speed).
		Msg("Making OpenAI TTS request")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("OpenAI API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	return resp.Body, nil
}
