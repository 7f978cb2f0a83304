// Package voice turns preview replies into audio with a cloud
// text-to-speech provider.
package voice

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/daikw/streampersona/internal/settings"
)

var ErrEmptyText = errors.New("text cannot be empty")

// Provider defines the interface for TTS providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Synthesize converts text to speech. The caller closes the stream.
	Synthesize(ctx context.Context, text string, options SynthesizeOptions) (io.ReadCloser, error)
}

// SynthesizeOptions contains options for text synthesis
type SynthesizeOptions struct {
	Voice  string  `json:"voice,omitempty"`
	Model  string  `json:"model,omitempty"`
	Format string  `json:"format,omitempty"` // mp3, wav, ogg, ...
	Speed  float64 `json:"speed,omitempty"`  // 0.25-4.0
	Engine string  `json:"engine,omitempty"` // polly only
}

// OptionsFromSettings maps the settings voice section to synthesis options
func OptionsFromSettings(v settings.Voice) SynthesizeOptions {
	return SynthesizeOptions{
		Voice:  v.Voice,
		Model:  v.Model,
		Format: v.Format,
		Speed:  v.Speed,
		Engine: v.Engine,
	}
}

// NewProvider creates the provider named in settings
func NewProvider(ctx context.Context, v settings.Voice) (Provider, error) {
	switch v.Provider {
	case settings.ProviderOpenAI:
		if v.APIKey == "" {
			return nil, fmt.Errorf("OpenAI API key not found in settings or OPENAI_API_KEY environment variable")
		}
		return NewOpenAIProvider(v.APIKey), nil
	case settings.ProviderPolly:
		return NewPollyProvider(ctx, v.Region)
	case settings.ProviderGCP:
		return NewGCPProvider(ctx, v.ProjectID)
	case "":
		return nil, fmt.Errorf("no voice provider configured; set voice.provider in settings")
	default:
		return nil, fmt.Errorf("unknown provider: %s", v.Provider)
	}
}

func clampSpeed(speed float64) float64 {
	if speed <= 0 {
		return 1.0
	}
	return min(max(speed, 0.25), 4.0)
}
