package voice

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	"github.com/aws/aws-sdk-go-v2/service/polly/types"
	"github.com/rs/zerolog/log"
)

// PollyClient is the part of the Polly API we use
type PollyClient interface {
	SynthesizeSpeech(ctx context.Context, params *polly.SynthesizeSpeechInput, optFns ...func(*polly.Options)) (*polly.SynthesizeSpeechOutput, error)
}

// PollyProvider implements the Provider interface for Amazon Polly
type PollyProvider struct {
	client PollyClient
	region string
}

// NewPollyProvider loads the default AWS credential chain for region
func NewPollyProvider(ctx context.Context, region string) (*PollyProvider, error) {
	if region == "" {
		region = "us-east-1"
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &PollyProvider{client: polly.NewFromConfig(cfg), region: region}, nil
}

func (p *PollyProvider) Name() string {
	return "polly"
}

func pollyFormat(format string) (types.OutputFormat, error) {
	switch strings.ToLower(format) {
	case "", "mp3":
		return types.OutputFormatMp3, nil
	case "ogg":
		return types.OutputFormatOggVorbis, nil
	case "pcm":
		return types.OutputFormatPcm, nil
	default:
		return "", fmt.Errorf("unsupported audio format: %s", format)
	}
}

func pollyEngine(engine string) types.Engine {
	switch strings.ToLower(engine) {
	case "", "neural":
		return types.EngineNeural
	case "standard":
		return types.EngineStandard
	case "long-form":
		return types.EngineLongForm
	case "generative":
		return types.EngineGenerative
	default:
		log.Warn().Str("engine", engine).Msg("Unknown engine, using neural")
		return types.EngineNeural
	}
}

func (p *PollyProvider) Synthesize(ctx context.Context, text string, options SynthesizeOptions) (io.ReadCloser, error) {
	if text == "" {
		return nil, ErrEmptyText
	}

	format, err := pollyFormat(options.Format)
	if err != nil {
		return nil, err
	}
	voiceID := options.Voice
	if voiceID == "" {
		voiceID = "Joanna"
	}

	input := &polly.SynthesizeSpeechInput{
		Text:         aws.String(text),
		TextType:     types.TextTypeText,
		VoiceId:      types.VoiceId(voiceID),
		OutputFormat: format,
		Engine:       pollyEngine(options.Engine),
	}

	log.Debug().
		Str("voice_id", voiceID).
		Str("region", p.region).
		Str("output_format", string(format)).
		Str("engine", string(input.Engine)).
		Msg("Making Polly synthesis request")

	result, err := p.client.SynthesizeSpeech(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to synthesize speech: %w", err)
	}
	return result.AudioStream, nil
}
