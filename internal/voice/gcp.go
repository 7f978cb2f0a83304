package voice

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/googleapis/gax-go/v2"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
)

const userAgent = "streampersona"

// GCPClient is the part of the Cloud Text-to-Speech client we use
type GCPClient interface {
	SynthesizeSpeech(ctx context.Context, req *texttospeechpb.SynthesizeSpeechRequest, opts ...gax.CallOption) (*texttospeechpb.SynthesizeSpeechResponse, error)
	Close() error
}

// GCPProvider implements the Provider interface for Google Cloud TTS.
// Credentials come from Application Default Credentials.
type GCPProvider struct {
	client    GCPClient
	projectID string
}

func NewGCPProvider(ctx context.Context, projectID string) (*GCPProvider, error) {
	opts := []option.ClientOption{
		option.WithGRPCDialOption(grpc.WithUserAgent(userAgent)),
	}
	if projectID != "" {
		opts = append(opts, option.WithQuotaProject(projectID))
	}

	client, err := texttospeech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCP TTS client: %w", err)
	}
	return &GCPProvider{client: client, projectID: projectID}, nil
}

func (p *GCPProvider) Name() string {
	return "gcp"
}

func gcpEncoding(format string) texttospeechpb.AudioEncoding {
	switch strings.ToLower(format) {
	case "wav", "linear16":
		return texttospeechpb.AudioEncoding_LINEAR16
	case "ogg", "ogg_opus":
		return texttospeechpb.AudioEncoding_OGG_OPUS
	default:
		return texttospeechpb.AudioEncoding_MP3
	}
}

// languageOf extracts the language code from a voice name (en-US-Neural2-F -> en-US)
func languageOf(voice string) string {
	parts := strings.Split(voice, "-")
	if len(parts) < 2 {
		return "en-US"
	}
	return parts[0] + "-" + parts[1]
}

func (p *GCPProvider) Synthesize(ctx context.Context, text string, options SynthesizeOptions) (io.ReadCloser, error) {
	if text == "" {
		return nil, ErrEmptyText
	}

	voice := options.Voice
	if voice == "" {
		voice = "en-US-Neural2-F"
	}

	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: languageOf(voice),
			Name:         voice,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: gcpEncoding(options.Format),
			SpeakingRate:  clampSpeed(options.Speed),
		},
	}

	log.Debug().
		Str("voice", voice).
		Str("project", p.projectID).
		Str("format", options.Format).
		Msg("Making GCP TTS synthesis request")

	resp, err := p.client.SynthesizeSpeech(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to synthesize speech: %w", err)
	}
	return io.NopCloser(bytes.NewReader(resp.AudioContent)), nil
}

// Close releases the gRPC connection
func (p *GCPProvider) Close() error {
	return p.client.Close()
}
