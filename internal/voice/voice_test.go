package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	"github.com/aws/aws-sdk-go-v2/service/polly/types"
	"github.com/googleapis/gax-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/daikw/streampersona/internal/settings"
)

// MockPollyClient is a mock implementation of the Polly API client
type MockPollyClient struct {
	mock.Mock
}

func (m *MockPollyClient) SynthesizeSpeech(ctx context.Context, params *polly.SynthesizeSpeechInput, optFns ...func(*polly.Options)) (*polly.SynthesizeSpeechOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*polly.SynthesizeSpeechOutput), args.Error(1)
}

// MockGCPClient is a mock for the GCP TTS client
type MockGCPClient struct {
	mock.Mock
}

func (m *MockGCPClient) SynthesizeSpeech(ctx context.Context, req *texttospeechpb.SynthesizeSpeechRequest, opts ...gax.CallOption) (*texttospeechpb.SynthesizeSpeechResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*texttospeechpb.SynthesizeSpeechResponse), args.Error(1)
}

func (m *MockGCPClient) Close() error {
	return m.Called().Error(0)
}

func TestOpenAIProvider_Synthesize(t *testing.T) {
	t.Run("empty text", func(t *testing.T) {
		_, err := NewOpenAIProvider("k").Synthesize(context.Background(), "", SynthesizeOptions{})
		assert.ErrorIs(t, err, ErrEmptyText)
	})

	t.Run("successful synthesis", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, OpenAITTSEndpoint, r.URL.Path)
			assert.Equal(t, "Bearer test-api-key", r.Header.Get("Authorization"))

			var body map[string]any
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "hello", body["input"])
			assert.Equal(t, "nova", body["voice"])
			assert.Equal(t, "tts-1", body["model"])
			assert.Equal(t, "mp3", body["response_format"])
			assert.Equal(t, 4.0, body["speed"])

			w.Write([]byte("mock audio data"))
		}))
		defer server.Close()

		p := NewOpenAIProvider("test-api-key").WithBaseURL(server.URL)
		audio, err := p.Synthesize(context.Background(), "hello", SynthesizeOptions{Speed: 9})
		require.NoError(t, err)
		defer audio.Close()

		data, err := io.ReadAll(audio)
		require.NoError(t, err)
		assert.Equal(t, "mock audio data", string(data))
	})

	t.Run("api error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":{"message":"bad key"}}`))
		}))
		defer server.Close()

		_, err := NewOpenAIProvider("bad").WithBaseURL(server.URL).Synthesize(context.Background(), "hi", SynthesizeOptions{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 401")
	})
}

func TestPollyProvider_Synthesize(t *testing.T) {
	tests := []struct {
		name       string
		options    SynthesizeOptions
		wantFormat types.OutputFormat
		wantEngine types.Engine
		wantVoice  types.VoiceId
	}{
		{"defaults", SynthesizeOptions{}, types.OutputFormatMp3, types.EngineNeural, "Joanna"},
		{"ogg standard", SynthesizeOptions{Format: "ogg", Engine: "standard", Voice: "Matthew"}, types.OutputFormatOggVorbis, types.EngineStandard, "Matthew"},
		{"unknown engine falls back", SynthesizeOptions{Engine: "quantum"}, types.OutputFormatMp3, types.EngineNeural, "Joanna"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(MockPollyClient)
			client.On("SynthesizeSpeech", mock.Anything, mock.MatchedBy(func(in *polly.SynthesizeSpeechInput) bool {
				return aws.ToString(in.Text) == "hi chat" &&
					in.OutputFormat == tt.wantFormat &&
					in.Engine == tt.wantEngine &&
					in.VoiceId == tt.wantVoice &&
					in.TextType == types.TextTypeText
			})).Return(&polly.SynthesizeSpeechOutput{
				AudioStream: io.NopCloser(strings.NewReader("pcm")),
			}, nil)

			p := &PollyProvider{client: client, region: "us-east-1"}
			audio, err := p.Synthesize(context.Background(), "hi chat", tt.options)
			require.NoError(t, err)
			data, _ := io.ReadAll(audio)
			assert.Equal(t, "pcm", string(data))
			client.AssertExpectations(t)
		})
	}
}

func TestPollyProvider_Errors(t *testing.T) {
	client := new(MockPollyClient)
	p := &PollyProvider{client: client}

	_, err := p.Synthesize(context.Background(), "hi", SynthesizeOptions{Format: "flac"})
	assert.ErrorContains(t, err, "unsupported audio format")

	client.On("SynthesizeSpeech", mock.Anything, mock.Anything).Return(nil, errors.New("throttled"))
	_, err = p.Synthesize(context.Background(), "hi", SynthesizeOptions{})
	assert.ErrorContains(t, err, "throttled")

	assert.Equal(t, "polly", p.Name())
}

func TestGCPProvider_Synthesize(t *testing.T) {
	client := new(MockGCPClient)
	client.On("SynthesizeSpeech", mock.Anything, mock.MatchedBy(func(req *texttospeechpb.SynthesizeSpeechRequest) bool {
		return req.GetInput().GetText() == "hello" &&
			req.GetVoice().GetName() == "en-GB-Neural2-A" &&
			req.GetVoice().GetLanguageCode() == "en-GB" &&
			req.GetAudioConfig().GetAudioEncoding() == texttospeechpb.AudioEncoding_OGG_OPUS &&
			req.GetAudioConfig().GetSpeakingRate() == 1.5
	})).Return(&texttospeechpb.SynthesizeSpeechResponse{AudioContent: []byte("opus")}, nil)
	client.On("Close").Return(nil)

	p := &GCPProvider{client: client}
	audio, err := p.Synthesize(context.Background(), "hello", SynthesizeOptions{Voice: "en-GB-Neural2-A", Format: "ogg", Speed: 1.5})
	require.NoError(t, err)
	data, _ := io.ReadAll(audio)
	assert.Equal(t, "opus", string(data))
	assert.NoError(t, p.Close())
	client.AssertExpectations(t)
}

func TestGCPHelpers(t *testing.T) {
	assert.Equal(t, "ja-JP", languageOf("ja-JP-Neural2-B"))
	assert.Equal(t, "en-US", languageOf("weird"))
	assert.Equal(t, texttospeechpb.AudioEncoding_MP3, gcpEncoding(""))
	assert.Equal(t, texttospeechpb.AudioEncoding_LINEAR16, gcpEncoding("WAV"))
}

func TestNewProvider(t *testing.T) {
	ctx := context.Background()

	p, err := NewProvider(ctx, settings.Voice{Provider: settings.ProviderOpenAI, APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "openai", p.Name())

	_, err = NewProvider(ctx, settings.Voice{Provider: settings.ProviderOpenAI})
	assert.ErrorContains(t, err, "API key not found")

	_, err = NewProvider(ctx, settings.Voice{})
	assert.ErrorContains(t, err, "no voice provider configured")

	_, err = NewProvider(ctx, settings.Voice{Provider: "espeak"})
	assert.ErrorContains(t, err, "unknown provider")
}

func TestClampSpeed(t *testing.T) {
	assert.Equal(t, 1.0, clampSpeed(0))
	assert.Equal(t, 0.25, clampSpeed(0.1))
	assert.Equal(t, 4.0, clampSpeed(7))
	assert.Equal(t, 1.25, clampSpeed(1.25))
}

func TestStripEmoji(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"vibing with ✨ 😊!", "vibing with!"},
		{"hello 👋🏽 chat ❤️ ok.", "hello chat ok."},
		{"hypeW catJam", "hypeW catJam"},
		{"caramelized compliments—you're too sweet", "caramelized compliments—you're too sweet"},
		{"family 👨‍👩‍👧 time", "family time"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StripEmoji(tt.in), tt.in)
	}
}

type recordingProvider struct {
	mu    sync.Mutex
	texts []string
	fail  string
}

func (r *recordingProvider) Name() string { return "fake" }

func (r *recordingProvider) Synthesize(_ context.Context, text string, _ SynthesizeOptions) (io.ReadCloser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != "" && strings.Contains(text, r.fail) {
		return nil, errors.New("synthesis failed")
	}
	r.texts = append(r.texts, text)
	return io.NopCloser(bytes.NewReader([]byte("audio:" + text))), nil
}

func TestSpeaker_SpeakPreviews(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	fake := &recordingProvider{}
	scenarios := []string{"first-time", "lull", "roast"}
	replies := []string{"hi ✨", "quiet 😊 time", "roast 🔥!"}

	paths, err := NewSpeaker(fake, SynthesizeOptions{Format: "ogg"}).SpeakPreviews(context.Background(), dir, scenarios, replies)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "preview-1-first-time.ogg"),
		filepath.Join(dir, "preview-2-lull.ogg"),
		filepath.Join(dir, "preview-3-roast.ogg"),
	}, paths)
	assert.ElementsMatch(t, []string{"hi", "quiet time", "roast!"}, fake.texts)

	data, err := os.ReadFile(paths[1])
	require.NoError(t, err)
	assert.Equal(t, "audio:quiet time", string(data))
}

func TestSpeaker_SkipsUnchangedAudio(t *testing.T) {
	dir := t.TempDir()
	fake := &recordingProvider{}
	s := NewSpeaker(fake, SynthesizeOptions{})
	scenarios := []string{"first-time", "lull"}

	_, err := s.SpeakPreviews(context.Background(), dir, scenarios, []string{"hello", "quiet"})
	require.NoError(t, err)
	require.Len(t, fake.texts, 2)

	_, err = s.SpeakPreviews(context.Background(), dir, scenarios, []string{"hello", "still quiet"})
	require.NoError(t, err)
	assert.Equal(t, "still quiet", fake.texts[len(fake.texts)-1])
	assert.Len(t, fake.texts, 3)
}

func TestSpeaker_Errors(t *testing.T) {
	fake := &recordingProvider{fail: "boom"}
	s := NewSpeaker(fake, SynthesizeOptions{})

	_, err := s.SpeakPreviews(context.Background(), t.TempDir(), []string{"a"}, []string{"x", "y"})
	assert.Error(t, err)

	_, err = s.SpeakPreviews(context.Background(), t.TempDir(), []string{"a", "b"}, []string{"fine", "boom"})
	assert.ErrorContains(t, err, "synthesis failed")
	assert.Equal(t, "mp3", s.extension())
}
