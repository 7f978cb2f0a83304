package voice

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Speaker writes one audio file per preview reply
type Speaker struct {
	provider Provider
	options  SynthesizeOptions
}

func NewSpeaker(p Provider, options SynthesizeOptions) *Speaker {
	return &Speaker{provider: p, options: options}
}

func (s *Speaker) extension() string {
	switch s.options.Format {
	case "":
		return "mp3"
	case "linear16":
		return "wav"
	case "ogg_opus":
		return "ogg"
	default:
		return s.options.Format
	}
}

// SpeakPreviews synthesizes replies concurrently into dir and returns the
// written paths in scenario order. scenarios names each reply's file.
// Files whose text and voice options are unchanged since the last run are
// left alone.
func (s *Speaker) SpeakPreviews(ctx context.Context, dir string, scenarios, replies []string) ([]string, error) {
	if len(scenarios) != len(replies) {
		return nil, fmt.Errorf("got %d scenarios for %d replies", len(scenarios), len(replies))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	dedup := NewDedupTracker(dir)
	paths := make([]string, len(replies))
	g, ctx := errgroup.WithContext(ctx)
	for i, reply := range replies {
		paths[i] = filepath.Join(dir, fmt.Sprintf("preview-%d-%s.%s", i+1, scenarios[i], s.extension()))
		g.Go(func() error {
			return s.speak(ctx, dedup, paths[i], reply)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

func (s *Speaker) speak(ctx context.Context, dedup *DedupTracker, path, text string) error {
	text = StripEmoji(text)
	key := fingerprint(s.provider.Name(), s.options, text)
	if dedup.IsDuplicate(path, key) {
		log.Debug().Str("path", path).Msg("Preview audio unchanged, skipping synthesis")
		return nil
	}
	dedup.Forget(path)

	audio, err := s.provider.Synthesize(ctx, text, s.options)
	if err != nil {
		return fmt.Errorf("failed to synthesize %s: %w", filepath.Base(path), err)
	}
	defer audio.Close()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create audio file: %w", err)
	}
	n, err := io.Copy(f, audio)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}

	dedup.Record(path, key)
	log.Debug().Str("path", path).Int64("bytes", n).Str("provider", s.provider.Name()).Msg("Wrote preview audio")
	return nil
}

// StripEmoji drops pictographs and their modifiers so TTS engines don't
// read them out, then collapses the leftover whitespace
func StripEmoji(text string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r == '\u200d', r == '\ufe0f', r == '\ufe0e':
			return -1
		case unicode.Is(unicode.So, r), unicode.Is(unicode.Sk, r) && r > 0xFF:
			return -1
		}
		return r
	}, text)

	mapped = strings.Join(strings.Fields(mapped), " ")
	return strings.NewReplacer(" .", ".", " !", "!", " ?", "?").Replace(mapped)
}
