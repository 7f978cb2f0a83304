package main

import (
	"context"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/daikw/streampersona/internal/builder"
	"github.com/daikw/streampersona/internal/voice"
)

func speakPreviews(ctx context.Context, e *env, dir string, replies [3]string) error {
	provider, err := voice.NewProvider(ctx, e.settings.Voice)
	if err != nil {
		return err
	}
	if closer, ok := provider.(io.Closer); ok {
		defer closer.Close()
	}

	log.Info().Str("provider", provider.Name()).Str("dir", dir).Msg("Synthesizing previews")
	speaker := voice.NewSpeaker(provider, voice.OptionsFromSettings(e.settings.Voice))
	paths, err := speaker.SpeakPreviews(ctx, dir, builder.PreviewScenarios[:], replies[:])
	if err != nil {
		return err
	}
	for _, p := range paths {
		e.printf("🔊 %s\n", p)
	}
	return nil
}
