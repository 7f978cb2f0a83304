package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/daikw/streampersona/internal/enhance"
	"github.com/daikw/streampersona/internal/persona"
	"github.com/daikw/streampersona/internal/settings"
	"github.com/daikw/streampersona/internal/store"
)

// env is the per-invocation state shared by command handlers
type env struct {
	settings *settings.Settings
	store    store.Store
	out      io.Writer
	in       io.Reader
}

func openEnv(c *cli.Command) (*env, error) {
	s, err := settings.NewLoader().Load(c.String("dir"))
	if err != nil {
		return nil, err
	}
	for _, problem := range s.Validate() {
		log.Warn().Msg(problem)
	}

	st, err := store.Open(s.Store)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	root := c.Root()
	return &env{settings: s, store: st, out: root.Writer, in: root.Reader}, nil
}

func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		log.Warn().Err(err).Msg("Failed to close store")
	}
}

func (e *env) config(ctx context.Context) *persona.Config {
	return store.LoadConfig(ctx, e.store)
}

func (e *env) printf(format string, args ...any) {
	fmt.Fprintf(e.out, format, args...)
}

func (e *env) println(args ...any) {
	fmt.Fprintln(e.out, args...)
}

// enhancer resolves the API token: settings / OPENAI_API_KEY first, then
// the --token flag
func (e *env) enhancer(c *cli.Command) *enhance.Enhancer {
	client := enhance.NewClient(
		enhance.WithBaseURL(e.settings.Enhance.BaseURL),
		enhance.WithModel(e.settings.Enhance.Model),
		enhance.WithTimeout(time.Duration(e.settings.Enhance.TimeoutSeconds)*time.Second),
	)
	return enhance.NewEnhancer(client, enhance.ResolveToken(e.settings.Enhance.APIKey, c.String("token")))
}
