// Package store persists the persona config and the last generated
// artifacts in a device-local key-value store.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/daikw/streampersona/internal/builder"
	"github.com/daikw/streampersona/internal/persona"
	"github.com/daikw/streampersona/internal/settings"
)

// Fixed keys
const (
	KeyConfig    = "persona_config_v1"
	KeyArtifacts = "persona_artifacts_v1"
)

var ErrNotFound = errors.New("key not found")

// Store is a string-keyed byte store
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open creates the backend selected in settings
func Open(cfg settings.Store) (Store, error) {
	switch cfg.Backend {
	case settings.BackendSQLite:
		return NewSQLiteStore(cfg.Path)
	case settings.BackendFile, "":
		return NewFileStore(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.Backend)
	}
}

// LoadConfig returns the stored persona config. The default config is
// returned when nothing is stored or the stored document no longer parses.
func LoadConfig(ctx context.Context, s Store) *persona.Config {
	data, err := s.Get(ctx, KeyConfig)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Warn().Err(err).Msg("Failed to read stored persona, using defaults")
		}
		return persona.Default()
	}

	cfg, err := persona.ParseJSON(data)
	if err != nil {
		log.Warn().Err(err).Msg("Stored persona is corrupt, using defaults")
		return persona.Default()
	}
	return cfg
}

// SaveConfig stores cfg. Failures are logged and otherwise ignored.
func SaveConfig(ctx context.Context, s Store, cfg *persona.Config) {
	put(ctx, s, KeyConfig, cfg)
}

// ClearConfig removes the stored config so the next load yields defaults
func ClearConfig(ctx context.Context, s Store) error {
	if err := s.Delete(ctx, KeyConfig); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("failed to clear persona config: %w", err)
	}
	return nil
}

// LoadArtifacts returns the last generated artifacts, or nil
func LoadArtifacts(ctx context.Context, s Store) *builder.Artifacts {
	data, err := s.Get(ctx, KeyArtifacts)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Warn().Err(err).Msg("Failed to read stored artifacts")
		}
		return nil
	}

	var a builder.Artifacts
	if err := json.Unmarshal(data, &a); err != nil {
		log.Warn().Err(err).Msg("Stored artifacts are corrupt, ignoring")
		return nil
	}
	if a.Persona == nil {
		return nil
	}
	return &a
}

// SaveArtifacts stores a. Failures are logged and otherwise ignored.
func SaveArtifacts(ctx context.Context, s Store, a *builder.Artifacts) {
	put(ctx, s, KeyArtifacts, a)
}

func put(ctx context.Context, s Store, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to encode value for storage")
		return
	}
	if err := s.Put(ctx, key, data); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to persist value")
		return
	}
	log.Debug().Str("key", key).Int("bytes", len(data)).Msg("Persisted value")
}
