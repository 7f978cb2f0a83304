package persona

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const snapshotExt = ".yaml"

// ErrNoSnapshot is returned when a named persona does not exist in the library
var ErrNoSnapshot = errors.New("persona snapshot does not exist")

var snapshotName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// Manager keeps named persona snapshots as YAML files, so a streamer can
// switch between personas without re-answering the questionnaire
type Manager struct {
	personasDir string
}

// NewManager creates a manager rooted at dir
func NewManager(dir string) *Manager {
	return &Manager{personasDir: dir}
}

// ListPersonas returns snapshot names in sorted order
func (m *Manager) ListPersonas() ([]string, error) {
	entries, err := os.ReadDir(m.personasDir)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug().Msg("Personas directory does not exist")
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read personas directory: %w", err)
	}

	personas := []string{}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), snapshotExt) {
			personas = append(personas, strings.TrimSuffix(entry.Name(), snapshotExt))
		}
	}
	slices.Sort(personas)
	return personas, nil
}

// GetPersonaPath returns the full path to a snapshot file
func (m *Manager) GetPersonaPath(name string) string {
	return filepath.Join(m.personasDir, name+snapshotExt)
}

func (m *Manager) PersonaExists(name string) bool {
	_, err := os.Stat(m.GetPersonaPath(name))
	return err == nil
}

// SavePersona writes cfg under name. An existing snapshot is only replaced
// when overwrite is set.
func (m *Manager) SavePersona(name string, cfg *Config, overwrite bool) error {
	if !snapshotName.MatchString(name) {
		return fmt.Errorf("invalid persona name %q: use letters, digits, '-' and '_'", name)
	}
	if !overwrite && m.PersonaExists(name) {
		return fmt.Errorf("persona '%s' already exists", name)
	}
	if err := os.MkdirAll(m.personasDir, 0755); err != nil {
		return fmt.Errorf("failed to create personas directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode persona: %w", err)
	}
	path := m.GetPersonaPath(name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write persona file: %w", err)
	}

	log.Info().Str("persona", name).Str("path", path).Msg("Saved persona snapshot")
	return nil
}

// ReadPersona loads and validates a snapshot
func (m *Manager) ReadPersona(name string) (*Config, error) {
	if !snapshotName.MatchString(name) || !m.PersonaExists(name) {
		return nil, fmt.Errorf("%w: %s", ErrNoSnapshot, name)
	}

	data, err := os.ReadFile(m.GetPersonaPath(name))
	if err != nil {
		return nil, fmt.Errorf("failed to read persona file: %w", err)
	}
	cfg, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("persona '%s' is invalid: %w", name, err)
	}
	return cfg, nil
}

func (m *Manager) DeletePersona(name string) error {
	if !snapshotName.MatchString(name) || !m.PersonaExists(name) {
		return fmt.Errorf("%w: %s", ErrNoSnapshot, name)
	}
	if err := os.Remove(m.GetPersonaPath(name)); err != nil {
		return fmt.Errorf("failed to delete persona file: %w", err)
	}
	log.Info().Str("persona", name).Msg("Deleted persona snapshot")
	return nil
}
