// Package export writes generated artifacts to disk and imports persona
// documents from JSON or YAML files.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/daikw/streampersona/internal/builder"
	"github.com/daikw/streampersona/internal/persona"
)

// Export file names
const (
	PromptFile     = "persona-prompt.md"
	CheatsheetFile = "cheatsheet.md"
	JSONFile       = "persona.json"
	YAMLFile       = "persona.yaml"
)

// WriteArtifacts writes the prompt, cheatsheet and persona config into dir
// and returns the written paths
func WriteArtifacts(dir string, a *builder.Artifacts, withYAML bool) ([]string, error) {
	if a == nil || a.Persona == nil {
		return nil, fmt.Errorf("nothing to export: generate artifacts first")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	configJSON, err := json.MarshalIndent(a.Persona, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode persona JSON: %w", err)
	}

	type file struct {
		name string
		data []byte
	}
	files := []file{
		{PromptFile, []byte(a.SystemPrompt + "\n")},
		{CheatsheetFile, []byte(a.Cheatsheet + "\n")},
		{JSONFile, append(configJSON, '\n')},
	}
	if withYAML {
		configYAML, err := yaml.Marshal(a.Persona)
		if err != nil {
			return nil, fmt.Errorf("failed to encode persona YAML: %w", err)
		}
		files = append(files, file{YAMLFile, configYAML})
	}

	paths := make([]string, 0, len(files))
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := os.WriteFile(path, f.data, 0644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", f.name, err)
		}
		log.Debug().Str("path", path).Int("bytes", len(f.data)).Msg("Exported file")
		paths = append(paths, path)
	}
	return paths, nil
}

// ImportError reports a persona document that could not be imported
type ImportError struct {
	Path string
	Err  error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("failed to import %s: %v", e.Path, e.Err)
}

func (e *ImportError) Unwrap() error { return e.Err }

// ImportFile reads a persona document. The format follows the extension;
// .yaml and .yml are YAML, anything else is JSON.
func ImportFile(path string) (*persona.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ImportError{Path: path, Err: err}
	}

	var cfg *persona.Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		cfg, err = persona.ParseYAML(data)
	default:
		cfg, err = persona.ParseJSON(data)
	}
	if err != nil {
		return nil, &ImportError{Path: path, Err: err}
	}
	return cfg, nil
}
