package export

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daikw/streampersona/internal/builder"
	"github.com/daikw/streampersona/internal/persona"
)

func sampleArtifacts() *builder.Artifacts {
	cfg := persona.Default()
	cfg.Identity.Name = "Pip"
	brevity := 3
	cfg.Chattiness = &persona.Chattiness{Brevity: &brevity, Exclamations: persona.ExclamationsRare}
	return builder.Generate(cfg, builder.DefaultPromptOptions(cfg), time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))
}

func TestWriteArtifacts(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "export")
	a := sampleArtifacts()

	paths, err := WriteArtifacts(dir, a, false)
	require.NoError(t, err)
	require.Len(t, paths, 3)

	prompt, err := os.ReadFile(filepath.Join(dir, PromptFile))
	require.NoError(t, err)
	assert.Equal(t, a.SystemPrompt+"\n", string(prompt))

	sheet, err := os.ReadFile(filepath.Join(dir, CheatsheetFile))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(sheet), "# Persona Cheatsheet – Pip"))

	_, err = os.Stat(filepath.Join(dir, YAMLFile))
	assert.True(t, os.IsNotExist(err))

	imported, err := ImportFile(filepath.Join(dir, JSONFile))
	require.NoError(t, err)
	if diff := cmp.Diff(a.Persona, imported); diff != "" {
		t.Errorf("exported JSON does not round-trip (-want +got):\n%s", diff)
	}
}

func TestWriteArtifacts_YAMLRoundTrip(t *testing.T) {
	dir := t.TempDir()
	a := sampleArtifacts()

	paths, err := WriteArtifacts(dir, a, true)
	require.NoError(t, err)
	require.Len(t, paths, 4)
	assert.Equal(t, filepath.Join(dir, YAMLFile), paths[3])

	imported, err := ImportFile(paths[3])
	require.NoError(t, err)
	if diff := cmp.Diff(a.Persona, imported); diff != "" {
		t.Errorf("exported YAML does not round-trip (-want +got):\n%s", diff)
	}
}

func TestWriteArtifacts_NothingToExport(t *testing.T) {
	_, err := WriteArtifacts(t.TempDir(), nil, false)
	assert.ErrorContains(t, err, "generate artifacts first")
}

func TestImportFile_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		invalid bool
	}{
		{"missing file", "nope.json", "", false},
		{"malformed json", "bad.json", `{"template": `, false},
		{"malformed yaml", "bad.yml", "template: [unclosed", false},
		{"invalid values", "few.json", `{"values": ["honest"]}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			if tt.content != "" {
				require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))
			}

			cfg, err := ImportFile(path)
			assert.Nil(t, cfg)

			var importErr *ImportError
			require.ErrorAs(t, err, &importErr)
			assert.Equal(t, path, importErr.Path)

			var validation *persona.ValidationError
			assert.Equal(t, tt.invalid, errors.As(err, &validation))
			if tt.invalid {
				assert.True(t, validation.Has("values", persona.IssueTooFew))
			}
		})
	}
}

func TestImportFile_YAMLExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persona.YAML")
	require.NoError(t, os.WriteFile(path, []byte("template: Butler\nrating: G\n"), 0644))

	cfg, err := ImportFile(path)
	require.NoError(t, err)
	assert.Equal(t, persona.TemplateButler, cfg.Template)
	assert.Equal(t, persona.RatingG, cfg.Rating)
}
