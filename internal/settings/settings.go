// Package settings loads the local streampersona settings file.
//
// Settings are looked up in the working directory first
// (.streampersona/settings.json) and then in the home directory
// (~/.streampersona/settings.json). Values of the form ${VAR} are expanded
// from the environment so secrets can stay out of the file.
package settings

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"github.com/rs/zerolog/log"
)

const (
	DirName         = ".streampersona"
	FileName        = "settings.json"
	PersonasDirName = "personas"

	BackendFile   = "file"
	BackendSQLite = "sqlite"

	ProviderOpenAI = "openai"
	ProviderPolly  = "polly"
	ProviderGCP    = "gcp"

	DefaultEnhanceTimeout = 30
)

// Settings is the settings file structure
type Settings struct {
	Store   Store   `json:"store"`
	Enhance Enhance `json:"enhance"`
	Voice   Voice   `json:"voice"`
}

// Store selects the persistence backend
type Store struct {
	Backend string `json:"backend,omitempty"`
	Path    string `json:"path,omitempty"`
}

// Enhance configures the OpenAI-compatible completion endpoint
type Enhance struct {
	APIKey         string `json:"apiKey,omitempty"`
	BaseURL        string `json:"baseURL,omitempty"`
	Model          string `json:"model,omitempty"`
	TimeoutSeconds int    `json:"timeoutSeconds,omitempty"`
}

// Voice configures the text-to-speech provider used for spoken previews
type Voice struct {
	Provider  string  `json:"provider,omitempty"`
	APIKey    string  `json:"apiKey,omitempty"`
	Voice     string  `json:"voice,omitempty"`
	Model     string  `json:"model,omitempty"`
	Format    string  `json:"format,omitempty"`
	Speed     float64 `json:"speed,omitempty"`
	Region    string  `json:"region,omitempty"`
	Engine    string  `json:"engine,omitempty"`
	ProjectID string  `json:"projectID,omitempty"`
}

// Default returns settings used when no file is found
func Default() *Settings {
	return &Settings{
		Store:   Store{Backend: BackendFile},
		Enhance: Enhance{TimeoutSeconds: DefaultEnhanceTimeout},
	}
}

// Loader finds and reads settings files
type Loader struct {
	projectPath string
	globalPath  string
}

// NewLoader creates a loader for the default locations
func NewLoader() *Loader {
	homeDir, _ := os.UserHomeDir()
	return &Loader{
		projectPath: filepath.Join(DirName, FileName),
		globalPath:  filepath.Join(homeDir, DirName, FileName),
	}
}

// Load reads settings with priority:
// 1. Project-local settings (.streampersona/settings.json under workDir)
// 2. Global settings (~/.streampersona/settings.json)
// Defaults are returned when neither exists. A file that exists but cannot
// be parsed is an error.
func (l *Loader) Load(workDir string) (*Settings, error) {
	s, path, err := l.find(workDir)
	if err != nil {
		return nil, err
	}
	if s == nil {
		log.Debug().Msg("No settings file found, using defaults")
		s = Default()
	} else {
		log.Debug().Str("path", path).Msg("Loaded settings")
	}
	s.applyDefaults(workDir)
	return s, nil
}

func (l *Loader) find(workDir string) (*Settings, string, error) {
	for _, path := range []string{filepath.Join(workDir, l.projectPath), l.globalPath} {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		s, err := loadFromFile(path)
		if err != nil {
			return nil, "", err
		}
		return s, path, nil
	}
	return nil, "", nil
}

func loadFromFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}

	expanded := expandEnvVars(string(data))

	s := Default()
	if err := json.Unmarshal([]byte(expanded), s); err != nil {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}

	checkFilePermissions(path)
	return s, nil
}

var envPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR} patterns with environment variable values
func expandEnvVars(input string) string {
	return envPattern.ReplaceAllStringFunc(input, func(match string) string {
		name := match[2 : len(match)-1]
		if value, ok := os.LookupEnv(name); ok {
			return value
		}
		// variable names are not logged; they can hint at secrets
		log.Debug().Msg("Referenced environment variable not set in settings")
		return ""
	})
}

func checkFilePermissions(path string) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	mode := info.Mode().Perm()
	if mode&0077 != 0 {
		log.Warn().
			Str("permissions", fmt.Sprintf("%04o", mode)).
			Msg("Settings file may contain secrets but has permissive permissions. Consider: chmod 600")
	}
}

func (s *Settings) applyDefaults(workDir string) {
	if s.Store.Backend == "" {
		s.Store.Backend = BackendFile
	}
	if s.Store.Path == "" {
		switch s.Store.Backend {
		case BackendSQLite:
			s.Store.Path = filepath.Join(DirName, "persona.db")
		default:
			s.Store.Path = filepath.Join(DirName, "state")
		}
	}
	if !filepath.IsAbs(s.Store.Path) {
		s.Store.Path = filepath.Join(workDir, s.Store.Path)
	}
	if s.Enhance.TimeoutSeconds == 0 {
		s.Enhance.TimeoutSeconds = DefaultEnhanceTimeout
	}

	key := os.Getenv("OPENAI_API_KEY")
	if s.Enhance.APIKey == "" {
		s.Enhance.APIKey = key
	}
	if s.Voice.APIKey == "" && s.Voice.Provider == ProviderOpenAI {
		s.Voice.APIKey = key
	}
}

// Validate returns human-readable problems; an empty result means the
// settings are usable
func (s *Settings) Validate() []string {
	var problems []string
	if s == nil {
		return problems
	}

	if !slices.Contains([]string{BackendFile, BackendSQLite}, s.Store.Backend) {
		problems = append(problems, fmt.Sprintf("store: backend '%s' must be file or sqlite", s.Store.Backend))
	}

	if s.Enhance.BaseURL != "" {
		u, err := url.Parse(s.Enhance.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			problems = append(problems, "enhance: baseURL must be an http(s) URL")
		}
	}
	if s.Enhance.TimeoutSeconds < 0 {
		problems = append(problems, "enhance: timeoutSeconds must not be negative")
	}

	return append(problems, s.Voice.validate()...)
}

func (v Voice) validate() []string {
	var problems []string
	switch v.Provider {
	case "":
		return nil
	case ProviderOpenAI:
		if v.APIKey == "" {
			problems = append(problems, "voice: apiKey is required for openai (use ${OPENAI_API_KEY} for env var)")
		}
		if v.Format != "" && !slices.Contains([]string{"mp3", "opus", "aac", "flac", "wav", "pcm"}, v.Format) {
			problems = append(problems, fmt.Sprintf("voice: format '%s' is not supported by openai", v.Format))
		}
	case ProviderPolly:
		validRegions := []string{"us-east-1", "us-west-2", "eu-west-1", "ap-northeast-1", "ap-southeast-1"}
		if v.Region != "" && !slices.Contains(validRegions, v.Region) {
			problems = append(problems, fmt.Sprintf("voice: region '%s' may not be valid", v.Region))
		}
		if v.Format != "" && !slices.Contains([]string{"mp3", "ogg", "pcm"}, v.Format) {
			problems = append(problems, fmt.Sprintf("voice: format '%s' is not supported by polly", v.Format))
		}
	case ProviderGCP:
		if v.Format != "" && !slices.Contains([]string{"mp3", "wav", "ogg"}, v.Format) {
			problems = append(problems, fmt.Sprintf("voice: format '%s' is not supported by gcp", v.Format))
		}
	default:
		problems = append(problems, fmt.Sprintf("voice: unknown provider '%s' (openai, polly, gcp)", v.Provider))
	}

	if v.Speed != 0 && (v.Speed < 0.25 || v.Speed > 4.0) {
		problems = append(problems, "voice: speed must be between 0.25 and 4.0")
	}
	return problems
}

// MaskSecrets returns a copy safe for display. Only the presence and length
// of a key are shown.
func (s *Settings) MaskSecrets() *Settings {
	if s == nil {
		return nil
	}
	masked := *s
	masked.Enhance.APIKey = mask(s.Enhance.APIKey)
	masked.Voice.APIKey = mask(s.Voice.APIKey)
	return &masked
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return fmt.Sprintf("[set, %d chars]", len(secret))
}

// ExampleJSON renders an example settings file
func ExampleJSON() string {
	example := Settings{
		Store: Store{Backend: BackendSQLite, Path: filepath.Join(DirName, "persona.db")},
		Enhance: Enhance{
			APIKey:         "${OPENAI_API_KEY}",
			BaseURL:        "https://api.openai.com/v1",
			Model:          "gpt-4o-mini",
			TimeoutSeconds: DefaultEnhanceTimeout,
		},
		Voice: Voice{
			Provider: ProviderPolly,
			Voice:    "Joanna",
			Engine:   "neural",
			Region:   "us-east-1",
			Format:   "mp3",
		},
	}
	data, _ := json.MarshalIndent(example, "", "  ")
	return string(data)
}
