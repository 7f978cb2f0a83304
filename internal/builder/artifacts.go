package builder

import (
	"time"

	"github.com/daikw/streampersona/internal/persona"
)

// Artifacts is one generation result. A new generation replaces the
// previous record whole; nothing mutates it after Generate returns.
type Artifacts struct {
	SystemPrompt    string          `json:"systemPrompt" yaml:"systemPrompt"`
	Cheatsheet      string          `json:"cheatsheet" yaml:"cheatsheet"`
	Persona         *persona.Config `json:"persona" yaml:"persona"`
	IncludeFewShots bool            `json:"includeFewShots" yaml:"includeFewShots"`
	CreatedAt       time.Time       `json:"createdAt" yaml:"createdAt"`
}

// Generate renders the prompt and cheatsheet from a snapshot of cfg
func Generate(cfg *persona.Config, opts PromptOptions, createdAt time.Time) *Artifacts {
	snapshot := cfg.Clone()
	return &Artifacts{
		SystemPrompt:    BuildSystemPrompt(snapshot, opts),
		Cheatsheet:      BuildCheatsheet(snapshot),
		Persona:         snapshot,
		IncludeFewShots: opts.IncludeFewShots,
		CreatedAt:       createdAt.UTC(),
	}
}

// WithSystemPrompt returns a copy carrying a replacement prompt, used when
// the remote polish step produced a better draft
func (a *Artifacts) WithSystemPrompt(prompt string) *Artifacts {
	out := *a
	out.SystemPrompt = prompt
	return &out
}
