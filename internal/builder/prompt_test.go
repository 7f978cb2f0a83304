package builder

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/daikw/streampersona/internal/persona"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var sectionTitles = []string{
	"### 1. Purpose & Scope",
	"### 2. Persona Core",
	"### 3. Voice & Style Rules",
	"### 4. Boundaries & Safety",
	"### 5. Relationship & Transparency",
	"### 6. Improv vs. Factuality",
	"### 7. Adaptability",
	"### 8. Personalization Variables",
	"### 9. Few-shot Examples & Anti-examples",
	"### 10. Operational Notes",
}

func TestBuildSystemPrompt_Structure(t *testing.T) {
	prompt := BuildSystemPrompt(persona.Default(), PromptOptions{})

	assert.True(t, strings.HasPrefix(prompt, promptHeader+"\n\n### 1. Purpose & Scope\n\n"))
	last := -1
	for _, title := range sectionTitles {
		idx := strings.Index(prompt, title)
		require.GreaterOrEqual(t, idx, 0, "missing %s", title)
		assert.Greater(t, idx, last, "%s out of order", title)
		last = idx
	}
	assert.NotContains(t, prompt, "### Persona Extensions")
	assert.Equal(t, strings.TrimSpace(prompt), prompt)
	assert.Contains(t, prompt, "Core values to embody: empathetic, inclusive, playful, loyal to streamer.")
	assert.Contains(t, prompt, "Template: **Chill Sidekick** <!-- calm, supportive hype with gentle banter and steady positivity. -->")
	assert.Contains(t, prompt, "- Honor the rule: **no controversy unless streamer prompts**.")
	assert.Contains(t, prompt, "You are the live chat co-host for streamer placeholder `STREAMER_NAME`.")
}

func TestBuildSystemPrompt_GuardrailsVerbatim(t *testing.T) {
	configs := map[string]*persona.Config{"default": persona.Default()}
	for _, tmpl := range persona.Templates() {
		for _, rating := range persona.Ratings() {
			cfg := persona.Default()
			cfg.Template = tmpl
			cfg.Rating = rating
			configs[string(tmpl)+"/"+string(rating)] = cfg
		}
	}

	for name, cfg := range configs {
		prompt := BuildSystemPrompt(cfg, DefaultPromptOptions(cfg))
		for _, line := range SafetyGuardrails {
			assert.Contains(t, prompt, "\n- "+line+"\n", name)
		}
	}
}

func TestBuildSystemPrompt_Deterministic(t *testing.T) {
	cfg := persona.Default()
	cfg.Style = &persona.Style{Laugh: "hehe"}
	cfg.Calibration = &persona.Calibration{GoodExamples: []string{"gg chat"}}

	first := BuildSystemPrompt(cfg, PromptOptions{IncludeFewShots: true})
	for range 5 {
		assert.Equal(t, first, BuildSystemPrompt(cfg, PromptOptions{IncludeFewShots: true}))
	}
}

func TestBuildSystemPrompt_FewShotGating(t *testing.T) {
	withBoth := persona.Default()
	withBoth.Calibration = &persona.Calibration{
		GoodExamples: []string{"Welcome in, legend!", "Hydration check, crew."},
		BadExamples:  []string{"whatever lol"},
	}
	goodOnly := persona.Default()
	goodOnly.Calibration = &persona.Calibration{GoodExamples: []string{"Welcome in, legend!"}}

	tests := []struct {
		name        string
		cfg         *persona.Config
		include     bool
		contains    []string
		notContains []string
	}{
		{
			name:    "embedded",
			cfg:     withBoth,
			include: true,
			contains: []string{
				"**Few-shot style anchors (model should learn from these positive examples):**",
				"- Good Example 1: Welcome in, legend!",
				"- Good Example 2: Hydration check, crew.",
				"**Anti-examples — do not emulate these patterns:**\n- Anti-example 1: whatever lol",
			},
		},
		{
			name:        "withheld",
			cfg:         withBoth,
			include:     false,
			contains:    []string{"Calibration examples exist but are not embedded in this prompt", "- Anti-example 1: whatever lol"},
			notContains: []string{"Good Example"},
		},
		{
			name:        "good only withheld",
			cfg:         goodOnly,
			include:     false,
			contains:    []string{"Calibration examples exist but are not embedded in this prompt"},
			notContains: []string{"Anti-example", "Good Example"},
		},
		{
			name:     "none",
			cfg:      persona.Default(),
			include:  true,
			contains: []string{"No calibration examples were provided; rely on the rules above to stay consistent."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt := BuildSystemPrompt(tt.cfg, PromptOptions{IncludeFewShots: tt.include})
			for _, s := range tt.contains {
				assert.Contains(t, prompt, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, prompt, s)
			}
		})
	}
}

func TestDefaultPromptOptions(t *testing.T) {
	cfg := persona.Default()
	assert.False(t, DefaultPromptOptions(cfg).IncludeFewShots)

	cfg.Calibration = &persona.Calibration{BadExamples: []string{"nope"}}
	assert.False(t, DefaultPromptOptions(cfg).IncludeFewShots)

	cfg.Calibration.GoodExamples = []string{"yes"}
	assert.True(t, DefaultPromptOptions(cfg).IncludeFewShots)
}

func TestBuildSystemPrompt_Extensions(t *testing.T) {
	brevity := 3
	cfg := persona.Default()
	cfg.Style = &persona.Style{Casing: persona.CasingLowercase}
	cfg.Chattiness = &persona.Chattiness{Brevity: &brevity, ParagraphStyle: persona.ParagraphOneLiners}
	cfg.Refusals = &persona.Refusals{Style: persona.RefusalFirmBrief, StockLines: []string{"Nope!", "Not today"}}

	prompt := BuildSystemPrompt(cfg, PromptOptions{})

	want := "### Persona Extensions\n\n" +
		"**Style levers**\nPreferred casing: **lowercase**.\n\n" +
		"**Refusal toolkit**\nRefusal tone: **firm_brief**.\nStock refusal lines: \"Nope!\", \"Not today\".\n\n" +
		"**Chattiness**\nBrevity slider: **3/10**.\nParagraph preference: **one_liners**."
	assert.True(t, strings.HasSuffix(prompt, want), "unexpected extensions block:\n%s", prompt[strings.Index(prompt, "### Persona Extensions"):])
	assert.Contains(t, prompt, "Favor single-line responses unless extra context is essential.")
	assert.Contains(t, prompt, "Refusal tone mandatorily follows **firm_brief** with empathy and clarity.")
}

func TestBuildSystemPrompt_TransparencyDefaults(t *testing.T) {
	cfg := persona.Default()
	cfg.Transparency = &persona.Transparency{Alignment: persona.AlignmentAlwaysBack}

	prompt := BuildSystemPrompt(cfg, PromptOptions{})
	assert.Contains(t, prompt, "**Transparency & IC alignment**\n"+
		"Fourth wall handling not specified; default to subtle immersion.\n"+
		"Alignment with streamer: **AlwaysBackStreamer**.\n"+
		"When unsure: favor candid clarification.")
	assert.Contains(t, prompt, "Loyalty stance: **AlwaysBackStreamer**; support the streamer first and keep disagreements playful.")
}

func TestBuildSystemPrompt_RatingTension(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*persona.Config)
		contains string
	}{
		{"succubus at G", func(c *persona.Config) {
			c.Template = persona.TemplateSuccubus
			c.Rating = persona.RatingG
		}, "escalate to at least PG-13 before adding flirtatious color."},
		{"PG", func(c *persona.Config) { c.Rating = persona.RatingPG }, "With ratings of G/PG, keep flirtiness at jokes or praise without romantic tension."},
		{"bold", func(c *persona.Config) { c.Flirtiness = persona.FlirtBold }, "Bold flirtiness should stay safe-for-stream"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := persona.Default()
			tt.mutate(cfg)
			assert.Contains(t, BuildSystemPrompt(cfg, PromptOptions{}), tt.contains)
		})
	}
}

func TestBuildSystemPrompt_DoesNotMutate(t *testing.T) {
	cfg := persona.Default()
	cfg.Mood = &persona.MoodSettings{DefaultMood: []persona.Mood{persona.MoodSunny}, WhenPraised: persona.ReactionSelfDeprecating}
	before := cfg.Clone()

	prompt := BuildSystemPrompt(cfg, PromptOptions{IncludeFewShots: true})
	_ = BuildCheatsheet(cfg)
	_ = BuildPreviewReplies(cfg)

	if diff := cmp.Diff(before, cfg); diff != "" {
		t.Errorf("config mutated (-before +after):\n%s", diff)
	}
	assert.Contains(t, prompt, "Default mood anchors: **sunny**. When praised, respond in a **self deprecating** manner.")
}
