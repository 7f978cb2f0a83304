package persona

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFields_UniquePathsAndValidChoices(t *testing.T) {
	seen := map[string]bool{}
	for _, f := range Fields() {
		assert.False(t, seen[f.Path], "duplicate path %s", f.Path)
		seen[f.Path] = true
		assert.NotEmpty(t, f.Label, f.Path)
		if f.Kind == KindChoice || f.Kind == KindMultiChoice {
			assert.NotEmpty(t, f.Choices, f.Path)
		}
	}
	assert.Len(t, QuickFields(), 28)
}

func TestFields_GetDefault(t *testing.T) {
	cfg := Default()
	tests := map[string]string{
		"template":                      "Chill Sidekick",
		"voice.energy":                  "6",
		"voice.humor":                   "Wholesome, Dry",
		"values":                        "empathetic, inclusive, playful, loyal_to_streamer",
		"identity.pronouns":             "they/them",
		"personalization.custom_emotes": "",
		"style.locale":                  "",
		"chattiness.brevity":            "",
	}
	for path, want := range tests {
		f, ok := LookupField(path)
		require.True(t, ok, path)
		assert.Equal(t, want, f.Get(cfg), path)
	}
}

func TestField_SetChoice(t *testing.T) {
	cfg := Default()
	f, _ := LookupField("rating")

	require.NoError(t, f.Set(cfg, "pg"))
	assert.Equal(t, RatingPG, cfg.Rating)

	err := f.Set(cfg, "R")
	require.Error(t, err)
	assert.Equal(t, RatingPG, cfg.Rating)

	assert.Error(t, f.Set(cfg, ""))
}

func TestField_SetSliderClamps(t *testing.T) {
	cfg := Default()
	f, _ := LookupField("voice.energy")

	require.NoError(t, f.Set(cfg, "42"))
	assert.Equal(t, 10, cfg.Voice.Energy)
	require.NoError(t, f.Set(cfg, "-3"))
	assert.Equal(t, 1, cfg.Voice.Energy)
	assert.Error(t, f.Set(cfg, "loud"))
}

func TestField_SetValues(t *testing.T) {
	cfg := Default()
	f, _ := LookupField("values")

	require.NoError(t, f.Set(cfg, "honest, curious, stoic"))
	assert.Equal(t, []Value{ValueHonest, ValueCurious, ValueStoic}, cfg.Values)

	for _, raw := range []string{"honest, curious", "honest, curious, stoic, humble, playful, inclusive", "honest, honest, curious", "honest, curious, brave"} {
		assert.Error(t, f.Set(cfg, raw), raw)
	}
	assert.Len(t, cfg.Values, 3)
	assert.NoError(t, Validate(cfg))
}

func TestField_OptionalExtension(t *testing.T) {
	cfg := Default()
	f, _ := LookupField("style.casing")

	// clearing an absent field must not create the extension object
	require.NoError(t, f.Set(cfg, ""))
	assert.Nil(t, cfg.Style)

	require.NoError(t, f.Set(cfg, "occasionalAllCaps"))
	require.NotNil(t, cfg.Style)
	assert.Equal(t, CasingOccasionalAllCaps, cfg.Style.Casing)

	require.NoError(t, f.Set(cfg, ""))
	assert.Equal(t, Casing(""), cfg.Style.Casing)
}

func TestField_CappedListRejected(t *testing.T) {
	cfg := Default()
	f, _ := LookupField("calibration.bad_examples")

	err := f.Set(cfg, "one, two, three")
	require.Error(t, err)
	assert.Nil(t, cfg.Calibration)

	require.NoError(t, f.Set(cfg, "one, two"))
	assert.Equal(t, []string{"one", "two"}, cfg.Calibration.BadExamples)
}

func TestField_Brevity(t *testing.T) {
	cfg := Default()
	f, _ := LookupField("chattiness.brevity")

	require.NoError(t, f.Set(cfg, "15"))
	require.NotNil(t, cfg.Chattiness)
	assert.Equal(t, 10, *cfg.Chattiness.Brevity)
	assert.Equal(t, "10", f.Get(cfg))

	require.NoError(t, f.Set(cfg, ""))
	assert.Nil(t, cfg.Chattiness.Brevity)
}

func TestField_RequiredListClears(t *testing.T) {
	cfg := Default()
	f, _ := LookupField("identity.catchphrases")

	require.NoError(t, f.Set(cfg, "let's go, cozy vibes"))
	assert.Equal(t, []string{"let's go", "cozy vibes"}, cfg.Identity.Catchphrases)

	require.NoError(t, f.Set(cfg, ""))
	assert.NotNil(t, cfg.Identity.Catchphrases)
	assert.Empty(t, cfg.Identity.Catchphrases)
}
