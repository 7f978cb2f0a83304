package persona

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validationIssues(t *testing.T, err error) *ValidationError {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
	return verr
}

func TestParse_EmptyDocumentUsesDefaults(t *testing.T) {
	for _, input := range []any{nil, map[string]any{}} {
		cfg, err := Parse(input)
		require.NoError(t, err)
		if diff := cmp.Diff(Default(), cfg); diff != "" {
			t.Errorf("defaults mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestParse_NullFieldsAreAbsent(t *testing.T) {
	cfg, err := ParseJSON([]byte(`{"rating": null, "voice": null, "style": null}`))
	require.NoError(t, err)
	assert.Equal(t, RatingPG13, cfg.Rating)
	assert.Equal(t, 6, cfg.Voice.Energy)
	assert.Nil(t, cfg.Style)
}

func TestParse_PartialVoiceKeepsOtherDefaults(t *testing.T) {
	cfg, err := ParseJSON([]byte(`{"voice": {"energy": 9}}`))
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Voice.Energy)
	assert.Equal(t, 3, cfg.Voice.Formality)
	assert.Equal(t, []Humor{HumorWholesome, HumorDry}, cfg.Voice.Humor)
	assert.Equal(t, PacingBalanced, cfg.Voice.Pacing)
}

func TestParse_ValuesLength(t *testing.T) {
	all := []string{"empathetic", "inclusive", "playful", "honest", "curious", "humble"}
	tests := []struct {
		count int
		kind  IssueKind
	}{
		{2, IssueTooFew},
		{3, ""},
		{4, ""},
		{5, ""},
		{6, IssueTooMany},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d values", tt.count), func(t *testing.T) {
			values := make([]any, tt.count)
			for i := range values {
				values[i] = all[i]
			}
			cfg, err := Parse(map[string]any{"values": values})
			if tt.kind == "" {
				require.NoError(t, err)
				assert.Len(t, cfg.Values, tt.count)
				return
			}
			assert.Nil(t, cfg)
			assert.True(t, validationIssues(t, err).Has("values", tt.kind))
		})
	}
}

func TestParse_DuplicateValues(t *testing.T) {
	_, err := ParseJSON([]byte(`{"values": ["honest", "curious", "honest"]}`))
	assert.True(t, validationIssues(t, err).Has("values[2]", IssueDuplicate))
}

func TestParse_SliderBounds(t *testing.T) {
	tests := []struct {
		name  string
		value any
		kind  IssueKind
	}{
		{"zero", 0.0, IssueOutOfRange},
		{"one", 1.0, ""},
		{"ten", 10.0, ""},
		{"eleven", 11.0, IssueOutOfRange},
		{"fraction", 5.5, IssueNotInteger},
		{"yaml int", 7, ""},
		{"string", "7", IssueInvalidType},
		{"json number", json.Number("4"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, path := range []string{"energy", "formality"} {
				_, err := Parse(map[string]any{"voice": map[string]any{path: tt.value}})
				if tt.kind == "" {
					assert.NoError(t, err)
					continue
				}
				assert.True(t, validationIssues(t, err).Has("voice."+path, tt.kind), "path %s", path)
			}
		})
	}
}

func TestParse_Brevity(t *testing.T) {
	cfg, err := ParseJSON([]byte(`{"chattiness": {"brevity": 2}}`))
	require.NoError(t, err)
	require.NotNil(t, cfg.Chattiness.Brevity)
	assert.Equal(t, 2, *cfg.Chattiness.Brevity)

	_, err = ParseJSON([]byte(`{"chattiness": {"brevity": 0}}`))
	assert.True(t, validationIssues(t, err).Has("chattiness.brevity", IssueOutOfRange))
}

func TestParse_InvalidEnums(t *testing.T) {
	doc := `{
		"template": "Pirate",
		"rating": "R",
		"voice": {"humor": ["Dry", "Slapstick"]},
		"style": {"casing": "SHOUTY"},
		"red_lines": ["be_nice"]
	}`
	_, err := ParseJSON([]byte(doc))
	verr := validationIssues(t, err)

	for _, path := range []string{"template", "rating", "voice.humor[1]", "style.casing", "red_lines[0]"} {
		assert.True(t, verr.Has(path, IssueInvalidEnum), "missing issue for %s", path)
	}
	assert.Len(t, verr.Issues, 5)
}

func TestParse_CappedLists(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		path string
	}{
		{"emulate", `{"influences": {"emulate": ["a", "b", "c", "d"]}}`, "influences.emulate"},
		{"avoid", `{"influences": {"avoid": ["a", "b", "c"]}}`, "influences.avoid"},
		{"good examples", `{"calibration": {"good_examples": ["1", "2", "3", "4", "5"]}}`, "calibration.good_examples"},
		{"bad examples", `{"calibration": {"bad_examples": ["1", "2", "3"]}}`, "calibration.bad_examples"},
		{"default mood", `{"mood": {"default_mood": ["sunny", "chill", "dry"]}}`, "mood.default_mood"},
		{"stock lines", `{"refusals": {"stock_lines": ["1", "2", "3", "4"]}}`, "refusals.stock_lines"},
		{"redirects", `{"refusals": {"redirects": ["1", "2", "3", "4", "5", "6"]}}`, "refusals.redirects"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSON([]byte(tt.doc))
			assert.True(t, validationIssues(t, err).Has(tt.path, IssueTooMany))
		})
	}
}

func TestParse_TypeErrors(t *testing.T) {
	_, err := Parse(map[string]any{
		"voice":    "loud",
		"identity": map[string]any{"name": 42.0, "catchphrases": []any{"ok", true}},
		"values":   "honest",
	})
	verr := validationIssues(t, err)
	assert.True(t, verr.Has("voice", IssueInvalidType))
	assert.True(t, verr.Has("identity.name", IssueInvalidType))
	assert.True(t, verr.Has("identity.catchphrases[1]", IssueInvalidType))
	assert.True(t, verr.Has("values", IssueInvalidType))
}

func TestParse_UnknownKeysIgnored(t *testing.T) {
	cfg, err := ParseJSON([]byte(`{"mystery": true, "voice": {"volume": 11}}`))
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Voice.Energy)
}

func TestParse_EmptyOptionalListsNormalize(t *testing.T) {
	cfg, err := ParseJSON([]byte(`{"calibration": {"good_examples": []}, "identity": {"catchphrases": []}}`))
	require.NoError(t, err)
	require.NotNil(t, cfg.Calibration)
	assert.Nil(t, cfg.Calibration.GoodExamples)
	assert.NotNil(t, cfg.Identity.Catchphrases)
}

func TestParseJSON_Malformed(t *testing.T) {
	_, err := ParseJSON([]byte(`{"template": `))
	require.Error(t, err)
	var verr *ValidationError
	assert.False(t, errors.As(err, &verr))
}

func TestParseYAML(t *testing.T) {
	doc := `
template: Butler
rating: PG
voice:
  energy: 3
  formality: 9
values: [honest, humble, stoic]
style:
  locale: UK
`
	cfg, err := ParseYAML([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, TemplateButler, cfg.Template)
	assert.Equal(t, RatingPG, cfg.Rating)
	assert.Equal(t, 3, cfg.Voice.Energy)
	assert.Equal(t, 9, cfg.Voice.Formality)
	assert.Equal(t, []Value{ValueHonest, ValueHumble, ValueStoic}, cfg.Values)
	require.NotNil(t, cfg.Style)
	assert.Equal(t, LocaleUK, cfg.Style.Locale)
}

func TestRoundTrip_WithExtensions(t *testing.T) {
	brevity := 7
	cfg := Default()
	cfg.Template = TemplateSuccubus
	cfg.Transparency = &Transparency{FourthWall: FourthWallMostlyIC}
	cfg.Calibration = &Calibration{GoodExamples: []string{"hey chat"}, BadExamples: []string{"no"}}
	cfg.Chattiness = &Chattiness{Brevity: &brevity}
	cfg.Improv = &Improv{}

	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	parsed, err := ParseJSON(data)
	require.NoError(t, err)
	if diff := cmp.Diff(cfg, parsed); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_TypedConfig(t *testing.T) {
	cfg := Default()
	cfg.Voice.Energy = 0
	cfg.Values = cfg.Values[:2]
	cfg.Rating = "X"

	verr := validationIssues(t, Validate(cfg))
	assert.True(t, verr.Has("voice.energy", IssueOutOfRange))
	assert.True(t, verr.Has("values", IssueTooFew))
	assert.True(t, verr.Has("rating", IssueInvalidEnum))
	assert.Contains(t, verr.Error(), "invalid persona config")
}
