package persona

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if err := Validate(cfg); err != nil {
		t.Fatalf("Default config should validate, got %v", err)
	}
	if cfg.Template != TemplateChillSidekick {
		t.Errorf("Expected template %q, got %q", TemplateChillSidekick, cfg.Template)
	}
	if cfg.Voice.Energy != 6 || cfg.Voice.Formality != 3 {
		t.Errorf("Unexpected sliders: energy=%d formality=%d", cfg.Voice.Energy, cfg.Voice.Formality)
	}
	if len(cfg.RedLines) != 4 {
		t.Errorf("Expected all four red lines, got %v", cfg.RedLines)
	}
	if cfg.Identity.LoreOneLiner != "upbeat AI companion for STREAMER_NAME" {
		t.Errorf("Unexpected lore: %q", cfg.Identity.LoreOneLiner)
	}
	if cfg.Voice.WordsToAvoid == nil || cfg.Identity.Catchphrases == nil || cfg.Personalization.CustomEmotes == nil {
		t.Error("Required lists must be non-nil")
	}
}

func TestDefault_RoundTrip(t *testing.T) {
	cfg := Default()
	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatal(err)
	}

	parsed, err := ParseJSON(data)
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}
	if diff := cmp.Diff(cfg, parsed); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestClone(t *testing.T) {
	brevity := 4
	cfg := Default()
	cfg.Calibration = &Calibration{GoodExamples: []string{"hi chat"}}
	cfg.Chattiness = &Chattiness{Brevity: &brevity, Exclamations: ExclamationsLots}
	cfg.Mood = &MoodSettings{DefaultMood: []Mood{MoodSunny}}

	clone := cfg.Clone()
	if diff := cmp.Diff(cfg, clone); diff != "" {
		t.Fatalf("clone differs (-want +got):\n%s", diff)
	}

	clone.Values[0] = ValueStoic
	clone.Calibration.GoodExamples[0] = "changed"
	*clone.Chattiness.Brevity = 9
	clone.Mood.DefaultMood[0] = MoodGremlin
	clone.Voice.Humor = append(clone.Voice.Humor, HumorChaotic)

	if cfg.Values[0] != ValueEmpathetic {
		t.Error("Clone shares values slice")
	}
	if cfg.Calibration.GoodExamples[0] != "hi chat" {
		t.Error("Clone shares calibration slice")
	}
	if *cfg.Chattiness.Brevity != 4 {
		t.Error("Clone shares brevity pointer")
	}
	if cfg.Mood.DefaultMood[0] != MoodSunny {
		t.Error("Clone shares mood slice")
	}
	if len(cfg.Voice.Humor) != 2 {
		t.Error("Clone shares humor slice")
	}
}

func TestClone_Nil(t *testing.T) {
	var cfg *Config
	if cfg.Clone() != nil {
		t.Error("Clone of nil should be nil")
	}
}
