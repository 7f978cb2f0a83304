package persona

import (
	"encoding/json"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// ParseJSON decodes a JSON persona document and parses it
func ParseJSON(data []byte) (*Config, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode persona JSON: %w", err)
	}
	return Parse(doc)
}

// ParseYAML decodes a YAML persona document and parses it
func ParseYAML(data []byte) (*Config, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode persona YAML: %w", err)
	}
	return Parse(doc)
}

// Parse turns a generic decoded document into a fully defaulted Config.
// Omitted or null fields take their defaults and unknown keys are ignored.
// Any type, enum, range or length problem yields a *ValidationError that
// lists every offending path.
func Parse(input any) (*Config, error) {
	d := &decoder{}
	root, _ := d.object(input, "")
	if root == nil {
		root = map[string]any{}
	}
	def := Default()

	cfg := &Config{
		Template:        decodeEnum(d, root, "", "template", def.Template),
		Rating:          decodeEnum(d, root, "", "rating", def.Rating),
		Flirtiness:      decodeEnum(d, root, "", "flirtiness", def.Flirtiness),
		Roasting:        decodeEnum(d, root, "", "roasting", def.Roasting),
		SensitiveTopics: decodeEnum(d, root, "", "sensitive_topics", def.SensitiveTopics),
		EmojiIntensity:  decodeEnum(d, root, "", "emoji_intensity", def.EmojiIntensity),
		Values:          decodeList[Value](d, root, "", "values", def.Values),
		RedLines:        decodeList[RedLine](d, root, "", "red_lines", def.RedLines),
	}

	voice, _ := d.child(root, "", "voice")
	cfg.Voice = Voice{
		Energy:       d.integer(voice, "voice", "energy", def.Voice.Energy),
		Formality:    d.integer(voice, "voice", "formality", def.Voice.Formality),
		Humor:        decodeList[Humor](d, voice, "voice", "humor", def.Voice.Humor),
		Pacing:       decodeEnum(d, voice, "voice", "pacing", def.Voice.Pacing),
		EmojiDensity: decodeEnum(d, voice, "voice", "emoji_density", def.Voice.EmojiDensity),
		WordsToAvoid: decodeList[string](d, voice, "voice", "words_to_avoid", def.Voice.WordsToAvoid),
	}

	id, _ := d.child(root, "", "identity")
	cfg.Identity = Identity{
		Name:         d.str(id, "identity", "name", def.Identity.Name),
		Pronouns:     d.str(id, "identity", "pronouns", def.Identity.Pronouns),
		VibeAge:      d.str(id, "identity", "vibe_age", def.Identity.VibeAge),
		Species:      d.str(id, "identity", "species", def.Identity.Species),
		LoreOneLiner: d.str(id, "identity", "lore_one_liner", def.Identity.LoreOneLiner),
		Catchphrases: decodeList[string](d, id, "identity", "catchphrases", def.Identity.Catchphrases),
	}

	p, _ := d.child(root, "", "personalization")
	dp := def.Personalization
	cfg.Personalization = Personalization{
		StreamerName:      d.str(p, "personalization", "streamer_name", dp.StreamerName),
		StreamerPronouns:  d.str(p, "personalization", "streamer_pronouns", dp.StreamerPronouns),
		StreamerHandle:    d.str(p, "personalization", "streamer_handle", dp.StreamerHandle),
		CommunityNickname: d.str(p, "personalization", "community_nickname", dp.CommunityNickname),
		BotName:           d.str(p, "personalization", "bot_name", dp.BotName),
		BotPronouns:       d.str(p, "personalization", "bot_pronouns", dp.BotPronouns),
		CustomEmotes:      decodeList[string](d, p, "personalization", "custom_emotes", dp.CustomEmotes),
		WordsToAvoid:      decodeList[string](d, p, "personalization", "words_to_avoid", dp.WordsToAvoid),
	}

	d.extensions(root, cfg)

	issues := append(d.issues, validate(cfg)...)
	if len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}
	return cfg, nil
}

func (d *decoder) extensions(root map[string]any, cfg *Config) {
	if m, ok := d.child(root, "", "transparency"); ok {
		cfg.Transparency = &Transparency{
			FourthWall: decodeEnum[FourthWall](d, m, "transparency", "fourth_wall", ""),
			Alignment:  decodeEnum[Alignment](d, m, "transparency", "alignment", ""),
			WhenUnsure: decodeEnum[WhenUnsure](d, m, "transparency", "when_unsure", ""),
		}
	}
	if m, ok := d.child(root, "", "influences"); ok {
		cfg.Influences = &Influences{
			Emulate: decodeList[string](d, m, "influences", "emulate", nil),
			Avoid:   decodeList[string](d, m, "influences", "avoid", nil),
		}
	}
	if m, ok := d.child(root, "", "calibration"); ok {
		cfg.Calibration = &Calibration{
			GoodExamples: decodeList[string](d, m, "calibration", "good_examples", nil),
			BadExamples:  decodeList[string](d, m, "calibration", "bad_examples", nil),
		}
	}
	if m, ok := d.child(root, "", "style"); ok {
		cfg.Style = &Style{
			Locale:          decodeEnum[Locale](d, m, "style", "locale", ""),
			Casing:          decodeEnum[Casing](d, m, "style", "casing", ""),
			AsteriskActions: decodeEnum[AsteriskActions](d, m, "style", "asterisk_actions", ""),
			Laugh:           d.str(m, "style", "laugh", ""),
			Emotes:          decodeEnum[EmoteStyle](d, m, "style", "emotes", ""),
			Onomatopoeia:    decodeEnum[Onomatopoeia](d, m, "style", "onomatopoeia", ""),
			Kaomoji:         decodeEnum[Kaomoji](d, m, "style", "kaomoji", ""),
		}
	}
	if m, ok := d.child(root, "", "mood"); ok {
		cfg.Mood = &MoodSettings{
			DefaultMood:    decodeList[Mood](d, m, "mood", "default_mood", nil),
			Range:          decodeEnum[MoodRange](d, m, "mood", "range", ""),
			ReactionStyle:  d.str(m, "mood", "reaction_style", ""),
			WhenPraised:    decodeEnum[Reaction](d, m, "mood", "when_praised", ""),
			WhenCriticized: decodeEnum[Reaction](d, m, "mood", "when_criticized", ""),
		}
	}
	if m, ok := d.child(root, "", "preferences"); ok {
		cfg.Preferences = &Preferences{
			Favorites: decodeList[string](d, m, "preferences", "favorites", nil),
			Yucks:     decodeList[string](d, m, "preferences", "yucks", nil),
			Metaphors: decodeList[string](d, m, "preferences", "metaphors", nil),
		}
	}
	if m, ok := d.child(root, "", "refusals"); ok {
		cfg.Refusals = &Refusals{
			Style:      decodeEnum[RefusalStyle](d, m, "refusals", "style", ""),
			StockLines: decodeList[string](d, m, "refusals", "stock_lines", nil),
			Redirects:  decodeList[string](d, m, "refusals", "redirects", nil),
		}
	}
	if m, ok := d.child(root, "", "chattiness"); ok {
		cfg.Chattiness = &Chattiness{
			Brevity:        d.optionalInteger(m, "chattiness", "brevity"),
			Exclamations:   decodeEnum[Exclamations](d, m, "chattiness", "exclamations", ""),
			ParagraphStyle: decodeEnum[ParagraphStyle](d, m, "chattiness", "paragraph_style", ""),
		}
	}
	if m, ok := d.child(root, "", "improv"); ok {
		cfg.Improv = &Improv{
			Mode:          decodeEnum[ImprovMode](d, m, "improv", "mode", ""),
			Labeling:      decodeEnum[ImprovLabel](d, m, "improv", "labeling", ""),
			WhenCorrected: decodeEnum[WhenCorrected](d, m, "improv", "when_corrected", ""),
		}
	}
	if m, ok := d.child(root, "", "adaptability"); ok {
		cfg.Adaptability = &Adaptability{
			Level:         decodeEnum[AdaptLevel](d, m, "adaptability", "level", ""),
			ToneAuthority: decodeEnum[ToneAuthority](d, m, "adaptability", "tone_authority", ""),
			AllowedShifts: decodeEnum[AllowedShifts](d, m, "adaptability", "allowed_shifts", ""),
		}
	}
}

// decoder walks a generic document and records type problems. Semantic
// checks (enum membership, ranges, lengths) are left to validate so typed
// configs and decoded documents share one rule set.
type decoder struct {
	issues []Issue
}

func (d *decoder) fail(path string, kind IssueKind, msg string) {
	d.issues = append(d.issues, Issue{Path: path, Kind: kind, Message: msg})
}

func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

// object accepts both map shapes produced by encoding/json and yaml.v3
func (d *decoder) object(v any, path string) (map[string]any, bool) {
	switch m := v.(type) {
	case nil:
		return nil, false
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		d.fail(path, IssueInvalidType, "must be an object")
		return nil, false
	}
}

// child returns the nested object under key; ok is false when it is absent,
// null or of the wrong type
func (d *decoder) child(m map[string]any, parent, key string) (map[string]any, bool) {
	v, present := m[key]
	if !present {
		return nil, false
	}
	return d.object(v, joinPath(parent, key))
}

func (d *decoder) str(m map[string]any, parent, key, def string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return def
	}
	s, ok := v.(string)
	if !ok {
		d.fail(joinPath(parent, key), IssueInvalidType, "must be a string")
		return def
	}
	return s
}

func (d *decoder) integer(m map[string]any, parent, key string, def int) int {
	v, ok := m[key]
	if !ok || v == nil {
		return def
	}
	n, ok := d.toInt(v, joinPath(parent, key))
	if !ok {
		return def
	}
	return n
}

func (d *decoder) optionalInteger(m map[string]any, parent, key string) *int {
	v, ok := m[key]
	if !ok || v == nil {
		return nil
	}
	n, ok := d.toInt(v, joinPath(parent, key))
	if !ok {
		return nil
	}
	return &n
}

func (d *decoder) toInt(v any, path string) (int, bool) {
	var f float64
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		if n > math.MaxInt32 {
			return math.MaxInt32, true
		}
		return int(n), true
	case float64:
		f = n
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
		parsed, err := n.Float64()
		if err != nil {
			d.fail(path, IssueInvalidType, "must be a number")
			return 0, false
		}
		f = parsed
	default:
		d.fail(path, IssueInvalidType, "must be a number")
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		d.fail(path, IssueNotInteger, "must be a whole number")
		return 0, false
	}
	// Clamp far-out values so the range check still reports them.
	if f > math.MaxInt32 {
		f = math.MaxInt32
	} else if f < math.MinInt32 {
		f = math.MinInt32
	}
	return int(f), true
}

func decodeEnum[T ~string](d *decoder, m map[string]any, parent, key string, def T) T {
	v, ok := m[key]
	if !ok || v == nil {
		return def
	}
	s, ok := v.(string)
	if !ok {
		d.fail(joinPath(parent, key), IssueInvalidType, "must be a string")
		return def
	}
	return T(s)
}

// decodeList returns def for an absent key. Optional lists (def == nil)
// normalize an empty array to nil; required lists stay non-nil.
func decodeList[T ~string](d *decoder, m map[string]any, parent, key string, def []T) []T {
	path := joinPath(parent, key)
	v, ok := m[key]
	if !ok || v == nil {
		if def == nil {
			return nil
		}
		return cloneRequired(def)
	}
	items, ok := v.([]any)
	if !ok {
		d.fail(path, IssueInvalidType, "must be a list")
		if def == nil {
			return nil
		}
		return cloneRequired(def)
	}
	out := make([]T, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			d.fail(fmt.Sprintf("%s[%d]", path, i), IssueInvalidType, "must be a string")
			continue
		}
		out = append(out, T(s))
	}
	if len(out) == 0 && def == nil {
		return nil
	}
	return out
}
