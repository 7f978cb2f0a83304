package persona

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// FieldKind tells a front end how to prompt for a field
type FieldKind int

const (
	KindChoice FieldKind = iota
	KindMultiChoice
	KindSlider
	KindText
	KindList
)

func (k FieldKind) String() string {
	switch k {
	case KindChoice:
		return "choice"
	case KindMultiChoice:
		return "multi"
	case KindSlider:
		return "slider"
	case KindText:
		return "text"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Field binds one questionnaire answer to its location in a Config.
// Set accepts the textual form a user types: a choice name, an integer,
// or a comma separated list. Sliders are clamped into 1..10, anything
// else that breaks a schema rule is rejected with a *ValidationError and
// the config is left untouched.
type Field struct {
	Path     string
	Label    string
	Kind     FieldKind
	Choices  []string
	Quick    bool
	Optional bool
	Max      int
	Get      func(c *Config) string
	Set      func(c *Config, raw string) error
}

func (f Field) quick() Field {
	f.Quick = true
	return f
}

func fieldError(path string, kind IssueKind, format string, args ...any) error {
	return &ValidationError{Issues: []Issue{{Path: path, Kind: kind, Message: fmt.Sprintf(format, args...)}}}
}

// ref locates a value inside a config. With alloc set, missing extension
// objects are created; otherwise nil is returned for them.
type ref[T any] func(c *Config, alloc bool) *T

func root(c *Config, _ bool) *Config { return c }

func holder[E any](ptr func(*Config) **E) ref[E] {
	return func(c *Config, alloc bool) *E {
		p := ptr(c)
		if *p == nil && alloc {
			*p = new(E)
		}
		return *p
	}
}

func in[E, T any](h ref[E], field func(*E) *T) ref[T] {
	return func(c *Config, alloc bool) *T {
		e := h(c, alloc)
		if e == nil {
			return nil
		}
		return field(e)
	}
}

var (
	top          = ref[Config](root)
	transparency = holder(func(c *Config) **Transparency { return &c.Transparency })
	influences   = holder(func(c *Config) **Influences { return &c.Influences })
	calibration  = holder(func(c *Config) **Calibration { return &c.Calibration })
	style        = holder(func(c *Config) **Style { return &c.Style })
	mood         = holder(func(c *Config) **MoodSettings { return &c.Mood })
	preferences  = holder(func(c *Config) **Preferences { return &c.Preferences })
	refusals     = holder(func(c *Config) **Refusals { return &c.Refusals })
	chattiness   = holder(func(c *Config) **Chattiness { return &c.Chattiness })
	improv       = holder(func(c *Config) **Improv { return &c.Improv })
	adaptability = holder(func(c *Config) **Adaptability { return &c.Adaptability })
)

func matchChoice[T ~string](raw string, set []T) (T, bool) {
	for _, v := range set {
		if strings.EqualFold(string(v), raw) {
			return v, true
		}
	}
	return "", false
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func choiceField[T ~string](path, label string, set []T, r ref[T], optional bool) Field {
	return Field{
		Path: path, Label: label, Kind: KindChoice, Choices: names(set), Optional: optional,
		Get: func(c *Config) string {
			if p := r(c, false); p != nil {
				return string(*p)
			}
			return ""
		},
		Set: func(c *Config, raw string) error {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				if !optional {
					return fieldError(path, IssueInvalidEnum, "a value is required")
				}
				if p := r(c, false); p != nil {
					*p = ""
				}
				return nil
			}
			v, ok := matchChoice(raw, set)
			if !ok {
				return fieldError(path, IssueInvalidEnum, "%q is not one of %s", raw, strings.Join(names(set), ", "))
			}
			*r(c, true) = v
			return nil
		},
	}
}

func multiField[T ~string](path, label string, set []T, r ref[[]T], minItems, maxItems int, optional bool) Field {
	return Field{
		Path: path, Label: label, Kind: KindMultiChoice, Choices: names(set), Optional: optional, Max: maxItems,
		Get: func(c *Config) string {
			if p := r(c, false); p != nil {
				return strings.Join(names(*p), ", ")
			}
			return ""
		},
		Set: func(c *Config, raw string) error {
			parts := splitList(raw)
			out := make([]T, 0, len(parts))
			for _, part := range parts {
				v, ok := matchChoice(part, set)
				if !ok {
					return fieldError(path, IssueInvalidEnum, "%q is not one of %s", part, strings.Join(names(set), ", "))
				}
				if slices.Contains(out, v) {
					return fieldError(path, IssueDuplicate, "%q is listed more than once", part)
				}
				out = append(out, v)
			}
			if len(out) < minItems {
				return fieldError(path, IssueTooFew, "has %d items, at least %d required", len(out), minItems)
			}
			if maxItems > 0 && len(out) > maxItems {
				return fieldError(path, IssueTooMany, "has %d items, at most %d allowed", len(out), maxItems)
			}
			if optional && len(out) == 0 {
				if p := r(c, false); p != nil {
					*p = nil
				}
				return nil
			}
			*r(c, true) = out
			return nil
		},
	}
}

func parseSlider(path, raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fieldError(path, IssueNotInteger, "%q is not a whole number", raw)
	}
	return min(max(n, SliderMin), SliderMax), nil
}

func sliderField(path, label string, r ref[int]) Field {
	return Field{
		Path: path, Label: label, Kind: KindSlider,
		Get: func(c *Config) string { return strconv.Itoa(*r(c, false)) },
		Set: func(c *Config, raw string) error {
			n, err := parseSlider(path, raw)
			if err != nil {
				return err
			}
			*r(c, true) = n
			return nil
		},
	}
}

func optionalSliderField(path, label string, r ref[*int]) Field {
	return Field{
		Path: path, Label: label, Kind: KindSlider, Optional: true,
		Get: func(c *Config) string {
			if p := r(c, false); p != nil && *p != nil {
				return strconv.Itoa(**p)
			}
			return ""
		},
		Set: func(c *Config, raw string) error {
			if strings.TrimSpace(raw) == "" {
				if p := r(c, false); p != nil {
					*p = nil
				}
				return nil
			}
			n, err := parseSlider(path, raw)
			if err != nil {
				return err
			}
			*r(c, true) = &n
			return nil
		},
	}
}

func textField(path, label string, r ref[string], optional bool) Field {
	return Field{
		Path: path, Label: label, Kind: KindText, Optional: optional,
		Get: func(c *Config) string {
			if p := r(c, false); p != nil {
				return *p
			}
			return ""
		},
		Set: func(c *Config, raw string) error {
			raw = strings.TrimSpace(raw)
			if raw == "" && optional {
				if p := r(c, false); p != nil {
					*p = ""
				}
				return nil
			}
			*r(c, true) = raw
			return nil
		},
	}
}

func listField(path, label string, r ref[[]string], maxItems int, optional bool) Field {
	return Field{
		Path: path, Label: label, Kind: KindList, Optional: optional, Max: maxItems,
		Get: func(c *Config) string {
			if p := r(c, false); p != nil {
				return strings.Join(*p, ", ")
			}
			return ""
		},
		Set: func(c *Config, raw string) error {
			items := splitList(raw)
			if maxItems > 0 && len(items) > maxItems {
				return fieldError(path, IssueTooMany, "has %d items, at most %d allowed", len(items), maxItems)
			}
			if len(items) == 0 {
				if optional {
					if p := r(c, false); p != nil {
						*p = nil
					}
					return nil
				}
				items = []string{}
			}
			*r(c, true) = items
			return nil
		},
	}
}

var fields = []Field{
	choiceField("template", "Template", templates, in(top, func(c *Config) *Template { return &c.Template }), false).quick(),
	choiceField("rating", "Rating", ratings, in(top, func(c *Config) *Rating { return &c.Rating }), false).quick(),
	choiceField("flirtiness", "Flirtiness", flirtLevels, in(top, func(c *Config) *Flirtiness { return &c.Flirtiness }), false).quick(),
	choiceField("roasting", "Roasting dial", roastLevels, in(top, func(c *Config) *Roasting { return &c.Roasting }), false).quick(),
	choiceField("sensitive_topics", "Sensitive topics", topicPolicies, in(top, func(c *Config) *SensitiveTopics { return &c.SensitiveTopics }), false).quick(),
	choiceField("emoji_intensity", "Emoji intensity", emojiLevels, in(top, func(c *Config) *EmojiLevel { return &c.EmojiIntensity }), false).quick(),

	sliderField("voice.energy", "Energy level", in(top, func(c *Config) *int { return &c.Voice.Energy })).quick(),
	sliderField("voice.formality", "Formality", in(top, func(c *Config) *int { return &c.Voice.Formality })).quick(),
	multiField("voice.humor", "Humor palette", humorTones, in(top, func(c *Config) *[]Humor { return &c.Voice.Humor }), 0, 0, false).quick(),
	choiceField("voice.pacing", "Pacing", pacings, in(top, func(c *Config) *Pacing { return &c.Voice.Pacing }), false).quick(),
	choiceField("voice.emoji_density", "Emoji density", emojiLevels, in(top, func(c *Config) *EmojiLevel { return &c.Voice.EmojiDensity }), false).quick(),
	listField("voice.words_to_avoid", "Words to avoid", in(top, func(c *Config) *[]string { return &c.Voice.WordsToAvoid }), 0, false).quick(),

	multiField("values", "Values", coreValues, in(top, func(c *Config) *[]Value { return &c.Values }), MinValues, MaxValues, false).quick(),
	multiField("red_lines", "Red lines", redLines, in(top, func(c *Config) *[]RedLine { return &c.RedLines }), 0, 0, false).quick(),

	textField("identity.name", "Bot name", in(top, func(c *Config) *string { return &c.Identity.Name }), false).quick(),
	textField("identity.pronouns", "Pronouns", in(top, func(c *Config) *string { return &c.Identity.Pronouns }), false).quick(),
	textField("identity.vibe_age", "Vibe age", in(top, func(c *Config) *string { return &c.Identity.VibeAge }), false).quick(),
	textField("identity.species", "Species / type", in(top, func(c *Config) *string { return &c.Identity.Species }), false).quick(),
	textField("identity.lore_one_liner", "Lore one-liner", in(top, func(c *Config) *string { return &c.Identity.LoreOneLiner }), false).quick(),
	listField("identity.catchphrases", "Catchphrases", in(top, func(c *Config) *[]string { return &c.Identity.Catchphrases }), 0, false).quick(),

	textField("personalization.streamer_name", "Streamer name", in(top, func(c *Config) *string { return &c.Personalization.StreamerName }), false).quick(),
	textField("personalization.streamer_pronouns", "Streamer pronouns", in(top, func(c *Config) *string { return &c.Personalization.StreamerPronouns }), false).quick(),
	textField("personalization.streamer_handle", "Streamer handle", in(top, func(c *Config) *string { return &c.Personalization.StreamerHandle }), false).quick(),
	textField("personalization.community_nickname", "Community nickname", in(top, func(c *Config) *string { return &c.Personalization.CommunityNickname }), false).quick(),
	textField("personalization.bot_name", "Bot name in chat", in(top, func(c *Config) *string { return &c.Personalization.BotName }), false).quick(),
	textField("personalization.bot_pronouns", "Bot pronouns", in(top, func(c *Config) *string { return &c.Personalization.BotPronouns }), false).quick(),
	listField("personalization.custom_emotes", "Custom emotes", in(top, func(c *Config) *[]string { return &c.Personalization.CustomEmotes }), 0, false).quick(),
	listField("personalization.words_to_avoid", "Words to avoid (personal)", in(top, func(c *Config) *[]string { return &c.Personalization.WordsToAvoid }), 0, false).quick(),

	choiceField("transparency.fourth_wall", "Fourth wall", fourthWalls, in(transparency, func(t *Transparency) *FourthWall { return &t.FourthWall }), true),
	choiceField("transparency.alignment", "Streamer alignment", alignments, in(transparency, func(t *Transparency) *Alignment { return &t.Alignment }), true),
	choiceField("transparency.when_unsure", "When unsure", whenUnsures, in(transparency, func(t *Transparency) *WhenUnsure { return &t.WhenUnsure }), true),

	listField("influences.emulate", "Voices to emulate", in(influences, func(i *Influences) *[]string { return &i.Emulate }), MaxEmulate, true),
	listField("influences.avoid", "Avoid sounding like", in(influences, func(i *Influences) *[]string { return &i.Avoid }), MaxAvoid, true),

	listField("calibration.good_examples", "Good examples", in(calibration, func(c *Calibration) *[]string { return &c.GoodExamples }), MaxGoodExamples, true),
	listField("calibration.bad_examples", "Anti-examples", in(calibration, func(c *Calibration) *[]string { return &c.BadExamples }), MaxBadExamples, true),

	choiceField("style.locale", "Locale", locales, in(style, func(s *Style) *Locale { return &s.Locale }), true),
	choiceField("style.casing", "Casing flair", casings, in(style, func(s *Style) *Casing { return &s.Casing }), true),
	choiceField("style.asterisk_actions", "Asterisk actions", asterisks, in(style, func(s *Style) *AsteriskActions { return &s.AsteriskActions }), true),
	textField("style.laugh", "Laugh signature", in(style, func(s *Style) *string { return &s.Laugh }), true),
	choiceField("style.emotes", "Emotes", emoteStyles, in(style, func(s *Style) *EmoteStyle { return &s.Emotes }), true),
	choiceField("style.onomatopoeia", "Onomatopoeia", onomatopoeias, in(style, func(s *Style) *Onomatopoeia { return &s.Onomatopoeia }), true),
	choiceField("style.kaomoji", "Kaomoji", kaomojis, in(style, func(s *Style) *Kaomoji { return &s.Kaomoji }), true),

	multiField("mood.default_mood", "Default moods", moods, in(mood, func(m *MoodSettings) *[]Mood { return &m.DefaultMood }), 0, MaxDefaultMood, true),
	choiceField("mood.range", "Mood range", moodRanges, in(mood, func(m *MoodSettings) *MoodRange { return &m.Range }), true),
	textField("mood.reaction_style", "Surprise reaction style", in(mood, func(m *MoodSettings) *string { return &m.ReactionStyle }), true),
	choiceField("mood.when_praised", "When praised", reactions, in(mood, func(m *MoodSettings) *Reaction { return &m.WhenPraised }), true),
	choiceField("mood.when_criticized", "When criticized", reactions, in(mood, func(m *MoodSettings) *Reaction { return &m.WhenCriticized }), true),

	listField("preferences.favorites", "Favorites", in(preferences, func(p *Preferences) *[]string { return &p.Favorites }), 0, true),
	listField("preferences.yucks", "Yucks", in(preferences, func(p *Preferences) *[]string { return &p.Yucks }), 0, true),
	listField("preferences.metaphors", "Metaphor vibes", in(preferences, func(p *Preferences) *[]string { return &p.Metaphors }), 0, true),

	choiceField("refusals.style", "Refusal style", refusalStyles, in(refusals, func(r *Refusals) *RefusalStyle { return &r.Style }), true),
	listField("refusals.stock_lines", "Stock lines", in(refusals, func(r *Refusals) *[]string { return &r.StockLines }), MaxStockLines, true),
	listField("refusals.redirects", "Redirect ideas", in(refusals, func(r *Refusals) *[]string { return &r.Redirects }), MaxRedirects, true),

	optionalSliderField("chattiness.brevity", "Brevity", in(chattiness, func(ch *Chattiness) **int { return &ch.Brevity })),
	choiceField("chattiness.exclamations", "Exclamations", exclamations, in(chattiness, func(ch *Chattiness) *Exclamations { return &ch.Exclamations }), true),
	choiceField("chattiness.paragraph_style", "Paragraph style", paragraphs, in(chattiness, func(ch *Chattiness) *ParagraphStyle { return &ch.ParagraphStyle }), true),

	choiceField("improv.mode", "Improv mode", improvModes, in(improv, func(i *Improv) *ImprovMode { return &i.Mode }), true),
	choiceField("improv.labeling", "Label improv?", improvLabels, in(improv, func(i *Improv) *ImprovLabel { return &i.Labeling }), true),
	choiceField("improv.when_corrected", "When corrected", corrections, in(improv, func(i *Improv) *WhenCorrected { return &i.WhenCorrected }), true),

	choiceField("adaptability.level", "Adaptability level", adaptLevels, in(adaptability, func(a *Adaptability) *AdaptLevel { return &a.Level }), true),
	choiceField("adaptability.tone_authority", "Tone authority", authorities, in(adaptability, func(a *Adaptability) *ToneAuthority { return &a.ToneAuthority }), true),
	choiceField("adaptability.allowed_shifts", "Allowed shifts", shifts, in(adaptability, func(a *Adaptability) *AllowedShifts { return &a.AllowedShifts }), true),
}

// Fields returns every answerable field in questionnaire order
func Fields() []Field {
	return slices.Clone(fields)
}

// QuickFields returns the quick-start subset of Fields
func QuickFields() []Field {
	var out []Field
	for _, f := range fields {
		if f.Quick {
			out = append(out, f)
		}
	}
	return out
}

// LookupField finds a field by its dotted path
func LookupField(path string) (Field, bool) {
	for _, f := range fields {
		if f.Path == path {
			return f, true
		}
	}
	return Field{}, false
}
