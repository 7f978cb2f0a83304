package persona

import (
	"fmt"
	"strings"
)

// IssueKind classifies a validation failure
type IssueKind string

const (
	IssueInvalidType IssueKind = "invalid_type"
	IssueInvalidEnum IssueKind = "invalid_enum"
	IssueTooFew      IssueKind = "too_few"
	IssueTooMany     IssueKind = "too_many"
	IssueOutOfRange  IssueKind = "out_of_range"
	IssueNotInteger  IssueKind = "not_integer"
	IssueDuplicate   IssueKind = "duplicate"
)

// Issue is a single offending path, e.g. "voice.energy" or "values[2]"
type Issue struct {
	Path    string    `json:"path"`
	Kind    IssueKind `json:"kind"`
	Message string    `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Path, i.Message)
}

// ValidationError lists every problem found in a persona document
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.String()
	}
	return "invalid persona config: " + strings.Join(parts, "; ")
}

// Has reports whether any issue of the given kind was recorded for path
func (e *ValidationError) Has(path string, kind IssueKind) bool {
	for _, issue := range e.Issues {
		if issue.Path == path && issue.Kind == kind {
			return true
		}
	}
	return false
}

// Validate checks an already typed config against the schema rules
func Validate(c *Config) error {
	if c == nil {
		return &ValidationError{Issues: []Issue{{Kind: IssueInvalidType, Message: "config is nil"}}}
	}
	if issues := validate(c); len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

type checker struct {
	issues []Issue
}

func (v *checker) add(path string, kind IssueKind, format string, args ...any) {
	v.issues = append(v.issues, Issue{Path: path, Kind: kind, Message: fmt.Sprintf(format, args...)})
}

func checkEnum[T ~string](v *checker, path string, val T, set []T) {
	if !oneOf(val, set) {
		v.add(path, IssueInvalidEnum, "%q is not one of %s", string(val), strings.Join(names(set), ", "))
	}
}

// checkOptionalEnum accepts the zero value as "unset"
func checkOptionalEnum[T ~string](v *checker, path string, val T, set []T) {
	if val != "" {
		checkEnum(v, path, val, set)
	}
}

func checkEnumList[T ~string](v *checker, path string, vals []T, set []T) {
	for i, val := range vals {
		checkEnum(v, fmt.Sprintf("%s[%d]", path, i), val, set)
	}
}

func (v *checker) slider(path string, n int) {
	if n < SliderMin || n > SliderMax {
		v.add(path, IssueOutOfRange, "%d is outside %d..%d", n, SliderMin, SliderMax)
	}
}

func (v *checker) maxLen(path string, n, limit int) {
	if n > limit {
		v.add(path, IssueTooMany, "has %d items, at most %d allowed", n, limit)
	}
}

func validate(c *Config) []Issue {
	v := &checker{}

	checkEnum(v, "template", c.Template, templates)
	checkEnum(v, "rating", c.Rating, ratings)
	checkEnum(v, "flirtiness", c.Flirtiness, flirtLevels)
	checkEnum(v, "roasting", c.Roasting, roastLevels)
	checkEnum(v, "sensitive_topics", c.SensitiveTopics, topicPolicies)
	checkEnum(v, "emoji_intensity", c.EmojiIntensity, emojiLevels)

	v.slider("voice.energy", c.Voice.Energy)
	v.slider("voice.formality", c.Voice.Formality)
	checkEnumList(v, "voice.humor", c.Voice.Humor, humorTones)
	checkEnum(v, "voice.pacing", c.Voice.Pacing, pacings)
	checkEnum(v, "voice.emoji_density", c.Voice.EmojiDensity, emojiLevels)

	switch n := len(c.Values); {
	case n < MinValues:
		v.add("values", IssueTooFew, "has %d items, at least %d required", n, MinValues)
	case n > MaxValues:
		v.add("values", IssueTooMany, "has %d items, at most %d allowed", n, MaxValues)
	}
	checkEnumList(v, "values", c.Values, coreValues)
	seen := make(map[Value]bool, len(c.Values))
	for i, val := range c.Values {
		if seen[val] {
			v.add(fmt.Sprintf("values[%d]", i), IssueDuplicate, "%q is listed more than once", string(val))
		}
		seen[val] = true
	}
	checkEnumList(v, "red_lines", c.RedLines, redLines)

	if t := c.Transparency; t != nil {
		checkOptionalEnum(v, "transparency.fourth_wall", t.FourthWall, fourthWalls)
		checkOptionalEnum(v, "transparency.alignment", t.Alignment, alignments)
		checkOptionalEnum(v, "transparency.when_unsure", t.WhenUnsure, whenUnsures)
	}
	if i := c.Influences; i != nil {
		v.maxLen("influences.emulate", len(i.Emulate), MaxEmulate)
		v.maxLen("influences.avoid", len(i.Avoid), MaxAvoid)
	}
	if cal := c.Calibration; cal != nil {
		v.maxLen("calibration.good_examples", len(cal.GoodExamples), MaxGoodExamples)
		v.maxLen("calibration.bad_examples", len(cal.BadExamples), MaxBadExamples)
	}
	if s := c.Style; s != nil {
		checkOptionalEnum(v, "style.locale", s.Locale, locales)
		checkOptionalEnum(v, "style.casing", s.Casing, casings)
		checkOptionalEnum(v, "style.asterisk_actions", s.AsteriskActions, asterisks)
		checkOptionalEnum(v, "style.emotes", s.Emotes, emoteStyles)
		checkOptionalEnum(v, "style.onomatopoeia", s.Onomatopoeia, onomatopoeias)
		checkOptionalEnum(v, "style.kaomoji", s.Kaomoji, kaomojis)
	}
	if m := c.Mood; m != nil {
		v.maxLen("mood.default_mood", len(m.DefaultMood), MaxDefaultMood)
		checkEnumList(v, "mood.default_mood", m.DefaultMood, moods)
		checkOptionalEnum(v, "mood.range", m.Range, moodRanges)
		checkOptionalEnum(v, "mood.when_praised", m.WhenPraised, reactions)
		checkOptionalEnum(v, "mood.when_criticized", m.WhenCriticized, reactions)
	}
	if r := c.Refusals; r != nil {
		checkOptionalEnum(v, "refusals.style", r.Style, refusalStyles)
		v.maxLen("refusals.stock_lines", len(r.StockLines), MaxStockLines)
		v.maxLen("refusals.redirects", len(r.Redirects), MaxRedirects)
	}
	if ch := c.Chattiness; ch != nil {
		if ch.Brevity != nil {
			v.slider("chattiness.brevity", *ch.Brevity)
		}
		checkOptionalEnum(v, "chattiness.exclamations", ch.Exclamations, exclamations)
		checkOptionalEnum(v, "chattiness.paragraph_style", ch.ParagraphStyle, paragraphs)
	}
	if im := c.Improv; im != nil {
		checkOptionalEnum(v, "improv.mode", im.Mode, improvModes)
		checkOptionalEnum(v, "improv.labeling", im.Labeling, improvLabels)
		checkOptionalEnum(v, "improv.when_corrected", im.WhenCorrected, corrections)
	}
	if a := c.Adaptability; a != nil {
		checkOptionalEnum(v, "adaptability.level", a.Level, adaptLevels)
		checkOptionalEnum(v, "adaptability.tone_authority", a.ToneAuthority, authorities)
		checkOptionalEnum(v, "adaptability.allowed_shifts", a.AllowedShifts, shifts)
	}
	return v.issues
}
