package builder

import (
	"fmt"
	"strings"

	"github.com/daikw/streampersona/internal/persona"
)

// when formats the line only if the optional value is set
func when[T comparable](v T, format string, args ...any) string {
	var zero T
	if v == zero {
		return ""
	}
	return fmt.Sprintf(format, args...)
}

func whenAny(items []string, format string, render func([]string) string) string {
	if len(items) == 0 {
		return ""
	}
	return fmt.Sprintf(format, render(items))
}

func commaJoin(items []string) string { return strings.Join(items, ", ") }

func quotedJoin(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = `"` + item + `"`
	}
	return strings.Join(quoted, ", ")
}

// describeExtensions renders one block per present extension object. Mood
// and calibration are covered by the persona core and few-shot sections.
func describeExtensions(cfg *persona.Config) string {
	var blocks []string

	if t := cfg.Transparency; t != nil {
		blocks = append(blocks, strings.Join([]string{
			"**Transparency & IC alignment**",
			pick(t.FourthWall, fmt.Sprintf("Fourth wall handling: **%s**.", t.FourthWall),
				"Fourth wall handling not specified; default to subtle immersion."),
			pick(t.Alignment, fmt.Sprintf("Alignment with streamer: **%s**.", t.Alignment),
				"Alignment with streamer not specified; default to supportive ally."),
			pick(t.WhenUnsure, fmt.Sprintf("When unsure: **%s**.", t.WhenUnsure),
				"When unsure: favor candid clarification."),
		}, "\n"))
	}
	if in := cfg.Influences; in != nil {
		blocks = append(blocks, joinNonEmpty([]string{
			"**Influences**",
			whenAny(in.Emulate, "Channel the energy of: %s.", commaJoin),
			whenAny(in.Avoid, "Steer clear of sounding like: %s.", commaJoin),
		}, "\n"))
	}
	if s := cfg.Style; s != nil {
		blocks = append(blocks, joinNonEmpty([]string{
			"**Style levers**",
			when(s.Locale, "Locale preference: **%s**.", s.Locale),
			when(s.Casing, "Preferred casing: **%s**.", s.Casing),
			when(s.AsteriskActions, "Asterisk action narration: **%s**.", s.AsteriskActions),
			when(s.Laugh, "Customize laughter with: %s.", s.Laugh),
			when(s.Emotes, "Emote style: **%s**.", s.Emotes),
			when(s.Onomatopoeia, "Onomatopoeia usage: **%s**.", s.Onomatopoeia),
			when(s.Kaomoji, "Kaomoji usage: **%s**.", s.Kaomoji),
		}, "\n"))
	}
	if p := cfg.Preferences; p != nil {
		blocks = append(blocks, joinNonEmpty([]string{
			"**Preferences**",
			whenAny(p.Favorites, "Favorites: %s.", commaJoin),
			whenAny(p.Yucks, "Avoid disgust triggers: %s.", commaJoin),
			whenAny(p.Metaphors, "Preferred metaphor pool: %s.", commaJoin),
		}, "\n"))
	}
	if r := cfg.Refusals; r != nil {
		blocks = append(blocks, joinNonEmpty([]string{
			"**Refusal toolkit**",
			when(r.Style, "Refusal tone: **%s**.", r.Style),
			whenAny(r.StockLines, "Stock refusal lines: %s.", quotedJoin),
			whenAny(r.Redirects, "Suggested redirections: %s.", quotedJoin),
		}, "\n"))
	}
	if ch := cfg.Chattiness; ch != nil {
		brevity := ""
		if ch.Brevity != nil {
			brevity = fmt.Sprintf("Brevity slider: **%d/10**.", *ch.Brevity)
		}
		blocks = append(blocks, joinNonEmpty([]string{
			"**Chattiness**",
			brevity,
			when(ch.Exclamations, "Exclamation usage: **%s**.", ch.Exclamations),
			when(ch.ParagraphStyle, "Paragraph preference: **%s**.", ch.ParagraphStyle),
		}, "\n"))
	}
	if im := cfg.Improv; im != nil {
		blocks = append(blocks, joinNonEmpty([]string{
			"**Improv boundaries**",
			when(im.Mode, "Improvisation mode: **%s**.", im.Mode),
			when(im.Labeling, "Labeling of improv bits: **%s**.", im.Labeling),
			when(im.WhenCorrected, "When corrected by streamer/viewer: **%s**.", im.WhenCorrected),
		}, "\n"))
	}
	if a := cfg.Adaptability; a != nil {
		blocks = append(blocks, joinNonEmpty([]string{
			"**Adaptability scope**",
			when(a.Level, "Adaptability level: **%s**.", a.Level),
			when(a.ToneAuthority, "Tone authority balance: **%s**.", a.ToneAuthority),
			when(a.AllowedShifts, "Allowed tonal shifts: **%s**.", a.AllowedShifts),
		}, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}
