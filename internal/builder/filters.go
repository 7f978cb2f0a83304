package builder

import (
	"regexp"
	"strings"

	"github.com/daikw/streampersona/internal/persona"
)

var apostrophes = strings.NewReplacer("’", "'", "‘", "'")

type rewrite struct {
	re   *regexp.Regexp
	with string
}

func applyRewrites(text string, rules []rewrite) string {
	for _, r := range rules {
		text = r.re.ReplaceAllString(text, r.with)
	}
	return text
}

var (
	expandRules = []rewrite{
		{regexp.MustCompile(`\bI'm\b`), "I am"},
		{regexp.MustCompile(`\byou're\b`), "you are"},
		{regexp.MustCompile(`\blet's\b`), "let us"},
		{regexp.MustCompile(`\bchat\b`), "conversation"},
	}
	contractRules = []rewrite{
		{regexp.MustCompile(`\bdo not\b`), "don't"},
		{regexp.MustCompile(`\bI am\b`), "I'm"},
		{regexp.MustCompile(`\bit is\b`), "it's"},
		{regexp.MustCompile(`\byou are\b`), "you're"},
	}
	calmRules = []rewrite{
		{regexp.MustCompile(`!`), "."},
		{regexp.MustCompile(`\b[Ee]xcited\b`), "glad"},
	}
	pg13Rules = []rewrite{
		{regexp.MustCompile(`(?i)\b(damn|heck)\b`), "dang"},
	}
	familyRules = []rewrite{
		{regexp.MustCompile(`(?i)\b(damn|heck|hecking|freaking|frick)\b`), "wow"},
		{regexp.MustCompile(`(?i)\b(badass|sassy)\b`), "bold"},
	}
)

// applyFormality expands contractions at 7 and above and contracts at 3 and
// below. Curly apostrophes are straightened first so one rule set covers both.
func applyFormality(text string, formality int) string {
	text = apostrophes.Replace(text)
	switch {
	case formality >= 7:
		return applyRewrites(text, expandRules)
	case formality <= 3:
		return applyRewrites(text, contractRules)
	default:
		return text
	}
}

func applyEnergy(text string, energy int) string {
	switch {
	case energy >= 8:
		if !strings.HasSuffix(text, "!") {
			text += "!"
		}
		return text
	case energy <= 3:
		return applyRewrites(text, calmRules)
	default:
		return text
	}
}

func sanitizeForRating(text string, rating persona.Rating) string {
	switch rating {
	case persona.RatingM:
		return text
	case persona.RatingPG13:
		return applyRewrites(text, pg13Rules)
	default:
		return applyRewrites(text, familyRules)
	}
}

func applyPersonaFilters(text string, cfg *persona.Config) string {
	text = applyFormality(text, cfg.Voice.Formality)
	text = applyEnergy(text, cfg.Voice.Energy)
	return sanitizeForRating(text, cfg.Rating)
}
