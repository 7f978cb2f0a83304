package builder

import (
	"fmt"
	"strings"

	"github.com/daikw/streampersona/internal/persona"
)

var templateTraits = map[persona.Template][2]string{
	persona.TemplateChillSidekick:   {"steady", "encouraging"},
	persona.TemplateHypeMC:          {"boisterous", "celebratory"},
	persona.TemplateCozyCaretaker:   {"soothing", "nurturing"},
	persona.TemplateGremlinGoblin:   {"chaotic", "mischievous"},
	persona.TemplateWiseMentor:      {"grounded", "insightful"},
	persona.TemplateDeadpan:         {"dry", "wry"},
	persona.TemplateCuteMascot:      {"adorable", "sparkly"},
	persona.TemplateBrandAmbassador: {"polished", "concise"},
	persona.TemplateButler:          {"dapper", "attentive"},
	persona.TemplateSuccubus:        {"flirty", "playful"},
}

var refusalExamples = map[persona.RefusalStyle]string{
	persona.RefusalWarmApologetic: "Ah shoot, I can’t dive into that—but how about we celebrate the next chat win instead?",
	persona.RefusalPlayfulDeflect: "Nice try, sneaky bean! That one’s off-limits, but I’ve got a wholesome alternative ready.",
	persona.RefusalFirmBrief:      "Gonna tap the brakes there—let’s pivot to something stream-safe.",
}

func doList(cfg *persona.Config) []string {
	values := cfg.Values
	if len(values) > 4 {
		values = values[:4]
	}
	return []string{
		fmt.Sprintf("Cheerlead viewers using the **%s** vibe.", cfg.Template),
		fmt.Sprintf("Mirror chat energy at %d/10 with %s emoji sprinkles.", cfg.Voice.Energy, strings.ToLower(string(cfg.Voice.EmojiDensity))),
		fmt.Sprintf("Weave in values: %s.", valuesSentence(values)),
		fmt.Sprintf("Reference personalization like %s & %s.", cfg.Personalization.StreamerHandle, cfg.Personalization.CommunityNickname),
		fmt.Sprintf("Keep rating at %s while flirting stays **%s**.", cfg.Rating, strings.ToLower(string(cfg.Flirtiness))),
	}
}

func dontList(cfg *persona.Config) []string {
	lines := make([]string, len(cfg.RedLines))
	for i, line := range cfg.RedLines {
		lines[i] = underscoresToSpaces(line)
	}
	roast := fmt.Sprintf("Go beyond %s roasting.", strings.ToLower(string(cfg.Roasting)))
	if cfg.Roasting == persona.RoastOff {
		roast = "Go beyond off roasting (roasts are disabled)."
	}
	overuse := "Overuse catchphrases."
	if n := len(cfg.Identity.Catchphrases); n > 0 {
		overuse = fmt.Sprintf("Overuse catchphrases (you have %d).", n)
	}
	return []string{
		fmt.Sprintf("Break red lines: %s.", strings.Join(lines, ", ")),
		roast,
		"Drop real PII or break safety guardrails.",
		overuse,
		fmt.Sprintf("Change persona without %s's direction.", cfg.Personalization.StreamerName),
	}
}

func catchphraseLines(phrases []string) string {
	if len(phrases) == 0 {
		return "- Improvise cozy one-liners as needed."
	}
	lines := make([]string, len(phrases))
	for i, p := range phrases {
		lines[i] = "- “" + p + "”"
	}
	return strings.Join(lines, "\n")
}

func refusalLine(cfg *persona.Config) string {
	if cfg.Refusals != nil {
		if line, ok := refusalExamples[cfg.Refusals.Style]; ok {
			return line
		}
	}
	return refusalExamples[persona.RefusalWarmApologetic]
}

func stayInCharacter(cfg *persona.Config) string {
	var fourthWall persona.FourthWall
	if cfg.Transparency != nil {
		fourthWall = cfg.Transparency.FourthWall
	}
	switch fourthWall {
	case persona.FourthWallFreelyAcknowledgeAI:
		return "Be candid about being an AI assistant while keeping tone aligned with the persona."
	case persona.FourthWallClarifySensitive:
		return "Stay in-character unless a topic is sensitive—then clarify gently as an AI companion."
	case persona.FourthWallAlwaysIC:
		return "Remain fully in-character unless safety is at risk."
	default:
		return "Stay in-character by default; gently mention you’re AI only when it builds trust."
	}
}

// BuildCheatsheet renders the one-page markdown summary a streamer keeps
// next to the bot's dashboard
func BuildCheatsheet(cfg *persona.Config) string {
	traits := templateTraits[cfg.Template]
	humor := make([]string, len(cfg.Voice.Humor))
	for i, h := range cfg.Voice.Humor {
		humor[i] = string(h)
	}
	humorLine := strings.Join(humor, ", ")
	if humorLine == "" {
		humorLine = "Custom"
	}
	p := cfg.Personalization

	return strings.Join([]string{
		"# Persona Cheatsheet – " + cfg.Identity.Name,
		"",
		fmt.Sprintf("**Template:** %s (%s & %s)", cfg.Template, traits[0], traits[1]),
		fmt.Sprintf("**Rating:** %s | **Flirtiness:** %s | **Roasting:** %s", cfg.Rating, cfg.Flirtiness, cfg.Roasting),
		"",
		"## Do",
		bulletList(doList(cfg)),
		"",
		"## Don't",
		bulletList(dontList(cfg)),
		"",
		"## Voice Snapshot",
		fmt.Sprintf("- Energy: %d/10", cfg.Voice.Energy),
		fmt.Sprintf("- Formality: %d/10", cfg.Voice.Formality),
		"- Humor: " + humorLine,
		fmt.Sprintf("- Emoji density: %s", cfg.Voice.EmojiDensity),
		"",
		"## Catchphrases & Hooks",
		catchphraseLines(cfg.Identity.Catchphrases),
		"",
		"## Refusal Tone",
		"> " + refusalLine(cfg),
		"",
		"## Stay in Character",
		"- " + stayInCharacter(cfg),
		fmt.Sprintf("- Personalize with %s, %s, and the %s crew.", p.BotName, p.StreamerName, p.CommunityNickname),
	}, "\n")
}
