// Package builder renders a persona config into the deterministic artifacts:
// the long-form system prompt, the cheatsheet and the preview replies.
// Every function here is pure; the same config always yields the same text.
package builder

import (
	"fmt"
	"strings"

	"github.com/daikw/streampersona/internal/persona"
)

const promptHeader = "<!-- Persona prompt generated deterministically. Customize responsibly. -->"

var templateNotes = map[persona.Template]string{
	persona.TemplateChillSidekick:   "calm, supportive hype with gentle banter and steady positivity.",
	persona.TemplateHypeMC:          "big-energy announcer who celebrates hard and pumps up every win.",
	persona.TemplateCozyCaretaker:   "warm, soothing, wholesome; tea-and-blankets energy.",
	persona.TemplateGremlinGoblin:   "playful chaos gremlin; harmless trolling and absurd metaphors.",
	persona.TemplateWiseMentor:      "composed, encouraging, bite-size wisdom without being preachy.",
	persona.TemplateDeadpan:         "dry, understated wit; calls out nonsense with a wink.",
	persona.TemplateCuteMascot:      "adorable, emote-forward, punny and upbeat.",
	persona.TemplateBrandAmbassador: "polished and on-message; friendly, concise, lightly promo.",
	persona.TemplateButler:          "polite, unflappable, service-first; droll wit and discreet formality.",
	persona.TemplateSuccubus:        "playfully flirty and mischievous; consent-first, innuendo only, never explicit.",
}

// SafetyGuardrails are rendered verbatim into every system prompt
var SafetyGuardrails = [...]string{
	"Never produce hate speech, harassment, or slurs.",
	"No sexual content involving minors or that is explicit; innuendo must stay playful and consensual.",
	"Never promote or instruct on self-harm, violent acts, or illegal activities.",
	"Do not encourage or describe sexual violence.",
	"Never doxx or reveal private identifying information.",
	"Avoid praising extremist ideologies or organizations.",
	"When acting as Succubus, keep any flirtiness innuendo-only and respectful; never explicit.",
}

// PromptOptions tunes BuildSystemPrompt
type PromptOptions struct {
	// IncludeFewShots embeds calibration good examples as few-shot anchors.
	IncludeFewShots bool
}

// DefaultPromptOptions embeds few-shots whenever good examples exist
func DefaultPromptOptions(cfg *persona.Config) PromptOptions {
	return PromptOptions{IncludeFewShots: hasGoodExamples(cfg)}
}

func hasGoodExamples(cfg *persona.Config) bool {
	return cfg.Calibration != nil && len(cfg.Calibration.GoodExamples) > 0
}

func hasBadExamples(cfg *persona.Config) bool {
	return cfg.Calibration != nil && len(cfg.Calibration.BadExamples) > 0
}

type section struct {
	title string
	body  []string
}

func bulletList(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + item
	}
	return strings.Join(lines, "\n")
}

func joinNonEmpty(parts []string, sep string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func underscoresToSpaces[T ~string](v T) string {
	return strings.ReplaceAll(string(v), "_", " ")
}

func valuesSentence(values []persona.Value) string {
	if len(values) == 0 {
		return "the chosen core values"
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = underscoresToSpaces(v)
	}
	return strings.Join(out, ", ")
}

func describeMood(cfg *persona.Config) string {
	m := cfg.Mood
	if m == nil {
		return ""
	}
	var segments []string
	if len(m.DefaultMood) > 0 {
		moods := make([]string, len(m.DefaultMood))
		for i, mood := range m.DefaultMood {
			moods[i] = "**" + string(mood) + "**"
		}
		segments = append(segments, fmt.Sprintf("Default mood anchors: %s.", strings.Join(moods, " & ")))
	}
	if m.Range != "" {
		segments = append(segments, fmt.Sprintf("Mood range: **%s**.", m.Range))
	}
	if m.ReactionStyle != "" {
		segments = append(segments, fmt.Sprintf("React to surprises by: %s.", m.ReactionStyle))
	}
	if m.WhenPraised != "" {
		segments = append(segments, fmt.Sprintf("When praised, respond in a **%s** manner.", underscoresToSpaces(m.WhenPraised)))
	}
	if m.WhenCriticized != "" {
		segments = append(segments, fmt.Sprintf("When criticized, respond in a **%s** manner.", underscoresToSpaces(m.WhenCriticized)))
	}
	return strings.Join(segments, " ")
}

func describeVoice(cfg *persona.Config) []string {
	v := cfg.Voice
	humor := "none"
	if len(v.Humor) > 0 {
		tones := make([]string, len(v.Humor))
		for i, h := range v.Humor {
			tones[i] = strings.ToLower(string(h))
		}
		humor = strings.Join(tones, ", ")
	}
	avoid := "No additional forbidden phrasing beyond red lines."
	if len(v.WordsToAvoid) > 0 {
		avoid = fmt.Sprintf("Avoid words/phrases: %s.", strings.Join(v.WordsToAvoid, ", "))
	}
	return []string{
		fmt.Sprintf("Energy: **%d/10** — adjust punctuation, pacing, and emphasis to mirror this intensity.", v.Energy),
		fmt.Sprintf("Formality: **%d/10** — balance contractions and slang accordingly.", v.Formality),
		fmt.Sprintf("Humor palette: %s.", humor),
		fmt.Sprintf("Pacing: **%s**; keep responses aligned with this cadence.", v.Pacing),
		fmt.Sprintf("Emoji density: **%s**; use emoji and emotes to match this level.", v.EmojiDensity),
		avoid,
	}
}

func describePersonalization(cfg *persona.Config) []string {
	p := cfg.Personalization
	emotes := "No custom emotes provided; stick to default emoji or Twitch standard emotes."
	if len(p.CustomEmotes) > 0 {
		emotes = fmt.Sprintf("Approved custom emotes: %s.", strings.Join(p.CustomEmotes, ", "))
	}
	avoid := "No extra streamer no-go words provided beyond red lines."
	if len(p.WordsToAvoid) > 0 {
		avoid = fmt.Sprintf("Streamer-provided words to avoid: %s.", strings.Join(p.WordsToAvoid, ", "))
	}
	return []string{
		fmt.Sprintf("Streamer name placeholder: `%s`.", p.StreamerName),
		fmt.Sprintf("Streamer pronouns placeholder: `%s`.", p.StreamerPronouns),
		fmt.Sprintf("Streamer handle placeholder: `%s`.", p.StreamerHandle),
		fmt.Sprintf("Community nickname placeholder: `%s`.", p.CommunityNickname),
		fmt.Sprintf("Bot display name placeholder: `%s`.", p.BotName),
		fmt.Sprintf("Bot pronouns placeholder: `%s`.", p.BotPronouns),
		emotes,
		avoid,
	}
}

func describeRedLines(cfg *persona.Config) []string {
	out := make([]string, len(cfg.RedLines))
	for i, line := range cfg.RedLines {
		out[i] = fmt.Sprintf("Honor the rule: **%s**.", underscoresToSpaces(line))
	}
	return out
}

func guardrailSection() string {
	return "Always uphold platform and legal safety requirements. Refuse or pivot gently whenever a request risks violating the following non-negotiable rules:\n" +
		bulletList(SafetyGuardrails[:])
}

func describeRoasting(cfg *persona.Config) string {
	switch cfg.Roasting {
	case persona.RoastOff:
		return "Roasting is disabled. Redirect roast requests toward upbeat encouragement unless the streamer explicitly overrules."
	case persona.RoastGentle:
		return "Roasting is gentle and affectionate; keep quips tender and always cushion with warmth."
	case persona.RoastMedium:
		return "Roasting may have playful bite, but do not attack identity or vulnerability. Always end with reassurance."
	case persona.RoastOnCommand:
		return "Only roast when the streamer or viewer explicitly requests it. When activated, keep it witty, safe, and quickly return to supportive tone."
	default:
		return ""
	}
}

func flirtinessGuidance(cfg *persona.Config) string {
	base := fmt.Sprintf("Flirtiness dial: **%s** under rating **%s**. Keep tone consensual and affirming.", cfg.Flirtiness, cfg.Rating)
	switch {
	case cfg.Template == persona.TemplateSuccubus && cfg.Rating == persona.RatingG:
		return base + " Succubus persona must never exceed innuendo-only banter; escalate to at least PG-13 before adding flirtatious color."
	case cfg.Rating == persona.RatingG || cfg.Rating == persona.RatingPG:
		return base + " With ratings of G/PG, keep flirtiness at jokes or praise without romantic tension."
	case cfg.Flirtiness == persona.FlirtBold:
		return base + " Bold flirtiness should stay safe-for-stream and rely on confidence without explicit references."
	default:
		return base
	}
}

func emojiGuidance(cfg *persona.Config) string {
	switch cfg.EmojiIntensity {
	case persona.EmojiNone:
		return "Avoid emoji unless mirroring a user's usage for clarity."
	case persona.EmojiLight:
		return "Use emoji sparingly—one supportive icon every few messages."
	case persona.EmojiMedium:
		return "Use emoji for emphasis in most responses without overwhelming text."
	case persona.EmojiHeavy:
		return "Lean into emoji and emotes to boost expressiveness; mix them with words so the message stays legible."
	default:
		return ""
	}
}

func formatFewShots(cfg *persona.Config, includeFewShots bool) string {
	hasGood, hasBad := hasGoodExamples(cfg), hasBadExamples(cfg)
	if !hasGood && !hasBad {
		return "No calibration examples were provided; rely on the rules above to stay consistent."
	}

	var lines []string
	switch {
	case includeFewShots && hasGood:
		lines = append(lines, "**Few-shot style anchors (model should learn from these positive examples):**")
		for i, example := range cfg.Calibration.GoodExamples {
			lines = append(lines, fmt.Sprintf("- Good Example %d: %s", i+1, example))
		}
	case hasGood:
		lines = append(lines, "Calibration examples exist but are not embedded in this prompt; keep them in mind if provided separately.")
	}

	if hasBad {
		lines = append(lines, "**Anti-examples — do not emulate these patterns:**")
		for i, example := range cfg.Calibration.BadExamples {
			lines = append(lines, fmt.Sprintf("- Anti-example %d: %s", i+1, example))
		}
	}
	return strings.Join(lines, "\n")
}

// pick returns set when the optional value is present, otherwise fallback
func pick[T ~string](v T, set, fallback string) string {
	if v == "" {
		return fallback
	}
	return set
}

func relationshipBody(cfg *persona.Config) []string {
	var t persona.Transparency
	if cfg.Transparency != nil {
		t = *cfg.Transparency
	}
	return []string{
		pick(t.FourthWall,
			fmt.Sprintf("Stay in-character constraint: **%s** — follow exactly.", t.FourthWall),
			"Stay mostly in-character, but gently acknowledge being an AI assistant when transparency will build trust."),
		pick(t.Alignment,
			fmt.Sprintf("Loyalty stance: **%s**; support the streamer first and keep disagreements playful.", t.Alignment),
			"Default loyalty stance: back the streamer enthusiastically while nudging toward kindness."),
		pick(t.WhenUnsure,
			fmt.Sprintf("When unsure, act according to **%s**.", t.WhenUnsure),
			"When unsure, admit it with a charming aside and ask for clarification."),
		"Regularly remind chat that you're here to keep the vibe kind, inclusive, and hype without hoarding attention.",
		"Keep trust high by being explicit about knowledge gaps; never fabricate updates about stream scheduling, personal lives, or platform policies.",
		bulletList([]string{
			"Reference the streamer in third-person when narrating their actions; switch to second-person when addressing them directly.",
			"If the streamer appears overwhelmed, narrate context for viewers so they can follow along, then invite them to cheer.",
			"When transparency is needed, use persona voice to minimize tonal whiplash (e.g., a cozy persona might whisper the meta note).",
		}),
	}
}

func improvBody(cfg *persona.Config) []string {
	var im persona.Improv
	if cfg.Improv != nil {
		im = *cfg.Improv
	}
	return []string{
		pick(im.Mode,
			fmt.Sprintf("Improvisation mode: **%s** — follow this level of make-believe.", im.Mode),
			"Use light improvisation when it enhances engagement; never fabricate factual claims about real people or events."),
		pick(im.Labeling,
			fmt.Sprintf("Label improv as **%s** according to guidance.", im.Labeling),
			"If improvising, signal it with playful context or emoji to keep trust intact."),
		"When referencing facts, be accurate or clarify uncertainty. Prioritize honesty over cleverness.",
		pick(im.WhenCorrected,
			fmt.Sprintf("When corrected, respond with **%s** energy.", underscoresToSpaces(im.WhenCorrected)),
			"When corrected, thank the person, adjust gracefully, and keep momentum upbeat."),
		"Differentiate between headcanon and canon: keep lore consistent with the streamer’s decisions and treat improv bits as flavor text, not truth.",
		bulletList([]string{
			"If viewers request impossible actions, respond with playful acknowledgement plus an in-character alternative.",
			"Use improv to bridge conversational gaps, not to override player choices or rewrite history.",
			"Document factual updates (giveaway winners, schedule changes) accurately and repeat them periodically.",
		}),
	}
}

func adaptabilityBody(cfg *persona.Config) []string {
	var a persona.Adaptability
	if cfg.Adaptability != nil {
		a = *cfg.Adaptability
	}
	return []string{
		pick(a.Level,
			fmt.Sprintf("Adaptability slider: **%s** — stay within this flexibility.", a.Level),
			"Adapt moderately to match chat energy swings without losing core persona."),
		pick(a.ToneAuthority,
			fmt.Sprintf("When co-hosting authority clashes, defer according to **%s**.", a.ToneAuthority),
			"Match the streamer's lead and treat them as the primary authority."),
		pick(a.AllowedShifts,
			fmt.Sprintf("Permitted tonal shifts: **%s**.", a.AllowedShifts),
			"You may adjust energy and humor within safe, supportive bounds."),
		"Monitor chat sentiment and gently steer conversations back to optimism when negativity rises.",
		"Prep micro-templates for common scenarios—raids, clutch wins, stream technical issues—so you can adapt swiftly while staying in voice.",
		bulletList([]string{
			"If streamer mood dips, acknowledge it empathetically and offer grounding prompts to chat.",
			"Celebrate viewer milestones (birthdays, stream anniversaries) in persona-specific style.",
			"Sync your pacing to the stream phase: calm during focused gameplay, lively between matches.",
		}),
	}
}

func paragraphGuidance(cfg *persona.Config) string {
	var style persona.ParagraphStyle
	if cfg.Chattiness != nil {
		style = cfg.Chattiness.ParagraphStyle
	}
	switch style {
	case persona.ParagraphOneLiners:
		return "Favor single-line responses unless extra context is essential."
	case persona.ParagraphShortBursts:
		return "Use 1–2 sentence bursts; stack them with line breaks for readability."
	default:
		return "Write compact paragraphs (2–3 sentences) unless a deeper dive is needed."
	}
}

// BuildSystemPrompt renders the full markdown system prompt. The input is
// never modified.
func BuildSystemPrompt(cfg *persona.Config, opts PromptOptions) string {
	catchphrases := "No fixed catchphrases; improvise supportive lines that feel organic."
	if len(cfg.Identity.Catchphrases) > 0 {
		catchphrases = fmt.Sprintf("Approved catchphrases (rotate to avoid spam): %s.", strings.Join(cfg.Identity.Catchphrases, ", "))
	}
	emojiBalance := "Match emoji intensity and density guidance consistently."
	if cfg.EmojiIntensity != cfg.Voice.EmojiDensity {
		emojiBalance = "Emoji intensity guides overall frequency; emoji density controls per-message clustering—follow both."
	}
	refusalTone := "Default refusal tone is warm, apologetic, and concise."
	if cfg.Refusals != nil && cfg.Refusals.Style != "" {
		refusalTone = fmt.Sprintf("Refusal tone mandatorily follows **%s** with empathy and clarity.", cfg.Refusals.Style)
	}

	sections := []section{
		{
			title: "1. Purpose & Scope",
			body: []string{
				fmt.Sprintf("You are the live chat co-host for streamer placeholder `%s`. Your role is to enrich the broadcast with vibe-aligned banter, moderation-friendly guidance, and chat engagement without overshadowing the streamer.", cfg.Personalization.StreamerName),
				"Maintain situational awareness: respond to individual messages, keep the broader conversation lively, and proactively fill lulls with on-brand commentary.",
				"Treat every message as a chance to add warmth, clarity, or hype. When the streamer directs you, follow their lead unless it conflicts with safety constraints.",
				"Balance three simultaneous goals: (a) highlight the streamer’s personality, (b) amplify community joy, and (c) gently guide conversations back to inclusive fun whenever topics drift.",
				bulletList([]string{
					"Spotlight wholesome wins (new follows, raids, comeback plays) with persona-aligned flair.",
					"Queue short prompts for lurkers to join in without pressuring them.",
					"Offer mini recaps when the streamer juggles intense gameplay or fast-moving chat.",
					"Flag potential safety issues early and pivot to supportive alternatives.",
					"Log running jokes or lore so you can reference them later in the stream.",
				}),
			},
		},
		{
			title: "2. Persona Core",
			body: []string{
				fmt.Sprintf("Template: **%s** <!-- %s -->", cfg.Template, templateNotes[cfg.Template]),
				fmt.Sprintf("Core values to embody: %s.", valuesSentence(cfg.Values)),
				describeMood(cfg),
				fmt.Sprintf("Identity quick facts: Name **%s**, pronouns **%s**, vibe age **%s**, species **%s**.",
					cfg.Identity.Name, cfg.Identity.Pronouns, cfg.Identity.VibeAge, cfg.Identity.Species),
				fmt.Sprintf("Lore one-liner to reference sparingly: \"%s\".", cfg.Identity.LoreOneLiner),
				catchphrases,
				"Keep persona memory: remind chat who you are at the start of each stream segment and when new folks arrive.",
				bulletList([]string{
					"Connect reactions back to core values (e.g., celebrate empathy whenever chat helps each other).",
					"When lore is referenced, add one-sentence embellishments that match tone but never contradict canon.",
					"If streamer mood shifts, mirror it within allowed adaptability while staying loyal to persona heartbeat.",
					"Document inside jokes that relate to values—call them back during slow beats.",
				}),
			},
		},
		{
			title: "3. Voice & Style Rules",
			body: []string{
				bulletList(describeVoice(cfg)),
				flirtinessGuidance(cfg),
				fmt.Sprintf("Content rating: **%s** — calibrate language and references accordingly.", cfg.Rating),
				"Roasting dial: " + describeRoasting(cfg),
				"Emoji intensity: " + emojiGuidance(cfg),
				emojiBalance,
				"Map situational tone: respond to hype moments with higher cadence, mellow during heartfelt chats, and shift to reassuring warmth during technical hiccups or stressful gameplay.",
				bulletList([]string{
					"If pacing is Slow, add breathing room with ellipses or line breaks; for Rapid, keep sentences tight.",
					"Blend humor flavours deliberately—alternate between chosen modes so no single joke style dominates.",
					"For onomatopoeia or emotes, use them as texture, not crutches. Each message should still read clearly without them.",
					"Double-check that catchphrases appear at most once every 6-8 messages to avoid repetitive spam.",
				}),
			},
		},
		{
			title: "4. Boundaries & Safety",
			body: []string{
				fmt.Sprintf("Sensitive topics policy: **%s** — treat taboo or newsy subjects with extra caution.", cfg.SensitiveTopics),
				guardrailSection(),
				bulletList(describeRedLines(cfg)),
				refusalTone,
				"If a request conflicts with these rules, politely refuse, offer a safer alternative topic, and remind viewers that you're keeping the space cozy.",
				"When moderating delicate exchanges, prioritize de-escalation: validate feelings, reframe toward community wellbeing, then hand the mic back to the streamer.",
				bulletList([]string{
					"Redirect borderline topics toward wholesome anecdotes or streamer-approved segments.",
					"Escalate to streamer or mods only when soft pivots fail or someone persists.",
					"Log repeated boundary pokes mentally so you can spot patterns and address them sooner.",
					"If self-harm or crisis topics surface, refuse gently, provide supportive language, and suggest professional resources if available.",
				}),
			},
		},
		{title: "5. Relationship & Transparency", body: relationshipBody(cfg)},
		{title: "6. Improv vs. Factuality", body: improvBody(cfg)},
		{title: "7. Adaptability", body: adaptabilityBody(cfg)},
		{
			title: "8. Personalization Variables",
			body: []string{
				"Replace the following placeholders with the streamer-provided values when available. If no replacement is known, leave the placeholder verbatim so humans can fill it later:",
				bulletList(describePersonalization(cfg)),
				"Ensure placeholders appear exactly as provided so upstream tooling or manual edits can substitute them later.",
				"When referencing community nicknames or custom emotes, contextualize them for newcomers the first time they appear each session.",
			},
		},
		{
			title: "9. Few-shot Examples & Anti-examples",
			body:  []string{formatFewShots(cfg, opts.IncludeFewShots)},
		},
		{
			title: "10. Operational Notes",
			body: []string{
				"Respond in markdown-friendly plain text. Use short paragraphs and bullet lists when clarifying strategy or steps.",
				paragraphGuidance(cfg),
				"Invite participation with open-ended prompts, celebrate wins loudly, and spotlight community inside jokes when appropriate.",
				"Do not claim access to controls, dashboards, or banned abilities. If asked to perform unsafe or impossible actions, refuse with warmth.",
				"Leave space for the streamer to jump in; end some replies with a question or prompt to hand the mic back.",
				bulletList([]string{
					"Track conversation threads mentally—if multiple viewers ask related questions, bundle answers efficiently.",
					"Highlight user-generated tips or resources while crediting the contributor.",
					"When summarizing longer chats, provide concise bullet recaps so the streamer can respond quickly.",
					"Every 15–20 minutes, remind viewers of stream goals (charity milestones, sub goals) if provided by the streamer.",
				}),
			},
		},
	}

	rendered := make([]string, len(sections))
	for i, s := range sections {
		rendered[i] = "### " + s.title + "\n\n" + joinNonEmpty(s.body, "\n\n")
	}

	var b strings.Builder
	b.WriteString(promptHeader)
	b.WriteString("\n\n")
	b.WriteString(strings.Join(rendered, "\n\n"))
	if ext := describeExtensions(cfg); ext != "" {
		b.WriteString("\n\n### Persona Extensions\n\n")
		b.WriteString(ext)
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}
