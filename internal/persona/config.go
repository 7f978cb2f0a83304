package persona

import "slices"

// Placeholder tokens left in the prompt until the streamer fills them in
const (
	PlaceholderBotName           = "BOT_NAME"
	PlaceholderBotPronouns       = "BOT_PRONOUNS"
	PlaceholderStreamerName      = "STREAMER_NAME"
	PlaceholderStreamerPronouns  = "STREAMER_PRONOUNS"
	PlaceholderStreamerHandle    = "STREAMER_HANDLE"
	PlaceholderCommunityNickname = "COMMUNITY_NICKNAME"
)

// Default returns the starter persona used before the questionnaire is answered
func Default() *Config {
	return &Config{
		Template:        TemplateChillSidekick,
		Rating:          RatingPG13,
		Flirtiness:      FlirtNone,
		Roasting:        RoastGentle,
		SensitiveTopics: TopicsNeutralFactsOnly,
		EmojiIntensity:  EmojiMedium,
		Voice:           defaultVoice(),
		Values:          []Value{ValueEmpathetic, ValueInclusive, ValuePlayful, ValueLoyalToStreamer},
		RedLines:        slices.Clone(redLines),
		Identity:        defaultIdentity(),
		Personalization: defaultPersonalization(),
	}
}

func defaultVoice() Voice {
	return Voice{
		Energy:       6,
		Formality:    3,
		Humor:        []Humor{HumorWholesome, HumorDry},
		Pacing:       PacingBalanced,
		EmojiDensity: EmojiMedium,
		WordsToAvoid: []string{},
	}
}

func defaultIdentity() Identity {
	return Identity{
		Name:         PlaceholderBotName,
		Pronouns:     "they/them",
		VibeAge:      "ageless AI",
		Species:      "AI assistant",
		LoreOneLiner: "upbeat AI companion for " + PlaceholderStreamerName,
		Catchphrases: []string{},
	}
}

func defaultPersonalization() Personalization {
	return Personalization{
		StreamerName:      PlaceholderStreamerName,
		StreamerPronouns:  PlaceholderStreamerPronouns,
		StreamerHandle:    PlaceholderStreamerHandle,
		CommunityNickname: PlaceholderCommunityNickname,
		BotName:           PlaceholderBotName,
		BotPronouns:       PlaceholderBotPronouns,
		CustomEmotes:      []string{},
		WordsToAvoid:      []string{},
	}
}

// Clone returns a deep copy that shares no slices or pointers with c
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	out := *c

	out.Voice.Humor = cloneRequired(c.Voice.Humor)
	out.Voice.WordsToAvoid = cloneRequired(c.Voice.WordsToAvoid)
	out.Values = cloneRequired(c.Values)
	out.RedLines = cloneRequired(c.RedLines)
	out.Identity.Catchphrases = cloneRequired(c.Identity.Catchphrases)
	out.Personalization.CustomEmotes = cloneRequired(c.Personalization.CustomEmotes)
	out.Personalization.WordsToAvoid = cloneRequired(c.Personalization.WordsToAvoid)

	if c.Transparency != nil {
		t := *c.Transparency
		out.Transparency = &t
	}
	if c.Influences != nil {
		out.Influences = &Influences{
			Emulate: slices.Clone(c.Influences.Emulate),
			Avoid:   slices.Clone(c.Influences.Avoid),
		}
	}
	if c.Calibration != nil {
		out.Calibration = &Calibration{
			GoodExamples: slices.Clone(c.Calibration.GoodExamples),
			BadExamples:  slices.Clone(c.Calibration.BadExamples),
		}
	}
	if c.Style != nil {
		s := *c.Style
		out.Style = &s
	}
	if c.Mood != nil {
		m := *c.Mood
		m.DefaultMood = slices.Clone(c.Mood.DefaultMood)
		out.Mood = &m
	}
	if c.Preferences != nil {
		out.Preferences = &Preferences{
			Favorites: slices.Clone(c.Preferences.Favorites),
			Yucks:     slices.Clone(c.Preferences.Yucks),
			Metaphors: slices.Clone(c.Preferences.Metaphors),
		}
	}
	if c.Refusals != nil {
		r := *c.Refusals
		r.StockLines = slices.Clone(c.Refusals.StockLines)
		r.Redirects = slices.Clone(c.Refusals.Redirects)
		out.Refusals = &r
	}
	if c.Chattiness != nil {
		ch := *c.Chattiness
		if c.Chattiness.Brevity != nil {
			b := *c.Chattiness.Brevity
			ch.Brevity = &b
		}
		out.Chattiness = &ch
	}
	if c.Improv != nil {
		i := *c.Improv
		out.Improv = &i
	}
	if c.Adaptability != nil {
		a := *c.Adaptability
		out.Adaptability = &a
	}
	return &out
}

// cloneRequired keeps required lists non-nil so they marshal as [] rather than null
func cloneRequired[T any](s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	return out
}

// Name returns the display name of the bot, preferring the identity name
func (c *Config) Name() string {
	if c.Identity.Name != "" {
		return c.Identity.Name
	}
	return c.Personalization.BotName
}
