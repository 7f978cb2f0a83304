package builder

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/daikw/streampersona/internal/persona"
)

// PreviewScenarios names the three preview replies in order
var PreviewScenarios = [3]string{"first-time", "lull", "roast"}

type energyTone int

const (
	energyLow energyTone = iota
	energyMedium
	energyHigh
)

func toneFor(energy int) energyTone {
	switch {
	case energy >= 8:
		return energyHigh
	case energy <= 3:
		return energyLow
	default:
		return energyMedium
	}
}

// emoji per reply for each energy tone
var emojiCount = map[energyTone]int{energyLow: 1, energyMedium: 2, energyHigh: 3}

var emojiPools = map[persona.EmojiLevel][]string{
	persona.EmojiNone:   nil,
	persona.EmojiLight:  {"🙂", "✨", "🌟"},
	persona.EmojiMedium: {"✨", "😊", "🔥", "💬", "🎉", "🌀", "🤝", "🛡️"},
	persona.EmojiHeavy:  {"🎉", "🔥", "💥", "😎", "🤖", "💫"},
}

func emojiPool(cfg *persona.Config) []string {
	if pool := emojiPools[cfg.Voice.EmojiDensity]; len(pool) > 0 {
		return pool
	}
	return emojiPools[cfg.EmojiIntensity]
}

// pickEmoji cycles through the pool and swaps the last slot for the
// streamer's first custom emote. The result carries a leading space.
func pickEmoji(cfg *persona.Config, count int) string {
	pool := emojiPool(cfg)
	if len(pool) == 0 || count <= 0 {
		return ""
	}
	chosen := make([]string, count)
	for i := range chosen {
		chosen[i] = pool[i%len(pool)]
	}
	if emotes := cfg.Personalization.CustomEmotes; len(emotes) > 0 {
		chosen[count-1] = emotes[0]
	}
	return " " + strings.Join(chosen, " ")
}

func roastLine(cfg *persona.Config) string {
	switch cfg.Roasting {
	case persona.RoastOff:
		return "I'll keep it cozy—no roasts on the menu, but I can serve a pep talk instead."
	case persona.RoastGentle:
		return "Heh, that 'gentle roast' is more like caramelized compliments—you're too sweet to scorch."
	case persona.RoastMedium:
		return "Alright, playful roast coming in hot: you're the type to queue a download and forget Wi-Fi exists."
	default:
		return "On command? Say the word and I'll deploy a safe sizzle, then tuck you back in with praise."
	}
}

func flirtinessTag(cfg *persona.Config) string {
	switch cfg.Flirtiness {
	case persona.FlirtSubtle:
		return " (psst, totally platonically impressed)"
	case persona.FlirtPlayful:
		return " (could be a wink, could be the LED lights—who knows?)"
	case persona.FlirtBold:
		if cfg.Rating == persona.RatingM {
			return " (smolder-level wink activated, still TOS-safe)"
		}
		return " (turning the dial right up to the edge of TOS)"
	default:
		return ""
	}
}

func lullLine(tone energyTone) string {
	switch tone {
	case energyLow:
		return "Breathing with the chat—remember to sip water and share your cozy wins."
	case energyHigh:
		return "No dead air on my watch—spam your favorite emote combo and let's slingshot the energy back up!"
	default:
		return "While we reset the scene, drop a quick rose-and-thorn from your day so the streamer can shout you out."
	}
}

// BuildPreviewReplies renders sample chat replies for the first-time
// greeting, a lull filler and a roast request, in that order
func BuildPreviewReplies(cfg *persona.Config) [3]string {
	tone := toneFor(cfg.Voice.Energy)
	emoji := pickEmoji(cfg, emojiCount[tone])
	p := cfg.Personalization
	template := cases.Lower(language.English).String(string(cfg.Template))

	greeting := "Hey there, welcome in! I'm " + p.BotName + ", your " + template + " for tonight" + flirtinessTag(cfg) + "."
	vibe := "Grab a seat with the " + p.CommunityNickname + " crew and tell me what you're vibing with" + emoji

	replies := [3]string{
		greeting + " " + vibe,
		lullLine(tone) + emoji,
		roastLine(cfg) + pickEmoji(cfg, emojiCount[energyMedium]),
	}
	for i, r := range replies {
		replies[i] = strings.TrimSpace(applyPersonaFilters(r, cfg))
	}
	return replies
}
