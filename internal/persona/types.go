package persona

// Config is a complete streamer persona as assembled by the questionnaire.
// Required fields always hold a value from their closed set; the optional
// extension objects are nil when the user never touched them.
type Config struct {
	Template        Template        `json:"template" yaml:"template"`
	Rating          Rating          `json:"rating" yaml:"rating"`
	Flirtiness      Flirtiness      `json:"flirtiness" yaml:"flirtiness"`
	Roasting        Roasting        `json:"roasting" yaml:"roasting"`
	SensitiveTopics SensitiveTopics `json:"sensitive_topics" yaml:"sensitive_topics"`
	EmojiIntensity  EmojiLevel      `json:"emoji_intensity" yaml:"emoji_intensity"`

	Voice           Voice           `json:"voice" yaml:"voice"`
	Values          []Value         `json:"values" yaml:"values"`
	RedLines        []RedLine       `json:"red_lines" yaml:"red_lines"`
	Identity        Identity        `json:"identity" yaml:"identity"`
	Personalization Personalization `json:"personalization" yaml:"personalization"`

	Transparency *Transparency `json:"transparency,omitempty" yaml:"transparency,omitempty"`
	Influences   *Influences   `json:"influences,omitempty" yaml:"influences,omitempty"`
	Calibration  *Calibration  `json:"calibration,omitempty" yaml:"calibration,omitempty"`
	Style        *Style        `json:"style,omitempty" yaml:"style,omitempty"`
	Mood         *MoodSettings `json:"mood,omitempty" yaml:"mood,omitempty"`
	Preferences  *Preferences  `json:"preferences,omitempty" yaml:"preferences,omitempty"`
	Refusals     *Refusals     `json:"refusals,omitempty" yaml:"refusals,omitempty"`
	Chattiness   *Chattiness   `json:"chattiness,omitempty" yaml:"chattiness,omitempty"`
	Improv       *Improv       `json:"improv,omitempty" yaml:"improv,omitempty"`
	Adaptability *Adaptability `json:"adaptability,omitempty" yaml:"adaptability,omitempty"`
}

// Voice holds the tone sliders and speech habits
type Voice struct {
	Energy       int        `json:"energy" yaml:"energy"`
	Formality    int        `json:"formality" yaml:"formality"`
	Humor        []Humor    `json:"humor" yaml:"humor"`
	Pacing       Pacing     `json:"pacing" yaml:"pacing"`
	EmojiDensity EmojiLevel `json:"emoji_density" yaml:"emoji_density"`
	WordsToAvoid []string   `json:"words_to_avoid" yaml:"words_to_avoid"`
}

// Identity describes who the bot is
type Identity struct {
	Name         string   `json:"name" yaml:"name"`
	Pronouns     string   `json:"pronouns" yaml:"pronouns"`
	VibeAge      string   `json:"vibe_age" yaml:"vibe_age"`
	Species      string   `json:"species" yaml:"species"`
	LoreOneLiner string   `json:"lore_one_liner" yaml:"lore_one_liner"`
	Catchphrases []string `json:"catchphrases" yaml:"catchphrases"`
}

// Personalization carries the streamer-specific placeholders
type Personalization struct {
	StreamerName      string   `json:"streamer_name" yaml:"streamer_name"`
	StreamerPronouns  string   `json:"streamer_pronouns" yaml:"streamer_pronouns"`
	StreamerHandle    string   `json:"streamer_handle" yaml:"streamer_handle"`
	CommunityNickname string   `json:"community_nickname" yaml:"community_nickname"`
	BotName           string   `json:"bot_name" yaml:"bot_name"`
	BotPronouns       string   `json:"bot_pronouns" yaml:"bot_pronouns"`
	CustomEmotes      []string `json:"custom_emotes" yaml:"custom_emotes"`
	WordsToAvoid      []string `json:"words_to_avoid" yaml:"words_to_avoid"`
}

type Transparency struct {
	FourthWall FourthWall `json:"fourth_wall,omitempty" yaml:"fourth_wall,omitempty"`
	Alignment  Alignment  `json:"alignment,omitempty" yaml:"alignment,omitempty"`
	WhenUnsure WhenUnsure `json:"when_unsure,omitempty" yaml:"when_unsure,omitempty"`
}

type Influences struct {
	Emulate []string `json:"emulate,omitempty" yaml:"emulate,omitempty"`
	Avoid   []string `json:"avoid,omitempty" yaml:"avoid,omitempty"`
}

// Calibration holds sample lines the persona should or should not produce
type Calibration struct {
	GoodExamples []string `json:"good_examples,omitempty" yaml:"good_examples,omitempty"`
	BadExamples  []string `json:"bad_examples,omitempty" yaml:"bad_examples,omitempty"`
}

type Style struct {
	Locale          Locale          `json:"locale,omitempty" yaml:"locale,omitempty"`
	Casing          Casing          `json:"casing,omitempty" yaml:"casing,omitempty"`
	AsteriskActions AsteriskActions `json:"asterisk_actions,omitempty" yaml:"asterisk_actions,omitempty"`
	Laugh           string          `json:"laugh,omitempty" yaml:"laugh,omitempty"`
	Emotes          EmoteStyle      `json:"emotes,omitempty" yaml:"emotes,omitempty"`
	Onomatopoeia    Onomatopoeia    `json:"onomatopoeia,omitempty" yaml:"onomatopoeia,omitempty"`
	Kaomoji         Kaomoji         `json:"kaomoji,omitempty" yaml:"kaomoji,omitempty"`
}

type MoodSettings struct {
	DefaultMood    []Mood    `json:"default_mood,omitempty" yaml:"default_mood,omitempty"`
	Range          MoodRange `json:"range,omitempty" yaml:"range,omitempty"`
	ReactionStyle  string    `json:"reaction_style,omitempty" yaml:"reaction_style,omitempty"`
	WhenPraised    Reaction  `json:"when_praised,omitempty" yaml:"when_praised,omitempty"`
	WhenCriticized Reaction  `json:"when_criticized,omitempty" yaml:"when_criticized,omitempty"`
}

type Preferences struct {
	Favorites []string `json:"favorites,omitempty" yaml:"favorites,omitempty"`
	Yucks     []string `json:"yucks,omitempty" yaml:"yucks,omitempty"`
	Metaphors []string `json:"metaphors,omitempty" yaml:"metaphors,omitempty"`
}

type Refusals struct {
	Style      RefusalStyle `json:"style,omitempty" yaml:"style,omitempty"`
	StockLines []string     `json:"stock_lines,omitempty" yaml:"stock_lines,omitempty"`
	Redirects  []string     `json:"redirects,omitempty" yaml:"redirects,omitempty"`
}

// Chattiness controls reply length. Brevity is nil when unset.
type Chattiness struct {
	Brevity        *int           `json:"brevity,omitempty" yaml:"brevity,omitempty"`
	Exclamations   Exclamations   `json:"exclamations,omitempty" yaml:"exclamations,omitempty"`
	ParagraphStyle ParagraphStyle `json:"paragraph_style,omitempty" yaml:"paragraph_style,omitempty"`
}

type Improv struct {
	Mode          ImprovMode    `json:"mode,omitempty" yaml:"mode,omitempty"`
	Labeling      ImprovLabel   `json:"labeling,omitempty" yaml:"labeling,omitempty"`
	WhenCorrected WhenCorrected `json:"when_corrected,omitempty" yaml:"when_corrected,omitempty"`
}

type Adaptability struct {
	Level         AdaptLevel    `json:"level,omitempty" yaml:"level,omitempty"`
	ToneAuthority ToneAuthority `json:"tone_authority,omitempty" yaml:"tone_authority,omitempty"`
	AllowedShifts AllowedShifts `json:"allowed_shifts,omitempty" yaml:"allowed_shifts,omitempty"`
}

// List caps for bounded optional lists
const (
	MinValues       = 3
	MaxValues       = 5
	MaxEmulate      = 3
	MaxAvoid        = 2
	MaxGoodExamples = 4
	MaxBadExamples  = 2
	MaxDefaultMood  = 2
	MaxStockLines   = 3
	MaxRedirects    = 5
	SliderMin       = 1
	SliderMax       = 10
)
