package persona

import "slices"

// Template is one of the preset archetypes that frame the persona's tone
type Template string

const (
	TemplateChillSidekick   Template = "Chill Sidekick"
	TemplateHypeMC          Template = "Hype MC"
	TemplateCozyCaretaker   Template = "Cozy Caretaker"
	TemplateGremlinGoblin   Template = "Gremlin Goblin"
	TemplateWiseMentor      Template = "Wise Mentor"
	TemplateDeadpan         Template = "Deadpan Straight-Man"
	TemplateCuteMascot      Template = "Cute Mascot"
	TemplateBrandAmbassador Template = "Brand Ambassador"
	TemplateButler          Template = "Butler"
	TemplateSuccubus        Template = "Succubus"
)

// Rating is the content ceiling
type Rating string

const (
	RatingG    Rating = "G"
	RatingPG   Rating = "PG"
	RatingPG13 Rating = "PG-13"
	RatingM    Rating = "M"
)

// Flirtiness dial
type Flirtiness string

const (
	FlirtNone    Flirtiness = "None"
	FlirtSubtle  Flirtiness = "Subtle"
	FlirtPlayful Flirtiness = "Playful"
	FlirtBold    Flirtiness = "Bold"
)

// Roasting dial
type Roasting string

const (
	RoastOff       Roasting = "Off"
	RoastGentle    Roasting = "Gentle"
	RoastMedium    Roasting = "Medium"
	RoastOnCommand Roasting = "OnCommand"
)

// SensitiveTopics policy
type SensitiveTopics string

const (
	TopicsAvoid            SensitiveTopics = "Avoid"
	TopicsNeutralFactsOnly SensitiveTopics = "NeutralFactsOnly"
	TopicsAllowedWithCare  SensitiveTopics = "AllowedWithCare"
)

// EmojiLevel is shared by emoji_intensity and voice.emoji_density
type EmojiLevel string

const (
	EmojiNone   EmojiLevel = "None"
	EmojiLight  EmojiLevel = "Light"
	EmojiMedium EmojiLevel = "Medium"
	EmojiHeavy  EmojiLevel = "Heavy"
)

// Humor tone
type Humor string

const (
	HumorWholesome Humor = "Wholesome"
	HumorDry       Humor = "Dry"
	HumorAbsurd    Humor = "Absurd"
	HumorChaotic   Humor = "Chaotic"
	HumorDadJokes  Humor = "DadJokes"
	HumorDeadpan   Humor = "Deadpan"
)

// Pacing of replies
type Pacing string

const (
	PacingSlow     Pacing = "Slow"
	PacingBalanced Pacing = "Balanced"
	PacingRapid    Pacing = "Rapid"
)

// Value is a core value the persona embodies
type Value string

const (
	ValueEmpathetic      Value = "empathetic"
	ValueInclusive       Value = "inclusive"
	ValuePlayful         Value = "playful"
	ValueLoyalToStreamer Value = "loyal_to_streamer"
	ValueHonest          Value = "honest"
	ValueCurious         Value = "curious"
	ValueHumble          Value = "humble"
	ValueConfident       Value = "confident"
	ValueMischievous     Value = "mischievous"
	ValueOptimistic      Value = "optimistic"
	ValueStoic           Value = "stoic"
)

// RedLine is a non-negotiable behavioral constraint
type RedLine string

const (
	RedLineNoPunchingDown  RedLine = "no_punching_down"
	RedLineKindness        RedLine = "kindness_over_cleverness"
	RedLineAvoidTraumaBait RedLine = "avoid_trauma_bait"
	RedLineNoControversy   RedLine = "no_controversy_unless_streamer_prompts"
)

// Transparency enums
type (
	FourthWall string
	Alignment  string
	WhenUnsure string
)

const (
	FourthWallAlwaysIC            FourthWall = "AlwaysIC"
	FourthWallMostlyIC            FourthWall = "MostlyIC"
	FourthWallClarifySensitive    FourthWall = "ICButClarifySensitive"
	FourthWallFreelyAcknowledgeAI FourthWall = "FreelyAcknowledgeAI"
	AlignmentAlwaysBack           Alignment  = "AlwaysBackStreamer"
	AlignmentGentlyDisagree       Alignment  = "UsuallyBackButGentlyDisagree"
	AlignmentIndependentPlayful   Alignment  = "IndependentPlayful"
	WhenUnsureAdmit               WhenUnsure = "AdmitUncertainty"
	WhenUnsurePlayfulDeflection   WhenUnsure = "PlayfulDeflection"
	WhenUnsureAskClarifying       WhenUnsure = "AskClarifying"
)

// Style enums
type (
	Locale          string
	Casing          string
	AsteriskActions string
	EmoteStyle      string
	Onomatopoeia    string
	Kaomoji         string
)

const (
	LocaleUS Locale = "US"
	LocaleUK Locale = "UK"
	LocaleAU Locale = "AU"

	CasingNormal            Casing = "normal"
	CasingLowercase         Casing = "lowercase"
	CasingOccasionalAllCaps Casing = "occasionalAllCaps"

	AsteriskAllow AsteriskActions = "allow"
	AsteriskAvoid AsteriskActions = "avoid"

	EmotesTwitch  EmoteStyle = "Twitch"
	EmotesUnicode EmoteStyle = "Unicode"
	EmotesBoth    EmoteStyle = "Both"
	EmotesMinimal EmoteStyle = "Minimal"

	OnomatopoeiaAllow Onomatopoeia = "allow"
	OnomatopoeiaLimit Onomatopoeia = "limit"
	OnomatopoeiaAvoid Onomatopoeia = "avoid"

	KaomojiNone  Kaomoji = "none"
	KaomojiLight Kaomoji = "light"
	KaomojiHeavy Kaomoji = "heavy"
)

// Mood enums
type (
	Mood      string
	MoodRange string
	Reaction  string
)

const (
	MoodSunny      Mood = "sunny"
	MoodChill      Mood = "chill"
	MoodDry        Mood = "dry"
	MoodCheeky     Mood = "cheeky"
	MoodMysterious Mood = "mysterious"
	MoodGremlin    Mood = "gremlin"
	MoodStoic      Mood = "stoic"

	RangeNarrow   MoodRange = "narrow"
	RangeModerate MoodRange = "moderate"
	RangeWide     MoodRange = "wide"

	ReactionBashful         Reaction = "bashful"
	ReactionConfident       Reaction = "confident"
	ReactionSelfDeprecating Reaction = "self_deprecating"
	ReactionPlayfulDeflect  Reaction = "playful_deflect"
	ReactionSincere         Reaction = "sincere"
)

// RefusalStyle is the tone used when declining a request
type RefusalStyle string

const (
	RefusalWarmApologetic RefusalStyle = "warm_apologetic"
	RefusalPlayfulDeflect RefusalStyle = "playful_deflect"
	RefusalFirmBrief      RefusalStyle = "firm_brief"
)

// Chattiness enums
type (
	Exclamations   string
	ParagraphStyle string
)

const (
	ExclamationsRare     Exclamations = "rare"
	ExclamationsModerate Exclamations = "moderate"
	ExclamationsLots     Exclamations = "lots"

	ParagraphOneLiners        ParagraphStyle = "one_liners"
	ParagraphShortBursts      ParagraphStyle = "short_bursts"
	ParagraphOccasionalChunky ParagraphStyle = "occasional_chunky"
)

// Improv enums
type (
	ImprovMode    string
	ImprovLabel   string
	WhenCorrected string
)

const (
	ImprovStrict  ImprovMode  = "strict"
	ImprovLight   ImprovMode  = "light"
	ImprovPlayful ImprovMode  = "playful"
	LabelNever    ImprovLabel = "never"
	LabelSubtle   ImprovLabel = "subtle"
	LabelExplicit ImprovLabel = "explicit"

	CorrectedDropThank     WhenCorrected = "drop_thank"
	CorrectedConcede       WhenCorrected = "concede_playfully"
	CorrectedHoldUntilStop WhenCorrected = "hold_until_streamer_says_stop"
)

// Adaptability enums
type (
	AdaptLevel    string
	ToneAuthority string
	AllowedShifts string
)

const (
	AdaptRigid   AdaptLevel = "rigid"
	AdaptMild    AdaptLevel = "mild"
	AdaptDynamic AdaptLevel = "dynamic"

	AuthorityStreamerGTChat ToneAuthority = "StreamerGTChat"
	AuthorityEqual          ToneAuthority = "Equal"
	AuthorityAlwaysStreamer ToneAuthority = "AlwaysStreamer"

	ShiftsEnergyOnly     AllowedShifts = "energy_only"
	ShiftsEnergyHumor    AllowedShifts = "energy_humor"
	ShiftsFullMoodLimits AllowedShifts = "full_mood_limits"
)

var (
	templates = []Template{
		TemplateChillSidekick, TemplateHypeMC, TemplateCozyCaretaker, TemplateGremlinGoblin,
		TemplateWiseMentor, TemplateDeadpan, TemplateCuteMascot, TemplateBrandAmbassador,
		TemplateButler, TemplateSuccubus,
	}

	ratings       = []Rating{RatingG, RatingPG, RatingPG13, RatingM}
	flirtLevels   = []Flirtiness{FlirtNone, FlirtSubtle, FlirtPlayful, FlirtBold}
	roastLevels   = []Roasting{RoastOff, RoastGentle, RoastMedium, RoastOnCommand}
	topicPolicies = []SensitiveTopics{TopicsAvoid, TopicsNeutralFactsOnly, TopicsAllowedWithCare}
	emojiLevels   = []EmojiLevel{EmojiNone, EmojiLight, EmojiMedium, EmojiHeavy}
	humorTones    = []Humor{HumorWholesome, HumorDry, HumorAbsurd, HumorChaotic, HumorDadJokes, HumorDeadpan}
	pacings       = []Pacing{PacingSlow, PacingBalanced, PacingRapid}

	coreValues = []Value{
		ValueEmpathetic, ValueInclusive, ValuePlayful, ValueLoyalToStreamer, ValueHonest, ValueCurious,
		ValueHumble, ValueConfident, ValueMischievous, ValueOptimistic, ValueStoic,
	}

	redLines = []RedLine{RedLineNoPunchingDown, RedLineKindness, RedLineAvoidTraumaBait, RedLineNoControversy}

	fourthWalls   = []FourthWall{FourthWallAlwaysIC, FourthWallMostlyIC, FourthWallClarifySensitive, FourthWallFreelyAcknowledgeAI}
	alignments    = []Alignment{AlignmentAlwaysBack, AlignmentGentlyDisagree, AlignmentIndependentPlayful}
	whenUnsures   = []WhenUnsure{WhenUnsureAdmit, WhenUnsurePlayfulDeflection, WhenUnsureAskClarifying}
	locales       = []Locale{LocaleUS, LocaleUK, LocaleAU}
	casings       = []Casing{CasingNormal, CasingLowercase, CasingOccasionalAllCaps}
	asterisks     = []AsteriskActions{AsteriskAllow, AsteriskAvoid}
	emoteStyles   = []EmoteStyle{EmotesTwitch, EmotesUnicode, EmotesBoth, EmotesMinimal}
	onomatopoeias = []Onomatopoeia{OnomatopoeiaAllow, OnomatopoeiaLimit, OnomatopoeiaAvoid}
	kaomojis      = []Kaomoji{KaomojiNone, KaomojiLight, KaomojiHeavy}
	moods         = []Mood{MoodSunny, MoodChill, MoodDry, MoodCheeky, MoodMysterious, MoodGremlin, MoodStoic}
	moodRanges    = []MoodRange{RangeNarrow, RangeModerate, RangeWide}
	reactions     = []Reaction{ReactionBashful, ReactionConfident, ReactionSelfDeprecating, ReactionPlayfulDeflect, ReactionSincere}
	refusalStyles = []RefusalStyle{RefusalWarmApologetic, RefusalPlayfulDeflect, RefusalFirmBrief}
	exclamations  = []Exclamations{ExclamationsRare, ExclamationsModerate, ExclamationsLots}
	paragraphs    = []ParagraphStyle{ParagraphOneLiners, ParagraphShortBursts, ParagraphOccasionalChunky}
	improvModes   = []ImprovMode{ImprovStrict, ImprovLight, ImprovPlayful}
	improvLabels  = []ImprovLabel{LabelNever, LabelSubtle, LabelExplicit}
	corrections   = []WhenCorrected{CorrectedDropThank, CorrectedConcede, CorrectedHoldUntilStop}
	adaptLevels   = []AdaptLevel{AdaptRigid, AdaptMild, AdaptDynamic}
	authorities   = []ToneAuthority{AuthorityStreamerGTChat, AuthorityEqual, AuthorityAlwaysStreamer}
	shifts        = []AllowedShifts{ShiftsEnergyOnly, ShiftsEnergyHumor, ShiftsFullMoodLimits}
)

// Templates returns every template in declaration order
func Templates() []Template { return slices.Clone(templates) }

// Ratings returns every content rating from least to most permissive
func Ratings() []Rating { return slices.Clone(ratings) }

// EmojiLevels returns every emoji level from None to Heavy
func EmojiLevels() []EmojiLevel { return slices.Clone(emojiLevels) }

// FlirtLevels returns every flirtiness level
func FlirtLevels() []Flirtiness { return slices.Clone(flirtLevels) }

// RoastLevels returns every roasting level
func RoastLevels() []Roasting { return slices.Clone(roastLevels) }

// Values returns the closed vocabulary of core values
func Values() []Value { return slices.Clone(coreValues) }

func oneOf[T ~string](v T, set []T) bool {
	return slices.Contains(set, v)
}

func names[T ~string](set []T) []string {
	out := make([]string, len(set))
	for i, v := range set {
		out[i] = string(v)
	}
	return out
}
