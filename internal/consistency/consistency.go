// Package consistency detects combinations of persona settings that work
// against each other and offers one-click fixes for them.
package consistency

import (
	"errors"
	"fmt"
	"regexp"
	"slices"

	"github.com/daikw/streampersona/internal/persona"
)

// Severity of an issue
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// Issue identifiers
const (
	DeadpanExclamations      = "deadpan-exclamations"
	LowEnergyAllCaps         = "low-energy-allcaps"
	RatingFlirtinessMismatch = "rating-flirtiness-mismatch"
	SuccubusRating           = "succubus-rating"
	RoastExamplesMismatch    = "roast-examples-mismatch"
)

var (
	ErrUnknownIssue      = errors.New("issue does not apply to this config")
	ErrUnknownResolution = errors.New("resolution index out of range")
)

// Resolution is a named single-field fix
type Resolution struct {
	Label string `json:"label"`
	apply func(*persona.Config)
}

// Mutate returns a fixed copy of cfg; cfg itself is left untouched
func (r Resolution) Mutate(cfg *persona.Config) *persona.Config {
	next := cfg.Clone()
	r.apply(next)
	return next
}

// Issue is recomputed on every Evaluate and never stored
type Issue struct {
	ID          string       `json:"id"`
	Message     string       `json:"message"`
	Severity    Severity     `json:"severity"`
	Resolutions []Resolution `json:"resolutions,omitempty"`
}

type rule struct {
	id          string
	message     string
	severity    Severity
	applies     func(*persona.Config) bool
	resolutions []Resolution
}

var roastPattern = regexp.MustCompile(`(?i)\broast|\bburn|\bdrag|\bteas(e|ing)`)

func hasRoastExamples(cfg *persona.Config) bool {
	if cfg.Calibration == nil {
		return false
	}
	return slices.ContainsFunc(cfg.Calibration.GoodExamples, roastPattern.MatchString)
}

func setExclamations(v persona.Exclamations) func(*persona.Config) {
	return func(c *persona.Config) {
		if c.Chattiness == nil {
			c.Chattiness = &persona.Chattiness{}
		}
		c.Chattiness.Exclamations = v
	}
}

func setRating(v persona.Rating) func(*persona.Config) {
	return func(c *persona.Config) { c.Rating = v }
}

var rules = []rule{
	{
		id:       DeadpanExclamations,
		message:  "Dry humor rarely spams exclamation marks. Consider dialing exclamations down to match the deadpan vibe.",
		severity: SeverityInfo,
		applies: func(c *persona.Config) bool {
			deadpan := c.Template == persona.TemplateDeadpan || slices.Contains(c.Voice.Humor, persona.HumorDeadpan)
			return deadpan && c.Chattiness != nil && c.Chattiness.Exclamations == persona.ExclamationsLots
		},
		resolutions: []Resolution{
			{Label: "Set exclamations to moderate", apply: setExclamations(persona.ExclamationsModerate)},
			{Label: "Set exclamations to rare", apply: setExclamations(persona.ExclamationsRare)},
		},
	},
	{
		id:       LowEnergyAllCaps,
		message:  "Low energy and occasional ALL CAPS clash. Either raise energy or switch casing to normal.",
		severity: SeverityInfo,
		applies: func(c *persona.Config) bool {
			return c.Voice.Energy <= 3 && c.Style != nil && c.Style.Casing == persona.CasingOccasionalAllCaps
		},
		resolutions: []Resolution{
			{Label: "Use normal casing", apply: func(c *persona.Config) {
				if c.Style == nil {
					c.Style = &persona.Style{}
				}
				c.Style.Casing = persona.CasingNormal
			}},
			{Label: "Bump energy to 5", apply: func(c *persona.Config) { c.Voice.Energy = 5 }},
		},
	},
	{
		id:       RatingFlirtinessMismatch,
		message:  "Playful or bold flirtiness pushes past G/PG tone. Either soften flirtiness or raise the content rating.",
		severity: SeverityWarning,
		applies: func(c *persona.Config) bool {
			family := c.Rating == persona.RatingG || c.Rating == persona.RatingPG
			forward := c.Flirtiness == persona.FlirtPlayful || c.Flirtiness == persona.FlirtBold
			return family && forward
		},
		resolutions: []Resolution{
			{Label: "Set flirtiness to subtle", apply: func(c *persona.Config) { c.Flirtiness = persona.FlirtSubtle }},
			{Label: "Raise rating to PG-13", apply: setRating(persona.RatingPG13)},
		},
	},
	{
		id:       SuccubusRating,
		message:  "Succubus persona requires at least PG-13 to keep innuendo safe-for-stream. Raise the rating or pick another template.",
		severity: SeverityWarning,
		applies: func(c *persona.Config) bool {
			return c.Template == persona.TemplateSuccubus && c.Rating == persona.RatingG
		},
		resolutions: []Resolution{
			{Label: "Raise rating to PG-13", apply: setRating(persona.RatingPG13)},
		},
	},
	{
		id:       RoastExamplesMismatch,
		message:  "Roasting is disabled, but you provided roast-flavored examples. Either allow gentle roasting or swap those examples.",
		severity: SeverityInfo,
		applies: func(c *persona.Config) bool {
			return c.Roasting == persona.RoastOff && hasRoastExamples(c)
		},
		resolutions: []Resolution{
			{Label: "Enable gentle roasting", apply: func(c *persona.Config) { c.Roasting = persona.RoastGentle }},
		},
	},
}

// Evaluate runs every rule in fixed order and returns the issues that apply
func Evaluate(cfg *persona.Config) []Issue {
	var issues []Issue
	for _, r := range rules {
		if !r.applies(cfg) {
			continue
		}
		issues = append(issues, Issue{
			ID:          r.id,
			Message:     r.message,
			Severity:    r.severity,
			Resolutions: slices.Clone(r.resolutions),
		})
	}
	return issues
}

// Apply evaluates cfg and applies resolution index of the named issue
func Apply(cfg *persona.Config, issueID string, index int) (*persona.Config, error) {
	for _, issue := range Evaluate(cfg) {
		if issue.ID != issueID {
			continue
		}
		if index < 0 || index >= len(issue.Resolutions) {
			return nil, fmt.Errorf("%w: %s has %d options, got %d", ErrUnknownResolution, issueID, len(issue.Resolutions), index)
		}
		return issue.Resolutions[index].Mutate(cfg), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownIssue, issueID)
}
