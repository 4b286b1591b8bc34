package domain

import "strings"

// PersonalityType names one of the debate personas.
type PersonalityType string

const (
	PersonalityConspiracyTheorist PersonalityType = "conspiracy_theorist"
	PersonalitySkepticalScientist PersonalityType = "skeptical_scientist"
	PersonalityPopulist           PersonalityType = "populist"
)

// AllPersonalities lists the personas in their canonical order.
func AllPersonalities() []PersonalityType {
	return []PersonalityType{
		PersonalityConspiracyTheorist,
		PersonalitySkepticalScientist,
		PersonalityPopulist,
	}
}

// ParsePersonality maps a wire name to a PersonalityType. Matching is exact
// after trimming whitespace.
func ParsePersonality(s string) (PersonalityType, bool) {
	p := PersonalityType(strings.TrimSpace(s))
	switch p {
	case PersonalityConspiracyTheorist, PersonalitySkepticalScientist, PersonalityPopulist:
		return p, true
	}
	return "", false
}

// Stance returns the persona's fixed stance tag.
func (p PersonalityType) Stance() string {
	switch p {
	case PersonalityConspiracyTheorist:
		return "skeptical_of_mainstream_narrative"
	case PersonalitySkepticalScientist:
		return "methodologically_critical"
	case PersonalityPopulist:
		return "pro_common_people_anti_elite"
	}
	return ""
}

func (p PersonalityType) String() string { return string(p) }

// DebateContext is the input handed to a persona when generating a reply.
type DebateContext struct {
	Topic       string
	UserMessage string
	BotStance   string
	History     []string
}

// Persona produces replies for one personality. Implementations are
// stateless apart from their source of randomness.
type Persona interface {
	Type() PersonalityType
	GenerateResponse(dc DebateContext) string
	InitialStance(topic string) string
}

// RandomSource picks a value uniformly in [0, n). Implementations must be
// safe for concurrent use.
type RandomSource interface {
	IntN(n int) int
}
