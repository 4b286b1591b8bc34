package usecase

import (
	"strings"
	"unicode/utf8"

	"debate-bot/internal/domain"
)

// maxContextTopicLength bounds the topic handed to personas for fallback
// templates, in characters.
const maxContextTopicLength = 100

type personaKeywords struct {
	personality domain.PersonalityType
	keywords    []string
}

// selectionKeywords drives automatic persona choice for a conversation's
// first message. Groups are checked in order.
var selectionKeywords = []personaKeywords{
	{domain.PersonalityConspiracyTheorist, []string{"vaccine", "vaccination", "pharma", "medicine", "health", "immunity"}},
	{domain.PersonalitySkepticalScientist, []string{"climate", "warming", "carbon", "environment", "green", "fossil"}},
	{domain.PersonalityPopulist, []string{"economic", "capitalism", "market", "business", "job", "worker", "education", "immigration", "elite"}},
}

// DebateOrchestrator picks the persona for a conversation, keeps it fixed
// for the conversation's lifetime, and delegates reply generation to it.
type DebateOrchestrator struct {
	personas map[domain.PersonalityType]domain.Persona
	order    []domain.PersonalityType
	rng      domain.RandomSource
}

// NewDebateOrchestrator registers personas in the given order. Later
// personas with a duplicate type replace earlier ones.
func NewDebateOrchestrator(personas []domain.Persona, rng domain.RandomSource) *DebateOrchestrator {
	o := &DebateOrchestrator{
		personas: make(map[domain.PersonalityType]domain.Persona, len(personas)),
		rng:      rng,
	}
	for _, p := range personas {
		if _, dup := o.personas[p.Type()]; !dup {
			o.order = append(o.order, p.Type())
		}
		o.personas[p.Type()] = p
	}
	return o
}

// GenerateBotResponse returns the bot's reply to userMessage, committing a
// persona on conv if none is committed yet. Unknown persona names, whether
// committed or preferred, are ignored rather than reported.
func (o *DebateOrchestrator) GenerateBotResponse(conv *domain.Conversation, userMessage, preferred string) string {
	personality := o.resolve(conv, userMessage, preferred)
	persona, ok := o.personas[personality]
	if !ok {
		return ""
	}

	if _, committed := conv.Personality(); !committed {
		conv.CommitPersonality(personality)
	}

	return persona.GenerateResponse(domain.DebateContext{
		Topic:       truncateRunes(userMessage, maxContextTopicLength),
		UserMessage: userMessage,
		BotStance:   personality.Stance(),
		History:     []string{},
	})
}

// resolve picks the persona for this turn: committed, preferred, keyword
// match, then random.
func (o *DebateOrchestrator) resolve(conv *domain.Conversation, userMessage, preferred string) domain.PersonalityType {
	if committed, ok := conv.Personality(); ok {
		if p, ok := domain.ParsePersonality(string(committed)); ok && o.has(p) {
			return p
		}
	}
	if p, ok := domain.ParsePersonality(preferred); ok && o.has(p) {
		return p
	}
	return o.selectByKeywords(userMessage)
}

func (o *DebateOrchestrator) has(p domain.PersonalityType) bool {
	_, ok := o.personas[p]
	return ok
}

func (o *DebateOrchestrator) selectByKeywords(userMessage string) domain.PersonalityType {
	lower := strings.ToLower(userMessage)
	for _, group := range selectionKeywords {
		if !o.has(group.personality) {
			continue
		}
		for _, k := range group.keywords {
			if strings.Contains(lower, k) {
				return group.personality
			}
		}
	}
	return o.random()
}

func (o *DebateOrchestrator) random() domain.PersonalityType {
	if len(o.order) == 0 {
		return ""
	}
	return o.order[o.rng.IntN(len(o.order))]
}

// AvailablePersonalities lists the registered personas in registration order.
func (o *DebateOrchestrator) AvailablePersonalities() []domain.PersonalityType {
	out := make([]domain.PersonalityType, len(o.order))
	copy(out, o.order)
	return out
}

// InitialStance returns the opening framing of a randomly chosen persona.
func (o *DebateOrchestrator) InitialStance(topic string) string {
	p, ok := o.personas[o.random()]
	if !ok {
		return ""
	}
	return p.InitialStance(topic)
}

// InitialStanceFor returns the opening framing of a specific persona.
func (o *DebateOrchestrator) InitialStanceFor(personality domain.PersonalityType, topic string) (string, bool) {
	p, ok := o.personas[personality]
	if !ok {
		return "", false
	}
	return p.InitialStance(topic), true
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
