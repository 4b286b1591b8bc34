// Package persona implements the debate personas as keyword rule tables.
//
// A table is scanned top to bottom: the first rule whose keywords occur in
// the lowercased user message answers. A rule with children answers with its
// first matching child; a child without keywords is the branch default. When
// no rule matches, one of the fallback templates is chosen at random and
// "{topic}" is replaced with the debate topic.
package persona

import (
	"strings"

	"debate-bot/internal/domain"
)

const topicPlaceholder = "{topic}"

// Rule is one entry of a persona's dispatch table.
type Rule struct {
	Keywords []string
	Reply    string
	Children []Rule
}

func (r Rule) matches(msg string) bool {
	if len(r.Keywords) == 0 {
		return true
	}
	for _, k := range r.Keywords {
		if strings.Contains(msg, k) {
			return true
		}
	}
	return false
}

func (r Rule) reply(msg string) (string, bool) {
	if len(r.Children) == 0 {
		return r.Reply, true
	}
	for _, c := range r.Children {
		if c.matches(msg) {
			return c.reply(msg)
		}
	}
	if r.Reply != "" {
		return r.Reply, true
	}
	return "", false
}

// Table describes a persona completely.
type Table struct {
	Personality domain.PersonalityType
	Rules       []Rule
	Fallbacks   []string
	Stance      string
}

// Strategy is a domain.Persona backed by a Table.
type Strategy struct {
	table Table
	rng   domain.RandomSource
}

// New returns a Strategy for t. rng picks among fallback templates.
func New(t Table, rng domain.RandomSource) *Strategy {
	return &Strategy{table: t, rng: rng}
}

// Type implements domain.Persona.
func (s *Strategy) Type() domain.PersonalityType { return s.table.Personality }

// GenerateResponse implements domain.Persona.
func (s *Strategy) GenerateResponse(dc domain.DebateContext) string {
	msg := strings.ToLower(dc.UserMessage)
	for _, r := range s.table.Rules {
		if !r.matches(msg) {
			continue
		}
		if reply, ok := r.reply(msg); ok {
			return reply
		}
	}
	return s.fallback(dc.Topic)
}

func (s *Strategy) fallback(topic string) string {
	n := len(s.table.Fallbacks)
	if n == 0 {
		return ""
	}
	tpl := s.table.Fallbacks[0]
	if n > 1 {
		tpl = s.table.Fallbacks[s.rng.IntN(n)]
	}
	return strings.ReplaceAll(tpl, topicPlaceholder, topic)
}

// InitialStance implements domain.Persona.
func (s *Strategy) InitialStance(topic string) string {
	return strings.ReplaceAll(s.table.Stance, topicPlaceholder, topic)
}

var _ domain.Persona = (*Strategy)(nil)
