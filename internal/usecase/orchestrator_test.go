package usecase

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"debate-bot/internal/domain"
	"debate-bot/internal/infra/random"
)

func newConv(t *testing.T) *domain.Conversation {
	t.Helper()
	c, err := domain.NewConversation(domain.NewConversationID(), time.Time{}, domain.DefaultMaxHistory)
	require.NoError(t, err)
	return c
}

func TestOrchestratorKeywordSelection(t *testing.T) {
	tests := []struct {
		msg  string
		want domain.PersonalityType
	}{
		{"Big pharma makes good medicine", domain.PersonalityConspiracyTheorist},
		{"Natural immunity is a myth", domain.PersonalityConspiracyTheorist},
		{"Fossil fuels must go", domain.PersonalitySkepticalScientist},
		{"We need a green transition", domain.PersonalitySkepticalScientist},
		{"The job market is strong", domain.PersonalityPopulist},
		{"Immigration helps the economy", domain.PersonalityPopulist},
		// Conspiracy keywords are checked first.
		{"health effects of climate change", domain.PersonalityConspiracyTheorist},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			o := NewDebateOrchestrator(asPersonas(mockPersonas()), random.Fixed(2))
			conv := newConv(t)
			o.GenerateBotResponse(conv, tt.msg, "")
			p, ok := conv.Personality()
			require.True(t, ok)
			assert.Equal(t, tt.want, p)
		})
	}
}

func TestOrchestratorRandomFallback(t *testing.T) {
	for i, want := range domain.AllPersonalities() {
		o := NewDebateOrchestrator(asPersonas(mockPersonas()), random.Fixed(i))
		conv := newConv(t)
		o.GenerateBotResponse(conv, "pineapple on pizza", "")
		p, _ := conv.Personality()
		assert.Equal(t, want, p)
	}
}

func TestOrchestratorPreferredPersonality(t *testing.T) {
	o := NewDebateOrchestrator(asPersonas(mockPersonas()), random.Fixed(0))
	conv := newConv(t)
	reply := o.GenerateBotResponse(conv, "vaccines are great", "populist")
	assert.Equal(t, "populist reply", reply)
	p, _ := conv.Personality()
	assert.Equal(t, domain.PersonalityPopulist, p)
}

func TestOrchestratorUnknownPreferredIsIgnored(t *testing.T) {
	o := NewDebateOrchestrator(asPersonas(mockPersonas()), random.Fixed(0))
	conv := newConv(t)
	reply := o.GenerateBotResponse(conv, "global warming is real", "flat_earther")
	assert.Equal(t, "scientist reply", reply)
}

func TestOrchestratorPersonaIsStable(t *testing.T) {
	o := NewDebateOrchestrator(asPersonas(mockPersonas()), random.Fixed(0))
	conv := newConv(t)

	assert.Equal(t, "scientist reply", o.GenerateBotResponse(conv, "climate change is real", ""))
	// Later messages that would select other personas, and even an explicit
	// preference, do not move the committed persona.
	assert.Equal(t, "scientist reply", o.GenerateBotResponse(conv, "vaccines save lives", ""))
	assert.Equal(t, "scientist reply", o.GenerateBotResponse(conv, "the market decides", "populist"))

	p, _ := conv.Personality()
	assert.Equal(t, domain.PersonalitySkepticalScientist, p)
}

func TestOrchestratorUnparseableCommittedPersona(t *testing.T) {
	o := NewDebateOrchestrator(asPersonas(mockPersonas()), random.Fixed(0))

	snap := newConv(t).Snapshot()
	snap.Personality = "retired_persona"
	conv, err := domain.RestoreConversation(snap)
	require.NoError(t, err)

	reply := o.GenerateBotResponse(conv, "the market decides", "")
	assert.Equal(t, "populist reply", reply)
	// The stored value is left alone.
	p, _ := conv.Personality()
	assert.Equal(t, domain.PersonalityType("retired_persona"), p)
}

func TestOrchestratorDebateContext(t *testing.T) {
	personas := mockPersonas()
	o := NewDebateOrchestrator(asPersonas(personas), random.Fixed(0))
	conv := newConv(t)

	long := "vaccines " + strings.Repeat("é", 150)
	o.GenerateBotResponse(conv, long, "")

	seen := personas[0].contexts()
	require.Len(t, seen, 1)
	dc := seen[0]
	assert.Equal(t, long, dc.UserMessage)
	assert.Equal(t, 100, len([]rune(dc.Topic)))
	assert.True(t, strings.HasPrefix(long, dc.Topic))
	assert.Equal(t, "skeptical_of_mainstream_narrative", dc.BotStance)
	assert.NotNil(t, dc.History)
	assert.Empty(t, dc.History)
}

func TestOrchestratorAvailablePersonalities(t *testing.T) {
	o := NewDebateOrchestrator(asPersonas(mockPersonas()), random.Fixed(0))
	assert.Equal(t, domain.AllPersonalities(), o.AvailablePersonalities())

	// Callers cannot mutate the orchestrator's list.
	list := o.AvailablePersonalities()
	list[0] = "mutated"
	assert.Equal(t, domain.AllPersonalities(), o.AvailablePersonalities())
}

func TestOrchestratorInitialStance(t *testing.T) {
	o := NewDebateOrchestrator(asPersonas(mockPersonas()), random.Fixed(1))
	assert.Equal(t, "skeptical_scientist on tea", o.InitialStance("tea"))

	s, ok := o.InitialStanceFor(domain.PersonalityPopulist, "tea")
	assert.True(t, ok)
	assert.Equal(t, "populist on tea", s)
	_, ok = o.InitialStanceFor("nobody", "tea")
	assert.False(t, ok)
}

func TestOrchestratorWithoutPersonas(t *testing.T) {
	o := NewDebateOrchestrator(nil, random.Fixed(0))
	conv := newConv(t)
	assert.Equal(t, "", o.GenerateBotResponse(conv, "anything at all", ""))
	_, ok := conv.Personality()
	assert.False(t, ok)
	assert.Equal(t, "", o.InitialStance("x"))
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "abc", truncateRunes("abc", 5))
	assert.Equal(t, "ab", truncateRunes("abc", 2))
	assert.Equal(t, "éé", truncateRunes("ééé", 2))
	assert.Equal(t, "", truncateRunes("abc", 0))
}
