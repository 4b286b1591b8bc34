package persona

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"debate-bot/internal/domain"
	"debate-bot/internal/infra/random"
)

func ctx(msg string) domain.DebateContext {
	return domain.DebateContext{Topic: msg, UserMessage: msg}
}

func TestRuleChildrenFirstMatchWins(t *testing.T) {
	s := New(Table{
		Rules: []Rule{
			{
				Keywords: []string{"alpha"},
				Children: []Rule{
					{Keywords: []string{"beta"}, Reply: "alpha-beta"},
					{Keywords: []string{"gamma"}, Reply: "alpha-gamma"},
					{Reply: "alpha-default"},
				},
			},
			{Keywords: []string{"delta"}, Reply: "delta"},
		},
		Fallbacks: []string{"fallback about {topic}"},
	}, random.Fixed(0))

	assert.Equal(t, "alpha-beta", s.GenerateResponse(ctx("ALPHA beta gamma")))
	assert.Equal(t, "alpha-gamma", s.GenerateResponse(ctx("alpha gamma")))
	assert.Equal(t, "alpha-default", s.GenerateResponse(ctx("alpha delta")))
	assert.Equal(t, "delta", s.GenerateResponse(ctx("delta")))
	assert.Equal(t, "fallback about zeta", s.GenerateResponse(ctx("zeta")))
}

func TestRuleWithoutDefaultChildFallsThrough(t *testing.T) {
	s := New(Table{
		Rules: []Rule{
			{Keywords: []string{"alpha"}, Children: []Rule{{Keywords: []string{"beta"}, Reply: "alpha-beta"}}},
			{Keywords: []string{"alpha"}, Reply: "second"},
		},
	}, random.Fixed(0))
	assert.Equal(t, "second", s.GenerateResponse(ctx("alpha")))
}

func TestFallbackUsesRandomSource(t *testing.T) {
	table := Table{Fallbacks: []string{"a {topic}", "b {topic}", "c {topic}"}}
	for i, want := range []string{"a x", "b x", "c x"} {
		s := New(table, random.Fixed(i))
		assert.Equal(t, want, s.GenerateResponse(domain.DebateContext{Topic: "x", UserMessage: "nothing"}))
	}
}

func TestEmptyTable(t *testing.T) {
	s := New(Table{}, random.Fixed(0))
	assert.Equal(t, "", s.GenerateResponse(ctx("anything")))
	assert.Equal(t, "", s.InitialStance("anything"))
}

func TestTablesAreWellFormed(t *testing.T) {
	seen := make(map[domain.PersonalityType]bool)
	for _, table := range Tables() {
		t.Run(string(table.Personality), func(t *testing.T) {
			_, ok := domain.ParsePersonality(string(table.Personality))
			require.True(t, ok)
			assert.False(t, seen[table.Personality], "duplicate table")
			seen[table.Personality] = true

			assert.Len(t, table.Fallbacks, 3)
			for _, f := range table.Fallbacks {
				assert.Contains(t, f, topicPlaceholder)
			}
			assert.Contains(t, table.Stance, topicPlaceholder)

			for _, r := range table.Rules {
				require.NotEmpty(t, r.Keywords)
				for _, k := range r.Keywords {
					assert.Equal(t, strings.ToLower(k), k, "keywords must be lowercase")
				}
				if len(r.Children) > 0 {
					last := r.Children[len(r.Children)-1]
					assert.Empty(t, last.Keywords, "last child should be the branch default")
				}
				for _, c := range r.Children {
					assert.NotEmpty(t, c.Reply)
				}
			}
		})
	}
	assert.Len(t, seen, 3)
}

func TestDefaults(t *testing.T) {
	ps := Defaults(random.Fixed(0))
	require.Len(t, ps, 3)
	assert.Equal(t, domain.PersonalityConspiracyTheorist, ps[0].Type())
	assert.Equal(t, domain.PersonalitySkepticalScientist, ps[1].Type())
	assert.Equal(t, domain.PersonalityPopulist, ps[2].Type())
}
