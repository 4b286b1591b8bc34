package persona

import "debate-bot/internal/domain"

// Tables returns the built-in persona tables in canonical order.
func Tables() []Table {
	return []Table{ConspiracyTheorist, SkepticalScientist, Populist}
}

// Defaults builds one Strategy per built-in table sharing rng.
func Defaults(rng domain.RandomSource) []domain.Persona {
	tables := Tables()
	out := make([]domain.Persona, len(tables))
	for i, t := range tables {
		out[i] = New(t, rng)
	}
	return out
}
