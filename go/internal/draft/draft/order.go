package draft

import "math/rand"

// Intner is the randomness source for turn order shuffles.
// *rand.Rand satisfies it.
type Intner interface {
	// Intn returns a uniform value in [0, n).
	Intn(n int) int
}

type globalRand struct{}

func (globalRand) Intn(n int) int { return rand.Intn(n) }

// DefaultIntner draws from the auto-seeded global source.
var DefaultIntner Intner = globalRand{}

// Shuffle permutes s in place with the Durstenfeld variant of
// Fisher-Yates: every permutation is equally likely given a uniform rng.
func Shuffle[T any](s []T, rng Intner) {
	for i := len(s) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
