package tetris

import (
	"math/rand"

	"github.com/vovakirdan/tui-tetris/internal/config"
)

// Randomizer picks the type of each newly generated piece.
type Randomizer interface {
	Next() PieceType
}

// NewRandomizer returns the randomizer named by the rules, seeded for
// reproducible sequences.
func NewRandomizer(name string, seed int64) Randomizer {
	rng := rand.New(rand.NewSource(seed))
	if name == config.RandomizerBag {
		return &bagRandomizer{rng: rng}
	}
	return &uniformRandomizer{rng: rng}
}

// uniformRandomizer draws every piece independently with equal odds.
type uniformRandomizer struct {
	rng *rand.Rand
}

func (u *uniformRandomizer) Next() PieceType {
	return PieceType(u.rng.Intn(pieceCount)) + PieceI
}

// bagRandomizer deals shuffled bags holding one of each piece, so no type
// is ever absent for more than 12 pieces.
type bagRandomizer struct {
	rng *rand.Rand
	bag []PieceType
}

func (b *bagRandomizer) Next() PieceType {
	if len(b.bag) == 0 {
		b.bag = Types()
		b.rng.Shuffle(len(b.bag), func(i, j int) {
			b.bag[i], b.bag[j] = b.bag[j], b.bag[i]
		})
	}
	t := b.bag[0]
	b.bag = b.bag[1:]
	return t
}
