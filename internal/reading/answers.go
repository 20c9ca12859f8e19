package reading

import (
	"math/rand/v2"
)

// DefaultAnswers are the filler replies used when no secret was captured.
var DefaultAnswers = []string{
	"Aura answers only to its master.",
	"Not in the mood to answer.",
	"The ether is silent on this matter...",
	"The stars do not align for such a query.",
	"That is a question for another time.",
	"Seek the answer within yourself.",
	"The future is clouded, ask again later.",
	"Consult the void, for it holds what you seek.",
	"Energy signatures are unclear. Rephrase your petition.",
	"The path you walk is your own to discover.",
	"A whisper on the cosmic wind is your only reply.",
}

// Picker chooses a decoy answer.
type Picker interface {
	Pick() string
}

// RandomPicker picks uniformly from a fixed list.
type RandomPicker struct {
	answers []string
	rng     *rand.Rand
}

// NewRandomPicker creates a picker over answers. A nil rng uses a randomly
// seeded source.
func NewRandomPicker(answers []string, rng *rand.Rand) *RandomPicker {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	list := make([]string, len(answers))
	copy(list, answers)
	return &RandomPicker{answers: list, rng: rng}
}

// Pick returns one of the answers, or "" if the list is empty.
func (p *RandomPicker) Pick() string {
	if len(p.answers) == 0 {
		return ""
	}
	return p.answers[p.rng.IntN(len(p.answers))]
}
