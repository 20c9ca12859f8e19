package reading

import (
	"math/rand/v2"
	"testing"
)

func TestDefaultAnswersCount(t *testing.T) {
	if len(DefaultAnswers) != 11 {
		t.Errorf("expected 11 decoy answers, got %d", len(DefaultAnswers))
	}
}

func TestRandomPickerCoversList(t *testing.T) {
	p := NewRandomPicker(DefaultAnswers, rand.New(rand.NewPCG(7, 11)))

	seen := make(map[string]int)
	for i := 0; i < 5000; i++ {
		seen[p.Pick()]++
	}

	if len(seen) != len(DefaultAnswers) {
		t.Errorf("picked %d distinct answers, want %d", len(seen), len(DefaultAnswers))
	}
	for _, a := range DefaultAnswers {
		if seen[a] == 0 {
			t.Errorf("answer %q never picked", a)
		}
	}
}

func TestRandomPickerCopiesInput(t *testing.T) {
	src := []string{"one"}
	p := NewRandomPicker(src, nil)
	src[0] = "mutated"

	if got := p.Pick(); got != "one" {
		t.Errorf("Pick = %q, want %q", got, "one")
	}
}

func TestRandomPickerEmpty(t *testing.T) {
	p := NewRandomPicker(nil, nil)
	if got := p.Pick(); got != "" {
		t.Errorf("Pick on empty list = %q, want empty", got)
	}
}
