package reading

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/aura/internal/covert"
)

type fixedPicker string

func (p fixedPicker) Pick() string { return string(p) }

func newTestSession() *Session {
	return NewSession(covert.New(covert.DefaultPhrase, covert.DefaultSentinel), DefaultTiming())
}

// typeSecret enters capture mode and types secret one rune at a time.
func typeSecret(s *Session, secret string) {
	s.EditPetition(".")
	for _, r := range secret {
		s.EditPetition(s.Petition().Display() + string(r))
	}
}

// runReveal drives reveal tickets until none are left.
func runReveal(t *testing.T, s *Session, first Ticket) int {
	t.Helper()
	ticks := 0
	next, ok := first, true
	for ok {
		require.Equal(t, KindReveal, next.Kind)
		next, ok = s.Tick(next)
		ticks++
		require.Less(t, ticks, 1000, "reveal did not terminate")
	}
	return ticks
}

func TestSubmitRequiresBothFields(t *testing.T) {
	s := newTestSession()

	_, ok := s.Submit()
	assert.False(t, ok, "empty session must not submit")

	s.EditPetition("hello")
	_, ok = s.Submit()
	assert.False(t, ok, "submit without question must be refused")

	s.EditQuestion("What am I thinking?")
	tk, ok := s.Submit()
	require.True(t, ok)
	assert.Equal(t, KindResolve, tk.Kind)
	assert.Equal(t, DefaultSubmitDelay, tk.Delay)
	assert.True(t, s.Thinking())
	assert.False(t, s.AnswerShown())
}

func TestSecretTakesPriority(t *testing.T) {
	s := newTestSession()
	typeSecret(s, "42")
	s.EditQuestion("How old am I?")

	tk, ok := s.Submit()
	require.True(t, ok)

	first, ok := s.Resolve(tk, fixedPicker("decoy"))
	require.True(t, ok)
	assert.Equal(t, "42", s.Answer())
	assert.Equal(t, SourceSecret, s.Source())
	assert.False(t, s.Thinking())
	assert.True(t, s.AnswerShown())
	assert.Equal(t, "", s.Typed())
	assert.Equal(t, DefaultTickInterval, first.Delay)

	ticks := runReveal(t, s, first)
	assert.Equal(t, 2, ticks)
	assert.Equal(t, "42", s.Typed())
	assert.False(t, s.Revealing())
}

func TestDecoyWhenNoSecret(t *testing.T) {
	s := newTestSession()
	s.EditPetition("Aura please tell me")
	s.EditQuestion("Will it rain?")

	picker := NewRandomPicker(DefaultAnswers, rand.New(rand.NewPCG(1, 2)))
	tk, ok := s.Submit()
	require.True(t, ok)
	first, ok := s.Resolve(tk, picker)
	require.True(t, ok)

	assert.Equal(t, SourceDecoy, s.Source())
	assert.True(t, slices.Contains(DefaultAnswers, s.Answer()), "answer %q is not a decoy", s.Answer())
	assert.NotContains(t, s.Answer(), "tell me")

	runReveal(t, s, first)
	assert.Equal(t, s.Answer(), s.Typed())
}

func TestRevealIsRuneByRune(t *testing.T) {
	s := newTestSession()
	s.EditPetition("x")
	s.EditQuestion("q")

	tk, _ := s.Submit()
	next, ok := s.Resolve(tk, fixedPicker("né!"))
	require.True(t, ok)

	var seen []string
	for ok {
		next, ok = s.Tick(next)
		seen = append(seen, s.Typed())
	}
	assert.Equal(t, []string{"n", "né", "né!"}, seen)
}

func TestInputsLockedOnceThinking(t *testing.T) {
	s := newTestSession()
	typeSecret(s, "ab")
	s.EditQuestion("q")
	tk, _ := s.Submit()

	s.EditPetition(s.Petition().Display() + "c")
	s.EditQuestion("changed")
	assert.Equal(t, "ab", s.Petition().Secret())
	assert.Equal(t, "q", s.Question())
	assert.False(t, s.AbortPetition(), "abort must be suppressed while thinking")

	_, again := s.Submit()
	assert.False(t, again, "second submit while thinking must be refused")

	first, _ := s.Resolve(tk, fixedPicker("unused"))
	runReveal(t, s, first)

	s.EditPetition("")
	s.EditQuestion("")
	assert.False(t, s.AbortPetition())
	assert.Equal(t, covert.DefaultPhrase[:3], s.Petition().Display())
	assert.Equal(t, "q", s.Question())
}

func TestAbortPetition(t *testing.T) {
	s := newTestSession()
	s.EditPetition(".")
	s.EditPetition("Ahi")
	require.Equal(t, "hi", s.Petition().Secret())
	require.Equal(t, "Aur", s.Petition().Display())

	assert.True(t, s.AbortPetition())
	assert.Equal(t, "", s.Petition().Display())
	assert.Equal(t, "", s.Petition().Secret())
	assert.False(t, s.Petition().Hiding())

	assert.False(t, s.AbortPetition(), "abort outside capture does nothing")
}

func TestResetCancelsPendingTickets(t *testing.T) {
	s := newTestSession()
	typeSecret(s, "secret")
	s.EditQuestion("q")

	resolve, _ := s.Submit()
	s.Reset()

	_, ok := s.Resolve(resolve, fixedPicker("late"))
	assert.False(t, ok, "resolve after reset must be ignored")
	assert.Equal(t, "", s.Answer())
	assert.False(t, s.AnswerShown())
	assert.False(t, s.Thinking())
}

func TestResetDuringReveal(t *testing.T) {
	s := newTestSession()
	typeSecret(s, "secret")
	s.EditQuestion("q")

	resolve, _ := s.Submit()
	tick, ok := s.Resolve(resolve, fixedPicker(""))
	require.True(t, ok)
	tick, _ = s.Tick(tick)
	require.Equal(t, "s", s.Typed())

	s.Reset()
	_, ok = s.Tick(tick)
	assert.False(t, ok)
	assert.Equal(t, "", s.Typed(), "stale tick must not write after reset")
}

func TestResetRestoresInitialState(t *testing.T) {
	s := newTestSession()
	typeSecret(s, "42")
	s.EditQuestion("q")
	tk, _ := s.Submit()
	first, _ := s.Resolve(tk, fixedPicker(""))
	runReveal(t, s, first)

	s.Reset()

	assert.Equal(t, "", s.Petition().Display())
	assert.Equal(t, "", s.Petition().Secret())
	assert.False(t, s.Petition().Hiding())
	assert.Equal(t, "", s.Question())
	assert.Equal(t, "", s.Answer())
	assert.Equal(t, "", s.Typed())
	assert.Equal(t, SourceNone, s.Source())
	assert.False(t, s.Thinking())
	assert.False(t, s.AnswerShown())
	assert.False(t, s.InputLocked())

	s.EditPetition("again")
	s.EditQuestion("again?")
	assert.True(t, s.CanSubmit(), "inputs must be re-enabled after reset")
}

func TestWrongKindTicketIgnored(t *testing.T) {
	s := newTestSession()
	s.EditPetition("p")
	s.EditQuestion("q")
	tk, _ := s.Submit()

	_, ok := s.Tick(Ticket{Kind: KindReveal, Gen: tk.Gen})
	assert.False(t, ok)
	assert.Equal(t, "", s.Typed())

	_, ok = s.Resolve(Ticket{Kind: KindReveal, Gen: tk.Gen}, fixedPicker("x"))
	assert.False(t, ok)
	assert.True(t, s.Thinking())
}

func TestEmptyDecoyListRevealsNothing(t *testing.T) {
	s := newTestSession()
	s.EditPetition("p")
	s.EditQuestion("q")
	tk, _ := s.Submit()

	_, ok := s.Resolve(tk, NewRandomPicker(nil, nil))
	assert.False(t, ok)
	assert.True(t, s.AnswerShown())
	assert.False(t, s.Revealing())
}
