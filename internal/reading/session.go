// Package reading orchestrates one reading: the petition and question
// fields, the thinking delay after submit, and the rune-by-rune reveal of the
// chosen answer.
//
// The session never starts timers itself. Operations that need to resume
// later return a Ticket; the caller schedules it and hands it back. Each
// ticket carries the generation it was issued in, and Reset moves the
// session to a new generation, so tickets still in flight are dropped.
package reading

import (
	"time"
	"unicode/utf8"

	"github.com/abhisek/aura/internal/covert"
)

const (
	DefaultSubmitDelay  = 2500 * time.Millisecond
	DefaultTickInterval = 50 * time.Millisecond
)

// AnswerSource records where the revealed answer came from.
type AnswerSource string

const (
	SourceNone   AnswerSource = ""
	SourceSecret AnswerSource = "secret"
	SourceDecoy  AnswerSource = "decoy"
)

// TicketKind identifies what a ticket resumes.
type TicketKind int

const (
	KindResolve TicketKind = iota // end of the thinking delay
	KindReveal                    // one reveal tick
)

func (k TicketKind) String() string {
	switch k {
	case KindResolve:
		return "resolve"
	case KindReveal:
		return "reveal"
	}
	return "unknown"
}

// Ticket is a scheduled continuation. Delay is how long the caller must wait
// before handing it back.
type Ticket struct {
	Kind  TicketKind
	Gen   uint64
	Delay time.Duration
}

// Timing configures the two suspension points.
type Timing struct {
	SubmitDelay  time.Duration
	TickInterval time.Duration
}

// DefaultTiming returns the standard delays.
func DefaultTiming() Timing {
	return Timing{
		SubmitDelay:  DefaultSubmitDelay,
		TickInterval: DefaultTickInterval,
	}
}

// Session is the state of a single reading.
type Session struct {
	ctrl   covert.Controller
	timing Timing

	petition covert.State
	question string

	answer   string
	typed    string
	source   AnswerSource
	thinking bool
	shown    bool

	gen uint64
}

// NewSession creates an empty session.
func NewSession(ctrl covert.Controller, timing Timing) *Session {
	return &Session{
		ctrl:     ctrl,
		timing:   timing,
		petition: ctrl.Reset(),
	}
}

// Petition returns the petition field state.
func (s *Session) Petition() covert.State { return s.petition }

// Question returns the public question.
func (s *Session) Question() string { return s.question }

// Answer returns the chosen answer, or "" before it is chosen.
func (s *Session) Answer() string { return s.answer }

// Typed returns the part of the answer revealed so far.
func (s *Session) Typed() string { return s.typed }

// Source returns where the answer came from.
func (s *Session) Source() AnswerSource { return s.source }

// Thinking reports whether the delay before the answer is running.
func (s *Session) Thinking() bool { return s.thinking }

// AnswerShown reports whether the reveal view is active.
func (s *Session) AnswerShown() bool { return s.shown }

// Revealing reports whether reveal ticks are still outstanding.
func (s *Session) Revealing() bool { return s.shown && s.typed != s.answer }

// Generation returns the current ticket generation.
func (s *Session) Generation() uint64 { return s.gen }

// Timing returns the configured delays.
func (s *Session) Timing() Timing { return s.timing }

// InputLocked reports whether the fields are frozen.
func (s *Session) InputLocked() bool { return s.thinking || s.shown }

// CanSubmit reports whether Submit would be accepted.
func (s *Session) CanSubmit() bool {
	return !s.InputLocked() && s.petition.Display() != "" && s.question != ""
}

// EditPetition applies a new full value of the petition field.
func (s *Session) EditPetition(raw string) {
	if s.InputLocked() {
		return
	}
	s.petition = s.ctrl.Apply(s.petition, raw)
}

// AbortPetition cancels covert capture. It is ignored once input is locked.
func (s *Session) AbortPetition() bool {
	if s.InputLocked() || !s.petition.Hiding() {
		return false
	}
	s.petition = s.ctrl.Abort(s.petition)
	return true
}

// EditQuestion sets the public question.
func (s *Session) EditQuestion(raw string) {
	if s.InputLocked() {
		return
	}
	s.question = raw
}

// Submit starts the thinking delay. The returned ticket must be handed to
// Resolve after its Delay.
func (s *Session) Submit() (Ticket, bool) {
	if !s.CanSubmit() {
		return Ticket{}, false
	}
	s.gen++
	s.thinking = true
	return Ticket{Kind: KindResolve, Gen: s.gen, Delay: s.timing.SubmitDelay}, true
}

// Resolve ends the thinking delay and picks the answer: the captured secret
// if there is one, otherwise a decoy from pick. It returns the first reveal
// ticket, if any runes remain to be shown.
func (s *Session) Resolve(t Ticket, pick Picker) (Ticket, bool) {
	if t.Kind != KindResolve || t.Gen != s.gen || !s.thinking {
		return Ticket{}, false
	}

	if secret := s.petition.Secret(); secret != "" {
		s.answer = secret
		s.source = SourceSecret
	} else {
		s.answer = pick.Pick()
		s.source = SourceDecoy
	}
	s.thinking = false
	s.shown = true

	return s.restartReveal()
}

// Tick reveals one more rune of the answer and returns the next ticket while
// runes remain.
func (s *Session) Tick(t Ticket) (Ticket, bool) {
	if t.Kind != KindReveal || t.Gen != s.gen || !s.shown {
		return Ticket{}, false
	}

	n := utf8.RuneCountInString(s.typed)
	runes := []rune(s.answer)
	if n < len(runes) {
		s.typed = string(runes[:n+1])
	}
	if s.typed == s.answer {
		return Ticket{}, false
	}
	return s.revealTicket(), true
}

// Reset clears the session back to its initial values and cancels any
// outstanding ticket.
func (s *Session) Reset() {
	s.petition = s.ctrl.Reset()
	s.question = ""
	s.answer = ""
	s.typed = ""
	s.source = SourceNone
	s.thinking = false
	s.shown = false
	s.gen++
}

// Cancel drops outstanding tickets without touching the fields.
func (s *Session) Cancel() {
	s.gen++
}

func (s *Session) restartReveal() (Ticket, bool) {
	s.gen++
	s.typed = ""
	if s.answer == "" {
		return Ticket{}, false
	}
	return s.revealTicket(), true
}

func (s *Session) revealTicket() Ticket {
	return Ticket{Kind: KindReveal, Gen: s.gen, Delay: s.timing.TickInterval}
}
