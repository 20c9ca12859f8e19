// Package oracle is the main screen: the petition and question fields, the
// thinking delay and the typewriter reveal.
package oracle

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/aura/internal/covert"
	"github.com/abhisek/aura/internal/logging"
	"github.com/abhisek/aura/internal/reading"
	"github.com/abhisek/aura/internal/router"
	"github.com/abhisek/aura/internal/screen"
	"github.com/abhisek/aura/internal/screens/journal"
	"github.com/abhisek/aura/internal/store"
	"github.com/abhisek/aura/internal/ui/components"
	"github.com/abhisek/aura/internal/ui/layout"
)

const (
	focusPetition = iota
	focusQuestion
)

const (
	thinkingPulse = 90 * time.Millisecond
	shownPulse    = 240 * time.Millisecond
)

// cursorKeys move the caret inside a text input. They are swallowed while
// the petition is capturing so every edit lands at the end of the field.
var cursorKeys = map[string]bool{
	"left": true, "right": true, "home": true, "end": true,
	"ctrl+a": true, "ctrl+e": true, "ctrl+b": true, "ctrl+f": true,
	"alt+left": true, "alt+right": true, "alt+b": true, "alt+f": true,
	"ctrl+left": true, "ctrl+right": true,
	"delete": true, "ctrl+d": true, "ctrl+k": true,
}

// Options configures an OracleScreen.
type Options struct {
	Controller covert.Controller
	Timing     reading.Timing
	Picker     reading.Picker
	Repo       store.ReadingRepo // nil disables the journal
	Logger     *slog.Logger
}

// OracleScreen implements screen.Screen for the petition form and reveal.
type OracleScreen struct {
	session *reading.Session
	picker  reading.Picker
	repo    store.ReadingRepo
	logger  *slog.Logger

	petition components.Field
	question components.Field
	focus    int

	spinner  spinner.Model
	core     components.AuraCore
	pulsing  bool
	pulseGen int

	errMsg string
}

var _ screen.Screen = (*OracleScreen)(nil)
var _ screen.KeyHintProvider = (*OracleScreen)(nil)

// New creates an OracleScreen. A zero Timing falls back to the defaults and
// a nil Picker to the built-in decoy answers.
func New(opts Options) *OracleScreen {
	if opts.Timing == (reading.Timing{}) {
		opts.Timing = reading.DefaultTiming()
	}
	if opts.Picker == nil {
		opts.Picker = reading.NewRandomPicker(reading.DefaultAnswers, nil)
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}

	s := &OracleScreen{
		session:  reading.NewSession(opts.Controller, opts.Timing),
		picker:   opts.Picker,
		repo:     opts.Repo,
		logger:   opts.Logger.With("component", "oracle"),
		petition: components.NewField("Petition", "Speak your petition to Aura..."),
		question: components.NewField("Question", "What do you wish to know?"),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	s.petition.Focus()
	return s
}

func (s *OracleScreen) Init() tea.Cmd {
	return s.petition.Focus()
}

func (s *OracleScreen) Title() string {
	return "Oracle"
}

// Session exposes the underlying reading session.
func (s *OracleScreen) Session() *reading.Session {
	return s.session
}

func (s *OracleScreen) KeyHints() []layout.KeyHint {
	var hints []layout.KeyHint
	switch {
	case s.session.Thinking():
		hints = append(hints, layout.KeyHint{Key: "…", Description: "Aura is consulting the ether"})
	case s.session.AnswerShown():
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Ask again"})
	default:
		hints = append(hints,
			layout.KeyHint{Key: "Tab", Description: "Switch field"},
			layout.KeyHint{Key: "Enter", Description: "Ask Aura"},
		)
	}
	if s.canOpenJournal() {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+R", Description: "Journal"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

// Resume restarts the core pulse when the journal is closed over a shown
// answer, or refocuses the form otherwise.
func (s *OracleScreen) Resume() tea.Cmd {
	if s.session.AnswerShown() {
		return s.startPulse()
	}
	if s.focus == focusPetition {
		return s.petition.Focus()
	}
	return s.question.Focus()
}

func (s *OracleScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case ticketMsg:
		return s.handleTicket(msg.Ticket)

	case pulseMsg:
		if msg.gen != s.pulseGen {
			return s, nil
		}
		return s.handlePulse()

	case spinner.TickMsg:
		// Dropping the tick ends the spinner chain once thinking is over.
		if !s.session.Thinking() {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case journaledMsg:
		if msg.Err != nil {
			s.logger.Warn("journal write failed", "err", msg.Err)
			s.errMsg = "The journal could not record this reading."
			return s, nil
		}
		s.logger.Debug("reading journaled", "id", msg.Reading.ID, "sequence", msg.Reading.Sequence)
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	return s.forwardToField(msg)
}

// canOpenJournal reports whether the journal is enabled and no timer is
// outstanding.
func (s *OracleScreen) canOpenJournal() bool {
	return s.repo != nil && !s.session.Thinking() && !s.session.Revealing()
}

func (s *OracleScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+r" && s.canOpenJournal() {
		// Leaving the screen: nothing may be left ticking behind the journal.
		s.session.Cancel()
		s.stopPulse()
		next := journal.New(s.repo)
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	}

	if s.session.Thinking() {
		return s, nil
	}

	if s.session.AnswerShown() {
		switch key {
		case "enter", "r":
			return s.reset()
		}
		return s, nil
	}

	switch key {
	case "esc":
		if s.focus == focusPetition && s.session.AbortPetition() {
			s.logger.Debug("petition capture aborted")
			s.syncFields()
		}
		return s, nil
	case "tab", "shift+tab", "up", "down":
		return s, s.toggleFocus()
	case "enter":
		if s.session.CanSubmit() {
			return s.submit()
		}
		if s.focus == focusPetition {
			return s, s.toggleFocus()
		}
		return s, nil
	}

	if s.focus == focusPetition && s.session.Petition().Hiding() && cursorKeys[key] {
		return s, nil
	}

	return s.forwardToField(msg)
}

// forwardToField hands msg to the focused text input and folds the
// resulting value back into the session.
func (s *OracleScreen) forwardToField(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	if s.focus == focusPetition {
		before := s.petition.Value()
		s.petition, cmd = s.petition.Update(msg)
		if v := s.petition.Value(); v != before {
			s.applyPetition(v)
		}
		return s, cmd
	}

	before := s.question.Value()
	s.question, cmd = s.question.Update(msg)
	if v := s.question.Value(); v != before {
		s.session.EditQuestion(v)
		s.syncFields()
	}
	return s, cmd
}

// applyPetition feeds a full field value through the covert controller and
// writes the decoy display back into the field.
func (s *OracleScreen) applyPetition(raw string) {
	wasHiding := s.session.Petition().Hiding()
	s.session.EditPetition(raw)
	st := s.session.Petition()
	if !wasHiding && st.Hiding() {
		s.logger.Debug("petition capture engaged")
	}
	if wasHiding && !st.Hiding() {
		s.logger.Debug("petition capture ended", "state", st.Name(), "secret_len", utf8.RuneCountInString(st.Secret()))
	}
	s.syncFields()
}

func (s *OracleScreen) syncFields() {
	st := s.session.Petition()
	if s.petition.Value() != st.Display() {
		s.petition.SetValue(st.Display())
	}
	if s.question.Value() != s.session.Question() {
		s.question.SetValue(s.session.Question())
	}
	s.petition.Glow = st.Hiding()

	locked := s.session.InputLocked()
	s.petition.Disabled = locked
	s.question.Disabled = locked
}

func (s *OracleScreen) toggleFocus() tea.Cmd {
	if s.focus == focusPetition {
		s.focus = focusQuestion
		s.petition.Blur()
		return s.question.Focus()
	}
	s.focus = focusPetition
	s.question.Blur()
	return s.petition.Focus()
}

func (s *OracleScreen) submit() (screen.Screen, tea.Cmd) {
	t, ok := s.session.Submit()
	if !ok {
		return s, nil
	}
	s.errMsg = ""
	s.petition.Blur()
	s.question.Blur()
	s.syncFields()

	s.logger.Info("petition submitted",
		"question_len", utf8.RuneCountInString(s.session.Question()),
		"delay_ms", s.session.Timing().SubmitDelay.Milliseconds())
	return s, tea.Batch(ticketCmd(t), s.spinner.Tick, s.startPulse())
}

func (s *OracleScreen) handleTicket(t reading.Ticket) (screen.Screen, tea.Cmd) {
	switch t.Kind {
	case reading.KindResolve:
		wasThinking := s.session.Thinking()
		next, more := s.session.Resolve(t, s.picker)
		if !wasThinking || s.session.Thinking() {
			s.logger.Debug("stale ticket dropped", "kind", t.Kind.String(), "gen", t.Gen)
			return s, nil
		}
		s.logger.Info("answer resolved",
			"source", string(s.session.Source()),
			"secret_len", utf8.RuneCountInString(s.session.Petition().Secret()))

		cmds := []tea.Cmd{s.journalCmd()}
		if more {
			cmds = append(cmds, ticketCmd(next))
		}
		return s, tea.Batch(cmds...)

	case reading.KindReveal:
		if next, more := s.session.Tick(t); more {
			return s, ticketCmd(next)
		}
	}
	return s, nil
}

func (s *OracleScreen) reset() (screen.Screen, tea.Cmd) {
	s.session.Reset()
	s.errMsg = ""
	s.focus = focusPetition
	s.question.Blur()
	s.syncFields()
	s.logger.Debug("session reset", "generation", s.session.Generation())
	return s, s.petition.Focus()
}

func (s *OracleScreen) startPulse() tea.Cmd {
	if s.pulsing {
		return nil
	}
	s.pulsing = true
	s.core.Active = true
	return pulseCmd(thinkingPulse, s.pulseGen)
}

// stopPulse orphans the running chain. The core keeps its current look.
func (s *OracleScreen) stopPulse() {
	s.pulsing = false
	s.pulseGen++
}

func (s *OracleScreen) handlePulse() (screen.Screen, tea.Cmd) {
	switch {
	case s.session.Thinking():
		s.core.Advance()
		return s, pulseCmd(thinkingPulse, s.pulseGen)
	case s.session.AnswerShown():
		s.core.Advance()
		return s, pulseCmd(shownPulse, s.pulseGen)
	}
	s.pulsing = false
	s.core.Active = false
	return s, nil
}

// journalCmd records the finished reading off the update loop. The secret
// itself is only journaled as the revealed answer, never as petition text.
func (s *OracleScreen) journalCmd() tea.Cmd {
	if s.repo == nil {
		return nil
	}
	repo := s.repo
	data := store.ReadingData{
		Question:     s.session.Question(),
		Answer:       s.session.Answer(),
		Source:       string(s.session.Source()),
		SecretLength: utf8.RuneCountInString(s.session.Petition().Secret()),
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		r, err := repo.AppendReading(ctx, data)
		return journaledMsg{Reading: r, Err: err}
	}
}
