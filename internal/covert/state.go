package covert

// Mode is the capture mode of the petition field. It is one of Idle,
// Hiding or Done.
type Mode interface {
	mode()
}

// Idle is the initial mode: the field mirrors what was typed and nothing is
// captured.
type Idle struct{}

// Hiding is the covert capture mode. The field shows the decoy phrase while
// every typed rune is appended to Secret.
type Hiding struct {
	Secret string
}

// Done means capture finished, either by a second sentinel or by reaching the
// end of the phrase. Secret is frozen; the field mirrors input again.
type Done struct {
	Secret string
}

func (Idle) mode()   {}
func (Hiding) mode() {}
func (Done) mode()   {}

// State is the petition field as seen by the controller.
type State struct {
	display string
	mode    Mode
}

// Display returns the text the petition field must show.
func (s State) Display() string {
	return s.display
}

// Mode returns the current capture mode. A zero State is Idle.
func (s State) Mode() Mode {
	if s.mode == nil {
		return Idle{}
	}
	return s.mode
}

// Secret returns the covertly captured text, or "" when none was captured.
func (s State) Secret() string {
	switch m := s.mode.(type) {
	case Hiding:
		return m.Secret
	case Done:
		return m.Secret
	}
	return ""
}

// Hiding reports whether covert capture is currently engaged.
func (s State) Hiding() bool {
	_, ok := s.mode.(Hiding)
	return ok
}

// Name returns a short label for the mode, used in logs and key hints.
func (s State) Name() string {
	switch s.mode.(type) {
	case Hiding:
		return "hiding"
	case Done:
		return "done"
	}
	return "idle"
}
