// Package covert implements the petition field's covert input controller.
//
// While capture is engaged the field shows a growing prefix of a fixed decoy
// phrase, one rune longer than the secret captured so far, and every rune the
// user types is kept aside as the secret. Edits arrive as the field's new full
// value; a single edit may add several runes at once (paste, IME commit,
// autocomplete), and those are processed one at a time.
package covert

// DefaultPhrase is the decoy phrase shown while capturing.
const DefaultPhrase = "Aura please answer the following question."

// DefaultSentinel starts capture on an empty field and ends it while hiding.
const DefaultSentinel = '.'

// Controller holds the fixed inputs of the state machine. It has no mutable
// state of its own; every method takes a State and returns the next one.
type Controller struct {
	phrase   []rune
	sentinel rune
}

// New creates a Controller. The phrase must be at least two runes long.
func New(phrase string, sentinel rune) Controller {
	return Controller{
		phrase:   []rune(phrase),
		sentinel: sentinel,
	}
}

// Reset returns the initial state.
func (Controller) Reset() State {
	return State{mode: Idle{}}
}

// Apply folds one text-edit event into st. raw is the field's new full value.
func (c Controller) Apply(st State, raw string) State {
	h, hiding := st.mode.(Hiding)
	if !hiding {
		if st.display == "" && raw == string(c.sentinel) {
			return State{display: c.prefix(1), mode: Hiding{}}
		}
		return State{display: raw, mode: st.Mode()}
	}

	secret := []rune(h.Secret)
	expected := len(secret) + 1
	input := []rune(raw)

	switch {
	case len(input) < expected:
		if len(secret) == 0 {
			return State{mode: Idle{}}
		}
		secret = secret[:len(secret)-1]
		return State{display: c.prefix(len(secret) + 1), mode: Hiding{Secret: string(secret)}}

	case len(input) > expected:
		for _, r := range input[expected:] {
			if r == c.sentinel {
				return c.finish(secret)
			}
			secret = append(secret, r)
			if len(secret)+1 >= len(c.phrase) {
				return c.finish(secret)
			}
		}
		return State{display: c.prefix(len(secret) + 1), mode: Hiding{Secret: string(secret)}}
	}

	// Same length with different content is not produced by a text field.
	return st
}

// Abort is the escape shortcut: it cancels capture and clears the field.
// Outside capture it does nothing.
func (c Controller) Abort(st State) State {
	if !st.Hiding() {
		return st
	}
	return c.Reset()
}

func (c Controller) finish(secret []rune) State {
	return State{display: string(c.phrase), mode: Done{Secret: string(secret)}}
}

func (c Controller) prefix(n int) string {
	if n > len(c.phrase) {
		n = len(c.phrase)
	}
	return string(c.phrase[:n])
}
