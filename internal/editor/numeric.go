package editor

import (
	"fmt"
	"math"
	"strconv"
)

// NumericKind selects the keystroke filter and normalizer of a numeric editor.
type NumericKind int

const (
	Integer NumericKind = iota
	Float
)

func (k NumericKind) String() string {
	switch k {
	case Integer:
		return "integer"
	case Float:
		return "float"
	}
	return fmt.Sprintf("NumericKind(%d)", int(k))
}

// IsDigit reports whether key is a single ASCII digit.
func IsDigit(key string) bool {
	return len(key) == 1 && key[0] >= '0' && key[0] <= '9'
}

// Accepts reports whether a single keystroke is valid input for kind.
// An empty key (no keystroke) is never accepted.
func Accepts(kind NumericKind, key string) bool {
	if IsDigit(key) {
		return true
	}
	return kind == Float && key == "."
}

// Numeric is an input editor restricted to integer or float text.
type Numeric struct {
	kind              NumericKind
	input             field
	initialCharacter  string
	cancelBeforeStart bool
}

// NewNumeric returns a numeric editor for kind.
func NewNumeric(kind NumericKind) *Numeric {
	return &Numeric{kind: kind}
}

func (n *Numeric) Kind() Kind {
	if n.kind == Float {
		return KindFloat
	}
	return KindInteger
}

// NumericKind returns the editor's numeric kind.
func (n *Numeric) NumericKind() NumericKind { return n.kind }

// Init seeds the field. Only a digit starts the edit with the keystroke; any
// other keystroke cancels before start, whatever the numeric kind.
func (n *Numeric) Init(p InitParams) {
	n.initialCharacter = p.CharPress
	if IsDigit(p.CharPress) {
		n.input.set(p.CharPress)
	} else if p.Value != nil {
		n.input.set(FormatValue(p.Value))
	}
	n.cancelBeforeStart = p.CharPress != "" && !IsDigit(p.CharPress)
}

func (n *Numeric) AfterGuiAttached() { n.input.focused = true }

func (n *Numeric) IsCancelBeforeStart() bool { return n.cancelBeforeStart }

// HandleKey filters a keystroke. Rejected keys are not inserted and focus is
// pulled back to the field. Left/right arrows still move the cursor and are
// passed on to the host.
func (n *Numeric) HandleKey(key string) KeyResult {
	switch key {
	case KeyBackspace, KeyDelete, KeyHome, KeyEnd:
		n.input.edit(key)
		return KeyResult{}
	}

	if Accepts(n.kind, key) {
		n.input.insert(key)
		return KeyResult{}
	}

	res := KeyResult{Suppressed: true, Refocus: true}
	n.input.focused = true
	if IsNavigationKey(key) {
		n.input.edit(key)
		res.Propagate = true
	}
	return res
}

// GetValue returns the value to commit. Integer text is returned as typed;
// float text is normalized to two decimal places.
func (n *Numeric) GetValue() (string, error) {
	text := n.input.String()
	switch n.kind {
	case Float:
		v, err := strconv.ParseFloat(text, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return "", fmt.Errorf("%w: %q is not a valid float", ErrMalformedCommit, text)
		}
		return strconv.FormatFloat(v, 'f', 2, 64), nil
	default:
		if _, err := strconv.ParseInt(text, 10, 64); err != nil {
			return "", fmt.Errorf("%w: %q is not a valid integer", ErrMalformedCommit, text)
		}
		return text, nil
	}
}

// IsPopup is false; the column configuration decides whether the editor is
// shown in a popup.
func (n *Numeric) IsPopup() bool { return false }

// InitialCharacter returns the keystroke that started the edit, if any.
func (n *Numeric) InitialCharacter() string { return n.initialCharacter }

func (n *Numeric) View() View {
	return View{
		Kind:    n.Kind(),
		Text:    n.input.String(),
		Cursor:  n.input.cursor,
		Focused: n.input.focused,
	}
}
