package editor

import "unicode/utf8"

// Key names follow the DOM KeyboardEvent.key values. Printable keys are the
// character itself.
const (
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeyArrowUp    = "ArrowUp"
	KeyArrowDown  = "ArrowDown"
	KeyBackspace  = "Backspace"
	KeyDelete     = "Delete"
	KeyHome       = "Home"
	KeyEnd        = "End"
	KeyEnter      = "Enter"
	KeyEscape     = "Escape"
	KeyTab        = "Tab"
	KeyShiftEnter = "Shift+Enter"
)

// IsNavigationKey reports whether key moves the cursor inside a field.
func IsNavigationKey(key string) bool {
	return key == KeyArrowLeft || key == KeyArrowRight
}

// isPrintable reports whether key is a single character.
func isPrintable(key string) bool {
	return key != "" && utf8.RuneCountInString(key) == 1
}

// field is the input element behind the text-based editors.
type field struct {
	runes   []rune
	cursor  int
	focused bool
}

func (f *field) set(s string) {
	f.runes = []rune(s)
	f.cursor = len(f.runes)
}

func (f *field) String() string { return string(f.runes) }

func (f *field) insert(s string) {
	r := []rune(s)
	out := make([]rune, 0, len(f.runes)+len(r))
	out = append(out, f.runes[:f.cursor]...)
	out = append(out, r...)
	out = append(out, f.runes[f.cursor:]...)
	f.runes = out
	f.cursor += len(r)
}

// edit applies the keys an input element handles natively. It reports
// whether key was one of them.
func (f *field) edit(key string) bool {
	switch key {
	case KeyArrowLeft:
		if f.cursor > 0 {
			f.cursor--
		}
	case KeyArrowRight:
		if f.cursor < len(f.runes) {
			f.cursor++
		}
	case KeyHome:
		f.cursor = 0
	case KeyEnd:
		f.cursor = len(f.runes)
	case KeyBackspace:
		if f.cursor > 0 {
			f.runes = append(f.runes[:f.cursor-1], f.runes[f.cursor:]...)
			f.cursor--
		}
	case KeyDelete:
		if f.cursor < len(f.runes) {
			f.runes = append(f.runes[:f.cursor], f.runes[f.cursor+1:]...)
		}
	default:
		return false
	}
	return true
}

func (f *field) len() int { return len(f.runes) }
