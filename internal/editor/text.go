package editor

// DefaultMaxLength and friends are the large text editor defaults.
const (
	DefaultMaxLength = 200
	DefaultRows      = 10
	DefaultCols      = 60
)

// Text is the default single-line editor. It accepts any character.
type Text struct {
	input field
	large bool
	max   int
	rows  int
	cols  int
}

// NewText returns the default text editor.
func NewText() *Text {
	return &Text{}
}

// NewLargeText returns a multi-line popup editor. Zero params fall back to
// the defaults.
func NewLargeText(p Params) *Text {
	t := &Text{large: true, max: p.MaxLength, rows: p.Rows, cols: p.Cols}
	if t.max <= 0 {
		t.max = DefaultMaxLength
	}
	if t.rows <= 0 {
		t.rows = DefaultRows
	}
	if t.cols <= 0 {
		t.cols = DefaultCols
	}
	return t
}

func (t *Text) Kind() Kind {
	if t.large {
		return KindLargeText
	}
	return KindText
}

func (t *Text) Init(p InitParams) {
	if p.CharPress != "" {
		t.input.set(p.CharPress)
		return
	}
	t.input.set(FormatValue(p.Value))
	if t.large && t.input.len() > t.max {
		t.input.set(string(t.input.runes[:t.max]))
	}
}

func (t *Text) AfterGuiAttached() { t.input.focused = true }

func (t *Text) IsCancelBeforeStart() bool { return false }

func (t *Text) HandleKey(key string) KeyResult {
	if t.input.edit(key) {
		return KeyResult{Propagate: IsNavigationKey(key)}
	}

	ch := key
	if t.large && key == KeyShiftEnter {
		ch = "\n"
	}
	if !isPrintable(ch) {
		return KeyResult{Suppressed: true}
	}
	if t.large && t.input.len() >= t.max {
		return KeyResult{Suppressed: true}
	}
	t.input.insert(ch)
	return KeyResult{}
}

func (t *Text) GetValue() (string, error) {
	return t.input.String(), nil
}

func (t *Text) IsPopup() bool { return t.large }

// Size returns the rows and columns of the large text area.
func (t *Text) Size() (rows, cols int) { return t.rows, t.cols }

func (t *Text) View() View {
	return View{
		Kind:    t.Kind(),
		Text:    t.input.String(),
		Cursor:  t.input.cursor,
		Focused: t.input.focused,
		Popup:   t.large,
	}
}
