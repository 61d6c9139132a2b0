package editor

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// DefaultCellHeight is the rich select row height in pixels.
const DefaultCellHeight = 20

// Select picks one value from a fixed list.
type Select struct {
	values   []string
	selected int
	focused  bool

	rich       bool
	cellHeight int
	search     []rune
}

// NewSelect returns a dropdown editor over values.
func NewSelect(values []string) (*Select, error) {
	if len(values) == 0 {
		return nil, ErrNoValues
	}
	return &Select{values: append([]string(nil), values...)}, nil
}

// NewRichSelect returns a searchable popup list over values.
func NewRichSelect(values []string, cellHeight int) (*Select, error) {
	s, err := NewSelect(values)
	if err != nil {
		return nil, err
	}
	s.rich = true
	s.cellHeight = cellHeight
	if s.cellHeight <= 0 {
		s.cellHeight = DefaultCellHeight
	}
	return s, nil
}

func (s *Select) Kind() Kind {
	if s.rich {
		return KindRichSelect
	}
	return KindSelect
}

func (s *Select) Init(p InitParams) {
	s.selected = 0
	s.search = nil
	cur := FormatValue(p.Value)
	for i, v := range s.values {
		if v == cur {
			s.selected = i
			break
		}
	}
	if s.rich && isPrintable(p.CharPress) {
		s.search = []rune(p.CharPress)
		s.selected = s.bestMatch()
	}
}

func (s *Select) AfterGuiAttached() { s.focused = true }

func (s *Select) IsCancelBeforeStart() bool { return false }

func (s *Select) HandleKey(key string) KeyResult {
	switch key {
	case KeyArrowUp:
		if s.selected > 0 {
			s.selected--
		}
		return KeyResult{}
	case KeyArrowDown:
		if s.selected < len(s.values)-1 {
			s.selected++
		}
		return KeyResult{}
	case KeyBackspace:
		if s.rich && len(s.search) > 0 {
			s.search = s.search[:len(s.search)-1]
			if len(s.search) > 0 {
				s.selected = s.bestMatch()
			}
			return KeyResult{}
		}
	}

	if s.rich && isPrintable(key) {
		s.search = append(s.search, []rune(key)...)
		s.selected = s.bestMatch()
		return KeyResult{}
	}
	return KeyResult{Suppressed: true}
}

// bestMatch prefers a case-insensitive prefix match and falls back to the
// value with the smallest edit distance from the search text.
func (s *Select) bestMatch() int {
	q := strings.ToLower(string(s.search))
	for i, v := range s.values {
		if strings.HasPrefix(strings.ToLower(v), q) {
			return i
		}
	}

	best, bestDist := 0, -1
	for i, v := range s.values {
		d := levenshtein.ComputeDistance(q, strings.ToLower(v))
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func (s *Select) GetValue() (string, error) {
	return s.values[s.selected], nil
}

func (s *Select) IsPopup() bool { return s.rich }

// CellHeight returns the rich select row height.
func (s *Select) CellHeight() int { return s.cellHeight }

func (s *Select) View() View {
	return View{
		Kind:     s.Kind(),
		Text:     s.values[s.selected],
		Focused:  s.focused,
		Popup:    s.rich,
		Values:   append([]string(nil), s.values...),
		Selected: s.selected,
		Search:   string(s.search),
	}
}
