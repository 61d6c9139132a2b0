package editor

import (
	"errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		kind    Kind
		params  Params
		want    Kind
		wantErr error
	}{
		{"", Params{}, KindText, nil},
		{KindText, Params{}, KindText, nil},
		{KindLargeText, Params{}, KindLargeText, nil},
		{KindSelect, Params{Values: []string{"Latin", "English"}}, KindSelect, nil},
		{KindSelect, Params{}, "", ErrNoValues},
		{KindRichSelect, Params{Values: []string{"Latin"}, CellHeight: 20}, KindRichSelect, nil},
		{KindInteger, Params{}, KindInteger, nil},
		{KindFloat, Params{}, KindFloat, nil},
		{"agDateCellEditor", Params{}, "", ErrUnknownEditor},
	}

	for _, tt := range tests {
		ed, err := New(tt.kind, tt.params)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("New(%q) error = %v, want %v", tt.kind, err, tt.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("New(%q) error = %v", tt.kind, err)
			continue
		}
		if ed.Kind() != tt.want {
			t.Errorf("New(%q).Kind() = %q, want %q", tt.kind, ed.Kind(), tt.want)
		}
	}
}

func TestTextEditor(t *testing.T) {
	ed := NewText()
	ed.Init(InitParams{Value: "Kafka"})

	for _, k := range []string{KeyEnd, "!", KeyHome, "@"} {
		ed.HandleKey(k)
	}
	got, _ := ed.GetValue()
	if got != "@Kafka!" {
		t.Errorf("GetValue() = %q, want %q", got, "@Kafka!")
	}
	if ed.IsPopup() {
		t.Error("text editor should not be a popup")
	}
	if res := ed.HandleKey(KeyTab); !res.Suppressed {
		t.Error("Tab should not be inserted")
	}
}

func TestTextEditor_CharPressReplacesValue(t *testing.T) {
	ed := NewText()
	ed.Init(InitParams{Value: "Cicero", CharPress: "x"})
	if got := ed.View().Text; got != "x" {
		t.Errorf("text = %q, want %q", got, "x")
	}
}

func TestLargeTextEditor_MaxLength(t *testing.T) {
	ed := NewLargeText(Params{MaxLength: 5})
	ed.Init(InitParams{Value: "abc"})

	ed.HandleKey(KeyShiftEnter)
	ed.HandleKey("d")
	if res := ed.HandleKey("e"); !res.Suppressed {
		t.Error("input beyond maxLength was accepted")
	}

	got, _ := ed.GetValue()
	if got != "abc\nd" {
		t.Errorf("GetValue() = %q, want %q", got, "abc\nd")
	}
	if !ed.IsPopup() {
		t.Error("large text editor should be a popup")
	}
	if rows, cols := ed.Size(); rows != DefaultRows || cols != DefaultCols {
		t.Errorf("Size() = %d,%d, want defaults", rows, cols)
	}
}

func TestLargeTextEditor_TruncatesPriorValue(t *testing.T) {
	ed := NewLargeText(Params{})
	ed.Init(InitParams{Value: strings.Repeat("x", 250)})
	if got := len(ed.View().Text); got != DefaultMaxLength {
		t.Errorf("len = %d, want %d", got, DefaultMaxLength)
	}
}

func TestSelectEditor(t *testing.T) {
	ed, err := NewSelect([]string{"Latin", "English"})
	if err != nil {
		t.Fatal(err)
	}
	ed.Init(InitParams{Value: "English"})

	if got, _ := ed.GetValue(); got != "English" {
		t.Errorf("initial value = %q, want English", got)
	}
	ed.HandleKey(KeyArrowUp)
	if got, _ := ed.GetValue(); got != "Latin" {
		t.Errorf("after ArrowUp = %q, want Latin", got)
	}
	ed.HandleKey(KeyArrowUp)
	if got, _ := ed.GetValue(); got != "Latin" {
		t.Errorf("ArrowUp past top = %q, want Latin", got)
	}
	if res := ed.HandleKey("E"); !res.Suppressed {
		t.Error("plain select should ignore typed characters")
	}
}

func TestRichSelectEditor_Search(t *testing.T) {
	ed, err := NewRichSelect([]string{"Latin", "English", "German"}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if ed.CellHeight() != DefaultCellHeight {
		t.Errorf("CellHeight() = %d, want %d", ed.CellHeight(), DefaultCellHeight)
	}

	ed.Init(InitParams{Value: "Latin", CharPress: "e"})
	if got, _ := ed.GetValue(); got != "English" {
		t.Errorf("prefix search = %q, want English", got)
	}

	// No prefix match: closest by edit distance.
	ed.Init(InitParams{Value: "Latin"})
	for _, k := range []string{"G", "r", "m", "a", "n"} {
		ed.HandleKey(k)
	}
	ed.HandleKey(KeyBackspace)
	if got := ed.View().Search; got != "Grma" {
		t.Fatalf("search = %q, want Grma", got)
	}
	if got, _ := ed.GetValue(); got != "German" {
		t.Errorf("fuzzy search = %q, want German", got)
	}
	if !ed.IsPopup() {
		t.Error("rich select should be a popup")
	}
}
