package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestDemo(t *testing.T) {
	d := Demo()

	if d.Len() != 6 {
		t.Fatalf("Len() = %d, want 6", d.Len())
	}
	want := []string{ColText, ColLargeText, ColSelect, ColRichSelect, ColInteger, ColFloats}
	if got := strings.Join(d.ColumnNames(), ","); got != strings.Join(want, ",") {
		t.Errorf("ColumnNames() = %s", got)
	}

	v, err := d.Get(0, ColInteger)
	if err != nil {
		t.Fatal(err)
	}
	if v != int64(200) {
		t.Errorf("Get(0, integer) = %v (%T), want 200", v, v)
	}
	v, _ = d.Get(2, ColFloats)
	if v != 87.54 {
		t.Errorf("Get(2, floats) = %v, want 87.54", v)
	}
}

func TestSet_Coercion(t *testing.T) {
	tests := []struct {
		name   string
		column string
		raw    string
		want   any
	}{
		{"integer parses", ColInteger, "123", int64(123)},
		{"integer keeps bad text", ColInteger, "abc", "abc"},
		{"float keeps its digits", ColFloats, "3.10", Decimal{Value: 3.1, Text: "3.10"}},
		{"float trims space", ColFloats, " 7.00 ", Decimal{Value: 7, Text: "7.00"}},
		{"float rejects NaN", ColFloats, "NaN", "NaN"},
		{"float keeps bad text", ColFloats, "1.2.3", "1.2.3"},
		{"text stored as is", ColText, " 42 ", " 42 "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Demo()
			if _, err := d.Set(1, tt.column, tt.raw); err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			got, _ := d.Get(1, tt.column)
			if got != tt.want {
				t.Errorf("Get() = %v (%T), want %v (%T)", got, got, tt.want, tt.want)
			}
		})
	}
}

func TestSet_ReturnsOldValue(t *testing.T) {
	d := Demo()
	old, err := d.Set(3, ColText, "Kafka on the shore")
	if err != nil {
		t.Fatal(err)
	}
	if old != "Kafka" {
		t.Errorf("old = %v, want Kafka", old)
	}
}

func TestSet_Errors(t *testing.T) {
	d := Demo()
	if _, err := d.Set(0, "nope", "x"); !errors.Is(err, ErrUnknownColumn) {
		t.Errorf("unknown column error = %v", err)
	}
	if _, err := d.Set(6, ColText, "x"); !errors.Is(err, ErrRowOutOfRange) {
		t.Errorf("row 6 error = %v", err)
	}
	if _, err := d.Set(-1, ColText, "x"); !errors.Is(err, ErrRowOutOfRange) {
		t.Errorf("row -1 error = %v", err)
	}
}

func TestAppendRow_Width(t *testing.T) {
	d := New([]Column{{Name: "a"}, {Name: "b"}})
	if err := d.AppendRow("x"); !errors.Is(err, ErrRowWidth) {
		t.Errorf("AppendRow() error = %v, want ErrRowWidth", err)
	}
}

func TestClone_Independent(t *testing.T) {
	d := Demo()
	c := d.Clone()
	c.Set(0, ColText, "changed")

	v, _ := d.Get(0, ColText)
	if v != "Lorem ipsum" {
		t.Errorf("original mutated: %v", v)
	}
}

func TestWriteCSV(t *testing.T) {
	d := New([]Column{{Name: "name"}, {Name: "n", Type: TypeInteger}, {Name: "f", Type: TypeFloat}})
	d.AppendRow("a, b", int64(7), 1.5)

	var buf bytes.Buffer
	if err := d.WriteCSV(&buf); err != nil {
		t.Fatal(err)
	}
	want := "name,n,f\n\"a, b\",7,1.5\n"
	if buf.String() != want {
		t.Errorf("WriteCSV() = %q, want %q", buf.String(), want)
	}
}

func TestDecimal_KeepsCommittedDigits(t *testing.T) {
	d := New([]Column{{Name: "f", Type: TypeFloat}})
	d.AppendRow(12.2)

	if _, err := d.Set(0, "f", "7.00"); err != nil {
		t.Fatal(err)
	}
	v, _ := d.Get(0, "f")
	if got := Format(v); got != "7.00" {
		t.Errorf("Format() = %q, want %q", got, "7.00")
	}

	b, err := json.Marshal(map[string]any{"f": v})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"f":7.00}` {
		t.Errorf("json = %s, want {\"f\":7.00}", b)
	}

	var buf bytes.Buffer
	if err := d.WriteCSV(&buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "f\n7.00\n" {
		t.Errorf("WriteCSV() = %q", buf.String())
	}
}
