package laxjson

import (
	"math"
	"strings"
	"testing"
)

func TestWriterCompact(t *testing.T) {
	w := NewWriter(false)
	w.BeginDict()
	w.Name("Answer")
	w.Int(42)
	w.EndDict()
	if got := w.String(); got != `{ "Answer" : 42 }` {
		t.Errorf("got %q", got)
	}
}

func TestWriterCompactNested(t *testing.T) {
	w := NewWriter(false)
	w.BeginArray()
	w.Int(1)
	w.BeginArray()
	w.Int(2)
	w.Int(3)
	w.EndArray()
	w.EndArray()
	if got := w.String(); got != `[1, [2, 3]]` {
		t.Errorf("got %q", got)
	}
}

func TestWriterPretty(t *testing.T) {
	w := NewWriter(true)
	w.BeginDict()
	w.Name("a")
	w.Int(1)
	w.Name("list")
	w.BeginArray()
	w.Int(1)
	w.Int(2)
	w.EndArray()
	w.EndDict()
	want := strings.Join([]string{
		`{`,
		`  "a" : 1,`,
		`  "list" : [1, 2]`,
		`}`,
	}, "\n")
	if got := w.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestWriterEmptyContainers(t *testing.T) {
	w := NewWriter(false)
	w.BeginDict()
	w.Name("a")
	w.BeginArray()
	w.EndArray()
	w.Name("b")
	w.BeginDict()
	w.EndDict()
	w.EndDict()
	if got := w.String(); got != `{ "a" : [], "b" : {} }` {
		t.Errorf("got %q", got)
	}
}

func TestWriterFloats(t *testing.T) {
	tests := []struct {
		f    float64
		want string
	}{
		{1.5, "1.5"},
		{42, "42.0"}, // must stay distinguishable from an integer
		{-3, "-3.0"},
		{1e21, "1e+21"},
		{5e-324, "5e-324"}, // subnormal min positive
		{math.NaN(), "NaN"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
	}
	for _, tt := range tests {
		w := NewWriter(false)
		w.BeginArray()
		w.Float(tt.f)
		w.EndArray()
		if got := w.String(); got != "["+tt.want+"]" {
			t.Errorf("Float(%v) = %q, want %q", tt.f, got, "["+tt.want+"]")
		}
	}
}

func TestWriterEscaping(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`plain`, `"plain"`},
		{`say "hi"`, `"say \"hi\""`},
		{`back\slash`, `"back\\slash"`},
		{"\b\t\n\f\r", `"\b\t\n\f\r"`},
		{"\x00\x01\x1f", `"\u0000\u0001\u001f"`},
		{"\x7f", `"\u007f"`},
		{"\u00e9", `"\u00e9"`},
		{"\u2028", `"\u2028"`},
		{"\U0001D11E", `"\ud834\udd1e"`}, // surrogate pair
	}
	for _, tt := range tests {
		w := NewWriter(false)
		w.Str(tt.in)
		if got := w.String(); got != tt.want {
			t.Errorf("Str(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestWriterReset(t *testing.T) {
	w := NewWriter(false)
	w.BeginArray()
	w.Int(1)
	w.EndArray()
	w.Reset()
	w.BeginArray()
	w.EndArray()
	if got := w.String(); got != "[]" {
		t.Errorf("after reset: %q", got)
	}
}
