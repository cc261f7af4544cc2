package laxjson

import (
	"errors"
	"math"
	"testing"
)

// collectTokens drains a reader and returns the token kinds seen before
// EOF or the first error.
func collectTokens(t *testing.T, input string) ([]Token, error) {
	t.Helper()
	r := NewReader([]byte(input))
	var toks []Token
	for {
		tok, err := r.Next()
		if err != nil {
			return toks, err
		}
		if tok == TokenEOF {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}

func TestReaderTokenSequence(t *testing.T) {
	toks, err := collectTokens(t, `{"a":[1,2.5,"x",true,null]}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Token{
		TokenDictStart, TokenName, TokenArrayStart,
		TokenInt, TokenFloat, TokenString, TokenBool, TokenNull,
		TokenArrayEnd, TokenDictEnd,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i := range want {
		if toks[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, toks[i], want[i])
		}
	}
}

func TestReaderRelaxedGrammar(t *testing.T) {
	// All of these are accepted extensions over strict JSON.
	for _, input := range []string{
		`{ x : 1 }`,                  // unquoted key
		`[1, 2, 3,]`,                 // trailing comma in array
		`{"a": 1,}`,                  // trailing comma in dictionary
		`[NaN, Infinity, -Infinity]`, // non-finite literals
		`[007]`,                      // leading zeros
		`{"a":1} trailing garbage`,   // ignored trailing data
		"[\"tab\there\"]",            // raw tab inside string
		"[\"line\nbreak\"]",          // raw line break inside string
	} {
		if _, err := collectTokens(t, input); err != nil {
			t.Errorf("input %q: unexpected error: %v", input, err)
		}
	}
}

func TestReaderUnquotedKeyPayload(t *testing.T) {
	r := NewReader([]byte(`{ answer_42 : 1 }`))
	if tok, _ := r.Next(); tok != TokenDictStart {
		t.Fatalf("expected dict start, got %v", tok)
	}
	tok, err := r.Next()
	if err != nil || tok != TokenName {
		t.Fatalf("expected name, got %v (%v)", tok, err)
	}
	if name, _ := r.Name(); name != "answer_42" {
		t.Errorf("name = %q, want %q", name, "answer_42")
	}
}

func TestReaderNumbers(t *testing.T) {
	tests := []struct {
		input   string
		isFloat bool
		i       int64
		f       float64
	}{
		{`[0]`, false, 0, 0},
		{`[-7]`, false, -7, 0},
		{`[007]`, false, 7, 0},
		{`[9223372036854775807]`, false, math.MaxInt64, 0},
		{`[-9223372036854775808]`, false, math.MinInt64, 0},
		{`[3.25]`, true, 0, 3.25},
		{`[1e3]`, true, 0, 1000},
		{`[2E-2]`, true, 0, 0.02},
		{`[-0.5]`, true, 0, -0.5},
		// Out-of-range integer literals fall back to float.
		{`[9223372036854775808]`, true, 0, 9223372036854775808},
	}
	for _, tt := range tests {
		r := NewReader([]byte(tt.input))
		r.Next() // [
		tok, err := r.Next()
		if err != nil {
			t.Errorf("%s: %v", tt.input, err)
			continue
		}
		if tt.isFloat {
			if tok != TokenFloat {
				t.Errorf("%s: token %v, want float", tt.input, tok)
				continue
			}
			if f, _ := r.Float(); f != tt.f {
				t.Errorf("%s: float %v, want %v", tt.input, f, tt.f)
			}
		} else {
			if tok != TokenInt {
				t.Errorf("%s: token %v, want int", tt.input, tok)
				continue
			}
			if n, _ := r.Int(); n != tt.i {
				t.Errorf("%s: int %v, want %v", tt.input, n, tt.i)
			}
		}
	}
}

func TestReaderNonFiniteLiterals(t *testing.T) {
	r := NewReader([]byte(`[NaN, Infinity, -Infinity]`))
	r.Next()
	r.Next()
	if f, _ := r.Float(); !math.IsNaN(f) {
		t.Errorf("expected NaN, got %v", f)
	}
	r.Next()
	if f, _ := r.Float(); !math.IsInf(f, 1) {
		t.Errorf("expected +Inf, got %v", f)
	}
	r.Next()
	if f, _ := r.Float(); !math.IsInf(f, -1) {
		t.Errorf("expected -Inf, got %v", f)
	}
}

func TestReaderStringEscapes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`["\" \\ \/ \b \f \n \r \t"]`, "\" \\ / \b \f \n \r \t"},
		{`["A"]`, "A"},
		{`["é"]`, "é"},
		{`["𝄞"]`, "\U0001D11E"}, // surrogate pair combines
		{`["plain"]`, "plain"},
	}
	for _, tt := range tests {
		r := NewReader([]byte(tt.input))
		r.Next()
		if tok, err := r.Next(); tok != TokenString || err != nil {
			t.Errorf("%s: token %v err %v", tt.input, tok, err)
			continue
		}
		if s, _ := r.Str(); s != tt.want {
			t.Errorf("%s: got %q, want %q", tt.input, s, tt.want)
		}
	}
}

func TestReaderParseErrors(t *testing.T) {
	for _, input := range []string{
		`[1 2]`, `[1,,2]`, `[,1]`, `{"a" 1}`, `{"a":}`, `{"a":1]`, `[1}`,
		`[bogus]`, `["open`, `[1`, `{`, `["\q"]`, `["\u12g4"]`, `["\uD834x"]`,
		`{"a",}`,
	} {
		_, err := collectTokens(t, input)
		if err == nil {
			t.Errorf("input %q: expected parse error", input)
			continue
		}
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("input %q: error %T is not a *ParseError", input, err)
		}
	}
}

func TestReaderErrorPosition(t *testing.T) {
	input := "{\n  \"a\" : 1,\n  \"b\" 2\n}"
	_, err := collectTokens(t, input)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if pe.Line != 3 {
		t.Errorf("line = %d, want 3", pe.Line)
	}
	if pe.Col != 7 {
		t.Errorf("col = %d, want 7", pe.Col)
	}
	if pe.Offset != 19 {
		t.Errorf("offset = %d, want 19", pe.Offset)
	}
}

func TestReaderErrorSticky(t *testing.T) {
	r := NewReader([]byte(`[1,,2]`))
	var first error
	for i := 0; i < 5; i++ {
		_, err := r.Next()
		if err != nil {
			first = err
			break
		}
	}
	if first == nil {
		t.Fatal("expected an error")
	}
	if _, err := r.Next(); err != first {
		t.Errorf("error not sticky: got %v", err)
	}
}

func TestReaderAccessorState(t *testing.T) {
	r := NewReader([]byte(`[1]`))
	r.Next() // [
	if _, err := r.Int(); !errors.Is(err, ErrBadState) {
		t.Errorf("Int before int token: err = %v, want ErrBadState", err)
	}
	r.Next() // 1
	if _, err := r.Int(); err != nil {
		t.Errorf("Int after int token: %v", err)
	}
	if _, err := r.Str(); !errors.Is(err, ErrBadState) {
		t.Errorf("Str after int token: err = %v, want ErrBadState", err)
	}
	if _, err := r.Bool(); !errors.Is(err, ErrBadState) {
		t.Errorf("Bool after int token: err = %v, want ErrBadState", err)
	}
}

func TestReaderDeepNesting(t *testing.T) {
	const depth = 10000
	input := make([]byte, 0, depth*2)
	for i := 0; i < depth; i++ {
		input = append(input, '[')
	}
	for i := 0; i < depth; i++ {
		input = append(input, ']')
	}
	if _, err := collectTokens(t, string(input)); err != nil {
		t.Fatalf("deep nesting rejected: %v", err)
	}
}
