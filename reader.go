package laxjson

import (
	"fmt"
	"math"
	"strconv"
	"unicode/utf16"
	"unicode/utf8"
)

// Token identifies the kind of item the Reader has advanced to.
type Token uint8

const (
	TokenEOF Token = iota
	TokenNull
	TokenBool
	TokenInt
	TokenFloat
	TokenString
	TokenName
	TokenArrayStart
	TokenArrayEnd
	TokenDictStart
	TokenDictEnd
)

// String returns a short name for the token kind.
func (t Token) String() string {
	switch t {
	case TokenEOF:
		return "eof"
	case TokenNull:
		return "null"
	case TokenBool:
		return "bool"
	case TokenInt:
		return "int"
	case TokenFloat:
		return "float"
	case TokenString:
		return "string"
	case TokenName:
		return "name"
	case TokenArrayStart:
		return "array-start"
	case TokenArrayEnd:
		return "array-end"
	case TokenDictStart:
		return "dict-start"
	case TokenDictEnd:
		return "dict-end"
	}
	return "unknown"
}

// ParseError reports a malformed input with its position: 1-based line and
// byte column plus the 0-based byte offset.
type ParseError struct {
	Msg    string
	Line   int
	Col    int
	Offset int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d (offset %d): %s",
		e.Line, e.Col, e.Offset, e.Msg)
}

// Nesting contexts for the reader state machine.
const (
	ctxArray byte = iota
	ctxDictName
	ctxDictValue
)

// Reader is a streaming tokenizer and validator over a JSON text buffer.
// Each call to Next advances to one token; the typed accessors are valid
// only immediately after Next reported the matching kind.
//
// The accepted grammar is the relaxed superset documented in the package
// comment. Nesting depth is unbounded and the whole buffer is held in
// memory; callers wanting to bound work must limit input size up front.
type Reader struct {
	data      []byte
	pos       int
	line      int // 1-based line of pos
	lineStart int // offset where the current line begins

	stack      []byte
	afterValue bool // innermost container expects ',' or a close
	done       bool // top-level value fully consumed

	cur      Token
	boolVal  bool
	intVal   int64
	floatVal float64
	strVal   string
	err      error
}

// NewReader returns a Reader over data. The Reader does not copy the
// buffer; callers must not mutate it while reading.
func NewReader(data []byte) *Reader {
	return &Reader{data: data, line: 1}
}

// Token returns the kind reported by the last call to Next.
func (r *Reader) Token() Token { return r.cur }

// Next advances to the next token and returns its kind, or TokenEOF at the
// end of the stream. A parse error is sticky: every later call returns it.
func (r *Reader) Next() (Token, error) {
	if r.err != nil {
		return TokenEOF, r.err
	}
	tok, err := r.advance()
	if err != nil {
		r.err = err
		r.cur = TokenEOF
		return TokenEOF, err
	}
	r.cur = tok
	return tok, nil
}

// Bool returns the payload of a Bool token.
func (r *Reader) Bool() (bool, error) {
	if r.cur != TokenBool {
		return false, ErrBadState
	}
	return r.boolVal, nil
}

// Int returns the payload of an Int token.
func (r *Reader) Int() (int64, error) {
	if r.cur != TokenInt {
		return 0, ErrBadState
	}
	return r.intVal, nil
}

// Float returns the payload of a Float token.
func (r *Reader) Float() (float64, error) {
	if r.cur != TokenFloat {
		return 0, ErrBadState
	}
	return r.floatVal, nil
}

// Str returns the payload of a String token.
func (r *Reader) Str() (string, error) {
	if r.cur != TokenString {
		return "", ErrBadState
	}
	return r.strVal, nil
}

// Name returns the payload of a Name token.
func (r *Reader) Name() (string, error) {
	if r.cur != TokenName {
		return "", ErrBadState
	}
	return r.strVal, nil
}

//------------------------------------------------------------------------------
// STATE MACHINE
//------------------------------------------------------------------------------

func (r *Reader) advance() (Token, error) {
	// Anything after a complete top-level value is ignored.
	if r.done {
		return TokenEOF, nil
	}
	r.skipSpace()
	if len(r.stack) == 0 {
		if r.pos >= len(r.data) {
			return TokenEOF, nil
		}
		return r.value()
	}
	switch r.stack[len(r.stack)-1] {
	case ctxArray:
		return r.arrayNext()
	case ctxDictName:
		return r.dictNameNext()
	default:
		return r.dictValueNext()
	}
}

func (r *Reader) arrayNext() (Token, error) {
	if r.pos >= len(r.data) {
		return 0, r.errorf("unexpected end of input inside array")
	}
	c := r.data[r.pos]
	if c == ']' {
		r.pos++
		return r.closeContainer(TokenArrayEnd), nil
	}
	if c == '}' {
		return 0, r.errorf("mismatched '}' closing an array")
	}
	if r.afterValue {
		if c != ',' {
			return 0, r.errorf("missing ',' between array elements")
		}
		r.pos++
		r.afterValue = false
		r.skipSpace()
		if r.pos >= len(r.data) {
			return 0, r.errorf("unexpected end of input inside array")
		}
		c = r.data[r.pos]
		if c == ']' { // trailing comma
			r.pos++
			return r.closeContainer(TokenArrayEnd), nil
		}
	}
	if c == ',' {
		return 0, r.errorf("unexpected ','")
	}
	return r.value()
}

func (r *Reader) dictNameNext() (Token, error) {
	if r.pos >= len(r.data) {
		return 0, r.errorf("unexpected end of input inside dictionary")
	}
	c := r.data[r.pos]
	if c == '}' {
		r.pos++
		return r.closeContainer(TokenDictEnd), nil
	}
	if c == ']' {
		return 0, r.errorf("mismatched ']' closing a dictionary")
	}
	if r.afterValue {
		if c != ',' {
			return 0, r.errorf("missing ',' between dictionary entries")
		}
		r.pos++
		r.afterValue = false
		r.skipSpace()
		if r.pos >= len(r.data) {
			return 0, r.errorf("unexpected end of input inside dictionary")
		}
		c = r.data[r.pos]
		if c == '}' { // trailing comma
			r.pos++
			return r.closeContainer(TokenDictEnd), nil
		}
	}
	if c == ',' {
		return 0, r.errorf("unexpected ','")
	}

	var name string
	switch {
	case c == '"':
		s, err := r.lexString()
		if err != nil {
			return 0, err
		}
		name = s
	case isNameByte(c):
		start := r.pos
		for r.pos < len(r.data) && isNameByte(r.data[r.pos]) {
			r.pos++
		}
		name = string(r.data[start:r.pos])
	default:
		return 0, r.errorf("expected dictionary name, found %q", c)
	}

	r.skipSpace()
	if r.pos >= len(r.data) || r.data[r.pos] != ':' {
		return 0, r.errorf("missing ':' after dictionary name")
	}
	r.pos++
	r.stack[len(r.stack)-1] = ctxDictValue
	r.strVal = name
	return TokenName, nil
}

func (r *Reader) dictValueNext() (Token, error) {
	if r.pos >= len(r.data) {
		return 0, r.errorf("unexpected end of input inside dictionary")
	}
	switch r.data[r.pos] {
	case '}', ']':
		return 0, r.errorf("expected value after ':'")
	case ',':
		return 0, r.errorf("unexpected ','")
	}
	return r.value()
}

// value lexes one value token at pos. The caller has already skipped
// whitespace and rejected punctuation that cannot begin a value.
func (r *Reader) value() (Token, error) {
	c := r.data[r.pos]
	switch {
	case c == '{':
		r.pos++
		r.stack = append(r.stack, ctxDictName)
		r.afterValue = false
		return TokenDictStart, nil
	case c == '[':
		r.pos++
		r.stack = append(r.stack, ctxArray)
		r.afterValue = false
		return TokenArrayStart, nil
	case c == '"':
		s, err := r.lexString()
		if err != nil {
			return 0, err
		}
		r.strVal = s
		r.completeValue()
		return TokenString, nil
	case c == '-' || (c >= '0' && c <= '9'):
		return r.lexNumber()
	case isIdentByte(c):
		return r.lexLiteral()
	}
	return 0, r.errorf("unexpected character %q", c)
}

// completeValue records that the innermost container (or the top level)
// just finished a value.
func (r *Reader) completeValue() {
	if len(r.stack) == 0 {
		r.done = true
		return
	}
	if r.stack[len(r.stack)-1] == ctxDictValue {
		r.stack[len(r.stack)-1] = ctxDictName
	}
	r.afterValue = true
}

func (r *Reader) closeContainer(tok Token) Token {
	r.stack = r.stack[:len(r.stack)-1]
	r.completeValue()
	return tok
}

//------------------------------------------------------------------------------
// LEXING
//------------------------------------------------------------------------------

func (r *Reader) skipSpace() {
	for r.pos < len(r.data) {
		switch r.data[r.pos] {
		case ' ', '\t', '\r':
			r.pos++
		case '\n':
			r.pos++
			r.line++
			r.lineStart = r.pos
		default:
			return
		}
	}
}

func (r *Reader) lexNumber() (Token, error) {
	start := r.pos
	if r.data[r.pos] == '-' {
		r.pos++
		if r.pos < len(r.data) && r.data[r.pos] == 'I' {
			return r.lexNegInfinity(start)
		}
	}
	isFloat := false
	r.scanDigits()
	if r.pos < len(r.data) && r.data[r.pos] == '.' {
		isFloat = true
		r.pos++
		r.scanDigits()
	}
	if r.pos < len(r.data) && (r.data[r.pos] == 'e' || r.data[r.pos] == 'E') {
		isFloat = true
		r.pos++
		if r.pos < len(r.data) && (r.data[r.pos] == '+' || r.data[r.pos] == '-') {
			r.pos++
		}
		r.scanDigits()
	}
	if r.pos < len(r.data) && isIdentByte(r.data[r.pos]) {
		return 0, r.errorAt(start, "malformed number")
	}
	text := string(r.data[start:r.pos])
	if !isFloat {
		n, err := strconv.ParseInt(text, 10, 64)
		if err == nil {
			r.intVal = n
			r.completeValue()
			return TokenInt, nil
		}
		// Out-of-range integer literals fall back to float.
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, r.errorAt(start, "malformed number")
	}
	r.floatVal = f
	r.completeValue()
	return TokenFloat, nil
}

func (r *Reader) lexNegInfinity(start int) (Token, error) {
	const lit = "Infinity"
	if len(r.data)-r.pos < len(lit) || string(r.data[r.pos:r.pos+len(lit)]) != lit {
		return 0, r.errorAt(start, "malformed number")
	}
	r.pos += len(lit)
	r.floatVal = math.Inf(-1)
	r.completeValue()
	return TokenFloat, nil
}

func (r *Reader) lexLiteral() (Token, error) {
	start := r.pos
	for r.pos < len(r.data) && isIdentByte(r.data[r.pos]) {
		r.pos++
	}
	switch string(r.data[start:r.pos]) {
	case "true":
		r.boolVal = true
		r.completeValue()
		return TokenBool, nil
	case "false":
		r.boolVal = false
		r.completeValue()
		return TokenBool, nil
	case "null":
		r.completeValue()
		return TokenNull, nil
	case "NaN":
		r.floatVal = math.NaN()
		r.completeValue()
		return TokenFloat, nil
	case "Infinity":
		r.floatVal = math.Inf(1)
		r.completeValue()
		return TokenFloat, nil
	}
	return 0, r.errorAt(start, "unexpected identifier %q", r.data[start:r.pos])
}

// lexString consumes a quoted string starting at the opening quote and
// returns its decoded content. Raw tabs and line breaks inside the string
// are tolerated; a surrogate pair of \uXXXX escapes combines into a single
// codepoint.
func (r *Reader) lexString() (string, error) {
	r.pos++ // opening quote
	start := r.pos
	for r.pos < len(r.data) {
		c := r.data[r.pos]
		if c == '"' {
			s := string(r.data[start:r.pos])
			r.pos++
			return s, nil
		}
		if c == '\\' {
			return r.lexStringSlow(start)
		}
		if c == '\n' {
			r.line++
			r.lineStart = r.pos + 1
		}
		r.pos++
	}
	return "", r.errorf("unterminated string")
}

// lexStringSlow handles strings containing escapes. pos is at the first
// backslash; content before it is copied verbatim.
func (r *Reader) lexStringSlow(start int) (string, error) {
	buf := make([]byte, 0, r.pos-start+16)
	buf = append(buf, r.data[start:r.pos]...)
	for r.pos < len(r.data) {
		c := r.data[r.pos]
		switch c {
		case '"':
			r.pos++
			return string(buf), nil
		case '\\':
			r.pos++
			if r.pos >= len(r.data) {
				return "", r.errorf("unterminated string")
			}
			esc := r.data[r.pos]
			r.pos++
			switch esc {
			case '"', '\\', '/':
				buf = append(buf, esc)
			case 'b':
				buf = append(buf, '\b')
			case 'f':
				buf = append(buf, '\f')
			case 'n':
				buf = append(buf, '\n')
			case 'r':
				buf = append(buf, '\r')
			case 't':
				buf = append(buf, '\t')
			case 'u':
				cp, err := r.lexUnicodeEscape()
				if err != nil {
					return "", err
				}
				buf = utf8.AppendRune(buf, cp)
			default:
				return "", r.errorAt(r.pos-2, "invalid escape character %q", esc)
			}
		case '\n':
			r.line++
			r.lineStart = r.pos + 1
			buf = append(buf, c)
			r.pos++
		default:
			buf = append(buf, c)
			r.pos++
		}
	}
	return "", r.errorf("unterminated string")
}

// lexUnicodeEscape decodes the four-hex-digit payload of a \u escape, pos
// sitting just past the 'u'. A high surrogate must be followed by a \uXXXX
// low surrogate; the pair combines into one codepoint.
func (r *Reader) lexUnicodeEscape() (rune, error) {
	u, err := r.hex4()
	if err != nil {
		return 0, err
	}
	if !utf16.IsSurrogate(u) {
		return u, nil
	}
	if r.pos+1 < len(r.data) && r.data[r.pos] == '\\' && r.data[r.pos+1] == 'u' {
		r.pos += 2
		lo, err := r.hex4()
		if err != nil {
			return 0, err
		}
		cp := utf16.DecodeRune(u, lo)
		if cp != utf8.RuneError {
			return cp, nil
		}
	}
	return 0, r.errorf("invalid unicode surrogate in string")
}

func (r *Reader) hex4() (rune, error) {
	if r.pos+4 > len(r.data) {
		return 0, r.errorf("truncated \\u escape")
	}
	var u rune
	for i := 0; i < 4; i++ {
		c := r.data[r.pos]
		switch {
		case c >= '0' && c <= '9':
			u = u<<4 | rune(c-'0')
		case c >= 'a' && c <= 'f':
			u = u<<4 | rune(c-'a'+10)
		case c >= 'A' && c <= 'F':
			u = u<<4 | rune(c-'A'+10)
		default:
			return 0, r.errorf("invalid hex digit %q in \\u escape", c)
		}
		r.pos++
	}
	return u, nil
}

//------------------------------------------------------------------------------
// HELPERS
//------------------------------------------------------------------------------

// isNameByte reports whether c may appear in an unquoted dictionary name:
// anything except whitespace and JSON punctuation.
func isNameByte(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', ':', ',', '{', '}', '[', ']', '"':
		return false
	}
	return true
}

func isIdentByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' || c == '_'
}

func (r *Reader) scanDigits() {
	for r.pos < len(r.data) && r.data[r.pos] >= '0' && r.data[r.pos] <= '9' {
		r.pos++
	}
}

func (r *Reader) errorf(format string, args ...any) error {
	return r.errorAt(r.pos, format, args...)
}

func (r *Reader) errorAt(offset int, format string, args ...any) error {
	col := offset - r.lineStart + 1
	if col < 1 {
		col = 1
	}
	return &ParseError{
		Msg:    fmt.Sprintf(format, args...),
		Line:   r.line,
		Col:    col,
		Offset: offset,
	}
}
