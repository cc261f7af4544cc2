package laxjson

import (
	"math"
	"strconv"
	"unicode/utf16"
	"unicode/utf8"
)

// Writer turns a sequence of token-shaped write calls into punctuated,
// escaped JSON text. It tracks a context stack for comma, colon and indent
// decisions only; callers are responsible for well-formed nesting (a Name
// for every dictionary value, balanced Begin/End pairs).
//
// With pretty printing enabled, dictionary entries go on their own line
// indented two spaces deeper than their container while array elements
// share a line separated by ", ". With pretty printing disabled a single
// space replaces every line break and indentation.
type Writer struct {
	buf    []byte
	stack  []writeCtx
	pretty bool
}

type writeCtx struct {
	isDict bool
	count  int
}

// NewWriter returns a Writer. pretty selects multi-line output.
func NewWriter(pretty bool) *Writer {
	return &Writer{pretty: pretty}
}

// Bytes returns the text produced so far.
func (w *Writer) Bytes() []byte { return w.buf }

// String returns the text produced so far.
func (w *Writer) String() string { return string(w.buf) }

// Reset discards all produced text and context.
func (w *Writer) Reset() {
	w.buf = w.buf[:0]
	w.stack = w.stack[:0]
}

// BeginArray opens an array value.
func (w *Writer) BeginArray() {
	w.beginValue()
	w.buf = append(w.buf, '[')
	w.stack = append(w.stack, writeCtx{})
}

// EndArray closes the innermost array.
func (w *Writer) EndArray() {
	w.stack = w.stack[:len(w.stack)-1]
	w.buf = append(w.buf, ']')
}

// BeginDict opens a dictionary value.
func (w *Writer) BeginDict() {
	w.beginValue()
	w.buf = append(w.buf, '{')
	w.stack = append(w.stack, writeCtx{isDict: true})
}

// EndDict closes the innermost dictionary. An empty dictionary renders as
// {} with no inner space.
func (w *Writer) EndDict() {
	top := w.stack[len(w.stack)-1]
	w.stack = w.stack[:len(w.stack)-1]
	if top.count > 0 {
		w.entrySep()
	}
	w.buf = append(w.buf, '}')
}

// Name writes a dictionary entry name followed by " : ". It must precede
// every value written inside a dictionary.
func (w *Writer) Name(s string) {
	top := &w.stack[len(w.stack)-1]
	if top.count > 0 {
		w.buf = append(w.buf, ',')
	}
	top.count++
	w.entrySep()
	w.buf = appendEscaped(w.buf, s)
	w.buf = append(w.buf, " : "...)
}

// Null writes a null value.
func (w *Writer) Null() {
	w.beginValue()
	w.buf = append(w.buf, "null"...)
}

// Bool writes a boolean value.
func (w *Writer) Bool(b bool) {
	w.beginValue()
	if b {
		w.buf = append(w.buf, "true"...)
	} else {
		w.buf = append(w.buf, "false"...)
	}
}

// Int writes an integer value.
func (w *Writer) Int(n int64) {
	w.beginValue()
	w.buf = strconv.AppendInt(w.buf, n, 10)
}

// Float writes a float value. Finite values are rendered so a re-parse
// yields a float again: when the shortest rendering has neither '.' nor an
// exponent, ".0" is appended. Non-finite values use the bare literals NaN,
// Infinity and -Infinity, matching the reader's extension.
func (w *Writer) Float(f float64) {
	w.beginValue()
	w.buf = appendFloat(w.buf, f)
}

// Str writes a string value with full escaping.
func (w *Writer) Str(s string) {
	w.beginValue()
	w.buf = appendEscaped(w.buf, s)
}

// beginValue emits the element separator due before a value. Only array
// elements separate here; dictionary bookkeeping happens in Name.
func (w *Writer) beginValue() {
	if len(w.stack) == 0 {
		return
	}
	top := &w.stack[len(w.stack)-1]
	if top.isDict {
		return
	}
	if top.count > 0 {
		w.buf = append(w.buf, ", "...)
	}
	top.count++
}

// entrySep writes the break before a dictionary entry or closing brace:
// newline plus two spaces per enclosing container, or a single space in
// compact mode.
func (w *Writer) entrySep() {
	if !w.pretty {
		w.buf = append(w.buf, ' ')
		return
	}
	w.buf = append(w.buf, '\n')
	for i := 0; i < len(w.stack); i++ {
		w.buf = append(w.buf, "  "...)
	}
}

//------------------------------------------------------------------------------
// TEXT RENDERING
//------------------------------------------------------------------------------

func appendFloat(dst []byte, f float64) []byte {
	if math.IsNaN(f) {
		return append(dst, "NaN"...)
	}
	if math.IsInf(f, 1) {
		return append(dst, "Infinity"...)
	}
	if math.IsInf(f, -1) {
		return append(dst, "-Infinity"...)
	}
	start := len(dst)
	dst = strconv.AppendFloat(dst, f, 'g', -1, 64)
	for i := start; i < len(dst); i++ {
		if dst[i] == '.' || dst[i] == 'e' || dst[i] == 'E' {
			return dst
		}
	}
	return append(dst, ".0"...)
}

const hexDigits = "0123456789abcdef"

// appendEscaped writes s as a quoted JSON string. Quote, backslash and
// control characters are always escaped; every non-ASCII codepoint is
// emitted as \uXXXX, split into a surrogate pair above U+FFFF, so the
// output is pure ASCII.
func appendEscaped(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			i++
			switch {
			case c == '"':
				dst = append(dst, '\\', '"')
			case c == '\\':
				dst = append(dst, '\\', '\\')
			case c >= 0x20 && c < 0x7F:
				dst = append(dst, c)
			case c == '\b':
				dst = append(dst, '\\', 'b')
			case c == '\t':
				dst = append(dst, '\\', 't')
			case c == '\n':
				dst = append(dst, '\\', 'n')
			case c == '\f':
				dst = append(dst, '\\', 'f')
			case c == '\r':
				dst = append(dst, '\\', 'r')
			default:
				dst = appendHexEscape(dst, rune(c))
			}
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		if r <= 0xFFFF {
			dst = appendHexEscape(dst, r)
		} else {
			hi, lo := utf16.EncodeRune(r)
			dst = appendHexEscape(dst, hi)
			dst = appendHexEscape(dst, lo)
		}
	}
	return append(dst, '"')
}

func appendHexEscape(dst []byte, r rune) []byte {
	return append(dst, '\\', 'u',
		hexDigits[r>>12&0xF], hexDigits[r>>8&0xF],
		hexDigits[r>>4&0xF], hexDigits[r&0xF])
}
