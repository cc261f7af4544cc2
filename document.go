package laxjson

import "fmt"

// Document owns the root of a value tree and its parse/serialize entry
// points. The root of a parsed document is always an array or dictionary.
type Document struct {
	root *Value
}

// NewDocument returns a document whose root is a new empty dictionary.
func NewDocument() *Document {
	return &Document{root: NewDict()}
}

// NewArrayDocument returns a document whose root is a new empty array.
func NewArrayDocument() *Document {
	return &Document{root: NewArray()}
}

// Parse builds a document from JSON text in the relaxed grammar. The
// top-level value must be an array or dictionary; anything else fails with
// ErrRootType. Data after the top-level value is ignored.
func Parse(data []byte) (*Document, error) {
	r := NewReader(data)
	tok, err := r.Next()
	if err != nil {
		return nil, err
	}
	var root *Value
	switch tok {
	case TokenDictStart:
		root = NewDict()
		err = buildDict(r, root)
	case TokenArrayStart:
		root = NewArray()
		err = buildArray(r, root)
	case TokenEOF:
		return nil, fmt.Errorf("empty document: %w", ErrRootType)
	default:
		return nil, fmt.Errorf("top-level value is %s: %w", tok, ErrRootType)
	}
	if err != nil {
		return nil, err
	}
	return &Document{root: root}, nil
}

// ParseString is Parse over a string.
func ParseString(s string) (*Document, error) {
	return Parse([]byte(s))
}

// Root returns the document's root value.
func (d *Document) Root() *Value { return d.root }

// Bytes serializes the document compactly.
func (d *Document) Bytes() []byte {
	w := NewWriter(false)
	writeValue(w, d.root)
	return w.Bytes()
}

// Pretty serializes the document with multi-line indentation.
func (d *Document) Pretty() []byte {
	w := NewWriter(true)
	writeValue(w, d.root)
	return w.Bytes()
}

// String returns the compact serialization.
func (d *Document) String() string { return string(d.Bytes()) }

// Query compiles expr (cached) and returns every value it selects.
func (d *Document) Query(expr string) ([]*Value, error) {
	p, err := CompilePath(expr)
	if err != nil {
		return nil, err
	}
	return p.Match(d.root), nil
}

// First compiles expr (cached) and returns the first selected value, or a
// Null value when nothing matches.
func (d *Document) First(expr string) (*Value, error) {
	p, err := CompilePath(expr)
	if err != nil {
		return nil, err
	}
	v, ok := p.MatchFirst(d.root)
	if !ok {
		return nullValue, nil
	}
	return v, nil
}

// Valid reports whether data parses as a document under the relaxed
// grammar, root type included.
func Valid(data []byte) bool {
	_, err := Parse(data)
	return err == nil
}

// Format reparses data and serializes it back, normalizing punctuation,
// escaping and (optionally) indentation in one step.
func Format(data []byte, pretty bool) ([]byte, error) {
	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if pretty {
		return doc.Pretty(), nil
	}
	return doc.Bytes(), nil
}

// JSON serializes a single value of any variant; unlike Document
// serialization the value need not be a container.
func (v *Value) JSON(pretty bool) []byte {
	w := NewWriter(pretty)
	writeValue(w, v)
	return w.Bytes()
}

//------------------------------------------------------------------------------
// READER-DRIVEN BUILD
//------------------------------------------------------------------------------

// buildArray fills arr from reader tokens until the matching ArrayEnd.
func buildArray(r *Reader, arr *Value) error {
	for {
		tok, err := r.Next()
		if err != nil {
			return err
		}
		switch tok {
		case TokenArrayEnd:
			return nil
		case TokenArrayStart:
			child, _ := arr.AddArray()
			if err := buildArray(r, child); err != nil {
				return err
			}
		case TokenDictStart:
			child, _ := arr.AddDict()
			if err := buildDict(r, child); err != nil {
				return err
			}
		default:
			if err := addToken(r, tok, arr); err != nil {
				return err
			}
		}
	}
}

// buildDict fills dst from reader tokens until the matching DictEnd.
func buildDict(r *Reader, dst *Value) error {
	for {
		tok, err := r.Next()
		if err != nil {
			return err
		}
		if tok == TokenDictEnd {
			return nil
		}
		name, err := r.Name()
		if err != nil {
			return err
		}
		tok, err = r.Next()
		if err != nil {
			return err
		}
		switch tok {
		case TokenArrayStart:
			child, _ := dst.SetArray(name)
			if err := buildArray(r, child); err != nil {
				return err
			}
		case TokenDictStart:
			child, _ := dst.SetDict(name)
			if err := buildDict(r, child); err != nil {
				return err
			}
		case TokenNull:
			_, err = dst.SetNull(name)
		case TokenBool:
			b, _ := r.Bool()
			_, err = dst.Set(name, b)
		case TokenInt:
			n, _ := r.Int()
			_, err = dst.Set(name, n)
		case TokenFloat:
			f, _ := r.Float()
			_, err = dst.Set(name, f)
		case TokenString:
			s, _ := r.Str()
			_, err = dst.Set(name, s)
		default:
			err = ErrBadState
		}
		if err != nil {
			return err
		}
	}
}

func addToken(r *Reader, tok Token, arr *Value) error {
	var err error
	switch tok {
	case TokenNull:
		_, err = arr.AddNull()
	case TokenBool:
		b, _ := r.Bool()
		_, err = arr.Add(b)
	case TokenInt:
		n, _ := r.Int()
		_, err = arr.Add(n)
	case TokenFloat:
		f, _ := r.Float()
		_, err = arr.Add(f)
	case TokenString:
		s, _ := r.Str()
		_, err = arr.Add(s)
	default:
		err = ErrBadState
	}
	return err
}

//------------------------------------------------------------------------------
// WRITER-DRIVEN SERIALIZE
//------------------------------------------------------------------------------

// writeValue drives w with the token sequence for v.
func writeValue(w *Writer, v *Value) {
	switch v.typ {
	case TypeNull:
		w.Null()
	case TypeBool:
		w.Bool(v.b)
	case TypeInt:
		w.Int(v.n)
	case TypeFloat:
		w.Float(v.f)
	case TypeString:
		w.Str(v.s)
	case TypeArray:
		w.BeginArray()
		for _, it := range v.arr {
			writeValue(w, it)
		}
		w.EndArray()
	case TypeDict:
		w.BeginDict()
		if v.obj != nil {
			for i := range v.obj.entries {
				w.Name(v.obj.entries[i].name)
				writeValue(w, v.obj.entries[i].value)
			}
		}
		w.EndDict()
	}
}
