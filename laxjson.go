// Package laxjson provides an in-memory JSON value model with a streaming
// token reader/writer pair and a JSONPath-style query engine.
//
// The package parses a deliberately relaxed superset of JSON, holds the
// document as a compact tagged value tree, supports programmatic mutation,
// serializes back to text, and selects values declaratively with compiled
// path expressions.
//
// # Relaxed grammar
//
// The reader accepts the following extensions beyond strict JSON. These are
// intentional product behavior, not defects:
//
//   - dictionary keys need not be quoted when they contain no delimiter
//     characters: { answer : 42 }
//   - trailing commas in arrays and dictionaries: [1, 2, 3,]
//   - the bare number literals NaN, Infinity and -Infinity
//   - leading zeros in numbers: 007
//   - raw tab and line-break characters inside quoted strings
//   - unlimited nesting depth
//   - trailing data after the top-level value is ignored
//
// An integer literal whose magnitude exceeds the signed 64-bit range is
// reparsed as a float rather than rejected.
//
// The writer mirrors the reader's extensions: non-finite floats are emitted
// as the bare literals NaN, Infinity and -Infinity. All other writer output
// is strict JSON.
//
// # Basic usage
//
//	doc, err := laxjson.ParseString(`{ "store" : { "count" : 42 } }`)
//	if err != nil {
//		log.Fatal(err)
//	}
//	n := doc.Root().Field("store").Field("count").AsInt(0) // 42
//
//	matches, err := doc.Query("$..count")
//
// Reads through absent data are total: Item and Field return a Null value
// for any miss, so chains like root.Field("a").Item(3).Field("b") never
// panic and never need intermediate checks.
//
// A Document and its values are not safe for concurrent mutation. Read-only
// concurrent access to a fully built document is safe except that a
// dictionary lookup may build the dictionary's hash index on first use, so
// even lookups require external serialization with writers present.
package laxjson

import "errors"

// Error definitions for model and query operations
var (
	// ErrNotArray reports an array mutation invoked on a non-array value.
	ErrNotArray = errors.New("value is not an array")

	// ErrNotDict reports a dictionary mutation invoked on a non-dictionary value.
	ErrNotDict = errors.New("value is not a dictionary")

	// ErrIndexRange reports a validated delete at an out-of-range position.
	ErrIndexRange = errors.New("index out of range")

	// ErrRootType reports a document whose top-level value is not an array
	// or dictionary.
	ErrRootType = errors.New("root value must be an array or dictionary")

	// ErrBadState reports a reader accessor called without the matching token.
	ErrBadState = errors.New("reader accessor does not match current token")

	// ErrBadItem reports an unsupported Go value passed to Add or Set.
	ErrBadItem = errors.New("unsupported item type")
)

// Type identifies the variant held by a Value.
type Type uint8

const (
	TypeNull Type = iota
	TypeBool
	TypeInt
	TypeFloat
	TypeString
	TypeArray
	TypeDict
)

// String returns the lower-case name of the type.
func (t Type) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	case TypeArray:
		return "array"
	case TypeDict:
		return "dictionary"
	}
	return "unknown"
}
