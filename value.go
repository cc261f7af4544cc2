package laxjson

import "math"

// Value is a single JSON datum: one of Null, Bool, Int, Float, String,
// Array or Dict. The zero Value is Null.
//
// Values form a strict ownership tree. Clients never assemble Value
// literals; every Value is produced by a container mutation method or by
// the parser, so its lifetime is always tied to an owning container or
// Document.
type Value struct {
	typ Type
	b   bool
	n   int64
	f   float64
	s   string
	arr []*Value
	obj *dict
}

// nullValue is the shared sentinel returned by total accessors on a miss.
// Every mutation method rejects it (its type is Null), so sharing is safe.
var nullValue = &Value{}

// NewArray returns a new empty array value.
func NewArray() *Value {
	return &Value{typ: TypeArray}
}

// NewDict returns a new empty dictionary value.
func NewDict() *Value {
	return &Value{typ: TypeDict}
}

func newBool(b bool) *Value    { return &Value{typ: TypeBool, b: b} }
func newInt(n int64) *Value    { return &Value{typ: TypeInt, n: n} }
func newFloat(f float64) *Value { return &Value{typ: TypeFloat, f: f} }
func newString(s string) *Value { return &Value{typ: TypeString, s: s} }

// newItem converts a plain Go value into an owned Value.
func newItem(item any) (*Value, error) {
	switch x := item.(type) {
	case nil:
		return &Value{}, nil
	case bool:
		return newBool(x), nil
	case int:
		return newInt(int64(x)), nil
	case int8:
		return newInt(int64(x)), nil
	case int16:
		return newInt(int64(x)), nil
	case int32:
		return newInt(int64(x)), nil
	case int64:
		return newInt(x), nil
	case uint:
		return newInt(int64(x)), nil
	case uint8:
		return newInt(int64(x)), nil
	case uint16:
		return newInt(int64(x)), nil
	case uint32:
		return newInt(int64(x)), nil
	case uint64:
		if x > math.MaxInt64 {
			return newFloat(float64(x)), nil
		}
		return newInt(int64(x)), nil
	case float32:
		return newFloat(float64(x)), nil
	case float64:
		return newFloat(x), nil
	case string:
		return newString(x), nil
	}
	return nil, ErrBadItem
}

// Type returns the variant held by v.
func (v *Value) Type() Type { return v.typ }

// IsNull reports whether v is the Null variant.
func (v *Value) IsNull() bool { return v.typ == TypeNull }

//------------------------------------------------------------------------------
// ARRAY MUTATION
//------------------------------------------------------------------------------

// Add appends item to the array, converting from a plain Go bool, integer,
// float, string or nil. It returns the appended value.
func (v *Value) Add(item any) (*Value, error) {
	if v.typ != TypeArray {
		return nil, ErrNotArray
	}
	nv, err := newItem(item)
	if err != nil {
		return nil, err
	}
	v.arr = append(v.arr, nv)
	return nv, nil
}

// AddNull appends a Null value to the array.
func (v *Value) AddNull() (*Value, error) {
	return v.Add(nil)
}

// AddArray appends a new empty array to the array and returns it.
func (v *Value) AddArray() (*Value, error) {
	if v.typ != TypeArray {
		return nil, ErrNotArray
	}
	nv := NewArray()
	v.arr = append(v.arr, nv)
	return nv, nil
}

// AddDict appends a new empty dictionary to the array and returns it.
func (v *Value) AddDict() (*Value, error) {
	if v.typ != TypeArray {
		return nil, ErrNotArray
	}
	nv := NewDict()
	v.arr = append(v.arr, nv)
	return nv, nil
}

// Delete removes the element at index i, shifting subsequent elements left.
// Unlike Item, Delete validates its bounds.
func (v *Value) Delete(i int) error {
	if v.typ != TypeArray {
		return ErrNotArray
	}
	if i < 0 || i >= len(v.arr) {
		return ErrIndexRange
	}
	copy(v.arr[i:], v.arr[i+1:])
	v.arr[len(v.arr)-1] = nil
	v.arr = v.arr[:len(v.arr)-1]
	return nil
}

// Clear removes every element of an array or every entry of a dictionary.
func (v *Value) Clear() error {
	switch v.typ {
	case TypeArray:
		v.arr = v.arr[:0]
		return nil
	case TypeDict:
		if v.obj != nil {
			v.obj.clear()
		}
		return nil
	}
	return ErrNotArray
}

//------------------------------------------------------------------------------
// DICTIONARY MUTATION
//------------------------------------------------------------------------------

// Set adds or replaces the entry for name, converting item from a plain Go
// value as Add does. Replacing an existing key keeps its position.
func (v *Value) Set(name string, item any) (*Value, error) {
	if v.typ != TypeDict {
		return nil, ErrNotDict
	}
	nv, err := newItem(item)
	if err != nil {
		return nil, err
	}
	v.dictStorage().set(name, nv)
	return nv, nil
}

// SetNull adds or replaces the entry for name with a Null value.
func (v *Value) SetNull(name string) (*Value, error) {
	return v.Set(name, nil)
}

// SetArray adds or replaces the entry for name with a new empty array.
func (v *Value) SetArray(name string) (*Value, error) {
	if v.typ != TypeDict {
		return nil, ErrNotDict
	}
	nv := NewArray()
	v.dictStorage().set(name, nv)
	return nv, nil
}

// SetDict adds or replaces the entry for name with a new empty dictionary.
func (v *Value) SetDict(name string) (*Value, error) {
	if v.typ != TypeDict {
		return nil, ErrNotDict
	}
	nv := NewDict()
	v.dictStorage().set(name, nv)
	return nv, nil
}

// Remove deletes the entry for name. Removing an absent name is a no-op.
func (v *Value) Remove(name string) error {
	if v.typ != TypeDict {
		return ErrNotDict
	}
	if v.obj != nil {
		v.obj.remove(name)
	}
	return nil
}

func (v *Value) dictStorage() *dict {
	if v.obj == nil {
		v.obj = &dict{}
	}
	return v.obj
}

//------------------------------------------------------------------------------
// TOTAL READ ACCESS
//------------------------------------------------------------------------------

// Item returns the array element at index i, or a Null value when v is not
// an array or i is out of range. It never fails, which allows unchecked
// chains through possibly absent data.
func (v *Value) Item(i int) *Value {
	if v.typ != TypeArray || i < 0 || i >= len(v.arr) {
		return nullValue
	}
	return v.arr[i]
}

// Field returns the dictionary entry for name, or a Null value when v is
// not a dictionary or the name is absent.
func (v *Value) Field(name string) *Value {
	if v.typ != TypeDict || v.obj == nil {
		return nullValue
	}
	if i := v.obj.find(name); i >= 0 {
		return v.obj.entries[i].value
	}
	return nullValue
}

// Lookup returns the dictionary entry for name and whether it exists.
func (v *Value) Lookup(name string) (*Value, bool) {
	if v.typ != TypeDict || v.obj == nil {
		return nullValue, false
	}
	if i := v.obj.find(name); i >= 0 {
		return v.obj.entries[i].value, true
	}
	return nullValue, false
}

// Len returns the element count of an array or entry count of a
// dictionary, and 0 for every other variant.
func (v *Value) Len() int {
	switch v.typ {
	case TypeArray:
		return len(v.arr)
	case TypeDict:
		if v.obj == nil {
			return 0
		}
		return len(v.obj.entries)
	}
	return 0
}

// IndexOf returns the insertion position of name in the dictionary, or -1
// when absent or v is not a dictionary.
func (v *Value) IndexOf(name string) int {
	if v.typ != TypeDict || v.obj == nil {
		return -1
	}
	return v.obj.find(name)
}

// Contains reports whether the dictionary has an entry for name.
func (v *Value) Contains(name string) bool {
	return v.IndexOf(name) >= 0
}

// EachItem calls fn for every array element in order. It does nothing when
// v is not an array.
func (v *Value) EachItem(fn func(i int, item *Value)) {
	if v.typ != TypeArray {
		return
	}
	for i, it := range v.arr {
		fn(i, it)
	}
}

// EachField calls fn for every dictionary entry in insertion order. It does
// nothing when v is not a dictionary.
func (v *Value) EachField(fn func(name string, item *Value)) {
	if v.typ != TypeDict || v.obj == nil {
		return
	}
	for i := range v.obj.entries {
		fn(v.obj.entries[i].name, v.obj.entries[i].value)
	}
}

//------------------------------------------------------------------------------
// EQUALITY
//------------------------------------------------------------------------------

// Equal reports deep structural equality. Two values are equal only when
// they hold the same variant with equal payload: arrays compare
// order-sensitively, dictionaries compare as key sets regardless of
// insertion order, and Int never equals Float even when numerically
// identical. Float comparison is bitwise on NaN (NaN equals NaN) so that
// round-tripped trees compare equal.
func (v *Value) Equal(o *Value) bool {
	if v.typ != o.typ {
		return false
	}
	switch v.typ {
	case TypeNull:
		return true
	case TypeBool:
		return v.b == o.b
	case TypeInt:
		return v.n == o.n
	case TypeFloat:
		if math.IsNaN(v.f) && math.IsNaN(o.f) {
			return true
		}
		return v.f == o.f
	case TypeString:
		return v.s == o.s
	case TypeArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	case TypeDict:
		if v.Len() != o.Len() {
			return false
		}
		if v.obj == nil {
			return true
		}
		for i := range v.obj.entries {
			ov, ok := o.Lookup(v.obj.entries[i].name)
			if !ok || !v.obj.entries[i].value.Equal(ov) {
				return false
			}
		}
		return true
	}
	return false
}
