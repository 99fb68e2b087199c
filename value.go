// Package json implements a strongly-typed JSON codec: a streaming
// parser/lexer, a value model with a lossless number trichotomy
// (int64/float64/decimal), an encoder, and a typed accessor layer that
// extracts and coerces values while reporting path-annotated errors.
package json

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

// Kind is the tag of a JSON value.
type Kind int8

// Possible JSON value kinds.
const (
	KindNull Kind = iota
	KindBool
	KindString
	KindInt64
	KindDouble
	KindDecimal
	KindObject
	KindArray
	numKinds
	kindUnknown Kind = -1
)

var kindStrings = [numKinds]string{
	"null",
	"bool",
	"string",
	"int64",
	"double",
	"decimal",
	"object",
	"array",
}

// String returns a human-readable name for the Kind.
func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return "<unknown>"
	}
	return kindStrings[k]
}

// Category is the coarse type-error classification used in accessor
// errors: null, bool, string, number, object, array. Int64/Double/Decimal
// all collapse to Category "number".
type Category string

// Possible categories.
const (
	CategoryNull   Category = "null"
	CategoryBool   Category = "bool"
	CategoryString Category = "string"
	CategoryNumber Category = "number"
	CategoryObject Category = "object"
	CategoryArray  Category = "array"
)

// Category returns the coarse accessor-error category for k.
func (k Kind) Category() Category {
	switch k {
	case KindNull:
		return CategoryNull
	case KindBool:
		return CategoryBool
	case KindString:
		return CategoryString
	case KindInt64, KindDouble, KindDecimal:
		return CategoryNumber
	case KindObject:
		return CategoryObject
	case KindArray:
		return CategoryArray
	default:
		return ""
	}
}

// JSON is an immutable, tagged JSON value. The zero value is Null.
type JSON struct {
	kind       Kind
	boolValue  bool
	stringVal  string
	int64Val   int64
	doubleVal  float64
	decimalVal decimal.Decimal
	objectVal  *Object
	arrayVal   *Array
}

// Null is the JSON null value.
var Null = JSON{kind: KindNull}

// Bool constructs a JSON boolean value.
func Bool(b bool) JSON {
	return JSON{kind: KindBool, boolValue: b}
}

// String constructs a JSON string value.
func String(s string) JSON {
	return JSON{kind: KindString, stringVal: s}
}

// Int64 constructs a JSON integer value.
func Int64(i int64) JSON {
	return JSON{kind: KindInt64, int64Val: i}
}

// Double constructs a JSON floating-point value.
func Double(d float64) JSON {
	return JSON{kind: KindDouble, doubleVal: d}
}

// DecimalValue constructs a JSON arbitrary-precision decimal value.
func DecimalValue(d decimal.Decimal) JSON {
	return JSON{kind: KindDecimal, decimalVal: d}
}

// FromObject constructs a JSON object value.
func FromObject(o *Object) JSON {
	if o == nil {
		o = NewObject()
	}
	return JSON{kind: KindObject, objectVal: o}
}

// FromArray constructs a JSON array value.
func FromArray(a *Array) JSON {
	if a == nil {
		a = NewArray()
	}
	return JSON{kind: KindArray, arrayVal: a}
}

// Kind returns the tag of the value.
func (v JSON) Kind() Kind {
	if v.kind < 0 || v.kind >= numKinds {
		return kindUnknown
	}
	return v.kind
}

// IsNull reports whether v is the null value.
func (v JSON) IsNull() bool { return v.Kind() == KindNull }

// Equal reports whether v and other are structurally equal: object
// equality is by key-set and per-key value equality (order-independent),
// array equality is element-wise and positional, numbers compare across
// the Int64/Double/Decimal representations by numeric value.
func (v JSON) Equal(other JSON) bool {
	if v.Kind().Category() == CategoryNumber && other.Kind().Category() == CategoryNumber {
		return numericEqual(v, other)
	}
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.boolValue == other.boolValue
	case KindString:
		return v.stringVal == other.stringVal
	case KindObject:
		return v.objectVal.Equal(other.objectVal)
	case KindArray:
		return v.arrayVal.Equal(other.arrayVal)
	}
	return false
}

func numericEqual(a, b JSON) bool {
	// A non-finite Double (NaN/Inf) can only arise from a Go-constructed
	// Double(...) value — the parser rejects literals that overflow
	// float64, and AllowNonFiniteNumbers is an encoder option that writes
	// them as strings — and decimal.NewFromFloat panics on it, so guard explicitly
	// rather than let it route through the lossless conversion below.
	if an, ok := nonFiniteDouble(a); ok {
		bn, bok := nonFiniteDouble(b)
		if !bok {
			return false
		}
		if math.IsNaN(an) || math.IsNaN(bn) {
			return math.IsNaN(an) && math.IsNaN(bn)
		}
		return an == bn
	}
	if _, ok := nonFiniteDouble(b); ok {
		return false
	}
	da := toDecimalLossless(a)
	db := toDecimalLossless(b)
	return da.Equal(db)
}

// nonFiniteDouble reports v's float64 value and true iff v is a Double
// that is NaN or +/-Inf. Callers compare the result with math.IsNaN, not
// ==, since NaN == NaN is false in Go but this package's Equal treats two
// NaN Doubles as equal (structural equality, not IEEE 754 comparison).
func nonFiniteDouble(v JSON) (float64, bool) {
	if v.kind != KindDouble {
		return 0, false
	}
	if math.IsNaN(v.doubleVal) || math.IsInf(v.doubleVal, 0) {
		return v.doubleVal, true
	}
	return 0, false
}

func toDecimalLossless(v JSON) decimal.Decimal {
	switch v.kind {
	case KindInt64:
		return decimal.NewFromInt(v.int64Val)
	case KindDouble:
		return decimal.NewFromFloat(v.doubleVal)
	case KindDecimal:
		return v.decimalVal
	default:
		return decimal.Zero
	}
}

// String renders v for debugging via the real encoder (compact, default
// options) rather than a bespoke ad hoc formatter — unlike the teacher's
// Value.String(), which built non-JSON-escaped text by hand, this always
// produces valid JSON and never panics, even on a zero JSON{}.
func (v JSON) String() string {
	s, err := EncodeToString(v, EncoderOptions{})
	if err != nil {
		// Only non-finite Doubles without AllowNonFiniteNumbers can fail
		// here; fall back to a representation that still renders.
		s, _ = EncodeToString(v, EncoderOptions{AllowNonFiniteNumbers: true})
	}
	return s
}

// MarshalJSON lets a JSON value participate in encoding/json-based code
// (e.g. logging middleware, HTTP frameworks) without requiring callers to
// route through Encode directly.
func (v JSON) MarshalJSON() ([]byte, error) {
	return Encode(v, EncoderOptions{})
}

// Object is an ordered string-keyed mapping of JSON values. Keys are
// unique within an Object. Iteration order follows insertion order;
// lookups are O(1) expected.
type Object struct {
	keys   []string
	values []JSON
	index  map[string]int

	// path is the accumulated accessor path that produced this Object via
	// a keyed/indexed lookup ("" for a freshly parsed or constructed
	// Object). It lets a chain like GetObject("user").GetArray("tags")
	// report the full "user.tags[2]" path from the last call alone; see
	// scoped and accessors.go's resultErr/childPath.
	path string
}

// NewObject returns a new, empty Object.
func NewObject() *Object {
	return &Object{index: map[string]int{}}
}

// scoped returns a shallow copy of o (sharing the same keys/values/index)
// whose path is set to p, so accessor calls made through it report errors
// relative to the full chain rather than just the last lookup.
func (o *Object) scoped(p string) *Object {
	if o == nil {
		return nil
	}
	cp := *o
	cp.path = p
	return &cp
}

// Len returns the number of keys in the object.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Get returns the value for key and whether it was present.
func (o *Object) Get(key string) (JSON, bool) {
	if o == nil {
		return Null, false
	}
	i, ok := o.index[key]
	if !ok {
		return Null, false
	}
	return o.values[i], true
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Set inserts or replaces the value for key, preserving the original
// insertion position on replace and appending on first insertion.
func (o *Object) Set(key string, v JSON) {
	if i, ok := o.index[key]; ok {
		o.values[i] = v
		return
	}
	o.index[key] = len(o.keys)
	o.keys = append(o.keys, key)
	o.values = append(o.values, v)
}

// Delete removes key, if present, preserving the relative order of the
// remaining keys.
func (o *Object) Delete(key string) {
	i, ok := o.index[key]
	if !ok {
		return
	}
	o.keys = append(o.keys[:i], o.keys[i+1:]...)
	o.values = append(o.values[:i], o.values[i+1:]...)
	delete(o.index, key)
	for k, idx := range o.index {
		if idx > i {
			o.index[k] = idx - 1
		}
	}
}

// Keys returns the object's keys in insertion order. The returned slice
// must not be mutated.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return o.keys
}

// SortedKeys returns a freshly allocated, lexicographically sorted copy
// of the object's keys.
func (o *Object) SortedKeys() []string {
	keys := append([]string(nil), o.Keys()...)
	sort.Strings(keys)
	return keys
}

// ForEach calls fn for each key/value pair in insertion order, stopping
// and propagating the first non-nil error.
func (o *Object) ForEach(fn func(key string, v JSON) error) error {
	if o == nil {
		return nil
	}
	for i, k := range o.keys {
		if err := fn(k, o.values[i]); err != nil {
			return err
		}
	}
	return nil
}

// Equal reports whether two objects contain the same key set with
// pairwise-equal values; order is irrelevant.
func (o *Object) Equal(other *Object) bool {
	if o.Len() != other.Len() {
		return false
	}
	for i, k := range o.Keys() {
		ov, ok := other.Get(k)
		if !ok || !o.values[i].Equal(ov) {
			return false
		}
	}
	return true
}

// Array is an ordered sequence of JSON values.
type Array struct {
	items []JSON

	// path is the accumulated accessor path that produced this Array via
	// a keyed/indexed lookup; see Object.path and scoped.
	path string
}

// NewArray returns a new, empty Array.
func NewArray() *Array {
	return &Array{}
}

// NewArrayOf returns an Array containing a copy of items.
func NewArrayOf(items []JSON) *Array {
	return &Array{items: append([]JSON(nil), items...)}
}

// scoped returns a shallow copy of a (sharing the same items) whose path
// is set to p; see Object.scoped.
func (a *Array) scoped(p string) *Array {
	if a == nil {
		return nil
	}
	cp := *a
	cp.path = p
	return &cp
}

// Len returns the number of elements.
func (a *Array) Len() int {
	if a == nil {
		return 0
	}
	return len(a.items)
}

// At returns the element at index i and whether i was in bounds.
func (a *Array) At(i int) (JSON, bool) {
	if a == nil || i < 0 || i >= len(a.items) {
		return Null, false
	}
	return a.items[i], true
}

// Append adds v to the end of the array.
func (a *Array) Append(v JSON) {
	a.items = append(a.items, v)
}

// Insert inserts v at index i, shifting the element currently at i (and
// everything after it) one position to the right. i == Len() appends; i
// outside [0, Len()] is a no-op, mirroring Delete's no-op-on-absent-key
// posture rather than panicking.
func (a *Array) Insert(i int, v JSON) {
	if i < 0 || i > len(a.items) {
		return
	}
	a.items = append(a.items, Null)
	copy(a.items[i+1:], a.items[i:])
	a.items[i] = v
}

// Remove deletes the element at index i, shifting everything after it one
// position to the left. i outside [0, Len()) is a no-op.
func (a *Array) Remove(i int) {
	if i < 0 || i >= len(a.items) {
		return
	}
	a.items = append(a.items[:i], a.items[i+1:]...)
}

// Items returns the array's elements. The returned slice must not be
// mutated.
func (a *Array) Items() []JSON {
	if a == nil {
		return nil
	}
	return a.items
}

// Equal reports element-wise, positional equality.
func (a *Array) Equal(other *Array) bool {
	if a.Len() != other.Len() {
		return false
	}
	for i, v := range a.Items() {
		ov, _ := other.At(i)
		if !v.Equal(ov) {
			return false
		}
	}
	return true
}
