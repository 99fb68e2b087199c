package json

// ObjectBuilder and ArrayBuilder give callers a mutable construction
// surface over *Object/*Array, wrapped into a JSON value with Build.
// Build does not copy: the value it returns shares the builder's
// *Object/*Array, so calls made through the builder after Build are
// visible in every value it already built — a supplemented feature (not named by the
// distilled spec) grounded on the pack's builder idiom of accumulating
// entries into a slice before freezing them into a read-only value
// (map-protocol-map1's MapEntry). Neither builder is safe for concurrent
// use; each call mutates the builder in place and returns it, so calls
// can be chained.

// ObjectBuilder accumulates key/value pairs for a JSON object.
type ObjectBuilder struct {
	obj *Object
}

// NewObjectBuilder returns an empty ObjectBuilder.
func NewObjectBuilder() *ObjectBuilder {
	return &ObjectBuilder{obj: NewObject()}
}

// Set inserts or replaces key's value and returns the builder for chaining.
func (b *ObjectBuilder) Set(key string, v JSON) *ObjectBuilder {
	b.obj.Set(key, v)
	return b
}

// SetBool is a convenience wrapper for Set(key, Bool(v)).
func (b *ObjectBuilder) SetBool(key string, v bool) *ObjectBuilder { return b.Set(key, Bool(v)) }

// SetString is a convenience wrapper for Set(key, String(v)).
func (b *ObjectBuilder) SetString(key string, v string) *ObjectBuilder {
	return b.Set(key, String(v))
}

// SetInt64 is a convenience wrapper for Set(key, Int64(v)).
func (b *ObjectBuilder) SetInt64(key string, v int64) *ObjectBuilder { return b.Set(key, Int64(v)) }

// SetDouble is a convenience wrapper for Set(key, Double(v)).
func (b *ObjectBuilder) SetDouble(key string, v float64) *ObjectBuilder {
	return b.Set(key, Double(v))
}

// Delete removes key, if present, and returns the builder for chaining.
func (b *ObjectBuilder) Delete(key string) *ObjectBuilder {
	b.obj.Delete(key)
	return b
}

// Build wraps the accumulated pairs in a JSON object value, without
// copying them.
func (b *ObjectBuilder) Build() JSON { return FromObject(b.obj) }

// ArrayBuilder accumulates elements for a JSON array.
type ArrayBuilder struct {
	arr *Array
}

// NewArrayBuilder returns an empty ArrayBuilder.
func NewArrayBuilder() *ArrayBuilder {
	return &ArrayBuilder{arr: NewArray()}
}

// Append adds v to the end and returns the builder for chaining.
func (b *ArrayBuilder) Append(v JSON) *ArrayBuilder {
	b.arr.Append(v)
	return b
}

// AppendBool is a convenience wrapper for Append(Bool(v)).
func (b *ArrayBuilder) AppendBool(v bool) *ArrayBuilder { return b.Append(Bool(v)) }

// AppendString is a convenience wrapper for Append(String(v)).
func (b *ArrayBuilder) AppendString(v string) *ArrayBuilder { return b.Append(String(v)) }

// AppendInt64 is a convenience wrapper for Append(Int64(v)).
func (b *ArrayBuilder) AppendInt64(v int64) *ArrayBuilder { return b.Append(Int64(v)) }

// AppendDouble is a convenience wrapper for Append(Double(v)).
func (b *ArrayBuilder) AppendDouble(v float64) *ArrayBuilder { return b.Append(Double(v)) }

// Insert inserts v at index i and returns the builder for chaining.
func (b *ArrayBuilder) Insert(i int, v JSON) *ArrayBuilder {
	b.arr.Insert(i, v)
	return b
}

// Remove deletes the element at index i, if in bounds, and returns the
// builder for chaining.
func (b *ArrayBuilder) Remove(i int) *ArrayBuilder {
	b.arr.Remove(i)
	return b
}

// Build wraps the accumulated elements in a JSON array value, without
// copying them.
func (b *ArrayBuilder) Build() JSON { return FromArray(b.arr) }
