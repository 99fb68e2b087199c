package json

import (
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// This file implements the typed accessor matrix of spec §4.5: for each
// scalar category (bool, string, int64, int, double, object, array —
// plus decimal, a completion not named in the category list since the
// category list predates the Decimal variant; see DESIGN.md) two
// families exist on JSON, *Object (keyed), and *Array (indexed):
//
//   - get-family: strict type check, no coercion.
//   - to-family: coercing, per the rules of §4.5.
//
// and each comes in a required shape (errors on missing/Null) and an
// optional shape (returns a nil pointer on missing/Null, no error).
// Path prefixing happens at the keyed/indexed boundary: a JSON-level
// accessor error always has an empty Path, and Object/Array wrappers
// rewrite it via prefixKey/prefixIndex before returning (spec §4.5,
// §7's "Propagation rule"). GetObject/GetArray (and their Optional/To
// aliases) additionally return the nested container *scoped* to the path
// that produced it (Object.scoped/Array.scoped), carrying an internal
// "path so far". resultErr folds that accumulated path in ahead of the
// current call's own prefixKey/prefixIndex, so a chain like
// root.GetObject("user").GetArray("tags").GetString(2) reports the full
// "user.tags[2]" from the one failing leaf call, not just "[2]".

// ---- JSON: get-family (strict, no coercion) ----

// GetBool returns v's boolean value, or a *JSONError if v is not a bool.
func (v JSON) GetBool() (bool, error) {
	if v.kind != KindBool {
		return false, missingOrInvalidType(required(CategoryBool), v.Kind().Category())
	}
	return v.boolValue, nil
}

// GetBoolOptional is GetBool, but returns (nil, nil) for Null.
func (v JSON) GetBoolOptional() (*bool, error) {
	if v.IsNull() {
		return nil, nil
	}
	b, err := v.GetBool()
	if err != nil {
		return nil, requalify(err, true)
	}
	return &b, nil
}

// GetString returns v's string value, or a *JSONError if v is not a string.
func (v JSON) GetString() (string, error) {
	if v.kind != KindString {
		return "", missingOrInvalidType(required(CategoryString), v.Kind().Category())
	}
	return v.stringVal, nil
}

func (v JSON) GetStringOptional() (*string, error) {
	if v.IsNull() {
		return nil, nil
	}
	s, err := v.GetString()
	if err != nil {
		return nil, requalify(err, true)
	}
	return &s, nil
}

// GetInt64 returns v's value if it is exactly an Int64 (no coercion from
// Double/Decimal; use ToInt64 for that).
func (v JSON) GetInt64() (int64, error) {
	if v.kind != KindInt64 {
		return 0, missingOrInvalidType(required(CategoryNumber), v.Kind().Category())
	}
	return v.int64Val, nil
}

func (v JSON) GetInt64Optional() (*int64, error) {
	if v.IsNull() {
		return nil, nil
	}
	i, err := v.GetInt64()
	if err != nil {
		return nil, requalify(err, true)
	}
	return &i, nil
}

// GetInt is GetInt64 narrowed to the platform int width.
func (v JSON) GetInt() (int, error) {
	i64, err := v.GetInt64()
	if err != nil {
		return 0, err
	}
	return narrowToInt(i64)
}

func (v JSON) GetIntOptional() (*int, error) {
	if v.IsNull() {
		return nil, nil
	}
	i, err := v.GetInt()
	if err != nil {
		return nil, requalify(err, true)
	}
	return &i, nil
}

// GetDouble returns v's value if it is exactly a Double.
func (v JSON) GetDouble() (float64, error) {
	if v.kind != KindDouble {
		return 0, missingOrInvalidType(required(CategoryNumber), v.Kind().Category())
	}
	return v.doubleVal, nil
}

func (v JSON) GetDoubleOptional() (*float64, error) {
	if v.IsNull() {
		return nil, nil
	}
	d, err := v.GetDouble()
	if err != nil {
		return nil, requalify(err, true)
	}
	return &d, nil
}

// GetDecimal returns v's value if it is exactly a Decimal.
func (v JSON) GetDecimal() (decimal.Decimal, error) {
	if v.kind != KindDecimal {
		return decimal.Decimal{}, missingOrInvalidType(required(CategoryNumber), v.Kind().Category())
	}
	return v.decimalVal, nil
}

func (v JSON) GetDecimalOptional() (*decimal.Decimal, error) {
	if v.IsNull() {
		return nil, nil
	}
	d, err := v.GetDecimal()
	if err != nil {
		return nil, requalify(err, true)
	}
	return &d, nil
}

// GetObject returns v's Object, or a *JSONError if v is not an object.
func (v JSON) GetObject() (*Object, error) {
	if v.kind != KindObject {
		return nil, missingOrInvalidType(required(CategoryObject), v.Kind().Category())
	}
	return v.objectVal, nil
}

func (v JSON) GetObjectOptional() (*Object, error) {
	if v.IsNull() {
		return nil, nil
	}
	return v.GetObject()
}

// GetArray returns v's Array, or a *JSONError if v is not an array.
func (v JSON) GetArray() (*Array, error) {
	if v.kind != KindArray {
		return nil, missingOrInvalidType(required(CategoryArray), v.Kind().Category())
	}
	return v.arrayVal, nil
}

func (v JSON) GetArrayOptional() (*Array, error) {
	if v.IsNull() {
		return nil, nil
	}
	return v.GetArray()
}

// requalify flips a *JSONError's Expected.Optional flag, used by the
// Optional wrappers so the error reports "expected optional(X)" rather
// than "expected required(X)" even though it delegates to the required
// accessor to do the actual check.
func requalify(err error, optionalWanted bool) error {
	if je, ok := err.(*JSONError); ok {
		cp := *je
		cp.Expected.Optional = optionalWanted
		return &cp
	}
	return err
}

// ---- JSON: to-family (coercing) ----

// ToString renders v as a string per spec §4.5: String passes through;
// Bool/Int64/Double/Decimal stringify in canonical form; Null becomes
// the literal "null"; Object/Array are an error.
func (v JSON) ToString() (string, error) {
	switch v.kind {
	case KindString:
		return v.stringVal, nil
	case KindNull:
		return "null", nil
	case KindBool:
		if v.boolValue {
			return "true", nil
		}
		return "false", nil
	case KindInt64:
		return strconv.FormatInt(v.int64Val, 10), nil
	case KindDouble:
		return strconv.FormatFloat(v.doubleVal, 'g', -1, 64), nil
	case KindDecimal:
		return v.decimalVal.String(), nil
	default:
		return "", missingOrInvalidType(required(CategoryString), v.Kind().Category())
	}
}

// ToStringOptional is ToString, but Null yields (nil, nil) rather than
// the literal "null".
func (v JSON) ToStringOptional() (*string, error) {
	if v.IsNull() {
		return nil, nil
	}
	s, err := v.ToString()
	if err != nil {
		return nil, requalify(err, true)
	}
	return &s, nil
}

// ToInt64 coerces v to an int64 per spec §4.5: Int64 passes; Double
// converts iff finite and in range (truncating toward zero); Decimal
// analogously; String parses as base-10 first, then falls through the
// Double path; anything else errors.
func (v JSON) ToInt64() (int64, error) {
	switch v.kind {
	case KindInt64:
		return v.int64Val, nil
	case KindDouble:
		return int64FromDouble(v.doubleVal)
	case KindDecimal:
		return int64FromDecimal(v.decimalVal)
	case KindString:
		if i, err := strconv.ParseInt(v.stringVal, 10, 64); err == nil {
			return i, nil
		}
		if d, err := strconv.ParseFloat(v.stringVal, 64); err == nil {
			return int64FromDouble(d)
		}
		return 0, missingOrInvalidType(required(CategoryNumber), CategoryString)
	default:
		return 0, missingOrInvalidType(required(CategoryNumber), v.Kind().Category())
	}
}

func int64FromDouble(d float64) (int64, error) {
	// math.MaxInt64 converts to float64 as 2^63, which is itself one past
	// the int64 range, hence >= rather than >.
	if math.IsNaN(d) || math.IsInf(d, 0) || d < math.MinInt64 || d >= math.MaxInt64 {
		return 0, outOfRangeDouble(d, "int64")
	}
	return int64(d), nil // truncates toward zero, per spec
}

func int64FromDecimal(d decimal.Decimal) (int64, error) {
	minD := decimal.NewFromInt(math.MinInt64)
	maxD := decimal.NewFromInt(math.MaxInt64)
	if d.LessThan(minD) || d.GreaterThan(maxD) {
		return 0, outOfRangeDecimal(d.String(), "int64")
	}
	return d.Truncate(0).IntPart(), nil
}

func (v JSON) ToInt64Optional() (*int64, error) {
	if v.IsNull() {
		return nil, nil
	}
	i, err := v.ToInt64()
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// ToInt delegates to ToInt64 and narrows to the platform int width.
func (v JSON) ToInt() (int, error) {
	i64, err := v.ToInt64()
	if err != nil {
		return 0, err
	}
	return narrowToInt(i64)
}

func (v JSON) ToIntOptional() (*int, error) {
	if v.IsNull() {
		return nil, nil
	}
	i, err := v.ToInt()
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func narrowToInt(i64 int64) (int, error) {
	if strconv.IntSize == 32 && (i64 < math.MinInt32 || i64 > math.MaxInt32) {
		return 0, outOfRangeInt64(i64, "int")
	}
	return int(i64), nil
}

// ToDouble coerces v to a float64: Int64 and Decimal convert (Decimal
// uses nearest-representable), Double passes, String parses with the
// standard floating-point grammar.
func (v JSON) ToDouble() (float64, error) {
	switch v.kind {
	case KindDouble:
		return v.doubleVal, nil
	case KindInt64:
		return float64(v.int64Val), nil
	case KindDecimal:
		f, _ := v.decimalVal.Float64()
		return f, nil
	case KindString:
		f, err := strconv.ParseFloat(v.stringVal, 64)
		if err != nil {
			return 0, missingOrInvalidType(required(CategoryNumber), CategoryString)
		}
		return f, nil
	default:
		return 0, missingOrInvalidType(required(CategoryNumber), v.Kind().Category())
	}
}

func (v JSON) ToDoubleOptional() (*float64, error) {
	if v.IsNull() {
		return nil, nil
	}
	d, err := v.ToDouble()
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ToDecimal, ToBool, ToObject, ToArray: spec §4.5 defines no coercion
// rule beyond the matching type for these, so the to-family is the
// get-family under another name — kept as distinct named functions to
// complete the accessor matrix (spec §9).
func (v JSON) ToDecimal() (decimal.Decimal, error)         { return v.GetDecimal() }
func (v JSON) ToDecimalOptional() (*decimal.Decimal, error) { return v.GetDecimalOptional() }
func (v JSON) ToBool() (bool, error)                        { return v.GetBool() }
func (v JSON) ToBoolOptional() (*bool, error)                { return v.GetBoolOptional() }
func (v JSON) ToObject() (*Object, error)                    { return v.GetObject() }
func (v JSON) ToObjectOptional() (*Object, error)            { return v.GetObjectOptional() }
func (v JSON) ToArray() (*Array, error)                      { return v.GetArray() }
func (v JSON) ToArrayOptional() (*Array, error)              { return v.GetArrayOptional() }

// ---- Object: keyed get/to families, each prefixing the key onto any
// resulting error's path. ----

// resultErr composes key onto err's path (via prefixKey) and then folds
// o's own accumulated path (if o was returned from an earlier keyed/
// indexed lookup — see Object.scoped) in ahead of that, so a chained call
// like root.GetObject("user").GetArray("tags").GetString(2) reports the
// full "user.tags[2]" path rather than just "[2]" from the last call.
func (o *Object) resultErr(key string, err error) error {
	return prefixBase(o.path, prefixKey(key, err))
}

// childPath is the path a container nested at key inherits so further
// accessor calls made through it keep accumulating.
func (o *Object) childPath(key string) string {
	return joinPaths(o.path, key)
}

func (o *Object) lookupRequired(key string, expected Expectation) (JSON, error) {
	v, ok := o.Get(key)
	if !ok {
		return Null, o.resultErr(key, missingOrInvalidType(expected, ""))
	}
	return v, nil
}

// GetBool returns the bool at key, erroring if key is missing or its
// value isn't a bool.
func (o *Object) GetBool(key string) (bool, error) {
	v, err := o.lookupRequired(key, required(CategoryBool))
	if err != nil {
		return false, err
	}
	b, err := v.GetBool()
	return b, o.resultErr(key, err)
}

// GetBoolOptional returns (nil, nil) if key is missing or null.
func (o *Object) GetBoolOptional(key string) (*bool, error) {
	v, ok := o.Get(key)
	if !ok {
		return nil, nil
	}
	b, err := v.GetBoolOptional()
	if err != nil {
		return nil, o.resultErr(key, err)
	}
	return b, nil
}

func (o *Object) GetString(key string) (string, error) {
	v, err := o.lookupRequired(key, required(CategoryString))
	if err != nil {
		return "", err
	}
	s, err := v.GetString()
	return s, o.resultErr(key, err)
}

func (o *Object) GetStringOptional(key string) (*string, error) {
	v, ok := o.Get(key)
	if !ok {
		return nil, nil
	}
	s, err := v.GetStringOptional()
	if err != nil {
		return nil, o.resultErr(key, err)
	}
	return s, nil
}

func (o *Object) GetInt64(key string) (int64, error) {
	v, err := o.lookupRequired(key, required(CategoryNumber))
	if err != nil {
		return 0, err
	}
	i, err := v.GetInt64()
	return i, o.resultErr(key, err)
}

func (o *Object) GetInt64Optional(key string) (*int64, error) {
	v, ok := o.Get(key)
	if !ok {
		return nil, nil
	}
	i, err := v.GetInt64Optional()
	if err != nil {
		return nil, o.resultErr(key, err)
	}
	return i, nil
}

func (o *Object) GetInt(key string) (int, error) {
	v, err := o.lookupRequired(key, required(CategoryNumber))
	if err != nil {
		return 0, err
	}
	i, err := v.GetInt()
	return i, o.resultErr(key, err)
}

func (o *Object) GetIntOptional(key string) (*int, error) {
	v, ok := o.Get(key)
	if !ok {
		return nil, nil
	}
	i, err := v.GetIntOptional()
	if err != nil {
		return nil, o.resultErr(key, err)
	}
	return i, nil
}

func (o *Object) GetDouble(key string) (float64, error) {
	v, err := o.lookupRequired(key, required(CategoryNumber))
	if err != nil {
		return 0, err
	}
	d, err := v.GetDouble()
	return d, o.resultErr(key, err)
}

func (o *Object) GetDoubleOptional(key string) (*float64, error) {
	v, ok := o.Get(key)
	if !ok {
		return nil, nil
	}
	d, err := v.GetDoubleOptional()
	if err != nil {
		return nil, o.resultErr(key, err)
	}
	return d, nil
}

func (o *Object) GetDecimal(key string) (decimal.Decimal, error) {
	v, err := o.lookupRequired(key, required(CategoryNumber))
	if err != nil {
		return decimal.Decimal{}, err
	}
	d, err := v.GetDecimal()
	return d, o.resultErr(key, err)
}

func (o *Object) GetDecimalOptional(key string) (*decimal.Decimal, error) {
	v, ok := o.Get(key)
	if !ok {
		return nil, nil
	}
	d, err := v.GetDecimalOptional()
	if err != nil {
		return nil, o.resultErr(key, err)
	}
	return d, nil
}

// GetObject returns the Object at key, scoped to the path that produced
// it so further accessor calls made through the result keep accumulating
// the full path (e.g. root.GetObject("user").GetArray("tags") composes
// "user.tags" rather than each call starting over).
func (o *Object) GetObject(key string) (*Object, error) {
	v, err := o.lookupRequired(key, required(CategoryObject))
	if err != nil {
		return nil, err
	}
	ov, err := v.GetObject()
	if err != nil {
		return nil, o.resultErr(key, err)
	}
	return ov.scoped(o.childPath(key)), nil
}

func (o *Object) GetObjectOptional(key string) (*Object, error) {
	v, ok := o.Get(key)
	if !ok {
		return nil, nil
	}
	ov, err := v.GetObjectOptional()
	if err != nil {
		return nil, o.resultErr(key, err)
	}
	if ov == nil {
		return nil, nil
	}
	return ov.scoped(o.childPath(key)), nil
}

// GetArray returns the Array at key, scoped like GetObject.
func (o *Object) GetArray(key string) (*Array, error) {
	v, err := o.lookupRequired(key, required(CategoryArray))
	if err != nil {
		return nil, err
	}
	av, err := v.GetArray()
	if err != nil {
		return nil, o.resultErr(key, err)
	}
	return av.scoped(o.childPath(key)), nil
}

func (o *Object) GetArrayOptional(key string) (*Array, error) {
	v, ok := o.Get(key)
	if !ok {
		return nil, nil
	}
	av, err := v.GetArrayOptional()
	if err != nil {
		return nil, o.resultErr(key, err)
	}
	if av == nil {
		return nil, nil
	}
	return av.scoped(o.childPath(key)), nil
}

// ToString, ToInt64, ToInt, ToDouble mirror the Get family but coerce,
// per v.ToXxx; ToBool/ToObject/ToArray/ToDecimal alias Get (see JSON's
// to-family doc comment above).

func (o *Object) ToString(key string) (string, error) {
	v, err := o.lookupRequired(key, required(CategoryString))
	if err != nil {
		return "", err
	}
	s, err := v.ToString()
	return s, o.resultErr(key, err)
}

func (o *Object) ToStringOptional(key string) (*string, error) {
	v, ok := o.Get(key)
	if !ok {
		return nil, nil
	}
	s, err := v.ToStringOptional()
	if err != nil {
		return nil, o.resultErr(key, err)
	}
	return s, nil
}

func (o *Object) ToInt64(key string) (int64, error) {
	v, err := o.lookupRequired(key, required(CategoryNumber))
	if err != nil {
		return 0, err
	}
	i, err := v.ToInt64()
	return i, o.resultErr(key, err)
}

func (o *Object) ToInt64Optional(key string) (*int64, error) {
	v, ok := o.Get(key)
	if !ok {
		return nil, nil
	}
	i, err := v.ToInt64Optional()
	if err != nil {
		return nil, o.resultErr(key, err)
	}
	return i, nil
}

func (o *Object) ToInt(key string) (int, error) {
	v, err := o.lookupRequired(key, required(CategoryNumber))
	if err != nil {
		return 0, err
	}
	i, err := v.ToInt()
	return i, o.resultErr(key, err)
}

func (o *Object) ToIntOptional(key string) (*int, error) {
	v, ok := o.Get(key)
	if !ok {
		return nil, nil
	}
	i, err := v.ToIntOptional()
	if err != nil {
		return nil, o.resultErr(key, err)
	}
	return i, nil
}

func (o *Object) ToDouble(key string) (float64, error) {
	v, err := o.lookupRequired(key, required(CategoryNumber))
	if err != nil {
		return 0, err
	}
	d, err := v.ToDouble()
	return d, o.resultErr(key, err)
}

func (o *Object) ToDoubleOptional(key string) (*float64, error) {
	v, ok := o.Get(key)
	if !ok {
		return nil, nil
	}
	d, err := v.ToDoubleOptional()
	if err != nil {
		return nil, o.resultErr(key, err)
	}
	return d, nil
}

func (o *Object) ToDecimal(key string) (decimal.Decimal, error)         { return o.GetDecimal(key) }
func (o *Object) ToDecimalOptional(key string) (*decimal.Decimal, error) { return o.GetDecimalOptional(key) }
func (o *Object) ToBool(key string) (bool, error)                       { return o.GetBool(key) }
func (o *Object) ToBoolOptional(key string) (*bool, error)               { return o.GetBoolOptional(key) }
func (o *Object) ToObject(key string) (*Object, error)                   { return o.GetObject(key) }
func (o *Object) ToObjectOptional(key string) (*Object, error)           { return o.GetObjectOptional(key) }
func (o *Object) ToArray(key string) (*Array, error)                     { return o.GetArray(key) }
func (o *Object) ToArrayOptional(key string) (*Array, error)             { return o.GetArrayOptional(key) }

// ---- Array: indexed get/to families, each prefixing "[index]". ----

// resultErr composes "[i]" onto err's path and then folds a's own
// accumulated path in ahead of that; see Object.resultErr.
func (a *Array) resultErr(i int, err error) error {
	return prefixBase(a.path, prefixIndex(i, err))
}

// childPath is the path a container nested at i inherits so further
// accessor calls made through it keep accumulating.
func (a *Array) childPath(i int) string {
	return joinPaths(a.path, fmt.Sprintf("[%d]", i))
}

func (a *Array) lookupRequired(i int, expected Expectation) (JSON, error) {
	v, ok := a.At(i)
	if !ok {
		return Null, a.resultErr(i, missingOrInvalidType(expected, ""))
	}
	return v, nil
}

func (a *Array) GetBool(i int) (bool, error) {
	v, err := a.lookupRequired(i, required(CategoryBool))
	if err != nil {
		return false, err
	}
	b, err := v.GetBool()
	return b, a.resultErr(i, err)
}

func (a *Array) GetBoolOptional(i int) (*bool, error) {
	v, ok := a.At(i)
	if !ok {
		return nil, nil
	}
	b, err := v.GetBoolOptional()
	if err != nil {
		return nil, a.resultErr(i, err)
	}
	return b, nil
}

func (a *Array) GetString(i int) (string, error) {
	v, err := a.lookupRequired(i, required(CategoryString))
	if err != nil {
		return "", err
	}
	s, err := v.GetString()
	return s, a.resultErr(i, err)
}

func (a *Array) GetStringOptional(i int) (*string, error) {
	v, ok := a.At(i)
	if !ok {
		return nil, nil
	}
	s, err := v.GetStringOptional()
	if err != nil {
		return nil, a.resultErr(i, err)
	}
	return s, nil
}

func (a *Array) GetInt64(i int) (int64, error) {
	v, err := a.lookupRequired(i, required(CategoryNumber))
	if err != nil {
		return 0, err
	}
	iv, err := v.GetInt64()
	return iv, a.resultErr(i, err)
}

func (a *Array) GetInt64Optional(i int) (*int64, error) {
	v, ok := a.At(i)
	if !ok {
		return nil, nil
	}
	iv, err := v.GetInt64Optional()
	if err != nil {
		return nil, a.resultErr(i, err)
	}
	return iv, nil
}

func (a *Array) GetInt(i int) (int, error) {
	v, err := a.lookupRequired(i, required(CategoryNumber))
	if err != nil {
		return 0, err
	}
	iv, err := v.GetInt()
	return iv, a.resultErr(i, err)
}

func (a *Array) GetIntOptional(i int) (*int, error) {
	v, ok := a.At(i)
	if !ok {
		return nil, nil
	}
	iv, err := v.GetIntOptional()
	if err != nil {
		return nil, a.resultErr(i, err)
	}
	return iv, nil
}

func (a *Array) GetDouble(i int) (float64, error) {
	v, err := a.lookupRequired(i, required(CategoryNumber))
	if err != nil {
		return 0, err
	}
	d, err := v.GetDouble()
	return d, a.resultErr(i, err)
}

func (a *Array) GetDoubleOptional(i int) (*float64, error) {
	v, ok := a.At(i)
	if !ok {
		return nil, nil
	}
	d, err := v.GetDoubleOptional()
	if err != nil {
		return nil, a.resultErr(i, err)
	}
	return d, nil
}

func (a *Array) GetDecimal(i int) (decimal.Decimal, error) {
	v, err := a.lookupRequired(i, required(CategoryNumber))
	if err != nil {
		return decimal.Decimal{}, err
	}
	d, err := v.GetDecimal()
	return d, a.resultErr(i, err)
}

func (a *Array) GetDecimalOptional(i int) (*decimal.Decimal, error) {
	v, ok := a.At(i)
	if !ok {
		return nil, nil
	}
	d, err := v.GetDecimalOptional()
	if err != nil {
		return nil, a.resultErr(i, err)
	}
	return d, nil
}

// GetObject returns the Object at i, scoped to the path that produced it;
// see Object.GetObject.
func (a *Array) GetObject(i int) (*Object, error) {
	v, err := a.lookupRequired(i, required(CategoryObject))
	if err != nil {
		return nil, err
	}
	ov, err := v.GetObject()
	if err != nil {
		return nil, a.resultErr(i, err)
	}
	return ov.scoped(a.childPath(i)), nil
}

func (a *Array) GetObjectOptional(i int) (*Object, error) {
	v, ok := a.At(i)
	if !ok {
		return nil, nil
	}
	ov, err := v.GetObjectOptional()
	if err != nil {
		return nil, a.resultErr(i, err)
	}
	if ov == nil {
		return nil, nil
	}
	return ov.scoped(a.childPath(i)), nil
}

// GetArray returns the Array at i, scoped like GetObject.
func (a *Array) GetArray(i int) (*Array, error) {
	v, err := a.lookupRequired(i, required(CategoryArray))
	if err != nil {
		return nil, err
	}
	av, err := v.GetArray()
	if err != nil {
		return nil, a.resultErr(i, err)
	}
	return av.scoped(a.childPath(i)), nil
}

func (a *Array) GetArrayOptional(i int) (*Array, error) {
	v, ok := a.At(i)
	if !ok {
		return nil, nil
	}
	av, err := v.GetArrayOptional()
	if err != nil {
		return nil, a.resultErr(i, err)
	}
	if av == nil {
		return nil, nil
	}
	return av.scoped(a.childPath(i)), nil
}

func (a *Array) ToString(i int) (string, error) {
	v, err := a.lookupRequired(i, required(CategoryString))
	if err != nil {
		return "", err
	}
	s, err := v.ToString()
	return s, a.resultErr(i, err)
}

func (a *Array) ToStringOptional(i int) (*string, error) {
	v, ok := a.At(i)
	if !ok {
		return nil, nil
	}
	s, err := v.ToStringOptional()
	if err != nil {
		return nil, a.resultErr(i, err)
	}
	return s, nil
}

func (a *Array) ToInt64(i int) (int64, error) {
	v, err := a.lookupRequired(i, required(CategoryNumber))
	if err != nil {
		return 0, err
	}
	iv, err := v.ToInt64()
	return iv, a.resultErr(i, err)
}

func (a *Array) ToInt64Optional(i int) (*int64, error) {
	v, ok := a.At(i)
	if !ok {
		return nil, nil
	}
	iv, err := v.ToInt64Optional()
	if err != nil {
		return nil, a.resultErr(i, err)
	}
	return iv, nil
}

func (a *Array) ToInt(i int) (int, error) {
	v, err := a.lookupRequired(i, required(CategoryNumber))
	if err != nil {
		return 0, err
	}
	iv, err := v.ToInt()
	return iv, a.resultErr(i, err)
}

func (a *Array) ToIntOptional(i int) (*int, error) {
	v, ok := a.At(i)
	if !ok {
		return nil, nil
	}
	iv, err := v.ToIntOptional()
	if err != nil {
		return nil, a.resultErr(i, err)
	}
	return iv, nil
}

func (a *Array) ToDouble(i int) (float64, error) {
	v, err := a.lookupRequired(i, required(CategoryNumber))
	if err != nil {
		return 0, err
	}
	d, err := v.ToDouble()
	return d, a.resultErr(i, err)
}

func (a *Array) ToDoubleOptional(i int) (*float64, error) {
	v, ok := a.At(i)
	if !ok {
		return nil, nil
	}
	d, err := v.ToDoubleOptional()
	if err != nil {
		return nil, a.resultErr(i, err)
	}
	return d, nil
}

func (a *Array) ToDecimal(i int) (decimal.Decimal, error)         { return a.GetDecimal(i) }
func (a *Array) ToDecimalOptional(i int) (*decimal.Decimal, error) { return a.GetDecimalOptional(i) }
func (a *Array) ToBool(i int) (bool, error)                        { return a.GetBool(i) }
func (a *Array) ToBoolOptional(i int) (*bool, error)                { return a.GetBoolOptional(i) }
func (a *Array) ToObject(i int) (*Object, error)                    { return a.GetObject(i) }
func (a *Array) ToObjectOptional(i int) (*Object, error)            { return a.GetObjectOptional(i) }
func (a *Array) ToArray(i int) (*Array, error)                      { return a.GetArray(i) }
func (a *Array) ToArrayOptional(i int) (*Array, error)              { return a.GetArrayOptional(i) }

// ---- Fluent navigation, grounded on the teacher's Key/Index methods:
// drilling into an invalid value or missing key just propagates Null
// rather than panicking or requiring an error check at every step. ----

// Key returns the value at key if v is an Object containing it,
// otherwise Null.
func (v JSON) Key(key string) JSON {
	if v.kind != KindObject {
		return Null
	}
	r, _ := v.objectVal.Get(key)
	return r
}

// Index returns the element at i if v is an Array and i is in bounds,
// otherwise Null.
func (v JSON) Index(i int) JSON {
	if v.kind != KindArray {
		return Null
	}
	r, _ := v.arrayVal.At(i)
	return r
}

// ---- Collection helpers over Array (spec §4.5's map/flat-map/for-each),
// each pushing the element's index onto the path of any error the
// transform returns. ----

// Map applies fn to every element of a, prefixing "[i]" onto the path of
// any error fn returns, and stops at the first error.
func (a *Array) Map(fn func(i int, v JSON) (JSON, error)) (*Array, error) {
	out := NewArray()
	for i, v := range a.Items() {
		r, err := fn(i, v)
		if err != nil {
			return nil, a.resultErr(i, err)
		}
		out.Append(r)
	}
	return out, nil
}

// FlatMap is Map, but fn returns a slice of values that are concatenated
// into the result instead of appended one-for-one.
func (a *Array) FlatMap(fn func(i int, v JSON) ([]JSON, error)) (*Array, error) {
	out := NewArray()
	for i, v := range a.Items() {
		rs, err := fn(i, v)
		if err != nil {
			return nil, a.resultErr(i, err)
		}
		for _, r := range rs {
			out.Append(r)
		}
	}
	return out, nil
}

// FlatMapSequence is FlatMap, but fn returns an *Array rather than a
// slice — a convenience for transforms that already build one.
func (a *Array) FlatMapSequence(fn func(i int, v JSON) (*Array, error)) (*Array, error) {
	out := NewArray()
	for i, v := range a.Items() {
		rs, err := fn(i, v)
		if err != nil {
			return nil, a.resultErr(i, err)
		}
		if rs == nil {
			continue
		}
		for _, r := range rs.Items() {
			out.Append(r)
		}
	}
	return out, nil
}

// ForEach calls fn for every element of a in order, prefixing "[i]" onto
// the path of the first error fn returns and stopping there.
func (a *Array) ForEach(fn func(i int, v JSON) error) error {
	for i, v := range a.Items() {
		if err := fn(i, v); err != nil {
			return a.resultErr(i, err)
		}
	}
	return nil
}
