package json

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFamilyStrictNoCoercion(t *testing.T) {
	_, err := Int64(5).GetDouble()
	require.Error(t, err)
	var je *JSONError
	require.ErrorAs(t, err, &je)
	assert.Equal(t, ErrorMissingOrInvalidType, je.Kind)
	assert.True(t, errors.Is(err, ErrType))
}

func TestGetBoolOptionalOnNull(t *testing.T) {
	b, err := Null.GetBoolOptional()
	require.NoError(t, err)
	assert.Nil(t, b)
}

func TestToInt64CoercesFromString(t *testing.T) {
	i, err := String("42").ToInt64()
	require.NoError(t, err)
	assert.Equal(t, int64(42), i)

	_, err = String("not-a-number").ToInt64()
	require.Error(t, err)
}

func TestToInt64OutOfRangeDouble(t *testing.T) {
	_, err := Double(1e300).ToInt64()
	require.Error(t, err)
	var je *JSONError
	require.ErrorAs(t, err, &je)
	assert.Equal(t, ErrorOutOfRangeDouble, je.Kind)
}

func TestObjectGetBoolMissingKeyIsError(t *testing.T) {
	obj := NewObject()
	_, err := obj.GetBool("missing")
	require.Error(t, err)
	var je *JSONError
	require.ErrorAs(t, err, &je)
	assert.Equal(t, "missing", je.Path)
	assert.Equal(t, Category(""), je.Actual)
}

func TestObjectGetBoolOptionalMissingKeyIsEmpty(t *testing.T) {
	obj := NewObject()
	b, err := obj.GetBoolOptional("missing")
	require.NoError(t, err)
	assert.Nil(t, b)
}

func TestObjectGetBoolWrongTypePrefixesPath(t *testing.T) {
	obj := NewObject()
	obj.Set("a", String("x"))
	_, err := obj.GetBool("a")
	require.Error(t, err)
	var je *JSONError
	require.ErrorAs(t, err, &je)
	assert.Equal(t, "a", je.Path)
	assert.Equal(t, CategoryString, je.Actual)
}

func TestArrayIndexErrorPathHasNoDot(t *testing.T) {
	arr := NewArray()
	arr.Append(String("x"))
	_, err := arr.GetBool(0)
	require.Error(t, err)
	var je *JSONError
	require.ErrorAs(t, err, &je)
	assert.Equal(t, "[0]", je.Path)
}

func TestNestedPathPrefixComposesKeyThenIndex(t *testing.T) {
	v, err := ParseString(`{"items":[1,"bad"]}`, ParserOptions{})
	require.NoError(t, err)
	obj, err := v.GetObject()
	require.NoError(t, err)

	// obj.GetArray returns an Array scoped to "items", so the leaf error
	// below already carries the full path without the caller composing it.
	arr, err := obj.GetArray("items")
	require.NoError(t, err)
	_, err = arr.GetBool(1)
	require.Error(t, err)
	var je *JSONError
	require.ErrorAs(t, err, &je)
	assert.Equal(t, "items[1]", je.Path)
}

// TestChainedAccessorsAccumulateFullPath reproduces the chained accessor
// scenario directly: GetObject/GetArray return path-carrying containers,
// so a three-deep chain reports the full structural path from the one
// leaf call alone.
func TestChainedAccessorsAccumulateFullPath(t *testing.T) {
	v, err := ParseString(`{"user":{"tags":["a","b",7]}}`, ParserOptions{})
	require.NoError(t, err)
	root, err := v.GetObject()
	require.NoError(t, err)

	user, err := root.GetObject("user")
	require.NoError(t, err)
	tags, err := user.GetArray("tags")
	require.NoError(t, err)

	_, err = tags.GetString(2)
	require.Error(t, err)
	var je *JSONError
	require.ErrorAs(t, err, &je)
	assert.Equal(t, "user.tags[2]", je.Path)
	assert.Equal(t, required(CategoryString), je.Expected)
	assert.Equal(t, CategoryNumber, je.Actual)
}

// TestChainedAccessorsAccumulatePathThroughMissingKey covers the
// required-accessor-errors-on-missing path: the missing key itself must
// still compose onto the ancestor path.
func TestChainedAccessorsAccumulatePathThroughMissingKey(t *testing.T) {
	v, err := ParseString(`{"user":{"tags":[]}}`, ParserOptions{})
	require.NoError(t, err)
	root, err := v.GetObject()
	require.NoError(t, err)
	user, err := root.GetObject("user")
	require.NoError(t, err)

	_, err = user.GetObject("profile")
	require.Error(t, err)
	var je *JSONError
	require.ErrorAs(t, err, &je)
	assert.Equal(t, "user.profile", je.Path)
}

func TestKeyIndexFluentNavigation(t *testing.T) {
	v, err := ParseString(`{"a":{"b":[1,2,3]}}`, ParserOptions{})
	require.NoError(t, err)
	got := v.Key("a").Key("b").Index(1)
	i, err := got.GetInt64()
	require.NoError(t, err)
	assert.Equal(t, int64(2), i)

	assert.True(t, v.Key("missing").IsNull())
	assert.True(t, v.Key("a").Index(99).IsNull())
}

func TestArrayMapPropagatesIndexedError(t *testing.T) {
	arr := NewArrayOf([]JSON{Int64(1), String("bad"), Int64(3)})
	_, err := arr.Map(func(i int, v JSON) (JSON, error) {
		n, err := v.GetInt64()
		if err != nil {
			return JSON{}, err
		}
		return Int64(n * 2), nil
	})
	require.Error(t, err)
	var je *JSONError
	require.ErrorAs(t, err, &je)
	assert.Equal(t, "[1]", je.Path)
}

func TestArrayForEachStopsAtFirstError(t *testing.T) {
	arr := NewArrayOf([]JSON{Int64(1), Int64(2)})
	visited := 0
	err := arr.ForEach(func(i int, v JSON) error {
		visited++
		if i == 0 {
			return errors.New("boom")
		}
		return nil
	})
	require.Error(t, err)
	assert.Equal(t, 1, visited)
}

func TestDecimalAccessorRoundTrip(t *testing.T) {
	v, err := ParseString(`1.5`, ParserOptions{UseDecimals: true})
	require.NoError(t, err)
	d, err := v.GetDecimal()
	require.NoError(t, err)
	assert.Equal(t, "1.5", d.String())
}
