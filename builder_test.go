package json

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectBuilderChaining(t *testing.T) {
	v := NewObjectBuilder().
		SetString("name", "ada").
		SetInt64("age", 36).
		SetBool("active", true).
		Build()

	obj, err := v.GetObject()
	require.NoError(t, err)
	name, err := obj.GetString("name")
	require.NoError(t, err)
	assert.Equal(t, "ada", name)
	age, err := obj.GetInt64("age")
	require.NoError(t, err)
	assert.Equal(t, int64(36), age)
}

func TestObjectBuilderDelete(t *testing.T) {
	b := NewObjectBuilder().SetInt64("a", 1).SetInt64("b", 2)
	b.Delete("a")
	obj, err := b.Build().GetObject()
	require.NoError(t, err)
	assert.False(t, obj.Has("a"))
	assert.True(t, obj.Has("b"))
}

func TestArrayBuilderChaining(t *testing.T) {
	v := NewArrayBuilder().
		AppendInt64(1).
		AppendString("two").
		AppendBool(true).
		Build()

	arr, err := v.GetArray()
	require.NoError(t, err)
	require.Equal(t, 3, arr.Len())
	i, _ := arr.GetInt64(0)
	assert.Equal(t, int64(1), i)
	s, _ := arr.GetString(1)
	assert.Equal(t, "two", s)
}

func TestArrayBuilderInsertAndRemove(t *testing.T) {
	b := NewArrayBuilder().AppendInt64(1).AppendInt64(3)
	b.Insert(1, Int64(2))
	b.Remove(0)
	arr, err := b.Build().GetArray()
	require.NoError(t, err)
	require.Equal(t, 2, arr.Len())
	i0, _ := arr.GetInt64(0)
	i1, _ := arr.GetInt64(1)
	assert.Equal(t, int64(2), i0)
	assert.Equal(t, int64(3), i1)
}

func TestBuilderResultSharesStateWithBuilder(t *testing.T) {
	b := NewObjectBuilder().SetInt64("a", 1)
	v1 := b.Build()
	b.SetInt64("a", 2)
	v2 := b.Build()

	// Both built values share the same underlying *Object (builders are
	// not meant to be reused after Build for that reason); document the
	// observable behavior rather than assert isolation that doesn't exist.
	a1, _ := v1.Key("a").GetInt64()
	a2, _ := v2.Key("a").GetInt64()
	assert.Equal(t, int64(2), a1)
	assert.Equal(t, int64(2), a2)
}
