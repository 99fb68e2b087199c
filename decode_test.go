package json

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSimpleObject(t *testing.T) {
	v, err := ParseString(`{"a":1,"b":[true,null,"x"]}`, ParserOptions{})
	require.NoError(t, err)
	obj, err := v.GetObject()
	require.NoError(t, err)

	a, err := obj.GetInt64("a")
	require.NoError(t, err)
	assert.Equal(t, int64(1), a)

	arr, err := obj.GetArray("b")
	require.NoError(t, err)
	require.Equal(t, 3, arr.Len())
	b0, _ := arr.GetBool(0)
	assert.True(t, b0)
	el1, _ := arr.At(1)
	assert.True(t, el1.IsNull())
	s2, err := arr.GetString(2)
	require.NoError(t, err)
	assert.Equal(t, "x", s2)
}

func TestParseRejectsTrailingTopLevelValue(t *testing.T) {
	_, err := ParseString(`1 2`, ParserOptions{})
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ErrTrailingData, pe.Code)
}

func TestDuplicateKeyPolicies(t *testing.T) {
	input := `{"a":1,"a":2}`

	v, err := ParseString(input, ParserOptions{DuplicateKeys: KeepLastDuplicateKey})
	require.NoError(t, err)
	obj, err := v.GetObject()
	require.NoError(t, err)
	a, err := obj.GetInt64("a")
	require.NoError(t, err)
	assert.Equal(t, int64(2), a)

	_, err = ParseString(input, ParserOptions{DuplicateKeys: ErrorOnDuplicateKey})
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ErrDuplicateKey, pe.Code)
}

func TestDecoderStreamingMultipleValues(t *testing.T) {
	d := NewDecoder(NewRuneSource([]byte(`1 2 3`)), ParserOptions{Streaming: true})
	var got []int64
	for {
		v, err := d.Decode()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		i, err := v.GetInt64()
		require.NoError(t, err)
		got = append(got, i)
	}
	assert.Equal(t, []int64{1, 2, 3}, got)
}

func TestParseUTF16LEInput(t *testing.T) {
	// BOM(FF FE) + '{' + '}' encoded as UTF-16LE code units.
	buf := []byte{0xFF, 0xFE, 0x7B, 0x00, 0x7D, 0x00}
	v, err := Parse(buf, ParserOptions{})
	require.NoError(t, err)
	obj, err := v.GetObject()
	require.NoError(t, err)
	assert.Equal(t, 0, obj.Len())
}

func TestParseDeeplyNestedExceedsDefaultDepth(t *testing.T) {
	input := ""
	for i := 0; i < DefaultMaxDepth+1; i++ {
		input += "["
	}
	_, err := ParseString(input, ParserOptions{})
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ErrExceededDepthLimit, pe.Code)
}
