package json

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeZeroValueEncodesAsNull(t *testing.T) {
	out, err := EncodeToString(JSON{}, EncoderOptions{})
	require.NoError(t, err)
	assert.Equal(t, "null", out)
}

func TestEncodeRoundTripCompact(t *testing.T) {
	input := `{"a":1,"b":[true,null,"x"]}`
	v, err := ParseString(input, ParserOptions{})
	require.NoError(t, err)

	out, err := EncodeToString(v, EncoderOptions{})
	require.NoError(t, err)
	assert.Equal(t, input, out)
}

func TestEncodeDoubleForcesDotZero(t *testing.T) {
	// Scenario: a whole-number Double must re-encode with ".0" so it
	// re-parses as Double rather than Int64.
	out, err := EncodeToString(Double(150.0), EncoderOptions{})
	require.NoError(t, err)
	assert.Equal(t, "150.0", out)

	v, err := ParseString(out, ParserOptions{})
	require.NoError(t, err)
	assert.Equal(t, KindDouble, v.Kind())
}

func TestEncodeDecimalPreservesScale(t *testing.T) {
	d, err := NewDecimalFromString("150")
	require.NoError(t, err)
	out, err := EncodeToString(DecimalValue(d), EncoderOptions{})
	require.NoError(t, err)
	assert.Equal(t, "150", out)
}

func TestEncodePrettySortedKeys(t *testing.T) {
	v := NewObjectBuilder().SetInt64("b", 2).SetInt64("a", 1).Build()
	out, err := EncodeToString(v, EncoderOptions{Pretty: true, SortedKeys: true})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1,\n  \"b\": 2\n}", out)
}

func TestEncodeEmptyContainers(t *testing.T) {
	out, err := EncodeToString(FromObject(NewObject()), EncoderOptions{Pretty: true})
	require.NoError(t, err)
	assert.Equal(t, "{}", out)

	out, err = EncodeToString(FromArray(NewArray()), EncoderOptions{Pretty: true})
	require.NoError(t, err)
	assert.Equal(t, "[]", out)
}

func TestEncodeStringEscaping(t *testing.T) {
	out, err := EncodeToString(String("a\"b\\c\nd/e"), EncoderOptions{})
	require.NoError(t, err)
	assert.Equal(t, `"a\"b\\c\nd/e"`, out)

	out, err = EncodeToString(String("a/b"), EncoderOptions{EscapeSlashes: true})
	require.NoError(t, err)
	assert.Equal(t, `"a\/b"`, out)
}

func TestEncodeASCIIOnlyEscapesNonASCII(t *testing.T) {
	out, err := EncodeToString(String("é"), EncoderOptions{ASCIIOnly: true})
	require.NoError(t, err)
	assert.Equal(t, "\"\\u00e9\"", out)

	out, err = EncodeToString(String("é"), EncoderOptions{})
	require.NoError(t, err)
	assert.Equal(t, `"é"`, out)
}

func TestEncodeASCIIOnlySurrogatePairForNonBMP(t *testing.T) {
	out, err := EncodeToString(String("😀"), EncoderOptions{ASCIIOnly: true})
	require.NoError(t, err)
	assert.Equal(t, "\"\\ud83d\\ude00\"", out)
}

func TestEncodeNonFiniteRequiresOptIn(t *testing.T) {
	_, err := Encode(Double(math.Inf(1)), EncoderOptions{})
	require.Error(t, err)
	require.ErrorIs(t, err, ErrNonFiniteNumber)

	out, err := EncodeToString(Double(math.Inf(1)), EncoderOptions{AllowNonFiniteNumbers: true})
	require.NoError(t, err)
	assert.Equal(t, `"Infinity"`, out)
}
