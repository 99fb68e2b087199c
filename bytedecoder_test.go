package json

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectEncodingBOMs(t *testing.T) {
	cases := []struct {
		name     string
		buf      []byte
		wantEnc  Encoding
		wantSkip int
	}{
		{"utf8-bom", []byte{0xEF, 0xBB, 0xBF, '{', '}'}, EncodingUTF8, 3},
		{"utf16be-bom", []byte{0xFE, 0xFF, 0x00, '{'}, EncodingUTF16BE, 2},
		{"utf16le-bom", []byte{0xFF, 0xFE, '{', 0x00}, EncodingUTF16LE, 2},
		{"utf32be-bom", []byte{0x00, 0x00, 0xFE, 0xFF, 0, 0, 0, '{'}, EncodingUTF32BE, 4},
		{"utf32le-bom", []byte{0xFF, 0xFE, 0x00, 0x00, '{', 0, 0, 0}, EncodingUTF32LE, 4},
		{"no-bom-ascii", []byte(`{"a":1}`), EncodingUTF8, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			enc, skip := DetectEncoding(c.buf)
			assert.Equal(t, c.wantEnc, enc)
			assert.Equal(t, c.wantSkip, skip)
		})
	}
}

func TestDetectEncodingHeuristicNoBOM(t *testing.T) {
	// '{' is 0x7B; UTF-16BE with no BOM pads the high byte with 0x00.
	buf := []byte{0x00, 0x7B, 0x00, '"'}
	enc, skip := DetectEncoding(buf)
	assert.Equal(t, EncodingUTF16BE, enc)
	assert.Equal(t, 0, skip)
}

func TestRuneSourceDecodesUTF16LE(t *testing.T) {
	// BOM + '{' + '}' each as a little-endian UTF-16 code unit.
	buf := []byte{0xFF, 0xFE, 0x7B, 0x00, 0x7D, 0x00}
	src := NewRuneSource(buf)
	assert.Equal(t, EncodingUTF16LE, src.Encoding())

	r1, ok := src.Next()
	require.True(t, ok)
	assert.Equal(t, '{', r1)
	r2, ok := src.Next()
	require.True(t, ok)
	assert.Equal(t, '}', r2)
	_, ok = src.Next()
	assert.False(t, ok)
}

func TestRuneSourceUTF8Passthrough(t *testing.T) {
	src := NewRuneSource([]byte("héllo"))
	var got []rune
	for {
		r, ok := src.Next()
		if !ok {
			break
		}
		got = append(got, r)
	}
	assert.Equal(t, []rune("héllo"), got)
}

func TestRuneSourceInvalidUTF8EmitsReplacement(t *testing.T) {
	src := NewRuneSource([]byte{'a', 0xFF, 'b'})
	r1, ok := src.Next()
	require.True(t, ok)
	assert.Equal(t, 'a', r1)
	r2, ok := src.Next()
	require.True(t, ok)
	assert.Equal(t, rune(replacementChar), r2)
	r3, ok := src.Next()
	require.True(t, ok)
	assert.Equal(t, 'b', r3)
}

func TestRuneSourceSurrogatePairUTF16(t *testing.T) {
	// U+1F600 (😀) as a UTF-16BE surrogate pair: D83D DE00.
	buf := []byte{0xD8, 0x3D, 0xDE, 0x00}
	src := &RuneSource{buf: buf, encoding: EncodingUTF16BE}
	r, ok := src.Next()
	require.True(t, ok)
	assert.Equal(t, rune(0x1F600), r)
}
