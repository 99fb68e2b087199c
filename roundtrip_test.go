package json

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// roundtrip parses input, re-encodes it, and reparses the result, so the
// three-way comparison exercises both Decode and Encode in one test.
func roundtrip(t *testing.T, input string, opts ParserOptions) (JSON, JSON) {
	t.Helper()
	v1, err := ParseString(input, opts)
	require.NoError(t, err)
	out, err := EncodeToString(v1, EncoderOptions{SortedKeys: true})
	require.NoError(t, err)
	v2, err := ParseString(out, opts)
	require.NoError(t, err)
	return v1, v2
}

func TestRoundTripStructuralEquality(t *testing.T) {
	cases := []struct {
		name  string
		input string
		opts  ParserOptions
	}{
		{"nested-mixed", `{"a":1,"b":[true,null,"x",2.5]}`, ParserOptions{}},
		{"decimals", `{"price":19.99,"qty":3}`, ParserOptions{UseDecimals: true}},
		{"nested-arrays", `[[1,2],[3,[4,5]]]`, ParserOptions{}},
		{"unicode-strings", `{"name":"café","emoji":"😀"}`, ParserOptions{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v1, v2 := roundtrip(t, c.input, c.opts)
			// JSON implements Equal(JSON) bool, so cmp uses it directly
			// rather than reflecting into the type's unexported fields.
			if diff := cmp.Diff(v1, v2); diff != "" {
				t.Errorf("round-trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRoundTripWholeNumberDoubleStaysDouble(t *testing.T) {
	v1, v2 := roundtrip(t, `150.0`, ParserOptions{})
	if diff := cmp.Diff(v1, v2); diff != "" {
		t.Errorf("round-trip mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, KindDouble, v2.Kind())
}
