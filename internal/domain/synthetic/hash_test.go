package synthetic

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashKnownValues(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"", 0},
		{"a", 97},
		{"ab", 3105},
		{"hello", 99162322},
		{"Ernakulam", 1622797138},
		// folds to MinInt32; the absolute value must not overflow.
		{"polygenelubricants", 2147483648},
		{"കേരളം", 1097483443},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, Hash(tc.in), "hash(%q)", tc.in)
	}
}

func TestHashNonNegativeAndStable(t *testing.T) {
	var printable []byte
	for c := byte(32); c < 127; c++ {
		printable = append(printable, c)
	}
	for i := 0; i < len(printable); i++ {
		for j := i; j <= len(printable) && j-i <= 24; j++ {
			s := string(printable[i:j])
			first := Hash(s)
			require.GreaterOrEqual(t, first, int64(0), "hash(%q)", s)
			require.Equal(t, first, Hash(s))
		}
	}
}
