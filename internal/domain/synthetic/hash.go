package synthetic

import "unicode/utf16"

// Hash folds s into a non-negative integer with h = h*31 + c over UTF-16
// code units in a signed 32-bit register. Every generator in this package is
// seeded from it, so the arithmetic must not change.
func Hash(s string) int64 {
	var h int32
	for _, unit := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(unit)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return v
}

// firstCode returns the first UTF-16 code unit of s, or 0 for "".
func firstCode(s string) int {
	units := utf16.Encode([]rune(s))
	if len(units) == 0 {
		return 0
	}
	return int(units[0])
}

func pick[T any](items []T, n int64) T {
	return items[int(n%int64(len(items)))]
}
