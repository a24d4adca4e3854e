package utils

type number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// IsInRange reports whether lo <= v <= hi.
func IsInRange[T number](lo, v, hi T) bool {
	return lo <= v && v <= hi
}

// IsIndex reports whether i is a valid index into a sequence of length n.
func IsIndex(i, n int) bool {
	return IsInRange(0, i, n-1)
}
