package common

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are zero.
//
// Parameters:
//   - values: a variadic list of values to check for non-zero status
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// Number is the set of scalar types accepted by PositiveOr.
type Number interface {
	~int | ~int32 | ~int64 | ~uint32 | ~float32 | ~float64
}

// PositiveOr returns v when it is strictly positive, otherwise fallback.
// NaN is not positive and falls back as well.
//
// Parameters:
//   - v: the candidate value, usually from a builder option
//   - fallback: the value used when v is zero, negative or NaN
//
// Returns:
//   - T: v or fallback
func PositiveOr[T Number](v, fallback T) T {
	if v > 0 {
		return v
	}
	return fallback
}
