package utils

// AlignRight fits values onto a fixed width of n, trusting the rightmost
// values: surplus values are dropped from the left and missing ones are
// padded with zero on the left.
func AlignRight[T any](values []T, n int, zero T) []T {
	if n <= 0 {
		return []T{}
	}

	out := make([]T, n)
	if len(values) >= n {
		copy(out, values[len(values)-n:])
		return out
	}

	pad := n - len(values)
	for i := 0; i < pad; i++ {
		out[i] = zero
	}
	copy(out[pad:], values)
	return out
}
