package utils

import "cmp"

// ArgMax returns the index of the first maximum value, or -1 for an empty
// slice.
func ArgMax[T cmp.Ordered](values []T) int {
	if len(values) == 0 {
		return -1
	}
	best := 0
	for i, v := range values[1:] {
		if v > values[best] {
			best = i + 1
		}
	}
	return best
}

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}
