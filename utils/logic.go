package utils

import "cmp"

func TT[T any](condition bool, x T, y T) T {
	if condition {
		return x
	}
	return y
}

func TTF[T any](condition bool, x func() T, y func() T) T {
	if condition {
		return x()
	}
	return y()
}

// Clamp bounds x to [lo, hi]. lo is applied first so hi wins when lo > hi.
func Clamp[T cmp.Ordered](x T, lo T, hi T) T {
	return min(max(x, lo), hi)
}
