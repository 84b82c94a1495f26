package utils

import "math/rand"

func RandomElement[T any](array []T) T {
	length := len(array)
	if length == 0 {
		panic("Array is empty")
	}
	return array[rand.Intn(length)]
}

func ValuesFunc[T any, V any](array []T, f func(T) V, filter ...func(T) bool) []V {
	var filterFunc func(T) bool
	if len(filter) > 0 {
		filterFunc = filter[0]
	}
	var values []V
	for idx := 0; idx < len(array); idx++ {
		if filterFunc != nil && !filterFunc(array[idx]) {
			continue
		}
		values = append(values, f(array[idx]))
	}
	return values
}

// ArrayChunk splits array into consecutive chunks of size elements, the last one
// possibly shorter. At most limit chunks are returned when limit > 0.
func ArrayChunk[T any](array []T, size int, limit int) [][]T {
	if size <= 0 {
		panic("chunk size must be positive")
	}
	var chunks [][]T
	for start := 0; start < len(array); start += size {
		if limit > 0 && len(chunks) == limit {
			break
		}
		chunks = append(chunks, array[start:min(start+size, len(array))])
	}
	return chunks
}
