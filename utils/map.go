package utils

func MapKeys[K comparable, T any](m map[K]T) []K {
	keys := make([]K, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	return keys
}

func MapHas[K comparable, T any](m map[K]T, k K) bool {
	if m == nil {
		return false
	}
	_, ok := m[k]
	return ok
}
