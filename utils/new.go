package utils

func NewPtr[T any](value T) *T {
	var newValue T = value
	return &newValue
}

// ValueOr dereferences value, falling back to def when it is nil.
func ValueOr[T any](value *T, def T) T {
	if value == nil {
		return def
	}
	return *value
}
