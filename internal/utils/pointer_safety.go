package utils

// ValueOr dereferences v, returning fallback when v is nil.
func ValueOr[T any](v *T, fallback T) T {
	if v == nil {
		return fallback
	}
	return *v
}

func Ptr[T any](v T) *T {
	return &v
}

// NonEmpty returns nil for the empty string so optional fields stay absent.
func NonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
