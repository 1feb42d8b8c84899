package ptr

import "strings"

func To[T any](v T) *T {
	return &v
}

// NonBlank returns nil for an empty or whitespace-only string.
func NonBlank(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func Deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
