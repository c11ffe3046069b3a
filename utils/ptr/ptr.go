// Package ptr provides a helper for taking pointers to literals.
package ptr

// To returns a pointer to v.
func To[T any](v T) *T {
	return &v
}
