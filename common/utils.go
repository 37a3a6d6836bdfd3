package common

// Coalesce picks the first argument that is not the zero value of T. Config and script
// loaders use it to fall back to a default when a field was left empty.
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}
