// Package batch implements the fixed-size pagination contract shared by
// every listing operation.
package batch

// Page returns the half-open slice [index*size, min(index*size+size, len)).
// An index past the end yields an empty page, so walking indexes 0, 1, 2, …
// until the first empty page reproduces the list exactly once.
func Page[T any](list []T, index, size int) []T {
	if index < 0 || size <= 0 {
		return nil
	}
	start := index * size
	if start >= len(list) {
		return nil
	}
	end := start + size
	if end > len(list) {
		end = len(list)
	}
	return list[start:end]
}
