// Package storage provides the string-keyed persistence adapter every
// repository builds on. Values are serialized as JSON and must round-trip
// exactly for all task, settings, and user shapes.
//
// Adapter failures never propagate as errors: Get leaves the destination
// untouched (so the caller's default survives) and mutations report a
// boolean, matching the degrade-don't-crash policy for persistence.
package storage

// Store is a typed get/set/remove view over a persistent string-keyed store.
type Store interface {
	// Get decodes the value stored under key into v and reports whether a
	// value was found and decoded. On a miss or decode failure v is left
	// unmodified.
	Get(key string, v any) bool

	// Set serializes v under key and reports success.
	Set(key string, v any) bool

	// Remove deletes the value under key. Removing an absent key succeeds.
	Remove(key string) bool

	// Clear removes every value held by the store.
	Clear() bool
}
