// Package uid provides small ID generation abstractions so business code can
// be tested with deterministic fakes.
package uid

// NumberID generates int64 identifiers suitable for database primary keys.
type NumberID interface {
	Generate() int64
}

// StringID generates string identifiers (correlation IDs, opaque tokens).
type StringID interface {
	Generate() string
}
