// Package pin generates the short numeric secrets delivered to end users.
//
// The source is deliberately non-cryptographic: a 6-digit space combined with
// a hard attempt ceiling is the actual defense, and math/rand/v2 avoids
// blocking on entropy under load.
package pin

import "math/rand/v2"

const (
	// Min is the smallest PIN ever generated.
	Min = 100000
	// Max is the exclusive upper bound of the PIN space.
	Max = 1000000
)

// Generator produces one-time PINs.
type Generator interface {
	Generate() int32
}

// Random is the production Generator drawing uniformly from [Min, Max).
type Random struct{}

// NewRandom returns a Random PIN generator.
func NewRandom() *Random {
	return &Random{}
}

// Generate returns a uniformly distributed 6-digit PIN.
func (*Random) Generate() int32 {
	return int32(Min + rand.IntN(Max-Min))
}
