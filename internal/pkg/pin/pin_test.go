package pin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomGenerate(t *testing.T) {
	g := NewRandom()

	for range 1000 {
		p := g.Generate()
		assert.GreaterOrEqual(t, p, int32(Min))
		assert.Less(t, p, int32(Max))
	}
}
