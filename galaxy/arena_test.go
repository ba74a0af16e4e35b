package galaxy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArenaAddAndGrow(t *testing.T) {
	a := NewArena(4)
	assert.Equal(t, 0, a.Len())
	assert.Equal(t, 4, a.Cap())

	for i := 0; i < 4; i++ {
		idx, err := a.Add(Galaxy{GalaxyNr: i})
		assert.NoError(t, err)
		assert.Equal(t, i, idx)
	}
	assert.Equal(t, 4, a.Cap())

	// the fifth add grows the arena; small arenas jump by the additive
	// floor, never by less
	_, err := a.Add(Galaxy{GalaxyNr: 4})
	assert.NoError(t, err)
	assert.Equal(t, 1004, a.Cap())

	// growth preserved the contents
	for i := 0; i < 5; i++ {
		assert.Equal(t, i, a.At(i).GalaxyNr)
	}
}

func TestArenaGrowthRule(t *testing.T) {
	// below 2000 slots the additive floor wins, above it the multiplier
	a := &Arena{gals: make([]Galaxy, 3000, 3000)}
	_, err := a.Add(Galaxy{})
	assert.NoError(t, err)
	assert.Equal(t, 4500, a.Cap())
	assert.Equal(t, 3001, a.Len())
}

func TestArenaReset(t *testing.T) {
	a := NewArena(2)
	for i := 0; i < 10; i++ {
		_, err := a.Add(Galaxy{GalaxyNr: i})
		assert.NoError(t, err)
	}
	grown := a.Cap()

	a.Reset()
	assert.Equal(t, 0, a.Len())
	assert.Equal(t, grown, a.Cap(), "reset must keep the backing store")
}
