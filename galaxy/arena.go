package galaxy

// MaxArenaCap is the hard ceiling on working-population capacity. A tree
// asking for more galaxies than this is corrupt, not large.
const MaxArenaCap = 1000 * 1000 * 1000

// Arena holds the working galaxy population of the snapshot interval being
// evolved. Galaxies are addressed by index, so growth relocates but never
// invalidates them.
type Arena struct {
	gals []Galaxy
}

// NewArena returns an empty arena with the given initial capacity.
func NewArena(capacity int) *Arena {
	return &Arena{gals: make([]Galaxy, 0, capacity)}
}

func (a *Arena) Len() int         { return len(a.gals) }
func (a *Arena) Cap() int         { return cap(a.gals) }
func (a *Arena) At(i int) *Galaxy { return &a.gals[i] }
func (a *Arena) Slice() []Galaxy  { return a.gals }

// Reset empties the arena without releasing its backing store.
func (a *Arena) Reset() { a.gals = a.gals[:0] }

// Add appends g and returns its index, growing the arena if it is full.
// Growth multiplies the capacity by 1.5 or adds 1000 slots, whichever is
// larger. If the grown capacity would exceed MaxArenaCap the add fails and
// the arena is unchanged.
func (a *Arena) Add(g Galaxy) (int, error) {
	if len(a.gals) == cap(a.gals) {
		newCap := cap(a.gals) + cap(a.gals)/2
		if c := cap(a.gals) + 1000; c > newCap {
			newCap = c
		}
		if newCap > MaxArenaCap {
			return 0, &CapacityError{
				Container: "galaxy arena",
				Have:      cap(a.gals), Want: newCap,
			}
		}
		grown := make([]Galaxy, len(a.gals), newCap)
		copy(grown, a.gals)
		a.gals = grown
	}
	a.gals = append(a.gals, g)
	return len(a.gals) - 1, nil
}
