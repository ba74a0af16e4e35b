package galaxy

// Ledger is the append-only record of every galaxy a tree has ever
// finalized, in the order they retired from the working population. Ledger
// indices are stable for the life of the tree and are what merger targets
// and catalogue rows refer to.
type Ledger struct {
	gals []Galaxy
	max  int
}

// NewLedger returns an empty ledger that will hold at most max galaxies.
func NewLedger(max int) *Ledger {
	return &Ledger{gals: make([]Galaxy, 0, min(max, 1024)), max: max}
}

func (l *Ledger) Len() int         { return len(l.gals) }
func (l *Ledger) At(i int) *Galaxy { return &l.gals[i] }
func (l *Ledger) Slice() []Galaxy  { return l.gals }

// Reset empties the ledger for the next tree.
func (l *Ledger) Reset() { l.gals = l.gals[:0] }

// Append adds a finalized galaxy and returns its ledger index.
func (l *Ledger) Append(g Galaxy) (int, error) {
	if len(l.gals) >= l.max {
		return 0, &CapacityError{
			Container: "galaxy ledger",
			Have:      l.max, Want: len(l.gals) + 1,
		}
	}
	l.gals = append(l.gals, g)
	return len(l.gals) - 1, nil
}

func min(x, y int) int {
	if x < y {
		return x
	}
	return y
}
