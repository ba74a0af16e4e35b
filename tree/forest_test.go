package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// chain builds the two-snapshot forest used across the tests:
// halo 1 at snapshot 1 descends from halo 0 at snapshot 0, both roots of
// their own single-member FOF groups.
func chain() *Forest {
	return &Forest{
		File: 0, Tree: 0,
		Halos: []Halo{
			{
				Descendant: 1, FirstProgenitor: NilIndex,
				NextProgenitor: NilIndex,
				FirstHaloInFOF: 0, NextHaloInFOF: NilIndex,
				Len: 100, Mvir: 1.0, SnapNum: 0,
			},
			{
				Descendant: NilIndex, FirstProgenitor: 0,
				NextProgenitor: NilIndex,
				FirstHaloInFOF: 1, NextHaloInFOF: NilIndex,
				Len: 200, Mvir: 2.0, SnapNum: 1,
			},
		},
	}
}

func TestValidateAcceptsChain(t *testing.T) {
	assert.NoError(t, chain().Validate())
}

func TestValidateDanglingIndex(t *testing.T) {
	f := chain()
	f.Halos[0].Descendant = 7

	err := f.Validate()
	assert.Error(t, err)
	gc, ok := err.(*GraphConsistencyError)
	assert.True(t, ok, "expected a GraphConsistencyError")
	assert.Equal(t, int32(0), gc.Halo)
	assert.Equal(t, "Descendant", gc.Field)
}

func TestValidateMissingFOFGroup(t *testing.T) {
	f := chain()
	f.Halos[1].FirstHaloInFOF = NilIndex
	assert.Error(t, f.Validate())

	// pointing at a halo that is not its own group root is just as broken
	f = chain()
	f.Halos[0].FirstHaloInFOF = 1
	f.Halos[1].FirstHaloInFOF = 0
	assert.Error(t, f.Validate())
}

func TestValidateProgenitorOrdering(t *testing.T) {
	// a progenitor at the same snapshot as its descendant would make the
	// recursive walk loop forever
	f := chain()
	f.Halos[0].SnapNum = 1
	assert.Error(t, f.Validate())
}

func TestValidateAcceptsMassOrderedProgenitors(t *testing.T) {
	// progenitor chains run in mass order, not snapshot order, so a chain
	// head at an early snapshot may be followed by a lighter sibling from a
	// later one
	f := &Forest{
		Halos: []Halo{
			{
				Descendant: 2, FirstProgenitor: NilIndex,
				NextProgenitor: 1,
				FirstHaloInFOF: 0, NextHaloInFOF: NilIndex,
				Len: 500, SnapNum: 0,
			},
			{
				Descendant: 2, FirstProgenitor: NilIndex,
				NextProgenitor: NilIndex,
				FirstHaloInFOF: 1, NextHaloInFOF: NilIndex,
				Len: 80, SnapNum: 1,
			},
			{
				Descendant: NilIndex, FirstProgenitor: 0,
				NextProgenitor: NilIndex,
				FirstHaloInFOF: 2, NextHaloInFOF: NilIndex,
				Len: 600, SnapNum: 2,
			},
		},
	}
	assert.NoError(t, f.Validate())

	aux := NewAuxState(f)
	var visited []int32
	err := Walk(f, aux, func(root int32) error {
		visited = append(visited, root)
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, []int32{0, 1, 2}, visited)
}

func TestValidateChainMemberAtDescendantSnapshot(t *testing.T) {
	// a progenitor chain member that does not precede the descendant is
	// rejected no matter where it sits in the chain
	f := chain()
	f.Halos = append(f.Halos, Halo{
		Descendant: NilIndex, FirstProgenitor: NilIndex,
		NextProgenitor: NilIndex,
		FirstHaloInFOF: 2, NextHaloInFOF: NilIndex,
		Len: 10, SnapNum: 1,
	})
	f.Halos[0].NextProgenitor = 2

	err := f.Validate()
	assert.Error(t, err)
	gc, ok := err.(*GraphConsistencyError)
	assert.True(t, ok, "expected a GraphConsistencyError")
	assert.Equal(t, int32(1), gc.Halo)
	assert.Equal(t, "NextProgenitor", gc.Field)
}

func TestValidateFOFChainCycle(t *testing.T) {
	f := &Forest{
		Halos: []Halo{
			{
				Descendant: NilIndex, FirstProgenitor: NilIndex,
				NextProgenitor: NilIndex,
				FirstHaloInFOF: 0, NextHaloInFOF: 1, SnapNum: 0,
			},
			{
				Descendant: NilIndex, FirstProgenitor: NilIndex,
				NextProgenitor: NilIndex,
				FirstHaloInFOF: 0, NextHaloInFOF: 1, SnapNum: 0,
			},
		},
	}
	assert.Error(t, f.Validate())
}

func TestWalkOncePerGroupInCausalOrder(t *testing.T) {
	// two progenitor groups at snapshot 0 feeding one two-member group at
	// snapshot 1
	f := &Forest{
		Halos: []Halo{
			{
				Descendant: 2, FirstProgenitor: NilIndex,
				NextProgenitor: NilIndex,
				FirstHaloInFOF: 0, NextHaloInFOF: NilIndex,
				Len: 100, SnapNum: 0,
			},
			{
				Descendant: 3, FirstProgenitor: NilIndex,
				NextProgenitor: NilIndex,
				FirstHaloInFOF: 1, NextHaloInFOF: NilIndex,
				Len: 50, SnapNum: 0,
			},
			{
				Descendant: NilIndex, FirstProgenitor: 0,
				NextProgenitor: NilIndex,
				FirstHaloInFOF: 2, NextHaloInFOF: 3,
				Len: 160, SnapNum: 1,
			},
			{
				Descendant: NilIndex, FirstProgenitor: 1,
				NextProgenitor: NilIndex,
				FirstHaloInFOF: 2, NextHaloInFOF: NilIndex,
				Len: 40, SnapNum: 1,
			},
		},
	}
	assert.NoError(t, f.Validate())

	aux := NewAuxState(f)
	var visited []int32
	err := Walk(f, aux, func(root int32) error {
		visited = append(visited, root)
		return nil
	})
	assert.NoError(t, err)

	// each group root exactly once, progenitors before descendants
	assert.Equal(t, []int32{0, 1, 2}, visited)
	for i := range aux.Done {
		assert.True(t, aux.Done[i], "halo %d not visited", i)
	}
	assert.Equal(t, GroupDone, aux.Group[0])
	assert.Equal(t, GroupDone, aux.Group[1])
	assert.Equal(t, GroupDone, aux.Group[2])
	assert.Equal(t, GroupUnvisited, aux.Group[3], "group state lives on the root")
}
