package model

import "fmt"

// StateInvariantError reports a galaxy population that has drifted into a
// state the evolution loop cannot continue from, like a FOF group with two
// central galaxies or a merger target that no longer exists.
type StateInvariantError struct {
	File, Tree int
	Halo       int32
	Galaxy     int
	Msg        string
}

func (e *StateInvariantError) Error() string {
	return fmt.Sprintf(
		"file %d, tree %d, halo %d, galaxy %d: %s",
		e.File, e.Tree, e.Halo, e.Galaxy, e.Msg,
	)
}

// RecipeAnomalyError reports a physics recipe that produced a value outside
// its allowed range, like negative reheated mass.
type RecipeAnomalyError struct {
	Recipe string
	Galaxy int
	Value  float64
}

func (e *RecipeAnomalyError) Error() string {
	return fmt.Sprintf(
		"%s recipe produced %g for galaxy %d",
		e.Recipe, e.Value, e.Galaxy,
	)
}
