package tree

import "fmt"

// GraphConsistencyError reports a structurally broken merger tree: a link
// index outside the tree, a halo whose FOF pointer chain never reaches a
// group root, or a progenitor that does not precede its descendant in time.
type GraphConsistencyError struct {
	File, Tree int
	Halo       int32
	Field      string
	Value      int32
	Reason     string
}

func (e *GraphConsistencyError) Error() string {
	return fmt.Sprintf(
		"file %d, tree %d, halo %d: %s = %d: %s",
		e.File, e.Tree, e.Halo, e.Field, e.Value, e.Reason,
	)
}
