package galaxy

import "fmt"

// CapacityError reports a population container that cannot grow any
// further. Have is the current capacity, Want the capacity the failed
// operation asked for.
type CapacityError struct {
	Container  string
	Have, Want int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf(
		"%s capacity exhausted: have %d, want %d",
		e.Container, e.Have, e.Want,
	)
}
