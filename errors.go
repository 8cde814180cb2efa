package carve

import "fmt"

// InvalidTargetError is returned when a target dimension violates the
// shrink-only contract: the engine never enlarges an image and never carves
// a dimension down to zero.
type InvalidTargetError struct {
	Dim   string
	Value int
	Max   int
}

func (e *InvalidTargetError) Error() string {
	return fmt.Sprintf("invalid target %s %d: the valid range is [1, %d]", e.Dim, e.Value, e.Max)
}
