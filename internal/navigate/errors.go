package navigate

import (
	"errors"
	"fmt"
)

var (
	// ErrPropertyNotFound is returned when a segment names a property the
	// current bean does not declare.
	ErrPropertyNotFound = errors.New("property not found")
	// ErrNotIndexable is returned when keys are applied to a value that is
	// not a list, array or map.
	ErrNotIndexable = errors.New("property is not indexable")
	// ErrInvalidIndex is returned for list indices that are not integers.
	ErrInvalidIndex = errors.New("invalid list index")
)

// PathError describes why a parameter name could not be navigated.
type PathError struct {
	Param   string // raw parameter name
	Segment string // segment being navigated, with its keys
	Owner   string // type of the value the segment was applied to
	// Terminal is set when the failing segment is the last one of the path.
	Terminal    bool
	Suggestions []string
	Err         error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s: %s on %s: %v", e.Param, e.Segment, e.Owner, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}
