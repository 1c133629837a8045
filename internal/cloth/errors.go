package cloth

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange indicates a (row, col) outside the grid.
var ErrIndexOutOfRange = errors.New("cloth: particle index out of range")

// IndexError carries the offending coordinates of an out-of-range access.
type IndexError struct {
	Row, Col      int
	Width, Height int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%v: (%d, %d) not in %dx%d grid", ErrIndexOutOfRange, e.Row, e.Col, e.Width, e.Height)
}

func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}
