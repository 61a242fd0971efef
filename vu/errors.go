package vu

import "fmt"

// MissingBlockError is returned when a mandatory transfer response block
// was never seen while finalizing a parsed vehicle unit download.
type MissingBlockError struct {
	Block string
}

func (e *MissingBlockError) Error() string {
	return fmt.Sprintf("vu: missing mandatory block %s", e.Block)
}
