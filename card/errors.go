package card

import "fmt"

// DuplicateBlockError is returned when a duplicate-guarded block's
// (file_id, sfid) pair is seen a second time while parsing a card. The
// guarded blocks are the mandatory Gen1 blocks and their signatures, and
// the Gen2 and Gen2V2 data and signature blocks.
type DuplicateBlockError struct {
	Block string
}

func (e *DuplicateBlockError) Error() string {
	return fmt.Sprintf("card: duplicate block %s", e.Block)
}

// MissingBlockError is returned when a mandatory block was never seen
// while finalizing a card's parsed blocks.
type MissingBlockError struct {
	Block string
}

func (e *MissingBlockError) Error() string {
	return fmt.Sprintf("card: missing mandatory block %s", e.Block)
}
