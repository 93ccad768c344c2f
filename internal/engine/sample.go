package engine

import (
	"fmt"
	"math/rand/v2"
)

// IDSource yields uniformly distributed ints in [0, n). *rand.Rand from
// math/rand/v2 satisfies it.
type IDSource interface {
	IntN(n int) int
}

// globalSource uses the goroutine-safe top-level math/rand/v2 generator.
type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// DrawDistinctIDs draws ids in [1, maxID] until count distinct ones are
// collected. The result keeps draw order.
func DrawDistinctIDs(src IDSource, count, maxID int) ([]int, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBatchSize, count)
	}
	if maxID < count {
		return nil, fmt.Errorf("%w: max id %d, batch size %d", ErrInvalidMaxID, maxID, count)
	}
	if src == nil {
		src = globalSource{}
	}

	seen := make(map[int]struct{}, count)
	ids := make([]int, 0, count)
	for len(ids) < count {
		id := src.IntN(maxID) + 1
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}
