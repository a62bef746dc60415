package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionIndexIsStableAndInRange(t *testing.T) {
	for _, workers := range []int{1, 2, 4, 8} {
		for seed := uint64(0); seed < 50; seed++ {
			idx := PartitionIndex(seed, workers)
			assert.GreaterOrEqual(t, idx, 0)
			assert.Less(t, idx, workers)
			assert.Equal(t, idx, PartitionIndex(seed, workers), "must be deterministic")
		}
	}
}

func TestPartitionIndexSingleWorkerAlwaysZero(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		assert.Equal(t, 0, PartitionIndex(seed, 1))
	}
}
