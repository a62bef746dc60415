package dataset

import "github.com/cespare/xxhash"

// PartitionIndex maps a sample's deal seed onto one of workers output
// shards. The assignment depends only on the seed and the worker count, so
// it is stable across runs with the same worker count; a different worker
// count maps seeds to different shards (spec.md §4.4: "workers never share
// a file").
func PartitionIndex(seed uint64, workers int) int {
	if workers <= 1 {
		return 0
	}
	var buf [8]byte
	for i := range buf {
		buf[i] = byte(seed >> (8 * i))
	}
	return int(xxhash.Sum64(buf[:]) % uint64(workers))
}
