package rap

import "sync"

// workerResult is one partition's outcome from the fork phase.
// Workers share no mutable state beyond their own slot in the results
// slice, so no synchronization is needed beyond the final WaitGroup
// join — the same shape pbzip2's decompressor uses for its own
// per-block worker pool, simplified here because partition order is
// known up front instead of discovered by a scanner.
type workerResult struct {
	compressed   []byte
	tail         []byte // LZ4 only: withheld trailing literal run
	checksum     uint32 // Zlib only: partition Adler-32
	decompressed int
	err          error
}

// runFork runs task(i) for every i in [0,n) concurrently and returns
// their results in partition order. The join phase (assembling
// results into the final output) always runs afterward on the
// caller's goroutine, never concurrently with the fork.
func runFork(n int, task func(i int) workerResult) []workerResult {
	results := make([]workerResult, n)

	if n == 1 {
		results[0] = task(0)

		return results
	}

	var wg sync.WaitGroup
	wg.Add(n)

	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			results[i] = task(i)
		}(i)
	}

	wg.Wait()

	return results
}

// firstErr returns the first non-nil error across results, in
// partition order, or nil if every partition succeeded.
func firstErr(results []workerResult) error {
	for _, r := range results {
		if r.err != nil {
			return r.err
		}
	}

	return nil
}
