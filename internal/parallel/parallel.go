// Package parallel fans independent loop iterations out over goroutines.
//
// Every helper ends with a completion barrier: when it returns, all
// iterations have finished and their writes are visible to the caller.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum elements per goroutine to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 4096,
	}
}

// Sequential returns a config that always runs on the calling goroutine.
func Sequential() Config {
	return Config{Enabled: false, NumWorkers: 1, MinChunkSize: 1}
}

// For executes f(i) for i in [0, n) with optional parallelism.
// Falls back to sequential execution if parallelism is disabled or n is too small.
func For(n int, f func(i int), cfg Config) {
	forChunked(n, max(cfg.MinChunkSize, 1), f, cfg)
}

// ForBatch calls f(b, c) for every batch/channel pair.
// planeSize is the number of elements each call touches; it decides how many
// pairs a goroutine must own before spawning it is worth the overhead.
func ForBatch(batch, channels, planeSize int, f func(b, c int), cfg Config) {
	n := batch * channels
	minPlanes := 1
	if planeSize > 0 {
		minPlanes = max((cfg.MinChunkSize+planeSize-1)/planeSize, 1)
	}
	forChunked(n, minPlanes, func(k int) {
		f(k/channels, k%channels)
	}, cfg)
}

func forChunked(n, minChunk int, f func(i int), cfg Config) {
	if !cfg.Enabled || cfg.NumWorkers < 2 || n < 2*minChunk {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	var wg sync.WaitGroup
	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, minChunk)

	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}
