/*package thread contains functions useful for multi-threading.*/
package thread

import (
	"fmt"
	"runtime"
	"sync"
)

// Set sets the number of threads used by the program. n <= 0 uses every
// core.
func Set(n int) (int, error) {
	if n > runtime.NumCPU() {
		return 0, fmt.Errorf("%d threads requested, but your system only "+
			"has %d cores. If you want to use every core, set Threads = -1.",
			n, runtime.NumCPU())
	} else if n <= 0 {
		n = runtime.NumCPU()
	}

	runtime.GOMAXPROCS(n)
	return n, nil
}

// Range calls f(i) for every i in [0, n) across the given number of worker
// goroutines. Worker w handles every i where i % workers == w.
func Range(n, workers int, f func(i int)) {
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	wg := &sync.WaitGroup{}
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(w int) {
			defer wg.Done()
			for i := w; i < n; i += workers {
				f(i)
			}
		}(w)
	}
	wg.Wait()
}
