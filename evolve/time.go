package evolve

import "time"

// nanoTime returns a seed suitable for an unseeded run. Kept as a function
// var target in engine.go (defaultSeed) so tests can substitute a fixed
// sequence without touching the clock.
func nanoTime() int64 {
	return time.Now().UnixNano()
}
