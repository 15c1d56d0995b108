package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/chazu/figura/pkg/scene"
)

// EvalTimeout is the hard limit for a single evaluation.
const EvalTimeout = 5 * time.Second

// evalResult passes one evaluation outcome through a channel.
type evalResult struct {
	scene  *scene.Scene
	errors []EvalError
	err    error
}

// runGuard hands out monotonically increasing run ids and answers
// whether a given run is still the latest one. A run goes stale when a
// newer Evaluate call starts while it is still executing; stale results
// must not be delivered to the caller.
type runGuard struct {
	mu     sync.Mutex
	latest uint64
}

// begin registers a new run and returns its id.
func (g *runGuard) begin() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.latest++
	return g.latest
}

// isCurrent reports whether run is still the newest one started.
func (g *runGuard) isCurrent(run uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return run == g.latest
}

// await blocks until the run delivers a result on ch or EvalTimeout
// elapses. A result from a superseded run is discarded even when it
// arrives in time. After a timeout the evaluation goroutine may still
// be running; its eventual send lands in the buffered channel and is
// dropped with it.
func (g *runGuard) await(run uint64, ch <-chan evalResult) (*scene.Scene, []EvalError, error) {
	timer := time.NewTimer(EvalTimeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		if !g.isCurrent(run) {
			return nil, nil, fmt.Errorf("evaluation superseded by newer request")
		}
		return res.scene, res.errors, res.err

	case <-timer.C:
		return nil, nil, fmt.Errorf("evaluation timed out after %s", EvalTimeout)
	}
}
