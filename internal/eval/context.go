// Package eval holds the evaluator's mutable run state (component F):
// the counters and PRNG a compiled filter chain needs. The per-line walk
// lives in internal/compile (Pipeline.Emit), driven over the input stream
// by the rew package's Pipeline.Run.
package eval

import (
	"math/rand/v2"

	"github.com/tmc/rew/internal/filter"
)

// Context is the run-wide mutable state shared by every expression in a
// pipeline: the global counter, one local counter per expression id, and
// the PRNG generators draw from. It implements filter.Runtime.
//
// Counters start at 1 (spec scenario S1: the first `{C}` emission in a run
// renders "1"); both counters only ever increase and are never reset
// mid-run — local counters are scoped to an expression id, not to a line.
type Context struct {
	global int64
	local  map[int]int64
	rng    *rand.Rand
}

// NewContext builds a Context. seed, when non-nil, makes the PRNG
// deterministic (spec §6 --seed / §8 determinism property); a nil seed
// draws entropy from the OS once at startup.
func NewContext(seed *uint64) *Context {
	var src rand.Source
	if seed != nil {
		src = rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15)
	} else {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Context{
		global: 0,
		local:  make(map[int]int64),
		rng:    rand.New(src),
	}
}

func (c *Context) NextGlobalCounter() int64 {
	c.global++
	return c.global
}

func (c *Context) NextLocalCounter() int64 {
	panic("eval: NextLocalCounter called on an unscoped Context; use ForExpression")
}

func (c *Context) Rand() filter.Rand { return randAdapter{c.rng} }

func (c *Context) EvalSubPattern(p filter.SubPipeline, in string) (string, error) {
	return p.RunOnce(c, in)
}

func (c *Context) ForExpression(id int) filter.Runtime {
	return &exprContext{Context: c, id: id}
}

// exprContext binds a Context to one expression id so NextLocalCounter
// can be called with no argument by a generic filter implementation.
type exprContext struct {
	*Context
	id int
}

func (e *exprContext) NextLocalCounter() int64 {
	e.local[e.id]++
	return e.local[e.id]
}

func (e *exprContext) ForExpression(id int) filter.Runtime {
	return e.Context.ForExpression(id)
}

// randAdapter adapts *rand.Rand (math/rand/v2) to filter.Rand.
type randAdapter struct {
	r *rand.Rand
}

func (a randAdapter) Int64N(n int64) int64 { return a.r.Int64N(n) }
func (a randAdapter) IntN(n int) int       { return a.r.IntN(n) }
