package series

import (
	"github.com/rxtech-lab/argo-series/internal/metrics"
	"github.com/rxtech-lab/argo-series/internal/types"
)

// Spot computes the output values of one index, given that every index
// before it (on this function and on all of its dependencies) is already
// computed. A spot must be re-runnable: it may read any index <= i of any
// column, must never read an index > i of its own columns, and must keep
// all cross-index state in columns so that evaluating the same index twice
// writes the same result.
type Spot func(i int)

// Function is an incrementally computed, memoized set of columns over a
// shared time axis. It tracks the highest fully computed index and the
// session of the most recent computation pass, so that many dependents
// requesting overlapping ranges within one session trigger each spot
// computation at most once.
//
// Session semantics: computedIdx never decreases and is not scoped to a
// session. A call under a new session re-evaluates only the last computed
// index, because a live feed may have updated the forming bar in place; it
// never replays the whole prefix. Within one session, a request at or below
// computedIdx is a no-op.
//
// Calls against one Function instance are expected to be serialized by the
// host (one refresh pass at a time). Racing two sessions on the same
// instance may duplicate work but cannot corrupt state: writes are
// idempotent per index and computedIdx only moves forward.
type Function struct {
	kind types.IndicatorType
	axis *TimeAxis
	spot Spot
	deps []*Function
	vars []*TVar

	sessionID   int64
	computedIdx int
	spotCalls   int64
}

// NewFunction creates a function attached to the axis with nothing computed
// yet. The caller binds a spot and declares columns and dependencies before
// the first ComputeTo.
func NewFunction(axis *TimeAxis, kind types.IndicatorType) *Function {
	return &Function{
		kind:        kind,
		axis:        axis,
		computedIdx: -1,
	}
}

// Bind sets the spot computation.
func (f *Function) Bind(spot Spot) {
	f.spot = spot
}

// Var creates a new column owned by this function. Owned columns are grown
// to the axis size before every computation batch.
func (f *Function) Var(name string) *TVar {
	v := NewTVar(f.axis, name)
	f.vars = append(f.vars, v)

	return v
}

// DependsOn declares dependency edges. Before this function's spot loop
// runs, every dependency is computed up to the same target index with the
// same session, which keeps the evaluation of a function DAG linear in its
// node count instead of exponential in its depth.
func (f *Function) DependsOn(deps ...*Function) {
	f.deps = append(f.deps, deps...)
}

// Kind returns the indicator kind this function computes.
func (f *Function) Kind() types.IndicatorType {
	return f.kind
}

// Axis returns the shared time axis.
func (f *Function) Axis() *TimeAxis {
	return f.axis
}

// ComputedIndex returns the highest fully computed index, -1 when nothing
// has been computed yet.
func (f *Function) ComputedIndex() int {
	f.axis.RLock()
	defer f.axis.RUnlock()

	return f.computedIdx
}

// SpotCalls returns the total number of spot invocations on this function.
func (f *Function) SpotCalls() int64 {
	f.axis.RLock()
	defer f.axis.RUnlock()

	return f.spotCalls
}

// ComputeTo lazily extends computed results up to targetIdx (clamped to the
// axis), holding the axis read lock for the whole pass so no append can
// change the axis length mid-computation. Requests below the computed
// bound within the same session return immediately.
func (f *Function) ComputeTo(sessionID int64, targetIdx int) {
	f.axis.RLock()
	defer f.axis.RUnlock()

	f.computeTo(sessionID, targetIdx)
}

// ComputeAll extends computed results to the end of the axis.
func (f *Function) ComputeAll(sessionID int64) {
	f.axis.RLock()
	defer f.axis.RUnlock()

	f.computeTo(sessionID, f.axis.size()-1)
}

// ComputeUntil advances the computation one index at a time until cond
// reports true or the axis is exhausted. It returns the index at which cond
// held, or -1. This is the entry point for lookahead formulas whose value
// at an index only becomes known once a condition in the future is
// observed (e.g. a zigzag pivot confirmed by a later reversal); the plain
// ComputeTo contract stays strictly causal.
func (f *Function) ComputeUntil(sessionID int64, cond func(i int) bool) int {
	f.axis.RLock()
	defer f.axis.RUnlock()

	if f.computedIdx >= 0 && f.sessionID == sessionID && cond(f.computedIdx) {
		return f.computedIdx
	}

	last := f.axis.size() - 1
	start := f.computedIdx
	if start < 0 {
		start = 0
	}

	for i := start; i <= last; i++ {
		f.computeTo(sessionID, i)
		if cond(i) {
			return i
		}
	}

	return -1
}

// computeTo is the computation body; the caller must hold the axis read
// lock. Dependencies recurse through here so the lock is taken exactly once
// per outer call.
func (f *Function) computeTo(sessionID int64, targetIdx int) {
	// Memoization fast path: within one session, a request at or below the
	// computed bound is a no-op.
	if f.sessionID == sessionID && targetIdx <= f.computedIdx {
		return
	}

	from := f.computedIdx + 1
	if f.sessionID != sessionID && f.computedIdx >= 0 {
		// New session: the forming bar may have been updated in place, so
		// the last computed index is evaluated again.
		from = f.computedIdx
	}

	to := targetIdx
	if last := f.axis.size() - 1; to > last {
		to = last
	}

	if to < from {
		// Nothing to do; leave the session untouched so a later call under
		// this session still refreshes the tail.
		return
	}

	f.sessionID = sessionID

	for _, v := range f.vars {
		v.grow(f.axis.size())
	}

	for _, d := range f.deps {
		d.computeTo(sessionID, to)
	}

	for i := from; i <= to; i++ {
		f.spot(i)
		f.spotCalls++
	}

	metrics.SpotComputations.WithLabelValues(string(f.kind)).Add(float64(to - from + 1))

	if to > f.computedIdx {
		f.computedIdx = to
	}
}
