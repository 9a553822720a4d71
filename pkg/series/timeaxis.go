package series

import (
	"sort"
	"sync"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-series/pkg/errors"
)

// TimeAxis is the append-only, strictly increasing sequence of time points
// shared by every column of a series family. It only ever grows.
//
// A single reader/writer lock guards the axis: Function.ComputeTo holds the
// read side for the whole computation so the axis length stays stable, and
// appends take the write side, excluding every in-flight computation.
type TimeAxis struct {
	mu sync.RWMutex
	ts []time.Time
}

// NewTimeAxis creates an empty time axis.
func NewTimeAxis() *TimeAxis {
	return &TimeAxis{}
}

// Append adds a new time point to the axis and returns its index.
// It fails with ErrCodeOutOfOrderTimestamp if t is not strictly after the
// last point; the axis is left unchanged in that case.
func (a *TimeAxis) Append(t time.Time) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.appendLocked(t)
}

// appendLocked is the append body; the caller must hold the write lock.
func (a *TimeAxis) appendLocked(t time.Time) (int, error) {
	if n := len(a.ts); n > 0 && !t.After(a.ts[n-1]) {
		return -1, errors.Newf(errors.ErrCodeOutOfOrderTimestamp, "Append: timestamp %s is not after last %s", t, a.ts[n-1])
	}

	a.ts = append(a.ts, t)

	return len(a.ts) - 1, nil
}

// Size returns the current number of time points.
func (a *TimeAxis) Size() int {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return len(a.ts)
}

// size returns the length without locking. Callers must hold the axis lock
// or otherwise guarantee no concurrent append.
func (a *TimeAxis) size() int {
	return len(a.ts)
}

// TimeAt returns the time point at index i.
func (a *TimeAxis) TimeAt(i int) (time.Time, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if i < 0 || i >= len(a.ts) {
		return time.Time{}, errors.Newf(errors.ErrCodeIndexOutOfRange, "TimeAt: index %d out of range [0,%d)", i, len(a.ts))
	}

	return a.ts[i], nil
}

// IndexOf returns the index holding exactly t, or None when t is not on the
// axis. Binary search, O(log n).
func (a *TimeAxis) IndexOf(t time.Time) optional.Option[int] {
	a.mu.RLock()
	defer a.mu.RUnlock()

	i := sort.Search(len(a.ts), func(j int) bool {
		return !a.ts[j].Before(t)
	})
	if i < len(a.ts) && a.ts[i].Equal(t) {
		return optional.Some(i)
	}

	return optional.None[int]()
}

// RLock takes the axis read lock. ComputeTo holds it for the duration of a
// computation pass; external readers may use it to get a consistent view
// across several column reads.
func (a *TimeAxis) RLock() {
	a.mu.RLock()
}

// RUnlock releases the axis read lock.
func (a *TimeAxis) RUnlock() {
	a.mu.RUnlock()
}
