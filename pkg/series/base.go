package series

import (
	"fmt"
	"strings"
	"sync"

	"github.com/rxtech-lab/argo-series/internal/metrics"
	"github.com/rxtech-lab/argo-series/internal/types"
	"github.com/rxtech-lab/argo-series/pkg/errors"
)

// BaseSeries owns a time axis together with the canonical OHLCV columns,
// and acts as the registry for derived function instances: two requests for
// the same function kind with the same parameters resolve to the same
// instance, so shared sub-computations run once per session regardless of
// how many indicators depend on them.
type BaseSeries struct {
	axis   *TimeAxis
	open   *TVar
	high   *TVar
	low    *TVar
	close  *TVar
	volume *TVar
	closed *TVar

	mu       sync.Mutex
	registry map[FunctionKey]*registryEntry
}

// New creates an empty base series with its own time axis.
func New() *BaseSeries {
	axis := NewTimeAxis()

	return &BaseSeries{
		axis:     axis,
		open:     NewTVar(axis, "open"),
		high:     NewTVar(axis, "high"),
		low:      NewTVar(axis, "low"),
		close:    NewTVar(axis, "close"),
		volume:   NewTVar(axis, "volume"),
		closed:   NewTVar(axis, "closed"),
		registry: make(map[FunctionKey]*registryEntry),
	}
}

// Axis returns the shared time axis.
func (b *BaseSeries) Axis() *TimeAxis {
	return b.axis
}

// Open returns the open-price column (read-only for callers).
func (b *BaseSeries) Open() *TVar { return b.open }

// High returns the high-price column.
func (b *BaseSeries) High() *TVar { return b.high }

// Low returns the low-price column.
func (b *BaseSeries) Low() *TVar { return b.low }

// Close returns the close-price column.
func (b *BaseSeries) Close() *TVar { return b.close }

// Volume returns the volume column.
func (b *BaseSeries) Volume() *TVar { return b.volume }

// IsClosed returns the closed-flag column (1 finalized, 0 forming).
func (b *BaseSeries) IsClosed() *TVar { return b.closed }

// Size returns the current number of bars.
func (b *BaseSeries) Size() int {
	return b.axis.Size()
}

// Append adds a bar at the end of the series and returns its index. The
// axis write lock is held across the timestamp append and all column
// writes, so no computation can observe a torn bar. Fails with
// ErrCodeOutOfOrderTimestamp when the bar time is not strictly after the
// last one.
func (b *BaseSeries) Append(bar types.Bar) (int, error) {
	b.axis.mu.Lock()
	defer b.axis.mu.Unlock()

	i, err := b.axis.appendLocked(bar.Time)
	if err != nil {
		return -1, err
	}

	b.setBarLocked(i, bar)
	metrics.BarsAppended.Inc()

	return i, nil
}

// UpdateLast rewrites the columns of the last bar in place. A live feed
// calls this while the current interval is still forming; the bar time must
// match the last axis point exactly.
func (b *BaseSeries) UpdateLast(bar types.Bar) error {
	b.axis.mu.Lock()
	defer b.axis.mu.Unlock()

	n := b.axis.size()
	if n == 0 {
		return errors.New(errors.ErrCodeEmptySeries, "UpdateLast: series is empty")
	}

	i := n - 1
	if !bar.Time.Equal(b.axis.ts[i]) {
		return errors.Newf(errors.ErrCodeInvalidParameter, "UpdateLast: bar time %s does not match last axis time %s", bar.Time, b.axis.ts[i])
	}

	b.setBarLocked(i, bar)

	return nil
}

// setBarLocked writes all OHLCV columns at index i; the caller must hold
// the axis write lock.
func (b *BaseSeries) setBarLocked(i int, bar types.Bar) {
	b.open.Set(i, bar.Open)
	b.high.Set(i, bar.High)
	b.low.Set(i, bar.Low)
	b.close.Set(i, bar.Close)
	b.volume.Set(i, bar.Volume)

	if bar.Closed {
		b.closed.Set(i, 1)
	} else {
		b.closed.Set(i, 0)
	}
}

// BarAt reads the bar stored at index i.
func (b *BaseSeries) BarAt(i int) (types.Bar, error) {
	b.axis.RLock()
	defer b.axis.RUnlock()

	if n := b.axis.size(); i < 0 || i >= n {
		return types.Bar{}, errors.Newf(errors.ErrCodeIndexOutOfRange, "BarAt: index %d out of range [0,%d)", i, n)
	}

	return types.Bar{
		Time:   b.axis.ts[i],
		Open:   b.open.At(i),
		High:   b.high.At(i),
		Low:    b.low.At(i),
		Close:  b.close.At(i),
		Volume: b.volume.At(i),
		Closed: b.closed.At(i) == 1,
	}, nil
}

// FunctionKey identifies a function instance in the registry: the function
// kind plus a canonical encoding of its constructor parameters.
type FunctionKey struct {
	Kind   types.IndicatorType
	Params string
}

// Key builds a FunctionKey from a kind and its constructor parameters.
func Key(kind types.IndicatorType, params ...any) FunctionKey {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = fmt.Sprint(p)
	}

	return FunctionKey{
		Kind:   kind,
		Params: strings.Join(parts, ","),
	}
}

type registryEntry struct {
	once sync.Once
	fn   any
}

// entry returns the registry slot for key, creating it atomically.
func (b *BaseSeries) entry(key FunctionKey) *registryEntry {
	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.registry[key]
	if !ok {
		e = &registryEntry{}
		b.registry[key] = e
		metrics.FunctionsRegistered.Inc()
	}

	return e
}

// RegisteredFunctions returns the number of distinct function instances
// held by the registry.
func (b *BaseSeries) RegisteredFunctions() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.registry)
}

// Shared returns the single instance registered under key, constructing it
// with build exactly once. Concurrent requests with the same key never
// construct duplicates; a build may itself request other keys (shared
// sub-computations) without deadlocking, since only the slot lookup is
// serialized and construction runs under the per-key once.
func Shared[T any](b *BaseSeries, key FunctionKey, build func() T) T {
	e := b.entry(key)
	e.once.Do(func() {
		e.fn = build()
	})

	return e.fn.(T)
}
