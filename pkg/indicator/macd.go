package indicator

import (
	"github.com/rxtech-lab/argo-series/internal/types"
	"github.com/rxtech-lab/argo-series/pkg/series"
)

// MACD computes the Moving Average Convergence Divergence of a source
// column: the difference of a fast and a slow EMA, a signal EMA of that
// difference, and their histogram. The two EMAs are shared registry
// instances, so a chart stacking MACD on top of plain EMAs computes each
// EMA once per session.
type MACD struct {
	*series.Function

	fast   *EMA
	slow   *EMA
	fastP  series.Factor
	slowP  series.Factor
	signal series.Factor

	out     *series.TVar
	sigOut  *series.TVar
	histOut *series.TVar
}

// SharedMACD returns the registry instance of MACD(src, fast, slow, signal).
func SharedMACD(b *series.BaseSeries, src *series.TVar, fastPeriod, slowPeriod, signalPeriod int) *MACD {
	key := series.Key(types.IndicatorTypeMACD, src.Name(), fastPeriod, slowPeriod, signalPeriod)

	return series.Shared(b, key, func() *MACD {
		return NewMACD(b, src, fastPeriod, slowPeriod, signalPeriod)
	})
}

// NewMACD creates an unshared MACD instance.
func NewMACD(b *series.BaseSeries, src *series.TVar, fastPeriod, slowPeriod, signalPeriod int) *MACD {
	m := &MACD{
		Function: series.NewFunction(b.Axis(), types.IndicatorTypeMACD),
		fast:     SharedEMA(b, src, fastPeriod),
		slow:     SharedEMA(b, src, slowPeriod),
		fastP:    series.NewFactor("fast_period", float64(fastPeriod)),
		slowP:    series.NewFactor("slow_period", float64(slowPeriod)),
		signal:   series.NewFactor("signal_period", float64(signalPeriod)),
	}
	m.out = m.Var("macd")
	m.sigOut = m.Var("signal")
	m.histOut = m.Var("hist")
	m.Bind(m.computeSpot)
	m.DependsOn(m.fast.Function, m.slow.Function)

	return m
}

func (m *MACD) computeSpot(i int) {
	slowP := m.slowP.Int()
	signalP := m.signal.Int()

	if i < slowP-1 {
		m.out.Set(i, series.Null)
		m.sigOut.Set(i, series.Null)
		m.histOut.Set(i, series.Null)

		return
	}

	macd := m.fast.Out().At(i) - m.slow.Out().At(i)
	m.out.Set(i, macd)

	// The signal line is an EMA of the macd column, seeded with the plain
	// average of the first signal window after the slow EMA stabilizes.
	seedIdx := slowP + signalP - 2

	switch {
	case i < seedIdx:
		m.sigOut.Set(i, series.Null)
		m.histOut.Set(i, series.Null)

		return
	case i == seedIdx:
		sum := 0.0
		for j := slowP - 1; j <= i; j++ {
			sum += m.out.At(j)
		}

		m.sigOut.Set(i, sum/float64(signalP))
	default:
		alpha := 2.0 / float64(signalP+1)
		m.sigOut.Set(i, alpha*macd+(1-alpha)*m.sigOut.At(i-1))
	}

	m.histOut.Set(i, macd-m.sigOut.At(i))
}

// Value computes up to idx and returns the MACD line there.
func (m *MACD) Value(sessionID int64, idx int) float64 {
	m.ComputeTo(sessionID, idx)

	return m.out.At(idx)
}

// SignalValue computes up to idx and returns the signal line there.
func (m *MACD) SignalValue(sessionID int64, idx int) float64 {
	m.ComputeTo(sessionID, idx)

	return m.sigOut.At(idx)
}

// HistValue computes up to idx and returns the histogram there.
func (m *MACD) HistValue(sessionID int64, idx int) float64 {
	m.ComputeTo(sessionID, idx)

	return m.histOut.At(idx)
}

// Outputs implements Indicator.
func (m *MACD) Outputs() []*series.TVar {
	return []*series.TVar{m.out, m.sigOut, m.histOut}
}
