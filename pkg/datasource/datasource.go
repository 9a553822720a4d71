// Package datasource loads OHLCV bars from files, databases or exchange
// APIs and feeds them onto a series time axis.
package datasource

import (
	"github.com/rxtech-lab/argo-series/internal/types"
	"github.com/rxtech-lab/argo-series/pkg/series"
)

// BarSource reads bars oldest-first.
type BarSource interface {
	ReadAll() ([]types.Bar, error)
}

// Feed appends every bar from src to the series and returns the number of
// bars appended. The first out-of-order bar aborts the feed with an error.
func Feed(b *series.BaseSeries, src BarSource) (int, error) {
	bars, err := src.ReadAll()
	if err != nil {
		return 0, err
	}

	for n, bar := range bars {
		if _, err := b.Append(bar); err != nil {
			return n, err
		}
	}

	return len(bars), nil
}
