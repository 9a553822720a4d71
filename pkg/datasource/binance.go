package datasource

import (
	"context"
	"strconv"
	"time"

	binance "github.com/adshao/go-binance/v2"
	"github.com/rxtech-lab/argo-series/internal/logger"
	"github.com/rxtech-lab/argo-series/internal/types"
	"github.com/rxtech-lab/argo-series/pkg/errors"
	"github.com/rxtech-lab/argo-series/pkg/series"
	"go.uber.org/zap"
)

// binancePageSize is the kline page limit enforced by the Binance API.
const binancePageSize = 500

// BinanceSource fetches historical klines and live kline streams from
// Binance. Live streams feed a base series directly: finalized bars are
// appended, the forming bar is rewritten in place until it closes.
type BinanceSource struct {
	client *binance.Client
	logger *logger.Logger
}

// NewBinanceSource creates a Binance source using the public endpoints.
func NewBinanceSource(log *logger.Logger) *BinanceSource {
	return &BinanceSource{
		client: binance.NewClient("", ""),
		logger: log,
	}
}

// Klines downloads the klines of symbol in [start, end], paginating
// through the API limit, and returns them as bars oldest-first.
func (s *BinanceSource) Klines(ctx context.Context, symbol string, interval types.Interval, start, end time.Time) ([]types.Bar, error) {
	var bars []types.Bar

	currentStart := start.UnixMilli()
	endMillis := end.UnixMilli()

	for {
		klines, err := s.client.NewKlinesService().
			Symbol(symbol).
			Interval(string(interval)).
			StartTime(currentStart).
			EndTime(endMillis).
			Limit(binancePageSize).
			Do(ctx)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeDataSourceFailed, err, "Klines: failed to fetch %s klines", symbol)
		}

		for _, k := range klines {
			bars = append(bars, klineToBar(k))
		}

		if len(klines) < binancePageSize {
			break
		}

		// Continue from just past the close of the last kline.
		currentStart = klines[len(klines)-1].CloseTime + 1
		if currentStart >= endMillis {
			break
		}
	}

	s.logger.Debug("Downloaded klines from Binance",
		zap.String("symbol", symbol),
		zap.String("interval", string(interval)),
		zap.Int("count", len(bars)))

	return bars, nil
}

// Stream subscribes to the kline stream of symbol and feeds the series
// until ctx is done or the stream closes. onBar, when non-nil, is invoked
// after each bar is applied; appended reports whether the bar opened a new
// index (as opposed to updating the forming one).
func (s *BinanceSource) Stream(ctx context.Context, symbol string, interval types.Interval, b *series.BaseSeries, onBar func(bar types.Bar, appended bool)) error {
	handler := func(event *binance.WsKlineEvent) {
		bar := wsKlineToBar(event.Kline)

		appended, err := applyBar(b, bar)
		if err != nil {
			// Out-of-order events happen around reconnects; skip them.
			s.logger.Warn("Dropping stream bar", zap.String("symbol", symbol), zap.Error(err))

			return
		}

		if onBar != nil {
			onBar(bar, appended)
		}
	}

	errHandler := func(err error) {
		s.logger.Error("Binance stream error", zap.String("symbol", symbol), zap.Error(err))
	}

	doneC, stopC, err := binance.WsKlineServe(symbol, string(interval), handler, errHandler)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeDataSourceFailed, err, "Stream: failed to subscribe to %s klines", symbol)
	}

	select {
	case <-ctx.Done():
		close(stopC)
		<-doneC

		return ctx.Err()
	case <-doneC:
		return nil
	}
}

// applyBar appends bar or, when its time matches the forming last bar,
// updates it in place.
func applyBar(b *series.BaseSeries, bar types.Bar) (bool, error) {
	if n := b.Size(); n > 0 {
		last, err := b.BarAt(n - 1)
		if err != nil {
			return false, err
		}

		if bar.Time.Equal(last.Time) {
			return false, b.UpdateLast(bar)
		}
	}

	_, err := b.Append(bar)

	return err == nil, err
}

func klineToBar(k *binance.Kline) types.Bar {
	open, _ := strconv.ParseFloat(k.Open, 64)
	high, _ := strconv.ParseFloat(k.High, 64)
	low, _ := strconv.ParseFloat(k.Low, 64)
	closePrice, _ := strconv.ParseFloat(k.Close, 64)
	volume, _ := strconv.ParseFloat(k.Volume, 64)

	return types.Bar{
		Time:   time.UnixMilli(k.OpenTime).UTC(),
		Open:   open,
		High:   high,
		Low:    low,
		Close:  closePrice,
		Volume: volume,
		Closed: true,
	}
}

func wsKlineToBar(k binance.WsKline) types.Bar {
	open, _ := strconv.ParseFloat(k.Open, 64)
	high, _ := strconv.ParseFloat(k.High, 64)
	low, _ := strconv.ParseFloat(k.Low, 64)
	closePrice, _ := strconv.ParseFloat(k.Close, 64)
	volume, _ := strconv.ParseFloat(k.Volume, 64)

	return types.Bar{
		Time:   time.UnixMilli(k.StartTime).UTC(),
		Open:   open,
		High:   high,
		Low:    low,
		Close:  closePrice,
		Volume: volume,
		Closed: k.IsFinal,
	}
}
