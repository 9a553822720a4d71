package types

import "time"

// Bar is a single OHLCV candle on a series time axis.
// Closed reports whether the bar is finalized; a live feed keeps updating
// the last bar in place until the interval rolls over.
type Bar struct {
	Time   time.Time `csv:"time"`
	Open   float64   `csv:"open"`
	High   float64   `csv:"high"`
	Low    float64   `csv:"low"`
	Close  float64   `csv:"close"`
	Volume float64   `csv:"volume"`
	Closed bool      `csv:"closed"`
}
