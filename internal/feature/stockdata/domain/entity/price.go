// Package entity defines the domain models for the stock data feature.
package entity

import "time"

// PricePoint is one daily OHLCV bar for a ticker.
type PricePoint struct {
	Time   time.Time // Trading day, midnight in the exchange's time zone
	Open   float64   // Opening price
	High   float64   // Highest price of the day
	Low    float64   // Lowest price of the day
	Close  float64   // Closing price
	Volume int64     // Trading volume
}

// Period is a look-back window ending today.
type Period string

const (
	Period1Mo Period = "1mo"
	Period1Y  Period = "1y"
)

// Since returns the first instant covered by p when the window ends at now.
func (p Period) Since(now time.Time) time.Time {
	switch p {
	case Period1Mo:
		return now.AddDate(0, -1, 0)
	default:
		return now.AddDate(-1, 0, 0)
	}
}

// Prediction is a next-trading-day closing price estimate.
type Prediction struct {
	Ticker         string
	PredictedClose float64
	Observations   int // number of closes the estimate is based on
}
