// Package entity defines the values the chart client exchanges with the stock data service.
package entity

// Point is one element of a price series. Date and Close drive the chart;
// the other fields are passed through when the service sends them.
type Point struct {
	Date   string   `json:"date"`
	Close  float64  `json:"close"`
	Open   *float64 `json:"open,omitempty"`
	High   *float64 `json:"high,omitempty"`
	Low    *float64 `json:"low,omitempty"`
	Volume *int64   `json:"volume,omitempty"`
}

// Closes returns the closing prices in series order.
func Closes(series []Point) []float64 {
	out := make([]float64, len(series))
	for i, p := range series {
		out[i] = p.Close
	}
	return out
}

// Result is the outcome of one series fetch: Success, DomainError or TransportError.
type Result interface {
	isResult()
}

// Success carries the series exactly as the service returned it.
type Success struct {
	Series []Point
}

// DomainError is a failure the service reported inside a response body.
type DomainError struct {
	Message string
}

// TransportError is a failure with no usable response body.
type TransportError struct {
	Err error
}

func (Success) isResult()        {}
func (DomainError) isResult()    {}
func (TransportError) isResult() {}

func (e TransportError) Error() string { return e.Err.Error() }

func (e TransportError) Unwrap() error { return e.Err }

// Prediction is the service's next-close estimate for a ticker.
type Prediction struct {
	Ticker         string  `json:"ticker"`
	PredictedClose float64 `json:"predicted_close"`
	Observations   int     `json:"observations"`
}
