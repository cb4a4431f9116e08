// Package state holds the chart client's UI state and the reducer that advances it.
//
// Every change goes through Reduce, so the search state machine
//
//	Idle -> Loading -> {Success, DomainError, TransportError} -> Idle
//
// can be driven and inspected without a terminal or a network.
package state

import (
	"strings"

	"stockchart/internal/feature/search/domain/entity"
)

// ErrorKind tells which failure produced State.Error.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindValidation
	KindDomain
	KindTransport
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindDomain:
		return "domain"
	case KindTransport:
		return "transport"
	default:
		return "none"
	}
}

// State is the complete UI state.
type State struct {
	Ticker    string         // always upper case
	Loading   bool           // a request for Seq is in flight
	Error     string         // meaningful only when ErrorKind != KindNone
	ErrorKind ErrorKind
	Series    []entity.Point // nil until a search succeeds
	Seq       uint64         // sequence number of the latest started search
}

// HasError reports whether an error message should be shown.
func (s State) HasError() bool { return s.ErrorKind != KindNone }

// HasSeries reports whether the chart area should be shown.
func (s State) HasSeries() bool { return s.Series != nil }

// Event is an input to Reduce.
type Event interface {
	isEvent()
}

// TickerChanged is a keystroke in the ticker field.
type TickerChanged struct{ Raw string }

// SearchRejected is a search refused before any request was made.
type SearchRejected struct{ Message string }

// SearchStarted opens request Seq.
type SearchStarted struct{ Seq uint64 }

// SearchSucceeded settles request Seq with a series.
type SearchSucceeded struct {
	Seq    uint64
	Series []entity.Point
}

// SearchFailed settles request Seq with an error.
type SearchFailed struct {
	Seq     uint64
	Kind    ErrorKind
	Message string
}

func (TickerChanged) isEvent()   {}
func (SearchRejected) isEvent()  {}
func (SearchStarted) isEvent()   {}
func (SearchSucceeded) isEvent() {}
func (SearchFailed) isEvent()    {}

// Reduce returns the state that follows s after e. It never mutates s.
// Results for any request other than the latest started one are ignored.
func Reduce(s State, e Event) State {
	switch e := e.(type) {
	case TickerChanged:
		s.Ticker = strings.ToUpper(e.Raw)

	case SearchRejected:
		s.Error = e.Message
		s.ErrorKind = KindValidation
		s.Series = nil

	case SearchStarted:
		s.Seq = e.Seq
		s.Loading = true
		s.Error = ""
		s.ErrorKind = KindNone
		s.Series = nil

	case SearchSucceeded:
		if e.Seq != s.Seq {
			return s
		}
		s.Loading = false
		s.Error = ""
		s.ErrorKind = KindNone
		s.Series = e.Series
		if s.Series == nil {
			s.Series = []entity.Point{}
		}

	case SearchFailed:
		if e.Seq != s.Seq {
			return s
		}
		s.Loading = false
		s.Error = e.Message
		s.ErrorKind = e.Kind
		s.Series = nil
	}
	return s
}

// IsStale reports whether e settles a request that is no longer the latest.
func IsStale(s State, e Event) bool {
	switch e := e.(type) {
	case SearchSucceeded:
		return e.Seq != s.Seq
	case SearchFailed:
		return e.Seq != s.Seq
	}
	return false
}
