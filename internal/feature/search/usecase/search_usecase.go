// Package usecase drives the ticker search: input normalization, validation,
// the single fetch, and the state transitions around it.
package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"stockchart/internal/feature/search/domain/entity"
	"stockchart/internal/feature/search/domain/state"
)

const (
	// ValidationMessage is shown when a search is attempted with no ticker.
	ValidationMessage = "ticker code required"
	// TransportMessage replaces every transport failure; the cause is only logged.
	TransportMessage = "Failed to fetch data. Make sure the backend server is running and reachable."
)

// StockDataClient fetches the price series for a ticker.
type StockDataClient interface {
	FetchSeries(ctx context.Context, ticker string) entity.Result
}

// Request identifies one started search.
type Request struct {
	Seq    uint64
	Ticker string
}

// SearchUsecase owns the UI state. All methods are safe for concurrent use.
type SearchUsecase struct {
	client StockDataClient
	logger zerolog.Logger

	mu        sync.Mutex
	state     state.State
	lastSeq   uint64
	listeners []func(state.State)
}

// NewSearchUsecase creates a SearchUsecase in the idle state.
func NewSearchUsecase(client StockDataClient, logger zerolog.Logger) *SearchUsecase {
	return &SearchUsecase{client: client, logger: logger}
}

// State returns a snapshot of the current state.
func (u *SearchUsecase) State() state.State {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state
}

// Subscribe registers fn to be called with the new state after every change.
func (u *SearchUsecase) Subscribe(fn func(state.State)) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.listeners = append(u.listeners, fn)
}

// SetTicker stores raw upper-cased. No validation happens here.
func (u *SearchUsecase) SetTicker(raw string) state.State {
	return u.dispatch(state.TickerChanged{Raw: raw})
}

// Search validates the ticker, fetches its series and settles the state.
// It blocks until the fetch resolves and returns the resulting state.
func (u *SearchUsecase) Search(ctx context.Context) state.State {
	req, ok := u.Start()
	if !ok {
		return u.State()
	}
	return u.Complete(ctx, req)
}

// Start validates the ticker and, if it is present, moves the state to loading
// and returns the request to complete. Start never touches the network.
func (u *SearchUsecase) Start() (Request, bool) {
	u.mu.Lock()
	ticker := strings.TrimSpace(u.state.Ticker)
	if ticker == "" {
		s := state.Reduce(u.state, state.SearchRejected{Message: ValidationMessage})
		u.state = s
		ls := u.listeners
		u.mu.Unlock()
		notify(ls, s)
		return Request{}, false
	}

	u.lastSeq++
	req := Request{Seq: u.lastSeq, Ticker: ticker}
	s := state.Reduce(u.state, state.SearchStarted{Seq: req.Seq})
	u.state = s
	ls := u.listeners
	u.mu.Unlock()

	notify(ls, s)
	u.logger.Debug().Uint64("seq", req.Seq).Str("ticker", ticker).Msg("search started")
	return req, true
}

// Complete performs the fetch for req and applies its outcome, unless a newer
// search has started in the meantime.
func (u *SearchUsecase) Complete(ctx context.Context, req Request) state.State {
	res := u.client.FetchSeries(ctx, req.Ticker)
	return u.dispatch(u.eventFor(req, res))
}

func (u *SearchUsecase) eventFor(req Request, res entity.Result) state.Event {
	switch r := res.(type) {
	case entity.Success:
		u.logger.Info().Uint64("seq", req.Seq).Str("ticker", req.Ticker).Int("points", len(r.Series)).Msg("search succeeded")
		return state.SearchSucceeded{Seq: req.Seq, Series: r.Series}
	case entity.DomainError:
		u.logger.Info().Uint64("seq", req.Seq).Str("ticker", req.Ticker).Str("error", r.Message).Msg("backend reported an error")
		return state.SearchFailed{Seq: req.Seq, Kind: state.KindDomain, Message: r.Message}
	case entity.TransportError:
		u.logger.Error().Err(r.Err).Uint64("seq", req.Seq).Str("ticker", req.Ticker).Msg("stock data request failed")
		return state.SearchFailed{Seq: req.Seq, Kind: state.KindTransport, Message: TransportMessage}
	default:
		u.logger.Error().Err(errors.New("unknown result type")).Uint64("seq", req.Seq).Msg("stock data request failed")
		return state.SearchFailed{Seq: req.Seq, Kind: state.KindTransport, Message: TransportMessage}
	}
}

func (u *SearchUsecase) dispatch(e state.Event) state.State {
	u.mu.Lock()
	if state.IsStale(u.state, e) {
		s := u.state
		u.mu.Unlock()
		u.logger.Debug().Uint64("latest_seq", s.Seq).Msg("discarding result of superseded search")
		return s
	}
	s := state.Reduce(u.state, e)
	u.state = s
	ls := u.listeners
	u.mu.Unlock()

	notify(ls, s)
	return s
}

func notify(ls []func(state.State), s state.State) {
	for _, fn := range ls {
		fn(s)
	}
}
