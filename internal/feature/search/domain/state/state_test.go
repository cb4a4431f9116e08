package state

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stockchart/internal/feature/search/domain/entity"
)

var twoDays = []entity.Point{
	{Date: "2024-01-01", Close: 100},
	{Date: "2024-01-02", Close: 102},
}

func TestReduce_TickerChangedUppercases(t *testing.T) {
	t.Parallel()

	tests := []struct{ raw, want string }{
		{"aapl", "AAPL"},
		{"7203.t", "7203.T"},
		{"brk.b", "BRK.B"},
		{"", ""},
		{" msft", " MSFT"},
	}
	for _, tt := range tests {
		s := Reduce(State{}, TickerChanged{Raw: tt.raw})
		assert.Equal(t, tt.want, s.Ticker, "raw %q", tt.raw)
	}
}

func TestReduce_SearchStartedResetsPreviousOutcome(t *testing.T) {
	t.Parallel()

	prev := State{Ticker: "AAPL", Error: "not found", ErrorKind: KindDomain, Series: twoDays, Seq: 1}

	s := Reduce(prev, SearchStarted{Seq: 2})

	assert.True(t, s.Loading)
	assert.False(t, s.HasError())
	assert.Empty(t, s.Error)
	assert.Nil(t, s.Series)
	assert.Equal(t, uint64(2), s.Seq)
	assert.Equal(t, "AAPL", s.Ticker)

	// the input state is untouched
	assert.Equal(t, twoDays, prev.Series)
	assert.Equal(t, "not found", prev.Error)
}

func TestReduce_Outcomes(t *testing.T) {
	t.Parallel()

	loading := State{Ticker: "AAPL", Loading: true, Seq: 3}

	tests := []struct {
		name      string
		event     Event
		wantError string
		wantKind  ErrorKind
		wantData  []entity.Point
	}{
		{
			name:     "success replaces series",
			event:    SearchSucceeded{Seq: 3, Series: twoDays},
			wantKind: KindNone,
			wantData: twoDays,
		},
		{
			name:     "empty success still shows a chart area",
			event:    SearchSucceeded{Seq: 3, Series: nil},
			wantKind: KindNone,
			wantData: []entity.Point{},
		},
		{
			name:      "domain error",
			event:     SearchFailed{Seq: 3, Kind: KindDomain, Message: "not found"},
			wantError: "not found",
			wantKind:  KindDomain,
		},
		{
			name:      "transport error",
			event:     SearchFailed{Seq: 3, Kind: KindTransport, Message: "backend unreachable"},
			wantError: "backend unreachable",
			wantKind:  KindTransport,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Reduce(loading, tt.event)

			assert.False(t, s.Loading, "loading is always cleared")
			assert.Equal(t, tt.wantError, s.Error)
			assert.Equal(t, tt.wantKind, s.ErrorKind)
			assert.Equal(t, tt.wantData, s.Series)
		})
	}
}

func TestReduce_StaleResultsAreIgnored(t *testing.T) {
	t.Parallel()

	// search 1 started, then search 2 started before 1 resolved
	s := Reduce(State{Ticker: "MSFT"}, SearchStarted{Seq: 1})
	s = Reduce(s, SearchStarted{Seq: 2})

	stale := SearchSucceeded{Seq: 1, Series: twoDays}
	assert.True(t, IsStale(s, stale))

	after := Reduce(s, stale)
	assert.Equal(t, s, after)
	assert.True(t, after.Loading, "the newer request is still in flight")

	after = Reduce(after, SearchFailed{Seq: 1, Kind: KindTransport, Message: "boom"})
	assert.Equal(t, s, after)

	final := Reduce(after, SearchFailed{Seq: 2, Kind: KindDomain, Message: "not found"})
	assert.False(t, final.Loading)
	assert.Equal(t, "not found", final.Error)
	assert.False(t, IsStale(s, SearchFailed{Seq: 2}))
}

func TestReduce_SearchRejected(t *testing.T) {
	t.Parallel()

	prev := State{Series: twoDays, Seq: 4}

	s := Reduce(prev, SearchRejected{Message: "ticker code required"})

	assert.Equal(t, "ticker code required", s.Error)
	assert.Equal(t, KindValidation, s.ErrorKind)
	assert.False(t, s.Loading)
	assert.Nil(t, s.Series)
	assert.Equal(t, uint64(4), s.Seq, "rejection does not open a request")
}

func TestErrorKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "none", KindNone.String())
	assert.Equal(t, "validation", KindValidation.String())
	assert.Equal(t, "domain", KindDomain.String())
	assert.Equal(t, "transport", KindTransport.String())
}
