package market

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickermind/tickermind/internal/clients/yahoo"
)

type fakeLookup struct {
	mu     sync.Mutex
	quotes map[string]*yahoo.Quote
}

func (f *fakeLookup) Lookup(_ context.Context, symbol string) (*yahoo.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.quotes[symbol], nil
}

func TestGetOverview(t *testing.T) {
	client := &fakeLookup{quotes: map[string]*yahoo.Quote{
		"^NSEI":  {Symbol: "^NSEI", Price: 24500, PreviousClose: 24400},
		"^BSESN": {Symbol: "^BSESN", Price: 80500, PreviousClose: 81000},
		"^GSPC":  {Symbol: "^GSPC", Price: 5600, PreviousClose: 5580},
	}}
	svc := NewService(client, zerolog.Nop())

	overview := svc.GetOverview(context.Background())

	require.Len(t, overview.Regional, 2, "unfetchable indices are skipped")
	assert.Equal(t, "NIFTY 50", overview.Regional[0].Name, "configured order is preserved")
	assert.InDelta(t, 100.0, overview.Regional[0].Change, 1e-9)
	assert.Equal(t, "SENSEX", overview.Regional[1].Name)
	assert.Less(t, overview.Regional[1].Change, 0.0)

	require.Len(t, overview.Global, 1)
	assert.Equal(t, "S&P 500", overview.Global[0].Name)
}

func TestGetMovers_Gainers(t *testing.T) {
	client := &fakeLookup{quotes: map[string]*yahoo.Quote{
		"RELIANCE.NS": {Symbol: "RELIANCE.NS", Price: 103, PreviousClose: 100, Volume: 500},
		"TCS.NS":      {Symbol: "TCS.NS", Price: 110, PreviousClose: 100, Volume: 600},
		"INFY.NS":     {Symbol: "INFY.NS", Price: 95, PreviousClose: 100, Volume: 700},
	}}
	svc := NewService(client, zerolog.Nop())

	movers, err := svc.GetMovers(context.Background(), "gainers")
	require.NoError(t, err)

	require.Len(t, movers, 3)
	assert.Equal(t, "TCS.NS", movers[0].Symbol)
	assert.Equal(t, "RELIANCE.NS", movers[1].Symbol)
	assert.Equal(t, "INFY.NS", movers[2].Symbol)
}

func TestGetMovers_Losers(t *testing.T) {
	client := &fakeLookup{quotes: map[string]*yahoo.Quote{
		"TCS.NS":  {Symbol: "TCS.NS", Price: 110, PreviousClose: 100},
		"INFY.NS": {Symbol: "INFY.NS", Price: 95, PreviousClose: 100},
	}}
	svc := NewService(client, zerolog.Nop())

	movers, err := svc.GetMovers(context.Background(), "losers")
	require.NoError(t, err)

	require.Len(t, movers, 2)
	assert.Equal(t, "INFY.NS", movers[0].Symbol)
}

func TestGetMovers_DefaultsToGainers(t *testing.T) {
	client := &fakeLookup{quotes: map[string]*yahoo.Quote{
		"TCS.NS": {Symbol: "TCS.NS", Price: 110, PreviousClose: 100},
	}}
	svc := NewService(client, zerolog.Nop())

	movers, err := svc.GetMovers(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, movers, 1)
}

func TestGetMovers_InvalidDirection(t *testing.T) {
	svc := NewService(&fakeLookup{}, zerolog.Nop())

	_, err := svc.GetMovers(context.Background(), "sideways")
	assert.Error(t, err)
}

func TestGetMovers_CapsAtTen(t *testing.T) {
	quotes := make(map[string]*yahoo.Quote, len(niftyWatchlist))
	for i, symbol := range niftyWatchlist {
		quotes[symbol] = &yahoo.Quote{
			Symbol:        symbol,
			Price:         100 + float64(i),
			PreviousClose: 100,
		}
	}
	client := &fakeLookup{quotes: quotes}
	svc := NewService(client, zerolog.Nop())

	movers, err := svc.GetMovers(context.Background(), "gainers")
	require.NoError(t, err)
	assert.Len(t, movers, maxMovers)

	// Biggest gainer first.
	expectedTop := niftyWatchlist[len(niftyWatchlist)-1]
	assert.Equal(t, expectedTop, movers[0].Symbol)
}
