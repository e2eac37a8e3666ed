package quotes

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickermind/tickermind/internal/clients/yahoo"
)

type fakeMarketData struct {
	mu        sync.Mutex
	quotes    map[string]*yahoo.Quote
	histories map[string]*yahoo.History
	err       error
}

func (f *fakeMarketData) Lookup(_ context.Context, symbol string) (*yahoo.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.quotes[symbol], nil
}

func (f *fakeMarketData) DailyHistory(_ context.Context, symbol, _ string) (*yahoo.History, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	h, ok := f.histories[symbol]
	if !ok {
		return nil, errors.New("no historical data available")
	}
	return h, nil
}

func day(n int) int64 {
	// Daily bars starting 2024-01-01 UTC.
	return 1704067200 + int64(n)*86400
}

func bars(closes ...float64) []yahoo.Bar {
	out := make([]yahoo.Bar, len(closes))
	for i, c := range closes {
		out[i] = yahoo.Bar{Time: day(i), Close: c, Volume: 1000}
	}
	return out
}

func TestGetQuote(t *testing.T) {
	client := &fakeMarketData{quotes: map[string]*yahoo.Quote{
		"RELIANCE.NS": {Symbol: "RELIANCE.NS", Currency: "INR", Price: 2900, PreviousClose: 2850, Volume: 123456},
	}}
	svc := NewService(client, zerolog.Nop())

	quote, err := svc.GetQuote(context.Background(), "reliance.ns")
	require.NoError(t, err)
	require.NotNil(t, quote)

	assert.Equal(t, "RELIANCE.NS", quote.Symbol)
	assert.InDelta(t, 50.0, quote.Change, 1e-9)
	assert.InDelta(t, 50.0/2850*100, quote.ChangePercent, 1e-9)
}

func TestGetQuote_UnknownSymbol(t *testing.T) {
	svc := NewService(&fakeMarketData{}, zerolog.Nop())

	quote, err := svc.GetQuote(context.Background(), "NOPE")
	require.NoError(t, err)
	assert.Nil(t, quote)
}

func TestGetQuote_EmptySymbol(t *testing.T) {
	svc := NewService(&fakeMarketData{}, zerolog.Nop())

	_, err := svc.GetQuote(context.Background(), "  ")
	assert.Error(t, err)
}

func TestGetQuote_ZeroPreviousClose(t *testing.T) {
	client := &fakeMarketData{quotes: map[string]*yahoo.Quote{
		"NEWIPO.NS": {Symbol: "NEWIPO.NS", Price: 100},
	}}
	svc := NewService(client, zerolog.Nop())

	quote, err := svc.GetQuote(context.Background(), "NEWIPO.NS")
	require.NoError(t, err)
	require.NotNil(t, quote)
	assert.Equal(t, 0.0, quote.ChangePercent, "zero previous close must not divide")
}

func TestGetQuotes_SkipsFailures(t *testing.T) {
	client := &fakeMarketData{quotes: map[string]*yahoo.Quote{
		"TCS.NS":  {Symbol: "TCS.NS", Price: 4100, PreviousClose: 4000},
		"INFY.NS": {Symbol: "INFY.NS", Price: 1500, PreviousClose: 1520},
	}}
	svc := NewService(client, zerolog.Nop())

	quotes := svc.GetQuotes(context.Background(), []string{"TCS.NS", "UNKNOWN", "INFY.NS"})

	require.Len(t, quotes, 2)
	assert.Equal(t, "TCS.NS", quotes[0].Symbol, "input order must be preserved")
	assert.Equal(t, "INFY.NS", quotes[1].Symbol)
}

func TestGetHistory(t *testing.T) {
	client := &fakeMarketData{histories: map[string]*yahoo.History{
		"TCS.NS": {Symbol: "TCS.NS", Range: "1mo", Bars: bars(4000, 4050, 4100)},
	}}
	svc := NewService(client, zerolog.Nop())

	summary, err := svc.GetHistory(context.Background(), "TCS.NS", "1mo")
	require.NoError(t, err)

	assert.Equal(t, "TCS.NS", summary.Symbol)
	assert.Equal(t, 3, summary.TotalRecords)
	assert.Equal(t, "2024-01-01", summary.StartDate)
	assert.Equal(t, "2024-01-03", summary.EndDate)
}

func TestGetHistory_InvalidRange(t *testing.T) {
	svc := NewService(&fakeMarketData{}, zerolog.Nop())

	_, err := svc.GetHistory(context.Background(), "TCS.NS", "7w")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid range")
}

func TestGetHistory_DefaultRange(t *testing.T) {
	client := &fakeMarketData{histories: map[string]*yahoo.History{
		"TCS.NS": {Symbol: "TCS.NS", Bars: bars(4000)},
	}}
	svc := NewService(client, zerolog.Nop())

	summary, err := svc.GetHistory(context.Background(), "TCS.NS", "")
	require.NoError(t, err)
	assert.Equal(t, "1y", summary.Range)
}

func TestCompare(t *testing.T) {
	client := &fakeMarketData{histories: map[string]*yahoo.History{
		"WINNER.NS": {Symbol: "WINNER.NS", Bars: bars(100, 105, 110, 120)},
		"LOSER.NS":  {Symbol: "LOSER.NS", Bars: bars(100, 95, 92, 90)},
	}}
	svc := NewService(client, zerolog.Nop())

	report, err := svc.Compare(context.Background(), []string{"LOSER.NS", "WINNER.NS", "MISSING.NS"}, "1y")
	require.NoError(t, err)

	require.Equal(t, 2, report.TotalStocks)
	assert.Equal(t, "WINNER.NS", report.Stocks[0].Symbol, "rows must be sorted by period return")
	assert.InDelta(t, 20.0, report.Stocks[0].PeriodReturn, 1e-9)
	assert.InDelta(t, -10.0, report.Stocks[1].PeriodReturn, 1e-9)
	assert.Greater(t, report.Stocks[0].Volatility, 0.0)
	assert.Equal(t, "2024-01-04", report.ComparisonDate)
}

func TestCompare_NoSymbols(t *testing.T) {
	svc := NewService(&fakeMarketData{}, zerolog.Nop())

	_, err := svc.Compare(context.Background(), nil, "1y")
	assert.Error(t, err)
}

func TestDailyReturns(t *testing.T) {
	returns := dailyReturns([]float64{100, 110, 99})
	require.Len(t, returns, 2)
	assert.InDelta(t, 0.10, returns[0], 1e-9)
	assert.InDelta(t, -0.10, returns[1], 1e-9)
}

func TestFormatQuotes(t *testing.T) {
	out := FormatQuotes([]Quote{
		{Symbol: "TCS.NS", Price: 4100, Change: 100, ChangePercent: 2.5, Volume: 5000},
	})
	assert.Contains(t, out, "| **TCS.NS** | 4100.00 | +100.00 | +2.50% | 5000 |")

	assert.Equal(t, "No quotes available.", FormatQuotes(nil))
}
