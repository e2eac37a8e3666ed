package quotes

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"

	"github.com/tickermind/tickermind/internal/clients/yahoo"
)

// tradingDaysPerYear is the conventional factor for annualizing daily
// volatility.
const tradingDaysPerYear = 252

// MarketData is the slice of the market data client the quotes service needs.
type MarketData interface {
	Lookup(ctx context.Context, symbol string) (*yahoo.Quote, error)
	DailyHistory(ctx context.Context, symbol, rng string) (*yahoo.History, error)
}

// validRanges lists the named history ranges the provider accepts.
var validRanges = map[string]bool{
	"1d":  true,
	"5d":  true,
	"1mo": true,
	"3mo": true,
	"6mo": true,
	"1y":  true,
	"2y":  true,
	"5y":  true,
	"10y": true,
	"ytd": true,
	"max": true,
}

// Service provides quote and history operations.
type Service struct {
	client MarketData
	log    zerolog.Logger
}

// NewService creates a new quotes service.
func NewService(client MarketData, log zerolog.Logger) *Service {
	return &Service{
		client: client,
		log:    log.With().Str("component", "quotes").Logger(),
	}
}

// GetQuote fetches a quote for a single symbol. Returns (nil, nil) for
// symbols the provider does not know.
func (s *Service) GetQuote(ctx context.Context, symbol string) (*Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}

	raw, err := s.client.Lookup(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quote for %s: %w", symbol, err)
	}
	if raw == nil {
		return nil, nil
	}

	return quoteFromRaw(raw), nil
}

// GetQuotes fetches quotes for multiple symbols concurrently. Symbols that
// fail or are unknown are skipped; the returned slice preserves input order.
func (s *Service) GetQuotes(ctx context.Context, symbols []string) []Quote {
	results := make([]*Quote, len(symbols))
	var wg sync.WaitGroup
	for i, symbol := range symbols {
		wg.Add(1)
		go func(i int, symbol string) {
			defer wg.Done()
			quote, err := s.GetQuote(ctx, symbol)
			if err != nil {
				s.log.Warn().Err(err).Str("symbol", symbol).Msg("Skipping symbol in batch quote")
				return
			}
			results[i] = quote
		}(i, symbol)
	}
	wg.Wait()

	quotes := make([]Quote, 0, len(symbols))
	for _, q := range results {
		if q != nil {
			quotes = append(quotes, *q)
		}
	}
	return quotes
}

// GetHistory fetches daily bars for a symbol over a named range and wraps
// them with date bounds.
func (s *Service) GetHistory(ctx context.Context, symbol, rng string) (*HistorySummary, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	if rng == "" {
		rng = "1y"
	}
	if !validRanges[rng] {
		return nil, fmt.Errorf("invalid range %q", rng)
	}

	history, err := s.client.DailyHistory(ctx, symbol, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history for %s: %w", symbol, err)
	}

	summary := &HistorySummary{
		Symbol:       history.Symbol,
		Range:        rng,
		TotalRecords: len(history.Bars),
		Bars:         history.Bars,
	}
	if len(history.Bars) > 0 {
		summary.StartDate = formatDate(history.Bars[0].Time)
		summary.EndDate = formatDate(history.Bars[len(history.Bars)-1].Time)
	}
	return summary, nil
}

// Compare fetches history for multiple symbols and derives per-symbol
// period return, mean daily return, and annualized volatility. Rows are
// sorted by period return descending; failed symbols are skipped.
func (s *Service) Compare(ctx context.Context, symbols []string, rng string) (*ComparisonReport, error) {
	if len(symbols) == 0 {
		return nil, fmt.Errorf("at least one symbol is required")
	}
	if rng == "" {
		rng = "1y"
	}
	if !validRanges[rng] {
		return nil, fmt.Errorf("invalid range %q", rng)
	}

	report := &ComparisonReport{Range: rng}
	var lastBarTime int64

	for _, symbol := range symbols {
		symbol = strings.ToUpper(strings.TrimSpace(symbol))
		if symbol == "" {
			continue
		}

		history, err := s.client.DailyHistory(ctx, symbol, rng)
		if err != nil {
			s.log.Warn().Err(err).Str("symbol", symbol).Msg("Skipping symbol in comparison")
			continue
		}
		if len(history.Bars) < 2 {
			s.log.Warn().Str("symbol", symbol).Msg("Not enough bars for comparison")
			continue
		}

		closes := make([]float64, len(history.Bars))
		for i, bar := range history.Bars {
			closes[i] = bar.Close
		}

		returns := dailyReturns(closes)
		first, last := closes[0], closes[len(closes)-1]

		row := Comparison{
			Symbol:        symbol,
			CurrentPrice:  last,
			AverageReturn: stat.Mean(returns, nil) * 100,
			Volatility:    stat.StdDev(returns, nil) * math.Sqrt(tradingDaysPerYear) * 100,
			Volume:        history.Bars[len(history.Bars)-1].Volume,
		}
		if first != 0 {
			row.PeriodReturn = (last - first) / first * 100
		}

		report.Stocks = append(report.Stocks, row)
		if t := history.Bars[len(history.Bars)-1].Time; t > lastBarTime {
			lastBarTime = t
		}
	}

	sort.SliceStable(report.Stocks, func(i, j int) bool {
		return report.Stocks[i].PeriodReturn > report.Stocks[j].PeriodReturn
	})

	report.TotalStocks = len(report.Stocks)
	if lastBarTime > 0 {
		report.ComparisonDate = formatDate(lastBarTime)
	}
	return report, nil
}

// quoteFromRaw derives the change fields from the provider snapshot.
func quoteFromRaw(raw *yahoo.Quote) *Quote {
	change := raw.Price - raw.PreviousClose
	var changePercent float64
	if raw.PreviousClose != 0 {
		changePercent = change / raw.PreviousClose * 100
	}
	return &Quote{
		Symbol:        raw.Symbol,
		Exchange:      raw.Exchange,
		Currency:      raw.Currency,
		Price:         raw.Price,
		PreviousClose: raw.PreviousClose,
		Change:        change,
		ChangePercent: changePercent,
		Volume:        raw.Volume,
	}
}

// dailyReturns computes simple percentage returns between consecutive closes.
// Bars with a zero previous close are carried as a zero return.
func dailyReturns(closes []float64) []float64 {
	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if closes[i-1] == 0 {
			returns = append(returns, 0)
			continue
		}
		returns = append(returns, (closes[i]-closes[i-1])/closes[i-1])
	}
	return returns
}

func formatDate(unixSeconds int64) string {
	return time.Unix(unixSeconds, 0).UTC().Format("2006-01-02")
}
