package analysis

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/markcheno/go-talib"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"

	"github.com/tickermind/tickermind/internal/clients/yahoo"
)

// Indicator periods and signal thresholds.
const (
	smaShortPeriod = 20
	smaLongPeriod  = 50
	rsiPeriod      = 14

	bollingerPeriod = 20
	bollingerDev    = 2.0

	rsiOverbought = 70.0
	rsiOversold   = 30.0

	tradingDaysPerYear = 252
)

// HistoryProvider is the slice of the market data client the analysis
// service needs.
type HistoryProvider interface {
	DailyHistory(ctx context.Context, symbol, rng string) (*yahoo.History, error)
}

// Service computes technical analysis over daily history.
type Service struct {
	client HistoryProvider
	log    zerolog.Logger
}

// NewService creates a new analysis service.
func NewService(client HistoryProvider, log zerolog.Logger) *Service {
	return &Service{
		client: client,
		log:    log.With().Str("component", "analysis").Logger(),
	}
}

// Analyze fetches daily history for a symbol and derives the full indicator
// set. Indicators whose warm-up period exceeds the available bars are left
// nil rather than reported as zero.
func (s *Service) Analyze(ctx context.Context, symbol, rng string) (*Analysis, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	if rng == "" {
		rng = "1y"
	}

	history, err := s.client.DailyHistory(ctx, symbol, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history for %s: %w", symbol, err)
	}
	if len(history.Bars) < 2 {
		return nil, fmt.Errorf("not enough data to analyze %s", symbol)
	}

	closes := make([]float64, len(history.Bars))
	for i, bar := range history.Bars {
		closes[i] = bar.Close
	}
	last := closes[len(closes)-1]

	a := &Analysis{
		Symbol:       history.Symbol,
		Range:        rng,
		AsOf:         time.Unix(history.Bars[len(history.Bars)-1].Time, 0).UTC().Format("2006-01-02"),
		TotalBars:    len(closes),
		CurrentPrice: last,
	}

	if first := closes[0]; first != 0 {
		a.PeriodReturn = (last - first) / first * 100
	}

	returns := dailyReturns(closes)
	a.MeanDailyReturn = stat.Mean(returns, nil) * 100
	a.AnnualizedVolatility = stat.StdDev(returns, nil) * math.Sqrt(tradingDaysPerYear) * 100

	if len(closes) >= smaShortPeriod {
		a.SMA20 = lastValue(talib.Sma(closes, smaShortPeriod))
	}
	if len(closes) >= smaLongPeriod {
		a.SMA50 = lastValue(talib.Sma(closes, smaLongPeriod))
	}
	if len(closes) > rsiPeriod {
		a.RSI14 = lastValue(talib.Rsi(closes, rsiPeriod))
	}
	if len(closes) >= bollingerPeriod {
		upper, middle, lower := talib.BBands(closes, bollingerPeriod, bollingerDev, bollingerDev, 0)
		a.BollingerUpper = lastValue(upper)
		a.BollingerMiddle = lastValue(middle)
		a.BollingerLower = lastValue(lower)
	}

	a.TrendSignal = trendSignal(last, a.SMA20, a.SMA50)
	a.RSISignal = rsiSignal(a.RSI14)

	return a, nil
}

// trendSignal classifies price position relative to the moving averages.
func trendSignal(price float64, sma20, sma50 *float64) string {
	if sma20 == nil {
		return "neutral"
	}
	if sma50 != nil {
		switch {
		case price > *sma20 && *sma20 > *sma50:
			return "bullish"
		case price < *sma20 && *sma20 < *sma50:
			return "bearish"
		default:
			return "neutral"
		}
	}
	switch {
	case price > *sma20:
		return "bullish"
	case price < *sma20:
		return "bearish"
	default:
		return "neutral"
	}
}

// rsiSignal classifies the RSI reading against the standard bands.
func rsiSignal(rsi *float64) string {
	if rsi == nil {
		return "neutral"
	}
	switch {
	case *rsi >= rsiOverbought:
		return "overbought"
	case *rsi <= rsiOversold:
		return "oversold"
	default:
		return "neutral"
	}
}

// lastValue returns a pointer to the final element of an indicator series.
func lastValue(series []float64) *float64 {
	if len(series) == 0 {
		return nil
	}
	v := series[len(series)-1]
	return &v
}

// dailyReturns computes simple percentage returns between consecutive closes.
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
