package market

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tickermind/tickermind/internal/clients/yahoo"
)

// maxMovers caps the gainers/losers list.
const maxMovers = 10

// namedIndex pairs a display name with its provider symbol. Ordered slices
// keep the overview output stable.
type namedIndex struct {
	Name   string
	Symbol string
}

var regionalIndices = []namedIndex{
	{"NIFTY 50", "^NSEI"},
	{"SENSEX", "^BSESN"},
	{"NIFTY BANK", "^NSEBANK"},
	{"NIFTY IT", "^CNXIT"},
	{"NIFTY AUTO", "^CNXAUTO"},
}

var globalIndices = []namedIndex{
	{"S&P 500", "^GSPC"},
	{"NASDAQ", "^IXIC"},
	{"DOW", "^DJI"},
}

// niftyWatchlist is the curated large-cap NSE universe used for movers.
var niftyWatchlist = []string{
	"RELIANCE.NS", "TCS.NS", "HDFCBANK.NS", "INFY.NS", "ICICIBANK.NS",
	"HDFC.NS", "ITC.NS", "KOTAKBANK.NS", "HINDUNILVR.NS", "LT.NS",
	"SBIN.NS", "BAJFINANCE.NS", "BHARTIARTL.NS", "ASIANPAINT.NS", "MARUTI.NS",
	"AXISBANK.NS", "HCLTECH.NS", "M&M.NS", "NTPC.NS", "NESTLEIND.NS",
	"WIPRO.NS", "ULTRACEMCO.NS", "SUNPHARMA.NS", "POWERGRID.NS", "TATASTEEL.NS",
	"TITAN.NS", "BAJAJFINSV.NS", "TECHM.NS", "ONGC.NS", "INDUSINDBK.NS",
}

// QuoteLookup is the slice of the market data client the market service needs.
type QuoteLookup interface {
	Lookup(ctx context.Context, symbol string) (*yahoo.Quote, error)
}

// Service provides market-level aggregate views.
type Service struct {
	client    QuoteLookup
	watchlist []string
	log       zerolog.Logger
}

// NewService creates a new market service with the default watchlist.
func NewService(client QuoteLookup, log zerolog.Logger) *Service {
	return &Service{
		client:    client,
		watchlist: niftyWatchlist,
		log:       log.With().Str("component", "market").Logger(),
	}
}

// GetOverview fetches all configured index quotes. Indices that fail to
// fetch are skipped; output order follows the configured tables.
func (s *Service) GetOverview(ctx context.Context) *Overview {
	return &Overview{
		Regional: s.fetchIndices(ctx, regionalIndices),
		Global:   s.fetchIndices(ctx, globalIndices),
	}
}

func (s *Service) fetchIndices(ctx context.Context, indices []namedIndex) []IndexQuote {
	results := make([]*IndexQuote, len(indices))
	var wg sync.WaitGroup
	for i, idx := range indices {
		wg.Add(1)
		go func(i int, idx namedIndex) {
			defer wg.Done()
			quote, err := s.client.Lookup(ctx, idx.Symbol)
			if err != nil || quote == nil {
				s.log.Warn().Err(err).Str("index", idx.Name).Str("symbol", idx.Symbol).Msg("Skipping index")
				return
			}
			change := quote.Price - quote.PreviousClose
			var changePercent float64
			if quote.PreviousClose != 0 {
				changePercent = change / quote.PreviousClose * 100
			}
			results[i] = &IndexQuote{
				Name:          idx.Name,
				Symbol:        idx.Symbol,
				Value:         quote.Price,
				Change:        change,
				ChangePercent: changePercent,
			}
		}(i, idx)
	}
	wg.Wait()

	quotes := make([]IndexQuote, 0, len(indices))
	for _, q := range results {
		if q != nil {
			quotes = append(quotes, *q)
		}
	}
	return quotes
}

// GetMovers returns the top watchlist stocks by daily change percent.
// direction is "gainers" or "losers".
func (s *Service) GetMovers(ctx context.Context, direction string) ([]Mover, error) {
	direction = strings.ToLower(strings.TrimSpace(direction))
	if direction == "" {
		direction = "gainers"
	}
	if direction != "gainers" && direction != "losers" {
		return nil, fmt.Errorf("invalid direction %q: must be gainers or losers", direction)
	}

	results := make([]*Mover, len(s.watchlist))
	var wg sync.WaitGroup
	for i, symbol := range s.watchlist {
		wg.Add(1)
		go func(i int, symbol string) {
			defer wg.Done()
			quote, err := s.client.Lookup(ctx, symbol)
			if err != nil || quote == nil {
				s.log.Warn().Err(err).Str("symbol", symbol).Msg("Skipping watchlist symbol")
				return
			}
			change := quote.Price - quote.PreviousClose
			var changePercent float64
			if quote.PreviousClose != 0 {
				changePercent = change / quote.PreviousClose * 100
			}
			results[i] = &Mover{
				Symbol:        symbol,
				Price:         quote.Price,
				Change:        change,
				ChangePercent: changePercent,
				Volume:        quote.Volume,
			}
		}(i, symbol)
	}
	wg.Wait()

	movers := make([]Mover, 0, len(s.watchlist))
	for _, m := range results {
		if m != nil {
			movers = append(movers, *m)
		}
	}

	sort.SliceStable(movers, func(i, j int) bool {
		if direction == "gainers" {
			return movers[i].ChangePercent > movers[j].ChangePercent
		}
		return movers[i].ChangePercent < movers[j].ChangePercent
	})

	if len(movers) > maxMovers {
		movers = movers[:maxMovers]
	}
	return movers, nil
}
