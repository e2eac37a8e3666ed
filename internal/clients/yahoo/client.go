// Package yahoo provides a client for Yahoo-Finance-style market data endpoints.
// It covers the three operations the rest of the system needs: direct symbol
// lookup (quote), free-text symbol search, and daily price history.
// Responses are cached persistently; on API failure stale cached data is
// returned if available (stale data > no data).
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tickermind/tickermind/internal/clientdata"
)

// Quote is a point-in-time snapshot for a single symbol.
type Quote struct {
	Symbol        string  `json:"symbol" msgpack:"symbol"`
	Exchange      string  `json:"exchange" msgpack:"exchange"`
	Currency      string  `json:"currency" msgpack:"currency"`
	Price         float64 `json:"price" msgpack:"price"`
	PreviousClose float64 `json:"previous_close" msgpack:"previous_close"`
	Volume        int64   `json:"volume" msgpack:"volume"`
}

// SearchResult is a single candidate returned by the symbol search endpoint.
type SearchResult struct {
	Symbol    string `json:"symbol" msgpack:"symbol"`
	ShortName string `json:"short_name" msgpack:"short_name"`
	LongName  string `json:"long_name" msgpack:"long_name"`
	Exchange  string `json:"exchange" msgpack:"exchange"`
	QuoteType string `json:"quote_type" msgpack:"quote_type"`
}

// Bar is a single daily OHLCV bar.
type Bar struct {
	Time   int64   `json:"time" msgpack:"time"` // Unix seconds
	Open   float64 `json:"open" msgpack:"open"`
	High   float64 `json:"high" msgpack:"high"`
	Low    float64 `json:"low" msgpack:"low"`
	Close  float64 `json:"close" msgpack:"close"`
	Volume int64   `json:"volume" msgpack:"volume"`
}

// History holds daily bars for a symbol over a named range.
type History struct {
	Symbol string `json:"symbol" msgpack:"symbol"`
	Range  string `json:"range" msgpack:"range"`
	Bars   []Bar  `json:"bars" msgpack:"bars"`
}

// Client is the market data API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
	cacheRepo  *clientdata.Repository
}

// NewClient creates a new market data client.
// cacheRepo is optional - if nil, caching is disabled.
func NewClient(baseURL string, cacheRepo *clientdata.Repository, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log:       log.With().Str("component", "yahoo").Logger(),
		cacheRepo: cacheRepo,
	}
}

// chartResponse mirrors the provider's v8 chart payload.
// Price arrays use pointers because the provider emits nulls for missing bars.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				Currency           string  `json:"currency"`
				ExchangeName       string  `json:"exchangeName"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				ChartPreviousClose float64 `json:"chartPreviousClose"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type searchResponse struct {
	Quotes []struct {
		Symbol    string `json:"symbol"`
		ShortName string `json:"shortname"`
		LongName  string `json:"longname"`
		Exchange  string `json:"exchange"`
		QuoteType string `json:"quoteType"`
	} `json:"quotes"`
}

// Lookup fetches a quote for an exact symbol.
// Returns (nil, nil) when the provider reports the symbol as unknown -
// callers use that as "not a valid ticker", not as a transport failure.
func (c *Client) Lookup(ctx context.Context, symbol string) (*Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, nil
	}

	if c.cacheRepo != nil {
		var cached Quote
		found, err := c.cacheRepo.Get(clientdata.TableQuote, symbol, &cached)
		if err == nil && found {
			c.log.Debug().Str("symbol", symbol).Msg("Quote cache hit")
			return &cached, nil
		}
	}

	resp, err := c.fetchChart(ctx, symbol, "2d")
	if err != nil {
		// API failed - try stale cached data as fallback
		if c.cacheRepo != nil {
			var stale Quote
			if found, serr := c.cacheRepo.GetStale(clientdata.TableQuote, symbol, &stale); serr == nil && found {
				c.log.Warn().Err(err).Str("symbol", symbol).Msg("API failed, using stale cached quote")
				return &stale, nil
			}
		}
		return nil, err
	}
	if resp == nil {
		// Unknown symbol
		return nil, nil
	}

	quote := quoteFromChart(resp)
	if quote == nil {
		return nil, nil
	}

	if c.cacheRepo != nil {
		if err := c.cacheRepo.Store(clientdata.TableQuote, symbol, quote, clientdata.TTLQuote); err != nil {
			c.log.Warn().Err(err).Str("symbol", symbol).Msg("Failed to cache quote")
		}
	}

	return quote, nil
}

// Search performs a free-text symbol search and returns up to 10 candidates.
func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	cacheKey := strings.ToLower(query)
	if c.cacheRepo != nil {
		var cached []SearchResult
		found, err := c.cacheRepo.Get(clientdata.TableSearch, cacheKey, &cached)
		if err == nil && found {
			c.log.Debug().Str("query", query).Msg("Search cache hit")
			return cached, nil
		}
	}

	u := fmt.Sprintf("%s/v1/finance/search?q=%s&quotesCount=10&newsCount=0",
		c.baseURL, url.QueryEscape(query))

	body, err := c.doGet(ctx, u)
	if err != nil {
		if c.cacheRepo != nil {
			var stale []SearchResult
			if found, serr := c.cacheRepo.GetStale(clientdata.TableSearch, cacheKey, &stale); serr == nil && found {
				c.log.Warn().Err(err).Str("query", query).Msg("API failed, using stale cached search results")
				return stale, nil
			}
		}
		return nil, err
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	results := make([]SearchResult, 0, len(parsed.Quotes))
	for _, q := range parsed.Quotes {
		if q.Symbol == "" {
			continue
		}
		results = append(results, SearchResult{
			Symbol:    q.Symbol,
			ShortName: q.ShortName,
			LongName:  q.LongName,
			Exchange:  q.Exchange,
			QuoteType: q.QuoteType,
		})
	}

	if c.cacheRepo != nil && len(results) > 0 {
		if err := c.cacheRepo.Store(clientdata.TableSearch, cacheKey, results, clientdata.TTLSearch); err != nil {
			c.log.Warn().Err(err).Str("query", query).Msg("Failed to cache search results")
		}
	}

	return results, nil
}

// DailyHistory fetches daily bars over a named range (e.g. "1mo", "6mo", "1y").
func (c *Client) DailyHistory(ctx context.Context, symbol, rng string) (*History, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	if rng == "" {
		rng = "1y"
	}

	cacheKey := symbol + ":" + rng
	if c.cacheRepo != nil {
		var cached History
		found, err := c.cacheRepo.Get(clientdata.TableChart, cacheKey, &cached)
		if err == nil && found {
			c.log.Debug().Str("symbol", symbol).Str("range", rng).Msg("History cache hit")
			return &cached, nil
		}
	}

	resp, err := c.fetchChart(ctx, symbol, rng)
	if err != nil {
		if c.cacheRepo != nil {
			var stale History
			if found, serr := c.cacheRepo.GetStale(clientdata.TableChart, cacheKey, &stale); serr == nil && found {
				c.log.Warn().Err(err).Str("symbol", symbol).Msg("API failed, using stale cached history")
				return &stale, nil
			}
		}
		return nil, err
	}
	if resp == nil {
		return nil, fmt.Errorf("no historical data available for symbol %s", symbol)
	}

	history := historyFromChart(resp, rng)
	if len(history.Bars) == 0 {
		return nil, fmt.Errorf("no historical data available for symbol %s", symbol)
	}

	if c.cacheRepo != nil {
		if err := c.cacheRepo.Store(clientdata.TableChart, cacheKey, history, clientdata.TTLChart); err != nil {
			c.log.Warn().Err(err).Str("symbol", symbol).Msg("Failed to cache history")
		}
	}

	return history, nil
}

// fetchChart calls the v8 chart endpoint.
// Returns (nil, nil) when the provider answers with an error payload for the
// symbol (unknown ticker) and a transport-level error otherwise.
func (c *Client) fetchChart(ctx context.Context, symbol, rng string) (*chartResponse, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=1d",
		c.baseURL, url.PathEscape(symbol), url.QueryEscape(rng))

	body, err := c.doGet(ctx, u)
	if err != nil {
		return nil, err
	}

	var parsed chartResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse chart response: %w", err)
	}

	if parsed.Chart.Error != nil || len(parsed.Chart.Result) == 0 {
		return nil, nil
	}

	return &parsed, nil
}

// doGet performs a GET request and returns the raw body for 2xx responses.
func (c *Client) doGet(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "tickermind/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	// 404 carries a chart error payload for unknown symbols - let the caller parse it
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return body, nil
}

// quoteFromChart shapes a chart payload into a Quote.
func quoteFromChart(resp *chartResponse) *Quote {
	result := resp.Chart.Result[0]
	meta := result.Meta
	if meta.Symbol == "" {
		return nil
	}

	quote := &Quote{
		Symbol:        meta.Symbol,
		Exchange:      meta.ExchangeName,
		Currency:      meta.Currency,
		Price:         meta.RegularMarketPrice,
		PreviousClose: meta.ChartPreviousClose,
	}

	if len(result.Indicators.Quote) > 0 {
		quotes := result.Indicators.Quote[0]
		for i := len(quotes.Volume) - 1; i >= 0; i-- {
			if quotes.Volume[i] != nil {
				quote.Volume = *quotes.Volume[i]
				break
			}
		}
		// Fall back to the last close when the meta price is missing
		if quote.Price == 0 {
			for i := len(quotes.Close) - 1; i >= 0; i-- {
				if quotes.Close[i] != nil {
					quote.Price = *quotes.Close[i]
					break
				}
			}
		}
	}

	return quote
}

// historyFromChart shapes a chart payload into a History, skipping null bars.
func historyFromChart(resp *chartResponse, rng string) *History {
	result := resp.Chart.Result[0]
	history := &History{
		Symbol: result.Meta.Symbol,
		Range:  rng,
	}

	if len(result.Indicators.Quote) == 0 {
		return history
	}
	quotes := result.Indicators.Quote[0]

	for i, ts := range result.Timestamp {
		if i >= len(quotes.Close) || quotes.Close[i] == nil {
			continue
		}
		bar := Bar{
			Time:  ts,
			Close: *quotes.Close[i],
		}
		if i < len(quotes.Open) && quotes.Open[i] != nil {
			bar.Open = *quotes.Open[i]
		}
		if i < len(quotes.High) && quotes.High[i] != nil {
			bar.High = *quotes.High[i]
		}
		if i < len(quotes.Low) && quotes.Low[i] != nil {
			bar.Low = *quotes.Low[i]
		}
		if i < len(quotes.Volume) && quotes.Volume[i] != nil {
			bar.Volume = *quotes.Volume[i]
		}
		history.Bars = append(history.Bars, bar)
	}

	return history
}
