package resolver

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tickermind/tickermind/internal/clients/yahoo"
)

// TickerLookup validates a candidate ticker against the data provider.
// A nil quote means the symbol is unknown; an error means the provider call
// itself failed (treated as "not validated", never propagated).
type TickerLookup interface {
	Lookup(ctx context.Context, symbol string) (*yahoo.Quote, error)
}

// SearchProvider performs free-text symbol search against the external
// provider.
type SearchProvider interface {
	Search(ctx context.Context, query string) ([]yahoo.SearchResult, error)
}

// Service resolves free-text queries to ticker symbols.
// The index is built once before construction and never mutated afterwards,
// so a single Service is safe for concurrent use.
type Service struct {
	index         *Index
	lookup        TickerLookup
	search        SearchProvider
	searchTimeout time.Duration
	log           zerolog.Logger
}

// NewService creates a new symbol resolution service.
func NewService(
	index *Index,
	lookup TickerLookup,
	search SearchProvider,
	searchTimeout time.Duration,
	log zerolog.Logger,
) *Service {
	return &Service{
		index:         index,
		lookup:        lookup,
		search:        search,
		searchTimeout: searchTimeout,
		log:           log.With().Str("component", "symbol_resolver").Logger(),
	}
}

// Resolve runs the resolution pipeline for a single query:
// ticker check, exact index lookup, fuzzy index match, external search.
func (s *Service) Resolve(ctx context.Context, query string, preferRegional bool) Result {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return Result{Message: "Empty query - provide a symbol or company name"}
	}

	// Step 1: the input may already be a valid ticker. Cheapest win.
	upper := strings.ToUpper(trimmed)
	if s.lookup != nil {
		quote, err := s.lookup.Lookup(ctx, upper)
		if err != nil {
			s.log.Warn().Err(err).Str("symbol", upper).Msg("Ticker check failed, continuing with index lookup")
		} else if quote != nil && quote.Symbol != "" {
			return Result{
				ResolvedSymbol: upper,
				Message:        fmt.Sprintf("Symbol '%s' is valid", upper),
			}
		}
	}

	// Step 2: direct index lookups - normalized form first, then the raw
	// lowercase query as a fallback for names Normalize would alter.
	normalized := Normalize(trimmed)
	if ticker, ok := s.index.Get(normalized); ok {
		return Result{
			ResolvedSymbol: ticker,
			Message:        fmt.Sprintf("Resolved '%s' to '%s'", trimmed, ticker),
		}
	}
	if ticker, ok := s.index.Get(strings.ToLower(trimmed)); ok {
		return Result{
			ResolvedSymbol: ticker,
			Message:        fmt.Sprintf("Resolved '%s' to '%s'", trimmed, ticker),
		}
	}

	// Step 3: scored fuzzy matching over the index.
	if match := BestMatch(normalized, s.index); match != nil {
		s.log.Debug().
			Str("query", trimmed).
			Str("variant", match.Variant).
			Str("strategy", match.Strategy).
			Float64("score", match.Score).
			Msg("Fuzzy index match")
		return Result{
			ResolvedSymbol: match.Ticker,
			Message: fmt.Sprintf("Best match for '%s' is '%s' (%s) [%s]",
				trimmed, match.Ticker, match.Variant, match.Strategy),
		}
	}

	// Step 4: external search fallback.
	return s.searchExternal(ctx, trimmed, normalized, preferRegional)
}

// SearchCandidates runs only the external search step and returns the ranked
// candidate list without auto-resolution. Used for exploratory searches.
func (s *Service) SearchCandidates(ctx context.Context, query string, preferRegional bool) []Suggestion {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil
	}
	suggestions, _ := s.rankedSearch(ctx, trimmed, Normalize(trimmed), preferRegional)
	return suggestions
}

// searchExternal queries the external provider and decides between a
// confident resolution, an ambiguous suggestion list, and a plain failure.
func (s *Service) searchExternal(ctx context.Context, query, normalized string, preferRegional bool) Result {
	suggestions, err := s.rankedSearch(ctx, query, normalized, preferRegional)
	if err != nil {
		// Transport details never reach the caller.
		s.log.Warn().Err(err).Str("query", query).Msg("External symbol search failed")
		return Result{
			Message: fmt.Sprintf("Could not search for '%s': symbol search is temporarily unavailable", query),
		}
	}

	if len(suggestions) == 0 {
		return Result{
			Message: fmt.Sprintf("No stocks found matching '%s'. Try a different search term.", query),
		}
	}

	// High-confidence single answer: first candidate above the bar, in
	// provider order (suggestions are re-sorted afterwards).
	for _, sg := range suggestions {
		if sg.Score > highConfidence {
			return Result{
				ResolvedSymbol: sg.Symbol,
				Suggestions:    suggestions,
				Message: fmt.Sprintf("High confidence match for '%s': %s (%s)",
					query, sg.Symbol, truncate(sg.Name, 50)),
			}
		}
	}

	if top := suggestions[0]; top.Score > topAccept {
		return Result{
			ResolvedSymbol: top.Symbol,
			Suggestions:    suggestions,
			Message: fmt.Sprintf("Best match for '%s': %s (%s)",
				query, top.Symbol, truncate(top.Name, 50)),
		}
	}

	return Result{
		Suggestions: suggestions,
		Message: fmt.Sprintf("Found %d possible matches for '%s'. Review the suggestions below.",
			len(suggestions), query),
	}
}

// rankedSearch performs the provider search with a bounded timeout and
// returns candidates scored by name similarity with the regional boost
// applied, sorted descending. No retries - a failed attempt is terminal.
func (s *Service) rankedSearch(ctx context.Context, query, normalized string, preferRegional bool) ([]Suggestion, error) {
	if s.search == nil {
		return nil, nil
	}

	sctx, cancel := context.WithTimeout(ctx, s.searchTimeout)
	defer cancel()

	results, err := s.search.Search(sctx, query)
	if err != nil {
		return nil, err
	}
	if len(results) > maxSuggestions {
		results = results[:maxSuggestions]
	}

	suggestions := make([]Suggestion, 0, len(results))
	for _, r := range results {
		nameScore := math.Max(
			similarityRatio(normalized, strings.ToLower(r.ShortName)),
			similarityRatio(normalized, strings.ToLower(r.LongName)),
		)

		regional := IsRegionalSymbol(r.Symbol)
		if preferRegional && regional {
			nameScore *= regionalBoost
		} else if !preferRegional && !regional {
			nameScore *= nonRegionalBoost
		}

		name := r.LongName
		if name == "" {
			name = r.ShortName
		}
		if name == "" {
			name = "Unknown"
		}

		suggestions = append(suggestions, Suggestion{
			Symbol:     r.Symbol,
			Name:       name,
			Exchange:   r.Exchange,
			Type:       r.QuoteType,
			Score:      nameScore,
			IsRegional: regional,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})

	return suggestions, nil
}

// ResolveMultiple resolves a comma-separated list of queries. Tokens are
// resolved concurrently (they are independent) but the aggregated report
// preserves the input token order, and suggestions are accumulated from
// unresolved tokens only. Partial failure is non-fatal.
func (s *Service) ResolveMultiple(ctx context.Context, input string, preferRegional bool) BatchResult {
	var tokens []string
	for _, part := range strings.Split(input, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			tokens = append(tokens, trimmed)
		}
	}
	if len(tokens) == 0 {
		return BatchResult{Message: "Empty query - provide one or more symbols or company names"}
	}

	results := make([]Result, len(tokens))
	var wg sync.WaitGroup
	for i, token := range tokens {
		wg.Add(1)
		go func(i int, token string) {
			defer wg.Done()
			results[i] = s.Resolve(ctx, token, preferRegional)
		}(i, token)
	}
	wg.Wait()

	batch := BatchResult{}
	var messages []string
	for i, res := range results {
		if res.Resolved() {
			batch.ResolvedSymbols = append(batch.ResolvedSymbols, res.ResolvedSymbol)
			messages = append(messages, res.Message)
			continue
		}
		messages = append(messages, fmt.Sprintf("Could not resolve '%s'", tokens[i]))
		batch.Suggestions = append(batch.Suggestions, res.Suggestions...)
	}

	batch.Message = strings.Join(messages, "\n")
	if len(batch.Suggestions) > 0 {
		batch.Message += "\n" + FormatSuggestions(batch.Suggestions)
	}

	return batch
}

// IsRegionalSymbol reports whether a symbol belongs to the preferred
// regional market (NSE/BSE listings).
func IsRegionalSymbol(symbol string) bool {
	upper := strings.ToUpper(symbol)
	return strings.HasSuffix(upper, ".NS") || strings.HasSuffix(upper, ".BO")
}

// truncate shortens a string for display, appending an ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
