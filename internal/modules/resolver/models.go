// Package resolver implements the symbol resolution engine: given free-text
// user input (a company name, abbreviation, partial name, or an already-valid
// ticker), it determines the most likely market ticker symbol, ranked
// candidates when ambiguous, and a human-readable resolution message.
//
// Resolution runs a fixed pipeline: exact-ticker validation against the data
// provider, direct index lookup, scored fuzzy matching over the index, and
// finally an external symbol search. Every path terminates in a Result -
// provider failures never escape as errors.
package resolver

// Scoring thresholds. These values come straight from the tuned production
// behavior; do not retune them without re-validating the end-to-end scenarios.
const (
	// Token-containment strategy: base score minus a penalty for matching a
	// variant with more tokens than the query (prefers exact, non-padded names).
	containmentBase    = 0.95
	containmentPenalty = 0.05

	// Prefix strategy: flat score when the variant starts with the full query.
	prefixScore = 0.85

	// Character-similarity strategy: ratios at or below this floor are ignored.
	similarityFloor = 0.7

	// External search: a boosted score above highConfidence auto-resolves;
	// otherwise the top candidate is accepted only above topAccept.
	highConfidence = 0.85
	topAccept      = 0.6

	// Regional ranking boosts for external search candidates.
	regionalBoost    = 1.2
	nonRegionalBoost = 1.1

	// Maximum number of suggestions carried in a Result.
	maxSuggestions = 10
)

// Matching strategy identifiers, reported in resolution messages.
const (
	StrategyTokenContainment = "token_containment"
	StrategyPrefix           = "prefix"
	StrategySimilarity       = "similarity"
)

// Suggestion is a ranked external-search candidate.
type Suggestion struct {
	Symbol     string  `json:"symbol"`
	Name       string  `json:"name"`
	Exchange   string  `json:"exchange"`
	Type       string  `json:"type"`
	Score      float64 `json:"score"`
	IsRegional bool    `json:"is_regional"`
}

// Result is the outcome of a single resolution attempt.
// If ResolvedSymbol is set the message is phrased as a confident match and
// Suggestions may hold alternates; if empty, the message is phrased as
// failure or ambiguity and Suggestions holds the ranked candidates.
type Result struct {
	ResolvedSymbol string       `json:"resolved_symbol,omitempty"`
	Suggestions    []Suggestion `json:"suggestions,omitempty"`
	Message        string       `json:"message"`
}

// Resolved reports whether the attempt produced a symbol.
func (r Result) Resolved() bool {
	return r.ResolvedSymbol != ""
}

// BatchResult is the outcome of resolving a delimiter-separated list of
// queries. ResolvedSymbols and the per-token lines inside Message preserve
// the input token order; Suggestions aggregates candidates from unresolved
// tokens only.
type BatchResult struct {
	ResolvedSymbols []string     `json:"resolved_symbols"`
	Suggestions     []Suggestion `json:"suggestions,omitempty"`
	Message         string       `json:"message"`
}

// ReferenceRow is a single company-name-to-ticker entry from the reference
// dataset, the raw material for index construction.
type ReferenceRow struct {
	CompanyName string
	Ticker      string
}
