// Package market provides market-level views: the major index overview and
// top movers across the curated NSE watchlist.
package market

// IndexQuote is a market index snapshot.
type IndexQuote struct {
	Name          string  `json:"name"`
	Symbol        string  `json:"symbol"`
	Value         float64 `json:"value"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
}

// Overview groups index snapshots by market.
type Overview struct {
	Regional []IndexQuote `json:"regional"`
	Global   []IndexQuote `json:"global"`
}

// Mover is one watchlist stock ranked by daily move.
type Mover struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	Volume        int64   `json:"volume"`
}
