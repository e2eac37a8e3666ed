// Package quotes provides point-in-time quotes, price history, and
// cross-symbol comparison on top of the market data client.
package quotes

import (
	"github.com/tickermind/tickermind/internal/clients/yahoo"
)

// Quote is a snapshot with derived change fields.
type Quote struct {
	Symbol        string  `json:"symbol"`
	Exchange      string  `json:"exchange"`
	Currency      string  `json:"currency"`
	Price         float64 `json:"price"`
	PreviousClose float64 `json:"previous_close"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	Volume        int64   `json:"volume"`
}

// HistorySummary wraps daily bars with date bounds for easy consumption.
type HistorySummary struct {
	Symbol       string      `json:"symbol"`
	Range        string      `json:"range"`
	StartDate    string      `json:"start_date"`
	EndDate      string      `json:"end_date"`
	TotalRecords int         `json:"total_records"`
	Bars         []yahoo.Bar `json:"bars"`
}

// Comparison is one symbol's row in a cross-symbol comparison.
type Comparison struct {
	Symbol        string  `json:"symbol"`
	CurrentPrice  float64 `json:"current_price"`
	PeriodReturn  float64 `json:"period_return"`  // percent over the requested range
	Volatility    float64 `json:"volatility"`     // annualized, percent
	AverageReturn float64 `json:"average_return"` // mean daily return, percent
	Volume        int64   `json:"volume"`
}

// ComparisonReport aggregates comparison rows. Symbols that could not be
// fetched are simply absent - partial failure is non-fatal.
type ComparisonReport struct {
	Stocks         []Comparison `json:"stocks"`
	Range          string       `json:"range"`
	ComparisonDate string       `json:"comparison_date"`
	TotalStocks    int          `json:"total_stocks"`
}
