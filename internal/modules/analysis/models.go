// Package analysis computes technical indicators and risk statistics over
// daily price history: moving averages, RSI, Bollinger bands, and
// return/volatility figures.
package analysis

// Indicator values are pointers: nil means the range did not contain enough
// bars for the indicator's warm-up period.
type Analysis struct {
	Symbol       string  `json:"symbol"`
	Range        string  `json:"range"`
	AsOf         string  `json:"as_of"`
	TotalBars    int     `json:"total_bars"`
	CurrentPrice float64 `json:"current_price"`

	SMA20 *float64 `json:"sma_20,omitempty"`
	SMA50 *float64 `json:"sma_50,omitempty"`
	RSI14 *float64 `json:"rsi_14,omitempty"`

	BollingerUpper  *float64 `json:"bollinger_upper,omitempty"`
	BollingerMiddle *float64 `json:"bollinger_middle,omitempty"`
	BollingerLower  *float64 `json:"bollinger_lower,omitempty"`

	PeriodReturn         float64 `json:"period_return"`         // percent over the range
	MeanDailyReturn      float64 `json:"mean_daily_return"`     // percent
	AnnualizedVolatility float64 `json:"annualized_volatility"` // percent

	TrendSignal string `json:"trend_signal"` // bullish, bearish, neutral
	RSISignal   string `json:"rsi_signal"`   // overbought, oversold, neutral
}
