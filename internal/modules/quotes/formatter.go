package quotes

import (
	"fmt"
	"strings"
)

// FormatQuote renders a single quote as a compact markdown block.
func FormatQuote(q Quote) string {
	arrow := "▲"
	if q.Change < 0 {
		arrow = "▼"
	}
	return fmt.Sprintf("**%s**: %.2f %s %s %.2f (%.2f%%)",
		q.Symbol, q.Price, q.Currency, arrow, q.Change, q.ChangePercent)
}

// FormatQuotes renders multiple quotes as a markdown table.
func FormatQuotes(quotes []Quote) string {
	if len(quotes) == 0 {
		return "No quotes available."
	}

	var sb strings.Builder
	sb.WriteString("| **Symbol** | **Price** | **Change** | **Change %** | **Volume** |\n")
	sb.WriteString("|---|---|---|---|---|\n")
	for _, q := range quotes {
		fmt.Fprintf(&sb, "| **%s** | %.2f | %+.2f | %+.2f%% | %d |\n",
			q.Symbol, q.Price, q.Change, q.ChangePercent, q.Volume)
	}
	return sb.String()
}
