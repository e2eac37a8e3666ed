package resolver

import (
	"fmt"
	"strings"
)

// FormatSuggestions renders a ranked suggestion list as a markdown table
// with Symbol / Company Name / Exchange / Confidence columns. Returns the
// empty string for an empty list.
func FormatSuggestions(suggestions []Suggestion) string {
	if len(suggestions) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\n**Did you mean:**\n\n")
	sb.WriteString("| **Symbol** | **Company Name** | **Exchange** | **Confidence** |\n")
	sb.WriteString("|---|---|---|---|\n")

	for _, s := range suggestions {
		fmt.Fprintf(&sb, "| **%s** | %s | %s | %.0f%% |\n",
			s.Symbol,
			truncate(s.Name, 40),
			s.Exchange,
			s.Score*100,
		)
	}

	sb.WriteString("\n**Usage:** Copy the exact symbol (e.g., `RELIANCE.NS`) and use it in your next request.\n")
	return sb.String()
}

// FormattedMessage returns the resolution message, with the suggestion
// table appended when the attempt did not resolve to a symbol.
func (r Result) FormattedMessage() string {
	if r.Resolved() || len(r.Suggestions) == 0 {
		return r.Message
	}
	return r.Message + "\n" + FormatSuggestions(r.Suggestions)
}
