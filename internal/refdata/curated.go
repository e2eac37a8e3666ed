package refdata

// curatedGlobal maps well-known global company names to their tickers.
// These are authoritative hand-picked mappings: when building the resolution
// index they overwrite any key derived from the reference dataset.
var curatedGlobal = map[string]string{
	"apple":              "AAPL",
	"microsoft":          "MSFT",
	"google":             "GOOGL",
	"alphabet":           "GOOGL",
	"amazon":             "AMZN",
	"tesla":              "TSLA",
	"meta":               "META",
	"facebook":           "META",
	"netflix":            "NFLX",
	"nvidia":             "NVDA",
	"intel":              "INTC",
	"amd":                "AMD",
	"oracle":             "ORCL",
	"salesforce":         "CRM",
	"adobe":              "ADBE",
	"cisco":              "CSCO",
	"ibm":                "IBM",
	"walmart":            "WMT",
	"berkshire hathaway": "BRK-A",
	"berkshire":          "BRK-A",
	"johnson johnson":    "JNJ",
	"pfizer":             "PFE",
	"coca cola":          "KO",
	"pepsi":              "PEP",
	"visa":               "V",
	"mastercard":         "MA",
	"disney":             "DIS",
	"nike":               "NKE",
	"mcdonalds":          "MCD",
	"starbucks":          "SBUX",
	"boeing":             "BA",
	"caterpillar":        "CAT",
	"3m":                 "MMM",
	"general electric":   "GE",
	"ge":                 "GE",
	"goldman sachs":      "GS",
	"jpmorgan":           "JPM",
	"jp morgan":          "JPM",
	"bank of america":    "BAC",
	"american express":   "AXP",
	"amex":               "AXP",
}

// CuratedGlobal returns a copy of the curated global company table.
// Callers get their own map so the canonical table stays immutable.
func CuratedGlobal() map[string]string {
	out := make(map[string]string, len(curatedGlobal))
	for name, ticker := range curatedGlobal {
		out[name] = ticker
	}
	return out
}
