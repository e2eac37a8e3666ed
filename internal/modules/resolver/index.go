package resolver

import (
	"sort"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
)

// Index is an immutable mapping from normalized name variants to tickers.
// It is built once at startup and safe for unlimited concurrent reads.
type Index struct {
	entries map[string]string
	// variants holds the keys in sorted order so fuzzy matching iterates
	// deterministically regardless of map ordering.
	variants []string
}

// Get returns the ticker for an exact variant key.
func (ix *Index) Get(variant string) (string, bool) {
	ticker, ok := ix.entries[variant]
	return ticker, ok
}

// Len returns the number of stored variants.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// IndexBuilder accumulates name-variant-to-ticker entries before freezing
// them into an Index. The two insertion operations encode the two merge
// rules: reference-derived variants never overwrite (first-writer-wins,
// base full names land before derived shortened forms), while curated
// entries always overwrite (they are authoritative hand-picked mappings).
type IndexBuilder struct {
	entries map[string]string
}

// NewIndexBuilder creates an empty builder.
func NewIndexBuilder() *IndexBuilder {
	return &IndexBuilder{entries: make(map[string]string)}
}

// insertIfAbsent adds a variant only when the key is not already present.
// Empty keys and tickers are always skipped.
func (b *IndexBuilder) insertIfAbsent(variant, ticker string) {
	if variant == "" || ticker == "" {
		return
	}
	if _, exists := b.entries[variant]; exists {
		return
	}
	b.entries[variant] = ticker
}

// insertCurated adds a curated entry, overwriting any existing key.
// Empty keys and tickers are always skipped.
func (b *IndexBuilder) insertCurated(name, ticker string) {
	if name == "" || ticker == "" {
		return
	}
	b.entries[name] = ticker
}

// AddReferenceRow expands one reference dataset row into its lookup
// variants: the full lowercased name, the legal-suffix-stripped name, the
// honorific-prefix-stripped name, first-two and first-three word prefixes,
// and an acronym of at least two letters.
func (b *IndexBuilder) AddReferenceRow(companyName, ticker string) {
	base := strings.ToLower(strings.TrimSpace(companyName))
	ticker = strings.TrimSpace(ticker)
	if base == "" || ticker == "" {
		return
	}

	b.insertIfAbsent(base, ticker)

	clean := stripLegalSuffix(base)
	if clean != base {
		b.insertIfAbsent(clean, ticker)
	}

	clean = stripHonorificPrefix(clean)
	b.insertIfAbsent(clean, ticker)

	words := strings.Fields(clean)
	if len(words) >= 2 {
		b.insertIfAbsent(strings.Join(words[:2], " "), ticker)
	}
	if len(words) >= 3 {
		b.insertIfAbsent(strings.Join(words[:3], " "), ticker)
	}

	if len(words) > 1 {
		if acronym := buildAcronym(words); len(acronym) >= 2 {
			b.insertIfAbsent(acronym, ticker)
		}
	}
}

// MergeCurated layers the curated global table on top of the reference
// entries. Curated keys win on collision.
func (b *IndexBuilder) MergeCurated(curated map[string]string) {
	for name, ticker := range curated {
		b.insertCurated(strings.ToLower(strings.TrimSpace(name)), strings.TrimSpace(ticker))
	}
}

// Build freezes the accumulated entries into an immutable Index.
func (b *IndexBuilder) Build() *Index {
	entries := make(map[string]string, len(b.entries))
	variants := make([]string, 0, len(b.entries))
	for variant, ticker := range b.entries {
		entries[variant] = ticker
		variants = append(variants, variant)
	}
	sort.Strings(variants)

	return &Index{entries: entries, variants: variants}
}

// buildAcronym joins the first letter of each word, skipping words that do
// not start with a letter.
func buildAcronym(words []string) string {
	var sb strings.Builder
	for _, word := range words {
		runes := []rune(word)
		if len(runes) > 0 && unicode.IsLetter(runes[0]) {
			sb.WriteRune(runes[0])
		}
	}
	return sb.String()
}

// BuildIndex constructs the resolution index from the reference dataset and
// the curated global table. Reference rows are expanded first
// (insert-if-absent), then curated entries are merged on top (overwrite).
// An empty rows slice yields a curated-only index - the degraded mode used
// when the reference dataset is unavailable.
func BuildIndex(rows []ReferenceRow, curated map[string]string, log zerolog.Logger) *Index {
	builder := NewIndexBuilder()
	for _, row := range rows {
		builder.AddReferenceRow(row.CompanyName, row.Ticker)
	}
	builder.MergeCurated(curated)

	index := builder.Build()
	log.Info().
		Int("reference_rows", len(rows)).
		Int("curated_entries", len(curated)).
		Int("variants", index.Len()).
		Msg("Built symbol resolution index")

	return index
}
