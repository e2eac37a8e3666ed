package resolver

import (
	"regexp"
	"strings"
)

// Patterns for canonicalizing company names.
// legalSuffixPattern matches a trailing legal-entity token followed by
// whitespace or end-of-string; anchoredSuffixPattern only matches at the very
// end and is used when deriving index variants from full names.
var (
	legalSuffixPattern    = regexp.MustCompile(`\s+(limited|ltd\.?|private|pvt\.?|corporation|corp\.?|company|co\.?)(\s|$)`)
	anchoredSuffixPattern = regexp.MustCompile(`\s+(limited|ltd\.?|private|pvt\.?|corporation|corp\.?|company|co\.?)$`)
	honorificPattern      = regexp.MustCompile(`^(the\s+|dr\.?\s+|shri\s+|sri\s+)`)
	punctuationPattern    = regexp.MustCompile(`[.,&]+`)
	whitespacePattern     = regexp.MustCompile(`\s+`)
)

// Normalize transforms arbitrary input into the canonical comparison form
// used for index keys and matching: lowercase, trimmed, legal suffix
// stripped, punctuation collapsed to spaces, whitespace collapsed.
// Pure and total; Normalize(Normalize(x)) == Normalize(x).
func Normalize(raw string) string {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = legalSuffixPattern.ReplaceAllString(normalized, "")
	normalized = punctuationPattern.ReplaceAllString(normalized, " ")
	normalized = whitespacePattern.ReplaceAllString(normalized, " ")
	return strings.TrimSpace(normalized)
}

// stripLegalSuffix removes one trailing legal-entity suffix from an already
// lowercased name. Unlike Normalize it leaves punctuation alone.
func stripLegalSuffix(name string) string {
	return strings.TrimSpace(anchoredSuffixPattern.ReplaceAllString(name, ""))
}

// stripHonorificPrefix removes a leading article or honorific from an
// already lowercased name.
func stripHonorificPrefix(name string) string {
	return strings.TrimSpace(honorificPattern.ReplaceAllString(name, ""))
}
