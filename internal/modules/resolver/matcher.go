package resolver

import (
	"math"
	"strings"
)

// Match is the best-scoring fuzzy candidate for a query.
type Match struct {
	Ticker   string
	Variant  string
	Score    float64
	Strategy string
}

// bestCandidate folds candidate evaluations down to the single best match.
// A candidate replaces the running best only when its score strictly exceeds
// it, so at equal score the first-found candidate wins. Strategies are
// evaluated in a fixed order (containment, prefix, similarity) and the index
// iterates its variants in sorted order, which makes the tie-break
// deterministic.
type bestCandidate struct {
	match *Match
}

func (b *bestCandidate) consider(ticker, variant string, score float64, strategy string) {
	if b.match != nil && score <= b.match.Score {
		return
	}
	b.match = &Match{
		Ticker:   ticker,
		Variant:  variant,
		Score:    score,
		Strategy: strategy,
	}
}

// BestMatch scans the index once and returns the highest-scoring candidate
// across all entries and strategies, or nil when nothing qualifies.
func BestMatch(normalizedQuery string, ix *Index) *Match {
	if normalizedQuery == "" {
		return nil
	}

	queryTokens := strings.Fields(normalizedQuery)
	acc := &bestCandidate{}

	for _, variant := range ix.variants {
		ticker := ix.entries[variant]

		if score, ok := tokenContainmentScore(queryTokens, variant); ok {
			acc.consider(ticker, variant, score, StrategyTokenContainment)
		}

		if strings.HasPrefix(variant, normalizedQuery) {
			acc.consider(ticker, variant, prefixScore, StrategyPrefix)
		}

		if ratio := similarityRatio(normalizedQuery, variant); ratio > similarityFloor {
			acc.consider(ticker, variant, ratio, StrategySimilarity)
		}
	}

	return acc.match
}

// tokenContainmentScore checks whether every query token is satisfied by
// some variant token (equal, substring, or prefix). When all tokens match,
// the score rewards exact-length matches and penalizes variants padded with
// extra words.
func tokenContainmentScore(queryTokens []string, variant string) (float64, bool) {
	if len(queryTokens) == 0 {
		return 0, false
	}

	variantTokens := strings.Fields(variant)
	for _, qt := range queryTokens {
		matched := false
		for _, vt := range variantTokens {
			if qt == vt || strings.Contains(vt, qt) || strings.HasPrefix(vt, qt) {
				matched = true
				break
			}
		}
		if !matched {
			return 0, false
		}
	}

	extra := float64(len(variantTokens) - len(queryTokens))
	score := containmentBase - containmentPenalty*extra/math.Max(float64(len(variantTokens)), 1)
	return score, true
}

// similarityRatio computes the Ratcliff-Obershelp similarity between two
// strings: 2*M / (len(a)+len(b)) where M is the total length of matching
// blocks found by recursively locating the longest common substring.
// Returns a value in [0,1]; two empty strings are identical.
func similarityRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}
	return 2.0 * float64(matchingChars(ra, rb)) / float64(total)
}

// matchingChars counts characters covered by matching blocks: the longest
// common substring, then recursively the pieces to its left and right.
func matchingChars(a, b []rune) int {
	ai, bi, size := longestCommonBlock(a, b)
	if size == 0 {
		return 0
	}
	return size +
		matchingChars(a[:ai], b[:bi]) +
		matchingChars(a[ai+size:], b[bi+size:])
}

// longestCommonBlock finds the longest common substring of a and b,
// preferring the earliest occurrence in a (then in b) on ties.
func longestCommonBlock(a, b []rune) (bestA, bestB, bestSize int) {
	// lengths[j] = length of the common suffix ending at a[i] and b[j]
	lengths := make([]int, len(b))
	for i := 0; i < len(a); i++ {
		// Walk j backwards so lengths[j-1] still holds the previous row.
		for j := len(b) - 1; j >= 0; j-- {
			if a[i] != b[j] {
				lengths[j] = 0
				continue
			}
			k := 1
			if j > 0 {
				k = lengths[j-1] + 1
			}
			lengths[j] = k
			if k > bestSize {
				bestA = i - k + 1
				bestB = j - k + 1
				bestSize = k
			}
		}
	}
	return bestA, bestB, bestSize
}
