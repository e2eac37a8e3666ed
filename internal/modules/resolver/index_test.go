package resolver

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexBuilder_AddReferenceRow(t *testing.T) {
	b := NewIndexBuilder()
	b.AddReferenceRow("Reliance Industries Limited", "RELIANCE.NS")
	ix := b.Build()

	tests := []struct {
		variant string
		ticker  string
	}{
		{"reliance industries limited", "RELIANCE.NS"}, // full name
		{"reliance industries", "RELIANCE.NS"},         // suffix stripped, also first-2 words
		{"ri", "RELIANCE.NS"},                          // acronym
	}
	for _, tt := range tests {
		ticker, ok := ix.Get(tt.variant)
		require.True(t, ok, "variant %q should be indexed", tt.variant)
		assert.Equal(t, tt.ticker, ticker)
	}
}

func TestIndexBuilder_Acronym(t *testing.T) {
	b := NewIndexBuilder()
	b.AddReferenceRow("State Bank Of India", "SBIN.NS")
	ix := b.Build()

	ticker, ok := ix.Get("sboi")
	require.True(t, ok)
	assert.Equal(t, "SBIN.NS", ticker)

	// Word-prefix variants are present too.
	ticker, ok = ix.Get("state bank")
	require.True(t, ok)
	assert.Equal(t, "SBIN.NS", ticker)
	ticker, ok = ix.Get("state bank of")
	require.True(t, ok)
	assert.Equal(t, "SBIN.NS", ticker)
}

func TestIndexBuilder_NoAcronymForSingleWord(t *testing.T) {
	b := NewIndexBuilder()
	b.AddReferenceRow("Infosys", "INFY.NS")
	ix := b.Build()

	_, ok := ix.Get("i")
	assert.False(t, ok, "single-word names must not produce one-letter acronyms")
	_, ok = ix.Get("infosys")
	assert.True(t, ok)
}

func TestIndexBuilder_HonorificPrefix(t *testing.T) {
	b := NewIndexBuilder()
	b.AddReferenceRow("The Tata Power Company Limited", "TATAPOWER.NS")
	ix := b.Build()

	ticker, ok := ix.Get("tata power")
	require.True(t, ok, "honorific-stripped first-2-words variant should be indexed")
	assert.Equal(t, "TATAPOWER.NS", ticker)
}

func TestIndexBuilder_FirstWriterWins(t *testing.T) {
	b := NewIndexBuilder()
	b.AddReferenceRow("HDFC Bank Limited", "HDFCBANK.NS")
	b.AddReferenceRow("HDFC Bank Ltd", "DUPLICATE.NS")
	ix := b.Build()

	ticker, ok := ix.Get("hdfc bank")
	require.True(t, ok)
	assert.Equal(t, "HDFCBANK.NS", ticker, "derived variants must not overwrite earlier rows")

	// The second row's distinct full name still lands.
	ticker, ok = ix.Get("hdfc bank ltd")
	require.True(t, ok)
	assert.Equal(t, "DUPLICATE.NS", ticker)
}

func TestIndexBuilder_CuratedOverridesReference(t *testing.T) {
	b := NewIndexBuilder()
	b.AddReferenceRow("Apple", "WRONG.NS")
	b.MergeCurated(map[string]string{"apple": "AAPL"})
	ix := b.Build()

	ticker, ok := ix.Get("apple")
	require.True(t, ok)
	assert.Equal(t, "AAPL", ticker, "curated entries overwrite reference-derived ones")
}

func TestIndexBuilder_SkipsEmptyKeys(t *testing.T) {
	b := NewIndexBuilder()
	b.AddReferenceRow("", "TICK.NS")
	b.AddReferenceRow("   ", "TICK.NS")
	b.AddReferenceRow("Valid Name", "")
	b.MergeCurated(map[string]string{"": "TICK.NS", "good": ""})
	ix := b.Build()

	assert.Equal(t, 0, ix.Len())
}

func TestBuildIndex_CuratedOnlyFallback(t *testing.T) {
	ix := BuildIndex(nil, map[string]string{
		"apple":     "AAPL",
		"microsoft": "MSFT",
	}, zerolog.Nop())

	assert.Equal(t, 2, ix.Len())
	ticker, ok := ix.Get("microsoft")
	require.True(t, ok)
	assert.Equal(t, "MSFT", ticker)
}

func TestIndex_GetMiss(t *testing.T) {
	ix := NewIndexBuilder().Build()
	_, ok := ix.Get("anything")
	assert.False(t, ok)
}
