package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "lowercase and trim",
			input:    "  Reliance Industries  ",
			expected: "reliance industries",
		},
		{
			name:     "legal suffix with period",
			input:    "Reliance Industries Ltd.",
			expected: "reliance industries",
		},
		{
			name:     "legal suffix spelled out",
			input:    "Reliance Industries Limited",
			expected: "reliance industries",
		},
		{
			name:     "private suffix",
			input:    "Acme Widgets Pvt.",
			expected: "acme widgets",
		},
		{
			name:     "punctuation collapsed",
			input:    "Johnson & Johnson",
			expected: "johnson johnson",
		},
		{
			name:     "whitespace collapsed",
			input:    "Tata   Consultancy    Services",
			expected: "tata consultancy services",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
		{
			name:     "only whitespace",
			input:    "   ",
			expected: "",
		},
		{
			name:     "corporation suffix",
			input:    "Oil and Natural Gas Corporation",
			expected: "oil and natural gas",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalize_CaseInsensitive(t *testing.T) {
	assert.Equal(t,
		Normalize("Reliance Industries Ltd."),
		Normalize("reliance industries ltd"),
	)
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Reliance Industries Ltd.",
		"Johnson & Johnson",
		"  HDFC   Bank   Limited  ",
		"3M Company",
		"The Tata Power Company Limited",
		"",
		"already normalized",
	}
	for _, input := range inputs {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once), "Normalize must be idempotent for %q", input)
	}
}

func TestStripLegalSuffix(t *testing.T) {
	assert.Equal(t, "hdfc bank", stripLegalSuffix("hdfc bank limited"))
	assert.Equal(t, "hdfc bank", stripLegalSuffix("hdfc bank ltd."))
	assert.Equal(t, "hdfc bank", stripLegalSuffix("hdfc bank"))
	// Only trailing suffixes are stripped
	assert.Equal(t, "ltd industries", stripLegalSuffix("ltd industries"))
}

func TestStripHonorificPrefix(t *testing.T) {
	assert.Equal(t, "tata power", stripHonorificPrefix("the tata power"))
	assert.Equal(t, "reddys laboratories", stripHonorificPrefix("dr. reddys laboratories"))
	assert.Equal(t, "cements", stripHonorificPrefix("shri cements"))
	assert.Equal(t, "plain name", stripHonorificPrefix("plain name"))
}
