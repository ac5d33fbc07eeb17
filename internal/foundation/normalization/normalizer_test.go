package normalization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type channel string

const (
	channelStable channel = "stable"
	channelBeta   channel = "beta"
)

func newChannelNormalizer(opts ...Option) *Normalizer[channel] {
	return NewNormalizer(map[string]channel{
		"stable": channelStable,
		"beta":   channelBeta,
	}, channelStable, opts...)
}

func TestNormalizer_Default(t *testing.T) {
	n := newChannelNormalizer()

	tests := []struct {
		name     string
		input    string
		expected channel
	}{
		{"exact match", "beta", channelBeta},
		{"case insensitive", "BETA", channelBeta},
		{"with spaces", "  beta  ", channelBeta},
		{"invalid input", "nightly", channelStable},
		{"empty", "", channelStable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, n.Normalize(tt.input))
		})
	}
}

func TestNormalizer_Exact(t *testing.T) {
	n := newChannelNormalizer(Exact())

	_, ok := n.Lookup("BETA")
	assert.False(t, ok)
	v, ok := n.Lookup(" beta ")
	require.True(t, ok)
	assert.Equal(t, channelBeta, v)
}

func TestNormalizer_WithError(t *testing.T) {
	n := newChannelNormalizer()

	_, err := n.NormalizeWithError("nightly")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[beta stable]")
	assert.Equal(t, []string{"beta", "stable"}, n.ValidKeys())
}
