package base

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseMethodKnown(t *testing.T) {
	m, ok := ParseMethod("OPTIONS")
	require.True(t, ok)
	require.Equal(t, Options, m)
}

func TestParseMethodUnknown(t *testing.T) {
	_, ok := ParseMethod("BOGUS")
	require.False(t, ok)
}

func TestParseMethodCaseSensitive(t *testing.T) {
	_, ok := ParseMethod("options")
	require.False(t, ok)
}
