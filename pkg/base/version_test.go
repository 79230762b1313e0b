package base

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersionStringKnown(t *testing.T) {
	require.Equal(t, "1.0", V1.String())
	require.Equal(t, "2.0", V2.String())
}

func TestVersionStringUnknown(t *testing.T) {
	require.Equal(t, "?", VUnknown.String())
}

func TestParseVersionToken(t *testing.T) {
	require.Equal(t, V1, ParseVersionToken("1.0"))
	require.Equal(t, V2, ParseVersionToken("2.0"))
	require.Equal(t, VUnknown, ParseVersionToken("9.9"))
}
