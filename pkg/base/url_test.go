package base

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseURLAbsolute(t *testing.T) {
	u, err := ParseURL("rtsp://example.com:8554/stream")
	require.NoError(t, err)
	require.False(t, u.Star)
	require.Equal(t, "/stream", u.Path)
}

func TestParseURLStar(t *testing.T) {
	u, err := ParseURL("*")
	require.NoError(t, err)
	require.True(t, u.Star)
	require.Equal(t, "*", u.String())
}

func TestParseURLEmpty(t *testing.T) {
	_, err := ParseURL("")
	require.Error(t, err)
}

func TestParseURLRelativeRejected(t *testing.T) {
	_, err := ParseURL("/stream")
	require.Error(t, err)
}

func TestNormalizedPathAddsLeadingSlash(t *testing.T) {
	require.Equal(t, "/stream", NormalizedPath("stream"))
}

func TestNormalizedPathTrimsTrailingSlash(t *testing.T) {
	require.Equal(t, "/stream", NormalizedPath("/stream/"))
}

func TestNormalizedPathRoot(t *testing.T) {
	require.Equal(t, "/", NormalizedPath("/"))
}
