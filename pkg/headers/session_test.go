package headers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadSessionBareID(t *testing.T) {
	s := ReadSession("abc123")
	require.Equal(t, "abc123", s.Session)
	require.Nil(t, s.Timeout)
}

func TestReadSessionWithTimeout(t *testing.T) {
	s := ReadSession("abc123;timeout=60")
	require.Equal(t, "abc123", s.Session)
	require.NotNil(t, s.Timeout)
	require.Equal(t, uint(60), *s.Timeout)
}

func TestSessionWriteWithTimeout(t *testing.T) {
	timeout := uint(60)
	s := Session{Session: "abc123", Timeout: &timeout}
	require.Equal(t, "abc123;timeout=60", s.Write())
}

func TestSessionWriteWithoutTimeout(t *testing.T) {
	s := Session{Session: "abc123"}
	require.Equal(t, "abc123", s.Write())
}
