package session

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewIDIsEightDigits(t *testing.T) {
	id, err := newID()
	require.NoError(t, err)
	require.Len(t, string(id), 8)

	n, err := strconv.Atoi(string(id))
	require.NoError(t, err)
	require.GreaterOrEqual(t, n, idMin)
	require.LessOrEqual(t, n, idMax)
}

func TestNewIDVariesAcrossCalls(t *testing.T) {
	seen := make(map[ID]struct{})
	for i := 0; i < 50; i++ {
		id, err := newID()
		require.NoError(t, err)
		seen[id] = struct{}{}
	}
	require.Greater(t, len(seen), 1)
}
