package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndCheck(t *testing.T) {
	h, err := HashPassword("hunter22")
	require.NoError(t, err)
	require.NotEqual(t, "hunter22", h)

	require.True(t, CheckPassword(h, "hunter22"))
	require.False(t, CheckPassword(h, "hunter23"))
	require.False(t, CheckPassword("not-a-hash", "hunter22"))
}
