package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	from, size := Calculate(1, 10)
	require.Equal(t, 0, from)
	require.Equal(t, 10, size)

	from, size = Calculate(3, 20)
	require.Equal(t, 40, from)
	require.Equal(t, 20, size)

	// Out-of-range inputs fall back to defaults.
	from, size = Calculate(0, -5)
	require.Equal(t, 0, from)
	require.Equal(t, DefaultPageSize, size)

	_, size = Calculate(1, 1000)
	require.Equal(t, DefaultPageSize, size)
}
