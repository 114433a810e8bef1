package utils_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/bfvengine/utils"
)

func TestEqualSlice(t *testing.T) {
	require.True(t, utils.EqualSlice([]int{1, 2, 3}, []int{1, 2, 3}))
	require.False(t, utils.EqualSlice([]int{1, 2, 3}, []int{1, 2}))
}

func TestEqualBigIntSlice(t *testing.T) {
	a := []*big.Int{big.NewInt(1), big.NewInt(2)}
	b := []*big.Int{big.NewInt(1), big.NewInt(2)}
	c := []*big.Int{big.NewInt(1), big.NewInt(3)}
	require.True(t, utils.EqualBigIntSlice(a, b))
	require.False(t, utils.EqualBigIntSlice(a, c))
}

func TestCenteredWindow(t *testing.T) {
	q := big.NewInt(100)
	require.Equal(t, int64(40), utils.CenteredWindow(big.NewInt(40), q).Int64())
	require.Equal(t, int64(-20), utils.CenteredWindow(big.NewInt(80), q).Int64())
}
