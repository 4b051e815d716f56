package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProofSourceStream(t *testing.T) {
	src := NewProofSource(2)

	proof, ok := src.Next()
	require.True(t, ok)
	require.Equal(t, ValidPart, proof)

	proof, ok = src.Next()
	require.True(t, ok)
	require.Equal(t, ValidPart, proof)

	proof, ok = src.Next()
	require.True(t, ok)
	require.Equal(t, ValidEnd, proof)

	_, ok = src.Next()
	require.False(t, ok, "stream must be exhausted after ValidEnd")
	_, ok = src.Next()
	require.False(t, ok, "exhaustion is permanent")
}

func TestProofValidity(t *testing.T) {
	require.True(t, ValidPart.IsValid())
	require.True(t, ValidEnd.IsValid())
	require.False(t, Invalid.IsValid())
}
