package constants

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromString(t *testing.T) {
	for name := range DefaultValues {
		parsed, ok := FromString(name.String())
		require.True(t, ok, name.String())
		require.Equal(t, name, parsed)
	}
	_, ok := FromString("Bogus")
	require.False(t, ok)
}

func TestRentDefaults(t *testing.T) {
	require.Equal(t, uint64(3480), Get(LamportsPerByteYear))
	require.Equal(t, uint64(2), Get(ExemptionThresholdYears))
	require.Equal(t, uint64(128), Get(AccountStorageOverhead))
}
