package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/btcq-org/ctoken/testutil"
)

func TestParseFunding(t *testing.T) {
	addr := testutil.GetRandomAddress()
	funding, err := parseFunding([]string{addr.String() + "=1000"})
	require.NoError(t, err)
	require.Equal(t, uint64(1000), funding[addr])

	_, err = parseFunding([]string{addr.String()})
	require.ErrorContains(t, err, "want address=lamports")
	_, err = parseFunding([]string{addr.String() + "=lots"})
	require.ErrorContains(t, err, "invalid lamports")
	_, err = parseFunding([]string{"nope=1"})
	require.Error(t, err)
}
