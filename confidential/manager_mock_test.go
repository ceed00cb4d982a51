package confidential_test

import (
	"context"
	"errors"
	"testing"

	"cosmossdk.io/math"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/btcq-org/ctoken/common"
	"github.com/btcq-org/ctoken/confidential"
	"github.com/btcq-org/ctoken/crypto/elgamal"
	"github.com/btcq-org/ctoken/testutil"
	"github.com/btcq-org/ctoken/x/ctoken/types"
)

// mockAccount returns a handle and the matching ledger state with nothing
// pending and a zero available balance.
func mockAccount(t *testing.T) (*confidential.Account, *types.Account) {
	t.Helper()
	owner := testutil.GetRandomSigner()
	addr := testutil.GetRandomSigner().Address()
	keys, err := confidential.DeriveKeys(owner, addr)
	require.NoError(t, err)
	zero, err := keys.AE.Encrypt(0)
	require.NoError(t, err)
	mint := testutil.GetRandomAddress()
	acct := &confidential.Account{
		Address:      addr,
		Mint:         mint,
		Decimals:     6,
		OwnerAddress: owner.Address(),
		Pubkey:       keys.ElGamal.Public,
		Owner:        owner,
		Keys:         keys,
	}
	state := testutil.NewTokenAccountState(addr, &types.TokenAccount{
		Mint:  mint,
		Owner: owner.Address(),
		Confidential: types.ConfidentialTransferAccount{
			Configured:                         true,
			Approved:                           true,
			ElGamalPubkey:                      keys.ElGamal.Public,
			PendingBalanceLo:                   elgamal.ZeroCiphertext(),
			PendingBalanceHi:                   elgamal.ZeroCiphertext(),
			AvailableBalance:                   elgamal.ZeroCiphertext(),
			DecryptableAvailableBalance:        zero,
			AllowConfidentialCredits:           true,
			AllowNonConfidentialCredits:        true,
			PendingBalanceCreditCounter:        3,
			MaximumPendingBalanceCreditCounter: types.DefaultMaximumPendingBalanceCreditCounter,
		},
	})
	return acct, state
}

func TestApplyPendingSubmission(t *testing.T) {
	testCases := []struct {
		name      string
		submitErr error
		expected  error
	}{
		{
			name:      "counter moved is stale",
			submitErr: types.ErrPendingBalanceCounterMismatch.Wrap("expected 3, actual 4"),
			expected:  confidential.ErrSnapshotStale,
		},
		{
			name:      "other rejection",
			submitErr: types.ErrUnauthorized,
			expected:  confidential.ErrSubmission,
		},
		{
			name:      "accepted",
			submitErr: nil,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			backend := testutil.NewMockLedgerBackend(ctrl)
			acct, state := mockAccount(t)
			payer := testutil.GetRandomSigner()

			backend.EXPECT().GetAccountState(gomock.Any(), acct.Address).Return(state, nil)
			backend.EXPECT().
				Submit(gomock.Any(), gomock.Any(), gomock.Any(), payer).
				DoAndReturn(func(_ context.Context, ixs []types.Instruction, _ []common.Signer, _ common.Signer) (types.Signature, error) {
					require.Len(t, ixs, 1)
					msg, err := ixs[0].Msg()
					require.NoError(t, err)
					apply, ok := msg.(*types.MsgApplyPendingBalance)
					require.True(t, ok)
					require.Equal(t, uint64(3), apply.ExpectedPendingBalanceCreditCounter)
					available, err := acct.Keys.AE.Decrypt(apply.NewDecryptableAvailableBalance)
					require.NoError(t, err)
					require.Equal(t, uint64(0), available)
					return types.Signature{1}, tc.submitErr
				})

			m := confidential.NewManager(backend, payer)
			settlement, err := m.ApplyPending(context.Background(), acct)
			if tc.expected == nil {
				require.NoError(t, err)
				require.Equal(t, types.Signature{1}, settlement.Signature)
				return
			}
			require.ErrorIs(t, err, tc.expected)
			require.ErrorIs(t, err, tc.submitErr)
			var opErr *confidential.OperationError
			require.True(t, errors.As(err, &opErr))
			require.Equal(t, confidential.OpApplyPending, opErr.Op)
			require.Equal(t, confidential.StateAwaitingExecution, opErr.State)
		})
	}
}

func TestDepositRequiresKeys(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := testutil.NewMockLedgerBackend(ctrl)
	m := confidential.NewManager(backend, testutil.GetRandomSigner())

	acct, _ := mockAccount(t)
	acct.Keys = nil
	_, err := m.Deposit(context.Background(), acct, math.LegacyNewDec(1))
	require.ErrorIs(t, err, confidential.ErrDecryption)
}
