package keeper_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/btcq-org/ctoken/common"
	"github.com/btcq-org/ctoken/x/ctoken/types"
	"github.com/btcq-org/ctoken/zk"
)

func TestHandleMsgCreateProofContext(t *testing.T) {
	f := initFixture(t)
	a, b := fundedPair(t, f)
	proofs := f.transferProofs(t, a, b, 40)

	payload, err := zk.EncodeProofData(proofs.Equality)
	require.NoError(t, err)
	tampered := *proofs.Equality
	tampered.Proof.Zx[31] ^= 1
	tamperedPayload, err := zk.EncodeProofData(&tampered)
	require.NoError(t, err)
	pubkeyProof, err := zk.NewPubkeyValidityProofData(a.kp)
	require.NoError(t, err)
	pubkeyPayload, err := zk.EncodeProofData(pubkeyProof)
	require.NoError(t, err)

	tests := []struct {
		name      string
		space     uint64
		payload   []byte
		verify    bool
		expectErr error
	}{
		{
			name:      "tampered proof verified at creation",
			space:     types.ProofContextSpace(len(tamperedPayload)),
			payload:   tamperedPayload,
			verify:    true,
			expectErr: types.ErrProofVerification,
		},
		{
			name:      "garbage payload",
			space:     types.ProofContextSpace(8),
			payload:   []byte{byte(zk.ProofKindEquality), 1, 2, 3},
			expectErr: types.ErrInvalidProofData,
		},
		{
			name:      "pubkey validity is inline only",
			space:     types.ProofContextSpace(len(pubkeyPayload)),
			payload:   pubkeyPayload,
			verify:    true,
			expectErr: types.ErrInvalidProofContext,
		},
		{
			name:      "account too small",
			space:     16,
			payload:   payload,
			verify:    true,
			expectErr: types.ErrAccountDataTooSmall,
		},
		{
			name:    "valid proof",
			space:   types.ProofContextSpace(len(payload)),
			payload: payload,
			verify:  true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctxAddr := f.allocate(t, tc.space)
			err := f.exec(common.Addresses{ctxAddr}, &types.MsgCreateProofContext{
				Context: ctxAddr, Authority: f.payer, Payload: tc.payload, Verify: tc.verify,
			})
			if tc.expectErr != nil {
				require.ErrorIs(t, err, tc.expectErr)
				acct, err := f.keeper.GetAccount(f.store, ctxAddr)
				require.NoError(t, err)
				require.True(t, acct.IsUninitialized())
				return
			}
			require.NoError(t, err)
			acct, err := f.keeper.GetAccount(f.store, ctxAddr)
			require.NoError(t, err)
			state, err := acct.ProofContext()
			require.NoError(t, err)
			require.True(t, state.Verified)
			require.Equal(t, zk.ProofKindEquality, state.Kind)
		})
	}
}

func TestHandleMsgVerifyProof(t *testing.T) {
	f := initFixture(t)
	a, b := fundedPair(t, f)
	proofs := f.transferProofs(t, a, b, 40)

	tampered := *proofs.Range
	tampered.Proof.Bits = append([]zk.BitProof(nil), proofs.Range.Proof.Bits...)
	tampered.Proof.Bits[0].Z0[31] ^= 1
	payload, err := zk.EncodeProofData(&tampered)
	require.NoError(t, err)
	ctxAddr := f.allocate(t, types.ProofContextSpace(len(payload)))
	require.NoError(t, f.exec(common.Addresses{ctxAddr}, &types.MsgCreateProofContext{
		Context: ctxAddr, Authority: f.payer, Payload: payload,
	}))

	err = f.exec(common.Addresses{a.owner}, &types.MsgVerifyProof{Context: ctxAddr, Authority: a.owner})
	require.ErrorIs(t, err, types.ErrUnauthorized)
	err = f.exec(common.Addresses{f.payer}, &types.MsgVerifyProof{Context: ctxAddr, Authority: f.payer})
	require.ErrorIs(t, err, types.ErrProofVerification)

	verified := f.openContext(t, proofs.Range, true)
	err = f.exec(common.Addresses{f.payer}, &types.MsgVerifyProof{Context: verified, Authority: f.payer})
	require.ErrorIs(t, err, types.ErrProofAlreadyVerified)
}

func TestHandleMsgCloseProofContext(t *testing.T) {
	f := initFixture(t)
	a, b := fundedPair(t, f)
	proofs := f.transferProofs(t, a, b, 40)
	ctxAddr := f.openContext(t, proofs.Validity, false)
	ctxAcct, err := f.keeper.GetAccount(f.store, ctxAddr)
	require.NoError(t, err)

	refund := f.newAddress()
	err = f.exec(common.Addresses{a.owner}, &types.MsgCloseProofContext{Context: ctxAddr, Authority: a.owner, Destination: refund})
	require.ErrorIs(t, err, types.ErrUnauthorized)
	err = f.exec(common.Addresses{f.payer}, &types.MsgCloseProofContext{Context: a.account, Authority: f.payer, Destination: refund})
	require.ErrorIs(t, err, types.ErrInvalidAccountKind)

	require.NoError(t, f.exec(common.Addresses{f.payer}, &types.MsgCloseProofContext{Context: ctxAddr, Authority: f.payer, Destination: refund}))
	_, err = f.keeper.GetAccount(f.store, ctxAddr)
	require.True(t, errors.Is(err, types.ErrAccountNotFound))
	refunded, err := f.keeper.GetAccount(f.store, refund)
	require.NoError(t, err)
	require.Equal(t, ctxAcct.Lamports, refunded.Lamports)

	err = f.exec(common.Addresses{f.payer}, &types.MsgCloseProofContext{Context: ctxAddr, Authority: f.payer, Destination: refund})
	require.ErrorIs(t, err, types.ErrAccountNotFound)
}
