package keeper_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/btcq-org/ctoken/common"
	"github.com/btcq-org/ctoken/crypto/elgamal"
	"github.com/btcq-org/ctoken/x/ctoken/types"
	"github.com/btcq-org/ctoken/zk"
)

type transferContexts struct {
	equality, validity, rng common.Address
}

func (f *fixture) transferProofs(t *testing.T, from, to *holder, amount uint64) *zk.TransferProofData {
	t.Helper()
	proofs, err := zk.NewGenerator(nil).Transfer(context.Background(), zk.TransferArgs{
		Amount:            amount,
		SourceKeypair:     from.kp,
		SourceAEKey:       from.aeKey,
		Snapshot:          f.snapshot(t, from),
		DestinationPubkey: to.kp.Public,
	})
	require.NoError(t, err)
	return proofs
}

func (f *fixture) openTransferContexts(t *testing.T, proofs *zk.TransferProofData) transferContexts {
	t.Helper()
	return transferContexts{
		equality: f.openContext(t, proofs.Equality, false),
		validity: f.openContext(t, proofs.Validity, false),
		rng:      f.openContext(t, proofs.Range, true),
	}
}

func (f *fixture) transfer(from, to *holder, proofs *zk.TransferProofData, ctxs transferContexts) error {
	return f.exec(common.Addresses{from.owner}, &types.MsgTransfer{
		Source:                               from.account,
		Mint:                                 f.mint,
		Destination:                          to.account,
		Owner:                                from.owner,
		NewSourceDecryptableAvailableBalance: proofs.NewDecryptableAvailableBalance,
		EqualityProofContext:                 ctxs.equality,
		CiphertextValidityProofContext:       ctxs.validity,
		RangeProofContext:                    ctxs.rng,
	})
}

func fundedPair(t *testing.T, f *fixture) (*holder, *holder) {
	t.Helper()
	a := f.newHolder(t, 100)
	b := f.newHolder(t, 0)
	require.NoError(t, f.deposit(a, 100))
	require.NoError(t, f.apply(t, a))
	return a, b
}

func TestHandleMsgTransfer(t *testing.T) {
	f := initFixture(t)
	a, b := fundedPair(t, f)

	proofs := f.transferProofs(t, a, b, 50)
	ctxs := f.openTransferContexts(t, proofs)
	require.NoError(t, f.transfer(a, b, proofs, ctxs))

	require.Equal(t, uint64(50), f.available(t, a))
	decryptable, err := a.aeKey.Decrypt(f.token(t, a.account).Confidential.DecryptableAvailableBalance)
	require.NoError(t, err)
	require.Equal(t, uint64(50), decryptable)

	dst := f.token(t, b.account).Confidential
	require.Equal(t, uint64(1), dst.PendingBalanceCreditCounter)
	pending, err := elgamal.CombineLoHi(dst.PendingBalanceLo, dst.PendingBalanceHi, zk.TransferAmountLoBits)
	require.NoError(t, err)
	amount, err := b.kp.Secret.Decrypt(pending)
	require.NoError(t, err)
	require.Equal(t, uint64(50), amount)

	require.NoError(t, f.apply(t, b))
	require.Equal(t, uint64(50), f.available(t, b))

	// the same proofs no longer match the source balance
	err = f.transfer(a, b, proofs, ctxs)
	require.ErrorIs(t, err, types.ErrCiphertextMismatch)
	require.Equal(t, uint64(50), f.available(t, a))
}

func TestTransferStatementChecks(t *testing.T) {
	f := initFixture(t)
	a, b := fundedPair(t, f)
	c := f.newHolder(t, 0)

	proofs := f.transferProofs(t, a, b, 30)
	ctxs := f.openTransferContexts(t, proofs)

	// proofs address b's key
	require.ErrorIs(t, f.transfer(a, c, proofs, ctxs), types.ErrStatementMismatch)

	// contexts in the wrong slots
	swapped := transferContexts{equality: ctxs.validity, validity: ctxs.equality, rng: ctxs.rng}
	require.ErrorIs(t, f.transfer(a, b, proofs, swapped), types.ErrInvalidProofContext)

	// a range proof from another transfer
	other := f.transferProofs(t, a, b, 20)
	mixed := ctxs
	mixed.rng = f.openContext(t, other.Range, true)
	require.ErrorIs(t, f.transfer(a, b, proofs, mixed), types.ErrStatementMismatch)

	require.NoError(t, f.transfer(a, b, proofs, ctxs))
	require.Equal(t, uint64(70), f.available(t, a))
}

func TestTransferRequiresVerifiedRange(t *testing.T) {
	f := initFixture(t)
	a, b := fundedPair(t, f)
	proofs := f.transferProofs(t, a, b, 10)

	payload, err := zk.EncodeProofData(proofs.Range)
	require.NoError(t, err)
	unverified := f.allocate(t, types.ProofContextSpace(len(payload)))
	require.NoError(t, f.exec(common.Addresses{unverified}, &types.MsgCreateProofContext{
		Context: unverified, Authority: f.payer, Payload: payload,
	}))

	ctxs := transferContexts{
		equality: f.openContext(t, proofs.Equality, false),
		validity: f.openContext(t, proofs.Validity, false),
		rng:      unverified,
	}
	require.ErrorIs(t, f.transfer(a, b, proofs, ctxs), types.ErrProofNotVerified)
	require.Equal(t, uint64(100), f.available(t, a))
}

func TestTransferCreditsDisabled(t *testing.T) {
	f := initFixture(t)
	a, b := fundedPair(t, f)

	acct, err := f.keeper.GetAccount(f.store, b.account)
	require.NoError(t, err)
	token, err := acct.TokenAccount()
	require.NoError(t, err)
	token.Confidential.AllowConfidentialCredits = false
	require.NoError(t, acct.SetData(types.AccountKindToken, token))
	require.NoError(t, f.keeper.SetAccount(f.store, acct))

	proofs := f.transferProofs(t, a, b, 10)
	ctxs := f.openTransferContexts(t, proofs)
	require.ErrorIs(t, f.transfer(a, b, proofs, ctxs), types.ErrConfidentialCreditsDisabled)

	require.ErrorIs(t, f.exec(common.Addresses{a.owner}, &types.MsgEnableConfidentialCredits{Account: b.account, Owner: a.owner}), types.ErrUnauthorized)
	require.NoError(t, f.exec(common.Addresses{b.owner}, &types.MsgEnableConfidentialCredits{Account: b.account, Owner: b.owner}))
	require.NoError(t, f.transfer(a, b, proofs, ctxs))
}
