package confidential

import (
	"context"

	"cosmossdk.io/math"
	"github.com/hashicorp/go-multierror"

	"github.com/btcq-org/ctoken/common"
	"github.com/btcq-org/ctoken/x/ctoken/types"
	"github.com/btcq-org/ctoken/zk"
)

// snapshot reads the balance state the proofs of acct are built against.
func (m *Manager) snapshot(ctx context.Context, acct *Account) (zk.BalanceSnapshot, error) {
	token, err := m.tokenState(ctx, acct.Address)
	if err != nil {
		return zk.BalanceSnapshot{}, err
	}
	if !token.Confidential.Configured {
		return zk.BalanceSnapshot{}, types.ErrAccountNotConfigured.Wrapf("%s", acct.Address)
	}
	return zk.BalanceSnapshot{
		AvailableBalance:            token.Confidential.AvailableBalance,
		DecryptableAvailableBalance: token.Confidential.DecryptableAvailableBalance,
	}, nil
}

// checkSnapshot fails with ErrSnapshotStale when the available balance of
// acct moved since snap was taken.
func (m *Manager) checkSnapshot(ctx context.Context, acct *Account, snap zk.BalanceSnapshot) error {
	current, err := m.snapshot(ctx, acct)
	if err != nil {
		return err
	}
	if current.AvailableBalance != snap.AvailableBalance {
		return ErrSnapshotStale.Wrapf("available balance of %s changed", acct.Address)
	}
	return nil
}

// Transfer moves amount whole tokens from the available balance of from to
// the pending balance of to. When to carries keys its pending balance is
// applied afterwards and reported in Settlement.RecipientApply.
func (m *Manager) Transfer(ctx context.Context, from, to *Account, amount math.LegacyDec) (*Settlement, error) {
	if err := m.requireOwned(from); err != nil {
		return nil, err
	}
	if to.Pubkey.IsEmpty() {
		return nil, types.ErrAccountNotConfigured.Wrapf("recipient %s has no elgamal pubkey", to.Address)
	}
	if !from.Mint.Equals(to.Mint) {
		return nil, types.ErrMintMismatch.Wrapf("%s and %s", from.Mint, to.Mint)
	}
	units, err := common.ScaleAmount(amount, from.Decimals)
	if err != nil {
		return nil, err
	}
	op := m.begin(OpTransfer, from.Address, units)

	snap, err := m.snapshot(ctx, from)
	if err != nil {
		return nil, op.fail(ctx, err)
	}

	op.transition(StatePendingProofs)
	proofs, err := m.generator.Transfer(ctx, zk.TransferArgs{
		Amount:            units,
		SourceKeypair:     from.Keys.ElGamal,
		SourceAEKey:       from.Keys.AE,
		Snapshot:          snap,
		DestinationPubkey: to.Pubkey,
	})
	if err != nil {
		return nil, op.fail(ctx, classifyProofError(err))
	}
	op.proofGenerated(zk.ProofKindEquality)
	op.proofGenerated(zk.ProofKindCiphertextValidity)
	op.proofGenerated(zk.ProofKindRange)

	if err := op.open(ctx, proofs.Equality, false); err != nil {
		return nil, op.fail(ctx, err)
	}
	if err := op.open(ctx, proofs.Validity, false); err != nil {
		return nil, op.fail(ctx, err)
	}
	// range proofs are too large to verify in the creating transaction
	if err := op.open(ctx, proofs.Range, true); err != nil {
		return nil, op.fail(ctx, err)
	}

	op.transition(StateAwaitingExecution)
	if err := m.checkSnapshot(ctx, from, snap); err != nil {
		return nil, op.fail(ctx, err)
	}
	contexts := op.contexts()
	sig, err := m.submit(ctx, []common.Signer{from.Owner}, &types.MsgTransfer{
		Source:                               from.Address,
		Mint:                                 from.Mint,
		Destination:                          to.Address,
		Owner:                                from.OwnerAddress,
		NewSourceDecryptableAvailableBalance: proofs.NewDecryptableAvailableBalance,
		EqualityProofContext:                 contexts[0],
		CiphertextValidityProofContext:       contexts[1],
		RangeProofContext:                    contexts[2],
	})
	if err != nil {
		return nil, op.fail(ctx, submissionError(err))
	}
	op.submitted(sig)

	var result *multierror.Error
	settlement, err := op.settle(ctx, sig)
	if err != nil {
		result = multierror.Append(result, err)
	}
	if to.HasKeys() {
		applied, err := m.ApplyPending(ctx, to)
		if err != nil {
			result = multierror.Append(result, err)
		}
		settlement.RecipientApply = applied
	}
	return settlement, result.ErrorOrNil()
}
