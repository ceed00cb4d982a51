package confidential

import (
	"context"

	"cosmossdk.io/math"

	"github.com/btcq-org/ctoken/common"
	"github.com/btcq-org/ctoken/x/ctoken/types"
	"github.com/btcq-org/ctoken/zk"
)

// Withdraw moves amount whole tokens from the available confidential
// balance of acct back to its public balance.
func (m *Manager) Withdraw(ctx context.Context, acct *Account, amount math.LegacyDec) (*Settlement, error) {
	if err := m.requireOwned(acct); err != nil {
		return nil, err
	}
	units, err := common.ScaleAmount(amount, acct.Decimals)
	if err != nil {
		return nil, err
	}
	op := m.begin(OpWithdraw, acct.Address, units)

	snap, err := m.snapshot(ctx, acct)
	if err != nil {
		return nil, op.fail(ctx, err)
	}

	op.transition(StatePendingProofs)
	proofs, err := m.generator.Withdraw(ctx, zk.WithdrawArgs{
		Amount:   units,
		Keypair:  acct.Keys.ElGamal,
		AEKey:    acct.Keys.AE,
		Snapshot: snap,
	})
	if err != nil {
		return nil, op.fail(ctx, classifyProofError(err))
	}
	op.proofGenerated(zk.ProofKindEquality)
	op.proofGenerated(zk.ProofKindRange)

	if err := op.open(ctx, proofs.Equality, false); err != nil {
		return nil, op.fail(ctx, err)
	}
	if err := op.open(ctx, proofs.Range, true); err != nil {
		return nil, op.fail(ctx, err)
	}

	op.transition(StateAwaitingExecution)
	if err := m.checkSnapshot(ctx, acct, snap); err != nil {
		return nil, op.fail(ctx, err)
	}
	contexts := op.contexts()
	sig, err := m.submit(ctx, []common.Signer{acct.Owner}, &types.MsgWithdraw{
		Account:                        acct.Address,
		Mint:                           acct.Mint,
		Owner:                          acct.OwnerAddress,
		Amount:                         units,
		Decimals:                       acct.Decimals,
		NewDecryptableAvailableBalance: proofs.NewDecryptableAvailableBalance,
		EqualityProofContext:           contexts[0],
		RangeProofContext:              contexts[1],
	})
	if err != nil {
		return nil, op.fail(ctx, submissionError(err))
	}
	op.submitted(sig)
	return op.settle(ctx, sig)
}
